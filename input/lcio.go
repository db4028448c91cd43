package input

import (
	"fmt"
	"io"
	"math"

	"go-hep.org/x/hep/lcio"

	"github.com/decibelcooper/ttbarplot/event"
)

// MCCollection is the LCIO collection holding generator particles.
const MCCollection = "MCParticle"

// LCIO reads final-state generator particles from an LCIO file.
type LCIO struct {
	reader *lcio.Reader
	n      int
}

// OpenLCIO opens the LCIO file at path.
func OpenLCIO(path string) (*LCIO, error) {
	reader, err := lcio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %q: %w", path, err)
	}
	return &LCIO{reader: reader}, nil
}

// Next returns the particles with generator status 1 of the next event.
func (r *LCIO) Next() (event.Event, error) {
	if !r.reader.Next() {
		err := r.reader.Err()
		if err != nil && err != io.EOF {
			return event.Event{}, fmt.Errorf("%w: event %d: %v", ErrMalformed, r.n, err)
		}
		return event.Event{}, io.EOF
	}

	lev := r.reader.Event()
	ev := event.Event{Number: r.n, Weight: 1}
	r.n++

	coll, ok := lev.Get(MCCollection).(*lcio.McParticleContainer)
	if !ok {
		return ev, nil
	}
	for _, p := range coll.Particles {
		if p.GenStatus != 1 {
			continue
		}
		e := math.Sqrt(p.P[0]*p.P[0] + p.P[1]*p.P[1] + p.P[2]*p.P[2] + p.Mass*p.Mass)
		ev.Particles = append(ev.Particles, event.NewParticle(int(p.PDG), int(p.GenStatus), e, p.P[0], p.P[1], p.P[2]))
	}
	return ev, nil
}

// Close closes the file.
func (r *LCIO) Close() error {
	return r.reader.Close()
}
