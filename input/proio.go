package input

import (
	"fmt"
	"io"
	"math"

	"github.com/proio-org/go-proio"
	"github.com/proio-org/go-proio-pb/model/eic"

	"github.com/decibelcooper/ttbarplot/event"
)

// StableTag is the proio tag of generator-level final-state particles.
const StableTag = "GenStable"

// Proio reads generator-level particles from a proio stream.
type Proio struct {
	reader *proio.Reader
	events <-chan *proio.Event
	n      int
}

// OpenProio opens the proio file at path.
func OpenProio(path string) (*Proio, error) {
	reader, err := proio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %q: %w", path, err)
	}
	return &Proio{
		reader: reader,
		events: reader.ScanEvents(),
	}, nil
}

// Next returns the stable particles of the next event. Energies are put on
// the mass shell.
func (r *Proio) Next() (event.Event, error) {
	pev, ok := <-r.events
	if !ok {
		return event.Event{}, io.EOF
	}

	ev := event.Event{Number: r.n, Weight: 1}
	r.n++

	for _, id := range pev.TaggedEntries(StableTag) {
		part, ok := pev.GetEntry(id).(*eic.Particle)
		if !ok || part.Pdg == nil || part.P == nil {
			continue
		}

		px := float64(*part.P.X)
		py := float64(*part.P.Y)
		pz := float64(*part.P.Z)
		var m float64
		if part.Mass != nil {
			m = float64(*part.Mass)
		}
		e := math.Sqrt(px*px + py*py + pz*pz + m*m)
		ev.Particles = append(ev.Particles, event.NewParticle(int(*part.Pdg), 1, e, px, py, pz))
	}
	return ev, nil
}

// Close closes the stream and releases the scanning goroutine.
func (r *Proio) Close() error {
	r.reader.Close()
	go func() {
		for range r.events {
		}
	}()
	return nil
}
