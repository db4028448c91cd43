package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/decibelcooper/ttbarplot/event"
)

// Ascii reads JETSCAPE final-state text output:
//
//	#	Event	1	weight	0.129	EPangle	0	N_hadrons	236
//	0 211 27 2.44 -0.58 2.28 0.58 ...
//
// Particle lines are "index pid status E px py pz", optionally followed by
// eta and phi which are ignored. Comment lines other than event headers
// are skipped.
type Ascii struct {
	c    io.Closer
	sc   *bufio.Scanner
	line int

	next *event.Event // header read ahead of the current event
	err  error
}

// OpenAscii opens the JETSCAPE ascii file at path.
func OpenAscii(path string) (*Ascii, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %q: %w", path, err)
	}
	r := NewAscii(f)
	r.c = f
	return r, nil
}

// NewAscii reads events from r.
func NewAscii(r io.Reader) *Ascii {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Ascii{sc: sc}
}

// Next returns the next event.
func (r *Ascii) Next() (event.Event, error) {
	if r.err != nil {
		return event.Event{}, r.err
	}

	cur := r.next
	r.next = nil
	for r.sc.Scan() {
		r.line++
		text := strings.TrimSpace(r.sc.Text())
		if text == "" {
			continue
		}

		if strings.HasPrefix(text, "#") {
			hdr, ok, err := r.parseHeader(text)
			if err != nil {
				return event.Event{}, r.fail(err)
			}
			if !ok {
				continue
			}
			if cur != nil {
				r.next = &hdr
				return *cur, nil
			}
			cur = &hdr
			continue
		}

		if cur == nil {
			return event.Event{}, r.fail(r.malformed("particle before any event header"))
		}
		p, err := r.parseParticle(text)
		if err != nil {
			return event.Event{}, r.fail(err)
		}
		cur.Particles = append(cur.Particles, p)
	}

	if err := r.sc.Err(); err != nil {
		return event.Event{}, r.fail(fmt.Errorf("line %d: %w", r.line, err))
	}
	r.err = io.EOF
	if cur != nil {
		return *cur, nil
	}
	return event.Event{}, io.EOF
}

// Close closes the underlying file, if any.
func (r *Ascii) Close() error {
	if r.c == nil {
		return nil
	}
	return r.c.Close()
}

func (r *Ascii) fail(err error) error {
	r.err = err
	return err
}

func (r *Ascii) malformed(format string, args ...interface{}) error {
	return fmt.Errorf("%w: line %d: %s", ErrMalformed, r.line, fmt.Sprintf(format, args...))
}

// parseHeader decodes an event header. ok is false for other comments.
func (r *Ascii) parseHeader(text string) (hdr event.Event, ok bool, err error) {
	fields := strings.Fields(strings.TrimPrefix(text, "#"))
	if len(fields) < 2 || fields[0] != "Event" {
		return hdr, false, nil
	}

	hdr.Weight = 1
	hdr.Number, err = strconv.Atoi(fields[1])
	if err != nil {
		return hdr, false, r.malformed("invalid event number %q", fields[1])
	}
	for i := 2; i+1 < len(fields); i += 2 {
		if fields[i] != "weight" {
			continue
		}
		hdr.Weight, err = strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return hdr, false, r.malformed("invalid event weight %q", fields[i+1])
		}
	}
	return hdr, true, nil
}

func (r *Ascii) parseParticle(text string) (event.Particle, error) {
	fields := strings.Fields(text)
	if len(fields) < 7 {
		return event.Particle{}, r.malformed("expected at least 7 columns, got %d", len(fields))
	}

	var ints [2]int
	for i := range ints {
		v, err := strconv.Atoi(fields[i+1])
		if err != nil {
			return event.Particle{}, r.malformed("column %d: %v", i+2, err)
		}
		ints[i] = v
	}

	var p4 [4]float64
	for i := range p4 {
		v, err := strconv.ParseFloat(fields[i+3], 64)
		if err != nil {
			return event.Particle{}, r.malformed("column %d: %v", i+4, err)
		}
		p4[i] = v
	}

	return event.NewParticle(ints[0], ints[1], p4[0], p4[1], p4[2], p4[3]), nil
}
