package accum

import (
	"fmt"
	"io"

	"go-hep.org/x/hep/hbook"
)

// View is the read-only result of a finalized bank.
// Histograms returned by it must not be filled.
type View struct {
	bank *Bank
}

// Names returns the histogram names in booking order.
func (v *View) Names() []string {
	names := make([]string, len(v.bank.order))
	copy(names, v.bank.order)
	return names
}

// Len returns the number of histograms.
func (v *View) Len() int { return len(v.bank.order) }

// Get returns the entry booked under name.
func (v *View) Get(name string) (*Entry, bool) {
	e, ok := v.bank.entries[name]
	return e, ok
}

// H1D returns the histogram booked under name, or nil.
func (v *View) H1D(name string) *hbook.H1D {
	e, ok := v.bank.entries[name]
	if !ok {
		return nil
	}
	return e.Hist
}

// Walk calls fn for every entry in booking order, stopping at the first
// error.
func (v *View) Walk(fn func(e *Entry) error) error {
	for _, name := range v.bank.order {
		if err := fn(v.bank.entries[name]); err != nil {
			return err
		}
	}
	return nil
}

// WriteYODA writes every histogram, in booking order, in the YODA text
// format.
func (v *View) WriteYODA(w io.Writer) error {
	return v.Walk(func(e *Entry) error {
		raw, err := e.Hist.MarshalYODA()
		if err != nil {
			return fmt.Errorf("could not marshal %q to YODA: %w", e.Layout.Name, err)
		}
		if _, err := w.Write(raw); err != nil {
			return fmt.Errorf("could not write %q: %w", e.Layout.Name, err)
		}
		return nil
	})
}
