// Package accum provides the named histogram bank filled during the event
// loop.
//
// Histograms are booked once, before the first event, from a declarative
// list of layouts. Filling an in-range value adds its weight to the bin
// containing it. Values below Min or at/above Max never reach an in-range
// bin: hbook keeps them in its underflow/overflow distributions and the bank
// reports their summed weights per entry. NaN values are dropped and
// counted.
package accum

import (
	"fmt"
	"math"

	"go-hep.org/x/hep/hbook"
)

// Filler is the sink the analysis fills into.
type Filler interface {
	Fill(name string, value, weight float64)
}

// Layout describes the fixed binning of one histogram.
type Layout struct {
	Name  string
	Title string
	Bins  int
	Min   float64
	Max   float64
}

// Validate checks that the layout describes a usable binning.
func (l Layout) Validate() error {
	switch {
	case l.Name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidLayout)
	case l.Bins <= 0:
		return fmt.Errorf("%w: %s: %d bins", ErrInvalidLayout, l.Name, l.Bins)
	case !(l.Min < l.Max):
		return fmt.Errorf("%w: %s: range [%v, %v)", ErrInvalidLayout, l.Name, l.Min, l.Max)
	}
	return nil
}

// Width returns the bin width.
func (l Layout) Width() float64 {
	return (l.Max - l.Min) / float64(l.Bins)
}

// Entry is one booked histogram together with its out-of-range bookkeeping.
type Entry struct {
	Layout Layout
	Hist   *hbook.H1D

	Underflow float64 // summed weight of values < Min
	Overflow  float64 // summed weight of values >= Max
	NaN       int64   // number of dropped NaN fills
}

// Bin is the content of one in-range bin.
type Bin struct {
	Low, High float64
	SumW      float64
}

// Bins returns the in-range bin contents.
func (e *Entry) Bins() []Bin {
	bins := make([]Bin, e.Hist.Len())
	w := e.Layout.Width()
	for i := range bins {
		_, sumw := e.Hist.XY(i)
		bins[i] = Bin{
			Low:  e.Layout.Min + float64(i)*w,
			High: e.Layout.Min + float64(i+1)*w,
			SumW: sumw,
		}
	}
	return bins
}

// InRange returns the summed weight of the in-range bins.
func (e *Entry) InRange() float64 {
	var sum float64
	for _, b := range e.Bins() {
		sum += b.SumW
	}
	return sum
}

func (e *Entry) fill(value, weight float64) {
	switch {
	case math.IsNaN(value):
		e.NaN++
		return
	case value < e.Layout.Min:
		e.Underflow += weight
	case value >= e.Layout.Max:
		e.Overflow += weight
	}
	e.Hist.Fill(value, weight)
}

// Bank is the registry of named histograms. It is not safe for concurrent
// use: the driver owns it and serializes fills.
type Bank struct {
	entries   map[string]*Entry
	order     []string
	ann       map[string]string
	finalized bool
}

// Option configures a Bank.
type Option func(*Bank)

// WithAnnotation stamps every booked histogram with key=value.
func WithAnnotation(key, value string) Option {
	return func(b *Bank) {
		if key != "" {
			b.ann[key] = value
		}
	}
}

// NewBank returns an empty bank.
func NewBank(opts ...Option) *Bank {
	b := &Bank{
		entries: make(map[string]*Entry),
		ann:     make(map[string]string),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Book registers a new histogram. Booking a name twice is an error.
func (b *Bank) Book(l Layout) error {
	if b.finalized {
		return ErrFinalized
	}
	if err := l.Validate(); err != nil {
		return err
	}
	if _, dup := b.entries[l.Name]; dup {
		return fmt.Errorf("%w: %s", ErrDuplicate, l.Name)
	}

	h := hbook.NewH1D(l.Bins, l.Min, l.Max)
	ann := h.Annotation()
	ann["name"] = l.Name
	ann["title"] = l.Title
	for k, v := range b.ann {
		ann[k] = v
	}

	b.entries[l.Name] = &Entry{Layout: l, Hist: h}
	b.order = append(b.order, l.Name)
	return nil
}

// BookAll books every layout, stopping at the first error.
func (b *Bank) BookAll(ls []Layout) error {
	for _, l := range ls {
		if err := b.Book(l); err != nil {
			return err
		}
	}
	return nil
}

// Fill adds weight to the bin of name containing value.
// Filling an unknown name, or filling after Finalize, panics: names are
// fixed at booking time.
func (b *Bank) Fill(name string, value, weight float64) {
	if b.finalized {
		panic(fmt.Sprintf("accum: fill %q after finalize", name))
	}
	e, ok := b.entries[name]
	if !ok {
		panic(fmt.Sprintf("accum: unknown accumulator %q", name))
	}
	e.fill(value, weight)
}

// Len returns the number of booked histograms.
func (b *Bank) Len() int { return len(b.order) }

// Finalize closes the bank for filling and returns its read-only view.
// It may be called only once.
func (b *Bank) Finalize() (*View, error) {
	if b.finalized {
		return nil, ErrFinalized
	}
	b.finalized = true
	return &View{bank: b}, nil
}
