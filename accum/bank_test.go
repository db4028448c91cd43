package accum

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutValidate(t *testing.T) {
	assert.NoError(t, Layout{Name: "h", Bins: 10, Min: 0, Max: 10}.Validate())
	assert.ErrorIs(t, Layout{Bins: 10, Min: 0, Max: 10}.Validate(), ErrInvalidLayout)
	assert.ErrorIs(t, Layout{Name: "h", Bins: 0, Min: 0, Max: 10}.Validate(), ErrInvalidLayout)
	assert.ErrorIs(t, Layout{Name: "h", Bins: 5, Min: 1, Max: 1}.Validate(), ErrInvalidLayout)
	assert.Equal(t, 0.5, Layout{Name: "h", Bins: 20, Min: -5, Max: 5}.Width())
}

func TestBankBook(t *testing.T) {
	b := NewBank()
	require.NoError(t, b.Book(Layout{Name: "hA", Bins: 10, Min: 0, Max: 10}))
	require.NoError(t, b.Book(Layout{Name: "hB", Bins: 4, Min: -2, Max: 2}))
	assert.ErrorIs(t, b.Book(Layout{Name: "hA", Bins: 5, Min: 0, Max: 1}), ErrDuplicate)
	assert.ErrorIs(t, b.Book(Layout{Name: "hC", Bins: -1, Min: 0, Max: 1}), ErrInvalidLayout)
	assert.Equal(t, 2, b.Len())

	err := b.BookAll([]Layout{
		{Name: "hD", Bins: 1, Min: 0, Max: 1},
		{Name: "hB", Bins: 1, Min: 0, Max: 1},
		{Name: "hE", Bins: 1, Min: 0, Max: 1},
	})
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Equal(t, 3, b.Len())
}

func TestBankFill(t *testing.T) {
	b := NewBank(WithAnnotation("run", "abc"))
	require.NoError(t, b.Book(Layout{Name: "h", Title: "test", Bins: 10, Min: 0, Max: 10}))

	b.Fill("h", 0.5, 2)
	b.Fill("h", 0.0, 1)
	b.Fill("h", 9.99, 0.25)
	b.Fill("h", 10, 3)   // overflow: upper edge is exclusive
	b.Fill("h", -0.1, 4) // underflow
	b.Fill("h", math.NaN(), 1)

	view, err := b.Finalize()
	require.NoError(t, err)

	e, ok := view.Get("h")
	require.True(t, ok)
	bins := e.Bins()
	require.Len(t, bins, 10)
	assert.Equal(t, 3.0, bins[0].SumW)
	assert.Equal(t, 0.0, bins[0].Low)
	assert.Equal(t, 1.0, bins[0].High)
	assert.Equal(t, 0.25, bins[9].SumW)
	assert.Equal(t, 3.25, e.InRange())
	assert.Equal(t, 4.0, e.Underflow)
	assert.Equal(t, 3.0, e.Overflow)
	assert.Equal(t, int64(1), e.NaN)

	h := view.H1D("h")
	require.NotNil(t, h)
	assert.Equal(t, "h", h.Annotation()["name"])
	assert.Equal(t, "test", h.Annotation()["title"])
	assert.Equal(t, "abc", h.Annotation()["run"])
	assert.Nil(t, view.H1D("missing"))
}

func TestBankFinalize(t *testing.T) {
	b := NewBank()
	require.NoError(t, b.Book(Layout{Name: "h", Bins: 1, Min: 0, Max: 1}))

	_, err := b.Finalize()
	require.NoError(t, err)

	_, err = b.Finalize()
	assert.ErrorIs(t, err, ErrFinalized)
	assert.ErrorIs(t, b.Book(Layout{Name: "g", Bins: 1, Min: 0, Max: 1}), ErrFinalized)
	assert.Panics(t, func() { b.Fill("h", 0.5, 1) })
}

func TestBankFillUnknown(t *testing.T) {
	b := NewBank()
	assert.Panics(t, func() { b.Fill("nope", 1, 1) })
}

func TestViewOrderAndWalk(t *testing.T) {
	b := NewBank()
	for _, name := range []string{"hZ", "hA", "hM"} {
		require.NoError(t, b.Book(Layout{Name: name, Bins: 2, Min: 0, Max: 2}))
	}
	view, err := b.Finalize()
	require.NoError(t, err)

	assert.Equal(t, []string{"hZ", "hA", "hM"}, view.Names())
	assert.Equal(t, 3, view.Len())

	var walked []string
	require.NoError(t, view.Walk(func(e *Entry) error {
		walked = append(walked, e.Layout.Name)
		return nil
	}))
	assert.Equal(t, view.Names(), walked)

	names := view.Names()
	names[0] = "mutated"
	assert.Equal(t, "hZ", view.Names()[0])
}

func TestViewWriteYODA(t *testing.T) {
	b := NewBank()
	require.NoError(t, b.Book(Layout{Name: "hA", Bins: 2, Min: 0, Max: 2}))
	require.NoError(t, b.Book(Layout{Name: "hB", Bins: 2, Min: 0, Max: 2}))
	b.Fill("hA", 1.5, 1)

	view, err := b.Finalize()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, view.WriteYODA(&buf))
	assert.Equal(t, 2, strings.Count(buf.String(), "BEGIN YODA_HISTO1D"))
}

func TestRecorderReplay(t *testing.T) {
	layouts := []Layout{
		{Name: "hA", Bins: 10, Min: 0, Max: 10},
		{Name: "hB", Bins: 10, Min: -5, Max: 5},
	}
	direct := NewBank()
	replayed := NewBank()
	require.NoError(t, direct.BookAll(layouts))
	require.NoError(t, replayed.BookAll(layouts))

	var rec Recorder
	for _, f := range []Filler{direct, &rec} {
		f.Fill("hA", 3.3, 0.1)
		f.Fill("hB", -4, 1)
		f.Fill("hA", 12, 1)
	}
	assert.Len(t, rec.Named("hA"), 2)
	rec.Replay(replayed)

	dv, err := direct.Finalize()
	require.NoError(t, err)
	rv, err := replayed.Finalize()
	require.NoError(t, err)
	for _, name := range dv.Names() {
		de, _ := dv.Get(name)
		re, _ := rv.Get(name)
		assert.Equal(t, de.Bins(), re.Bins(), name)
		assert.Equal(t, de.Overflow, re.Overflow, name)
	}

	rec.Reset()
	assert.Empty(t, rec.Fills)
}
