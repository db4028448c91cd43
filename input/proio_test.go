package input

import (
	"errors"
	"io"
	"math"
	"path/filepath"
	"testing"

	"github.com/proio-org/go-proio"
	"github.com/proio-org/go-proio-pb/model/eic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f32(v float32) *float32 { return &v }
func i32(v int32) *int32     { return &v }

func genParticle(pdg int32, px, py, pz, m float32) *eic.Particle {
	return &eic.Particle{
		Pdg:  i32(pdg),
		P:    &eic.XYZF{X: f32(px), Y: f32(py), Z: f32(pz)},
		Mass: f32(m),
	}
}

func writeProio(t *testing.T, events [][]*eic.Particle, otherTag *eic.Particle) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "events.proio")
	w, err := proio.Create(path)
	require.NoError(t, err)

	for i, parts := range events {
		ev := proio.NewEvent()
		for _, p := range parts {
			ev.AddEntry(StableTag, p)
		}
		if i == 0 && otherTag != nil {
			ev.AddEntry("Particle", otherTag)
		}
		require.NoError(t, w.Push(ev))
	}
	w.Close()
	return path
}

func TestProioReader(t *testing.T) {
	path := writeProio(t, [][]*eic.Particle{
		{
			genParticle(211, 3, 4, 0, 0.13957),
			genParticle(-13, 0, 0, 10, 0.10566),
		},
		{
			genParticle(2212, 1, 2, 2, 0.93827),
		},
	}, genParticle(22, 50, 0, 0, 0))

	src, err := Open(path, "")
	require.NoError(t, err)
	defer src.Close()

	ev, err := src.Next()
	require.NoError(t, err)
	assert.Equal(t, 0, ev.Number)
	assert.Equal(t, 1.0, ev.Weight)
	require.Len(t, ev.Particles, 2, "only GenStable entries are read")

	pi := ev.Particles[0]
	assert.Equal(t, 211, pi.ID)
	assert.Equal(t, 1, pi.Status)
	assert.InDelta(t, 5.0, pi.Pt(), 1e-5)
	m := float64(float32(0.13957))
	assert.InDelta(t, math.Sqrt(25+m*m), pi.E(), 1e-5)

	mu := ev.Particles[1]
	assert.Equal(t, -13, mu.ID)
	assert.True(t, mu.IsMuon())
	assert.InDelta(t, 10.0, mu.Pz(), 1e-6)

	ev, err = src.Next()
	require.NoError(t, err)
	assert.Equal(t, 1, ev.Number)
	require.Len(t, ev.Particles, 1)
	assert.Equal(t, 2212, ev.Particles[0].ID)
	assert.InDelta(t, 0.93827, massOf(ev.Particles[0].E(), 1, 2, 2), 1e-5)

	_, err = src.Next()
	assert.True(t, errors.Is(err, io.EOF))
}

// massOf recovers the mass from an energy and a momentum.
func massOf(e, px, py, pz float64) float64 {
	return math.Sqrt(e*e - px*px - py*py - pz*pz)
}

func TestProioMissingFile(t *testing.T) {
	_, err := OpenProio(filepath.Join(t.TempDir(), "missing.proio"))
	assert.Error(t, err)
}
