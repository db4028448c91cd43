package event

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-hep.org/x/hep/fmom"
)

// particleAt builds a massless particle with the given pt along +x.
func particleAt(pid int, pt float64) Particle {
	return NewParticle(pid, 1, pt, pt, 0, 0)
}

func TestClassify(t *testing.T) {
	for _, pid := range []int{11, -11, 12, -12, 13, -13, 14, -14, 15, -15, 16, -16} {
		assert.Equal(t, Lepton, Classify(pid), "pid=%d", pid)
	}
	for _, pid := range []int{0, 1, 10, 17, 22, 111, 211, -211, 321, 2212, -2212, 2112, 3334, 1000020040} {
		assert.Equal(t, Hadron, Classify(pid), "pid=%d", pid)
	}
}

func TestIsChargedHadron(t *testing.T) {
	for _, pid := range []int{211, -211, 321, -321, 2212, -2212, 3222, 3112, 3312, -3334} {
		assert.True(t, IsChargedHadron(pid), "pid=%d", pid)
	}
	for _, pid := range []int{111, 130, 2112, 22, 13, 3122} {
		assert.False(t, IsChargedHadron(pid), "pid=%d", pid)
	}
}

func TestParticleKinematics(t *testing.T) {
	p := NewParticle(211, 1, 10, 3, 4, 5)
	assert.Equal(t, 5.0, p.Pt())
	assert.InDelta(t, math.Atan2(4, 3), p.Phi(), 1e-12)
	assert.InDelta(t, math.Asinh(1), p.Eta(), 1e-12)
	assert.InDelta(t, 0.5*math.Log(15.0/5.0), p.Rapidity(), 1e-12)
	assert.Equal(t, 10.0, p.E())
	assert.Equal(t, Hadron, p.Kind())

	mu := NewParticle(-13, 1, 1, 1, 0, 0)
	assert.True(t, mu.IsMuon())
	assert.True(t, mu.IsLepton())
	assert.False(t, mu.IsChargedHadron())
}

func TestInvariantMass(t *testing.T) {
	a := NewParticle(13, 1, 25, 25, 0, 0)
	b := NewParticle(-14, 1, 22, -22, 0, 0)
	// back-to-back massless pair: m² = 4*E1*E2
	assert.InDelta(t, math.Sqrt(2200), InvariantMass(a.P4, b.P4), 1e-12)

	c := NewParticle(13, 1, 25, 25, 0, 0)
	assert.InDelta(t, 0.0, InvariantMass(a.P4, c.P4), 1e-12)

	sum := Sum(a.P4, b.P4)
	assert.Equal(t, 47.0, sum.E())
	assert.Equal(t, 3.0, sum.Px())
}

func TestEtaEdgeCases(t *testing.T) {
	assert.Equal(t, 0.0, Eta(NewParticle(211, 1, 0, 0, 0, 0).P4))
	assert.True(t, math.IsInf(Eta(NewParticle(211, 1, 1, 0, 0, 1).P4), +1))
	assert.True(t, math.IsInf(Rapidity(NewParticle(211, 1, 1, 0, 0, -1).P4), -1))
	assert.Equal(t, 0.0, Rapidity(NewParticle(211, 1, 0, 0, 0, 0).P4))
	assert.True(t, math.IsInf(Eta(NewParticle(211, 1, 2, 0, 0, -2).P4), -1))
}

func TestKinematicsMatchFmom(t *testing.T) {
	a := NewParticle(211, 1, 10, 3, 4, 5)
	b := NewParticle(-14, 1, 30, -20, 1, 12)

	p4 := a.P4
	assert.Equal(t, p4.Pt(), a.Pt())
	assert.Equal(t, p4.Eta(), a.Eta())
	assert.Equal(t, p4.Phi(), a.Phi())
	assert.Equal(t, p4.Rapidity(), a.Rapidity())
	assert.Equal(t, fmom.InvMass(&a.P4, &b.P4), InvariantMass(a.P4, b.P4))

	// space-like vectors keep the sign of m²
	spacelike := NewParticle(211, 1, 1, 3, 4, 0)
	assert.InDelta(t, -math.Sqrt(24), Mass(spacelike.P4), 1e-12)
}

func TestEventViews(t *testing.T) {
	ev := Event{Particles: []Particle{
		particleAt(211, 1.0),
		particleAt(13, 2.0),
		particleAt(22, 0.5),
		particleAt(-14, 3.0),
		particleAt(2112, 4.0),
		particleAt(11, 0.1),
	}}

	hadrons := ev.Hadrons(0)
	leptons := ev.Leptons(0)
	require.Len(t, hadrons, 3)
	require.Len(t, leptons, 3)
	assert.Equal(t, []int{211, 22, 2112}, ids(hadrons))
	assert.Equal(t, []int{13, -14, 11}, ids(leptons))

	// disjoint and exhaustive before the cut
	seen := map[int]int{}
	for _, p := range append(hadrons, leptons...) {
		seen[p.ID]++
	}
	assert.Len(t, seen, len(ev.Particles))
	for _, n := range seen {
		assert.Equal(t, 1, n)
	}

	assert.Equal(t, []int{2112}, ids(ev.Hadrons(1.0)), "cut is strict")
	assert.Equal(t, []int{-14}, ids(ev.Leptons(2.0)))
	assert.Empty(t, ev.Leptons(10))
}

func TestFilterByPtMonotonic(t *testing.T) {
	var ps []Particle
	for i := 0; i < 20; i++ {
		ps = append(ps, particleAt(211, float64(i)*0.5))
	}
	cuts := []float64{0, 0.5, 1, 2.25, 5, 9.5, 10}
	for i, cut := range cuts {
		got := FilterByPt(ps, cut)
		for _, p := range got {
			assert.Greater(t, p.Pt(), cut)
		}
		if i == 0 {
			continue
		}
		prev := FilterByPt(ps, cuts[i-1])
		assert.Subset(t, pts(prev), pts(got))
	}
	assert.Len(t, ps, 20, "input untouched")
}

func ids(ps []Particle) []int {
	var out []int
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func pts(ps []Particle) []float64 {
	var out []float64
	for _, p := range ps {
		out = append(out, p.Pt())
	}
	return out
}
