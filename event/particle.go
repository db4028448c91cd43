// Package event holds the per-event particle model: final-state particles,
// their hadron/lepton classification and the pt-filtered views the analysis
// works on.
package event

import (
	"go-hep.org/x/hep/fmom"
)

// Kind is the coarse particle classification used by the analysis.
type Kind int

const (
	Hadron Kind = iota
	Lepton
)

func (k Kind) String() string {
	switch k {
	case Lepton:
		return "lepton"
	default:
		return "hadron"
	}
}

// PDG codes used by the analysis.
const (
	PDGElectron   = 11
	PDGNuE        = 12
	PDGMuon       = 13
	PDGNuMu       = 14
	PDGTau        = 15
	PDGNuTau      = 16
	PDGPion       = 211
	PDGKaon       = 321
	PDGProton     = 2212
	PDGSigmaPlus  = 3222
	PDGSigmaMinus = 3112
	PDGXiMinus    = 3312
	PDGOmegaMinus = 3334
)

// Classify returns Lepton for charged leptons and neutrinos of all three
// generations (and their antiparticles); any other code is a Hadron.
func Classify(pid int) Kind {
	switch abs(pid) {
	case PDGElectron, PDGNuE, PDGMuon, PDGNuMu, PDGTau, PDGNuTau:
		return Lepton
	}
	return Hadron
}

// IsChargedHadron reports whether pid is one of the long-lived charged
// hadrons: pi, K, p, Sigma+, Sigma-, Xi-, Omega-.
func IsChargedHadron(pid int) bool {
	switch abs(pid) {
	case PDGPion, PDGKaon, PDGProton, PDGSigmaPlus, PDGSigmaMinus, PDGXiMinus, PDGOmegaMinus:
		return true
	}
	return false
}

// Particle is a final-state particle. It is a value type and is never
// mutated after construction.
type Particle struct {
	ID     int
	Status int
	P4     fmom.PxPyPzE
}

// NewParticle builds a particle from a (pid, status, E, px, py, pz) record.
func NewParticle(pid, status int, e, px, py, pz float64) Particle {
	return Particle{
		ID:     pid,
		Status: status,
		P4:     fmom.NewPxPyPzE(px, py, pz, e),
	}
}

// Kind classifies the particle by its PDG code.
func (p Particle) Kind() Kind { return Classify(p.ID) }

func (p Particle) IsLepton() bool        { return Classify(p.ID) == Lepton }
func (p Particle) IsMuon() bool          { return abs(p.ID) == PDGMuon }
func (p Particle) IsChargedHadron() bool { return IsChargedHadron(p.ID) }

func (p Particle) E() float64  { return p.P4.E() }
func (p Particle) Px() float64 { return p.P4.Px() }
func (p Particle) Py() float64 { return p.P4.Py() }
func (p Particle) Pz() float64 { return p.P4.Pz() }

// Pt returns the transverse momentum sqrt(px²+py²).
func (p Particle) Pt() float64 { return Pt(p.P4) }

// Eta returns the pseudorapidity.
func (p Particle) Eta() float64 { return Eta(p.P4) }

// Phi returns the azimuthal angle in (-π, π].
func (p Particle) Phi() float64 { return Phi(p.P4) }

// Rapidity returns the rapidity 0.5*ln((E+pz)/(E-pz)).
func (p Particle) Rapidity() float64 { return Rapidity(p.P4) }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
