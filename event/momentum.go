package event

import (
	"math"

	"go-hep.org/x/hep/fmom"
)

// Sum adds two four-momenta component-wise.
func Sum(a, b fmom.PxPyPzE) fmom.PxPyPzE {
	s := fmom.Add(&a, &b)
	return fmom.NewPxPyPzE(s.Px(), s.Py(), s.Pz(), s.E())
}

// Mass returns the Minkowski norm of p. Space-like vectors get a negative
// mass, -sqrt(-m²).
func Mass(p fmom.PxPyPzE) float64 {
	return p.M()
}

// InvariantMass returns the mass of the summed four-momenta of a and b.
func InvariantMass(a, b fmom.PxPyPzE) float64 {
	return fmom.InvMass(&a, &b)
}

// Pt returns the transverse momentum of p.
func Pt(p fmom.PxPyPzE) float64 {
	return p.Pt()
}

// Phi returns the azimuthal angle of p in (-π, π].
func Phi(p fmom.PxPyPzE) float64 {
	return p.Phi()
}

// Eta returns the pseudorapidity of p. A vector along the beam axis gets
// ±Inf, a null vector 0.
func Eta(p fmom.PxPyPzE) float64 {
	if p.Pt() == 0 {
		switch {
		case p.Pz() > 0:
			return math.Inf(+1)
		case p.Pz() < 0:
			return math.Inf(-1)
		}
		return 0
	}
	return p.Eta()
}

// Rapidity returns 0.5*ln((E+pz)/(E-pz)), saturating at ±Inf when |pz| ≥ E
// and 0 for a null vector.
func Rapidity(p fmom.PxPyPzE) float64 {
	e, pz := p.E(), p.Pz()
	switch {
	case e == 0 && pz == 0:
		return 0
	case e <= pz:
		return math.Inf(+1)
	case e <= -pz:
		return math.Inf(-1)
	}
	return p.Rapidity()
}
