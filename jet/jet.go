// Package jet reconstructs jets from hadron four-momenta and applies the
// kinematic jet selection.
package jet

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"go-hep.org/x/hep/fastjet"
	"go-hep.org/x/hep/fmom"

	"github.com/decibelcooper/ttbarplot/event"
)

// ErrClustering is returned when the clustering backend fails.
var ErrClustering = errors.New("jet clustering failed")

// Jet is a reconstructed jet.
type Jet struct {
	P4           fmom.PxPyPzE
	Constituents int
}

func (j Jet) Pt() float64       { return event.Pt(j.P4) }
func (j Jet) Eta() float64      { return event.Eta(j.P4) }
func (j Jet) Rapidity() float64 { return event.Rapidity(j.P4) }

// Phi returns the azimuthal angle in [0, 2π).
func (j Jet) Phi() float64 {
	phi := event.Phi(j.P4)
	if phi < 0 {
		phi += 2 * math.Pi
	}
	if phi >= 2*math.Pi {
		phi -= 2 * math.Pi
	}
	return phi
}

// Reconstructor clusters four-momenta into jets with radius r.
// Implementations must be deterministic and free of side effects.
type Reconstructor interface {
	Cluster(p4s []fmom.PxPyPzE, r float64) ([]Jet, error)
}

// AntiKt clusters with the anti-kt algorithm and E-scheme recombination.
type AntiKt struct{}

// Cluster returns the inclusive anti-kt jets of p4s. An empty input gives
// no jets.
func (AntiKt) Cluster(p4s []fmom.PxPyPzE, r float64) ([]Jet, error) {
	if len(p4s) == 0 {
		return nil, nil
	}

	particles := make([]fastjet.Jet, 0, len(p4s))
	for _, p := range p4s {
		particles = append(particles, fastjet.NewJet(p.Px(), p.Py(), p.Pz(), p.E()))
	}

	def := fastjet.NewJetDefinition(fastjet.AntiKtAlgorithm, r, fastjet.EScheme, fastjet.BestStrategy)
	cs, err := fastjet.NewClusterSequence(particles, def)
	if err != nil {
		return nil, fmt.Errorf("%w: R=%v: %v", ErrClustering, r, err)
	}

	inclusive, err := cs.InclusiveJets(0)
	if err != nil {
		return nil, fmt.Errorf("%w: R=%v: %v", ErrClustering, r, err)
	}

	jets := make([]Jet, 0, len(inclusive))
	for _, j := range inclusive {
		jets = append(jets, Jet{
			P4:           fmom.NewPxPyPzE(j.Px(), j.Py(), j.Pz(), j.E()),
			Constituents: len(j.Constituents()),
		})
	}
	return jets, nil
}

// Selector keeps jets with pt > MinPt and |y| <= MaxAbsRapidity.
type Selector struct {
	MinPt          float64
	MaxAbsRapidity float64
}

// Select returns the jets passing the selection, in their input order.
func (s Selector) Select(jets []Jet) []Jet {
	var out []Jet
	for _, j := range jets {
		if j.Pt() > s.MinPt && math.Abs(j.Rapidity()) <= s.MaxAbsRapidity {
			out = append(out, j)
		}
	}
	return out
}

func (s Selector) String() string {
	return fmt.Sprintf("pt > %v && |rap| <= %v", s.MinPt, s.MaxAbsRapidity)
}

// SortByPt sorts jets by decreasing pt. Ties keep their clustering order.
func SortByPt(jets []Jet) {
	sort.SliceStable(jets, func(i, j int) bool {
		return jets[i].Pt() > jets[j].Pt()
	})
}

// Find clusters p4s with radius r, orders the jets by decreasing pt and
// applies sel.
func Find(rec Reconstructor, p4s []fmom.PxPyPzE, r float64, sel Selector) ([]Jet, error) {
	jets, err := rec.Cluster(p4s, r)
	if err != nil {
		return nil, err
	}
	SortByPt(jets)
	return sel.Select(jets), nil
}
