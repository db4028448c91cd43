package analysis

import (
	"go-hep.org/x/hep/fmom"

	"github.com/decibelcooper/ttbarplot/event"
)

// WCandidateMinPt is the pt a lepton or neutrino must exceed to become a W
// decay candidate. The same threshold applies to all four species.
const WCandidateMinPt = 20.0

// slot holds the hardest particle of one species seen so far in an event.
type slot struct {
	ok bool
	pt float64
	p4 fmom.PxPyPzE
}

func (s *slot) offer(p event.Particle) {
	pt := p.Pt()
	if !(pt > WCandidateMinPt) {
		return
	}
	if s.ok && !(pt > s.pt) {
		return
	}
	s.ok, s.pt, s.p4 = true, pt, p.P4
}

// wCandidates tracks, within one event, the hardest mu-, anti-nu_mu, mu+
// and nu_mu. Every slot starts empty.
type wCandidates struct {
	mu      slot // 13
	nuMuBar slot // -14
	muBar   slot // -13
	nuMu    slot // 14
}

func (w *wCandidates) offer(p event.Particle) {
	switch p.ID {
	case event.PDGMuon:
		w.mu.offer(p)
	case -event.PDGNuMu:
		w.nuMuBar.offer(p)
	case -event.PDGMuon:
		w.muBar.offer(p)
	case event.PDGNuMu:
		w.nuMu.offer(p)
	}
}

// masses returns the invariant masses of the W- (mu- anti-nu_mu) and
// W+ (mu+ nu_mu) candidates whose two slots are both filled. A pair with
// exactly zero mass, such as two collinear massless particles, gives no
// candidate.
func (w *wCandidates) masses() []float64 {
	var ms []float64
	if w.mu.ok && w.nuMuBar.ok {
		if m := event.InvariantMass(w.mu.p4, w.nuMuBar.p4); m != 0 {
			ms = append(ms, m)
		}
	}
	if w.muBar.ok && w.nuMu.ok {
		if m := event.InvariantMass(w.muBar.p4, w.nuMu.p4); m != 0 {
			ms = append(ms, m)
		}
	}
	return ms
}
