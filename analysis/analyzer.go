// Package analysis fills the ttbar histograms of one event at a time:
// charged-hadron and muon spectra, leptonic W candidate masses and jet
// kinematics for every configured jet radius.
package analysis

import (
	"context"
	"fmt"

	"go-hep.org/x/hep/fmom"

	"github.com/decibelcooper/ttbarplot/accum"
	"github.com/decibelcooper/ttbarplot/config"
	"github.com/decibelcooper/ttbarplot/event"
	"github.com/decibelcooper/ttbarplot/jet"
	"github.com/decibelcooper/ttbarplot/logger"
)

// MaxJetAbsRapidity is the |y| acceptance of the jet selector.
const MaxJetAbsRapidity = 10.0

// Summary counts what one event contributed.
type Summary struct {
	Hadrons        int
	ChargedHadrons int
	Leptons        int
	Muons          int
	WCandidates    int
	Jets           []int // selected jets, one entry per radius
}

// Analyzer is the per-event analysis. It holds no per-event state and is
// safe for concurrent use as long as each goroutine fills its own Filler.
type Analyzer struct {
	minTrackPt float64
	radii      []float64
	labels     []string
	selector   jet.Selector
	evtWeight  float64 // 1/n_event_max
	debug      int

	rec jet.Reconstructor
	log logger.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the logger used for debug output.
func WithLogger(l logger.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.log = l
		}
	}
}

// New returns an Analyzer for cfg, clustering jets with rec.
func New(cfg *config.Config, rec jet.Reconstructor, opts ...Option) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rec == nil {
		rec = jet.AntiKt{}
	}

	a := &Analyzer{
		minTrackPt: cfg.MinTrackPt,
		radii:      cfg.JetRadii(),
		selector: jet.Selector{
			MinPt:          cfg.MinJetPt,
			MaxAbsRapidity: MaxJetAbsRapidity,
		},
		evtWeight: 1 / float64(cfg.MaxEvents),
		debug:     cfg.DebugLevel,
		rec:       rec,
		log:       logger.Nop(),
	}
	for _, r := range a.radii {
		a.labels = append(a.labels, RadiusLabel(r))
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Layouts returns the histograms this analyzer fills.
func (a *Analyzer) Layouts() []accum.Layout { return Layouts(a.radii) }

// Book books every histogram of the analysis into bank.
func (a *Analyzer) Book(bank *accum.Bank) error {
	return bank.BookAll(a.Layouts())
}

// Analyze fills f with the contribution of ev.
// Clustering failures are returned; there is no other error path.
func (a *Analyzer) Analyze(ctx context.Context, ev event.Event, f accum.Filler) (Summary, error) {
	hadrons := ev.Hadrons(a.minTrackPt)
	leptons := ev.Leptons(a.minTrackPt)

	s := Summary{
		Hadrons: len(hadrons),
		Leptons: len(leptons),
		Jets:    make([]int, len(a.radii)),
	}
	s.ChargedHadrons = a.fillHadrons(hadrons, f)
	s.Muons, s.WCandidates = a.fillLeptons(leptons, f)

	p4s := make([]fmom.PxPyPzE, len(hadrons))
	for i, h := range hadrons {
		p4s[i] = h.P4
	}

	for i, r := range a.radii {
		if a.debug > 0 {
			a.log.Debug(ctx, "jet finding",
				logger.Int("event", ev.Number),
				logger.String("definition", fmt.Sprintf("anti-kt R=%s E-scheme", a.labels[i])),
				logger.String("selector", a.selector.String()),
			)
		}

		jets, err := jet.Find(a.rec, p4s, r, a.selector)
		if err != nil {
			return s, fmt.Errorf("event %d: %w", ev.Number, err)
		}
		a.fillJets(jets, a.labels[i], f)
		s.Jets[i] = len(jets)
	}
	return s, nil
}

// fillHadrons fills the charged hadron spectrum weighted by 1/pt, so the
// histogram directly holds (1/pt) dN/dpt.
func (a *Analyzer) fillHadrons(hadrons []event.Particle, f accum.Filler) int {
	n := 0
	for _, h := range hadrons {
		if !h.IsChargedHadron() {
			continue
		}
		pt := h.Pt()
		f.Fill(HistChHadronPt, pt, 1/pt)
		n++
	}
	return n
}

// fillLeptons fills the muon histograms and the W candidate masses. It
// returns the number of muons and of W masses filled.
func (a *Analyzer) fillLeptons(leptons []event.Particle, f accum.Filler) (int, int) {
	var (
		nmu   int
		cands wCandidates
	)
	for _, l := range leptons {
		if l.IsMuon() {
			nmu++
			f.Fill(HistLepPt, l.Pt(), a.evtWeight)
			f.Fill(HistLepEta, l.Eta(), 1)
			f.Fill(HistLepPhi, l.Phi(), 1)
		}
		cands.offer(l)
	}
	f.Fill(HistNLep, float64(nmu), 1)

	masses := cands.masses()
	for _, m := range masses {
		f.Fill(HistW2massLep, m, 1)
	}
	return nmu, len(masses)
}

// fillJets fills the jet histograms of one radius. jets are already
// selected and ordered by decreasing pt.
func (a *Analyzer) fillJets(jets []jet.Jet, label string, f accum.Filler) {
	for _, j := range jets {
		f.Fill(HistJetPt+label, j.Pt(), a.evtWeight)
		f.Fill(HistJetEta+label, j.Eta(), 1)
		f.Fill(HistJetPhi+label, j.Phi(), 1)
	}
	f.Fill(HistNJet+label, float64(len(jets)), 1)
}

// Radii returns the jet radii, in booking order.
func (a *Analyzer) Radii() []float64 {
	out := make([]float64, len(a.radii))
	copy(out, a.radii)
	return out
}

// RadiusLabels returns the histogram labels of the jet radii.
func (a *Analyzer) RadiusLabels() []string {
	out := make([]string, len(a.labels))
	copy(out, a.labels)
	return out
}
