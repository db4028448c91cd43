package analysis

import (
	"strconv"
	"strings"

	"github.com/decibelcooper/ttbarplot/accum"
)

// Particle-level histogram names.
const (
	HistChHadronPt = "hChHadronPt"
	HistNLep       = "hNLep"
	HistLepPt      = "hLepPt"
	HistLepEta     = "hLepEta"
	HistLepPhi     = "hLepPhi"
	HistW2massLep  = "hW2massLep"
)

// Jet-level histogram name prefixes; the radius label is appended.
const (
	HistJetPt  = "hJetPt_R"
	HistJetEta = "hJetEta_R"
	HistJetPhi = "hJetPhi_R"
	HistNJet   = "hNJet_R"
)

// RadiusLabel formats a jet radius for histogram names: 0.4 -> "0.4",
// 1 -> "1.0".
func RadiusLabel(r float64) string {
	s := strconv.FormatFloat(r, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// JetHist returns the name of the jet histogram with prefix for radius r.
func JetHist(prefix string, r float64) string {
	return prefix + RadiusLabel(r)
}

// Layouts returns every histogram of the analysis, in booking order: the
// particle-level set followed by one jet set per radius.
func Layouts(radii []float64) []accum.Layout {
	ls := []accum.Layout{
		{Name: HistChHadronPt, Title: "charged hadron (1/pt) dN/dpt", Bins: 100, Min: 0, Max: 100},
		{Name: HistNLep, Title: "muon multiplicity", Bins: 10, Min: 0, Max: 10},
		{Name: HistLepPt, Title: "muon pt", Bins: 20, Min: 0, Max: 200},
		{Name: HistLepEta, Title: "muon eta", Bins: 50, Min: -10, Max: 10},
		{Name: HistLepPhi, Title: "muon phi", Bins: 50, Min: -4, Max: 4},
		{Name: HistW2massLep, Title: "leptonic W candidate mass", Bins: 50, Min: 60, Max: 100},
	}
	for _, r := range radii {
		label := RadiusLabel(r)
		ls = append(ls,
			accum.Layout{Name: HistJetPt + label, Title: "jet pt, R=" + label, Bins: 8, Min: 80, Max: 180},
			accum.Layout{Name: HistJetEta + label, Title: "jet eta, R=" + label, Bins: 50, Min: -10, Max: 10},
			accum.Layout{Name: HistJetPhi + label, Title: "jet phi, R=" + label, Bins: 50, Min: -1, Max: 7},
			accum.Layout{Name: HistNJet + label, Title: "jet multiplicity, R=" + label, Bins: 10, Min: 0, Max: 10},
		)
	}
	return ls
}
