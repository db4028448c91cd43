package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"

	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hbook/yodacnv"
	"gonum.org/v1/plot"

	"github.com/decibelcooper/ttbarplot/analysis"
	"github.com/decibelcooper/ttbarplot/hplots"
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <pp.yoda> <AA.yoda>

Overlays the pp and AA histograms of two jetscape_ttbar runs and draws the
jet nuclear modification factor R_AA.

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	var (
		outDir  = flag.String("o", "plots", "output directory")
		radius  = flag.Float64("R", 0.4, "jet radius to compare")
		ppLabel = flag.String("pp", "pp", "legend label of the first file")
		aaLabel = flag.String("aa", "PbPb", "legend label of the second file")
	)
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() != 2 {
		printUsage()
		log.Fatal("Invalid arguments")
	}

	pp := readHists(flag.Arg(0))
	aa := readHists(flag.Arg(1))

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatal(err)
	}

	jetPt := analysis.JetHist(analysis.HistJetPt, *radius)
	for _, name := range []string{
		analysis.JetHist(analysis.HistNJet, *radius),
		jetPt,
		analysis.HistLepPt,
	} {
		p, err := hplots.Compare(name, name, hplots.LogY(name),
			[]*hbook.H1D{lookup(pp, name, flag.Arg(0)), lookup(aa, name, flag.Arg(1))},
			[]string{*ppLabel, *aaLabel},
		)
		if err != nil {
			log.Fatal(err)
		}
		save(p, filepath.Join(*outDir, name+".png"))
	}

	label := *aaLabel + "/" + *ppLabel
	rlabel := analysis.RadiusLabel(*radius)
	drawRAA(pp, aa, jetPt, "jet R_AA, R="+rlabel, "jet pt (GeV)", "R_AA (jet)", label,
		filepath.Join(*outDir, "RAA_R"+rlabel+".png"))
	drawRAA(pp, aa, analysis.HistLepPt, "muon R_AA", "muon pt (GeV)", "R_AA (lep)", label,
		filepath.Join(*outDir, "RAA_Lep.png"))
}

// drawRAA saves the AA/pp ratio of the histogram called name.
func drawRAA(pp, aa map[string]*hbook.H1D, name, title, xlabel, ylabel, label, out string) {
	p, err := hplots.RatioPlot(title, xlabel, ylabel,
		lookup(aa, name, flag.Arg(1)), lookup(pp, name, flag.Arg(0)), label)
	if err != nil {
		log.Fatal(err)
	}
	save(p, out)
}

// readHists returns the 1D histograms of a YODA file by base name.
func readHists(filename string) map[string]*hbook.H1D {
	f, err := os.Open(filename)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	objs, err := yodacnv.Read(f)
	if err != nil {
		log.Fatalf("could not read %q: %v", filename, err)
	}

	hists := make(map[string]*hbook.H1D)
	for _, obj := range objs {
		if h, ok := obj.(*hbook.H1D); ok {
			hists[path.Base(h.Name())] = h
		}
	}
	return hists
}

func lookup(hists map[string]*hbook.H1D, name, filename string) *hbook.H1D {
	h, ok := hists[name]
	if !ok {
		log.Fatalf("no histogram %q in %q", name, filename)
	}
	return h
}

func save(p *plot.Plot, out string) {
	if err := hplots.Save(p, out); err != nil {
		log.Fatal(err)
	}
}
