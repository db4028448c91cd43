// Package hplots draws the analysis histograms with hplot and compares
// the outputs of two runs.
package hplots

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/decibelcooper/ttbarplot"
	"github.com/decibelcooper/ttbarplot/accum"
	"github.com/decibelcooper/ttbarplot/analysis"
)

var (
	// ErrBinning is returned when two histograms do not share a binning.
	ErrBinning = errors.New("incompatible binning")
	// ErrPlot is returned when a plot cannot be made or saved.
	ErrPlot = errors.New("plotting failed")
)

// Canvas size of every saved plot.
const (
	Width  = 6 * vg.Inch
	Height = 4 * vg.Inch
)

var palette = []color.Color{
	color.RGBA{A: 255},
	color.RGBA{R: 255, A: 255},
	color.RGBA{B: 255, A: 255},
	color.RGBA{G: 255, A: 255},
	color.RGBA{R: 255, B: 127, G: 127, A: 255},
}

// LogY reports whether the histogram called name is drawn with a
// logarithmic y axis.
func LogY(name string) bool {
	return name == analysis.HistChHadronPt || strings.HasPrefix(name, analysis.HistJetPt)
}

func newPlot(title, xlabel string, logy bool) (*plot.Plot, error) {
	p, err := plot.New()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPlot, err)
	}
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.X.Tick.Marker = ttbarplot.PreciseTicks{NSuggestedTicks: 5}
	if logy {
		p.Y.Scale = ttbarplot.LogScale{}
		p.Y.Tick.Marker = ttbarplot.LogTicks{}
	} else {
		p.Y.Tick.Marker = ttbarplot.PreciseTicks{NSuggestedTicks: 5}
	}
	return p, nil
}

// Render saves one PNG per histogram of view into dir and returns the
// written paths.
func Render(view *accum.View, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPlot, err)
	}

	var paths []string
	err := view.Walk(func(e *accum.Entry) error {
		p, err := newPlot(e.Layout.Title, e.Layout.Name, LogY(e.Layout.Name))
		if err != nil {
			return err
		}
		h := hplot.NewH1D(e.Hist)
		h.Infos.Style = hplot.HInfoSummary
		p.Add(h)

		out := filepath.Join(dir, e.Layout.Name+".png")
		if err := p.Save(Width, Height, out); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrPlot, out, err)
		}
		paths = append(paths, out)
		return nil
	})
	return paths, err
}

// Compare overlays hs, one color per histogram, labelled in the legend.
func Compare(title, xlabel string, logy bool, hs []*hbook.H1D, labels []string) (*plot.Plot, error) {
	if len(hs) != len(labels) {
		return nil, fmt.Errorf("%w: %d histograms, %d labels", ErrPlot, len(hs), len(labels))
	}
	p, err := newPlot(title, xlabel, logy)
	if err != nil {
		return nil, err
	}
	for i, hist := range hs {
		h := hplot.NewH1D(hist)
		h.LineStyle.Color = palette[i%len(palette)]
		p.Add(h)
		p.Legend.Add(labels[i], h)
	}
	return p, nil
}

// Ratio returns the bin-by-bin ratio num/den, e.g. the nuclear modification
// factor R_AA = AA/pp. Bins where den is empty are zero.
func Ratio(num, den *hbook.H1D) (*hbook.H1D, error) {
	n := num.Len()
	if n != den.Len() || num.XMin() != den.XMin() || num.XMax() != den.XMax() {
		return nil, fmt.Errorf("%w: [%v, %v) x %d vs [%v, %v) x %d", ErrBinning,
			num.XMin(), num.XMax(), n, den.XMin(), den.XMax(), den.Len())
	}

	ratio := hbook.NewH1D(n, num.XMin(), num.XMax())
	width := (num.XMax() - num.XMin()) / float64(n)
	for i := 0; i < n; i++ {
		_, a := num.XY(i)
		_, b := den.XY(i)
		if b == 0 {
			continue
		}
		ratio.Fill(num.XMin()+(float64(i)+0.5)*width, a/b)
	}
	return ratio, nil
}

// RatioPlot draws Ratio(num, den) with a dashed line at unity.
func RatioPlot(title, xlabel, ylabel string, num, den *hbook.H1D, label string) (*plot.Plot, error) {
	ratio, err := Ratio(num, den)
	if err != nil {
		return nil, err
	}
	p, err := Compare(title, xlabel, false, []*hbook.H1D{ratio}, []string{label})
	if err != nil {
		return nil, err
	}
	p.Y.Label.Text = ylabel

	unity := plotter.NewFunction(func(float64) float64 { return 1 })
	unity.Color = color.RGBA{B: 255, A: 255}
	unity.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(unity)
	return p, nil
}

// Save writes p to path.
func Save(p *plot.Plot, path string) error {
	if err := p.Save(Width, Height, path); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPlot, path, err)
	}
	return nil
}
