package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/pkg/profile"

	"github.com/decibelcooper/ttbarplot"
	"github.com/decibelcooper/ttbarplot/accum"
	"github.com/decibelcooper/ttbarplot/analysis"
	"github.com/decibelcooper/ttbarplot/config"
	"github.com/decibelcooper/ttbarplot/driver"
	"github.com/decibelcooper/ttbarplot/hplots"
	"github.com/decibelcooper/ttbarplot/input"
	"github.com/decibelcooper/ttbarplot/logger"
	"github.com/decibelcooper/ttbarplot/metrics"
)

func printUsage(fs *flag.FlagSet) func() {
	return func() {
		fmt.Fprintf(fs.Output(), `Usage: `+fs.Name()+` [options] <input-file>

Analyzes JETSCAPE ttbar events (ascii, proio or LCIO) and writes the
histograms in YODA format.

options:
`,
		)
		fs.PrintDefaults()
	}
}

type cliOptions struct {
	config     string
	format     string
	output     string
	plots      string
	metrics    string
	workers    int
	jetR       ttbarplot.FloatArrayFlags
	progress   int
	profile    bool
	profileDir string
}

func main() {
	os.Exit(realMain(os.Args[0], os.Args[1:], os.Stderr))
}

// realMain runs the command and returns its exit code. Deferred cleanup,
// such as flushing the CPU profile, runs before the process exits.
func realMain(name string, args []string, stderr io.Writer) int {
	var opts cliOptions
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.config, "c", "", "YAML configuration file (default $TTBAR_CONFIG)")
	fs.StringVar(&opts.format, "format", "", "input format: ascii, proio or lcio (default from extension)")
	fs.StringVar(&opts.output, "o", "AnalysisResults.yoda", "output YODA file")
	fs.StringVar(&opts.plots, "plots", "", "directory to draw every histogram into")
	fs.StringVar(&opts.metrics, "metrics", "", "write run metrics to this textfile")
	fs.IntVar(&opts.workers, "workers", 0, "number of analysis goroutines (overrides the configuration)")
	fs.IntVar(&opts.progress, "progress", 1000, "log progress every n events")
	fs.Var(&opts.jetR, "jetR", "jet radius, may be repeated (overrides the configuration)")
	fs.BoolVar(&opts.profile, "profile", false, "write a CPU profile")
	fs.StringVar(&opts.profileDir, "profile-dir", "", "directory of the CPU profile (default a temporary directory)")
	fs.Usage = printUsage(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		fmt.Fprintln(stderr, "Invalid arguments")
		return 2
	}

	if opts.profile {
		popts := []func(*profile.Profile){profile.CPUProfile}
		if opts.profileDir != "" {
			popts = append(popts, profile.ProfilePath(opts.profileDir))
		}
		defer profile.Start(popts...).Stop()
	}

	logger.Init(stderr)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, fs.Arg(0), &opts); err != nil {
		logger.Get().Error(ctx, "jetscape_ttbar failed", logger.Error(err))
		return 1
	}
	return 0
}

func run(ctx context.Context, path string, opts *cliOptions) error {
	cfg, err := config.Load(ctx, opts.config)
	if err != nil {
		return err
	}
	if opts.jetR.IsSet() {
		cfg.JetR = opts.jetR.Array
	}
	if opts.workers > 0 {
		cfg.Workers = opts.workers
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		return err
	}
	if cfg.DebugLevel > 0 {
		logger.SetLevel(slog.LevelDebug)
	}

	runID := uuid.NewString()
	lg := logger.Named("jetscape_ttbar").With(logger.String("run", runID))
	lg.Info(ctx, "configuration", logger.String("config", cfg.String()), logger.String("input", path))

	an, err := analysis.New(cfg, nil, analysis.WithLogger(lg.Named("analysis")))
	if err != nil {
		return err
	}
	bank := accum.NewBank(accum.WithAnnotation("run", runID))
	if err := an.Book(bank); err != nil {
		return err
	}

	src, err := input.Open(path, opts.format)
	if err != nil {
		return err
	}
	defer src.Close()

	var m *metrics.Recorder
	if opts.metrics != "" {
		m = metrics.New(metrics.WithRunID(runID))
	}

	stats, err := driver.Run(ctx, src, an, bank,
		driver.WithMaxEvents(cfg.MaxEvents),
		driver.WithWorkers(cfg.Workers),
		driver.WithProgress(opts.progress),
		driver.WithLogger(lg.Named("driver")),
		driver.WithMetrics(m),
	)
	if err != nil {
		return err
	}

	view, err := bank.Finalize()
	if err != nil {
		return err
	}
	if err := writeYODA(opts.output, view); err != nil {
		return err
	}
	lg.Info(ctx, "histograms written",
		logger.String("output", opts.output),
		logger.Int("histograms", view.Len()),
		logger.Int("events", stats.Events),
	)

	if opts.plots != "" {
		paths, err := hplots.Render(view, opts.plots)
		if err != nil {
			return err
		}
		lg.Info(ctx, "plots written", logger.String("dir", opts.plots), logger.Int("plots", len(paths)))
	}

	return m.WriteTextfile(opts.metrics)
}

func writeYODA(path string, view *accum.View) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %q: %w", path, err)
	}
	if err := view.WriteYODA(f); err != nil {
		f.Close()
		return fmt.Errorf("could not write %q: %w", path, err)
	}
	return f.Close()
}
