// Package driver runs the event loop: it reads events from a source,
// analyzes them, possibly on several goroutines, and fills the bank in
// input order.
package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/decibelcooper/ttbarplot/accum"
	"github.com/decibelcooper/ttbarplot/analysis"
	"github.com/decibelcooper/ttbarplot/event"
	"github.com/decibelcooper/ttbarplot/input"
	"github.com/decibelcooper/ttbarplot/logger"
)

// ErrInput is returned when the event source fails.
var ErrInput = errors.New("reading events failed")

// Analyzer analyzes one event into a Filler.
type Analyzer interface {
	Analyze(ctx context.Context, ev event.Event, f accum.Filler) (analysis.Summary, error)
	RadiusLabels() []string
}

// Stats describes a finished run.
type Stats struct {
	Events   int
	Duration time.Duration
}

// Run analyzes the events of src into bank. The bank receives the same
// fills in the same order whatever the number of workers.
func Run(ctx context.Context, src input.Source, an Analyzer, bank *accum.Bank, opts ...Option) (Stats, error) {
	o := options{
		workers:  defaultWorkers,
		progress: defaultProgress,
		logger:   logger.Named("driver"),
	}
	for _, opt := range opts {
		opt(&o)
	}

	r := &runner{
		opts:   o,
		an:     an,
		bank:   bank,
		labels: an.RadiusLabels(),
		start:  time.Now(),
	}

	var err error
	if o.workers == 1 {
		err = r.sequential(ctx, src)
	} else {
		err = r.parallel(ctx, src)
	}

	stats := Stats{Events: r.done, Duration: time.Since(r.start)}
	if err != nil {
		o.logger.Error(ctx, "run aborted", logger.Int("events", r.done), logger.Error(err))
		return stats, err
	}
	o.logger.Info(ctx, "run finished",
		logger.Int("events", stats.Events),
		logger.String("duration", stats.Duration.String()),
	)
	return stats, nil
}

type runner struct {
	opts   options
	an     Analyzer
	bank   *accum.Bank
	labels []string
	start  time.Time
	done   int
}

// read calls fn for every event of src, up to the event limit.
func (r *runner) read(ctx context.Context, src input.Source, fn func(seq int, ev event.Event) error) error {
	for seq := 0; r.opts.maxEvents == 0 || seq < r.opts.maxEvents; seq++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		ev, err := src.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInput, err)
		}
		if err := fn(seq, ev); err != nil {
			return err
		}
	}
	return nil
}

func (r *runner) sequential(ctx context.Context, src input.Source) error {
	return r.read(ctx, src, func(_ int, ev event.Event) error {
		start := time.Now()
		s, err := r.an.Analyze(ctx, ev, r.bank)
		if err != nil {
			return err
		}
		r.record(ctx, s, time.Since(start))
		return nil
	})
}

type job struct {
	seq int
	ev  event.Event
}

type result struct {
	seq     int
	fills   *accum.Recorder
	summary analysis.Summary
	elapsed time.Duration
}

// parallel fans events out to workers that record their fills. The
// recorded fills are replayed into the bank strictly by sequence number.
func (r *runner) parallel(ctx context.Context, src input.Source) error {
	g, gctx := errgroup.WithContext(ctx)
	jobs := make(chan job, r.opts.workers)
	results := make(chan result, r.opts.workers)

	g.Go(func() error {
		defer close(jobs)
		return r.read(gctx, src, func(seq int, ev event.Event) error {
			select {
			case jobs <- job{seq: seq, ev: ev}:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	})

	var wg sync.WaitGroup
	for i := 0; i < r.opts.workers; i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			for j := range jobs {
				start := time.Now()
				rec := &accum.Recorder{}
				s, err := r.an.Analyze(gctx, j.ev, rec)
				if err != nil {
					return err
				}
				select {
				case results <- result{seq: j.seq, fills: rec, summary: s, elapsed: time.Since(start)}:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	pending := make(map[int]result)
	next := 0
	for res := range results {
		pending[res.seq] = res
		for {
			p, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			p.fills.Replay(r.bank)
			r.record(ctx, p.summary, p.elapsed)
			next++
		}
	}
	return g.Wait()
}

func (r *runner) record(ctx context.Context, s analysis.Summary, d time.Duration) {
	r.done++

	m := r.opts.metrics
	m.EventProcessed(d)
	m.Particles("hadron", s.Hadrons)
	m.Particles("charged_hadron", s.ChargedHadrons)
	m.Particles("lepton", s.Leptons)
	m.Particles("muon", s.Muons)
	m.WCandidates(s.WCandidates)
	for i, n := range s.Jets {
		if i < len(r.labels) {
			m.Jets(r.labels[i], n)
		}
	}

	if r.done%r.opts.progress == 0 {
		r.opts.logger.Info(ctx, "progress",
			logger.Int("events", r.done),
			logger.String("elapsed", time.Since(r.start).String()),
		)
	}
}
