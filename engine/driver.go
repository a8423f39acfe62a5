package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// ProgressSink receives lifecycle and per-result progress notices from the
// Driver. It is a small capability the driver composes — never read from by
// the core engine beyond calling these methods — so a headless run can pass
// a no-op implementation. Rendering the bar itself is deliberately out of
// this package's scope (see report.TerminalSink for the concrete default).
type ProgressSink interface {
	Start(total int)
	Increment(rate float64)
	Finding(r Result)
	Stop()
}

// ResultsSink receives the Aggregator's final ordered findings. Writing
// them out to disk in any particular format is out of this package's scope
// (see report.NewFileSink for concrete writers).
type ResultsSink interface {
	Write(results []Result) error
}

// Run owns the full lifecycle of one scan: it starts the worker pool,
// consumes the result stream, classifies and aggregates reportable
// results, honors the early-exit policy, and hands the final ordered
// findings to the results sink.
//
// Run does not itself know how to dispatch an HTTP or DNS probe — that is
// Pool's job. Run is wired to a *Pool by the caller (cmd/fathom), which is
// why Pool is a parameter rather than embedded here: the Driver is the
// lifecycle owner, the Pool is the dispatch mechanism.
func Run(ctx context.Context, pool *Pool, probes []Probe, classifier *ClassifierConfig, exitOnConnErr bool, progress ProgressSink, results ResultsSink, logger *slog.Logger) ([]Result, error) {
	runID := uuid.New().String()
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("run_id", runID)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	probeCh := make(chan Probe, threadsOrDefault(pool.Threads)*2)
	go func() {
		defer close(probeCh)
		for _, p := range probes {
			select {
			case probeCh <- p:
			case <-ctx.Done():
				return
			}
		}
	}()

	resultCh := pool.Run(ctx, probeCh)

	agg := NewAggregator()
	if progress != nil {
		progress.Start(len(probes))
	}

	start := time.Now()
	var received int
	firstResult := true

loop:
	for {
		select {
		case r, ok := <-resultCh:
			if !ok {
				// Clean shutdown path: the pool drained and closed before
				// `received == total` because the caller's context (e.g. a
				// user interrupt) was cancelled.
				break loop
			}
			received++

			if r.IsError() {
				logger.Warn("probe failed", "mode", r.Mode, "url", r.URL, "domain", r.Domain, "err", r.Err, "kind", r.ErrKind)
				if firstResult || exitOnConnErr {
					logger.Warn("exiting early after a connection error", "received", received)
					cancel()
					if progress != nil {
						progress.Stop()
					}
					if results != nil {
						if err := results.Write(agg.Results()); err != nil {
							logger.Error("writing results", "err", NewOutputError(err))
						}
					}
					return agg.Results(), nil
				}
			} else if Classify(r.Mode, &r, classifier) {
				if agg.Add(r) {
					if progress != nil {
						progress.Finding(r)
					}
				}
			}
			firstResult = false

			if progress != nil {
				elapsed := time.Since(start).Seconds()
				if elapsed < 1 {
					elapsed = 1
				}
				progress.Increment(float64(received) / elapsed)
			}

			if received >= len(probes) {
				break loop
			}
		case <-ctx.Done():
			break loop
		}
	}

	if progress != nil {
		progress.Stop()
	}

	if results != nil {
		if err := results.Write(agg.Results()); err != nil {
			logger.Error("writing results", "err", NewOutputError(err))
		}
	}

	return agg.Results(), nil
}

func threadsOrDefault(n int) int {
	if n <= 0 {
		return 1
	}
	return n
}
