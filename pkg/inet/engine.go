package inet

import (
	"context"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Reduce drives the net to normal form using workers concurrent goroutines
// racing over the shared redex queue (§5: "a parallel worker-pool
// reduction driver"). Each worker repeatedly claims a redex, applies its
// rule (which may itself enqueue new redexes), and loops until the queue
// is permanently empty. Termination is detected with a busy counter:
// finding the queue empty is only a real halt if no worker is currently
// mid-rule-application, since such a worker may be about to push more
// work.
//
// maxSteps, if non-zero, is a cooperative step budget shared across all
// workers: once reached, Reduce halts and returns a *Error wrapping
// KindStepLimitReached — a clean, expected exit condition, not a failure.
func (n *Net) Reduce(ctx context.Context, workers int, maxSteps uint64) (Statistics, error) {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	g, ctx := errgroup.WithContext(ctx)
	var applied atomic.Uint64

	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}

				// busy is held up across the pop itself, not just the rule
				// application that follows: otherwise a peer could observe
				// queue-empty and busy==0 in the gap between this worker's
				// successful pop and its busy.Add(1), and exit while a
				// redex is still about to be applied.
				n.busy.Add(1)
				r, ok := n.queue.pop()
				if !ok {
					n.busy.Add(-1)
					if n.busy.Load() == 0 {
						return nil
					}
					runtime.Gosched()
					continue
				}

				err := n.applyRedex(r)
				n.busy.Add(-1)
				if err != nil {
					return err
				}

				if maxSteps != 0 && applied.Add(1) >= maxSteps {
					return &Error{Kind: KindStepLimitReached, Stats: n.stats.snapshot()}
				}
			}
		})
	}

	err := g.Wait()
	return n.stats.snapshot(), err
}

// Evaluate reduces to normal form with GOMAXPROCS workers and no step
// limit. It is the common-case entry point; Reduce exposes the full
// tuning surface for callers that need bounded or sequential evaluation.
func (n *Net) Evaluate(ctx context.Context) (Statistics, error) {
	return n.Reduce(ctx, 0, 0)
}
