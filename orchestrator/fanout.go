// ABOUTME: This file fans work out over independent items with bounded concurrency
// ABOUTME: Used for dependency probes where one slow item must not hide the rest
package orchestrator

import (
	"context"
	"sync"
)

// Outcome pairs one item's result with the error it produced.
type Outcome[T any] struct {
	Value T
	Err   error
}

// FanOut applies work to every item using at most width goroutines and
// returns the outcomes in input order. Failures stay per-item; once the
// context is cancelled, items not yet started carry ctx.Err() instead of
// being silently dropped.
func FanOut[In, Out any](ctx context.Context, width int, items []In, work func(ctx context.Context, item In) (Out, error)) []Outcome[Out] {
	if len(items) == 0 {
		return nil
	}
	if width < 1 {
		width = 1
	}
	if width > len(items) {
		width = len(items)
	}

	outcomes := make([]Outcome[Out], len(items))
	next := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < width; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range next {
				if err := ctx.Err(); err != nil {
					outcomes[i].Err = err
					continue
				}
				out, err := work(ctx, items[i])
				outcomes[i] = Outcome[Out]{Value: out, Err: err}
			}
		}()
	}

	for i := range items {
		next <- i
	}
	close(next)
	wg.Wait()

	return outcomes
}
