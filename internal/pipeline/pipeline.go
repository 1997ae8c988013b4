// Package pipeline joins the error channels of a fan-out of goroutines.
package pipeline

import (
	"context"
	"sync"
)

// Merge returns a channel that receives every error sent on cs and is
// closed once all of cs are closed.
func Merge(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			defer wg.Done()
			for err := range c {
				out <- err
			}
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Wait drains every stage and returns the first non-nil error. cancel is
// called as soon as an error arrives so the remaining stages stop early; it
// may be nil.
func Wait(cancel context.CancelFunc, cs ...<-chan error) error {
	var first error
	for err := range Merge(cs...) {
		if err != nil && first == nil {
			first = err
			if cancel != nil {
				cancel()
			}
		}
	}
	return first
}
