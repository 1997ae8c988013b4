package palette

import (
	"context"

	"github.com/bodgit/texconv/internal/pipeline"
	"github.com/bodgit/texconv/pixel"
)

// Colors are handed to workers in spans of this many pixels
const chunkSize = 4096

type span struct {
	start, end int
}

func (m *Matcher) spans(ctx context.Context, n int) (<-chan span, <-chan error) {
	out := make(chan span)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		for start := 0; start < n; start += chunkSize {
			select {
			case out <- span{start, min(start+chunkSize, n)}:
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
	}()
	return out, errc
}

func (m *Matcher) worker(ctx context.Context, in <-chan span, dst []int, colors []pixel.Color) <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for s := range in {
			// Each span is a disjoint slice of dst so no locking is needed
			if err := m.MatchInto(dst[s.start:s.end], colors[s.start:s.end]); err != nil {
				errc <- err
				return
			}
			if err := ctx.Err(); err != nil {
				errc <- err
				return
			}
		}
	}()
	return errc
}

// MatchParallel is like MatchInto but spreads colors across up to workers
// goroutines. With workers less than two it matches on the calling
// goroutine. The result is identical to sequential matching.
func (m *Matcher) MatchParallel(ctx context.Context, colors []pixel.Color, workers int) ([]int, error) {
	indices := make([]int, len(colors))
	if workers < 2 || len(colors) <= chunkSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := m.MatchInto(indices, colors); err != nil {
			return nil, err
		}
		return indices, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	spans, errc := m.spans(ctx, len(colors))
	errcList := []<-chan error{errc}
	for i := 0; i < workers; i++ {
		errcList = append(errcList, m.worker(ctx, spans, indices, colors))
	}

	if err := pipeline.Wait(cancel, errcList...); err != nil {
		return nil, err
	}
	return indices, nil
}
