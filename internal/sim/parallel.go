package sim

import (
	"context"
	"sync"

	"github.com/san-kum/bonsai/internal/growth"
	"github.com/san-kum/bonsai/internal/metrics"
)

// Ensemble grows one tree per seed in parallel. Every tree gets its own
// canvas, random source and metrics.
type Ensemble struct {
	cfg       Config
	numRuns   int
	seedStart uint64
	newCanvas func() growth.Canvas
}

func NewEnsemble(cfg Config, numRuns int, seedStart uint64, newCanvas func() growth.Canvas) *Ensemble {
	return &Ensemble{cfg: cfg, numRuns: numRuns, seedStart: seedStart, newCanvas: newCanvas}
}

func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	cfg := e.cfg
	cfg.Params.Live = false

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := cfg
			cfgCopy.Seed = e.seedStart + uint64(idx)

			g, err := New(e.newCanvas(), cfgCopy)
			if err != nil {
				errs[idx] = err
				return
			}
			for _, m := range metrics.Default() {
				g.AddMetric(m)
			}
			results[idx], errs[idx] = g.Generate(ctx)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
