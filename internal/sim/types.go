package sim

import (
	"fmt"
	"time"

	"github.com/san-kum/bonsai/internal/growth"
)

type Config struct {
	Params growth.Params
	Seed   uint64
}

type Result struct {
	Generation int
	Seed       uint64
	Counters   growth.Counters
	// HurriedAt is the branch count when the generation was told to finish
	// without pausing, 0 if it never was.
	HurriedAt int
	Metrics   map[string]float64
	Elapsed   time.Duration
}

// Progress is the branch count a saved tree should be replayed to.
func (r *Result) Progress() int {
	if r.HurriedAt > 0 {
		return r.HurriedAt
	}
	return r.Counters.Branches
}

type GenerationError struct {
	Generation int
	Seed       uint64
	Wrapped    error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation %d (seed %d): %v", e.Generation, e.Seed, e.Wrapped)
}

func (e *GenerationError) Unwrap() error { return e.Wrapped }
