package automation

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/san-kum/bonsai/internal/config"
	"github.com/san-kum/bonsai/internal/growth"
	"github.com/san-kum/bonsai/internal/sim"
	"github.com/san-kum/bonsai/internal/viz"
)

// ParameterSweep grows Trees trees for every value of one integer
// parameter between Min and Max.
type ParameterSweep struct {
	Base  *config.Config
	Param string // "life" or "multiplier"
	Min   int
	Max   int
	Trees int
}

// SweepResult averages the trees grown at one parameter value.
type SweepResult struct {
	Value    int
	Branches float64
	Shoots   float64
	Metrics  map[string]float64
}

func RunSweep(ctx context.Context, sweep *ParameterSweep, logger *log.Logger) ([]SweepResult, error) {
	if sweep.Min > sweep.Max {
		return nil, fmt.Errorf("%w: sweep range %d..%d", config.ErrInvalid, sweep.Min, sweep.Max)
	}
	if logger == nil {
		logger = log.Default()
	}
	trees := max(sweep.Trees, 1)
	results := make([]SweepResult, 0, sweep.Max-sweep.Min+1)

	for v := sweep.Min; v <= sweep.Max; v++ {
		cfg := *sweep.Base
		switch sweep.Param {
		case "life":
			cfg.Life = v
		case "multiplier":
			cfg.Multiplier = v
		default:
			return nil, fmt.Errorf("%w: cannot sweep %q", config.ErrInvalid, sweep.Param)
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}

		w, h := cfg.Width, cfg.Height
		if w <= 0 || h <= 0 {
			w, h = config.DefaultWidth, config.DefaultHeight
		}
		params := cfg.Params()
		params.Live = false
		ens := sim.NewEnsemble(sim.Config{Params: params, Seed: cfg.Seed}, trees, cfg.Seed, func() growth.Canvas {
			_, region := viz.NewScene(w, h, cfg.Base)
			return region
		})
		runs, err := ens.Run(ctx)
		if err != nil {
			return nil, err
		}

		res := SweepResult{Value: v, Metrics: map[string]float64{}}
		for _, r := range runs {
			res.Branches += float64(r.Counters.Branches)
			res.Shoots += float64(r.Counters.Shoots)
			for k, m := range r.Metrics {
				res.Metrics[k] += m
			}
		}
		n := float64(len(runs))
		res.Branches /= n
		res.Shoots /= n
		for k := range res.Metrics {
			res.Metrics[k] /= n
		}
		results = append(results, res)

		logger.Debug("sweep point", sweep.Param, v, "branches", res.Branches)
	}

	return results, nil
}
