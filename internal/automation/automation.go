package automation

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/san-kum/bonsai/internal/config"
	"github.com/san-kum/bonsai/internal/metrics"
	"github.com/san-kum/bonsai/internal/sim"
	"github.com/san-kum/bonsai/internal/storage"
	"github.com/san-kum/bonsai/internal/viz"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted batch of trees.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep grows Count consecutive trees from one seed. Zero fields
// keep the preset's value.
type ScenarioStep struct {
	Preset     string   `yaml:"preset"`
	Seed       uint64   `yaml:"seed"`
	Life       int      `yaml:"life"`
	Multiplier int      `yaml:"multiplier"`
	Leaves     []string `yaml:"leaves"`
	Base       string   `yaml:"base"`
	Message    string   `yaml:"message"`
	Width      int      `yaml:"width"`
	Height     int      `yaml:"height"`
	Count      int      `yaml:"count"`
	SaveAs     string   `yaml:"save_as"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// Config resolves the step against its preset.
func (s ScenarioStep) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		p, err := config.GetPreset(s.Preset)
		if err != nil {
			return nil, err
		}
		cfg = p
	}
	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
	if s.Life != 0 {
		cfg.Life = s.Life
	}
	if s.Multiplier != 0 {
		cfg.Multiplier = s.Multiplier
	}
	if len(s.Leaves) > 0 {
		cfg.Leaves = s.Leaves
	}
	if s.Base != "" {
		cfg.Base = s.Base
	}
	if s.Message != "" {
		cfg.Message = s.Message
	}
	if s.Width != 0 {
		cfg.Width = s.Width
	}
	if s.Height != 0 {
		cfg.Height = s.Height
	}
	cfg.Live = false
	cfg.Infinite = false
	cfg.Screensaver = false
	return cfg, cfg.Validate()
}

// Grow draws the given generation of cfg's random stream onto a fresh
// scene without animation.
func Grow(ctx context.Context, cfg *config.Config, generation int, logger *log.Logger) (*viz.Grid, *sim.Result, error) {
	w, h := cfg.Width, cfg.Height
	if w <= 0 || h <= 0 {
		w, h = config.DefaultWidth, config.DefaultHeight
	}
	grid, region := viz.NewScene(w, h, cfg.Base)

	params := cfg.Params()
	params.Live = false
	opts := []sim.Option{}
	if logger != nil {
		opts = append(opts, sim.WithLogger(logger))
	}
	gen, err := sim.New(region, sim.Config{Params: params, Seed: cfg.Seed}, opts...)
	if err != nil {
		return nil, nil, err
	}
	for _, m := range metrics.Default() {
		gen.AddMetric(m)
	}
	if generation > 1 {
		if err := gen.Skip(ctx, generation-1); err != nil {
			return nil, nil, err
		}
	}
	res, err := gen.Generate(ctx)
	if err != nil {
		return nil, nil, err
	}
	return grid, res, nil
}

// Record describes a grown tree for the store.
func Record(cfg *config.Config, res *sim.Result) *storage.Record {
	return &storage.Record{
		Seed:       res.Seed,
		Generation: res.Generation,
		Branches:   res.Progress(),
		Counters:   res.Counters,
		Config:     *cfg,
		Metrics:    res.Metrics,
	}
}

// RunScenario grows and saves every tree of the scenario.
func RunScenario(ctx context.Context, scenario *Scenario, store *storage.Store, logger *log.Logger) ([]storage.Record, error) {
	if logger == nil {
		logger = log.Default()
	}
	var records []storage.Record

	for i, step := range scenario.Steps {
		cfg, err := step.Config()
		if err != nil {
			return records, fmt.Errorf("step %d: %w", i+1, err)
		}
		count := max(step.Count, 1)
		logger.Info("running step", "step", fmt.Sprintf("%d/%d", i+1, len(scenario.Steps)), "preset", step.Preset, "seed", cfg.Seed, "trees", count)

		for n := 1; n <= count; n++ {
			grid, res, err := Grow(ctx, cfg, n, logger)
			if err != nil {
				return records, fmt.Errorf("step %d tree %d: %w", i+1, n, err)
			}
			rec := Record(cfg, res)
			if step.SaveAs != "" {
				rec.ID = step.SaveAs
				if count > 1 {
					rec.ID = fmt.Sprintf("%s_%d", step.SaveAs, n)
				}
			}
			if _, err := store.Save(rec, grid.String()); err != nil {
				return records, fmt.Errorf("step %d save: %w", i+1, err)
			}
			records = append(records, *rec)
		}
	}

	return records, nil
}
