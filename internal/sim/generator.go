package sim

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/bonsai/internal/growth"
	"github.com/san-kum/bonsai/internal/metrics"
)

// Generator drives the growth engine one tree at a time. The random stream
// is seeded once and carried from tree to tree.
type Generator struct {
	canvas     growth.Canvas
	cfg        Config
	rng        *growth.Rand
	engine     *growth.Engine
	metrics    []metrics.Metric
	logger     *log.Logger
	generation int
}

type Option func(*Generator)

func WithLogger(l *log.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// WithSleep replaces the live-mode pause, mostly for tests.
func WithSleep(fn func(time.Duration)) Option {
	return func(g *Generator) { g.engine.Sleep = fn }
}

func New(canvas growth.Canvas, cfg Config, opts ...Option) (*Generator, error) {
	if err := cfg.Params.Validate(); err != nil {
		return nil, err
	}
	g := &Generator{
		canvas: canvas,
		cfg:    cfg,
		rng:    growth.NewRand(cfg.Seed),
		logger: log.New(io.Discard),
	}
	g.engine = growth.NewEngine(canvas, g.rng, cfg.Params)
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

func (g *Generator) AddMetric(m metrics.Metric) {
	g.metrics = append(g.metrics, m)
	g.engine.AddObserver(m)
}

func (g *Generator) AddObserver(o growth.Observer) { g.engine.AddObserver(o) }

// Hurry lets the running generation finish without live pauses. Safe to call
// from another goroutine.
func (g *Generator) Hurry() { g.engine.Hurry() }

func (g *Generator) Generation() int { return g.generation }

func (g *Generator) Seed() uint64 { return g.cfg.Seed }

// Skip grows n trees onto a blank canvas of the same size without pausing,
// advancing the random stream as if they had been drawn.
func (g *Generator) Skip(ctx context.Context, n int) error {
	maxX, maxY := g.canvas.Bounds()
	p := g.cfg.Params
	p.Live = false
	p.Verbose = false
	eng := growth.NewEngine(blank{maxX, maxY}, g.rng, p)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		eng.Reset()
		eng.Grow(growth.Position{X: maxX / 2, Y: maxY - 1}, growth.Trunk, p.LifeStart)
		g.generation++
	}
	return nil
}

// FastForward prepares the generator to replay a saved tree: the trees
// before generation are skipped and the next one grows without pausing
// until it reaches branches.
func (g *Generator) FastForward(ctx context.Context, generation, branches int) error {
	if generation > 1 {
		if err := g.Skip(ctx, generation-1); err != nil {
			return err
		}
	}
	g.engine.SetTarget(branches)
	return nil
}

// Generate grows one tree. The context is only consulted before the tree is
// started; a generation in progress always runs to completion.
func (g *Generator) Generate(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, &GenerationError{Generation: g.generation + 1, Seed: g.cfg.Seed, Wrapped: err}
	}
	g.generation++

	for _, m := range g.metrics {
		m.Reset()
	}
	g.engine.Reset()

	maxX, maxY := g.canvas.Bounds()
	g.engine.Overlay(2, fmt.Sprintf("maxX: %d, maxY: %d", maxX, maxY))

	g.logger.Debug("growing tree", "generation", g.generation, "seed", g.cfg.Seed, "bounds", fmt.Sprintf("%dx%d", maxX, maxY))
	start := time.Now()
	g.engine.Grow(growth.Position{X: maxX / 2, Y: maxY - 1}, growth.Trunk, g.cfg.Params.LifeStart)
	g.canvas.Flush()
	g.engine.SetTarget(0)

	res := &Result{
		Generation: g.generation,
		Seed:       g.cfg.Seed,
		Counters:   g.engine.Counters(),
		HurriedAt:  g.engine.HurriedAt(),
		Metrics:    make(map[string]float64, len(g.metrics)),
		Elapsed:    time.Since(start),
	}
	for _, m := range g.metrics {
		res.Metrics[m.Name()] = m.Value()
	}

	g.logger.Debug("tree grown",
		"generation", res.Generation,
		"branches", res.Counters.Branches,
		"shoots", res.Counters.Shoots,
		"elapsed", res.Elapsed,
	)
	return res, nil
}

// Run grows trees until next returns false or the context is done. next is
// called after every tree and is where callers clear the canvas or wait.
func (g *Generator) Run(ctx context.Context, next func(*Result) bool) error {
	for {
		res, err := g.Generate(ctx)
		if err != nil {
			return err
		}
		if !next(res) {
			return nil
		}
	}
}

type blank struct{ w, h int }

func (b blank) Bounds() (int, int)                        { return b.w, b.h }
func (blank) Write(growth.Position, string, growth.Style) {}
func (blank) Flush()                                      {}
