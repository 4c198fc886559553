package metrics

import "github.com/san-kum/bonsai/internal/growth"

// Metric summarizes a generation from the steps the engine reports.
type Metric interface {
	growth.Observer
	Name() string
	Value() float64
	Reset()
}

// Default returns fresh instances of every tree metric.
func Default() []Metric {
	return []Metric{NewHeight(), NewSpread(), NewFoliage(), NewSteps()}
}

// Height is the number of rows between the highest and lowest painted cell.
type Height struct {
	extent
}

func NewHeight() *Height { return &Height{} }

func (h *Height) Name() string { return "height" }

func (h *Height) OnStep(s growth.Step) {
	if s.Glyph != "" {
		h.add(s.Pos.Y)
	}
}

// Spread is the number of columns between the leftmost and rightmost
// painted cell.
type Spread struct {
	extent
}

func NewSpread() *Spread { return &Spread{} }

func (sp *Spread) Name() string { return "spread" }

func (sp *Spread) OnStep(s growth.Step) {
	if s.Glyph != "" {
		sp.add(s.Pos.X)
	}
}

type extent struct {
	min, max int
	seen     bool
}

func (e *extent) add(v int) {
	if !e.seen {
		e.min, e.max, e.seen = v, v, true
		return
	}
	if v < e.min {
		e.min = v
	}
	if v > e.max {
		e.max = v
	}
}

func (e *extent) Value() float64 {
	if !e.seen {
		return 0
	}
	return float64(e.max - e.min + 1)
}

func (e *extent) Reset() { *e = extent{} }

// Foliage counts the cells painted as leaves by dying and dead branches.
type Foliage struct {
	leaves int
}

func NewFoliage() *Foliage { return &Foliage{} }

func (f *Foliage) Name() string { return "foliage" }

func (f *Foliage) OnStep(s growth.Step) {
	if s.Glyph == "" {
		return
	}
	if s.Render == growth.Dying || s.Render == growth.Dead {
		f.leaves++
	}
}

func (f *Foliage) Value() float64 { return float64(f.leaves) }

func (f *Foliage) Reset() { f.leaves = 0 }

// Steps counts every engine iteration, painted or not.
type Steps struct {
	n int
}

func NewSteps() *Steps { return &Steps{} }

func (st *Steps) Name() string       { return "steps" }
func (st *Steps) OnStep(growth.Step) { st.n++ }
func (st *Steps) Value() float64     { return float64(st.n) }
func (st *Steps) Reset()             { st.n = 0 }
