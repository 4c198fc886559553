package growth

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Engine grows trees onto a canvas. One Engine runs one generation at a time.
type Engine struct {
	canvas   Canvas
	rng      Roller
	params   Params
	counters Counters

	observers []Observer

	// Sleep is the live-mode pause. Defaults to time.Sleep.
	Sleep func(time.Duration)

	hurry     atomic.Bool
	hurriedAt int
}

func NewEngine(canvas Canvas, rng Roller, params Params) *Engine {
	return &Engine{
		canvas: canvas,
		rng:    rng,
		params: params,
		Sleep:  time.Sleep,
	}
}

func (e *Engine) AddObserver(o Observer) { e.observers = append(e.observers, o) }

// Counters returns the totals of the current generation.
func (e *Engine) Counters() Counters { return e.counters }

// Params returns the configuration the engine grows with.
func (e *Engine) Params() Params { return e.params }

// SetTarget makes live mode skip pauses until the generation has n
// branches. Used to replay a saved tree quickly.
func (e *Engine) SetTarget(n int) { e.params.TargetBranches = n }

// Reset starts a new generation: counters are cleared and the shoot sequence
// is drawn from the random stream. A pending Hurry is cleared too.
func (e *Engine) Reset() {
	e.counters.Reset(e.rng)
	e.hurry.Store(false)
	e.hurriedAt = 0
}

// Hurry drops the live pause for the rest of the current generation. It is
// the one Engine method safe to call from another goroutine.
func (e *Engine) Hurry() { e.hurry.Store(true) }

// HurriedAt is the branch count at the first step after Hurry, or 0 when
// the generation ran at its normal pace.
func (e *Engine) HurriedAt() int { return e.hurriedAt }

// Grow walks one branch from pos until its life runs out, spawning children
// along the way. Children start from the life the parent has left (a new
// trunk may get up to two steps more), so the recursion bottoms out.
func (e *Engine) Grow(pos Position, t BranchType, life int) {
	e.counters.Branches++
	id := e.counters.Branches
	multiplier := e.params.Multiplier
	shootCooldown := multiplier

	for life > 0 {
		life--
		age := e.params.LifeStart - life

		dx, dy := SelectDelta(e.rng, t, life, age, multiplier)

		clamped := false
		_, maxY := e.canvas.Bounds()
		if dy > 0 && pos.Y > maxY-2 {
			dy-- // keep off the ground
			clamped = true
		}

		switch {
		// near-dead branch: burst into leaves
		case life < 3:
			e.Grow(pos, Dead, life)

		// dying trunk or shoot: spread foliage
		case t.IsWoody() && life < multiplier+2:
			e.Grow(pos, Dying, life)

		// re-branch, at random for trunks or every multiplier steps
		case (t == Trunk && e.rng.Dice(3) == 0) || life%multiplier == 0:
			if e.rng.Dice(8) == 0 && life > 7 {
				shootCooldown = multiplier * 2
				e.Grow(pos, Trunk, life+(e.rng.Dice(5)-2))
			} else if shootCooldown <= 0 {
				shootCooldown = multiplier * 2
				e.counters.Shoots++
				e.counters.ShootSequence++
				if e.params.Verbose {
					e.overlay(4, fmt.Sprintf("shoots: %d", e.counters.Shoots))
				}
				e.Grow(pos, ShootSide(e.counters.ShootSequence), life+multiplier)
			}
		}
		shootCooldown--

		if e.params.Verbose {
			e.overlay(5, fmt.Sprintf("dx: %d", dx))
			e.overlay(6, fmt.Sprintf("dy: %d", dy))
			e.overlay(7, fmt.Sprintf("branchtype: %s", t))
			e.overlay(8, fmt.Sprintf("shootCooldown: %d", shootCooldown))
		}

		pos.X += dx
		pos.Y += dy

		rt := RenderType(t, life)
		style := SelectStyle(e.rng, rt)
		glyph := SelectGlyph(e.rng, rt, dx, dy, e.params.Leaves, e.params.LeavesSize)
		if glyph != "" {
			e.canvas.Write(pos, glyph, style)
		}

		if len(e.observers) > 0 {
			step := Step{
				Branch:  id,
				Type:    t,
				Render:  rt,
				Life:    life,
				Age:     age,
				Pos:     pos,
				DX:      dx,
				DY:      dy,
				Clamped: clamped,
				Glyph:   glyph,
				Style:   style,
			}
			for _, o := range e.observers {
				o.OnStep(step)
			}
		}

		e.pause()
	}
}

// ShootSide alternates shoot laterality on the parity of the sequence.
func ShootSide(sequence int) BranchType {
	if sequence%2 == 0 {
		return ShootLeft
	}
	return ShootRight
}

// Overlay writes a diagnostic line in verbose mode.
func (e *Engine) Overlay(row int, text string) {
	if e.params.Verbose {
		e.overlay(row, text)
	}
}

func (e *Engine) overlay(row int, text string) {
	e.canvas.Write(Position{X: 5, Y: row}, text, Style{})
}

func (e *Engine) pause() {
	if !e.params.Live {
		return
	}
	if e.hurry.Load() {
		if e.hurriedAt == 0 {
			e.hurriedAt = e.counters.Branches
		}
		return
	}
	if e.counters.Branches < e.params.TargetBranches {
		return
	}
	e.canvas.Flush()
	if e.params.TimeStep > 0 {
		e.Sleep(e.params.TimeStep)
	}
}
