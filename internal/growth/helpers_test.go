package growth_test

import "github.com/san-kum/bonsai/internal/growth"

type write struct {
	Pos   growth.Position
	Text  string
	Style growth.Style
}

type recordCanvas struct {
	w, h    int
	writes  []write
	flushes int
}

func newRecordCanvas(w, h int) *recordCanvas { return &recordCanvas{w: w, h: h} }

func (c *recordCanvas) Bounds() (int, int) { return c.w, c.h }
func (c *recordCanvas) Write(pos growth.Position, text string, style growth.Style) {
	c.writes = append(c.writes, write{Pos: pos, Text: text, Style: style})
}
func (c *recordCanvas) Flush() { c.flushes++ }

// midRoller returns the middle bucket of every table, except dice(3) which
// always returns 1.
type midRoller struct{ next int32 }

func (r *midRoller) Next() int32 { return r.next }
func (r *midRoller) Dice(sides int) int {
	if sides == 3 {
		return 1
	}
	return sides / 2
}

// scriptRoller replays fixed dice values, then falls back to zero.
type scriptRoller struct {
	rolls []int
	sides []int
}

func (r *scriptRoller) Next() int32 { return 0 }
func (r *scriptRoller) Dice(sides int) int {
	r.sides = append(r.sides, sides)
	if len(r.rolls) == 0 {
		return 0
	}
	v := r.rolls[0]
	r.rolls = r.rolls[1:]
	return v
}

type stepLog struct{ steps []growth.Step }

func (l *stepLog) OnStep(s growth.Step) { l.steps = append(l.steps, s) }

func defaultParams() growth.Params {
	return growth.Params{
		LifeStart:  32,
		Multiplier: 5,
		Leaves:     []string{"&"},
		LeavesSize: 1,
	}
}

func growTree(seed uint64, w, h int, p growth.Params) (*recordCanvas, *growth.Engine, *stepLog) {
	c := newRecordCanvas(w, h)
	e := growth.NewEngine(c, growth.NewRand(seed), p)
	log := &stepLog{}
	e.AddObserver(log)
	e.Reset()
	e.Grow(growth.Position{X: w / 2, Y: h - 1}, growth.Trunk, p.LifeStart)
	return c, e, log
}
