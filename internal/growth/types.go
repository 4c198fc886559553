package growth

import (
	"fmt"
	"time"
)

// BranchType decides movement bias, spawn rules and glyph set of a branch.
type BranchType int

const (
	Trunk BranchType = iota
	ShootLeft
	ShootRight
	Dying
	Dead
)

func (t BranchType) String() string {
	switch t {
	case Trunk:
		return "trunk"
	case ShootLeft:
		return "shootLeft"
	case ShootRight:
		return "shootRight"
	case Dying:
		return "dying"
	case Dead:
		return "dead"
	}
	return fmt.Sprintf("BranchType(%d)", int(t))
}

// IsWoody reports whether the branch is a trunk or a shoot.
func (t BranchType) IsWoody() bool {
	return t == Trunk || t == ShootLeft || t == ShootRight
}

// Position is a cell on the canvas. Y grows downward.
type Position struct {
	X, Y int
}

// Color is a terminal palette index.
type Color int

const (
	ColorDefault    Color = 0
	ColorLeaf       Color = 2
	ColorBark       Color = 3
	ColorGray       Color = 8
	ColorLeafBright Color = 10
	ColorBarkBright Color = 11
)

// Style is applied to exactly one canvas write.
type Style struct {
	Color Color
	Bold  bool
}

// Canvas is the grid the engine paints into. Writes outside the bounds are
// the implementation's business.
type Canvas interface {
	Bounds() (maxX, maxY int)
	Write(pos Position, text string, style Style)
	Flush()
}

// Roller is the random source as seen by the selectors.
type Roller interface {
	Next() int32
	Dice(sides int) int
}

// Params is the read-only configuration of one generation.
type Params struct {
	LifeStart  int
	Multiplier int
	Leaves     []string
	LeavesSize int
	Verbose    bool

	// Live pauses for TimeStep after every write.
	Live     bool
	TimeStep time.Duration

	// TargetBranches suppresses the live pause until that many branches
	// have been started. Used to fast-forward a loaded tree.
	TargetBranches int
}

// Validate rejects configurations the engine cannot run.
func (p Params) Validate() error {
	if p.Multiplier <= 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidMultiplier, p.Multiplier)
	}
	if p.LifeStart < 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidLife, p.LifeStart)
	}
	if p.LeavesSize < 0 || p.LeavesSize > len(p.Leaves) {
		return fmt.Errorf("%w: size %d, %d leaves", ErrLeavesSize, p.LeavesSize, len(p.Leaves))
	}
	return nil
}

// Counters are the running totals of one generation.
type Counters struct {
	Branches      int
	Shoots        int
	ShootSequence int
}

// Reset zeroes the totals and starts the shoot sequence at a random value.
func (c *Counters) Reset(r Roller) {
	c.Branches = 0
	c.Shoots = 0
	c.ShootSequence = int(r.Next())
}

// Step describes one iteration of a branch after its write.
type Step struct {
	Branch  int // order in which the branch was started, from 1
	Type    BranchType
	Render  BranchType
	Life    int
	Age     int
	Pos     Position // position after the move
	DX, DY  int
	Clamped bool // dy was reduced to stay off the ground
	Glyph   string
	Style   Style
}

type Observer interface {
	OnStep(s Step)
}
