package growth

// GlyphFallback marks a combination no table covers. It should never reach a
// canvas.
const GlyphFallback = "?"

// RenderType is the type a branch is drawn as. Branches close to the end of
// their life are drawn as foliage whatever they nominally are.
func RenderType(t BranchType, life int) BranchType {
	if life < 4 {
		return Dying
	}
	return t
}

// SelectGlyph picks the string painted for one step. t must already be the
// render type. Dying and dead branches draw a leaf, or nothing when no leaves
// are configured.
func SelectGlyph(r Roller, t BranchType, dx, dy int, leaves []string, leavesSize int) string {
	switch t {
	case Trunk:
		switch {
		case dy == 0:
			return "/~"
		case dx < 0:
			return "\\|"
		case dx == 0:
			return "/|\\"
		case dx > 0:
			return "|/"
		}
	case ShootLeft:
		switch {
		case dy > 0:
			return "\\"
		case dy == 0:
			return "\\_"
		case dx < 0:
			return "\\|"
		case dx == 0:
			return "/|"
		case dx > 0:
			return "/"
		}
	case ShootRight:
		switch {
		case dy > 0:
			return "/"
		case dy == 0:
			return "_/"
		case dx < 0:
			return "\\|"
		case dx == 0:
			return "/|"
		case dx > 0:
			return "/"
		}
	case Dying, Dead:
		if leavesSize <= 0 {
			return ""
		}
		return leaves[r.Dice(leavesSize)]
	}
	return GlyphFallback
}

// SelectStyle picks the color of one step, independently of the movement
// draws.
func SelectStyle(r Roller, t BranchType) Style {
	switch t {
	case Trunk, ShootLeft, ShootRight:
		if r.Dice(2) == 0 {
			return Style{Color: ColorBarkBright, Bold: true}
		}
		return Style{Color: ColorBark}
	case Dying:
		if r.Dice(10) == 0 {
			return Style{Color: ColorLeaf, Bold: true}
		}
		return Style{Color: ColorLeaf}
	case Dead:
		if r.Dice(3) == 0 {
			return Style{Color: ColorLeafBright, Bold: true}
		}
		return Style{Color: ColorLeafBright}
	}
	return Style{}
}
