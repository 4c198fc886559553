package growth

// SelectDelta draws the next step of a branch.
func SelectDelta(r Roller, t BranchType, life, age, multiplier int) (dx, dy int) {
	switch t {
	case Trunk:
		return trunkDelta(r, life, age, multiplier)
	case ShootLeft, ShootRight:
		return shootDelta(r, t)
	case Dying:
		return dyingDelta(r)
	case Dead:
		return deadDelta(r)
	}
	return 0, 0
}

func trunkDelta(r Roller, life, age, multiplier int) (dx, dy int) {
	switch {
	// just planted or about to die: sideways only
	case age <= 2 || life < 4:
		return r.Dice(3) - 1, 0

	// young trunk grows wide, lifting one row every multiplier/2 steps
	case age < multiplier*3:
		if half := multiplier / 2; half > 0 && age%half == 0 {
			dy = -1
		}
		switch roll := r.Dice(10); {
		case roll == 0:
			dx = -2
		case roll <= 3:
			dx = -1
		case roll <= 5:
			dx = 0
		case roll <= 8:
			dx = 1
		default:
			dx = 2
		}
		return dx, dy

	default:
		if r.Dice(10) > 2 {
			dy = -1
		}
		return r.Dice(3) - 1, dy
	}
}

// shootDelta trends left; right shoots mirror it.
func shootDelta(r Roller, t BranchType) (dx, dy int) {
	switch roll := r.Dice(10); {
	case roll <= 1:
		dy = -1
	case roll <= 7:
		dy = 0
	default:
		dy = 1
	}

	switch roll := r.Dice(10); {
	case roll <= 1:
		dx = -2
	case roll <= 5:
		dx = -1
	case roll <= 8:
		dx = 0
	default:
		dx = 1
	}

	if t == ShootRight {
		dx = -dx
	}
	return dx, dy
}

// dyingDelta scatters foliage sideways with little vertical movement.
func dyingDelta(r Roller) (dx, dy int) {
	switch roll := r.Dice(10); {
	case roll <= 1:
		dy = -1
	case roll <= 8:
		dy = 0
	default:
		dy = 1
	}

	switch roll := r.Dice(15); {
	case roll == 0:
		dx = -3
	case roll <= 2:
		dx = -2
	case roll <= 5:
		dx = -1
	case roll <= 8:
		dx = 0
	case roll <= 11:
		dx = 1
	case roll <= 13:
		dx = 2
	default:
		dx = 3
	}
	return dx, dy
}

func deadDelta(r Roller) (dx, dy int) {
	switch roll := r.Dice(10); {
	case roll <= 2:
		dy = -1
	case roll <= 6:
		dy = 0
	default:
		dy = 1
	}
	return r.Dice(3) - 1, dy
}
