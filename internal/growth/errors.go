package growth

import "errors"

// Configuration errors reported by Params.Validate.
var (
	// ErrInvalidMultiplier indicates a multiplier of zero or less, which would
	// make the periodic re-branch check divide by zero.
	ErrInvalidMultiplier = errors.New("growth: multiplier must be positive")

	// ErrInvalidLife indicates a negative starting life.
	ErrInvalidLife = errors.New("growth: life must not be negative")

	// ErrLeavesSize indicates a leaf count that does not fit the leaf list.
	ErrLeavesSize = errors.New("growth: leaves size out of range of leaf list")

	// ErrNonPositiveSides is the panic value for Dice with sides <= 0.
	ErrNonPositiveSides = errors.New("growth: dice needs at least one side")
)
