package growth

import "math/rand/v2"

// Rand is the seeded random source of a run. The stream continues across
// generations; it is never reseeded between trees.
type Rand struct {
	r *rand.Rand
}

func NewRand(seed uint64) *Rand {
	return &Rand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Next returns the absolute value of the next draw.
func (r *Rand) Next() int32 {
	n := r.r.Int32()
	if n < 0 {
		n = -n
	}
	return n
}

// Dice returns a value in [0, sides).
func (r *Rand) Dice(sides int) int {
	if sides <= 0 {
		panic(ErrNonPositiveSides)
	}
	return int(r.Next()) % sides
}
