// Package growth implements the bonsai growth engine.
//
// A tree is grown by a biased random walk that recursively spawns child
// branches:
//
//   - [Rand]: seeded random source behind every probabilistic decision
//   - [SelectDelta]: per-branch-type movement tables
//   - [SelectGlyph] and [SelectStyle]: what gets painted for each step
//   - [Engine]: the recursive walk, spawn rules and canvas writes
//   - [Canvas]: the grid the engine paints into
//
// # Example
//
//	rng := growth.NewRand(42)
//	eng := growth.NewEngine(canvas, rng, params)
//	eng.Reset()
//	maxX, maxY := canvas.Bounds()
//	eng.Grow(growth.Position{X: maxX / 2, Y: maxY - 1}, growth.Trunk, params.LifeStart)
//
// # Thread Safety
//
// An Engine and its Rand are NOT safe for concurrent use. A generation runs
// to completion on one goroutine; independent trees need independent engines.
package growth
