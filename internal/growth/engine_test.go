package growth_test

import (
	"sort"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/bonsai/internal/growth"
)

var _ = Describe("Engine", func() {
	Context("with a fixed seed", func() {
		It("writes the same sequence twice", func() {
			for _, seed := range []uint64{1, 7, 42, 2024} {
				a, ea, _ := growTree(seed, 80, 24, defaultParams())
				b, eb, _ := growTree(seed, 80, 24, defaultParams())
				Expect(a.writes).To(Equal(b.writes))
				Expect(ea.Counters()).To(Equal(eb.Counters()))
			}
		})

		It("diverges for another seed", func() {
			a, _, _ := growTree(1, 80, 24, defaultParams())
			b, _, _ := growTree(2, 80, 24, defaultParams())
			Expect(a.writes).NotTo(Equal(b.writes))
		})

		It("continues the random stream across generations", func() {
			c := newRecordCanvas(80, 24)
			e := growth.NewEngine(c, growth.NewRand(9), defaultParams())
			e.Reset()
			e.Grow(growth.Position{X: 40, Y: 23}, growth.Trunk, 32)
			first := append([]write(nil), c.writes...)
			c.writes = nil
			e.Reset()
			e.Grow(growth.Position{X: 40, Y: 23}, growth.Trunk, 32)
			Expect(c.writes).NotTo(Equal(first))
		})
	})

	Context("counters", func() {
		It("counts the trunk even with no life", func() {
			p := defaultParams()
			p.LifeStart = 0
			c, e, _ := growTree(3, 80, 24, p)
			Expect(e.Counters().Branches).To(Equal(1))
			Expect(c.writes).To(BeEmpty())
		})

		It("alternates shoot sides by sequence parity", func() {
			for seed := uint64(0); seed < 20; seed++ {
				c := newRecordCanvas(120, 40)
				e := growth.NewEngine(c, growth.NewRand(seed), defaultParams())
				e.Reset()
				seq := e.Counters().ShootSequence
				log := &stepLog{}
				e.AddObserver(log)
				e.Grow(growth.Position{X: 60, Y: 39}, growth.Trunk, 32)

				shoots := map[int]growth.BranchType{}
				for _, s := range log.steps {
					if s.Type == growth.ShootLeft || s.Type == growth.ShootRight {
						shoots[s.Branch] = s.Type
					}
				}
				ids := make([]int, 0, len(shoots))
				for id := range shoots {
					ids = append(ids, id)
				}
				sort.Ints(ids)

				Expect(ids).To(HaveLen(e.Counters().Shoots))
				Expect(e.Counters().ShootSequence - seq).To(Equal(e.Counters().Shoots))
				for k, id := range ids {
					Expect(shoots[id]).To(Equal(growth.ShootSide(seq+k+1)), "shoot %d", k)
				}
			}
		})
	})

	Context("branch walks", func() {
		It("never takes more steps than the life it started with", func() {
			for seed := uint64(0); seed < 10; seed++ {
				_, _, log := growTree(seed, 100, 30, defaultParams())
				first := map[int]growth.Step{}
				count := map[int]int{}
				for _, s := range log.steps {
					if _, ok := first[s.Branch]; !ok {
						first[s.Branch] = s
					}
					count[s.Branch]++
				}
				for id, n := range count {
					// life after the first decrement is the starting life minus one
					Expect(n).To(BeNumerically("<=", first[id].Life+1), "branch %d", id)
				}
			}
		})

		It("decreases life on every step of a branch", func() {
			_, _, log := growTree(11, 100, 30, defaultParams())
			last := map[int]int{}
			for _, s := range log.steps {
				if prev, ok := last[s.Branch]; ok {
					Expect(s.Life).To(Equal(prev - 1))
				}
				last[s.Branch] = s.Life
			}
		})

		It("draws foliage glyphs for branches about to die", func() {
			_, _, log := growTree(5, 100, 30, defaultParams())
			Expect(log.steps).NotTo(BeEmpty())
			for _, s := range log.steps {
				if s.Life < 4 {
					Expect(s.Render).To(Equal(growth.Dying))
					Expect(s.Glyph).To(Equal("&"))
				}
				Expect(s.Glyph).NotTo(Equal(growth.GlyphFallback))
			}
		})

		It("only clamps downward steps near the ground", func() {
			for seed := uint64(0); seed < 10; seed++ {
				_, _, log := growTree(seed, 80, 12, defaultParams())
				for _, s := range log.steps {
					if s.Clamped {
						prevY := s.Pos.Y - s.DY
						Expect(prevY).To(BeNumerically(">", 12-2))
						Expect(s.DY).To(Equal(0))
					}
				}
			}
		})

		It("never moves down from the last two rows", func() {
			const h = 12
			clamps := 0
			for seed := uint64(0); seed < 20; seed++ {
				_, _, log := growTree(seed, 80, h, defaultParams())
				for _, s := range log.steps {
					prevY := s.Pos.Y - s.DY
					if prevY > h-2 {
						Expect(s.DY).To(BeNumerically("<=", 0),
							"seed %d branch %d stepped down from row %d", seed, s.Branch, prevY)
					}
					if s.Clamped {
						clamps++
					}
				}
			}
			Expect(clamps).To(BeNumerically(">", 0))
		})
	})

	Context("the straight trunk scenario", func() {
		It("climbs one column and ends in a dead leaf cluster", func() {
			c := newRecordCanvas(80, 24)
			p := growth.Params{LifeStart: 10, Multiplier: 1, Leaves: []string{"&"}, LeavesSize: 1}
			e := growth.NewEngine(c, &midRoller{}, p)
			log := &stepLog{}
			e.AddObserver(log)
			e.Reset()
			e.Grow(growth.Position{X: 40, Y: 23}, growth.Trunk, 10)

			var trunk []growth.Step
			var dead []growth.Step
			for _, s := range log.steps {
				switch s.Type {
				case growth.Trunk:
					Expect(s.Branch).To(Equal(1))
					trunk = append(trunk, s)
				case growth.Dead:
					dead = append(dead, s)
				}
			}
			Expect(trunk).To(HaveLen(10))
			for _, s := range trunk {
				Expect(s.DX).To(Equal(0))
				Expect(s.Pos.X).To(Equal(40))
			}
			Expect(trunk[len(trunk)-1].Pos.Y).To(BeNumerically("<", 23))
			Expect(dead).NotTo(BeEmpty())
			Expect(dead[0].Life).To(BeNumerically("<", 3))

			for _, w := range c.writes {
				if w.Text == "/|\\" || w.Text == "/~" {
					Expect(w.Pos.X).To(Equal(40))
				}
			}
		})
	})

	Context("leaves", func() {
		It("writes nothing for foliage when no leaves are configured", func() {
			p := defaultParams()
			p.Leaves = nil
			p.LeavesSize = 0
			c, _, log := growTree(8, 80, 24, p)
			for _, s := range log.steps {
				if s.Render == growth.Dying || s.Render == growth.Dead {
					Expect(s.Glyph).To(BeEmpty())
				}
			}
			for _, w := range c.writes {
				Expect(w.Text).NotTo(BeEmpty())
				Expect(w.Style.Color).To(BeElementOf(growth.ColorBark, growth.ColorBarkBright))
			}
		})

		It("only picks from the first LeavesSize leaves", func() {
			p := defaultParams()
			p.Leaves = []string{"&", "*", "#"}
			p.LeavesSize = 2
			_, _, log := growTree(12, 80, 24, p)
			for _, s := range log.steps {
				if s.Render == growth.Dying || s.Render == growth.Dead {
					Expect(s.Glyph).To(BeElementOf("&", "*"))
				}
			}
		})
	})

	Context("live mode", func() {
		It("flushes and pauses after every step", func() {
			p := defaultParams()
			p.LifeStart = 12
			p.Live = true
			p.TimeStep = 5 * time.Millisecond
			c := newRecordCanvas(80, 24)
			e := growth.NewEngine(c, growth.NewRand(4), p)
			var slept []time.Duration
			e.Sleep = func(d time.Duration) { slept = append(slept, d) }
			log := &stepLog{}
			e.AddObserver(log)
			e.Reset()
			e.Grow(growth.Position{X: 40, Y: 23}, growth.Trunk, p.LifeStart)

			Expect(slept).To(HaveLen(len(log.steps)))
			Expect(c.flushes).To(Equal(len(log.steps)))
			Expect(slept[0]).To(Equal(5 * time.Millisecond))
		})

		It("skips the pause until the target branch count", func() {
			p := defaultParams()
			p.Live = true
			p.TimeStep = time.Millisecond
			p.TargetBranches = 1 << 30
			c := newRecordCanvas(80, 24)
			e := growth.NewEngine(c, growth.NewRand(4), p)
			e.Sleep = func(time.Duration) { Fail("paused while fast-forwarding") }
			e.Reset()
			e.Grow(growth.Position{X: 40, Y: 23}, growth.Trunk, p.LifeStart)
			Expect(c.flushes).To(BeZero())
		})

		It("stops pausing once hurried", func() {
			p := defaultParams()
			p.Live = true
			p.TimeStep = time.Millisecond
			c := newRecordCanvas(80, 24)
			e := growth.NewEngine(c, growth.NewRand(4), p)
			calls := 0
			e.Sleep = func(time.Duration) {
				calls++
				e.Hurry()
			}
			e.Reset()
			e.Grow(growth.Position{X: 40, Y: 23}, growth.Trunk, p.LifeStart)
			Expect(calls).To(Equal(1))
		})
	})

	Context("verbose mode", func() {
		It("writes the diagnostic overlay unstyled", func() {
			p := defaultParams()
			p.Verbose = true
			p.LifeStart = 6
			c, _, _ := growTree(2, 80, 24, p)
			var overlay []string
			for _, w := range c.writes {
				if w.Pos.X == 5 && w.Style == (growth.Style{}) {
					overlay = append(overlay, w.Text)
				}
			}
			Expect(overlay).To(ContainElement(HavePrefix("branchtype: ")))
			Expect(overlay).To(ContainElement(HavePrefix("shootCooldown: ")))
		})
	})
})
