package gas_test

import (
	"context"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gassim/internal/gas"
)

const tol = 1e-9

func mustState(particles []gas.Particle, radius, width, height float64) *gas.State {
	s, err := gas.NewStateFrom(particles, radius, width, height)
	Expect(err).NotTo(HaveOccurred())
	return s
}

var _ = Describe("Resolve", func() {
	It("swaps velocities in a head-on collision at exact contact distance", func() {
		s := mustState([]gas.Particle{
			{Pos: gas.Vec2{X: 10, Y: 50}, Vel: gas.Vec2{X: 5}},
			{Pos: gas.Vec2{X: 16, Y: 50}, Vel: gas.Vec2{X: -5}},
		}, 3, 700, 700)

		sp := gas.NewStepper(s)
		sp.Tick(0)

		ps := sp.Particles()
		Expect(ps[0].Vel.X).To(BeNumerically("~", -5, tol))
		Expect(ps[0].Vel.Y).To(BeNumerically("~", 0, tol))
		Expect(ps[1].Vel.X).To(BeNumerically("~", 5, tol))
		Expect(ps[1].Vel.Y).To(BeNumerically("~", 0, tol))

		// Already at exact contact distance, so no separation correction.
		Expect(ps[0].Pos).To(Equal(gas.Vec2{X: 10, Y: 50}))
		Expect(ps[1].Pos).To(Equal(gas.Vec2{X: 16, Y: 50}))
	})

	It("conserves momentum and kinetic energy for random colliding pairs", func() {
		rng := rand.New(rand.NewSource(7))
		for trial := 0; trial < 100; trial++ {
			a := gas.Particle{
				Pos: gas.Vec2{X: 100 + rng.Float64()*4, Y: 100 + rng.Float64()*4},
				Vel: gas.Vec2{X: rng.Float64()*20 - 10, Y: rng.Float64()*20 - 10},
			}
			b := gas.Particle{
				Pos: gas.Vec2{X: 100 + rng.Float64()*4, Y: 100 + rng.Float64()*4},
				Vel: gas.Vec2{X: rng.Float64()*20 - 10, Y: rng.Float64()*20 - 10},
			}
			if a.Pos == b.Pos {
				continue
			}

			s := mustState([]gas.Particle{a, b}, 3, 700, 700)
			matching := gas.MatchPairs(s.CollidingPairs())
			Expect(matching).To(HaveLen(1))
			Expect(s.Resolve(matching)).To(Equal(1))

			preP := a.Vel.Add(b.Vel)
			preE := a.Vel.Dot(a.Vel) + b.Vel.Dot(b.Vel)

			pa, pb := s.At(0), s.At(1)
			postP := pa.Vel.Add(pb.Vel)
			postE := pa.Vel.Dot(pa.Vel) + pb.Vel.Dot(pb.Vel)

			Expect(postP.X).To(BeNumerically("~", preP.X, tol))
			Expect(postP.Y).To(BeNumerically("~", preP.Y, tol))
			Expect(postE).To(BeNumerically("~", preE, 1e-6))

			// Separation correction preserves the pair midpoint.
			preMid := a.Pos.Add(b.Pos).Scale(0.5)
			postMid := pa.Pos.Add(pb.Pos).Scale(0.5)
			Expect(postMid.X).To(BeNumerically("~", preMid.X, tol))
			Expect(postMid.Y).To(BeNumerically("~", preMid.Y, tol))

			// Post-collision separation is exactly one diameter.
			Expect(pb.Pos.Sub(pa.Pos).Norm()).To(BeNumerically("~", 6, 1e-6))
		}
	})

	It("skips pairs whose centers coincide", func() {
		s := mustState([]gas.Particle{
			{Pos: gas.Vec2{X: 50, Y: 50}, Vel: gas.Vec2{X: 3, Y: 1}},
			{Pos: gas.Vec2{X: 50, Y: 50}, Vel: gas.Vec2{X: -2, Y: 4}},
		}, 3, 700, 700)

		matching := gas.MatchPairs(s.CollidingPairs())
		Expect(matching).To(HaveLen(1))
		Expect(s.Resolve(matching)).To(BeZero())

		Expect(s.At(0).Vel).To(Equal(gas.Vec2{X: 3, Y: 1}))
		Expect(s.At(1).Vel).To(Equal(gas.Vec2{X: -2, Y: 4}))
		Expect(s.IsValid()).To(BeTrue())
	})
})

var _ = Describe("ReflectBounds", func() {
	It("rebounds a particle crossing the left wall", func() {
		s := mustState([]gas.Particle{
			{Pos: gas.Vec2{X: 1, Y: 50}, Vel: gas.Vec2{X: -5}},
		}, 3, 700, 700)

		sp := gas.NewStepper(s)
		sp.Tick(1)

		p := sp.Particles()[0]
		Expect(p.Vel.X).To(BeNumerically("~", 5, tol))
		Expect(p.Pos.X).To(BeNumerically("~", 4, tol)) // radius + 1
		Expect(p.Pos.Y).To(BeNumerically("~", 50, tol))
	})

	It("keeps every reflected coordinate inside [radius+1, size-radius-1]", func() {
		rng := rand.New(rand.NewSource(11))
		s, err := gas.NewState(gas.Params{
			Count: 200, Radius: 3, Speed: 40, Width: 100, Height: 100,
		}, rng)
		Expect(err).NotTo(HaveOccurred())

		sp := gas.NewStepper(s)
		for i := 0; i < 50; i++ {
			sp.Tick(0.2)
			for _, p := range sp.Particles() {
				Expect(p.Pos.X).To(BeNumerically(">=", 3))
				Expect(p.Pos.X).To(BeNumerically("<=", 97))
				Expect(p.Pos.Y).To(BeNumerically(">=", 3))
				Expect(p.Pos.Y).To(BeNumerically("<=", 97))
			}
		}
	})
})

var _ = Describe("Stepper", func() {
	It("leaves a motionless, separated population untouched", func() {
		s := mustState([]gas.Particle{
			{Pos: gas.Vec2{X: 20, Y: 20}},
			{Pos: gas.Vec2{X: 50, Y: 50}},
			{Pos: gas.Vec2{X: 80, Y: 30}},
		}, 3, 700, 700)

		sp := gas.NewStepper(s)
		for i := 0; i < 10; i++ {
			deltas := sp.Tick(0.2)
			Expect(sp.LastCollisions()).To(BeZero())
			for _, d := range deltas {
				Expect(d).To(Equal(gas.Vec2{}))
			}
		}

		ps := sp.Particles()
		Expect(ps[0].Pos).To(Equal(gas.Vec2{X: 20, Y: 20}))
		Expect(ps[1].Pos).To(Equal(gas.Vec2{X: 50, Y: 50}))
		Expect(ps[2].Pos).To(Equal(gas.Vec2{X: 80, Y: 30}))
	})

	It("reports displacements matching the change in position", func() {
		rng := rand.New(rand.NewSource(3))
		s, err := gas.NewState(gas.Params{
			Count: 50, Radius: 3, Speed: 10, Width: 200, Height: 200,
		}, rng)
		Expect(err).NotTo(HaveOccurred())

		sp := gas.NewStepper(s)
		before := sp.Particles()
		deltas := sp.Tick(0.2)
		after := sp.Particles()

		for i := range after {
			Expect(deltas[i].X).To(BeNumerically("~", after[i].Pos.X-before[i].Pos.X, tol))
			Expect(deltas[i].Y).To(BeNumerically("~", after[i].Pos.Y-before[i].Pos.Y, tol))
		}
	})

	It("never lets an index appear in more than one matched pair", func() {
		rng := rand.New(rand.NewSource(5))
		// Cramped domain so multi-way contacts are common.
		s, err := gas.NewState(gas.Params{
			Count: 100, Radius: 3, Speed: 15, Width: 60, Height: 60,
		}, rng)
		Expect(err).NotTo(HaveOccurred())

		for i := 0; i < 25; i++ {
			s.Advance(0.2)
			matching := gas.MatchPairs(s.CollidingPairs())
			seen := make(map[int]bool)
			for _, pr := range matching {
				Expect(seen[pr.A]).To(BeFalse(), "index %d repeated", pr.A)
				Expect(seen[pr.B]).To(BeFalse(), "index %d repeated", pr.B)
				seen[pr.A] = true
				seen[pr.B] = true
			}
			s.Resolve(matching)
			s.ReflectBounds()
		}
	})
})

var _ = Describe("Run", func() {
	newStepper := func(count int, seed int64) *gas.Stepper {
		rng := rand.New(rand.NewSource(seed))
		s, err := gas.NewState(gas.Params{
			Count: count, Radius: 3, Speed: 10, Width: 200, Height: 200,
		}, rng)
		Expect(err).NotTo(HaveOccurred())
		return gas.NewStepper(s)
	}

	It("records one frame per step plus the initial one", func() {
		sp := newStepper(30, 1)
		result, err := sp.Run(context.Background(), 40, 0.2)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.StepsTaken).To(Equal(40))
		Expect(result.Frames).To(HaveLen(41))
		Expect(result.Times).To(HaveLen(41))
		Expect(result.Collisions).To(HaveLen(40))
		Expect(result.Times[40]).To(BeNumerically("~", 8.0, tol))
	})

	It("rejects a non-positive step count or time step", func() {
		sp := newStepper(10, 2)
		_, err := sp.Run(context.Background(), 0, 0.2)
		Expect(err).To(MatchError(gas.ErrStepCount))

		_, err = sp.Run(context.Background(), 10, 0)
		Expect(err).To(MatchError(gas.ErrTimeStep))
	})

	It("stops early when the context is cancelled", func() {
		sp := newStepper(10, 2)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		result, err := sp.Run(ctx, 100, 0.2)
		Expect(err).To(MatchError(context.Canceled))
		Expect(result.StepsTaken).To(BeZero())
	})

	It("is deterministic for a fixed seed", func() {
		a, err := newStepper(80, 9).Run(context.Background(), 30, 0.2)
		Expect(err).NotTo(HaveOccurred())
		b, err := newStepper(80, 9).Run(context.Background(), 30, 0.2)
		Expect(err).NotTo(HaveOccurred())
		Expect(b.Frames).To(Equal(a.Frames))
		Expect(b.Collisions).To(Equal(a.Collisions))
	})
})
