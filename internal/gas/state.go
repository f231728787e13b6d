package gas

import (
	"math"
	"math/rand"
)

// motionAngleSpan is the interval initial velocity directions are drawn
// from. It is wider than 2π; sin and cos wrap, so directions still cover
// the full circle. Kept literal for reproducibility of seeded runs.
const motionAngleSpan = 100.0

// Params describes a simulation before construction.
type Params struct {
	Count  int     // number of particles
	Radius float64 // shared particle radius
	Speed  float64 // initial speed of every particle
	Width  float64 // domain extent along x
	Height float64 // domain extent along y
}

// Validate checks the construction contract.
func (p Params) Validate() error {
	if p.Count <= 0 {
		return ErrParticleCount
	}
	if p.Radius <= 0 {
		return ErrRadius
	}
	if p.Speed < 0 {
		return ErrSpeed
	}
	if p.Width <= 2*p.Radius || p.Height <= 2*p.Radius {
		return ErrDomainSize
	}
	return nil
}

// State owns the positions and velocities of all particles together
// with the simulation constants. The particle count is fixed for the
// lifetime of a State and indices never change.
type State struct {
	particles []Particle
	radius    float64
	width     float64
	height    float64
}

// NewState builds a State of p.Count particles. Positions are drawn
// uniformly from [2, size-radius) per axis; every particle starts at
// p.Speed along a random direction. Particles may overlap initially.
func NewState(p Params, rng *rand.Rand) (*State, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	s := &State{
		particles: make([]Particle, p.Count),
		radius:    p.Radius,
		width:     p.Width,
		height:    p.Height,
	}
	for i := range s.particles {
		angle := rng.Float64() * motionAngleSpan
		s.particles[i] = Particle{
			Pos: Vec2{
				X: 2 + rng.Float64()*(p.Width-p.Radius-2),
				Y: 2 + rng.Float64()*(p.Height-p.Radius-2),
			},
			Vel: Vec2{
				X: p.Speed * math.Sin(angle),
				Y: p.Speed * math.Cos(angle),
			},
		}
	}
	return s, nil
}

// NewStateFrom builds a State over an explicit particle slice. The
// slice is copied; the caller keeps its own.
func NewStateFrom(particles []Particle, radius, width, height float64) (*State, error) {
	p := Params{Count: len(particles), Radius: radius, Speed: 0, Width: width, Height: height}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	s := &State{
		particles: make([]Particle, len(particles)),
		radius:    radius,
		width:     width,
		height:    height,
	}
	copy(s.particles, particles)
	return s, nil
}

func (s *State) Len() int        { return len(s.particles) }
func (s *State) Radius() float64 { return s.radius }

// Bounds returns the domain extents (width, height).
func (s *State) Bounds() (float64, float64) { return s.width, s.height }

// Particles returns a copy of the current particle records.
func (s *State) Particles() []Particle {
	out := make([]Particle, len(s.particles))
	copy(out, s.particles)
	return out
}

// At returns particle i by value.
func (s *State) At(i int) Particle { return s.particles[i] }

// IsValid reports whether no particle carries a NaN or Inf component.
func (s *State) IsValid() bool {
	for _, p := range s.particles {
		if !p.Pos.IsValid() || !p.Vel.IsValid() {
			return false
		}
	}
	return true
}
