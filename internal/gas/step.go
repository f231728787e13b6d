package gas

import (
	"context"
	"fmt"
)

// Metric accumulates a scalar over the course of a run.
type Metric interface {
	Name() string
	Observe(particles []Particle, tick int)
	Value() float64
	Reset()
}

// Observer is notified after every tick with a read-only view of the
// particles and their displacements over the step.
type Observer interface {
	OnTick(particles []Particle, deltas []Vec2, tick int)
}

// CollisionObserver is implemented by metrics and observers that also
// want the number of pairs resolved in the tick.
type CollisionObserver interface {
	OnCollisions(resolved, tick int)
}

// Stepper drives the simulation. It owns its State exclusively: no
// other component mutates particles, and callers only ever see copies.
type Stepper struct {
	state     *State
	metrics   []Metric
	observers []Observer
	tick      int
	resolved  int
	snapshot  []Vec2
}

func NewStepper(state *State) *Stepper {
	return &Stepper{
		state:    state,
		snapshot: make([]Vec2, state.Len()),
	}
}

func (sp *Stepper) AddMetric(m Metric)     { sp.metrics = append(sp.metrics, m) }
func (sp *Stepper) AddObserver(o Observer) { sp.observers = append(sp.observers, o) }

func (sp *Stepper) Len() int                   { return sp.state.Len() }
func (sp *Stepper) Radius() float64            { return sp.state.Radius() }
func (sp *Stepper) Bounds() (float64, float64) { return sp.state.Bounds() }

// Particles returns a copy of the current particle records.
func (sp *Stepper) Particles() []Particle { return sp.state.Particles() }

// Ticks returns the number of completed ticks.
func (sp *Stepper) Ticks() int { return sp.tick }

// LastCollisions returns the number of pairs resolved in the most
// recent tick.
func (sp *Stepper) LastCollisions() int { return sp.resolved }

// Tick advances the simulation by one step: integrate positions, detect
// and resolve collisions, reflect off the walls. It returns each
// particle's displacement over the step, for the caller to move its
// corresponding on-screen shape by. The returned slice is valid until
// the next call.
func (sp *Stepper) Tick(dt float64) []Vec2 {
	ps := sp.state.particles
	snap := sp.snapshot
	for i := range ps {
		snap[i] = ps[i].Pos
	}

	sp.state.Advance(dt)
	matching := MatchPairs(sp.state.CollidingPairs())
	sp.resolved = sp.state.Resolve(matching)
	sp.state.ReflectBounds()

	deltas := make([]Vec2, len(ps))
	for i := range ps {
		deltas[i] = ps[i].Pos.Sub(snap[i])
	}

	sp.tick++
	sp.notify(deltas)
	return deltas
}

func (sp *Stepper) notify(deltas []Vec2) {
	if len(sp.metrics) == 0 && len(sp.observers) == 0 {
		return
	}
	view := sp.state.Particles()
	for _, m := range sp.metrics {
		m.Observe(view, sp.tick)
		if co, ok := m.(CollisionObserver); ok {
			co.OnCollisions(sp.resolved, sp.tick)
		}
	}
	for _, o := range sp.observers {
		o.OnTick(view, deltas, sp.tick)
		if co, ok := o.(CollisionObserver); ok {
			co.OnCollisions(sp.resolved, sp.tick)
		}
	}
}

// Result holds the trajectory of a finite run. Frames[0] is the state
// before the first tick, so len(Frames) == StepsTaken+1.
type Result struct {
	Frames     [][]Particle
	Times      []float64
	Collisions []int
	Metrics    map[string]float64
	StepsTaken int
}

// Run ticks the simulation a fixed number of steps, recording every
// frame. Cancelling the context returns the partial result along with
// the context's error.
func (sp *Stepper) Run(ctx context.Context, steps int, dt float64) (*Result, error) {
	if steps <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrStepCount, steps)
	}
	if dt <= 0 {
		return nil, fmt.Errorf("%w: got %f", ErrTimeStep, dt)
	}

	for _, m := range sp.metrics {
		m.Reset()
	}

	result := &Result{
		Frames:     make([][]Particle, 0, steps+1),
		Times:      make([]float64, 0, steps+1),
		Collisions: make([]int, 0, steps),
		Metrics:    make(map[string]float64),
	}
	result.Frames = append(result.Frames, sp.state.Particles())
	result.Times = append(result.Times, 0)

	t := 0.0
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		sp.Tick(dt)
		t += dt
		result.StepsTaken++

		result.Frames = append(result.Frames, sp.state.Particles())
		result.Times = append(result.Times, t)
		result.Collisions = append(result.Collisions, sp.resolved)
	}

	for _, m := range sp.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}
