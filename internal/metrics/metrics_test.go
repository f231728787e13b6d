package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/gassim/internal/gas"
)

func TestTotalKineticEnergy(t *testing.T) {
	particles := []gas.Particle{
		{Vel: gas.Vec2{X: 3, Y: 4}},  // |v|² = 25
		{Vel: gas.Vec2{X: 0, Y: 2}},  // |v|² = 4
		{Vel: gas.Vec2{X: -1, Y: 0}}, // |v|² = 1
	}

	expected := 0.5 * (25 + 4 + 1)
	if got := TotalKineticEnergy(particles); math.Abs(got-expected) > 1e-10 {
		t.Errorf("TotalKineticEnergy = %v, want %v", got, expected)
	}
}

func TestTotalMomentum(t *testing.T) {
	particles := []gas.Particle{
		{Vel: gas.Vec2{X: 3, Y: -1}},
		{Vel: gas.Vec2{X: -3, Y: 2}},
	}

	got := TotalMomentum(particles)
	if got.X != 0 || got.Y != 1 {
		t.Errorf("TotalMomentum = %v, want {0 1}", got)
	}
}

func TestKineticEnergy_MeanAndReset(t *testing.T) {
	m := NewKineticEnergy()

	if m.Value() != 0 {
		t.Error("expected zero value before any observation")
	}

	fast := []gas.Particle{{Vel: gas.Vec2{X: 2}}} // KE 2
	slow := []gas.Particle{{Vel: gas.Vec2{X: 0}}} // KE 0

	m.Observe(fast, 1)
	m.Observe(slow, 2)

	if got := m.Value(); math.Abs(got-1.0) > 1e-10 {
		t.Errorf("Value() = %v, want 1.0", got)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero value after reset")
	}
}

func TestCollisionRate(t *testing.T) {
	c := NewCollisionRate()
	particles := []gas.Particle{{}, {}}

	c.Observe(particles, 1)
	c.OnCollisions(3, 1)
	c.Observe(particles, 2)
	c.OnCollisions(1, 2)

	if got := c.Value(); math.Abs(got-2.0) > 1e-10 {
		t.Errorf("Value() = %v, want 2.0", got)
	}

	c.Reset()
	if c.Value() != 0 {
		t.Error("expected zero rate after reset")
	}
}

func TestMetricsSatisfyStepperInterfaces(t *testing.T) {
	var _ gas.Metric = NewKineticEnergy()
	var _ gas.Metric = NewMomentum()
	var _ gas.Metric = NewCollisionRate()
	var _ gas.CollisionObserver = NewCollisionRate()
}
