package metrics

import (
	"github.com/san-kum/gassim/internal/gas"
)

// CollisionRate tracks the mean number of resolved collision pairs per
// tick. It implements gas.CollisionObserver to receive the per-tick
// count from the stepper.
type CollisionRate struct {
	name    string
	total   int
	samples int
}

func NewCollisionRate() *CollisionRate {
	return &CollisionRate{name: "collision_rate"}
}

func (c *CollisionRate) Name() string { return c.name }

func (c *CollisionRate) Observe(particles []gas.Particle, tick int) {
	c.samples++
}

func (c *CollisionRate) OnCollisions(resolved, tick int) {
	c.total += resolved
}

func (c *CollisionRate) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return float64(c.total) / float64(c.samples)
}

func (c *CollisionRate) Reset() {
	c.total = 0
	c.samples = 0
}
