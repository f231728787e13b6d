package metrics

import (
	"github.com/san-kum/gassim/internal/gas"
)

// TotalMomentum sums the velocity vectors of the population (unit mass).
func TotalMomentum(particles []gas.Particle) gas.Vec2 {
	var total gas.Vec2
	for _, p := range particles {
		total = total.Add(p.Vel)
	}
	return total
}

// Momentum tracks the mean magnitude of the population's total
// momentum. Collisions conserve it exactly; wall rebounds do not, so
// the value wanders around zero for a confined gas.
type Momentum struct {
	name    string
	total   float64
	samples int
}

func NewMomentum() *Momentum {
	return &Momentum{name: "momentum"}
}

func (m *Momentum) Name() string { return m.name }

func (m *Momentum) Observe(particles []gas.Particle, tick int) {
	m.total += TotalMomentum(particles).Norm()
	m.samples++
}

func (m *Momentum) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *Momentum) Reset() {
	m.total = 0
	m.samples = 0
}
