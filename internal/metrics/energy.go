package metrics

import (
	"github.com/san-kum/gassim/internal/gas"
)

// TotalKineticEnergy sums ½|v|² over the population (unit mass).
func TotalKineticEnergy(particles []gas.Particle) float64 {
	total := 0.0
	for _, p := range particles {
		total += 0.5 * p.Vel.Dot(p.Vel)
	}
	return total
}

// KineticEnergy tracks the mean total kinetic energy over a run. For an
// elastic gas this should stay flat; drift points at a resolver bug.
type KineticEnergy struct {
	name    string
	total   float64
	samples int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (k *KineticEnergy) Name() string { return k.name }

func (k *KineticEnergy) Observe(particles []gas.Particle, tick int) {
	k.total += TotalKineticEnergy(particles)
	k.samples++
}

func (k *KineticEnergy) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.total / float64(k.samples)
}

func (k *KineticEnergy) Reset() {
	k.total = 0
	k.samples = 0
}
