package gas

// Advance moves every particle along its velocity for one time step
// (forward Euler). Applied uniformly before collision checks; a
// particle covering more than a diameter in one step can tunnel past a
// neighbour or a wall without being detected.
func (s *State) Advance(dt float64) {
	for i := range s.particles {
		p := &s.particles[i]
		p.Pos = p.Pos.Add(p.Vel.Scale(dt))
	}
}
