package gas

// ReflectBounds bounces particles off the domain edges, each axis
// handled independently. A particle past an edge gets that velocity
// component inverted and is placed one unit inside the trigger band
// (radius+1 or size-radius-1); without the one-unit offset the same
// edge check would fire again on the next tick.
func (s *State) ReflectBounds() {
	for i := range s.particles {
		p := &s.particles[i]

		if p.Pos.X < s.radius {
			p.Vel.X = -p.Vel.X
			p.Pos.X = s.radius + 1
		}
		if p.Pos.X > s.width-s.radius {
			p.Vel.X = -p.Vel.X
			p.Pos.X = s.width - s.radius - 1
		}

		if p.Pos.Y < s.radius {
			p.Vel.Y = -p.Vel.Y
			p.Pos.Y = s.radius + 1
		}
		if p.Pos.Y > s.height-s.radius {
			p.Vel.Y = -p.Vel.Y
			p.Pos.Y = s.height - s.radius - 1
		}
	}
}
