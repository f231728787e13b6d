package gas

import "math"

// CollidingPairs scans every unordered pair of particles and returns
// those whose centers are within one diameter of each other. Pairs are
// enumerated with A ascending, then B ascending for fixed A; the
// matching reduction depends on this order.
func (s *State) CollidingPairs() []Pair {
	diameter := 2 * s.radius
	d2 := diameter * diameter

	var pairs []Pair
	for i := 0; i < len(s.particles); i++ {
		for j := i + 1; j < len(s.particles); j++ {
			dp := s.particles[j].Pos.Sub(s.particles[i].Pos)
			if dp.Dot(dp) <= d2 {
				pairs = append(pairs, Pair{A: i, B: j})
			}
		}
	}
	return pairs
}

// MatchPairs reduces raw colliding pairs to a matching: a subset in
// which every particle index appears in at most one pair. Three passes
// over the pairs in enumeration order:
//
//  1. keep only the first pair for each distinct A
//  2. of those, keep only the first pair for each distinct B
//  3. drop pairs whose A still occurs as a B among the survivors
//
// The reduction is greedy and order-dependent: simultaneous multi-way
// contacts can lose valid pairs. That is intentional and must not be
// replaced with a maximum or physically canonical matching, or seeded
// trajectories change.
func MatchPairs(pairs []Pair) []Pair {
	if len(pairs) == 0 {
		return nil
	}

	seenA := make(map[int]bool, len(pairs))
	firstA := make([]Pair, 0, len(pairs))
	for _, p := range pairs {
		if !seenA[p.A] {
			seenA[p.A] = true
			firstA = append(firstA, p)
		}
	}

	seenB := make(map[int]bool, len(firstA))
	firstB := make([]Pair, 0, len(firstA))
	for _, p := range firstA {
		if !seenB[p.B] {
			seenB[p.B] = true
			firstB = append(firstB, p)
		}
	}

	matched := make([]Pair, 0, len(firstB))
	for _, p := range firstB {
		if !seenB[p.A] {
			matched = append(matched, p)
		}
	}
	return matched
}

// Resolve applies the equal-mass elastic collision law to every matched
// pair: the velocity component along the line of centers is exchanged,
// the tangential component is untouched, and the pair is pushed apart
// symmetrically about its midpoint until the separation is exactly one
// diameter. Pairs whose centers coincide are skipped for this tick (the
// correction would divide by zero); their particles are left unchanged.
// Returns the number of pairs actually resolved.
func (s *State) Resolve(matching []Pair) int {
	resolved := 0
	for _, pr := range matching {
		a := &s.particles[pr.A]
		b := &s.particles[pr.B]

		dp := b.Pos.Sub(a.Pos)
		n2 := dp.Dot(dp)
		if n2 == 0 {
			continue
		}

		dv := a.Vel.Sub(b.Vel)
		k := dv.Dot(dp) / n2
		a.Vel = a.Vel.Sub(dp.Scale(k))
		b.Vel = b.Vel.Add(dp.Scale(k))

		n := math.Sqrt(n2)
		sep := 0.5 * (2*s.radius/n - 1)
		a.Pos = a.Pos.Sub(dp.Scale(sep))
		b.Pos = b.Pos.Add(dp.Scale(sep))

		resolved++
	}
	return resolved
}
