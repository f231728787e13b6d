// Package gas simulates a fixed population of identical circular
// particles bouncing elastically inside a rectangular box.
//
// One discrete step of the simulation is driven by [Stepper.Tick]:
//
//   - forward Euler position update ([State.Advance])
//   - all-pairs collision detection ([State.CollidingPairs])
//   - greedy reduction to a conflict-free matching ([MatchPairs])
//   - equal-mass elastic collision response ([State.Resolve])
//   - wall rebound ([State.ReflectBounds])
//
// The package is single-threaded: a Stepper owns its State exclusively
// and Tick runs to completion before returning. Callers drive the
// simulation by calling Tick once per frame, or use [Stepper.Run] to
// advance a fixed number of steps and collect the full trajectory.
//
// Detection is a deliberate O(N²) all-pairs scan, and the matching is a
// greedy order-dependent heuristic rather than a maximum matching.
// Particles moving more than a diameter per step can tunnel through
// each other or a wall undetected.
package gas
