// Package viz renders the particle box in the terminal.
//
// The live view is a Bubble Tea program that ticks the simulation at a
// fixed 40ms cadence and draws every particle on a Braille-based pixel
// canvas, with a kinetic energy sparkline alongside. The simulation
// core has no notion of frames or wall-clock time; this package owns
// the cadence and only consumes position snapshots.
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Reset to a fresh, identically seeded state
//	Q     - Quit
//	?     - Toggle help overlay
package viz
