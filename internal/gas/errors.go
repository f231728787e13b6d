package gas

import "errors"

// Construction errors. All of them are reported before a simulation
// instance exists; a constructed State is always valid.
var (
	// ErrParticleCount indicates a non-positive particle count.
	ErrParticleCount = errors.New("gas: particle count must be positive")

	// ErrRadius indicates a non-positive particle radius.
	ErrRadius = errors.New("gas: particle radius must be positive")

	// ErrSpeed indicates a negative initial speed.
	ErrSpeed = errors.New("gas: initial speed must be non-negative")

	// ErrDomainSize indicates a domain too small for the particles.
	ErrDomainSize = errors.New("gas: domain sides must exceed twice the particle radius")

	// ErrTimeStep indicates a non-positive integration time step.
	ErrTimeStep = errors.New("gas: time step must be positive")

	// ErrStepCount indicates a non-positive number of steps for a run.
	ErrStepCount = errors.New("gas: step count must be positive")
)
