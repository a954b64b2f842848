package particles

import "errors"

// Domain errors for particle operations.
var (
	// ErrInvalidMass indicates a particle with zero, negative or non-finite mass.
	ErrInvalidMass = errors.New("particles: mass must be positive and finite")

	// ErrInvalidIndex indicates a particle index outside the collection.
	ErrInvalidIndex = errors.New("particles: index out of range")

	// ErrUnknownPairing indicates an unrecognised pairing mode name.
	ErrUnknownPairing = errors.New("particles: unknown pairing mode")
)
