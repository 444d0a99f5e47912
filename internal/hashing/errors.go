package hashing

import "errors"

// Sentinel errors returned by the hashing engines. Compare with errors.Is.
var (
	// ErrMissingInput is returned when a required password is absent or empty.
	ErrMissingInput = errors.New("password is required")

	// ErrInvalidSaltEncoding is returned when a salt is not valid hexadecimal.
	ErrInvalidSaltEncoding = errors.New("salt is not valid hexadecimal")

	// ErrInvalidCostFactor is returned when an adaptive cost is outside [MinCost, MaxCost].
	ErrInvalidCostFactor = errors.New("cost factor out of range")

	// ErrEntropyUnavailable is returned when the secure random source cannot be read.
	ErrEntropyUnavailable = errors.New("secure random source unavailable")

	// ErrInvalidHash is returned when an encoded adaptive hash cannot be parsed.
	ErrInvalidHash = errors.New("invalid or unrecognised hash string")

	// ErrInvalidOption is returned by constructors given out-of-range parameters.
	ErrInvalidOption = errors.New("invalid option value")
)
