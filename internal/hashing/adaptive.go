package hashing

import (
	"fmt"
	"strings"
)

// Algorithm names an adaptive hashing driver.
type Algorithm string

const (
	AlgorithmBcrypt   Algorithm = "bcrypt"
	AlgorithmArgon2id Algorithm = "argon2id"
)

// ParseAlgorithm maps a configuration string onto an Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch Algorithm(strings.ToLower(strings.TrimSpace(name))) {
	case AlgorithmBcrypt, "":
		return AlgorithmBcrypt, nil
	case AlgorithmArgon2id:
		return AlgorithmArgon2id, nil
	default:
		return "", fmt.Errorf("%w: unknown adaptive algorithm %q", ErrInvalidOption, name)
	}
}

// AdaptiveHash is the result of an adaptive Hash call.
//
// Hash is self-describing and is all Verify needs. Salt repeats the salt
// segment embedded in Hash and is returned only so the demo can display it.
type AdaptiveHash struct {
	Hash string `json:"hash"`
	Salt string `json:"salt"`
}

// HashInfo describes an encoded adaptive hash without verifying it.
type HashInfo struct {
	Algorithm Algorithm      `json:"algorithm"`
	Cost      int            `json:"cost"`
	Params    map[string]any `json:"params,omitempty"`
}

// AdaptiveHasher is a slow, self-salting password hash.
//
// Implementations must be safe for concurrent use. Hash must produce a
// different encoding on every call, even for the same password.
type AdaptiveHasher interface {
	Algorithm() Algorithm
	Hash(password string) (AdaptiveHash, error)

	// Verify reports whether password matches encoded. Malformed or empty
	// input and internal failures all yield false; it never errors.
	Verify(password, encoded string) bool

	Info(encoded string) (HashInfo, error)
}

// AdaptiveOptions selects and parameterises an AdaptiveHasher.
type AdaptiveOptions struct {
	Algorithm Algorithm
	Cost      int
	Argon2    Argon2Options
}

// NewAdaptiveHasher builds the driver named by opts.Algorithm.
func NewAdaptiveHasher(opts AdaptiveOptions) (AdaptiveHasher, error) {
	switch opts.Algorithm {
	case AlgorithmBcrypt, "":
		return NewBcryptHasher(opts.Cost)
	case AlgorithmArgon2id:
		return NewArgon2idHasher(opts.Argon2)
	default:
		return nil, fmt.Errorf("%w: unknown adaptive algorithm %q", ErrInvalidOption, opts.Algorithm)
	}
}

// DetectAlgorithm guesses the driver from the hash prefix.
func DetectAlgorithm(encoded string) (Algorithm, bool) {
	switch {
	case strings.HasPrefix(encoded, "$argon2id$"):
		return AlgorithmArgon2id, true
	case strings.HasPrefix(encoded, "$2a$"),
		strings.HasPrefix(encoded, "$2b$"),
		strings.HasPrefix(encoded, "$2y$"):
		return AlgorithmBcrypt, true
	default:
		return "", false
	}
}
