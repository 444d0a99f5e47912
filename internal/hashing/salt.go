package hashing

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
)

const (
	// DefaultSaltLength is the number of random bytes in a generated salt.
	DefaultSaltLength = 16

	// MaxSaltLength bounds configurable salt sizes.
	MaxSaltLength = 1024
)

// SaltGenerator produces hex-encoded salts from a cryptographically secure source.
type SaltGenerator struct {
	length int
	reader io.Reader
}

// NewSaltGenerator returns a generator reading length bytes from crypto/rand.
// A non-positive length selects DefaultSaltLength.
func NewSaltGenerator(length int) *SaltGenerator {
	return NewSaltGeneratorFrom(rand.Reader, length)
}

// NewSaltGeneratorFrom is NewSaltGenerator with an explicit entropy source.
func NewSaltGeneratorFrom(r io.Reader, length int) *SaltGenerator {
	if length <= 0 {
		length = DefaultSaltLength
	}
	return &SaltGenerator{length: length, reader: r}
}

// Length returns the salt size in bytes.
func (g *SaltGenerator) Length() int { return g.length }

// Generate returns a fresh salt of the configured length as lowercase hex.
func (g *SaltGenerator) Generate() (string, error) {
	return g.GenerateN(g.length)
}

// GenerateN returns a fresh salt of n bytes as lowercase hex.
func (g *SaltGenerator) GenerateN(n int) (string, error) {
	if n <= 0 || n > MaxSaltLength {
		return "", fmt.Errorf("%w: salt length %d must be in [1, %d]", ErrInvalidOption, n, MaxSaltLength)
	}
	buf := make([]byte, n)
	if err := readRandom(g.reader, buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// readRandom fills buf from src, mapping failures to ErrEntropyUnavailable.
func readRandom(src io.Reader, buf []byte) error {
	if _, err := io.ReadFull(src, buf); err != nil {
		return fmt.Errorf("%w: %v", ErrEntropyUnavailable, err)
	}
	return nil
}
