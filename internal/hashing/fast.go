package hashing

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// SaltedDigest pairs a hex salt with the digest it produced.
type SaltedDigest struct {
	Salt string `json:"salt"`
	Hash string `json:"hash"`
}

// FastHasher implements unsalted and salted SHA-256 password hashing.
//
// Salted digests are always Digest(salt || password). There is no separate
// verify step; callers recompute with the stored salt and compare, see
// VerifySaltedDigest.
type FastHasher struct {
	salts *SaltGenerator
}

// NewFastHasher creates a FastHasher drawing salts from salts.
func NewFastHasher(salts *SaltGenerator) *FastHasher {
	if salts == nil {
		salts = NewSaltGenerator(DefaultSaltLength)
	}
	return &FastHasher{salts: salts}
}

// Salts exposes the generator so callers can create a shared salt explicitly.
func (h *FastHasher) Salts() *SaltGenerator { return h.salts }

// HashWithoutSalt returns Digest(password). Insecure; it only feeds the attack demo.
func (h *FastHasher) HashWithoutSalt(password string) string {
	return Digest([]byte(password))
}

// HashWithGivenSalt returns Digest(salt || password) where salt is decoded from saltHex.
func (h *FastHasher) HashWithGivenSalt(password, saltHex string) (string, error) {
	salt, err := DecodeSalt(saltHex)
	if err != nil {
		return "", err
	}
	buf := make([]byte, 0, len(salt)+len(password))
	buf = append(buf, salt...)
	buf = append(buf, password...)
	return Digest(buf), nil
}

// HashWithGeneratedSalt generates a fresh salt and hashes password with it.
// The returned salt is exactly the one that produced the digest.
func (h *FastHasher) HashWithGeneratedSalt(password string) (SaltedDigest, error) {
	saltHex, err := h.salts.Generate()
	if err != nil {
		return SaltedDigest{}, fmt.Errorf("generate salt: %w", err)
	}
	digest, err := h.HashWithGivenSalt(password, saltHex)
	if err != nil {
		return SaltedDigest{}, err
	}
	return SaltedDigest{Salt: saltHex, Hash: digest}, nil
}

// VerifySaltedDigest recomputes Digest(salt || password) and compares it with
// digestHex in constant time. Any decode failure yields false.
func (h *FastHasher) VerifySaltedDigest(password, saltHex, digestHex string) bool {
	computed, err := h.HashWithGivenSalt(password, saltHex)
	if err != nil {
		return false
	}
	return SecureCompare(computed, NormalizeDigest(digestHex))
}

// DecodeSalt decodes a hex salt, accepting either letter case.
func DecodeSalt(saltHex string) ([]byte, error) {
	salt, err := hex.DecodeString(strings.TrimSpace(saltHex))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSaltEncoding, err)
	}
	return salt, nil
}

// NormalizeDigest trims and lowercases a hex digest so it matches Digest output.
func NormalizeDigest(digestHex string) string {
	return strings.ToLower(strings.TrimSpace(digestHex))
}
