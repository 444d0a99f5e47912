package hashing

import (
	"crypto/sha256"
	"encoding/hex"
)

// DigestSize is the length in hex characters of every Digest output.
const DigestSize = sha256.Size * 2

// Digest returns the lowercase hex SHA-256 of data.
//
// It is the single fast primitive behind both the unsalted and salted paths, and
// the attack simulator, so encodings always agree.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
