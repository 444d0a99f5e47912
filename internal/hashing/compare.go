package hashing

import "crypto/subtle"

// SecureCompare reports whether a and b are equal without short-circuiting on
// the first differing byte.
func SecureCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// SecureCompareBytes is SecureCompare for byte slices.
func SecureCompareBytes(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
