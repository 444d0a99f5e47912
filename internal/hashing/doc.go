// Package hashing implements the password hashing techniques shown by the demo:
// unsalted SHA-256, salted SHA-256 (shared or per-password salt), adaptive hashing
// with bcrypt or Argon2id, and a tiny dictionary attack against unsalted digests.
//
// Every operation is stateless. Engines are immutable after construction and
// safe for concurrent use; nothing is cached between calls.
//
//	fast := hashing.NewFastHasher(hashing.NewSaltGenerator(hashing.DefaultSaltLength))
//	salted, _ := fast.HashWithGeneratedSalt("hunter2")
//
//	bc, _ := hashing.NewBcryptHasher(hashing.DefaultCost)
//	encoded, _ := bc.Hash("hunter2")
//	ok := bc.Verify("hunter2", encoded.Hash)
package hashing
