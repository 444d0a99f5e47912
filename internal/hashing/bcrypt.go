package hashing

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the bcrypt work factor used by the demo (2^12 rounds).
	DefaultCost = 12

	// MinCost and MaxCost bound the accepted work factor.
	MinCost = bcrypt.MinCost
	MaxCost = bcrypt.MaxCost

	// MaxBcryptPasswordBytes is the bcrypt input limit. Longer passwords are
	// truncated to this many bytes by both Hash and Verify.
	MaxBcryptPasswordBytes = 72

	// bcryptSaltLen is the radix-64 length of the salt inside an encoded hash.
	bcryptSaltLen = 22
)

// BcryptHasher implements AdaptiveHasher with bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher with the given logarithmic cost.
// Returns ErrInvalidCostFactor outside [MinCost, MaxCost].
func NewBcryptHasher(cost int) (*BcryptHasher, error) {
	if cost < MinCost || cost > MaxCost {
		return nil, fmt.Errorf("%w: bcrypt cost %d must be in [%d, %d]",
			ErrInvalidCostFactor, cost, MinCost, MaxCost)
	}
	return &BcryptHasher{cost: cost}, nil
}

// Algorithm returns AlgorithmBcrypt.
func (h *BcryptHasher) Algorithm() Algorithm { return AlgorithmBcrypt }

// Cost returns the configured work factor.
func (h *BcryptHasher) Cost() int { return h.cost }

// Hash returns the Modular Crypt Format encoding ("$2a$12$..."). bcrypt draws
// a fresh 16-byte salt per call.
func (h *BcryptHasher) Hash(password string) (AdaptiveHash, error) {
	encoded, err := bcrypt.GenerateFromPassword(bcryptInput(password), h.cost)
	if err != nil {
		// Cost is validated in the constructor, so the remaining failure is the salt read.
		return AdaptiveHash{}, fmt.Errorf("%w: bcrypt: %v", ErrEntropyUnavailable, err)
	}
	salt, err := bcryptSalt(string(encoded))
	if err != nil {
		return AdaptiveHash{}, err
	}
	return AdaptiveHash{Hash: string(encoded), Salt: salt}, nil
}

// Verify compares password against a bcrypt hash. bcrypt compares the
// recomputed hash with subtle.ConstantTimeCompare.
func (h *BcryptHasher) Verify(password, encoded string) (ok bool) {
	if encoded == "" {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()
	return bcrypt.CompareHashAndPassword([]byte(encoded), bcryptInput(password)) == nil
}

// Info extracts the cost factor from a bcrypt hash.
func (h *BcryptHasher) Info(encoded string) (HashInfo, error) {
	if alg, ok := DetectAlgorithm(encoded); !ok || alg != AlgorithmBcrypt {
		return HashInfo{}, fmt.Errorf("%w: not a bcrypt hash", ErrInvalidHash)
	}
	cost, err := bcrypt.Cost([]byte(encoded))
	if err != nil {
		return HashInfo{}, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	salt, err := bcryptSalt(encoded)
	if err != nil {
		return HashInfo{}, err
	}
	return HashInfo{
		Algorithm: AlgorithmBcrypt,
		Cost:      cost,
		Params: map[string]any{
			"version": strings.Split(encoded, "$")[1],
			"salt":    salt,
		},
	}, nil
}

// bcryptInput returns at most the first MaxBcryptPasswordBytes of password.
func bcryptInput(password string) []byte {
	b := []byte(password)
	if len(b) > MaxBcryptPasswordBytes {
		b = b[:MaxBcryptPasswordBytes]
	}
	return b
}

// bcryptSalt returns the salt segment of "$2a$CC$<22 salt><31 hash>".
func bcryptSalt(encoded string) (string, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 4 || len(parts[3]) < bcryptSaltLen {
		return "", fmt.Errorf("%w: malformed bcrypt hash", ErrInvalidHash)
	}
	return parts[3][:bcryptSaltLen], nil
}
