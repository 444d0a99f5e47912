// Package demo runs the three password hashing scenarios: an unsalted hash
// attacked with a dictionary, a salted comparison with shared or per-password
// salts, and an adaptive hash computed twice and verified.
package demo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Jeffreasy/PasswordLab/internal/hashing"
)

// Scenario names used for logging and metrics.
const (
	ScenarioUnsalted = "unsalted"
	ScenarioSalted   = "salted"
	ScenarioAdaptive = "adaptive"
)

// Service orchestrates the hashing engines for each demo scenario.
// It is stateless apart from its immutable engines and is safe for concurrent use.
type Service struct {
	fast     *hashing.FastHasher
	adaptive hashing.AdaptiveHasher
	attack   *hashing.DictionaryAttack
	metrics  *Metrics
	logger   *slog.Logger
}

// Option customises a Service.
type Option func(*Service)

// WithMetrics records per-scenario durations and outcomes.
func WithMetrics(m *Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithLogger overrides slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// NewService wires the engines together.
func NewService(fast *hashing.FastHasher, adaptive hashing.AdaptiveHasher, attack *hashing.DictionaryAttack, opts ...Option) *Service {
	s := &Service{
		fast:     fast,
		adaptive: adaptive,
		attack:   attack,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UnsaltedResult is the outcome of DemoUnsaltedAttack.
type UnsaltedResult struct {
	Password string               `json:"password"`
	Hash     string               `json:"hash"`
	Attack   hashing.AttackResult `json:"attack"`
	Strength Strength             `json:"strength"`
}

// DemoUnsaltedAttack hashes password without salt and runs the dictionary attack on the digest.
func (s *Service) DemoUnsaltedAttack(ctx context.Context, password string) (UnsaltedResult, error) {
	if err := requirePassword(password); err != nil {
		return UnsaltedResult{}, err
	}
	defer s.observe(ScenarioUnsalted, time.Now())

	digest := s.fast.HashWithoutSalt(password)
	attack := s.attack.AttemptCrack(digest)
	s.metrics.recordAttack(attack.Found)

	s.logger.InfoContext(ctx, "demo_unsalted_completed", "cracked", attack.Found)

	return UnsaltedResult{
		Password: password,
		Hash:     digest,
		Attack:   attack,
		Strength: EstimateStrength(password),
	}, nil
}

// SaltedEntry is one side of a salted comparison.
type SaltedEntry struct {
	Password string `json:"pass"`
	Salt     string `json:"salt"`
	Hash     string `json:"hash"`
}

// SaltedComparison is the outcome of DemoSaltedComparison.
type SaltedComparison struct {
	A             SaltedEntry `json:"passwordA"`
	B             SaltedEntry `json:"passwordB"`
	UsingSameSalt bool        `json:"usingSameSalt"`
}

// DemoSaltedComparison hashes two passwords either with one shared salt or with
// a fresh salt each.
func (s *Service) DemoSaltedComparison(ctx context.Context, passwordA, passwordB string, useSameSalt bool) (SaltedComparison, error) {
	if err := requirePassword(passwordA); err != nil {
		return SaltedComparison{}, fmt.Errorf("passwordA: %w", err)
	}
	if err := requirePassword(passwordB); err != nil {
		return SaltedComparison{}, fmt.Errorf("passwordB: %w", err)
	}
	defer s.observe(ScenarioSalted, time.Now())

	var a, b hashing.SaltedDigest
	if useSameSalt {
		shared, err := s.fast.Salts().Generate()
		if err != nil {
			return SaltedComparison{}, fmt.Errorf("generate shared salt: %w", err)
		}
		if a, err = s.hashWithSalt(passwordA, shared); err != nil {
			return SaltedComparison{}, err
		}
		if b, err = s.hashWithSalt(passwordB, shared); err != nil {
			return SaltedComparison{}, err
		}
	} else {
		var err error
		if a, err = s.fast.HashWithGeneratedSalt(passwordA); err != nil {
			return SaltedComparison{}, err
		}
		if b, err = s.fast.HashWithGeneratedSalt(passwordB); err != nil {
			return SaltedComparison{}, err
		}
	}

	s.logger.InfoContext(ctx, "demo_salted_completed", "same_salt", useSameSalt)

	return SaltedComparison{
		A:             SaltedEntry{Password: passwordA, Salt: a.Salt, Hash: a.Hash},
		B:             SaltedEntry{Password: passwordB, Salt: b.Salt, Hash: b.Hash},
		UsingSameSalt: useSameSalt,
	}, nil
}

func (s *Service) hashWithSalt(password, saltHex string) (hashing.SaltedDigest, error) {
	digest, err := s.fast.HashWithGivenSalt(password, saltHex)
	if err != nil {
		return hashing.SaltedDigest{}, err
	}
	return hashing.SaltedDigest{Salt: saltHex, Hash: digest}, nil
}

// Verification reports whether each adaptive hash verified against the password.
type Verification struct {
	Hash1Valid bool `json:"hash1_valid"`
	Hash2Valid bool `json:"hash2_valid"`
}

// AdaptiveResult is the outcome of DemoAdaptiveHash.
//
// Salt1 and Salt2 are also embedded in Hash1 and Hash2 and are returned for
// display only.
type AdaptiveResult struct {
	Password     string            `json:"password"`
	Algorithm    hashing.Algorithm `json:"algorithm"`
	Hash1        string            `json:"hash1"`
	Hash2        string            `json:"hash2"`
	Salt1        string            `json:"salt1"`
	Salt2        string            `json:"salt2"`
	Verification Verification      `json:"verification"`
}

// DemoAdaptiveHash hashes password twice with the adaptive engine and verifies
// both encodings against it.
func (s *Service) DemoAdaptiveHash(ctx context.Context, password string) (AdaptiveResult, error) {
	if err := requirePassword(password); err != nil {
		return AdaptiveResult{}, err
	}
	defer s.observe(ScenarioAdaptive, time.Now())

	first, err := s.adaptive.Hash(password)
	if err != nil {
		return AdaptiveResult{}, fmt.Errorf("first adaptive hash: %w", err)
	}
	second, err := s.adaptive.Hash(password)
	if err != nil {
		return AdaptiveResult{}, fmt.Errorf("second adaptive hash: %w", err)
	}

	res := AdaptiveResult{
		Password:  password,
		Algorithm: s.adaptive.Algorithm(),
		Hash1:     first.Hash,
		Hash2:     second.Hash,
		Salt1:     first.Salt,
		Salt2:     second.Salt,
		Verification: Verification{
			Hash1Valid: s.adaptive.Verify(password, first.Hash),
			Hash2Valid: s.adaptive.Verify(password, second.Hash),
		},
	}

	s.logger.InfoContext(ctx, "demo_adaptive_completed",
		"algorithm", res.Algorithm,
		"hash1_valid", res.Verification.Hash1Valid,
		"hash2_valid", res.Verification.Hash2Valid,
	)
	return res, nil
}

func (s *Service) observe(scenario string, start time.Time) {
	s.metrics.observe(scenario, time.Since(start))
}

func requirePassword(password string) error {
	if password == "" {
		return hashing.ErrMissingInput
	}
	return nil
}
