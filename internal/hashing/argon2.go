package hashing

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	DefaultArgon2Memory  uint32 = 64 * 1024
	DefaultArgon2Time    uint32 = 3
	DefaultArgon2Threads uint8  = 2
	DefaultArgon2KeyLen  uint32 = 32
	DefaultArgon2SaltLen uint32 = 16

	// Upper bounds applied to parameters parsed from untrusted hashes.
	maxArgon2Memory uint32 = 1 << 20 // 1 GiB
	maxArgon2Time   uint32 = 64
	maxArgon2KeyLen uint32 = 1024
)

// Argon2Options configures an Argon2idHasher. Memory is in KiB.
type Argon2Options struct {
	Memory  uint32
	Time    uint32
	Threads uint8
	KeyLen  uint32
	SaltLen uint32
}

// DefaultArgon2Options returns the recommended Argon2id parameters.
func DefaultArgon2Options() Argon2Options {
	return Argon2Options{
		Memory:  DefaultArgon2Memory,
		Time:    DefaultArgon2Time,
		Threads: DefaultArgon2Threads,
		KeyLen:  DefaultArgon2KeyLen,
		SaltLen: DefaultArgon2SaltLen,
	}
}

func (o Argon2Options) withDefaults() Argon2Options {
	d := DefaultArgon2Options()
	if o.Memory == 0 {
		o.Memory = d.Memory
	}
	if o.Time == 0 {
		o.Time = d.Time
	}
	if o.Threads == 0 {
		o.Threads = d.Threads
	}
	if o.KeyLen == 0 {
		o.KeyLen = d.KeyLen
	}
	if o.SaltLen == 0 {
		o.SaltLen = d.SaltLen
	}
	return o
}

func (o Argon2Options) validate() error {
	switch {
	case o.Time > maxArgon2Time:
		return fmt.Errorf("%w: argon2 time %d exceeds %d", ErrInvalidOption, o.Time, maxArgon2Time)
	case o.Memory < 8*uint32(o.Threads):
		return fmt.Errorf("%w: argon2 memory %d KiB must be >= 8*threads", ErrInvalidOption, o.Memory)
	case o.Memory > maxArgon2Memory:
		return fmt.Errorf("%w: argon2 memory %d KiB exceeds %d", ErrInvalidOption, o.Memory, maxArgon2Memory)
	case o.KeyLen < 4 || o.KeyLen > maxArgon2KeyLen:
		return fmt.Errorf("%w: argon2 key length %d", ErrInvalidOption, o.KeyLen)
	case o.SaltLen < 8:
		return fmt.Errorf("%w: argon2 salt length %d must be >= 8", ErrInvalidOption, o.SaltLen)
	}
	return nil
}

// Argon2idHasher implements AdaptiveHasher with Argon2id in PHC string format:
//
//	$argon2id$v=19$m=65536,t=3,p=2$<salt b64>$<key b64>
type Argon2idHasher struct {
	opts   Argon2Options
	reader io.Reader
}

// NewArgon2idHasher validates opts (zero fields take defaults) and returns a hasher.
func NewArgon2idHasher(opts Argon2Options) (*Argon2idHasher, error) {
	return newArgon2idHasher(opts, rand.Reader)
}

func newArgon2idHasher(opts Argon2Options, r io.Reader) (*Argon2idHasher, error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &Argon2idHasher{opts: opts, reader: r}, nil
}

// Algorithm returns AlgorithmArgon2id.
func (h *Argon2idHasher) Algorithm() Algorithm { return AlgorithmArgon2id }

// Options returns the effective parameters.
func (h *Argon2idHasher) Options() Argon2Options { return h.opts }

// Hash derives a key from password and a fresh random salt.
func (h *Argon2idHasher) Hash(password string) (AdaptiveHash, error) {
	salt := make([]byte, h.opts.SaltLen)
	if err := readRandom(h.reader, salt); err != nil {
		return AdaptiveHash{}, err
	}
	key := argon2.IDKey([]byte(password), salt, h.opts.Time, h.opts.Memory, h.opts.Threads, h.opts.KeyLen)
	saltB64 := base64.RawStdEncoding.EncodeToString(salt)
	encoded := fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		AlgorithmArgon2id, argon2.Version, h.opts.Memory, h.opts.Time, h.opts.Threads,
		saltB64, base64.RawStdEncoding.EncodeToString(key))
	return AdaptiveHash{Hash: encoded, Salt: saltB64}, nil
}

// Verify recomputes the key with the parameters embedded in encoded and
// compares in constant time.
func (h *Argon2idHasher) Verify(password, encoded string) (ok bool) {
	if encoded == "" {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()
	p, err := decodeArgon2id(encoded)
	if err != nil {
		return false
	}
	key := argon2.IDKey([]byte(password), p.salt, p.opts.Time, p.opts.Memory, p.opts.Threads, p.opts.KeyLen)
	return SecureCompareBytes(key, p.key)
}

// Info reports the parameters of an Argon2id hash. Cost is the time parameter.
func (h *Argon2idHasher) Info(encoded string) (HashInfo, error) {
	p, err := decodeArgon2id(encoded)
	if err != nil {
		return HashInfo{}, err
	}
	return HashInfo{
		Algorithm: AlgorithmArgon2id,
		Cost:      int(p.opts.Time),
		Params: map[string]any{
			"version": p.version,
			"memory":  p.opts.Memory,
			"time":    p.opts.Time,
			"threads": p.opts.Threads,
			"key_len": p.opts.KeyLen,
		},
	}, nil
}

type argon2idParams struct {
	version int
	opts    Argon2Options
	salt    []byte
	key     []byte
}

func decodeArgon2id(encoded string) (*argon2idParams, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != string(AlgorithmArgon2id) {
		return nil, fmt.Errorf("%w: not an argon2id PHC string", ErrInvalidHash)
	}

	version, err := strconv.Atoi(strings.TrimPrefix(parts[2], "v="))
	if err != nil || !strings.HasPrefix(parts[2], "v=") {
		return nil, fmt.Errorf("%w: bad version segment %q", ErrInvalidHash, parts[2])
	}
	if version != argon2.Version {
		return nil, fmt.Errorf("%w: unsupported argon2 version %d", ErrInvalidHash, version)
	}

	var opts Argon2Options
	for _, kv := range strings.Split(parts[3], ",") {
		k, v, found := strings.Cut(kv, "=")
		if !found {
			return nil, fmt.Errorf("%w: bad parameter %q", ErrInvalidHash, kv)
		}
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: bad parameter %q", ErrInvalidHash, kv)
		}
		switch k {
		case "m":
			opts.Memory = uint32(n)
		case "t":
			opts.Time = uint32(n)
		case "p":
			if n > 255 {
				return nil, fmt.Errorf("%w: bad parallelism %d", ErrInvalidHash, n)
			}
			opts.Threads = uint8(n)
		default:
			return nil, fmt.Errorf("%w: unknown parameter %q", ErrInvalidHash, k)
		}
	}
	if opts.Memory == 0 || opts.Time == 0 || opts.Threads == 0 {
		return nil, fmt.Errorf("%w: missing m/t/p", ErrInvalidHash)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, fmt.Errorf("%w: salt: %v", ErrInvalidHash, err)
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, fmt.Errorf("%w: key: %v", ErrInvalidHash, err)
	}
	opts.KeyLen = uint32(len(key))
	opts.SaltLen = uint32(len(salt))
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}

	return &argon2idParams{version: version, opts: opts, salt: salt, key: key}, nil
}
