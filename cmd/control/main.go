package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/Jeffreasy/PasswordLab/internal/config"
	"github.com/Jeffreasy/PasswordLab/internal/hashing"
)

var errUsage = errors.New("usage")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			os.Exit(1)
		}
		log.Fatal(err)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) < 1 {
		usage(out)
		return errUsage
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "gen-salt":
		return genSaltCmd(rest, out)
	case "hash":
		return hashCmd(rest, out)
	case "crack":
		return crackCmd(rest, out)
	case "adaptive-hash":
		return adaptiveHashCmd(rest, out)
	case "adaptive-verify":
		return adaptiveVerifyCmd(rest, out)
	case "-h", "--help", "help":
		usage(out)
		return nil
	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func usage(out io.Writer) {
	fmt.Fprintln(out, "Usage: control <command> [args]")
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  gen-salt         Print a random hex salt")
	fmt.Fprintln(out, "  hash             SHA-256 a password, optionally salted")
	fmt.Fprintln(out, "  crack            Run the dictionary attack against an unsalted digest")
	fmt.Fprintln(out, "  adaptive-hash    Hash a password with bcrypt or argon2id")
	fmt.Fprintln(out, "  adaptive-verify  Verify a password against an adaptive hash")
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}

func genSaltCmd(args []string, out io.Writer) error {
	fs := newFlagSet("gen-salt")
	length := fs.Int("length", hashing.DefaultSaltLength, "Salt length in bytes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *length < 1 || *length > hashing.MaxSaltLength {
		return fmt.Errorf("--length must be in [1, %d]", hashing.MaxSaltLength)
	}

	salt, err := hashing.NewSaltGenerator(*length).Generate()
	if err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}
	return printJSON(out, map[string]string{"salt": salt})
}

func hashCmd(args []string, out io.Writer) error {
	fs := newFlagSet("hash")
	password := fs.String("password", "", "Password to hash")
	salt := fs.String("salt", "", "Hex salt to prepend (empty: unsalted)")
	generate := fs.Bool("generate-salt", false, "Generate a fresh salt")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *password == "" {
		return errors.New("--password is required")
	}

	fast := hashing.NewFastHasher(hashing.NewSaltGenerator(config.Load().SaltLength))

	switch {
	case *generate:
		res, err := fast.HashWithGeneratedSalt(*password)
		if err != nil {
			return fmt.Errorf("failed to hash: %w", err)
		}
		return printJSON(out, res)
	case *salt != "":
		digest, err := fast.HashWithGivenSalt(*password, *salt)
		if err != nil {
			return fmt.Errorf("failed to hash: %w", err)
		}
		return printJSON(out, hashing.SaltedDigest{Salt: *salt, Hash: digest})
	default:
		return printJSON(out, map[string]string{"hash": fast.HashWithoutSalt(*password)})
	}
}

func crackCmd(args []string, out io.Writer) error {
	fs := newFlagSet("crack")
	target := fs.String("hash", "", "Unsalted SHA-256 hex digest")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *target == "" {
		return errors.New("--hash is required")
	}
	return printJSON(out, hashing.NewDictionaryAttack(nil).AttemptCrack(*target))
}

func adaptiveHashCmd(args []string, out io.Writer) error {
	cfg := config.Load()

	fs := newFlagSet("adaptive-hash")
	password := fs.String("password", "", "Password to hash")
	algorithm := fs.String("algorithm", cfg.AdaptiveAlgorithm, "bcrypt or argon2id")
	cost := fs.Int("cost", cfg.BcryptCost, "bcrypt cost factor (4-31)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *password == "" {
		return errors.New("--password is required")
	}

	h, err := newAdaptive(cfg, *algorithm, *cost)
	if err != nil {
		return err
	}
	res, err := h.Hash(*password)
	if err != nil {
		return fmt.Errorf("failed to hash: %w", err)
	}
	info, err := h.Info(res.Hash)
	if err != nil {
		return fmt.Errorf("failed to inspect hash: %w", err)
	}
	return printJSON(out, map[string]any{"hash": res.Hash, "salt": res.Salt, "info": info})
}

func adaptiveVerifyCmd(args []string, out io.Writer) error {
	cfg := config.Load()

	fs := newFlagSet("adaptive-verify")
	password := fs.String("password", "", "Password to check")
	encoded := fs.String("hash", "", "Encoded adaptive hash")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *password == "" {
		return errors.New("--password is required")
	}

	// Verification reads cost and salt from the hash itself; only the driver matters.
	alg, ok := hashing.DetectAlgorithm(*encoded)
	if !ok {
		alg = hashing.AlgorithmBcrypt
	}
	h, err := newAdaptive(cfg, string(alg), hashing.DefaultCost)
	if err != nil {
		return err
	}
	return printJSON(out, map[string]bool{"valid": h.Verify(*password, *encoded)})
}

func newAdaptive(cfg config.Config, algorithm string, cost int) (hashing.AdaptiveHasher, error) {
	alg, err := hashing.ParseAlgorithm(algorithm)
	if err != nil {
		return nil, fmt.Errorf("invalid algorithm: %w", err)
	}
	h, err := hashing.NewAdaptiveHasher(hashing.AdaptiveOptions{
		Algorithm: alg,
		Cost:      cost,
		Argon2:    cfg.Argon2,
	})
	if err != nil {
		return nil, fmt.Errorf("invalid adaptive settings: %w", err)
	}
	return h, nil
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
