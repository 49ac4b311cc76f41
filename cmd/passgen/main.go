package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/vaultpass/passgen-go/internal/config"
	"github.com/vaultpass/passgen-go/internal/crypto"
)

// generateConfig holds the parsed flags of the default command.
type generateConfig struct {
	Request   crypto.Request
	MaxLength int
	Count     int
}

func parseGenerateFlags(args []string, stderr io.Writer) (generateConfig, error) {
	fs := flag.NewFlagSet("passgen", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var cfg generateConfig
	fs.IntVar(&cfg.Request.Length, "length", 12, "password length")
	fs.BoolVar(&cfg.Request.Classes.Lowercase, "lower", true, "include lowercase letters")
	fs.BoolVar(&cfg.Request.Classes.Uppercase, "upper", true, "include uppercase letters")
	fs.BoolVar(&cfg.Request.Classes.Digits, "numbers", true, "include digits")
	fs.BoolVar(&cfg.Request.Classes.Specials, "specials", false, "include special characters")
	fs.IntVar(&cfg.MaxLength, "max-length", crypto.DefaultMaxLength, "longest accepted length")
	fs.IntVar(&cfg.Count, "count", 1, "number of passwords to generate")

	if err := fs.Parse(args); err != nil {
		return generateConfig{}, err
	}
	if cfg.Count < 1 {
		return generateConfig{}, fmt.Errorf("count must be at least 1, got %d", cfg.Count)
	}
	return cfg, nil
}

func runGenerate(args []string, stdout, stderr io.Writer) error {
	cfg, err := parseGenerateFlags(args, stderr)
	if err != nil {
		return err
	}

	gen := crypto.NewGenerator(cfg.MaxLength)
	for i := 0; i < cfg.Count; i++ {
		pw, err := gen.Generate(cfg.Request)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, pw)
	}
	return nil
}

// runToken mints an API token signed with JWT_SECRET.
func runToken(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("passgen token", flag.ContinueOnError)
	fs.SetOutput(stderr)

	client := fs.String("client", "", "client name embedded in the token")
	expiry := fs.Duration("expiry", 0, "token lifetime (default TOKEN_EXPIRY)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if *expiry <= 0 {
		*expiry = cfg.TokenExpiry
	}

	token, err := crypto.IssueToken(*client, cfg.JWTSecret, *expiry)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, token)
	return nil
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) > 0 && args[0] == "token" {
		return runToken(args[1:], stdout, stderr)
	}
	return runGenerate(args, stdout, stderr)
}

func main() {
	_ = godotenv.Load()

	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
