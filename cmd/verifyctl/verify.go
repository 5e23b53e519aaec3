package main

import (
	"crypto/sha256"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dclock24/faircheck/internal/config"
	"github.com/dclock24/faircheck/internal/report"
	"github.com/dclock24/faircheck/internal/session"
	"github.com/dclock24/faircheck/internal/store"
	"github.com/dclock24/faircheck/internal/verify"
)

func runVerify(args []string) error {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	format := fs.String("format", "text", "output format: text|json")
	configPath := fs.String("config", "", "path to config YAML (optional)")
	record := fs.String("record", "", "label to persist this run under (optional)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() != 1 {
		return fmt.Errorf("verify requires exactly one session file argument")
	}

	result, inputHash, duration, err := verifyFile(fs.Arg(0))
	if err != nil {
		return err
	}

	if err := renderResult(*format, result); err != nil {
		return err
	}

	if *record != "" {
		cfg := resolveConfig(*configPath)
		if err := persistRun(cfg, *record, inputHash, duration, result); err != nil {
			return err
		}
	}

	if !result.Valid {
		os.Exit(1)
	}
	return nil
}

// verifyFile loads and verifies the session file at path, returning the
// verdict alongside the hex SHA-256 digest of the raw file bytes and how
// long the replay took, both of which feed VerificationRecord when the run
// is persisted with -record.
func verifyFile(path string) (verify.Result, string, time.Duration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return verify.Result{}, "", 0, fmt.Errorf("open session file: %w", err)
	}

	sum := sha256.Sum256(data)
	inputHash := hex.EncodeToString(sum[:])

	in, err := session.LoadBytes(data)
	if err != nil {
		return verify.Result{}, "", 0, err
	}

	start := time.Now()
	result := verify.VerifySession(in)
	return result, inputHash, time.Since(start), nil
}

func renderResult(format string, result verify.Result) error {
	switch format {
	case "json":
		return report.WriteJSON(os.Stdout, result)
	case "text", "":
		return report.WriteText(os.Stdout, result)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func resolveConfig(path string) config.Config {
	if path == "" {
		cfg := config.Default()
		config.ApplyEnvOverrides(&cfg)
		return cfg
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "verifyctl: falling back to default config:", err)
		cfg = config.Default()
		config.ApplyEnvOverrides(&cfg)
	}
	return cfg
}

func persistRun(cfg config.Config, label, inputHash string, duration time.Duration, result verify.Result) error {
	s, err := store.Open(cfg.StorePath)
	if err != nil {
		return err
	}
	defer s.Close()

	return s.Put(label, runTimestamp(), inputHash, duration, result)
}

// runTimestamp is the single place verifyctl reads the wall clock for run
// records; both verify -record and batch use it.
func runTimestamp() time.Time {
	return time.Now()
}
