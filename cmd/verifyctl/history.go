package main

import (
	"flag"
	"fmt"

	"github.com/dclock24/faircheck/internal/store"
)

func runHistory(args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config YAML (optional)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := resolveConfig(*configPath)

	s, err := store.Open(cfg.StorePath)
	if err != nil {
		return err
	}
	defer s.Close()

	records, err := s.History()
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println("no recorded runs")
		return nil
	}

	for _, rec := range records {
		verdict := "INVALID"
		if rec.Valid {
			verdict = "VALID"
		}
		fmt.Printf("%s  %-20s %s (ticks=%d actions=%d duration=%s input=%s)\n",
			rec.RunAt.Format("2006-01-02T15:04:05Z07:00"), rec.Label, verdict,
			rec.TicksProcessed, rec.ActionsExecuted, rec.Duration, shortHash(rec.InputHash))
	}
	return nil
}

// shortHash truncates a hex digest to a readable prefix for the history
// listing; the full value still lives in the store record.
func shortHash(hash string) string {
	const prefixLen = 12
	if len(hash) <= prefixLen {
		return hash
	}
	return hash[:prefixLen]
}
