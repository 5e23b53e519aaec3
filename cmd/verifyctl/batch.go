package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dclock24/faircheck/internal/store"
	"github.com/dclock24/faircheck/internal/verify"
)

// runBatch verifies every *.json file in dir concurrently, bounded by
// -concurrency, and prints one summary line per session in filename order
// once all of them have finished.
func runBatch(args []string) error {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config YAML (optional)")
	concurrency := fs.Int("concurrency", 0, "max sessions verified in parallel (0 = use config default)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("batch requires exactly one directory argument")
	}

	cfg := resolveConfig(*configPath)
	limit := *concurrency
	if limit <= 0 {
		limit = cfg.BatchConcurrency
	}

	files, err := sessionFiles(fs.Arg(0))
	if err != nil {
		return err
	}

	type outcome struct {
		path      string
		result    verify.Result
		inputHash string
		duration  time.Duration
		err       error
	}
	outcomes := make([]outcome, len(files))

	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(limit)

	var mu sync.Mutex
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			result, inputHash, duration, err := verifyFile(path)
			mu.Lock()
			outcomes[i] = outcome{path: path, result: result, inputHash: inputHash, duration: duration, err: err}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	s, err := store.Open(cfg.StorePath)
	if err != nil {
		return err
	}
	defer s.Close()

	anyInvalid := false
	for _, o := range outcomes {
		if o.err != nil {
			fmt.Printf("%s: LOAD ERROR: %v\n", o.path, o.err)
			anyInvalid = true
			continue
		}
		verdict := "VALID"
		if !o.result.Valid {
			verdict = "INVALID"
			anyInvalid = true
		}
		fmt.Printf("%s: %s (ticks=%d actions=%d)\n", o.path, verdict, o.result.TicksProcessed, o.result.ActionsExecuted)

		label := filepath.Base(o.path)
		if err := s.Put(label, runTimestamp(), o.inputHash, o.duration, o.result); err != nil {
			fmt.Fprintf(os.Stderr, "verifyctl: failed to record %s: %v\n", label, err)
		}
	}

	if anyInvalid {
		os.Exit(1)
	}
	return nil
}

func sessionFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %q: %w", dir, err)
	}

	var out []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	sort.Strings(out)
	return out, nil
}
