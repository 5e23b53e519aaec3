// Package store persists verification runs in an embedded key-value log so
// `verifyctl history` can list past results without re-running a replay.
// It is adapter-layer bookkeeping: nothing here participates in a
// verification verdict.
package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/dclock24/faircheck/internal/verify"
)

const runKeyPrefix = "run:"

// Record is one persisted verification outcome, keyed by the time the run
// was recorded.
type Record struct {
	RunAt    time.Time     `json:"runAt"`
	Label    string        `json:"label"`
	Result   verify.Result `json:"-"`
	// InputHash is the hex SHA-256 digest of the raw session file bytes
	// that were verified, so a later audit can confirm which exact input
	// produced this record without re-reading the original file.
	InputHash string        `json:"inputHash"`
	Duration  time.Duration `json:"duration"`

	// Summary fields are stored denormalized so History can list runs
	// without reconstructing a full verify.Result (whose Errors are
	// interface values and don't round-trip through JSON).
	Valid           bool     `json:"valid"`
	Errors          []string `json:"errors"`
	Warnings        []string `json:"warnings"`
	TicksProcessed  int      `json:"ticksProcessed"`
	ActionsExecuted int      `json:"actionsExecuted"`
}

// Store wraps a LevelDB handle. Callers are responsible for Close.
type Store struct {
	db *leveldb.DB
}

// Open opens (or creates) a LevelDB database at path.
func Open(path string) (*Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("open leveldb %q: %w", path, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Put records a verification result under label, timestamped at runAt, along
// with the hex SHA-256 digest of the input bytes that were verified and how
// long the replay took.
func (s *Store) Put(label string, runAt time.Time, inputHash string, duration time.Duration, result verify.Result) error {
	errs := make([]string, 0, len(result.Errors))
	for _, err := range result.Errors {
		errs = append(errs, err.Error())
	}

	rec := Record{
		RunAt:           runAt,
		Label:           label,
		InputHash:       inputHash,
		Duration:        duration,
		Valid:           result.Valid,
		Errors:          errs,
		Warnings:        result.Warnings,
		TicksProcessed:  result.TicksProcessed,
		ActionsExecuted: result.ActionsExecuted,
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal run record: %w", err)
	}

	key := fmt.Sprintf("%s%020d:%s", runKeyPrefix, runAt.UnixNano(), label)
	return s.db.Put([]byte(key), data, nil)
}

// History returns every recorded run, oldest first.
func (s *Store) History() ([]Record, error) {
	iter := s.db.NewIterator(util.BytesPrefix([]byte(runKeyPrefix)), nil)
	defer iter.Release()

	var out []Record
	for iter.Next() {
		var rec Record
		if err := json.Unmarshal(iter.Value(), &rec); err != nil {
			return nil, fmt.Errorf("decode run record: %w", err)
		}
		out = append(out, rec)
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("iterate run records: %w", err)
	}
	return out, nil
}
