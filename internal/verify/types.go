package verify

import (
	"time"

	"github.com/dclock24/faircheck/internal/engine"
)

// Input is the core's entry point: a fully-parsed, already-validated
// session record. The (out-of-scope) JSON loader is responsible for
// producing this value; the core never parses JSON itself.
type Input struct {
	HouseSeed       uint32
	HouseCommitHash string

	PlayerSeed       *uint32
	PlayerCommitHash string
	CombinedSeed     *uint32

	Config     engine.SessionConfig
	ActionLog  []LoggedAction

	ExpectedFinalState *ExpectedFinalState
}

// LoggedAction is one entry in a session's action log: a player command
// paired with the tick it was logged against and a wall-clock timestamp
// used only to break ties among actions sharing a tick number.
type LoggedAction struct {
	TickNumber int
	Action     engine.Action
	Timestamp  time.Time
}

// ExpectedFinalState is the operator's claimed final state. Every field is
// optional; only the fields present are compared against the replayed
// state.
type ExpectedFinalState struct {
	Capital     *float64
	TickCount   *int
	TotalProfit *float64
	TotalLosses *float64
}

// StateDifference records a single field-level mismatch between the
// replayed state and the operator's claimed final state.
type StateDifference struct {
	Field    string
	Expected float64
	Actual   float64
}

// Result is the complete output of a verify_session call.
type Result struct {
	Valid bool

	Errors   []error
	Warnings []string

	HouseCommitmentValid bool
	PlayerCommitmentValid bool
	SeedCombinationValid  bool

	ReplayedState   engine.GameState
	TicksProcessed  int
	ActionsExecuted int

	StateMatch       *bool
	StateDifferences []StateDifference
}
