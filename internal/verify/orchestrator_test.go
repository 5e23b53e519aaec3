package verify

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dclock24/faircheck/internal/engine"
	"github.com/dclock24/faircheck/internal/position"
)

func hashOf(seed uint32) string {
	sum := sha256.Sum256([]byte(strconv.FormatUint(uint64(seed), 10)))
	return hex.EncodeToString(sum[:])
}

func baseConfig() engine.SessionConfig {
	return engine.SessionConfig{
		InitialCapital:       1000,
		InitialPrice:         100,
		InitialHouseBankroll: 10_000_000,
		TickRateMs:           100,
	}
}

// Scenario 1: valid house commitment, two actions, positive ticks/capital.
func TestScenarioOpenAndCloseProducesPositiveCapitalAndTicks(t *testing.T) {
	seed := uint32(2863311530)
	in := Input{
		HouseSeed:       seed,
		HouseCommitHash: hashOf(seed),
		Config:          baseConfig(),
		ActionLog: []LoggedAction{
			{TickNumber: 10, Action: engine.OpenPositionAction{Direction: position.Long, SizePercent: 0.5, Leverage: 10}, Timestamp: time.Unix(0, 0)},
			{TickNumber: 50, Action: engine.ClosePositionAction{}, Timestamp: time.Unix(0, 1)},
		},
	}

	result := VerifySession(in)

	assert.True(t, result.HouseCommitmentValid)
	assert.Equal(t, 2, result.ActionsExecuted)
	assert.Greater(t, result.TicksProcessed, 0)
	assert.Greater(t, result.ReplayedState.Capital, 0.0)
}

// Scenario 2: wrong house commitment hash, empty log, invalid verdict.
func TestScenarioWrongHouseCommitmentIsInvalid(t *testing.T) {
	in := Input{
		HouseSeed:       2863311530,
		HouseCommitHash: "definitely_wrong_hash",
		Config:          baseConfig(),
	}

	result := VerifySession(in)

	assert.False(t, result.Valid)
	assert.False(t, result.HouseCommitmentValid)
}

// Scenario 3: house + player + combined seed all correct, empty log, valid.
func TestScenarioHousePlayerAndCombinedSeedAllValid(t *testing.T) {
	houseSeed := uint32(11111)
	playerSeed := uint32(22222)
	combined := houseSeed ^ playerSeed

	in := Input{
		HouseSeed:        houseSeed,
		HouseCommitHash:  hashOf(houseSeed),
		PlayerSeed:       &playerSeed,
		PlayerCommitHash: hashOf(playerSeed),
		CombinedSeed:     &combined,
		Config:           baseConfig(),
	}

	result := VerifySession(in)

	assert.True(t, result.HouseCommitmentValid)
	assert.True(t, result.PlayerCommitmentValid)
	assert.True(t, result.SeedCombinationValid)
	assert.True(t, result.Valid)
}

// Scenario 3 variant: a wrong combined seed must flip SeedCombinationValid
// and the overall verdict, without touching the individual hash checks.
func TestScenarioCombinedSeedMismatchFailsButIndividualHashesStillPass(t *testing.T) {
	houseSeed := uint32(11111)
	playerSeed := uint32(22222)
	wrongCombined := uint32(1)

	in := Input{
		HouseSeed:        houseSeed,
		HouseCommitHash:  hashOf(houseSeed),
		PlayerSeed:       &playerSeed,
		PlayerCommitHash: hashOf(playerSeed),
		CombinedSeed:     &wrongCombined,
		Config:           baseConfig(),
	}

	result := VerifySession(in)

	assert.True(t, result.HouseCommitmentValid)
	assert.True(t, result.PlayerCommitmentValid)
	assert.False(t, result.SeedCombinationValid)
	assert.False(t, result.Valid)
}

// Universal property: replaySession called twice on identical input yields
// an identical final state.
func TestReplaySessionIsDeterministicAcrossRepeatedRuns(t *testing.T) {
	seed := uint32(77)
	in := Input{
		HouseSeed:       seed,
		HouseCommitHash: hashOf(seed),
		Config:          baseConfig(),
		ActionLog: []LoggedAction{
			{TickNumber: 5, Action: engine.OpenPositionAction{Direction: position.Long, SizePercent: 0.3, Leverage: 5}, Timestamp: time.Unix(0, 0)},
			{TickNumber: 40, Action: engine.ReleverAction{TargetLeverage: 8}, Timestamp: time.Unix(0, 0)},
			{TickNumber: 80, Action: engine.ClosePositionAction{}, Timestamp: time.Unix(0, 0)},
		},
	}

	first := VerifySession(in)
	second := VerifySession(in)

	assert.Equal(t, first.ReplayedState, second.ReplayedState)
	assert.Equal(t, first.TicksProcessed, second.TicksProcessed)
	assert.Equal(t, first.ActionsExecuted, second.ActionsExecuted)
}

// Capital never goes negative across a long randomized-looking but fixed
// action sequence.
func TestReplayNeverProducesNegativeCapital(t *testing.T) {
	seed := uint32(999)
	tickCount := 2000
	in := Input{
		HouseSeed:       seed,
		HouseCommitHash: hashOf(seed),
		Config:          baseConfig(),
		ActionLog: []LoggedAction{
			{TickNumber: 1, Action: engine.OpenPositionAction{Direction: position.Short, SizePercent: 0.9, Leverage: 50}, Timestamp: time.Unix(0, 0)},
			{TickNumber: 100, Action: engine.BuyOptionAction{Direction: engine.Put, Premium: 10, Multiplier: 10, DurationSeconds: 5}, Timestamp: time.Unix(0, 0)},
		},
		ExpectedFinalState: &ExpectedFinalState{TickCount: &tickCount},
	}

	result := VerifySession(in)

	assert.GreaterOrEqual(t, result.ReplayedState.Capital, 0.0)
	assert.Equal(t, tickCount, result.TicksProcessed)
}

// Exact tick_count matching: when expected_final_state.tick_count drives
// max_tick, the replay must process exactly that many ticks.
func TestReplayProcessesExactlyExpectedTickCount(t *testing.T) {
	seed := uint32(5)
	expectedTicks := 37
	in := Input{
		HouseSeed:          seed,
		HouseCommitHash:    hashOf(seed),
		Config:             baseConfig(),
		ExpectedFinalState: &ExpectedFinalState{TickCount: &expectedTicks},
	}

	result := VerifySession(in)

	require.NotNil(t, result.StateMatch)
	assert.Equal(t, expectedTicks, result.TicksProcessed)
	assert.Equal(t, expectedTicks, result.ReplayedState.TickCount)
	for _, diff := range result.StateDifferences {
		assert.NotEqual(t, "tick_count", diff.Field)
	}
}

// State mismatch: a wildly wrong expected capital must surface as an error
// and a state difference, without making the commitment checks fail.
func TestExpectedStateMismatchIsReportedAsError(t *testing.T) {
	seed := uint32(42)
	wrongCapital := 999_999_999.0
	in := Input{
		HouseSeed:          seed,
		HouseCommitHash:    hashOf(seed),
		Config:             baseConfig(),
		ExpectedFinalState: &ExpectedFinalState{Capital: &wrongCapital},
	}

	result := VerifySession(in)

	assert.True(t, result.HouseCommitmentValid)
	require.NotNil(t, result.StateMatch)
	assert.False(t, *result.StateMatch)
	assert.False(t, result.Valid)
	require.NotEmpty(t, result.StateDifferences)
	assert.Equal(t, "capital", result.StateDifferences[0].Field)
}

// A no-op action (opening a second position while one is already open) must
// be flagged as a warning rather than silently dropped or treated as fatal.
func TestNoEffectActionIsRecordedAsWarning(t *testing.T) {
	seed := uint32(123)
	in := Input{
		HouseSeed:       seed,
		HouseCommitHash: hashOf(seed),
		Config:          baseConfig(),
		ActionLog: []LoggedAction{
			{TickNumber: 1, Action: engine.OpenPositionAction{Direction: position.Long, SizePercent: 0.5, Leverage: 10}, Timestamp: time.Unix(0, 0)},
			{TickNumber: 2, Action: engine.OpenPositionAction{Direction: position.Long, SizePercent: 0.5, Leverage: 10}, Timestamp: time.Unix(0, 0)},
		},
	}

	result := VerifySession(in)

	assert.NotEmpty(t, result.Warnings)
}

// Closing a position during replay clears it and leaves the house bankroll
// positive. The exact (funding - pnl) bankroll change on close is checked
// in the engine package's TestCloseRealizesFundingToHouse.
func TestClosePositionRealizesFundingToHouseBankroll(t *testing.T) {
	seed := uint32(1)
	in := Input{
		HouseSeed:       seed,
		HouseCommitHash: hashOf(seed),
		Config:          baseConfig(),
		ActionLog: []LoggedAction{
			{TickNumber: 0, Action: engine.OpenPositionAction{Direction: position.Long, SizePercent: 0.5, Leverage: 10}, Timestamp: time.Unix(0, 0)},
			{TickNumber: 200, Action: engine.ClosePositionAction{}, Timestamp: time.Unix(0, 0)},
		},
	}

	result := VerifySession(in)

	assert.Nil(t, result.ReplayedState.Position)
	assert.Greater(t, result.ReplayedState.HouseBankroll, 0.0)
}

// At most one position at any time, even after repeated open attempts.
func TestAtMostOnePositionAtAnyTimeDuringReplay(t *testing.T) {
	seed := uint32(2024)
	in := Input{
		HouseSeed:       seed,
		HouseCommitHash: hashOf(seed),
		Config:          baseConfig(),
		ActionLog: []LoggedAction{
			{TickNumber: 0, Action: engine.OpenPositionAction{Direction: position.Long, SizePercent: 0.4, Leverage: 5}, Timestamp: time.Unix(0, 0)},
			{TickNumber: 1, Action: engine.OpenPositionAction{Direction: position.Short, SizePercent: 0.4, Leverage: 5}, Timestamp: time.Unix(0, 0)},
			{TickNumber: 2, Action: engine.OpenPositionAction{Direction: position.Short, SizePercent: 0.4, Leverage: 5}, Timestamp: time.Unix(0, 0)},
		},
	}

	result := VerifySession(in)

	if result.ReplayedState.Position != nil {
		assert.Equal(t, position.Long, result.ReplayedState.Position.Direction)
	}
}

// Sorting by (tick_number, timestamp): two actions logged out of order in
// the slice must still apply in tick order.
func TestActionsAreSortedByTickBeforeReplay(t *testing.T) {
	seed := uint32(55)
	in := Input{
		HouseSeed:       seed,
		HouseCommitHash: hashOf(seed),
		Config:          baseConfig(),
		ActionLog: []LoggedAction{
			{TickNumber: 50, Action: engine.ClosePositionAction{}, Timestamp: time.Unix(0, 0)},
			{TickNumber: 10, Action: engine.OpenPositionAction{Direction: position.Long, SizePercent: 0.5, Leverage: 10}, Timestamp: time.Unix(0, 0)},
		},
	}

	result := VerifySession(in)

	assert.Equal(t, 2, result.ActionsExecuted)
	assert.Nil(t, result.ReplayedState.Position)
}
