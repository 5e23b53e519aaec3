package session

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dclock24/faircheck/internal/engine"
	"github.com/dclock24/faircheck/internal/position"
)

const sampleSession = `{
	"houseSeed": 2863311530,
	"houseCommitHash": "3c2c4d1f0b9e3a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a",
	"config": {
		"initial_capital": 1000,
		"initial_price": 100,
		"initial_house_bankroll": 10000000,
		"tick_rate_ms": 100
	},
	"actionLog": [
		{"tickNumber": 10, "action": {"type": "open_position", "direction": "long", "sizePercent": 0.5, "leverage": 10}, "timestamp": "2026-01-01T00:00:00Z"},
		{"tickNumber": 50, "action": {"type": "close_position"}, "timestamp": "2026-01-01T00:00:05Z"}
	],
	"expectedFinalState": {
		"tickCount": 60
	}
}`

func TestLoadBytesParsesActionLogAndExpectedState(t *testing.T) {
	in, err := LoadBytes([]byte(sampleSession))
	require.NoError(t, err)

	assert.Equal(t, uint32(2863311530), in.HouseSeed)
	require.Len(t, in.ActionLog, 2)

	open, ok := in.ActionLog[0].Action.(engine.OpenPositionAction)
	require.True(t, ok)
	assert.Equal(t, position.Long, open.Direction)
	assert.Equal(t, 0.5, open.SizePercent)
	assert.Equal(t, 10.0, open.Leverage)

	_, ok = in.ActionLog[1].Action.(engine.ClosePositionAction)
	assert.True(t, ok)

	require.NotNil(t, in.ExpectedFinalState)
	require.NotNil(t, in.ExpectedFinalState.TickCount)
	assert.Equal(t, 60, *in.ExpectedFinalState.TickCount)
}

func TestLoadBytesRejectsMissingHouseCommitHash(t *testing.T) {
	_, err := LoadBytes([]byte(`{"houseSeed": 1, "config": {}}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestLoadBytesRejectsUnknownActionType(t *testing.T) {
	raw := `{
		"houseSeed": 1,
		"houseCommitHash": "x",
		"config": {},
		"actionLog": [{"tickNumber": 0, "action": {"type": "teleport"}, "timestamp": "2026-01-01T00:00:00Z"}]
	}`
	_, err := LoadBytes([]byte(raw))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "teleport"))
}

func TestLoadBytesRejectsMalformedJSON(t *testing.T) {
	_, err := LoadBytes([]byte(`{not json`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedInput)
}
