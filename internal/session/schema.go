// Package session is the thin JSON adapter between a revealed session file
// and the verification core: it parses and validates the wire schema and
// produces a verify.Input. It owns no domain logic — every numeric rule
// lives in internal/engine and internal/verify.
package session

// rawSession mirrors the input JSON schema from the specification exactly.
type rawSession struct {
	HouseSeed        uint32  `json:"houseSeed"`
	HouseCommitHash  string  `json:"houseCommitHash"`
	PlayerSeed       *uint32 `json:"playerSeed,omitempty"`
	PlayerCommitHash string  `json:"playerCommitHash,omitempty"`
	CombinedSeed     *uint32 `json:"combinedSeed,omitempty"`

	Config rawConfig `json:"config"`

	ActionLog []rawLoggedAction `json:"actionLog"`

	ExpectedFinalState *rawExpectedFinalState `json:"expectedFinalState,omitempty"`
}

type rawConfig struct {
	InitialCapital       float64 `json:"initial_capital"`
	InitialPrice         float64 `json:"initial_price"`
	InitialHouseBankroll float64 `json:"initial_house_bankroll"`
	TickRateMs           int     `json:"tick_rate_ms"`
	Seed                 *uint32 `json:"seed,omitempty"`
}

type rawLoggedAction struct {
	TickNumber int           `json:"tickNumber"`
	Action     rawAction     `json:"action"`
	Timestamp  string        `json:"timestamp"`
}

// rawAction is a tagged-union envelope: Type selects which of the
// type-specific fields are meaningful. This mirrors the wire format an
// operator's event log would actually emit — one JSON object per action
// with a discriminant field rather than a family of endpoints.
type rawAction struct {
	Type string `json:"type"`

	Direction       string  `json:"direction,omitempty"`
	SizePercent     float64 `json:"sizePercent,omitempty"`
	Leverage        float64 `json:"leverage,omitempty"`
	Premium         float64 `json:"premium,omitempty"`
	Multiplier      int     `json:"multiplier,omitempty"`
	DurationSeconds int     `json:"durationSeconds,omitempty"`
	TargetLeverage  float64 `json:"targetLeverage,omitempty"`
	AdditionalPct   float64 `json:"additionalPercent,omitempty"`
}

type rawExpectedFinalState struct {
	Capital     *float64 `json:"capital,omitempty"`
	TickCount   *int     `json:"tickCount,omitempty"`
	TotalProfit *float64 `json:"totalProfit,omitempty"`
	TotalLosses *float64 `json:"totalLosses,omitempty"`
}
