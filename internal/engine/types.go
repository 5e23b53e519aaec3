// Package engine implements the game state-transition engine: the tick
// loop (price + funding + option expiry + liquidation) and the discrete
// player actions (open/close position, relever, add equity, buy shield,
// buy option, trigger turbo). It owns a GameState and a price.Engine and
// exposes only read-only copies of state to callers.
package engine

import (
	"github.com/dclock24/faircheck/internal/position"
	"github.com/dclock24/faircheck/internal/price"
)

// OptionDirection is a binary option's side.
type OptionDirection int

const (
	Call OptionDirection = iota
	Put
)

// Position mirrors the specification's Position entity. At most one exists
// on a GameState at any time.
type Position struct {
	Direction            position.Direction
	EntryPrice           float64
	Size                 float64
	Leverage             float64
	CumulativeFunding    float64
	CapitalAllocated     float64
	TotalCapitalInvested float64
	AccumulatedPnL       float64
	OriginalEntryPrice   float64
	TotalFundingPaid     float64
	// OpenTick records when the position was opened. It is carried through
	// for reporting parity with the reference implementation but has no
	// effect on any verification verdict.
	OpenTick int
}

// Option is a binary call/put settling at expiry.
type Option struct {
	Direction      OptionDirection
	StrikePrice    float64
	PurchasePrice  float64
	Premium        float64
	Multiplier     int
	TicksRemaining int
	TotalTicks     int
}

// SimpleTurbo mirrors the player-visible turbo mirror kept on GameState.
type SimpleTurbo struct {
	Active         bool
	TicksRemaining int
	Direction      int
	StartPrice     float64
}

// GameState is the engine's entire player-visible state. Callers only ever
// see copies returned from Engine.State.
type GameState struct {
	Capital             float64
	CurrentPrice        float64
	Position            *Position
	Options             []Option
	SimpleTurbo         *SimpleTurbo
	TurboPoints         float64
	HouseBankroll       float64
	ShieldTicksRemaining int
	LayeredState        price.State
	TickCount           int
	TotalProfit         float64
	TotalLosses         float64
	TotalVolumeTraded   float64
	LiquidationCount    int
	TradeCount          int
}

// Clone returns a deep copy of the state so external code can never observe
// or mutate the engine's internals.
func (s GameState) Clone() GameState {
	out := s
	if s.Position != nil {
		p := *s.Position
		out.Position = &p
	}
	if s.SimpleTurbo != nil {
		st := *s.SimpleTurbo
		out.SimpleTurbo = &st
	}
	out.Options = append([]Option(nil), s.Options...)
	return out
}
