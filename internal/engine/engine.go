package engine

import (
	"crypto/rand"
	"encoding/binary"

	"github.com/dclock24/faircheck/internal/position"
	"github.com/dclock24/faircheck/internal/price"
)

// SessionConfig mirrors the specification's SessionConfig entity.
type SessionConfig struct {
	InitialCapital       float64
	InitialPrice         float64
	InitialHouseBankroll float64
	// TickRateMs is stored and round-tripped for reporting but never read
	// by the engine or orchestrator; funding accrues per tick and option
	// durations are measured in TicksPerSecond-derived ticks regardless of
	// this value.
	TickRateMs int
	Seed       *uint32
}

// Engine owns a session's GameState and its price.Engine. It is the sole
// mutator of both; callers only ever observe copies via State.
type Engine struct {
	state       GameState
	priceEngine *price.Engine
}

// New constructs an engine from cfg. If cfg.Seed is nil, an
// implementation-defined seed is drawn from crypto/rand so an un-seeded
// engine is unpredictable rather than clock-biased; verification always
// supplies a seed explicitly.
func New(cfg SessionConfig) *Engine {
	seed := cfg.Seed
	var resolved uint32
	if seed != nil {
		resolved = *seed
	} else {
		resolved = randomSeed()
	}

	return &Engine{
		state: GameState{
			Capital:       cfg.InitialCapital,
			CurrentPrice:  cfg.InitialPrice,
			HouseBankroll: cfg.InitialHouseBankroll,
			LayeredState:  price.NewState(cfg.InitialPrice),
		},
		priceEngine: price.NewEngine(resolved, price.DefaultLayerConfig()),
	}
}

func randomSeed() uint32 {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand failing is a fatal environment problem; callers that
		// reach here have no seed to fall back to, so panic rather than
		// silently produce a predictable session.
		panic("engine: failed to draw a random seed: " + err.Error())
	}
	return binary.BigEndian.Uint32(buf[:])
}

// State returns a read-only copy of the current game state.
func (e *Engine) State() GameState {
	return e.state.Clone()
}

// ProcessTick advances the session by exactly one tick, in the contractual
// order: increment tick count, advance the price engine, clear an expired
// simple turbo, accrue funding or liquidate the open position, expire
// options, then settle capital.
func (e *Engine) ProcessTick() {
	s := &e.state

	s.TickCount++

	newLayered := e.priceEngine.NextTick(s.LayeredState)
	wasTurboActive := s.LayeredState.TurboActive
	s.LayeredState = newLayered
	s.CurrentPrice = newLayered.Price

	if wasTurboActive && !newLayered.TurboActive {
		s.SimpleTurbo = nil
	}

	if s.Position == nil {
		s.ShieldTicksRemaining = 0
	} else {
		e.settlePosition(s)
	}

	e.expireOptions(s)
}

func (e *Engine) settlePosition(s *GameState) {
	pos := s.Position
	pnl := position.LeveragedPnL(pos.EntryPrice, s.CurrentPrice, pos.Direction, pos.Size, pos.Leverage)
	equity := position.Equity(pos.Size, pnl, pos.CumulativeFunding)

	if position.IsLiquidated(equity) {
		if s.ShieldTicksRemaining > 0 {
			s.ShieldTicksRemaining--
			return
		}
		s.HouseBankroll += pos.Size
		s.TotalLosses += pos.TotalCapitalInvested
		s.LiquidationCount++
		s.Position = nil
		s.ShieldTicksRemaining = 0
		return
	}

	notional := pos.Size * pos.Leverage
	fundingCost := notional * FundingRatePerTick
	pos.CumulativeFunding += fundingCost
	pos.TotalFundingPaid += fundingCost
	s.TurboPoints += EdgeEarnRate * fundingCost
}

func (e *Engine) expireOptions(s *GameState) {
	if len(s.Options) == 0 {
		return
	}

	optionsReturn := 0.0
	newLosses := 0.0
	survivors := s.Options[:0:0]

	for _, opt := range s.Options {
		opt.TicksRemaining--
		if opt.TicksRemaining > 0 {
			survivors = append(survivors, opt)
			continue
		}

		inTheMoney := false
		switch opt.Direction {
		case Call:
			inTheMoney = s.CurrentPrice >= opt.StrikePrice
		case Put:
			inTheMoney = s.CurrentPrice <= opt.StrikePrice
		}

		if inTheMoney {
			payout := opt.Premium * float64(opt.Multiplier)
			optionsReturn += payout
			s.HouseBankroll -= payout - opt.Premium
		} else {
			s.HouseBankroll += opt.Premium
			newLosses += opt.Premium
		}
	}

	s.Options = survivors
	s.TurboPoints += newLosses * TurboLossPremium
	s.Capital = maxFloat(0, s.Capital+optionsReturn)
	s.TotalLosses += newLosses
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
