// Package price implements the layered stochastic price engine: five
// independently seeded Mulberry32 streams (sign, magnitude, volatility,
// momentum, turbo) composed into a single deterministic price series. The
// draw order inside next_tick is part of the contract — reordering it
// produces a different, non-reproducible series even from the same seed.
package price

import (
	"math"

	"github.com/dclock24/faircheck/internal/commit"
	"github.com/dclock24/faircheck/internal/rng"
)

const (
	turboUpMultiplierExponent   = 1.0 / 10.0
	turboTicksPerActivation     = 10
)

// Engine owns the four price-layer RNG streams plus the turbo RNG, all
// derived once from a single master seed. It advances one State per call to
// NextTick and is not safe for concurrent use.
type Engine struct {
	cfg LayerConfig

	signRNG       *rng.Mulberry32
	magnitudeRNG  *rng.Mulberry32
	volatilityRNG *rng.Mulberry32
	momentumRNG   *rng.Mulberry32
	turboRNG      *rng.Mulberry32
}

// NewEngine derives the five independent streams from masterSeed via
// commit.DeriveSubSeed and returns an Engine configured with cfg.
func NewEngine(masterSeed uint32, cfg LayerConfig) *Engine {
	return &Engine{
		cfg:           cfg,
		signRNG:       rng.New(commit.DeriveSubSeed(masterSeed, "sign")),
		magnitudeRNG:  rng.New(commit.DeriveSubSeed(masterSeed, "magnitude")),
		volatilityRNG: rng.New(commit.DeriveSubSeed(masterSeed, "volatility")),
		momentumRNG:   rng.New(commit.DeriveSubSeed(masterSeed, "momentum")),
		turboRNG:      rng.New(commit.DeriveSubSeed(masterSeed, "turbo")),
	}
}

// NextTick advances state by exactly one tick and returns the new state.
//
// If a turbo trajectory is active, the tick is a pure deterministic
// multiplier applied to price with no RNG draws at all. Otherwise the
// normal path draws from sign, magnitude, volatility (once or twice), and
// momentum, in that fixed order.
func (e *Engine) NextTick(state State) State {
	if state.TurboActive && state.TurboTicksRemaining > 0 {
		return e.turboTick(state)
	}
	return e.normalTick(state)
}

func (e *Engine) turboTick(state State) State {
	var perTickMultiplier float64
	if state.TurboDirection >= 0 {
		perTickMultiplier = math.Pow(1.10, turboUpMultiplierExponent)
	} else {
		perTickMultiplier = math.Pow(0.90, turboUpMultiplierExponent)
	}

	next := state
	next.Price = state.Price * perTickMultiplier
	next.TurboTicksRemaining = state.TurboTicksRemaining - 1
	next.TurboActive = next.TurboTicksRemaining > 0
	return next
}

func (e *Engine) normalTick(state State) State {
	signRoll := e.signRNG.Next()
	sign := -1
	if signRoll < e.cfg.SignBias {
		sign = 1
	}

	baseMagnitude := e.magnitudeRNG.Range(e.cfg.BaseMagnitudeMin, e.cfg.BaseMagnitudeMax)

	volatilityMultiplier := e.cfg.VolatilityBase
	inSpike := state.InVolatilitySpike
	if !inSpike {
		if e.volatilityRNG.Chance(e.cfg.SpikeProbability) {
			inSpike = true
		}
	}
	if inSpike {
		volatilityMultiplier = e.volatilityRNG.Range(e.cfg.SpikeMin, e.cfg.SpikeMax)
	}

	momentumNoise := (e.momentumRNG.Next() - 0.5) * 0.1
	newMomentum := state.Momentum*e.cfg.MomentumDecay + float64(state.LastSign)*e.cfg.MomentumStrength + momentumNoise
	momentumContribution := newMomentum * baseMagnitude

	deviation := (state.Price - state.MeanPrice) / state.MeanPrice
	reversionContribution := -deviation * e.cfg.ReversionStrength * baseMagnitude

	signedMove := float64(sign) * baseMagnitude * volatilityMultiplier

	totalDelta := signedMove + momentumContribution + reversionContribution + e.cfg.DriftCorrection

	newPrice := math.Max(0.01, state.Price*(1+totalDelta))

	meanAlpha := 1.0 / e.cfg.ReversionHalfLife
	newMean := state.MeanPrice*(1-meanAlpha) + newPrice*meanAlpha

	return State{
		Price:               newPrice,
		Tick:                state.Tick + 1,
		MeanPrice:           newMean,
		Momentum:            newMomentum,
		LastSign:            sign,
		InVolatilitySpike:   false,
		TurboActive:         state.TurboActive,
		TurboTicksRemaining: state.TurboTicksRemaining,
		TurboDirection:      state.TurboDirection,
	}
}

// StartTurbo draws the turbo direction from the dedicated turbo RNG stream
// (never the price-layer streams) and returns a new state primed to run a
// 10-tick turbo trajectory starting next tick. Price is unchanged.
func (e *Engine) StartTurbo(state State) State {
	direction := -1
	if e.turboRNG.Next() < 0.5 {
		direction = 1
	}

	next := state
	next.TurboActive = true
	next.TurboTicksRemaining = turboTicksPerActivation
	next.TurboDirection = direction
	return next
}
