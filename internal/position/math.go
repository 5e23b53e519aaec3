// Package position implements the pure, total leveraged-position math: P&L,
// equity, liquidation predicate, and the reporting-only derived prices. None
// of these functions hold state or can fail outside the numeric domain.
package position

// Direction is a position's side.
type Direction int

const (
	Long Direction = iota
	Short
)

func (d Direction) sign() float64 {
	if d == Long {
		return 1
	}
	return -1
}

// LeveragedPnL computes the P&L of a leveraged position at currentPrice.
func LeveragedPnL(entry, current float64, dir Direction, size, leverage float64) float64 {
	return size * ((current - entry) / entry) * dir.sign() * leverage
}

// Equity is the collateral remaining after P&L and accrued funding.
func Equity(size, pnl, cumulativeFunding float64) float64 {
	return size + pnl - cumulativeFunding
}

// IsLiquidated reports whether equity has fallen to or below zero.
func IsLiquidated(equity float64) bool {
	return equity <= 0
}

// DynamicLiquidationPrice is the price at which Equity crosses zero, given
// the position's current funding. It is reporting-only: the authoritative
// liquidation test is always IsLiquidated evaluated against the realized
// tick price, never this derived threshold, since it is only approximately
// exact once funding has accrued.
func DynamicLiquidationPrice(entry float64, dir Direction, leverage, size, cumulativeFunding float64) float64 {
	// equity(p) = size + size*((p-entry)/entry)*sign*leverage - funding = 0
	// solve for p.
	sign := dir.sign()
	return entry * (1 - (size-cumulativeFunding)/(size*sign*leverage))
}

// EffectiveLeverage is the realized leverage implied by a notional and its
// backing collateral.
func EffectiveLeverage(notional, size float64) float64 {
	return notional / size
}

// BreakevenPrice is the price move required to recoup the one-time spread
// cost paid at entry.
func BreakevenPrice(entry float64, dir Direction, spreadRate, leverage float64) float64 {
	return entry * (1 + dir.sign()*spreadRate*leverage)
}
