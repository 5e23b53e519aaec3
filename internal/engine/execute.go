package engine

import "github.com/dclock24/faircheck/internal/position"

// ExecuteAction applies a single player action. Actions whose precondition
// fails are silent no-ops — the state is left exactly as it was — which the
// replay orchestrator can detect by comparing before/after snapshots and
// report as a warning.
func (e *Engine) ExecuteAction(a Action) {
	switch action := a.(type) {
	case OpenPositionAction:
		e.openPosition(action)
	case ClosePositionAction:
		e.closePosition()
	case BuyShieldAction:
		e.buyShield()
	case BuyOptionAction:
		e.buyOption(action)
	case TriggerSimpleTurboAction:
		e.triggerSimpleTurbo()
	case ReleverAction:
		e.relever(action)
	case AddEquityAction:
		e.addEquity(action)
	}
}

func (e *Engine) openPosition(a OpenPositionAction) {
	s := &e.state
	if s.Position != nil {
		return
	}
	if a.SizePercent <= 0 || a.Leverage < 1 {
		return
	}

	requestedBudget := minFloat(s.Capital*a.SizePercent, s.Capital)
	if requestedBudget <= 0 {
		return
	}

	spreadMultiplier := 1 + a.Leverage*SpreadRate
	size := requestedBudget / spreadMultiplier
	notional := size * a.Leverage
	spreadCost := notional * SpreadRate
	totalCost := size + spreadCost

	s.Capital -= totalCost
	s.HouseBankroll += spreadCost
	s.TotalVolumeTraded += notional
	s.TradeCount++
	s.TurboPoints += EdgeEarnRate * spreadCost

	s.Position = &Position{
		Direction:          a.Direction,
		EntryPrice:         s.CurrentPrice,
		Size:               size,
		Leverage:           a.Leverage,
		CumulativeFunding:  0,
		CapitalAllocated:   size,
		TotalCapitalInvested: size,
		AccumulatedPnL:     0,
		OriginalEntryPrice: s.CurrentPrice,
		TotalFundingPaid:   0,
		OpenTick:           s.TickCount,
	}
}

func (e *Engine) closePosition() {
	s := &e.state
	pos := s.Position
	if pos == nil {
		return
	}

	pnl := position.LeveragedPnL(pos.EntryPrice, s.CurrentPrice, pos.Direction, pos.Size, pos.Leverage)
	funding := pos.CumulativeFunding

	s.HouseBankroll += funding - pnl
	returned := pos.Size + pnl - funding

	truePnL := maxFloat(0, returned) - pos.TotalCapitalInvested
	newLosses := 0.0
	if truePnL < 0 {
		newLosses = -truePnL
	}

	s.Capital += maxFloat(0, returned)
	s.TotalProfit += pnl - funding
	s.TotalLosses += newLosses
	s.TurboPoints += newLosses * TurboLossPremium

	s.Position = nil
	s.ShieldTicksRemaining = 0
}

func (e *Engine) buyShield() {
	s := &e.state
	pos := s.Position
	if pos == nil {
		return
	}

	notional := pos.Size * pos.Leverage
	cost := notional * ShieldFlatRate
	if s.TurboPoints < cost {
		return
	}

	s.TurboPoints -= cost
	s.ShieldTicksRemaining += ShieldTicksPerBuy
}

func (e *Engine) buyOption(a BuyOptionAction) {
	s := &e.state
	if a.Premium > s.Capital {
		return
	}

	distance, ok := strikeDistance(a.DurationSeconds, a.Multiplier)
	if !ok {
		return
	}

	var strike float64
	switch a.Direction {
	case Call:
		strike = s.CurrentPrice * (1 + distance/100)
	case Put:
		strike = s.CurrentPrice * (1 - distance/100)
	}

	edge := a.Premium * OptionEdgeRate
	s.TurboPoints += EdgeEarnRate * edge

	s.Capital -= a.Premium
	s.TotalVolumeTraded += a.Premium

	totalTicks := a.DurationSeconds * TicksPerSecond
	s.Options = append(s.Options, Option{
		Direction:      a.Direction,
		StrikePrice:    strike,
		PurchasePrice:  s.CurrentPrice,
		Premium:        a.Premium,
		Multiplier:     a.Multiplier,
		TicksRemaining: totalTicks,
		TotalTicks:     totalTicks,
	})
}

func (e *Engine) triggerSimpleTurbo() {
	s := &e.state
	pos := s.Position
	if pos == nil {
		return
	}
	if s.LayeredState.TurboActive {
		return
	}

	notional := pos.Size * pos.Leverage
	cost := notional * SimpleTurboCostRate
	if s.TurboPoints < cost {
		return
	}

	s.LayeredState = e.priceEngine.StartTurbo(s.LayeredState)
	s.SimpleTurbo = &SimpleTurbo{
		Active:         true,
		TicksRemaining: s.LayeredState.TurboTicksRemaining,
		Direction:      s.LayeredState.TurboDirection,
		StartPrice:     s.CurrentPrice,
	}
	s.TurboPoints -= cost
}

func (e *Engine) relever(a ReleverAction) {
	s := &e.state
	pos := s.Position
	if pos == nil {
		return
	}
	if a.TargetLeverage < 1 {
		return
	}

	pnl := position.LeveragedPnL(pos.EntryPrice, s.CurrentPrice, pos.Direction, pos.Size, pos.Leverage)
	funding := pos.CumulativeFunding
	equity := position.Equity(pos.Size, pnl, funding)
	if equity <= 0 {
		return
	}

	newNotional := equity * a.TargetLeverage
	spreadCost := newNotional * SpreadRate
	newSize := equity - spreadCost
	if newSize <= 0 {
		return
	}

	lockedInPnL := pnl - funding - spreadCost
	s.HouseBankroll += spreadCost + funding - pnl
	s.TotalVolumeTraded += newNotional
	s.TurboPoints += EdgeEarnRate * spreadCost

	pos.EntryPrice = s.CurrentPrice
	pos.Size = newSize
	pos.Leverage = a.TargetLeverage
	pos.CumulativeFunding = 0
	pos.CapitalAllocated = newSize
	pos.AccumulatedPnL += lockedInPnL
	pos.TotalFundingPaid += funding
}

func (e *Engine) addEquity(a AddEquityAction) {
	s := &e.state
	pos := s.Position
	if pos == nil {
		return
	}
	if a.AdditionalPercent <= 0 {
		return
	}

	pnl := position.LeveragedPnL(pos.EntryPrice, s.CurrentPrice, pos.Direction, pos.Size, pos.Leverage)
	funding := pos.CumulativeFunding
	currentEquity := position.Equity(pos.Size, pnl, funding)
	if currentEquity <= 0 {
		return
	}

	additionalCapital := minFloat(s.Capital*a.AdditionalPercent, s.Capital)
	if additionalCapital <= 0 {
		return
	}

	units := (pos.Size * pos.Leverage) / pos.EntryPrice
	newEquity := currentEquity + additionalCapital
	newLeverage := maxFloat(1, units*s.CurrentPrice/newEquity)

	s.Capital -= additionalCapital
	s.HouseBankroll += funding - pnl

	// entry_price is deliberately left unchanged: unlike relever, add_equity
	// does not realize a new entry against current price, only rescales
	// size/leverage so the position's notional tracks the added capital.
	pos.Size = newEquity
	pos.Leverage = newLeverage
	pos.CumulativeFunding = 0
	pos.TotalCapitalInvested += additionalCapital
	pos.AccumulatedPnL += pnl - funding
	pos.TotalFundingPaid += funding
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
