package engine

import "github.com/dclock24/faircheck/internal/position"

// Action is the closed set of player commands the engine can execute. It is
// a sum type modelled as an interface with an unexported marker method so
// no package outside engine can introduce a new variant the tick/replay
// logic doesn't know about.
type Action interface {
	isAction()
}

// OpenPositionAction opens a new leveraged position. SizePercent is a
// fraction of current capital in (0, 1]; Leverage must be >= 1.
type OpenPositionAction struct {
	Direction   position.Direction
	SizePercent float64
	Leverage    float64
}

func (OpenPositionAction) isAction() {}

// ClosePositionAction closes the current position, if any.
type ClosePositionAction struct{}

func (ClosePositionAction) isAction() {}

// BuyShieldAction purchases shield ticks with turbo points.
type BuyShieldAction struct{}

func (BuyShieldAction) isAction() {}

// BuyOptionAction purchases a binary option.
type BuyOptionAction struct {
	Direction       OptionDirection
	Premium         float64
	Multiplier      int
	DurationSeconds int
}

func (BuyOptionAction) isAction() {}

// TriggerSimpleTurboAction activates a 10-tick turbo price trajectory.
type TriggerSimpleTurboAction struct{}

func (TriggerSimpleTurboAction) isAction() {}

// ReleverAction closes the current position segment and reopens it at a new
// leverage against current equity.
type ReleverAction struct {
	TargetLeverage float64
}

func (ReleverAction) isAction() {}

// AddEquityAction adds additional player capital to the open position.
type AddEquityAction struct {
	AdditionalPercent float64
}

func (AddEquityAction) isAction() {}
