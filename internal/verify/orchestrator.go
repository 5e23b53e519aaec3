package verify

import (
	"fmt"
	"sort"

	"github.com/dclock24/faircheck/internal/engine"
)

const (
	stateTolerance        = 1e-4
	defaultTickHorizon    = 1000
	tailTicksAfterActions = 100
	earlyExitTailTicks    = 10
)

// VerifySession is the orchestrator's single entry point: it runs the
// commitment check and a full deterministic replay of in, and returns a
// complete Result. It never panics and never returns a bare error — every
// failure is accumulated into Result.Errors so the caller always gets a
// complete picture of what passed and what didn't.
func VerifySession(in Input) Result {
	commitResult := CheckCommitments(in)

	result := Result{
		HouseCommitmentValid:  commitResult.HouseValid,
		PlayerCommitmentValid: commitResult.PlayerValid,
		SeedCombinationValid:  commitResult.SeedCombinationValid,
	}
	result.Errors = append(result.Errors, commitResult.Errors...)

	seed := in.HouseSeed
	if in.CombinedSeed != nil {
		seed = *in.CombinedSeed
	}

	cfg := in.Config
	cfg.Seed = &seed
	eng := engine.New(cfg)

	actions := sortedActions(in.ActionLog)
	maxTick := resolveMaxTick(in, actions)

	actionIdx := 0
	actionsExecuted := 0
	lastActionTick := -1
	if len(actions) > 0 {
		lastActionTick = actions[len(actions)-1].TickNumber
	}

	hasExpectedTickCount := in.ExpectedFinalState != nil && in.ExpectedFinalState.TickCount != nil

	for tick := 0; tick < maxTick; tick++ {
		for actionIdx < len(actions) && actions[actionIdx].TickNumber == tick {
			before := eng.State()
			eng.ExecuteAction(actions[actionIdx].Action)
			after := eng.State()
			actionsExecuted++
			if statesEqual(before, after) {
				result.Warnings = append(result.Warnings, fmt.Sprintf(
					"action at tick %d had no effect — possibly invalid", actions[actionIdx].TickNumber))
			}
			actionIdx++
		}

		eng.ProcessTick()

		if !hasExpectedTickCount && actionIdx >= len(actions) && lastActionTick >= 0 &&
			tick >= lastActionTick+earlyExitTailTicks {
			break
		}
	}

	final := eng.State()
	result.ReplayedState = final
	result.TicksProcessed = final.TickCount
	result.ActionsExecuted = actionsExecuted

	if in.ExpectedFinalState != nil {
		match, diffs, errs := compareFinalState(final, *in.ExpectedFinalState)
		result.StateMatch = &match
		result.StateDifferences = diffs
		result.Errors = append(result.Errors, errs...)
	}

	result.Valid = len(result.Errors) == 0
	return result
}

func sortedActions(log []LoggedAction) []LoggedAction {
	out := append([]LoggedAction(nil), log...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TickNumber != out[j].TickNumber {
			return out[i].TickNumber < out[j].TickNumber
		}
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

func resolveMaxTick(in Input, actions []LoggedAction) int {
	if in.ExpectedFinalState != nil && in.ExpectedFinalState.TickCount != nil {
		return *in.ExpectedFinalState.TickCount
	}
	if len(actions) == 0 {
		return defaultTickHorizon
	}
	maxActionTick := 0
	for _, a := range actions {
		if a.TickNumber > maxActionTick {
			maxActionTick = a.TickNumber
		}
	}
	return maxActionTick + tailTicksAfterActions
}

func compareFinalState(actual engine.GameState, expected ExpectedFinalState) (bool, []StateDifference, []error) {
	var diffs []StateDifference
	var errs []error

	check := func(field string, want *float64, got float64) {
		if want == nil {
			return
		}
		if absFloat(*want-got) > stateTolerance {
			diffs = append(diffs, StateDifference{Field: field, Expected: *want, Actual: got})
			errs = append(errs, fmt.Errorf("%w: %s expected %v, got %v", ErrStateMismatch, field, *want, got))
		}
	}

	check("capital", expected.Capital, actual.Capital)
	if expected.TickCount != nil {
		want := float64(*expected.TickCount)
		check("tick_count", &want, float64(actual.TickCount))
	}
	check("total_profit", expected.TotalProfit, actual.TotalProfit)
	check("total_losses", expected.TotalLosses, actual.TotalLosses)

	return len(errs) == 0, diffs, errs
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func statesEqual(a, b engine.GameState) bool {
	if a.Capital != b.Capital || a.CurrentPrice != b.CurrentPrice || a.TurboPoints != b.TurboPoints ||
		a.HouseBankroll != b.HouseBankroll || a.ShieldTicksRemaining != b.ShieldTicksRemaining ||
		a.TickCount != b.TickCount || a.TotalProfit != b.TotalProfit || a.TotalLosses != b.TotalLosses ||
		a.TotalVolumeTraded != b.TotalVolumeTraded || a.LiquidationCount != b.LiquidationCount ||
		a.TradeCount != b.TradeCount || len(a.Options) != len(b.Options) {
		return false
	}
	if (a.Position == nil) != (b.Position == nil) {
		return false
	}
	if a.Position != nil && *a.Position != *b.Position {
		return false
	}
	if (a.SimpleTurbo == nil) != (b.SimpleTurbo == nil) {
		return false
	}
	if a.SimpleTurbo != nil && *a.SimpleTurbo != *b.SimpleTurbo {
		return false
	}
	return true
}
