// Package report renders a verify.Result for a human or a downstream tool.
// It is an adapter-layer concern: no verification logic lives here, only
// presentation of an already-computed Result.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dclock24/faircheck/internal/verify"
)

// WriteText renders result as a multi-line, operator-readable report.
func WriteText(w io.Writer, result verify.Result) error {
	var b strings.Builder

	verdict := "INVALID"
	if result.Valid {
		verdict = "VALID"
	}
	fmt.Fprintf(&b, "verification: %s\n", verdict)
	fmt.Fprintf(&b, "  house commitment valid:  %t\n", result.HouseCommitmentValid)
	fmt.Fprintf(&b, "  player commitment valid: %t\n", result.PlayerCommitmentValid)
	fmt.Fprintf(&b, "  seed combination valid:  %t\n", result.SeedCombinationValid)
	fmt.Fprintf(&b, "  ticks processed:         %d\n", result.TicksProcessed)
	fmt.Fprintf(&b, "  actions executed:        %d\n", result.ActionsExecuted)
	fmt.Fprintf(&b, "  final capital:           %.4f\n", result.ReplayedState.Capital)
	fmt.Fprintf(&b, "  house bankroll:          %.4f\n", result.ReplayedState.HouseBankroll)

	if result.StateMatch != nil {
		fmt.Fprintf(&b, "  final state matches:     %t\n", *result.StateMatch)
		for _, diff := range result.StateDifferences {
			fmt.Fprintf(&b, "    %s: expected %v, got %v\n", diff.Field, diff.Expected, diff.Actual)
		}
	}

	if len(result.Errors) > 0 {
		fmt.Fprintln(&b, "errors:")
		for _, err := range result.Errors {
			fmt.Fprintf(&b, "  - %s\n", err.Error())
		}
	}

	if len(result.Warnings) > 0 {
		fmt.Fprintln(&b, "warnings:")
		for _, warn := range result.Warnings {
			fmt.Fprintf(&b, "  - %s\n", warn)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// jsonResult is the wire shape for WriteJSON; errors are flattened to
// strings since error values themselves don't round-trip through JSON.
type jsonResult struct {
	Valid bool `json:"valid"`

	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`

	HouseCommitmentValid  bool `json:"houseCommitmentValid"`
	PlayerCommitmentValid bool `json:"playerCommitmentValid"`
	SeedCombinationValid  bool `json:"seedCombinationValid"`

	ReplayedState jsonGameState `json:"replayedState"`

	TicksProcessed  int `json:"ticksProcessed"`
	ActionsExecuted int `json:"actionsExecuted"`

	StateMatch       *bool                    `json:"stateMatch,omitempty"`
	StateDifferences []verify.StateDifference `json:"stateDifferences,omitempty"`
}

// jsonGameState is the sanitized, player-visible projection of
// engine.GameState: scalar totals plus booleans/counts in place of the
// position, options and simple turbo. The layered price state is not
// included.
type jsonGameState struct {
	Capital              float64 `json:"capital"`
	CurrentPrice         float64 `json:"currentPrice"`
	HasPosition          bool    `json:"hasPosition"`
	OpenOptions          int     `json:"openOptions"`
	SimpleTurboActive    bool    `json:"simpleTurboActive"`
	TurboPoints          float64 `json:"turboPoints"`
	HouseBankroll        float64 `json:"houseBankroll"`
	ShieldTicksRemaining int     `json:"shieldTicksRemaining"`
	TickCount            int     `json:"tickCount"`
	TotalProfit          float64 `json:"totalProfit"`
	TotalLosses          float64 `json:"totalLosses"`
	TotalVolumeTraded    float64 `json:"totalVolumeTraded"`
	LiquidationCount     int     `json:"liquidationCount"`
	TradeCount           int     `json:"tradeCount"`
}

func toJSONGameState(s verify.Result) jsonGameState {
	gs := s.ReplayedState
	return jsonGameState{
		Capital:              gs.Capital,
		CurrentPrice:         gs.CurrentPrice,
		HasPosition:          gs.Position != nil,
		OpenOptions:          len(gs.Options),
		SimpleTurboActive:    gs.SimpleTurbo != nil,
		TurboPoints:          gs.TurboPoints,
		HouseBankroll:        gs.HouseBankroll,
		ShieldTicksRemaining: gs.ShieldTicksRemaining,
		TickCount:            gs.TickCount,
		TotalProfit:          gs.TotalProfit,
		TotalLosses:          gs.TotalLosses,
		TotalVolumeTraded:    gs.TotalVolumeTraded,
		LiquidationCount:     gs.LiquidationCount,
		TradeCount:           gs.TradeCount,
	}
}

// WriteJSON renders result as the VerificationResult wire schema.
func WriteJSON(w io.Writer, result verify.Result) error {
	errs := make([]string, 0, len(result.Errors))
	for _, err := range result.Errors {
		errs = append(errs, err.Error())
	}

	out := jsonResult{
		Valid:                 result.Valid,
		Errors:                errs,
		Warnings:              result.Warnings,
		HouseCommitmentValid:  result.HouseCommitmentValid,
		PlayerCommitmentValid: result.PlayerCommitmentValid,
		SeedCombinationValid:  result.SeedCombinationValid,
		ReplayedState:         toJSONGameState(result),
		TicksProcessed:        result.TicksProcessed,
		ActionsExecuted:       result.ActionsExecuted,
		StateMatch:            result.StateMatch,
		StateDifferences:      result.StateDifferences,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
