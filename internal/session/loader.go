package session

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dclock24/faircheck/internal/engine"
	"github.com/dclock24/faircheck/internal/position"
	"github.com/dclock24/faircheck/internal/verify"
)

// ErrMalformedInput wraps every parse/validation failure produced by Load
// and LoadBytes, so an adapter boundary can tell a malformed session file
// apart from a verification failure inside an otherwise well-formed one.
var ErrMalformedInput = malformedInputError("malformed session input")

type malformedInputError string

func (e malformedInputError) Error() string { return string(e) }

// Load reads and parses a session file from r into a verify.Input ready for
// verify.VerifySession. It is the only place in the module that decodes
// session JSON — the core packages never see raw bytes.
func Load(r io.Reader) (verify.Input, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return verify.Input{}, fmt.Errorf("%w: reading session: %v", ErrMalformedInput, err)
	}
	return LoadBytes(data)
}

// LoadBytes parses raw JSON bytes into a verify.Input.
func LoadBytes(data []byte) (verify.Input, error) {
	var raw rawSession
	if err := json.Unmarshal(data, &raw); err != nil {
		return verify.Input{}, fmt.Errorf("%w: decoding JSON: %v", ErrMalformedInput, err)
	}
	return raw.toInput()
}

func (r rawSession) toInput() (verify.Input, error) {
	if r.HouseCommitHash == "" {
		return verify.Input{}, fmt.Errorf("%w: houseCommitHash is required", ErrMalformedInput)
	}

	actions := make([]verify.LoggedAction, 0, len(r.ActionLog))
	for i, la := range r.ActionLog {
		action, err := la.Action.toEngineAction()
		if err != nil {
			return verify.Input{}, fmt.Errorf("%w: actionLog[%d]: %v", ErrMalformedInput, i, err)
		}

		ts := time.Time{}
		if la.Timestamp != "" {
			parsed, err := time.Parse(time.RFC3339Nano, la.Timestamp)
			if err != nil {
				return verify.Input{}, fmt.Errorf("%w: actionLog[%d].timestamp: %v", ErrMalformedInput, i, err)
			}
			ts = parsed
		}

		actions = append(actions, verify.LoggedAction{
			TickNumber: la.TickNumber,
			Action:     action,
			Timestamp:  ts,
		})
	}

	in := verify.Input{
		HouseSeed:        r.HouseSeed,
		HouseCommitHash:  r.HouseCommitHash,
		PlayerSeed:       r.PlayerSeed,
		PlayerCommitHash: r.PlayerCommitHash,
		CombinedSeed:     r.CombinedSeed,
		Config: engine.SessionConfig{
			InitialCapital:       r.Config.InitialCapital,
			InitialPrice:         r.Config.InitialPrice,
			InitialHouseBankroll: r.Config.InitialHouseBankroll,
			TickRateMs:           r.Config.TickRateMs,
			Seed:                 r.Config.Seed,
		},
		ActionLog: actions,
	}

	if r.ExpectedFinalState != nil {
		in.ExpectedFinalState = &verify.ExpectedFinalState{
			Capital:     r.ExpectedFinalState.Capital,
			TickCount:   r.ExpectedFinalState.TickCount,
			TotalProfit: r.ExpectedFinalState.TotalProfit,
			TotalLosses: r.ExpectedFinalState.TotalLosses,
		}
	}

	return in, nil
}

func (a rawAction) toEngineAction() (engine.Action, error) {
	switch a.Type {
	case "open_position":
		dir, err := parseDirection(a.Direction)
		if err != nil {
			return nil, err
		}
		return engine.OpenPositionAction{
			Direction:   dir,
			SizePercent: a.SizePercent,
			Leverage:    a.Leverage,
		}, nil

	case "close_position":
		return engine.ClosePositionAction{}, nil

	case "buy_shield":
		return engine.BuyShieldAction{}, nil

	case "buy_option":
		dir, err := parseOptionDirection(a.Direction)
		if err != nil {
			return nil, err
		}
		return engine.BuyOptionAction{
			Direction:       dir,
			Premium:         a.Premium,
			Multiplier:      a.Multiplier,
			DurationSeconds: a.DurationSeconds,
		}, nil

	case "trigger_simple_turbo":
		return engine.TriggerSimpleTurboAction{}, nil

	case "relever":
		return engine.ReleverAction{TargetLeverage: a.TargetLeverage}, nil

	case "add_equity":
		return engine.AddEquityAction{AdditionalPercent: a.AdditionalPct}, nil

	default:
		return nil, fmt.Errorf("unknown action type %q", a.Type)
	}
}

func parseDirection(s string) (position.Direction, error) {
	switch s {
	case "long":
		return position.Long, nil
	case "short":
		return position.Short, nil
	default:
		return 0, fmt.Errorf("unknown position direction %q", s)
	}
}

func parseOptionDirection(s string) (engine.OptionDirection, error) {
	switch s {
	case "call":
		return engine.Call, nil
	case "put":
		return engine.Put, nil
	default:
		return 0, fmt.Errorf("unknown option direction %q", s)
	}
}
