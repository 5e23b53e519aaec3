// Package verify implements the commitment verifier and the replay
// orchestrator: the two independent checks that together produce a
// VerificationResult for a revealed session.
package verify

import (
	"fmt"

	"github.com/dclock24/faircheck/internal/commit"
)

// CommitmentCheck is the outcome of validating a session's revealed seeds
// against their pre-published commitment hashes.
type CommitmentCheck struct {
	HouseValid           bool
	PlayerValid          bool
	SeedCombinationValid bool
	Errors               []error
}

// CheckCommitments validates house hash, player hash (if present), and the
// combined-seed identity (if both a player seed and a combined seed are
// present). Each failure is recorded as an error; none are fatal to the
// others.
func CheckCommitments(in Input) CommitmentCheck {
	var out CommitmentCheck

	out.HouseValid = commit.VerifyCommitment(in.HouseSeed, in.HouseCommitHash)
	if !out.HouseValid {
		out.Errors = append(out.Errors, fmt.Errorf("%w: house seed does not match commitment hash", ErrCommitmentMismatch))
	}

	if in.PlayerSeed != nil {
		out.PlayerValid = commit.VerifyCommitment(*in.PlayerSeed, in.PlayerCommitHash)
		if !out.PlayerValid {
			out.Errors = append(out.Errors, fmt.Errorf("%w: player seed does not match commitment hash", ErrCommitmentMismatch))
		}
	}

	if in.PlayerSeed != nil && in.CombinedSeed != nil {
		expected := commit.CombineSeeds(in.HouseSeed, *in.PlayerSeed)
		out.SeedCombinationValid = expected == *in.CombinedSeed
		if !out.SeedCombinationValid {
			out.Errors = append(out.Errors, fmt.Errorf("%w: combined seed does not equal house XOR player", ErrCommitmentMismatch))
		}
	} else {
		out.SeedCombinationValid = true
	}

	return out
}
