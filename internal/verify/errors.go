package verify

import "errors"

// Sentinel error kinds, wrapped with context via fmt.Errorf("%w", ...) so
// callers can classify failures with errors.Is.
var (
	ErrCommitmentMismatch = errors.New("commitment mismatch")
	ErrStateMismatch      = errors.New("state mismatch")
)
