package conflict

import (
	"fmt"
	"strings"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string

	// Cause is the sentinel error the result wraps when not allowed.
	Cause error
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	if r.Cause != nil {
		return fmt.Errorf("%w: %s", r.Cause, r.Reason)
	}
	return fmt.Errorf("%s", r.Reason)
}

// ApplyChoicesContext provides context for the apply guard.
type ApplyChoicesContext struct {
	ConflictCount int
	UnresolvedIDs []string
}

// CanApplyChoices evaluates whether the user's choices may be applied.
// Rules:
// - Every conflict must be resolved
func CanApplyChoices(ctx ApplyChoicesContext) GuardResult {
	if len(ctx.UnresolvedIDs) > 0 {
		return GuardResult{
			Allowed: false,
			Reason: fmt.Sprintf("%d of %d conflicts still need a choice (%s)",
				len(ctx.UnresolvedIDs), ctx.ConflictCount, strings.Join(ctx.UnresolvedIDs, ", ")),
			Cause: ErrChoicesIncomplete,
		}
	}

	return GuardResult{Allowed: true}
}
