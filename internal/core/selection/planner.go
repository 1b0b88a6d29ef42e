// Package selection plans how an applied conflict resolution changes package
// selection state. Planners are pure; the caller pre-fetches package state.
package selection

import (
	"fmt"

	"github.com/example/pkgconflict/internal/core/conflict"
	"github.com/example/pkgconflict/internal/core/effects"
)

// PackageState is the pre-fetched store state of one package.
type PackageState struct {
	ID        string
	Status    conflict.Status
	Installed bool
}

// ResolutionPlanInput contains pre-fetched data for one resolution action.
type ResolutionPlanInput struct {
	PassID            string
	Action            conflict.ResolutionType
	ConflictPackageID string

	// Packages are the packages the action touches: the conflicting package
	// for undo and ignore, the delete set for delete, the alternative for
	// alternative.
	Packages []PackageState

	// UndoTarget is only used by undo.
	UndoTarget conflict.Status
}

// ResolutionPlan represents the planned effects of one resolution action.
type ResolutionPlan struct {
	StatusOps []effects.StatusEffect
	AuditOps  []effects.AuditEffect
	LogOps    []effects.LogEffect
}

// Effects returns all effects as a flat slice for execution.
// Status changes run before the audit entries describing them.
func (p ResolutionPlan) Effects() []effects.Effect {
	result := make([]effects.Effect, 0, len(p.StatusOps)+len(p.AuditOps)+len(p.LogOps))
	for _, e := range p.StatusOps {
		result = append(result, e)
	}
	for _, e := range p.AuditOps {
		result = append(result, e)
	}
	for _, e := range p.LogOps {
		result = append(result, e)
	}
	return result
}

// DeleteTarget is the status a brute force resolution gives a package.
func DeleteTarget(installed bool) conflict.Status {
	if installed {
		return conflict.StatusDel
	}
	return conflict.StatusTaboo
}

// AlternativeTarget is the status a chosen alternative gets.
func AlternativeTarget(installed bool) conflict.Status {
	if installed {
		return conflict.StatusUpdate
	}
	return conflict.StatusInstall
}

// GenerateResolutionPlan creates a plan for one resolution action.
// This is a pure function - all input data must be pre-fetched.
func GenerateResolutionPlan(input ResolutionPlanInput) ResolutionPlan {
	var plan ResolutionPlan

	switch input.Action {
	case conflict.ResolutionIgnore:
		plan.AuditOps = append(plan.AuditOps, effects.AuditEffect{
			PassID:            input.PassID,
			Action:            string(input.Action),
			ConflictPackageID: input.ConflictPackageID,
		})
		plan.LogOps = append(plan.LogOps, effects.LogEffect{
			Level:   "warn",
			Message: fmt.Sprintf("conflict of %s ignored, system may be inconsistent", input.ConflictPackageID),
			Fields:  map[string]any{"pass": input.PassID},
		})
		return plan

	case conflict.ResolutionUndo:
		for _, p := range input.Packages {
			plan.change(input, p, input.UndoTarget)
		}

	case conflict.ResolutionBruteForceDelete:
		for _, p := range input.Packages {
			plan.change(input, p, DeleteTarget(p.Installed))
		}

	case conflict.ResolutionAlternative:
		for _, p := range input.Packages {
			plan.change(input, p, AlternativeTarget(p.Installed))
		}

	default:
		plan.LogOps = append(plan.LogOps, effects.LogEffect{
			Level:   "error",
			Message: fmt.Sprintf("unknown resolution type %q", input.Action),
		})
	}

	return plan
}

// change plans one status transition; packages already in the target status
// only get an audit entry.
func (p *ResolutionPlan) change(input ResolutionPlanInput, pkg PackageState, to conflict.Status) {
	if pkg.Status != to {
		p.StatusOps = append(p.StatusOps, effects.StatusEffect{
			PackageID: pkg.ID,
			From:      string(pkg.Status),
			To:        string(to),
		})
	}
	p.AuditOps = append(p.AuditOps, effects.AuditEffect{
		PassID:            input.PassID,
		Action:            string(input.Action),
		ConflictPackageID: input.ConflictPackageID,
		PackageID:         pkg.ID,
		OldStatus:         string(pkg.Status),
		NewStatus:         string(to),
	})
}
