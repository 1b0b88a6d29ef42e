package app

import (
	"context"
	"fmt"

	"github.com/example/pkgconflict/internal/core/conflict"
	"github.com/example/pkgconflict/internal/core/selection"
	"github.com/example/pkgconflict/internal/ports/secondary"
)

// PackageStateSink applies resolution actions to the package store.
// Each action pre-fetches the packages it touches, asks the selection planner
// for effects and hands them to the executor.
type PackageStateSink struct {
	packageRepo secondary.PackageRepository
	executor    EffectExecutor
	passID      string
}

// NewPackageStateSink creates a sink for one resolution pass.
func NewPackageStateSink(packageRepo secondary.PackageRepository, executor EffectExecutor, passID string) *PackageStateSink {
	return &PackageStateSink{
		packageRepo: packageRepo,
		executor:    executor,
		passID:      passID,
	}
}

// Undo reverts the conflicting package to target.
func (s *PackageStateSink) Undo(ctx context.Context, rec conflict.Record, target conflict.Status) error {
	return s.apply(ctx, conflict.ResolutionUndo, rec, []conflict.PackageRef{rec.Package}, target)
}

// Ignore records that the conflict was accepted as is.
func (s *PackageStateSink) Ignore(ctx context.Context, rec conflict.Record) error {
	return s.apply(ctx, conflict.ResolutionIgnore, rec, nil, "")
}

// Delete removes every package of the delete set.
func (s *PackageStateSink) Delete(ctx context.Context, rec conflict.Record, pkgs []conflict.PackageRef) error {
	return s.apply(ctx, conflict.ResolutionBruteForceDelete, rec, pkgs, "")
}

// SelectAlternative selects alt for installation.
func (s *PackageStateSink) SelectAlternative(ctx context.Context, rec conflict.Record, alt conflict.PackageRef) error {
	return s.apply(ctx, conflict.ResolutionAlternative, rec, []conflict.PackageRef{alt}, "")
}

func (s *PackageStateSink) apply(ctx context.Context, action conflict.ResolutionType, rec conflict.Record, pkgs []conflict.PackageRef, undoTarget conflict.Status) error {
	states, err := s.fetchStates(ctx, pkgs)
	if err != nil {
		return err
	}

	plan := selection.GenerateResolutionPlan(selection.ResolutionPlanInput{
		PassID:            s.passID,
		Action:            action,
		ConflictPackageID: rec.Package.ID,
		Packages:          states,
		UndoTarget:        undoTarget,
	})

	return s.executor.Execute(ctx, plan.Effects())
}

func (s *PackageStateSink) fetchStates(ctx context.Context, pkgs []conflict.PackageRef) ([]selection.PackageState, error) {
	states := make([]selection.PackageState, 0, len(pkgs))
	for _, p := range pkgs {
		record, err := s.packageRepo.GetByID(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up package %s: %w", p.ID, err)
		}
		states = append(states, selection.PackageState{
			ID:        record.ID,
			Status:    conflict.Status(record.Status),
			Installed: record.Installed,
		})
	}
	return states, nil
}

// Ensure PackageStateSink implements the interface
var _ conflict.Sink = (*PackageStateSink)(nil)
