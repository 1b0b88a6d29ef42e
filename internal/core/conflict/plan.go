package conflict

import (
	"context"
	"fmt"
)

// Action is one resolution that ApplyUserChoices will forward to a Sink.
type Action struct {
	ConflictID string
	Type       ResolutionType
	Record     Record

	// UndoTarget is set for undo actions.
	UndoTarget Status
	// Packages holds the delete set for delete actions and the single
	// alternative for alternative actions.
	Packages []PackageRef
}

// String describes the action for previews and logs.
func (a Action) String() string {
	switch a.Type {
	case ResolutionUndo:
		return fmt.Sprintf("%s: undo %s (%s -> %s)", a.ConflictID, a.Record.Package.FullName(), a.Record.Status, a.UndoTarget)
	case ResolutionIgnore:
		return fmt.Sprintf("%s: ignore conflict of %s", a.ConflictID, a.Record.Package.FullName())
	case ResolutionBruteForceDelete:
		return fmt.Sprintf("%s: delete %d package(s) starting with %s", a.ConflictID, len(a.Packages), a.Record.Package.FullName())
	case ResolutionAlternative:
		return fmt.Sprintf("%s: select alternative %s", a.ConflictID, a.Packages[0].FullName())
	default:
		return fmt.Sprintf("%s: %s", a.ConflictID, a.Type)
	}
}

func (a Action) dispatch(ctx context.Context, sink Sink) error {
	switch a.Type {
	case ResolutionUndo:
		return sink.Undo(ctx, a.Record, a.UndoTarget)
	case ResolutionIgnore:
		return sink.Ignore(ctx, a.Record)
	case ResolutionBruteForceDelete:
		return sink.Delete(ctx, a.Record, a.Packages)
	case ResolutionAlternative:
		return sink.SelectAlternative(ctx, a.Record, a.Packages[0])
	default:
		return fmt.Errorf("unknown resolution type: %s", a.Type)
	}
}

// Plan returns the actions for every conflict that has a selection, in list
// order. Conflicts without a selection produce no action.
func (l *List) Plan() []Action {
	var actions []Action
	for _, n := range l.nodes {
		o := n.selected
		if o == nil {
			continue
		}
		action := Action{
			ConflictID: n.ID,
			Type:       o.Type,
			Record:     n.record,
		}
		switch o.Type {
		case ResolutionUndo:
			action.UndoTarget = n.undoStatus
		case ResolutionBruteForceDelete:
			action.Packages = n.record.DeleteSet()
		case ResolutionAlternative:
			action.Packages = []PackageRef{o.Package}
		}
		actions = append(actions, action)
	}
	return actions
}
