package conflict

import (
	"fmt"
	"strings"
)

// ResolutionType is the kind of action an Option stands for.
type ResolutionType string

// Resolution types.
const (
	ResolutionUndo             ResolutionType = "undo"
	ResolutionIgnore           ResolutionType = "ignore"
	ResolutionBruteForceDelete ResolutionType = "delete"
	ResolutionAlternative      ResolutionType = "alternative"
)

// Option is one selectable way of dealing with a conflict.
// Options are immutable once built and belong to exactly one Node.
type Option struct {
	ID     string
	NodeID string
	Type   ResolutionType
	Label  string

	// Package is set for alternatives only.
	Package PackageRef
}

// IsAlternative reports whether the option carries an alternative package.
func (o *Option) IsAlternative() bool { return o.Type == ResolutionAlternative }

func undoLabel(r Record) string {
	name := r.Package.ShortName()
	switch r.Status {
	case StatusInstall, StatusAutoInstall:
		return fmt.Sprintf("Do not install %s", name)
	case StatusUpdate, StatusAutoUpdate:
		return fmt.Sprintf("Do not update %s", name)
	case StatusDel, StatusAutoDel:
		return fmt.Sprintf("Do not delete %s", name)
	default:
		return fmt.Sprintf("Undo changes to %s", name)
	}
}

func alternativeLabel(pkg PackageRef) string {
	return fmt.Sprintf("Install %s", pkg.FullName())
}

// deleteLabel summarises the packages a brute force resolution removes.
func deleteLabel(r Record, maxNames int) string {
	pkgs := r.DeleteSet()
	names := make([]string, 0, len(pkgs))
	for i, p := range pkgs {
		if maxNames > 0 && i >= maxNames {
			names = append(names, fmt.Sprintf("and %d more", len(pkgs)-maxNames))
			break
		}
		names = append(names, p.ShortName())
	}
	return fmt.Sprintf("Delete %s", strings.Join(names, ", "))
}

const ignoreLabel = "Ignore this conflict and risk system inconsistencies"
