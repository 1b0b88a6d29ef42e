// Package conflict contains the pure model for choosing how to resolve package
// dependency conflicts reported by an external solver.
//
// Nothing in this package performs I/O. Records come in through Populate, the
// user picks one Option per Node, and ApplyUserChoices forwards the chosen
// actions to a Sink owned by the caller.
package conflict

import "fmt"

// Status is the selection status of a package in the package-state store.
type Status string

// Package selection statuses.
const (
	StatusTaboo         Status = "taboo"
	StatusDel           Status = "del"
	StatusUpdate        Status = "update"
	StatusInstall       Status = "install"
	StatusAutoDel       Status = "auto-del"
	StatusAutoUpdate    Status = "auto-update"
	StatusAutoInstall   Status = "auto-install"
	StatusKeepInstalled Status = "keep-installed"
	StatusNoInst        Status = "no-inst"
)

// AllStatuses lists every valid status in display order.
var AllStatuses = []Status{
	StatusTaboo,
	StatusDel,
	StatusUpdate,
	StatusInstall,
	StatusAutoDel,
	StatusAutoUpdate,
	StatusAutoInstall,
	StatusKeepInstalled,
	StatusNoInst,
}

// ParseStatus validates a status string.
func ParseStatus(s string) (Status, error) {
	for _, st := range AllStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("invalid package status %q", s)
}

// UndoTarget returns the status that reverts the transaction recorded in s.
// The second return value is false when s is not a revertible transaction.
func (s Status) UndoTarget() (Status, bool) {
	switch s {
	case StatusInstall, StatusAutoInstall:
		return StatusNoInst, true
	case StatusUpdate, StatusAutoUpdate, StatusDel, StatusAutoDel:
		return StatusKeepInstalled, true
	default:
		return s, false
	}
}

// PackageRef identifies a package owned by the external package-state store.
// ID is opaque to this package.
type PackageRef struct {
	ID      string `yaml:"id" json:"id"`
	Name    string `yaml:"name" json:"name"`
	Edition string `yaml:"edition,omitempty" json:"edition,omitempty"`
}

// ShortName is the package name without version.
func (p PackageRef) ShortName() string {
	if p.Name == "" {
		return p.ID
	}
	return p.Name
}

// FullName is the package name plus edition.
func (p PackageRef) FullName() string {
	if p.Edition == "" {
		return p.ShortName()
	}
	return p.ShortName() + "-" + p.Edition
}

// RelInfo is one package relation attached to a conflict.
type RelInfo struct {
	Package  PackageRef `yaml:"package" json:"package"`
	Relation string     `yaml:"relation,omitempty" json:"relation,omitempty"`
}

// String formats the relation for display.
func (r RelInfo) String() string {
	if r.Relation == "" {
		return r.Package.FullName()
	}
	return r.Package.FullName() + ": " + r.Relation
}

// Record describes one unresolved package dependency problem.
// Records are produced upstream and never modified here.
type Record struct {
	Package       PackageRef `yaml:"package" json:"package"`
	Status        Status     `yaml:"status" json:"status"`
	Installed     bool       `yaml:"installed" json:"installed"`
	Unresolvable  []RelInfo  `yaml:"unresolvable,omitempty" json:"unresolvable,omitempty"`
	ConflictsWith []RelInfo  `yaml:"conflicts_with,omitempty" json:"conflicts_with,omitempty"`
	Alternatives  []RelInfo  `yaml:"alternatives,omitempty" json:"alternatives,omitempty"`
	RemoveToSolve []RelInfo  `yaml:"remove_to_solve,omitempty" json:"remove_to_solve,omitempty"`
	Referers      []RelInfo  `yaml:"referers,omitempty" json:"referers,omitempty"`
}

// NeedAlternative reports whether the conflict offers alternatives to pick from.
func (r Record) NeedAlternative() bool { return len(r.Alternatives) > 0 }

// HasCollisions reports whether the package collides with other packages.
func (r Record) HasCollisions() bool { return len(r.ConflictsWith) > 0 }

// HasOpenRequirements reports whether the package has unresolved requirements.
func (r Record) HasOpenRequirements() bool { return len(r.Unresolvable) > 0 }

// RequiresDecision reports whether a node built from r stays unresolved until
// the user picks an option.
func (r Record) RequiresDecision() bool {
	return r.NeedAlternative() || r.HasCollisions() || r.HasOpenRequirements()
}

// DeleteSet returns the packages removed by a brute force resolution: the
// conflicting package followed by everything in RemoveToSolve. Each package
// appears once, in first-seen order.
func (r Record) DeleteSet() []PackageRef {
	pkgs := make([]PackageRef, 0, len(r.RemoveToSolve)+1)
	pkgs = append(pkgs, r.Package)
	seen := map[string]bool{r.Package.ID: true}
	for _, rel := range r.RemoveToSolve {
		if seen[rel.Package.ID] {
			continue
		}
		seen[rel.Package.ID] = true
		pkgs = append(pkgs, rel.Package)
	}
	return pkgs
}
