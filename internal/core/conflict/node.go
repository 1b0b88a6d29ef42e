package conflict

import "fmt"

// Node is one conflict in a List together with its resolution options.
type Node struct {
	ID string

	record     Record
	shortName  string
	fullName   string
	status     Status
	undoStatus Status
	canUndo    bool

	options  []*Option
	selected *Option
}

func newNode(id string, rec Record, summaryNames int) *Node {
	n := &Node{
		ID:        id,
		record:    rec,
		shortName: rec.Package.ShortName(),
		fullName:  rec.Package.FullName(),
		status:    rec.Status,
	}
	n.undoStatus, n.canUndo = rec.Status.UndoTarget()
	n.addResolutionSuggestions(summaryNames)
	return n
}

// addResolutionSuggestions builds the options in display order:
// undo, alternatives, brute force delete, ignore.
func (n *Node) addResolutionSuggestions(summaryNames int) {
	if n.canUndo {
		n.addOption(ResolutionUndo, undoLabel(n.record), PackageRef{})
	}
	for _, alt := range n.record.Alternatives {
		n.addOption(ResolutionAlternative, alternativeLabel(alt.Package), alt.Package)
	}
	if len(n.record.RemoveToSolve) > 0 {
		n.addOption(ResolutionBruteForceDelete, deleteLabel(n.record, summaryNames), PackageRef{})
	}
	n.addOption(ResolutionIgnore, ignoreLabel, PackageRef{})
}

func (n *Node) addOption(t ResolutionType, label string, pkg PackageRef) {
	n.options = append(n.options, &Option{
		ID:      fmt.Sprintf("%s.%d", n.ID, len(n.options)+1),
		NodeID:  n.ID,
		Type:    t,
		Label:   label,
		Package: pkg,
	})
}

// Record returns the conflict record this node was built from.
func (n *Node) Record() Record { return n.record }

// ShortName is the conflicting package name without version.
func (n *Node) ShortName() string { return n.shortName }

// FullName is the conflicting package name including edition.
func (n *Node) FullName() string { return n.fullName }

// Status is the package status that caused the conflict.
func (n *Node) Status() Status { return n.status }

// UndoStatus is the status an Undo resolution reverts to.
func (n *Node) UndoStatus() Status { return n.undoStatus }

// Options returns the node's options in display order.
func (n *Node) Options() []*Option { return n.options }

// Selected returns the chosen option, or nil.
func (n *Node) Selected() *Option { return n.selected }

// Option looks up an option by id.
func (n *Node) Option(id string) (*Option, bool) {
	for _, o := range n.options {
		if o.ID == id {
			return o, true
		}
	}
	return nil, false
}

// IsResolved reports whether the user made a choice how to deal with this
// conflict. Records that carry nothing to decide on count as resolved.
func (n *Node) IsResolved() bool {
	if n.selected != nil {
		return true
	}
	return !n.record.RequiresDecision()
}

// selectOption replaces any earlier selection.
func (n *Node) selectOption(o *Option) {
	n.selected = o
}

// Heading is the one-line description of the conflict.
func (n *Node) Heading() string {
	switch n.status {
	case StatusInstall, StatusAutoInstall:
		return fmt.Sprintf("Cannot install %s", n.fullName)
	case StatusUpdate, StatusAutoUpdate:
		return fmt.Sprintf("Cannot update %s", n.fullName)
	case StatusDel, StatusAutoDel:
		return fmt.Sprintf("Cannot delete %s", n.fullName)
	default:
		return fmt.Sprintf("Conflict with %s", n.fullName)
	}
}
