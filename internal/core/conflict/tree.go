package conflict

import "fmt"

// ItemKind tells a presentation layer how to draw a TreeItem.
type ItemKind string

// Tree item kinds.
const (
	KindConflict ItemKind = "conflict"
	KindHeader   ItemKind = "header"
	KindRelation ItemKind = "relation"
	KindOption   ItemKind = "option"
	KindMore     ItemKind = "more"
)

// TreeItem is a toolkit-free view of one row in the conflict tree.
type TreeItem struct {
	Text     string
	Kind     ItemKind
	NodeID   string
	OptionID string

	// Checkable items are radio-style: at most one per conflict is Checked.
	Checkable bool
	Checked   bool
	Resolved  bool

	Children []*TreeItem
}

// Tree builds the current tree: one root per conflict with informational
// relation lists followed by a "Resolutions" branch of options.
func (l *List) Tree() []*TreeItem {
	roots := make([]*TreeItem, 0, len(l.nodes))
	for _, n := range l.nodes {
		roots = append(roots, l.nodeItem(n))
	}
	return roots
}

func (l *List) nodeItem(n *Node) *TreeItem {
	root := &TreeItem{
		Text:     n.Heading(),
		Kind:     KindConflict,
		NodeID:   n.ID,
		Resolved: n.IsResolved(),
	}
	l.dumpLists(root, n)

	resolutions := &TreeItem{Text: "Resolutions", Kind: KindHeader, NodeID: n.ID}
	var alternatives []*TreeItem
	for _, o := range n.options {
		item := &TreeItem{
			Text:      o.Label,
			Kind:      KindOption,
			NodeID:    n.ID,
			OptionID:  o.ID,
			Checkable: true,
			Checked:   n.selected == o,
		}
		if o.IsAlternative() {
			alternatives = append(alternatives, item)
			continue
		}
		if len(alternatives) > 0 {
			resolutions.Children = append(resolutions.Children, l.alternativesItem(n, alternatives))
			alternatives = nil
		}
		if o.Type == ResolutionBruteForceDelete {
			l.dumpList(item, n.record.DeleteSet(), "")
		}
		resolutions.Children = append(resolutions.Children, item)
	}
	if len(alternatives) > 0 {
		resolutions.Children = append(resolutions.Children, l.alternativesItem(n, alternatives))
	}
	root.Children = append(root.Children, resolutions)
	return root
}

func (l *List) alternativesItem(n *Node, items []*TreeItem) *TreeItem {
	header := &TreeItem{Text: "Alternatives", Kind: KindHeader, NodeID: n.ID}
	header.Children = l.split(n.ID, items)
	return header
}

// dumpLists adds the informational relation lists of a conflict.
func (l *List) dumpLists(parent *TreeItem, n *Node) {
	rec := n.record
	l.dumpRelations(parent, n.ID, rec.Unresolvable, "Unresolved requirements")
	l.dumpRelations(parent, n.ID, rec.ConflictsWith, "Conflicts with")
	l.dumpRelations(parent, n.ID, rec.Referers, "Required by")
}

func (l *List) dumpRelations(parent *TreeItem, nodeID string, rels []RelInfo, header string) {
	if len(rels) == 0 {
		return
	}
	items := make([]*TreeItem, 0, len(rels))
	for _, rel := range rels {
		items = append(items, &TreeItem{Text: rel.String(), Kind: KindRelation, NodeID: nodeID})
	}
	l.attach(parent, nodeID, items, header)
}

func (l *List) dumpList(parent *TreeItem, pkgs []PackageRef, header string) {
	items := make([]*TreeItem, 0, len(pkgs))
	for _, p := range pkgs {
		items = append(items, &TreeItem{Text: p.FullName(), Kind: KindRelation, NodeID: parent.NodeID})
	}
	l.attach(parent, parent.NodeID, items, header)
}

// attach puts items below parent, bracketed by a header item when header is
// non-empty. Does nothing if items is empty.
func (l *List) attach(parent *TreeItem, nodeID string, items []*TreeItem, header string) {
	if len(items) == 0 {
		return
	}
	target := parent
	if header != "" {
		target = &TreeItem{Text: header, Kind: KindHeader, NodeID: nodeID}
		parent.Children = append(parent.Children, target)
	}
	target.Children = append(target.Children, l.split(nodeID, items)...)
}

// split keeps the first splitThreshold items and nests the rest below a
// "More..." item, recursively.
func (l *List) split(nodeID string, items []*TreeItem) []*TreeItem {
	if l.splitThreshold < 2 || len(items) <= l.splitThreshold {
		return items
	}
	head := append([]*TreeItem(nil), items[:l.splitThreshold]...)
	rest := items[l.splitThreshold:]
	more := &TreeItem{
		Text:     fmt.Sprintf("More... (%d)", len(rest)),
		Kind:     KindMore,
		NodeID:   nodeID,
		Children: l.split(nodeID, rest),
	}
	return append(head, more)
}
