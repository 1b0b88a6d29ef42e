package conflict

import (
	"context"
	"errors"
	"fmt"
)

// DefaultSplitThreshold is the list length after which long relation lists are
// moved into a "More..." sub-tree.
const DefaultSplitThreshold = 5

const defaultSummaryNames = 3

var (
	// ErrChoicesIncomplete is returned when choices are applied while at least
	// one conflict is still unresolved.
	ErrChoicesIncomplete = errors.New("not all conflicts are resolved")

	// ErrUnknownNode is returned when selecting on a conflict id that is not in the list.
	ErrUnknownNode = errors.New("unknown conflict")

	// ErrUnknownOption is returned when selecting an option id the conflict does not offer.
	ErrUnknownOption = errors.New("unknown resolution option")
)

// Sink receives the actions produced by ApplyUserChoices. It is implemented by
// whatever owns the package selection state.
type Sink interface {
	Undo(ctx context.Context, rec Record, target Status) error
	Ignore(ctx context.Context, rec Record) error
	Delete(ctx context.Context, rec Record, pkgs []PackageRef) error
	SelectAlternative(ctx context.Context, rec Record, alt PackageRef) error
}

// ListOption configures a List.
type ListOption func(*List)

// WithSplitThreshold sets the sub-tree split threshold. Values below 2 disable
// splitting.
func WithSplitThreshold(n int) ListOption {
	return func(l *List) { l.splitThreshold = n }
}

// WithSummaryNames limits how many package names a delete label spells out.
func WithSummaryNames(n int) ListOption {
	return func(l *List) { l.summaryNames = n }
}

// List holds the conflicts of one resolution pass and the user's choices.
// It is not safe for concurrent use.
type List struct {
	nodes          []*Node
	byID           map[string]*Node
	splitThreshold int
	summaryNames   int
}

// NewList creates an empty List.
func NewList(opts ...ListOption) *List {
	l := &List{
		byID:           make(map[string]*Node),
		splitThreshold: DefaultSplitThreshold,
		summaryNames:   defaultSummaryNames,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Populate replaces the list content with one node per record.
func (l *List) Populate(records []Record) {
	l.Clear()
	for i, rec := range records {
		n := newNode(fmt.Sprintf("CONFLICT-%03d", i+1), rec, l.summaryNames)
		l.nodes = append(l.nodes, n)
		l.byID[n.ID] = n
	}
}

// Clear drops all nodes and selections.
func (l *List) Clear() {
	l.nodes = nil
	l.byID = make(map[string]*Node)
}

// Len returns the number of conflicts.
func (l *List) Len() int { return len(l.nodes) }

// Nodes returns the conflicts in input order.
func (l *List) Nodes() []*Node { return l.nodes }

// Node looks up a conflict by id.
func (l *List) Node(id string) (*Node, bool) {
	n, ok := l.byID[id]
	return n, ok
}

// SplitThreshold returns the configured split threshold.
func (l *List) SplitThreshold() int { return l.splitThreshold }

// Select picks an option for a conflict. A later selection replaces an
// earlier one.
func (l *List) Select(nodeID, optionID string) error {
	n, ok := l.byID[nodeID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownNode, nodeID)
	}
	o, ok := n.Option(optionID)
	if !ok {
		return fmt.Errorf("%w: %s has no option %s", ErrUnknownOption, nodeID, optionID)
	}
	n.selectOption(o)
	return nil
}

// SelectIndex picks an option by 1-based positions as shown to the user.
func (l *List) SelectIndex(nodeIndex, optionIndex int) error {
	if nodeIndex < 1 || nodeIndex > len(l.nodes) {
		return fmt.Errorf("%w: #%d", ErrUnknownNode, nodeIndex)
	}
	n := l.nodes[nodeIndex-1]
	if optionIndex < 1 || optionIndex > len(n.options) {
		return fmt.Errorf("%w: %s has no option #%d", ErrUnknownOption, n.ID, optionIndex)
	}
	n.selectOption(n.options[optionIndex-1])
	return nil
}

// SelectType picks the first option of the given type on every unresolved
// node that offers one. Nodes with nothing to decide are left alone. It
// returns the number of nodes changed.
func (l *List) SelectType(t ResolutionType) int {
	changed := 0
	for _, n := range l.nodes {
		if n.IsResolved() {
			continue
		}
		for _, o := range n.options {
			if o.Type == t {
				n.selectOption(o)
				changed++
				break
			}
		}
	}
	return changed
}

// IsComplete reports whether every conflict is resolved.
func (l *List) IsComplete() bool {
	for _, n := range l.nodes {
		if !n.IsResolved() {
			return false
		}
	}
	return true
}

// Unresolved returns the conflicts still waiting for a choice.
func (l *List) Unresolved() []*Node {
	var out []*Node
	for _, n := range l.nodes {
		if !n.IsResolved() {
			out = append(out, n)
		}
	}
	return out
}

// ApplyOption configures ApplyUserChoices.
type ApplyOption func(*applyConfig)

type applyConfig struct {
	allowIncomplete bool
}

// AllowIncomplete makes ApplyUserChoices skip unresolved conflicts instead of
// refusing to run.
func AllowIncomplete() ApplyOption {
	return func(c *applyConfig) { c.allowIncomplete = true }
}

// ApplyUserChoices forwards the chosen resolution of every resolved conflict to
// sink, in list order. It returns the number of actions emitted.
func (l *List) ApplyUserChoices(ctx context.Context, sink Sink, opts ...ApplyOption) (int, error) {
	var cfg applyConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if !cfg.allowIncomplete {
		if err := CanApplyChoices(l.applyContext()).Error(); err != nil {
			return 0, err
		}
	}

	emitted := 0
	for _, action := range l.Plan() {
		if err := ctx.Err(); err != nil {
			return emitted, err
		}
		if err := action.dispatch(ctx, sink); err != nil {
			return emitted, fmt.Errorf("failed to apply %s for %s: %w", action.Type, action.ConflictID, err)
		}
		emitted++
	}
	return emitted, nil
}

func (l *List) applyContext() ApplyChoicesContext {
	ctx := ApplyChoicesContext{ConflictCount: len(l.nodes)}
	for _, n := range l.Unresolved() {
		ctx.UnresolvedIDs = append(ctx.UnresolvedIDs, n.ID)
	}
	return ctx
}
