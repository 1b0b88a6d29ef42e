package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/example/pkgconflict/internal/core/conflict"
	"github.com/example/pkgconflict/internal/ports/primary"
)

// ErrPromptAborted is returned when the user quits the interactive prompt.
var ErrPromptAborted = errors.New("resolution aborted")

var (
	unresolvedColor = color.New(color.FgRed, color.Bold)
	resolvedColor   = color.New(color.FgGreen, color.Bold)
	headerColor     = color.New(color.FgCyan)
	checkedColor    = color.New(color.FgGreen)
	moreColor       = color.New(color.Faint)
)

// ResolutionAdapter translates CLI operations to ResolutionService calls and
// renders conflict lists as text.
type ResolutionAdapter struct {
	service primary.ResolutionService
	out     io.Writer
}

// NewResolutionAdapter creates a new ResolutionAdapter with the given service.
func NewResolutionAdapter(service primary.ResolutionService, out io.Writer) *ResolutionAdapter {
	return &ResolutionAdapter{
		service: service,
		out:     out,
	}
}

// Load reads a conflict batch. A zero splitThreshold uses the configured default.
func (a *ResolutionAdapter) Load(ctx context.Context, path string, splitThreshold int) (*conflict.List, error) {
	list, err := a.service.LoadConflicts(ctx, primary.LoadConflictsRequest{
		Path:           path,
		SplitThreshold: splitThreshold,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load conflicts: %w", err)
	}
	return list, nil
}

// Show prints every conflict of list as a tree.
func (a *ResolutionAdapter) Show(list *conflict.List) {
	if list.Len() == 0 {
		fmt.Fprintln(a.out, "No conflicts.")
		return
	}

	fmt.Fprintf(a.out, "%d conflict(s), %d unresolved\n\n", list.Len(), len(list.Unresolved()))
	for _, root := range list.Tree() {
		a.renderItem(root, 0)
		fmt.Fprintln(a.out)
	}
}

func (a *ResolutionAdapter) renderItem(item *conflict.TreeItem, depth int) {
	indent := strings.Repeat("  ", depth)

	switch item.Kind {
	case conflict.KindConflict:
		mark := unresolvedColor.Sprint("[ ]")
		if item.Resolved {
			mark = resolvedColor.Sprint("[✓]")
		}
		fmt.Fprintf(a.out, "%s%s %s  %s\n", indent, mark, item.NodeID, item.Text)
	case conflict.KindHeader:
		fmt.Fprintf(a.out, "%s%s\n", indent, headerColor.Sprint(item.Text))
	case conflict.KindOption:
		radio := "( )"
		text := item.Text
		if item.Checked {
			radio = checkedColor.Sprint("(•)")
			text = checkedColor.Sprint(text)
		}
		fmt.Fprintf(a.out, "%s%s %s. %s\n", indent, radio, optionNumber(item), text)
	case conflict.KindMore:
		fmt.Fprintf(a.out, "%s%s\n", indent, moreColor.Sprint(item.Text))
	default:
		fmt.Fprintf(a.out, "%s- %s\n", indent, item.Text)
	}

	for _, child := range item.Children {
		a.renderItem(child, depth+1)
	}
}

// optionNumber is the 1-based position of an option within its conflict.
func optionNumber(item *conflict.TreeItem) string {
	return strings.TrimPrefix(item.OptionID, item.NodeID+".")
}

// ApplyChoices selects options from NODE=OPTION pairs. NODE is a conflict id
// or its 1-based position; OPTION is an option number, an option id, or a
// resolution type (undo, ignore, delete, alternative).
func (a *ResolutionAdapter) ApplyChoices(list *conflict.List, choices []string) error {
	for _, choice := range choices {
		nodeSpec, optionSpec, ok := strings.Cut(choice, "=")
		if !ok || nodeSpec == "" || optionSpec == "" {
			return fmt.Errorf("invalid choice %q: expected NODE=OPTION", choice)
		}
		node, err := findNode(list, nodeSpec)
		if err != nil {
			return err
		}
		optionID, err := findOption(node, optionSpec)
		if err != nil {
			return err
		}
		if err := list.Select(node.ID, optionID); err != nil {
			return err
		}
	}
	return nil
}

func findNode(list *conflict.List, spec string) (*conflict.Node, error) {
	if n, ok := list.Node(spec); ok {
		return n, nil
	}
	idx, err := strconv.Atoi(spec)
	if err != nil || idx < 1 || idx > list.Len() {
		return nil, fmt.Errorf("%w: %s", conflict.ErrUnknownNode, spec)
	}
	return list.Nodes()[idx-1], nil
}

func findOption(node *conflict.Node, spec string) (string, error) {
	if o, ok := node.Option(spec); ok {
		return o.ID, nil
	}
	if idx, err := strconv.Atoi(spec); err == nil {
		if idx >= 1 && idx <= len(node.Options()) {
			return node.Options()[idx-1].ID, nil
		}
		return "", fmt.Errorf("%w: %s has no option #%d", conflict.ErrUnknownOption, node.ID, idx)
	}
	for _, o := range node.Options() {
		if string(o.Type) == spec {
			return o.ID, nil
		}
	}
	return "", fmt.Errorf("%w: %s has no option %s", conflict.ErrUnknownOption, node.ID, spec)
}

// SelectRemaining picks the first option of type t on every conflict still
// without a choice.
func (a *ResolutionAdapter) SelectRemaining(list *conflict.List, t conflict.ResolutionType) int {
	n := list.SelectType(t)
	if n > 0 {
		fmt.Fprintf(a.out, "✓ Chose %s for %d conflict(s)\n", t, n)
	}
	return n
}

// Prompt asks for a choice on every unresolved conflict, reading answers from
// in. An empty answer or "s" skips the conflict, "q" aborts.
func (a *ResolutionAdapter) Prompt(list *conflict.List, in io.Reader) error {
	reader := bufio.NewReader(in)
	roots := list.Tree()

	for i, node := range list.Nodes() {
		if node.IsResolved() {
			continue
		}
		a.renderItem(roots[i], 0)

		for {
			fmt.Fprintf(a.out, "Choose 1-%d for %s (s to skip, q to quit): ", len(node.Options()), node.ID)
			response, err := reader.ReadString('\n')
			response = strings.TrimSpace(strings.ToLower(response))
			if err != nil && response == "" {
				fmt.Fprintln(a.out)
				return nil
			}

			if response == "q" {
				return ErrPromptAborted
			}
			if response == "" || response == "s" {
				break
			}
			idx, convErr := strconv.Atoi(response)
			if convErr == nil {
				if selErr := list.SelectIndex(i+1, idx); selErr == nil {
					fmt.Fprintf(a.out, "  → %s\n", node.Selected().Label)
					break
				}
			}
			fmt.Fprintf(a.out, "  invalid choice %q\n", response)
			if err != nil {
				return nil
			}
		}
		fmt.Fprintln(a.out)
	}
	return nil
}

// Resolve applies the choices on list and reports the outcome.
func (a *ResolutionAdapter) Resolve(ctx context.Context, list *conflict.List, allowIncomplete, dryRun bool) (*primary.ResolveResponse, error) {
	resp, err := a.service.Resolve(ctx, primary.ResolveRequest{
		List:            list,
		AllowIncomplete: allowIncomplete,
		DryRun:          dryRun,
	})
	if err != nil {
		if errors.Is(err, conflict.ErrChoicesIncomplete) {
			a.printUnresolved(list)
		}
		if resp != nil && resp.Applied > 0 {
			fmt.Fprintf(a.out, "Applied %d action(s) before the failure (pass %s)\n", resp.Applied, resp.PassID)
		}
		return resp, err
	}

	if len(resp.Actions) == 0 {
		fmt.Fprintln(a.out, "Nothing to apply.")
		return resp, nil
	}

	if resp.DryRun {
		fmt.Fprintln(a.out, "Would apply:")
		for _, action := range resp.Actions {
			fmt.Fprintf(a.out, "  %s\n", action)
		}
		return resp, nil
	}

	for _, action := range resp.Actions[:resp.Applied] {
		fmt.Fprintf(a.out, "✓ %s\n", action)
	}
	fmt.Fprintf(a.out, "Applied %d resolution(s) (pass %s)\n", resp.Applied, resp.PassID)
	if skipped := list.Len() - resp.Applied; skipped > 0 {
		fmt.Fprintf(a.out, "  %d conflict(s) left untouched\n", skipped)
	}
	return resp, nil
}

func (a *ResolutionAdapter) printUnresolved(list *conflict.List) {
	fmt.Fprintln(a.out, "Still waiting for a choice:")
	for _, n := range list.Unresolved() {
		fmt.Fprintf(a.out, "  %s  %s\n", unresolvedColor.Sprint(n.ID), n.Heading())
	}
}

// Log prints resolution log entries.
func (a *ResolutionAdapter) Log(ctx context.Context, filters primary.LogFilters) ([]*primary.LogEntry, error) {
	entries, err := a.service.ListLog(ctx, filters)
	if err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No resolutions recorded.")
		return entries, nil
	}

	for _, e := range entries {
		change := ""
		if e.PackageID != "" {
			change = fmt.Sprintf(" %s %s → %s", e.PackageID, e.OldStatus, e.NewStatus)
		}
		actor := ""
		if e.ActorID != "" {
			actor = " by " + e.ActorID
		}
		fmt.Fprintf(a.out, "%s %s [%s] %s (conflict %s)%s%s\n",
			e.CreatedAt, e.ID, e.PassID, e.Action, e.ConflictPackageID, change, actor)
	}
	return entries, nil
}

// Prune deletes log entries older than days.
func (a *ResolutionAdapter) Prune(ctx context.Context, days int) (int, error) {
	n, err := a.service.PruneLog(ctx, days)
	if err != nil {
		return 0, err
	}
	fmt.Fprintf(a.out, "✓ Pruned %d log entries older than %d days\n", n, days)
	return n, nil
}
