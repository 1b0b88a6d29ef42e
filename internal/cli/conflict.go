package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	cliadapter "github.com/example/pkgconflict/internal/adapters/cli"
	"github.com/example/pkgconflict/internal/core/conflict"
	"github.com/example/pkgconflict/internal/wire"
)

var conflictCmd = &cobra.Command{
	Use:   "conflict",
	Short: "Inspect and resolve dependency conflicts",
	Long:  "Show the conflicts of a solver batch and choose how to resolve each of them",
}

var conflictShowCmd = &cobra.Command{
	Use:   "show [batch]",
	Short: "Show the conflicts of a batch as a tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		split, _ := cmd.Flags().GetInt("split")

		adapter := wire.ResolutionAdapter()
		list, err := adapter.Load(NewContext(), args[0], split)
		if err != nil {
			return err
		}
		adapter.Show(list)
		return nil
	},
}

var conflictResolveCmd = &cobra.Command{
	Use:   "resolve [batch]",
	Short: "Choose resolutions and apply them to the package store",
	Long: `Choose one resolution per conflict and apply the choices.

Choices are given as NODE=OPTION, where NODE is a conflict id or its position
and OPTION is the option number shown by 'conflict show', an option id, or a
resolution type (undo, ignore, delete, alternative). Without --choose and on a
terminal, each unresolved conflict is prompted for.

Nothing is applied while a conflict is still waiting for a choice unless
--allow-incomplete is given.

Examples:
  pkgconflict conflict resolve batch.yaml --choose CONFLICT-001=2
  pkgconflict conflict resolve batch.yaml --choose 1=undo --ignore-rest --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()
		choices, _ := cmd.Flags().GetStringArray("choose")
		ignoreRest, _ := cmd.Flags().GetBool("ignore-rest")
		allowIncomplete, _ := cmd.Flags().GetBool("allow-incomplete")
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		split, _ := cmd.Flags().GetInt("split")

		adapter := wire.ResolutionAdapter()
		list, err := adapter.Load(ctx, args[0], split)
		if err != nil {
			return err
		}
		if list.Len() == 0 {
			fmt.Println("No conflicts.")
			return nil
		}

		if err := adapter.ApplyChoices(list, choices); err != nil {
			return err
		}

		if len(choices) == 0 && isatty.IsTerminal(os.Stdin.Fd()) {
			if err := adapter.Prompt(list, os.Stdin); err != nil {
				if errors.Is(err, cliadapter.ErrPromptAborted) {
					fmt.Println("Aborted, nothing applied.")
					return nil
				}
				return err
			}
		}

		if ignoreRest {
			adapter.SelectRemaining(list, conflict.ResolutionIgnore)
		}

		_, err = adapter.Resolve(ctx, list, allowIncomplete, dryRun)
		return err
	},
}

func init() {
	conflictCmd.PersistentFlags().Int("split", 0, "Nest lists longer than N items under 'More...' (default from config)")

	// conflict resolve flags
	conflictResolveCmd.Flags().StringArrayP("choose", "c", nil, "Choice as NODE=OPTION (repeatable)")
	conflictResolveCmd.Flags().Bool("ignore-rest", false, "Ignore every conflict left without a choice")
	conflictResolveCmd.Flags().Bool("allow-incomplete", false, "Apply resolved conflicts even if others remain unresolved")
	conflictResolveCmd.Flags().Bool("dry-run", false, "Show the actions without applying them")

	// Register subcommands
	conflictCmd.AddCommand(conflictShowCmd)
	conflictCmd.AddCommand(conflictResolveCmd)
}

// ConflictCmd returns the conflict command
func ConflictCmd() *cobra.Command {
	return conflictCmd
}
