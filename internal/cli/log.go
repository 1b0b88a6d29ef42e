package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/pkgconflict/internal/ports/primary"
	"github.com/example/pkgconflict/internal/wire"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the resolution log",
	Long:  "View and manage the audit trail of applied conflict resolutions",
}

var logListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show applied resolutions, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		passID, _ := cmd.Flags().GetString("pass")
		packageID, _ := cmd.Flags().GetString("package")
		action, _ := cmd.Flags().GetString("action")
		limit, _ := cmd.Flags().GetInt("limit")

		_, err := wire.ResolutionAdapter().Log(NewContext(), primary.LogFilters{
			PassID:    passID,
			PackageID: packageID,
			Action:    action,
			Limit:     limit,
		})
		return err
	},
}

var logPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old log entries",
	Long:  "Delete log entries older than the specified number of days (default 30)",
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")
		if days <= 0 {
			days = 30
		}

		_, err := wire.ResolutionAdapter().Prune(NewContext(), days)
		return err
	},
}

// LogCmd returns the log command with all subcommands attached.
func LogCmd() *cobra.Command {
	// log list
	logListCmd.Flags().String("pass", "", "Filter by resolution pass ID")
	logListCmd.Flags().String("package", "", "Filter by package ID")
	logListCmd.Flags().String("action", "", "Filter by action (undo, ignore, delete, alternative)")
	logListCmd.Flags().IntP("limit", "n", 50, "Maximum entries to show")

	// log prune
	logPruneCmd.Flags().Int("days", 30, "Delete entries older than N days")

	logCmd.AddCommand(logListCmd)
	logCmd.AddCommand(logPruneCmd)
	return logCmd
}
