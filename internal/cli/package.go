package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/pkgconflict/internal/ports/primary"
	"github.com/example/pkgconflict/internal/wire"
)

var packageCmd = &cobra.Command{
	Use:     "package",
	Aliases: []string{"pkg"},
	Short:   "Manage the package selection state store",
	Long:    "Add, list, show, update, and remove packages whose selection status conflict resolutions change",
}

var packageAddCmd = &cobra.Command{
	Use:   "add [id]",
	Short: "Register a package",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		edition, _ := cmd.Flags().GetString("edition")
		status, _ := cmd.Flags().GetString("status")
		installed, _ := cmd.Flags().GetBool("installed")

		_, err := wire.PackageAdapter().Add(NewContext(), primary.AddPackageRequest{
			ID:        args[0],
			Name:      name,
			Edition:   edition,
			Status:    status,
			Installed: installed,
		})
		return err
	},
}

var packageListCmd = &cobra.Command{
	Use:   "list",
	Short: "List packages",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		status, _ := cmd.Flags().GetString("status")

		filters := primary.PackageFilters{
			Name:   name,
			Status: status,
		}
		if cmd.Flags().Changed("installed") {
			installed, _ := cmd.Flags().GetBool("installed")
			filters.Installed = &installed
		}

		_, err := wire.PackageAdapter().List(NewContext(), filters)
		return err
	},
}

var packageShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show package details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := wire.PackageAdapter().Show(NewContext(), args[0])
		return err
	},
}

var packageSetStatusCmd = &cobra.Command{
	Use:   "set-status [id] [status]",
	Short: "Change a package's selection status",
	Long: `Change a package's selection status.

Valid statuses: taboo, del, update, install, auto-del, auto-update,
auto-install, keep-installed, no-inst`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.PackageAdapter().SetStatus(NewContext(), args[0], args[1])
	},
}

var packageRemoveCmd = &cobra.Command{
	Use:   "remove [id]",
	Short: "Remove a package from the store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.PackageAdapter().Remove(NewContext(), args[0])
	},
}

func init() {
	// package add flags
	packageAddCmd.Flags().String("name", "", "Package name (defaults to the id)")
	packageAddCmd.Flags().StringP("edition", "e", "", "Package version-release")
	packageAddCmd.Flags().StringP("status", "s", "", "Initial selection status")
	packageAddCmd.Flags().Bool("installed", false, "Package is installed on the system")

	// package list flags
	packageListCmd.Flags().String("name", "", "Filter by name")
	packageListCmd.Flags().StringP("status", "s", "", "Filter by status")
	packageListCmd.Flags().Bool("installed", false, "Only installed packages (--installed=false for the rest)")

	// Register subcommands
	packageCmd.AddCommand(packageAddCmd)
	packageCmd.AddCommand(packageListCmd)
	packageCmd.AddCommand(packageShowCmd)
	packageCmd.AddCommand(packageSetStatusCmd)
	packageCmd.AddCommand(packageRemoveCmd)
}

// PackageCmd returns the package command
func PackageCmd() *cobra.Command {
	return packageCmd
}
