package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/pkgconflict/internal/cli"
	"github.com/example/pkgconflict/internal/version"
	"github.com/example/pkgconflict/internal/wire"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "pkgconflict",
		Short:   "pkgconflict - resolve package dependency conflicts",
		Version: version.String(),
		Long: `pkgconflict shows the conflicts a dependency solver reported, lets you pick
one resolution per conflict, and applies the choices to the package selection
state store.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		cli.ApplyGlobalFlags(cmd)
	}
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.PackageCmd())
	rootCmd.AddCommand(cli.ConflictCmd())
	rootCmd.AddCommand(cli.LogCmd())

	err := rootCmd.Execute()
	wire.Shutdown()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
