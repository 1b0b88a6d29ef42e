// Package cli provides CLI commands for the pkgconflict application.
package cli

import (
	"context"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/pkgconflict/internal/wire"
)

// NewContext creates a context carrying the configured actor ID.
// CLI commands should use this instead of context.Background() directly.
func NewContext() context.Context {
	return wire.Context()
}

// ApplyGlobalFlags honours settings every command shares.
// Should be called once at CLI startup in PersistentPreRun.
func ApplyGlobalFlags(cmd *cobra.Command) {
	noColor, _ := cmd.Flags().GetBool("no-color")
	if noColor || wire.Config().NoColor {
		color.NoColor = true
	}
}
