package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/pkgconflict/internal/config"
	"github.com/example/pkgconflict/internal/db"
	"github.com/example/pkgconflict/internal/wire"
)

const demoBatchFile = "demo-conflicts.yaml"

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the pkgconflict database and config",
		Long: `Initialize the package-state database (default ~/.pkgconflict/pkgconflict.db)
and write .pkgconflict/config.json in the current directory.

With --demo, sample packages are registered and a matching conflict batch is
written to demo-conflicts.yaml.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			demo, _ := cmd.Flags().GetBool("demo")

			cfg := wire.Config()
			if cfg.DBPath != "" {
				db.SetDBPath(cfg.DBPath)
			}
			dbPath, err := db.GetDBPath()
			if err != nil {
				return fmt.Errorf("failed to get database path: %w", err)
			}

			fmt.Printf("Initializing pkgconflict database at %s\n", dbPath)

			// Initialize schema
			if err := db.InitSchema(); err != nil {
				return fmt.Errorf("failed to initialize schema: %w", err)
			}
			fmt.Println("✓ Database initialized successfully")

			created, err := initConfig(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize config: %w", err)
			}
			if created {
				fmt.Println("✓ Config file created at .pkgconflict/config.json")
			}

			if demo {
				database, err := db.GetDB()
				if err != nil {
					return err
				}
				if err := db.SeedFixtures(database); err != nil {
					return fmt.Errorf("failed to seed demo packages: %w", err)
				}
				if err := os.WriteFile(demoBatchFile, []byte(db.DemoBatch), 0644); err != nil {
					return fmt.Errorf("failed to write demo batch: %w", err)
				}
				fmt.Printf("✓ Demo packages registered, batch written to %s\n", demoBatchFile)
			}

			fmt.Println()
			fmt.Println("Next steps:")
			if demo {
				fmt.Printf("  pkgconflict conflict show %s\n", demoBatchFile)
				fmt.Printf("  pkgconflict conflict resolve %s\n", demoBatchFile)
			} else {
				fmt.Println("  pkgconflict package add foo --edition 1.0-1 --installed")
				fmt.Println("  pkgconflict conflict show conflicts.yaml")
			}

			return nil
		},
	}

	cmd.Flags().Bool("demo", false, "Register sample packages and write a demo conflict batch")
	return cmd
}

// initConfig writes config.json unless one already exists.
func initConfig(cfg *config.Config) (bool, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return false, err
	}

	if _, err := config.LoadConfig(cwd); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}

	return true, config.SaveConfig(cwd, &config.Config{
		Version:        config.CurrentVersion,
		SplitThreshold: cfg.SplitThreshold,
		DBPath:         cfg.DBPath,
		Actor:          cfg.Actor,
		NoColor:        cfg.NoColor,
	})
}
