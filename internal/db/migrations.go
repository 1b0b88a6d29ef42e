package db

import (
	"database/sql"
	"fmt"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.DB) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_packages_and_resolution_log",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_installed_flag_and_log_actor",
		Up:      migrationV2,
	},
}

// RunMigrations executes all pending migrations
func RunMigrations() error {
	db, err := GetDB()
	if err != nil {
		return fmt.Errorf("failed to get database: %w", err)
	}
	return runMigrations(db)
}

func runMigrations(db *sql.DB) error {
	// Create schema_version table if it doesn't exist
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	// Get current schema version
	var currentVersion int
	err = db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	// Run pending migrations
	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		if err := migration.Up(db); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Name, err)
		}

		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// migrationV1 creates the original tables: packages without the installed
// flag and a resolution log without actor tracking.
func migrationV1(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS packages (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			edition TEXT,
			status TEXT NOT NULL CHECK(status IN ('taboo', 'del', 'update', 'install', 'auto-del', 'auto-update', 'auto-install', 'keep-installed', 'no-inst')) DEFAULT 'no-inst',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_packages_name ON packages(name);
		CREATE INDEX IF NOT EXISTS idx_packages_status ON packages(status);

		CREATE TABLE IF NOT EXISTS resolution_log (
			id TEXT PRIMARY KEY,
			pass_id TEXT NOT NULL,
			action TEXT NOT NULL CHECK(action IN ('undo', 'ignore', 'delete', 'alternative')),
			conflict_package_id TEXT NOT NULL,
			package_id TEXT,
			old_status TEXT,
			new_status TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_resolution_log_pass ON resolution_log(pass_id);
		CREATE INDEX IF NOT EXISTS idx_resolution_log_package ON resolution_log(package_id);
	`)
	return err
}

// migrationV2 adds packages.installed and resolution_log.actor_id.
// Packages that were being kept or deleted are known to be installed.
func migrationV2(db *sql.DB) error {
	hasInstalled, err := columnExists(db, "packages", "installed")
	if err != nil {
		return err
	}
	if !hasInstalled {
		if _, err := db.Exec("ALTER TABLE packages ADD COLUMN installed INTEGER NOT NULL DEFAULT 0"); err != nil {
			return fmt.Errorf("failed to add installed column: %w", err)
		}
		_, err = db.Exec(`UPDATE packages SET installed = 1
			WHERE status IN ('keep-installed', 'del', 'auto-del', 'update', 'auto-update')`)
		if err != nil {
			return fmt.Errorf("failed to backfill installed column: %w", err)
		}
	}

	hasActor, err := columnExists(db, "resolution_log", "actor_id")
	if err != nil {
		return err
	}
	if !hasActor {
		if _, err := db.Exec("ALTER TABLE resolution_log ADD COLUMN actor_id TEXT"); err != nil {
			return fmt.Errorf("failed to add actor_id column: %w", err)
		}
	}
	return nil
}

func columnExists(db *sql.DB, table, column string) (bool, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, fmt.Errorf("failed to inspect %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return false, fmt.Errorf("failed to scan column info: %w", err)
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}
