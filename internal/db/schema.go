package db

// SchemaSQL is the complete modern schema for fresh installs.
// This schema reflects the current state after all migrations.
//
// This is the single source of truth for the database schema. Repository tests
// load it through GetSchemaSQL() instead of declaring their own tables, so a
// column referenced in code but missing here fails with "no such column".
//
// When adding new columns or tables:
//  1. Add a migration in migrations.go
//  2. Update SchemaSQL here
//  3. Bump latestSchemaVersion
const SchemaSQL = `
-- Packages (selection state store)
CREATE TABLE IF NOT EXISTS packages (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	edition TEXT,
	status TEXT NOT NULL CHECK(status IN ('taboo', 'del', 'update', 'install', 'auto-del', 'auto-update', 'auto-install', 'keep-installed', 'no-inst')) DEFAULT 'no-inst',
	installed INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_packages_name ON packages(name);
CREATE INDEX IF NOT EXISTS idx_packages_status ON packages(status);

-- Resolution log (audit trail of applied conflict resolutions)
CREATE TABLE IF NOT EXISTS resolution_log (
	id TEXT PRIMARY KEY,
	pass_id TEXT NOT NULL,
	action TEXT NOT NULL CHECK(action IN ('undo', 'ignore', 'delete', 'alternative')),
	conflict_package_id TEXT NOT NULL,
	package_id TEXT,
	old_status TEXT,
	new_status TEXT,
	actor_id TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_resolution_log_pass ON resolution_log(pass_id);
CREATE INDEX IF NOT EXISTS idx_resolution_log_package ON resolution_log(package_id);
`

// latestSchemaVersion is the migration version SchemaSQL corresponds to.
const latestSchemaVersion = 2

// InitSchema creates the schema on fresh installs and runs pending migrations otherwise.
func InitSchema() error {
	db, err := GetDB()
	if err != nil {
		return err
	}

	// Check if schema_version table exists to determine if this is a fresh install
	var tableCount int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount == 0 {
		var oldTableCount int
		err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name = 'packages'").Scan(&oldTableCount)
		if err != nil {
			return err
		}

		if oldTableCount > 0 {
			// Pre-versioning database - run migrations to upgrade
			return RunMigrations()
		}

		// Completely fresh install - create modern schema directly
		if _, err = db.Exec(SchemaSQL); err != nil {
			return err
		}
		_, err = db.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER PRIMARY KEY,
				applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)
		`)
		if err != nil {
			return err
		}
		// Mark all migrations as applied for fresh installs
		for i := 1; i <= latestSchemaVersion; i++ {
			if _, err = db.Exec("INSERT INTO schema_version (version) VALUES (?)", i); err != nil {
				return err
			}
		}
		return nil
	}

	// schema_version table exists - run any pending migrations
	return RunMigrations()
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
