package db

import (
	"database/sql"
	"fmt"
	"time"
)

// DemoBatch is a conflict batch matching the packages SeedFixtures creates.
const DemoBatch = `conflicts:
  - package: {id: libfoo, name: libfoo, edition: "2.1-1"}
    status: install
    unresolvable:
      - package: {id: libbar, name: libbar, edition: "1.0-4"}
        relation: "libfoo requires libbar >= 2.0"
    alternatives:
      - package: {id: libfoo-compat, name: libfoo-compat, edition: "1.9-3"}
    referers:
      - package: {id: app-viewer, name: app-viewer, edition: "0.8-1"}
        relation: "app-viewer requires libfoo"
  - package: {id: mailer, name: mailer, edition: "5.2-2"}
    status: update
    installed: true
    conflicts_with:
      - package: {id: postfix-legacy, name: postfix-legacy, edition: "3.1-7"}
        relation: "mailer conflicts with postfix-legacy < 4"
    remove_to_solve:
      - package: {id: postfix-legacy, name: postfix-legacy, edition: "3.1-7"}
      - package: {id: postfix-tools, name: postfix-tools, edition: "3.1-7"}
  - package: {id: kernel-extra, name: kernel-extra, edition: "6.4-1"}
    status: auto-install
    unresolvable:
      - package: {id: kernel-base, name: kernel-base, edition: "6.4-1"}
        relation: "kernel-extra requires kernel-base = 6.4-1"
`

// SeedFixtures populates the database with packages that DemoBatch refers to.
func SeedFixtures(database *sql.DB) error {
	now := time.Now().Format(time.RFC3339)

	packages := []struct {
		id, name, edition, status string
		installed                 bool
	}{
		{"libfoo", "libfoo", "2.1-1", "install", false},
		{"libbar", "libbar", "1.0-4", "keep-installed", true},
		{"libfoo-compat", "libfoo-compat", "1.9-3", "no-inst", false},
		{"app-viewer", "app-viewer", "0.8-1", "install", false},
		{"mailer", "mailer", "5.2-2", "update", true},
		{"postfix-legacy", "postfix-legacy", "3.1-7", "keep-installed", true},
		{"postfix-tools", "postfix-tools", "3.1-7", "keep-installed", true},
		{"kernel-extra", "kernel-extra", "6.4-1", "auto-install", false},
		{"kernel-base", "kernel-base", "6.3-9", "keep-installed", true},
	}
	for _, p := range packages {
		installed := 0
		if p.installed {
			installed = 1
		}
		if _, err := database.Exec(
			`INSERT OR IGNORE INTO packages (id, name, edition, status, installed, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			p.id, p.name, p.edition, p.status, installed, now, now,
		); err != nil {
			return fmt.Errorf("seed packages: %w", err)
		}
	}

	return nil
}
