// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/pkgconflict/internal/ports/secondary"
)

// PackageRepository implements secondary.PackageRepository with SQLite.
type PackageRepository struct {
	db *sql.DB
}

// NewPackageRepository creates a new SQLite package repository.
func NewPackageRepository(db *sql.DB) *PackageRepository {
	return &PackageRepository{db: db}
}

const packageColumns = "id, name, edition, status, installed, created_at, updated_at"

// Create persists a new package.
func (r *PackageRepository) Create(ctx context.Context, pkg *secondary.PackageRecord) error {
	var edition sql.NullString
	if pkg.Edition != "" {
		edition = sql.NullString{String: pkg.Edition, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO packages (id, name, edition, status, installed) VALUES (?, ?, ?, ?, ?)",
		pkg.ID, pkg.Name, edition, pkg.Status, pkg.Installed,
	)
	if err != nil {
		return fmt.Errorf("failed to create package: %w", err)
	}

	return nil
}

// GetByID retrieves a package by its ID.
func (r *PackageRepository) GetByID(ctx context.Context, id string) (*secondary.PackageRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+packageColumns+" FROM packages WHERE id = ?",
		id,
	)

	record, err := scanPackage(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("package %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get package: %w", err)
	}

	return record, nil
}

// List retrieves packages matching the given filters.
func (r *PackageRepository) List(ctx context.Context, filters secondary.PackageFilters) ([]*secondary.PackageRecord, error) {
	query := "SELECT " + packageColumns + " FROM packages WHERE 1=1"
	args := []any{}

	if filters.Name != "" {
		query += " AND name = ?"
		args = append(args, filters.Name)
	}

	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}

	if filters.Installed != nil {
		query += " AND installed = ?"
		args = append(args, *filters.Installed)
	}

	query += " ORDER BY name, id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	defer rows.Close()

	var packages []*secondary.PackageRecord
	for rows.Next() {
		record, err := scanPackage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan package: %w", err)
		}
		packages = append(packages, record)
	}

	return packages, rows.Err()
}

// UpdateStatus changes the selection status of a package.
func (r *PackageRepository) UpdateStatus(ctx context.Context, id, status string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE packages SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update package status: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("package %s not found", id)
	}

	return nil
}

// Delete removes a package from persistence.
func (r *PackageRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM packages WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete package: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("package %s not found", id)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPackage(row rowScanner) (*secondary.PackageRecord, error) {
	var (
		edition   sql.NullString
		createdAt time.Time
		updatedAt time.Time
	)

	record := &secondary.PackageRecord{}
	err := row.Scan(&record.ID, &record.Name, &edition, &record.Status, &record.Installed, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	record.Edition = edition.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)

	return record, nil
}

// Ensure PackageRepository implements the interface
var _ secondary.PackageRepository = (*PackageRepository)(nil)
