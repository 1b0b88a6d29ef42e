package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/pkgconflict/internal/ports/secondary"
)

// ResolutionLogRepository implements secondary.ResolutionLogRepository with SQLite.
type ResolutionLogRepository struct {
	db *sql.DB
}

// NewResolutionLogRepository creates a new SQLite resolution log repository.
func NewResolutionLogRepository(db *sql.DB) *ResolutionLogRepository {
	return &ResolutionLogRepository{db: db}
}

// Create persists a new log entry.
func (r *ResolutionLogRepository) Create(ctx context.Context, log *secondary.ResolutionLogRecord) error {
	var packageID, oldStatus, newStatus, actorID sql.NullString
	if log.PackageID != "" {
		packageID = sql.NullString{String: log.PackageID, Valid: true}
	}
	if log.OldStatus != "" {
		oldStatus = sql.NullString{String: log.OldStatus, Valid: true}
	}
	if log.NewStatus != "" {
		newStatus = sql.NullString{String: log.NewStatus, Valid: true}
	}
	if log.ActorID != "" {
		actorID = sql.NullString{String: log.ActorID, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO resolution_log (id, pass_id, action, conflict_package_id, package_id, old_status, new_status, actor_id) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		log.ID,
		log.PassID,
		log.Action,
		log.ConflictPackageID,
		packageID,
		oldStatus,
		newStatus,
		actorID,
	)
	if err != nil {
		return fmt.Errorf("failed to create resolution log: %w", err)
	}

	return nil
}

// List retrieves log entries matching the given filters, newest first.
func (r *ResolutionLogRepository) List(ctx context.Context, filters secondary.ResolutionLogFilters) ([]*secondary.ResolutionLogRecord, error) {
	query := `SELECT id, pass_id, action, conflict_package_id, package_id, old_status, new_status, actor_id, created_at FROM resolution_log WHERE 1=1`
	args := []any{}

	if filters.PassID != "" {
		query += " AND pass_id = ?"
		args = append(args, filters.PassID)
	}

	if filters.PackageID != "" {
		query += " AND (package_id = ? OR conflict_package_id = ?)"
		args = append(args, filters.PackageID, filters.PackageID)
	}

	if filters.Action != "" {
		query += " AND action = ?"
		args = append(args, filters.Action)
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC, %s DESC", logIDSeq)

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list resolution log: %w", err)
	}
	defer rows.Close()

	var logs []*secondary.ResolutionLogRecord
	for rows.Next() {
		var (
			packageID sql.NullString
			oldStatus sql.NullString
			newStatus sql.NullString
			actorID   sql.NullString
			createdAt time.Time
		)

		record := &secondary.ResolutionLogRecord{}
		err := rows.Scan(&record.ID, &record.PassID, &record.Action, &record.ConflictPackageID,
			&packageID, &oldStatus, &newStatus, &actorID, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resolution log: %w", err)
		}

		record.PackageID = packageID.String
		record.OldStatus = oldStatus.String
		record.NewStatus = newStatus.String
		record.ActorID = actorID.String
		record.CreatedAt = createdAt.Format(time.RFC3339)

		logs = append(logs, record)
	}

	return logs, rows.Err()
}

// logIDSeq extracts the numeric part of an RL-N id.
var logIDSeq = fmt.Sprintf("CAST(SUBSTR(id, %d) AS INTEGER)", len("RL-")+1)

// GetNextID returns the next available log ID.
func (r *ResolutionLogRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT COALESCE(MAX(%s), 0) FROM resolution_log", logIDSeq),
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next resolution log ID: %w", err)
	}

	return fmt.Sprintf("RL-%04d", maxID+1), nil
}

// PruneOlderThan deletes log entries older than the given number of days.
func (r *ResolutionLogRepository) PruneOlderThan(ctx context.Context, days int) (int, error) {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM resolution_log WHERE created_at < datetime('now', ?)",
		fmt.Sprintf("-%d days", days),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune resolution log: %w", err)
	}

	count, _ := result.RowsAffected()
	return int(count), nil
}

// Ensure ResolutionLogRepository implements the interface
var _ secondary.ResolutionLogRepository = (*ResolutionLogRepository)(nil)
