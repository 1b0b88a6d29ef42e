// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import "context"

// PackageRepository defines the secondary port for package selection state.
type PackageRepository interface {
	// Create persists a new package.
	Create(ctx context.Context, pkg *PackageRecord) error

	// GetByID retrieves a package by its ID.
	GetByID(ctx context.Context, id string) (*PackageRecord, error)

	// List retrieves packages matching the given filters.
	List(ctx context.Context, filters PackageFilters) ([]*PackageRecord, error)

	// UpdateStatus changes the selection status of a package.
	UpdateStatus(ctx context.Context, id, status string) error

	// Delete removes a package from persistence.
	Delete(ctx context.Context, id string) error
}

// PackageRecord represents a package as stored in persistence.
type PackageRecord struct {
	ID        string
	Name      string
	Edition   string // Empty string means null
	Status    string
	Installed bool
	CreatedAt string
	UpdatedAt string
}

// PackageFilters contains filter options for querying packages.
type PackageFilters struct {
	Name      string
	Status    string
	Installed *bool
}

// ResolutionLogRepository defines the secondary port for the resolution audit trail.
// Logs are immutable - no Update operations, but old entries can be pruned.
type ResolutionLogRepository interface {
	// Create persists a new log entry.
	Create(ctx context.Context, log *ResolutionLogRecord) error

	// List retrieves log entries matching the given filters, newest first.
	List(ctx context.Context, filters ResolutionLogFilters) ([]*ResolutionLogRecord, error)

	// GetNextID returns the next available log ID.
	GetNextID(ctx context.Context) (string, error)

	// PruneOlderThan deletes log entries older than the given number of days.
	// Returns the number of deleted entries.
	PruneOlderThan(ctx context.Context, days int) (int, error)
}

// ResolutionLogRecord represents one applied resolution as stored in persistence.
type ResolutionLogRecord struct {
	ID                string
	PassID            string
	Action            string // 'undo', 'ignore', 'delete', 'alternative'
	ConflictPackageID string
	PackageID         string // Empty string means null - ignore touches no package
	OldStatus         string // Empty string means null
	NewStatus         string // Empty string means null
	ActorID           string // Empty string means null
	CreatedAt         string
}

// ResolutionLogFilters contains filter options for querying logs.
type ResolutionLogFilters struct {
	PassID    string
	PackageID string
	Action    string
	Limit     int
}
