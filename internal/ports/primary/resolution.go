package primary

import (
	"context"

	"github.com/example/pkgconflict/internal/core/conflict"
)

// ResolutionService defines the primary port for conflict resolution passes.
type ResolutionService interface {
	// LoadConflicts reads a conflict batch and returns it as a populated list.
	LoadConflicts(ctx context.Context, req LoadConflictsRequest) (*conflict.List, error)

	// Resolve applies the choices made on list to the package selection state.
	Resolve(ctx context.Context, req ResolveRequest) (*ResolveResponse, error)

	// ListLog lists applied resolutions, newest first.
	ListLog(ctx context.Context, filters LogFilters) ([]*LogEntry, error)

	// PruneLog deletes log entries older than the given number of days.
	PruneLog(ctx context.Context, days int) (int, error)
}

// LoadConflictsRequest contains parameters for loading a conflict batch.
type LoadConflictsRequest struct {
	Path           string
	SplitThreshold int // Zero means the configured default
}

// ResolveRequest contains parameters for applying user choices.
type ResolveRequest struct {
	List            *conflict.List
	AllowIncomplete bool
	DryRun          bool
}

// ResolveResponse contains the result of applying user choices.
type ResolveResponse struct {
	PassID  string
	Actions []conflict.Action
	Applied int
	DryRun  bool
}

// LogEntry represents an audit log entry at the port boundary.
type LogEntry struct {
	ID                string
	PassID            string
	Action            string
	ConflictPackageID string
	PackageID         string
	OldStatus         string
	NewStatus         string
	ActorID           string
	CreatedAt         string
}

// LogFilters contains filter options for listing the audit log.
type LogFilters struct {
	PassID    string
	PackageID string
	Action    string
	Limit     int
}
