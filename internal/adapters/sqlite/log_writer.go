package sqlite

import (
	"context"

	"github.com/example/pkgconflict/internal/ctxutil"
	"github.com/example/pkgconflict/internal/ports/secondary"
)

// LogWriterAdapter implements secondary.LogWriter using ResolutionLogRepository.
type LogWriterAdapter struct {
	logRepo secondary.ResolutionLogRepository
}

// NewLogWriterAdapter creates a new LogWriterAdapter.
func NewLogWriterAdapter(logRepo secondary.ResolutionLogRepository) *LogWriterAdapter {
	return &LogWriterAdapter{logRepo: logRepo}
}

// LogResolution logs one applied resolution.
func (w *LogWriterAdapter) LogResolution(ctx context.Context, passID, action, conflictPackageID, packageID, oldStatus, newStatus string) error {
	id, err := w.logRepo.GetNextID(ctx)
	if err != nil {
		return err
	}

	record := &secondary.ResolutionLogRecord{
		ID:                id,
		PassID:            passID,
		Action:            action,
		ConflictPackageID: conflictPackageID,
		PackageID:         packageID,
		OldStatus:         oldStatus,
		NewStatus:         newStatus,
		ActorID:           ctxutil.ActorFromContext(ctx),
	}

	return w.logRepo.Create(ctx, record)
}

// Ensure LogWriterAdapter implements the interface
var _ secondary.LogWriter = (*LogWriterAdapter)(nil)
