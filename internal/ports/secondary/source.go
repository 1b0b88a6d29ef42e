package secondary

import (
	"context"

	"github.com/example/pkgconflict/internal/core/conflict"
)

// ConflictSource supplies a finished batch of conflict records computed by an
// external dependency solver.
type ConflictSource interface {
	// Load returns the records in solver order.
	Load(ctx context.Context) ([]conflict.Record, error)

	// Describe names the source for logs and output.
	Describe() string
}
