package secondary

import "context"

// LogWriter defines the interface for writing audit log entries.
// Implementations extract the actor from context.
type LogWriter interface {
	// LogResolution logs one applied resolution.
	// packageID, oldStatus and newStatus are empty for resolutions that change
	// no package.
	LogResolution(ctx context.Context, passID, action, conflictPackageID, packageID, oldStatus, newStatus string) error
}
