// Package effects defines effect types as data structures representing I/O operations.
// Planners in the core return effects; the app layer's executor performs them.
package effects

// Effect is the base interface for all effects.
type Effect interface {
	// EffectType returns a string identifier for the effect type.
	EffectType() string
}

// LogEffect represents a diagnostic logging operation.
type LogEffect struct {
	Level   string
	Message string
	Fields  map[string]any
}

func (e LogEffect) EffectType() string { return "log" }

// StatusEffect changes the selection status of one package.
type StatusEffect struct {
	PackageID string
	From      string
	To        string
}

func (e StatusEffect) EffectType() string { return "status" }

// AuditEffect records an applied resolution in the audit log.
type AuditEffect struct {
	PassID            string
	Action            string // "undo", "ignore", "delete", "alternative"
	ConflictPackageID string
	PackageID         string // Package whose status changed; empty for ignore
	OldStatus         string
	NewStatus         string
}

func (e AuditEffect) EffectType() string { return "audit" }
