// Package app contains the application layer - service implementations and effect execution.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/pkgconflict/internal/core/effects"
	"github.com/example/pkgconflict/internal/ports/secondary"
)

// EffectExecutor interprets and executes effects.
// This is the only place resolution I/O happens.
type EffectExecutor interface {
	Execute(ctx context.Context, effs []effects.Effect) error
}

// DefaultEffectExecutor implements EffectExecutor against the package store
// and the resolution log.
type DefaultEffectExecutor struct {
	packageRepo secondary.PackageRepository
	logWriter   secondary.LogWriter
	logger      *zap.Logger
}

// NewEffectExecutor creates a new DefaultEffectExecutor.
func NewEffectExecutor(packageRepo secondary.PackageRepository, logWriter secondary.LogWriter, logger *zap.Logger) *DefaultEffectExecutor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultEffectExecutor{
		packageRepo: packageRepo,
		logWriter:   logWriter,
		logger:      logger,
	}
}

// Execute processes a slice of effects, executing each in sequence.
func (e *DefaultEffectExecutor) Execute(ctx context.Context, effs []effects.Effect) error {
	for _, eff := range effs {
		if err := e.executeOne(ctx, eff); err != nil {
			return fmt.Errorf("failed to execute %s effect: %w", eff.EffectType(), err)
		}
	}
	return nil
}

func (e *DefaultEffectExecutor) executeOne(ctx context.Context, eff effects.Effect) error {
	switch typed := eff.(type) {
	case effects.StatusEffect:
		return e.executeStatus(ctx, typed)
	case effects.AuditEffect:
		return e.logWriter.LogResolution(ctx, typed.PassID, typed.Action, typed.ConflictPackageID,
			typed.PackageID, typed.OldStatus, typed.NewStatus)
	case effects.LogEffect:
		e.executeLog(typed)
		return nil
	default:
		return fmt.Errorf("unknown effect type: %T", eff)
	}
}

func (e *DefaultEffectExecutor) executeStatus(ctx context.Context, eff effects.StatusEffect) error {
	if err := e.packageRepo.UpdateStatus(ctx, eff.PackageID, eff.To); err != nil {
		return err
	}
	e.logger.Debug("package status changed",
		zap.String("package", eff.PackageID),
		zap.String("from", eff.From),
		zap.String("to", eff.To),
	)
	return nil
}

func (e *DefaultEffectExecutor) executeLog(eff effects.LogEffect) {
	fields := make([]zap.Field, 0, len(eff.Fields))
	for k, v := range eff.Fields {
		fields = append(fields, zap.Any(k, v))
	}
	switch eff.Level {
	case "debug":
		e.logger.Debug(eff.Message, fields...)
	case "warn":
		e.logger.Warn(eff.Message, fields...)
	case "error":
		e.logger.Error(eff.Message, fields...)
	default:
		e.logger.Info(eff.Message, fields...)
	}
}
