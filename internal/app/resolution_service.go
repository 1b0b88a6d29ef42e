package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/pkgconflict/internal/core/conflict"
	"github.com/example/pkgconflict/internal/ports/primary"
	"github.com/example/pkgconflict/internal/ports/secondary"
)

// SourceFactory opens the conflict source for a batch path.
type SourceFactory func(path string) secondary.ConflictSource

// PassIDFunc generates resolution pass identifiers.
type PassIDFunc func() string

// ResolutionServiceImpl implements the ResolutionService interface.
type ResolutionServiceImpl struct {
	packageRepo    secondary.PackageRepository
	logRepo        secondary.ResolutionLogRepository
	executor       EffectExecutor
	openSource     SourceFactory
	newPassID      PassIDFunc
	splitThreshold int
	logger         *zap.Logger
}

// NewResolutionService creates a new ResolutionService with injected dependencies.
func NewResolutionService(
	packageRepo secondary.PackageRepository,
	logRepo secondary.ResolutionLogRepository,
	executor EffectExecutor,
	openSource SourceFactory,
	newPassID PassIDFunc,
	splitThreshold int,
	logger *zap.Logger,
) *ResolutionServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResolutionServiceImpl{
		packageRepo:    packageRepo,
		logRepo:        logRepo,
		executor:       executor,
		openSource:     openSource,
		newPassID:      newPassID,
		splitThreshold: splitThreshold,
		logger:         logger,
	}
}

// LoadConflicts reads a conflict batch and returns it as a populated list.
func (s *ResolutionServiceImpl) LoadConflicts(ctx context.Context, req primary.LoadConflictsRequest) (*conflict.List, error) {
	source := s.openSource(req.Path)
	records, err := source.Load(ctx)
	if err != nil {
		return nil, err
	}

	threshold := s.splitThreshold
	if req.SplitThreshold != 0 {
		threshold = req.SplitThreshold
	}

	list := conflict.NewList(conflict.WithSplitThreshold(threshold))
	list.Populate(records)

	s.logger.Info("loaded conflict batch",
		zap.String("source", source.Describe()),
		zap.Int("conflicts", list.Len()),
		zap.Int("unresolved", len(list.Unresolved())),
	)
	return list, nil
}

// Resolve applies the choices made on the list to the package selection state.
func (s *ResolutionServiceImpl) Resolve(ctx context.Context, req primary.ResolveRequest) (*primary.ResolveResponse, error) {
	if req.List == nil {
		return nil, fmt.Errorf("no conflict list to resolve")
	}

	passID := s.newPassID()
	resp := &primary.ResolveResponse{
		PassID:  passID,
		Actions: req.List.Plan(),
		DryRun:  req.DryRun,
	}

	if req.DryRun {
		if !req.AllowIncomplete && !req.List.IsComplete() {
			return resp, conflict.CanApplyChoices(conflict.ApplyChoicesContext{
				ConflictCount: req.List.Len(),
				UnresolvedIDs: nodeIDs(req.List.Unresolved()),
			}).Error()
		}
		return resp, nil
	}

	var opts []conflict.ApplyOption
	if req.AllowIncomplete {
		opts = append(opts, conflict.AllowIncomplete())
	}

	sink := NewPackageStateSink(s.packageRepo, s.executor, passID)
	applied, err := req.List.ApplyUserChoices(ctx, sink, opts...)
	resp.Applied = applied
	if err != nil {
		s.logger.Error("resolution pass failed",
			zap.String("pass", passID),
			zap.Int("applied", applied),
			zap.Error(err),
		)
		return resp, err
	}

	s.logger.Info("resolution pass applied",
		zap.String("pass", passID),
		zap.Int("applied", applied),
		zap.Int("skipped", req.List.Len()-applied),
	)
	return resp, nil
}

// ListLog lists applied resolutions, newest first.
func (s *ResolutionServiceImpl) ListLog(ctx context.Context, filters primary.LogFilters) ([]*primary.LogEntry, error) {
	records, err := s.logRepo.List(ctx, secondary.ResolutionLogFilters{
		PassID:    filters.PassID,
		PackageID: filters.PackageID,
		Action:    filters.Action,
		Limit:     filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list resolution log: %w", err)
	}

	entries := make([]*primary.LogEntry, len(records))
	for i, r := range records {
		entries[i] = &primary.LogEntry{
			ID:                r.ID,
			PassID:            r.PassID,
			Action:            r.Action,
			ConflictPackageID: r.ConflictPackageID,
			PackageID:         r.PackageID,
			OldStatus:         r.OldStatus,
			NewStatus:         r.NewStatus,
			ActorID:           r.ActorID,
			CreatedAt:         r.CreatedAt,
		}
	}
	return entries, nil
}

// PruneLog deletes log entries older than the given number of days.
func (s *ResolutionServiceImpl) PruneLog(ctx context.Context, days int) (int, error) {
	if days < 1 {
		return 0, fmt.Errorf("days must be at least 1")
	}
	return s.logRepo.PruneOlderThan(ctx, days)
}

func nodeIDs(nodes []*conflict.Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}

// Ensure ResolutionServiceImpl implements the interface
var _ primary.ResolutionService = (*ResolutionServiceImpl)(nil)
