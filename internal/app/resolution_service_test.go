package app

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/example/pkgconflict/internal/core/conflict"
	"github.com/example/pkgconflict/internal/ports/primary"
	"github.com/example/pkgconflict/internal/ports/secondary"
)

type resolutionFixture struct {
	service *ResolutionServiceImpl
	repo    *mockPackageRepository
	logRepo *mockResolutionLogRepository
	writer  *mockLogWriter
	source  *mockConflictSource
}

func newResolutionFixture() *resolutionFixture {
	f := &resolutionFixture{
		repo:    newMockPackageRepository(),
		logRepo: &mockResolutionLogRepository{},
		writer:  &mockLogWriter{},
		source:  &mockConflictSource{records: sampleRecords()},
	}
	seedSampleStore(f.repo)
	executor := NewEffectExecutor(f.repo, f.writer, zap.NewNop())
	openSource := func(path string) secondary.ConflictSource {
		f.source.path = path
		return f.source
	}
	f.service = NewResolutionService(f.repo, f.logRepo, executor, openSource,
		func() string { return "pass-1" }, 5, zap.NewNop())
	return f
}

func (f *resolutionFixture) load(t *testing.T) *conflict.List {
	t.Helper()
	list, err := f.service.LoadConflicts(context.Background(), primary.LoadConflictsRequest{Path: "batch.yaml"})
	if err != nil {
		t.Fatalf("LoadConflicts failed: %v", err)
	}
	return list
}

// ============================================================================
// LoadConflicts Tests
// ============================================================================

func TestLoadConflicts(t *testing.T) {
	f := newResolutionFixture()

	list := f.load(t)
	if list.Len() != 2 {
		t.Fatalf("Len = %d, want 2", list.Len())
	}
	if f.source.path != "batch.yaml" {
		t.Errorf("source opened with %q", f.source.path)
	}
	if list.SplitThreshold() != 5 {
		t.Errorf("SplitThreshold = %d, want service default 5", list.SplitThreshold())
	}
}

func TestLoadConflicts_ThresholdOverride(t *testing.T) {
	f := newResolutionFixture()

	list, err := f.service.LoadConflicts(context.Background(), primary.LoadConflictsRequest{Path: "b", SplitThreshold: 10})
	if err != nil {
		t.Fatalf("LoadConflicts failed: %v", err)
	}
	if list.SplitThreshold() != 10 {
		t.Errorf("SplitThreshold = %d, want 10", list.SplitThreshold())
	}
}

func TestLoadConflicts_SourceError(t *testing.T) {
	f := newResolutionFixture()
	f.source.err = errors.New("no such file")

	if _, err := f.service.LoadConflicts(context.Background(), primary.LoadConflictsRequest{Path: "b"}); err == nil {
		t.Error("expected error")
	}
}

// ============================================================================
// Resolve Tests
// ============================================================================

func TestResolve_AppliesChoices(t *testing.T) {
	f := newResolutionFixture()
	list := f.load(t)

	// install baz instead of foo, brute force delete for old
	if err := list.Select("CONFLICT-001", "CONFLICT-001.2"); err != nil {
		t.Fatal(err)
	}
	if err := list.Select("CONFLICT-002", "CONFLICT-002.2"); err != nil {
		t.Fatal(err)
	}

	resp, err := f.service.Resolve(context.Background(), primary.ResolveRequest{List: list})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if resp.PassID != "pass-1" || resp.Applied != 2 || len(resp.Actions) != 2 {
		t.Errorf("unexpected response %+v", resp)
	}

	want := map[string]string{
		"foo": "install",
		"baz": "install",
		"old": "del",
		"dep": "del",
		"lib": "taboo",
	}
	for id, status := range want {
		if got := f.repo.packages[id].Status; got != status {
			t.Errorf("%s status = %q, want %q", id, got, status)
		}
	}
	for _, e := range f.writer.entries {
		if e.PassID != "pass-1" {
			t.Errorf("audit entry with pass %q", e.PassID)
		}
	}
}

func TestResolve_BlocksIncomplete(t *testing.T) {
	f := newResolutionFixture()
	list := f.load(t)
	_ = list.Select("CONFLICT-001", "CONFLICT-001.1")

	resp, err := f.service.Resolve(context.Background(), primary.ResolveRequest{List: list})
	if !errors.Is(err, conflict.ErrChoicesIncomplete) {
		t.Fatalf("error = %v, want ErrChoicesIncomplete", err)
	}
	if resp.Applied != 0 || len(f.repo.statusUpdates) != 0 {
		t.Error("changes applied despite unresolved conflicts")
	}
}

func TestResolve_AllowIncomplete(t *testing.T) {
	f := newResolutionFixture()
	list := f.load(t)
	_ = list.Select("CONFLICT-001", "CONFLICT-001.1")

	resp, err := f.service.Resolve(context.Background(), primary.ResolveRequest{List: list, AllowIncomplete: true})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if resp.Applied != 1 {
		t.Errorf("Applied = %d, want 1", resp.Applied)
	}
	if f.repo.packages["foo"].Status != "no-inst" {
		t.Errorf("foo status = %q, want no-inst", f.repo.packages["foo"].Status)
	}
	if f.repo.packages["old"].Status != "del" {
		t.Error("unresolved conflict was acted on")
	}
}

func TestResolve_DryRun(t *testing.T) {
	f := newResolutionFixture()
	list := f.load(t)
	list.SelectType(conflict.ResolutionUndo)

	resp, err := f.service.Resolve(context.Background(), primary.ResolveRequest{List: list, DryRun: true})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !resp.DryRun || len(resp.Actions) != 2 || resp.Applied != 0 {
		t.Errorf("unexpected response %+v", resp)
	}
	if len(f.repo.statusUpdates) != 0 || len(f.writer.entries) != 0 {
		t.Error("dry run changed state")
	}
}

func TestResolve_DryRunIncomplete(t *testing.T) {
	f := newResolutionFixture()
	list := f.load(t)

	resp, err := f.service.Resolve(context.Background(), primary.ResolveRequest{List: list, DryRun: true})
	if !errors.Is(err, conflict.ErrChoicesIncomplete) {
		t.Fatalf("error = %v, want ErrChoicesIncomplete", err)
	}
	if resp == nil || len(resp.Actions) != 0 {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestResolve_NilList(t *testing.T) {
	f := newResolutionFixture()
	if _, err := f.service.Resolve(context.Background(), primary.ResolveRequest{}); err == nil {
		t.Error("expected error for nil list")
	}
}

func TestResolve_SinkFailureStopsPass(t *testing.T) {
	f := newResolutionFixture()
	list := f.load(t)
	list.SelectType(conflict.ResolutionUndo)
	f.repo.updateStatusErr = errors.New("database is locked")

	resp, err := f.service.Resolve(context.Background(), primary.ResolveRequest{List: list})
	if err == nil {
		t.Fatal("expected error")
	}
	if resp.Applied != 0 {
		t.Errorf("Applied = %d, want 0", resp.Applied)
	}
}

// ============================================================================
// Log Tests
// ============================================================================

func TestListLog(t *testing.T) {
	f := newResolutionFixture()
	f.logRepo.logs = []*secondary.ResolutionLogRecord{
		{ID: "RL-0002", PassID: "pass-1", Action: "delete", PackageID: "dep", ActorID: "alice"},
		{ID: "RL-0001", PassID: "pass-1", Action: "ignore", ConflictPackageID: "foo"},
	}

	entries, err := f.service.ListLog(context.Background(), primary.LogFilters{PassID: "pass-1", Limit: 10})
	if err != nil {
		t.Fatalf("ListLog failed: %v", err)
	}
	if len(entries) != 2 || entries[0].ActorID != "alice" {
		t.Errorf("unexpected entries %+v", entries)
	}
	if f.logRepo.lastListFilters.PassID != "pass-1" || f.logRepo.lastListFilters.Limit != 10 {
		t.Errorf("filters not forwarded: %+v", f.logRepo.lastListFilters)
	}
}

func TestPruneLog(t *testing.T) {
	f := newResolutionFixture()
	f.logRepo.pruneCount = 4

	n, err := f.service.PruneLog(context.Background(), 30)
	if err != nil {
		t.Fatalf("PruneLog failed: %v", err)
	}
	if n != 4 || f.logRepo.lastPruneDays != 30 {
		t.Errorf("n = %d days = %d", n, f.logRepo.lastPruneDays)
	}

	if _, err := f.service.PruneLog(context.Background(), 0); err == nil {
		t.Error("expected error for days < 1")
	}
}
