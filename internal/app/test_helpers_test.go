package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/example/pkgconflict/internal/core/conflict"
	"github.com/example/pkgconflict/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// Ensure mocks implement the interfaces
var (
	_ secondary.PackageRepository       = (*mockPackageRepository)(nil)
	_ secondary.ResolutionLogRepository = (*mockResolutionLogRepository)(nil)
	_ secondary.LogWriter               = (*mockLogWriter)(nil)
	_ secondary.ConflictSource          = (*mockConflictSource)(nil)
)

// mockPackageRepository implements secondary.PackageRepository for testing.
type mockPackageRepository struct {
	packages        map[string]*secondary.PackageRecord
	createErr       error
	getErr          error
	listErr         error
	updateStatusErr error
	deleteErr       error

	lastListFilters secondary.PackageFilters
	statusUpdates   []string
}

func newMockPackageRepository() *mockPackageRepository {
	return &mockPackageRepository{
		packages: make(map[string]*secondary.PackageRecord),
	}
}

func (m *mockPackageRepository) seed(id, status string, installed bool) {
	m.packages[id] = &secondary.PackageRecord{ID: id, Name: id, Status: status, Installed: installed}
}

func (m *mockPackageRepository) Create(ctx context.Context, pkg *secondary.PackageRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.packages[pkg.ID]; ok {
		return fmt.Errorf("package %s already exists", pkg.ID)
	}
	copied := *pkg
	copied.CreatedAt = "2026-01-01 00:00:00"
	copied.UpdatedAt = copied.CreatedAt
	m.packages[pkg.ID] = &copied
	return nil
}

func (m *mockPackageRepository) GetByID(ctx context.Context, id string) (*secondary.PackageRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if pkg, ok := m.packages[id]; ok {
		copied := *pkg
		return &copied, nil
	}
	return nil, fmt.Errorf("package %s not found", id)
}

func (m *mockPackageRepository) List(ctx context.Context, filters secondary.PackageFilters) ([]*secondary.PackageRecord, error) {
	m.lastListFilters = filters
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.PackageRecord
	for _, pkg := range m.packages {
		if filters.Status != "" && pkg.Status != filters.Status {
			continue
		}
		if filters.Installed != nil && pkg.Installed != *filters.Installed {
			continue
		}
		result = append(result, pkg)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockPackageRepository) UpdateStatus(ctx context.Context, id, status string) error {
	if m.updateStatusErr != nil {
		return m.updateStatusErr
	}
	pkg, ok := m.packages[id]
	if !ok {
		return fmt.Errorf("package %s not found", id)
	}
	pkg.Status = status
	m.statusUpdates = append(m.statusUpdates, id+"="+status)
	return nil
}

func (m *mockPackageRepository) Delete(ctx context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.packages[id]; !ok {
		return fmt.Errorf("package %s not found", id)
	}
	delete(m.packages, id)
	return nil
}

// mockResolutionLogRepository implements secondary.ResolutionLogRepository for testing.
type mockResolutionLogRepository struct {
	logs       []*secondary.ResolutionLogRecord
	listErr    error
	pruneCount int
	pruneErr   error

	lastListFilters secondary.ResolutionLogFilters
	lastPruneDays   int
}

func (m *mockResolutionLogRepository) Create(ctx context.Context, log *secondary.ResolutionLogRecord) error {
	m.logs = append(m.logs, log)
	return nil
}

func (m *mockResolutionLogRepository) List(ctx context.Context, filters secondary.ResolutionLogFilters) ([]*secondary.ResolutionLogRecord, error) {
	m.lastListFilters = filters
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.logs, nil
}

func (m *mockResolutionLogRepository) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("RL-%04d", len(m.logs)+1), nil
}

func (m *mockResolutionLogRepository) PruneOlderThan(ctx context.Context, days int) (int, error) {
	m.lastPruneDays = days
	return m.pruneCount, m.pruneErr
}

// loggedResolution is one call recorded by mockLogWriter.
type loggedResolution struct {
	PassID            string
	Action            string
	ConflictPackageID string
	PackageID         string
	OldStatus         string
	NewStatus         string
}

// mockLogWriter implements secondary.LogWriter for testing.
type mockLogWriter struct {
	entries []loggedResolution
	err     error
}

func (m *mockLogWriter) LogResolution(ctx context.Context, passID, action, conflictPackageID, packageID, oldStatus, newStatus string) error {
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, loggedResolution{
		PassID:            passID,
		Action:            action,
		ConflictPackageID: conflictPackageID,
		PackageID:         packageID,
		OldStatus:         oldStatus,
		NewStatus:         newStatus,
	})
	return nil
}

// mockConflictSource implements secondary.ConflictSource for testing.
type mockConflictSource struct {
	path    string
	records []conflict.Record
	err     error
}

func (m *mockConflictSource) Load(ctx context.Context) ([]conflict.Record, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.records, nil
}

func (m *mockConflictSource) Describe() string { return m.path }

// ============================================================================
// Fixtures
// ============================================================================

func ref(id string) conflict.PackageRef {
	return conflict.PackageRef{ID: id, Name: id}
}

func rel(id string) conflict.RelInfo {
	return conflict.RelInfo{Package: ref(id)}
}

// sampleRecords returns two conflicts:
// CONFLICT-001 foo (install) with options undo, install baz, ignore;
// CONFLICT-002 old (del, installed) with options undo, delete, ignore.
func sampleRecords() []conflict.Record {
	return []conflict.Record{
		{
			Package:      ref("foo"),
			Status:       conflict.StatusInstall,
			Unresolvable: []conflict.RelInfo{rel("bar")},
			Alternatives: []conflict.RelInfo{rel("baz")},
		},
		{
			Package:       ref("old"),
			Status:        conflict.StatusDel,
			Installed:     true,
			ConflictsWith: []conflict.RelInfo{rel("new")},
			RemoveToSolve: []conflict.RelInfo{rel("dep"), rel("lib")},
		},
	}
}

// seedSampleStore registers every package sampleRecords touches.
func seedSampleStore(repo *mockPackageRepository) {
	repo.seed("foo", string(conflict.StatusInstall), false)
	repo.seed("baz", string(conflict.StatusNoInst), false)
	repo.seed("old", string(conflict.StatusDel), true)
	repo.seed("dep", string(conflict.StatusKeepInstalled), true)
	repo.seed("lib", string(conflict.StatusNoInst), false)
}
