package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/pkgconflict/internal/adapters/sqlite"
	"github.com/example/pkgconflict/internal/ctxutil"
	"github.com/example/pkgconflict/internal/ports/secondary"
)

func TestResolutionLogRepository_GetNextID(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewResolutionLogRepository(db)
	ctx := context.Background()

	id, err := repo.GetNextID(ctx)
	if err != nil {
		t.Fatalf("GetNextID failed: %v", err)
	}
	if id != "RL-0001" {
		t.Errorf("first ID = %q, want RL-0001", id)
	}

	if err := repo.Create(ctx, &secondary.ResolutionLogRecord{ID: id, PassID: "p1", Action: "ignore", ConflictPackageID: "pkg-a"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	id, _ = repo.GetNextID(ctx)
	if id != "RL-0002" {
		t.Errorf("second ID = %q, want RL-0002", id)
	}
}

func TestResolutionLogRepository_ListOrdersPastFourDigits(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewResolutionLogRepository(db)
	ctx := context.Background()

	for _, id := range []string{"RL-9999", "RL-10000", "RL-10001"} {
		if err := repo.Create(ctx, &secondary.ResolutionLogRecord{ID: id, PassID: "p1", Action: "ignore", ConflictPackageID: "pkg-a"}); err != nil {
			t.Fatalf("Create %s failed: %v", id, err)
		}
	}
	// pin every row to the same second so only the id decides the order
	if _, err := db.Exec("UPDATE resolution_log SET created_at = '2026-01-01 00:00:00'"); err != nil {
		t.Fatalf("failed to pin timestamps: %v", err)
	}

	logs, err := repo.List(ctx, secondary.ResolutionLogFilters{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	var ids []string
	for _, l := range logs {
		ids = append(ids, l.ID)
	}
	want := []string{"RL-10001", "RL-10000", "RL-9999"}
	if len(ids) != len(want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids = %v, want %v", ids, want)
			break
		}
	}

	next, err := repo.GetNextID(ctx)
	if err != nil {
		t.Fatalf("GetNextID failed: %v", err)
	}
	if next != "RL-10002" {
		t.Errorf("next ID = %q, want RL-10002", next)
	}
}

func TestResolutionLogRepository_CreateAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewResolutionLogRepository(db)
	ctx := context.Background()

	records := []*secondary.ResolutionLogRecord{
		{ID: "RL-0001", PassID: "p1", Action: "undo", ConflictPackageID: "pkg-a", PackageID: "pkg-a", OldStatus: "install", NewStatus: "no-inst", ActorID: "alice"},
		{ID: "RL-0002", PassID: "p1", Action: "ignore", ConflictPackageID: "pkg-b"},
		{ID: "RL-0003", PassID: "p2", Action: "delete", ConflictPackageID: "pkg-c", PackageID: "pkg-d", OldStatus: "keep-installed", NewStatus: "del"},
	}
	for _, r := range records {
		if err := repo.Create(ctx, r); err != nil {
			t.Fatalf("Create %s failed: %v", r.ID, err)
		}
	}

	all, err := repo.List(ctx, secondary.ResolutionLogFilters{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("List count = %d, want 3", len(all))
	}
	if all[0].ID != "RL-0003" {
		t.Errorf("expected newest first, got %s", all[0].ID)
	}

	pass1, _ := repo.List(ctx, secondary.ResolutionLogFilters{PassID: "p1"})
	if len(pass1) != 2 {
		t.Errorf("List(pass=p1) count = %d, want 2", len(pass1))
	}

	ignored, _ := repo.List(ctx, secondary.ResolutionLogFilters{Action: "ignore"})
	if len(ignored) != 1 || ignored[0].PackageID != "" || ignored[0].OldStatus != "" {
		t.Errorf("unexpected ignore entries %+v", ignored)
	}

	byPkg, _ := repo.List(ctx, secondary.ResolutionLogFilters{PackageID: "pkg-c"})
	if len(byPkg) != 1 || byPkg[0].ID != "RL-0003" {
		t.Errorf("List(package=pkg-c) = %+v, want RL-0003 via conflict package", byPkg)
	}

	limited, _ := repo.List(ctx, secondary.ResolutionLogFilters{Limit: 1})
	if len(limited) != 1 {
		t.Errorf("List(limit=1) count = %d, want 1", len(limited))
	}

	undo, _ := repo.List(ctx, secondary.ResolutionLogFilters{Action: "undo"})
	if len(undo) != 1 || undo[0].ActorID != "alice" {
		t.Errorf("expected actor alice on undo entry, got %+v", undo)
	}
}

func TestResolutionLogRepository_PruneOlderThan(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewResolutionLogRepository(db)
	ctx := context.Background()

	_, err := db.Exec(`INSERT INTO resolution_log (id, pass_id, action, conflict_package_id, created_at)
		VALUES ('RL-0001', 'p1', 'ignore', 'pkg-a', datetime('now', '-40 days')),
		       ('RL-0002', 'p2', 'ignore', 'pkg-b', datetime('now'))`)
	if err != nil {
		t.Fatalf("failed to seed log: %v", err)
	}

	pruned, err := repo.PruneOlderThan(ctx, 30)
	if err != nil {
		t.Fatalf("PruneOlderThan failed: %v", err)
	}
	if pruned != 1 {
		t.Errorf("pruned = %d, want 1", pruned)
	}
}

func TestLogWriterAdapter_LogResolution(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewResolutionLogRepository(db)
	writer := sqlite.NewLogWriterAdapter(repo)
	ctx := ctxutil.WithActorID(context.Background(), "bob")

	if err := writer.LogResolution(ctx, "p1", "alternative", "pkg-a", "pkg-b", "no-inst", "install"); err != nil {
		t.Fatalf("LogResolution failed: %v", err)
	}
	if err := writer.LogResolution(ctx, "p1", "ignore", "pkg-c", "", "", ""); err != nil {
		t.Fatalf("LogResolution failed: %v", err)
	}

	logs, err := repo.List(context.Background(), secondary.ResolutionLogFilters{PassID: "p1"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("log count = %d, want 2", len(logs))
	}
	for _, l := range logs {
		if l.ActorID != "bob" {
			t.Errorf("ActorID = %q, want bob", l.ActorID)
		}
	}
}
