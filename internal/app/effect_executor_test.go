package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/example/pkgconflict/internal/core/effects"
)

func newTestExecutor() (*DefaultEffectExecutor, *mockPackageRepository, *mockLogWriter, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	repo := newMockPackageRepository()
	writer := &mockLogWriter{}
	return NewEffectExecutor(repo, writer, zap.New(core)), repo, writer, logs
}

func TestEffectExecutor_StatusEffect(t *testing.T) {
	executor, repo, _, logs := newTestExecutor()
	repo.seed("foo", "install", false)

	err := executor.Execute(context.Background(), []effects.Effect{
		effects.StatusEffect{PackageID: "foo", From: "install", To: "no-inst"},
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if repo.packages["foo"].Status != "no-inst" {
		t.Errorf("status = %q, want no-inst", repo.packages["foo"].Status)
	}
	if logs.FilterMessage("package status changed").Len() != 1 {
		t.Error("expected a debug entry for the status change")
	}
}

func TestEffectExecutor_AuditEffect(t *testing.T) {
	executor, _, writer, _ := newTestExecutor()

	err := executor.Execute(context.Background(), []effects.Effect{
		effects.AuditEffect{PassID: "p1", Action: "delete", ConflictPackageID: "old", PackageID: "dep", OldStatus: "keep-installed", NewStatus: "del"},
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(writer.entries) != 1 {
		t.Fatalf("audit entries = %d, want 1", len(writer.entries))
	}
	got := writer.entries[0]
	if got.PassID != "p1" || got.PackageID != "dep" || got.NewStatus != "del" {
		t.Errorf("unexpected audit entry %+v", got)
	}
}

func TestEffectExecutor_LogEffectLevels(t *testing.T) {
	executor, _, _, logs := newTestExecutor()

	err := executor.Execute(context.Background(), []effects.Effect{
		effects.LogEffect{Level: "warn", Message: "careful", Fields: map[string]any{"pass": "p1"}},
		effects.LogEffect{Level: "error", Message: "broken"},
		effects.LogEffect{Message: "plain"},
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	entries := logs.All()
	if len(entries) != 3 {
		t.Fatalf("log entries = %d, want 3", len(entries))
	}
	if entries[0].Level != zap.WarnLevel || entries[0].ContextMap()["pass"] != "p1" {
		t.Errorf("unexpected warn entry %+v", entries[0])
	}
	if entries[1].Level != zap.ErrorLevel {
		t.Errorf("level = %v, want error", entries[1].Level)
	}
	if entries[2].Level != zap.InfoLevel {
		t.Errorf("level = %v, want info", entries[2].Level)
	}
}

type unknownEffect struct{}

func (unknownEffect) EffectType() string { return "unknown" }

func TestEffectExecutor_UnknownEffect(t *testing.T) {
	executor, repo, writer, _ := newTestExecutor()
	repo.seed("foo", "install", false)

	err := executor.Execute(context.Background(), []effects.Effect{
		unknownEffect{},
		effects.StatusEffect{PackageID: "foo", From: "install", To: "no-inst"},
	})
	if err == nil || !strings.Contains(err.Error(), "unknown effect type") {
		t.Fatalf("unexpected error %v", err)
	}
	if repo.packages["foo"].Status != "install" || len(writer.entries) != 0 {
		t.Error("effects after the unknown one were executed")
	}
}

func TestEffectExecutor_StopsOnError(t *testing.T) {
	executor, repo, writer, _ := newTestExecutor()
	repo.updateStatusErr = errors.New("disk full")

	err := executor.Execute(context.Background(), []effects.Effect{
		effects.StatusEffect{PackageID: "foo", To: "taboo"},
		effects.AuditEffect{PassID: "p1", Action: "delete"},
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "failed to execute status effect") {
		t.Errorf("error = %v, want it to name the status effect", err)
	}
	if len(writer.entries) != 0 {
		t.Error("audit entry written after a failed status change")
	}
}
