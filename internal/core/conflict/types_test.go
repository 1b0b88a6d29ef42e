package conflict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_UndoTarget(t *testing.T) {
	tests := []struct {
		status Status
		want   Status
		wantOK bool
	}{
		{StatusInstall, StatusNoInst, true},
		{StatusAutoInstall, StatusNoInst, true},
		{StatusUpdate, StatusKeepInstalled, true},
		{StatusAutoUpdate, StatusKeepInstalled, true},
		{StatusDel, StatusKeepInstalled, true},
		{StatusAutoDel, StatusKeepInstalled, true},
		{StatusKeepInstalled, StatusKeepInstalled, false},
		{StatusNoInst, StatusNoInst, false},
		{StatusTaboo, StatusTaboo, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			got, ok := tt.status.UndoTarget()
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("auto-install")
	require.NoError(t, err)
	assert.Equal(t, StatusAutoInstall, st)

	_, err = ParseStatus("installed")
	assert.EqualError(t, err, `invalid package status "installed"`)
}

func TestPackageRef_Names(t *testing.T) {
	p := PackageRef{ID: "pkg-1", Name: "glibc", Edition: "2.38-1"}
	assert.Equal(t, "glibc", p.ShortName())
	assert.Equal(t, "glibc-2.38-1", p.FullName())

	anon := PackageRef{ID: "pkg-2"}
	assert.Equal(t, "pkg-2", anon.ShortName())
	assert.Equal(t, "pkg-2", anon.FullName())
}

func TestRecord_DeleteSet(t *testing.T) {
	rec := Record{
		Package:       pkg("a"),
		RemoveToSolve: []RelInfo{rel("b"), rel("a"), rel("c")},
	}

	var ids []string
	for _, p := range rec.DeleteSet() {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"pkg-a", "pkg-b", "pkg-c"}, ids)
}

func TestRecord_DeleteSetRepeatedPackage(t *testing.T) {
	rec := Record{
		Package:       pkg("a"),
		RemoveToSolve: []RelInfo{rel("b"), rel("b"), rel("c"), rel("b")},
	}

	var ids []string
	for _, p := range rec.DeleteSet() {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"pkg-a", "pkg-b", "pkg-c"}, ids)

	list := NewList()
	list.Populate([]Record{{
		Package:       pkg("a"),
		ConflictsWith: []RelInfo{rel("x")},
		RemoveToSolve: rec.RemoveToSolve,
	}})
	require.Equal(t, 1, list.SelectType(ResolutionBruteForceDelete))

	node, ok := list.Node("CONFLICT-001")
	require.True(t, ok)
	assert.Equal(t, "Delete a, b, c", node.Selected().Label)

	actions := list.Plan()
	require.Len(t, actions, 1)
	assert.Len(t, actions[0].Packages, 3)
}

func TestRecord_RequiresDecision(t *testing.T) {
	assert.False(t, Record{}.RequiresDecision())
	assert.True(t, Record{Alternatives: []RelInfo{rel("a")}}.RequiresDecision())
	assert.True(t, Record{ConflictsWith: []RelInfo{rel("a")}}.RequiresDecision())
	assert.True(t, Record{Unresolvable: []RelInfo{rel("a")}}.RequiresDecision())
	assert.False(t, Record{Referers: []RelInfo{rel("a")}}.RequiresDecision())
}
