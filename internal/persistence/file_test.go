package persistence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kimgoetzke/randolf/internal/geometry"
	"github.com/kimgoetzke/randolf/internal/identity"
	"github.com/kimgoetzke/randolf/internal/logging"
	"github.com/kimgoetzke/randolf/internal/window"
)

func newTestFile(t *testing.T) (*File, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "workspaces.toml")
	f, err := Load(path, logging.NopSink{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return f, path
}

func testID(n int) identity.PersistentWorkspaceId {
	return identity.NewPersistentWorkspaceId("DP-1", n, true)
}

func TestLoad_MissingFileCreatesEmpty(t *testing.T) {
	f, path := newTestFile(t)
	if len(f.Handles(testID(1))) != 0 {
		t.Fatalf("expected no handles for unknown workspace")
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file to be created: %v", err)
	}
}

func TestAdd_IgnoresDuplicate(t *testing.T) {
	f, _ := newTestFile(t)
	id := testID(1)
	if err := f.Add(id, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := f.Add(id, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if got := f.Handles(id); len(got) != 1 {
		t.Fatalf("expected 1 handle, got %d", len(got))
	}
}

func TestAddAll_AddsEveryWindow(t *testing.T) {
	f, _ := newTestFile(t)
	id := testID(1)
	wins := []window.Window{
		window.New(1, "one", geometry.Rect{}),
		window.New(2, "two", geometry.Rect{}),
	}
	if err := f.AddAll(id, wins); err != nil {
		t.Fatalf("add_all: %v", err)
	}
	if got := f.Handles(id); len(got) != 2 {
		t.Fatalf("expected 2 handles, got %d", len(got))
	}
}

func TestRemoveWorkspace_DeletesEntry(t *testing.T) {
	f, _ := newTestFile(t)
	id := testID(1)
	if err := f.Add(id, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := f.RemoveWorkspace(id); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if got := f.Handles(id); len(got) != 0 {
		t.Fatalf("expected no handles after removal, got %d", len(got))
	}
}

func TestRemoveAllExcluding_LeavesKeptWorkspaceUntouched(t *testing.T) {
	f, _ := newTestFile(t)
	keep := testID(1)
	other := testID(2)
	w1 := window.New(1, "one", geometry.Rect{})
	w2 := window.New(2, "two", geometry.Rect{})

	if err := f.Add(keep, w1.Handle); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := f.Add(other, w2.Handle); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := f.RemoveAllExcluding(keep, []window.Window{w1, w2}); err != nil {
		t.Fatalf("remove_all_excluding: %v", err)
	}

	if got := f.Handles(keep); len(got) != 1 || got[0] != w1.Handle {
		t.Fatalf("expected kept workspace untouched, got %v", got)
	}
	if got := f.Handles(other); len(got) != 0 {
		t.Fatalf("expected handle removed from other workspace, got %v", got)
	}
}

func TestClear_RemovesEverything(t *testing.T) {
	f, _ := newTestFile(t)
	if err := f.Add(testID(1), 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := f.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(f.keys()) != 0 {
		t.Fatalf("expected no workspaces after clear")
	}
}

func TestSaveThenLoad_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workspaces.toml")
	f, err := Load(path, logging.NopSink{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	id := testID(1)
	if err := f.AddAll(id, []window.Window{window.New(1, "one", geometry.Rect{}), window.New(2, "two", geometry.Rect{})}); err != nil {
		t.Fatalf("add_all: %v", err)
	}

	reloaded, err := Load(path, logging.NopSink{})
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := reloaded.Handles(id); len(got) != 2 {
		t.Fatalf("expected 2 handles after reload, got %d", len(got))
	}
}
