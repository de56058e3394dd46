package identity

import "testing"

func TestPersistentWorkspaceIdKeyFormat(t *testing.T) {
	id := NewPersistentWorkspaceId("DP-1", 1, true)

	if got, want := id.Key(), "DP-1|1|true"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestParsePersistentWorkspaceIdRoundTrip(t *testing.T) {
	id := NewPersistentWorkspaceId("DP-1", 2, false)

	parsed, err := ParsePersistentWorkspaceId(id.Key())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed != id {
		t.Fatalf("got %+v, want %+v", parsed, id)
	}
}

func TestParsePersistentWorkspaceIdRejectsWrongSegmentCount(t *testing.T) {
	if _, err := ParsePersistentWorkspaceId("DP-1|1"); err == nil {
		t.Fatalf("expected error for 2-segment key")
	}
	if _, err := ParsePersistentWorkspaceId("DP-1|1|true|extra"); err == nil {
		t.Fatalf("expected error for 4-segment key")
	}
}

func TestPersistentWorkspaceIdIsSameWorkspace(t *testing.T) {
	a := NewPersistentWorkspaceId("DP-1", 1, true)
	b := NewPersistentWorkspaceId("DP-2", 1, false)

	if !a.IsSameWorkspace(b) {
		t.Fatalf("expected same workspace index to match across monitors")
	}
	if a.IsSameMonitor(b) {
		t.Fatalf("expected different monitors to not match")
	}
}
