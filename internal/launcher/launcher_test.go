package launcher

import (
	"testing"

	"github.com/kimgoetzke/randolf/internal/logging"
)

func TestLaunch_EmptyPathIsNoOp(t *testing.T) {
	l := New("/tmp/randolf/config.toml", logging.NopSink{})
	if err := l.Launch("", false); err != nil {
		t.Fatalf("expected no error for empty path, got %v", err)
	}
}

func TestLaunch_MissingExecutableReturnsError(t *testing.T) {
	l := New("/tmp/randolf/config.toml", logging.NopSink{})
	if err := l.Launch("/no/such/executable-for-randolf-tests", false); err == nil {
		t.Fatalf("expected error launching a nonexistent executable")
	}
}
