package tools

import (
	"context"
	"strings"
	"testing"
	"time"
)

func fixedClock() *ClockTool {
	return &ClockTool{now: func() time.Time {
		return time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	}}
}

func TestClockTool_Default(t *testing.T) {
	out, err := fixedClock().Execute(context.Background(), map[string]any{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "2026") {
		t.Errorf("expected the fixed year in output, got %q", out)
	}
}

func TestClockTool_Timezone(t *testing.T) {
	out, err := fixedClock().Execute(context.Background(), map[string]any{"timezone": "UTC"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "UTC") {
		t.Errorf("expected UTC in output, got %q", out)
	}
}

func TestClockTool_BadTimezone(t *testing.T) {
	out, err := fixedClock().Execute(context.Background(), map[string]any{"timezone": "Atlantis/Lost"})
	if err != nil {
		t.Fatalf("tool-level problems must not be errors: %v", err)
	}
	if !strings.HasPrefix(out, "Error:") {
		t.Errorf("expected an Error: result, got %q", out)
	}
}
