package audit

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestLoggerRoundTrip(t *testing.T) {
	logger := NewLogger(filepath.Join(t.TempDir(), "events.db"))

	if err := logger.LogEvent("cli", EventRunStarted, map[string]any{"scenario_id": "SCN_BASE"}); err != nil {
		t.Fatal(err)
	}
	if err := logger.LogEvent("cli", EventRunFinished, map[string]any{"scenario_id": "SCN_BASE", "items": 6}); err != nil {
		t.Fatal(err)
	}

	events, err := logger.ListEvents(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	// Newest first.
	if events[0].Type != EventRunFinished || events[1].Type != EventRunStarted {
		t.Fatalf("event order: %s, %s", events[0].Type, events[1].Type)
	}
	if events[0].Actor != "cli" {
		t.Fatalf("actor = %q", events[0].Actor)
	}
	if !strings.Contains(events[0].PayloadJSON, `"scenario_id":"SCN_BASE"`) {
		t.Fatalf("payload = %s", events[0].PayloadJSON)
	}
	if events[0].Timestamp.IsZero() {
		t.Fatal("timestamp not recorded")
	}
}

func TestLoggerListLimit(t *testing.T) {
	logger := NewLogger(filepath.Join(t.TempDir(), "events.db"))
	for i := 0; i < 5; i++ {
		if err := logger.LogEvent("cli", EventSensitivityFinished, map[string]int{"trial": i}); err != nil {
			t.Fatal(err)
		}
	}

	events, err := logger.ListEvents(3)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 3 {
		t.Fatalf("events = %d, want 3", len(events))
	}
	if events[0].ID <= events[1].ID {
		t.Fatal("ids not descending")
	}
}
