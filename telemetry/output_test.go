package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/heartbeat/config"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if om != nil {
		t.Fatal("expected nil manager for empty dir")
	}

	// Nil manager is a no-op.
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if err := om.WriteBookmark(Bookmark{}); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if err := om.WriteConfig(config.Default()); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if om.Dir() != "" {
		t.Errorf("expected empty dir, got %q", om.Dir())
	}
	if err := om.Close(); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 1; i <= 3; i++ {
		if err := om.WriteTelemetry(WindowStats{WindowEndTick: int32(i * 300), Beats: i}); err != nil {
			t.Fatalf("write telemetry: %v", err)
		}
	}
	if err := om.WriteBookmark(Bookmark{Type: BookmarkCelebration, Tick: 600, Description: "accepted"}); err != nil {
		t.Fatalf("write bookmark: %v", err)
	}
	if err := om.WritePerf(PerfStats{}, 300); err != nil {
		t.Fatalf("write perf: %v", err)
	}
	if err := om.WriteConfig(config.Default()); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatalf("read telemetry.csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "window_end,") {
		t.Errorf("expected header row, got %q", lines[0])
	}
	if strings.Contains(lines[2], "window_end") {
		t.Error("header repeated after first write")
	}

	data, err = os.ReadFile(filepath.Join(dir, "bookmarks.csv"))
	if err != nil {
		t.Fatalf("read bookmarks.csv: %v", err)
	}
	if !strings.Contains(string(data), "celebration,600,accepted") {
		t.Errorf("bookmark row missing: %q", data)
	}

	if _, err := os.Stat(filepath.Join(dir, "perf.csv")); err != nil {
		t.Errorf("perf.csv missing: %v", err)
	}
	if _, err := config.Load(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("written config does not load: %v", err)
	}
}

func TestOutputManagerBadDir(t *testing.T) {
	// A regular file where the directory should go.
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewOutputManager(filepath.Join(file, "run")); err == nil {
		t.Error("expected error for directory under a regular file")
	}
}
