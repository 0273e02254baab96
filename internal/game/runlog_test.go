package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunLogDirXDGEnvOverride(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmp)

	dir, err := runLogDir()
	if err != nil {
		t.Fatalf("runLogDir returned error: %v", err)
	}
	want := filepath.Join(tmp, "gravedelve")
	if dir != want {
		t.Errorf("dir = %q; want %q", dir, want)
	}
}

func TestRunLogDirDefaultFallback(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "") // force the fallback path

	dir, err := runLogDir()
	if err != nil {
		t.Skip("skipping: no user home directory available in test environment")
	}
	suffix := filepath.Join(".local", "share", "gravedelve")
	if !strings.HasSuffix(dir, suffix) {
		t.Errorf("dir %q does not end with %q", dir, suffix)
	}
}

func TestSaveRunLog(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmp)

	log := RunLog{
		Victory:       false,
		DepthReached:  7,
		TurnsPlayed:   312,
		SplitsSeen:    2,
		PityDrops:     1,
		CauseOfDeath:  "barrow wight",
		MonstersSlain: map[string]int{"skeleton": 5, "gravemold": 1},
		ItemsUsed:     map[string]int{"potion_lesser": 2},
	}
	saveRunLog(log)

	logPath := filepath.Join(tmp, "gravedelve", "runs.jsonl")
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("runs.jsonl not created: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "barrow wight") {
		t.Errorf("log file does not contain cause of death; got: %q", content)
	}
	if !strings.HasSuffix(content, "\n") {
		t.Error("log entry is not newline-terminated")
	}

	// A second run appends rather than truncates.
	saveRunLog(log)
	data, _ = os.ReadFile(logPath)
	if got := strings.Count(string(data), "\n"); got != 2 {
		t.Errorf("expected 2 log lines after second save, got %d", got)
	}
}
