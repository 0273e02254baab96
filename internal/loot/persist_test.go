package loot

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/quasilyte/gdata/v2"
)

// testManager opens a throwaway gdata store, cleaned up after the test.
func testManager(t *testing.T, name string) *gdata.Manager {
	t.Helper()
	appName := fmt.Sprintf("gravedelve_test_%s_%d", name, time.Now().UnixNano())
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		t.Skipf("gdata unavailable: %v", err)
	}
	t.Cleanup(func() {
		if home, err := os.UserHomeDir(); err == nil {
			os.RemoveAll(filepath.Join(home, ".local", "share", appName))
		}
	})
	return m
}

func TestPityStateRoundTrip(t *testing.T) {
	m := testManager(t, "roundtrip")

	want := &PityState{Healing: 3, Panic: 7, WeaponUpgrade: 1, ArmorUpgrade: 12}
	if err := SavePityState(m, want); err != nil {
		t.Fatalf("SavePityState: %v", err)
	}

	got, err := LoadPityState(m)
	if err != nil {
		t.Fatalf("LoadPityState: %v", err)
	}
	if *got != *want {
		t.Errorf("round trip mismatch: got %+v, want %+v", *got, *want)
	}
}

func TestLoadPityStateFreshStore(t *testing.T) {
	m := testManager(t, "fresh")
	got, err := LoadPityState(m)
	if err != nil {
		t.Fatalf("LoadPityState on empty store: %v", err)
	}
	if *got != (PityState{}) {
		t.Errorf("empty store should yield zero counters, got %+v", *got)
	}
}

func TestPityPersistenceNilManager(t *testing.T) {
	// Degraded mode: no save dir. Loads give fresh counters, saves no-op.
	got, err := LoadPityState(nil)
	if err != nil || *got != (PityState{}) {
		t.Errorf("nil manager load: got %+v, err %v", *got, err)
	}
	if err := SavePityState(nil, &PityState{Healing: 1}); err != nil {
		t.Errorf("nil manager save should be a no-op, got %v", err)
	}
}
