package gex

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestStoreLoadDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "SPX.json"), []byte(sampleDoc), 0o644); err != nil {
		t.Fatalf("writing snapshot: %v", err)
	}
	// Garbage file should be skipped, not abort the load
	if err := os.WriteFile(filepath.Join(dir, "NDX.json"), []byte("{"), 0o644); err != nil {
		t.Fatalf("writing snapshot: %v", err)
	}

	store := NewStore(zap.NewNop())
	if err := store.LoadDir(dir); err != nil {
		t.Fatalf("LoadDir: %v", err)
	}

	snap, err := store.Get("SPX")
	if err != nil {
		t.Fatalf("Get SPX: %v", err)
	}
	if snap.Spot != 6958.5 {
		t.Errorf("spot: got %v", snap.Spot)
	}

	if _, err := store.Get("NDX"); !errors.Is(err, ErrMissingData) {
		t.Errorf("expected ErrMissingData for NDX, got %v", err)
	}

	symbols := store.Symbols()
	if len(symbols) != 1 || symbols[0] != "SPX" {
		t.Errorf("symbols: got %v, want [SPX]", symbols)
	}
}

func TestStoreLoadDirEmpty(t *testing.T) {
	store := NewStore(zap.NewNop())
	if err := store.LoadDir(t.TempDir()); err == nil {
		t.Fatal("expected error for directory with no snapshots")
	}
}

func TestSymbolFromFilename(t *testing.T) {
	cases := []struct {
		name   string
		symbol string
		ok     bool
	}{
		{"SPX.json", "SPX", true},
		{"spx.json.gz", "SPX", true},
		{"NDX.json.zst", "NDX", true},
		{"readme.md", "", false},
		{".json", "", false},
	}

	for _, tc := range cases {
		symbol, ok := symbolFromFilename(tc.name)
		if ok != tc.ok || symbol != tc.symbol {
			t.Errorf("%s: got (%q, %v), want (%q, %v)", tc.name, symbol, ok, tc.symbol, tc.ok)
		}
	}
}
