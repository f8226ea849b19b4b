package gex

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
)

const sampleDoc = `{
  "SPX": {
    "spot": 6958.5,
    "timestamp": 1756180800,
    "strikes": [
      {"strike": 7000, "net_gex": 54300000, "net_dex": 120000000},
      {"strike": 6900, "net_gex": -28150000, "call_gex": 1000000, "put_gex": -30000000}
    ]
  }
}`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing temp file: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeTemp(t, "SPX.json", sampleDoc)

	snap, err := LoadFile(path, "SPX")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if snap.Symbol != "SPX" {
		t.Errorf("symbol: got %q, want SPX", snap.Symbol)
	}
	if snap.Spot != 6958.5 {
		t.Errorf("spot: got %v, want 6958.5", snap.Spot)
	}
	if len(snap.Points) != 2 {
		t.Fatalf("points: got %d, want 2", len(snap.Points))
	}
	if snap.Points[0].Gex != 54300000 {
		t.Errorf("point 0 gex: got %v", snap.Points[0].Gex)
	}
	// net_dex absent on the second strike, falls back to call_gex + put_gex
	if snap.Points[1].Dex != -29000000 {
		t.Errorf("point 1 dex fallback: got %v, want -29000000", snap.Points[1].Dex)
	}
	if snap.Timestamp.Unix() != 1756180800 {
		t.Errorf("timestamp: got %v", snap.Timestamp)
	}
}

func TestLoadFileGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "SPX.json.gz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating file: %v", err)
	}
	gz := gzip.NewWriter(f)
	if _, err := gz.Write([]byte(sampleDoc)); err != nil {
		t.Fatalf("writing gzip: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("closing gzip: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("closing file: %v", err)
	}

	snap, err := LoadFile(path, "SPX")
	if err != nil {
		t.Fatalf("LoadFile gzip: %v", err)
	}
	if len(snap.Points) != 2 {
		t.Errorf("points: got %d, want 2", len(snap.Points))
	}
}

func TestLoadFileMissingSymbol(t *testing.T) {
	path := writeTemp(t, "SPX.json", sampleDoc)

	_, err := LoadFile(path, "NDX")
	if !errors.Is(err, ErrMissingData) {
		t.Fatalf("expected ErrMissingData for missing symbol, got %v", err)
	}
}

func TestLoadFileEmptyStrikes(t *testing.T) {
	path := writeTemp(t, "SPX.json", `{"SPX": {"spot": 6958.5, "strikes": []}}`)

	_, err := LoadFile(path, "SPX")
	if !errors.Is(err, ErrMissingData) {
		t.Fatalf("expected ErrMissingData for empty strikes, got %v", err)
	}
}

func TestParseStrikesTriples(t *testing.T) {
	points, err := ParseStrikes([]byte(`[[7000, 54300000, 1.2e8], [6900, -28150000]]`))
	if err != nil {
		t.Fatalf("ParseStrikes: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("points: got %d, want 2", len(points))
	}
	if points[0].Strike != 7000 || points[0].Dex != 1.2e8 {
		t.Errorf("point 0: got %+v", points[0])
	}
	if points[1].Gex != -28150000 || points[1].Dex != 0 {
		t.Errorf("point 1: got %+v", points[1])
	}
}

func TestParseStrikesBadEncoding(t *testing.T) {
	if _, err := ParseStrikes([]byte(`"nope"`)); err == nil {
		t.Fatal("expected error for unrecognized encoding")
	}
}

func TestLoadFileLastPriceFallback(t *testing.T) {
	path := writeTemp(t, "SPX.json",
		`{"SPX": {"last_price": 6950, "strikes": [{"strike": 7000, "net_gex": 1}]}}`)

	snap, err := LoadFile(path, "SPX")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if snap.Spot != 6950 {
		t.Errorf("spot fallback: got %v, want 6950", snap.Spot)
	}
}
