package gex

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var (
	// ErrMissingData means no usable snapshot exists for the requested symbol:
	// the symbol is absent from the file or its strikes array is empty.
	ErrMissingData = errors.New("no gex data for symbol")
)

// symbolEntry is one symbol's block in the fetcher output file. Strikes stays
// raw because the fetcher has emitted both object and triple encodings.
type symbolEntry struct {
	Spot      float64         `json:"spot"`
	LastPrice float64         `json:"last_price"`
	Timestamp json.RawMessage `json:"timestamp"`
	Strikes   json.RawMessage `json:"strikes"`
}

// strikeRecord is the object encoding of one strike row.
type strikeRecord struct {
	Strike  float64 `json:"strike"`
	NetGex  float64 `json:"net_gex"`
	NetDex  float64 `json:"net_dex"`
	CallGex float64 `json:"call_gex"`
	PutGex  float64 `json:"put_gex"`
}

// LoadFile reads a fetcher snapshot file and returns the named symbol's
// snapshot. Files ending in .gz or .zst are decompressed transparently.
// Returns ErrMissingData when the symbol is absent or has no strikes.
func LoadFile(path, symbol string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	switch filepath.Ext(path) {
	case ".gz":
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("gzip reader: %w", err)
		}
		defer func() { _ = gz.Close() }()
		r = gz
	case ".zst":
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("zstd reader: %w", err)
		}
		defer zr.Close()
		r = zr
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot file: %w", err)
	}

	return ParseSnapshot(raw, symbol)
}

// ParseSnapshot decodes a fetcher output document (symbol -> entry map) and
// extracts the named symbol's snapshot.
func ParseSnapshot(raw []byte, symbol string) (*Snapshot, error) {
	var doc map[string]symbolEntry
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}

	entry, ok := doc[symbol]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingData, symbol)
	}

	spot := entry.Spot
	if spot == 0 {
		spot = entry.LastPrice
	}

	points, err := ParseStrikes(entry.Strikes)
	if err != nil {
		return nil, fmt.Errorf("parsing strikes for %s: %w", symbol, err)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: %s has no strikes", ErrMissingData, symbol)
	}

	return &Snapshot{
		Symbol:    symbol,
		Spot:      spot,
		Points:    points,
		Timestamp: parseTimestamp(entry.Timestamp),
	}, nil
}

// ParseStrikes decodes a strikes payload. Two encodings are accepted:
// an array of objects ({strike, net_gex, net_dex|call_gex+put_gex}) and the
// compact array-of-triples form ([strike, gex, dex]) used by the live API.
func ParseStrikes(raw json.RawMessage) ([]ExposurePoint, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var records []strikeRecord
	if err := json.Unmarshal(raw, &records); err == nil {
		points := make([]ExposurePoint, 0, len(records))
		for _, rec := range records {
			dex := rec.NetDex
			if dex == 0 {
				dex = rec.CallGex + rec.PutGex
			}
			points = append(points, ExposurePoint{Strike: rec.Strike, Gex: rec.NetGex, Dex: dex})
		}
		return points, nil
	}

	var triples [][]float64
	if err := json.Unmarshal(raw, &triples); err != nil {
		return nil, fmt.Errorf("unrecognized strikes encoding: %w", err)
	}

	points := make([]ExposurePoint, 0, len(triples))
	for i, t := range triples {
		if len(t) < 2 {
			return nil, fmt.Errorf("strike row %d: want at least [strike, gex], got %d values", i, len(t))
		}
		p := ExposurePoint{Strike: t[0], Gex: t[1]}
		if len(t) > 2 {
			p.Dex = t[2]
		}
		points = append(points, p)
	}
	return points, nil
}

// parseTimestamp accepts the two encodings the fetcher has used: epoch
// seconds and an RFC3339 string. Anything else yields the zero time.
func parseTimestamp(raw json.RawMessage) time.Time {
	if len(raw) == 0 {
		return time.Time{}
	}

	var secs float64
	if err := json.Unmarshal(raw, &secs); err == nil {
		return time.Unix(int64(secs), 0).UTC()
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
