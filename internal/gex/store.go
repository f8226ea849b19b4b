package gex

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Store holds the latest snapshot per symbol for the server. Snapshots are
// replaced whole on refresh; readers always see a complete snapshot.
type Store struct {
	mu        sync.RWMutex
	snapshots map[string]*Snapshot
	logger    *zap.Logger
}

func NewStore(logger *zap.Logger) *Store {
	return &Store{
		snapshots: make(map[string]*Snapshot),
		logger:    logger,
	}
}

// LoadDir loads every snapshot file in dir. File names map to symbols:
// SPX.json, SPX.json.gz and SPX.json.zst all load as SPX. Unreadable files
// are logged and skipped. Fails when the directory yields nothing.
func (s *Store) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading snapshot directory: %w", err)
	}

	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		symbol, ok := symbolFromFilename(entry.Name())
		if !ok {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		snap, err := LoadFile(path, symbol)
		if err != nil {
			s.logger.Warn("skipping snapshot file",
				zap.String("path", path),
				zap.Error(err))
			continue
		}

		s.Put(snap)
		loaded++
		s.logger.Info("loaded snapshot",
			zap.String("symbol", symbol),
			zap.Float64("spot", snap.Spot),
			zap.Int("points", len(snap.Points)))
	}

	if loaded == 0 {
		return fmt.Errorf("no snapshot files found in %s", dir)
	}
	return nil
}

// Put replaces the stored snapshot for its symbol.
func (s *Store) Put(snap *Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[snap.Symbol] = snap
}

// Get returns the stored snapshot for symbol, or ErrMissingData.
func (s *Store) Get(symbol string) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snapshots[symbol]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingData, symbol)
	}
	return snap, nil
}

// Symbols returns the loaded symbols, sorted.
func (s *Store) Symbols() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	symbols := make([]string, 0, len(s.snapshots))
	for sym := range s.snapshots {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)
	return symbols
}

func symbolFromFilename(name string) (string, bool) {
	for _, ext := range []string{".gz", ".zst"} {
		name = strings.TrimSuffix(name, ext)
	}
	if !strings.HasSuffix(name, ".json") {
		return "", false
	}
	symbol := strings.TrimSuffix(name, ".json")
	if symbol == "" {
		return "", false
	}
	return strings.ToUpper(symbol), true
}
