package storage

import (
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Storage keys
const (
	keyOptions = "options"
	keyStats   = "stats"
)

// Options holds engine settings that survive restarts.
type Options struct {
	HashSizeMB   int           `json:"hash_size_mb"`
	MoveOverhead time.Duration `json:"move_overhead"`
}

// DefaultOptions returns the settings used by a fresh install.
func DefaultOptions() *Options {
	return &Options{
		HashSizeMB:   64,
		MoveOverhead: 30 * time.Millisecond,
	}
}

// SearchStats accumulates lifetime search statistics.
type SearchStats struct {
	Searches  uint64        `json:"searches"`
	Nodes     uint64        `json:"nodes"`
	MaxDepth  int           `json:"max_depth"`
	TotalTime time.Duration `json:"total_time"`
}

// NPS returns the lifetime average nodes per second.
func (s *SearchStats) NPS() float64 {
	if s.TotalTime <= 0 {
		return 0
	}
	return float64(s.Nodes) / s.TotalTime.Seconds()
}

// Store wraps BadgerDB for persistent engine state.
type Store struct {
	db *badger.DB
}

// Open opens the store in the platform data directory.
func Open() (*Store, error) {
	dbDir, err := DatabaseDir()
	if err != nil {
		return nil, err
	}
	return OpenAt(dbDir)
}

// OpenAt opens the store at an explicit directory. Tests use a temp dir.
func OpenAt(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Badger's own logging drowns the UCI stream

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveOptions persists the engine options.
func (s *Store) SaveOptions(opts *Options) error {
	return s.save(keyOptions, opts)
}

// LoadOptions loads the engine options, falling back to defaults when the
// store has none yet.
func (s *Store) LoadOptions() (*Options, error) {
	opts := DefaultOptions()
	err := s.load(keyOptions, opts)
	return opts, err
}

// SaveStats persists the search statistics.
func (s *Store) SaveStats(stats *SearchStats) error {
	return s.save(keyStats, stats)
}

// LoadStats loads the search statistics, empty when the store has none yet.
func (s *Store) LoadStats() (*SearchStats, error) {
	stats := &SearchStats{}
	err := s.load(keyStats, stats)
	return stats, err
}

func (s *Store) save(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// load unmarshals the value at key into v. A missing key is not an error;
// v keeps whatever defaults the caller filled in.
func (s *Store) load(key string, v any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
}
