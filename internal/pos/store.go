package pos

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/clearpond/kassa/internal/ident"
	"github.com/clearpond/kassa/internal/storage"
)

// IDMode selects the order identifier strategy for a deployment.
type IDMode int

const (
	// IDModeUUID generates a random identifier per order and item.
	// Safe for multi-device deployments: two tills can never mint the
	// same order id.
	IDModeUUID IDMode = iota
	// IDModeSequential numbers orders and items from local counters.
	// Only valid when exactly one device writes the dataset.
	IDModeSequential
)

// Store is the domain store: the in-memory working copy of the dataset plus
// every CRUD operation the cashier and admin surfaces need.
//
// Every mutation takes the lock, mutates the dataset, appends a change
// record to the sync queue and persists the whole snapshot through the
// backend before returning. Reads return copies; callers never see live
// slices or maps.
//
// Thread-safety: all methods are safe for concurrent use. The mutex makes
// each operation atomic with respect to the sync worker's queue reads.
type Store struct {
	mu      sync.Mutex
	data    *Dataset
	backend storage.Backend

	ids    ident.Generator
	idMode IDMode
	now    func() time.Time
	coll   *collate.Collator

	// lastTS is the timestamp of the newest queue entry ever appended.
	// Queue timestamps are correlation ids for pruning, so they must be
	// unique; appends bump past lastTS when the clock stands still.
	lastTS int64
}

// Option configures a Store at construction.
type Option func(*Store)

// WithClock overrides the wall clock. Used by tests for deterministic
// order datetimes and queue timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides the identifier generator (uuid mode only).
func WithIDGenerator(g ident.Generator) Option {
	return func(s *Store) { s.ids = g }
}

// WithIDMode selects the identifier strategy. Default is IDModeUUID.
func WithIDMode(mode IDMode) Option {
	return func(s *Store) { s.idMode = mode }
}

// Open loads the snapshot from the backend and returns a ready store.
//
// A missing snapshot yields an empty dataset. A snapshot that fails to
// parse is treated the same way: the store logs the corruption and starts
// empty rather than refusing to run the till.
func Open(backend storage.Backend, opts ...Option) (*Store, error) {
	s := &Store{
		backend: backend,
		ids:     ident.UUIDGenerator{},
		now:     time.Now,
		coll:    collate.New(language.Russian),
	}
	for _, opt := range opts {
		opt(s)
	}

	raw, err := backend.Load()
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	if len(raw) > 0 {
		var d Dataset
		if err := json.Unmarshal(raw, &d); err != nil {
			slog.Warn("snapshot unreadable, starting empty", "error", err)
		} else {
			s.data = &d
		}
	}
	if s.data == nil {
		s.data = emptyDataset()
	}
	s.data.normalize()

	for _, e := range s.data.SyncQueue {
		if e.TS > s.lastTS {
			s.lastTS = e.TS
		}
	}

	return s, nil
}

// persist writes the snapshot through the backend. Callers hold the lock.
func (s *Store) persist() error {
	raw, err := json.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := s.backend.Save(raw); err != nil {
		return fmt.Errorf("persist snapshot: %w", err)
	}
	return nil
}

// enqueue appends a change record with a strictly monotonic timestamp.
// Callers hold the lock and persist afterwards.
func (s *Store) enqueue(c Change) {
	ts := s.now().UnixMilli()
	if ts <= s.lastTS {
		ts = s.lastTS + 1
	}
	s.lastTS = ts
	s.data.SyncQueue = append(s.data.SyncQueue, QueueEntry{Change: c, TS: ts})
}

// round2 rounds to two decimal places, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// clampDiscount normalizes a discount percentage to an integer in [0,100].
func clampDiscount(d int) int {
	if d < 0 {
		return 0
	}
	if d > 100 {
		return 100
	}
	return d
}
