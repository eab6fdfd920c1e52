package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"dealerdesk/internal/kv"
)

// DefaultStateKey is the fixed durable-store key the full state blob lives
// under.
const DefaultStateKey = "dealerdesk/state"

// Store is the authoritative repository for every entity collection. All
// mutations run through it; the durable backend only ever sees whole-state
// snapshots. A nil durable backend yields a purely in-memory store.
type Store struct {
	mu    sync.RWMutex
	state state

	durable   kv.Store
	persistMu sync.Mutex
	stateKey  string

	saveErrMu   sync.Mutex
	lastSaveErr error

	subMu   sync.Mutex
	subs    []subscriber
	nextSub uint64

	logger  Logger
	metrics MetricsRecorder
	nowFn   func() time.Time
	idFn    func() string
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load/persist diagnostics.
func WithLogger(l Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets the metrics recorder observed per mutation.
func WithMetrics(m MetricsRecorder) Option {
	return func(s *Store) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithClock overrides the time source used for created/updated stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.nowFn = now
		}
	}
}

// WithStateKey overrides the durable-store key the state blob is saved under.
func WithStateKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.stateKey = key
		}
	}
}

// WithIDFunc overrides identifier generation; tests use it for deterministic
// ids.
func WithIDFunc(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.idFn = fn
		}
	}
}

// New constructs a store backed by the given durable backend.
func New(durable kv.Store, opts ...Option) *Store {
	s := &Store{
		durable:  durable,
		stateKey: DefaultStateKey,
		logger:   noopLogger{},
		metrics:  noopMetrics{},
		nowFn:    func() time.Time { return time.Now().UTC() },
		idFn:     newID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize loads the durable blob into memory, then seeds the illustrative
// dataset when no dealership came back. Load failures never propagate: a
// missing or unreadable blob falls back to the empty-state template.
func (s *Store) Initialize(ctx context.Context) {
	snapshot := s.loadAll(ctx)
	s.mu.Lock()
	s.state = stateFromSnapshot(snapshot)
	empty := len(s.state.dealerships) == 0
	s.mu.Unlock()
	if empty {
		s.seed(ctx)
	}
}

func (s *Store) loadAll(ctx context.Context) Snapshot {
	if s.durable == nil {
		return normalizeSnapshot(Snapshot{})
	}
	payload, ok, err := s.durable.Load(ctx, s.stateKey)
	if err != nil {
		s.logger.Warn("load state failed, starting empty", "key", s.stateKey, "error", err)
		return normalizeSnapshot(Snapshot{})
	}
	if !ok {
		s.logger.Debug("no saved state", "key", s.stateKey)
		return normalizeSnapshot(Snapshot{})
	}
	var snapshot Snapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		s.logger.Warn("saved state unreadable, starting empty", "key", s.stateKey, "error", err)
		return normalizeSnapshot(Snapshot{})
	}
	return normalizeSnapshot(snapshot)
}

// commit snapshots the in-memory state to the durable backend, records the
// outcome, and fans out the change notification. Persistence failure is a
// recorded warning, never an error to the caller: in-memory state stays
// authoritative for the session and the next mutation retries the full blob.
func (s *Store) commit(ctx context.Context, operation string, start time.Time) {
	err := s.persist(ctx)
	s.saveErrMu.Lock()
	s.lastSaveErr = err
	s.saveErrMu.Unlock()
	if err != nil {
		s.logger.Warn("persist state failed; in-memory state retained", "operation", operation, "error", err)
	}
	s.metrics.Observe(ctx, operation, err == nil, time.Since(start))
	s.notify()
}

func (s *Store) persist(ctx context.Context) error {
	if s.durable == nil {
		return nil
	}
	s.persistMu.Lock()
	defer s.persistMu.Unlock()
	payload, err := json.Marshal(s.ExportState())
	if err != nil {
		return err
	}
	return s.durable.Save(ctx, s.stateKey, payload)
}

// LastSaveError returns the persistence failure recorded by the most recent
// mutation, or nil when it persisted cleanly. This is the non-fatal warning
// surface the view layer renders.
func (s *Store) LastSaveError() error {
	s.saveErrMu.Lock()
	defer s.saveErrMu.Unlock()
	return s.lastSaveErr
}

// ExportState clones the current store state for external persistence.
func (s *Store) ExportState() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshotFromState(s.state)
}

// ImportState replaces the store state with the provided snapshot after
// normalization. It does not persist or notify; callers use it to hydrate.
func (s *Store) ImportState(snapshot Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = stateFromSnapshot(normalizeSnapshot(snapshot))
}

func (s *Store) now() time.Time { return s.nowFn() }
