package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go-portfolio-app/internal/logger"
)

// localKeyPrefix namespaces collection keys in the key/value table,
// mirroring the storage keys the original site used.
const localKeyPrefix = "portfolio_"

// blobStore is the minimal surface LocalStore needs from its backing
// key/value store.
type blobStore interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
}

// LocalStore keeps each collection as one JSON array under one key. The
// in-memory copy is authoritative for the process lifetime: reads are
// served from it once loaded, and every mutation rewrites the whole
// serialized collection as a best-effort write-through. A missing or
// corrupt stored value degrades to the supplied default collection; it is
// logged, never surfaced as an error.
type LocalStore struct {
	mu       sync.RWMutex
	kv       blobStore
	defaults map[string][]json.RawMessage
	tables   map[string][]json.RawMessage
	log      logger.Logger
}

var _ Store = (*LocalStore)(nil)

// NewLocal creates a LocalStore. defaults maps logical table names to
// their fallback collections.
func NewLocal(kv blobStore, defaults map[string][]json.RawMessage, log logger.Logger) *LocalStore {
	return &LocalStore{
		kv:       kv,
		defaults: defaults,
		tables:   make(map[string][]json.RawMessage),
		log:      log,
	}
}

// collection returns the in-memory rows for table, loading from the
// key/value store on first access. Callers must hold mu.
func (s *LocalStore) collection(table string) []json.RawMessage {
	if rows, ok := s.tables[table]; ok {
		return rows
	}

	rows := s.defaults[table]
	value, err := s.kv.Get(localKeyPrefix + table)
	switch {
	case err != nil:
		s.log.Error(err, fmt.Sprintf("Failed to load collection %q, using default", table))
	case value == nil:
		// First run: nothing stored yet.
	default:
		var stored []json.RawMessage
		if err := json.Unmarshal(value, &stored); err != nil {
			s.log.Error(err, fmt.Sprintf("Corrupt stored collection %q, using default", table))
		} else {
			rows = stored
		}
	}
	if rows == nil {
		rows = []json.RawMessage{}
	}
	s.tables[table] = rows
	return rows
}

// save writes the whole collection through to the key/value store. A
// failed write is logged and swallowed: the in-memory state stays ahead
// of the durable copy until the next successful write.
func (s *LocalStore) save(table string, rows []json.RawMessage) {
	value, err := json.Marshal(rows)
	if err != nil {
		s.log.Error(err, fmt.Sprintf("Failed to serialize collection %q", table))
		return
	}
	if err := s.kv.Put(localKeyPrefix+table, value); err != nil {
		s.log.Error(err, fmt.Sprintf("Failed to persist collection %q, in-memory state retained", table))
	}
}

// List returns rows matching the query. The collection keeps insertion
// order (newest first, since Insert prepends); OrderBy is ignored here
// because that order already matches the remote backend's
// created_at-descending convention.
func (s *LocalStore) List(ctx context.Context, q Query) ([]json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Filter while holding the lock: Update rewrites elements of the
	// shared backing array in place, so the slice must not be walked
	// unlocked. The row values themselves are never mutated, only
	// replaced, so the returned copies are safe to read afterwards.
	rows := s.collection(q.Table)
	out := make([]json.RawMessage, 0, len(rows))
	for _, row := range rows {
		if rowMatches(row, q.Eq) {
			out = append(out, row)
		}
	}
	return out, nil
}

// Insert prepends the record and rewrites the collection.
func (s *LocalStore) Insert(ctx context.Context, table string, record any) (json.RawMessage, error) {
	row, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize record: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.collection(table)
	rows = append([]json.RawMessage{row}, rows...)
	s.tables[table] = rows
	s.save(table, rows)
	return row, nil
}

// Update shallow-merges patch into the record with the given id.
func (s *LocalStore) Update(ctx context.Context, table, id string, patch map[string]any) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.collection(table)

	for i, row := range rows {
		if rowID(row) != id {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal(row, &m); err != nil {
			return nil, fmt.Errorf("failed to decode stored record %q: %w", id, err)
		}
		for k, v := range patch {
			m[k] = v
		}
		merged, err := json.Marshal(m)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize updated record: %w", err)
		}
		rows[i] = merged
		s.save(table, rows)
		return merged, nil
	}
	return nil, ErrNotFound
}

// Delete filters the id out of the collection. An absent id leaves the
// collection untouched.
func (s *LocalStore) Delete(ctx context.Context, table, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.collection(table)

	kept := make([]json.RawMessage, 0, len(rows))
	for _, row := range rows {
		if rowID(row) != id {
			kept = append(kept, row)
		}
	}
	if len(kept) == len(rows) {
		return nil // no-op, remove is idempotent
	}
	s.tables[table] = kept
	s.save(table, kept)
	return nil
}
