package store

import (
	"context"
	"encoding/json"

	"go-portfolio-app/internal/metrics"
)

// instrumentedStore decorates a Store with operation counters.
type instrumentedStore struct {
	next    Store
	backend string
	m       *metrics.Metrics
}

// Instrument wraps a Store so every operation is counted, labeled by
// backend and outcome.
func Instrument(next Store, backend string, m *metrics.Metrics) Store {
	return &instrumentedStore{next: next, backend: backend, m: m}
}

func (s *instrumentedStore) List(ctx context.Context, q Query) ([]json.RawMessage, error) {
	rows, err := s.next.List(ctx, q)
	s.m.IncStoreOp(s.backend, "list", err)
	return rows, err
}

func (s *instrumentedStore) Insert(ctx context.Context, table string, record any) (json.RawMessage, error) {
	row, err := s.next.Insert(ctx, table, record)
	s.m.IncStoreOp(s.backend, "insert", err)
	return row, err
}

func (s *instrumentedStore) Update(ctx context.Context, table, id string, patch map[string]any) (json.RawMessage, error) {
	row, err := s.next.Update(ctx, table, id, patch)
	s.m.IncStoreOp(s.backend, "update", err)
	return row, err
}

func (s *instrumentedStore) Delete(ctx context.Context, table, id string) error {
	err := s.next.Delete(ctx, table, id)
	s.m.IncStoreOp(s.backend, "delete", err)
	return err
}
