// Package store defines the persistence contract for content collections
// and its two interchangeable implementations: a local single-file SQLite
// store and a remote PostgREST-compatible table API. Exactly one backend
// is selected at composition time.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound is returned when an id or filter matches no record.
var ErrNotFound = errors.New("record not found")

// Query describes a collection read: equality conditions, an optional
// column projection and descending ordering. This is the full query
// vocabulary both backends understand.
type Query struct {
	Table   string
	Eq      map[string]any // equality filters, e.g. featured=true, slug=...
	Select  string         // optional single-column projection
	OrderBy string         // e.g. "created_at", "published_at"; always descending
}

// CacheKey renders the query as a stable string, used by the remote
// backend to key its result cache.
func (q Query) CacheKey() string {
	var b strings.Builder
	b.WriteString(q.Table)
	if q.Select != "" {
		b.WriteString("|select=")
		b.WriteString(q.Select)
	}
	if len(q.Eq) > 0 {
		keys := make([]string, 0, len(q.Eq))
		for k := range q.Eq {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "|%s=%v", k, q.Eq[k])
		}
	}
	if q.OrderBy != "" {
		b.WriteString("|order=")
		b.WriteString(q.OrderBy)
	}
	return b.String()
}

// Store is the uniform persistence surface backing the collection
// services. Records travel as raw JSON rows; entity typing lives in the
// service layer.
type Store interface {
	// List returns the rows matching the query.
	List(ctx context.Context, q Query) ([]json.RawMessage, error)
	// Insert adds a record and returns it as stored.
	Insert(ctx context.Context, table string, record any) (json.RawMessage, error)
	// Update shallow-merges patch into the record with the given id and
	// returns the merged row. Returns ErrNotFound when the id is absent.
	Update(ctx context.Context, table, id string, patch map[string]any) (json.RawMessage, error)
	// Delete removes the record with the given id. Deleting an absent id
	// is a no-op.
	Delete(ctx context.Context, table, id string) error
}

// rowID extracts the id field from a JSON row. Rows without a string id
// are skipped by callers rather than treated as errors.
func rowID(row json.RawMessage) string {
	var probe struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(row, &probe); err != nil {
		return ""
	}
	return probe.ID
}

// rowMatches applies equality conditions to a row client-side. Values are
// compared after JSON decoding, so bools and strings compare naturally.
func rowMatches(row json.RawMessage, eq map[string]any) bool {
	if len(eq) == 0 {
		return true
	}
	var m map[string]any
	if err := json.Unmarshal(row, &m); err != nil {
		return false
	}
	for k, want := range eq {
		if m[k] != want {
			return false
		}
	}
	return true
}
