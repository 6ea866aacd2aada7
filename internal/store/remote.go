package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"go-portfolio-app/internal/config"
	"go-portfolio-app/internal/logger"
)

// Staleness windows for cached query results. Primary collection queries
// go stale after five minutes, derived category projections after ten.
const (
	collectionTTL = 5 * time.Minute
	categoryTTL   = 10 * time.Minute
)

// RemoteStore talks to a hosted PostgREST-compatible table API (Supabase
// style): equality filters as `col=eq.val` query parameters, ordering as
// `order=col.desc`, the API key in both apikey and Authorization headers.
//
// Reads go through a staleness-window cache keyed by the query. There is
// no in-flight de-duplication: two concurrent misses for the same key
// both hit the network and the last response to resolve wins the cache
// slot. Mutations drop every cached query for the table.
type RemoteStore struct {
	baseURL string
	apiKey  string
	client  *http.Client
	cache   *gocache.Cache
	log     logger.Logger
}

var _ Store = (*RemoteStore)(nil)

// NewRemote creates a RemoteStore from configuration.
func NewRemote(cfg config.RemoteStoreConfig, log logger.Logger) *RemoteStore {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RemoteStore{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: timeout},
		cache:   gocache.New(collectionTTL, categoryTTL),
		log:     log,
	}
}

func (s *RemoteStore) endpoint(table string) string {
	return s.baseURL + "/rest/v1/" + table
}

func (s *RemoteStore) newRequest(ctx context.Context, method, rawURL string, body []byte) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// do executes the request and decodes the JSON array response. PostgREST
// answers every row-returning call with an array.
func (s *RemoteStore) do(req *http.Request) ([]json.RawMessage, error) {
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("remote store returned %d for %s: %s", resp.StatusCode, req.URL.Path, snippet)
	}
	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	var rows []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to decode response from %s: %w", req.URL.Path, err)
	}
	return rows, nil
}

func (s *RemoteStore) queryString(q Query) string {
	params := url.Values{}
	if q.Select != "" {
		params.Set("select", q.Select)
	} else {
		params.Set("select", "*")
	}
	for k, v := range q.Eq {
		params.Set(k, fmt.Sprintf("eq.%v", v))
	}
	if q.OrderBy != "" {
		params.Set("order", q.OrderBy+".desc")
	}
	return params.Encode()
}

// List returns rows matching the query, from cache when fresh.
func (s *RemoteStore) List(ctx context.Context, q Query) ([]json.RawMessage, error) {
	key := q.CacheKey()
	if cached, found := s.cache.Get(key); found {
		return cached.([]json.RawMessage), nil
	}

	req, err := s.newRequest(ctx, http.MethodGet, s.endpoint(q.Table)+"?"+s.queryString(q), nil)
	if err != nil {
		return nil, err
	}
	rows, err := s.do(req)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []json.RawMessage{}
	}

	ttl := collectionTTL
	if q.Select != "" {
		ttl = categoryTTL
	}
	s.cache.Set(key, rows, ttl)
	return rows, nil
}

// Insert adds a record and returns the stored representation.
func (s *RemoteStore) Insert(ctx context.Context, table string, record any) (json.RawMessage, error) {
	body, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize record: %w", err)
	}
	req, err := s.newRequest(ctx, http.MethodPost, s.endpoint(table), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Prefer", "return=representation")

	rows, err := s.do(req)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("remote store returned no representation for insert into %s", table)
	}
	s.invalidate(table)
	return rows[0], nil
}

// Update patches the record with the given id and returns the merged row.
func (s *RemoteStore) Update(ctx context.Context, table, id string, patch map[string]any) (json.RawMessage, error) {
	body, err := json.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize patch: %w", err)
	}
	target := s.endpoint(table) + "?id=eq." + url.QueryEscape(id)
	req, err := s.newRequest(ctx, http.MethodPatch, target, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Prefer", "return=representation")

	rows, err := s.do(req)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	s.invalidate(table)
	return rows[0], nil
}

// Delete removes the record with the given id. The API treats an absent
// id as matching zero rows, so deleting twice is harmless.
func (s *RemoteStore) Delete(ctx context.Context, table, id string) error {
	target := s.endpoint(table) + "?id=eq." + url.QueryEscape(id)
	req, err := s.newRequest(ctx, http.MethodDelete, target, nil)
	if err != nil {
		return err
	}
	if _, err := s.do(req); err != nil {
		return err
	}
	s.invalidate(table)
	return nil
}

// invalidate drops every cached query for the table so the next read
// refetches fresh state.
func (s *RemoteStore) invalidate(table string) {
	for key := range s.cache.Items() {
		if key == table || strings.HasPrefix(key, table+"|") {
			s.cache.Delete(key)
		}
	}
}
