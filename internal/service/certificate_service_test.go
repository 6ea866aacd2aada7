//go:build unit

package service

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	"go-portfolio-app/internal/config"
	"go-portfolio-app/internal/content"
	"go-portfolio-app/internal/logger"
	"go-portfolio-app/internal/store"
)

// contentCertificate builds a certificate that passes validation when
// title is non-empty and fails it when title is blank.
func contentCertificate(title string) content.Certificate {
	return content.Certificate{
		Title:          title,
		Issuer:         "Udemy",
		Date:           "2025-01-15",
		Image:          "/certificates/java.png",
		CertificateURL: "https://example.com/certificates/java",
		Category:       "Programming",
	}
}

func testLogger() logger.Logger {
	return logger.New(config.LogConfig{Level: "error", Format: "console"}, io.Discard)
}

// mockStore is a mock implementation of the store.Store interface.
type mockStore struct {
	listFunc   func(ctx context.Context, q store.Query) ([]json.RawMessage, error)
	insertFunc func(ctx context.Context, table string, record any) (json.RawMessage, error)
	updateFunc func(ctx context.Context, table, id string, patch map[string]any) (json.RawMessage, error)
	deleteFunc func(ctx context.Context, table, id string) error

	lastQuery  store.Query
	lastInsert any
	lastPatch  map[string]any
}

var _ store.Store = (*mockStore)(nil)

func (m *mockStore) List(ctx context.Context, q store.Query) ([]json.RawMessage, error) {
	m.lastQuery = q
	if m.listFunc != nil {
		return m.listFunc(ctx, q)
	}
	return nil, nil
}

func (m *mockStore) Insert(ctx context.Context, table string, record any) (json.RawMessage, error) {
	m.lastInsert = record
	if m.insertFunc != nil {
		return m.insertFunc(ctx, table, record)
	}
	return json.Marshal(record)
}

func (m *mockStore) Update(ctx context.Context, table, id string, patch map[string]any) (json.RawMessage, error) {
	m.lastPatch = patch
	if m.updateFunc != nil {
		return m.updateFunc(ctx, table, id, patch)
	}
	return nil, store.ErrNotFound
}

func (m *mockStore) Delete(ctx context.Context, table, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, table, id)
	}
	return nil
}

func staticRows(rows ...string) func(ctx context.Context, q store.Query) ([]json.RawMessage, error) {
	return func(ctx context.Context, q store.Query) ([]json.RawMessage, error) {
		out := make([]json.RawMessage, 0, len(rows))
		for _, r := range rows {
			out = append(out, json.RawMessage(r))
		}
		return out, nil
	}
}

func TestCertificateServiceFeaturedQueriesFlag(t *testing.T) {
	st := &mockStore{listFunc: staticRows(`{"id":"c1","title":"Java Basics","featured":true}`)}
	svc := NewCertificateService(st, testLogger())

	certs, err := svc.Featured(context.Background())
	if err != nil {
		t.Fatalf("Featured returned error: %v", err)
	}
	if len(certs) != 1 || certs[0].ID != "c1" {
		t.Fatalf("unexpected result: %v", certs)
	}
	if st.lastQuery.Eq["featured"] != true {
		t.Errorf("expected featured=true filter, got %v", st.lastQuery.Eq)
	}
}

func TestCertificateServiceAddValidatesRequiredFields(t *testing.T) {
	svc := NewCertificateService(&mockStore{}, testLogger())

	_, err := svc.Add(context.Background(), contentCertificate(""))
	if err == nil {
		t.Fatal("expected a validation error for empty required fields")
	}
	if !IsValidationError(err) {
		t.Fatalf("expected a validation error, got %v", err)
	}
}

func TestCertificateServiceAddStampsRecord(t *testing.T) {
	st := &mockStore{}
	svc := NewCertificateService(st, testLogger())

	created, err := svc.Add(context.Background(), contentCertificate("Java Basics"))
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if created.ID == "" {
		t.Error("expected a generated id")
	}
	if created.CreatedAt == "" || created.UpdatedAt == "" {
		t.Error("expected creation and update timestamps")
	}
	if created.Skills == nil {
		t.Error("expected skills to be normalized to an empty slice")
	}
}

func TestCertificateServiceUpdateStripsImmutableFields(t *testing.T) {
	st := &mockStore{
		updateFunc: func(ctx context.Context, table, id string, patch map[string]any) (json.RawMessage, error) {
			return json.RawMessage(`{"id":"c1","title":"Renamed"}`), nil
		},
	}
	svc := NewCertificateService(st, testLogger())

	_, err := svc.Update(context.Background(), "c1", map[string]any{
		"id":         "evil",
		"created_at": "1999-01-01T00:00:00Z",
		"title":      "Renamed",
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if _, ok := st.lastPatch["id"]; ok {
		t.Error("expected id to be stripped from the patch")
	}
	if _, ok := st.lastPatch["created_at"]; ok {
		t.Error("expected created_at to be stripped from the patch")
	}
	if st.lastPatch["updated_at"] == "" {
		t.Error("expected updated_at to be refreshed")
	}
}

func TestCertificateServiceToggleFeatured(t *testing.T) {
	st := &mockStore{
		listFunc: staticRows(`{"id":"c1","title":"Java Basics","featured":false}`),
		updateFunc: func(ctx context.Context, table, id string, patch map[string]any) (json.RawMessage, error) {
			return json.RawMessage(`{"id":"c1","title":"Java Basics","featured":true}`), nil
		},
	}
	svc := NewCertificateService(st, testLogger())

	cert, err := svc.ToggleFeatured(context.Background(), "c1")
	if err != nil {
		t.Fatalf("ToggleFeatured returned error: %v", err)
	}
	if !cert.Featured {
		t.Error("expected the flag to flip to true")
	}
	if st.lastPatch["featured"] != true {
		t.Errorf("expected patch to set featured=true, got %v", st.lastPatch)
	}
}

func TestCertificateServiceToggleFeaturedUnknownID(t *testing.T) {
	st := &mockStore{listFunc: staticRows()}
	svc := NewCertificateService(st, testLogger())

	if _, err := svc.ToggleFeatured(context.Background(), "nope"); err == nil {
		t.Fatal("expected an error for an unknown id")
	}
}

func TestCertificateServiceCategories(t *testing.T) {
	st := &mockStore{listFunc: staticRows(
		`{"category":"Programming"}`,
		`{"category":"Web Development"}`,
		`{"category":"Programming"}`,
	)}
	svc := NewCertificateService(st, testLogger())

	cats, err := svc.Categories(context.Background())
	if err != nil {
		t.Fatalf("Categories returned error: %v", err)
	}
	if st.lastQuery.Select != "category" {
		t.Errorf("expected a category projection, got %q", st.lastQuery.Select)
	}
	if len(cats) != 3 {
		t.Fatalf("expected wildcard plus 2 categories, got %v", cats)
	}
	if cats[0].Name != "All" || cats[0].Count != 3 {
		t.Errorf("expected wildcard entry with total count, got %v", cats[0])
	}
	if cats[1].Name != "Programming" || cats[1].Count != 2 {
		t.Errorf("expected Programming with count 2, got %v", cats[1])
	}
}
