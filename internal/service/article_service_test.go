//go:build unit

package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"go-portfolio-app/internal/content"
	"go-portfolio-app/internal/store"
)

func draftArticle() content.Article {
	return content.Article{
		Title:    "My React Learning Journey",
		Slug:     "my-react-learning-journey",
		Excerpt:  "Notes from three months of React.",
		Content:  "Some **markdown** body text.",
		Category: "Web Development",
	}
}

func TestArticleServiceBySlug(t *testing.T) {
	st := &mockStore{listFunc: staticRows(`{"id":"a1","slug":"java-101","title":"Java 101"}`)}
	svc := NewArticleService(st, testLogger())

	article, err := svc.BySlug(context.Background(), "java-101")
	if err != nil {
		t.Fatalf("BySlug returned error: %v", err)
	}
	if article.ID != "a1" {
		t.Errorf("unexpected article: %v", article)
	}
	if st.lastQuery.Eq["slug"] != "java-101" {
		t.Errorf("expected a slug filter, got %v", st.lastQuery.Eq)
	}
}

func TestArticleServiceBySlugUnknown(t *testing.T) {
	st := &mockStore{listFunc: staticRows()}
	svc := NewArticleService(st, testLogger())

	_, err := svc.BySlug(context.Background(), "missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestArticleServiceAddRejectsDuplicateSlug(t *testing.T) {
	st := &mockStore{listFunc: staticRows(`{"id":"a1","slug":"my-react-learning-journey"}`)}
	svc := NewArticleService(st, testLogger())

	_, err := svc.Add(context.Background(), draftArticle())
	if !errors.Is(err, ErrDuplicateSlug) {
		t.Fatalf("expected ErrDuplicateSlug, got %v", err)
	}
	if st.lastInsert != nil {
		t.Error("expected nothing to be written on a slug collision")
	}
}

func TestArticleServiceAddValidatesRequiredFields(t *testing.T) {
	svc := NewArticleService(&mockStore{}, testLogger())

	article := draftArticle()
	article.Content = ""
	_, err := svc.Add(context.Background(), article)
	if !IsValidationError(err) {
		t.Fatalf("expected a validation error, got %v", err)
	}
}

func TestArticleServiceAddSanitizesAndDerives(t *testing.T) {
	st := &mockStore{listFunc: staticRows()}
	svc := NewArticleService(st, testLogger())

	article := draftArticle()
	article.Content = `Hello <script>alert("x")</script> world`
	created, err := svc.Add(context.Background(), article)
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if strings.Contains(created.Content, "<script>") {
		t.Errorf("expected script tags to be stripped, got %q", created.Content)
	}
	if created.ReadingTime != 1 {
		t.Errorf("expected derived reading time of 1 minute, got %d", created.ReadingTime)
	}
	if created.PublishedAt == "" {
		t.Error("expected a default publication timestamp")
	}
}

func TestArticleServiceAddKeepsExplicitReadingTime(t *testing.T) {
	st := &mockStore{listFunc: staticRows()}
	svc := NewArticleService(st, testLogger())

	article := draftArticle()
	article.ReadingTime = 7
	created, err := svc.Add(context.Background(), article)
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if created.ReadingTime != 7 {
		t.Errorf("expected explicit reading time to survive, got %d", created.ReadingTime)
	}
}

func TestArticleServiceAddDerivesSlugFromTitle(t *testing.T) {
	st := &mockStore{listFunc: staticRows()}
	svc := NewArticleService(st, testLogger())

	article := draftArticle()
	article.Slug = ""
	created, err := svc.Add(context.Background(), article)
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if created.Slug != "my-react-learning-journey" {
		t.Errorf("Slug = %q, want %q", created.Slug, "my-react-learning-journey")
	}
}

func TestArticleServiceUpdateChecksSlugCollision(t *testing.T) {
	st := &mockStore{listFunc: staticRows(
		`{"id":"a1","slug":"first-post"}`,
		`{"id":"a2","slug":"second-post"}`,
	)}
	svc := NewArticleService(st, testLogger())

	_, err := svc.Update(context.Background(), "a1", map[string]any{"slug": "second-post"})
	if !errors.Is(err, ErrDuplicateSlug) {
		t.Fatalf("expected ErrDuplicateSlug, got %v", err)
	}
}

func TestArticleServiceUpdateAllowsOwnSlug(t *testing.T) {
	st := &mockStore{
		listFunc: staticRows(`{"id":"a1","slug":"first-post"}`),
		updateFunc: func(ctx context.Context, table, id string, patch map[string]any) (json.RawMessage, error) {
			return json.RawMessage(`{"id":"a1","slug":"first-post"}`), nil
		},
	}
	svc := NewArticleService(st, testLogger())

	if _, err := svc.Update(context.Background(), "a1", map[string]any{"slug": "first-post"}); err != nil {
		t.Fatalf("expected re-saving the same slug to pass, got %v", err)
	}
}

func TestArticleServiceUpdateRederivesReadingTime(t *testing.T) {
	st := &mockStore{
		updateFunc: func(ctx context.Context, table, id string, patch map[string]any) (json.RawMessage, error) {
			return json.RawMessage(`{"id":"a1"}`), nil
		},
	}
	svc := NewArticleService(st, testLogger())

	longText := strings.Repeat("word ", 400)
	if _, err := svc.Update(context.Background(), "a1", map[string]any{"content": longText}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if st.lastPatch["reading_time"] != 2 {
		t.Errorf("expected reading time re-derived to 2, got %v", st.lastPatch["reading_time"])
	}
}

func TestArticleServiceUpdatePinnedReadingTime(t *testing.T) {
	st := &mockStore{
		updateFunc: func(ctx context.Context, table, id string, patch map[string]any) (json.RawMessage, error) {
			return json.RawMessage(`{"id":"a1"}`), nil
		},
	}
	svc := NewArticleService(st, testLogger())

	if _, err := svc.Update(context.Background(), "a1", map[string]any{"content": "short", "reading_time": 9}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if st.lastPatch["reading_time"] != 9 {
		t.Errorf("expected pinned reading time to survive, got %v", st.lastPatch["reading_time"])
	}
}
