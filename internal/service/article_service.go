package service

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"go-portfolio-app/internal/content"
	"go-portfolio-app/internal/logger"
	"go-portfolio-app/internal/search"
	"go-portfolio-app/internal/store"
)

// ArticleService manages the blog article collection. On top of the
// common CRUD it enforces slug uniqueness, derives reading time and
// sanitizes user-authored text before it is stored.
type ArticleService struct {
	store     store.Store
	sanitizer *bluemonday.Policy
	log       logger.Logger
}

// NewArticleService creates an ArticleService.
func NewArticleService(st store.Store, log logger.Logger) *ArticleService {
	// UGCPolicy allows basic formatting while stripping dangerous HTML
	// that may be embedded in the markdown text.
	return &ArticleService{
		store:     st,
		sanitizer: bluemonday.UGCPolicy(),
		log:       log,
	}
}

// List returns the full collection, newest first by publication date.
func (s *ArticleService) List(ctx context.Context) ([]content.Article, error) {
	rows, err := s.store.List(ctx, store.Query{Table: content.TableArticles, OrderBy: "published_at"})
	if err != nil {
		return nil, err
	}
	return decodeRows[content.Article](rows)
}

// Featured returns only records flagged for homepage display.
func (s *ArticleService) Featured(ctx context.Context) ([]content.Article, error) {
	rows, err := s.store.List(ctx, store.Query{
		Table:   content.TableArticles,
		Eq:      map[string]any{"featured": true},
		OrderBy: "published_at",
	})
	if err != nil {
		return nil, err
	}
	return decodeRows[content.Article](rows)
}

// Categories returns the wildcard plus each distinct category with its
// record count over the unfiltered collection.
func (s *ArticleService) Categories(ctx context.Context) ([]CategorySummary, error) {
	rows, err := s.store.List(ctx, store.Query{Table: content.TableArticles, Select: "category"})
	if err != nil {
		return nil, err
	}
	articles, err := decodeRows[content.Article](rows)
	if err != nil {
		return nil, err
	}
	return summarizeCategories(articles), nil
}

// Search filters the collection by category and free-text query.
func (s *ArticleService) Search(ctx context.Context, category, query string) ([]content.Article, error) {
	articles, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return search.Apply(articles, category, query), nil
}

// BySlug returns the article with the exact slug. A missing slug is a
// distinguishable not-found state, not a failure of the lookup itself.
func (s *ArticleService) BySlug(ctx context.Context, slug string) (*content.Article, error) {
	rows, err := s.store.List(ctx, store.Query{
		Table: content.TableArticles,
		Eq:    map[string]any{"slug": slug},
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("article with slug %q: %w", slug, store.ErrNotFound)
	}
	return decodeRow[content.Article](rows[0])
}

// Add validates and inserts a new article. An omitted slug is derived
// from the title, the way the admin editor pre-fills it. The slug must
// not collide with any existing article; on collision nothing is
// written.
func (s *ArticleService) Add(ctx context.Context, article content.Article) (*content.Article, error) {
	if article.Slug == "" {
		article.Slug = content.Slugify(article.Title)
	}
	if err := validation.ValidateStruct(&article,
		validation.Field(&article.Title, validation.Required.Error("title_required")),
		validation.Field(&article.Slug, validation.Required.Error("slug_required")),
		validation.Field(&article.Excerpt, validation.Required.Error("excerpt_required")),
		validation.Field(&article.Content, validation.Required.Error("content_required")),
		validation.Field(&article.Category, validation.Required.Error("category_required")),
	); err != nil {
		return nil, err
	}

	if err := s.ensureUniqueSlug(ctx, article.Slug, ""); err != nil {
		return nil, err
	}

	article.Content = s.sanitizer.Sanitize(article.Content)
	article.Excerpt = s.sanitizer.Sanitize(article.Excerpt)
	if article.ReadingTime <= 0 {
		article.ReadingTime = content.ReadingTime(article.Content)
	}

	now := stamp()
	article.ID = uuid.NewString()
	article.CreatedAt = now
	article.UpdatedAt = now
	if article.PublishedAt == "" {
		article.PublishedAt = now
	}
	article.Normalize()

	row, err := s.store.Insert(ctx, content.TableArticles, article)
	if err != nil {
		return nil, err
	}
	return decodeRow[content.Article](row)
}

// Update shallow-merges patch into the article with the given id. A slug
// change is checked for collisions against every other article; patched
// content is re-sanitized and, unless the patch pins one explicitly,
// reading time is re-derived.
func (s *ArticleService) Update(ctx context.Context, id string, patch map[string]any) (*content.Article, error) {
	patch = preparePatch(patch)

	if slug, ok := patch["slug"].(string); ok {
		if err := s.ensureUniqueSlug(ctx, slug, id); err != nil {
			return nil, err
		}
	}
	if text, ok := patch["content"].(string); ok {
		sanitized := s.sanitizer.Sanitize(text)
		patch["content"] = sanitized
		if _, pinned := patch["reading_time"]; !pinned {
			patch["reading_time"] = content.ReadingTime(sanitized)
		}
	}
	if excerpt, ok := patch["excerpt"].(string); ok {
		patch["excerpt"] = s.sanitizer.Sanitize(excerpt)
	}

	row, err := s.store.Update(ctx, content.TableArticles, id, patch)
	if err != nil {
		return nil, err
	}
	return decodeRow[content.Article](row)
}

// Remove deletes the article with the given id. Removing an unknown id
// is a no-op.
func (s *ArticleService) Remove(ctx context.Context, id string) error {
	return s.store.Delete(ctx, content.TableArticles, id)
}

// ToggleFeatured flips the featured flag on the article with the given id.
func (s *ArticleService) ToggleFeatured(ctx context.Context, id string) (*content.Article, error) {
	articles, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, article := range articles {
		if article.ID == id {
			return s.Update(ctx, id, map[string]any{"featured": !article.Featured})
		}
	}
	return nil, store.ErrNotFound
}

// ensureUniqueSlug fails with ErrDuplicateSlug when another article
// (excluding excludeID) already uses slug.
func (s *ArticleService) ensureUniqueSlug(ctx context.Context, slug, excludeID string) error {
	articles, err := s.List(ctx)
	if err != nil {
		return err
	}
	for _, article := range articles {
		if article.Slug == slug && article.ID != excludeID {
			return ErrDuplicateSlug
		}
	}
	return nil
}
