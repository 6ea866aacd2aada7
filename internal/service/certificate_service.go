package service

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"go-portfolio-app/internal/content"
	"go-portfolio-app/internal/logger"
	"go-portfolio-app/internal/search"
	"go-portfolio-app/internal/store"
)

// CertificateService manages the certificate collection.
type CertificateService struct {
	store store.Store
	log   logger.Logger
}

// NewCertificateService creates a CertificateService.
func NewCertificateService(st store.Store, log logger.Logger) *CertificateService {
	return &CertificateService{store: st, log: log}
}

// List returns the full collection, newest first.
func (s *CertificateService) List(ctx context.Context) ([]content.Certificate, error) {
	rows, err := s.store.List(ctx, store.Query{Table: content.TableCertificates, OrderBy: "created_at"})
	if err != nil {
		return nil, err
	}
	return decodeRows[content.Certificate](rows)
}

// Featured returns only records flagged for homepage display, order
// preserved from the source collection.
func (s *CertificateService) Featured(ctx context.Context) ([]content.Certificate, error) {
	rows, err := s.store.List(ctx, store.Query{
		Table:   content.TableCertificates,
		Eq:      map[string]any{"featured": true},
		OrderBy: "created_at",
	})
	if err != nil {
		return nil, err
	}
	return decodeRows[content.Certificate](rows)
}

// Categories returns the wildcard plus each distinct category with its
// record count over the unfiltered collection.
func (s *CertificateService) Categories(ctx context.Context) ([]CategorySummary, error) {
	rows, err := s.store.List(ctx, store.Query{Table: content.TableCertificates, Select: "category"})
	if err != nil {
		return nil, err
	}
	certs, err := decodeRows[content.Certificate](rows)
	if err != nil {
		return nil, err
	}
	return summarizeCategories(certs), nil
}

// Search filters the collection by category and free-text query.
func (s *CertificateService) Search(ctx context.Context, category, query string) ([]content.Certificate, error) {
	certs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return search.Apply(certs, category, query), nil
}

// Add validates and inserts a new certificate, assigning id and
// timestamps. Nothing is written when validation fails.
func (s *CertificateService) Add(ctx context.Context, cert content.Certificate) (*content.Certificate, error) {
	if err := validation.ValidateStruct(&cert,
		validation.Field(&cert.Title, validation.Required.Error("title_required")),
		validation.Field(&cert.Issuer, validation.Required.Error("issuer_required")),
		validation.Field(&cert.Date, validation.Required.Error("date_required")),
		validation.Field(&cert.Image, validation.Required.Error("image_required")),
		validation.Field(&cert.CertificateURL, validation.Required.Error("certificate_url_required")),
	); err != nil {
		return nil, err
	}

	now := stamp()
	cert.ID = uuid.NewString()
	cert.CreatedAt = now
	cert.UpdatedAt = now
	cert.Normalize()

	row, err := s.store.Insert(ctx, content.TableCertificates, cert)
	if err != nil {
		return nil, err
	}
	return decodeRow[content.Certificate](row)
}

// Update shallow-merges patch into the certificate with the given id.
func (s *CertificateService) Update(ctx context.Context, id string, patch map[string]any) (*content.Certificate, error) {
	row, err := s.store.Update(ctx, content.TableCertificates, id, preparePatch(patch))
	if err != nil {
		return nil, err
	}
	return decodeRow[content.Certificate](row)
}

// Remove deletes the certificate with the given id. Removing an unknown
// id is a no-op.
func (s *CertificateService) Remove(ctx context.Context, id string) error {
	return s.store.Delete(ctx, content.TableCertificates, id)
}

// ToggleFeatured flips the featured flag on the certificate with the
// given id.
func (s *CertificateService) ToggleFeatured(ctx context.Context, id string) (*content.Certificate, error) {
	certs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, cert := range certs {
		if cert.ID == id {
			return s.Update(ctx, id, map[string]any{"featured": !cert.Featured})
		}
	}
	return nil, store.ErrNotFound
}

// summarizeCategories builds the category listing shared by certificates
// and articles.
func summarizeCategories[T search.Matcher](items []T) []CategorySummary {
	counts := search.Counts(items)
	names := search.Categories(items)
	summaries := make([]CategorySummary, 0, len(names))
	for _, name := range names {
		summaries = append(summaries, CategorySummary{Name: name, Count: counts[name]})
	}
	return summaries
}
