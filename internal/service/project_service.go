package service

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"go-portfolio-app/internal/content"
	"go-portfolio-app/internal/logger"
	"go-portfolio-app/internal/store"
)

// ProjectService manages the project collection.
type ProjectService struct {
	store store.Store
	log   logger.Logger
}

// NewProjectService creates a ProjectService.
func NewProjectService(st store.Store, log logger.Logger) *ProjectService {
	return &ProjectService{store: st, log: log}
}

// List returns the full collection, newest first.
func (s *ProjectService) List(ctx context.Context) ([]content.Project, error) {
	rows, err := s.store.List(ctx, store.Query{Table: content.TableProjects, OrderBy: "created_at"})
	if err != nil {
		return nil, err
	}
	return decodeRows[content.Project](rows)
}

// Featured returns only records flagged for homepage display.
func (s *ProjectService) Featured(ctx context.Context) ([]content.Project, error) {
	rows, err := s.store.List(ctx, store.Query{
		Table:   content.TableProjects,
		Eq:      map[string]any{"featured": true},
		OrderBy: "created_at",
	})
	if err != nil {
		return nil, err
	}
	return decodeRows[content.Project](rows)
}

// Add validates and inserts a new project, assigning id and timestamps.
func (s *ProjectService) Add(ctx context.Context, project content.Project) (*content.Project, error) {
	if err := validation.ValidateStruct(&project,
		validation.Field(&project.Title, validation.Required.Error("title_required")),
		validation.Field(&project.Description, validation.Required.Error("description_required")),
		validation.Field(&project.DemoLink, validation.Required.Error("demo_link_required")),
		validation.Field(&project.GithubLink, validation.Required.Error("github_link_required")),
	); err != nil {
		return nil, err
	}

	now := stamp()
	project.ID = uuid.NewString()
	project.CreatedAt = now
	project.UpdatedAt = now
	project.Normalize()

	row, err := s.store.Insert(ctx, content.TableProjects, project)
	if err != nil {
		return nil, err
	}
	return decodeRow[content.Project](row)
}

// Update shallow-merges patch into the project with the given id.
func (s *ProjectService) Update(ctx context.Context, id string, patch map[string]any) (*content.Project, error) {
	row, err := s.store.Update(ctx, content.TableProjects, id, preparePatch(patch))
	if err != nil {
		return nil, err
	}
	return decodeRow[content.Project](row)
}

// Remove deletes the project with the given id. Removing an unknown id
// is a no-op.
func (s *ProjectService) Remove(ctx context.Context, id string) error {
	return s.store.Delete(ctx, content.TableProjects, id)
}

// ToggleFeatured flips the featured flag on the project with the given id.
func (s *ProjectService) ToggleFeatured(ctx context.Context, id string) (*content.Project, error) {
	projects, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, project := range projects {
		if project.ID == id {
			return s.Update(ctx, id, map[string]any{"featured": !project.Featured})
		}
	}
	return nil, store.ErrNotFound
}
