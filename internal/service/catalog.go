package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/streakworks/streakbot/internal/domain"
	"github.com/streakworks/streakbot/internal/repository"
)

// CatalogService owns the admin-curated pool of task templates.
// Validation happens here, at admission time, so the daily generator
// never has to reject a template.
type CatalogService struct {
	db      *pgxpool.Pool
	queries *repository.Queries
}

func NewCatalogService(db *pgxpool.Pool, queries *repository.Queries) *CatalogService {
	return &CatalogService{db: db, queries: queries}
}

type CreateTemplateInput struct {
	Kind     domain.TaskKind
	Title    string
	Weight   int
	Question string
	Answer   string
	URL      string
}

func (s *CatalogService) CreateTemplate(ctx context.Context, in CreateTemplateInput, createdBy int64) (*domain.TaskTemplate, error) {
	if err := validateTemplate(in); err != nil {
		return nil, err
	}
	template, err := s.queries.CreateTaskTemplate(ctx, repository.CreateTaskTemplateParams{
		Kind:      in.Kind,
		Title:     strings.TrimSpace(in.Title),
		Weight:    in.Weight,
		Question:  strings.TrimSpace(in.Question),
		Answer:    strings.TrimSpace(in.Answer),
		URL:       strings.TrimSpace(in.URL),
		CreatedBy: createdBy,
	})
	if err != nil {
		return nil, fmt.Errorf("create template: %w", err)
	}
	return template, nil
}

func (s *CatalogService) ListActive(ctx context.Context) ([]domain.TaskTemplate, error) {
	templates, err := s.queries.ListActiveTaskTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return templates, nil
}

// Disable soft-disables a template. Templates referenced by published
// days are never deleted.
func (s *CatalogService) Disable(ctx context.Context, id int64) error {
	return s.queries.SetTaskTemplateActive(ctx, id, false)
}

func validateTemplate(in CreateTemplateInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: empty title", domain.ErrInvalidTemplate)
	}
	if in.Weight <= 0 {
		return fmt.Errorf("%w: weight must be positive", domain.ErrInvalidTemplate)
	}
	switch in.Kind {
	case domain.TaskCheckin:
	case domain.TaskQuiz:
		if strings.TrimSpace(in.Question) == "" || strings.TrimSpace(in.Answer) == "" {
			return fmt.Errorf("%w: quiz needs question and answer", domain.ErrInvalidTemplate)
		}
	case domain.TaskLink:
		if !validHTTPURL(in.URL) {
			return fmt.Errorf("%w: link needs a valid http(s) url", domain.ErrInvalidTemplate)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", domain.ErrInvalidTemplate, in.Kind)
	}
	return nil
}

func validHTTPURL(raw string) bool {
	u, err := url.ParseRequestURI(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
