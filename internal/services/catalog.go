package services

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/yungbote/suplementor-backend/internal/data/repos"
	"github.com/yungbote/suplementor-backend/internal/domain/supplement"
	"github.com/yungbote/suplementor-backend/internal/observability"
	"github.com/yungbote/suplementor-backend/internal/platform/apierr"
	"github.com/yungbote/suplementor-backend/internal/platform/cache"
	"github.com/yungbote/suplementor-backend/internal/platform/logger"
)

const activeCatalogKey = "active"

type CatalogService interface {
	List(ctx context.Context, filter repos.SupplementFilter) ([]*supplement.Supplement, error)
	Get(ctx context.Context, id string) (*supplement.Supplement, error)
	// Active returns the full active catalog, served from cache when warm.
	Active(ctx context.Context) ([]*supplement.Supplement, error)
	ByIDs(ctx context.Context, ids []string) ([]*supplement.Supplement, error)
	Invalidate(ctx context.Context)
}

type catalogService struct {
	db    *gorm.DB
	log   *logger.Logger
	repo  repos.SupplementRepo
	cache cache.Cache[[]*supplement.Supplement]
}

// NewCatalogService wires the catalog. A nil cache disables caching.
func NewCatalogService(db *gorm.DB, log *logger.Logger, repo repos.SupplementRepo, c cache.Cache[[]*supplement.Supplement]) CatalogService {
	if c == nil {
		c = cache.Noop[[]*supplement.Supplement]{}
	}
	return &catalogService{
		db:    db,
		log:   log.With("service", "CatalogService"),
		repo:  repo,
		cache: c,
	}
}

func (s *catalogService) List(ctx context.Context, filter repos.SupplementFilter) ([]*supplement.Supplement, error) {
	ctx, span := observability.Tracer().Start(ctx, "catalog.List")
	defer span.End()

	if filter.Category != "" && !filter.Category.Valid() {
		return nil, apierr.BadRequest("invalid_category", fmt.Errorf("unknown category %q", filter.Category))
	}
	if filter.MinEvidence != "" && !filter.MinEvidence.Valid() {
		return nil, apierr.BadRequest("invalid_evidence_level", fmt.Errorf("unknown evidence level %q", filter.MinEvidence))
	}
	out, err := s.repo.ListActive(ctx, s.db, filter)
	if err != nil {
		return nil, fmt.Errorf("list supplements: %w", err)
	}
	span.SetAttributes(attribute.Int("supplements.count", len(out)))
	return out, nil
}

func (s *catalogService) Get(ctx context.Context, id string) (*supplement.Supplement, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apierr.BadRequest("missing_id", fmt.Errorf("supplement id is required"))
	}
	row, err := s.repo.GetByID(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("get supplement: %w", err)
	}
	if row == nil {
		return nil, apierr.NotFound("supplement", id)
	}
	return row, nil
}

func (s *catalogService) Active(ctx context.Context) ([]*supplement.Supplement, error) {
	if rows, ok := s.cache.Get(ctx, activeCatalogKey); ok {
		return rows, nil
	}
	ctx, span := observability.Tracer().Start(ctx, "catalog.LoadActive")
	defer span.End()

	rows, err := s.repo.ListActive(ctx, s.db, repos.SupplementFilter{})
	if err != nil {
		return nil, fmt.Errorf("load active catalog: %w", err)
	}
	s.cache.Set(ctx, activeCatalogKey, rows)
	span.SetAttributes(attribute.Int("supplements.count", len(rows)))
	return rows, nil
}

func (s *catalogService) ByIDs(ctx context.Context, ids []string) ([]*supplement.Supplement, error) {
	cleaned := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			cleaned = append(cleaned, id)
		}
	}
	if len(cleaned) == 0 {
		return nil, nil
	}
	rows, err := s.repo.GetActiveByIDs(ctx, s.db, cleaned)
	if err != nil {
		return nil, fmt.Errorf("get supplements by ids: %w", err)
	}
	return rows, nil
}

func (s *catalogService) Invalidate(ctx context.Context) {
	s.cache.Purge(ctx)
	s.log.Info("Catalog cache purged")
}
