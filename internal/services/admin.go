package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/suplementor-backend/internal/data/repos"
	"github.com/yungbote/suplementor-backend/internal/domain/knowledge"
	"github.com/yungbote/suplementor-backend/internal/domain/supplement"
	"github.com/yungbote/suplementor-backend/internal/platform/apierr"
	"github.com/yungbote/suplementor-backend/internal/platform/ctxutil"
	"github.com/yungbote/suplementor-backend/internal/platform/logger"
	"github.com/yungbote/suplementor-backend/internal/platform/validate"
)

type AdminService interface {
	UpsertSupplements(ctx context.Context, rows []*supplement.Supplement) (int, error)
	DeleteSupplement(ctx context.Context, id string) error
	UpsertKnowledgeNodes(ctx context.Context, rows []*knowledge.Node) (int, error)
	UpsertKnowledgeRelationships(ctx context.Context, rows []*knowledge.Relationship) (int, error)
	PurgeCaches(ctx context.Context)
}

type adminService struct {
	db          *gorm.DB
	log         *logger.Logger
	supplements repos.SupplementRepo
	nodes       repos.KnowledgeNodeRepo
	rels        repos.KnowledgeRelationshipRepo
	catalog     CatalogService
	graph       KnowledgeGraphService
}

func NewAdminService(
	db *gorm.DB,
	log *logger.Logger,
	supplements repos.SupplementRepo,
	nodes repos.KnowledgeNodeRepo,
	rels repos.KnowledgeRelationshipRepo,
	catalog CatalogService,
	graph KnowledgeGraphService,
) AdminService {
	return &adminService{
		db:          db,
		log:         log.With("service", "AdminService"),
		supplements: supplements,
		nodes:       nodes,
		rels:        rels,
		catalog:     catalog,
		graph:       graph,
	}
}

func (s *adminService) actor(ctx context.Context) string {
	if p := ctxutil.GetPrincipal(ctx); p != nil {
		return p.Subject
	}
	return ""
}

func (s *adminService) UpsertSupplements(ctx context.Context, rows []*supplement.Supplement) (int, error) {
	if len(rows) == 0 {
		return 0, apierr.BadRequest("empty_request", fmt.Errorf("no supplements given"))
	}
	for _, row := range rows {
		if row == nil {
			return 0, apierr.BadRequest("empty_item", fmt.Errorf("null supplement in request"))
		}
		row.ID = strings.TrimSpace(row.ID)
		if err := validate.Struct(row); err != nil {
			return 0, err
		}
	}
	if err := s.supplements.Upsert(ctx, s.db, rows); err != nil {
		return 0, fmt.Errorf("upsert supplements: %w", err)
	}
	s.PurgeCaches(ctx)
	s.log.Info("Supplements upserted", "count", len(rows), "subject", s.actor(ctx))
	return len(rows), nil
}

func (s *adminService) DeleteSupplement(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apierr.BadRequest("missing_id", fmt.Errorf("supplement id is required"))
	}
	n, err := s.supplements.SoftDeleteByIDs(ctx, s.db, []string{id})
	if err != nil {
		return fmt.Errorf("delete supplement: %w", err)
	}
	if n == 0 {
		return apierr.NotFound("supplement", id)
	}
	s.PurgeCaches(ctx)
	s.log.Info("Supplement deleted", "supplement_id", id, "subject", s.actor(ctx))
	return nil
}

func (s *adminService) UpsertKnowledgeNodes(ctx context.Context, rows []*knowledge.Node) (int, error) {
	if len(rows) == 0 {
		return 0, apierr.BadRequest("empty_request", fmt.Errorf("no nodes given"))
	}
	for _, row := range rows {
		if row == nil {
			return 0, apierr.BadRequest("empty_item", fmt.Errorf("null node in request"))
		}
		if row.Type == knowledge.NodeSupplement {
			return 0, apierr.BadRequest("invalid_node_type", fmt.Errorf("supplement nodes are derived from the catalog"))
		}
		if err := validate.Struct(row); err != nil {
			return 0, err
		}
	}
	if err := s.nodes.Upsert(ctx, s.db, rows); err != nil {
		return 0, fmt.Errorf("upsert knowledge nodes: %w", err)
	}
	s.graph.Invalidate(ctx)
	s.log.Info("Knowledge nodes upserted", "count", len(rows), "subject", s.actor(ctx))
	return len(rows), nil
}

func (s *adminService) UpsertKnowledgeRelationships(ctx context.Context, rows []*knowledge.Relationship) (int, error) {
	if len(rows) == 0 {
		return 0, apierr.BadRequest("empty_request", fmt.Errorf("no relationships given"))
	}
	for _, row := range rows {
		if row == nil {
			return 0, apierr.BadRequest("empty_item", fmt.Errorf("null relationship in request"))
		}
		if err := validate.Struct(row); err != nil {
			return 0, err
		}
	}
	if err := s.rels.Upsert(ctx, s.db, rows); err != nil {
		return 0, fmt.Errorf("upsert knowledge relationships: %w", err)
	}
	s.graph.Invalidate(ctx)
	s.log.Info("Knowledge relationships upserted", "count", len(rows), "subject", s.actor(ctx))
	return len(rows), nil
}

func (s *adminService) PurgeCaches(ctx context.Context) {
	s.catalog.Invalidate(ctx)
	s.graph.Invalidate(ctx)
}
