package services

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/yungbote/suplementor-backend/internal/domain/supplement"
	"github.com/yungbote/suplementor-backend/internal/modules/interaction"
	"github.com/yungbote/suplementor-backend/internal/observability"
	"github.com/yungbote/suplementor-backend/internal/platform/apierr"
	"github.com/yungbote/suplementor-backend/internal/platform/logger"
)

type InteractionService interface {
	Analyze(ctx context.Context, ids []string, severityFilter supplement.Severity) (interaction.Report, error)
}

type interactionService struct {
	log     *logger.Logger
	catalog CatalogService
	metrics *observability.Metrics
}

func NewInteractionService(log *logger.Logger, catalog CatalogService, metrics *observability.Metrics) InteractionService {
	return &interactionService{
		log:     log.With("service", "InteractionService"),
		catalog: catalog,
		metrics: metrics,
	}
}

func (s *interactionService) Analyze(ctx context.Context, ids []string, severityFilter supplement.Severity) (interaction.Report, error) {
	ctx, span := observability.Tracer().Start(ctx, "interaction.Analyze")
	defer span.End()

	if len(ids) > interaction.MaxSupplements {
		return interaction.Report{}, apierr.BadRequest("too_many_supplements", fmt.Errorf("at most %d supplements can be analyzed", interaction.MaxSupplements))
	}
	if severityFilter != "" && !severityFilter.Valid() {
		return interaction.Report{}, apierr.BadRequest("invalid_severity", fmt.Errorf("unknown severity %q", severityFilter))
	}
	found, err := s.catalog.ByIDs(ctx, ids)
	if err != nil {
		return interaction.Report{}, err
	}
	report := interaction.Analyze(found, severityFilter)
	s.metrics.IncInteractionAnalysis(string(report.OverallRisk))
	span.SetAttributes(
		attribute.Int("supplements.count", report.SupplementCount),
		attribute.String("interaction.risk", string(report.OverallRisk)),
	)
	return report, nil
}
