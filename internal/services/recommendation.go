package services

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/yungbote/suplementor-backend/internal/domain/profile"
	"github.com/yungbote/suplementor-backend/internal/modules/recommendation"
	"github.com/yungbote/suplementor-backend/internal/observability"
	"github.com/yungbote/suplementor-backend/internal/platform/apierr"
	"github.com/yungbote/suplementor-backend/internal/platform/logger"
	"github.com/yungbote/suplementor-backend/internal/platform/validate"
)

const (
	LanguageEN = "en"
	LanguagePL = "pl"
)

type RecommendationConfig struct {
	DefaultLimit int `koanf:"default_limit" validate:"gte=1"`
	MaxLimit     int `koanf:"max_limit" validate:"gtefield=DefaultLimit"`
	MaxStack     int `koanf:"max_stack" validate:"gte=1,lte=20"`
}

func DefaultRecommendationConfig() RecommendationConfig {
	return RecommendationConfig{
		DefaultLimit: recommendation.DefaultLimit,
		MaxLimit:     50,
		MaxStack:     10,
	}
}

type StackRequest struct {
	MaxSupplements int
	BudgetLimit    *float64
	Language       string
}

type RecommendationService interface {
	Recommend(ctx context.Context, p profile.UserProfile, limit int, language string) ([]recommendation.Result, error)
	BuildStack(ctx context.Context, p profile.UserProfile, req StackRequest) (recommendation.Stack, error)
	SuggestGoals(ctx context.Context, symptoms []string) []profile.Goal
	Compare(ctx context.Context, ids []string, p *profile.UserProfile) (recommendation.Comparison, error)
}

type recommendationService struct {
	log     *logger.Logger
	cfg     RecommendationConfig
	engine  *recommendation.Engine
	catalog CatalogService
	metrics *observability.Metrics
}

func NewRecommendationService(log *logger.Logger, cfg RecommendationConfig, engine *recommendation.Engine, catalog CatalogService, metrics *observability.Metrics) RecommendationService {
	if engine == nil {
		engine = recommendation.NewEngine()
	}
	return &recommendationService{
		log:     log.With("service", "RecommendationService"),
		cfg:     cfg,
		engine:  engine,
		catalog: catalog,
		metrics: metrics,
	}
}

func normalizeLanguage(lang string) (string, error) {
	switch lang {
	case "", LanguageEN:
		return LanguageEN, nil
	case LanguagePL:
		return LanguagePL, nil
	}
	return "", apierr.BadRequest("invalid_language", fmt.Errorf("language must be %q or %q", LanguageEN, LanguagePL))
}

func (s *recommendationService) Recommend(ctx context.Context, p profile.UserProfile, limit int, language string) ([]recommendation.Result, error) {
	ctx, span := observability.Tracer().Start(ctx, "recommendation.Recommend")
	defer span.End()

	lang, err := normalizeLanguage(language)
	if err != nil {
		return nil, err
	}
	if err := validate.Struct(p); err != nil {
		return nil, err
	}
	if limit < 0 {
		return nil, apierr.BadRequest("invalid_limit", fmt.Errorf("limit must not be negative"))
	}
	if limit == 0 {
		limit = s.cfg.DefaultLimit
	}
	if limit > s.cfg.MaxLimit {
		return nil, apierr.BadRequest("limit_too_large", fmt.Errorf("limit must be at most %d", s.cfg.MaxLimit))
	}

	catalog, err := s.catalog.Active(ctx)
	if err != nil {
		return nil, err
	}
	out := s.engine.Recommend(catalog, p, limit)

	scores := make([]int, 0, len(out))
	for _, r := range out {
		scores = append(scores, r.RecommendationScore)
	}
	s.metrics.ObserveRecommendations("list", lang, scores)
	span.SetAttributes(
		attribute.Int("catalog.size", len(catalog)),
		attribute.Int("recommendations.count", len(out)),
	)
	return out, nil
}

func (s *recommendationService) BuildStack(ctx context.Context, p profile.UserProfile, req StackRequest) (recommendation.Stack, error) {
	ctx, span := observability.Tracer().Start(ctx, "recommendation.BuildStack")
	defer span.End()

	lang, err := normalizeLanguage(req.Language)
	if err != nil {
		return recommendation.Stack{}, err
	}
	if err := validate.Struct(p); err != nil {
		return recommendation.Stack{}, err
	}
	size := req.MaxSupplements
	if size < 0 {
		return recommendation.Stack{}, apierr.BadRequest("invalid_stack_size", fmt.Errorf("max_supplements must not be negative"))
	}
	if size == 0 {
		size = recommendation.DefaultMaxStack
	}
	if size > s.cfg.MaxStack {
		return recommendation.Stack{}, apierr.BadRequest("stack_too_large", fmt.Errorf("max_supplements must be at most %d", s.cfg.MaxStack))
	}
	if req.BudgetLimit != nil && (*req.BudgetLimit < 0 || *req.BudgetLimit > recommendation.MaxBudget) {
		return recommendation.Stack{}, apierr.BadRequest("invalid_budget", fmt.Errorf("budget_limit must be between 0 and %.0f", recommendation.MaxBudget))
	}

	catalog, err := s.catalog.Active(ctx)
	if err != nil {
		return recommendation.Stack{}, err
	}
	st := s.engine.BuildStack(catalog, p, recommendation.StackOptions{
		MaxSize: size,
		Budget:  req.BudgetLimit,
		Polish:  lang == LanguagePL,
	})

	scores := make([]int, 0, len(st.Supplements))
	for _, r := range st.Supplements {
		scores = append(scores, r.RecommendationScore)
	}
	s.metrics.ObserveRecommendations("stack", lang, scores)
	s.metrics.ObserveStack(len(st.Supplements))
	span.SetAttributes(attribute.Int("stack.size", len(st.Supplements)))
	return st, nil
}

func (s *recommendationService) SuggestGoals(ctx context.Context, symptoms []string) []profile.Goal {
	_, span := observability.Tracer().Start(ctx, "recommendation.SuggestGoals")
	defer span.End()
	return recommendation.SuggestGoals(symptoms)
}

func (s *recommendationService) Compare(ctx context.Context, ids []string, p *profile.UserProfile) (recommendation.Comparison, error) {
	ctx, span := observability.Tracer().Start(ctx, "recommendation.Compare")
	defer span.End()

	if len(ids) > recommendation.MaxCompare {
		return recommendation.Comparison{}, apierr.BadRequest("too_many_supplements", fmt.Errorf("at most %d supplements can be compared", recommendation.MaxCompare))
	}
	if p != nil {
		if err := validate.Struct(p); err != nil {
			return recommendation.Comparison{}, err
		}
	}
	found, err := s.catalog.ByIDs(ctx, ids)
	if err != nil {
		return recommendation.Comparison{}, err
	}
	return s.engine.Compare(found, p), nil
}
