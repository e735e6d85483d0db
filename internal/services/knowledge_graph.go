package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/suplementor-backend/internal/data/graph"
	"github.com/yungbote/suplementor-backend/internal/data/repos"
	"github.com/yungbote/suplementor-backend/internal/domain/knowledge"
	"github.com/yungbote/suplementor-backend/internal/domain/supplement"
	"github.com/yungbote/suplementor-backend/internal/modules/knowledgegraph"
	"github.com/yungbote/suplementor-backend/internal/observability"
	"github.com/yungbote/suplementor-backend/internal/platform/apierr"
	"github.com/yungbote/suplementor-backend/internal/platform/cache"
	"github.com/yungbote/suplementor-backend/internal/platform/logger"
	"github.com/yungbote/suplementor-backend/internal/platform/neo4jdb"
)

type KnowledgeGraphService interface {
	Graph(ctx context.Context, opts knowledgegraph.Options) (knowledge.Graph, error)
	// Sync mirrors the full projection into Neo4j.
	Sync(ctx context.Context, prune bool) (graph.SyncResult, error)
	Invalidate(ctx context.Context)
}

type knowledgeGraphService struct {
	db      *gorm.DB
	log     *logger.Logger
	catalog CatalogService
	nodes   repos.KnowledgeNodeRepo
	rels    repos.KnowledgeRelationshipRepo
	neo     *neo4jdb.Client
	cache   cache.Cache[knowledge.Graph]
	metrics *observability.Metrics
}

func NewKnowledgeGraphService(
	db *gorm.DB,
	log *logger.Logger,
	catalog CatalogService,
	nodes repos.KnowledgeNodeRepo,
	rels repos.KnowledgeRelationshipRepo,
	neo *neo4jdb.Client,
	c cache.Cache[knowledge.Graph],
	metrics *observability.Metrics,
) KnowledgeGraphService {
	if c == nil {
		c = cache.Noop[knowledge.Graph]{}
	}
	return &knowledgeGraphService{
		db:      db,
		log:     log.With("service", "KnowledgeGraphService"),
		catalog: catalog,
		nodes:   nodes,
		rels:    rels,
		neo:     neo,
		cache:   c,
		metrics: metrics,
	}
}

func validateGraphOptions(opts knowledgegraph.Options) error {
	if opts.MinEvidence != "" && !opts.MinEvidence.Valid() {
		return apierr.BadRequest("invalid_evidence_level", fmt.Errorf("unknown evidence level %q", opts.MinEvidence))
	}
	if opts.MaxNodes < 0 || opts.MaxNodes > knowledgegraph.NodeCap {
		return apierr.BadRequest("invalid_max_nodes", fmt.Errorf("max_nodes must be between 1 and %d", knowledgegraph.NodeCap))
	}
	for _, t := range opts.NodeTypes {
		if !t.Valid() {
			return apierr.BadRequest("invalid_node_type", fmt.Errorf("unknown node type %q", t))
		}
	}
	return nil
}

// graphKey is stable under reordering of node types.
func graphKey(opts knowledgegraph.Options) string {
	types := make([]string, 0, len(opts.NodeTypes))
	for _, t := range opts.NodeTypes {
		types = append(types, string(t))
	}
	sort.Strings(types)
	return fmt.Sprintf("%s|%d|%s", opts.MinEvidence, opts.MaxNodes, strings.Join(types, ","))
}

// load fetches the catalog and the curated base concurrently.
func (s *knowledgeGraphService) load(ctx context.Context) ([]*supplement.Supplement, knowledge.Base, error) {
	var (
		sups  []*supplement.Supplement
		nodes []knowledge.Node
		rels  []knowledge.Relationship
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sups, err = s.catalog.Active(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		nodes, err = s.nodes.List(gctx, s.db)
		if err != nil {
			return fmt.Errorf("list knowledge nodes: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		rels, err = s.rels.List(gctx, s.db)
		if err != nil {
			return fmt.Errorf("list knowledge relationships: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, knowledge.Base{}, err
	}
	return sups, knowledge.Base{Nodes: nodes, Relationships: rels}, nil
}

func (s *knowledgeGraphService) Graph(ctx context.Context, opts knowledgegraph.Options) (knowledge.Graph, error) {
	ctx, span := observability.Tracer().Start(ctx, "knowledgegraph.Graph")
	defer span.End()

	if err := validateGraphOptions(opts); err != nil {
		return knowledge.Graph{}, err
	}
	key := graphKey(opts)
	if g, ok := s.cache.Get(ctx, key); ok {
		return g, nil
	}

	sups, base, err := s.load(ctx)
	if err != nil {
		return knowledge.Graph{}, err
	}
	g := knowledgegraph.Project(sups, base, opts)
	s.cache.Set(ctx, key, g)

	s.metrics.ObserveGraph(g.Stats.NodeCount, g.Stats.RelationshipCount, g.Stats.DroppedRelationships, g.Stats.FuzzyMatches)
	if g.Stats.DroppedRelationships > 0 {
		s.log.Debug("Projection dropped relationships", "dropped", g.Stats.DroppedRelationships, "trimmed_nodes", g.Stats.TrimmedNodes)
	}
	span.SetAttributes(
		attribute.Int("graph.nodes", g.Stats.NodeCount),
		attribute.Int("graph.relationships", g.Stats.RelationshipCount),
	)
	return g, nil
}

func (s *knowledgeGraphService) Sync(ctx context.Context, prune bool) (graph.SyncResult, error) {
	ctx, span := observability.Tracer().Start(ctx, "knowledgegraph.Sync")
	defer span.End()

	if s.neo == nil {
		s.metrics.IncGraphSync("skipped")
		return graph.SyncResult{Skipped: true}, nil
	}
	sups, base, err := s.load(ctx)
	if err != nil {
		return graph.SyncResult{}, err
	}
	g := knowledgegraph.Project(sups, base, knowledgegraph.Options{
		MinEvidence: supplement.EvidenceConflicting,
		MaxNodes:    knowledgegraph.NodeCap,
	})
	res, err := graph.UpsertKnowledgeGraph(ctx, s.neo, s.log, g, prune)
	if err != nil {
		s.metrics.IncGraphSync("error")
		return graph.SyncResult{}, err
	}
	s.metrics.IncGraphSync("ok")
	span.SetAttributes(
		attribute.Int("graph.nodes", res.Nodes),
		attribute.Int("graph.pruned", res.Pruned),
	)
	return res, nil
}

func (s *knowledgeGraphService) Invalidate(ctx context.Context) {
	s.cache.Purge(ctx)
}
