package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"gorm.io/datatypes"

	"github.com/yungbote/suplementor-backend/internal/data/repos"
	"github.com/yungbote/suplementor-backend/internal/domain/knowledge"
	"github.com/yungbote/suplementor-backend/internal/domain/profile"
	"github.com/yungbote/suplementor-backend/internal/domain/supplement"
	"github.com/yungbote/suplementor-backend/internal/modules/interaction"
	"github.com/yungbote/suplementor-backend/internal/modules/knowledgegraph"
	"github.com/yungbote/suplementor-backend/internal/modules/recommendation"
	"github.com/yungbote/suplementor-backend/internal/platform/apierr"
	"github.com/yungbote/suplementor-backend/internal/platform/cache"
	"github.com/yungbote/suplementor-backend/internal/platform/logger"
)

func testSupplement(id string, cat supplement.Category, tags ...string) *supplement.Supplement {
	return &supplement.Supplement{
		ID:            id,
		Name:          id,
		PolishName:    id + "-pl",
		Category:      cat,
		EvidenceLevel: supplement.EvidenceModerate,
		Tags:          datatypes.JSONSlice[string](tags),
		Dosage: datatypes.NewJSONType(supplement.DosageGuidelines{
			StandardDose: &supplement.StandardDose{Amount: 100, Unit: "mg", Frequency: "daily"},
		}),
		IsActive: true,
	}
}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()
	var ae *apierr.Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected *apierr.Error with status %d, got %v", status, err)
	}
	if ae.Status != status {
		t.Fatalf("expected status %d, got %d (%v)", status, ae.Status, err)
	}
}

type fixture struct {
	sups    *fakeSupplementRepo
	nodes   *fakeNodeRepo
	rels    *fakeRelRepo
	catalog CatalogService
	graph   KnowledgeGraphService
}

func newFixture(rows ...*supplement.Supplement) *fixture {
	log := logger.Nop()
	f := &fixture{
		sups:  newFakeSupplementRepo(rows...),
		nodes: &fakeNodeRepo{},
		rels:  &fakeRelRepo{},
	}
	f.catalog = NewCatalogService(nil, log, f.sups, cache.NewLRU[[]*supplement.Supplement]("catalog", 8, time.Minute, nil))
	f.graph = NewKnowledgeGraphService(nil, log, f.catalog, f.nodes, f.rels, nil, cache.NewLRU[knowledge.Graph]("graph", 8, time.Minute, nil), nil)
	return f
}

func TestCatalog_ActiveIsCachedUntilInvalidated(t *testing.T) {
	f := newFixture(testSupplement("a", supplement.CategoryVitamin), testSupplement("b", supplement.CategoryHerb))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		rows, err := f.catalog.Active(ctx)
		if err != nil || len(rows) != 2 {
			t.Fatalf("Active: %d / %v", len(rows), err)
		}
	}
	if f.sups.lists() != 1 {
		t.Fatalf("expected 1 repo load, got %d", f.sups.lists())
	}
	f.catalog.Invalidate(ctx)
	if _, err := f.catalog.Active(ctx); err != nil {
		t.Fatalf("Active: %v", err)
	}
	if f.sups.lists() != 2 {
		t.Fatalf("expected reload after invalidate, got %d loads", f.sups.lists())
	}
}

func TestCatalog_GetAndListErrors(t *testing.T) {
	f := newFixture(testSupplement("a", supplement.CategoryVitamin))
	ctx := context.Background()

	if _, err := f.catalog.Get(ctx, "missing"); err == nil {
		t.Fatalf("expected not found")
	} else {
		requireStatus(t, err, http.StatusNotFound)
	}
	if s, err := f.catalog.Get(ctx, " a "); err != nil || s.ID != "a" {
		t.Fatalf("Get trimmed id: %+v / %v", s, err)
	}
	_, err := f.catalog.List(ctx, repos.SupplementFilter{Category: "BOGUS"})
	requireStatus(t, err, http.StatusBadRequest)
	_, err = f.catalog.List(ctx, repos.SupplementFilter{MinEvidence: "SOMEWHAT"})
	requireStatus(t, err, http.StatusBadRequest)
}

func newRecommendationService(f *fixture) RecommendationService {
	return NewRecommendationService(logger.Nop(), DefaultRecommendationConfig(), recommendation.NewEngine(), f.catalog, nil)
}

func TestRecommendation_Recommend(t *testing.T) {
	f := newFixture(
		testSupplement("memo", supplement.CategoryNootropic, "memory"),
		testSupplement("other", supplement.CategoryMineral),
	)
	svc := newRecommendationService(f)
	ctx := context.Background()
	p := profile.UserProfile{Age: 30, HealthGoals: []profile.Goal{profile.GoalMemoryImprovement}}

	out, err := svc.Recommend(ctx, p, 0, "pl")
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(out) != 2 || out[0].SupplementID != "memo" {
		t.Fatalf("expected memo first, got %+v", out)
	}

	_, err = svc.Recommend(ctx, p, 500, "")
	requireStatus(t, err, http.StatusBadRequest)
	_, err = svc.Recommend(ctx, p, -1, "")
	requireStatus(t, err, http.StatusBadRequest)
	_, err = svc.Recommend(ctx, p, 1, "de")
	requireStatus(t, err, http.StatusBadRequest)

	_, err = svc.Recommend(ctx, profile.UserProfile{Age: 5}, 1, "")
	requireStatus(t, err, http.StatusBadRequest)
	var ae *apierr.Error
	errors.As(err, &ae)
	if ae.Code != "validation_failed" || ae.Details == nil {
		t.Fatalf("expected validation details, got %+v", ae)
	}
}

func TestRecommendation_BuildStackAndCompare(t *testing.T) {
	f := newFixture(
		testSupplement("memo", supplement.CategoryNootropic, "memory"),
		testSupplement("other", supplement.CategoryMineral),
	)
	svc := newRecommendationService(f)
	ctx := context.Background()
	p := profile.UserProfile{Age: 30, HealthGoals: []profile.Goal{profile.GoalMemoryImprovement}}

	st, err := svc.BuildStack(ctx, p, StackRequest{MaxSupplements: 1, Language: "pl"})
	if err != nil {
		t.Fatalf("BuildStack: %v", err)
	}
	if len(st.Supplements) != 1 || st.PolishName == "" {
		t.Fatalf("unexpected stack: %+v", st)
	}
	_, err = svc.BuildStack(ctx, p, StackRequest{MaxSupplements: 99})
	requireStatus(t, err, http.StatusBadRequest)
	neg := -1.0
	_, err = svc.BuildStack(ctx, p, StackRequest{BudgetLimit: &neg})
	requireStatus(t, err, http.StatusBadRequest)
	tooMuch := 5000.0
	_, err = svc.BuildStack(ctx, p, StackRequest{MaxSupplements: 1, BudgetLimit: &tooMuch})
	requireStatus(t, err, http.StatusBadRequest)
	_, err = svc.BuildStack(ctx, p, StackRequest{MaxSupplements: -1})
	requireStatus(t, err, http.StatusBadRequest)
	ceiling := 1000.0
	if _, err = svc.BuildStack(ctx, p, StackRequest{MaxSupplements: 1, BudgetLimit: &ceiling}); err != nil {
		t.Fatalf("budget at the ceiling should be accepted: %v", err)
	}

	cmp, err := svc.Compare(ctx, []string{"memo"}, nil)
	if err != nil || cmp.Message == "" || len(cmp.Supplements) != 0 {
		t.Fatalf("expected insufficient-input comparison, got %+v / %v", cmp, err)
	}
	cmp, err = svc.Compare(ctx, []string{"memo", "other", "ghost"}, &p)
	if err != nil || len(cmp.Supplements) != 2 || cmp.Supplements[0].RecommendationScore == nil {
		t.Fatalf("unexpected comparison: %+v / %v", cmp, err)
	}
	_, err = svc.Compare(ctx, []string{"1", "2", "3", "4", "5", "6"}, nil)
	requireStatus(t, err, http.StatusBadRequest)

	goals := svc.SuggestGoals(ctx, []string{"stress"})
	if len(goals) != 1 || goals[0] != profile.GoalStressReduction {
		t.Fatalf("unexpected goals: %v", goals)
	}
}

func TestInteraction_Analyze(t *testing.T) {
	a := testSupplement("a", supplement.CategoryHerb)
	a.Interactions = datatypes.JSONSlice[supplement.Interaction]{
		{Substance: "B", SubstanceID: "b", Type: supplement.InteractionAntagonistic, Severity: supplement.SeveritySevere, Description: "bad"},
	}
	b := testSupplement("b", supplement.CategoryHerb)
	f := newFixture(a, b)
	svc := NewInteractionService(logger.Nop(), f.catalog, nil)
	ctx := context.Background()

	rep, err := svc.Analyze(ctx, []string{"a", "b"}, "")
	if err != nil || rep.OverallRisk != interaction.RiskHigh || len(rep.Interactions) != 1 {
		t.Fatalf("unexpected report: %+v / %v", rep, err)
	}
	rep, err = svc.Analyze(ctx, []string{"a"}, "")
	if err != nil || rep.OverallRisk != interaction.RiskNone || rep.Message == "" {
		t.Fatalf("expected insufficient-input report, got %+v / %v", rep, err)
	}
	_, err = svc.Analyze(ctx, []string{"a", "b"}, "catastrophic")
	requireStatus(t, err, http.StatusBadRequest)
	_, err = svc.Analyze(ctx, make([]string, interaction.MaxSupplements+1), "")
	requireStatus(t, err, http.StatusBadRequest)
}

func TestKnowledgeGraph_GraphCachesAndInvalidates(t *testing.T) {
	f := newFixture(testSupplement("a", supplement.CategoryHerb))
	ctx := context.Background()
	_ = f.nodes.Upsert(ctx, nil, []*knowledge.Node{{ID: "memory", Type: knowledge.NodeCognitiveFunction, Name: "Memory"}})

	g, err := f.graph.Graph(ctx, knowledgegraph.Options{})
	if err != nil {
		t.Fatalf("Graph: %v", err)
	}
	if g.Stats.NodeCount != 2 {
		t.Fatalf("expected base node + supplement node, got %+v", g.Stats)
	}

	_ = f.nodes.Upsert(ctx, nil, []*knowledge.Node{{ID: "mood", Type: knowledge.NodeCognitiveFunction, Name: "Mood"}})
	g, _ = f.graph.Graph(ctx, knowledgegraph.Options{})
	if g.Stats.NodeCount != 2 {
		t.Fatalf("expected cached graph, got %+v", g.Stats)
	}
	f.graph.Invalidate(ctx)
	g, _ = f.graph.Graph(ctx, knowledgegraph.Options{})
	if g.Stats.NodeCount != 3 {
		t.Fatalf("expected refreshed graph, got %+v", g.Stats)
	}

	_, err = f.graph.Graph(ctx, knowledgegraph.Options{NodeTypes: []knowledge.NodeType{"GALAXY"}})
	requireStatus(t, err, http.StatusBadRequest)
	_, err = f.graph.Graph(ctx, knowledgegraph.Options{MaxNodes: knowledgegraph.NodeCap + 1})
	requireStatus(t, err, http.StatusBadRequest)

	res, err := f.graph.Sync(ctx, true)
	if err != nil || !res.Skipped {
		t.Fatalf("expected skipped sync without neo4j, got %+v / %v", res, err)
	}
}

func TestGraphKey_IgnoresTypeOrder(t *testing.T) {
	a := graphKey(knowledgegraph.Options{NodeTypes: []knowledge.NodeType{knowledge.NodePathway, knowledge.NodeBrainRegion}})
	b := graphKey(knowledgegraph.Options{NodeTypes: []knowledge.NodeType{knowledge.NodeBrainRegion, knowledge.NodePathway}})
	if a != b {
		t.Fatalf("keys differ: %q vs %q", a, b)
	}
}

func TestAdmin_UpsertDeleteAndPurge(t *testing.T) {
	f := newFixture(testSupplement("a", supplement.CategoryHerb))
	admin := NewAdminService(nil, logger.Nop(), f.sups, f.nodes, f.rels, f.catalog, f.graph)
	ctx := context.Background()

	if rows, _ := f.catalog.Active(ctx); len(rows) != 1 {
		t.Fatalf("expected warm catalog of 1")
	}
	n, err := admin.UpsertSupplements(ctx, []*supplement.Supplement{testSupplement("b", supplement.CategoryVitamin)})
	if err != nil || n != 1 {
		t.Fatalf("UpsertSupplements: %d / %v", n, err)
	}
	if rows, _ := f.catalog.Active(ctx); len(rows) != 2 {
		t.Fatalf("expected cache purge after upsert, got %d rows", len(rows))
	}

	bad := testSupplement("c", "SPACE_DUST")
	_, err = admin.UpsertSupplements(ctx, []*supplement.Supplement{bad})
	requireStatus(t, err, http.StatusBadRequest)

	if err := admin.DeleteSupplement(ctx, "a"); err != nil {
		t.Fatalf("DeleteSupplement: %v", err)
	}
	requireStatus(t, admin.DeleteSupplement(ctx, "a"), http.StatusNotFound)

	_, err = admin.UpsertKnowledgeNodes(ctx, []*knowledge.Node{{ID: "x", Type: knowledge.NodeSupplement, Name: "X"}})
	requireStatus(t, err, http.StatusBadRequest)
	if n, err := admin.UpsertKnowledgeNodes(ctx, []*knowledge.Node{{ID: "x", Type: knowledge.NodePathway, Name: "X"}}); err != nil || n != 1 {
		t.Fatalf("UpsertKnowledgeNodes: %d / %v", n, err)
	}
	_, err = admin.UpsertKnowledgeRelationships(ctx, []*knowledge.Relationship{{ID: "r", SourceID: "x", TargetID: "y", Type: "LOVES"}})
	requireStatus(t, err, http.StatusBadRequest)
}
