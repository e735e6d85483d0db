package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/suplementor-backend/internal/data/graph"
	"github.com/yungbote/suplementor-backend/internal/data/repos"
	"github.com/yungbote/suplementor-backend/internal/domain/knowledge"
	"github.com/yungbote/suplementor-backend/internal/domain/profile"
	"github.com/yungbote/suplementor-backend/internal/domain/supplement"
	"github.com/yungbote/suplementor-backend/internal/modules/interaction"
	"github.com/yungbote/suplementor-backend/internal/modules/knowledgegraph"
	"github.com/yungbote/suplementor-backend/internal/modules/recommendation"
	"github.com/yungbote/suplementor-backend/internal/platform/apierr"
	"github.com/yungbote/suplementor-backend/internal/services"
)

type fakeCatalog struct {
	lastFilter repos.SupplementFilter
}

func (f *fakeCatalog) List(_ context.Context, filter repos.SupplementFilter) ([]*supplement.Supplement, error) {
	f.lastFilter = filter
	return []*supplement.Supplement{{ID: "omega-3"}}, nil
}

func (f *fakeCatalog) Get(_ context.Context, id string) (*supplement.Supplement, error) {
	if id != "omega-3" {
		return nil, apierr.NotFound("supplement", id)
	}
	return &supplement.Supplement{ID: id}, nil
}

func (f *fakeCatalog) Active(context.Context) ([]*supplement.Supplement, error) { return nil, nil }
func (f *fakeCatalog) ByIDs(context.Context, []string) ([]*supplement.Supplement, error) {
	return nil, nil
}
func (f *fakeCatalog) Invalidate(context.Context) {}

type fakeRecommendations struct {
	gotProfile profile.UserProfile
	gotStack   services.StackRequest
}

func (f *fakeRecommendations) Recommend(_ context.Context, p profile.UserProfile, limit int, _ string) ([]recommendation.Result, error) {
	f.gotProfile = p
	if p.Age == 0 {
		return nil, apierr.Validation([]string{"age"})
	}
	return []recommendation.Result{{SupplementID: "omega-3", RecommendationScore: 65}}, nil
}

func (f *fakeRecommendations) BuildStack(_ context.Context, _ profile.UserProfile, req services.StackRequest) (recommendation.Stack, error) {
	f.gotStack = req
	return recommendation.Stack{Name: "Personalized Stack"}, nil
}

func (f *fakeRecommendations) SuggestGoals(_ context.Context, symptoms []string) []profile.Goal {
	return recommendation.SuggestGoals(symptoms)
}

func (f *fakeRecommendations) Compare(_ context.Context, ids []string, _ *profile.UserProfile) (recommendation.Comparison, error) {
	return recommendation.Comparison{Supplements: make([]recommendation.ComparisonEntry, len(ids))}, nil
}

type fakeInteractions struct {
	gotSeverity supplement.Severity
}

func (f *fakeInteractions) Analyze(_ context.Context, ids []string, sev supplement.Severity) (interaction.Report, error) {
	f.gotSeverity = sev
	return interaction.Report{OverallRisk: interaction.RiskLow, SupplementCount: len(ids)}, nil
}

type fakeGraph struct {
	gotOpts knowledgegraph.Options
	pruned  bool
}

func (f *fakeGraph) Graph(_ context.Context, opts knowledgegraph.Options) (knowledge.Graph, error) {
	f.gotOpts = opts
	return knowledge.Graph{Stats: knowledge.Stats{NodeCount: 3}}, nil
}

func (f *fakeGraph) Sync(_ context.Context, prune bool) (graph.SyncResult, error) {
	f.pruned = prune
	return graph.SyncResult{Skipped: true}, nil
}

func (f *fakeGraph) Invalidate(context.Context) {}

func serve(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestSupplementHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cat := &fakeCatalog{}
	h := NewSupplementHandler(cat, &fakeRecommendations{})
	r := gin.New()
	r.GET("/api/supplements", h.List)
	r.GET("/api/supplements/:id", h.Get)
	r.POST("/api/supplements/compare", h.Compare)

	rec := serve(r, http.MethodGet, "/api/supplements?category=vitamin&min_evidence=strong&limit=5", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: %d %s", rec.Code, rec.Body.String())
	}
	if cat.lastFilter.Category != supplement.CategoryVitamin || cat.lastFilter.MinEvidence != supplement.EvidenceStrong || cat.lastFilter.Limit != 5 {
		t.Fatalf("query not mapped to filter: %+v", cat.lastFilter)
	}
	if rec := serve(r, http.MethodGet, "/api/supplements?limit=abc", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad limit: expected 400, got %d", rec.Code)
	}

	if rec := serve(r, http.MethodGet, "/api/supplements/omega-3", nil); rec.Code != http.StatusOK {
		t.Fatalf("get: %d", rec.Code)
	}
	rec = serve(r, http.MethodGet, "/api/supplements/ghost", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get missing: expected 404, got %d", rec.Code)
	}

	rec = serve(r, http.MethodPost, "/api/supplements/compare", map[string]any{"supplement_ids": []string{"a", "b"}})
	var cmp recommendation.Comparison
	if err := json.Unmarshal(rec.Body.Bytes(), &cmp); err != nil || rec.Code != http.StatusOK || len(cmp.Supplements) != 2 {
		t.Fatalf("compare: %d %s", rec.Code, rec.Body.String())
	}
}

func TestRecommendationHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	fr := &fakeRecommendations{}
	h := NewRecommendationHandler(fr)
	r := gin.New()
	r.POST("/api/recommendations", h.Recommend)
	r.POST("/api/recommendations/stack", h.BuildStack)
	r.POST("/api/recommendations/goals/suggest", h.SuggestGoals)

	rec := serve(r, http.MethodPost, "/api/recommendations", map[string]any{
		"user_profile": map[string]any{"age": 30, "health_goals": []string{"memory_improvement"}},
		"limit":        3,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("recommend: %d %s", rec.Code, rec.Body.String())
	}
	if fr.gotProfile.Age != 30 || len(fr.gotProfile.HealthGoals) != 1 {
		t.Fatalf("profile not decoded: %+v", fr.gotProfile)
	}

	rec = serve(r, http.MethodPost, "/api/recommendations", map[string]any{"user_profile": map[string]any{}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid profile: expected 400, got %d", rec.Code)
	}
	var env struct {
		Error struct {
			Code    string `json:"code"`
			Details any    `json:"details"`
		} `json:"error"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	if env.Error.Code != "validation_failed" || env.Error.Details == nil {
		t.Fatalf("expected validation envelope, got %s", rec.Body.String())
	}

	rec = serve(r, http.MethodPost, "/api/recommendations/stack", map[string]any{
		"user_profile":    map[string]any{"age": 30},
		"max_supplements": 3,
		"budget_limit":    40.5,
		"language":        "pl",
	})
	if rec.Code != http.StatusOK || fr.gotStack.MaxSupplements != 3 || fr.gotStack.BudgetLimit == nil || *fr.gotStack.BudgetLimit != 40.5 || fr.gotStack.Language != "pl" {
		t.Fatalf("stack request not mapped: %d %+v", rec.Code, fr.gotStack)
	}

	rec = serve(r, http.MethodPost, "/api/recommendations/goals/suggest", map[string]any{"symptoms": []string{"stres"}})
	var goals struct {
		Goals []profile.Goal `json:"goals"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &goals)
	if rec.Code != http.StatusOK || len(goals.Goals) != 1 || goals.Goals[0] != profile.GoalStressReduction {
		t.Fatalf("suggest: %d %s", rec.Code, rec.Body.String())
	}

	req := httptest.NewRequest(http.MethodPost, "/api/recommendations", bytes.NewBufferString("{not json"))
	bad := httptest.NewRecorder()
	r.ServeHTTP(bad, req)
	if bad.Code != http.StatusBadRequest {
		t.Fatalf("malformed body: expected 400, got %d", bad.Code)
	}
}

func TestInteractionAndGraphHandlers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	fi := &fakeInteractions{}
	fg := &fakeGraph{}
	r := gin.New()
	r.POST("/api/interactions/analyze", NewInteractionHandler(fi).Analyze)
	r.GET("/api/knowledge-graph", NewKnowledgeGraphHandler(fg).Get)
	r.POST("/api/admin/knowledge-graph/sync", NewAdminHandler(nil, fg).SyncGraph)

	rec := serve(r, http.MethodPost, "/api/interactions/analyze", map[string]any{"supplement_ids": []string{"a", "b"}, "severity_filter": "SEVERE"})
	if rec.Code != http.StatusOK || fi.gotSeverity != supplement.SeveritySevere {
		t.Fatalf("analyze: %d severity=%q", rec.Code, fi.gotSeverity)
	}

	rec = serve(r, http.MethodGet, "/api/knowledge-graph?min_evidence=moderate&max_nodes=50&types=pathway,%20brain_region", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("graph: %d", rec.Code)
	}
	if fg.gotOpts.MinEvidence != supplement.EvidenceModerate || fg.gotOpts.MaxNodes != 50 || len(fg.gotOpts.NodeTypes) != 2 || fg.gotOpts.NodeTypes[1] != knowledge.NodeBrainRegion {
		t.Fatalf("graph options not mapped: %+v", fg.gotOpts)
	}
	if rec := serve(r, http.MethodGet, "/api/knowledge-graph?max_nodes=lots", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad max_nodes: expected 400, got %d", rec.Code)
	}

	rec = serve(r, http.MethodPost, "/api/admin/knowledge-graph/sync", map[string]any{"prune": true})
	if rec.Code != http.StatusOK || !fg.pruned {
		t.Fatalf("sync: %d pruned=%v", rec.Code, fg.pruned)
	}
}

type fakeAdmin struct {
	got []*supplement.Supplement
}

func (f *fakeAdmin) UpsertSupplements(_ context.Context, rows []*supplement.Supplement) (int, error) {
	f.got = rows
	return len(rows), nil
}
func (f *fakeAdmin) DeleteSupplement(context.Context, string) error { return nil }
func (f *fakeAdmin) UpsertKnowledgeNodes(context.Context, []*knowledge.Node) (int, error) {
	return 0, nil
}
func (f *fakeAdmin) UpsertKnowledgeRelationships(context.Context, []*knowledge.Relationship) (int, error) {
	return 0, nil
}
func (f *fakeAdmin) PurgeCaches(context.Context) {}

func TestAdminUpsertSupplementsDefaultsActive(t *testing.T) {
	gin.SetMode(gin.TestMode)
	fa := &fakeAdmin{}
	r := gin.New()
	r.PUT("/api/admin/supplements", NewAdminHandler(fa, nil).UpsertSupplements)

	body := map[string]any{"supplements": []map[string]any{
		{"id": "creatine", "name": "Creatine"},
		{"id": "kava", "name": "Kava", "is_active": false},
		{"id": "zinc", "name": "Zinc", "is_active": true},
	}}
	rec := serve(r, http.MethodPut, "/api/admin/supplements", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(fa.got) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(fa.got))
	}
	if !fa.got[0].IsActive || fa.got[0].ID != "creatine" || fa.got[0].Name != "Creatine" {
		t.Fatalf("omitted is_active must default to active: %+v", fa.got[0])
	}
	if fa.got[1].IsActive {
		t.Fatalf("explicit is_active=false must be kept")
	}
	if !fa.got[2].IsActive {
		t.Fatalf("explicit is_active=true must be kept")
	}
}
