package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/suplementor-backend/internal/data/db"
	httpMW "github.com/yungbote/suplementor-backend/internal/http/middleware"
	"github.com/yungbote/suplementor-backend/internal/platform/logger"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := defaultConfig()
	cfg.Database.Driver = db.DriverSQLite
	cfg.Database.SQLitePath = "file:" + t.Name() + "?mode=memory&cache=shared"
	cfg.Database.Seed = true
	cfg.Admin.JWTSecret = "test-secret"
	cfg.Metrics.Namespace = "apptest"

	a, err := NewWithOptions(context.Background(), Options{Config: &cfg, Log: logger.Nop()})
	if err != nil {
		t.Fatalf("NewWithOptions: %v", err)
	}
	t.Cleanup(a.Close)
	return a
}

func serve(a *App, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	return w
}

func TestAppServesSeededCatalog(t *testing.T) {
	a := newTestApp(t)

	w := serve(a, httptest.NewRequest(http.MethodGet, "/api/supplements/omega-3", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body struct {
		Supplement struct {
			ID         string `json:"id"`
			PolishName string `json:"polish_name"`
		} `json:"supplement"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Supplement.ID != "omega-3" || body.Supplement.PolishName == "" {
		t.Fatalf("unexpected supplement: %+v", body.Supplement)
	}

	w = serve(a, httptest.NewRequest(http.MethodGet, "/api/knowledge-graph?max_nodes=50", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected graph 200, got %d: %s", w.Code, w.Body.String())
	}
	var graph struct {
		Nodes []struct {
			ID string `json:"id"`
		} `json:"nodes"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &graph); err != nil {
		t.Fatalf("decode graph: %v", err)
	}
	if len(graph.Nodes) == 0 {
		t.Fatalf("expected a projected graph from seed data")
	}
}

func TestAppHealthAndMetrics(t *testing.T) {
	a := newTestApp(t)

	if w := serve(a, httptest.NewRequest(http.MethodGet, "/healthcheck", nil)); w.Code != http.StatusOK {
		t.Fatalf("expected healthy, got %d", w.Code)
	}
	if w := serve(a, httptest.NewRequest(http.MethodGet, "/metrics", nil)); w.Code != http.StatusOK {
		t.Fatalf("expected metrics 200, got %d", w.Code)
	}
}

func TestAppAdminRequiresToken(t *testing.T) {
	a := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/cache/purge", nil)
	if w := serve(a, req); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	token, err := httpMW.IssueAdminToken(a.Cfg.Admin.JWTSecret, "ops", time.Minute)
	if err != nil {
		t.Fatalf("IssueAdminToken: %v", err)
	}
	req = httptest.NewRequest(http.MethodPost, "/api/admin/cache/purge", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	if w := serve(a, req); w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/api/admin/knowledge-graph/sync", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := serve(a, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected sync 200, got %d: %s", w.Code, w.Body.String())
	}
}
