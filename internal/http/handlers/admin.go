package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/suplementor-backend/internal/domain/knowledge"
	"github.com/yungbote/suplementor-backend/internal/domain/supplement"
	"github.com/yungbote/suplementor-backend/internal/http/response"
	"github.com/yungbote/suplementor-backend/internal/services"
)

type AdminHandler struct {
	admin services.AdminService
	graph services.KnowledgeGraphService
}

func NewAdminHandler(admin services.AdminService, graph services.KnowledgeGraphService) *AdminHandler {
	return &AdminHandler{admin: admin, graph: graph}
}

// supplementUpsert distinguishes an omitted is_active from an explicit false.
type supplementUpsert struct {
	supplement.Supplement
	IsActive *bool `json:"is_active"`
}

// PUT /api/admin/supplements
func (h *AdminHandler) UpsertSupplements(c *gin.Context) {
	var req struct {
		Supplements []*supplementUpsert `json:"supplements"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	rows := make([]*supplement.Supplement, 0, len(req.Supplements))
	for _, in := range req.Supplements {
		if in == nil {
			rows = append(rows, nil)
			continue
		}
		row := in.Supplement
		row.IsActive = in.IsActive == nil || *in.IsActive
		rows = append(rows, &row)
	}
	n, err := h.admin.UpsertSupplements(c.Request.Context(), rows)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"upserted": n})
}

// DELETE /api/admin/supplements/:id
func (h *AdminHandler) DeleteSupplement(c *gin.Context) {
	if err := h.admin.DeleteSupplement(c.Request.Context(), c.Param("id")); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PUT /api/admin/knowledge/nodes
func (h *AdminHandler) UpsertNodes(c *gin.Context) {
	var req struct {
		Nodes []*knowledge.Node `json:"nodes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	n, err := h.admin.UpsertKnowledgeNodes(c.Request.Context(), req.Nodes)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"upserted": n})
}

// PUT /api/admin/knowledge/relationships
func (h *AdminHandler) UpsertRelationships(c *gin.Context) {
	var req struct {
		Relationships []*knowledge.Relationship `json:"relationships"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	n, err := h.admin.UpsertKnowledgeRelationships(c.Request.Context(), req.Relationships)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"upserted": n})
}

// POST /api/admin/knowledge-graph/sync
func (h *AdminHandler) SyncGraph(c *gin.Context) {
	var req struct {
		Prune bool `json:"prune"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
			return
		}
	}
	res, err := h.graph.Sync(c.Request.Context(), req.Prune)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, res)
}

// POST /api/admin/cache/purge
func (h *AdminHandler) PurgeCaches(c *gin.Context) {
	h.admin.PurgeCaches(c.Request.Context())
	c.Status(http.StatusNoContent)
}
