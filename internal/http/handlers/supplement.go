package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/suplementor-backend/internal/data/repos"
	"github.com/yungbote/suplementor-backend/internal/domain/profile"
	"github.com/yungbote/suplementor-backend/internal/domain/supplement"
	"github.com/yungbote/suplementor-backend/internal/http/response"
	"github.com/yungbote/suplementor-backend/internal/services"
)

type SupplementHandler struct {
	catalog         services.CatalogService
	recommendations services.RecommendationService
}

func NewSupplementHandler(catalog services.CatalogService, recommendations services.RecommendationService) *SupplementHandler {
	return &SupplementHandler{catalog: catalog, recommendations: recommendations}
}

// GET /api/supplements
func (h *SupplementHandler) List(c *gin.Context) {
	filter := repos.SupplementFilter{
		Category:    supplement.Category(strings.ToUpper(strings.TrimSpace(c.Query("category")))),
		MinEvidence: supplement.EvidenceLevel(strings.ToUpper(strings.TrimSpace(c.Query("min_evidence")))),
	}
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			response.RespondError(c, http.StatusBadRequest, "invalid_limit", err)
			return
		}
		filter.Limit = n
	}
	rows, err := h.catalog.List(c.Request.Context(), filter)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"supplements": rows, "count": len(rows)})
}

// GET /api/supplements/:id
func (h *SupplementHandler) Get(c *gin.Context) {
	row, err := h.catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"supplement": row})
}

type compareRequest struct {
	SupplementIDs []string             `json:"supplement_ids"`
	UserProfile   *profile.UserProfile `json:"user_profile"`
}

// POST /api/supplements/compare
func (h *SupplementHandler) Compare(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	out, err := h.recommendations.Compare(c.Request.Context(), req.SupplementIDs, req.UserProfile)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}
