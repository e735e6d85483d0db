package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/suplementor-backend/internal/domain/supplement"
	"github.com/yungbote/suplementor-backend/internal/http/response"
	"github.com/yungbote/suplementor-backend/internal/services"
)

type InteractionHandler struct {
	interactions services.InteractionService
}

func NewInteractionHandler(interactions services.InteractionService) *InteractionHandler {
	return &InteractionHandler{interactions: interactions}
}

type analyzeRequest struct {
	SupplementIDs  []string `json:"supplement_ids"`
	SeverityFilter string   `json:"severity_filter"`
}

// POST /api/interactions/analyze
func (h *InteractionHandler) Analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	severity := supplement.Severity(strings.ToLower(strings.TrimSpace(req.SeverityFilter)))
	report, err := h.interactions.Analyze(c.Request.Context(), req.SupplementIDs, severity)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, report)
}
