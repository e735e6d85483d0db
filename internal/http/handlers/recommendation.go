package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/suplementor-backend/internal/domain/profile"
	"github.com/yungbote/suplementor-backend/internal/http/response"
	"github.com/yungbote/suplementor-backend/internal/services"
)

type RecommendationHandler struct {
	recommendations services.RecommendationService
}

func NewRecommendationHandler(recommendations services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendations: recommendations}
}

type recommendRequest struct {
	UserProfile profile.UserProfile `json:"user_profile"`
	Limit       int                 `json:"limit"`
	Language    string              `json:"language"`
}

// POST /api/recommendations
func (h *RecommendationHandler) Recommend(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	out, err := h.recommendations.Recommend(c.Request.Context(), req.UserProfile, req.Limit, req.Language)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"recommendations": out})
}

type stackRequest struct {
	UserProfile    profile.UserProfile `json:"user_profile"`
	MaxSupplements int                 `json:"max_supplements"`
	BudgetLimit    *float64            `json:"budget_limit"`
	Language       string              `json:"language"`
}

// POST /api/recommendations/stack
func (h *RecommendationHandler) BuildStack(c *gin.Context) {
	var req stackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	st, err := h.recommendations.BuildStack(c.Request.Context(), req.UserProfile, services.StackRequest{
		MaxSupplements: req.MaxSupplements,
		BudgetLimit:    req.BudgetLimit,
		Language:       req.Language,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"stack": st})
}

type suggestGoalsRequest struct {
	Symptoms []string `json:"symptoms"`
}

// POST /api/recommendations/goals/suggest
func (h *RecommendationHandler) SuggestGoals(c *gin.Context) {
	var req suggestGoalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	response.RespondOK(c, gin.H{"goals": h.recommendations.SuggestGoals(c.Request.Context(), req.Symptoms)})
}
