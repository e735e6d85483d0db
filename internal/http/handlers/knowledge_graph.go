package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/suplementor-backend/internal/domain/knowledge"
	"github.com/yungbote/suplementor-backend/internal/domain/supplement"
	"github.com/yungbote/suplementor-backend/internal/http/response"
	"github.com/yungbote/suplementor-backend/internal/modules/knowledgegraph"
	"github.com/yungbote/suplementor-backend/internal/services"
)

type KnowledgeGraphHandler struct {
	graph services.KnowledgeGraphService
}

func NewKnowledgeGraphHandler(graph services.KnowledgeGraphService) *KnowledgeGraphHandler {
	return &KnowledgeGraphHandler{graph: graph}
}

// GET /api/knowledge-graph?min_evidence=&max_nodes=&types=PATHWAY,BRAIN_REGION
func (h *KnowledgeGraphHandler) Get(c *gin.Context) {
	opts := knowledgegraph.Options{
		MinEvidence: supplement.EvidenceLevel(strings.ToUpper(strings.TrimSpace(c.Query("min_evidence")))),
	}
	if raw := strings.TrimSpace(c.Query("max_nodes")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_max_nodes", err)
			return
		}
		opts.MaxNodes = n
	}
	for _, t := range strings.Split(c.Query("types"), ",") {
		if t = strings.ToUpper(strings.TrimSpace(t)); t != "" {
			opts.NodeTypes = append(opts.NodeTypes, knowledge.NodeType(t))
		}
	}
	g, err := h.graph.Graph(c.Request.Context(), opts)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, g)
}
