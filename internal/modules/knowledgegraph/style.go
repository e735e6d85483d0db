package knowledgegraph

import (
	"math"

	"github.com/yungbote/suplementor-backend/internal/domain/knowledge"
	"github.com/yungbote/suplementor-backend/internal/domain/supplement"
)

const defaultColor = "#6B7280"

var categoryColors = map[supplement.Category]string{
	supplement.CategoryNootropic: "#3B82F6",
	supplement.CategoryVitamin:   "#10B981",
	supplement.CategoryMineral:   "#F59E0B",
	supplement.CategoryHerb:      "#8B5CF6",
	supplement.CategoryAminoAcid: "#EF4444",
	supplement.CategoryAdaptogen: "#14B8A6",
	supplement.CategoryFattyAcid: "#0EA5E9",
	supplement.CategoryCoenzyme:  "#A855F7",
}

type nodeStyle struct {
	color      string
	size       float64
	importance float64
}

var typeStyles = map[knowledge.NodeType]nodeStyle{
	knowledge.NodeNeurotransmitter:  {color: "#06B6D4", size: 10, importance: 0.9},
	knowledge.NodeBrainRegion:       {color: "#84CC16", size: 12, importance: 0.8},
	knowledge.NodeCognitiveFunction: {color: "#F97316", size: 8, importance: 0.7},
	knowledge.NodePathway:           {color: "#EC4899", size: 6, importance: 0.6},
	knowledge.NodeMechanism:         {color: "#6366F1", size: 5, importance: 0.5},
}

func colorFor(c supplement.Category) string {
	if col, ok := categoryColors[c]; ok {
		return col
	}
	return defaultColor
}

// styleBaseNode fills visual fields the curated record left empty.
func styleBaseNode(n knowledge.Node) knowledge.Node {
	st, ok := typeStyles[n.Type]
	if n.Color == "" {
		n.Color = defaultColor
		if ok {
			n.Color = st.color
		}
	}
	if n.Size <= 0 && ok {
		n.Size = st.size
	}
	if n.Importance <= 0 && ok {
		n.Importance = st.importance
	}
	n.Importance = clamp01(n.Importance)
	return n
}

func supplementImportance(s *supplement.Supplement) float64 {
	v := 0.1*float64(len(s.Studies)) + 0.05*float64(len(s.Clinical)) + 0.3*s.EvidenceLevel.Weight()
	return math.Min(v, 1)
}

func supplementSize(s *supplement.Supplement) float64 {
	return 8 + math.Min(0.5*float64(len(s.Studies)), 4) + math.Min(0.3*float64(len(s.Clinical)), 3)
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
