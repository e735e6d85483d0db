package knowledge

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/suplementor-backend/internal/domain/supplement"
)

type NodeType string

const (
	NodeSupplement        NodeType = "SUPPLEMENT"
	NodeNeurotransmitter  NodeType = "NEUROTRANSMITTER"
	NodeBrainRegion       NodeType = "BRAIN_REGION"
	NodeCognitiveFunction NodeType = "COGNITIVE_FUNCTION"
	NodePathway           NodeType = "PATHWAY"
	NodeMechanism         NodeType = "MECHANISM"
)

func (t NodeType) Valid() bool {
	switch t {
	case NodeSupplement, NodeNeurotransmitter, NodeBrainRegion, NodeCognitiveFunction, NodePathway, NodeMechanism:
		return true
	}
	return false
}

type RelationshipType string

const (
	RelEnhances    RelationshipType = "ENHANCES"
	RelInhibits    RelationshipType = "INHIBITS"
	RelModulates   RelationshipType = "MODULATES"
	RelSynergizes  RelationshipType = "SYNERGIZES"
	RelAntagonizes RelationshipType = "ANTAGONIZES"
	RelRequires    RelationshipType = "REQUIRES"
	RelProduces    RelationshipType = "PRODUCES"
	RelMetabolizes RelationshipType = "METABOLIZES"
)

func (t RelationshipType) Valid() bool {
	switch t {
	case RelEnhances, RelInhibits, RelModulates, RelSynergizes, RelAntagonizes, RelRequires, RelProduces, RelMetabolizes:
		return true
	}
	return false
}

// RelationshipFor maps an interaction kind onto the edge type drawn in the graph.
func RelationshipFor(t supplement.InteractionType) RelationshipType {
	switch t {
	case supplement.InteractionSynergistic:
		return RelSynergizes
	case supplement.InteractionAntagonistic:
		return RelAntagonizes
	case supplement.InteractionAdditive:
		return RelEnhances
	case supplement.InteractionCompetitive:
		return RelInhibits
	}
	return RelModulates
}

type Node struct {
	ID                string                      `gorm:"column:id;primaryKey" json:"id" validate:"required,max=128"`
	Type              NodeType                    `gorm:"column:type;not null;index" json:"type" validate:"required,oneof=SUPPLEMENT NEUROTRANSMITTER BRAIN_REGION COGNITIVE_FUNCTION PATHWAY MECHANISM"`
	Name              string                      `gorm:"column:name;not null" json:"name" validate:"required"`
	PolishName        string                      `gorm:"column:polish_name" json:"polish_name"`
	Description       string                      `gorm:"column:description;type:text" json:"description,omitempty"`
	PolishDescription string                      `gorm:"column:polish_description;type:text" json:"polish_description,omitempty"`
	Category          string                      `gorm:"column:category" json:"category,omitempty"`
	EvidenceLevel     supplement.EvidenceLevel    `gorm:"column:evidence_level" json:"evidence_level,omitempty" validate:"omitempty,oneof=STRONG MODERATE WEAK INSUFFICIENT CONFLICTING"`
	Color             string                      `gorm:"column:color" json:"color,omitempty"`
	Size              float64                     `gorm:"column:size" json:"size"`
	Importance        float64                     `gorm:"column:importance" json:"importance" validate:"gte=0,lte=1"`
	Tags              datatypes.JSONSlice[string] `gorm:"column:tags" json:"tags,omitempty"`
	Properties        datatypes.JSONMap           `gorm:"column:properties" json:"properties,omitempty"`
	CreatedAt         time.Time                   `gorm:"column:created_at" json:"-"`
	UpdatedAt         time.Time                   `gorm:"column:updated_at" json:"-"`
	DeletedAt         gorm.DeletedAt              `gorm:"column:deleted_at;index" json:"-"`
}

func (Node) TableName() string { return "knowledge_node" }

type Relationship struct {
	ID              string                   `gorm:"column:id;primaryKey" json:"id" validate:"required,max=160"`
	SourceID        string                   `gorm:"column:source_id;not null;index" json:"source_id" validate:"required"`
	TargetID        string                   `gorm:"column:target_id;not null;index" json:"target_id" validate:"required"`
	Type            RelationshipType         `gorm:"column:type;not null" json:"type" validate:"required,oneof=ENHANCES INHIBITS MODULATES SYNERGIZES ANTAGONIZES REQUIRES PRODUCES METABOLIZES"`
	Strength        float64                  `gorm:"column:strength" json:"strength" validate:"gte=0,lte=1"`
	Confidence      float64                  `gorm:"column:confidence" json:"confidence" validate:"gte=0,lte=1"`
	Mechanism       string                   `gorm:"column:mechanism;type:text" json:"mechanism,omitempty"`
	PolishMechanism string                   `gorm:"column:polish_mechanism;type:text" json:"polish_mechanism,omitempty"`
	EvidenceLevel   supplement.EvidenceLevel `gorm:"column:evidence_level" json:"evidence_level,omitempty" validate:"omitempty,oneof=STRONG MODERATE WEAK INSUFFICIENT CONFLICTING"`
	Bidirectional   bool                     `gorm:"column:bidirectional" json:"bidirectional"`
	CreatedAt       time.Time                `gorm:"column:created_at" json:"-"`
	UpdatedAt       time.Time                `gorm:"column:updated_at" json:"-"`
	DeletedAt       gorm.DeletedAt           `gorm:"column:deleted_at;index" json:"-"`
}

func (Relationship) TableName() string { return "knowledge_relationship" }

// Base is the curated part of the graph that is not derived from supplements.
type Base struct {
	Nodes         []Node         `json:"nodes"`
	Relationships []Relationship `json:"relationships"`
}

type Stats struct {
	NodeCount            int `json:"node_count"`
	RelationshipCount    int `json:"relationship_count"`
	DroppedRelationships int `json:"dropped_relationships"`
	FuzzyMatches         int `json:"fuzzy_matches"`
	TrimmedNodes         int `json:"trimmed_nodes"`
}

type Graph struct {
	Nodes         []Node         `json:"nodes"`
	Relationships []Relationship `json:"relationships"`
	Stats         Stats          `json:"stats"`
}
