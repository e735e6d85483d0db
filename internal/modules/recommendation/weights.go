package recommendation

import "github.com/yungbote/suplementor-backend/internal/domain/supplement"

// Weights holds every point value used by Score.
type Weights struct {
	EvidenceStrong       float64 `koanf:"evidence_strong" json:"evidence_strong" validate:"gte=0,lte=100"`
	EvidenceModerate     float64 `koanf:"evidence_moderate" json:"evidence_moderate" validate:"gte=0,lte=100"`
	EvidenceWeak         float64 `koanf:"evidence_weak" json:"evidence_weak" validate:"gte=0,lte=100"`
	EvidenceInsufficient float64 `koanf:"evidence_insufficient" json:"evidence_insufficient" validate:"gte=0,lte=100"`
	EvidenceConflicting  float64 `koanf:"evidence_conflicting" json:"evidence_conflicting" validate:"gte=0,lte=100"`

	GoalCategory float64 `koanf:"goal_category" json:"goal_category" validate:"gte=0,lte=100"`
	GoalKeyword  float64 `koanf:"goal_keyword" json:"goal_keyword" validate:"gte=0,lte=100"`

	// Effectiveness is the points awarded for an average rating of 10/10.
	Effectiveness        float64 `koanf:"effectiveness" json:"effectiveness" validate:"gte=0,lte=100"`
	DefaultEffectiveness float64 `koanf:"default_effectiveness" json:"default_effectiveness" validate:"gte=0,lte=10"`

	BeginnerStrongBonus float64 `koanf:"beginner_strong_bonus" json:"beginner_strong_bonus" validate:"gte=0,lte=100"`
	AdvancedBonus       float64 `koanf:"advanced_bonus" json:"advanced_bonus" validate:"gte=0,lte=100"`
}

func DefaultWeights() Weights {
	return Weights{
		EvidenceStrong:       30,
		EvidenceModerate:     20,
		EvidenceWeak:         10,
		EvidenceInsufficient: 5,
		EvidenceConflicting:  0,
		GoalCategory:         20,
		GoalKeyword:          5,
		Effectiveness:        20,
		DefaultEffectiveness: 5,
		BeginnerStrongBonus:  10,
		AdvancedBonus:        5,
	}
}

func (w Weights) evidencePoints(lvl supplement.EvidenceLevel) float64 {
	switch lvl {
	case supplement.EvidenceStrong:
		return w.EvidenceStrong
	case supplement.EvidenceModerate:
		return w.EvidenceModerate
	case supplement.EvidenceWeak:
		return w.EvidenceWeak
	case supplement.EvidenceInsufficient:
		return w.EvidenceInsufficient
	case supplement.EvidenceConflicting:
		return w.EvidenceConflicting
	}
	return 0
}
