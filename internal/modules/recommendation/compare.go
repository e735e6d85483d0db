package recommendation

import (
	"github.com/yungbote/suplementor-backend/internal/domain/profile"
	"github.com/yungbote/suplementor-backend/internal/domain/supplement"
)

const (
	MinCompare = 2
	MaxCompare = 5

	msgCompareTooFew   = "At least 2 supplements required for comparison"
	msgCompareTooFewPL = "Wymagane są co najmniej 2 suplementy do porównania"
)

type ComparisonEntry struct {
	ID                        string                   `json:"id"`
	Name                      string                   `json:"name"`
	PolishName                string                   `json:"polish_name"`
	Category                  supplement.Category      `json:"category"`
	EvidenceLevel             supplement.EvidenceLevel `json:"evidence_level"`
	RecommendationScore       *int                     `json:"recommendation_score"`
	ClinicalApplicationsCount int                      `json:"clinical_applications_count"`
	MechanismsCount           int                      `json:"mechanisms_count"`
	SideEffectsCount          int                      `json:"side_effects_count"`
	MonthlyCost               *float64                 `json:"monthly_cost"`
}

type Comparison struct {
	Supplements   []ComparisonEntry `json:"supplements"`
	Message       string            `json:"message,omitempty"`
	PolishMessage string            `json:"polish_message,omitempty"`
}

// Compare summarizes the given supplements side by side. Scores are filled in
// only when a profile is supplied. Fewer than two supplements yields an empty
// comparison carrying an explanatory message.
func (e *Engine) Compare(found []*supplement.Supplement, p *profile.UserProfile) Comparison {
	list := make([]*supplement.Supplement, 0, len(found))
	for _, s := range found {
		if s != nil {
			list = append(list, s)
		}
	}
	if len(list) < MinCompare {
		return Comparison{
			Supplements:   []ComparisonEntry{},
			Message:       msgCompareTooFew,
			PolishMessage: msgCompareTooFewPL,
		}
	}
	out := make([]ComparisonEntry, 0, len(list))
	for _, s := range list {
		entry := ComparisonEntry{
			ID:                        s.ID,
			Name:                      s.Name,
			PolishName:                s.PolishName,
			Category:                  s.Category,
			EvidenceLevel:             s.EvidenceLevel,
			ClinicalApplicationsCount: len(s.Clinical),
			MechanismsCount:           len(s.Mechanisms),
			SideEffectsCount:          len(s.SideEffects),
		}
		if p != nil {
			score := e.Score(s, *p)
			entry.RecommendationScore = &score
		}
		if c := s.MonthlyCost(); c > 0 {
			entry.MonthlyCost = &c
		}
		out = append(out, entry)
	}
	return Comparison{Supplements: out}
}
