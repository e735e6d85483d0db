package recommendation

import (
	"sort"

	"github.com/yungbote/suplementor-backend/internal/domain/profile"
	"github.com/yungbote/suplementor-backend/internal/domain/supplement"
)

const (
	DefaultLimit    = 10
	DefaultMaxStack = 5

	// MaxBudget is the largest monthly stack budget accepted, in EUR.
	MaxBudget = 1000.0
)

// Engine scores and assembles recommendations. It holds no mutable state after
// construction and is safe for concurrent use.
type Engine struct {
	weights   Weights
	synergies map[string][]string
	goals     map[profile.Goal]GoalProfile
}

type Option func(*Engine)

func WithWeights(w Weights) Option {
	return func(e *Engine) { e.weights = w }
}

// WithSynergies replaces the partner table. A nil map keeps the defaults.
func WithSynergies(m map[string][]string) Option {
	return func(e *Engine) {
		if m == nil {
			return
		}
		cp := make(map[string][]string, len(m))
		for k, v := range m {
			cp[k] = append([]string(nil), v...)
		}
		e.synergies = cp
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		weights:   DefaultWeights(),
		synergies: DefaultSynergies(),
		goals:     goalProfiles,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Weights() Weights { return e.weights }

// Synergies returns the partner ids of a supplement.
func (e *Engine) Synergies(id string) []string {
	return append([]string{}, e.synergies[id]...)
}

type Result struct {
	SupplementID               string                   `json:"supplement_id"`
	Name                       string                   `json:"name"`
	PolishName                 string                   `json:"polish_name"`
	Category                   supplement.Category      `json:"category"`
	RecommendationScore        int                      `json:"recommendation_score"`
	MatchedGoals               []profile.Goal           `json:"matched_goals"`
	Reasoning                  string                   `json:"reasoning"`
	PolishReasoning            string                   `json:"polish_reasoning"`
	DosageRecommendation       string                   `json:"dosage_recommendation"`
	PolishDosageRecommendation string                   `json:"polish_dosage_recommendation"`
	SafetyNotes                []string                 `json:"safety_notes"`
	PolishSafetyNotes          []string                 `json:"polish_safety_notes"`
	EvidenceLevel              supplement.EvidenceLevel `json:"evidence_level"`
	SynergisticWith            []string                 `json:"synergistic_with"`
	Contraindications          []string                 `json:"contraindications"`
	PolishContraindications    []string                 `json:"polish_contraindications"`
	MonthlyCost                float64                  `json:"monthly_cost"`
}

func (e *Engine) result(s *supplement.Supplement, p profile.UserProfile) Result {
	matched := e.MatchedGoals(s, p)
	contra := contraindications(p)
	reasons := make([]string, 0, len(contra))
	polishReasons := make([]string, 0, len(contra))
	for _, c := range contra {
		reasons = append(reasons, c.Reason)
		polishReasons = append(polishReasons, c.PolishReason)
	}
	return Result{
		SupplementID:               s.ID,
		Name:                       s.Name,
		PolishName:                 s.PolishName,
		Category:                   s.Category,
		RecommendationScore:        e.Score(s, p),
		MatchedGoals:               matched,
		Reasoning:                  reasoning(s, matched, p.ExperienceLevel, false),
		PolishReasoning:            reasoning(s, matched, p.ExperienceLevel, true),
		DosageRecommendation:       dosage(s, false),
		PolishDosageRecommendation: dosage(s, true),
		SafetyNotes:                safetyNotes(p, false),
		PolishSafetyNotes:          safetyNotes(p, true),
		EvidenceLevel:              s.EvidenceLevel,
		SynergisticWith:            e.Synergies(s.ID),
		Contraindications:          reasons,
		PolishContraindications:    polishReasons,
		MonthlyCost:                s.MonthlyCost(),
	}
}

// Recommend scores the whole catalog for p and returns the best limit results,
// highest score first. Equal scores keep catalog order.
func (e *Engine) Recommend(catalog []*supplement.Supplement, p profile.UserProfile, limit int) []Result {
	if limit <= 0 {
		limit = DefaultLimit
	}
	p = p.Normalized()
	out := make([]Result, 0, len(catalog))
	for _, s := range catalog {
		if s == nil {
			continue
		}
		out = append(out, e.result(s, p))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RecommendationScore > out[j].RecommendationScore
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
