package recommendation

import (
	"math"
	"strings"

	"github.com/yungbote/suplementor-backend/internal/domain/profile"
	"github.com/yungbote/suplementor-backend/internal/domain/supplement"
)

const (
	MinScore = 0
	MaxScore = 100
)

type goalMatch struct {
	category    bool
	keywordHits int
}

func (m goalMatch) matched() bool { return m.category || m.keywordHits > 0 }

// matchGoal counts goal keywords contained in any lowercased tag, once per keyword.
func matchGoal(s *supplement.Supplement, gp GoalProfile) goalMatch {
	m := goalMatch{category: gp.hasCategory(s.Category)}
	if len(s.Tags) == 0 {
		return m
	}
	tags := make([]string, 0, len(s.Tags))
	for _, t := range s.Tags {
		tags = append(tags, strings.ToLower(t))
	}
	for _, kw := range gp.Keywords {
		needle := strings.ToLower(kw)
		for _, tag := range tags {
			if strings.Contains(tag, needle) {
				m.keywordHits++
				break
			}
		}
	}
	return m
}

func averageEffectiveness(apps []supplement.ClinicalApplication, def float64) float64 {
	if len(apps) == 0 {
		return 0
	}
	sum := 0.0
	for _, app := range apps {
		if app.EffectivenessRating != nil {
			sum += *app.EffectivenessRating
		} else {
			sum += def
		}
	}
	return sum / float64(len(apps))
}

// Score rates how well s fits p on a 0..100 scale.
func (e *Engine) Score(s *supplement.Supplement, p profile.UserProfile) int {
	if s == nil {
		return MinScore
	}
	p = p.Normalized()
	w := e.weights

	score := w.evidencePoints(s.EvidenceLevel)
	for _, g := range p.HealthGoals {
		gp, ok := e.goals[g]
		if !ok {
			continue
		}
		m := matchGoal(s, gp)
		if m.category {
			score += w.GoalCategory
		}
		score += float64(m.keywordHits) * w.GoalKeyword
	}
	if len(s.Clinical) > 0 {
		score += averageEffectiveness(s.Clinical, w.DefaultEffectiveness) / 10 * w.Effectiveness
	}
	switch p.ExperienceLevel {
	case profile.ExperienceBeginner:
		if s.EvidenceLevel == supplement.EvidenceStrong {
			score += w.BeginnerStrongBonus
		}
	case profile.ExperienceAdvanced:
		score += w.AdvancedBonus
	case profile.ExperienceIntermediate:
	}
	return clampScore(score)
}

func clampScore(v float64) int {
	if math.IsNaN(v) {
		return MinScore
	}
	r := int(math.Round(v))
	if r < MinScore {
		return MinScore
	}
	if r > MaxScore {
		return MaxScore
	}
	return r
}

// MatchedGoals lists the profile goals that s serves by category or tag keyword.
func (e *Engine) MatchedGoals(s *supplement.Supplement, p profile.UserProfile) []profile.Goal {
	out := []profile.Goal{}
	for _, g := range p.HealthGoals {
		gp, ok := e.goals[g]
		if !ok {
			continue
		}
		if matchGoal(s, gp).matched() {
			out = append(out, g)
		}
	}
	return out
}
