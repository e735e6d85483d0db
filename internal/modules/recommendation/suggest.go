package recommendation

import (
	"strings"

	"github.com/yungbote/suplementor-backend/internal/domain/profile"
)

type symptomRule struct {
	needles []string
	goal    profile.Goal
}

// Checked in order; the first rule that fires for a goal fixes its position.
var symptomRules = []symptomRule{
	{needles: []string{"pamięć", "memory", "zapominanie"}, goal: profile.GoalMemoryImprovement},
	{needles: []string{"koncentracja", "focus", "uwaga"}, goal: profile.GoalFocusConcentration},
	{needles: []string{"stres", "stress"}, goal: profile.GoalStressReduction},
	{needles: []string{"lęk", "anxiety", "niepokój"}, goal: profile.GoalAnxietyRelief},
	{needles: []string{"nastrój", "mood", "depresja"}, goal: profile.GoalMoodImprovement},
	{needles: []string{"energia", "energy", "zmęczenie"}, goal: profile.GoalEnergyBoost},
	{needles: []string{"sen", "sleep", "bezsenność"}, goal: profile.GoalSleepQuality},
}

// SuggestGoals maps free-text symptoms (English or Polish) to health goals.
func SuggestGoals(symptoms []string) []profile.Goal {
	text := strings.ToLower(strings.Join(symptoms, " "))
	out := []profile.Goal{}
	if strings.TrimSpace(text) == "" {
		return out
	}
	seen := map[profile.Goal]bool{}
	for _, rule := range symptomRules {
		if seen[rule.goal] {
			continue
		}
		for _, n := range rule.needles {
			if strings.Contains(text, n) {
				out = append(out, rule.goal)
				seen[rule.goal] = true
				break
			}
		}
	}
	return out
}
