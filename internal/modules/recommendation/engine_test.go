package recommendation

import (
	"strings"
	"testing"

	"gorm.io/datatypes"

	"github.com/yungbote/suplementor-backend/internal/domain/profile"
	"github.com/yungbote/suplementor-backend/internal/domain/supplement"
)

func sup(id string, cat supplement.Category, ev supplement.EvidenceLevel, tags ...string) *supplement.Supplement {
	return &supplement.Supplement{
		ID:            id,
		Name:          strings.ToUpper(id),
		PolishName:    id + "-pl",
		Category:      cat,
		EvidenceLevel: ev,
		Tags:          tags,
		IsActive:      true,
	}
}

func withCost(s *supplement.Supplement, avg float64) *supplement.Supplement {
	s.Economic = datatypes.NewJSONType(supplement.EconomicData{
		MonthlySupplyCost: supplement.CostRange{Min: avg * 0.5, Average: avg, Max: avg * 2, Currency: "EUR"},
	})
	return s
}

func rating(v float64) *float64 { return &v }

func intermediate(goals ...profile.Goal) profile.UserProfile {
	return profile.UserProfile{Age: 30, HealthGoals: goals, ExperienceLevel: profile.ExperienceIntermediate}
}

func TestScore_MemoryScenario(t *testing.T) {
	e := NewEngine()
	s := sup("bacopa", supplement.CategoryNootropic, supplement.EvidenceStrong, "memory")
	p := profile.UserProfile{Age: 25, HealthGoals: []profile.Goal{profile.GoalMemoryImprovement}, ExperienceLevel: profile.ExperienceBeginner}

	if got := e.Score(s, p); got != 65 {
		t.Fatalf("expected 65 without clinical data, got %d", got)
	}

	s.Clinical = []supplement.ClinicalApplication{{Condition: "memory", EffectivenessRating: rating(8)}}
	if got := e.Score(s, p); got < 65 {
		t.Fatalf("expected at least 65 with clinical data, got %d", got)
	}
}

func TestScore_DefaultsMissingEffectiveness(t *testing.T) {
	e := NewEngine()
	s := sup("x", supplement.CategoryOther, supplement.EvidenceWeak)
	s.Clinical = []supplement.ClinicalApplication{{Condition: "a"}, {Condition: "b", EffectivenessRating: rating(9)}}

	// 10 evidence + (5+9)/2/10*20 = 24
	if got := e.Score(s, intermediate(profile.GoalSleepQuality)); got != 24 {
		t.Fatalf("expected 24, got %d", got)
	}
}

func TestScore_StaysWithinRange(t *testing.T) {
	e := NewEngine()
	loaded := sup("max", supplement.CategoryNootropic, supplement.EvidenceStrong,
		"cognitive", "nootropic", "brain", "memory", "recall", "learning", "focus", "attention", "neuroprotection", "antioxidant")
	loaded.Clinical = []supplement.ClinicalApplication{{Condition: "c", EffectivenessRating: rating(10)}}
	p := profile.UserProfile{
		Age: 40,
		HealthGoals: []profile.Goal{
			profile.GoalCognitiveEnhancement,
			profile.GoalMemoryImprovement,
			profile.GoalFocusConcentration,
			profile.GoalNeuroprotection,
		},
		ExperienceLevel: profile.ExperienceBeginner,
	}
	if got := e.Score(loaded, p); got != MaxScore {
		t.Fatalf("expected clamp to %d, got %d", MaxScore, got)
	}

	for _, ev := range supplement.EvidenceLevels {
		for _, cat := range supplement.Categories {
			for _, exp := range []profile.ExperienceLevel{profile.ExperienceBeginner, profile.ExperienceIntermediate, profile.ExperienceAdvanced} {
				s := sup("s", cat, ev, "energy", "sleep")
				got := e.Score(s, profile.UserProfile{Age: 20, HealthGoals: profile.Goals[:5], ExperienceLevel: exp})
				if got < MinScore || got > MaxScore {
					t.Fatalf("score out of range for %s/%s/%s: %d", ev, cat, exp, got)
				}
			}
		}
	}
}

func TestScore_StrongEvidenceBeatsConflicting(t *testing.T) {
	e := NewEngine()
	p := intermediate(profile.GoalStressReduction)
	strong := sup("a", supplement.CategoryHerb, supplement.EvidenceStrong, "stress")
	conflicting := sup("a", supplement.CategoryHerb, supplement.EvidenceConflicting, "stress")

	if e.Score(strong, p) <= e.Score(conflicting, p) {
		t.Fatalf("expected strong evidence to dominate: %d vs %d", e.Score(strong, p), e.Score(conflicting, p))
	}
}

func TestScore_UsesConfiguredWeights(t *testing.T) {
	w := DefaultWeights()
	w.EvidenceStrong = 50
	e := NewEngine(WithWeights(w))
	if got := e.Score(sup("a", supplement.CategoryOther, supplement.EvidenceStrong), intermediate(profile.GoalSleepQuality)); got != 50 {
		t.Fatalf("expected 50, got %d", got)
	}
}

func TestMatchedGoals_CategoryOrKeyword(t *testing.T) {
	e := NewEngine()
	s := sup("ashwagandha", supplement.CategoryAdaptogen, supplement.EvidenceModerate, "sleep support")
	got := e.MatchedGoals(s, intermediate(profile.GoalStressReduction, profile.GoalSleepQuality, profile.GoalMemoryImprovement))
	if len(got) != 2 || got[0] != profile.GoalStressReduction || got[1] != profile.GoalSleepQuality {
		t.Fatalf("unexpected matched goals: %v", got)
	}
}

func TestRecommend_SortedDescendingAndStable(t *testing.T) {
	e := NewEngine()
	catalog := []*supplement.Supplement{
		sup("first", supplement.CategoryOther, supplement.EvidenceWeak),
		sup("second", supplement.CategoryOther, supplement.EvidenceWeak),
		sup("best", supplement.CategoryOther, supplement.EvidenceStrong),
		sup("third", supplement.CategoryOther, supplement.EvidenceWeak),
	}
	got := e.Recommend(catalog, intermediate(profile.GoalSleepQuality), 10)
	want := []string{"best", "first", "second", "third"}
	if len(got) != len(want) {
		t.Fatalf("expected %d results, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].SupplementID != id {
			t.Fatalf("position %d: want %s got %s", i, id, got[i].SupplementID)
		}
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].RecommendationScore < got[i].RecommendationScore {
			t.Fatalf("results not sorted at %d", i)
		}
	}
}

func TestRecommend_Limit(t *testing.T) {
	e := NewEngine()
	catalog := []*supplement.Supplement{
		sup("a", supplement.CategoryOther, supplement.EvidenceWeak),
		sup("b", supplement.CategoryOther, supplement.EvidenceWeak),
		sup("c", supplement.CategoryOther, supplement.EvidenceWeak),
	}
	if got := e.Recommend(catalog, intermediate(profile.GoalSleepQuality), 2); len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
}

func TestRecommend_FillsTextFields(t *testing.T) {
	e := NewEngine()
	s := sup("omega-3", supplement.CategoryFattyAcid, supplement.EvidenceStrong, "memory")
	s.Dosage = datatypes.NewJSONType(supplement.DosageGuidelines{
		StandardDose: &supplement.StandardDose{Amount: 1000, Unit: "mg", Frequency: "daily", PolishFrequency: "dziennie"},
	})
	p := profile.UserProfile{
		Age:                16,
		HealthGoals:        []profile.Goal{profile.GoalMemoryImprovement},
		CurrentMedications: []string{"ssri"},
	}

	got := e.Recommend([]*supplement.Supplement{s}, p, 1)[0]

	if got.Reasoning != "Recommended for goals: memory. Evidence level: STRONG. Suitable for experience level: beginner." {
		t.Fatalf("unexpected reasoning: %q", got.Reasoning)
	}
	if got.PolishReasoning != "Zalecany dla celów: pamięć. Poziom dowodów: STRONG. Odpowiedni dla poziomu doświadczenia: beginner." {
		t.Fatalf("unexpected polish reasoning: %q", got.PolishReasoning)
	}
	if got.DosageRecommendation != "1000mg daily" || got.PolishDosageRecommendation != "1000mg dziennie" {
		t.Fatalf("unexpected dosage: %q / %q", got.DosageRecommendation, got.PolishDosageRecommendation)
	}
	if len(got.SafetyNotes) != 2 || got.SafetyNotes[0] != msgMinimumDose || got.SafetyNotes[1] != msgConsultPhysician {
		t.Fatalf("unexpected safety notes: %v", got.SafetyNotes)
	}
	if len(got.Contraindications) != 1 || got.Contraindications[0] != msgUnder18 {
		t.Fatalf("expected under-18 contraindication, got %v", got.Contraindications)
	}
	if len(got.SynergisticWith) != 1 || got.SynergisticWith[0] != "vitamin-d3" {
		t.Fatalf("unexpected synergy partners: %v", got.SynergisticWith)
	}
}

func TestRecommend_DosageFallback(t *testing.T) {
	e := NewEngine()
	got := e.Recommend([]*supplement.Supplement{sup("a", supplement.CategoryOther, supplement.EvidenceWeak)}, intermediate(profile.GoalSleepQuality), 1)[0]
	if got.DosageRecommendation != msgConsultLabel || got.PolishDosageRecommendation != msgConsultLabelPL {
		t.Fatalf("unexpected fallback: %q / %q", got.DosageRecommendation, got.PolishDosageRecommendation)
	}
	if len(got.SafetyNotes) != 0 || len(got.Contraindications) != 0 {
		t.Fatalf("expected no notes for an adult intermediate user")
	}
}

func TestSynergies_ReturnsCopy(t *testing.T) {
	e := NewEngine()
	partners := e.Synergies("magnesium")
	partners[0] = "mutated"
	if e.Synergies("magnesium")[0] != "vitamin-d3" {
		t.Fatalf("engine table was mutated through returned slice")
	}
}
