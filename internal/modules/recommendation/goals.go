package recommendation

import (
	"github.com/yungbote/suplementor-backend/internal/domain/profile"
	"github.com/yungbote/suplementor-backend/internal/domain/supplement"
)

// GoalProfile describes which supplements serve a health goal.
type GoalProfile struct {
	Categories     []supplement.Category
	Keywords       []string
	PolishKeywords []string
}

func (g GoalProfile) hasCategory(c supplement.Category) bool {
	for _, gc := range g.Categories {
		if gc == c {
			return true
		}
	}
	return false
}

// Label is the first keyword, used when naming the goal in reasoning text.
func (g GoalProfile) Label(polish bool) string {
	list := g.Keywords
	if polish {
		list = g.PolishKeywords
	}
	if len(list) == 0 {
		return ""
	}
	return list[0]
}

// Every profile.Goal must have an entry here.
var goalProfiles = map[profile.Goal]GoalProfile{
	profile.GoalCognitiveEnhancement: {
		Categories:     []supplement.Category{supplement.CategoryNootropic, supplement.CategoryAminoAcid},
		Keywords:       []string{"cognitive", "nootropic", "brain", "mental clarity"},
		PolishKeywords: []string{"kognitywny", "nootropowy", "mózg", "jasność umysłu"},
	},
	profile.GoalMemoryImprovement: {
		Categories:     []supplement.Category{supplement.CategoryNootropic, supplement.CategoryFattyAcid},
		Keywords:       []string{"memory", "recall", "learning", "hippocampus"},
		PolishKeywords: []string{"pamięć", "zapamiętywanie", "uczenie się", "hipokamp"},
	},
	profile.GoalFocusConcentration: {
		Categories:     []supplement.Category{supplement.CategoryNootropic, supplement.CategoryAminoAcid},
		Keywords:       []string{"focus", "concentration", "attention", "ADHD"},
		PolishKeywords: []string{"koncentracja", "uwaga", "skupienie", "ADHD"},
	},
	profile.GoalStressReduction: {
		Categories:     []supplement.Category{supplement.CategoryAdaptogen, supplement.CategoryHerb, supplement.CategoryAminoAcid},
		Keywords:       []string{"stress", "cortisol", "adaptogen", "relaxation"},
		PolishKeywords: []string{"stres", "kortyzol", "adaptogen", "relaksacja"},
	},
	profile.GoalAnxietyRelief: {
		Categories:     []supplement.Category{supplement.CategoryAdaptogen, supplement.CategoryHerb, supplement.CategoryAminoAcid},
		Keywords:       []string{"anxiety", "anxiolytic", "GABA", "calm"},
		PolishKeywords: []string{"lęk", "anksjolityczny", "GABA", "spokój"},
	},
	profile.GoalMoodImprovement: {
		Categories:     []supplement.Category{supplement.CategoryAminoAcid, supplement.CategoryHerb, supplement.CategoryVitamin},
		Keywords:       []string{"mood", "depression", "serotonin", "dopamine"},
		PolishKeywords: []string{"nastrój", "depresja", "serotonina", "dopamina"},
	},
	profile.GoalEnergyBoost: {
		Categories:     []supplement.Category{supplement.CategoryAminoAcid, supplement.CategoryVitamin, supplement.CategoryCoenzyme},
		Keywords:       []string{"energy", "fatigue", "mitochondria", "ATP"},
		PolishKeywords: []string{"energia", "zmęczenie", "mitochondria", "ATP"},
	},
	profile.GoalSleepQuality: {
		Categories:     []supplement.Category{supplement.CategoryAminoAcid, supplement.CategoryMineral, supplement.CategoryHerb},
		Keywords:       []string{"sleep", "insomnia", "melatonin", "circadian"},
		PolishKeywords: []string{"sen", "bezsenność", "melatonina", "rytm dobowy"},
	},
	profile.GoalPhysicalPerformance: {
		Categories:     []supplement.Category{supplement.CategoryAminoAcid, supplement.CategoryOther},
		Keywords:       []string{"performance", "endurance", "strength", "recovery"},
		PolishKeywords: []string{"wydolność", "wytrzymałość", "siła", "regeneracja"},
	},
	profile.GoalNeuroprotection: {
		Categories:     []supplement.Category{supplement.CategoryNootropic, supplement.CategoryFattyAcid, supplement.CategoryHerb},
		Keywords:       []string{"neuroprotection", "antioxidant", "neurodegeneration"},
		PolishKeywords: []string{"neuroprotekcja", "antyoksydant", "neurodegeneracja"},
	},
	profile.GoalAntiAging: {
		Categories:     []supplement.Category{supplement.CategoryCoenzyme, supplement.CategoryHerb, supplement.CategoryVitamin},
		Keywords:       []string{"aging", "longevity", "telomeres", "senescence"},
		PolishKeywords: []string{"starzenie", "długowieczność", "telomery", "starzenie komórkowe"},
	},
	profile.GoalImmuneSupport: {
		Categories:     []supplement.Category{supplement.CategoryVitamin, supplement.CategoryMineral, supplement.CategoryHerb},
		Keywords:       []string{"immune", "immunity", "infection", "inflammation"},
		PolishKeywords: []string{"odporność", "immunitet", "infekcja", "stan zapalny"},
	},
}

// ProfileFor returns the mapping for a goal.
func ProfileFor(g profile.Goal) (GoalProfile, bool) {
	gp, ok := goalProfiles[g]
	return gp, ok
}
