package profile

type Goal string

const (
	GoalCognitiveEnhancement Goal = "cognitive_enhancement"
	GoalMemoryImprovement    Goal = "memory_improvement"
	GoalFocusConcentration   Goal = "focus_concentration"
	GoalStressReduction      Goal = "stress_reduction"
	GoalAnxietyRelief        Goal = "anxiety_relief"
	GoalMoodImprovement      Goal = "mood_improvement"
	GoalEnergyBoost          Goal = "energy_boost"
	GoalSleepQuality         Goal = "sleep_quality"
	GoalPhysicalPerformance  Goal = "physical_performance"
	GoalNeuroprotection      Goal = "neuroprotection"
	GoalAntiAging            Goal = "anti_aging"
	GoalImmuneSupport        Goal = "immune_support"
)

var Goals = []Goal{
	GoalCognitiveEnhancement,
	GoalMemoryImprovement,
	GoalFocusConcentration,
	GoalStressReduction,
	GoalAnxietyRelief,
	GoalMoodImprovement,
	GoalEnergyBoost,
	GoalSleepQuality,
	GoalPhysicalPerformance,
	GoalNeuroprotection,
	GoalAntiAging,
	GoalImmuneSupport,
}

func (g Goal) Valid() bool {
	for _, known := range Goals {
		if g == known {
			return true
		}
	}
	return false
}

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
)

// UserProfile is built per request from user input and never stored.
type UserProfile struct {
	Age                 int             `json:"age" yaml:"age" validate:"gte=13,lte=120"`
	Gender              Gender          `json:"gender,omitempty" yaml:"gender" validate:"omitempty,oneof=male female other"`
	Weight              *float64        `json:"weight,omitempty" yaml:"weight" validate:"omitempty,gte=30,lte=300"`
	HealthGoals         []Goal          `json:"health_goals" yaml:"health_goals" validate:"min=1,max=5,dive,oneof=cognitive_enhancement memory_improvement focus_concentration stress_reduction anxiety_relief mood_improvement energy_boost sleep_quality physical_performance neuroprotection anti_aging immune_support"`
	ExistingConditions  []string        `json:"existing_conditions,omitempty" yaml:"existing_conditions"`
	CurrentMedications  []string        `json:"current_medications,omitempty" yaml:"current_medications"`
	Allergies           []string        `json:"allergies,omitempty" yaml:"allergies"`
	DietaryRestrictions []string        `json:"dietary_restrictions,omitempty" yaml:"dietary_restrictions"`
	ExperienceLevel     ExperienceLevel `json:"experience_level,omitempty" yaml:"experience_level" validate:"omitempty,oneof=beginner intermediate advanced"`
}

// Normalized fills defaults the engine relies on.
func (p UserProfile) Normalized() UserProfile {
	if p.ExperienceLevel == "" {
		p.ExperienceLevel = ExperienceBeginner
	}
	return p
}

func (p UserProfile) TakesMedications() bool {
	return len(p.CurrentMedications) > 0
}
