package supplement

type Category string

const (
	CategoryVitamin   Category = "VITAMIN"
	CategoryMineral   Category = "MINERAL"
	CategoryAminoAcid Category = "AMINO_ACID"
	CategoryFattyAcid Category = "FATTY_ACID"
	CategoryHerb      Category = "HERB"
	CategoryNootropic Category = "NOOTROPIC"
	CategoryAdaptogen Category = "ADAPTOGEN"
	CategoryCoenzyme  Category = "COENZYME"
	CategoryProbiotic Category = "PROBIOTIC"
	CategoryEnzyme    Category = "ENZYME"
	CategoryOther     Category = "OTHER"
)

var Categories = []Category{
	CategoryVitamin,
	CategoryMineral,
	CategoryAminoAcid,
	CategoryFattyAcid,
	CategoryHerb,
	CategoryNootropic,
	CategoryAdaptogen,
	CategoryCoenzyme,
	CategoryProbiotic,
	CategoryEnzyme,
	CategoryOther,
}

func (c Category) Valid() bool {
	switch c {
	case CategoryVitamin, CategoryMineral, CategoryAminoAcid, CategoryFattyAcid, CategoryHerb,
		CategoryNootropic, CategoryAdaptogen, CategoryCoenzyme, CategoryProbiotic, CategoryEnzyme, CategoryOther:
		return true
	}
	return false
}

type EvidenceLevel string

const (
	EvidenceStrong       EvidenceLevel = "STRONG"
	EvidenceModerate     EvidenceLevel = "MODERATE"
	EvidenceWeak         EvidenceLevel = "WEAK"
	EvidenceInsufficient EvidenceLevel = "INSUFFICIENT"
	EvidenceConflicting  EvidenceLevel = "CONFLICTING"
)

// EvidenceLevels is ordered strongest first.
var EvidenceLevels = []EvidenceLevel{
	EvidenceStrong,
	EvidenceModerate,
	EvidenceWeak,
	EvidenceInsufficient,
	EvidenceConflicting,
}

func (e EvidenceLevel) Valid() bool {
	switch e {
	case EvidenceStrong, EvidenceModerate, EvidenceWeak, EvidenceInsufficient, EvidenceConflicting:
		return true
	}
	return false
}

// Rank orders levels strongest first; unknown levels sort last.
func (e EvidenceLevel) Rank() int {
	switch e {
	case EvidenceStrong:
		return 0
	case EvidenceModerate:
		return 1
	case EvidenceWeak:
		return 2
	case EvidenceInsufficient:
		return 3
	case EvidenceConflicting:
		return 4
	}
	return len(EvidenceLevels)
}

// Weight is the graph confidence weight of a level in [0,1].
func (e EvidenceLevel) Weight() float64 {
	switch e {
	case EvidenceStrong:
		return 1.0
	case EvidenceModerate:
		return 0.8
	case EvidenceWeak:
		return 0.6
	case EvidenceInsufficient:
		return 0.4
	case EvidenceConflicting:
		return 0.2
	}
	return 0
}

// AtLeast lists the levels at or above min, strongest first.
func AtLeast(min EvidenceLevel) []EvidenceLevel {
	out := make([]EvidenceLevel, 0, len(EvidenceLevels))
	for _, lvl := range EvidenceLevels {
		if lvl.Rank() <= min.Rank() {
			out = append(out, lvl)
		}
	}
	return out
}

type InteractionType string

const (
	InteractionSynergistic  InteractionType = "synergistic"
	InteractionAntagonistic InteractionType = "antagonistic"
	InteractionAdditive     InteractionType = "additive"
	InteractionCompetitive  InteractionType = "competitive"
	InteractionBeneficial   InteractionType = "beneficial"
)

func (t InteractionType) Valid() bool {
	switch t {
	case InteractionSynergistic, InteractionAntagonistic, InteractionAdditive, InteractionCompetitive, InteractionBeneficial:
		return true
	}
	return false
}

// Strength is the fixed edge strength used for this interaction kind.
func (t InteractionType) Strength() float64 {
	switch t {
	case InteractionSynergistic:
		return 0.8
	case InteractionAntagonistic:
		return 0.7
	case InteractionAdditive, InteractionCompetitive:
		return 0.6
	case InteractionBeneficial:
		return 0.9
	}
	return 0.5
}

type Severity string

const (
	SeveritySevere     Severity = "severe"
	SeverityModerate   Severity = "moderate"
	SeverityMinor      Severity = "minor"
	SeverityBeneficial Severity = "beneficial"
)

func (s Severity) Valid() bool {
	switch s {
	case SeveritySevere, SeverityModerate, SeverityMinor, SeverityBeneficial:
		return true
	}
	return false
}
