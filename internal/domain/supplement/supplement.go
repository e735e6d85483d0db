package supplement

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ActiveCompound struct {
	Name            string `json:"name"`
	PolishName      string `json:"polish_name,omitempty"`
	Concentration   string `json:"concentration,omitempty"`
	Bioavailability string `json:"bioavailability,omitempty"`
	HalfLife        string `json:"half_life,omitempty"`
}

type ClinicalApplication struct {
	Condition       string `json:"condition"`
	PolishCondition string `json:"polish_condition,omitempty"`
	// 0..10; nil means unrated.
	EffectivenessRating *float64      `json:"effectiveness_rating,omitempty" validate:"omitempty,gte=0,lte=10"`
	EvidenceLevel       EvidenceLevel `json:"evidence_level,omitempty" validate:"omitempty,oneof=STRONG MODERATE WEAK INSUFFICIENT CONFLICTING"`
	RecommendedDose     string        `json:"recommended_dose,omitempty"`
}

type Mechanism struct {
	ID string `json:"id,omitempty"`
	// NodeID references a knowledge node directly; name matching is the fallback.
	NodeID            string        `json:"node_id,omitempty"`
	Name              string        `json:"name" validate:"required"`
	PolishName        string        `json:"polish_name,omitempty"`
	Pathway           string        `json:"pathway,omitempty"`
	PolishPathway     string        `json:"polish_pathway,omitempty"`
	Description       string        `json:"description,omitempty"`
	PolishDescription string        `json:"polish_description,omitempty"`
	TargetSystems     []string      `json:"target_systems,omitempty"`
	EvidenceLevel     EvidenceLevel `json:"evidence_level,omitempty" validate:"omitempty,oneof=STRONG MODERATE WEAK INSUFFICIENT CONFLICTING"`
}

type DoseRange struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Unit string  `json:"unit"`
}

type StandardDose struct {
	Amount          float64 `json:"amount"`
	Unit            string  `json:"unit"`
	Frequency       string  `json:"frequency"`
	PolishFrequency string  `json:"polish_frequency,omitempty"`
}

type DosageGuidelines struct {
	TherapeuticRange        DoseRange     `json:"therapeutic_range"`
	StandardDose            *StandardDose `json:"standard_dose,omitempty"`
	Timing                  []string      `json:"timing,omitempty"`
	WithFood                bool          `json:"with_food"`
	Contraindications       []string      `json:"contraindications,omitempty"`
	PolishContraindications []string      `json:"polish_contraindications,omitempty"`
}

type Interaction struct {
	Substance       string `json:"substance" validate:"required"`
	PolishSubstance string `json:"polish_substance,omitempty"`
	// SubstanceID references another supplement (or knowledge node) directly.
	SubstanceID       string          `json:"substance_id,omitempty"`
	Type              InteractionType `json:"type" validate:"required,oneof=synergistic antagonistic additive competitive beneficial"`
	Severity          Severity        `json:"severity" validate:"required,oneof=severe moderate minor beneficial"`
	Mechanism         string          `json:"mechanism,omitempty"`
	PolishMechanism   string          `json:"polish_mechanism,omitempty"`
	Description       string          `json:"description,omitempty"`
	PolishDescription string          `json:"polish_description,omitempty"`
	EvidenceLevel     EvidenceLevel   `json:"evidence_level,omitempty" validate:"omitempty,oneof=STRONG MODERATE WEAK INSUFFICIENT CONFLICTING"`
}

type SideEffect struct {
	Effect       string `json:"effect"`
	PolishEffect string `json:"polish_effect,omitempty"`
	Frequency    string `json:"frequency,omitempty"`
	Severity     string `json:"severity,omitempty"`
	Reversible   bool   `json:"reversible"`
}

type ResearchStudy struct {
	Title         string        `json:"title"`
	PolishTitle   string        `json:"polish_title,omitempty"`
	Journal       string        `json:"journal,omitempty"`
	Year          int           `json:"year,omitempty"`
	StudyType     string        `json:"study_type,omitempty"`
	EvidenceLevel EvidenceLevel `json:"evidence_level,omitempty"`
	PubMedID      string        `json:"pubmed_id,omitempty"`
}

type CostRange struct {
	Min      float64 `json:"min"`
	Average  float64 `json:"average"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency,omitempty"`
}

type EconomicData struct {
	MonthlySupplyCost CostRange `json:"monthly_supply_cost"`
}

type Supplement struct {
	ID                string                                   `gorm:"column:id;primaryKey" json:"id" validate:"required,max=128"`
	Name              string                                   `gorm:"column:name;not null" json:"name" validate:"required"`
	PolishName        string                                   `gorm:"column:polish_name;not null;index" json:"polish_name" validate:"required"`
	ScientificName    string                                   `gorm:"column:scientific_name" json:"scientific_name,omitempty"`
	CommonNames       datatypes.JSONSlice[string]              `gorm:"column:common_names" json:"common_names,omitempty"`
	PolishCommonNames datatypes.JSONSlice[string]              `gorm:"column:polish_common_names" json:"polish_common_names,omitempty"`
	Category          Category                                 `gorm:"column:category;not null;index" json:"category" validate:"required,oneof=VITAMIN MINERAL AMINO_ACID FATTY_ACID HERB NOOTROPIC ADAPTOGEN COENZYME PROBIOTIC ENZYME OTHER"`
	Description       string                                   `gorm:"column:description;type:text" json:"description,omitempty"`
	PolishDescription string                                   `gorm:"column:polish_description;type:text" json:"polish_description,omitempty"`
	EvidenceLevel     EvidenceLevel                            `gorm:"column:evidence_level;not null;index" json:"evidence_level" validate:"required,oneof=STRONG MODERATE WEAK INSUFFICIENT CONFLICTING"`
	ActiveCompounds   datatypes.JSONSlice[ActiveCompound]      `gorm:"column:active_compounds" json:"active_compounds,omitempty"`
	Clinical          datatypes.JSONSlice[ClinicalApplication] `gorm:"column:clinical_applications" json:"clinical_applications,omitempty" validate:"omitempty,dive"`
	Mechanisms        datatypes.JSONSlice[Mechanism]           `gorm:"column:mechanisms" json:"mechanisms,omitempty" validate:"omitempty,dive"`
	Dosage            datatypes.JSONType[DosageGuidelines]     `gorm:"column:dosage_guidelines" json:"dosage_guidelines"`
	Interactions      datatypes.JSONSlice[Interaction]         `gorm:"column:interactions" json:"interactions,omitempty" validate:"omitempty,dive"`
	SideEffects       datatypes.JSONSlice[SideEffect]          `gorm:"column:side_effects" json:"side_effects,omitempty"`
	Studies           datatypes.JSONSlice[ResearchStudy]       `gorm:"column:research_studies" json:"research_studies,omitempty"`
	Tags              datatypes.JSONSlice[string]              `gorm:"column:tags" json:"tags,omitempty"`
	Economic          datatypes.JSONType[EconomicData]         `gorm:"column:economic_data" json:"economic_data"`
	IsActive          bool                                     `gorm:"column:is_active;not null;index" json:"is_active"`
	CreatedAt         time.Time                                `gorm:"column:created_at" json:"created_at"`
	UpdatedAt         time.Time                                `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt         gorm.DeletedAt                           `gorm:"column:deleted_at;index" json:"-"`
}

func (Supplement) TableName() string { return "supplement" }

// DosageGuidelines returns the stored dosage document.
func (s *Supplement) DosageGuidelines() DosageGuidelines { return s.Dosage.Data() }

// MonthlyCost is the average monthly supply cost, 0 when unknown.
func (s *Supplement) MonthlyCost() float64 {
	c := s.Economic.Data().MonthlySupplyCost.Average
	if c < 0 {
		return 0
	}
	return c
}
