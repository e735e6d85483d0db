package interaction

import (
	"fmt"
	"strings"

	"github.com/yungbote/suplementor-backend/internal/domain/supplement"
)

type Risk string

const (
	RiskNone   Risk = "none"
	RiskLow    Risk = "low"
	RiskMedium Risk = "medium"
	RiskHigh   Risk = "high"
)

const (
	MinSupplements = 2
	MaxSupplements = 10

	msgTooFew   = "At least 2 supplements required for interaction analysis"
	msgTooFewPL = "Wymagane są co najmniej 2 suplementy do analizy interakcji"
)

// Pair is one interaction declared by Supplement1 that names Supplement2.
type Pair struct {
	Supplement1       string                     `json:"supplement1"`
	Supplement2       string                     `json:"supplement2"`
	PolishSupplement1 string                     `json:"polish_supplement1"`
	PolishSupplement2 string                     `json:"polish_supplement2"`
	SupplementID1     string                     `json:"supplement_id1"`
	SupplementID2     string                     `json:"supplement_id2"`
	Type              supplement.InteractionType `json:"type"`
	Severity          supplement.Severity        `json:"severity"`
	Strength          float64                    `json:"strength"`
	Mechanism         string                     `json:"mechanism,omitempty"`
	PolishMechanism   string                     `json:"polish_mechanism,omitempty"`
	Description       string                     `json:"description,omitempty"`
	PolishDescription string                     `json:"polish_description,omitempty"`
	EvidenceLevel     supplement.EvidenceLevel   `json:"evidence_level,omitempty"`
	// Referenced is true when the pair was linked by substance_id rather than by name.
	Referenced bool `json:"referenced"`
}

type Report struct {
	OverallRisk     Risk     `json:"overall_risk"`
	Interactions    []Pair   `json:"interactions"`
	Warnings        []string `json:"warnings"`
	PolishWarnings  []string `json:"polish_warnings"`
	SupplementCount int      `json:"supplement_count"`
	Message         string   `json:"message,omitempty"`
	PolishMessage   string   `json:"polish_message,omitempty"`
}

// matches reports whether ix (declared on some supplement) refers to other.
// An explicit substance_id wins; names are only compared when it is absent.
func matches(ix supplement.Interaction, other *supplement.Supplement) (ok bool, referenced bool) {
	if ix.SubstanceID != "" {
		return ix.SubstanceID == other.ID, true
	}
	if other.Name != "" && ix.Substance != "" &&
		strings.Contains(strings.ToLower(ix.Substance), strings.ToLower(other.Name)) {
		return true, false
	}
	if other.PolishName != "" && ix.PolishSubstance != "" &&
		strings.Contains(strings.ToLower(ix.PolishSubstance), strings.ToLower(other.PolishName)) {
		return true, false
	}
	return false, false
}

// Analyze checks every pair (i<j) of sups for interactions declared on the
// first member. An empty severity filter keeps every severity.
func Analyze(sups []*supplement.Supplement, severityFilter supplement.Severity) Report {
	list := make([]*supplement.Supplement, 0, len(sups))
	for _, s := range sups {
		if s != nil {
			list = append(list, s)
		}
	}
	rep := Report{
		Interactions:    []Pair{},
		Warnings:        []string{},
		PolishWarnings:  []string{},
		SupplementCount: len(list),
	}
	if len(list) < MinSupplements {
		rep.OverallRisk = RiskNone
		rep.Message = msgTooFew
		rep.PolishMessage = msgTooFewPL
		return rep
	}

	for i := 0; i < len(list); i++ {
		for j := i + 1; j < len(list); j++ {
			a, b := list[i], list[j]
			for _, ix := range a.Interactions {
				ok, referenced := matches(ix, b)
				if !ok {
					continue
				}
				if severityFilter != "" && ix.Severity != severityFilter {
					continue
				}
				rep.Interactions = append(rep.Interactions, Pair{
					Supplement1:       a.Name,
					Supplement2:       b.Name,
					PolishSupplement1: a.PolishName,
					PolishSupplement2: b.PolishName,
					SupplementID1:     a.ID,
					SupplementID2:     b.ID,
					Type:              ix.Type,
					Severity:          ix.Severity,
					Strength:          ix.Type.Strength(),
					Mechanism:         ix.Mechanism,
					PolishMechanism:   ix.PolishMechanism,
					Description:       ix.Description,
					PolishDescription: ix.PolishDescription,
					EvidenceLevel:     ix.EvidenceLevel,
					Referenced:        referenced,
				})
				if ix.Severity == supplement.SeveritySevere || ix.Severity == supplement.SeverityModerate {
					polishDesc := ix.PolishDescription
					if polishDesc == "" {
						polishDesc = ix.Description
					}
					rep.Warnings = append(rep.Warnings, fmt.Sprintf("%s + %s: %s", a.Name, b.Name, ix.Description))
					rep.PolishWarnings = append(rep.PolishWarnings, fmt.Sprintf("%s + %s: %s", a.PolishName, b.PolishName, polishDesc))
				}
			}
		}
	}
	rep.OverallRisk = overallRisk(rep.Interactions)
	return rep
}

func overallRisk(pairs []Pair) Risk {
	risk := RiskLow
	for _, p := range pairs {
		switch p.Severity {
		case supplement.SeveritySevere:
			return RiskHigh
		case supplement.SeverityModerate:
			risk = RiskMedium
		case supplement.SeverityMinor, supplement.SeverityBeneficial:
		}
	}
	return risk
}
