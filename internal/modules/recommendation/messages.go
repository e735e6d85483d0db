package recommendation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yungbote/suplementor-backend/internal/domain/profile"
	"github.com/yungbote/suplementor-backend/internal/domain/supplement"
)

const (
	msgConsultLabel   = "Consult product label"
	msgConsultLabelPL = "Sprawdź etykietę produktu"

	msgMinimumDose   = "Start with minimum effective dose"
	msgMinimumDosePL = "Zacznij od najmniejszej skutecznej dawki"

	msgConsultPhysician   = "Consult physician before starting supplementation"
	msgConsultPhysicianPL = "Skonsultuj się z lekarzem przed rozpoczęciem suplementacji"

	msgUnder18   = "Not recommended for individuals under 18"
	msgUnder18PL = "Nie zalecane dla osób poniżej 18 roku życia"

	msgStackMedications   = "You are taking medications. Consult your physician before starting this stack."
	msgStackMedicationsPL = "Przyjmujesz leki. Skonsultuj się z lekarzem przed rozpoczęciem tej suplementacji."

	msgStackBeginner   = "As a beginner, consider starting with fewer supplements and adding more gradually."
	msgStackBeginnerPL = "Jako początkujący, rozważ rozpoczęcie od mniejszej liczby suplementów i stopniowe dodawanie kolejnych."

	StackName   = "Personalized Supplement Stack"
	StackNamePL = "Spersonalizowany Stos Suplementów"
)

func reasoning(s *supplement.Supplement, matched []profile.Goal, exp profile.ExperienceLevel, polish bool) string {
	labels := make([]string, 0, len(matched))
	for _, g := range matched {
		if gp, ok := goalProfiles[g]; ok {
			labels = append(labels, gp.Label(polish))
		}
	}
	goals := strings.Join(labels, ", ")
	if polish {
		return fmt.Sprintf("Zalecany dla celów: %s. Poziom dowodów: %s. Odpowiedni dla poziomu doświadczenia: %s.", goals, s.EvidenceLevel, exp)
	}
	return fmt.Sprintf("Recommended for goals: %s. Evidence level: %s. Suitable for experience level: %s.", goals, s.EvidenceLevel, exp)
}

func dosage(s *supplement.Supplement, polish bool) string {
	sd := s.DosageGuidelines().StandardDose
	if sd == nil {
		if polish {
			return msgConsultLabelPL
		}
		return msgConsultLabel
	}
	freq := sd.Frequency
	if polish && sd.PolishFrequency != "" {
		freq = sd.PolishFrequency
	}
	return fmt.Sprintf("%s%s %s", strconv.FormatFloat(sd.Amount, 'f', -1, 64), sd.Unit, freq)
}

func safetyNotes(p profile.UserProfile, polish bool) []string {
	notes := []string{}
	if p.ExperienceLevel == profile.ExperienceBeginner {
		notes = append(notes, pick(polish, msgMinimumDose, msgMinimumDosePL))
	}
	if p.TakesMedications() {
		notes = append(notes, pick(polish, msgConsultPhysician, msgConsultPhysicianPL))
	}
	return notes
}

type contraindication struct {
	Reason       string
	PolishReason string
	Severity     string
}

func contraindications(p profile.UserProfile) []contraindication {
	out := []contraindication{}
	if p.Age < 18 {
		out = append(out, contraindication{Reason: msgUnder18, PolishReason: msgUnder18PL, Severity: "moderate"})
	}
	return out
}

func pick(polish bool, en, pl string) string {
	if polish {
		return pl
	}
	return en
}
