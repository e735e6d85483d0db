package recommendation

import (
	"fmt"
	"strings"

	"github.com/yungbote/suplementor-backend/internal/domain/profile"
	"github.com/yungbote/suplementor-backend/internal/domain/supplement"
)

const currencyEUR = "EUR"

type CostEstimate struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency"`
}

type Stack struct {
	Name                 string       `json:"name"`
	PolishName           string       `json:"polish_name"`
	Supplements          []Result     `json:"supplements"`
	TotalScore           float64      `json:"total_score"`
	Synergies            []string     `json:"synergies"`
	PolishSynergies      []string     `json:"polish_synergies"`
	Warnings             []string     `json:"warnings"`
	PolishWarnings       []string     `json:"polish_warnings"`
	EstimatedMonthlyCost CostEstimate `json:"estimated_monthly_cost"`
}

type StackOptions struct {
	MaxSize int
	// Budget caps the summed average monthly cost; nil means unlimited.
	Budget *float64
	Polish bool
}

type stackBuilder struct {
	opts      StackOptions
	byID      map[string]Result
	added     map[string]bool
	items     []Result
	totalCost float64
}

func (b *stackBuilder) full() bool { return len(b.items) >= b.opts.MaxSize }

func (b *stackBuilder) tryAdd(r Result) bool {
	if b.full() || b.added[r.SupplementID] {
		return false
	}
	if b.opts.Budget != nil && b.totalCost+r.MonthlyCost > *b.opts.Budget {
		return false
	}
	b.totalCost += r.MonthlyCost
	b.items = append(b.items, r)
	b.added[r.SupplementID] = true
	return true
}

// BuildStack greedily assembles up to opts.MaxSize supplements from the top
// 2×MaxSize recommendations, pulling in each pick's synergy partners when they
// are among the candidates. The result is not optimal under a budget.
func (e *Engine) BuildStack(catalog []*supplement.Supplement, p profile.UserProfile, opts StackOptions) Stack {
	if opts.MaxSize <= 0 {
		opts.MaxSize = DefaultMaxStack
	}
	p = p.Normalized()
	candidates := e.Recommend(catalog, p, opts.MaxSize*2)

	b := &stackBuilder{
		opts:  opts,
		byID:  make(map[string]Result, len(candidates)),
		added: make(map[string]bool, opts.MaxSize),
		items: make([]Result, 0, opts.MaxSize),
	}
	for _, c := range candidates {
		b.byID[c.SupplementID] = c
	}

	for _, c := range candidates {
		if b.full() {
			break
		}
		if !b.tryAdd(c) {
			continue
		}
		for _, partnerID := range c.SynergisticWith {
			if b.full() {
				break
			}
			partner, ok := b.byID[partnerID]
			if !ok {
				continue
			}
			b.tryAdd(partner)
		}
	}

	st := Stack{
		Name:            pick(opts.Polish, StackName, StackNamePL),
		PolishName:      StackNamePL,
		Supplements:     b.items,
		Synergies:       []string{},
		PolishSynergies: []string{},
		Warnings:        []string{},
		PolishWarnings:  []string{},
		EstimatedMonthlyCost: CostEstimate{
			Min:      b.totalCost * 0.8,
			Max:      b.totalCost * 1.2,
			Currency: currencyEUR,
		},
	}

	byIDInStack := make(map[string]Result, len(b.items))
	for _, r := range b.items {
		byIDInStack[r.SupplementID] = r
	}
	sum := 0
	for _, r := range b.items {
		sum += r.RecommendationScore
		names := []string{}
		polishNames := []string{}
		for _, id := range r.SynergisticWith {
			partner, ok := byIDInStack[id]
			if !ok {
				continue
			}
			names = append(names, partner.Name)
			polishNames = append(polishNames, partner.PolishName)
		}
		if len(names) == 0 {
			continue
		}
		st.Synergies = append(st.Synergies, fmt.Sprintf("%s works synergistically with %s", r.Name, strings.Join(names, ", ")))
		st.PolishSynergies = append(st.PolishSynergies, fmt.Sprintf("%s działa synergicznie z %s", r.PolishName, strings.Join(polishNames, ", ")))
	}
	if len(b.items) > 0 {
		st.TotalScore = float64(sum) / float64(len(b.items))
	}

	if p.TakesMedications() {
		st.Warnings = append(st.Warnings, msgStackMedications)
		st.PolishWarnings = append(st.PolishWarnings, msgStackMedicationsPL)
	}
	if p.ExperienceLevel == profile.ExperienceBeginner && len(b.items) > 3 {
		st.Warnings = append(st.Warnings, msgStackBeginner)
		st.PolishWarnings = append(st.PolishWarnings, msgStackBeginnerPL)
	}
	return st
}

// TotalMonthlyCost sums the average monthly cost of the stacked supplements.
func (s Stack) TotalMonthlyCost() float64 {
	total := 0.0
	for _, r := range s.Supplements {
		total += r.MonthlyCost
	}
	return total
}
