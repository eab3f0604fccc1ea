package rules

import (
	"fmt"
	"strings"

	"github.com/MatteoMarello/bidpilot-mvp/internal/domain"
)

// Operational-feasibility family: mandatory start date (M1) and the execution
// constraints extracted from the tender (M2_*). Hard constraints on occupied
// or sensitive sites weigh more than generic ones.
func evalOperational(in Input) []domain.RequirementResult {
	var out []domain.RequirementResult

	if r := evalMandatoryStart(in); r != nil {
		out = append(out, *r)
	}
	out = append(out, evalExecutionConstraints(in)...)

	return out
}

// M1: a mandatory start date the company cannot meet is an operational, not
// legal, problem. The profile only states constraints as free text, so the
// check surfaces the comparison rather than deciding it.
func evalMandatoryStart(in Input) *domain.RequirementResult {
	t := in.Tender
	if t.MandatoryStartDate == nil {
		return nil
	}
	evidence := ev(t.MandatoryStartEvidence, "Tempi di esecuzione")
	date := t.MandatoryStartDate.Format("2006-01-02")

	if in.passed(t.MandatoryStartDate) {
		r := riskFlag("M1", "Data di inizio tassativa", domain.CategoryOperational,
			domain.ConfidenceCertain,
			fmt.Sprintf("La data di inizio lavori indicata (%s) è già trascorsa: probabile refuso o proroga, chiedere chiarimento.", date),
			evidence)
		return &r
	}

	days := in.daysUntil(*t.MandatoryStartDate)
	if in.Company.StartDateConstraints != "" {
		r := riskFlag("M1", "Data di inizio tassativa", domain.CategoryOperational,
			domain.ConfidenceCertain,
			fmt.Sprintf("Inizio lavori tassativo il %s (%d giorni); vincoli dichiarati dall'impresa: %s. Verificare la compatibilità dei cantieri in corso.",
				date, days, in.Company.StartDateConstraints),
			evidence)
		return &r
	}
	r := ok("M1", "Data di inizio tassativa", domain.CategoryOperational,
		fmt.Sprintf("Inizio lavori previsto il %s (%d giorni): nessun vincolo di agenda dichiarato.", date, days),
		evidence)
	return &r
}

// sensitive site markers that raise a constraint from caution to high
// operational risk.
var hardSiteMarkers = []string{"scuola", "scolastic", "ospedal", "sanitari", "occupat", "in esercizio", "tassativ"}

func constraintIsSevere(c domain.ExecutionConstraint) bool {
	if c.Hard {
		return true
	}
	text := strings.ToLower(c.Type + " " + c.Description)
	for _, marker := range hardSiteMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

// M2_*: each extracted constraint becomes its own flag so mitigation can be
// tracked per item.
func evalExecutionConstraints(in Input) []domain.RequirementResult {
	var out []domain.RequirementResult
	for i, c := range in.Tender.ExecutionConstraints {
		id := fmt.Sprintf("M2_%d", i+1)
		name := "Vincolo di esecuzione"
		if c.Type != "" {
			name = "Vincolo: " + c.Type
		}
		msg := c.Description
		if c.Date != nil {
			msg += fmt.Sprintf(" (riferimento temporale: %s)", c.Date.Format("2006-01-02"))
		}
		conf := domain.ConfidenceCertain
		if !constraintIsSevere(c) {
			conf = domain.ConfidenceAmbiguous
		}
		out = append(out, riskFlag(id, name, domain.CategoryOperational, conf, msg,
			ev(c.Evidence, "Vincoli di esecuzione")))
	}
	return out
}
