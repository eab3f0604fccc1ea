package decision

import (
	"fmt"
	"strings"

	"github.com/MatteoMarello/bidpilot-mvp/internal/domain"
)

// BuildActionPlan derives the remediation plan from the FIXABLE results.
// The recommended path is the method allowed by the largest number of
// fixable gaps; on a tie the method seen first in result order wins, so the
// plan is deterministic. RecommendedPath is "none" exactly when nothing is
// fixable.
func BuildActionPlan(results []domain.RequirementResult) domain.ActionPlan {
	counts := map[string]int{}
	var order []string
	var fixables []domain.RequirementResult

	for _, r := range results {
		if r.Status != domain.StatusFixable {
			continue
		}
		fixables = append(fixables, r)
		for _, m := range r.Fixability.AllowedMethods {
			if counts[m] == 0 {
				order = append(order, m)
			}
			counts[m]++
		}
	}

	if len(fixables) == 0 {
		return domain.ActionPlan{RecommendedPath: "none", Steps: []domain.ActionStep{}}
	}

	best := order[0]
	for _, m := range order {
		if counts[m] > counts[best] {
			best = m
		}
	}

	steps := methodSteps(best, fixables)
	steps = append(steps, domain.ActionStep{
		Step:  len(steps) + 1,
		Title: "Predisporre la documentazione di gara",
		Why:   "La struttura scelta va riflessa in DGUE, dichiarazioni e contratti allegati all'offerta.",
		InputsNeeded: []string{
			"DGUE di tutti i soggetti coinvolti",
			"documentazione della struttura scelta",
		},
	})
	return domain.ActionPlan{RecommendedPath: best, Steps: steps}
}

func gapSummary(fixables []domain.RequirementResult) []string {
	var gaps []string
	for _, r := range fixables {
		gaps = append(gaps, r.CompanyGap.MissingAssets...)
	}
	return gaps
}

func methodSteps(method string, fixables []domain.RequirementResult) []domain.ActionStep {
	gaps := gapSummary(fixables)
	gapLine := strings.Join(gaps, "; ")

	switch method {
	case domain.MethodAvvalimento:
		return []domain.ActionStep{
			{
				Step:         1,
				Title:        "Individuare l'impresa ausiliaria",
				Why:          fmt.Sprintf("Servono i requisiti mancanti: %s.", gapLine),
				InputsNeeded: []string{"visura e attestazioni dell'ausiliaria"},
				Risks:        []string{"l'ausiliaria non può partecipare alla stessa gara"},
			},
			{
				Step:         2,
				Title:        "Formalizzare il contratto di avvalimento",
				Why:          "Il contratto deve indicare in modo specifico risorse, mezzi e personale messi a disposizione.",
				InputsNeeded: []string{"contratto di avvalimento", "dichiarazioni dell'ausiliaria"},
				Risks:        []string{"un contratto generico espone all'esclusione"},
			},
		}
	case domain.MethodRTI:
		return []domain.ActionStep{
			{
				Step:         1,
				Title:        "Individuare le imprese mandanti",
				Why:          fmt.Sprintf("Il raggruppamento deve coprire: %s.", gapLine),
				InputsNeeded: []string{"attestazioni delle mandanti", "disponibilità a raggrupparsi"},
				Risks:        []string{"le quote di esecuzione devono rispettare le qualificazioni di ciascuna"},
			},
			{
				Step:         2,
				Title:        "Definire quote e impegno a costituirsi",
				Why:          "Mandataria e mandanti dichiarano in offerta le rispettive quote di partecipazione ed esecuzione.",
				InputsNeeded: []string{"impegno alla costituzione del raggruppamento"},
			},
		}
	case domain.MethodSubcontract:
		return []domain.ActionStep{
			{
				Step:         1,
				Title:        "Pianificare il subappalto qualificante",
				Why:          fmt.Sprintf("Le lavorazioni non coperte vanno subappaltate a impresa qualificata: %s.", gapLine),
				InputsNeeded: []string{"limite di subappalto del bando"},
				Risks:        []string{"la dichiarazione di subappalto va resa già in offerta"},
			},
		}
	case domain.MethodDesigners:
		return []domain.ActionStep{
			{
				Step:         1,
				Title:        "Indicare o associare i progettisti",
				Why:          fmt.Sprintf("Gli obblighi di progettazione richiedono professionisti qualificati: %s.", gapLine),
				InputsNeeded: []string{"curricula e iscrizioni all'albo dei progettisti"},
				Risks:        []string{"i progettisti indicati devono possedere in proprio i requisiti"},
			},
		}
	default:
		return []domain.ActionStep{
			{
				Step:         1,
				Title:        "Colmare i requisiti mancanti",
				Why:          fmt.Sprintf("Requisiti da coprire prima dell'offerta: %s.", gapLine),
				InputsNeeded: gaps,
			},
		}
	}
}
