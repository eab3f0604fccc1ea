package rules

import (
	"fmt"

	"github.com/MatteoMarello/bidpilot-mvp/internal/domain"
)

// Labor-cost family: disclosure of the estimated labor costs (N1) and their
// treatment in the rebate (N2). The own labor-cost indication in the offer is
// mandatory and its omission is ground for exclusion.
func evalLabor(in Input) []domain.RequirementResult {
	lc := in.Tender.LaborCosts
	evidence := ev(lc.Evidence, "Costi della manodopera")
	var out []domain.RequirementResult

	if lc.Indicated && lc.AmountEUR != nil {
		out = append(out, ok("N1", "Costi manodopera stimati", domain.CategoryLabor,
			fmt.Sprintf("Costi della manodopera stimati dalla stazione appaltante: %.0f€. Indicare in offerta i propri costi, a pena di esclusione.", *lc.AmountEUR),
			evidence))
	} else {
		out = append(out, unknown("N1", "Costi manodopera stimati", domain.CategoryLabor,
			domain.SeveritySoftRisk,
			"Stima dei costi della manodopera non rilevata: verificarla nei documenti. L'indicazione dei propri costi in offerta resta comunque obbligatoria.",
			[]string{"stima costi manodopera"}, evidence))
	}

	if lc.Indicated {
		if lc.SubjectToRebate {
			out = append(out, riskFlag("N2", "Manodopera ribassabile", domain.CategoryLabor,
				domain.ConfidenceCertain,
				"I costi della manodopera sono soggetti a ribasso: ogni riduzione va giustificata con una più efficiente organizzazione.",
				evidence))
		} else {
			out = append(out, ok("N2", "Manodopera non ribassabile", domain.CategoryLabor,
				"Costi della manodopera esclusi dal ribasso: da riportare invariati in offerta.", evidence))
		}
	}

	return out
}
