package rules

import (
	"fmt"
	"strings"

	"github.com/MatteoMarello/bidpilot-mvp/internal/domain"
)

// Multi-stage PPP family: stage structure (R1), economic-financial plan
// asseveration (R2), availability guarantee (R3). PPP procedures never get a
// hard no at screening time; every gap surfaces as a per-stage risk.
func evalPPP(in Input) []domain.RequirementResult {
	ppp := in.Tender.PPP
	if ppp == nil {
		return []domain.RequirementResult{
			unknown("R1", "Procedura PPP", domain.CategoryPPP, domain.SeveritySoftRisk,
				"Documento classificato come partenariato pubblico-privato ma privo dei dati di fase: verificare l'avviso.",
				[]string{"struttura delle fasi"}, nil),
		}
	}
	evidence := ev(ppp.Evidence, "Partenariato pubblico-privato")

	var out []domain.RequirementResult

	if len(ppp.Stages) > 0 {
		out = append(out, ok("R1", "Struttura a fasi", domain.CategoryPPP,
			fmt.Sprintf("Procedura articolata in %d fasi: %s. L'ammissione alla prima fase non impegna alle successive.",
				len(ppp.Stages), strings.Join(ppp.Stages, ", ")),
			evidence))
	} else {
		out = append(out, unknown("R1", "Struttura a fasi", domain.CategoryPPP, domain.SeveritySoftRisk,
			"Fasi della procedura non rilevate nei documenti: verificare l'avviso.",
			[]string{"articolazione delle fasi"}, evidence))
	}

	if ppp.RequiresFinancialPlan.IsYes() {
		out = append(out, unknown("R2", "Piano economico-finanziario", domain.CategoryPPP,
			domain.SeverityHardKO,
			"Richiesto un piano economico-finanziario asseverato da un istituto di credito o società di revisione: incaricare l'asseveratore con largo anticipo.",
			[]string{"PEF asseverato"}, evidence))
	}

	if ppp.AvailabilityGuarantee.IsYes() {
		out = append(out, riskFlag("R3", "Garanzia di disponibilità", domain.CategoryPPP,
			domain.ConfidenceCertain,
			"Il contratto prevede un canone di disponibilità con relative garanzie: valutarne la sostenibilità finanziaria pluriennale.",
			evidence))
	}

	return out
}
