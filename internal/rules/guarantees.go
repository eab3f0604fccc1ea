package rules

import (
	"fmt"

	"github.com/MatteoMarello/bidpilot-mvp/internal/domain"
)

// Guarantee family: provisional guarantee (I1), definitive-guarantee
// commitment (I2), premium reductions for certified companies (I3).
func evalGuarantees(in Input) []domain.RequirementResult {
	g := in.Tender.Guarantees
	if g == nil {
		return nil
	}
	evidence := ev(g.Evidence, "Garanzie")

	var out []domain.RequirementResult

	if g.ProvisionalAmountEUR != nil || g.ProvisionalPct != nil {
		amount := provisionalAmount(in.Tender)
		msg := "Garanzia provvisoria richiesta"
		if amount > 0 {
			msg = fmt.Sprintf("Garanzia provvisoria di %.0f€ da costituire prima della presentazione dell'offerta.", amount)
		} else {
			msg += ": importo da calcolare sulla base d'asta."
		}
		out = append(out, unknown("I1", "Garanzia provvisoria", domain.CategoryGuarantee,
			domain.SeverityHardKO, msg,
			[]string{"polizza fideiussoria provvisoria"}, evidence))

		if hasValidISO9001(in) {
			out = append(out, premiant("I3", "Riduzione garanzia", domain.CategoryGuarantee,
				"Certificazione ISO 9001 valida: garanzia provvisoria riducibile del 50% (art. 106 d.lgs. 36/2023)."))
		}
	}

	if g.DefinitivePct != nil {
		out = append(out, unknown("I2", "Impegno garanzia definitiva", domain.CategoryGuarantee,
			domain.SeveritySoftRisk,
			fmt.Sprintf("In caso di aggiudicazione è dovuta la garanzia definitiva (%.0f%%): verificare la disponibilità del fideiussore.", *g.DefinitivePct),
			[]string{"impegno del fideiussore"}, evidence))
	}

	return out
}

func provisionalAmount(t *domain.TenderRequirements) float64 {
	g := t.Guarantees
	if g.ProvisionalAmountEUR != nil {
		return *g.ProvisionalAmountEUR
	}
	if g.ProvisionalPct != nil && t.BaseAmountEUR != nil {
		return *t.BaseAmountEUR * *g.ProvisionalPct / 100
	}
	return 0
}

func hasValidISO9001(in Input) bool {
	for i := range in.Company.Certifications {
		c := &in.Company.Certifications[i]
		if matchCertification("ISO 9001", c.Type) == certNoMatch {
			continue
		}
		if c.Valid && !certExpired(in, c) {
			return true
		}
	}
	return false
}
