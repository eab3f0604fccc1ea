package decision

import (
	"fmt"
	"strings"

	"github.com/MatteoMarello/bidpilot-mvp/internal/domain"
)

// maxUncertainties caps the open-question list so the report stays readable;
// blocking questions always survive the cut first.
const maxUncertainties = 8

// BuildUncertainties turns UNKNOWN results into explicit questions for the
// operator, then appends the standing questions certain tender features
// always raise. Not knowing is a first-class output: each question states
// what is missing and why it matters.
func BuildUncertainties(t *domain.TenderRequirements, results []domain.RequirementResult) []domain.Uncertainty {
	var blocking, minor []domain.Uncertainty

	for _, r := range results {
		if r.Status != domain.StatusUnknown {
			continue
		}
		u := domain.Uncertainty{
			Question:      questionFor(r),
			WhyNeeded:     r.Message,
			BlocksVerdict: r.Severity == domain.SeverityHardKO,
		}
		if u.BlocksVerdict {
			blocking = append(blocking, u)
		} else {
			minor = append(minor, u)
		}
	}

	blocking = append(blocking, standingQuestions(t, results)...)

	out := append(blocking, minor...)
	if len(out) > maxUncertainties {
		out = out[:maxUncertainties]
	}
	return out
}

// standingQuestions covers the obligations no document can prove fulfilled:
// booking the site visit, the ANAC fee when the tender is silent, and
// designer availability on design-build procedures without a confirmed team.
func standingQuestions(t *domain.TenderRequirements, results []domain.RequirementResult) []domain.Uncertainty {
	var out []domain.Uncertainty
	if t.SiteVisitMandatory.IsYes() {
		out = append(out, domain.Uncertainty{
			Question:      "Il sopralluogo è già stato prenotato o effettuato? Serve l'attestato.",
			WhyNeeded:     "Sopralluogo obbligatorio a pena di esclusione.",
			BlocksVerdict: true,
		})
	}
	if t.ANACFeeRequired.IsUnknown() {
		out = append(out, domain.Uncertainty{
			Question:      "Il bando richiede il pagamento del contributo ANAC? Verificare l'articolo sul contributo.",
			WhyNeeded:     "Il mancato pagamento comporta l'esclusione.",
			BlocksVerdict: true,
		})
	}
	if t.Design.DesignBuild.IsYes() && !resultIsOK(results, "G1") {
		out = append(out, domain.Uncertainty{
			Question:      "Sono disponibili progettisti indicabili nell'offerta?",
			WhyNeeded:     "Appalto integrato: i progettisti vanno indicati in offerta.",
			BlocksVerdict: true,
		})
	}
	return out
}

func resultIsOK(results []domain.RequirementResult, id string) bool {
	for _, r := range results {
		if r.ID == id {
			return r.Status == domain.StatusOK
		}
	}
	return false
}

func questionFor(r domain.RequirementResult) string {
	if len(r.CompanyGap.MissingData) > 0 {
		return fmt.Sprintf("%s: reperire %s.", r.Name, strings.Join(r.CompanyGap.MissingData, ", "))
	}
	return fmt.Sprintf("%s: verificare il requisito sui documenti di gara.", r.Name)
}
