package rules

import (
	"fmt"
	"strings"

	"github.com/MatteoMarello/bidpilot-mvp/internal/domain"
)

// SOA qualification family: prevalent category (C1), secondary categories
// (C2_*), validity windows against the offer deadline (C3_*), explicit
// category equivalences (C4_*), inferred-category flags (C5_*), and class
// adequacy against the per-category amount (C6_*).
func evalQualification(in Input) []domain.RequirementResult {
	var out []domain.RequirementResult

	if r := evalPrevalentCategory(in); r != nil {
		out = append(out, *r)
	}
	out = append(out, evalSecondaryCategories(in)...)
	out = append(out, evalAttestationValidity(in)...)
	out = append(out, evalCategoryEquivalences(in)...)
	out = append(out, evalInferredCategories(in)...)
	out = append(out, evalClassAmountAdequacy(in)...)

	return out
}

// effectiveAttestation resolves the attestation satisfying a required
// category, honoring the tender's explicit equivalence declarations. It
// reports which category code actually matched.
func effectiveAttestation(in Input, required string) (*domain.Attestation, string) {
	if att := in.Company.AttestationFor(required); att != nil {
		return att, required
	}
	for _, eq := range in.Tender.CategoryEquivalences {
		if strings.EqualFold(eq.Required, required) {
			if att := in.Company.AttestationFor(eq.Accepted); att != nil {
				return att, eq.Accepted
			}
		}
	}
	return nil, ""
}

// attestationCoversDeadline reports whether the attestation expiry falls
// after the offer deadline, and whether that could be judged at all.
// Validity "today" is not enough: the attestation must still be valid when
// the offer is opened. A missing expiry date is not a failure, it is an
// open question.
func attestationCoversDeadline(in Input, att *domain.Attestation) (covers, known bool) {
	if att.Expiry == nil {
		return false, false
	}
	if att.Expiry.Before(in.Now) {
		return false, true
	}
	if d := in.Tender.OfferDeadline(); d != nil && d.Date != nil {
		return att.Expiry.After(*d.Date), true
	}
	return true, true
}

// coversOfferDeadline is the boolean view for call sites that have already
// ruled out a missing expiry.
func coversOfferDeadline(in Input, att *domain.Attestation) bool {
	covers, _ := attestationCoversDeadline(in, att)
	return covers
}

// C1: the prevalent category must be owned at sufficient class, possibly via
// an avvalimento/RTI structure.
func evalPrevalentCategory(in Input) *domain.RequirementResult {
	prev := in.Tender.PrevalentCategory()
	if prev == nil {
		if len(in.Tender.Categories) == 0 && in.Tender.WorksAmountEUR == nil {
			// Nothing to qualify against: the family does not apply.
			return nil
		}
		r := unknown("C1", "Categoria prevalente", domain.CategoryQualification, domain.SeverityHardKO,
			"Nessuna categoria SOA prevalente rilevata nel bando: verificare il quadro delle lavorazioni.",
			[]string{"categoria prevalente"}, nil)
		return &r
	}

	name := fmt.Sprintf("SOA prevalente %s cl.%s", prev.Category, prev.Class)
	evidence := ev(prev.Evidence, "Requisiti SOA")
	conf := domain.ConfidenceCertain
	if prev.Inferred {
		conf = domain.ConfidenceAmbiguous
	}

	att, matched := effectiveAttestation(in, prev.Category)
	if att == nil {
		methods, constraints := capacityMethods(in, false)
		r := fixable("C1", name, domain.CategoryQualification,
			domain.SeverityHardKO, conf,
			fmt.Sprintf("Attestazione SOA %s classifica %s non posseduta.", prev.Category, prev.Class),
			methods, constraints,
			[]string{fmt.Sprintf("SOA %s cl.%s", prev.Category, prev.Class)}, evidence)
		return &r
	}

	covers, known := attestationCoversDeadline(in, att)
	if !known {
		r := unknown("C1", name, domain.CategoryQualification, domain.SeverityHardKO,
			fmt.Sprintf("SOA %s posseduta ma senza data di scadenza nel profilo: verificare che copra la scadenza dell'offerta.", matched),
			[]string{fmt.Sprintf("scadenza SOA %s", matched)}, evidence)
		return &r
	}
	if !covers {
		r := ko("C1", name, domain.CategoryQualification,
			domain.SeverityHardKO, conf,
			fmt.Sprintf("SOA %s scade il %s, prima della scadenza dell'offerta: avviare il rinnovo.",
				matched, att.Expiry.Format("2006-01-02")),
			[]string{fmt.Sprintf("rinnovo SOA %s", matched)}, evidence)
		return &r
	}

	if domain.ClassCovers(att.Class, prev.Class) {
		msg := fmt.Sprintf("SOA %s cl.%s posseduta e valida oltre la scadenza offerta.", matched, att.Class)
		if !strings.EqualFold(matched, prev.Category) {
			msg += fmt.Sprintf(" Copertura tramite equivalenza dichiarata con %s.", prev.Category)
		}
		r := ok("C1", name, domain.CategoryQualification, msg, evidence)
		return &r
	}

	methods, constraints := capacityMethods(in, false)
	gapMsg := fmt.Sprintf("SOA %s posseduta in cl.%s, richiesta cl.%s.", matched, att.Class, prev.Class)
	if reqCeil, unbounded, _ := domain.ClassCeilingEUR(prev.Class); !unbounded {
		if ownCeil, _, okc := domain.ClassCeilingEUR(att.Class); okc {
			gapMsg += fmt.Sprintf(" Gap di copertura: %.0f€.", reqCeil-ownCeil)
		}
	}
	r := fixable("C1", name, domain.CategoryQualification,
		domain.SeverityHardKO, conf, gapMsg,
		methods, constraints,
		[]string{fmt.Sprintf("SOA %s cl.%s", prev.Category, prev.Class)}, evidence)
	return &r
}

// C2_*: each secondary category must be owned, subcontracted within limits,
// or covered through a structure.
func evalSecondaryCategories(in Input) []domain.RequirementResult {
	var out []domain.RequirementResult
	for _, sc := range in.Tender.SecondaryCategories() {
		id := "C2_" + sc.Category
		name := fmt.Sprintf("SOA scorporabile %s", sc.Category)
		evidence := ev(sc.Evidence, "Categorie lavori")
		conf := domain.ConfidenceCertain
		if sc.Inferred {
			conf = domain.ConfidenceAmbiguous
		}

		att, matched := effectiveAttestation(in, sc.Category)
		if att != nil && domain.ClassCovers(att.Class, sc.Class) {
			covers, known := attestationCoversDeadline(in, att)
			if !known {
				out = append(out, unknown(id, name, domain.CategoryQualification, domain.SeverityHardKO,
					fmt.Sprintf("SOA %s posseduta ma senza data di scadenza nel profilo: verificare che copra la scadenza dell'offerta.", matched),
					[]string{fmt.Sprintf("scadenza SOA %s", matched)}, evidence))
				continue
			}
			if covers {
				out = append(out, ok(id, name, domain.CategoryQualification,
					fmt.Sprintf("SOA %s cl.%s posseduta.", matched, att.Class), evidence))
				continue
			}
		}

		includeSubcontract := !subcontractBanned(in.Tender, sc.Category)
		methods, constraints := capacityMethods(in, includeSubcontract)
		out = append(out, fixable(id, name, domain.CategoryQualification,
			domain.SeverityHardKO, conf,
			fmt.Sprintf("SOA %s classifica %s mancante o insufficiente.", sc.Category, sc.Class),
			methods, constraints,
			[]string{fmt.Sprintf("SOA %s cl.%s", sc.Category, sc.Class)}, evidence))
	}
	return out
}

func subcontractBanned(t *domain.TenderRequirements, category string) bool {
	for _, banned := range t.Participation.SubcontractBannedCats {
		if strings.EqualFold(banned, category) {
			return true
		}
	}
	return false
}

// C3_*: every owned attestation relevant to the tender is checked against
// the offer deadline, not just against today.
func evalAttestationValidity(in Input) []domain.RequirementResult {
	required := make(map[string]bool, len(in.Tender.Categories))
	for _, c := range in.Tender.Categories {
		required[strings.ToUpper(c.Category)] = true
	}

	var out []domain.RequirementResult
	for i := range in.Company.Attestations {
		att := &in.Company.Attestations[i]
		if !required[strings.ToUpper(att.Category)] {
			continue
		}
		id := "C3_" + att.Category
		name := fmt.Sprintf("Validità SOA %s", att.Category)

		switch {
		case att.Expiry == nil:
			out = append(out, unknown(id, name, domain.CategoryQualification, domain.SeverityHardKO,
				fmt.Sprintf("Data di scadenza SOA %s non disponibile nel profilo.", att.Category),
				[]string{fmt.Sprintf("scadenza SOA %s", att.Category)}, nil))
		case att.Expiry.Before(in.Now):
			out = append(out, ko(id, name, domain.CategoryQualification,
				domain.SeverityHardKO, domain.ConfidenceCertain,
				fmt.Sprintf("SOA %s scaduta il %s: rinnovare immediatamente.",
					att.Category, att.Expiry.Format("2006-01-02")),
				[]string{fmt.Sprintf("rinnovo SOA %s", att.Category)}, nil))
		case !coversOfferDeadline(in, att):
			out = append(out, ko(id, name, domain.CategoryQualification,
				domain.SeverityHardKO, domain.ConfidenceCertain,
				fmt.Sprintf("SOA %s scade il %s, prima della scadenza offerta: avviare il rinnovo.",
					att.Category, att.Expiry.Format("2006-01-02")),
				[]string{fmt.Sprintf("rinnovo anticipato SOA %s", att.Category)}, nil))
		default:
			out = append(out, ok(id, name, domain.CategoryQualification,
				fmt.Sprintf("SOA %s valida fino al %s.", att.Category, att.Expiry.Format("2006-01-02")), nil))
		}
	}
	return out
}

// C4_*: explicit equivalence declarations are recorded so the operator can
// see which ones the evaluation relied on.
func evalCategoryEquivalences(in Input) []domain.RequirementResult {
	var out []domain.RequirementResult
	for _, eq := range in.Tender.CategoryEquivalences {
		id := fmt.Sprintf("C4_%s_%s", eq.Required, eq.Accepted)
		name := fmt.Sprintf("Equivalenza %s ↔ %s", eq.Required, eq.Accepted)
		if in.Company.AttestationFor(eq.Accepted) != nil {
			out = append(out, ok(id, name, domain.CategoryQualification,
				fmt.Sprintf("Il bando ammette %s in luogo di %s: l'impresa possiede %s.",
					eq.Accepted, eq.Required, eq.Accepted),
				ev(eq.Evidence, "Equivalenze")))
			continue
		}
		out = append(out, riskFlag(id, name, domain.CategoryQualification, domain.ConfidenceCertain,
			fmt.Sprintf("Il bando ammette %s in luogo di %s, ma nessuna delle due è posseduta.",
				eq.Accepted, eq.Required),
			ev(eq.Evidence, "Equivalenze")))
	}
	return out
}

// C5_*: categories extraction marked as inferred never drive a hard verdict;
// they surface as weak-confidence flags for human confirmation.
func evalInferredCategories(in Input) []domain.RequirementResult {
	var out []domain.RequirementResult
	for _, c := range in.Tender.Categories {
		if !c.Inferred {
			continue
		}
		out = append(out, riskFlag("C5_"+c.Category,
			fmt.Sprintf("Categoria %s identificata per inferenza", c.Category),
			domain.CategoryQualification, domain.ConfidenceWeak,
			fmt.Sprintf("La categoria %s cl.%s non compare testualmente nel bando: confermare sul disciplinare prima di fare affidamento sull'esito.",
				c.Category, c.Class), nil))
	}
	return out
}

// C6_*: when the tender states a per-category amount, the required class
// must actually cover it; an owned higher class is reported as a bonus
// margin.
func evalClassAmountAdequacy(in Input) []domain.RequirementResult {
	var out []domain.RequirementResult
	for _, c := range in.Tender.Categories {
		if c.AmountEUR == nil || c.Class == "" {
			continue
		}
		ceiling, unbounded, okc := domain.ClassCeilingEUR(c.Class)
		if !okc || unbounded {
			continue
		}
		if *c.AmountEUR > ceiling {
			out = append(out, riskFlag("C6_"+c.Category,
				fmt.Sprintf("Importo categoria %s oltre la classifica", c.Category),
				domain.CategoryQualification, domain.ConfidenceAmbiguous,
				fmt.Sprintf("L'importo della categoria %s (%.0f€) supera il massimale della classifica %s richiesta (%.0f€): possibile refuso del bando, chiedere chiarimento.",
					c.Category, *c.AmountEUR, c.Class, ceiling),
				ev(c.Evidence, "Categorie lavori")))
		}
	}
	return out
}
