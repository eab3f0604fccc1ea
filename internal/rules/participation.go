package rules

import (
	"fmt"
	"strings"

	"github.com/MatteoMarello/bidpilot-mvp/internal/domain"
)

// Participation-structure family: allowed forms and RTI rules (J_*),
// avvalimento rules (K_*), subcontracting rules (L_*). These checks do not
// judge the company against the tender; they record the structural room the
// tender leaves open, so the remediation inferred elsewhere stays consistent
// with what the documents permit.
func evalParticipation(in Input) []domain.RequirementResult {
	var out []domain.RequirementResult
	out = append(out, evalRTIRules(in)...)
	out = append(out, evalAvvalimentoRules(in)...)
	out = append(out, evalSubcontractRules(in)...)
	return out
}

func evalRTIRules(in Input) []domain.RequirementResult {
	p := in.Tender.Participation
	evidence := ev(p.Evidence, "Forme di partecipazione")
	var out []domain.RequirementResult

	switch {
	case p.RTIAllowed.IsYes():
		msg := "Partecipazione in RTI ammessa."
		if p.RTIMinLeadQuotaPct != nil {
			msg = fmt.Sprintf("Partecipazione in RTI ammessa; quota minima della mandataria %.0f%%.", *p.RTIMinLeadQuotaPct)
		}
		out = append(out, ok("J1", "Raggruppamenti temporanei", domain.CategoryParticipation, msg, evidence))
	case p.RTIAllowed.IsNo():
		out = append(out, riskFlag("J1", "Raggruppamenti temporanei", domain.CategoryParticipation,
			domain.ConfidenceCertain,
			"Il bando esclude i raggruppamenti: eventuali carenze di qualificazione non sono sanabili via RTI.",
			evidence))
	default:
		out = append(out, unknown("J1", "Raggruppamenti temporanei", domain.CategoryParticipation,
			domain.SeveritySoftRisk,
			"Le regole sui raggruppamenti non sono esplicite: verificare il disciplinare prima di pianificare un RTI.",
			[]string{"regole RTI"}, evidence))
	}

	if p.RTIAllowed.IsYes() && p.RTIRules != "" {
		out = append(out, riskFlag("J2", "Regole specifiche RTI", domain.CategoryParticipation,
			domain.ConfidenceCertain,
			"Il bando detta regole specifiche per i raggruppamenti: "+p.RTIRules, evidence))
	}
	return out
}

func evalAvvalimentoRules(in Input) []domain.RequirementResult {
	p := in.Tender.Participation
	evidence := ev(p.Evidence, "Avvalimento")
	var out []domain.RequirementResult

	switch {
	case p.AvvalimentoAllowed.IsYes():
		out = append(out, ok("K1", "Avvalimento", domain.CategoryParticipation,
			"Avvalimento ammesso per i requisiti di capacità.", evidence))
	case p.AvvalimentoAllowed.IsNo():
		out = append(out, riskFlag("K1", "Avvalimento", domain.CategoryParticipation,
			domain.ConfidenceCertain,
			"Il bando esclude l'avvalimento: le carenze di qualificazione vanno risolte altrimenti.", evidence))
	default:
		out = append(out, unknown("K1", "Avvalimento", domain.CategoryParticipation,
			domain.SeveritySoftRisk,
			"L'ammissibilità dell'avvalimento non è esplicita nei documenti: in assenza di divieto è di regola ammesso, ma verificare.",
			[]string{"clausole avvalimento"}, evidence))
	}

	if len(p.AvvalimentoBannedRequisits) > 0 {
		out = append(out, riskFlag("K2", "Requisiti non avvalibili", domain.CategoryParticipation,
			domain.ConfidenceCertain,
			"Il bando vieta l'avvalimento per: "+strings.Join(p.AvvalimentoBannedRequisits, ", ")+".",
			evidence))
	}

	if p.AvvalimentoAllowed.IsYes() && !in.Company.WillingAvvalimento {
		out = append(out, riskFlag("K3", "Disponibilità avvalimento", domain.CategoryParticipation,
			domain.ConfidenceCertain,
			"L'impresa ha escluso il ricorso all'avvalimento: questa via di sanatoria non viene proposta.", nil))
	}
	return out
}

func evalSubcontractRules(in Input) []domain.RequirementResult {
	p := in.Tender.Participation
	evidence := ev(p.Evidence, "Subappalto")
	var out []domain.RequirementResult

	switch {
	case p.SubcontractMaxPct != nil && *p.SubcontractMaxPct > 0:
		out = append(out, ok("L1", "Subappalto", domain.CategoryParticipation,
			fmt.Sprintf("Subappalto ammesso entro il %.0f%% dell'importo contrattuale.", *p.SubcontractMaxPct),
			evidence))
	case p.SubcontractMaxPct != nil:
		out = append(out, riskFlag("L1", "Subappalto", domain.CategoryParticipation,
			domain.ConfidenceCertain,
			"Il bando esclude il subappalto: pianificare l'esecuzione interamente in proprio o in raggruppamento.",
			evidence))
	default:
		out = append(out, unknown("L1", "Subappalto", domain.CategoryParticipation,
			domain.SeveritySoftRisk,
			"Limiti di subappalto non esplicitati: verificare il disciplinare e la dichiarazione da rendere in offerta.",
			[]string{"limiti subappalto"}, evidence))
	}

	if len(p.SubcontractBannedCats) > 0 {
		out = append(out, riskFlag("L2", "Categorie non subappaltabili", domain.CategoryParticipation,
			domain.ConfidenceCertain,
			"Subappalto vietato per le categorie: "+strings.Join(p.SubcontractBannedCats, ", ")+".",
			evidence))
	}

	// L3: a declared intent to subcontract must appear in the offer; the
	// omission cannot be cured afterwards.
	if p.SubcontractMaxPct != nil && *p.SubcontractMaxPct > 0 && in.Company.WillingSubcontract {
		out = append(out, riskFlag("L3", "Dichiarazione di subappalto", domain.CategoryParticipation,
			domain.ConfidenceCertain,
			"Se si intende subappaltare, la dichiarazione va resa già in offerta: l'omissione preclude il subappalto in esecuzione.",
			evidence))
	}
	return out
}
