package rules

import (
	"fmt"

	"github.com/MatteoMarello/bidpilot-mvp/internal/domain"
)

// Procedural gates: the checks that can kill a participation regardless of
// qualifications. H1 site visit, H2 offer deadline, H3 clarifications, H4
// ANAC fee, H5 platform registration, H6 digital signature, H7 DGUE.
func evalProcedural(in Input) []domain.RequirementResult {
	var out []domain.RequirementResult

	if r := evalSiteVisit(in); r != nil {
		out = append(out, *r)
	}
	out = append(out, evalOfferDeadline(in))
	if r := evalClarificationsWindow(in); r != nil {
		out = append(out, *r)
	}
	if r := evalANACFee(in); r != nil {
		out = append(out, *r)
	}
	out = append(out, evalPlatform(in))
	out = append(out, evalDigitalSignature(in))
	if r := evalDGUE(in); r != nil {
		out = append(out, *r)
	}

	return out
}

// H1: mandatory site visit. A visit deadline already in the past is a
// certain, unfixable block; otherwise completion is unknowable from the
// documents alone.
func evalSiteVisit(in Input) *domain.RequirementResult {
	t := in.Tender
	if !t.SiteVisitMandatory.IsYes() {
		if t.SiteVisitMandatory.IsUnknown() && t.SiteVisitEvidence != "" {
			r := unknown("H1", "Sopralluogo", domain.CategoryProcedural, domain.SeveritySoftRisk,
				"Il bando menziona il sopralluogo ma non ne chiarisce l'obbligatorietà. Verificare il disciplinare.",
				[]string{"obbligatorietà sopralluogo"}, ev(t.SiteVisitEvidence, "Sopralluogo"))
			return &r
		}
		return nil
	}

	evidence := ev(t.SiteVisitEvidence, "Sopralluogo")
	deadlineNote := ""
	if d := t.DeadlineOf(domain.DeadlineSiteVisit); d != nil && d.Date != nil {
		if in.passed(d.Date) {
			r := ko("H1", "Sopralluogo obbligatorio", domain.CategoryProcedural,
				domain.SeverityHardKO, domain.ConfidenceCertain,
				fmt.Sprintf("Sopralluogo obbligatorio scaduto il %s: partecipazione impossibile.",
					d.Date.Format("2006-01-02")),
				nil, evidence)
			return &r
		}
		deadlineNote = fmt.Sprintf(" entro il %s", d.Date.Format("2006-01-02"))
	}

	r := unknown("H1", "Sopralluogo obbligatorio", domain.CategoryProcedural, domain.SeverityHardKO,
		"Sopralluogo obbligatorio a pena di esclusione"+deadlineNote+
			". Prenotare subito e conservare l'attestato.",
		[]string{"attestato di sopralluogo"}, evidence)
	return &r
}

// H2: offer submission deadline. A deadline already passed ends the analysis
// with a certain block; a missing deadline is itself a blocking unknown.
func evalOfferDeadline(in Input) domain.RequirementResult {
	d := in.Tender.OfferDeadline()
	if d == nil || d.Date == nil {
		return unknown("H2", "Scadenza presentazione offerta", domain.CategoryProcedural,
			domain.SeverityHardKO,
			"Scadenza di presentazione offerta non rilevata nei documenti. Verificare bando e piattaforma.",
			[]string{"data scadenza offerta"}, nil)
	}
	if in.passed(d.Date) {
		return ko("H2", "Scadenza presentazione offerta", domain.CategoryProcedural,
			domain.SeverityHardKO, domain.ConfidenceCertain,
			fmt.Sprintf("Termine di presentazione offerta già scaduto il %s.", d.Date.Format("2006-01-02")),
			nil, ev(d.Evidence, "Termini"))
	}
	return ok("H2", "Scadenza presentazione offerta", domain.CategoryProcedural,
		fmt.Sprintf("Offerta da presentare entro il %s (%d giorni).",
			d.Date.Format("2006-01-02"), in.daysUntil(*d.Date)),
		ev(d.Evidence, "Termini"))
}

// H3: clarification-request window, informational.
func evalClarificationsWindow(in Input) *domain.RequirementResult {
	d := in.Tender.DeadlineOf(domain.DeadlineClarifications)
	if d == nil || d.Date == nil {
		return nil
	}
	if in.passed(d.Date) {
		r := riskFlag("H3", "Termine quesiti", domain.CategoryProcedural, domain.ConfidenceCertain,
			fmt.Sprintf("Il termine per i quesiti è scaduto il %s: eventuali dubbi non sono più chiaribili formalmente.",
				d.Date.Format("2006-01-02")), ev(d.Evidence, "Termini"))
		return &r
	}
	r := ok("H3", "Termine quesiti", domain.CategoryProcedural,
		fmt.Sprintf("Quesiti ammessi fino al %s.", d.Date.Format("2006-01-02")),
		ev(d.Evidence, "Termini"))
	return &r
}

// H4: ANAC contribution. Applicability below threshold is a known point of
// legal ambiguity: it stays UNKNOWN unless the tender states it outright.
func evalANACFee(in Input) *domain.RequirementResult {
	t := in.Tender
	switch {
	case t.ANACFeeRequired.IsNo():
		return nil
	case t.ANACFeeRequired.IsYes():
		r := unknown("H4", "Contributo ANAC", domain.CategoryProcedural, domain.SeverityHardKO,
			"Contributo ANAC dovuto: pagare tramite FVOE prima della scadenza. Il mancato pagamento è causa di esclusione.",
			[]string{"ricevuta pagamento contributo ANAC"}, nil)
		return &r
	default:
		r := unknown("H4", "Contributo ANAC", domain.CategoryProcedural, domain.SeveritySoftRisk,
			"Verificare se il contributo ANAC è dovuto per questa gara e, in caso, pagarlo prima della scadenza.",
			[]string{"applicabilità contributo ANAC"}, nil)
		return &r
	}
}

// H5: platform registration. Blocks only through the signature gate; the
// registration itself cannot be proven from the documents.
func evalPlatform(in Input) domain.RequirementResult {
	platform := in.Tender.Platform
	if platform == "" {
		platform = "piattaforma di gara"
	}
	if !in.Company.LegalRepresentative.HasDigitalSignature {
		return ko("H5", "Piattaforma telematica", domain.CategoryProcedural,
			domain.SeverityHardKO, domain.ConfidenceCertain,
			fmt.Sprintf("Firma digitale assente: impossibile operare su %s.", platform),
			[]string{"firma digitale CNS/CRS"}, nil)
	}
	return unknown("H5", "Piattaforma telematica", domain.CategoryProcedural, domain.SeveritySoftRisk,
		fmt.Sprintf("Verificare registrazione e abilitazione su %s per la gara specifica.", platform),
		[]string{"registrazione piattaforma"}, nil)
}

// H6: signing capability of the legal representative.
func evalDigitalSignature(in Input) domain.RequirementResult {
	lr := in.Company.LegalRepresentative
	if !lr.HasDigitalSignature {
		return ko("H6", "Firma digitale", domain.CategoryProcedural,
			domain.SeverityHardKO, domain.ConfidenceCertain,
			"Il firmatario non dispone di firma digitale valida. Attivarla prima della scadenza.",
			[]string{"firma digitale CNS/CRS"}, nil)
	}
	switch lr.SigningPowersProof {
	case "missing":
		return ko("H6", "Poteri di firma", domain.CategoryProcedural,
			domain.SeverityHardKO, domain.ConfidenceCertain,
			"Manca la documentazione dei poteri di firma (procura o statuto). Reperirla prima della scadenza.",
			[]string{"procura o statuto con poteri di firma"}, nil)
	case "available":
		return ok("H6", "Firma digitale", domain.CategoryProcedural,
			fmt.Sprintf("%s (%s) dispone di firma digitale e poteri documentati.", lr.Name, lr.Role), nil)
	default:
		return unknown("H6", "Poteri di firma", domain.CategoryProcedural, domain.SeveritySoftRisk,
			"Verificare la documentazione dei poteri di firma del sottoscrittore.",
			[]string{"prova poteri di firma"}, nil)
	}
}

// H7: DGUE self-declaration form.
func evalDGUE(in Input) *domain.RequirementResult {
	t := in.Tender
	if t.DGUERequired.IsNo() {
		return nil
	}
	sev := domain.SeverityHardKO
	if t.DGUERequired.IsUnknown() {
		sev = domain.SeveritySoftRisk
	}
	r := unknown("H7", "DGUE", domain.CategoryProcedural, sev,
		"Predisporre il DGUE per ogni soggetto partecipante (impresa, ausiliarie, mandanti).",
		[]string{"DGUE compilato"}, nil)
	return &r
}
