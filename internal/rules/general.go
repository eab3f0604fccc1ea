package rules

import (
	"github.com/MatteoMarello/bidpilot-mvp/internal/domain"
)

// General eligibility: the art. 94-98 exclusion grounds and related
// declarations. These are deliberately conservative: none of them can be
// proven from tender text or profile data, so they always surface as open
// questions rather than deterministic outcomes.
func evalGeneral(in Input) []domain.RequirementResult {
	out := []domain.RequirementResult{
		unknown("A1", "Cause di esclusione", domain.CategoryGeneral, domain.SeverityHardKO,
			"Verificare l'assenza di cause di esclusione (art. 94-98 d.lgs. 36/2023) per il legale rappresentante e tutti i soggetti rilevanti.",
			[]string{"autocertificazioni art. 94-98"}, nil),
		unknown("A3", "Regolarità contributiva e fiscale", domain.CategoryGeneral, domain.SeverityHardKO,
			"Verificare DURC e posizione fiscale: l'irregolarità fiscale definitivamente accertata è causa di esclusione non sanabile.",
			[]string{"DURC in corso di validità"}, nil),
		unknown("A4", "Comunicazione antimafia", domain.CategoryGeneral, domain.SeveritySoftRisk,
			"Verificare iscrizione in white list o posizione antimafia presso la prefettura competente.",
			[]string{"iscrizione white list"}, nil),
	}

	if r := evalIntegrityPact(in); r != nil {
		out = append(out, *r)
	}

	return out
}

// A2: integrity/anti-collusion pact, when the tender demands one.
func evalIntegrityPact(in Input) *domain.RequirementResult {
	t := in.Tender
	if t.IntegrityPactRequired.IsNo() {
		return nil
	}
	sev := domain.SeverityHardKO
	if t.IntegrityPactRequired.IsUnknown() {
		sev = domain.SeveritySoftRisk
	}
	r := unknown("A2", "Patto di integrità", domain.CategoryGeneral, sev,
		"Sottoscrivere il patto di integrità e le dichiarazioni anticollusione richieste dal bando.",
		[]string{"patto di integrità sottoscritto"}, nil)
	return &r
}
