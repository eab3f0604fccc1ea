package rules

import (
	"fmt"

	"github.com/MatteoMarello/bidpilot-mvp/internal/domain"
)

// Qualification-system family: checks for registration to a contracting
// authority's own qualification register. Registration deadline (Q1),
// category coverage (Q2), minimum technical score (Q3), safety certification
// (Q4), registration duration (Q5).
func evalQualificationSystem(in Input) []domain.RequirementResult {
	qs := in.Tender.QualificationSystem
	if qs == nil {
		return []domain.RequirementResult{
			unknown("Q1", "Sistema di qualificazione", domain.CategoryQualificationSystem, domain.SeverityHardKO,
				"Documento classificato come sistema di qualificazione ma privo dei dati del sistema: verificare l'avviso.",
				[]string{"dati del sistema di qualificazione"}, nil),
		}
	}
	evidence := ev(qs.Evidence, "Sistema di qualificazione")

	var out []domain.RequirementResult
	out = append(out, evalQSDeadline(in, qs, evidence))
	out = append(out, evalQSCategory(in, qs, evidence))
	if r := evalQSTechnicalScore(in, qs, evidence); r != nil {
		out = append(out, *r)
	}
	if r := evalQSSafetyCert(in, qs, evidence); r != nil {
		out = append(out, *r)
	}
	if qs.DurationMonths != nil {
		out = append(out, ok("Q5", "Durata iscrizione", domain.CategoryQualificationSystem,
			fmt.Sprintf("L'iscrizione al sistema vale %d mesi dal perfezionamento.", *qs.DurationMonths),
			evidence))
	}
	return out
}

// Q1: registration window. Many systems are permanently open; a stated
// deadline already passed blocks this round only.
func evalQSDeadline(in Input, qs *domain.QualificationSystemRecord, evidence []domain.Evidence) domain.RequirementResult {
	if qs.RegistrationDeadline == nil {
		return ok("Q1", "Finestra di iscrizione", domain.CategoryQualificationSystem,
			"Nessuna scadenza di iscrizione indicata: sistema presumibilmente a sportello aperto.", evidence)
	}
	if in.passed(qs.RegistrationDeadline) {
		return ko("Q1", "Finestra di iscrizione", domain.CategoryQualificationSystem,
			domain.SeverityHardKO, domain.ConfidenceCertain,
			fmt.Sprintf("La finestra di iscrizione è scaduta il %s.", qs.RegistrationDeadline.Format("2006-01-02")),
			nil, evidence)
	}
	return ok("Q1", "Finestra di iscrizione", domain.CategoryQualificationSystem,
		fmt.Sprintf("Iscrizione aperta fino al %s (%d giorni).",
			qs.RegistrationDeadline.Format("2006-01-02"), in.daysUntil(*qs.RegistrationDeadline)),
		evidence)
}

// Q2: the system's category and class, matched like a SOA requirement.
func evalQSCategory(in Input, qs *domain.QualificationSystemRecord, evidence []domain.Evidence) domain.RequirementResult {
	if qs.SystemCategory == "" {
		return unknown("Q2", "Categoria del sistema", domain.CategoryQualificationSystem, domain.SeverityHardKO,
			"Categoria di qualificazione del sistema non rilevata: verificare l'avviso.",
			[]string{"categoria del sistema"}, evidence)
	}
	name := fmt.Sprintf("Qualificazione %s", qs.SystemCategory)
	att := in.Company.AttestationFor(qs.SystemCategory)
	if att == nil {
		methods, constraints := capacityMethods(in, false)
		return fixable("Q2", name, domain.CategoryQualificationSystem,
			domain.SeverityHardKO, domain.ConfidenceCertain,
			fmt.Sprintf("Attestazione %s richiesta dal sistema e non posseduta.", qs.SystemCategory),
			methods, constraints,
			[]string{fmt.Sprintf("SOA %s", qs.SystemCategory)}, evidence)
	}
	if qs.SystemClass != "" && !domain.ClassCovers(att.Class, qs.SystemClass) {
		methods, constraints := capacityMethods(in, false)
		return fixable("Q2", name, domain.CategoryQualificationSystem,
			domain.SeverityHardKO, domain.ConfidenceCertain,
			fmt.Sprintf("Attestazione %s posseduta in cl.%s, il sistema richiede cl.%s.",
				qs.SystemCategory, att.Class, qs.SystemClass),
			methods, constraints,
			[]string{fmt.Sprintf("SOA %s cl.%s", qs.SystemCategory, qs.SystemClass)}, evidence)
	}
	return ok("Q2", name, domain.CategoryQualificationSystem,
		fmt.Sprintf("Attestazione %s cl.%s copre la categoria del sistema.", att.Category, att.Class),
		evidence)
}

// Q3: minimum technical score from past-performance scoring.
func evalQSTechnicalScore(in Input, qs *domain.QualificationSystemRecord, evidence []domain.Evidence) *domain.RequirementResult {
	if qs.MinTechnicalScore == nil {
		return nil
	}
	score := in.Company.QualificationScores.TechnicalScore
	if score == nil {
		r := unknown("Q3", "Punteggio tecnico minimo", domain.CategoryQualificationSystem, domain.SeverityHardKO,
			fmt.Sprintf("Il sistema richiede un punteggio tecnico di almeno %.1f: punteggio dell'impresa non disponibile.", *qs.MinTechnicalScore),
			[]string{"punteggio tecnico del sistema"}, evidence)
		return &r
	}
	if *score >= *qs.MinTechnicalScore {
		r := ok("Q3", "Punteggio tecnico minimo", domain.CategoryQualificationSystem,
			fmt.Sprintf("Punteggio tecnico %.1f sopra la soglia di %.1f.", *score, *qs.MinTechnicalScore),
			evidence)
		return &r
	}
	r := ko("Q3", "Punteggio tecnico minimo", domain.CategoryQualificationSystem,
		domain.SeverityHardKO, domain.ConfidenceCertain,
		fmt.Sprintf("Punteggio tecnico %.1f sotto la soglia di %.1f richiesta dal sistema.", *score, *qs.MinTechnicalScore),
		[]string{"miglioramento punteggio tecnico"}, evidence)
	return &r
}

// Q4: safety certification when the system mandates one.
func evalQSSafetyCert(in Input, qs *domain.QualificationSystemRecord, evidence []domain.Evidence) *domain.RequirementResult {
	if !qs.RequiresSafetyCert.IsYes() {
		return nil
	}
	for i := range in.Company.Certifications {
		c := &in.Company.Certifications[i]
		if matchCertification("ISO 45001", c.Type) == certNoMatch &&
			matchCertification("OHSAS 18001", c.Type) == certNoMatch {
			continue
		}
		if c.Valid && !certExpired(in, c) {
			r := ok("Q4", "Certificazione sicurezza", domain.CategoryQualificationSystem,
				fmt.Sprintf("Certificazione di sicurezza %s posseduta e valida.", c.Type), evidence)
			return &r
		}
	}
	r := fixable("Q4", "Certificazione sicurezza", domain.CategoryQualificationSystem,
		domain.SeverityHardKO, domain.ConfidenceCertain,
		"Il sistema richiede una certificazione di sicurezza (ISO 45001): non posseduta o scaduta.",
		nil, nil,
		[]string{"certificazione ISO 45001"}, evidence)
	return &r
}
