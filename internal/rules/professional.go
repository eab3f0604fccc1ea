package rules

import (
	"fmt"
	"strings"

	"github.com/MatteoMarello/bidpilot-mvp/internal/domain"
)

// Professional eligibility: chamber-of-commerce registration, business-scope
// coherence, operating-region coverage.
func evalProfessional(in Input) []domain.RequirementResult {
	out := []domain.RequirementResult{
		evalCameralRegistration(in),
		evalBusinessScope(in),
	}
	if r := evalOperatingRegion(in); r != nil {
		out = append(out, *r)
	}
	return out
}

// B1: CCIAA registration. Missing registration is not remediable.
func evalCameralRegistration(in Input) domain.RequirementResult {
	reg := in.Company.Registration
	if !reg.Registered {
		return ko("B1", "Iscrizione CCIAA", domain.CategoryProfessional,
			domain.SeverityHardKO, domain.ConfidenceCertain,
			"L'impresa non risulta iscritta alla CCIAA: requisito non sanabile.",
			[]string{"iscrizione CCIAA"}, nil)
	}
	return ok("B1", "Iscrizione CCIAA", domain.CategoryProfessional,
		fmt.Sprintf("Impresa iscritta alla CCIAA (REA %s).", reg.REANumber), nil)
}

// B2: coherence of the business scope with the tender object.
func evalBusinessScope(in Input) domain.RequirementResult {
	reg := in.Company.Registration
	switch {
	case reg.CoherentWithTender.IsYes():
		return ok("B2", "Oggetto sociale", domain.CategoryProfessional,
			"Oggetto sociale coerente con l'oggetto dell'appalto.", nil)
	case reg.CoherentWithTender.IsNo():
		return ko("B2", "Oggetto sociale", domain.CategoryProfessional,
			domain.SeverityHardKO, domain.ConfidenceCertain,
			"Oggetto sociale non coerente con l'appalto: verificare codici ATECO e visura.",
			[]string{"coerenza oggetto sociale"}, nil)
	default:
		return unknown("B2", "Oggetto sociale", domain.CategoryProfessional, domain.SeverityHardKO,
			"Verificare la coerenza dell'oggetto sociale e dei codici ATECO con l'oggetto dell'appalto.",
			[]string{"visura camerale aggiornata"}, nil)
	}
}

// B3: execution region vs. the company's operating footprint. A mismatch is
// an operational caution, never a legal block.
func evalOperatingRegion(in Input) *domain.RequirementResult {
	region := in.Tender.ExecutionLocation.Region
	if region == "" || len(in.Company.OperatingRegions) == 0 {
		return nil
	}
	for _, r := range in.Company.OperatingRegions {
		if strings.EqualFold(r, region) {
			res := ok("B3", "Area operativa", domain.CategoryProfessional,
				fmt.Sprintf("Luogo di esecuzione (%s) coperto dalle aree operative dell'impresa.", region), nil)
			return &res
		}
	}
	res := riskFlag("B3", "Area operativa", domain.CategoryProfessional, domain.ConfidenceCertain,
		fmt.Sprintf("Luogo di esecuzione (%s) fuori dalle regioni operative abituali: valutare costi di mobilitazione.", region), nil)
	return &res
}
