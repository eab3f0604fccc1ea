package rules

import (
	"github.com/MatteoMarello/bidpilot-mvp/internal/domain"
	pstrings "github.com/MatteoMarello/bidpilot-mvp/pkg/platform/strings"
)

// ev wraps a raw evidence quote into the Evidence value attached to results.
// Empty quotes produce no evidence entry.
func ev(quote, section string) []domain.Evidence {
	if quote == "" {
		return nil
	}
	return []domain.Evidence{{Quote: quote, Section: section}}
}

func ok(id, name, category, msg string, evidence []domain.Evidence) domain.RequirementResult {
	return domain.RequirementResult{
		ID: id, Name: name, Category: category,
		Status: domain.StatusOK, Severity: domain.SeverityInfo,
		Confidence: domain.ConfidenceCertain,
		Evidence:   evidence, Message: msg,
	}
}

func ko(id, name, category string, sev domain.Severity, confidence float64, msg string,
	gaps []string, evidence []domain.Evidence) domain.RequirementResult {
	return domain.RequirementResult{
		ID: id, Name: name, Category: category,
		Status: domain.StatusKO, Severity: sev,
		Confidence: confidence,
		CompanyGap: domain.CompanyGap{MissingAssets: pstrings.DedupeAndTrim(gaps)},
		Evidence:   evidence, Message: msg,
	}
}

// fixable builds a FIXABLE result; it keeps the Status/Fixability invariant
// by construction and degrades to KO when no method is actually available.
func fixable(id, name, category string, sev domain.Severity, confidence float64, msg string,
	methods, constraints, gaps []string, evidence []domain.Evidence) domain.RequirementResult {
	methods = pstrings.DedupeAndTrim(methods)
	if len(methods) == 0 {
		return ko(id, name, category, sev, confidence, msg, gaps, evidence)
	}
	return domain.RequirementResult{
		ID: id, Name: name, Category: category,
		Status: domain.StatusFixable, Severity: sev,
		Confidence: confidence,
		Fixability: domain.Fixability{
			IsFixable:      true,
			AllowedMethods: methods,
			Constraints:    pstrings.DedupeAndTrim(constraints),
		},
		CompanyGap: domain.CompanyGap{MissingAssets: pstrings.DedupeAndTrim(gaps)},
		Evidence:   evidence, Message: msg,
	}
}

func unknown(id, name, category string, sev domain.Severity, msg string,
	missingData []string, evidence []domain.Evidence) domain.RequirementResult {
	return domain.RequirementResult{
		ID: id, Name: name, Category: category,
		Status: domain.StatusUnknown, Severity: sev,
		Confidence: domain.ConfidenceAmbiguous,
		CompanyGap: domain.CompanyGap{MissingData: pstrings.DedupeAndTrim(missingData)},
		Evidence:   evidence, Message: msg,
	}
}

func riskFlag(id, name, category string, confidence float64, msg string,
	evidence []domain.Evidence) domain.RequirementResult {
	return domain.RequirementResult{
		ID: id, Name: name, Category: category,
		Status: domain.StatusRiskFlag, Severity: domain.SeveritySoftRisk,
		Confidence: confidence,
		Evidence:   evidence, Message: msg,
	}
}

func premiant(id, name, category, msg string) domain.RequirementResult {
	return domain.RequirementResult{
		ID: id, Name: name, Category: category,
		Status: domain.StatusPremiant, Severity: domain.SeverityInfo,
		Confidence: domain.ConfidenceCertain,
		Message:    msg,
	}
}

// capacityMethods infers which remediation methods the tender's participation
// rules permit for a qualification or financial gap, intersected with what
// the company is willing to do. Subcontracting is only offered when
// includeSubcontract is set (qualifying subcontract applies to secondary
// categories, never to the prevalent one).
func capacityMethods(in Input, includeSubcontract bool) (methods, constraints []string) {
	p := in.Tender.Participation
	c := in.Company

	if p.AvvalimentoAllowed.IsYes() && c.WillingAvvalimento {
		methods = append(methods, domain.MethodAvvalimento)
		constraints = append(constraints,
			"l'impresa ausiliaria non può partecipare alla stessa gara",
			"il contratto di avvalimento deve indicare risorse e mezzi specifici",
		)
	}
	if p.RTIAllowed.IsYes() && c.WillingRTI {
		methods = append(methods, domain.MethodRTI)
		constraints = append(constraints,
			"le quote di esecuzione del raggruppamento devono rispettare i minimi del bando",
		)
	}
	if includeSubcontract && p.SubcontractMaxPct != nil && *p.SubcontractMaxPct > 0 && c.WillingSubcontract {
		methods = append(methods, domain.MethodSubcontract)
		constraints = append(constraints,
			"la categoria prevalente non può essere subappaltata in misura prevalente",
		)
	}
	return methods, constraints
}
