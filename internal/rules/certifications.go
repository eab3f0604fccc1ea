package rules

import (
	"fmt"
	"strings"

	"github.com/MatteoMarello/bidpilot-mvp/internal/domain"
	pstrings "github.com/MatteoMarello/bidpilot-mvp/pkg/platform/strings"
)

// Certification family: one check per certification the tender demands
// (D_*). Matching goes through normalized tokens, statutory equivalences,
// then substring overlap; a substring match is never promoted above
// ambiguous confidence.
func evalCertifications(in Input) []domain.RequirementResult {
	var out []domain.RequirementResult
	for i, req := range in.Tender.Certifications {
		out = append(out, evalOneCertification(in, i, req))
	}
	return out
}

func evalOneCertification(in Input, idx int, req domain.CertificationRequirement) domain.RequirementResult {
	id := fmt.Sprintf("D%d", idx+1)
	name := "Certificazione " + req.Name
	evidence := ev(req.Evidence, "Certificazioni richieste")

	best := certNoMatch
	var owned *domain.Certification
	for i := range in.Company.Certifications {
		c := &in.Company.Certifications[i]
		m := matchCertification(req.Name, c.Type)
		if m == certNoMatch {
			continue
		}
		// Exact beats equivalent beats partial.
		if owned == nil || better(m, best) {
			best, owned = m, c
		}
	}

	if owned == nil {
		methods, constraints := certificationMethods(in, req.Name)
		return fixable(id, name, domain.CategoryCertification,
			domain.SeverityHardKO, domain.ConfidenceCertain,
			fmt.Sprintf("Certificazione %s richiesta e non posseduta.", req.Name),
			methods, constraints,
			[]string{req.Name}, evidence)
	}

	if !owned.Valid || certExpired(in, owned) {
		return ko(id, name, domain.CategoryCertification,
			domain.SeverityHardKO, domain.ConfidenceCertain,
			fmt.Sprintf("Certificazione %s posseduta ma non valida alla scadenza offerta: avviare il rinnovo con l'ente certificatore.", owned.Type),
			[]string{fmt.Sprintf("rinnovo %s", owned.Type)}, evidence)
	}

	switch best {
	case certExact:
		return ok(id, name, domain.CategoryCertification,
			fmt.Sprintf("Certificazione %s posseduta e valida.", owned.Type), evidence)
	case certEquivalent:
		return ok(id, name, domain.CategoryCertification,
			fmt.Sprintf("Certificazione %s posseduta, equivalente a %s.", owned.Type, req.Name), evidence)
	default:
		return riskFlag(id, name, domain.CategoryCertification, domain.ConfidenceAmbiguous,
			fmt.Sprintf("La certificazione posseduta (%s) corrisponde solo parzialmente a quella richiesta (%s): far confermare l'equivalenza all'ente certificatore o alla stazione appaltante.",
				owned.Type, req.Name), evidence)
	}
}

func better(m, than certMatch) bool {
	rank := map[certMatch]int{certPartial: 1, certEquivalent: 2, certExact: 3}
	return rank[m] > rank[than]
}

func certExpired(in Input, c *domain.Certification) bool {
	if c.Expiry == nil {
		return false
	}
	if c.Expiry.Before(in.Now) {
		return true
	}
	if d := in.Tender.OfferDeadline(); d != nil && d.Date != nil {
		return !c.Expiry.After(*d.Date)
	}
	return false
}

// certificationMethods restricts remediation for a missing certification:
// avvalimento of a management-system certification is only usable when the
// tender does not ban it for that requirement, and even then it demands the
// auxiliary's whole organization.
func certificationMethods(in Input, certName string) (methods, constraints []string) {
	if certAvvalimentoBanned(in.Tender, certName) {
		return nil, nil
	}
	methods, constraints = capacityMethods(in, false)
	for _, m := range methods {
		if m == domain.MethodAvvalimento {
			constraints = append(constraints,
				"l'avvalimento di una certificazione di sistema richiede la messa a disposizione dell'intera organizzazione dell'ausiliaria")
		}
	}
	return methods, constraints
}

func certAvvalimentoBanned(t *domain.TenderRequirements, certName string) bool {
	target := pstrings.NormalizeToken(certName)
	for _, banned := range t.Participation.AvvalimentoBannedRequisits {
		b := pstrings.NormalizeToken(banned)
		if b == target || strings.Contains(target, b) || strings.Contains(b, target) {
			return true
		}
	}
	return false
}
