package decision

import (
	"fmt"
	"time"

	"github.com/MatteoMarello/bidpilot-mvp/internal/domain"
)

// urgentDeadlineDays is the window under which a pending deadline becomes a
// high risk regardless of its nature.
const urgentDeadlineDays = 7

// attestationRenewalDays is how far ahead an attestation expiry is flagged
// as a renewal risk.
const attestationRenewalDays = 90

// BuildRiskRegister collects the operational and timing risks around a
// participation: imminent deadlines, tight start dates, execution
// constraints, expiring attestations, PNRR overheads. Register order is
// fixed, IDs are sequential.
func BuildRiskRegister(t *domain.TenderRequirements, c *domain.CompanyProfile,
	results []domain.RequirementResult, now time.Time) []domain.Risk {

	var risks []domain.Risk
	add := func(riskType string, level domain.RiskLevel, msg string, evidence *domain.Evidence, mitigations ...string) {
		risks = append(risks, domain.Risk{
			ID:          fmt.Sprintf("RSK-%d", len(risks)+1),
			Type:        riskType,
			Level:       level,
			Message:     msg,
			Evidence:    evidence,
			Mitigations: mitigations,
		})
	}

	for _, d := range t.Deadlines {
		if d.Date == nil || d.Date.Before(now) {
			continue
		}
		days := int(d.Date.Sub(now).Hours() / 24)
		if days > urgentDeadlineDays {
			continue
		}
		level := domain.RiskMedium
		if d.Mandatory || d.ExclusionIfMissed {
			level = domain.RiskHigh
		}
		var ev *domain.Evidence
		if d.Evidence != "" {
			ev = &domain.Evidence{Quote: d.Evidence, Section: "Termini"}
		}
		add("scadenza_imminente", level,
			fmt.Sprintf("Scadenza %s tra %d giorni (%s).", d.Type, days, d.Date.Format("2006-01-02")),
			ev,
			"pianificare immediatamente le attività propedeutiche")
	}

	if t.MandatoryStartDate != nil && t.MandatoryStartDate.After(now) {
		level := domain.RiskMedium
		if c.StartDateConstraints != "" {
			level = domain.RiskHigh
		}
		var ev *domain.Evidence
		if t.MandatoryStartEvidence != "" {
			ev = &domain.Evidence{Quote: t.MandatoryStartEvidence, Section: "Tempi di esecuzione"}
		}
		add("inizio_tassativo", level,
			fmt.Sprintf("Inizio lavori tassativo il %s: la consegna non è differibile.",
				t.MandatoryStartDate.Format("2006-01-02")),
			ev,
			"verificare la compatibilità con i cantieri in corso prima di offrire")
	}

	for _, ec := range t.ExecutionConstraints {
		level := domain.RiskLow
		if ec.Hard {
			level = domain.RiskHigh
		}
		var ev *domain.Evidence
		if ec.Evidence != "" {
			ev = &domain.Evidence{Quote: ec.Evidence, Section: "Vincoli di esecuzione"}
		}
		add("vincolo_esecuzione", level, ec.Description, ev,
			"riflettere il vincolo nel cronoprogramma e nei costi")
	}

	requiredCats := map[string]bool{}
	for _, cat := range t.Categories {
		requiredCats[cat.Category] = true
	}
	for _, att := range c.Attestations {
		if !requiredCats[att.Category] || att.Expiry == nil || att.Expiry.Before(now) {
			continue
		}
		days := int(att.Expiry.Sub(now).Hours() / 24)
		if days > attestationRenewalDays {
			continue
		}
		add("rinnovo_soa", domain.RiskMedium,
			fmt.Sprintf("SOA %s in scadenza il %s: la verifica triennale o il rinnovo vanno avviati prima.",
				att.Category, att.Expiry.Format("2006-01-02")),
			nil,
			"contattare l'organismo di attestazione")
	}

	if t.Environmental.PNRRFunded.IsYes() {
		var ev *domain.Evidence
		if t.Environmental.Evidence != "" {
			ev = &domain.Evidence{Quote: t.Environmental.Evidence, Section: "PNRR e ambiente"}
		}
		add("oneri_pnrr", domain.RiskMedium,
			"Appalto finanziato PNRR: obblighi DNSH, quote occupazionali e rendicontazione rafforzata in esecuzione.",
			ev,
			"dimensionare la struttura amministrativa di commessa")
	}

	for _, r := range results {
		if r.Status != domain.StatusRiskFlag || r.Category == domain.CategoryOperational {
			continue
		}
		level := domain.RiskLow
		if r.Confidence >= domain.ConfidenceCertain {
			level = domain.RiskMedium
		}
		add("segnalazione_"+r.Category, level, r.Message, firstEvidence(r))
	}

	return risks
}
