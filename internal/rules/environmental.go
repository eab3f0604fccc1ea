package rules

import (
	"github.com/MatteoMarello/bidpilot-mvp/internal/domain"
)

// Environmental and PNRR family: DNSH compliance (P1), minimum environmental
// criteria (P2), gender/youth quotas (P3), PNRR reporting duties (P4).
func evalEnvironmental(in Input) []domain.RequirementResult {
	e := in.Tender.Environmental
	evidence := ev(e.Evidence, "PNRR e ambiente")
	var out []domain.RequirementResult

	pnrr := e.PNRRFunded.IsYes()

	if pnrr || e.DNSHRequired.IsYes() {
		out = append(out, unknown("P1", "Conformità DNSH", domain.CategoryEnvironmental,
			domain.SeverityHardKO,
			"Finanziamento PNRR: predisporre le autodichiarazioni DNSH e la documentazione tecnica di conformità richieste in offerta e in esecuzione.",
			[]string{"autodichiarazione DNSH"}, evidence))
	} else if e.DNSHRequired.IsUnknown() && e.Evidence != "" {
		out = append(out, riskFlag("P1", "Conformità DNSH", domain.CategoryEnvironmental,
			domain.ConfidenceAmbiguous,
			"I documenti accennano a vincoli DNSH senza dettagliarli: verificare gli obblighi effettivi.", evidence))
	}

	if e.CAMRequired.IsYes() {
		out = append(out, unknown("P2", "Criteri ambientali minimi", domain.CategoryEnvironmental,
			domain.SeveritySoftRisk,
			"CAM edilizia applicabili: verificare le specifiche tecniche di capitolato e predisporre le dichiarazioni di conformità.",
			[]string{"dichiarazioni conformità CAM"}, evidence))
	}

	if pnrr || e.GenderYouthQuotas.IsYes() {
		out = append(out, unknown("P3", "Quote occupazione giovanile e femminile", domain.CategoryEnvironmental,
			domain.SeverityHardKO,
			"Obblighi di quota occupazionale giovanile e femminile (art. 47 d.l. 77/2021): predisporre l'impegno o documentare l'esenzione, a pena di esclusione.",
			[]string{"dichiarazione quote occupazionali"}, evidence))
	}

	if pnrr {
		out = append(out, riskFlag("P4", "Rendicontazione PNRR", domain.CategoryEnvironmental,
			domain.ConfidenceCertain,
			"Gli appalti PNRR comportano obblighi di rendicontazione e tracciabilità rafforzati in esecuzione: valutarne il carico amministrativo.",
			evidence))
	}

	return out
}
