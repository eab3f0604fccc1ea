package rules

import (
	"fmt"
	"sort"

	"github.com/MatteoMarello/bidpilot-mvp/internal/domain"
)

// Economic-financial capacity: global turnover (E1), sector turnover (E2),
// reference works (E3), bank references (E4), CEL records (E5). Each check
// only fires when the tender actually states the requirement.
func evalFinancial(in Input) []domain.RequirementResult {
	var out []domain.RequirementResult

	if r := evalGlobalTurnover(in); r != nil {
		out = append(out, *r)
	}
	if r := evalSectorTurnover(in); r != nil {
		out = append(out, *r)
	}
	if r := evalReferenceWorks(in); r != nil {
		out = append(out, *r)
	}
	if r := evalBankReferences(in); r != nil {
		out = append(out, *r)
	}
	if r := evalCELRecords(in); r != nil {
		out = append(out, *r)
	}

	return out
}

// lastYearsTotal sums the most recent n years of entries.
func lastYearsTotal(entries []domain.TurnoverEntry, n int) (float64, int) {
	sorted := make([]domain.TurnoverEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Year > sorted[j].Year })
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	var total float64
	for _, e := range sorted {
		total += e.AmountEUR
	}
	return total, len(sorted)
}

// E1: minimum global turnover over the reference triennium.
func evalGlobalTurnover(in Input) *domain.RequirementResult {
	min := in.Tender.MinTurnoverEUR
	if min == nil {
		return nil
	}
	evidence := ev(in.Tender.MinTurnoverEvidence, "Capacità economico-finanziaria")

	if len(in.Company.TurnoverByYear) == 0 {
		r := unknown("E1", "Fatturato globale minimo", domain.CategoryFinancial, domain.SeverityHardKO,
			fmt.Sprintf("Richiesto fatturato globale di %.0f€ nel triennio: dati di fatturato assenti dal profilo.", *min),
			[]string{"fatturato ultimi tre esercizi"}, evidence)
		return &r
	}

	total, years := lastYearsTotal(in.Company.TurnoverByYear, 3)
	if total >= *min {
		r := ok("E1", "Fatturato globale minimo", domain.CategoryFinancial,
			fmt.Sprintf("Fatturato del triennio (%.0f€ su %d esercizi) copre il minimo richiesto di %.0f€.", total, years, *min),
			evidence)
		return &r
	}

	methods, constraints := capacityMethods(in, false)
	r := fixable("E1", "Fatturato globale minimo", domain.CategoryFinancial,
		domain.SeverityHardKO, domain.ConfidenceCertain,
		fmt.Sprintf("Fatturato del triennio %.0f€ sotto il minimo richiesto di %.0f€.", total, *min),
		methods, constraints,
		[]string{fmt.Sprintf("fatturato aggiuntivo %.0f€", *min-total)}, evidence)
	return &r
}

// E2: minimum works-sector turnover.
func evalSectorTurnover(in Input) *domain.RequirementResult {
	min := in.Tender.MinSectorTurnoverEUR
	if min == nil {
		return nil
	}
	evidence := ev(in.Tender.MinSectorTurnoverEvidence, "Capacità economico-finanziaria")

	if len(in.Company.SectorTurnoverByYear) == 0 {
		r := unknown("E2", "Fatturato specifico minimo", domain.CategoryFinancial, domain.SeverityHardKO,
			fmt.Sprintf("Richiesto fatturato specifico nel settore lavori di %.0f€: dati assenti dal profilo.", *min),
			[]string{"fatturato specifico ultimi tre esercizi"}, evidence)
		return &r
	}

	entries := make([]domain.TurnoverEntry, 0, len(in.Company.SectorTurnoverByYear))
	for _, e := range in.Company.SectorTurnoverByYear {
		entries = append(entries, domain.TurnoverEntry{Year: e.Year, AmountEUR: e.AmountEUR})
	}
	total, years := lastYearsTotal(entries, 3)
	if total >= *min {
		r := ok("E2", "Fatturato specifico minimo", domain.CategoryFinancial,
			fmt.Sprintf("Fatturato specifico del triennio (%.0f€ su %d esercizi) copre il minimo di %.0f€.", total, years, *min),
			evidence)
		return &r
	}

	methods, constraints := capacityMethods(in, false)
	r := fixable("E2", "Fatturato specifico minimo", domain.CategoryFinancial,
		domain.SeverityHardKO, domain.ConfidenceCertain,
		fmt.Sprintf("Fatturato specifico del triennio %.0f€ sotto il minimo richiesto di %.0f€.", total, *min),
		methods, constraints,
		[]string{fmt.Sprintf("fatturato specifico aggiuntivo %.0f€", *min-total)}, evidence)
	return &r
}

// E3: at least one reference work of the stated minimum amount.
func evalReferenceWorks(in Input) *domain.RequirementResult {
	min := in.Tender.ReferenceWorksMinEUR
	if min == nil {
		return nil
	}
	evidence := ev(in.Tender.ReferenceWorksEvidence, "Capacità tecnica")

	if len(in.Company.ReferenceWorks) == 0 {
		r := unknown("E3", "Lavoro di punta", domain.CategoryFinancial, domain.SeverityHardKO,
			fmt.Sprintf("Richiesto un lavoro analogo di importo almeno %.0f€: nessun lavoro di riferimento nel profilo.", *min),
			[]string{"elenco lavori analoghi con importi"}, evidence)
		return &r
	}

	var best float64
	for _, w := range in.Company.ReferenceWorks {
		if w.AmountEUR > best {
			best = w.AmountEUR
		}
	}
	if best >= *min {
		r := ok("E3", "Lavoro di punta", domain.CategoryFinancial,
			fmt.Sprintf("Lavoro di riferimento da %.0f€ soddisfa il minimo di %.0f€.", best, *min),
			evidence)
		return &r
	}

	methods, constraints := capacityMethods(in, false)
	r := fixable("E3", "Lavoro di punta", domain.CategoryFinancial,
		domain.SeverityHardKO, domain.ConfidenceCertain,
		fmt.Sprintf("Miglior lavoro di riferimento %.0f€ sotto il minimo richiesto di %.0f€.", best, *min),
		methods, constraints,
		[]string{fmt.Sprintf("lavoro analogo da almeno %.0f€", *min)}, evidence)
	return &r
}

// E4: bank reference letters, usually two. Pure profile fact.
func evalBankReferences(in Input) *domain.RequirementResult {
	if in.Tender.MinTurnoverEUR == nil && in.Tender.MinSectorTurnoverEUR == nil {
		return nil
	}
	switch {
	case in.Company.BankReferences.IsYes():
		r := ok("E4", "Referenze bancarie", domain.CategoryFinancial,
			"Referenze bancarie disponibili.", nil)
		return &r
	case in.Company.BankReferences.IsNo():
		r := ko("E4", "Referenze bancarie", domain.CategoryFinancial,
			domain.SeveritySoftRisk, domain.ConfidenceCertain,
			"Referenze bancarie non disponibili: richiederle agli istituti di credito con anticipo sulla scadenza.",
			[]string{"referenze bancarie"}, nil)
		return &r
	default:
		r := unknown("E4", "Referenze bancarie", domain.CategoryFinancial, domain.SeveritySoftRisk,
			"Verificare la disponibilità delle referenze bancarie eventualmente richieste dal disciplinare.",
			[]string{"disponibilità referenze bancarie"}, nil)
		return &r
	}
}

// E5: CEL records (certificati di esecuzione lavori) backing the SOA
// qualifications.
func evalCELRecords(in Input) *domain.RequirementResult {
	if len(in.Tender.Categories) == 0 {
		return nil
	}
	switch {
	case in.Company.CELRecords.IsYes():
		r := ok("E5", "Certificati esecuzione lavori", domain.CategoryFinancial,
			"CEL disponibili a supporto delle qualificazioni.", nil)
		return &r
	case in.Company.CELRecords.IsNo():
		r := riskFlag("E5", "Certificati esecuzione lavori", domain.CategoryFinancial,
			domain.ConfidenceCertain,
			"CEL non disponibili: recuperarli dal casellario ANAC in vista di eventuali verifiche.", nil)
		return &r
	default:
		return nil
	}
}
