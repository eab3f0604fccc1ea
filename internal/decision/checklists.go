package decision

import (
	"github.com/MatteoMarello/bidpilot-mvp/internal/domain"
)

// BuildProceduralChecklist turns deadlines and procedural results into a
// dated checklist. Items the engine could verify get a definitive status;
// everything else stays PENDING or UNKNOWN for the operator.
func BuildProceduralChecklist(t *domain.TenderRequirements, results []domain.RequirementResult) []domain.ProceduralCheckItem {
	byID := indexResults(results)
	var items []domain.ProceduralCheckItem

	if t.SiteVisitMandatory.IsYes() {
		item := domain.ProceduralCheckItem{
			Item:   "Sopralluogo obbligatorio",
			Status: domain.CheckPending,
			Impact: domain.SeverityHardKO,
		}
		if d := t.DeadlineOf(domain.DeadlineSiteVisit); d != nil {
			item.Deadline = d.Date
		}
		if r, ok := byID["H1"]; ok {
			if r.Status == domain.StatusKO {
				item.Status = domain.CheckNotPossible
			}
			item.Evidence = firstEvidence(r)
		}
		items = append(items, item)
	}

	offer := domain.ProceduralCheckItem{
		Item:   "Presentazione offerta sulla piattaforma",
		Status: domain.CheckPending,
		Impact: domain.SeverityHardKO,
	}
	if d := t.OfferDeadline(); d != nil {
		offer.Deadline = d.Date
		if r, ok := byID["H2"]; ok {
			if r.Status == domain.StatusKO {
				offer.Status = domain.CheckNotPossible
			}
			offer.Evidence = firstEvidence(r)
		}
	} else {
		offer.Status = domain.CheckUnknown
	}
	items = append(items, offer)

	if !t.ANACFeeRequired.IsNo() {
		impact := domain.SeverityHardKO
		status := domain.CheckPending
		if t.ANACFeeRequired.IsUnknown() {
			impact = domain.SeveritySoftRisk
			status = domain.CheckUnknown
		}
		items = append(items, domain.ProceduralCheckItem{
			Item:   "Pagamento contributo ANAC (FVOE)",
			Status: status,
			Impact: impact,
		})
	}

	if !t.DGUERequired.IsNo() {
		items = append(items, domain.ProceduralCheckItem{
			Item:   "Compilazione DGUE",
			Status: domain.CheckPending,
			Impact: domain.SeverityHardKO,
		})
	}

	platformItem := domain.ProceduralCheckItem{
		Item:   "Registrazione e abilitazione piattaforma",
		Status: domain.CheckUnknown,
		Impact: domain.SeveritySoftRisk,
	}
	if r, ok := byID["H5"]; ok && r.Status == domain.StatusKO {
		platformItem.Status = domain.CheckNotPossible
		platformItem.Impact = domain.SeverityHardKO
	}
	items = append(items, platformItem)

	signature := domain.ProceduralCheckItem{
		Item:   "Firma digitale e poteri del sottoscrittore",
		Status: domain.CheckUnknown,
		Impact: domain.SeverityHardKO,
	}
	if r, ok := byID["H6"]; ok {
		switch r.Status {
		case domain.StatusOK:
			signature.Status = domain.CheckDone
		case domain.StatusKO:
			signature.Status = domain.CheckNotPossible
		}
	}
	items = append(items, signature)

	if d := t.DeadlineOf(domain.DeadlineClarifications); d != nil && d.Date != nil {
		item := domain.ProceduralCheckItem{
			Item:     "Invio eventuali quesiti",
			Deadline: d.Date,
			Status:   domain.CheckPending,
			Impact:   domain.SeverityInfo,
		}
		if r, ok := byID["H3"]; ok && r.Status == domain.StatusRiskFlag {
			item.Status = domain.CheckNotPossible
		}
		items = append(items, item)
	}

	return items
}

// BuildDocumentChecklist assembles the five-bucket document list from the
// tender record. Buckets are always present, possibly empty, so consumers
// can rely on the shape.
func BuildDocumentChecklist(t *domain.TenderRequirements, plan domain.ActionPlan) domain.DocumentChecklist {
	cl := domain.DocumentChecklist{
		Administrative: []domain.DocChecklistItem{},
		Technical:      []domain.DocChecklistItem{},
		Economic:       []domain.DocChecklistItem{},
		Guarantees:     []domain.DocChecklistItem{},
		Platform:       []domain.DocChecklistItem{},
	}

	cl.Administrative = append(cl.Administrative,
		domain.DocChecklistItem{Name: "Domanda di partecipazione", Mandatory: true},
	)
	if !t.DGUERequired.IsNo() {
		cl.Administrative = append(cl.Administrative,
			domain.DocChecklistItem{Name: "DGUE", Mandatory: true,
				Notes: "uno per ogni soggetto partecipante, ausiliarie comprese"})
	}
	if t.IntegrityPactRequired.IsYes() {
		cl.Administrative = append(cl.Administrative,
			domain.DocChecklistItem{Name: "Patto di integrità sottoscritto", Mandatory: true})
	}
	if !t.ANACFeeRequired.IsNo() {
		cl.Administrative = append(cl.Administrative,
			domain.DocChecklistItem{Name: "Ricevuta contributo ANAC", Mandatory: t.ANACFeeRequired.IsYes()})
	}
	cl.Administrative = append(cl.Administrative,
		domain.DocChecklistItem{Name: "PASSOE (FVOE)", Mandatory: false,
			Notes: "verificare se richiesto dal disciplinare"})

	switch plan.RecommendedPath {
	case domain.MethodAvvalimento:
		cl.Administrative = append(cl.Administrative,
			domain.DocChecklistItem{Name: "Contratto di avvalimento e dichiarazioni ausiliaria", Mandatory: true})
	case domain.MethodRTI:
		cl.Administrative = append(cl.Administrative,
			domain.DocChecklistItem{Name: "Impegno alla costituzione del raggruppamento con quote", Mandatory: true})
	case domain.MethodSubcontract:
		cl.Administrative = append(cl.Administrative,
			domain.DocChecklistItem{Name: "Dichiarazione di subappalto", Mandatory: true})
	}

	if t.Design.DesignBuild.IsYes() || t.Design.RequiresDesignTeam.IsYes() {
		cl.Technical = append(cl.Technical,
			domain.DocChecklistItem{Name: "Indicazione o associazione dei progettisti", Mandatory: true},
			domain.DocChecklistItem{Name: "Requisiti dei progettisti", Mandatory: true})
	}
	if t.Design.BIMRequired.IsYes() {
		cl.Technical = append(cl.Technical,
			domain.DocChecklistItem{Name: "Offerta di gestione informativa BIM", Mandatory: true})
	}
	if t.AwardCriterion != "" && t.AwardCriterion != "prezzo" {
		cl.Technical = append(cl.Technical,
			domain.DocChecklistItem{Name: "Offerta tecnica", Mandatory: true,
				Notes: "secondo i criteri di valutazione del disciplinare"})
	}

	cl.Economic = append(cl.Economic,
		domain.DocChecklistItem{Name: "Offerta economica", Mandatory: true},
		domain.DocChecklistItem{Name: "Indicazione costi propri della manodopera", Mandatory: true,
			Notes: "a pena di esclusione"},
		domain.DocChecklistItem{Name: "Indicazione oneri aziendali di sicurezza", Mandatory: true})

	if t.Guarantees != nil {
		if t.Guarantees.ProvisionalAmountEUR != nil || t.Guarantees.ProvisionalPct != nil {
			cl.Guarantees = append(cl.Guarantees,
				domain.DocChecklistItem{Name: "Garanzia provvisoria", Mandatory: true,
					Notes: "verificare le riduzioni spettanti per certificazioni"})
		}
		if t.Guarantees.DefinitivePct != nil {
			cl.Guarantees = append(cl.Guarantees,
				domain.DocChecklistItem{Name: "Impegno del fideiussore per la garanzia definitiva", Mandatory: true})
		}
	}

	cl.Platform = append(cl.Platform,
		domain.DocChecklistItem{Name: "Registrazione alla piattaforma di gara", Mandatory: true},
		domain.DocChecklistItem{Name: "Firma digitale valida del sottoscrittore", Mandatory: true})

	return cl
}

func indexResults(results []domain.RequirementResult) map[string]domain.RequirementResult {
	idx := make(map[string]domain.RequirementResult, len(results))
	for _, r := range results {
		idx[r.ID] = r
	}
	return idx
}

func firstEvidence(r domain.RequirementResult) *domain.Evidence {
	if len(r.Evidence) == 0 {
		return nil
	}
	ev := r.Evidence[0]
	return &ev
}
