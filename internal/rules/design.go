package rules

import (
	"fmt"
	"strings"

	"github.com/MatteoMarello/bidpilot-mvp/internal/domain"
)

// Design obligations for appalto integrato tenders: team availability (G1),
// discipline coverage (G2), professional-order registration (G3), young
// professional in grouped teams (G4), BIM capability (G5). The family yields
// nothing when the tender carries no design duty.
func evalDesign(in Input) []domain.RequirementResult {
	d := in.Tender.Design
	if !d.DesignBuild.IsYes() && !d.RequiresDesignTeam.IsYes() && !d.BIMRequired.IsYes() {
		if d.DesignBuild.IsUnknown() && d.Evidence != "" {
			return []domain.RequirementResult{
				unknown("G1", "Appalto integrato", domain.CategoryDesign, domain.SeveritySoftRisk,
					"I documenti menzionano obblighi di progettazione senza chiarire se si tratti di appalto integrato. Verificare il disciplinare.",
					[]string{"natura dell'obbligo di progettazione"}, ev(d.Evidence, "Progettazione")),
			}
		}
		return nil
	}

	var out []domain.RequirementResult
	if d.DesignBuild.IsYes() || d.RequiresDesignTeam.IsYes() {
		out = append(out, evalDesignTeam(in))
		out = append(out, evalDesignDisciplines(in)...)
		if r := evalOrderRegistration(in); r != nil {
			out = append(out, *r)
		}
		if r := evalYoungProfessional(in); r != nil {
			out = append(out, *r)
		}
		if in.Company.HasInHouseDesign {
			out = append(out, premiant("G6", "Progettazione interna", domain.CategoryDesign,
				"Struttura di progettazione interna: nessun costo di indicazione progettisti esterni e coordinamento più rapido."))
		}
	}
	if r := evalBIM(in); r != nil {
		out = append(out, *r)
	}
	return out
}

// G1: a design team must be fielded, in-house or indicated/associated.
func evalDesignTeam(in Input) domain.RequirementResult {
	d := in.Tender.Design
	c := in.Company
	evidence := ev(d.Evidence, "Progettazione")

	if c.HasInHouseDesign || len(c.DesignTeam) > 0 {
		return ok("G1", "Gruppo di progettazione", domain.CategoryDesign,
			"Gruppo di progettazione disponibile (interno o già individuato).", evidence)
	}
	if c.ExternalDesigners.IsYes() {
		return fixable("G1", "Gruppo di progettazione", domain.CategoryDesign,
			domain.SeverityHardKO, domain.ConfidenceCertain,
			"Appalto integrato: progettisti esterni disponibili ma da indicare o associare formalmente in offerta.",
			[]string{domain.MethodDesigners},
			[]string{"i progettisti indicati devono possedere i requisiti di cui al d.lgs. 36/2023"},
			[]string{"indicazione progettisti in offerta"}, evidence)
	}
	if c.ExternalDesigners.IsNo() {
		return ko("G1", "Gruppo di progettazione", domain.CategoryDesign,
			domain.SeverityHardKO, domain.ConfidenceCertain,
			"Appalto integrato senza struttura di progettazione né progettisti esterni disponibili.",
			[]string{"gruppo di progettazione qualificato"}, evidence)
	}
	return unknown("G1", "Gruppo di progettazione", domain.CategoryDesign, domain.SeverityHardKO,
		"Appalto integrato: verificare la disponibilità di progettisti qualificati da indicare o associare.",
		[]string{"disponibilità progettisti esterni"}, evidence)
}

// G2_*: each discipline the tender names must be covered by a team member.
func evalDesignDisciplines(in Input) []domain.RequirementResult {
	var out []domain.RequirementResult
	for _, disc := range in.Tender.Design.RequiredDisciplines {
		id := "G2_" + strings.ReplaceAll(strings.ToLower(disc), " ", "_")
		name := "Disciplina " + disc
		if designTeamCovers(in.Company.DesignTeam, disc) {
			out = append(out, ok(id, name, domain.CategoryDesign,
				fmt.Sprintf("Disciplina %s coperta dal gruppo di progettazione.", disc), nil))
			continue
		}
		if len(in.Company.DesignTeam) == 0 {
			out = append(out, unknown(id, name, domain.CategoryDesign, domain.SeveritySoftRisk,
				fmt.Sprintf("Richiesta la disciplina %s: gruppo di progettazione non ancora definito nel profilo.", disc),
				[]string{fmt.Sprintf("progettista per %s", disc)}, nil))
			continue
		}
		out = append(out, fixable(id, name, domain.CategoryDesign,
			domain.SeveritySoftRisk, domain.ConfidenceCertain,
			fmt.Sprintf("Nessun membro del gruppo copre la disciplina %s.", disc),
			[]string{domain.MethodDesigners}, nil,
			[]string{fmt.Sprintf("progettista per %s", disc)}, nil))
	}
	return out
}

func designTeamCovers(team []domain.Designer, discipline string) bool {
	for _, m := range team {
		if strings.EqualFold(m.Discipline, discipline) {
			return true
		}
	}
	return false
}

// G3: designers must be registered with their professional order.
func evalOrderRegistration(in Input) *domain.RequirementResult {
	team := in.Company.DesignTeam
	if len(team) == 0 {
		return nil
	}
	var unverified []string
	for _, m := range team {
		if m.RegisteredWithOrder.IsNo() {
			r := ko("G3", "Iscrizione albo progettisti", domain.CategoryDesign,
				domain.SeverityHardKO, domain.ConfidenceCertain,
				fmt.Sprintf("Il progettista %s non risulta iscritto all'albo: requisito soggettivo non sanabile per quel nominativo.", m.Name),
				[]string{"progettista iscritto all'albo"}, nil)
			return &r
		}
		if m.RegisteredWithOrder.IsUnknown() {
			unverified = append(unverified, m.Name)
		}
	}
	if len(unverified) > 0 {
		r := unknown("G3", "Iscrizione albo progettisti", domain.CategoryDesign, domain.SeveritySoftRisk,
			fmt.Sprintf("Verificare l'iscrizione all'albo per: %s.", strings.Join(unverified, ", ")),
			[]string{"verifica iscrizioni albo"}, nil)
		return &r
	}
	r := ok("G3", "Iscrizione albo progettisti", domain.CategoryDesign,
		"Tutti i progettisti indicati risultano iscritti all'albo.", nil)
	return &r
}

// G4: young-professional presence when the tender demands it for grouped
// design teams.
func evalYoungProfessional(in Input) *domain.RequirementResult {
	d := in.Tender.Design
	if !d.RequiresYoungProfessional.IsYes() {
		return nil
	}
	for _, m := range in.Company.DesignTeam {
		if m.YoungProfessional.IsYes() {
			r := ok("G4", "Giovane professionista", domain.CategoryDesign,
				fmt.Sprintf("Giovane professionista presente nel gruppo (%s).", m.Name), nil)
			return &r
		}
	}
	r := fixable("G4", "Giovane professionista", domain.CategoryDesign,
		domain.SeverityHardKO, domain.ConfidenceCertain,
		"Richiesto un giovane professionista nel gruppo di progettazione: nessuno presente nel profilo.",
		[]string{domain.MethodDesigners},
		[]string{"abilitazione da meno di cinque anni"},
		[]string{"giovane professionista"}, ev(d.Evidence, "Progettazione"))
	return &r
}

// G5: BIM capability when the tender mandates BIM delivery.
func evalBIM(in Input) *domain.RequirementResult {
	d := in.Tender.Design
	if !d.BIMRequired.IsYes() {
		return nil
	}
	switch {
	case in.Company.BIMCapability.IsYes():
		r := ok("G5", "Capacità BIM", domain.CategoryDesign,
			"Gestione informativa BIM richiesta e coperta dalle capacità dell'impresa.", ev(d.Evidence, "Progettazione"))
		return &r
	case in.Company.BIMCapability.IsNo():
		r := fixable("G5", "Capacità BIM", domain.CategoryDesign,
			domain.SeverityHardKO, domain.ConfidenceCertain,
			"Richiesta la gestione informativa BIM: capacità assente, da acquisire tramite progettisti o partner qualificati.",
			[]string{domain.MethodDesigners}, nil,
			[]string{"capacità BIM"}, ev(d.Evidence, "Progettazione"))
		return &r
	default:
		r := unknown("G5", "Capacità BIM", domain.CategoryDesign, domain.SeveritySoftRisk,
			"Richiesta la gestione informativa BIM: verificare la capacità effettiva e il software disponibile.",
			[]string{"capacità BIM"}, ev(d.Evidence, "Progettazione"))
		return &r
	}
}
