// Package decision aggregates requirement results into a verdict and builds
// the operator-facing decision report: top reasons, action plan, checklists,
// risk register, and open questions.
package decision

import (
	"fmt"

	"github.com/MatteoMarello/bidpilot-mvp/internal/domain"
)

// ComputeVerdict folds the full result set into a terminal verdict state.
//
// Ordering is strict: qualification-system mode resolves first, then PPP,
// then the ordinary ladder. A terminal negative requires a HARD_KO failure at
// certain confidence; ambiguity can only ever degrade a go to high-risk.
func ComputeVerdict(mode domain.EngineMode, results []domain.RequirementResult, stages []string) domain.Verdict {
	pc := profileConfidence(results)

	switch mode {
	case domain.ModeQualificationSystem:
		return qualificationVerdict(results, pc)
	case domain.ModePPP:
		return pppVerdict(results, pc, stages)
	default:
		return ordinaryVerdict(results, pc)
	}
}

// profileConfidence is the minimum confidence across HARD_KO-severity
// results, 1.0 when none exist.
func profileConfidence(results []domain.RequirementResult) float64 {
	pc := domain.ConfidenceCertain
	for _, r := range results {
		if r.Severity == domain.SeverityHardKO && r.Confidence < pc {
			pc = r.Confidence
		}
	}
	return pc
}

func certainHardFailure(r domain.RequirementResult) bool {
	return r.Severity == domain.SeverityHardKO &&
		r.Status == domain.StatusKO &&
		r.Confidence >= domain.ConfidenceCertain
}

func ordinaryVerdict(results []domain.RequirementResult, pc float64) domain.Verdict {
	var (
		hardCertainKO bool
		hardFixable   bool
		ambiguousKO   bool
		concern       bool
	)
	for _, r := range results {
		if r.Status == domain.StatusPremiant {
			continue
		}
		switch {
		case certainHardFailure(r):
			hardCertainKO = true
		case r.Severity == domain.SeverityHardKO && r.Status == domain.StatusFixable:
			hardFixable = true
		}
		if r.Status == domain.StatusKO && r.Confidence < domain.ConfidenceCertain {
			ambiguousKO = true
		}
		if residualConcern(r) {
			concern = true
		}
	}

	switch {
	case hardCertainKO:
		return domain.Verdict{
			Status:                 domain.VerdictNoGo,
			LegalEligibility:       domain.NotEligible,
			OperationalFeasibility: operationalFeasibility(results),
			ProfileConfidence:      pc,
			Summary:                "Requisito escludente non soddisfatto e non sanabile: partecipazione sconsigliata.",
		}
	case hardFixable && !ambiguousKO:
		return domain.Verdict{
			Status:                 domain.VerdictGoWithStructure,
			LegalEligibility:       domain.Uncertain,
			OperationalFeasibility: operationalFeasibility(results),
			ProfileConfidence:      pc,
			Summary:                "Partecipazione possibile costituendo la struttura indicata nel piano d'azione.",
		}
	case concern:
		return domain.Verdict{
			Status:                 domain.VerdictGoHighRisk,
			LegalEligibility:       domain.Uncertain,
			OperationalFeasibility: operationalFeasibility(results),
			ProfileConfidence:      pc,
			Summary:                "Partecipazione possibile ma con esiti incerti: sciogliere i punti aperti prima di impegnare risorse.",
		}
	default:
		return domain.Verdict{
			Status:                 domain.VerdictGo,
			LegalEligibility:       domain.Eligible,
			OperationalFeasibility: operationalFeasibility(results),
			ProfileConfidence:      pc,
			Summary:                "Nessun requisito blocca la partecipazione: si può procedere con la preparazione dell'offerta.",
		}
	}
}

// residualConcern marks the outcomes that force the high-risk path: a
// sub-certain KO, any fixable gap, a hard unknown, or a soft-severity
// failure. Informational risk flags never drive the verdict; they live in
// the risk register.
func residualConcern(r domain.RequirementResult) bool {
	switch {
	case r.Status == domain.StatusKO && r.Confidence < domain.ConfidenceCertain:
		return true
	case r.Status == domain.StatusFixable:
		return true
	case r.Status == domain.StatusUnknown && r.Severity == domain.SeverityHardKO:
		return true
	case (r.Status == domain.StatusKO || r.Status == domain.StatusUnknown) &&
		r.Severity == domain.SeveritySoftRisk:
		return true
	}
	return false
}

// qualificationVerdict: registration is binary. Only a certain hard failure
// blocks; everything ambiguous keeps eligibility with reduced confidence.
func qualificationVerdict(results []domain.RequirementResult, pc float64) domain.Verdict {
	for _, r := range results {
		if certainHardFailure(r) {
			return domain.Verdict{
				Status:                 domain.VerdictNotEligibleQualification,
				LegalEligibility:       domain.NotEligible,
				OperationalFeasibility: domain.FeasibilityUncertain,
				ProfileConfidence:      pc,
				Summary:                "Requisito del sistema di qualificazione non soddisfatto: iscrizione non ottenibile allo stato attuale.",
			}
		}
	}
	legal := domain.Eligible
	summary := "Requisiti del sistema di qualificazione soddisfatti: presentare domanda di iscrizione."
	if pc < domain.ConfidenceCertain {
		legal = domain.Uncertain
		summary = "Requisiti del sistema compatibili con l'iscrizione, ma restano punti da verificare."
	}
	return domain.Verdict{
		Status:                 domain.VerdictEligibleQualification,
		LegalEligibility:       legal,
		OperationalFeasibility: domain.FeasibilityUncertain,
		ProfileConfidence:      pc,
		Summary:                summary,
	}
}

// pppVerdict never asserts a single go/no-go over a multi-stage procedure:
// it reports stage-1 admissibility plus a per-stage risk breakdown.
func pppVerdict(results []domain.RequirementResult, pc float64, stages []string) domain.Verdict {
	if len(stages) == 0 {
		stages = []string{"manifestazione di interesse"}
	}

	outcomes := make([]domain.StageOutcome, 0, len(stages))
	for i, stage := range stages {
		outcome := domain.StageOutcome{Stage: stage, Admissibility: domain.Uncertain}
		if i == 0 {
			outcome.Admissibility = stage1Admissibility(results)
		}
		outcome.Risks = stageRisks(results, i)
		outcomes = append(outcomes, outcome)
	}

	return domain.Verdict{
		Status:                 domain.VerdictEligibleStage1,
		LegalEligibility:       outcomes[0].Admissibility,
		OperationalFeasibility: operationalFeasibility(results),
		ProfileConfidence:      pc,
		Summary: fmt.Sprintf(
			"Procedura in %d fasi: il giudizio copre solo l'ammissibilità alla prima fase; le successive vanno rivalutate a valle degli esiti.",
			len(outcomes)),
		Stages: outcomes,
	}
}

// stage1Admissibility judges only the requirements that gate the first stage
// of a PPP: general and professional eligibility plus procedure mechanics.
func stage1Admissibility(results []domain.RequirementResult) domain.Eligibility {
	admissible := domain.Eligible
	for _, r := range results {
		switch r.Category {
		case domain.CategoryGeneral, domain.CategoryProfessional, domain.CategoryProcedural:
		default:
			continue
		}
		if certainHardFailure(r) {
			return domain.NotEligible
		}
		if r.IsBlocking() {
			admissible = domain.Uncertain
		}
	}
	return admissible
}

// stageRisks distributes concern messages over the stages: procedural and
// eligibility concerns belong to stage one, capacity and financial-plan
// concerns to the later stages.
func stageRisks(results []domain.RequirementResult, stageIdx int) []string {
	var risks []string
	for _, r := range results {
		if !r.IsBlocking() && r.Status != domain.StatusRiskFlag {
			continue
		}
		early := r.Category == domain.CategoryGeneral ||
			r.Category == domain.CategoryProfessional ||
			r.Category == domain.CategoryProcedural
		if early == (stageIdx == 0) {
			risks = append(risks, r.Message)
		}
	}
	return risks
}

// operationalFeasibility grades the operational-category results only: legal
// blockers never contaminate the feasibility axis.
func operationalFeasibility(results []domain.RequirementResult) domain.Feasibility {
	feasibility := domain.Feasible
	sawOperational := false
	for _, r := range results {
		if r.Category != domain.CategoryOperational {
			continue
		}
		sawOperational = true
		switch r.Status {
		case domain.StatusKO:
			return domain.NotFeasible
		case domain.StatusRiskFlag:
			if r.Confidence >= domain.ConfidenceCertain {
				feasibility = domain.Risky
			} else if feasibility == domain.Feasible {
				feasibility = domain.FeasibilityUncertain
			}
		case domain.StatusUnknown:
			if feasibility == domain.Feasible {
				feasibility = domain.FeasibilityUncertain
			}
		}
	}
	if !sawOperational {
		return domain.Feasible
	}
	return feasibility
}
