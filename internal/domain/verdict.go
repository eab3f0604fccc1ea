package domain

// EngineMode selects which rule families the orchestrator runs.
type EngineMode string

const (
	ModeOrdinary            EngineMode = "ordinary"
	ModeQualificationSystem EngineMode = "qualification_system"
	ModePPP                 EngineMode = "ppp"
)

// VerdictStatus is the closed set of terminal verdict states.
type VerdictStatus string

const (
	// Ordinary-tender states.
	VerdictNoGo            VerdictStatus = "NO_GO"
	VerdictGoWithStructure VerdictStatus = "GO_WITH_STRUCTURE"
	VerdictGoHighRisk      VerdictStatus = "GO_HIGH_RISK"
	VerdictGo              VerdictStatus = "GO"
	// Qualification-system states.
	VerdictEligibleQualification    VerdictStatus = "ELIGIBLE_QUALIFICATION"
	VerdictNotEligibleQualification VerdictStatus = "NOT_ELIGIBLE_QUALIFICATION"
	// Multi-stage PPP: only stage-1 admissibility is ever asserted; a
	// single-state verdict over the whole procedure is disallowed.
	VerdictEligibleStage1 VerdictStatus = "ELIGIBLE_STAGE1"
)

// Valid reports whether v is one of the closed set of verdict states.
func (v VerdictStatus) Valid() bool {
	switch v {
	case VerdictNoGo, VerdictGoWithStructure, VerdictGoHighRisk, VerdictGo,
		VerdictEligibleQualification, VerdictNotEligibleQualification,
		VerdictEligibleStage1:
		return true
	}
	return false
}

// Eligibility is the legal-eligibility tri-state on a verdict.
type Eligibility string

const (
	Eligible    Eligibility = "eligible"
	NotEligible Eligibility = "not_eligible"
	Uncertain   Eligibility = "uncertain"
)

// Feasibility is the operational-feasibility assessment on a verdict.
type Feasibility string

const (
	Feasible            Feasibility = "feasible"
	Risky               Feasibility = "risky"
	NotFeasible         Feasibility = "not_feasible"
	FeasibilityUncertain Feasibility = "uncertain"
)

// StageOutcome is the per-stage breakdown emitted in PPP mode.
type StageOutcome struct {
	Stage         string      `json:"stage"`
	Admissibility Eligibility `json:"admissibility"`
	Risks         []string    `json:"risks,omitempty"`
}

// Verdict is the aggregated outcome over all requirement results.
type Verdict struct {
	Status                 VerdictStatus `json:"status"`
	LegalEligibility       Eligibility   `json:"legal_eligibility"`
	OperationalFeasibility Feasibility   `json:"operational_feasibility"`
	// ProfileConfidence is the minimum confidence across all HARD_KO-severity
	// results (1.0 when none exist). It tells the operator how much the
	// verdict itself can be trusted given extraction ambiguity, and must
	// always be surfaced.
	ProfileConfidence float64        `json:"profile_confidence"`
	Summary           string         `json:"summary"`
	Stages            []StageOutcome `json:"stages,omitempty"`
}
