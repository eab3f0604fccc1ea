package domain

import "time"

// TopReason is one of the up-to-three headline reasons behind a verdict.
type TopReason struct {
	IssueType  string    `json:"issue_type"`
	Severity   Severity  `json:"severity"`
	Message    string    `json:"message"`
	Evidence   *Evidence `json:"evidence,omitempty"`
	CanBeFixed bool      `json:"can_be_fixed"`
	FixOptions []string  `json:"fix_options,omitempty"`
}

// ActionStep is one ordered step of the remediation plan.
type ActionStep struct {
	Step         int      `json:"step"`
	Title        string   `json:"title"`
	Why          string   `json:"why"`
	InputsNeeded []string `json:"inputs_needed,omitempty"`
	Risks        []string `json:"risks,omitempty"`
}

// ActionPlan is the remediation plan derived from FIXABLE results.
// RecommendedPath is "none" iff no FIXABLE result exists.
type ActionPlan struct {
	RecommendedPath string       `json:"recommended_path"`
	Steps           []ActionStep `json:"steps"`
}

// Procedural check statuses.
type CheckStatus string

const (
	CheckPending     CheckStatus = "PENDING"
	CheckDone        CheckStatus = "DONE"
	CheckNotPossible CheckStatus = "NOT_POSSIBLE"
	CheckUnknown     CheckStatus = "UNKNOWN"
)

// ProceduralCheckItem is one procedural obligation with its deadline.
type ProceduralCheckItem struct {
	Item     string      `json:"item"`
	Deadline *time.Time  `json:"deadline,omitempty"`
	Status   CheckStatus `json:"status"`
	Impact   Severity    `json:"impact"`
	Evidence *Evidence   `json:"evidence,omitempty"`
}

// DocChecklistItem is one document to prepare.
type DocChecklistItem struct {
	Name      string `json:"name"`
	Mandatory bool   `json:"mandatory"`
	Notes     string `json:"notes,omitempty"`
}

// DocumentChecklist groups required documents into the five fixed buckets.
type DocumentChecklist struct {
	Administrative []DocChecklistItem `json:"administrative"`
	Technical      []DocChecklistItem `json:"technical"`
	Economic       []DocChecklistItem `json:"economic"`
	Guarantees     []DocChecklistItem `json:"guarantees"`
	Platform       []DocChecklistItem `json:"platform"`
}

// RiskLevel grades entries of the risk register.
type RiskLevel string

const (
	RiskHigh   RiskLevel = "HIGH"
	RiskMedium RiskLevel = "MEDIUM"
	RiskLow    RiskLevel = "LOW"
)

// Risk is one entry of the risk register.
type Risk struct {
	ID          string    `json:"risk_id"`
	Type        string    `json:"risk_type"`
	Level       RiskLevel `json:"level"`
	Message     string    `json:"message"`
	Evidence    *Evidence `json:"evidence,omitempty"`
	Mitigations []string  `json:"mitigations,omitempty"`
}

// Uncertainty is an open question blocking or weakening confident judgment.
// "I don't know" is a first-class, visible output.
type Uncertainty struct {
	Question      string `json:"question"`
	WhyNeeded     string `json:"why_needed"`
	BlocksVerdict bool   `json:"blocks_verdict"`
}

// AuditEntry is one step of the append-only audit trail.
type AuditEntry struct {
	Event      string  `json:"event"`
	Result     string  `json:"result"`
	Confidence float64 `json:"confidence"`
}

// DecisionReport is the root aggregate the engine emits: built fresh on every
// invocation, immutable after assembly, serialized to a stable JSON shape.
// New optional fields may be added across versions but never repurposed.
type DecisionReport struct {
	ReportID            string                `json:"report_id"`
	Mode                EngineMode            `json:"engine_mode"`
	Verdict             Verdict               `json:"verdict"`
	TopReasons          []TopReason           `json:"top_reasons"`
	Results             []RequirementResult   `json:"requirements_results"`
	ActionPlan          ActionPlan            `json:"action_plan"`
	ProceduralChecklist []ProceduralCheckItem `json:"procedural_checklist"`
	DocumentChecklist   DocumentChecklist     `json:"document_checklist"`
	RiskRegister        []Risk                `json:"risk_register"`
	Uncertainties       []Uncertainty         `json:"uncertainties"`
	AuditTrail          []AuditEntry          `json:"audit_trail"`
	GeneratedAt         time.Time             `json:"generated_at"`
}
