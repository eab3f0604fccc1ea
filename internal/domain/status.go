// Package domain defines the value types shared by the requirement evaluation
// engine: the tender requirements record, the company profile, per-requirement
// results, the verdict, and the decision report.
//
// Everything in this package is an immutable value object: records enter the
// engine validated, are never mutated during evaluation, and the assembled
// report is never mutated after construction.
package domain

// Status is the outcome of one atomic requirement check.
type Status string

const (
	// StatusOK means the requirement is met with current company assets.
	StatusOK Status = "OK"
	// StatusKO means the requirement is not met and no remediation applies.
	StatusKO Status = "KO"
	// StatusFixable means the requirement is not met but the tender's
	// participation rules offer a remediation path (RTI, avvalimento,
	// subcontracting, design team).
	StatusFixable Status = "FIXABLE"
	// StatusUnknown means the data needed to judge the requirement is absent
	// or ambiguous. Missing data is never an error.
	StatusUnknown Status = "UNKNOWN"
	// StatusRiskFlag marks a non-blocking caution the operator should review.
	StatusRiskFlag Status = "RISK_FLAG"
	// StatusPremiant marks a scoring bonus the company can claim. Premiant
	// results never block a verdict.
	StatusPremiant Status = "PREMIANT"
)

// Valid reports whether s is one of the closed set of statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusOK, StatusKO, StatusFixable, StatusUnknown, StatusRiskFlag, StatusPremiant:
		return true
	}
	return false
}

// Blocking reports whether the status can contribute to a negative verdict.
func (s Status) Blocking() bool {
	switch s {
	case StatusKO, StatusFixable, StatusUnknown:
		return true
	case StatusOK, StatusRiskFlag, StatusPremiant:
		return false
	}
	return false
}

// Severity expresses how a failed requirement affects participation.
type Severity string

const (
	// SeverityHardKO requirements exclude the bidder when unmet.
	SeverityHardKO Severity = "HARD_KO"
	// SeveritySoftRisk requirements create manageable exposure, not exclusion.
	SeveritySoftRisk Severity = "SOFT_RISK"
	// SeverityInfo results carry context only.
	SeverityInfo Severity = "INFO"
)

// Valid reports whether s is one of the closed set of severities.
func (s Severity) Valid() bool {
	switch s {
	case SeverityHardKO, SeveritySoftRisk, SeverityInfo:
		return true
	}
	return false
}

// Confidence tiers. Every evaluator picks one of these named values; ad hoc
// confidence literals are not allowed anywhere in the engine.
const (
	// ConfidenceCertain is reserved for explicit, unambiguous textual
	// prescriptions backed by evidence. Only certain results can force a
	// terminal negative verdict.
	ConfidenceCertain = 1.0
	// ConfidenceAmbiguous covers partial matches and missing data. An
	// ambiguous HARD_KO never alone produces "not eligible".
	ConfidenceAmbiguous = 0.7
	// ConfidenceWeak covers inferred context (e.g. categories marked as
	// inferred by extraction). Weak results only ever surface as flags.
	ConfidenceWeak = 0.4
)

// Remediation methods a tender may permit.
const (
	MethodAvvalimento = "avvalimento"
	MethodRTI         = "rti"
	MethodDesigners   = "progettisti"
	MethodSubcontract = "subappalto"
)

// Requirement categories, used for reason grouping and stage classification.
const (
	CategoryProcedural          = "procedural"
	CategoryGeneral             = "general"
	CategoryProfessional        = "professional"
	CategoryQualification       = "qualification"
	CategoryCertification       = "certification"
	CategoryFinancial           = "financial"
	CategoryDesign              = "design"
	CategoryGuarantee           = "guarantee"
	CategoryParticipation       = "participation"
	CategoryLabor               = "labor"
	CategoryEnvironmental       = "environmental"
	CategoryOperational         = "operational"
	CategoryContractual         = "contractual"
	CategoryQualificationSystem = "qualification_system"
	CategoryPPP                 = "ppp"
)

// TriState models a fact that extraction may assert, deny, or leave open.
// The zero value is treated as unknown.
type TriState string

const (
	Yes     TriState = "yes"
	No      TriState = "no"
	Unknown TriState = "unknown"
)

// IsYes reports an explicit positive assertion.
func (t TriState) IsYes() bool { return t == Yes }

// IsNo reports an explicit negative assertion.
func (t TriState) IsNo() bool { return t == No }

// IsUnknown reports absence of proof either way.
func (t TriState) IsUnknown() bool { return t != Yes && t != No }
