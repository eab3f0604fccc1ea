package domain

// Fixability describes whether and how an unmet requirement can be remedied
// through the tender's participation rules.
type Fixability struct {
	IsFixable      bool     `json:"is_fixable"`
	AllowedMethods []string `json:"allowed_methods,omitempty"`
	Constraints    []string `json:"constraints,omitempty"`
}

// CompanyGap lists what the company is missing for one requirement.
type CompanyGap struct {
	MissingAssets []string `json:"missing_assets,omitempty"`
	MissingData   []string `json:"missing_data,omitempty"`
	Notes         string   `json:"notes,omitempty"`
}

// RequirementResult is the outcome of one atomic requirement check.
//
// Invariants:
//   - Status == FIXABLE implies Fixability.IsFixable == true.
//   - Confidence is one of the named tiers; a HARD_KO with Confidence below
//     ConfidenceCertain never alone produces a terminal "not eligible"
//     verdict.
type RequirementResult struct {
	ID         string     `json:"req_id"`
	Name       string     `json:"name"`
	Category   string     `json:"category"`
	Status     Status     `json:"status"`
	Severity   Severity   `json:"severity"`
	Confidence float64    `json:"confidence"`
	Fixability Fixability `json:"fixability"`
	CompanyGap CompanyGap `json:"company_gap"`
	Evidence   []Evidence `json:"evidence,omitempty"`
	Message    string     `json:"user_message"`
}

// IsBlocking reports whether the result can contribute to a negative verdict:
// premiant and purely informational outcomes never do.
func (r RequirementResult) IsBlocking() bool {
	if r.Status == StatusPremiant {
		return false
	}
	return r.Status.Blocking()
}
