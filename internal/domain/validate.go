package domain

import (
	domerrors "github.com/MatteoMarello/bidpilot-mvp/pkg/domain-errors"
)

// Validate rejects tender records that violate the data-model invariants.
// It runs at the ingestion boundary, before any evaluator: evaluation itself
// never fails, so a malformed record must never get this far.
func (t *TenderRequirements) Validate() error {
	if t.WorksAmountEUR != nil && t.WorksAmountEvidence == "" {
		return domerrors.New(domerrors.CodeInvariantViolation,
			"works amount present without supporting evidence")
	}
	if t.MinTurnoverEUR != nil && t.MinTurnoverEvidence == "" {
		return domerrors.New(domerrors.CodeInvariantViolation,
			"minimum turnover present without supporting evidence")
	}
	if t.MinSectorTurnoverEUR != nil && t.MinSectorTurnoverEvidence == "" {
		return domerrors.New(domerrors.CodeInvariantViolation,
			"minimum sector turnover present without supporting evidence")
	}
	if t.ReferenceWorksMinEUR != nil && t.ReferenceWorksEvidence == "" {
		return domerrors.New(domerrors.CodeInvariantViolation,
			"reference-works minimum present without supporting evidence")
	}
	if t.MandatoryStartDate != nil && t.MandatoryStartEvidence == "" {
		return domerrors.New(domerrors.CodeInvariantViolation,
			"mandatory start date present without supporting evidence")
	}

	for i := range t.Deadlines {
		d := &t.Deadlines[i]
		if d.Type == "" {
			return domerrors.New(domerrors.CodeInvariantViolation,
				"deadline entry without a type")
		}
		if d.Date != nil && d.Evidence == "" {
			return domerrors.Newf(domerrors.CodeInvariantViolation,
				"deadline %q carries a date without supporting evidence", d.Type)
		}
	}

	for i := range t.Categories {
		c := &t.Categories[i]
		if c.Category == "" {
			return domerrors.New(domerrors.CodeInvariantViolation,
				"qualification category entry without a category code")
		}
		if c.Class != "" && !KnownSOAClass(c.Class) {
			return domerrors.Newf(domerrors.CodeInvariantViolation,
				"qualification category %s carries unknown class %q", c.Category, c.Class)
		}
		if !c.Inferred && c.Evidence == "" {
			return domerrors.Newf(domerrors.CodeInvariantViolation,
				"qualification category %s asserted without evidence and not marked inferred", c.Category)
		}
	}

	if t.Classification.QualificationSystem && t.QualificationSystem == nil {
		return domerrors.New(domerrors.CodeInvariantViolation,
			"qualification-system classification without a qualification-system record")
	}
	if t.Classification.MultiStagePPP && t.PPP == nil {
		return domerrors.New(domerrors.CodeInvariantViolation,
			"multi-stage PPP classification without a PPP record")
	}
	if t.Classification.QualificationSystem && t.Classification.MultiStagePPP {
		return domerrors.New(domerrors.CodeInvariantViolation,
			"tender flagged as both qualification-system and multi-stage PPP")
	}

	return nil
}

// Validate rejects company profiles that violate the data-model invariants.
func (c *CompanyProfile) Validate() error {
	for i := range c.Attestations {
		a := &c.Attestations[i]
		if a.Category == "" {
			return domerrors.New(domerrors.CodeInvariantViolation,
				"attestation entry without a category code")
		}
		if !KnownSOAClass(a.Class) {
			return domerrors.Newf(domerrors.CodeInvariantViolation,
				"attestation %s carries unknown class %q", a.Category, a.Class)
		}
	}
	for i := range c.Certifications {
		if c.Certifications[i].Type == "" {
			return domerrors.New(domerrors.CodeInvariantViolation,
				"certification entry without a type")
		}
	}
	for _, e := range c.TurnoverByYear {
		if e.Year <= 0 || e.AmountEUR < 0 {
			return domerrors.Newf(domerrors.CodeInvariantViolation,
				"turnover entry with invalid year/amount (%d, %.2f)", e.Year, e.AmountEUR)
		}
	}
	return nil
}
