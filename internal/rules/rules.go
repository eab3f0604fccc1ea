// Package rules implements the requirement evaluator library: one pure
// function per atomic requirement, grouped into families, plus the
// orchestrator that runs the families applicable to a tender's
// classification.
//
// Evaluators never return errors. A rule that does not apply to the tender
// contributes nothing; a rule that cannot be judged for lack of data yields
// an UNKNOWN result at ambiguous confidence. Values are never inferred from
// descriptions: no evidence, no assertion.
package rules

import (
	"time"

	"github.com/MatteoMarello/bidpilot-mvp/internal/domain"
)

// Input carries the immutable inputs of one evaluation run. Now is injected
// so deadline arithmetic is reproducible.
type Input struct {
	Tender  *domain.TenderRequirements
	Company *domain.CompanyProfile
	Now     time.Time
}

// Family is one named group of atomic requirement checks. Eval returns the
// family's results in a fixed order.
type Family struct {
	Name string
	Eval func(in Input) []domain.RequirementResult
}

// daysUntil returns the whole days from in.Now to t.
func (in Input) daysUntil(t time.Time) int {
	return int(t.Sub(in.Now).Hours() / 24)
}

// passed reports whether t is strictly before the evaluation time.
func (in Input) passed(t *time.Time) bool {
	return t != nil && t.Before(in.Now)
}
