package rules

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/MatteoMarello/bidpilot-mvp/internal/domain"
)

// ordinaryFamilies is the full battery for single-tender procedures, in
// report order.
var ordinaryFamilies = []Family{
	{Name: "procedural", Eval: evalProcedural},
	{Name: "general", Eval: evalGeneral},
	{Name: "professional", Eval: evalProfessional},
	{Name: "qualification", Eval: evalQualification},
	{Name: "certifications", Eval: evalCertifications},
	{Name: "financial", Eval: evalFinancial},
	{Name: "design", Eval: evalDesign},
	{Name: "guarantees", Eval: evalGuarantees},
	{Name: "participation", Eval: evalParticipation},
	{Name: "labor", Eval: evalLabor},
	{Name: "environmental", Eval: evalEnvironmental},
	{Name: "operational", Eval: evalOperational},
}

// qualificationSystemFamilies restricts the battery to what matters for a
// register enrollment: no offer mechanics, no guarantees, no labor costs.
var qualificationSystemFamilies = []Family{
	{Name: "general", Eval: evalGeneral},
	{Name: "professional", Eval: evalProfessional},
	{Name: "qualification_system", Eval: evalQualificationSystem},
	{Name: "certifications", Eval: evalCertifications},
	{Name: "financial", Eval: evalFinancial},
}

// pppFamilies adds the PPP-specific checks on top of the ordinary battery.
var pppFamilies = append(append([]Family{}, ordinaryFamilies...),
	Family{Name: "ppp", Eval: evalPPP})

// FamiliesFor returns the evaluator battery applicable to an engine mode.
func FamiliesFor(mode domain.EngineMode) []Family {
	switch mode {
	case domain.ModeQualificationSystem:
		return qualificationSystemFamilies
	case domain.ModePPP:
		return pppFamilies
	default:
		return ordinaryFamilies
	}
}

// EvaluateAll runs every applicable family and returns the concatenated
// results. Families run concurrently but results come back in registry
// order, so two runs over the same input produce byte-identical reports.
func EvaluateAll(ctx context.Context, in Input) ([]domain.RequirementResult, error) {
	families := FamiliesFor(in.Tender.Mode())
	perFamily := make([][]domain.RequirementResult, len(families))

	g, _ := errgroup.WithContext(ctx)
	for i, fam := range families {
		i, fam := i, fam
		g.Go(func() error {
			perFamily[i] = fam.Eval(in)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []domain.RequirementResult
	for _, results := range perFamily {
		out = append(out, results...)
	}
	return out, nil
}
