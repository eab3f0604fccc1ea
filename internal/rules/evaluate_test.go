package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MatteoMarello/bidpilot-mvp/internal/domain"
)

func TestEvaluateAllIsDeterministic(t *testing.T) {
	tender := baseTender()
	tender.SiteVisitMandatory = domain.Yes
	tender.SiteVisitEvidence = "sopralluogo obbligatorio"
	tender.Certifications = []domain.CertificationRequirement{
		{Name: "ISO 9001", Evidence: "certificazione ISO 9001"},
	}
	in := testInput(tender, baseCompany())

	first, err := EvaluateAll(context.Background(), in)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	for n := 0; n < 20; n++ {
		again, err := EvaluateAll(context.Background(), in)
		require.NoError(t, err)
		require.Equal(t, len(first), len(again))
		for i := range first {
			assert.Equal(t, first[i].ID, again[i].ID, "result order changed at %d", i)
		}
	}
}

func TestEvaluateAllStatusesAreValid(t *testing.T) {
	tender := baseTender()
	tender.Environmental.PNRRFunded = domain.Yes
	tender.Design.DesignBuild = domain.Yes
	tender.Design.Evidence = "appalto integrato di progettazione ed esecuzione"
	tender.Guarantees = &domain.GuaranteeRequirements{ProvisionalPct: f64(2)}

	results, err := EvaluateAll(context.Background(), testInput(tender, baseCompany()))
	require.NoError(t, err)
	for _, r := range results {
		assert.True(t, r.Status.Valid(), "%s: invalid status %q", r.ID, r.Status)
		assert.True(t, r.Severity.Valid(), "%s: invalid severity %q", r.ID, r.Severity)
		assert.NotEmpty(t, r.ID)
		assert.NotEmpty(t, r.Message, "%s: result without user message", r.ID)
		switch r.Confidence {
		case domain.ConfidenceCertain, domain.ConfidenceAmbiguous, domain.ConfidenceWeak:
		default:
			t.Errorf("%s: confidence %v is not a named tier", r.ID, r.Confidence)
		}
	}
}

func TestFamiliesForMode(t *testing.T) {
	ordinary := FamiliesFor(domain.ModeOrdinary)
	qs := FamiliesFor(domain.ModeQualificationSystem)
	ppp := FamiliesFor(domain.ModePPP)

	names := func(fams []Family) []string {
		var out []string
		for _, f := range fams {
			out = append(out, f.Name)
		}
		return out
	}

	assert.Contains(t, names(ordinary), "procedural")
	assert.NotContains(t, names(ordinary), "ppp")
	assert.NotContains(t, names(ordinary), "qualification_system")

	assert.Contains(t, names(qs), "qualification_system")
	assert.NotContains(t, names(qs), "procedural")
	assert.NotContains(t, names(qs), "guarantees")

	assert.Contains(t, names(ppp), "ppp")
	assert.Contains(t, names(ppp), "procedural")
	assert.Equal(t, len(ordinary)+1, len(ppp))
}
