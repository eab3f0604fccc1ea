package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	domerrors "github.com/MatteoMarello/bidpilot-mvp/pkg/domain-errors"
)

func f64(v float64) *float64 { return &v }

func TestTenderValidate(t *testing.T) {
	date := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	t.Run("amount without evidence is rejected", func(t *testing.T) {
		tender := &TenderRequirements{Title: "x", WorksAmountEUR: f64(1000000)}
		err := tender.Validate()
		assert.Equal(t, domerrors.CodeInvariantViolation, domerrors.CodeOf(err))
	})

	t.Run("dated deadline without evidence is rejected", func(t *testing.T) {
		tender := &TenderRequirements{
			Title:     "x",
			Deadlines: []Deadline{{Type: DeadlineOffer, Date: &date}},
		}
		err := tender.Validate()
		assert.Equal(t, domerrors.CodeInvariantViolation, domerrors.CodeOf(err))
	})

	t.Run("unknown class is rejected", func(t *testing.T) {
		tender := &TenderRequirements{
			Title:      "x",
			Categories: []QualificationCategory{{Category: "OG1", Class: "IX", Evidence: "art. 5"}},
		}
		err := tender.Validate()
		assert.Equal(t, domerrors.CodeInvariantViolation, domerrors.CodeOf(err))
	})

	t.Run("non-inferred category without evidence is rejected", func(t *testing.T) {
		tender := &TenderRequirements{
			Title:      "x",
			Categories: []QualificationCategory{{Category: "OG1", Class: "III"}},
		}
		err := tender.Validate()
		assert.Equal(t, domerrors.CodeInvariantViolation, domerrors.CodeOf(err))
	})

	t.Run("inferred category without evidence is accepted", func(t *testing.T) {
		tender := &TenderRequirements{
			Title:      "x",
			Categories: []QualificationCategory{{Category: "OG1", Class: "III", Inferred: true}},
		}
		assert.NoError(t, tender.Validate())
	})

	t.Run("classification flags require their records", func(t *testing.T) {
		tender := &TenderRequirements{
			Title:          "x",
			Classification: Classification{QualificationSystem: true},
		}
		err := tender.Validate()
		assert.Equal(t, domerrors.CodeInvariantViolation, domerrors.CodeOf(err))

		tender = &TenderRequirements{
			Title:          "x",
			Classification: Classification{MultiStagePPP: true},
		}
		err = tender.Validate()
		assert.Equal(t, domerrors.CodeInvariantViolation, domerrors.CodeOf(err))
	})

	t.Run("both modes flagged is rejected", func(t *testing.T) {
		tender := &TenderRequirements{
			Title: "x",
			Classification: Classification{
				QualificationSystem: true,
				MultiStagePPP:       true,
			},
			QualificationSystem: &QualificationSystemRecord{SystemCategory: "OG1"},
			PPP:                 &PPPRecord{},
		}
		err := tender.Validate()
		assert.Equal(t, domerrors.CodeInvariantViolation, domerrors.CodeOf(err))
	})

	t.Run("complete record passes", func(t *testing.T) {
		tender := &TenderRequirements{
			Title:               "Lavori di manutenzione",
			WorksAmountEUR:      f64(900000),
			WorksAmountEvidence: "importo lavori € 900.000",
			Deadlines: []Deadline{
				{Type: DeadlineOffer, Date: &date, Evidence: "termine presentazione offerte"},
			},
			Categories: []QualificationCategory{
				{Category: "OG1", Class: "III", Prevalent: true, Evidence: "categoria prevalente OG1 cl. III"},
			},
		}
		assert.NoError(t, tender.Validate())
	})
}

func TestCompanyValidate(t *testing.T) {
	t.Run("attestation with unknown class is rejected", func(t *testing.T) {
		c := &CompanyProfile{Attestations: []Attestation{{Category: "OG1", Class: "XII"}}}
		assert.Equal(t, domerrors.CodeInvariantViolation, domerrors.CodeOf(c.Validate()))
	})

	t.Run("certification without type is rejected", func(t *testing.T) {
		c := &CompanyProfile{Certifications: []Certification{{Valid: true}}}
		assert.Equal(t, domerrors.CodeInvariantViolation, domerrors.CodeOf(c.Validate()))
	})

	t.Run("negative turnover is rejected", func(t *testing.T) {
		c := &CompanyProfile{TurnoverByYear: []TurnoverEntry{{Year: 2024, AmountEUR: -1}}}
		assert.Equal(t, domerrors.CodeInvariantViolation, domerrors.CodeOf(c.Validate()))
	})

	t.Run("well-formed profile passes", func(t *testing.T) {
		c := &CompanyProfile{
			Attestations:   []Attestation{{Category: "OG1", Class: "III"}},
			Certifications: []Certification{{Type: "ISO 9001", Valid: true}},
			TurnoverByYear: []TurnoverEntry{{Year: 2024, AmountEUR: 1200000}},
		}
		assert.NoError(t, c.Validate())
	})
}

func TestTenderAccessors(t *testing.T) {
	tender := &TenderRequirements{
		Categories: []QualificationCategory{
			{Category: "OG3", Class: "II", Evidence: "e"},
			{Category: "OG1", Class: "III", Prevalent: true, Evidence: "e"},
		},
	}
	prev := tender.PrevalentCategory()
	assert.Equal(t, "OG1", prev.Category)
	sec := tender.SecondaryCategories()
	assert.Len(t, sec, 1)
	assert.Equal(t, "OG3", sec[0].Category)

	// No prevalent flag: the first listed category stands in.
	tender = &TenderRequirements{
		Categories: []QualificationCategory{
			{Category: "OG3", Class: "II", Evidence: "e"},
			{Category: "OS21", Class: "I", Evidence: "e"},
		},
	}
	assert.Equal(t, "OG3", tender.PrevalentCategory().Category)
	assert.Len(t, tender.SecondaryCategories(), 1)

	assert.Equal(t, ModeOrdinary, tender.Mode())
	tender.Classification.MultiStagePPP = true
	assert.Equal(t, ModePPP, tender.Mode())
	tender.Classification.QualificationSystem = true
	assert.Equal(t, ModeQualificationSystem, tender.Mode())
}
