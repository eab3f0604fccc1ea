package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MatteoMarello/bidpilot-mvp/internal/domain"
)

func TestGlobalTurnoverCovered(t *testing.T) {
	tender := baseTender()
	tender.MinTurnoverEUR = f64(1500000)
	tender.MinTurnoverEvidence = "fatturato globale minimo nel triennio € 1.500.000"
	company := baseCompany()
	company.TurnoverByYear = []domain.TurnoverEntry{
		{Year: 2023, AmountEUR: 600000},
		{Year: 2024, AmountEUR: 700000},
		{Year: 2025, AmountEUR: 800000},
	}

	results := evalFinancial(testInput(tender, company))
	e1 := findResult(t, results, "E1")
	assert.Equal(t, domain.StatusOK, e1.Status)
}

func TestGlobalTurnoverGapIsFixable(t *testing.T) {
	tender := baseTender()
	tender.MinTurnoverEUR = f64(5000000)
	tender.MinTurnoverEvidence = "fatturato minimo"
	company := baseCompany()
	company.TurnoverByYear = []domain.TurnoverEntry{{Year: 2025, AmountEUR: 800000}}

	results := evalFinancial(testInput(tender, company))
	e1 := findResult(t, results, "E1")
	assert.Equal(t, domain.StatusFixable, e1.Status)
	assert.Equal(t, domain.SeverityHardKO, e1.Severity)
}

func TestTurnoverMissingDataStaysUnknown(t *testing.T) {
	tender := baseTender()
	tender.MinTurnoverEUR = f64(1000000)
	tender.MinTurnoverEvidence = "fatturato minimo"
	company := baseCompany()
	company.TurnoverByYear = nil

	results := evalFinancial(testInput(tender, company))
	e1 := findResult(t, results, "E1")
	assert.Equal(t, domain.StatusUnknown, e1.Status)
	assert.NotEmpty(t, e1.CompanyGap.MissingData)
}

func TestOnlyRecentYearsCount(t *testing.T) {
	tender := baseTender()
	tender.MinTurnoverEUR = f64(1000000)
	tender.MinTurnoverEvidence = "fatturato minimo"
	company := baseCompany()
	// Four years on file: only the three most recent are summed.
	company.TurnoverByYear = []domain.TurnoverEntry{
		{Year: 2022, AmountEUR: 900000},
		{Year: 2023, AmountEUR: 100000},
		{Year: 2024, AmountEUR: 100000},
		{Year: 2025, AmountEUR: 100000},
	}

	results := evalFinancial(testInput(tender, company))
	e1 := findResult(t, results, "E1")
	assert.Equal(t, domain.StatusFixable, e1.Status)
}

func TestReferenceWorkThreshold(t *testing.T) {
	tender := baseTender()
	tender.ReferenceWorksMinEUR = f64(700000)
	tender.ReferenceWorksEvidence = "almeno un lavoro analogo da € 700.000"
	company := baseCompany()
	company.ReferenceWorks = []domain.ReferenceWork{
		{Year: 2024, AmountEUR: 850000, Categories: []string{"OG1"}},
	}

	results := evalFinancial(testInput(tender, company))
	e3 := findResult(t, results, "E3")
	assert.Equal(t, domain.StatusOK, e3.Status)

	tender.ReferenceWorksMinEUR = f64(900000)
	results = evalFinancial(testInput(tender, company))
	e3 = findResult(t, results, "E3")
	assert.Equal(t, domain.StatusFixable, e3.Status)
}
