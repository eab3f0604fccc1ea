package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MatteoMarello/bidpilot-mvp/internal/domain"
)

var testNow = time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

func f64(v float64) *float64 { return &v }

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
	return &t
}

// baseTender returns an ordinary works tender: OG1 cl.III prevalent, offer
// deadline in thirty days, RTI and avvalimento open.
func baseTender() *domain.TenderRequirements {
	return &domain.TenderRequirements{
		Title:               "Manutenzione straordinaria edificio comunale",
		WorksAmountEUR:      f64(900000),
		WorksAmountEvidence: "importo complessivo dei lavori € 900.000",
		Deadlines: []domain.Deadline{
			{
				Type:     domain.DeadlineOffer,
				Date:     datePtr(2026, 10, 1),
				Evidence: "termine di presentazione delle offerte: 01/10/2026",
			},
		},
		Categories: []domain.QualificationCategory{
			{Category: "OG1", Class: "III", Prevalent: true, Evidence: "categoria prevalente OG1 classifica III"},
		},
		Participation: domain.ParticipationRules{
			RTIAllowed:         domain.Yes,
			AvvalimentoAllowed: domain.Yes,
			SubcontractMaxPct:  f64(30),
		},
	}
}

// baseCompany returns a profile holding OG1 cl.III valid well past the
// deadline and willing to use every structure.
func baseCompany() *domain.CompanyProfile {
	return &domain.CompanyProfile{
		LegalName: "Impresa Test S.r.l.",
		LegalRepresentative: domain.LegalRepresentative{
			Name: "Mario Rossi", Role: "Amministratore",
			HasDigitalSignature: true, SigningPowersProof: "available",
		},
		Registration: domain.CompanyRegistration{
			Registered: true, REANumber: "TO-111222", CoherentWithTender: domain.Yes,
		},
		Attestations: []domain.Attestation{
			{Category: "OG1", Class: "III", Expiry: datePtr(2028, 5, 1)},
		},
		WillingRTI:         true,
		WillingAvvalimento: true,
		WillingSubcontract: true,
	}
}

func testInput(t *domain.TenderRequirements, c *domain.CompanyProfile) Input {
	return Input{Tender: t, Company: c, Now: testNow}
}

func findResult(t *testing.T, results []domain.RequirementResult, id string) domain.RequirementResult {
	t.Helper()
	for _, r := range results {
		if r.ID == id {
			return r
		}
	}
	t.Fatalf("result %s not found", id)
	return domain.RequirementResult{}
}

func TestPrevalentCategoryCovered(t *testing.T) {
	results := evalQualification(testInput(baseTender(), baseCompany()))
	c1 := findResult(t, results, "C1")
	assert.Equal(t, domain.StatusOK, c1.Status)
	assert.Equal(t, domain.ConfidenceCertain, c1.Confidence)
}

func TestPrevalentCategoryClassGapIsFixable(t *testing.T) {
	company := baseCompany()
	company.Attestations[0].Class = "II"

	results := evalQualification(testInput(baseTender(), company))
	c1 := findResult(t, results, "C1")

	assert.Equal(t, domain.StatusFixable, c1.Status)
	assert.Equal(t, domain.SeverityHardKO, c1.Severity)
	assert.True(t, c1.Fixability.IsFixable)
	assert.Contains(t, c1.Fixability.AllowedMethods, domain.MethodAvvalimento)
	assert.Contains(t, c1.Fixability.AllowedMethods, domain.MethodRTI)
	// Subcontracting never remedies the prevalent category.
	assert.NotContains(t, c1.Fixability.AllowedMethods, domain.MethodSubcontract)
}

func TestLowerClassNeverSatisfiesHigher(t *testing.T) {
	company := baseCompany()
	company.Attestations[0].Class = "II"
	results := evalQualification(testInput(baseTender(), company))
	c1 := findResult(t, results, "C1")
	assert.NotEqual(t, domain.StatusOK, c1.Status)
}

func TestHigherClassSatisfiesLower(t *testing.T) {
	tender := baseTender()
	tender.Categories[0].Class = "II"
	company := baseCompany()
	company.Attestations[0].Class = "IV"
	results := evalQualification(testInput(tender, company))
	c1 := findResult(t, results, "C1")
	assert.Equal(t, domain.StatusOK, c1.Status)
}

func TestMissingPrevalentWithoutStructureDegradesToKO(t *testing.T) {
	tender := baseTender()
	tender.Participation = domain.ParticipationRules{
		RTIAllowed:         domain.No,
		AvvalimentoAllowed: domain.No,
	}
	company := baseCompany()
	company.Attestations = nil

	results := evalQualification(testInput(tender, company))
	c1 := findResult(t, results, "C1")
	assert.Equal(t, domain.StatusKO, c1.Status)
	assert.False(t, c1.Fixability.IsFixable)
}

func TestAttestationExpiringBeforeOfferDeadline(t *testing.T) {
	company := baseCompany()
	// Valid today, expired by the offer deadline.
	company.Attestations[0].Expiry = datePtr(2026, 9, 20)

	results := evalQualification(testInput(baseTender(), company))
	c1 := findResult(t, results, "C1")
	assert.Equal(t, domain.StatusKO, c1.Status)
	assert.Equal(t, domain.SeverityHardKO, c1.Severity)

	c3 := findResult(t, results, "C3_OG1")
	assert.Equal(t, domain.StatusKO, c3.Status)
}

func TestAttestationWithoutExpiryStaysUnknown(t *testing.T) {
	company := baseCompany()
	// Owned at the right class, but the profile carries no expiry date:
	// absence of data is a question, never a certain failure.
	company.Attestations[0].Expiry = nil

	results := evalQualification(testInput(baseTender(), company))
	c1 := findResult(t, results, "C1")
	assert.Equal(t, domain.StatusUnknown, c1.Status)
	assert.Equal(t, domain.SeverityHardKO, c1.Severity)
	assert.Equal(t, domain.ConfidenceAmbiguous, c1.Confidence)
	assert.NotContains(t, c1.Message, "scade il")

	c3 := findResult(t, results, "C3_OG1")
	assert.Equal(t, domain.StatusUnknown, c3.Status)
}

func TestSecondaryCategoryWithoutExpiryStaysUnknown(t *testing.T) {
	tender := baseTender()
	tender.Categories = append(tender.Categories, domain.QualificationCategory{
		Category: "OS21", Class: "I", Evidence: "categoria scorporabile OS21 classifica I",
	})
	company := baseCompany()
	company.Attestations = append(company.Attestations, domain.Attestation{Category: "OS21", Class: "I"})

	results := evalQualification(testInput(tender, company))
	c2 := findResult(t, results, "C2_OS21")
	assert.Equal(t, domain.StatusUnknown, c2.Status)
	assert.Equal(t, domain.ConfidenceAmbiguous, c2.Confidence)
}

func TestSecondaryCategoryOffersSubcontract(t *testing.T) {
	tender := baseTender()
	tender.Categories = append(tender.Categories, domain.QualificationCategory{
		Category: "OS21", Class: "I", Evidence: "categoria scorporabile OS21 classifica I",
	})
	results := evalQualification(testInput(tender, baseCompany()))
	c2 := findResult(t, results, "C2_OS21")
	assert.Equal(t, domain.StatusFixable, c2.Status)
	assert.Contains(t, c2.Fixability.AllowedMethods, domain.MethodSubcontract)
}

func TestSecondaryCategorySubcontractBanned(t *testing.T) {
	tender := baseTender()
	tender.Categories = append(tender.Categories, domain.QualificationCategory{
		Category: "OS21", Class: "I", Evidence: "categoria scorporabile OS21",
	})
	tender.Participation.SubcontractBannedCats = []string{"OS21"}

	results := evalQualification(testInput(tender, baseCompany()))
	c2 := findResult(t, results, "C2_OS21")
	assert.NotContains(t, c2.Fixability.AllowedMethods, domain.MethodSubcontract)
}

func TestCategoryEquivalenceSatisfiesRequirement(t *testing.T) {
	tender := baseTender()
	tender.Categories[0] = domain.QualificationCategory{
		Category: "OG2", Class: "III", Prevalent: true, Evidence: "categoria prevalente OG2",
	}
	tender.CategoryEquivalences = []domain.CategoryEquivalence{
		{Required: "OG2", Accepted: "OG1", Evidence: "è ammessa la qualificazione in OG1"},
	}
	results := evalQualification(testInput(tender, baseCompany()))
	c1 := findResult(t, results, "C1")
	assert.Equal(t, domain.StatusOK, c1.Status)
	assert.Contains(t, c1.Message, "equivalenza")
}

func TestInferredCategoryFlagsWeakConfidence(t *testing.T) {
	tender := baseTender()
	tender.Categories = append(tender.Categories, domain.QualificationCategory{
		Category: "OS30", Class: "I", Inferred: true,
	})
	results := evalQualification(testInput(tender, baseCompany()))

	c5 := findResult(t, results, "C5_OS30")
	assert.Equal(t, domain.StatusRiskFlag, c5.Status)
	assert.Equal(t, domain.ConfidenceWeak, c5.Confidence)

	c2 := findResult(t, results, "C2_OS30")
	require.Equal(t, domain.StatusFixable, c2.Status)
	assert.Equal(t, domain.ConfidenceAmbiguous, c2.Confidence)
}

func TestClassAmountMismatchFlagged(t *testing.T) {
	tender := baseTender()
	tender.Categories[0].AmountEUR = f64(1500000) // over the cl.III ceiling
	results := evalQualification(testInput(tender, baseCompany()))
	c6 := findResult(t, results, "C6_OG1")
	assert.Equal(t, domain.StatusRiskFlag, c6.Status)
	assert.Equal(t, domain.ConfidenceAmbiguous, c6.Confidence)
}
