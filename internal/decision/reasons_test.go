package decision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MatteoMarello/bidpilot-mvp/internal/domain"
)

func TestSelectTopReasonsCapAndOrder(t *testing.T) {
	results := []domain.RequirementResult{
		res("soft-unknown", domain.StatusUnknown, domain.SeveritySoftRisk, domain.ConfidenceAmbiguous),
		res("hard-unknown", domain.StatusUnknown, domain.SeverityHardKO, domain.ConfidenceAmbiguous),
		res("ok", domain.StatusOK, domain.SeverityInfo, domain.ConfidenceCertain),
		res("hard-fixable", domain.StatusFixable, domain.SeverityHardKO, domain.ConfidenceCertain),
		res("hard-ko", domain.StatusKO, domain.SeverityHardKO, domain.ConfidenceCertain),
		res("premiant", domain.StatusPremiant, domain.SeverityInfo, domain.ConfidenceCertain),
	}

	reasons := SelectTopReasons(results)
	require.Len(t, reasons, 3)
	assert.Equal(t, "hard-ko", reasons[0].IssueType)
	assert.Equal(t, "hard-fixable", reasons[1].IssueType)
	assert.Equal(t, "hard-unknown", reasons[2].IssueType)
}

func TestSelectTopReasonsExcludesPositive(t *testing.T) {
	results := []domain.RequirementResult{
		res("ok", domain.StatusOK, domain.SeverityInfo, domain.ConfidenceCertain),
		res("premiant", domain.StatusPremiant, domain.SeverityInfo, domain.ConfidenceCertain),
	}
	assert.Empty(t, SelectTopReasons(results))
}

func TestSelectTopReasonsExcludesRiskFlags(t *testing.T) {
	// A risk flag earlier in evaluation order must not displace a genuine
	// soft unknown from the headline; flags belong to the risk register.
	results := []domain.RequirementResult{
		res("flag", domain.StatusRiskFlag, domain.SeveritySoftRisk, domain.ConfidenceCertain),
		res("soft-unknown", domain.StatusUnknown, domain.SeveritySoftRisk, domain.ConfidenceAmbiguous),
	}
	reasons := SelectTopReasons(results)
	require.Len(t, reasons, 1)
	assert.Equal(t, "soft-unknown", reasons[0].IssueType)
}

func TestSelectTopReasonsIsStable(t *testing.T) {
	// Two same-rank reasons keep their input order.
	results := []domain.RequirementResult{
		res("first", domain.StatusFixable, domain.SeverityHardKO, domain.ConfidenceCertain),
		res("second", domain.StatusFixable, domain.SeverityHardKO, domain.ConfidenceCertain),
	}
	reasons := SelectTopReasons(results)
	require.Len(t, reasons, 2)
	assert.Equal(t, "first", reasons[0].IssueType)
	assert.Equal(t, "second", reasons[1].IssueType)
}

func TestSelectTopReasonsCarriesFixOptions(t *testing.T) {
	fix := res("gap", domain.StatusFixable, domain.SeverityHardKO, domain.ConfidenceCertain)
	fix.Evidence = []domain.Evidence{{Quote: "categoria prevalente OG1", Section: "Requisiti"}}

	reasons := SelectTopReasons([]domain.RequirementResult{fix})
	require.Len(t, reasons, 1)
	assert.True(t, reasons[0].CanBeFixed)
	assert.Equal(t, []string{domain.MethodAvvalimento}, reasons[0].FixOptions)
	require.NotNil(t, reasons[0].Evidence)
	assert.Equal(t, "categoria prevalente OG1", reasons[0].Evidence.Quote)
}
