package decision

import (
	"sort"

	"github.com/MatteoMarello/bidpilot-mvp/internal/domain"
)

// maxTopReasons caps the headline explanation: three reasons are what an
// operator reads before deciding whether to open the full report.
const maxTopReasons = 3

// reasonRank orders blocking outcomes by how much they matter to the
// verdict. Lower is more important. Risk flags never headline; they belong
// to the risk register.
func reasonRank(r domain.RequirementResult) int {
	switch {
	case r.Severity == domain.SeverityHardKO && r.Status == domain.StatusKO:
		return 0
	case r.Severity == domain.SeverityHardKO && r.Status == domain.StatusFixable:
		return 1
	case r.Severity == domain.SeverityHardKO && r.Status == domain.StatusUnknown:
		return 2
	case r.Severity == domain.SeveritySoftRisk && r.Status == domain.StatusKO:
		return 3
	case r.Severity == domain.SeveritySoftRisk && r.Status == domain.StatusUnknown:
		return 4
	}
	return -1
}

// SelectTopReasons picks at most three reasons, hardest first. The sort is
// stable, so two runs over the same results produce the same selection in
// the same order.
func SelectTopReasons(results []domain.RequirementResult) []domain.TopReason {
	type candidate struct {
		rank   int
		result domain.RequirementResult
	}
	var candidates []candidate
	for _, r := range results {
		if r.Status == domain.StatusPremiant || r.Status == domain.StatusOK {
			continue
		}
		if rank := reasonRank(r); rank >= 0 {
			candidates = append(candidates, candidate{rank: rank, result: r})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].rank < candidates[j].rank
	})

	if len(candidates) > maxTopReasons {
		candidates = candidates[:maxTopReasons]
	}
	reasons := make([]domain.TopReason, 0, len(candidates))
	for _, c := range candidates {
		r := c.result
		reason := domain.TopReason{
			IssueType:  r.ID,
			Severity:   r.Severity,
			Message:    r.Message,
			CanBeFixed: r.Fixability.IsFixable,
			FixOptions: r.Fixability.AllowedMethods,
		}
		if len(r.Evidence) > 0 {
			ev := r.Evidence[0]
			reason.Evidence = &ev
		}
		reasons = append(reasons, reason)
	}
	return reasons
}
