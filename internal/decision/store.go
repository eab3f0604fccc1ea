package decision

import (
	"context"
	"sync"

	"github.com/MatteoMarello/bidpilot-mvp/internal/domain"
	domerrors "github.com/MatteoMarello/bidpilot-mvp/pkg/domain-errors"
)

// Store persists decision reports for later retrieval and auditability.
// Swap with concrete storage without touching the service.
type Store interface {
	Save(ctx context.Context, report *domain.DecisionReport) error
	Get(ctx context.Context, reportID string) (*domain.DecisionReport, error)
}

// MemoryStore is the in-process Store used by the server and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	reports map[string]*domain.DecisionReport
}

// NewMemoryStore constructs an empty in-memory report store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{reports: make(map[string]*domain.DecisionReport)}
}

// Save stores the report keyed by its ID.
func (s *MemoryStore) Save(_ context.Context, report *domain.DecisionReport) error {
	if report == nil || report.ReportID == "" {
		return domerrors.New(domerrors.CodeInvariantViolation, "report must carry an id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[report.ReportID] = report
	return nil
}

// Get returns the report with the given ID.
func (s *MemoryStore) Get(_ context.Context, reportID string) (*domain.DecisionReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	report, ok := s.reports[reportID]
	if !ok {
		return nil, domerrors.Newf(domerrors.CodeNotFound, "report %s not found", reportID)
	}
	return report, nil
}
