package decision

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/MatteoMarello/bidpilot-mvp/internal/decision/metrics"
	"github.com/MatteoMarello/bidpilot-mvp/internal/domain"
	"github.com/MatteoMarello/bidpilot-mvp/internal/rules"
	domerrors "github.com/MatteoMarello/bidpilot-mvp/pkg/domain-errors"
	"github.com/MatteoMarello/bidpilot-mvp/pkg/requestcontext"
)

// Audit event names, in pipeline order.
const (
	eventEvaluate = "EVALUATE_ALL_REQUIREMENTS"
	eventVerdict  = "COMPUTE_VERDICT"
	eventPlan     = "BUILD_ACTION_PLAN"
	eventAssemble = "ASSEMBLE_REPORT"
)

// Service runs the full decision pipeline: evaluate, aggregate, explain,
// assemble. Stateless between calls; every invocation builds a fresh report.
type Service struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewService constructs the decision service with its dependencies.
func NewService(store Store, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{store: store, logger: logger, metrics: m}
}

// Decide evaluates a tender against a company profile and returns the
// assembled decision report. Inputs are validated before any rule runs; the
// report is persisted before being returned.
func (s *Service) Decide(ctx context.Context, tender *domain.TenderRequirements, company *domain.CompanyProfile) (*domain.DecisionReport, error) {
	start := time.Now()

	if tender == nil {
		return nil, domerrors.New(domerrors.CodeValidation, "tender requirements are required")
	}
	if company == nil {
		return nil, domerrors.New(domerrors.CodeValidation, "company profile is required")
	}
	if err := tender.Validate(); err != nil {
		return nil, err
	}
	if err := company.Validate(); err != nil {
		return nil, err
	}

	mode := tender.Mode()
	now := requestcontext.Now(ctx)
	in := rules.Input{Tender: tender, Company: company, Now: now}

	results, err := rules.EvaluateAll(ctx, in)
	if err != nil {
		return nil, domerrors.Wrap(domerrors.CodeInternal, "requirement evaluation failed", err)
	}

	var stages []string
	if tender.PPP != nil {
		stages = tender.PPP.Stages
	}
	verdict := ComputeVerdict(mode, results, stages)
	plan := BuildActionPlan(results)

	report := &domain.DecisionReport{
		ReportID:            uuid.NewString(),
		Mode:                mode,
		Verdict:             verdict,
		TopReasons:          SelectTopReasons(results),
		Results:             results,
		ActionPlan:          plan,
		ProceduralChecklist: BuildProceduralChecklist(tender, results),
		DocumentChecklist:   BuildDocumentChecklist(tender, plan),
		RiskRegister:        BuildRiskRegister(tender, company, results, now),
		Uncertainties:       BuildUncertainties(tender, results),
		AuditTrail: []domain.AuditEntry{
			{Event: eventEvaluate, Result: strconv.Itoa(len(results)) + " results", Confidence: verdict.ProfileConfidence},
			{Event: eventVerdict, Result: string(verdict.Status), Confidence: verdict.ProfileConfidence},
			{Event: eventPlan, Result: plan.RecommendedPath, Confidence: verdict.ProfileConfidence},
			{Event: eventAssemble, Result: "ok", Confidence: verdict.ProfileConfidence},
		},
		GeneratedAt: now,
	}

	if err := s.store.Save(ctx, report); err != nil {
		return nil, domerrors.Wrap(domerrors.CodeInternal, "failed to persist decision report", err)
	}

	s.metrics.IncrementVerdict(string(verdict.Status), string(mode))
	s.metrics.ObserveDecideLatency(time.Since(start))

	s.logger.InfoContext(ctx, "decision computed",
		"request_id", requestcontext.RequestID(ctx),
		"report_id", report.ReportID,
		"mode", mode,
		"verdict", verdict.Status,
		"profile_confidence", verdict.ProfileConfidence,
		"results", len(results),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return report, nil
}

// Get returns a previously computed report by ID.
func (s *Service) Get(ctx context.Context, reportID string) (*domain.DecisionReport, error) {
	if reportID == "" {
		return nil, domerrors.New(domerrors.CodeValidation, "report id is required")
	}
	return s.store.Get(ctx, reportID)
}
