package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MatteoMarello/bidpilot-mvp/internal/domain"
	"github.com/MatteoMarello/bidpilot-mvp/pkg/platform/httputil"
	"github.com/MatteoMarello/bidpilot-mvp/pkg/requestcontext"
)

// Service defines the interface for decision operations.
type Service interface {
	Decide(ctx context.Context, tender *domain.TenderRequirements, company *domain.CompanyProfile) (*domain.DecisionReport, error)
	Get(ctx context.Context, reportID string) (*domain.DecisionReport, error)
}

// Handler wires decision endpoints to the decision service.
type Handler struct {
	service Service
	logger  *slog.Logger
	// profile is the server-configured company profile, used when the
	// request carries none.
	profile *domain.CompanyProfile
}

// New constructs a decision handler with its dependencies.
func New(service Service, logger *slog.Logger, profile *domain.CompanyProfile) *Handler {
	return &Handler{service: service, logger: logger, profile: profile}
}

// Register mounts decision endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/v1/decisions", h.HandleDecide)
	r.Get("/v1/decisions/{reportID}", h.HandleGet)
}

// HandleDecide handles POST /v1/decisions requests.
func (h *Handler) HandleDecide(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[DecideRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	company := req.Company
	if company == nil {
		company = h.profile
	}

	report, err := h.service.Decide(ctx, req.Tender, company)
	if err != nil {
		h.logger.ErrorContext(ctx, "decision failed",
			"request_id", requestID,
			"tender", req.Tender.Title,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "decision served",
		"request_id", requestID,
		"report_id", report.ReportID,
		"verdict", report.Verdict.Status,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, report)
}

// HandleGet handles GET /v1/decisions/{reportID} requests.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reportID := chi.URLParam(r, "reportID")

	report, err := h.service.Get(ctx, reportID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, report)
}
