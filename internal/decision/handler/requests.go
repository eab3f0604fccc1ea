package handler

import (
	"github.com/MatteoMarello/bidpilot-mvp/internal/domain"
	domerrors "github.com/MatteoMarello/bidpilot-mvp/pkg/domain-errors"
)

// DecideRequest is the HTTP request body for POST /v1/decisions. Company is
// optional: when absent the server's configured profile is used.
type DecideRequest struct {
	Tender  *domain.TenderRequirements `json:"tender"`
	Company *domain.CompanyProfile     `json:"company,omitempty"`
}

// Validate implements the Validatable interface for
// httputil.DecodeAndPrepare. Domain-level invariants are re-checked by the
// service; this only rejects structurally unusable requests.
func (r *DecideRequest) Validate() error {
	if r == nil {
		return domerrors.New(domerrors.CodeBadRequest, "request body is required")
	}
	if r.Tender == nil {
		return domerrors.New(domerrors.CodeValidation, "tender is required")
	}
	if r.Tender.Title == "" {
		return domerrors.New(domerrors.CodeValidation, "tender.title is required")
	}
	return nil
}
