package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"github.com/MatteoMarello/bidpilot-mvp/internal/decision"
	"github.com/MatteoMarello/bidpilot-mvp/internal/domain"
	"github.com/MatteoMarello/bidpilot-mvp/internal/platform/middleware"
)

type HandlerSuite struct {
	suite.Suite
	router chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := decision.NewMemoryStore()
	svc := decision.NewService(store, logger, nil)
	h := New(svc, logger, s.defaultProfile())

	s.router = chi.NewRouter()
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RequestTime)
	h.Register(s.router)
}

func (s *HandlerSuite) defaultProfile() *domain.CompanyProfile {
	expiry := time.Now().AddDate(2, 0, 0)
	return &domain.CompanyProfile{
		LegalName: "Impresa Config S.r.l.",
		LegalRepresentative: domain.LegalRepresentative{
			HasDigitalSignature: true, SigningPowersProof: "available",
		},
		Registration: domain.CompanyRegistration{Registered: true, CoherentWithTender: domain.Yes},
		Attestations: []domain.Attestation{
			{Category: "OG1", Class: "III", Expiry: &expiry},
		},
		WillingRTI:         true,
		WillingAvvalimento: true,
	}
}

func (s *HandlerSuite) tenderJSON() map[string]any {
	deadline := time.Now().AddDate(0, 1, 0).Format(time.RFC3339)
	return map[string]any{
		"title":                 "Manutenzione viabilità comunale",
		"works_amount_eur":      750000,
		"works_amount_evidence": "importo lavori € 750.000",
		"deadlines": []map[string]any{
			{"type": "offer_submission", "date": deadline, "evidence": "termine offerte"},
		},
		"soa_categories": []map[string]any{
			{"category": "OG1", "required_class": "III", "prevalent": true, "evidence": "OG1 classifica III"},
		},
		"participation": map[string]any{
			"rti_allowed":         "yes",
			"avvalimento_allowed": "yes",
		},
	}
}

func (s *HandlerSuite) postDecision(body any) *httptest.ResponseRecorder {
	raw, err := json.Marshal(body)
	s.Require().NoError(err)
	req := httptest.NewRequest(http.MethodPost, "/v1/decisions", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerSuite) TestDecideReturnsReport() {
	rec := s.postDecision(map[string]any{"tender": s.tenderJSON()})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var report domain.DecisionReport
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &report))
	s.NotEmpty(report.ReportID)
	s.True(report.Verdict.Status.Valid())
	s.NotEmpty(report.Results)
	s.NotEmpty(report.AuditTrail)
}

func (s *HandlerSuite) TestDecideRejectsMissingTender() {
	rec := s.postDecision(map[string]any{})
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "tender is required")
}

func (s *HandlerSuite) TestDecideRejectsInvariantViolation() {
	tender := s.tenderJSON()
	delete(tender, "works_amount_evidence")
	rec := s.postDecision(map[string]any{"tender": tender})
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestGetReturnsStoredReport() {
	rec := s.postDecision(map[string]any{"tender": s.tenderJSON()})
	s.Require().Equal(http.StatusOK, rec.Code)
	var report domain.DecisionReport
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &report))

	getReq := httptest.NewRequest(http.MethodGet, "/v1/decisions/"+report.ReportID, nil)
	getRec := httptest.NewRecorder()
	s.router.ServeHTTP(getRec, getReq)

	s.Equal(http.StatusOK, getRec.Code)
	var fetched domain.DecisionReport
	s.Require().NoError(json.Unmarshal(getRec.Body.Bytes(), &fetched))
	s.Equal(report.ReportID, fetched.ReportID)
}

func (s *HandlerSuite) TestGetUnknownReportIs404() {
	req := httptest.NewRequest(http.MethodGet, "/v1/decisions/does-not-exist", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *HandlerSuite) TestRequestCompanyOverridesConfigured() {
	// A company without digital signature must flip the signature checks.
	rec := s.postDecision(map[string]any{
		"tender": s.tenderJSON(),
		"company": map[string]any{
			"legal_name": "Altra Impresa S.r.l.",
			"legal_representative": map[string]any{
				"has_digital_signature": false,
			},
			"registration": map[string]any{"registered": true},
		},
	})
	s.Require().Equal(http.StatusOK, rec.Code)

	var report domain.DecisionReport
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &report))
	s.Equal(domain.VerdictNoGo, report.Verdict.Status)
}
