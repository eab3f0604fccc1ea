package decision

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/MatteoMarello/bidpilot-mvp/internal/domain"
	domerrors "github.com/MatteoMarello/bidpilot-mvp/pkg/domain-errors"
	"github.com/MatteoMarello/bidpilot-mvp/pkg/requestcontext"
)

// =============================================================================
// Decision Service Test Suite
// =============================================================================
// The service test exercises the whole pipeline end to end: validation,
// evaluation, aggregation, report assembly, and persistence. Scenario tests
// at this level catch wiring mistakes the per-builder unit tests cannot.

type ServiceSuite struct {
	suite.Suite
	store   *MemoryStore
	service *Service
	now     time.Time
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.store = NewMemoryStore()
	s.service = NewService(s.store, slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
	s.now = time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
}

func (s *ServiceSuite) date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
	return &t
}

func (s *ServiceSuite) amount(v float64) *float64 { return &v }

func (s *ServiceSuite) tender() *domain.TenderRequirements {
	return &domain.TenderRequirements{
		Title:               "Riqualificazione energetica municipio",
		WorksAmountEUR:      s.amount(900000),
		WorksAmountEvidence: "importo dei lavori € 900.000",
		Deadlines: []domain.Deadline{
			{Type: domain.DeadlineOffer, Date: s.date(2026, 10, 1), Evidence: "scadenza offerte 01/10/2026"},
		},
		Categories: []domain.QualificationCategory{
			{Category: "OG1", Class: "III", Prevalent: true, Evidence: "categoria prevalente OG1 cl. III"},
		},
		Participation: domain.ParticipationRules{
			RTIAllowed:         domain.Yes,
			AvvalimentoAllowed: domain.Yes,
			SubcontractMaxPct:  s.amount(30),
		},
	}
}

func (s *ServiceSuite) company() *domain.CompanyProfile {
	return &domain.CompanyProfile{
		LegalName: "Impresa Demo S.r.l.",
		LegalRepresentative: domain.LegalRepresentative{
			Name: "Anna Bianchi", Role: "Amministratore",
			HasDigitalSignature: true, SigningPowersProof: "available",
		},
		Registration: domain.CompanyRegistration{
			Registered: true, REANumber: "MI-998877", CoherentWithTender: domain.Yes,
		},
		Attestations: []domain.Attestation{
			{Category: "OG1", Class: "III", Expiry: s.date(2028, 5, 1)},
		},
		WillingRTI:         true,
		WillingAvvalimento: true,
		WillingSubcontract: true,
	}
}

// =============================================================================
// Validation
// =============================================================================

func (s *ServiceSuite) TestDecideRejectsInvalidInput() {
	s.Run("nil tender", func() {
		_, err := s.service.Decide(s.ctx, nil, s.company())
		s.Equal(domerrors.CodeValidation, domerrors.CodeOf(err))
	})

	s.Run("nil company", func() {
		_, err := s.service.Decide(s.ctx, s.tender(), nil)
		s.Equal(domerrors.CodeValidation, domerrors.CodeOf(err))
	})

	s.Run("evidence invariant violation", func() {
		tender := s.tender()
		tender.WorksAmountEvidence = ""
		_, err := s.service.Decide(s.ctx, tender, s.company())
		s.Equal(domerrors.CodeInvariantViolation, domerrors.CodeOf(err))
	})
}

// =============================================================================
// Scenarios
// =============================================================================

func (s *ServiceSuite) TestQualifiedCompanyGetsGo() {
	report, err := s.service.Decide(s.ctx, s.tender(), s.company())
	s.Require().NoError(err)

	s.Equal(domain.VerdictGoHighRisk, report.Verdict.Status,
		"general-eligibility unknowns keep even a qualified company at high risk")
	s.Equal(domain.ModeOrdinary, report.Mode)
	s.NotEmpty(report.ReportID)
	s.Equal(s.now, report.GeneratedAt)
	s.NotEmpty(report.Uncertainties)
	s.Len(report.AuditTrail, 4)
	s.Equal("EVALUATE_ALL_REQUIREMENTS", report.AuditTrail[0].Event)
	s.Equal("ASSEMBLE_REPORT", report.AuditTrail[3].Event)
}

func (s *ServiceSuite) TestPassedDeadlineYieldsNoGo() {
	tender := s.tender()
	tender.Deadlines[0].Date = s.date(2026, 8, 1)

	report, err := s.service.Decide(s.ctx, tender, s.company())
	s.Require().NoError(err)

	s.Equal(domain.VerdictNoGo, report.Verdict.Status)
	s.Equal(domain.NotEligible, report.Verdict.LegalEligibility)
	s.Require().NotEmpty(report.TopReasons)
	s.Equal("H2", report.TopReasons[0].IssueType)
}

func (s *ServiceSuite) TestClassGapRecommendsStructure() {
	company := s.company()
	company.Attestations[0].Class = "II"

	report, err := s.service.Decide(s.ctx, s.tender(), company)
	s.Require().NoError(err)

	s.NotEqual(domain.VerdictNoGo, report.Verdict.Status)
	s.NotEqual("none", report.ActionPlan.RecommendedPath)
	s.NotEmpty(report.ActionPlan.Steps)

	var foundC1 bool
	for _, r := range report.Results {
		if r.ID == "C1" {
			foundC1 = true
			s.Equal(domain.StatusFixable, r.Status)
		}
	}
	s.True(foundC1)
}

func (s *ServiceSuite) TestQualificationSystemMode() {
	tender := s.tender()
	tender.Deadlines = nil
	tender.Categories = nil
	tender.Classification.QualificationSystem = true
	tender.QualificationSystem = &domain.QualificationSystemRecord{
		SystemCategory: "OG1",
		SystemClass:    "III",
		Evidence:       "sistema di qualificazione per lavori OG1",
	}

	report, err := s.service.Decide(s.ctx, tender, s.company())
	s.Require().NoError(err)

	s.Equal(domain.ModeQualificationSystem, report.Mode)
	s.Equal(domain.VerdictEligibleQualification, report.Verdict.Status)
}

func (s *ServiceSuite) TestPPPModeReportsStages() {
	tender := s.tender()
	tender.Classification.MultiStagePPP = true
	tender.PPP = &domain.PPPRecord{
		Stages:                []string{"manifestazione di interesse", "offerta"},
		RequiresFinancialPlan: domain.Yes,
		Evidence:              "finanza di progetto in due fasi",
	}

	report, err := s.service.Decide(s.ctx, tender, s.company())
	s.Require().NoError(err)

	s.Equal(domain.VerdictEligibleStage1, report.Verdict.Status)
	s.Len(report.Verdict.Stages, 2)
}

// =============================================================================
// Persistence and report shape
// =============================================================================

func (s *ServiceSuite) TestReportIsPersistedAndRetrievable() {
	report, err := s.service.Decide(s.ctx, s.tender(), s.company())
	s.Require().NoError(err)

	got, err := s.service.Get(s.ctx, report.ReportID)
	s.Require().NoError(err)
	s.Equal(report.ReportID, got.ReportID)

	_, err = s.service.Get(s.ctx, "missing-id")
	s.Equal(domerrors.CodeNotFound, domerrors.CodeOf(err))

	_, err = s.service.Get(s.ctx, "")
	s.Equal(domerrors.CodeValidation, domerrors.CodeOf(err))
}

func (s *ServiceSuite) TestChecklistBucketsAlwaysPresent() {
	report, err := s.service.Decide(s.ctx, s.tender(), s.company())
	s.Require().NoError(err)

	cl := report.DocumentChecklist
	s.NotNil(cl.Administrative)
	s.NotNil(cl.Technical)
	s.NotNil(cl.Economic)
	s.NotNil(cl.Guarantees)
	s.NotNil(cl.Platform)
	s.NotEmpty(cl.Economic, "economic bucket always carries offer and labor-cost items")
}

func (s *ServiceSuite) TestImminentDeadlineRaisesRisk() {
	tender := s.tender()
	tender.Deadlines[0].Date = s.date(2026, 9, 4)
	tender.Deadlines[0].Mandatory = true
	tender.Deadlines[0].ExclusionIfMissed = true

	report, err := s.service.Decide(s.ctx, tender, s.company())
	s.Require().NoError(err)

	var found bool
	for _, r := range report.RiskRegister {
		if r.Type == "scadenza_imminente" {
			found = true
			s.Equal(domain.RiskHigh, r.Level)
		}
	}
	s.True(found, "deadline three days out must appear in the risk register")
}

func (s *ServiceSuite) TestUncertaintiesAreCappedAndBlockingFirst() {
	tender := s.tender()
	// Force a pile of unknowns.
	tender.SiteVisitMandatory = domain.Yes
	tender.SiteVisitEvidence = "sopralluogo obbligatorio"
	tender.ANACFeeRequired = domain.Yes
	tender.MinTurnoverEUR = s.amount(5000000)
	tender.MinTurnoverEvidence = "fatturato minimo"
	tender.Environmental.PNRRFunded = domain.Yes
	company := s.company()
	company.TurnoverByYear = nil

	report, err := s.service.Decide(s.ctx, tender, company)
	s.Require().NoError(err)

	s.LessOrEqual(len(report.Uncertainties), 8)
	sawMinor := false
	for _, u := range report.Uncertainties {
		if !u.BlocksVerdict {
			sawMinor = true
		} else {
			s.False(sawMinor, "blocking questions must come before minor ones")
		}
	}
}
