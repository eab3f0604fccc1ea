package domain

import "time"

// Evidence is a verbatim quote from the tender documents supporting an
// extracted value. Fields whose value could only be known from the source
// text must carry one; absence of evidence forces the value itself to be
// absent (enforced upstream and re-checked by Validate).
type Evidence struct {
	Quote   string `json:"quote"`
	Page    int    `json:"page,omitempty"`
	Section string `json:"section,omitempty"`
}

// Deadline types recognized by the procedural evaluators.
const (
	DeadlineOffer          = "offer_submission"
	DeadlineSiteVisit      = "site_visit"
	DeadlineClarifications = "clarifications"
	DeadlineRegistration   = "registration"
)

// Deadline is one dated procedural obligation. Date is nil when extraction
// could not parse an explicit date.
type Deadline struct {
	Type              string     `json:"type"`
	Date              *time.Time `json:"date,omitempty"`
	Mandatory         bool       `json:"mandatory"`
	ExclusionIfMissed bool       `json:"exclusion_if_missed"`
	Evidence          string     `json:"evidence,omitempty"`
}

// QualificationCategory is one SOA category the tender requires.
type QualificationCategory struct {
	Category  string   `json:"category"`       // e.g. "OG1"
	Class     string   `json:"required_class"` // "I" .. "VIII"
	Prevalent bool     `json:"prevalent"`
	AmountEUR *float64 `json:"amount_eur,omitempty"`
	// Inferred marks categories extraction identified by inference rather
	// than literal text; they never drive a hard verdict.
	Inferred bool   `json:"inferred"`
	Evidence string `json:"evidence,omitempty"`
}

// CategoryEquivalence is an explicit declaration in the tender that owning
// Accepted satisfies the requirement for Required.
type CategoryEquivalence struct {
	Required string `json:"required"`
	Accepted string `json:"accepted"`
	Evidence string `json:"evidence,omitempty"`
}

// CertificationRequirement names one certification the tender demands.
type CertificationRequirement struct {
	Name     string `json:"name"`
	Evidence string `json:"evidence,omitempty"`
}

// ParticipationRules collects the tender's rules on bidding structure.
type ParticipationRules struct {
	AllowedForms               []string `json:"allowed_forms,omitempty"`
	RTIAllowed                 TriState `json:"rti_allowed"`
	RTIRules                   string   `json:"rti_rules,omitempty"`
	RTIMinLeadQuotaPct         *float64 `json:"rti_min_lead_quota_pct,omitempty"`
	AvvalimentoAllowed         TriState `json:"avvalimento_allowed"`
	AvvalimentoRules           string   `json:"avvalimento_rules,omitempty"`
	AvvalimentoBannedRequisits []string `json:"avvalimento_banned_requirements,omitempty"`
	SubcontractMaxPct          *float64 `json:"subcontract_max_pct,omitempty"`
	SubcontractRules           string   `json:"subcontract_rules,omitempty"`
	SubcontractBannedCats      []string `json:"subcontract_banned_categories,omitempty"`
	Evidence                   string   `json:"evidence,omitempty"`
}

// DesignObligations covers design-build (appalto integrato) and BIM duties.
type DesignObligations struct {
	DesignBuild               TriState `json:"design_build"`
	RequiresDesignTeam        TriState `json:"requires_design_team"`
	RequiresYoungProfessional TriState `json:"requires_young_professional"`
	RequiredDisciplines       []string `json:"required_disciplines,omitempty"`
	BIMRequired               TriState `json:"bim_required"`
	DesignAmountEUR           *float64 `json:"design_amount_eur,omitempty"`
	Evidence                  string   `json:"evidence,omitempty"`
}

// GuaranteeRequirements describes provisional/definitive guarantee demands.
type GuaranteeRequirements struct {
	ProvisionalAmountEUR *float64 `json:"provisional_amount_eur,omitempty"`
	ProvisionalPct       *float64 `json:"provisional_pct,omitempty"`
	DefinitivePct        *float64 `json:"definitive_pct,omitempty"`
	Evidence             string   `json:"evidence,omitempty"`
}

// LaborCostRules captures the labor-cost disclosure fields.
type LaborCostRules struct {
	Indicated       bool     `json:"indicated"`
	AmountEUR       *float64 `json:"amount_eur,omitempty"`
	SubjectToRebate bool     `json:"subject_to_rebate"`
	Evidence        string   `json:"evidence,omitempty"`
}

// EnvironmentalRules captures PNRR funding and related obligations.
type EnvironmentalRules struct {
	PNRRFunded        TriState `json:"pnrr_funded"`
	DNSHRequired      TriState `json:"dnsh_required"`
	CAMRequired       TriState `json:"cam_required"`
	GenderYouthQuotas TriState `json:"gender_youth_quotas"`
	Evidence          string   `json:"evidence,omitempty"`
}

// ExecutionConstraint is one operational restriction on works execution.
type ExecutionConstraint struct {
	Type        string     `json:"type"`
	Description string     `json:"description"`
	Hard        bool       `json:"hard"`
	Date        *time.Time `json:"date,omitempty"`
	Evidence    string     `json:"evidence,omitempty"`
}

// Location identifies where the works are executed.
type Location struct {
	Municipality string `json:"municipality,omitempty"`
	Province     string `json:"province,omitempty"`
	Region       string `json:"region,omitempty"`
}

// QualificationSystemRecord holds the fields specific to the
// qualification-system operating mode (registration to a contracting
// authority's own qualification register rather than a single tender).
type QualificationSystemRecord struct {
	SystemCategory       string     `json:"system_category"`
	SystemClass          string     `json:"system_class,omitempty"`
	RegistrationDeadline *time.Time `json:"registration_deadline,omitempty"`
	MinTechnicalScore    *float64   `json:"min_technical_score,omitempty"`
	RequiresSafetyCert   TriState   `json:"requires_safety_cert"`
	DurationMonths       *int       `json:"duration_months,omitempty"`
	Evidence             string     `json:"evidence,omitempty"`
}

// PPPRecord holds the fields specific to multi-stage public-private
// partnership procedures.
type PPPRecord struct {
	Stages                []string `json:"stages,omitempty"`
	RequiresFinancialPlan TriState `json:"requires_financial_plan"`
	AvailabilityGuarantee TriState `json:"availability_guarantee"`
	Evidence              string   `json:"evidence,omitempty"`
}

// Classification is the document-level classification driving family
// selection in the orchestrator.
type Classification struct {
	DocumentType        string `json:"document_type,omitempty"`     // bando, disciplinare, avviso
	ProcedureFamily     string `json:"procedure_family,omitempty"`  // aperta, negoziata, ristretta
	QualificationSystem bool   `json:"qualification_system"`
	MultiStagePPP       bool   `json:"multi_stage_ppp"`
}

// TenderRequirements is the validated, evidence-backed description of one
// tender, produced by the extraction collaborator. Read-only inside the
// engine.
type TenderRequirements struct {
	Title                string         `json:"title"`
	ContractingAuthority string         `json:"contracting_authority,omitempty"`
	CIG                  string         `json:"cig,omitempty"`
	CUP                  string         `json:"cup,omitempty"`
	Classification       Classification `json:"classification"`
	AwardCriterion       string         `json:"award_criterion,omitempty"`
	Platform             string         `json:"platform,omitempty"`

	WorksAmountEUR      *float64 `json:"works_amount_eur,omitempty"`
	WorksAmountEvidence string   `json:"works_amount_evidence,omitempty"`
	BaseAmountEUR       *float64 `json:"base_amount_eur,omitempty"`
	SafetyCostsEUR      *float64 `json:"safety_costs_eur,omitempty"`

	Deadlines             []Deadline                 `json:"deadlines,omitempty"`
	Categories            []QualificationCategory    `json:"soa_categories,omitempty"`
	CategoryEquivalences  []CategoryEquivalence      `json:"category_equivalences,omitempty"`
	Certifications        []CertificationRequirement `json:"certifications_required,omitempty"`

	MinTurnoverEUR            *float64 `json:"min_turnover_eur,omitempty"`
	MinTurnoverEvidence       string   `json:"min_turnover_evidence,omitempty"`
	MinSectorTurnoverEUR      *float64 `json:"min_sector_turnover_eur,omitempty"`
	MinSectorTurnoverEvidence string   `json:"min_sector_turnover_evidence,omitempty"`
	ReferenceWorksMinEUR      *float64 `json:"reference_works_min_eur,omitempty"`
	ReferenceWorksEvidence    string   `json:"reference_works_evidence,omitempty"`

	Participation ParticipationRules    `json:"participation"`
	Design        DesignObligations     `json:"design"`
	Guarantees    *GuaranteeRequirements `json:"guarantees,omitempty"`
	LaborCosts    LaborCostRules        `json:"labor_costs"`
	Environmental EnvironmentalRules    `json:"environmental"`

	SiteVisitMandatory    TriState `json:"site_visit_mandatory"`
	SiteVisitEvidence     string   `json:"site_visit_evidence,omitempty"`
	ANACFeeRequired       TriState `json:"anac_fee_required"`
	DGUERequired          TriState `json:"dgue_required"`
	IntegrityPactRequired TriState `json:"integrity_pact_required"`

	MandatoryStartDate    *time.Time            `json:"mandatory_start_date,omitempty"`
	MandatoryStartEvidence string               `json:"mandatory_start_evidence,omitempty"`
	ExecutionConstraints  []ExecutionConstraint `json:"execution_constraints,omitempty"`
	ExecutionLocation     Location              `json:"execution_location"`

	QualificationSystem *QualificationSystemRecord `json:"qualification_system_record,omitempty"`
	PPP                 *PPPRecord                 `json:"ppp_record,omitempty"`
}

// OfferDeadline returns the offer-submission deadline, or nil when the tender
// record carries none.
func (t *TenderRequirements) OfferDeadline() *Deadline {
	for i := range t.Deadlines {
		if t.Deadlines[i].Type == DeadlineOffer {
			return &t.Deadlines[i]
		}
	}
	return nil
}

// DeadlineOf returns the first deadline of the given type, or nil.
func (t *TenderRequirements) DeadlineOf(dtype string) *Deadline {
	for i := range t.Deadlines {
		if t.Deadlines[i].Type == dtype {
			return &t.Deadlines[i]
		}
	}
	return nil
}

// PrevalentCategory returns the prevalent SOA category. When none is flagged
// prevalent, the first required category stands in, matching how tenders list
// the prevalent category first.
func (t *TenderRequirements) PrevalentCategory() *QualificationCategory {
	for i := range t.Categories {
		if t.Categories[i].Prevalent {
			return &t.Categories[i]
		}
	}
	if len(t.Categories) > 0 {
		return &t.Categories[0]
	}
	return nil
}

// SecondaryCategories returns all non-prevalent required categories.
func (t *TenderRequirements) SecondaryCategories() []QualificationCategory {
	prev := t.PrevalentCategory()
	out := make([]QualificationCategory, 0, len(t.Categories))
	for i := range t.Categories {
		if prev != nil && &t.Categories[i] == prev {
			continue
		}
		if !t.Categories[i].Prevalent {
			out = append(out, t.Categories[i])
		}
	}
	return out
}

// Mode derives the engine operating mode from the document classification.
func (t *TenderRequirements) Mode() EngineMode {
	switch {
	case t.Classification.QualificationSystem:
		return ModeQualificationSystem
	case t.Classification.MultiStagePPP:
		return ModePPP
	default:
		return ModeOrdinary
	}
}
