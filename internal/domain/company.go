package domain

import (
	"strings"
	"time"
)

// Attestation is one SOA qualification attestation the company holds.
type Attestation struct {
	Category string     `json:"category"` // e.g. "OG1"
	Class    string     `json:"class"`    // "I" .. "VIII"
	Issued   *time.Time `json:"issued,omitempty"`
	Expiry   *time.Time `json:"expiry,omitempty"`
	Notes    string     `json:"notes,omitempty"`
}

// Certification is a quality/safety/environmental certification the company
// holds.
type Certification struct {
	Type   string     `json:"type"` // e.g. "ISO 9001"
	Valid  bool       `json:"valid"`
	Expiry *time.Time `json:"expiry,omitempty"`
	Issuer string     `json:"issuer,omitempty"`
	Scope  string     `json:"scope,omitempty"`
}

// TurnoverEntry is one year of global turnover.
type TurnoverEntry struct {
	Year      int     `json:"year"`
	AmountEUR float64 `json:"amount_eur"`
}

// SectorTurnoverEntry is one year of works-sector turnover.
type SectorTurnoverEntry struct {
	Year      int     `json:"year"`
	Sector    string  `json:"sector,omitempty"`
	AmountEUR float64 `json:"amount_eur"`
}

// ReferenceWork is one completed work usable as a reference.
type ReferenceWork struct {
	Title      string   `json:"title,omitempty"`
	Year       int      `json:"year"`
	AmountEUR  float64  `json:"amount_eur"`
	Categories []string `json:"categories,omitempty"`
	Client     string   `json:"client,omitempty"`
}

// StaffRole is one key role on the company's staff.
type StaffRole struct {
	Role      string `json:"role"`
	Name      string `json:"name,omitempty"`
	Available bool   `json:"available"`
}

// Designer is one member of the available design team.
type Designer struct {
	Name                string     `json:"name,omitempty"`
	Profession          string     `json:"profession,omitempty"`
	Discipline          string     `json:"discipline,omitempty"`
	RegisteredWithOrder TriState   `json:"registered_with_order"`
	LicenseDate         *time.Time `json:"license_date,omitempty"`
	YoungProfessional   TriState   `json:"young_professional"`
}

// LegalRepresentative identifies who signs the offer.
type LegalRepresentative struct {
	Name                string `json:"name,omitempty"`
	Role                string `json:"role,omitempty"`
	HasDigitalSignature bool   `json:"has_digital_signature"`
	// SigningPowersProof is "available", "missing", or "unknown".
	SigningPowersProof string `json:"signing_powers_proof,omitempty"`
}

// CompanyRegistration is the chamber-of-commerce registration record.
type CompanyRegistration struct {
	Registered         bool     `json:"registered"`
	REANumber          string   `json:"rea_number,omitempty"`
	ATECOCodes         []string `json:"ateco_codes,omitempty"`
	BusinessScope      string   `json:"business_scope,omitempty"`
	CoherentWithTender TriState `json:"coherent_with_tender"`
}

// QualificationScores carries the scores some qualification systems demand.
type QualificationScores struct {
	TechnicalScore *float64 `json:"technical_score,omitempty"`
	SafetyScore    *float64 `json:"safety_score,omitempty"`
}

// CompanyProfile is the bidder's configuration-sourced profile. Built once
// per session, read-only inside the engine.
type CompanyProfile struct {
	LegalName string `json:"legal_name,omitempty"`
	VATNumber string `json:"vat_number,omitempty"`
	PEC       string `json:"pec,omitempty"`

	LegalRepresentative LegalRepresentative `json:"legal_representative"`
	Registration        CompanyRegistration `json:"registration"`

	Attestations   []Attestation   `json:"soa_attestations,omitempty"`
	Certifications []Certification `json:"certifications,omitempty"`

	TurnoverByYear       []TurnoverEntry       `json:"turnover_by_year,omitempty"`
	SectorTurnoverByYear []SectorTurnoverEntry `json:"sector_turnover_by_year,omitempty"`
	BankReferences       TriState              `json:"bank_references"`
	CELRecords           TriState              `json:"cel_records"`
	ReferenceWorks       []ReferenceWork       `json:"reference_works,omitempty"`

	AvgHeadcount int         `json:"avg_headcount,omitempty"`
	KeyRoles     []StaffRole `json:"key_roles,omitempty"`

	HasInHouseDesign  bool       `json:"has_inhouse_design"`
	ExternalDesigners TriState   `json:"external_designers_available"`
	DesignTeam        []Designer `json:"design_team,omitempty"`
	BIMCapability     TriState   `json:"bim_capability"`

	WillingRTI         bool `json:"willing_rti"`
	WillingAvvalimento bool `json:"willing_avvalimento"`
	WillingSubcontract bool `json:"willing_subcontract"`

	OperatingRegions     []string            `json:"operating_regions,omitempty"`
	StartDateConstraints string              `json:"start_date_constraints,omitempty"`
	QualificationScores  QualificationScores `json:"qualification_scores"`
}

// AttestationFor returns the attestation for the given category code
// (matched exactly, case-insensitive), or nil.
func (c *CompanyProfile) AttestationFor(category string) *Attestation {
	for i := range c.Attestations {
		if strings.EqualFold(c.Attestations[i].Category, category) {
			return &c.Attestations[i]
		}
	}
	return nil
}
