// Package profile loads the company profile the server evaluates tenders
// against.
package profile

import (
	"encoding/json"
	"os"

	"github.com/MatteoMarello/bidpilot-mvp/internal/domain"
	domerrors "github.com/MatteoMarello/bidpilot-mvp/pkg/domain-errors"
)

// Load reads and validates a company profile from a JSON file.
func Load(path string) (*domain.CompanyProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domerrors.Wrap(domerrors.CodeInternal, "failed to read company profile", err)
	}
	var p domain.CompanyProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, domerrors.Wrap(domerrors.CodeValidation, "company profile is not valid JSON", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}
