// Package models holds the reference entities served by the API. Wire
// field names stay in Portuguese to match the published dataset.
package models

import (
	derrors "angodata/pkg/domain-errors"
)

// Province is the root of the reference hierarchy.
//
// Invariants:
//   - Name is non-empty, unique, and at most 100 characters
//   - AreaKm2 is positive
//   - Population is non-negative
type Province struct {
	ID         int64   `json:"id"`
	Name       string  `json:"nome"`
	Capital    string  `json:"capital"`
	AreaKm2    float64 `json:"area_km2"`
	Population int64   `json:"populacao"`
}

// Validate checks the province invariants, returning field-level detail.
func (p *Province) Validate() error {
	fields := map[string]string{}
	if p.Name == "" {
		fields["nome"] = "must not be empty"
	}
	if len(p.Name) > 100 {
		fields["nome"] = "must be 100 characters or less"
	}
	if p.AreaKm2 <= 0 {
		fields["area_km2"] = "must be positive"
	}
	if p.Population < 0 {
		fields["populacao"] = "must not be negative"
	}
	if len(fields) > 0 {
		return derrors.New(derrors.CodeValidation, "invalid province").WithFields(fields)
	}
	return nil
}
