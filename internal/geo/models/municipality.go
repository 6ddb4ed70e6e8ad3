package models

import (
	derrors "angodata/pkg/domain-errors"
)

// Municipality belongs to exactly one province. ProvinceName is
// denormalized for display and kept in sync by the service layer.
type Municipality struct {
	ID           int64    `json:"id"`
	Name         string   `json:"nome"`
	ProvinceID   int64    `json:"provincia_id"`
	ProvinceName string   `json:"provincia_nome"`
	AreaKm2      *float64 `json:"area_km2,omitempty"`
	Population   *int64   `json:"populacao,omitempty"`
}

func (m *Municipality) Validate() error {
	fields := map[string]string{}
	if m.Name == "" {
		fields["nome"] = "must not be empty"
	}
	if len(m.Name) > 100 {
		fields["nome"] = "must be 100 characters or less"
	}
	if m.ProvinceID <= 0 {
		fields["provincia_id"] = "must reference a province"
	}
	if m.AreaKm2 != nil && *m.AreaKm2 <= 0 {
		fields["area_km2"] = "must be positive"
	}
	if m.Population != nil && *m.Population < 0 {
		fields["populacao"] = "must not be negative"
	}
	if len(fields) > 0 {
		return derrors.New(derrors.CodeValidation, "invalid municipality").WithFields(fields)
	}
	return nil
}
