package models

import (
	derrors "angodata/pkg/domain-errors"
)

// HospitalType is the closed set of hospital classifications.
type HospitalType string

const (
	HospitalPublic  HospitalType = "Público"
	HospitalPrivate HospitalType = "Privado"
)

func (t HospitalType) Valid() bool {
	return t == HospitalPublic || t == HospitalPrivate
}

// Hospital references its municipality by display name only, like Market.
// Category is free text in the source data (Geral, Central, Pediátrico...).
type Hospital struct {
	ID               int64        `json:"id"`
	Name             string       `json:"nome"`
	Type             HospitalType `json:"tipo"`
	Category         string       `json:"categoria"`
	ProvinceID       int64        `json:"provincia_id"`
	ProvinceName     string       `json:"provincia_nome"`
	MunicipalityName string       `json:"municipio"`
	Address          string       `json:"endereco"`
}

func (h *Hospital) Validate() error {
	fields := map[string]string{}
	if h.Name == "" {
		fields["nome"] = "must not be empty"
	}
	if len(h.Name) > 200 {
		fields["nome"] = "must be 200 characters or less"
	}
	if !h.Type.Valid() {
		fields["tipo"] = "must be Público or Privado"
	}
	if h.ProvinceID <= 0 {
		fields["provincia_id"] = "must reference a province"
	}
	if len(fields) > 0 {
		return derrors.New(derrors.CodeValidation, "invalid hospital").WithFields(fields)
	}
	return nil
}
