package models

import (
	derrors "angodata/pkg/domain-errors"
)

// SchoolType is the closed set of school classifications.
type SchoolType string

const (
	SchoolPublic  SchoolType = "Pública"
	SchoolPrivate SchoolType = "Privada"
)

func (t SchoolType) Valid() bool {
	return t == SchoolPublic || t == SchoolPrivate
}

// School references its municipality by id; MunicipalityName is the
// denormalized display name.
type School struct {
	ID               int64      `json:"id"`
	Name             string     `json:"nome"`
	Type             SchoolType `json:"tipo"`
	ProvinceID       int64      `json:"provincia_id"`
	ProvinceName     string     `json:"provincia_nome"`
	MunicipalityID   int64      `json:"municipio_id"`
	MunicipalityName string     `json:"municipio"`
	Address          string     `json:"endereco"`
}

func (s *School) Validate() error {
	fields := map[string]string{}
	if s.Name == "" {
		fields["nome"] = "must not be empty"
	}
	if len(s.Name) > 200 {
		fields["nome"] = "must be 200 characters or less"
	}
	if !s.Type.Valid() {
		fields["tipo"] = "must be Pública or Privada"
	}
	if s.ProvinceID <= 0 {
		fields["provincia_id"] = "must reference a province"
	}
	if s.MunicipalityID <= 0 {
		fields["municipio_id"] = "must reference a municipality"
	}
	if len(fields) > 0 {
		return derrors.New(derrors.CodeValidation, "invalid school").WithFields(fields)
	}
	return nil
}
