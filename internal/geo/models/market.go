package models

import (
	derrors "angodata/pkg/domain-errors"
)

// MarketType is the closed set of market classifications.
type MarketType string

const (
	MarketFormal    MarketType = "Formal"
	MarketInformal  MarketType = "Informal"
	MarketMunicipal MarketType = "Municipal"
)

func (t MarketType) Valid() bool {
	return t == MarketFormal || t == MarketInformal || t == MarketMunicipal
}

// Market references its municipality by display name only; the source
// dataset never carried municipality ids for markets.
type Market struct {
	ID               int64      `json:"id"`
	Name             string     `json:"nome"`
	Type             MarketType `json:"tipo"`
	ProvinceID       int64      `json:"provincia_id"`
	ProvinceName     string     `json:"provincia_nome"`
	MunicipalityName string     `json:"municipio"`
	Specialty        string     `json:"especialidade"`
}

func (m *Market) Validate() error {
	fields := map[string]string{}
	if m.Name == "" {
		fields["nome"] = "must not be empty"
	}
	if len(m.Name) > 200 {
		fields["nome"] = "must be 200 characters or less"
	}
	if !m.Type.Valid() {
		fields["tipo"] = "must be Formal, Informal or Municipal"
	}
	if m.ProvinceID <= 0 {
		fields["provincia_id"] = "must reference a province"
	}
	if len(fields) > 0 {
		return derrors.New(derrors.CodeValidation, "invalid market").WithFields(fields)
	}
	return nil
}
