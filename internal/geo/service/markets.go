package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"angodata/internal/audit"
	"angodata/internal/geo/models"
	"angodata/internal/geo/store"
	derrors "angodata/pkg/domain-errors"
	"angodata/pkg/platform/sentinel"
)

const marketsEntity = "markets"

type MarketService struct {
	deps Deps
}

// MarketUpdate is a partial update; nil fields keep their value.
type MarketUpdate struct {
	Name             *string            `json:"nome"`
	Type             *models.MarketType `json:"tipo"`
	ProvinceID       *int64             `json:"provincia_id"`
	MunicipalityName *string            `json:"municipio"`
	Specialty        *string            `json:"especialidade"`
}

func (s *MarketService) List(ctx context.Context, opts store.ListOptions) ([]models.Market, int, error) {
	return s.deps.Stores.Markets.List(ctx, opts)
}

func (s *MarketService) Get(ctx context.Context, id int64) (models.Market, error) {
	m, err := s.deps.Stores.Markets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.Market{}, derrors.Newf(derrors.CodeNotFound, "market %d not found", id)
		}
		return models.Market{}, fmt.Errorf("get market: %w", err)
	}
	return m, nil
}

func (s *MarketService) GetByProvince(ctx context.Context, provinceID int64) ([]models.Market, error) {
	if _, err := s.deps.Stores.Provinces.GetByID(ctx, provinceID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, derrors.Newf(derrors.CodeNotFound, "province %d not found", provinceID)
		}
		return nil, fmt.Errorf("get province: %w", err)
	}
	markets, err := s.deps.Stores.Markets.GetByProvince(ctx, provinceID)
	if err != nil {
		return nil, fmt.Errorf("markets by province: %w", err)
	}
	return markets, nil
}

func (s *MarketService) resolveProvince(ctx context.Context, m *models.Market) error {
	province, err := s.deps.Stores.Provinces.GetByID(ctx, m.ProvinceID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return derrors.New(derrors.CodeValidation, "invalid market").
				WithFields(map[string]string{"provincia_id": fmt.Sprintf("province %d does not exist", m.ProvinceID)})
		}
		return fmt.Errorf("get province: %w", err)
	}
	m.ProvinceName = province.Name
	return nil
}

func (s *MarketService) Create(ctx context.Context, m models.Market) (models.Market, error) {
	m.ID = 0
	if err := m.Validate(); err != nil {
		return models.Market{}, err
	}
	if err := s.resolveProvince(ctx, &m); err != nil {
		return models.Market{}, err
	}

	if err := s.deps.Stores.Markets.Create(ctx, &m); err != nil {
		return models.Market{}, fmt.Errorf("create market: %w", err)
	}

	s.deps.committed(ctx, marketsEntity, audit.ActionCreate,
		strconv.FormatInt(m.ID, 10), map[string]any{"nome": m.Name})
	return m, nil
}

func (s *MarketService) Update(ctx context.Context, id int64, patch MarketUpdate) (models.Market, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return models.Market{}, err
	}

	if patch.Name != nil {
		m.Name = *patch.Name
	}
	if patch.Type != nil {
		m.Type = *patch.Type
	}
	if patch.MunicipalityName != nil {
		m.MunicipalityName = *patch.MunicipalityName
	}
	if patch.Specialty != nil {
		m.Specialty = *patch.Specialty
	}
	if patch.ProvinceID != nil {
		m.ProvinceID = *patch.ProvinceID
		if err := s.resolveProvince(ctx, &m); err != nil {
			return models.Market{}, err
		}
	}
	if err := m.Validate(); err != nil {
		return models.Market{}, err
	}

	if err := s.deps.Stores.Markets.Update(ctx, m); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.Market{}, derrors.Newf(derrors.CodeNotFound, "market %d not found", id)
		}
		return models.Market{}, fmt.Errorf("update market: %w", err)
	}

	s.deps.committed(ctx, marketsEntity, audit.ActionUpdate,
		strconv.FormatInt(id, 10), map[string]any{"nome": m.Name})
	return m, nil
}

func (s *MarketService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.deps.Stores.Markets.Delete(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return derrors.Newf(derrors.CodeNotFound, "market %d not found", id)
		}
		return fmt.Errorf("delete market: %w", err)
	}

	s.deps.committed(ctx, marketsEntity, audit.ActionDelete,
		strconv.FormatInt(id, 10), nil)
	return nil
}
