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

const municipalitiesEntity = "municipalities"

type MunicipalityService struct {
	deps Deps
}

// MunicipalityUpdate is a partial update; nil fields keep their value.
// Changing ProvinceID re-validates the reference and refreshes the
// denormalized province name.
type MunicipalityUpdate struct {
	Name       *string  `json:"nome"`
	ProvinceID *int64   `json:"provincia_id"`
	AreaKm2    *float64 `json:"area_km2"`
	Population *int64   `json:"populacao"`
}

func (s *MunicipalityService) List(ctx context.Context, opts store.ListOptions) ([]models.Municipality, int, error) {
	return s.deps.Stores.Municipalities.List(ctx, opts)
}

func (s *MunicipalityService) Get(ctx context.Context, id int64) (models.Municipality, error) {
	m, err := s.deps.Stores.Municipalities.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.Municipality{}, derrors.Newf(derrors.CodeNotFound, "municipality %d not found", id)
		}
		return models.Municipality{}, fmt.Errorf("get municipality: %w", err)
	}
	return m, nil
}

// GetByProvince lists a province's municipalities. The province must
// exist; an unknown id is a 404, not an empty list.
func (s *MunicipalityService) GetByProvince(ctx context.Context, provinceID int64) ([]models.Municipality, models.Province, error) {
	province, err := s.deps.Stores.Provinces.GetByID(ctx, provinceID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, models.Province{}, derrors.Newf(derrors.CodeNotFound, "province %d not found", provinceID)
		}
		return nil, models.Province{}, fmt.Errorf("get province: %w", err)
	}
	ms, err := s.deps.Stores.Municipalities.GetByProvince(ctx, provinceID)
	if err != nil {
		return nil, models.Province{}, fmt.Errorf("municipalities by province: %w", err)
	}
	return ms, province, nil
}

func (s *MunicipalityService) Create(ctx context.Context, m models.Municipality) (models.Municipality, error) {
	m.ID = 0
	if err := m.Validate(); err != nil {
		return models.Municipality{}, err
	}

	province, err := s.deps.Stores.Provinces.GetByID(ctx, m.ProvinceID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.Municipality{}, derrors.New(derrors.CodeValidation, "invalid municipality").
				WithFields(map[string]string{"provincia_id": fmt.Sprintf("province %d does not exist", m.ProvinceID)})
		}
		return models.Municipality{}, fmt.Errorf("get province: %w", err)
	}
	m.ProvinceName = province.Name

	if err := s.deps.Stores.Municipalities.Create(ctx, &m); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return models.Municipality{}, derrors.Newf(derrors.CodeConflict,
				"municipality %q already exists in %s", m.Name, province.Name)
		}
		return models.Municipality{}, fmt.Errorf("create municipality: %w", err)
	}

	s.deps.committed(ctx, municipalitiesEntity, audit.ActionCreate,
		strconv.FormatInt(m.ID, 10), map[string]any{"nome": m.Name, "provincia_id": m.ProvinceID})
	return m, nil
}

func (s *MunicipalityService) Update(ctx context.Context, id int64, patch MunicipalityUpdate) (models.Municipality, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return models.Municipality{}, err
	}

	if patch.Name != nil {
		m.Name = *patch.Name
	}
	if patch.ProvinceID != nil {
		province, err := s.deps.Stores.Provinces.GetByID(ctx, *patch.ProvinceID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return models.Municipality{}, derrors.New(derrors.CodeValidation, "invalid municipality").
					WithFields(map[string]string{"provincia_id": fmt.Sprintf("province %d does not exist", *patch.ProvinceID)})
			}
			return models.Municipality{}, fmt.Errorf("get province: %w", err)
		}
		m.ProvinceID = province.ID
		m.ProvinceName = province.Name
	}
	if patch.AreaKm2 != nil {
		m.AreaKm2 = patch.AreaKm2
	}
	if patch.Population != nil {
		m.Population = patch.Population
	}
	if err := m.Validate(); err != nil {
		return models.Municipality{}, err
	}

	if err := s.deps.Stores.Municipalities.Update(ctx, m); err != nil {
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			return models.Municipality{}, derrors.Newf(derrors.CodeNotFound, "municipality %d not found", id)
		case errors.Is(err, sentinel.ErrConflict):
			return models.Municipality{}, derrors.Newf(derrors.CodeConflict,
				"municipality %q already exists in %s", m.Name, m.ProvinceName)
		}
		return models.Municipality{}, fmt.Errorf("update municipality: %w", err)
	}

	s.deps.committed(ctx, municipalitiesEntity, audit.ActionUpdate,
		strconv.FormatInt(id, 10), map[string]any{"nome": m.Name})
	return m, nil
}

func (s *MunicipalityService) Delete(ctx context.Context, id int64) error {
	m, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	schools, err := s.deps.Stores.Schools.CountByMunicipality(ctx, id)
	if err != nil {
		return fmt.Errorf("count schools: %w", err)
	}
	markets, err := s.deps.Stores.Markets.CountByMunicipalityName(ctx, m.Name)
	if err != nil {
		return fmt.Errorf("count markets: %w", err)
	}
	hospitals, err := s.deps.Stores.Hospitals.CountByMunicipalityName(ctx, m.Name)
	if err != nil {
		return fmt.Errorf("count hospitals: %w", err)
	}
	if total := schools + markets + hospitals; total > 0 {
		return derrors.Newf(derrors.CodeConflict,
			"municipality %d has %d dependent records (%d schools, %d markets, %d hospitals) and cannot be deleted",
			id, total, schools, markets, hospitals)
	}

	if err := s.deps.Stores.Municipalities.Delete(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return derrors.Newf(derrors.CodeNotFound, "municipality %d not found", id)
		}
		return fmt.Errorf("delete municipality: %w", err)
	}

	s.deps.committed(ctx, municipalitiesEntity, audit.ActionDelete,
		strconv.FormatInt(id, 10), nil)
	return nil
}
