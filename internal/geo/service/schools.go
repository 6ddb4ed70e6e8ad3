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

const schoolsEntity = "schools"

type SchoolService struct {
	deps Deps
}

// SchoolUpdate is a partial update; nil fields keep their value. A new
// MunicipalityID re-validates the reference and refreshes both
// denormalized names and the province.
type SchoolUpdate struct {
	Name           *string            `json:"nome"`
	Type           *models.SchoolType `json:"tipo"`
	MunicipalityID *int64             `json:"municipio_id"`
	Address        *string            `json:"endereco"`
}

func (s *SchoolService) List(ctx context.Context, opts store.ListOptions) ([]models.School, int, error) {
	return s.deps.Stores.Schools.List(ctx, opts)
}

func (s *SchoolService) Get(ctx context.Context, id int64) (models.School, error) {
	sc, err := s.deps.Stores.Schools.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.School{}, derrors.Newf(derrors.CodeNotFound, "school %d not found", id)
		}
		return models.School{}, fmt.Errorf("get school: %w", err)
	}
	return sc, nil
}

func (s *SchoolService) GetByProvince(ctx context.Context, provinceID int64) ([]models.School, error) {
	if _, err := s.deps.Stores.Provinces.GetByID(ctx, provinceID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, derrors.Newf(derrors.CodeNotFound, "province %d not found", provinceID)
		}
		return nil, fmt.Errorf("get province: %w", err)
	}
	schools, err := s.deps.Stores.Schools.GetByProvince(ctx, provinceID)
	if err != nil {
		return nil, fmt.Errorf("schools by province: %w", err)
	}
	return schools, nil
}

func (s *SchoolService) GetByMunicipality(ctx context.Context, municipalityID int64) ([]models.School, error) {
	if _, err := s.deps.Stores.Municipalities.GetByID(ctx, municipalityID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, derrors.Newf(derrors.CodeNotFound, "municipality %d not found", municipalityID)
		}
		return nil, fmt.Errorf("get municipality: %w", err)
	}
	schools, err := s.deps.Stores.Schools.GetByMunicipality(ctx, municipalityID)
	if err != nil {
		return nil, fmt.Errorf("schools by municipality: %w", err)
	}
	return schools, nil
}

// resolveMunicipality fetches the municipality and fills the school's
// denormalized reference fields from it. The municipality is the
// authoritative parent; the province follows from it.
func (s *SchoolService) resolveMunicipality(ctx context.Context, sc *models.School) error {
	m, err := s.deps.Stores.Municipalities.GetByID(ctx, sc.MunicipalityID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return derrors.New(derrors.CodeValidation, "invalid school").
				WithFields(map[string]string{"municipio_id": fmt.Sprintf("municipality %d does not exist", sc.MunicipalityID)})
		}
		return fmt.Errorf("get municipality: %w", err)
	}
	if sc.ProvinceID != 0 && sc.ProvinceID != m.ProvinceID {
		return derrors.New(derrors.CodeValidation, "invalid school").
			WithFields(map[string]string{"provincia_id": fmt.Sprintf("municipality %d belongs to province %d", m.ID, m.ProvinceID)})
	}
	sc.MunicipalityName = m.Name
	sc.ProvinceID = m.ProvinceID
	sc.ProvinceName = m.ProvinceName
	return nil
}

func (s *SchoolService) Create(ctx context.Context, sc models.School) (models.School, error) {
	sc.ID = 0
	if err := s.resolveMunicipality(ctx, &sc); err != nil {
		return models.School{}, err
	}
	if err := sc.Validate(); err != nil {
		return models.School{}, err
	}

	if err := s.deps.Stores.Schools.Create(ctx, &sc); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return models.School{}, derrors.Newf(derrors.CodeConflict, "school %q conflicts with existing data", sc.Name)
		}
		return models.School{}, fmt.Errorf("create school: %w", err)
	}

	s.deps.committed(ctx, schoolsEntity, audit.ActionCreate,
		strconv.FormatInt(sc.ID, 10), map[string]any{"nome": sc.Name, "municipio_id": sc.MunicipalityID})
	return sc, nil
}

func (s *SchoolService) Update(ctx context.Context, id int64, patch SchoolUpdate) (models.School, error) {
	sc, err := s.Get(ctx, id)
	if err != nil {
		return models.School{}, err
	}

	if patch.Name != nil {
		sc.Name = *patch.Name
	}
	if patch.Type != nil {
		sc.Type = *patch.Type
	}
	if patch.Address != nil {
		sc.Address = *patch.Address
	}
	if patch.MunicipalityID != nil {
		sc.MunicipalityID = *patch.MunicipalityID
		sc.ProvinceID = 0
		if err := s.resolveMunicipality(ctx, &sc); err != nil {
			return models.School{}, err
		}
	}
	if err := sc.Validate(); err != nil {
		return models.School{}, err
	}

	if err := s.deps.Stores.Schools.Update(ctx, sc); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.School{}, derrors.Newf(derrors.CodeNotFound, "school %d not found", id)
		}
		return models.School{}, fmt.Errorf("update school: %w", err)
	}

	s.deps.committed(ctx, schoolsEntity, audit.ActionUpdate,
		strconv.FormatInt(id, 10), map[string]any{"nome": sc.Name})
	return sc, nil
}

func (s *SchoolService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.deps.Stores.Schools.Delete(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return derrors.Newf(derrors.CodeNotFound, "school %d not found", id)
		}
		return fmt.Errorf("delete school: %w", err)
	}

	s.deps.committed(ctx, schoolsEntity, audit.ActionDelete,
		strconv.FormatInt(id, 10), nil)
	return nil
}
