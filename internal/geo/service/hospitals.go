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

const hospitalsEntity = "hospitals"

type HospitalService struct {
	deps Deps
}

// HospitalUpdate is a partial update; nil fields keep their value.
type HospitalUpdate struct {
	Name             *string              `json:"nome"`
	Type             *models.HospitalType `json:"tipo"`
	Category         *string              `json:"categoria"`
	ProvinceID       *int64               `json:"provincia_id"`
	MunicipalityName *string              `json:"municipio"`
	Address          *string              `json:"endereco"`
}

func (s *HospitalService) List(ctx context.Context, opts store.ListOptions) ([]models.Hospital, int, error) {
	return s.deps.Stores.Hospitals.List(ctx, opts)
}

func (s *HospitalService) Get(ctx context.Context, id int64) (models.Hospital, error) {
	h, err := s.deps.Stores.Hospitals.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.Hospital{}, derrors.Newf(derrors.CodeNotFound, "hospital %d not found", id)
		}
		return models.Hospital{}, fmt.Errorf("get hospital: %w", err)
	}
	return h, nil
}

func (s *HospitalService) GetByProvince(ctx context.Context, provinceID int64) ([]models.Hospital, error) {
	if _, err := s.deps.Stores.Provinces.GetByID(ctx, provinceID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, derrors.Newf(derrors.CodeNotFound, "province %d not found", provinceID)
		}
		return nil, fmt.Errorf("get province: %w", err)
	}
	hospitals, err := s.deps.Stores.Hospitals.GetByProvince(ctx, provinceID)
	if err != nil {
		return nil, fmt.Errorf("hospitals by province: %w", err)
	}
	return hospitals, nil
}

func (s *HospitalService) resolveProvince(ctx context.Context, h *models.Hospital) error {
	province, err := s.deps.Stores.Provinces.GetByID(ctx, h.ProvinceID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return derrors.New(derrors.CodeValidation, "invalid hospital").
				WithFields(map[string]string{"provincia_id": fmt.Sprintf("province %d does not exist", h.ProvinceID)})
		}
		return fmt.Errorf("get province: %w", err)
	}
	h.ProvinceName = province.Name
	return nil
}

func (s *HospitalService) Create(ctx context.Context, h models.Hospital) (models.Hospital, error) {
	h.ID = 0
	if err := h.Validate(); err != nil {
		return models.Hospital{}, err
	}
	if err := s.resolveProvince(ctx, &h); err != nil {
		return models.Hospital{}, err
	}

	if err := s.deps.Stores.Hospitals.Create(ctx, &h); err != nil {
		return models.Hospital{}, fmt.Errorf("create hospital: %w", err)
	}

	s.deps.committed(ctx, hospitalsEntity, audit.ActionCreate,
		strconv.FormatInt(h.ID, 10), map[string]any{"nome": h.Name})
	return h, nil
}

func (s *HospitalService) Update(ctx context.Context, id int64, patch HospitalUpdate) (models.Hospital, error) {
	h, err := s.Get(ctx, id)
	if err != nil {
		return models.Hospital{}, err
	}

	if patch.Name != nil {
		h.Name = *patch.Name
	}
	if patch.Type != nil {
		h.Type = *patch.Type
	}
	if patch.Category != nil {
		h.Category = *patch.Category
	}
	if patch.MunicipalityName != nil {
		h.MunicipalityName = *patch.MunicipalityName
	}
	if patch.Address != nil {
		h.Address = *patch.Address
	}
	if patch.ProvinceID != nil {
		h.ProvinceID = *patch.ProvinceID
		if err := s.resolveProvince(ctx, &h); err != nil {
			return models.Hospital{}, err
		}
	}
	if err := h.Validate(); err != nil {
		return models.Hospital{}, err
	}

	if err := s.deps.Stores.Hospitals.Update(ctx, h); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.Hospital{}, derrors.Newf(derrors.CodeNotFound, "hospital %d not found", id)
		}
		return models.Hospital{}, fmt.Errorf("update hospital: %w", err)
	}

	s.deps.committed(ctx, hospitalsEntity, audit.ActionUpdate,
		strconv.FormatInt(id, 10), map[string]any{"nome": h.Name})
	return h, nil
}

func (s *HospitalService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.deps.Stores.Hospitals.Delete(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return derrors.Newf(derrors.CodeNotFound, "hospital %d not found", id)
		}
		return fmt.Errorf("delete hospital: %w", err)
	}

	s.deps.committed(ctx, hospitalsEntity, audit.ActionDelete,
		strconv.FormatInt(id, 10), nil)
	return nil
}
