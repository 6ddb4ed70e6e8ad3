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

const provincesEntity = "provinces"

type ProvinceService struct {
	deps Deps
}

// ProvinceUpdate is a partial update; nil fields keep their value.
type ProvinceUpdate struct {
	Name       *string  `json:"nome"`
	Capital    *string  `json:"capital"`
	AreaKm2    *float64 `json:"area_km2"`
	Population *int64   `json:"populacao"`
}

func (s *ProvinceService) List(ctx context.Context, opts store.ListOptions) ([]models.Province, int, error) {
	return s.deps.Stores.Provinces.List(ctx, opts)
}

func (s *ProvinceService) Get(ctx context.Context, id int64) (models.Province, error) {
	p, err := s.deps.Stores.Provinces.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.Province{}, derrors.Newf(derrors.CodeNotFound, "province %d not found", id)
		}
		return models.Province{}, fmt.Errorf("get province: %w", err)
	}
	return p, nil
}

func (s *ProvinceService) Create(ctx context.Context, p models.Province) (models.Province, error) {
	p.ID = 0
	if err := p.Validate(); err != nil {
		return models.Province{}, err
	}
	if err := s.deps.Stores.Provinces.Create(ctx, &p); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return models.Province{}, derrors.Newf(derrors.CodeConflict, "province %q already exists", p.Name)
		}
		return models.Province{}, fmt.Errorf("create province: %w", err)
	}

	s.deps.committed(ctx, provincesEntity, audit.ActionCreate,
		strconv.FormatInt(p.ID, 10), map[string]any{"nome": p.Name})
	return p, nil
}

func (s *ProvinceService) Update(ctx context.Context, id int64, patch ProvinceUpdate) (models.Province, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return models.Province{}, err
	}

	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Capital != nil {
		p.Capital = *patch.Capital
	}
	if patch.AreaKm2 != nil {
		p.AreaKm2 = *patch.AreaKm2
	}
	if patch.Population != nil {
		p.Population = *patch.Population
	}
	if err := p.Validate(); err != nil {
		return models.Province{}, err
	}

	if err := s.deps.Stores.Provinces.Update(ctx, p); err != nil {
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			return models.Province{}, derrors.Newf(derrors.CodeNotFound, "province %d not found", id)
		case errors.Is(err, sentinel.ErrConflict):
			return models.Province{}, derrors.Newf(derrors.CodeConflict, "province %q already exists", p.Name)
		}
		return models.Province{}, fmt.Errorf("update province: %w", err)
	}

	s.deps.committed(ctx, provincesEntity, audit.ActionUpdate,
		strconv.FormatInt(id, 10), map[string]any{"nome": p.Name})
	return p, nil
}

func (s *ProvinceService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	n, err := s.deps.Stores.Municipalities.CountByProvince(ctx, id)
	if err != nil {
		return fmt.Errorf("count municipalities: %w", err)
	}
	if n > 0 {
		return derrors.Newf(derrors.CodeConflict,
			"province %d has %d municipalities and cannot be deleted", id, n)
	}

	if err := s.deps.Stores.Provinces.Delete(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return derrors.Newf(derrors.CodeNotFound, "province %d not found", id)
		}
		return fmt.Errorf("delete province: %w", err)
	}

	s.deps.committed(ctx, provincesEntity, audit.ActionDelete,
		strconv.FormatInt(id, 10), nil)
	return nil
}

// BulkError reports one failed item in a bulk operation.
type BulkError struct {
	Index int    `json:"index"`
	ID    int64  `json:"id,omitempty"`
	Error string `json:"error"`
}

// BulkResult summarizes a bulk operation. Data holds the affected rows
// in request order; the handler names the count field per operation.
type BulkResult struct {
	Succeeded int
	Failed    int
	Data      []models.Province
	Errors    []BulkError
}

func (s *ProvinceService) requireDatabase() error {
	if !s.deps.UseDatabase {
		return derrors.New(derrors.CodeBadRequest, "bulk operations require the database backend")
	}
	return nil
}

// BulkCreate inserts provinces one by one and reports per-item outcomes.
// Items are independent: a failure does not roll back earlier successes.
func (s *ProvinceService) BulkCreate(ctx context.Context, items []models.Province) (BulkResult, error) {
	if err := s.requireDatabase(); err != nil {
		return BulkResult{}, err
	}
	if len(items) == 0 {
		return BulkResult{}, derrors.New(derrors.CodeBadRequest, "empty bulk request")
	}

	res := BulkResult{Data: []models.Province{}, Errors: []BulkError{}}
	for i, p := range items {
		created, err := s.Create(ctx, p)
		if err != nil {
			res.Failed++
			res.Errors = append(res.Errors, BulkError{Index: i, Error: derrors.MessageOf(err)})
			continue
		}
		res.Succeeded++
		res.Data = append(res.Data, created)
	}

	s.deps.committed(ctx, provincesEntity, audit.ActionBulkCreate, "",
		map[string]any{"succeeded": res.Succeeded, "failed": res.Failed})
	return res, nil
}

// BulkUpdateItem pairs a province id with its partial update.
type BulkUpdateItem struct {
	ID    int64 `json:"id"`
	Patch ProvinceUpdate
}

func (s *ProvinceService) BulkUpdate(ctx context.Context, items []BulkUpdateItem) (BulkResult, error) {
	if err := s.requireDatabase(); err != nil {
		return BulkResult{}, err
	}
	if len(items) == 0 {
		return BulkResult{}, derrors.New(derrors.CodeBadRequest, "empty bulk request")
	}

	res := BulkResult{Data: []models.Province{}, Errors: []BulkError{}}
	for i, item := range items {
		updated, err := s.Update(ctx, item.ID, item.Patch)
		if err != nil {
			res.Failed++
			res.Errors = append(res.Errors, BulkError{Index: i, ID: item.ID, Error: derrors.MessageOf(err)})
			continue
		}
		res.Succeeded++
		res.Data = append(res.Data, updated)
	}

	s.deps.committed(ctx, provincesEntity, audit.ActionBulkUpdate, "",
		map[string]any{"succeeded": res.Succeeded, "failed": res.Failed})
	return res, nil
}

func (s *ProvinceService) BulkDelete(ctx context.Context, ids []int64) (BulkResult, error) {
	if err := s.requireDatabase(); err != nil {
		return BulkResult{}, err
	}
	if len(ids) == 0 {
		return BulkResult{}, derrors.New(derrors.CodeBadRequest, "empty bulk request")
	}

	res := BulkResult{Errors: []BulkError{}}
	for i, id := range ids {
		if err := s.Delete(ctx, id); err != nil {
			res.Failed++
			res.Errors = append(res.Errors, BulkError{Index: i, ID: id, Error: derrors.MessageOf(err)})
			continue
		}
		res.Succeeded++
	}

	s.deps.committed(ctx, provincesEntity, audit.ActionBulkDelete, "",
		map[string]any{"succeeded": res.Succeeded, "failed": res.Failed})
	return res, nil
}
