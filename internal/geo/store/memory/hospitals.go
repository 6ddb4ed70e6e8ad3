package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"angodata/internal/geo/models"
	"angodata/internal/geo/store"
	"angodata/pkg/pagination"
	"angodata/pkg/platform/sentinel"
)

type HospitalStore struct {
	mu    sync.RWMutex
	items []models.Hospital
}

func NewHospitalStore(seed []models.Hospital) *HospitalStore {
	s := &HospitalStore{items: make([]models.Hospital, len(seed))}
	copy(s.items, seed)
	sort.Slice(s.items, func(i, j int) bool { return s.items[i].ID < s.items[j].ID })
	return s
}

func (s *HospitalStore) List(_ context.Context, opts store.ListOptions) ([]models.Hospital, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filtered := make([]models.Hospital, 0, len(s.items))
	for _, h := range s.items {
		if pagination.Matches(opts.Search, h.Name, h.MunicipalityName, h.Category) {
			filtered = append(filtered, h)
		}
	}
	sortHospitals(filtered, opts.Sort)

	if opts.All {
		return filtered, len(filtered), nil
	}
	page, _ := pagination.Slice(filtered, opts.Page)
	return page, len(filtered), nil
}

func (s *HospitalStore) GetByID(_ context.Context, id int64) (models.Hospital, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, h := range s.items {
		if h.ID == id {
			return h, nil
		}
	}
	return models.Hospital{}, fmt.Errorf("hospital %d: %w", id, sentinel.ErrNotFound)
}

func (s *HospitalStore) GetByProvince(_ context.Context, provinceID int64) ([]models.Hospital, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Hospital{}
	for _, h := range s.items {
		if h.ProvinceID == provinceID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (s *HospitalStore) CountByMunicipalityName(_ context.Context, name string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, h := range s.items {
		if strings.EqualFold(h.MunicipalityName, name) {
			n++
		}
	}
	return n, nil
}

func (s *HospitalStore) Create(_ context.Context, hospital *models.Hospital) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	hospital.ID = nextHospitalID(s.items)
	s.items = append(s.items, *hospital)
	return nil
}

func (s *HospitalStore) Update(_ context.Context, hospital models.Hospital) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, h := range s.items {
		if h.ID == hospital.ID {
			s.items[i] = hospital
			return nil
		}
	}
	return fmt.Errorf("hospital %d: %w", hospital.ID, sentinel.ErrNotFound)
}

func (s *HospitalStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, h := range s.items {
		if h.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("hospital %d: %w", id, sentinel.ErrNotFound)
}

func (s *HospitalStore) All() []models.Hospital {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Hospital, len(s.items))
	copy(out, s.items)
	return out
}

func nextHospitalID(items []models.Hospital) int64 {
	var max int64
	for _, h := range items {
		if h.ID > max {
			max = h.ID
		}
	}
	return max + 1
}

func sortHospitals(items []models.Hospital, by pagination.Sort) {
	desc := by.Order == "desc"
	less := func(i, j int) bool { return items[i].ID < items[j].ID }
	switch by.Field {
	case "nome":
		less = func(i, j int) bool { return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name) }
	case "tipo":
		less = func(i, j int) bool { return items[i].Type < items[j].Type }
	case "categoria":
		less = func(i, j int) bool { return strings.ToLower(items[i].Category) < strings.ToLower(items[j].Category) }
	case "municipio":
		less = func(i, j int) bool { return strings.ToLower(items[i].MunicipalityName) < strings.ToLower(items[j].MunicipalityName) }
	}
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return less(j, i)
		}
		return less(i, j)
	})
}
