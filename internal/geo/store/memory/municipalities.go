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

type MunicipalityStore struct {
	mu    sync.RWMutex
	items []models.Municipality
}

func NewMunicipalityStore(seed []models.Municipality) *MunicipalityStore {
	s := &MunicipalityStore{items: make([]models.Municipality, len(seed))}
	copy(s.items, seed)
	sort.Slice(s.items, func(i, j int) bool { return s.items[i].ID < s.items[j].ID })
	return s
}

func (s *MunicipalityStore) List(_ context.Context, opts store.ListOptions) ([]models.Municipality, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filtered := make([]models.Municipality, 0, len(s.items))
	for _, m := range s.items {
		if pagination.Matches(opts.Search, m.Name, m.ProvinceName) {
			filtered = append(filtered, m)
		}
	}
	sortMunicipalities(filtered, opts.Sort)

	if opts.All {
		return filtered, len(filtered), nil
	}
	page, _ := pagination.Slice(filtered, opts.Page)
	return page, len(filtered), nil
}

func (s *MunicipalityStore) GetByID(_ context.Context, id int64) (models.Municipality, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, m := range s.items {
		if m.ID == id {
			return m, nil
		}
	}
	return models.Municipality{}, fmt.Errorf("municipality %d: %w", id, sentinel.ErrNotFound)
}

func (s *MunicipalityStore) GetByProvince(_ context.Context, provinceID int64) ([]models.Municipality, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Municipality{}
	for _, m := range s.items {
		if m.ProvinceID == provinceID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *MunicipalityStore) CountByProvince(_ context.Context, provinceID int64) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, m := range s.items {
		if m.ProvinceID == provinceID {
			n++
		}
	}
	return n, nil
}

func (s *MunicipalityStore) Create(_ context.Context, municipality *models.Municipality) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.items {
		if m.ProvinceID == municipality.ProvinceID && strings.EqualFold(m.Name, municipality.Name) {
			return fmt.Errorf("municipality %q: %w", municipality.Name, sentinel.ErrConflict)
		}
	}
	municipality.ID = nextMunicipalityID(s.items)
	s.items = append(s.items, *municipality)
	return nil
}

func (s *MunicipalityStore) Update(_ context.Context, municipality models.Municipality) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, m := range s.items {
		if m.ID == municipality.ID {
			idx = i
			continue
		}
		if m.ProvinceID == municipality.ProvinceID && strings.EqualFold(m.Name, municipality.Name) {
			return fmt.Errorf("municipality %q: %w", municipality.Name, sentinel.ErrConflict)
		}
	}
	if idx < 0 {
		return fmt.Errorf("municipality %d: %w", municipality.ID, sentinel.ErrNotFound)
	}
	s.items[idx] = municipality
	return nil
}

func (s *MunicipalityStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, m := range s.items {
		if m.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("municipality %d: %w", id, sentinel.ErrNotFound)
}

func (s *MunicipalityStore) All() []models.Municipality {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Municipality, len(s.items))
	copy(out, s.items)
	return out
}

func nextMunicipalityID(items []models.Municipality) int64 {
	var max int64
	for _, m := range items {
		if m.ID > max {
			max = m.ID
		}
	}
	return max + 1
}

func sortMunicipalities(items []models.Municipality, by pagination.Sort) {
	desc := by.Order == "desc"
	less := func(i, j int) bool { return items[i].ID < items[j].ID }
	switch by.Field {
	case "nome":
		less = func(i, j int) bool { return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name) }
	case "provincia_nome":
		less = func(i, j int) bool { return strings.ToLower(items[i].ProvinceName) < strings.ToLower(items[j].ProvinceName) }
	case "area_km2":
		less = func(i, j int) bool { return deref(items[i].AreaKm2) < deref(items[j].AreaKm2) }
	case "populacao":
		less = func(i, j int) bool { return derefInt(items[i].Population) < derefInt(items[j].Population) }
	}
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return less(j, i)
		}
		return less(i, j)
	})
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func derefInt(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}
