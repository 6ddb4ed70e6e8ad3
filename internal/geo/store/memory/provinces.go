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

// ProvinceStore keeps provinces in a slice ordered by id. The mutex covers
// id assignment and the duplicate-name check so concurrent creates cannot
// race each other.
type ProvinceStore struct {
	mu    sync.RWMutex
	items []models.Province
}

func NewProvinceStore(seed []models.Province) *ProvinceStore {
	s := &ProvinceStore{items: make([]models.Province, len(seed))}
	copy(s.items, seed)
	sort.Slice(s.items, func(i, j int) bool { return s.items[i].ID < s.items[j].ID })
	return s
}

func (s *ProvinceStore) List(_ context.Context, opts store.ListOptions) ([]models.Province, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filtered := make([]models.Province, 0, len(s.items))
	for _, p := range s.items {
		if pagination.Matches(opts.Search, p.Name, p.Capital) {
			filtered = append(filtered, p)
		}
	}
	sortProvinces(filtered, opts.Sort)

	if opts.All {
		return filtered, len(filtered), nil
	}
	page, _ := pagination.Slice(filtered, opts.Page)
	return page, len(filtered), nil
}

func (s *ProvinceStore) GetByID(_ context.Context, id int64) (models.Province, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.items {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Province{}, fmt.Errorf("province %d: %w", id, sentinel.ErrNotFound)
}

func (s *ProvinceStore) GetByName(_ context.Context, name string) (models.Province, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.items {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return models.Province{}, fmt.Errorf("province %q: %w", name, sentinel.ErrNotFound)
}

func (s *ProvinceStore) Create(_ context.Context, province *models.Province) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.items {
		if strings.EqualFold(p.Name, province.Name) {
			return fmt.Errorf("province %q: %w", province.Name, sentinel.ErrConflict)
		}
	}
	province.ID = nextProvinceID(s.items)
	s.items = append(s.items, *province)
	return nil
}

func (s *ProvinceStore) Update(_ context.Context, province models.Province) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, p := range s.items {
		if p.ID == province.ID {
			idx = i
			continue
		}
		if strings.EqualFold(p.Name, province.Name) {
			return fmt.Errorf("province %q: %w", province.Name, sentinel.ErrConflict)
		}
	}
	if idx < 0 {
		return fmt.Errorf("province %d: %w", province.ID, sentinel.ErrNotFound)
	}
	s.items[idx] = province
	return nil
}

func (s *ProvinceStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.items {
		if p.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("province %d: %w", id, sentinel.ErrNotFound)
}

// All copies out the full dataset for snapshots.
func (s *ProvinceStore) All() []models.Province {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Province, len(s.items))
	copy(out, s.items)
	return out
}

func nextProvinceID(items []models.Province) int64 {
	var max int64
	for _, p := range items {
		if p.ID > max {
			max = p.ID
		}
	}
	return max + 1
}

func sortProvinces(items []models.Province, by pagination.Sort) {
	desc := by.Order == "desc"
	less := func(i, j int) bool { return items[i].ID < items[j].ID }
	switch by.Field {
	case "nome":
		less = func(i, j int) bool { return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name) }
	case "capital":
		less = func(i, j int) bool { return strings.ToLower(items[i].Capital) < strings.ToLower(items[j].Capital) }
	case "area_km2":
		less = func(i, j int) bool { return items[i].AreaKm2 < items[j].AreaKm2 }
	case "populacao":
		less = func(i, j int) bool { return items[i].Population < items[j].Population }
	}
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return less(j, i)
		}
		return less(i, j)
	})
}
