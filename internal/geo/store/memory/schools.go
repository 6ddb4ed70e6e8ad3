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

type SchoolStore struct {
	mu    sync.RWMutex
	items []models.School
}

func NewSchoolStore(seed []models.School) *SchoolStore {
	s := &SchoolStore{items: make([]models.School, len(seed))}
	copy(s.items, seed)
	sort.Slice(s.items, func(i, j int) bool { return s.items[i].ID < s.items[j].ID })
	return s
}

func (s *SchoolStore) List(_ context.Context, opts store.ListOptions) ([]models.School, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filtered := make([]models.School, 0, len(s.items))
	for _, sc := range s.items {
		if pagination.Matches(opts.Search, sc.Name, sc.MunicipalityName, sc.Address) {
			filtered = append(filtered, sc)
		}
	}
	sortSchools(filtered, opts.Sort)

	if opts.All {
		return filtered, len(filtered), nil
	}
	page, _ := pagination.Slice(filtered, opts.Page)
	return page, len(filtered), nil
}

func (s *SchoolStore) GetByID(_ context.Context, id int64) (models.School, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sc := range s.items {
		if sc.ID == id {
			return sc, nil
		}
	}
	return models.School{}, fmt.Errorf("school %d: %w", id, sentinel.ErrNotFound)
}

func (s *SchoolStore) GetByProvince(_ context.Context, provinceID int64) ([]models.School, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.School{}
	for _, sc := range s.items {
		if sc.ProvinceID == provinceID {
			out = append(out, sc)
		}
	}
	return out, nil
}

func (s *SchoolStore) GetByMunicipality(_ context.Context, municipalityID int64) ([]models.School, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.School{}
	for _, sc := range s.items {
		if sc.MunicipalityID == municipalityID {
			out = append(out, sc)
		}
	}
	return out, nil
}

func (s *SchoolStore) CountByMunicipality(_ context.Context, municipalityID int64) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, sc := range s.items {
		if sc.MunicipalityID == municipalityID {
			n++
		}
	}
	return n, nil
}

func (s *SchoolStore) Create(_ context.Context, school *models.School) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	school.ID = nextSchoolID(s.items)
	s.items = append(s.items, *school)
	return nil
}

func (s *SchoolStore) Update(_ context.Context, school models.School) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, sc := range s.items {
		if sc.ID == school.ID {
			s.items[i] = school
			return nil
		}
	}
	return fmt.Errorf("school %d: %w", school.ID, sentinel.ErrNotFound)
}

func (s *SchoolStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, sc := range s.items {
		if sc.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("school %d: %w", id, sentinel.ErrNotFound)
}

func (s *SchoolStore) All() []models.School {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.School, len(s.items))
	copy(out, s.items)
	return out
}

func nextSchoolID(items []models.School) int64 {
	var max int64
	for _, sc := range items {
		if sc.ID > max {
			max = sc.ID
		}
	}
	return max + 1
}

func sortSchools(items []models.School, by pagination.Sort) {
	desc := by.Order == "desc"
	less := func(i, j int) bool { return items[i].ID < items[j].ID }
	switch by.Field {
	case "nome":
		less = func(i, j int) bool { return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name) }
	case "tipo":
		less = func(i, j int) bool { return items[i].Type < items[j].Type }
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
