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

type MarketStore struct {
	mu    sync.RWMutex
	items []models.Market
}

func NewMarketStore(seed []models.Market) *MarketStore {
	s := &MarketStore{items: make([]models.Market, len(seed))}
	copy(s.items, seed)
	sort.Slice(s.items, func(i, j int) bool { return s.items[i].ID < s.items[j].ID })
	return s
}

func (s *MarketStore) List(_ context.Context, opts store.ListOptions) ([]models.Market, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filtered := make([]models.Market, 0, len(s.items))
	for _, m := range s.items {
		if pagination.Matches(opts.Search, m.Name, m.MunicipalityName, m.Specialty) {
			filtered = append(filtered, m)
		}
	}
	sortMarkets(filtered, opts.Sort)

	if opts.All {
		return filtered, len(filtered), nil
	}
	page, _ := pagination.Slice(filtered, opts.Page)
	return page, len(filtered), nil
}

func (s *MarketStore) GetByID(_ context.Context, id int64) (models.Market, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, m := range s.items {
		if m.ID == id {
			return m, nil
		}
	}
	return models.Market{}, fmt.Errorf("market %d: %w", id, sentinel.ErrNotFound)
}

func (s *MarketStore) GetByProvince(_ context.Context, provinceID int64) ([]models.Market, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Market{}
	for _, m := range s.items {
		if m.ProvinceID == provinceID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *MarketStore) CountByMunicipalityName(_ context.Context, name string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, m := range s.items {
		if strings.EqualFold(m.MunicipalityName, name) {
			n++
		}
	}
	return n, nil
}

func (s *MarketStore) Create(_ context.Context, market *models.Market) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	market.ID = nextMarketID(s.items)
	s.items = append(s.items, *market)
	return nil
}

func (s *MarketStore) Update(_ context.Context, market models.Market) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, m := range s.items {
		if m.ID == market.ID {
			s.items[i] = market
			return nil
		}
	}
	return fmt.Errorf("market %d: %w", market.ID, sentinel.ErrNotFound)
}

func (s *MarketStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, m := range s.items {
		if m.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("market %d: %w", id, sentinel.ErrNotFound)
}

func (s *MarketStore) All() []models.Market {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Market, len(s.items))
	copy(out, s.items)
	return out
}

func nextMarketID(items []models.Market) int64 {
	var max int64
	for _, m := range items {
		if m.ID > max {
			max = m.ID
		}
	}
	return max + 1
}

func sortMarkets(items []models.Market, by pagination.Sort) {
	desc := by.Order == "desc"
	less := func(i, j int) bool { return items[i].ID < items[j].ID }
	switch by.Field {
	case "nome":
		less = func(i, j int) bool { return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name) }
	case "tipo":
		less = func(i, j int) bool { return items[i].Type < items[j].Type }
	case "municipio":
		less = func(i, j int) bool { return strings.ToLower(items[i].MunicipalityName) < strings.ToLower(items[j].MunicipalityName) }
	case "especialidade":
		less = func(i, j int) bool { return strings.ToLower(items[i].Specialty) < strings.ToLower(items[j].Specialty) }
	}
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return less(j, i)
		}
		return less(i, j)
	})
}
