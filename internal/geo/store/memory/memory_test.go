package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"angodata/internal/geo/models"
	"angodata/internal/geo/store"
	"angodata/pkg/pagination"
	"angodata/pkg/platform/sentinel"
)

func TestProvinceStore_CreateAssignsNextID(t *testing.T) {
	s := NewProvinceStore(models.SeedProvinces())

	p := models.Province{Name: "Icolo e Bengo", Capital: "Catete"}
	require.NoError(t, s.Create(context.Background(), &p))
	assert.Equal(t, int64(19), p.ID)
}

func TestProvinceStore_CreateDuplicateName(t *testing.T) {
	s := NewProvinceStore(models.SeedProvinces())

	p := models.Province{Name: "luanda", Capital: "Luanda"}
	err := s.Create(context.Background(), &p)
	assert.ErrorIs(t, err, sentinel.ErrConflict)
}

func TestProvinceStore_ConcurrentCreatesGetUniqueIDs(t *testing.T) {
	s := NewProvinceStore(nil)

	const n = 50
	var wg sync.WaitGroup
	ids := make([]int64, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := models.Province{Name: fmt.Sprintf("Província %d", i), Capital: "Capital"}
			if err := s.Create(context.Background(), &p); err == nil {
				ids[i] = p.ID
			}
		}(i)
	}
	wg.Wait()

	seen := map[int64]bool{}
	for _, id := range ids {
		require.NotZero(t, id)
		assert.False(t, seen[id], "id %d assigned twice", id)
		seen[id] = true
	}
}

func TestProvinceStore_ListSearchAndSort(t *testing.T) {
	s := NewProvinceStore(models.SeedProvinces())

	items, total, err := s.List(context.Background(), store.ListOptions{
		Page:   pagination.Params{Page: 1, PerPage: 20},
		Search: "lu",
	})
	require.NoError(t, err)
	// Luanda, Huíla (capital Lubango) and Moxico (capital Luena) match.
	assert.Equal(t, 3, total)
	assert.Len(t, items, 3)

	items, _, err = s.List(context.Background(), store.ListOptions{
		Page: pagination.Params{Page: 1, PerPage: 5},
		Sort: pagination.Sort{Field: "populacao", Order: "desc"},
	})
	require.NoError(t, err)
	require.Len(t, items, 5)
	assert.Equal(t, "Luanda", items[0].Name)
}

func TestProvinceStore_ListPastEndWindow(t *testing.T) {
	s := NewProvinceStore(models.SeedProvinces())

	items, total, err := s.List(context.Background(), store.ListOptions{
		Page: pagination.Params{Page: 10, PerPage: 20},
	})
	require.NoError(t, err)
	assert.Equal(t, 18, total)
	assert.Empty(t, items)
	assert.NotNil(t, items)
}

func TestProvinceStore_UpdateNameConflict(t *testing.T) {
	s := NewProvinceStore(models.SeedProvinces())

	p, err := s.GetByID(context.Background(), 2)
	require.NoError(t, err)
	p.Name = "Benguela"
	assert.ErrorIs(t, s.Update(context.Background(), p), sentinel.ErrConflict)
}

func TestProvinceStore_DeleteNotFound(t *testing.T) {
	s := NewProvinceStore(models.SeedProvinces())
	assert.ErrorIs(t, s.Delete(context.Background(), 999), sentinel.ErrNotFound)
}

func TestProvinceStore_GetByNameCaseInsensitive(t *testing.T) {
	s := NewProvinceStore(models.SeedProvinces())

	p, err := s.GetByName(context.Background(), "HUAMBO")
	require.NoError(t, err)
	assert.Equal(t, int64(10), p.ID)
}

func TestMunicipalityStore_ByProvince(t *testing.T) {
	s := NewMunicipalityStore(models.SeedMunicipalities())

	ms, err := s.GetByProvince(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, ms, 7)

	n, err := s.CountByProvince(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	empty, err := s.GetByProvince(context.Background(), 18)
	require.NoError(t, err)
	assert.Empty(t, empty)
	assert.NotNil(t, empty)
}

func TestMunicipalityStore_DuplicateScopedToProvince(t *testing.T) {
	s := NewMunicipalityStore(models.SeedMunicipalities())

	// Same name in another province is allowed.
	other := models.Municipality{Name: "Benguela", ProvinceID: 1, ProvinceName: "Luanda"}
	require.NoError(t, s.Create(context.Background(), &other))

	dup := models.Municipality{Name: "benguela", ProvinceID: 3, ProvinceName: "Benguela"}
	assert.ErrorIs(t, s.Create(context.Background(), &dup), sentinel.ErrConflict)
}

func TestSchoolStore_ByMunicipality(t *testing.T) {
	s := NewSchoolStore(models.SeedSchools())

	schools, err := s.GetByMunicipality(context.Background(), 13)
	require.NoError(t, err)
	assert.Len(t, schools, 2)

	n, err := s.CountByMunicipality(context.Background(), 13)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestMarketStore_CountByMunicipalityName(t *testing.T) {
	s := NewMarketStore(models.SeedMarkets())

	n, err := s.CountByMunicipalityName(context.Background(), "luanda")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestHospitalStore_ListSortByCategory(t *testing.T) {
	s := NewHospitalStore(models.SeedHospitals())

	items, total, err := s.List(context.Background(), store.ListOptions{
		Page: pagination.Params{Page: 1, PerPage: 100},
		Sort: pagination.Sort{Field: "categoria", Order: "asc"},
	})
	require.NoError(t, err)
	assert.Equal(t, 9, total)
	assert.Equal(t, "Central", items[0].Category)
}

func TestBundle_ExportRoundTrip(t *testing.T) {
	b := NewBundle(SeedExport())

	p := models.Province{Name: "Nova Província", Capital: "Capital"}
	require.NoError(t, b.Provinces.Create(context.Background(), &p))

	exported := b.Export()
	restored := NewBundle(exported)

	got, err := restored.Provinces.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Nova Província", got.Name)

	// The export is a copy, not a view.
	exported.Provinces[0].Name = "mutated"
	orig, err := b.Provinces.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Luanda", orig.Name)
}

func TestSchoolStore_CreateDoesNotCheckNames(t *testing.T) {
	s := NewSchoolStore(models.SeedSchools())

	sc := models.School{Name: "Escola Secundária Mutu Ya Kevela", Type: models.SchoolPublic, ProvinceID: 1, ProvinceName: "Luanda", MunicipalityID: 1, MunicipalityName: "Luanda"}
	require.NoError(t, s.Create(context.Background(), &sc))
	assert.Equal(t, int64(9), sc.ID)
}
