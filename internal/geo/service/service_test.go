package service

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"angodata/internal/audit"
	"angodata/internal/geo/models"
	"angodata/internal/geo/store"
	"angodata/internal/geo/store/memory"
	derrors "angodata/pkg/domain-errors"
)

type fakeInvalidator struct {
	prefixes []string
}

func (f *fakeInvalidator) Invalidate(_ context.Context, prefix string) {
	f.prefixes = append(f.prefixes, prefix)
}

type testEnv struct {
	svcs    *Services
	trail   *audit.MemoryStore
	cache   *fakeInvalidator
	flushes int
	bundle  *memory.Bundle
}

func newTestEnv(t *testing.T, useDatabase bool) *testEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	env := &testEnv{
		trail:  audit.NewMemoryStore(),
		cache:  &fakeInvalidator{},
		bundle: memory.NewBundle(memory.SeedExport()),
	}
	env.svcs = New(Deps{
		Stores: store.Stores{
			Provinces:      env.bundle.Provinces,
			Municipalities: env.bundle.Municipalities,
			Schools:        env.bundle.Schools,
			Markets:        env.bundle.Markets,
			Hospitals:      env.bundle.Hospitals,
		},
		Logger:      logger,
		Audit:       audit.NewService(env.trail, logger),
		Cache:       env.cache,
		Persist:     func(context.Context) error { env.flushes++; return nil },
		UseDatabase: useDatabase,
	})
	return env
}

func strPtr(s string) *string { return &s }
func i64Ptr(v int64) *int64   { return &v }

func TestProvinceCreateRunsHooks(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()

	p, err := env.svcs.Provinces.Create(ctx, models.Province{Name: "Icolo e Bengo", Capital: "Catete"})
	require.NoError(t, err)
	assert.Equal(t, int64(19), p.ID)

	assert.Equal(t, 1, env.flushes)
	assert.Equal(t, []string{"provinces"}, env.cache.prefixes)

	events, err := env.trail.List(ctx, audit.Filter{Limit: 10})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, audit.ActionCreate, events[0].Action)
	assert.Equal(t, "provinces", events[0].ResourceType)
	assert.Equal(t, "19", events[0].ResourceID)
}

func TestProvinceCreateDuplicateIsConflict(t *testing.T) {
	env := newTestEnv(t, false)

	_, err := env.svcs.Provinces.Create(context.Background(), models.Province{Name: "LUANDA", Capital: "Luanda"})
	assert.True(t, derrors.HasCode(err, derrors.CodeConflict))
	assert.Zero(t, env.flushes, "failed create must not flush a snapshot")
}

func TestProvinceCreateValidation(t *testing.T) {
	env := newTestEnv(t, false)

	_, err := env.svcs.Provinces.Create(context.Background(), models.Province{Capital: "Somewhere"})
	require.True(t, derrors.HasCode(err, derrors.CodeValidation))
	assert.Contains(t, derrors.FieldsOf(err), "nome")
}

func TestProvincePartialUpdate(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()

	updated, err := env.svcs.Provinces.Update(ctx, 1, ProvinceUpdate{Population: i64Ptr(7000000)})
	require.NoError(t, err)
	assert.Equal(t, int64(7000000), updated.Population)
	assert.Equal(t, "Luanda", updated.Name, "untouched fields keep their value")
	assert.Equal(t, "Luanda", updated.Capital)
}

func TestProvinceDeleteBlockedByMunicipalities(t *testing.T) {
	env := newTestEnv(t, false)

	err := env.svcs.Provinces.Delete(context.Background(), 1)
	require.True(t, derrors.HasCode(err, derrors.CodeConflict))
	assert.Contains(t, derrors.MessageOf(err), "7 municipalities")
}

func TestProvinceDeleteWithoutDependents(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()

	// Zaire has no seeded municipalities.
	require.NoError(t, env.svcs.Provinces.Delete(ctx, 18))
	_, err := env.svcs.Provinces.Get(ctx, 18)
	assert.True(t, derrors.HasCode(err, derrors.CodeNotFound))
}

func TestMunicipalityCreateValidatesProvince(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()

	_, err := env.svcs.Municipalities.Create(ctx, models.Municipality{Name: "Caxito", ProvinceID: 999})
	require.True(t, derrors.HasCode(err, derrors.CodeValidation))
	assert.Contains(t, derrors.FieldsOf(err), "provincia_id")

	m, err := env.svcs.Municipalities.Create(ctx, models.Municipality{Name: "Caxito", ProvinceID: 2})
	require.NoError(t, err)
	assert.Equal(t, "Bengo", m.ProvinceName, "province name is denormalized from the store")
}

func TestMunicipalityDeleteBlockedByDependents(t *testing.T) {
	env := newTestEnv(t, false)

	// Municipality 1 (Luanda) has seeded schools, markets and hospitals.
	err := env.svcs.Municipalities.Delete(context.Background(), 1)
	require.True(t, derrors.HasCode(err, derrors.CodeConflict))
	msg := derrors.MessageOf(err)
	assert.Contains(t, msg, "schools")
	assert.Contains(t, msg, "markets")
	assert.Contains(t, msg, "hospitals")
}

func TestMunicipalityGetByProvince404(t *testing.T) {
	env := newTestEnv(t, false)

	_, _, err := env.svcs.Municipalities.GetByProvince(context.Background(), 999)
	assert.True(t, derrors.HasCode(err, derrors.CodeNotFound))
}

func TestSchoolCreateResolvesMunicipality(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()

	sc, err := env.svcs.Schools.Create(ctx, models.School{
		Name: "Escola Primária do Lobito", Type: models.SchoolPublic, MunicipalityID: 9,
	})
	require.NoError(t, err)
	assert.Equal(t, "Lobito", sc.MunicipalityName)
	assert.Equal(t, int64(3), sc.ProvinceID)
	assert.Equal(t, "Benguela", sc.ProvinceName)
}

func TestSchoolCreateRejectsProvinceMismatch(t *testing.T) {
	env := newTestEnv(t, false)

	_, err := env.svcs.Schools.Create(context.Background(), models.School{
		Name: "Escola X", Type: models.SchoolPublic, MunicipalityID: 9, ProvinceID: 1,
	})
	require.True(t, derrors.HasCode(err, derrors.CodeValidation))
	assert.Contains(t, derrors.FieldsOf(err), "provincia_id")
}

func TestSchoolCreateUnknownMunicipality(t *testing.T) {
	env := newTestEnv(t, false)

	_, err := env.svcs.Schools.Create(context.Background(), models.School{
		Name: "Escola X", Type: models.SchoolPublic, MunicipalityID: 999,
	})
	require.True(t, derrors.HasCode(err, derrors.CodeValidation))
	assert.Contains(t, derrors.FieldsOf(err), "municipio_id")
}

func TestSchoolUpdateMoveMunicipality(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()

	sc, err := env.svcs.Schools.Update(ctx, 1, SchoolUpdate{MunicipalityID: i64Ptr(11)})
	require.NoError(t, err)
	assert.Equal(t, "Huambo", sc.MunicipalityName)
	assert.Equal(t, int64(10), sc.ProvinceID)
	assert.Equal(t, "Huambo", sc.ProvinceName)
}

func TestMarketCreateValidatesProvince(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()

	_, err := env.svcs.Markets.Create(ctx, models.Market{Name: "Mercado X", Type: models.MarketFormal, ProvinceID: 999})
	require.True(t, derrors.HasCode(err, derrors.CodeValidation))

	m, err := env.svcs.Markets.Create(ctx, models.Market{
		Name: "Mercado do Sumbe", Type: models.MarketMunicipal, ProvinceID: 8, MunicipalityName: "Sumbe",
	})
	require.NoError(t, err)
	assert.Equal(t, "Cuanza Sul", m.ProvinceName)
}

func TestHospitalUpdatePartial(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()

	h, err := env.svcs.Hospitals.Update(ctx, 3, HospitalUpdate{Category: strPtr("Especializado")})
	require.NoError(t, err)
	assert.Equal(t, "Especializado", h.Category)
	assert.Equal(t, "Clínica Girassol", h.Name)
}

func TestBulkOperationsRequireDatabase(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()

	_, err := env.svcs.Provinces.BulkCreate(ctx, []models.Province{{Name: "Nova", Capital: "X"}})
	assert.True(t, derrors.HasCode(err, derrors.CodeBadRequest))

	_, err = env.svcs.Provinces.BulkUpdate(ctx, []BulkUpdateItem{{ID: 1}})
	assert.True(t, derrors.HasCode(err, derrors.CodeBadRequest))

	_, err = env.svcs.Provinces.BulkDelete(ctx, []int64{18})
	assert.True(t, derrors.HasCode(err, derrors.CodeBadRequest))
}

func TestBulkCreateReportsPerItemOutcomes(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()

	res, err := env.svcs.Provinces.BulkCreate(ctx, []models.Province{
		{Name: "Icolo e Bengo", Capital: "Catete", AreaKm2: 2073},
		{Name: "Luanda", Capital: "Luanda", AreaKm2: 2417}, // duplicate
		{Capital: "Sem Nome", AreaKm2: 100},                // invalid
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Succeeded)
	assert.Equal(t, 2, res.Failed)
	require.Len(t, res.Data, 1)
	assert.NotZero(t, res.Data[0].ID)
	assert.Equal(t, "Icolo e Bengo", res.Data[0].Name)
	require.Len(t, res.Errors, 2)
	assert.Equal(t, 1, res.Errors[0].Index)
	assert.NotEmpty(t, res.Errors[0].Error)
	assert.Equal(t, 2, res.Errors[1].Index)
}

func TestBulkDeleteMixedOutcomes(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()

	res, err := env.svcs.Provinces.BulkDelete(ctx, []int64{18, 999, 1})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Succeeded)
	assert.Equal(t, 2, res.Failed, "unknown id and dependent-blocked id both fail")
}

func TestBulkEmptyRequest(t *testing.T) {
	env := newTestEnv(t, true)

	_, err := env.svcs.Provinces.BulkCreate(context.Background(), nil)
	assert.True(t, derrors.HasCode(err, derrors.CodeBadRequest))
}
