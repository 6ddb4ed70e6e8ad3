package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"angodata/internal/audit"
	"angodata/internal/auth"
	"angodata/internal/geo/service"
	"angodata/internal/geo/store"
	"angodata/internal/geo/store/memory"
	"angodata/internal/jwttoken"
	"angodata/internal/platform/cache"
)

type testServer struct {
	router http.Handler
	tokens *jwttoken.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	tokens := jwttoken.NewService("test-signing-key", time.Hour, 24*time.Hour)
	auditSvc := audit.NewService(audit.NewMemoryStore(), logger)
	responseCache := cache.NewResponseCache(cache.NewMemory(), time.Minute, false, logger, nil)

	bundle := memory.NewBundle(memory.SeedExport())
	services := service.New(service.Deps{
		Stores: store.Stores{
			Provinces:      bundle.Provinces,
			Municipalities: bundle.Municipalities,
			Schools:        bundle.Schools,
			Markets:        bundle.Markets,
			Hospitals:      bundle.Hospitals,
		},
		Logger: logger,
		Audit:  auditSvc,
		Cache:  responseCache,
	})
	authSvc := auth.NewService(auth.NewMemoryUserStore(nil), tokens, logger, nil, auditSvc, nil)

	router := NewRouter(Deps{
		Services: services,
		Auth:     authSvc,
		Tokens:   tokens,
		Audit:    auditSvc,
		Cache:    responseCache,
		Logger:   logger,
	})
	return &testServer{router: router, tokens: tokens}
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) tokenFor(t *testing.T, role string) string {
	t.Helper()

	token, err := ts.tokens.GenerateAccessToken(jwttoken.Identity{
		UserID:   "1",
		Username: role,
		Email:    fmt.Sprintf("%s@example.com", role),
		Role:     role,
	})
	require.NoError(t, err)
	return token
}

type envelope struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message"`
	Data       json.RawMessage   `json:"data"`
	Pagination *paginationBlock  `json:"pagination"`
	Errors     map[string]string `json:"errors"`
}

type paginationBlock struct {
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	TotalItems int  `json:"total_items"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	return env
}

func TestListProvincesPaginated(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/provinces/all?page=2&per_page=5", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, 18, env.Pagination.TotalItems)
	assert.Equal(t, 4, env.Pagination.TotalPages)
	assert.True(t, env.Pagination.HasNext)
	assert.True(t, env.Pagination.HasPrev)

	var items []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &items))
	assert.Len(t, items, 5)
}

func TestListProvincesUnpaginated(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/provinces/all?paginate=false", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Nil(t, env.Pagination)

	var items []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &items))
	assert.Len(t, items, 18)
}

func TestListProvincesSearchAndSort(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/provinces/all?search=lu&paginate=false", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []struct {
		Name string `json:"nome"`
	}
	env := decodeEnvelope(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.NotEmpty(t, items)

	rec = ts.do(t, http.MethodGet, "/provinces/all?sort_by=populacao&order=desc&per_page=1", "", nil)
	env = decodeEnvelope(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Luanda", items[0].Name)
}

func TestGetProvince(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/provinces/1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	var p struct {
		Name string `json:"nome"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.Equal(t, "Luanda", p.Name)

	rec = ts.do(t, http.MethodGet, "/provinces/999", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, decodeEnvelope(t, rec).Success)

	rec = ts.do(t, http.MethodGet, "/provinces/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateProvinceAuthz(t *testing.T) {
	ts := newTestServer(t)
	body := map[string]any{"nome": "Nova", "capital": "Cidade Nova", "area_km2": 1204.5, "populacao": 120000}

	rec := ts.do(t, http.MethodPost, "/provinces", "", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, http.MethodPost, "/provinces", ts.tokenFor(t, "user"), body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.do(t, http.MethodPost, "/provinces", ts.tokenFor(t, "editor"), body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	env := decodeEnvelope(t, rec)
	var p struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.Equal(t, int64(19), p.ID)
}

func TestCreateProvinceValidation(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/provinces", ts.tokenFor(t, "editor"), map[string]any{"capital": "Sem Nome"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Contains(t, env.Errors, "nome")
}

func TestCreateDuplicateProvinceConflicts(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/provinces", ts.tokenFor(t, "admin"),
		map[string]any{"nome": "luanda", "capital": "Luanda", "area_km2": 2417.0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, decodeEnvelope(t, rec).Success)
}

func TestUpdateProvincePartial(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPut, "/provinces/2", ts.tokenFor(t, "editor"),
		map[string]any{"populacao": 999_000})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var p struct {
		Name       string `json:"nome"`
		Population int64  `json:"populacao"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &p))
	assert.Equal(t, int64(999_000), p.Population)
	assert.NotEmpty(t, p.Name)
}

func TestDeleteProvinceWithMunicipalitiesBlocked(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodDelete, "/provinces/1", ts.tokenFor(t, "admin"), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, decodeEnvelope(t, rec).Success)
}

func TestBulkRequiresDatabaseBackend(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/provinces/bulk", ts.tokenFor(t, "editor"),
		map[string]any{"provinces": []map[string]any{{"nome": "Nova", "capital": "Cidade", "area_km2": 500.0}}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeEnvelope(t, rec).Message, "database backend")
}

func TestMunicipalitiesByProvince(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/municipalities/provincia/1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Province       string            `json:"provincia"`
		Municipalities []json.RawMessage `json:"municipios"`
		Total          int               `json:"total"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &payload))
	assert.Equal(t, "Luanda", payload.Province)
	assert.Equal(t, 7, payload.Total)
	assert.Len(t, payload.Municipalities, 7)

	rec = ts.do(t, http.MethodGet, "/municipalities/provincia/999", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSchoolCreateResolvesMunicipality(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/schools", ts.tokenFor(t, "editor"), map[string]any{
		"nome":         "Escola Nova do Cazenga",
		"tipo":         "Pública",
		"municipio_id": 3,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var sc struct {
		ProvinceID   int64  `json:"provincia_id"`
		ProvinceName string `json:"provincia_nome"`
		Municipality string `json:"municipio"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &sc))
	assert.Equal(t, int64(1), sc.ProvinceID)
	assert.Equal(t, "Luanda", sc.ProvinceName)
	assert.NotEmpty(t, sc.Municipality)
}

func TestCacheServesSecondRead(t *testing.T) {
	ts := newTestServer(t)

	first := ts.do(t, http.MethodGet, "/provinces/all", "", nil)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Empty(t, first.Header().Get("X-Cache"))

	second := ts.do(t, http.MethodGet, "/provinces/all", "", nil)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestMutationInvalidatesCache(t *testing.T) {
	ts := newTestServer(t)

	ts.do(t, http.MethodGet, "/provinces/all?paginate=false", "", nil)
	rec := ts.do(t, http.MethodPost, "/provinces", ts.tokenFor(t, "editor"),
		map[string]any{"nome": "Nova", "capital": "Cidade Nova", "area_km2": 1204.5})
	require.Equal(t, http.StatusCreated, rec.Code)

	after := ts.do(t, http.MethodGet, "/provinces/all?paginate=false", "", nil)
	require.Equal(t, http.StatusOK, after.Code)
	assert.Empty(t, after.Header().Get("X-Cache"))

	var items []map[string]any
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, after).Data, &items))
	assert.Len(t, items, 19)
}

func TestRegisterLoginMe(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/auth/register", "", map[string]any{
		"username": "joaquim",
		"email":    "joaquim@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = ts.do(t, http.MethodPost, "/auth/login", "", map[string]any{
		"email":    "joaquim@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var login struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &login))
	require.NotEmpty(t, login.AccessToken)

	rec = ts.do(t, http.MethodGet, "/auth/me", login.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var me struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &me))
	assert.Equal(t, "joaquim@example.com", me.Email)
	assert.Equal(t, "user", me.Role)

	rec = ts.do(t, http.MethodPost, "/auth/refresh", "", map[string]any{
		"refresh_token": login.RefreshToken,
	})
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestLoginWrongPassword(t *testing.T) {
	ts := newTestServer(t)

	ts.do(t, http.MethodPost, "/auth/register", "", map[string]any{
		"username": "maria",
		"email":    "maria@example.com",
		"password": "supersecret",
	})
	rec := ts.do(t, http.MethodPost, "/auth/login", "", map[string]any{
		"email":    "maria@example.com",
		"password": "wrong-password",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid credentials", decodeEnvelope(t, rec).Message)
}

func TestAuditLogsAdminOnly(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/audit/logs", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, http.MethodGet, "/audit/logs", ts.tokenFor(t, "editor"), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	ts.do(t, http.MethodPost, "/provinces", ts.tokenFor(t, "editor"),
		map[string]any{"nome": "Nova", "capital": "Cidade Nova", "area_km2": 1204.5})

	rec = ts.do(t, http.MethodGet, "/audit/logs?action=create", ts.tokenFor(t, "admin"), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var events []struct {
		Action       string `json:"action"`
		ResourceType string `json:"resource_type"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &events))
	require.NotEmpty(t, events)
	assert.Equal(t, "create", events[0].Action)
	assert.Equal(t, "provinces", events[0].ResourceType)
}

func TestUserAdminSurface(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/auth/register", "", map[string]any{
		"username": "joaquim",
		"email":    "joaquim@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, http.MethodGet, "/auth/users", ts.tokenFor(t, "user"), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	admin := ts.tokenFor(t, "admin")
	rec = ts.do(t, http.MethodGet, "/auth/users", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var users []struct {
		ID   int64  `json:"id"`
		Role string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &users))
	require.Len(t, users, 1)

	rec = ts.do(t, http.MethodPut, fmt.Sprintf("/auth/users/%d", users[0].ID), admin,
		map[string]any{"role": "editor"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated struct {
		Role string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &updated))
	assert.Equal(t, "editor", updated.Role)

	rec = ts.do(t, http.MethodDelete, fmt.Sprintf("/auth/users/%d", users[0].ID), admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodDelete, fmt.Sprintf("/auth/users/%d", users[0].ID), admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUnknownRoute(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/nope", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, decodeEnvelope(t, rec).Success)
}
