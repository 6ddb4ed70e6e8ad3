// Package handler exposes the REST surface. Routing is chi; reads go
// through the response cache middleware, writes require an editor or
// admin token and invalidate the cache via the service layer.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/asaskevich/govalidator"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"angodata/internal/audit"
	"angodata/internal/auth"
	"angodata/internal/geo/service"
	"angodata/internal/geo/store"
	"angodata/internal/jwttoken"
	"angodata/internal/platform/cache"
	derrors "angodata/pkg/domain-errors"
	"angodata/pkg/pagination"
	"angodata/pkg/platform/httputil"
	authmw "angodata/pkg/platform/middleware/auth"
)

// Deps is everything the router needs.
type Deps struct {
	Services *service.Services
	Auth     *auth.Service
	Tokens   *jwttoken.Service
	Audit    *audit.Service
	Cache    *cache.ResponseCache
	Logger   *slog.Logger
	// StorageBackend and CacheBackend name the concrete implementations
	// selected at startup, surfaced by /health.
	StorageBackend string
	CacheBackend   string
}

// NewRouter assembles the full route tree.
func NewRouter(d Deps) chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger(d.Logger))
	r.Use(chimw.Recoverer)

	requireEditor := []func(http.Handler) http.Handler{
		authmw.RequireAuth(d.Tokens),
		authmw.RequireRole(string(auth.RoleEditor), string(auth.RoleAdmin)),
	}

	r.Get("/", indexHandler)
	r.Get("/health", healthHandler(d))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	mountProvinces(r, d, requireEditor)
	mountMunicipalities(r, d, requireEditor)
	mountSchools(r, d, requireEditor)
	mountMarkets(r, d, requireEditor)
	mountHospitals(r, d, requireEditor)

	auth.MountRoutes(r, d.Auth, d.Tokens)

	r.With(authmw.RequireAuth(d.Tokens), authmw.RequireAdmin()).
		Get("/audit/logs", auditLogsHandler(d.Audit))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteError(w, derrors.New(derrors.CodeNotFound, "route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteError(w, derrors.New(derrors.CodeBadRequest, "method not allowed"))
	})

	return r
}

func indexHandler(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteData(w, http.StatusOK, map[string]any{
		"name":    "AngoData API",
		"version": "1.0",
		"entities": []string{
			"provinces", "municipalities", "schools", "markets", "hospitals",
		},
	})
}

func healthHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteData(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"storage": d.StorageBackend,
			"cache":   d.CacheBackend,
		})
	}
}

func auditLogsHandler(svc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		events, err := svc.List(r.Context(), audit.Filter{
			Limit:        limit,
			Action:       r.URL.Query().Get("action"),
			ResourceType: r.URL.Query().Get("resource_type"),
		})
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		httputil.WriteData(w, http.StatusOK, events)
	}
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.InfoContext(r.Context(), "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"request_id", chimw.GetReqID(r.Context()))
		})
	}
}

// listOptions builds the uniform listing contract from query parameters.
func listOptions(r *http.Request) store.ListOptions {
	return store.ListOptions{
		Page:   pagination.ParamsFromRequest(r),
		Sort:   pagination.SortFromRequest(r),
		Search: pagination.SearchFromRequest(r),
		All:    pagination.Unpaginated(r),
	}
}

// writeList writes either a paginated envelope or, for paginate=false, a
// plain data envelope with no pagination block.
func writeList(w http.ResponseWriter, opts store.ListOptions, data any, total int) {
	if opts.All {
		httputil.WriteData(w, http.StatusOK, data)
		return
	}
	httputil.WritePage(w, data, pagination.NewMeta(opts.Page, total))
}

// pathID parses the {id} route parameter.
func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, derrors.Newf(derrors.CodeBadRequest, "invalid id %q", raw)
	}
	return id, nil
}

// decode reads a JSON body into dst and runs its govalidator tags.
func decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return derrors.New(derrors.CodeBadRequest, "empty request body")
		}
		return derrors.Wrap(err, derrors.CodeBadRequest, "malformed JSON body")
	}
	if _, err := govalidator.ValidateStruct(dst); err != nil {
		return derrors.New(derrors.CodeValidation, "invalid request").
			WithFields(fieldErrors(err))
	}
	return nil
}

func fieldErrors(err error) map[string]string {
	fields := map[string]string{}
	var addAll func(error)
	addAll = func(err error) {
		switch e := err.(type) {
		case govalidator.Errors:
			for _, inner := range e.Errors() {
				addAll(inner)
			}
		case govalidator.Error:
			fields[e.Name] = e.Err.Error()
		default:
			fields["_"] = err.Error()
		}
	}
	addAll(err)
	return fields
}
