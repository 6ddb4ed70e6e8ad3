package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"angodata/internal/geo/models"
	"angodata/internal/geo/service"
	"angodata/pkg/platform/httputil"
)

type provinceCreateRequest struct {
	Name       string  `json:"nome" valid:"required"`
	Capital    string  `json:"capital" valid:"required"`
	AreaKm2    float64 `json:"area_km2"`
	Population int64   `json:"populacao"`
}

func (req provinceCreateRequest) model() models.Province {
	return models.Province{
		Name:       req.Name,
		Capital:    req.Capital,
		AreaKm2:    req.AreaKm2,
		Population: req.Population,
	}
}

type provinceHandler struct {
	svc *service.ProvinceService
}

func mountProvinces(r chi.Router, d Deps, editor []func(http.Handler) http.Handler) {
	h := &provinceHandler{svc: d.Services.Provinces}
	r.Route("/provinces", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(d.Cache.Middleware("provinces"))
			r.Get("/all", h.list)
			r.Get("/{id}", h.get)
		})
		r.Group(func(r chi.Router) {
			r.Use(editor...)
			r.Post("/", h.create)
			r.Put("/{id}", h.update)
			r.Delete("/{id}", h.delete)
			r.Post("/bulk", h.bulkCreate)
			r.Put("/bulk", h.bulkUpdate)
			r.Delete("/bulk", h.bulkDelete)
		})
	})
}

func (h *provinceHandler) list(w http.ResponseWriter, r *http.Request) {
	opts := listOptions(r)
	items, total, err := h.svc.List(r.Context(), opts)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	writeList(w, opts, items, total)
}

func (h *provinceHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, p)
}

func (h *provinceHandler) create(w http.ResponseWriter, r *http.Request) {
	var req provinceCreateRequest
	if err := decode(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	p, err := h.svc.Create(r.Context(), req.model())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteData(w, http.StatusCreated, p)
}

func (h *provinceHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var patch service.ProvinceUpdate
	if err := decode(r, &patch); err != nil {
		httputil.WriteError(w, err)
		return
	}
	p, err := h.svc.Update(r.Context(), id, patch)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, p)
}

func (h *provinceHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "province deleted")
}

type bulkCreateRequest struct {
	Provinces []provinceCreateRequest `json:"provinces" valid:"required"`
}

func (h *provinceHandler) bulkCreate(w http.ResponseWriter, r *http.Request) {
	var req bulkCreateRequest
	if err := decode(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	items := make([]models.Province, len(req.Provinces))
	for i, p := range req.Provinces {
		items[i] = p.model()
	}
	res, err := h.svc.BulkCreate(r.Context(), items)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteData(w, http.StatusCreated, map[string]any{
		"created": res.Succeeded,
		"failed":  res.Failed,
		"data":    res.Data,
		"errors":  res.Errors,
	})
}

type bulkUpdateEntry struct {
	ID int64 `json:"id" valid:"required"`
	service.ProvinceUpdate
}

type bulkUpdateRequest struct {
	Provinces []bulkUpdateEntry `json:"provinces" valid:"required"`
}

func (h *provinceHandler) bulkUpdate(w http.ResponseWriter, r *http.Request) {
	var req bulkUpdateRequest
	if err := decode(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	items := make([]service.BulkUpdateItem, len(req.Provinces))
	for i, entry := range req.Provinces {
		items[i] = service.BulkUpdateItem{ID: entry.ID, Patch: entry.ProvinceUpdate}
	}
	res, err := h.svc.BulkUpdate(r.Context(), items)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, map[string]any{
		"updated": res.Succeeded,
		"failed":  res.Failed,
		"data":    res.Data,
		"errors":  res.Errors,
	})
}

type bulkDeleteRequest struct {
	IDs []int64 `json:"ids" valid:"required"`
}

func (h *provinceHandler) bulkDelete(w http.ResponseWriter, r *http.Request) {
	var req bulkDeleteRequest
	if err := decode(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	res, err := h.svc.BulkDelete(r.Context(), req.IDs)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, map[string]any{
		"deleted": res.Succeeded,
		"failed":  res.Failed,
		"errors":  res.Errors,
	})
}
