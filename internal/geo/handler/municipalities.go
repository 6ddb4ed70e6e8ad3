package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"angodata/internal/geo/models"
	"angodata/internal/geo/service"
	"angodata/pkg/platform/httputil"
)

type municipalityCreateRequest struct {
	Name       string   `json:"nome" valid:"required"`
	ProvinceID int64    `json:"provincia_id" valid:"required"`
	AreaKm2    *float64 `json:"area_km2"`
	Population *int64   `json:"populacao"`
}

func (req municipalityCreateRequest) model() models.Municipality {
	return models.Municipality{
		Name:       req.Name,
		ProvinceID: req.ProvinceID,
		AreaKm2:    req.AreaKm2,
		Population: req.Population,
	}
}

type municipalityHandler struct {
	svc *service.MunicipalityService
}

func mountMunicipalities(r chi.Router, d Deps, editor []func(http.Handler) http.Handler) {
	h := &municipalityHandler{svc: d.Services.Municipalities}
	r.Route("/municipalities", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(d.Cache.Middleware("municipalities"))
			r.Get("/all", h.list)
			r.Get("/{id}", h.get)
			r.Get("/provincia/{id}", h.byProvince)
		})
		r.Group(func(r chi.Router) {
			r.Use(editor...)
			r.Post("/", h.create)
			r.Put("/{id}", h.update)
			r.Delete("/{id}", h.delete)
		})
	})
}

func (h *municipalityHandler) list(w http.ResponseWriter, r *http.Request) {
	opts := listOptions(r)
	items, total, err := h.svc.List(r.Context(), opts)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	writeList(w, opts, items, total)
}

func (h *municipalityHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	m, err := h.svc.Get(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, m)
}

func (h *municipalityHandler) byProvince(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	ms, province, err := h.svc.GetByProvince(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, map[string]any{
		"provincia":  province.Name,
		"municipios": ms,
		"total":      len(ms),
	})
}

func (h *municipalityHandler) create(w http.ResponseWriter, r *http.Request) {
	var req municipalityCreateRequest
	if err := decode(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	m, err := h.svc.Create(r.Context(), req.model())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteData(w, http.StatusCreated, m)
}

func (h *municipalityHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var patch service.MunicipalityUpdate
	if err := decode(r, &patch); err != nil {
		httputil.WriteError(w, err)
		return
	}
	m, err := h.svc.Update(r.Context(), id, patch)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, m)
}

func (h *municipalityHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "municipality deleted")
}
