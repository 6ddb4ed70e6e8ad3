package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"angodata/internal/geo/models"
	"angodata/internal/geo/service"
	"angodata/pkg/platform/httputil"
)

type schoolCreateRequest struct {
	Name           string            `json:"nome" valid:"required"`
	Type           models.SchoolType `json:"tipo" valid:"required"`
	ProvinceID     int64             `json:"provincia_id"`
	MunicipalityID int64             `json:"municipio_id" valid:"required"`
	Address        string            `json:"endereco"`
}

func (req schoolCreateRequest) model() models.School {
	return models.School{
		Name:           req.Name,
		Type:           req.Type,
		ProvinceID:     req.ProvinceID,
		MunicipalityID: req.MunicipalityID,
		Address:        req.Address,
	}
}

type schoolHandler struct {
	svc *service.SchoolService
}

func mountSchools(r chi.Router, d Deps, editor []func(http.Handler) http.Handler) {
	h := &schoolHandler{svc: d.Services.Schools}
	r.Route("/schools", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(d.Cache.Middleware("schools"))
			r.Get("/all", h.list)
			r.Get("/{id}", h.get)
			r.Get("/provincia/{id}", h.byProvince)
			r.Get("/municipio/{id}", h.byMunicipality)
		})
		r.Group(func(r chi.Router) {
			r.Use(editor...)
			r.Post("/", h.create)
			r.Put("/{id}", h.update)
			r.Delete("/{id}", h.delete)
		})
	})
}

func (h *schoolHandler) list(w http.ResponseWriter, r *http.Request) {
	opts := listOptions(r)
	items, total, err := h.svc.List(r.Context(), opts)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	writeList(w, opts, items, total)
}

func (h *schoolHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	sc, err := h.svc.Get(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, sc)
}

func (h *schoolHandler) byProvince(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	schools, err := h.svc.GetByProvince(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, map[string]any{
		"escolas": schools,
		"total":   len(schools),
	})
}

func (h *schoolHandler) byMunicipality(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	schools, err := h.svc.GetByMunicipality(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, map[string]any{
		"escolas": schools,
		"total":   len(schools),
	})
}

func (h *schoolHandler) create(w http.ResponseWriter, r *http.Request) {
	var req schoolCreateRequest
	if err := decode(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	sc, err := h.svc.Create(r.Context(), req.model())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteData(w, http.StatusCreated, sc)
}

func (h *schoolHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var patch service.SchoolUpdate
	if err := decode(r, &patch); err != nil {
		httputil.WriteError(w, err)
		return
	}
	sc, err := h.svc.Update(r.Context(), id, patch)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, sc)
}

func (h *schoolHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "school deleted")
}
