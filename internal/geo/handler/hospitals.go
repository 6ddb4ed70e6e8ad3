package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"angodata/internal/geo/models"
	"angodata/internal/geo/service"
	"angodata/pkg/platform/httputil"
)

type hospitalCreateRequest struct {
	Name             string              `json:"nome" valid:"required"`
	Type             models.HospitalType `json:"tipo" valid:"required"`
	Category         string              `json:"categoria"`
	ProvinceID       int64               `json:"provincia_id" valid:"required"`
	MunicipalityName string              `json:"municipio"`
	Address          string              `json:"endereco"`
}

func (req hospitalCreateRequest) model() models.Hospital {
	return models.Hospital{
		Name:             req.Name,
		Type:             req.Type,
		Category:         req.Category,
		ProvinceID:       req.ProvinceID,
		MunicipalityName: req.MunicipalityName,
		Address:          req.Address,
	}
}

type hospitalHandler struct {
	svc *service.HospitalService
}

func mountHospitals(r chi.Router, d Deps, editor []func(http.Handler) http.Handler) {
	h := &hospitalHandler{svc: d.Services.Hospitals}
	r.Route("/hospitals", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(d.Cache.Middleware("hospitals"))
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

func (h *hospitalHandler) list(w http.ResponseWriter, r *http.Request) {
	opts := listOptions(r)
	items, total, err := h.svc.List(r.Context(), opts)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	writeList(w, opts, items, total)
}

func (h *hospitalHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	hp, err := h.svc.Get(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, hp)
}

func (h *hospitalHandler) byProvince(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	hospitals, err := h.svc.GetByProvince(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, map[string]any{
		"hospitais": hospitals,
		"total":     len(hospitals),
	})
}

func (h *hospitalHandler) create(w http.ResponseWriter, r *http.Request) {
	var req hospitalCreateRequest
	if err := decode(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	hp, err := h.svc.Create(r.Context(), req.model())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteData(w, http.StatusCreated, hp)
}

func (h *hospitalHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var patch service.HospitalUpdate
	if err := decode(r, &patch); err != nil {
		httputil.WriteError(w, err)
		return
	}
	hp, err := h.svc.Update(r.Context(), id, patch)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, hp)
}

func (h *hospitalHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "hospital deleted")
}
