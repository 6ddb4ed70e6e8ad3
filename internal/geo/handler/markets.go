package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"angodata/internal/geo/models"
	"angodata/internal/geo/service"
	"angodata/pkg/platform/httputil"
)

type marketCreateRequest struct {
	Name             string            `json:"nome" valid:"required"`
	Type             models.MarketType `json:"tipo" valid:"required"`
	ProvinceID       int64             `json:"provincia_id" valid:"required"`
	MunicipalityName string            `json:"municipio"`
	Specialty        string            `json:"especialidade"`
}

func (req marketCreateRequest) model() models.Market {
	return models.Market{
		Name:             req.Name,
		Type:             req.Type,
		ProvinceID:       req.ProvinceID,
		MunicipalityName: req.MunicipalityName,
		Specialty:        req.Specialty,
	}
}

type marketHandler struct {
	svc *service.MarketService
}

func mountMarkets(r chi.Router, d Deps, editor []func(http.Handler) http.Handler) {
	h := &marketHandler{svc: d.Services.Markets}
	r.Route("/markets", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(d.Cache.Middleware("markets"))
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

func (h *marketHandler) list(w http.ResponseWriter, r *http.Request) {
	opts := listOptions(r)
	items, total, err := h.svc.List(r.Context(), opts)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	writeList(w, opts, items, total)
}

func (h *marketHandler) get(w http.ResponseWriter, r *http.Request) {
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

func (h *marketHandler) byProvince(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	markets, err := h.svc.GetByProvince(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, map[string]any{
		"mercados": markets,
		"total":    len(markets),
	})
}

func (h *marketHandler) create(w http.ResponseWriter, r *http.Request) {
	var req marketCreateRequest
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

func (h *marketHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var patch service.MarketUpdate
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

func (h *marketHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "market deleted")
}
