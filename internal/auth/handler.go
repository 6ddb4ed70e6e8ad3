package auth

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/asaskevich/govalidator"
	"github.com/go-chi/chi/v5"

	"angodata/internal/jwttoken"
	derrors "angodata/pkg/domain-errors"
	"angodata/pkg/platform/httputil"
	authmw "angodata/pkg/platform/middleware/auth"
)

type registerRequest struct {
	Username string `json:"username" valid:"required"`
	Email    string `json:"email" valid:"required,email"`
	Password string `json:"password" valid:"required"`
}

type loginRequest struct {
	Email    string `json:"email" valid:"required"`
	Password string `json:"password" valid:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" valid:"required"`
}

type adminCreateRequest struct {
	Username string `json:"username" valid:"required"`
	Email    string `json:"email" valid:"required,email"`
	Password string `json:"password" valid:"required"`
	Role     Role   `json:"role" valid:"required"`
}

// MountRoutes attaches /auth and the admin user-management surface.
func MountRoutes(r chi.Router, svc *Service, tokens *jwttoken.Service) {
	h := &handler{svc: svc}

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.register)
		r.Post("/login", h.login)
		r.Post("/refresh", h.refresh)
		r.With(authmw.RequireAuth(tokens)).Get("/me", h.me)

		r.Route("/users", func(r chi.Router) {
			r.Use(authmw.RequireAuth(tokens), authmw.RequireAdmin())
			r.Get("/", h.list)
			r.Post("/", h.adminCreate)
			r.Get("/{id}", h.get)
			r.Put("/{id}", h.update)
			r.Delete("/{id}", h.delete)
		})
	})
}

type handler struct {
	svc *Service
}

// Public registration always creates a plain user account; elevated roles
// are granted through the admin surface.
func (h *handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	user, err := h.svc.Register(r.Context(), req.Username, req.Email, req.Password, RoleUser)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteData(w, http.StatusCreated, user)
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	pair, user, err := h.svc.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, map[string]any{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"user":          user,
	})
}

func (h *handler) refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeBody(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	pair, err := h.svc.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, pair)
}

func (h *handler) me(w http.ResponseWriter, r *http.Request) {
	claims, ok := authmw.ClaimsFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, derrors.New(derrors.CodeUnauthorized, "authentication required"))
		return
	}
	id, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil {
		httputil.WriteError(w, derrors.New(derrors.CodeUnauthorized, "invalid token"))
		return
	}
	user, err := h.svc.Get(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, user)
}

func (h *handler) list(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.List(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, users)
}

func (h *handler) adminCreate(w http.ResponseWriter, r *http.Request) {
	var req adminCreateRequest
	if err := decodeBody(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	user, err := h.svc.Register(r.Context(), req.Username, req.Email, req.Password, req.Role)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteData(w, http.StatusCreated, user)
}

func (h *handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	user, err := h.svc.Get(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, user)
}

func (h *handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var patch UserUpdate
	if err := decodeBody(r, &patch); err != nil {
		httputil.WriteError(w, err)
		return
	}
	user, err := h.svc.Update(r.Context(), id, patch)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, user)
}

func (h *handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "user deleted")
}

func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, derrors.Newf(derrors.CodeBadRequest, "invalid id %q", raw)
	}
	return id, nil
}

func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return derrors.New(derrors.CodeBadRequest, "empty request body")
		}
		return derrors.Wrap(err, derrors.CodeBadRequest, "malformed JSON body")
	}
	if _, err := govalidator.ValidateStruct(dst); err != nil {
		fields := map[string]string{}
		collectFieldErrors(err, fields)
		return derrors.New(derrors.CodeValidation, "invalid request").WithFields(fields)
	}
	return nil
}

func collectFieldErrors(err error, fields map[string]string) {
	switch e := err.(type) {
	case govalidator.Errors:
		for _, inner := range e.Errors() {
			collectFieldErrors(inner, fields)
		}
	case govalidator.Error:
		fields[e.Name] = e.Err.Error()
	default:
		fields["_"] = err.Error()
	}
}
