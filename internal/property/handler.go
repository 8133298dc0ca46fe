// AngelaMos | 2026
// handler.go

package property

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/rentloop/rentloop-api/internal/core"
	"github.com/rentloop/rentloop-api/internal/middleware"
	"github.com/rentloop/rentloop-api/internal/policy"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	// Registered as flat paths so sibling packages can hang their own
	// routes off /properties/{propertyID}.
	r.Get("/properties", h.List)
	r.Get("/properties/{propertyID}", h.Get)

	r.Group(func(r chi.Router) {
		r.Use(authenticator)
		r.Use(middleware.RequireOwner)

		r.Post("/properties", h.Create)
		r.Get("/properties/mine", h.ListMine)
		r.Put("/properties/{propertyID}", h.Update)
		r.Patch("/properties/{propertyID}/status", h.UpdateStatus)
		r.Delete("/properties/{propertyID}", h.Delete)
	})
}

func actorFrom(r *http.Request) policy.Actor {
	return policy.Actor{
		ID:   middleware.GetUserID(r.Context()),
		Role: middleware.GetUserRole(r.Context()),
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	p, err := h.service.Create(r.Context(), actorFrom(r), req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Created(w, ToPropertyResponse(p))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "propertyID")

	p, err := h.service.Get(r.Context(), propertyID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "property")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToPropertyResponse(p))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r)

	properties, total, err := h.service.List(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		ToPropertyResponseList(properties),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r)
	params.Status = r.URL.Query().Get("status")

	properties, total, err := h.service.ListMine(
		r.Context(),
		actorFrom(r),
		params,
	)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Paginated(
		w,
		ToPropertyResponseList(properties),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "propertyID")

	var req UpdatePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	p, err := h.service.Update(r.Context(), actorFrom(r), propertyID, req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToPropertyResponse(p))
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "propertyID")

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	p, err := h.service.UpdateStatus(
		r.Context(),
		actorFrom(r),
		propertyID,
		req.Status,
	)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToPropertyResponse(p))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "propertyID")

	if err := h.service.Delete(r.Context(), actorFrom(r), propertyID); err != nil {
		core.JSONError(w, err)
		return
	}

	core.NoContent(w)
}

func parseListParams(r *http.Request) ListPropertiesParams {
	q := r.URL.Query()

	params := ListPropertiesParams{
		Page:         parseIntQuery(r, "page", 1),
		PageSize:     parseIntQuery(r, "page_size", 20),
		Query:        q.Get("q"),
		City:         q.Get("city"),
		PropertyType: q.Get("property_type"),
		Furnishing:   q.Get("furnishing"),
		BHK:          parseIntQuery(r, "bhk", 0),
		MinRent:      int64(parseIntQuery(r, "min_rent", 0)),
		MaxRent:      int64(parseIntQuery(r, "max_rent", 0)),
		Sort:         q.Get("sort"),
	}

	if pets := q.Get("pets_allowed"); pets != "" {
		if val, err := strconv.ParseBool(pets); err == nil {
			params.PetsAllowed = &val
		}
	}

	return params
}

func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}
