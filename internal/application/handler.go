// AngelaMos | 2026
// handler.go

package application

import (
	"encoding/json"
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
	r.Route("/applications", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/mine", h.ListMine)
		r.Get("/received", h.ListReceived)
		r.Get("/{applicationID}", h.Get)
		r.Patch("/{applicationID}/status", h.UpdateStatus)
	})

	r.With(authenticator).
		Post("/properties/{propertyID}/applications", h.Create)
}

func actorFrom(r *http.Request) policy.Actor {
	return policy.Actor{
		ID:   middleware.GetUserID(r.Context()),
		Role: middleware.GetUserRole(r.Context()),
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "propertyID")

	var req CreateApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	app, err := h.service.Create(r.Context(), actorFrom(r), propertyID, req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Created(w, ToApplicationResponse(app))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	applicationID := chi.URLParam(r, "applicationID")

	app, err := h.service.Get(r.Context(), actorFrom(r), applicationID)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToApplicationResponse(app))
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	applicationID := chi.URLParam(r, "applicationID")

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	app, err := h.service.UpdateStatus(
		r.Context(),
		actorFrom(r),
		applicationID,
		req.Status,
	)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToApplicationResponse(app))
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r)

	apps, total, err := h.service.ListMine(r.Context(), actorFrom(r), params)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Paginated(
		w,
		ToApplicationResponseList(apps),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) ListReceived(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r)

	apps, total, err := h.service.ListReceived(
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
		ToApplicationResponseList(apps),
		params.Page,
		params.PageSize,
		total,
	)
}

func parseListParams(r *http.Request) ListParams {
	params := ListParams{
		Page:       parseIntQuery(r, "page", 1),
		PageSize:   parseIntQuery(r, "page_size", 20),
		Status:     r.URL.Query().Get("status"),
		PropertyID: r.URL.Query().Get("property_id"),
	}
	params.Normalize()
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
