// AngelaMos | 2026
// handler.go

package review

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
	r.With(authenticator).Post("/reviews", h.Create)
	r.With(authenticator).Delete("/reviews/{reviewID}", h.Delete)

	r.Get("/properties/{propertyID}/reviews", h.ListForProperty)
	r.Get("/properties/{propertyID}/reviews/summary", h.PropertySummary)
	r.Get("/users/{userID}/reviews", h.ListForUser)
	r.Get("/users/{userID}/reviews/summary", h.UserSummary)
}

func actorFrom(r *http.Request) policy.Actor {
	return policy.Actor{
		ID:   middleware.GetUserID(r.Context()),
		Role: middleware.GetUserRole(r.Context()),
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	rev, err := h.service.Create(r.Context(), actorFrom(r), req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Created(w, rev)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	reviewID := chi.URLParam(r, "reviewID")

	if err := h.service.Delete(r.Context(), actorFrom(r), reviewID); err != nil {
		core.JSONError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) ListForProperty(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "propertyID")
	params := parseListParams(r)

	reviews, total, err := h.service.ListForProperty(
		r.Context(),
		propertyID,
		params,
	)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Paginated(w, reviews, params.Page, params.PageSize, total)
}

func (h *Handler) ListForUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	params := parseListParams(r)

	reviews, total, err := h.service.ListForUser(r.Context(), userID, params)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Paginated(w, reviews, params.Page, params.PageSize, total)
}

func (h *Handler) PropertySummary(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "propertyID")

	summary, err := h.service.PropertySummary(r.Context(), propertyID)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, summary)
}

func (h *Handler) UserSummary(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	summary, err := h.service.UserSummary(r.Context(), userID)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, summary)
}

func parseListParams(r *http.Request) ListParams {
	params := ListParams{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", 20),
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
