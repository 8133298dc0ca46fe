// AngelaMos | 2026
// handler.go

package favorite

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rentloop/rentloop-api/internal/core"
	"github.com/rentloop/rentloop-api/internal/middleware"
	"github.com/rentloop/rentloop-api/internal/policy"
	"github.com/rentloop/rentloop-api/internal/property"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/favorites", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.ListMine)
		r.Post("/{propertyID}", h.Add)
		r.Delete("/{propertyID}", h.Remove)
	})
}

func actorFrom(r *http.Request) policy.Actor {
	return policy.Actor{
		ID:   middleware.GetUserID(r.Context()),
		Role: middleware.GetUserRole(r.Context()),
	}
}

func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "propertyID")

	fav, err := h.service.Add(r.Context(), actorFrom(r), propertyID)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Created(w, fav)
}

func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "propertyID")

	if err := h.service.Remove(r.Context(), actorFrom(r), propertyID); err != nil {
		core.JSONError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	page := parseIntQuery(r, "page", 1)
	pageSize := parseIntQuery(r, "page_size", 20)

	properties, total, err := h.service.ListMine(
		r.Context(),
		actorFrom(r),
		page,
		pageSize,
	)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Paginated(
		w,
		property.ToPropertyResponseList(properties),
		page,
		pageSize,
		total,
	)
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
