// AngelaMos | 2026
// handler.go

package agreement

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
	r.Route("/agreements", func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/", h.Create)
		r.Get("/", h.ListMine)
		r.Get("/{agreementID}", h.Get)
		r.Post("/{agreementID}/sign", h.Sign)
		r.Patch("/{agreementID}/status", h.UpdateStatus)
	})
}

func actorFrom(r *http.Request) policy.Actor {
	return policy.Actor{
		ID:   middleware.GetUserID(r.Context()),
		Role: middleware.GetUserRole(r.Context()),
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAgreementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	a, err := h.service.Create(r.Context(), actorFrom(r), req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Created(w, ToAgreementResponse(a))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	agreementID := chi.URLParam(r, "agreementID")

	a, err := h.service.Get(r.Context(), actorFrom(r), agreementID)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToAgreementResponse(a))
}

func (h *Handler) Sign(w http.ResponseWriter, r *http.Request) {
	agreementID := chi.URLParam(r, "agreementID")

	a, err := h.service.Sign(r.Context(), actorFrom(r), agreementID)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToAgreementResponse(a))
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	agreementID := chi.URLParam(r, "agreementID")

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	a, err := h.service.UpdateStatus(
		r.Context(),
		actorFrom(r),
		agreementID,
		req.Status,
	)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToAgreementResponse(a))
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	params := ListParams{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", 20),
		Status:   r.URL.Query().Get("status"),
	}
	params.Normalize()

	agreements, total, err := h.service.ListMine(
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
		ToAgreementResponseList(agreements),
		params.Page,
		params.PageSize,
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
