// AngelaMos | 2026
// handler.go

package chat

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
	r.Route("/conversations", func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/", h.Start)
		r.Get("/", h.List)
		r.Get("/{conversationID}/messages", h.ListMessages)
		r.Post("/{conversationID}/messages", h.SendMessage)
	})
}

func actorFrom(r *http.Request) policy.Actor {
	return policy.Actor{
		ID:   middleware.GetUserID(r.Context()),
		Role: middleware.GetUserRole(r.Context()),
	}
}

func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	var req StartConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	actor := actorFrom(r)

	c, err := h.service.StartConversation(r.Context(), actor, req.PropertyID)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToConversationResponse(c, actor.ID))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r)
	actor := actorFrom(r)

	conversations, total, err := h.service.ListConversations(
		r.Context(),
		actor,
		params,
	)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Paginated(
		w,
		ToConversationResponseList(conversations, actor.ID),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")
	params := parseListParams(r)

	messages, total, err := h.service.ListMessages(
		r.Context(),
		actorFrom(r),
		conversationID,
		params,
	)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Paginated(
		w,
		ToMessageResponseList(messages),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	m, err := h.service.SendMessage(
		r.Context(),
		actorFrom(r),
		conversationID,
		req,
	)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Created(w, ToMessageResponse(m))
}

func parseListParams(r *http.Request) ListParams {
	params := ListParams{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", 50),
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
