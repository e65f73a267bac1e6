// AngelaMos | 2026
// handler.go

package category

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/carterperez-dev/templates/inventory-api/internal/core"
	"github.com/carterperez-dev/templates/inventory-api/internal/middleware"
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
	r.Group(func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/categories", h.Create)
		r.Get("/categories", h.List)
		r.Get("/categories/{id}", h.Get)
		r.Put("/categories/{id}", h.Update)
		r.Delete("/categories/{id}", h.Delete)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req CreateCategoryRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	if err := core.Validate(req); err != nil {
		core.JSONError(w, err)
		return
	}

	category, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		writeError(w, err)
		return
	}

	core.Created(w, "Category created successfully.", core.Fields{
		"category": ToCategoryResponse(category),
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	categories, err := h.service.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, core.Fields{"categories": ToCategoryResponses(categories)})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	category, err := h.service.Get(r.Context(), userID, id)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, core.Fields{"category": ToCategoryResponse(category)})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req UpdateCategoryRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	if err := core.Validate(req); err != nil {
		core.JSONError(w, err)
		return
	}

	category, err := h.service.Update(r.Context(), userID, id, req)
	if err != nil {
		writeError(w, err)
		return
	}

	core.Success(w, http.StatusOK, "Category updated successfully.", core.Fields{
		"category": ToCategoryResponse(category),
	})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		writeError(w, err)
		return
	}

	core.Message(w, "Category deleted successfully.")
}

// pathID treats an unparseable id like a missing category.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		core.NotFound(w, msgCategoryNotFound)
		return uuid.Nil, false
	}
	return id, true
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, core.ErrUnauthorized) && !core.IsAppError(err) {
		core.Unauthorized(w, "")
		return
	}
	core.JSONError(w, err)
}
