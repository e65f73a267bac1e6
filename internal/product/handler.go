// AngelaMos | 2026
// handler.go

package product

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

// RegisterRoutes mounts the product routes. The category-scoped listing
// shares the {id} parameter name with the category routes.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/products", h.Create)
		r.Get("/products", h.List)
		r.Get("/products/{id}", h.Get)
		r.Put("/products/{id}", h.Update)
		r.Delete("/products/{id}", h.Delete)
		r.Get("/categories/{id}/products", h.ListByCategory)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req CreateProductRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	if err := core.Validate(req); err != nil {
		core.JSONError(w, err)
		return
	}

	product, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusCreated, core.Fields{
		"message": "Product added successfully.",
		"product": ToProductResponse(product),
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	products, err := h.service.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, core.Fields{"products": ToProductSummaries(products)})
}

func (h *Handler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	categoryID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		core.Forbidden(w, msgViewInCategory)
		return
	}

	products, err := h.service.ListByCategory(r.Context(), userID, categoryID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, core.Fields{"products": ToProductSummaries(products)})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	product, err := h.service.Get(r.Context(), userID, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, core.Fields{"product": ToProductResponse(product)})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	if err := core.Validate(req); err != nil {
		core.JSONError(w, err)
		return
	}

	product, err := h.service.Update(r.Context(), userID, id, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, core.Fields{
		"message": "Product updated successfully.",
		"product": ToProductResponse(product),
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

	writeData(w, http.StatusOK, core.Fields{"message": "Product deleted successfully."})
}

// writeData nests the payload under "data", the product envelope shape.
func writeData(w http.ResponseWriter, status int, data core.Fields) {
	core.Success(w, status, "", core.Fields{"data": data})
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		core.NotFound(w, msgProductNotFound)
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
