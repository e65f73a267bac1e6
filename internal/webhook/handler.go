// AngelaMos | 2026
// handler.go

package webhook

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/templates/inventory-api/internal/core"
)

const maxPayloadBytes = 5 << 20

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/webhook/github", h.GitHub)
}

func (h *Handler) GitHub(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPayloadBytes))
	if err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	outcome, err := h.service.Handle(
		r.Context(),
		payload,
		r.Header.Get(SignatureHeader),
		r.Header.Get(DeliveryHeader),
	)

	switch {
	case errors.Is(err, ErrInvalidSignature):
		core.Forbidden(w, "GitHub webhook signature verification failed.")
	case errors.Is(err, ErrBranchMismatch):
		core.Forbidden(w, "Pushed branch is not the target branch")
	case errors.Is(err, ErrInvalidPayload):
		core.BadRequest(w, "invalid request body")
	case err != nil:
		core.InternalServerError(w, err)
	case outcome == OutcomeDuplicate:
		core.Message(w, "Delivery already processed.")
	default:
		core.Message(w, "Deploy triggered successfully.")
	}
}
