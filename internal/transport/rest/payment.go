package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/taxnation/crm-backend/internal/domain"
	"github.com/taxnation/crm-backend/internal/service/payment"
)

// paymentService adds gateway link creation and status updates on top of the
// lifecycle surface.
type paymentService interface {
	lifecycleService
	CreateLink(ctx context.Context, in payment.CreateLinkInput) (*domain.Record, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*domain.Record, error)
}

// PaymentHandler serves payment link endpoints.
type PaymentHandler struct {
	*RecordHandler
	svc paymentService
}

// NewPaymentHandler creates a PaymentHandler.
func NewPaymentHandler(svc paymentService, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{
		RecordHandler: NewRecordHandler(svc, "payment", logger),
		svc:           svc,
	}
}

// Routes mounts the payment endpoints. Creation goes through the gateway, so
// POST / is the link flow rather than the generic record create.
func (h *PaymentHandler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.CreateLink)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}", h.Update)
	r.Post("/{id}/status", h.UpdateStatus)
	r.Delete("/{id}", h.Trash)
	r.Post("/{id}/restore", h.Restore)
	r.Delete("/{id}/purge", h.Purge)
}

type createLinkRequest struct {
	CustomerName string  `json:"customerName"`
	Contact      string  `json:"contact"`
	Amount       float64 `json:"amount"`
	Description  string  `json:"description,omitempty"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// CreateLink handles POST /payments.
func (h *PaymentHandler) CreateLink(w http.ResponseWriter, r *http.Request) {
	var req createLinkRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.svc.CreateLink(r.Context(), payment.CreateLinkInput{
		CustomerName: req.CustomerName,
		Contact:      req.Contact,
		Amount:       req.Amount,
		Description:  req.Description,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRecordResponse(rec))
}

// UpdateStatus handles POST /payments/{id}/status.
func (h *PaymentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.svc.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toRecordResponse(rec))
}
