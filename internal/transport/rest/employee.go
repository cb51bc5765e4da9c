package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/taxnation/crm-backend/internal/domain"
)

// employeeService adds approval on top of the lifecycle surface.
type employeeService interface {
	lifecycleService
	Approve(ctx context.Context, id uuid.UUID) (*domain.Record, error)
}

// EmployeeHandler serves employee endpoints: the shared lifecycle routes
// plus the approve operation.
type EmployeeHandler struct {
	*RecordHandler
	svc employeeService
}

// NewEmployeeHandler creates an EmployeeHandler.
func NewEmployeeHandler(svc employeeService, logger *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		RecordHandler: NewRecordHandler(svc, "employee", logger),
		svc:           svc,
	}
}

// Routes mounts the employee endpoints on a chi router.
func (h *EmployeeHandler) Routes(r chi.Router) {
	h.RecordHandler.Routes(r)
	r.Post("/{id}/approve", h.Approve)
}

// Approve handles POST /employees/{id}/approve.
func (h *EmployeeHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	rec, err := h.svc.Approve(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toRecordResponse(rec))
}
