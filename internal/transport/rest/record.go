package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/taxnation/crm-backend/internal/domain"
)

// lifecycleService is the engine surface every resource handler needs. The
// per-resource services (booking, lead, invoice, employee, payment) all embed
// the engine and satisfy it.
type lifecycleService interface {
	Create(ctx context.Context, fields domain.FieldMap) (*domain.Record, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Record, error)
	List(ctx context.Context, f domain.ListFilter) (domain.RecordPage, error)
	Update(ctx context.Context, id uuid.UUID, fields domain.FieldMap, note string) (*domain.Record, error)
	Trash(ctx context.Context, id uuid.UUID) (*domain.Record, error)
	Restore(ctx context.Context, id uuid.UUID) (*domain.Record, error)
	Purge(ctx context.Context, id uuid.UUID) error
}

// RecordHandler serves the lifecycle REST endpoints for one resource type.
type RecordHandler struct {
	svc lifecycleService
	log *slog.Logger
}

// NewRecordHandler creates a handler for one resource's lifecycle routes.
func NewRecordHandler(svc lifecycleService, resource string, logger *slog.Logger) *RecordHandler {
	return &RecordHandler{
		svc: svc,
		log: logger.With("handler", resource),
	}
}

// Routes mounts the lifecycle endpoints on a chi router.
func (h *RecordHandler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}", h.Update)
	r.Delete("/{id}", h.Trash)
	r.Post("/{id}/restore", h.Restore)
	r.Delete("/{id}/purge", h.Purge)
}

type recordResponse struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	OwnerID    string          `json:"ownerId"`
	OwnerLabel string          `json:"ownerLabel"`
	State      string          `json:"state"`
	Fields     domain.FieldMap `json:"fields"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
	DeletedAt  *time.Time      `json:"deletedAt,omitempty"`
	History    []auditResponse `json:"history,omitempty"`
}

type auditResponse struct {
	ID         string         `json:"id"`
	ActorID    string         `json:"actorId"`
	ActorLabel string         `json:"actorLabel"`
	Note       string         `json:"note,omitempty"`
	Changes    domain.Changes `json:"changes"`
	CreatedAt  time.Time      `json:"createdAt"`
}

type pageResponse struct {
	Items       []recordResponse `json:"items"`
	TotalCount  int              `json:"totalCount"`
	TotalPages  int              `json:"totalPages"`
	CurrentPage int              `json:"currentPage"`
}

func toRecordResponse(rec *domain.Record) recordResponse {
	resp := recordResponse{
		ID:         rec.ID.String(),
		Type:       string(rec.Type),
		OwnerID:    rec.OwnerID.String(),
		OwnerLabel: rec.OwnerLabel,
		State:      string(rec.State),
		Fields:     rec.Fields,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
		DeletedAt:  rec.DeletedAt,
	}
	for _, e := range rec.History {
		resp.History = append(resp.History, auditResponse{
			ID:         e.ID.String(),
			ActorID:    e.ActorID.String(),
			ActorLabel: e.ActorLabel,
			Note:       e.Note,
			Changes:    e.Changes,
			CreatedAt:  e.CreatedAt,
		})
	}
	return resp
}

func toPageResponse(page domain.RecordPage) pageResponse {
	items := make([]recordResponse, 0, len(page.Items))
	for _, rec := range page.Items {
		items = append(items, toRecordResponse(rec))
	}
	return pageResponse{
		Items:       items,
		TotalCount:  page.TotalCount,
		TotalPages:  page.TotalPages,
		CurrentPage: page.CurrentPage,
	}
}

type mutateRequest struct {
	Fields domain.FieldMap `json:"fields"`
	Note   string          `json:"note,omitempty"`
}

// Create handles POST /{resource}.
func (h *RecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req mutateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.svc.Create(r.Context(), req.Fields)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRecordResponse(rec))
}

// Get handles GET /{resource}/{id}; the response carries the full history.
func (h *RecordHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	rec, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toRecordResponse(rec))
}

// List handles GET /{resource} with the filter query parameters.
func (h *RecordHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListFilter(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	page, err := h.svc.List(r.Context(), filter)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toPageResponse(page))
}

// Update handles PATCH /{resource}/{id}.
func (h *RecordHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req mutateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.svc.Update(r.Context(), id, req.Fields, req.Note)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toRecordResponse(rec))
}

// Trash handles DELETE /{resource}/{id} (soft delete).
func (h *RecordHandler) Trash(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	rec, err := h.svc.Trash(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toRecordResponse(rec))
}

// Restore handles POST /{resource}/{id}/restore.
func (h *RecordHandler) Restore(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	rec, err := h.svc.Restore(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toRecordResponse(rec))
}

// Purge handles DELETE /{resource}/{id}/purge (permanent).
func (h *RecordHandler) Purge(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Purge(r.Context(), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pathID parses the {id} route parameter, answering 404 on garbage: an
// unparseable id can never name an existing record.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return uuid.Nil, false
	}
	return id, true
}

// parseListFilter reads the listing query parameters. Unknown status values
// and inverted date ranges are rejected by the service, not here.
func parseListFilter(r *http.Request) (domain.ListFilter, error) {
	q := r.URL.Query()
	var f domain.ListFilter

	f.Trash = q.Get("trash") == "true"
	if v := q.Get("status"); v != "" {
		f.Status = &v
	}
	if v := q.Get("payment_method"); v != "" {
		f.PaymentMethod = &v
	}
	if v := q.Get("search"); v != "" {
		f.Search = &v
	}
	if v := q.Get("start_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, domain.NewValidationError("start_date", "must be YYYY-MM-DD")
		}
		f.StartDate = &t
	}
	if v := q.Get("end_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, domain.NewValidationError("end_date", "must be YYYY-MM-DD")
		}
		f.EndDate = &t
	}
	if v := q.Get("page"); v != "" {
		f.Page, _ = strconv.Atoi(v)
	}
	if v := q.Get("limit"); v != "" {
		f.Limit, _ = strconv.Atoi(v)
	}
	return f, nil
}
