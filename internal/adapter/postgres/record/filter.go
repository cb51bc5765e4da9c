package record

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	postgres "github.com/taxnation/crm-backend/internal/adapter/postgres"
	"github.com/taxnation/crm-backend/internal/domain"
)

// statusField and paymentMethodField are the jsonb keys the status and
// payment-method filters match against.
const (
	statusField        = "status"
	paymentMethodField = "payment_method"
)

// List returns one page of records matching the scope and filter, together
// with the total count across all pages. The filter must already be
// normalized by the caller.
func (r *Repo) List(ctx context.Context, meta domain.ResourceMeta, scope domain.ListScope, f domain.ListFilter) (domain.RecordPage, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	where := buildConditions(meta, scope, f)

	countSQL, countArgs, err := sq.Select("count(*)").
		From("records").
		Where(where).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return domain.RecordPage{}, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return domain.RecordPage{}, fmt.Errorf("count records: %w", err)
	}

	listSQL, listArgs, err := sq.Select(
		"id", "resource_type", "owner_id", "owner_label", "state", "fields",
		"created_at", "updated_at", "deleted_at", "deleted_by",
	).
		From("records").
		Where(where).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset())).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return domain.RecordPage{}, fmt.Errorf("build list query: %w", err)
	}

	rows, err := q.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return domain.RecordPage{}, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	items := make([]*domain.Record, 0, f.Limit)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return domain.RecordPage{}, fmt.Errorf("scan record: %w", err)
		}
		items = append(items, rec)
	}
	if err := rows.Err(); err != nil {
		return domain.RecordPage{}, fmt.Errorf("iterate records: %w", err)
	}

	return domain.NewRecordPage(items, total, f.Page, f.Limit), nil
}

// buildConditions assembles the WHERE clause shared by the count and list
// queries. Scope and state always apply; everything else is optional.
func buildConditions(meta domain.ResourceMeta, scope domain.ListScope, f domain.ListFilter) sq.And {
	state := domain.RecordStateActive
	if f.Trash {
		state = domain.RecordStateTrashed
	}

	cond := sq.And{
		sq.Eq{"resource_type": string(meta.Type)},
		sq.Eq{"state": string(state)},
	}

	if scope.OwnerID != nil {
		cond = append(cond, sq.Eq{"owner_id": *scope.OwnerID})
	}
	if f.Status != nil {
		cond = append(cond, sq.Eq{jsonbText(statusField): *f.Status})
	}
	if f.PaymentMethod != nil {
		cond = append(cond, sq.Eq{jsonbText(paymentMethodField): *f.PaymentMethod})
	}
	if f.Search != nil && *f.Search != "" && len(meta.SearchableFields) > 0 {
		pattern := "%" + *f.Search + "%"
		search := make(sq.Or, 0, len(meta.SearchableFields))
		for _, field := range meta.SearchableFields {
			search = append(search, sq.ILike{jsonbText(field): pattern})
		}
		cond = append(cond, search)
	}
	if f.StartDate != nil {
		cond = append(cond, sq.GtOrEq{"created_at": *f.StartDate})
	}
	if f.EndDate != nil {
		cond = append(cond, sq.LtOrEq{"created_at": endOfDay(*f.EndDate)})
	}

	return cond
}

// jsonbText renders a jsonb key as text for comparison. Field names come
// from static resource metadata, never from request input.
func jsonbText(field string) string {
	return fmt.Sprintf("fields->>'%s'", field)
}

// endOfDay pushes a date-only bound to the last instant of its day so the
// range stays inclusive.
func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
