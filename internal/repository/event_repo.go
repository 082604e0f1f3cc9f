package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"pet_discovery/internal/models"

	"github.com/google/uuid"
)

type EventSQLite struct {
	db *sql.DB
}

func NewEventSQLite(db *sql.DB) *EventSQLite { return &EventSQLite{db: db} }

var _ EventRepo = (*EventSQLite)(nil)

const (
	insertEventSQL = `
		INSERT INTO selection_events (id, occurred_at, session_id, type, origin, company_id, meta)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	selectEventsSQL = `SELECT id, occurred_at, session_id, type, origin, company_id, meta FROM selection_events`
)

// Append inserts a new event. If EventID or OccurredAt are empty, they’re set.
func (r *EventSQLite) Append(ctx context.Context, e models.SelectionEvent) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	} else {
		e.OccurredAt = e.OccurredAt.UTC()
	}

	var metaPtr *string
	if e.Metadata != nil {
		if b, err := json.Marshal(e.Metadata); err == nil {
			s := string(b)
			metaPtr = &s
		}
	}

	var companyID *int
	if e.CompanyID != 0 {
		companyID = &e.CompanyID
	}

	_, err := r.db.ExecContext(ctx, insertEventSQL,
		e.EventID,
		e.OccurredAt,
		e.SessionID,
		strings.ToUpper(strings.TrimSpace(e.Type)),
		e.Origin,
		companyID,
		metaPtr,
	)
	return err
}

// List returns events filtered by [From, To] (inclusive), type and session, ordered ASC.
func (r *EventSQLite) List(ctx context.Context, f EventFilter) ([]models.SelectionEvent, error) {
	var (
		conds []string
		args  []any
	)

	if !f.From.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, f.From.UTC())
	}
	if !f.To.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, f.To.UTC())
	}
	if typ := strings.ToUpper(strings.TrimSpace(f.Type)); typ != "" {
		conds = append(conds, "type = ?")
		args = append(args, typ)
	}
	if sid := strings.TrimSpace(f.SessionID); sid != "" {
		conds = append(conds, "session_id = ?")
		args = append(args, sid)
	}

	q := selectEventsSQL
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY occurred_at ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.SelectionEvent, 0, 64)
	for rows.Next() {
		var (
			ev        models.SelectionEvent
			companyID sql.NullInt64
			metaStr   sql.NullString
		)
		if err := rows.Scan(&ev.EventID, &ev.OccurredAt, &ev.SessionID, &ev.Type, &ev.Origin, &companyID, &metaStr); err != nil {
			return nil, err
		}
		ev.OccurredAt = ev.OccurredAt.UTC()
		if companyID.Valid {
			ev.CompanyID = int(companyID.Int64)
		}

		if metaStr.Valid && metaStr.String != "" {
			var v any
			if err := json.Unmarshal([]byte(metaStr.String), &v); err == nil {
				ev.Metadata = v
			} else {
				ev.Metadata = metaStr.String // keep raw if malformed
			}
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
