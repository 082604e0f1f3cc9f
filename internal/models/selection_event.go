package models

import "time"

// Selection event types.
const (
	EventSelect     = "SELECT"
	EventClear      = "CLEAR"
	EventSelectMiss = "SELECT_MISS"
)

// SelectionEvent is a single entry of the selection log.
type SelectionEvent struct {
	EventID    string    `json:"event_id"`
	OccurredAt time.Time `json:"occurred_at"`
	SessionID  string    `json:"session_id"`
	Type       string    `json:"type"`   // SELECT | CLEAR | SELECT_MISS
	Origin     string    `json:"origin"` // list | map | panel
	CompanyID  int       `json:"company_id,omitempty"`
	Metadata   any       `json:"metadata,omitempty"`
}
