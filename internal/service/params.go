package service

import "time"

// LogFilter supports selection log filtering by time range, type and session.
type LogFilter struct {
	From      time.Time // inclusive; zero means no lower bound
	To        time.Time // inclusive; zero means no upper bound
	Type      string    // "", "SELECT", "CLEAR", "SELECT_MISS"
	SessionID string
}
