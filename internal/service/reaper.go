package service

import (
	"context"
	"time"
)

// ReaperService unmounts sessions that have seen no calls for longer than the idle limit.
type ReaperService struct {
	discovery *DiscoveryService
	idle      time.Duration
}

// NewReaperService returns a reaper; idle <= 0 disables it.
func NewReaperService(d *DiscoveryService, idle time.Duration) *ReaperService {
	return &ReaperService{discovery: d, idle: idle}
}

// Run sweeps at the given interval until ctx is canceled.
func (r *ReaperService) Run(ctx context.Context, tick time.Duration) {
	if r.idle <= 0 || tick <= 0 {
		return
	}
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			r.Sweep(ctx, now)
		}
	}
}

// Sweep unmounts every session idle at now and returns how many were removed.
func (r *ReaperService) Sweep(ctx context.Context, now time.Time) int {
	if r.idle <= 0 {
		return 0
	}
	var expired []string
	for _, sess := range r.discovery.snapshotSessions() {
		sess.mu.Lock()
		if !sess.closed && now.Sub(sess.touched) > r.idle {
			expired = append(expired, sess.id)
		}
		sess.mu.Unlock()
	}

	removed := 0
	for _, id := range expired {
		if err := r.discovery.Unmount(ctx, id); err == nil {
			removed++
			r.discovery.log.Infow("session_expired", "session_id", id, "idle", r.idle.String())
		}
	}
	return removed
}
