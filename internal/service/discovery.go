package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"pet_discovery/internal/discovery"
	"pet_discovery/internal/logger"
	"pet_discovery/internal/mapengine"
	"pet_discovery/internal/metrics"
	"pet_discovery/internal/models"
	"pet_discovery/internal/repository"

	"github.com/google/uuid"
)

const defaultPageSize = 6

// ViewState is the output of one mounted view.
type ViewState struct {
	SessionID string `json:"session_id"`
	discovery.Snapshot
}

// Remote is a client-side map attached to a session. Triggered marker events are dispatched to
// it. Every filter, page or selection change is pushed to it together with the detail panel content.
type Remote interface {
	mapengine.Dispatcher
	Push(state ViewState, detail *discovery.Detail) error
}

type DiscoveryOptions struct {
	PageSize int
	Logger   *logger.Logger
	// Metrics builds the placeholder display metrics of a new session. Defaults to discovery.NewMockMetrics.
	Metrics func() discovery.PlaceholderMetrics
}

// DiscoveryService keeps one discovery.View per session. Calls on the same session are serialized;
// selection events are collected while the session is locked and persisted after it is released.
type DiscoveryService struct {
	companies  repository.CompanyRepo
	events     repository.EventRepo
	log        *logger.Logger
	pageSize   int
	newMetrics func() discovery.PlaceholderMetrics
	now        func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	mu          sync.Mutex
	id          string
	view        *discovery.View
	engine      *mapengine.Engine
	remote      Remote
	unsubscribe func()
	outbox      []models.SelectionEvent
	changed     bool
	closed      bool
	touched     time.Time
}

func NewDiscoveryService(companies repository.CompanyRepo, events repository.EventRepo, opts DiscoveryOptions) *DiscoveryService {
	if opts.PageSize < 1 {
		opts.PageSize = defaultPageSize
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}
	if opts.Metrics == nil {
		opts.Metrics = func() discovery.PlaceholderMetrics { return discovery.NewMockMetrics() }
	}
	return &DiscoveryService{
		companies:  companies,
		events:     events,
		log:        opts.Logger,
		pageSize:   opts.PageSize,
		newMetrics: opts.Metrics,
		now:        time.Now,
		sessions:   make(map[string]*session),
	}
}

// Mount fetches the company listing once and creates a view with default state.
// A failing repository yields an empty listing. pageSize 0 selects the configured default.
func (s *DiscoveryService) Mount(ctx context.Context, pageSize int) (ViewState, error) {
	if pageSize == 0 {
		pageSize = s.pageSize
	}

	companies, err := s.companies.List(ctx)
	if err != nil {
		s.log.Errorw("session_mount_failed", "error", err)
		companies = nil
	}

	engine := mapengine.New()
	view, err := discovery.NewView(companies, discovery.ViewConfig{
		PageSize: pageSize,
		Engine:   engine,
		Metrics:  s.newMetrics(),
	})
	if err != nil {
		return ViewState{}, err
	}

	sess := &session{
		id:      uuid.NewString(),
		view:    view,
		engine:  engine,
		touched: s.now(),
	}
	sess.unsubscribe = view.Subscribe(func(ch discovery.SelectionChange) { s.onChange(sess, ch) })
	view.OnMiss(func(m discovery.Miss) { s.onMiss(sess, m) })

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()
	metrics.ActiveSessions.Inc()

	s.log.Infow("session_mounted", "session_id", sess.id, "companies", len(companies), "page_size", pageSize)
	return sess.state(), nil
}

// Unmount closes the view and drops every map callback. Later calls on the session fail with
// ErrSessionNotFound.
func (s *DiscoveryService) Unmount(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	sess.mu.Lock()
	sess.closed = true
	sess.unsubscribe()
	sess.view.Close()
	sess.engine.SetDispatcher(nil)
	sess.remote = nil
	outbox := sess.outbox
	sess.outbox = nil
	sess.mu.Unlock()

	s.flush(ctx, outbox)
	metrics.ActiveSessions.Dec()
	s.log.Infow("session_unmounted", "session_id", sessionID)
	return nil
}

func (s *DiscoveryService) View(ctx context.Context, sessionID string) (ViewState, error) {
	return s.do(ctx, sessionID, func(*session) error { return nil })
}

// SetFilter replaces the filter and resets to page 1. An unknown service category is rejected.
// An attached map receives the new marker set.
func (s *DiscoveryService) SetFilter(ctx context.Context, sessionID string, f discovery.FilterState) (ViewState, error) {
	if f.Service != models.AllServices && !f.Service.Known() {
		return ViewState{}, fmt.Errorf("%w: %q", ErrUnknownService, f.Service)
	}
	return s.do(ctx, sessionID, func(sess *session) error {
		sess.view.SetFilter(f)
		sess.changed = true
		if len(sess.view.Filtered()) == 0 {
			metrics.EmptyResultsTotal.Inc()
		}
		return nil
	})
}

// SetPage moves to page, clamped into range.
func (s *DiscoveryService) SetPage(ctx context.Context, sessionID string, page int) (ViewState, error) {
	return s.do(ctx, sessionID, func(sess *session) error {
		sess.view.SetPage(page)
		sess.changed = true
		return nil
	})
}

// MarkersRendered records which markers the attached map has drawn. Only drawn markers receive
// list clicks; a click on any other is a pending-render miss. It returns how many ids matched a
// registered marker; ids of markers removed meanwhile are skipped.
func (s *DiscoveryService) MarkersRendered(ctx context.Context, sessionID string, companyIDs []int) (int, error) {
	n := 0
	_, err := s.do(ctx, sessionID, func(sess *session) error {
		for _, id := range companyIDs {
			if sess.engine.MarkRendered(id) {
				n++
			}
		}
		return nil
	})
	return n, err
}

// SelectFromList forwards a list click to the session's map. A company without a marker is
// reported through the miss diagnostics and leaves the selection unchanged.
func (s *DiscoveryService) SelectFromList(ctx context.Context, sessionID string, companyID int) (ViewState, error) {
	return s.do(ctx, sessionID, func(sess *session) error {
		sess.view.SelectFromList(companyID)
		return nil
	})
}

// MapClick runs the map's native click on the marker of companyID, as reported by the client map.
func (s *DiscoveryService) MapClick(ctx context.Context, sessionID string, companyID int) (ViewState, error) {
	return s.do(ctx, sessionID, func(sess *session) error {
		if !sess.engine.Fire(companyID, discovery.EventClick) {
			return fmt.Errorf("%w: %d", ErrMarkerNotFound, companyID)
		}
		return nil
	})
}

// ClearSelection closes the detail panel.
func (s *DiscoveryService) ClearSelection(ctx context.Context, sessionID string) (ViewState, error) {
	return s.do(ctx, sessionID, func(sess *session) error {
		sess.view.ClearSelection()
		return nil
	})
}

// Dismiss drops the map's own marker highlight. The selection is untouched.
func (s *DiscoveryService) Dismiss(ctx context.Context, sessionID string) error {
	_, err := s.do(ctx, sessionID, func(sess *session) error {
		sess.engine.Dismiss()
		return nil
	})
	return err
}

// Detail renders the detail panel; false means nothing is selected.
func (s *DiscoveryService) Detail(ctx context.Context, sessionID string) (discovery.Detail, bool, error) {
	var (
		d  discovery.Detail
		ok bool
	)
	_, err := s.do(ctx, sessionID, func(sess *session) error {
		d, ok = sess.view.Detail()
		return nil
	})
	return d, ok, err
}

// Attach connects a client map to the session and pushes the current state to it.
// The returned func detaches it again.
func (s *DiscoveryService) Attach(sessionID string, remote Remote) (func(), error) {
	sess, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.closed {
		return nil, ErrSessionNotFound
	}
	sess.remote = remote
	sess.engine.SetDispatcher(remote)
	s.push(sess)

	return func() {
		sess.mu.Lock()
		defer sess.mu.Unlock()
		if sess.remote == remote {
			sess.remote = nil
			sess.engine.SetDispatcher(nil)
		}
	}, nil
}

// Sessions returns the number of mounted sessions.
func (s *DiscoveryService) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *DiscoveryService) get(sessionID string) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// do runs fn with the session locked, pushes the result to an attached remote when the view
// changed, then persists the collected selection events.
func (s *DiscoveryService) do(ctx context.Context, sessionID string, fn func(*session) error) (ViewState, error) {
	sess, err := s.get(sessionID)
	if err != nil {
		return ViewState{}, err
	}

	sess.mu.Lock()
	if sess.closed {
		sess.mu.Unlock()
		return ViewState{}, ErrSessionNotFound
	}
	sess.touched = s.now()
	err = fn(sess)
	state := sess.state()
	if sess.changed {
		s.push(sess)
	}
	outbox := sess.outbox
	sess.outbox = nil
	sess.mu.Unlock()

	s.flush(ctx, outbox)
	if err != nil {
		return ViewState{}, err
	}
	return state, nil
}

// push sends the state to the attached remote. sess.mu must be held.
func (s *DiscoveryService) push(sess *session) {
	sess.changed = false
	if sess.remote == nil {
		return
	}
	var detail *discovery.Detail
	if d, ok := sess.view.Detail(); ok {
		detail = &d
	}
	if err := sess.remote.Push(sess.state(), detail); err != nil {
		s.log.Warnw("session_push_failed", "session_id", sess.id, "error", err)
	}
}

func (s *DiscoveryService) flush(ctx context.Context, events []models.SelectionEvent) {
	for _, ev := range events {
		if err := s.events.Append(ctx, ev); err != nil {
			s.log.Errorw("selection_event_append_failed", "session_id", ev.SessionID, "type", ev.Type, "error", err)
		}
	}
}

// onChange runs inside the session lock as a selection store listener.
func (s *DiscoveryService) onChange(sess *session, ch discovery.SelectionChange) {
	sess.changed = true
	ev := models.SelectionEvent{
		EventID:    uuid.NewString(),
		OccurredAt: s.now().UTC(),
		SessionID:  sess.id,
		Origin:     string(ch.Origin),
	}
	if ch.Current.Active {
		ev.Type = models.EventSelect
		ev.CompanyID = ch.Current.CompanyID
		metrics.SelectionsTotal.WithLabelValues(string(ch.Origin)).Inc()
	} else {
		ev.Type = models.EventClear
		ev.CompanyID = ch.Previous.CompanyID
	}
	sess.outbox = append(sess.outbox, ev)
	s.log.Debugw("selection_changed", "session_id", sess.id, "type", ev.Type, "company_id", ev.CompanyID, "origin", ev.Origin)
}

// onMiss runs inside the session lock when a list selection could not reach the map.
func (s *DiscoveryService) onMiss(sess *session, m discovery.Miss) {
	sess.changed = true
	metrics.StaleSelectionsTotal.WithLabelValues(m.Reason).Inc()
	s.log.Warnw("select_stale_reference", "session_id", sess.id, "company_id", m.CompanyID, "reason", m.Reason)
	sess.outbox = append(sess.outbox, models.SelectionEvent{
		EventID:    uuid.NewString(),
		OccurredAt: s.now().UTC(),
		SessionID:  sess.id,
		Type:       models.EventSelectMiss,
		Origin:     string(discovery.OriginList),
		CompanyID:  m.CompanyID,
		Metadata:   map[string]string{"reason": m.Reason},
	})
}

func (sess *session) state() ViewState {
	return ViewState{SessionID: sess.id, Snapshot: sess.view.Snapshot()}
}

func (s *DiscoveryService) snapshotSessions() []*session {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, sess)
	}
	return out
}
