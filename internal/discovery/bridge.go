package discovery

import (
	"errors"
	"time"

	"pet_discovery/internal/models"
)

// EventClick is the marker event that runs the map engine's native selection logic.
const EventClick = "click"

// Marker is a map engine handle for one company's marker.
type Marker interface {
	CompanyID() int
}

// MapEngine is the surface of the external map renderer the bridge depends on.
// Implementations own their markers; the bridge only keeps id-keyed lookups.
type MapEngine interface {
	AddMarker(c models.Company) Marker
	RemoveMarker(m Marker)
	TriggerEvent(m Marker, event string) error
	OnClick(m Marker, fn func(companyID int)) (cancel func())
}

// Miss records a list selection that could not be forwarded to the map.
type Miss struct {
	CompanyID int       `json:"company_id"`
	Reason    string    `json:"reason"`
	At        time.Time `json:"at"`
}

// Miss reasons.
const (
	MissNoMarker      = "no_marker"
	MissPendingRender = "marker_pending"
	MissTriggerError  = "trigger_failed"
)

// ErrMarkerPending is returned by a MapEngine whose marker is registered but not drawn yet.
var ErrMarkerPending = errors.New("marker not rendered yet")

// MarkerSyncBridge routes list clicks through the map engine so that the engine's click
// callback is the only path that writes the selection, whichever view the click came from.
type MarkerSyncBridge struct {
	engine  MapEngine
	store   *SelectionStore
	markers map[int]Marker
	cancels map[int]func()

	pending  Selection
	lastMiss *Miss
	onMiss   func(Miss)
	now      func() time.Time
	closed   bool
}

func NewMarkerSyncBridge(engine MapEngine, store *SelectionStore) *MarkerSyncBridge {
	return &MarkerSyncBridge{
		engine:  engine,
		store:   store,
		markers: make(map[int]Marker),
		cancels: make(map[int]func()),
		now:     time.Now,
	}
}

// OnMiss sets a callback invoked for every recorded miss.
func (b *MarkerSyncBridge) OnMiss(fn func(Miss)) { b.onMiss = fn }

// Sync makes the registered markers match companies: markers of companies no longer present are
// removed along with their click subscription, new ones are registered and subscribed once.
func (b *MarkerSyncBridge) Sync(companies []models.Company) {
	if b.closed {
		return
	}
	keep := make(map[int]struct{}, len(companies))
	for _, c := range companies {
		keep[c.ID] = struct{}{}
	}
	for id := range b.markers {
		if _, ok := keep[id]; !ok {
			b.unregister(id)
		}
	}
	for _, c := range companies {
		if _, ok := b.markers[c.ID]; ok {
			continue
		}
		m := b.engine.AddMarker(c)
		b.markers[c.ID] = m
		b.cancels[c.ID] = b.engine.OnClick(m, b.selectFromMap)
	}
}

// SelectFromList asks the map engine to click the company's marker. It reports whether the
// click was forwarded; a missing marker leaves the selection untouched and records a Miss.
func (b *MarkerSyncBridge) SelectFromList(companyID int) bool {
	if b.closed {
		return false
	}
	m, ok := b.markers[companyID]
	if !ok {
		b.recordMiss(companyID, MissNoMarker)
		return false
	}
	prev := b.pending
	b.pending = Selection{CompanyID: companyID, Active: true}
	if err := b.engine.TriggerEvent(m, EventClick); err != nil {
		b.pending = prev
		reason := MissTriggerError
		if errors.Is(err, ErrMarkerPending) {
			reason = MissPendingRender
		}
		b.recordMiss(companyID, reason)
		return false
	}
	return true
}

// selectFromMap is the engine's click callback. It never re-triggers the engine.
func (b *MarkerSyncBridge) selectFromMap(companyID int) {
	if b.closed {
		return
	}
	origin := OriginMap
	if b.pending.Active && b.pending.CompanyID == companyID {
		origin = OriginList
	}
	b.pending = Selection{}
	b.store.Select(companyID, origin)
}

// Pending returns a list selection forwarded to the engine whose click callback has not arrived yet.
func (b *MarkerSyncBridge) Pending() (int, bool) {
	return b.pending.CompanyID, b.pending.Active
}

// LastMiss returns the most recent miss, or nil.
func (b *MarkerSyncBridge) LastMiss() *Miss {
	if b.lastMiss == nil {
		return nil
	}
	m := *b.lastMiss
	return &m
}

// HasMarker reports whether a marker is registered for companyID.
func (b *MarkerSyncBridge) HasMarker(companyID int) bool {
	_, ok := b.markers[companyID]
	return ok
}

// Close deregisters every callback and marker. Later calls are ignored.
func (b *MarkerSyncBridge) Close() {
	if b.closed {
		return
	}
	for id := range b.markers {
		b.unregister(id)
	}
	b.pending = Selection{}
	b.closed = true
}

func (b *MarkerSyncBridge) unregister(companyID int) {
	if cancel, ok := b.cancels[companyID]; ok && cancel != nil {
		cancel()
	}
	delete(b.cancels, companyID)
	if m, ok := b.markers[companyID]; ok {
		b.engine.RemoveMarker(m)
	}
	delete(b.markers, companyID)
	if b.pending.CompanyID == companyID {
		b.pending = Selection{}
	}
}

func (b *MarkerSyncBridge) recordMiss(companyID int, reason string) {
	miss := Miss{CompanyID: companyID, Reason: reason, At: b.now().UTC()}
	b.lastMiss = &miss
	if b.onMiss != nil {
		b.onMiss(miss)
	}
}
