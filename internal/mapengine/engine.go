package mapengine

import (
	"errors"
	"fmt"

	"pet_discovery/internal/discovery"
	"pet_discovery/internal/models"
)

// ErrUnknownMarker is returned when an event targets a marker this engine does not hold.
var ErrUnknownMarker = errors.New("unknown marker")

// Dispatcher forwards marker events to a remote renderer (the browser map). The remote runs its
// native handling and reports back through Engine.Fire.
type Dispatcher interface {
	Dispatch(companyID int, event string) error
}

// Marker is the engine's handle for a company location.
type Marker struct {
	companyID int
	pos       models.Coordinates
	listeners map[int]func(int)
	order     []int
	nextID    int
	rendered  bool
}

func (m *Marker) CompanyID() int               { return m.companyID }
func (m *Marker) Position() models.Coordinates { return m.pos }

// Engine is an in-process marker registry with click highlighting. With a Dispatcher attached,
// triggered events are sent to the remote map instead of being fired locally, and only for
// markers the remote has reported as rendered.
// It is not safe for concurrent use.
type Engine struct {
	markers     map[int]*Marker
	highlighted *Marker
	dispatcher  Dispatcher
}

var _ discovery.MapEngine = (*Engine)(nil)

func New() *Engine {
	return &Engine{markers: make(map[int]*Marker)}
}

// SetDispatcher attaches d; nil detaches and returns to local firing.
// A new remote starts with nothing rendered.
func (e *Engine) SetDispatcher(d Dispatcher) {
	e.dispatcher = d
	for _, m := range e.markers {
		m.rendered = false
	}
}

// MarkRendered records that the remote map has drawn the marker of companyID. It reports false
// when no such marker is registered.
func (e *Engine) MarkRendered(companyID int) bool {
	m, ok := e.markers[companyID]
	if !ok {
		return false
	}
	m.rendered = true
	return true
}

func (e *Engine) AddMarker(c models.Company) discovery.Marker {
	m := &Marker{companyID: c.ID, pos: c.Coordinates, listeners: make(map[int]func(int))}
	e.markers[c.ID] = m
	return m
}

func (e *Engine) RemoveMarker(dm discovery.Marker) {
	m, ok := dm.(*Marker)
	if !ok {
		return
	}
	if cur, ok := e.markers[m.companyID]; ok && cur == m {
		delete(e.markers, m.companyID)
	}
	if e.highlighted == m {
		e.highlighted = nil
	}
	m.listeners = make(map[int]func(int))
	m.order = nil
}

func (e *Engine) TriggerEvent(dm discovery.Marker, event string) error {
	m, ok := dm.(*Marker)
	if !ok || e.markers[m.companyID] != m {
		return ErrUnknownMarker
	}
	if e.dispatcher != nil {
		if !m.rendered {
			return fmt.Errorf("marker %d: %w", m.companyID, discovery.ErrMarkerPending)
		}
		if err := e.dispatcher.Dispatch(m.companyID, event); err != nil {
			return fmt.Errorf("dispatch %s on marker %d: %w", event, m.companyID, err)
		}
		return nil
	}
	e.fire(m, event)
	return nil
}

func (e *Engine) OnClick(dm discovery.Marker, fn func(int)) func() {
	m, ok := dm.(*Marker)
	if !ok {
		return func() {}
	}
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	m.order = append(m.order, id)
	return func() {
		delete(m.listeners, id)
		for i, v := range m.order {
			if v == id {
				m.order = append(m.order[:i], m.order[i+1:]...)
				return
			}
		}
	}
}

// Fire runs the native handling of event on the marker of companyID, as when the user clicks it
// on the map. It reports false when no such marker is registered.
func (e *Engine) Fire(companyID int, event string) bool {
	m, ok := e.markers[companyID]
	if !ok {
		return false
	}
	m.rendered = true
	e.fire(m, event)
	return true
}

// Dismiss removes the engine's own highlight.
func (e *Engine) Dismiss() {
	e.highlighted = nil
}

// Highlighted returns the company whose marker is highlighted.
func (e *Engine) Highlighted() (int, bool) {
	if e.highlighted == nil {
		return 0, false
	}
	return e.highlighted.companyID, true
}

// Markers returns the number of registered markers.
func (e *Engine) Markers() int {
	return len(e.markers)
}

func (e *Engine) fire(m *Marker, event string) {
	if event != discovery.EventClick {
		return
	}
	e.highlighted = m
	ids := append([]int(nil), m.order...)
	for _, id := range ids {
		if fn, ok := m.listeners[id]; ok {
			fn(m.companyID)
		}
	}
}
