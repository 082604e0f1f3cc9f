package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"pet_discovery/internal/discovery"
	"pet_discovery/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 1 << 12 // 4 KB
)

// Message types of the map bridge.
const (
	// server -> client
	wsTypeView    = "view"
	wsTypeTrigger = "trigger"
	wsTypeError   = "error"

	// client -> server
	wsTypeMarkerClick = "marker_click"
	wsTypeMarkerReady = "marker_ready"
	wsTypeDismiss     = "dismiss"
	wsTypeSelect      = "select"
)

// Envelope used for outgoing WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

type wsTrigger struct {
	CompanyID int    `json:"company_id"`
	Event     string `json:"event"`
}

type wsView struct {
	View   service.ViewState `json:"view"`
	Detail *discovery.Detail `json:"detail"`
}

// wsInbound is a message from the browser map. marker_ready may name one marker or a batch.
type wsInbound struct {
	Type       string `json:"type"`
	CompanyID  int    `json:"company_id,omitempty"`
	CompanyIDs []int  `json:"company_ids,omitempty"`
}

func originChecker(allowed []string) func(*http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}

// wsRemote is the browser map of one session. Writes are serialized.
type wsRemote struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (r *wsRemote) write(env wsEnvelope) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_ = r.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return r.conn.WriteJSON(env)
}

// Dispatch asks the browser map to run event on the company's marker.
func (r *wsRemote) Dispatch(companyID int, event string) error {
	return r.write(wsEnvelope{Type: wsTypeTrigger, Data: wsTrigger{CompanyID: companyID, Event: event}})
}

func (r *wsRemote) Push(state service.ViewState, detail *discovery.Detail) error {
	return r.write(wsEnvelope{Type: wsTypeView, Data: wsView{View: state, Detail: detail}})
}

// @Summary      Map bridge
// @Description  WebSocket for the browser map of a session. Server sends "view" (including the markers to draw) and "trigger"; client sends "marker_ready" once markers are drawn, "marker_click", "dismiss" and "select". List clicks reach only markers reported ready.
// @Tags         sessions
// @Param        id   path  string  true  "Session id"
// @Success      101
// @Failure      404  {object}  map[string]string
// @Router       /ws/sessions/{id} [get]
func (h *Handler) wsSession(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := c.Param("id")

	if _, err := h.services.Discovery.View(ctx, sessionID); err != nil {
		h.respondError(c, err, "ws_session_lookup_failed", "session_id", sessionID)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "session_id", sessionID, "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	remote := &wsRemote{conn: conn}
	detach, err := h.services.Discovery.Attach(sessionID, remote)
	if err != nil {
		_ = remote.write(wsEnvelope{Type: wsTypeError, Error: err.Error()})
		return
	}
	defer detach()

	done := make(chan struct{})
	go h.wsReadLoop(ctx, sessionID, remote, done)

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "session_id", sessionID, "err", err)
				}
				return
			}
		}
	}
}

// wsReadLoop handles browser messages until the connection or the session goes away.
func (h *Handler) wsReadLoop(ctx context.Context, sessionID string, remote *wsRemote, done chan<- struct{}) {
	defer close(done)
	for {
		_, data, err := remote.conn.ReadMessage()
		if err != nil {
			if h.log != nil {
				h.log.Infow("ws_read_closed", "session_id", sessionID, "err", err)
			}
			return
		}

		var msg wsInbound
		if err := json.Unmarshal(data, &msg); err != nil {
			_ = remote.write(wsEnvelope{Type: wsTypeError, Error: "malformed message"})
			continue
		}
		if err := h.handleWSMessage(ctx, sessionID, msg); err != nil {
			_ = remote.write(wsEnvelope{Type: wsTypeError, Error: err.Error()})
			if errors.Is(err, service.ErrSessionNotFound) {
				return
			}
		}
	}
}

func (h *Handler) handleWSMessage(ctx context.Context, sessionID string, msg wsInbound) error {
	d := h.services.Discovery
	switch msg.Type {
	case wsTypeMarkerClick:
		_, err := d.MapClick(ctx, sessionID, msg.CompanyID)
		return err
	case wsTypeSelect:
		_, err := d.SelectFromList(ctx, sessionID, msg.CompanyID)
		return err
	case wsTypeDismiss:
		return d.Dismiss(ctx, sessionID)
	case wsTypeMarkerReady:
		ids := msg.CompanyIDs
		if msg.CompanyID != 0 {
			ids = append(ids, msg.CompanyID)
		}
		n, err := d.MarkersRendered(ctx, sessionID, ids)
		if err == nil && h.log != nil {
			h.log.Debugw("ws_markers_ready", "session_id", sessionID, "reported", len(ids), "registered", n)
		}
		return err
	default:
		return fmt.Errorf("unknown message type %q", msg.Type)
	}
}
