package handlers

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"babylog/internal/logger"
	"babylog/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 1 << 12 // 4 KB

	// Dashboard data refresh cadence.
	defaultInterval  = 30 * time.Second
	minInterval      = 1 * time.Second
	maxInterval      = 5 * time.Minute
	maxIntervalMilli = 300_000
)

// wsEnvelope frames every WebSocket message.
type wsEnvelope struct {
	Type  string      `json:"type"` // "dashboard" | "notification"
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// Hub fans envelopes out to connected dashboard clients.
type Hub struct {
	mu   sync.Mutex
	subs map[chan wsEnvelope]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan wsEnvelope]struct{})}
}

func (h *Hub) subscribe() chan wsEnvelope {
	ch := make(chan wsEnvelope, 8)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *Hub) unsubscribe(ch chan wsEnvelope) {
	h.mu.Lock()
	delete(h.subs, ch)
	h.mu.Unlock()
}

// Broadcast delivers to every subscriber, dropping frames for slow ones.
func (h *Hub) Broadcast(env wsEnvelope) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- env:
		default:
		}
	}
}

// HubNotifier delivers reminder notifications to ws subscribers and the log.
// The platform notification display itself is an external collaborator.
type HubNotifier struct {
	hub *Hub
	log *logger.Logger
}

func NewHubNotifier(hub *Hub, log *logger.Logger) *HubNotifier {
	return &HubNotifier{hub: hub, log: log}
}

func (n *HubNotifier) Notify(_ context.Context, notification service.Notification) {
	if n.log != nil {
		n.log.Infow("reminder_notification", "title", notification.Title, "body", notification.Body)
	}
	n.hub.Broadcast(wsEnvelope{Type: "notification", Data: notification})
}

// Upgrader for HTTP -> WebSocket; the app serves one local client.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (h *Handler) wsConnect(c *gin.Context) {
	interval := h.parseInterval(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Reader goroutine handles control frames and detects disconnects.
	done := make(chan struct{})
	go h.startReader(conn, done)

	notifications := h.hub.subscribe()
	defer h.hub.unsubscribe(notifications)

	ticker := time.NewTicker(interval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ping.Stop()
	}()

	// Send the first dashboard frame immediately.
	if err := h.sendDashboard(c.Request.Context(), conn); err != nil {
		if h.log != nil {
			h.log.Infow("ws_write_failed_initial", "err", err)
		}
		return
	}

	for {
		select {
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		case env := <-notifications:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(env); err != nil {
				if h.log != nil {
					h.log.Infow("ws_write_failed", "err", err)
				}
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
		case <-ticker.C:
			if err := h.sendDashboard(c.Request.Context(), conn); err != nil {
				if h.log != nil {
					h.log.Infow("ws_write_failed", "err", err)
				}
				return
			}
		}
	}
}

// parseInterval reads ?interval=45s or ?interval_ms=45000 with bounds.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d >= minInterval && d <= maxInterval {
			return d
		}
	}
	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil {
			d := time.Duration(v) * time.Millisecond
			if d >= minInterval && v <= maxIntervalMilli {
				return d
			}
		}
	}
	return defaultInterval
}

// startReader drains incoming messages to handle control frames and closure.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if h.log != nil {
				h.log.Infow("ws_read_closed", "err", err)
			}
			return
		}
	}
}

// sendDashboard builds and writes the current dashboard with a write deadline.
func (h *Handler) sendDashboard(ctx context.Context, conn *websocket.Conn) error {
	view, err := h.services.Stats.Dashboard(ctx, time.Now().UTC())
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_dashboard_failed", "err", err)
		}
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(wsEnvelope{Type: "dashboard", Data: view})
}
