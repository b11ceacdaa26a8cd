package handlers

import (
	"net/http"
	"sync"
	"time"

	"worknest-console/internal/logger"
	"worknest-console/internal/realtime"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	wsWriteWait  = 5 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 30 * time.Second
	wsReadLimit  = 1024
)

// wsClient is a console tab listening for company changes.
// Publishes arrive from many request goroutines, so writes are serialized.
type wsClient struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsClient) Send(message []byte) bool {
	if c == nil || c.conn == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return c.conn.WriteMessage(websocket.TextMessage, message) == nil
}

func (c *wsClient) Close() {
	if c != nil && c.conn != nil {
		_ = c.conn.Close()
	}
}

// heartbeat pings until done closes or a ping fails. A failed ping lets the
// read deadline expire, which ends the reader.
func (c *wsClient) heartbeat(done <-chan struct{}) {
	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
				return
			}
		}
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// origin checks happen in the CORS middleware
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WebSocket upgrades the connection and registers it under the session's
// company, so every console of the company hears about changes.
// GET /api/ws?token=
func (h *Handler) WebSocket(c *gin.Context) {
	sess := sessionOrAbort(c)
	if sess == nil {
		return
	}
	ctx := c.Request.Context()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.WarnLog(ctx, "websocket upgrade error: %v", err)
		return
	}

	client := &wsClient{conn: conn}
	h.hub.Register(sess.CompanyID, client)
	logger.DebugLog(ctx, "websocket open for company %d (%d live)", sess.CompanyID, h.hub.Connections(sess.CompanyID))
	h.hub.Publish(sess.CompanyID, realtime.Event{Type: realtime.TypePresence, Action: "joined", By: sess.EmpID, At: time.Now().UTC()})

	done := make(chan struct{})
	go client.heartbeat(done)
	defer func() {
		close(done)
		h.hub.Unregister(sess.CompanyID, client)
		client.Close()
	}()

	conn.SetReadLimit(wsReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	// inbound frames carry nothing; reading keeps the pong handler running
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
