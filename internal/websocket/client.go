package websocket

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// Renderers only send control frames
	maxInboundSize = 512

	// pendingUpdates is how many analysis updates may queue for a slow renderer
	pendingUpdates = 16
)

// Client is a renderer subscribed to analysis updates. It never sends
// anything but control frames, so inbound data is discarded.
type Client struct {
	id        string
	conn      *websocket.Conn
	hub       *Hub
	updates   chan []byte
	closed    bool
	mu        sync.Mutex
	closeOnce sync.Once
	logger    zerolog.Logger
}

// NewClient creates a renderer client on an upgraded connection
func NewClient(conn *websocket.Conn, hub *Hub) *Client {
	id := uuid.New().String()
	return &Client{
		id:      id,
		conn:    conn,
		hub:     hub,
		updates: make(chan []byte, pendingUpdates),
		logger:  log.With().Str("component", "ws_client").Str("client_id", id).Logger(),
	}
}

// ID returns the client's unique identifier
func (c *Client) ID() string {
	return c.id
}

// Send queues an update. Every update carries the full analysis, so when the
// queue is full the oldest pending update is dropped in favor of data.
func (c *Client) Send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClientClosed
	}

	for {
		select {
		case c.updates <- data:
			return nil
		default:
		}

		select {
		case <-c.updates:
			c.logger.Debug().Msg("Renderer behind, dropped stale update")
		default:
		}
	}
}

// Close closes the connection. It is safe to call more than once.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		close(c.updates)
		c.mu.Unlock()

		if c.conn != nil {
			err = c.conn.Close()
		}
	})
	return err
}

// Serve pushes updates to the renderer and blocks until the connection
// ends, then leaves the hub.
func (c *Client) Serve() {
	go c.pushUpdates()
	c.discardInbound()
}

// discardInbound keeps the read side alive for pongs and close frames
func (c *Client) discardInbound() {
	defer func() {
		c.hub.Unregister(c)
		c.Close()
	}()

	c.conn.SetReadLimit(maxInboundSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.NextReader(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn().Err(err).Msg("Renderer connection closed unexpectedly")
			}
			return
		}
	}
}

func (c *Client) pushUpdates() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case update, ok := <-c.updates:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, update); err != nil {
				c.logger.Warn().Err(err).Msg("Failed to push update")
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
