package hub

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"

	chatmodel "github.com/lukemarsh/sentichat/internal/model/chat"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 64 * 1024
	sendBuffer     = 256
)

// Client is one WebSocket connection attached to the hub. It holds no
// exclusive shared state, so disconnecting needs no cleanup beyond
// unregistering.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	addr string
}

// NewClient wraps an upgraded connection for hub registration.
func NewClient(h *Hub, conn *websocket.Conn) *Client {
	conn.SetReadLimit(maxMessageSize)
	return &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBuffer),
		addr: conn.RemoteAddr().String(),
	}
}

// readPump consumes inbound frames until the connection drops. A dropped
// connection is a normal lifecycle transition, not an error: the client is
// expected to reconnect on its own.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		_ = c.conn.Close()
	}()

	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[hub] read error from %s: %v", c.addr, err)
			}
			return
		}
		c.handleFrame(raw)
	}
}

// handleFrame decodes one inbound envelope. Malformed frames are dropped
// with a log line; missing fields inside a chatMessage payload are coerced
// later in the pipeline, never rejected.
func (c *Client) handleFrame(raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Printf("[hub] malformed frame from %s: %v", c.addr, err)
		return
	}

	if env.Event != EventChatMessage {
		log.Printf("[hub] unknown event %q from %s", env.Event, c.addr)
		return
	}

	var sub chatmodel.Submission
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &sub); err != nil {
			log.Printf("[hub] malformed payload from %s: %v", c.addr, err)
			return
		}
	}
	c.hub.Publish(sub)
}

// writePump drains the send channel onto the wire and keeps the connection
// alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
