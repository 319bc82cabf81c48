// Package hub fans chat messages out to every connected WebSocket client.
// All log appends flow through the hub's run loop, so append order and
// broadcast order are the same by construction.
package hub

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	chatmodel "github.com/lukemarsh/sentichat/internal/model/chat"
	chatservice "github.com/lukemarsh/sentichat/internal/service/chat"
)

// Event names carried on the realtime channel.
const (
	EventChatMessage = "chatMessage"
	EventChatHistory = "chatHistory"
)

// Envelope frames every event in either direction.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// ScoreFunc rates the sentiment of a message text.
type ScoreFunc func(text string) int

// Hub owns the client registry and the single-writer message pipeline:
// normalize, score, append to the log, then broadcast to a snapshot of the
// registry including the originator.
type Hub struct {
	chatSvc *chatservice.Service
	score   ScoreFunc

	mu      sync.RWMutex
	clients map[*Client]bool

	register    chan *Client
	unregister  chan *Client
	submissions chan chatmodel.Submission

	wg   sync.WaitGroup
	done chan struct{}
}

// New returns a hub publishing into chatSvc and scoring text with score.
func New(chatSvc *chatservice.Service, score ScoreFunc) *Hub {
	return &Hub{
		chatSvc:     chatSvc,
		score:       score,
		clients:     make(map[*Client]bool),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		submissions: make(chan chatmodel.Submission, 64),
		done:        make(chan struct{}),
	}
}

// Register hands a freshly upgraded connection to the run loop. The client
// receives the full history replay before any later broadcast. Connections
// arriving after shutdown are closed immediately.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
		_ = c.conn.Close()
	}
}

// Publish queues a client submission for the run loop. Submissions racing
// with shutdown are discarded.
func (h *Hub) Publish(sub chatmodel.Submission) {
	select {
	case h.submissions <- sub:
	case <-h.done:
	}
}

// ClientCount reports the number of currently connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Run drives registration, unregistration, and message fan-out until ctx is
// cancelled. It must run in its own goroutine; every mutation of the chat
// log happens inside this loop, which serializes appends in arrival order.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.closeClients()
			return

		case client := <-h.register:
			h.addClient(client)

		case client := <-h.unregister:
			h.removeClient(client)

		case sub := <-h.submissions:
			h.handleSubmission(ctx, sub)
		}
	}
}

// Shutdown waits for the run loop and all client pumps to drain. Call after
// cancelling the context passed to Run.
func (h *Hub) Shutdown() {
	<-h.done
	h.wg.Wait()
}

// handleSubmission runs the inbound pipeline: coerce defaults, score the
// text, append to the log, fan out. Nothing in this pipeline can reject a
// message.
func (h *Hub) handleSubmission(ctx context.Context, sub chatmodel.Submission) {
	msg := chatmodel.Message{
		Sender:    sub.Sender,
		Text:      sub.Text,
		FileURL:   sub.FileURL,
		Timestamp: sub.Timestamp,
		Sentiment: h.score(sub.Text),
	}
	stored := h.chatSvc.Append(ctx, msg)

	payload, err := marshalEnvelope(EventChatMessage, stored)
	if err != nil {
		log.Printf("[hub] failed to encode message event: %v", err)
		return
	}
	h.broadcast(payload)
}

// addClient registers the connection, queues the history replay as the
// first frame on its send channel, and starts its pumps.
func (h *Hub) addClient(c *Client) {
	h.mu.Lock()
	h.clients[c] = true
	count := len(h.clients)
	h.mu.Unlock()

	history := h.chatSvc.History(context.Background())
	if payload, err := marshalEnvelope(EventChatHistory, history); err != nil {
		log.Printf("[hub] failed to encode history replay: %v", err)
	} else {
		c.send <- payload
	}

	h.wg.Add(2)
	go func() {
		defer h.wg.Done()
		c.writePump()
	}()
	go func() {
		defer h.wg.Done()
		c.readPump()
	}()

	log.Printf("[hub] client connected from %s, total %d", c.addr, count)
}

func (h *Hub) removeClient(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c)
	count := len(h.clients)
	h.mu.Unlock()

	close(c.send)
	log.Printf("[hub] client disconnected from %s, total %d", c.addr, count)
}

// broadcast delivers a frame to a snapshot of the registry. Clients whose
// send buffer is full are dropped rather than allowed to stall the loop.
func (h *Hub) broadcast(payload []byte) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		select {
		case c.send <- payload:
		default:
			log.Printf("[hub] dropping slow client %s", c.addr)
			h.removeClient(c)
		}
	}
}

func (h *Hub) closeClients() {
	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
		delete(h.clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		close(c.send)
		_ = c.conn.Close()
	}
}

func marshalEnvelope(event string, data interface{}) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: event, Data: raw})
}
