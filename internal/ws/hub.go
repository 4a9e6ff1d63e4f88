package ws

import (
	"context"
	"time"

	"github.com/gorilla/websocket"
	"github.com/windoze95/saltybytes-mealsearch/internal/logger"
	"go.uber.org/zap"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4096
)

// Client represents the WebSocket connection behind one screen session.
type Client struct {
	Hub       *Hub
	Conn      *websocket.Conn
	Send      chan []byte
	SessionID string
}

// SessionMessage carries a message destined for one session.
type SessionMessage struct {
	SessionID string
	Message   []byte
}

// Hub owns every client's Send channel. All writes to Send go through the
// hub so a channel is never written after it is closed.
type Hub struct {
	sessions   map[string]*Client
	register   chan *Client
	unregister chan *Client
	deliver    chan *SessionMessage
	done       chan struct{}
}

// NewHub creates and returns a new Hub instance.
func NewHub() *Hub {
	return &Hub{
		sessions:   make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		deliver:    make(chan *SessionMessage),
		done:       make(chan struct{}),
	}
}

// Run handles register, unregister, and deliver events until ctx is done.
// It should be launched as a goroutine.
func (h *Hub) Run(ctx context.Context) {
	log := logger.Get()
	defer func() {
		close(h.done)
		for id, client := range h.sessions {
			close(client.Send)
			delete(h.sessions, id)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.sessions[client.SessionID] = client
			log.Info("client registered", zap.String("session_id", client.SessionID))

		case client := <-h.unregister:
			if current, ok := h.sessions[client.SessionID]; ok && current == client {
				delete(h.sessions, client.SessionID)
				close(client.Send)
			}
			log.Info("client unregistered", zap.String("session_id", client.SessionID))

		case msg := <-h.deliver:
			client, ok := h.sessions[msg.SessionID]
			if !ok {
				continue
			}
			select {
			case client.Send <- msg.Message:
			default:
				// Client's send buffer is full; disconnect it.
				delete(h.sessions, msg.SessionID)
				close(client.Send)
				log.Warn("dropping slow client", zap.String("session_id", msg.SessionID))
			}
		}
	}
}

// Register adds a client. It is a no-op once the hub has stopped.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

// Unregister removes a client and closes its Send channel.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Deliver queues a message for a session. Messages for unknown sessions
// are dropped.
func (h *Hub) Deliver(sessionID string, message []byte) {
	select {
	case h.deliver <- &SessionMessage{SessionID: sessionID, Message: message}:
	case <-h.done:
	}
}

// ReadPump reads messages from the WebSocket connection until it fails. The
// provided handler is called for each incoming message.
func (c *Client) ReadPump(handler func(*Client, []byte)) {
	defer func() {
		c.Hub.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure,
			) {
				logger.Get().Warn("unexpected websocket close",
					zap.String("session_id", c.SessionID),
					zap.Error(err),
				)
			}
			break
		}
		handler(c, message)
	}
}

// WritePump sends messages from the Send channel to the WebSocket connection.
// It also sends periodic pings to keep the connection alive. It is intended to
// be run in a per-client goroutine.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
