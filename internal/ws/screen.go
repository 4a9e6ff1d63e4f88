package ws

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/windoze95/saltybytes-mealsearch/internal/logger"
	"github.com/windoze95/saltybytes-mealsearch/internal/search"
	"github.com/windoze95/saltybytes-mealsearch/internal/service"
	"go.uber.org/zap"
)

// WebSocket message types for the search screen protocol.
const (
	MsgTypeQuery     = "query"     // User typed; payload carries the full query text
	MsgTypeClear     = "clear"     // User pressed the clear affordance
	MsgTypeToggle    = "toggle"    // User tapped "See more"/"See less" on a row
	MsgTypeScreen    = "screen"    // Server pushes a rendered screen
	MsgTypeError     = "error"     // Error message
	MsgTypeConnected = "connected" // Connection confirmed
)

// WSMessage is the envelope for all messages sent over the screen WebSocket.
type WSMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// QueryPayload is sent by the client on every keystroke.
type QueryPayload struct {
	Query string `json:"query"`
}

// TogglePayload names the row to expand or collapse.
type TogglePayload struct {
	ID string `json:"id"`
}

// ErrorPayload carries an error message to the client.
type ErrorPayload struct {
	Message string `json:"message"`
}

// ConnectedPayload confirms a successful connection.
type ConnectedPayload struct {
	SessionID string `json:"session_id"`
}

// screenSession pairs a connection with the controller it drives.
type screenSession struct {
	client *Client
	ctrl   *search.Controller
	log    *zap.Logger
}

// ScreenHandler manages WebSocket connections for search screens.
type ScreenHandler struct {
	Hub            *Hub
	Service        *service.SearchService
	AllowedOrigins []string
}

// NewScreenHandler returns a new ScreenHandler.
func NewScreenHandler(hub *Hub, searchService *service.SearchService, allowedOrigins []string) *ScreenHandler {
	return &ScreenHandler{
		Hub:            hub,
		Service:        searchService,
		AllowedOrigins: allowedOrigins,
	}
}

func (h *ScreenHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range h.AllowedOrigins {
		if origin == allowed {
			return true
		}
	}
	// Allow localhost for development
	return strings.HasPrefix(origin, "http://localhost:") || origin == "http://localhost"
}

// HandleScreenSession upgrades an HTTP request to a WebSocket connection and
// mounts one search screen on it. The screen is torn down when the
// connection closes.
func (h *ScreenHandler) HandleScreenSession(c *gin.Context) {
	sessionID := uuid.New().String()
	log := logger.WithSession(sessionID)

	upgrader := websocket.Upgrader{
		CheckOrigin:     h.checkOrigin,
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &Client{
		Hub:       h.Hub,
		Conn:      conn,
		Send:      make(chan []byte, 256),
		SessionID: sessionID,
	}
	h.Hub.Register(client)

	connectedPayload, _ := json.Marshal(ConnectedPayload{SessionID: sessionID})
	h.send(client, MsgTypeConnected, connectedPayload)

	session := h.newSession(client, log)
	h.pushScreen(client, session.ctrl.Screen())

	log.Info("search screen mounted")

	go client.WritePump()
	go func() {
		client.ReadPump(func(cl *Client, data []byte) {
			h.handleMessage(session, data)
		})
		session.ctrl.Close()
		log.Info("search screen unmounted")
	}()
}

func (h *ScreenHandler) newSession(client *Client, log *zap.Logger) *screenSession {
	ctrl := h.Service.NewScreen(log, func(s search.Screen) {
		h.pushScreen(client, s)
	})
	return &screenSession{client: client, ctrl: ctrl, log: log}
}

// handleMessage parses an incoming WebSocket message and routes it to the
// controller. Screen updates reach the client through the controller's
// change callback.
func (h *ScreenHandler) handleMessage(session *screenSession, data []byte) {
	var msg WSMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		h.sendError(session.client, "invalid message format")
		return
	}

	session.log.Debug("received ws message", zap.String("type", msg.Type))

	switch msg.Type {
	case MsgTypeQuery:
		var payload QueryPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			h.sendError(session.client, "invalid query payload")
			return
		}
		query, cut := service.ClampQuery(payload.Query)
		session.ctrl.SetQuery(query)
		if cut {
			h.sendError(session.client, fmt.Sprintf("query truncated to %d characters", service.MaxQueryLength))
		}

	case MsgTypeClear:
		session.ctrl.Clear()

	case MsgTypeToggle:
		var payload TogglePayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			h.sendError(session.client, "invalid toggle payload")
			return
		}
		if _, err := session.ctrl.Toggle(payload.ID); err != nil {
			if errors.Is(err, search.ErrUnknownItem) {
				h.sendError(session.client, "unknown item: "+payload.ID)
				return
			}
			h.sendError(session.client, "failed to toggle item")
		}

	default:
		h.sendError(session.client, "unknown message type: "+msg.Type)
	}
}

func (h *ScreenHandler) pushScreen(client *Client, screen search.Screen) {
	payload, err := json.Marshal(screen)
	if err != nil {
		logger.WithSession(client.SessionID).Error("failed to marshal screen", zap.Error(err))
		return
	}
	h.send(client, MsgTypeScreen, payload)
}

// sendError sends an error message to a single client.
func (h *ScreenHandler) sendError(client *Client, message string) {
	errPayload, _ := json.Marshal(ErrorPayload{Message: message})
	h.send(client, MsgTypeError, errPayload)
}

func (h *ScreenHandler) send(client *Client, msgType string, payload json.RawMessage) {
	msg, _ := json.Marshal(WSMessage{
		Type:    msgType,
		Payload: payload,
	})
	h.Hub.Deliver(client.SessionID, msg)
}
