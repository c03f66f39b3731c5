package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/kim0040/codingmaker-web-sub000/internal/app/services"
	"github.com/kim0040/codingmaker-web-sub000/internal/middleware"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Cross-origin policy is enforced by the CORS layer on the frontend URL;
	// the upgrade itself accepts any origin.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler upgrades authenticated HTTP requests to websocket connections.
// Runs behind RequireAuth, which also accepts the token as a query
// parameter for browser websocket clients.
type Handler struct {
	hub         *Hub
	chatService services.ChatService
	logger      zerolog.Logger
}

// NewHandler creates a new websocket Handler
func NewHandler(hub *Hub, chatService services.ChatService, logger zerolog.Logger) *Handler {
	return &Handler{hub: hub, chatService: chatService, logger: logger}
}

// HandleConnection upgrades the request and starts the client's pumps
func (h *Handler) HandleConnection(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	username := c.GetString(middleware.ContextUsername)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().Err(err).Int64("userID", userID).Msg("Websocket upgrade failed")
		return
	}

	client := &Client{
		hub:         h.hub,
		chatService: h.chatService,
		conn:        conn,
		send:        make(chan []byte, 256),
		rooms:       make(map[int64]bool),
		userID:      userID,
		username:    username,
		logger:      h.logger,
	}
	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}
