package endpoints

import (
	"net/http"
	"sitetrack"
	"sitetrack/internal/api/handler/middleware"
	websocket2 "sitetrack/internal/api/websocket"
	"sitetrack/pkg"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// In production, you should validate the origin
		return true
	},
}

type websocketHandler struct {
	hub    *websocket2.Hub
	logger zerolog.Logger
	config sitetrack.AppConfig
}

func newWebSocketHandler(hub *websocket2.Hub) *websocketHandler {
	return &websocketHandler{
		hub:    hub,
		logger: sitetrack.Logger,
		config: sitetrack.GetConfig(),
	}
}

// WebSocketHandler exposes the event feed carrying upload and
// assignment lifecycle events.
func WebSocketHandler(router *graceful.Graceful, hub *websocket2.Hub) {
	h := newWebSocketHandler(hub)

	wsRoutes := router.Group("/api/v1/ws")
	wsRoutes.Use(middleware.AuthMiddleware(h.config))
	{
		wsRoutes.GET("", h.handleWebSocket)
	}
}

func (slf *websocketHandler) handleWebSocket(c *gin.Context) {
	userID, ok := pkg.GetUserID(c)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Failed to upgrade to WebSocket")
		return
	}

	clientID := uuid.New().String()
	client := websocket2.NewClient(clientID, userID, slf.hub, conn, slf.logger)

	slf.hub.Register <- client

	slf.logger.Info().
		Str("clientId", clientID).
		Uint("userId", userID).
		Msg("WebSocket connection established")

	go client.WritePump()
	go client.ReadPump()
}
