package handlers

import (
	"log/slog"
	"net/http"

	"github.com/nuuxixv/MindConnect/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type WSHandler struct {
	hub *ws.Hub
	log *slog.Logger
}

func NewWSHandler(hub *ws.Hub, log *slog.Logger) *WSHandler {
	return &WSHandler{hub: hub, log: log}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// PostStream godoc
// @Summary      Live comments for a post
// @Description  WebSocket stream of comment_created events for one post
// @Tags         websocket
// @Param        id path int true "Post ID"
// @Router       /ws/posts/{id} [get]
func (h *WSHandler) PostStream(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "error", err)
		return
	}

	h.hub.AddConnection(postID, conn)
	defer h.hub.RemoveConnection(postID, conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
