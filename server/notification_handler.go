package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	errs "github.com/techagentng/cleancity/errors"
	"github.com/techagentng/cleancity/server/response"
)

// WebSocket upgrader
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// handleNotificationFeed streams the caller's notifications over a websocket
// until the client goes away.
func (s *Server) handleNotificationFeed() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorFromContext(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			s.Logger.Warnw("websocket upgrade failed", "user_id", actor.ID, "error", err)
			return
		}
		unregister := s.Hub.Register(actor.ID, conn)
		defer unregister()

		// The feed is write-only; reading drains control frames and notices the close.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}
}
