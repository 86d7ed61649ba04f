package controller

import (
	"net/http"

	gorillaws "github.com/gorilla/websocket"

	"github.com/gin-gonic/gin"

	"github.com/asif-dev/machbazar-storefront/internal/middleware"
	ws "github.com/asif-dev/machbazar-storefront/internal/websocket"
	"github.com/asif-dev/machbazar-storefront/pkg/logger"
)

// WSController upgrades storefront tabs to websocket sessions that follow
// a single cart key.
type WSController struct {
	hub      *ws.Hub
	upgrader gorillaws.Upgrader
}

func NewWSController(hub *ws.Hub) *WSController {
	return &WSController{
		hub: hub,
		upgrader: gorillaws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// origin is enforced by the CORS layer in front of the API
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// WatchCart upgrades the connection and streams cart events
// GET /ws/cart
func (ctrl *WSController) WatchCart(c *gin.Context) {
	cartKey := middleware.GetCartKey(c)

	conn, err := ctrl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error("websocket upgrade failed", err, map[string]interface{}{
			"cart_key": cartKey,
		})
		return
	}

	client := &ws.Client{
		Hub:     ctrl.hub,
		Conn:    &ws.Conn{Conn: conn},
		CartKey: cartKey,
		Send:    make(chan []byte, 64),
	}
	ctrl.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
