package handlers

import (
	"net/http"

	"leads-service/models"
	"leads-service/services"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// LeadFeedHandler upgrades dashboard clients onto the live lead feed.
type LeadFeedHandler struct {
	hub *services.LeadFeedHub
}

func NewLeadFeedHandler(hub *services.LeadFeedHub) *LeadFeedHandler {
	return &LeadFeedHandler{hub: hub}
}

// Listen handles GET /ws/leads.
func (h *LeadFeedHandler) Listen(c *gin.Context) {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Errorf("Error upgrading connection to WebSocket: %v", err)
		return
	}

	h.hub.RegisterClient(conn, c.ClientIP())
}

// HealthCheck reports feed connectivity.
func (h *LeadFeedHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:           "healthy",
		Service:          "leads-service-feed",
		ConnectedClients: h.hub.ConnectedClients(),
	})
}
