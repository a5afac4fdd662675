package handlers

import (
	"net/http"

	"mobigear_back_end/internal/models"
	"mobigear_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

// SendNotification expose le stub de notifications push. Le payload est
// validé et journalisé mais rien ne part réellement vers un device.
func SendNotification(c *gin.Context) {
	var payload models.PushPayload

	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	result := utils.SendPush(payload)
	if !result.Success {
		c.JSON(http.StatusBadRequest, result)
		return
	}

	c.JSON(http.StatusOK, result)
}
