package realtime

import (
	"context"
	"log"
	"net/http"

	"mobigear_back_end/internal/database"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Autoriser toutes les origines (à ajuster en production)
		return true
	},
}

func orderChannel(orderNumber string) string {
	return "orders:" + orderNumber
}

// PublishOrderStatus notifie les clients abonnés au suivi d'une commande
func PublishOrderStatus(orderNumber, status string) {
	if err := database.Redis.Publish(context.Background(), orderChannel(orderNumber), status).Err(); err != nil {
		log.Printf("⚠️ Erreur publication statut %s: %v", orderNumber, err)
	}
}

// OrderTrackingWebSocket pousse en temps réel les changements de statut d'une commande
func OrderTrackingWebSocket(c *gin.Context) {
	orderNumber := c.Param("number")
	if orderNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Numéro de commande requis"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Erreur upgrade WebSocket: %v", err)
		return
	}
	defer conn.Close()

	ctx := context.Background()

	// S'abonner au canal Redis de cette commande
	pubsub := database.Redis.Subscribe(ctx, orderChannel(orderNumber))
	defer pubsub.Close()

	ch := pubsub.Channel()

	conn.WriteJSON(map[string]interface{}{
		"type":         "connected",
		"order_number": orderNumber,
	})

	// Détection de déconnexion côté client
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if err := conn.WriteJSON(map[string]interface{}{
				"type":         "status_updated",
				"order_number": orderNumber,
				"status":       msg.Payload,
			}); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
