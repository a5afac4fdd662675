package admin

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"mobigear_back_end/internal/database"
	"mobigear_back_end/internal/handlers/user"
	"mobigear_back_end/internal/models"
	"mobigear_back_end/internal/realtime"
	"mobigear_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

// GetAllOrders liste toutes les commandes, filtrables par statut (?status=Shipped)
func GetAllOrders(c *gin.Context) {
	statusFilter := c.Query("status")
	if statusFilter != "" && !models.IsValidOrderStatus(statusFilter) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statut invalide: " + statusFilter})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`
		SELECT order_id, order_number, user_phone, items, subtotal, shipping_fee, discount, coupon_code,
		       total_price, status, payment_method, created_at, updated_at
		FROM orders
	`).Iter()

	var orders []models.Order
	var o models.Order
	var itemsJSON string

	for iter.Scan(&o.ID, &o.OrderNumber, &o.UserPhone, &itemsJSON, &o.Subtotal, &o.ShippingFee,
		&o.Discount, &o.CouponCode, &o.TotalPrice, &o.Status, &o.PaymentMethod, &o.CreatedAt, &o.UpdatedAt) {
		if statusFilter != "" && o.Status != statusFilter {
			o = models.Order{}
			continue
		}
		o.Items = nil
		_ = json.Unmarshal([]byte(itemsJSON), &o.Items)
		orders = append(orders, o)
		o = models.Order{}
	}

	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur lecture commandes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// UpdateOrderStatus fait avancer une commande dans son cycle de vie.
// Les transitions illégales (Delivered → Shipped, toucher une commande
// Cancelled...) sont refusées en 409.
func UpdateOrderStatus(c *gin.Context) {
	orderNumber := c.Param("number")

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statut requis"})
		return
	}

	if !models.IsValidOrderStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statut invalide: " + req.Status})
		return
	}

	order, err := user.FetchOrderByNumber(orderNumber)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	if !models.CanTransitionOrder(order.Status, req.Status) {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Transition de statut non autorisée",
			"from":    order.Status,
			"to":      req.Status,
			"allowed": models.NextOrderStatuses(order.Status),
		})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	now := time.Now()

	if err := session.Query(`
		UPDATE orders SET status = ?, updated_at = ? WHERE order_number = ?
	`, req.Status, now, orderNumber).Exec(); err != nil {
		log.Printf("❌ Erreur mise à jour commande %s: %v", orderNumber, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour commande"})
		return
	}

	if err := session.Query(`
		UPDATE orders_by_user SET status = ? WHERE user_phone = ? AND order_id = ?
	`, req.Status, order.UserPhone, order.ID).Exec(); err != nil {
		log.Printf("⚠️ Erreur mise à jour orders_by_user: %v", err)
	}

	log.Printf("🚚 Commande %s: %s → %s", orderNumber, order.Status, req.Status)

	realtime.PublishOrderStatus(orderNumber, req.Status)

	// Push + email best-effort
	utils.SendPush(models.PushPayload{
		UserPhone: order.UserPhone,
		Title:     utils.StatusEmailSubject(req.Status),
		Body:      "Commande " + orderNumber,
		Data:      map[string]interface{}{"order_number": orderNumber, "status": req.Status},
	})

	go func(order models.Order, status string) {
		usersSession, err := database.GetUsersSession()
		if err != nil {
			return
		}

		var email string
		if err := usersSession.Query("SELECT email FROM users WHERE phone = ?", order.UserPhone).Scan(&email); err != nil || email == "" {
			return
		}

		order.Status = status
		if err := utils.SendOrderStatusEmail(order, email, status); err != nil {
			log.Printf("⚠️ Erreur envoi email statut: %v", err)
		}
	}(*order, req.Status)

	c.JSON(http.StatusOK, gin.H{
		"message":      "Statut mis à jour",
		"order_number": orderNumber,
		"status":       req.Status,
	})
}

// CancelOrder annule une commande depuis n'importe quel statut non terminal
func CancelOrder(c *gin.Context) {
	orderNumber := c.Param("number")

	order, err := user.FetchOrderByNumber(orderNumber)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	if models.IsTerminalOrderStatus(order.Status) {
		c.JSON(http.StatusConflict, gin.H{"error": "Commande déjà " + order.Status})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	now := time.Now()

	if err := session.Query(`
		UPDATE orders SET status = ?, updated_at = ? WHERE order_number = ?
	`, models.OrderStatusCancelled, now, orderNumber).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur annulation commande"})
		return
	}

	if err := session.Query(`
		UPDATE orders_by_user SET status = ? WHERE user_phone = ? AND order_id = ?
	`, models.OrderStatusCancelled, order.UserPhone, order.ID).Exec(); err != nil {
		log.Printf("⚠️ Erreur mise à jour orders_by_user: %v", err)
	}

	log.Printf("❌ Commande %s annulée (était %s)", orderNumber, order.Status)

	realtime.PublishOrderStatus(orderNumber, models.OrderStatusCancelled)

	c.JSON(http.StatusOK, gin.H{
		"message":      "Commande annulée",
		"order_number": orderNumber,
	})
}
