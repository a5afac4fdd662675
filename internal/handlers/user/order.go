package user

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"mobigear_back_end/internal/database"
	"mobigear_back_end/internal/models"
	"mobigear_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// GetMyOrders récupère toutes les commandes de l'utilisateur connecté
func GetMyOrders(c *gin.Context) {
	phone := c.GetString("user_phone")

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`
		SELECT order_id, order_number, items, total_price, status, payment_method, created_at
		FROM orders_by_user WHERE user_phone = ?
	`, phone).Iter()

	type orderSummary struct {
		ID            gocql.UUID        `json:"id"`
		OrderNumber   string            `json:"order_number"`
		Items         []models.OrderItem `json:"items"`
		TotalPrice    float64           `json:"total_price"`
		Status        string            `json:"status"`
		PaymentMethod string            `json:"payment_method"`
		CreatedAt     time.Time         `json:"created_at"`
	}

	var orders []orderSummary
	var o orderSummary
	var itemsJSON string

	for iter.Scan(&o.ID, &o.OrderNumber, &itemsJSON, &o.TotalPrice, &o.Status, &o.PaymentMethod, &o.CreatedAt) {
		o.Items = nil
		_ = json.Unmarshal([]byte(itemsJSON), &o.Items)
		orders = append(orders, o)
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

// TrackOrder récupère une commande par son numéro (propriétaire uniquement)
func TrackOrder(c *gin.Context) {
	phone := c.GetString("user_phone")
	role := c.GetString("role")
	orderNumber := c.Param("number")

	order, err := FetchOrderByNumber(orderNumber)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	// Sécurité : seul le propriétaire (ou un admin) peut suivre la commande
	if order.UserPhone != phone && role != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Commande non autorisée"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// TrackingQR retourne un QR PNG pointant vers la page de suivi
func TrackingQR(c *gin.Context) {
	phone := c.GetString("user_phone")
	role := c.GetString("role")
	orderNumber := c.Param("number")

	order, err := FetchOrderByNumber(orderNumber)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	if order.UserPhone != phone && role != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Commande non autorisée"})
		return
	}

	png, err := utils.GenerateTrackingQR(orderNumber)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération QR"})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

// FetchOrderByNumber lit une commande complète depuis ScyllaDB
func FetchOrderByNumber(orderNumber string) (*models.Order, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	var order models.Order
	var itemsJSON, addressJSON string

	err = session.Query(`
		SELECT order_id, order_number, user_phone, items, subtotal, shipping_fee, discount, coupon_code,
		       total_price, status, address, payment_method, gateway_order_id, created_at, updated_at
		FROM orders WHERE order_number = ?
	`, orderNumber).Scan(
		&order.ID, &order.OrderNumber, &order.UserPhone, &itemsJSON, &order.Subtotal,
		&order.ShippingFee, &order.Discount, &order.CouponCode, &order.TotalPrice,
		&order.Status, &addressJSON, &order.PaymentMethod, &order.GatewayOrderID,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	_ = json.Unmarshal([]byte(itemsJSON), &order.Items)
	_ = json.Unmarshal([]byte(addressJSON), &order.Address)

	return &order, nil
}
