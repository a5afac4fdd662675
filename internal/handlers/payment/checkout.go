package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"mobigear_back_end/internal/database"
	"mobigear_back_end/internal/handlers/user"
	"mobigear_back_end/internal/models"
	"mobigear_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// Point d'injection pour les tests
var loadCart = user.LoadCart

// Checkout séquence le placement d'une commande. Chaque étape dépend de la
// précédente, il n'existe aucune transaction globale : une commande insérée
// puis un échec passerelle laisse une commande Processing orpheline (à
// annuler manuellement via la console admin).
func Checkout(c *gin.Context) {
	var req struct {
		PaymentMethod string  `json:"payment_method" binding:"required"` // "cod" ou "razorpay"
		CouponCode    string  `json:"coupon_code"`                       // Optionnel
		Address       string  `json:"address"`
		City          string  `json:"city"`
		State         string  `json:"state"`
		Pincode       string  `json:"pincode"`
		Lat           float64 `json:"lat"`
		Lng           float64 `json:"lng"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	phone := c.GetString("user_phone")

	if req.PaymentMethod != models.PaymentMethodCOD && req.PaymentMethod != models.PaymentMethodRazorpay {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Méthode de paiement invalide"})
		return
	}

	// ✅ 1. Panier depuis Redis — le garde-fou panier vide passe avant tout
	ctx := context.Background()
	cartItems := loadCart(ctx, phone)
	if len(cartItems) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Panier vide"})
		return
	}

	// ✅ 2. Snapshot d'adresse : sans coordonnées, pas de commande
	if req.Lat == 0 && req.Lng == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Position requise pour la livraison"})
		return
	}

	address := models.AddressSnapshot{
		Address: req.Address,
		City:    req.City,
		State:   req.State,
		Pincode: req.Pincode,
		Lat:     req.Lat,
		Lng:     req.Lng,
	}
	if address.Address == "" {
		// Le géocodage inverse a échoué côté client : on garde les coordonnées brutes
		address.Address = fmt.Sprintf("Position GPS (%.5f, %.5f)", req.Lat, req.Lng)
	}

	// ✅ 3. Vérifier stock et prix courants pour chaque produit
	productsSession, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	for i, item := range cartItems {
		productUUID, err := gocql.ParseUUID(item.ProductID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide: " + item.ProductID})
			return
		}

		var stock int
		var name string
		var price float64
		err = productsSession.Query("SELECT stock, name, price FROM products WHERE product_id = ?", productUUID).
			Scan(&stock, &name, &price)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable: " + item.ProductID})
			return
		}

		if stock < item.Quantity {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Stock insuffisant",
				"product":   name,
				"available": stock,
				"requested": item.Quantity,
			})
			return
		}

		// Données à jour au moment de la commande
		cartItems[i].Name = name
		cartItems[i].Price = price
	}

	// ✅ 4. Totaux : sous-total + livraison − réduction
	subtotal := calcSubtotal(cartItems)
	shipping := ShippingFee(subtotal)

	var discountAmount float64
	var couponCode string

	if req.CouponCode != "" {
		validation := validateCoupon(req.CouponCode, subtotal)
		if !validation.IsValid {
			c.JSON(http.StatusBadRequest, gin.H{"error": validation.ErrorMessage})
			return
		}

		discountAmount = validation.Discount
		couponCode = validation.Code
		log.Printf("✅ Coupon appliqué: %s (₹%.2f de réduction)", couponCode, discountAmount)
	}

	total := ComputeTotal(subtotal, shipping, discountAmount)

	// ✅ 5. Verrou anti double-submit (deux clics rapides = deux commandes sinon)
	lockKey := "checkout_lock:" + phone
	locked, err := database.Redis.SetNX(ctx, lockKey, "1", 15*time.Second).Result()
	if err == nil && !locked {
		c.JSON(http.StatusConflict, gin.H{"error": "Commande déjà en cours de traitement"})
		return
	}
	defer database.Redis.Del(ctx, lockKey)

	// ✅ 6. Insertion de la commande en Processing
	ordersSession, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	now := time.Now()
	order := models.Order{
		ID:            gocql.TimeUUID(),
		OrderNumber:   utils.GenerateOrderNumber(now),
		UserPhone:     phone,
		Items:         toOrderItems(cartItems),
		Subtotal:      subtotal,
		ShippingFee:   shipping,
		Discount:      discountAmount,
		CouponCode:    couponCode,
		TotalPrice:    total,
		Status:        models.OrderStatusProcessing,
		Address:       address,
		PaymentMethod: req.PaymentMethod,
		CreatedAt:     now,
	}

	itemsJSON, _ := json.Marshal(order.Items)
	addressJSON, _ := json.Marshal(order.Address)

	if err := ordersSession.Query(`
		INSERT INTO orders (order_number, order_id, user_phone, items, subtotal, shipping_fee, discount,
			coupon_code, total_price, status, address, payment_method, gateway_order_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, order.OrderNumber, order.ID, order.UserPhone, string(itemsJSON), order.Subtotal,
		order.ShippingFee, order.Discount, order.CouponCode, order.TotalPrice,
		order.Status, string(addressJSON), order.PaymentMethod, "", order.CreatedAt).Exec(); err != nil {
		log.Printf("❌ Erreur insertion commande: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création commande"})
		return
	}

	if err := ordersSession.Query(`
		INSERT INTO orders_by_user (user_phone, order_id, order_number, items, total_price, status, payment_method, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, order.UserPhone, order.ID, order.OrderNumber, string(itemsJSON), order.TotalPrice,
		order.Status, order.PaymentMethod, order.CreatedAt).Exec(); err != nil {
		log.Printf("⚠️ Erreur insertion orders_by_user: %v", err)
	}

	log.Printf("📦 Commande %s créée (₹%.2f, %s) pour %s", order.OrderNumber, total, req.PaymentMethod, phone)

	// ✅ 7. Branche selon la méthode de paiement
	if req.PaymentMethod == models.PaymentMethodCOD {
		// Notification best-effort, les échecs sont seulement journalisés
		notifyOrderStatus(order, models.OrderStatusProcessing)

		if couponCode != "" {
			RecordCouponUsage(couponCode, phone, order.ID)
		}

		if err := user.ClearUserCart(ctx, phone); err != nil {
			log.Printf("⚠️ Erreur vidage panier de %s: %v", phone, err)
		}

		c.JSON(http.StatusCreated, gin.H{
			"order":   order,
			"message": "Commande enregistrée, paiement à la livraison",
		})
		return
	}

	// Paiement en ligne : créer la commande côté passerelle.
	// En cas d'échec ici, la commande locale reste en Processing, sans compensation.
	keyID := os.Getenv("RAZORPAY_KEY_ID")
	keySecret := os.Getenv("RAZORPAY_KEY_SECRET")
	if keyID == "" || keySecret == "" {
		log.Println("❌ Clés Razorpay manquantes")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Passerelle de paiement non configurée"})
		return
	}

	gatewayOrderID, err := createGatewayOrder(keyID, keySecret, total, "INR", order.OrderNumber,
		map[string]interface{}{"user_phone": phone})
	if err != nil {
		log.Printf("❌ Erreur passerelle pour %s: %v", order.OrderNumber, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec création de la commande de paiement"})
		return
	}

	if err := ordersSession.Query(`
		UPDATE orders SET gateway_order_id = ? WHERE order_number = ?
	`, gatewayOrderID, order.OrderNumber).Exec(); err != nil {
		log.Printf("⚠️ Erreur enregistrement gateway_order_id: %v", err)
	}

	// Le panier n'est vidé qu'après vérification du paiement : un widget
	// fermé par l'utilisateur doit laisser panier et commande intacts
	c.JSON(http.StatusCreated, gin.H{
		"order": order,
		"payment": gin.H{
			"orderId":  gatewayOrderID,
			"amount":   total,
			"currency": "INR",
			"keyId":    keyID,
		},
	})
}

func toOrderItems(items []models.CartItem) []models.OrderItem {
	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		orderItems = append(orderItems, models.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			ImageURL:  item.ImageURL,
		})
	}
	return orderItems
}
