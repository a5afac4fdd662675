package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"mobigear_back_end/internal/database"
	"mobigear_back_end/internal/handlers/user"
	"mobigear_back_end/internal/models"
	"mobigear_back_end/internal/realtime"
	"mobigear_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

// VerifySignature recalcule HMAC-SHA256(secret, "<order>|<payment>") et compare
// en temps constant avec la signature fournie. C'est l'unique preuve que la
// confirmation vient bien de la passerelle : l'ordre des deux champs compte.
func VerifySignature(secret, gatewayOrderID, gatewayPaymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(gatewayOrderID + "|" + gatewayPaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// VerifyPayment vérifie la signature renvoyée par le widget de paiement et,
// sur succès, passe la commande locale de Processing à Confirmed.
// Note: aucun recoupement du montant payé avec le total de la commande,
// comportement conservé tel quel en attendant un arbitrage produit.
func VerifyPayment(c *gin.Context) {
	var req struct {
		RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
		RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
		RazorpaySignature string `json:"razorpay_signature" binding:"required"`
		OrderNumber       string `json:"order_id"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"verified": false, "error": "Données invalides"})
		return
	}

	secret := os.Getenv("RAZORPAY_KEY_SECRET")
	if secret == "" {
		log.Println("❌ RAZORPAY_KEY_SECRET manquant")
		c.JSON(http.StatusInternalServerError, gin.H{"verified": false, "error": "Passerelle de paiement non configurée"})
		return
	}

	if !VerifySignature(secret, req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		log.Printf("❌ Signature invalide pour %s", req.RazorpayOrderID)
		// La commande locale reste dans son statut courant
		c.JSON(http.StatusBadRequest, gin.H{"verified": false, "error": "Signature invalide"})
		return
	}

	if req.OrderNumber != "" {
		if err := confirmOrder(req.OrderNumber); err != nil {
			log.Printf("⚠️ Signature valide mais confirmation de %s échouée: %v", req.OrderNumber, err)
			c.JSON(http.StatusInternalServerError, gin.H{"verified": false, "error": "Erreur confirmation commande"})
			return
		}
	}

	log.Printf("✅ Paiement vérifié: %s (commande %s)", req.RazorpayPaymentID, req.OrderNumber)

	c.JSON(http.StatusOK, gin.H{
		"verified":   true,
		"payment_id": req.RazorpayPaymentID,
	})
}

// Le vérificateur ne touche qu'au statut, à la méthode de paiement et à
// l'horodatage. Le gateway_order_id a déjà été posé au checkout et ne doit
// pas être réécrit avec une valeur fournie par le client.
const confirmOrderCQL = `
	UPDATE orders SET status = ?, payment_method = ?, updated_at = ?
	WHERE order_number = ?
`

// confirmOrder passe une commande Processing → Confirmed, la seule transition
// que le vérificateur a le droit d'effectuer
func confirmOrder(orderNumber string) error {
	order, err := user.FetchOrderByNumber(orderNumber)
	if err != nil {
		return err
	}

	if order.Status != models.OrderStatusProcessing {
		// Déjà confirmée (ou plus loin dans le cycle) : on ne touche à rien
		log.Printf("ℹ️ Commande %s déjà en statut %s, confirmation ignorée", orderNumber, order.Status)
		return nil
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}

	now := time.Now()

	if err := session.Query(confirmOrderCQL,
		models.OrderStatusConfirmed, models.PaymentMethodRazorpay, now, orderNumber).Exec(); err != nil {
		return err
	}

	if err := session.Query(`
		UPDATE orders_by_user SET status = ? WHERE user_phone = ? AND order_id = ?
	`, models.OrderStatusConfirmed, order.UserPhone, order.ID).Exec(); err != nil {
		log.Printf("⚠️ Erreur mise à jour orders_by_user: %v", err)
	}

	// Le coupon n'est compté qu'une fois la commande confirmée
	if order.CouponCode != "" {
		RecordCouponUsage(order.CouponCode, order.UserPhone, order.ID)
	}

	// Le panier survit jusqu'à la vérification : on le vide maintenant
	if err := user.ClearUserCart(context.Background(), order.UserPhone); err != nil {
		log.Printf("⚠️ Erreur vidage panier de %s: %v", order.UserPhone, err)
	}

	realtime.PublishOrderStatus(orderNumber, models.OrderStatusConfirmed)

	notifyOrderStatus(*order, models.OrderStatusConfirmed)

	return nil
}

// notifyOrderStatus envoie push (stub) + email en best-effort, sans bloquer
func notifyOrderStatus(order models.Order, status string) {
	utils.SendPush(models.PushPayload{
		UserPhone: order.UserPhone,
		Title:     utils.StatusEmailSubject(status),
		Body:      "Commande " + order.OrderNumber,
		Data:      map[string]interface{}{"order_number": order.OrderNumber, "status": status},
	})

	go func() {
		session, err := database.GetUsersSession()
		if err != nil {
			return
		}

		var email string
		if err := session.Query("SELECT email FROM users WHERE phone = ?", order.UserPhone).Scan(&email); err != nil || email == "" {
			return
		}

		order.Status = status
		if err := utils.SendOrderStatusEmail(order, email, status); err != nil {
			log.Printf("⚠️ Erreur envoi email statut: %v", err)
		}
	}()
}
