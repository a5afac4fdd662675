package payment

import (
	"fmt"
	"log"
	"math"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	razorpay "github.com/razorpay/razorpay-go"
)

// CreatePaymentOrder crée une commande chez la passerelle de paiement.
// Le montant arrive en roupies et part en paise (x100). Pas de retry :
// un nouvel appel après échec transitoire peut créer un doublon côté
// passerelle, c'est à l'appelant de gérer.
func CreatePaymentOrder(c *gin.Context) {
	var req struct {
		Amount   float64                `json:"amount" binding:"required"`
		Currency string                 `json:"currency"`
		Receipt  string                 `json:"receipt"`
		Notes    map[string]interface{} `json:"notes"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Montant requis"})
		return
	}

	if req.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Montant invalide"})
		return
	}

	keyID := os.Getenv("RAZORPAY_KEY_ID")
	keySecret := os.Getenv("RAZORPAY_KEY_SECRET")
	if keyID == "" || keySecret == "" {
		log.Println("❌ Clés Razorpay manquantes")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Passerelle de paiement non configurée"})
		return
	}

	if req.Currency == "" {
		req.Currency = "INR"
	}

	orderID, err := createGatewayOrder(keyID, keySecret, req.Amount, req.Currency, req.Receipt, req.Notes)
	if err != nil {
		log.Printf("❌ Erreur passerelle: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec création de la commande de paiement"})
		return
	}

	log.Printf("💳 Commande passerelle créée: %s (₹%.2f, receipt=%s)", orderID, req.Amount, req.Receipt)

	c.JSON(http.StatusOK, gin.H{
		"orderId":  orderID,
		"amount":   req.Amount,
		"currency": req.Currency,
		"keyId":    keyID,
	})
}

// createGatewayOrder appelle l'API Razorpay et retourne l'ID de la commande distante
func createGatewayOrder(keyID, keySecret string, amount float64, currency, receipt string, notes map[string]interface{}) (string, error) {
	client := razorpay.NewClient(keyID, keySecret)

	data := map[string]interface{}{
		"amount":   int64(math.Round(amount * 100)), // paise
		"currency": currency,
		"receipt":  receipt,
	}
	if notes != nil {
		data["notes"] = notes
	}

	body, err := client.Order.Create(data, nil)
	if err != nil {
		return "", err
	}

	return gatewayOrderIDFromResponse(body)
}

// gatewayOrderIDFromResponse extrait l'ID de commande d'une réponse passerelle.
// Une réponse sans id exploitable est une erreur, jamais un succès vide.
func gatewayOrderIDFromResponse(body map[string]interface{}) (string, error) {
	orderID, ok := body["id"].(string)
	if !ok || orderID == "" {
		return "", fmt.Errorf("réponse passerelle inattendue: id manquant (%v)", body)
	}
	return orderID, nil
}
