package payment

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newGatewayRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/payment/order", CreatePaymentOrder)
	return r
}

func TestCreatePaymentOrderMissingAmount(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/payment/order", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	newGatewayRouter().ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreatePaymentOrderNegativeAmount(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/payment/order", strings.NewReader(`{"amount":-10}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	newGatewayRouter().ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Montant invalide")
}

func TestGatewayOrderIDFromResponse(t *testing.T) {
	orderID, err := gatewayOrderIDFromResponse(map[string]interface{}{"id": "order_ABC123"})
	require.NoError(t, err)
	require.Equal(t, "order_ABC123", orderID)

	// Réponse sans id, id vide ou id non-string : erreur, pas de succès vide
	_, err = gatewayOrderIDFromResponse(map[string]interface{}{})
	require.Error(t, err)

	_, err = gatewayOrderIDFromResponse(map[string]interface{}{"id": ""})
	require.Error(t, err)

	_, err = gatewayOrderIDFromResponse(map[string]interface{}{"id": 42})
	require.Error(t, err)
}

func TestCreatePaymentOrderMissingKeys(t *testing.T) {
	t.Setenv("RAZORPAY_KEY_ID", "")
	t.Setenv("RAZORPAY_KEY_SECRET", "")

	req := httptest.NewRequest(http.MethodPost, "/api/payment/order", strings.NewReader(`{"amount":499}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	newGatewayRouter().ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, w.Body.String(), "Passerelle de paiement non configurée")
}
