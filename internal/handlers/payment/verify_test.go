package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func signPayment(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	secret := "test_secret"
	sig := signPayment(secret, "order_ABC", "pay_XYZ")

	require.True(t, VerifySignature(secret, "order_ABC", "pay_XYZ", sig))

	// Même entrée, même signature : le calcul est déterministe
	require.Equal(t, sig, signPayment(secret, "order_ABC", "pay_XYZ"))
}

func TestVerifySignatureRejectsTampering(t *testing.T) {
	secret := "test_secret"
	sig := signPayment(secret, "order_ABC", "pay_XYZ")

	require.False(t, VerifySignature(secret, "order_ABC", "pay_OTHER", sig))
	require.False(t, VerifySignature(secret, "order_OTHER", "pay_XYZ", sig))
	require.False(t, VerifySignature("wrong_secret", "order_ABC", "pay_XYZ", sig))
	require.False(t, VerifySignature(secret, "order_ABC", "pay_XYZ", ""))
}

func TestVerifySignatureOrderSensitive(t *testing.T) {
	// HMAC(A|B) et HMAC(B|A) doivent différer : l'ordre des champs fait
	// partie du message signé
	secret := "test_secret"

	require.NotEqual(t, signPayment(secret, "A", "B"), signPayment(secret, "B", "A"))
}

func TestConfirmOrderWriteSet(t *testing.T) {
	// La confirmation n'écrit que statut + méthode de paiement + horodatage :
	// le gateway_order_id posé au checkout ne doit jamais être réécrit ici
	require.Contains(t, confirmOrderCQL, "status = ?")
	require.Contains(t, confirmOrderCQL, "payment_method = ?")
	require.Contains(t, confirmOrderCQL, "updated_at = ?")
	require.NotContains(t, confirmOrderCQL, "gateway_order_id")
}

func newVerifyRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/payment/verify", VerifyPayment)
	return r
}

func TestVerifyPaymentMissingSecret(t *testing.T) {
	t.Setenv("RAZORPAY_KEY_SECRET", "")

	body := `{"razorpay_order_id":"order_ABC","razorpay_payment_id":"pay_XYZ","razorpay_signature":"deadbeef"}`
	req := httptest.NewRequest(http.MethodPost, "/api/payment/verify", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	newVerifyRouter().ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, w.Body.String(), `"verified":false`)
}

func TestVerifyPaymentInvalidSignature(t *testing.T) {
	t.Setenv("RAZORPAY_KEY_SECRET", "test_secret")

	body := `{"razorpay_order_id":"order_ABC","razorpay_payment_id":"pay_XYZ","razorpay_signature":"deadbeef"}`
	req := httptest.NewRequest(http.MethodPost, "/api/payment/verify", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	newVerifyRouter().ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), `"verified":false`)
}

func TestVerifyPaymentValidSignature(t *testing.T) {
	t.Setenv("RAZORPAY_KEY_SECRET", "test_secret")

	sig := signPayment("test_secret", "order_ABC", "pay_XYZ")
	body := `{"razorpay_order_id":"order_ABC","razorpay_payment_id":"pay_XYZ","razorpay_signature":"` + sig + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/payment/verify", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	newVerifyRouter().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"verified":true`)
	require.Contains(t, w.Body.String(), "pay_XYZ")
}

func TestVerifyPaymentMissingFields(t *testing.T) {
	t.Setenv("RAZORPAY_KEY_SECRET", "test_secret")

	req := httptest.NewRequest(http.MethodPost, "/api/payment/verify", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	newVerifyRouter().ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
