package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mobigear_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newCheckoutRouter(cart []models.CartItem) *gin.Engine {
	loadCart = func(ctx context.Context, phone string) []models.CartItem {
		return cart
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/checkout", func(c *gin.Context) {
		c.Set("user_phone", "9876543210")
	}, Checkout)
	return r
}

func postCheckout(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	// Le garde-fou panier vide passe avant toute écriture base ou appel
	// passerelle : aucune connexion n'est disponible ici, la requête doit
	// quand même aboutir en 400
	r := newCheckoutRouter(nil)

	w := postCheckout(t, r, `{"payment_method":"cod","lat":12.97,"lng":77.59}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Panier vide")
}

func TestCheckoutRejectsUnknownPaymentMethod(t *testing.T) {
	r := newCheckoutRouter(nil)

	w := postCheckout(t, r, `{"payment_method":"wire","lat":12.97,"lng":77.59}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Méthode de paiement invalide")
}

func TestCheckoutRequiresLocation(t *testing.T) {
	cart := []models.CartItem{{ProductID: "p1", Price: 299, Quantity: 1}}
	r := newCheckoutRouter(cart)

	w := postCheckout(t, r, `{"payment_method":"cod"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Position requise")
}
