package payment

import (
	"context"
	"net/http"

	"mobigear_back_end/internal/handlers/user"
	"mobigear_back_end/internal/models"

	"github.com/gin-gonic/gin"
)

// GetShippingQuote calcule les frais de livraison pour le panier courant
func GetShippingQuote(c *gin.Context) {
	phone := c.GetString("user_phone")

	cartItems := user.LoadCart(context.Background(), phone)
	subtotal := calcSubtotal(cartItems)
	fee := ShippingFee(subtotal)

	c.JSON(http.StatusOK, models.ShippingQuote{
		Fee:           fee,
		FreeThreshold: FreeShippingThreshold,
		CartTotal:     subtotal,
		IsFree:        fee == 0,
	})
}
