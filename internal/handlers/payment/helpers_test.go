package payment

import (
	"testing"

	"mobigear_back_end/internal/models"

	"github.com/stretchr/testify/require"
)

func TestShippingFee(t *testing.T) {
	require.Equal(t, 49.0, ShippingFee(100))
	require.Equal(t, 49.0, ShippingFee(499.99))
	require.Equal(t, 0.0, ShippingFee(500))
	require.Equal(t, 0.0, ShippingFee(1200))
}

func TestCalcSubtotal(t *testing.T) {
	items := []models.CartItem{
		{ProductID: "a", Price: 299, Quantity: 2},
		{ProductID: "b", Price: 602, Quantity: 1},
	}

	require.Equal(t, 1200.0, calcSubtotal(items))
	require.Equal(t, 0.0, calcSubtotal(nil))
}

func TestComputeTotal(t *testing.T) {
	// Panier de ₹1200 : livraison offerte, coupon 30% plafonné à ₹150
	require.Equal(t, 1050.0, ComputeTotal(1200, 0, 150))

	// Petit panier : forfait livraison appliqué
	require.Equal(t, 349.0, ComputeTotal(300, 49, 0))

	// La réduction ne peut pas rendre le total négatif
	require.Equal(t, 0.0, ComputeTotal(100, 49, 500))
}
