package payment

import "mobigear_back_end/internal/models"

// Livraison : forfait unique, offert au-delà d'un seuil de panier
const (
	ShippingFlatFee       = 49.0
	FreeShippingThreshold = 500.0
)

func calcSubtotal(items []models.CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// ShippingFee retourne les frais de livraison pour un sous-total donné
func ShippingFee(subtotal float64) float64 {
	if subtotal >= FreeShippingThreshold {
		return 0
	}
	return ShippingFlatFee
}

// ComputeTotal calcule le total d'une commande : sous-total + livraison − réduction,
// borné à zéro (un coupon fixe peut dépasser le sous-total)
func ComputeTotal(subtotal, shipping, discount float64) float64 {
	total := subtotal + shipping - discount
	if total < 0 {
		total = 0
	}
	return total
}
