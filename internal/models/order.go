package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Statuts du cycle de vie d'une commande
const (
	OrderStatusProcessing     = "Processing"
	OrderStatusConfirmed      = "Confirmed"
	OrderStatusShipped        = "Shipped"
	OrderStatusOutForDelivery = "Out for Delivery"
	OrderStatusDelivered      = "Delivered"
	OrderStatusCancelled      = "Cancelled"
)

// Méthodes de paiement acceptées
const (
	PaymentMethodCOD      = "cod"
	PaymentMethodRazorpay = "razorpay"
)

type Order struct {
	ID             gocql.UUID      `json:"id"`
	OrderNumber    string          `json:"order_number"`
	UserPhone      string          `json:"user_phone"`
	Items          []OrderItem     `json:"items"`
	Subtotal       float64         `json:"subtotal"`
	ShippingFee    float64         `json:"shipping_fee"`
	Discount       float64         `json:"discount"`
	CouponCode     string          `json:"coupon_code,omitempty"`
	TotalPrice     float64         `json:"total_price"`
	Status         string          `json:"status"`
	Address        AddressSnapshot `json:"address"`
	PaymentMethod  string          `json:"payment_method"`
	GatewayOrderID string          `json:"gateway_order_id,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      *time.Time      `json:"updated_at,omitempty"`
}

type OrderItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ImageURL  string  `json:"image_url,omitempty"`
}

// AddressSnapshot est figée au moment de la commande, jamais modifiée ensuite
type AddressSnapshot struct {
	Address string  `json:"address"`
	City    string  `json:"city"`
	State   string  `json:"state"`
	Pincode string  `json:"pincode"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// orderTransitions décrit les transitions autorisées du statut d'une commande.
// Cancelled est atteignable depuis tout état non terminal (action admin).
var orderTransitions = map[string][]string{
	OrderStatusProcessing:     {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:      {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:        {OrderStatusOutForDelivery, OrderStatusCancelled},
	OrderStatusOutForDelivery: {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered:      {},
	OrderStatusCancelled:      {},
}

// IsValidOrderStatus vérifie qu'un statut fait partie du cycle de vie
func IsValidOrderStatus(status string) bool {
	_, ok := orderTransitions[status]
	return ok
}

// IsTerminalOrderStatus indique si un statut est terminal
func IsTerminalOrderStatus(status string) bool {
	return status == OrderStatusDelivered || status == OrderStatusCancelled
}

// NextOrderStatuses retourne les statuts atteignables depuis un statut donné
func NextOrderStatuses(from string) []string {
	return orderTransitions[from]
}

// CanTransitionOrder vérifie qu'une transition de statut est légale
func CanTransitionOrder(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
