package models

import (
	"time"

	"github.com/gocql/gocql"
)

type Coupon struct {
	ID        gocql.UUID `json:"id"`
	Code      string     `json:"code"`
	Type      string     `json:"type"` // "percentage", "fixed"
	Value     float64    `json:"value"`
	MinAmount float64    `json:"min_amount"`
	MaxAmount *float64   `json:"max_amount,omitempty"` // Montant max de réduction (percentage uniquement)
	MaxUses   int        `json:"max_uses"`
	UsedCount int        `json:"used_count"`
	ExpiresAt time.Time  `json:"expires_at"`
	StartsAt  time.Time  `json:"starts_at"`
	IsActive  bool       `json:"is_active"`
	CreatedBy string     `json:"created_by"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type CouponUsage struct {
	ID        gocql.UUID `json:"id"`
	CouponID  gocql.UUID `json:"coupon_id"`
	UserPhone string     `json:"user_phone"`
	OrderID   gocql.UUID `json:"order_id"`
	UsedAt    time.Time  `json:"used_at"`
}

type CouponValidation struct {
	IsValid      bool    `json:"is_valid"`
	ErrorMessage string  `json:"error_message,omitempty"`
	Discount     float64 `json:"discount"`
	Type         string  `json:"type"`
	Code         string  `json:"code"`
}
