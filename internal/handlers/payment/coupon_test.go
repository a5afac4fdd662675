package payment

import (
	"testing"
	"time"

	"mobigear_back_end/internal/models"

	"github.com/stretchr/testify/require"
)

func activeCoupon() models.Coupon {
	return models.Coupon{
		Code:      "NEW1",
		Type:      "percentage",
		Value:     30,
		IsActive:  true,
		StartsAt:  time.Now().Add(-24 * time.Hour),
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}
}

func TestEvaluateCouponPercentage(t *testing.T) {
	result := EvaluateCoupon(activeCoupon(), 1000, time.Now())

	require.True(t, result.IsValid)
	require.Equal(t, 300.0, result.Discount)
	require.Equal(t, "percentage", result.Type)
	require.Equal(t, "NEW1", result.Code)
}

func TestEvaluateCouponPercentageCapped(t *testing.T) {
	maxAmount := 150.0
	coupon := activeCoupon()
	coupon.MaxAmount = &maxAmount

	result := EvaluateCoupon(coupon, 1000, time.Now())

	require.True(t, result.IsValid)
	require.Equal(t, 150.0, result.Discount)
}

func TestEvaluateCouponFixed(t *testing.T) {
	coupon := activeCoupon()
	coupon.Type = "fixed"
	coupon.Value = 200

	result := EvaluateCoupon(coupon, 1000, time.Now())

	require.True(t, result.IsValid)
	require.Equal(t, 200.0, result.Discount)
}

func TestEvaluateCouponFixedExceedsSubtotal(t *testing.T) {
	// Le coupon fixe n'est pas borné par le sous-total : c'est ComputeTotal
	// qui empêche le total de passer sous zéro
	coupon := activeCoupon()
	coupon.Type = "fixed"
	coupon.Value = 500

	result := EvaluateCoupon(coupon, 300, time.Now())

	require.True(t, result.IsValid)
	require.Equal(t, 500.0, result.Discount)
	require.Equal(t, 0.0, ComputeTotal(300, 0, result.Discount))
}

func TestEvaluateCouponInactive(t *testing.T) {
	coupon := activeCoupon()
	coupon.IsActive = false

	result := EvaluateCoupon(coupon, 1000, time.Now())

	require.False(t, result.IsValid)
	require.Equal(t, "Ce coupon n'est plus actif", result.ErrorMessage)
	require.Equal(t, 0.0, result.Discount)
}

func TestEvaluateCouponExpired(t *testing.T) {
	coupon := activeCoupon()
	coupon.ExpiresAt = time.Now().Add(-time.Hour)

	result := EvaluateCoupon(coupon, 1000, time.Now())

	require.False(t, result.IsValid)
	require.Equal(t, "Ce coupon a expiré", result.ErrorMessage)
}

func TestEvaluateCouponWithoutExpiry(t *testing.T) {
	// Un coupon sans expires_at (créé hors API) reste valable indéfiniment
	coupon := activeCoupon()
	coupon.ExpiresAt = time.Time{}

	result := EvaluateCoupon(coupon, 1000, time.Now())

	require.True(t, result.IsValid)
	require.Equal(t, 300.0, result.Discount)
}

func TestEvaluateCouponNotStarted(t *testing.T) {
	coupon := activeCoupon()
	coupon.StartsAt = time.Now().Add(time.Hour)

	result := EvaluateCoupon(coupon, 1000, time.Now())

	require.False(t, result.IsValid)
	require.Equal(t, "Ce coupon n'est pas encore valide", result.ErrorMessage)
}

func TestEvaluateCouponBelowMinAmount(t *testing.T) {
	coupon := activeCoupon()
	coupon.MinAmount = 500

	result := EvaluateCoupon(coupon, 499.99, time.Now())

	require.False(t, result.IsValid)
	require.Equal(t, "Montant minimum requis: ₹500.00", result.ErrorMessage)
}

func TestEvaluateCouponUsageCapReached(t *testing.T) {
	coupon := activeCoupon()
	coupon.MaxUses = 100
	coupon.UsedCount = 100

	result := EvaluateCoupon(coupon, 1000, time.Now())

	require.False(t, result.IsValid)
	require.Equal(t, "Ce coupon a atteint sa limite d'utilisation", result.ErrorMessage)
}

func TestEvaluateCouponUnlimitedUses(t *testing.T) {
	// MaxUses = 0 signifie "sans limite"
	coupon := activeCoupon()
	coupon.MaxUses = 0
	coupon.UsedCount = 9999

	result := EvaluateCoupon(coupon, 1000, time.Now())

	require.True(t, result.IsValid)
}

func TestEvaluateCouponChecksOrder(t *testing.T) {
	// Inactif ET expiré : l'inactivité est vérifiée en premier
	coupon := activeCoupon()
	coupon.IsActive = false
	coupon.ExpiresAt = time.Now().Add(-time.Hour)

	result := EvaluateCoupon(coupon, 1000, time.Now())

	require.Equal(t, "Ce coupon n'est plus actif", result.ErrorMessage)
}

func TestEvaluateCouponExpiryBeforeMinAmount(t *testing.T) {
	coupon := activeCoupon()
	coupon.ExpiresAt = time.Now().Add(-time.Hour)
	coupon.MinAmount = 5000

	result := EvaluateCoupon(coupon, 1000, time.Now())

	require.Equal(t, "Ce coupon a expiré", result.ErrorMessage)
}
