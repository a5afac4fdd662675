package payment

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"mobigear_back_end/internal/database"
	"mobigear_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// EvaluateCoupon applique les règles de validité d'un coupon sur un sous-total.
// Fonction pure : aucune lecture base, aucun effet de bord. L'ordre des
// vérifications est fixe, la première qui échoue l'emporte.
func EvaluateCoupon(coupon models.Coupon, subtotal float64, now time.Time) models.CouponValidation {
	if !coupon.IsActive {
		return models.CouponValidation{
			IsValid:      false,
			ErrorMessage: "Ce coupon n'est plus actif",
		}
	}

	// Pas de date d'expiration = coupon sans limite de durée
	if !coupon.ExpiresAt.IsZero() && now.After(coupon.ExpiresAt) {
		return models.CouponValidation{
			IsValid:      false,
			ErrorMessage: "Ce coupon a expiré",
		}
	}

	if now.Before(coupon.StartsAt) {
		return models.CouponValidation{
			IsValid:      false,
			ErrorMessage: "Ce coupon n'est pas encore valide",
		}
	}

	if subtotal < coupon.MinAmount {
		return models.CouponValidation{
			IsValid:      false,
			ErrorMessage: fmt.Sprintf("Montant minimum requis: ₹%.2f", coupon.MinAmount),
		}
	}

	if coupon.MaxUses > 0 && coupon.UsedCount >= coupon.MaxUses {
		return models.CouponValidation{
			IsValid:      false,
			ErrorMessage: "Ce coupon a atteint sa limite d'utilisation",
		}
	}

	var discount float64
	switch coupon.Type {
	case "percentage":
		discount = subtotal * (coupon.Value / 100)
		if coupon.MaxAmount != nil && discount > *coupon.MaxAmount {
			discount = *coupon.MaxAmount
		}
	case "fixed":
		// Pas de clamp ici : le total final est borné à zéro par l'appelant
		discount = coupon.Value
	}

	return models.CouponValidation{
		IsValid:  true,
		Discount: discount,
		Type:     coupon.Type,
		Code:     coupon.Code,
	}
}

// fetchCoupon lit un coupon par code (normalisé en majuscules)
func fetchCoupon(code string) (models.Coupon, error) {
	var coupon models.Coupon

	session, err := database.GetOrdersSession()
	if err != nil {
		return coupon, err
	}

	err = session.Query(`
		SELECT id, code, type, value, min_amount, max_amount, max_uses, used_count,
		       expires_at, starts_at, is_active, created_by, created_at, updated_at
		FROM coupons WHERE code = ? LIMIT 1
	`, strings.ToUpper(code)).Scan(
		&coupon.ID, &coupon.Code, &coupon.Type, &coupon.Value, &coupon.MinAmount,
		&coupon.MaxAmount, &coupon.MaxUses, &coupon.UsedCount, &coupon.ExpiresAt,
		&coupon.StartsAt, &coupon.IsActive, &coupon.CreatedBy, &coupon.CreatedAt,
		&coupon.UpdatedAt,
	)

	return coupon, err
}

// validateCoupon combine lecture + évaluation
func validateCoupon(code string, subtotal float64) models.CouponValidation {
	coupon, err := fetchCoupon(code)
	if err != nil {
		return models.CouponValidation{
			IsValid:      false,
			ErrorMessage: "Code coupon invalide",
		}
	}

	return EvaluateCoupon(coupon, subtotal, time.Now())
}

// RecordCouponUsage trace l'utilisation d'un coupon et incrémente son compteur.
// Appelé à la confirmation de la commande, pas à l'évaluation.
func RecordCouponUsage(code, userPhone string, orderID gocql.UUID) {
	coupon, err := fetchCoupon(code)
	if err != nil {
		log.Printf("⚠️ Coupon %s introuvable pour traçage usage: %v", code, err)
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		return
	}

	if err := session.Query(`
		INSERT INTO coupon_usage (id, coupon_id, user_phone, order_id, used_at)
		VALUES (?, ?, ?, ?, ?)
	`, gocql.TimeUUID(), coupon.ID, userPhone, orderID, time.Now()).Exec(); err != nil {
		log.Printf("⚠️ Erreur traçage usage coupon: %v", err)
	}

	if err := session.Query(`
		UPDATE coupons SET used_count = ?, updated_at = ? WHERE code = ?
	`, coupon.UsedCount+1, time.Now(), coupon.Code).Exec(); err != nil {
		log.Printf("⚠️ Erreur incrément used_count: %v", err)
	}
}

// ValidateCouponHandler valide un code promo pour un montant de panier donné
func ValidateCouponHandler(c *gin.Context) {
	code := c.Query("code")
	cartTotalStr := c.Query("cart_total")

	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Code coupon requis"})
		return
	}

	cartTotal, err := strconv.ParseFloat(cartTotalStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Montant du panier invalide"})
		return
	}

	validation := validateCoupon(code, cartTotal)
	c.JSON(http.StatusOK, validation)
}

// CreateCoupon crée un nouveau coupon (Admin seulement)
func CreateCoupon(c *gin.Context) {
	var req struct {
		Code      string    `json:"code" binding:"required"`
		Type      string    `json:"type" binding:"required"` // "percentage", "fixed"
		Value     float64   `json:"value" binding:"required"`
		MinAmount float64   `json:"min_amount"`
		MaxAmount *float64  `json:"max_amount"`
		MaxUses   int       `json:"max_uses"`
		ExpiresAt time.Time `json:"expires_at" binding:"required"`
		StartsAt  time.Time `json:"starts_at"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	if req.Type != "percentage" && req.Type != "fixed" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Type de coupon invalide"})
		return
	}

	if req.Type == "percentage" && (req.Value <= 0 || req.Value > 100) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Pourcentage doit être entre 1 et 100"})
		return
	}

	if req.Type == "fixed" && req.Value <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Montant fixe doit être positif"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var existingCode string
	if err := session.Query(`SELECT code FROM coupons WHERE code = ? LIMIT 1`,
		strings.ToUpper(req.Code)).Scan(&existingCode); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Ce code coupon existe déjà"})
		return
	}

	now := time.Now()
	if req.StartsAt.IsZero() {
		req.StartsAt = now
	}

	coupon := models.Coupon{
		ID:        gocql.TimeUUID(),
		Code:      strings.ToUpper(req.Code),
		Type:      req.Type,
		Value:     req.Value,
		MinAmount: req.MinAmount,
		MaxAmount: req.MaxAmount,
		MaxUses:   req.MaxUses,
		UsedCount: 0,
		ExpiresAt: req.ExpiresAt,
		StartsAt:  req.StartsAt,
		IsActive:  true,
		CreatedBy: c.GetString("user_phone"),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := session.Query(`
		INSERT INTO coupons (id, code, type, value, min_amount, max_amount, max_uses, used_count,
			expires_at, starts_at, is_active, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, coupon.ID, coupon.Code, coupon.Type, coupon.Value, coupon.MinAmount,
		coupon.MaxAmount, coupon.MaxUses, coupon.UsedCount, coupon.ExpiresAt,
		coupon.StartsAt, coupon.IsActive, coupon.CreatedBy, coupon.CreatedAt,
		coupon.UpdatedAt).Exec(); err != nil {
		log.Printf("❌ Erreur création coupon: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la création du coupon"})
		return
	}

	log.Printf("✅ Coupon créé: %s", coupon.Code)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Coupon créé avec succès",
		"coupon":  coupon,
	})
}

// GetAllCoupons récupère tous les coupons (Admin)
func GetAllCoupons(c *gin.Context) {
	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`
		SELECT id, code, type, value, min_amount, max_amount, max_uses, used_count,
		       expires_at, starts_at, is_active, created_by, created_at, updated_at
		FROM coupons
	`).Iter()

	var coupons []models.Coupon
	var coupon models.Coupon

	for iter.Scan(&coupon.ID, &coupon.Code, &coupon.Type, &coupon.Value,
		&coupon.MinAmount, &coupon.MaxAmount, &coupon.MaxUses, &coupon.UsedCount,
		&coupon.ExpiresAt, &coupon.StartsAt, &coupon.IsActive, &coupon.CreatedBy,
		&coupon.CreatedAt, &coupon.UpdatedAt) {
		coupons = append(coupons, coupon)
	}

	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur récupération coupons: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"coupons": coupons,
		"total":   len(coupons),
	})
}

// UpdateCoupon met à jour un coupon (Admin)
func UpdateCoupon(c *gin.Context) {
	code := strings.ToUpper(c.Param("code"))

	var req struct {
		IsActive  *bool      `json:"is_active"`
		MaxUses   *int       `json:"max_uses"`
		ExpiresAt *time.Time `json:"expires_at"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	if _, err := fetchCoupon(code); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Coupon introuvable"})
		return
	}

	updates := []string{}
	values := []interface{}{}

	if req.IsActive != nil {
		updates = append(updates, "is_active = ?")
		values = append(values, *req.IsActive)
	}

	if req.MaxUses != nil {
		updates = append(updates, "max_uses = ?")
		values = append(values, *req.MaxUses)
	}

	if req.ExpiresAt != nil {
		updates = append(updates, "expires_at = ?")
		values = append(values, *req.ExpiresAt)
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Aucune mise à jour fournie"})
		return
	}

	updates = append(updates, "updated_at = ?")
	values = append(values, time.Now())
	values = append(values, code)

	query := fmt.Sprintf("UPDATE coupons SET %s WHERE code = ?", strings.Join(updates, ", "))

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query(query, values...).Exec(); err != nil {
		log.Printf("❌ Erreur mise à jour coupon: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la mise à jour"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Coupon mis à jour avec succès"})
}

// DeleteCoupon supprime un coupon (Admin)
func DeleteCoupon(c *gin.Context) {
	code := strings.ToUpper(c.Param("code"))

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query(`DELETE FROM coupons WHERE code = ?`, code).Exec(); err != nil {
		log.Printf("❌ Erreur suppression coupon: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la suppression"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Coupon supprimé avec succès"})
}
