package admin

import (
	"log"
	"net/http"
	"time"

	"mobigear_back_end/internal/database"
	"mobigear_back_end/internal/models"
	"mobigear_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// GetAllRepairs liste toutes les demandes de réparation, filtrables par statut
func GetAllRepairs(c *gin.Context) {
	statusFilter := c.Query("status")
	if statusFilter != "" && !models.IsValidRepairStatus(statusFilter) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statut invalide: " + statusFilter})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`
		SELECT repair_id, user_phone, device_brand, device_model, issue, preferred_date, status, created_at, updated_at
		FROM repair_requests
	`).Iter()

	var repairs []models.RepairRequest
	var r models.RepairRequest

	for iter.Scan(&r.ID, &r.UserPhone, &r.DeviceBrand, &r.DeviceModel, &r.Issue,
		&r.PreferredDate, &r.Status, &r.CreatedAt, &r.UpdatedAt) {
		if statusFilter != "" && r.Status != statusFilter {
			r = models.RepairRequest{}
			continue
		}
		repairs = append(repairs, r)
		r = models.RepairRequest{}
	}

	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur lecture réparations: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération réparations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"repairs": repairs,
		"count":   len(repairs),
	})
}

// UpdateRepairStatus fait avancer une demande de réparation dans son cycle de vie
func UpdateRepairStatus(c *gin.Context) {
	repairID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de réparation invalide"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statut requis"})
		return
	}

	if !models.IsValidRepairStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statut invalide: " + req.Status})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var currentStatus, userPhone, deviceBrand, deviceModel string
	if err := session.Query(`
		SELECT status, user_phone, device_brand, device_model FROM repair_requests WHERE repair_id = ?
	`, repairID).Scan(&currentStatus, &userPhone, &deviceBrand, &deviceModel); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Demande de réparation introuvable"})
		return
	}

	if !models.CanTransitionRepair(currentStatus, req.Status) {
		c.JSON(http.StatusConflict, gin.H{
			"error": "Transition de statut non autorisée",
			"from":  currentStatus,
			"to":    req.Status,
		})
		return
	}

	now := time.Now()

	if err := session.Query(`
		UPDATE repair_requests SET status = ?, updated_at = ? WHERE repair_id = ?
	`, req.Status, now, repairID).Exec(); err != nil {
		log.Printf("❌ Erreur mise à jour réparation %s: %v", repairID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour réparation"})
		return
	}

	log.Printf("🔧 Réparation %s: %s → %s", repairID, currentStatus, req.Status)

	utils.SendPush(models.PushPayload{
		UserPhone: userPhone,
		Title:     "Réparation " + req.Status + " - MobiGear",
		Body:      deviceBrand + " " + deviceModel,
		Data:      map[string]interface{}{"repair_id": repairID.String(), "status": req.Status},
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Statut mis à jour",
		"id":      repairID,
		"status":  req.Status,
	})
}
