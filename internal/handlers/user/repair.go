package user

import (
	"log"
	"net/http"
	"time"

	"mobigear_back_end/internal/database"
	"mobigear_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// BookRepair enregistre une demande de réparation
func BookRepair(c *gin.Context) {
	phone := c.GetString("user_phone")

	var req struct {
		DeviceBrand   string    `json:"device_brand" binding:"required"`
		DeviceModel   string    `json:"device_model" binding:"required"`
		Issue         string    `json:"issue" binding:"required"`
		PreferredDate time.Time `json:"preferred_date" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	if req.PreferredDate.Before(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "La date souhaitée doit être dans le futur"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	repair := models.RepairRequest{
		ID:            gocql.TimeUUID(),
		UserPhone:     phone,
		DeviceBrand:   req.DeviceBrand,
		DeviceModel:   req.DeviceModel,
		Issue:         req.Issue,
		PreferredDate: req.PreferredDate,
		Status:        models.RepairStatusRequested,
		CreatedAt:     time.Now(),
	}

	if err := session.Query(`
		INSERT INTO repair_requests (repair_id, user_phone, device_brand, device_model, issue, preferred_date, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, repair.ID, repair.UserPhone, repair.DeviceBrand, repair.DeviceModel,
		repair.Issue, repair.PreferredDate, repair.Status, repair.CreatedAt).Exec(); err != nil {
		log.Printf("❌ Erreur création réparation: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la réservation"})
		return
	}

	log.Printf("🔧 Réparation demandée par %s : %s %s", phone, repair.DeviceBrand, repair.DeviceModel)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Demande de réparation enregistrée",
		"repair":  repair,
	})
}

// GetMyRepairs liste les demandes de réparation de l'utilisateur
func GetMyRepairs(c *gin.Context) {
	phone := c.GetString("user_phone")

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`
		SELECT repair_id, user_phone, device_brand, device_model, issue, preferred_date, status, created_at, updated_at
		FROM repair_requests WHERE user_phone = ? ALLOW FILTERING
	`, phone).Iter()

	var repairs []models.RepairRequest
	var r models.RepairRequest

	for iter.Scan(&r.ID, &r.UserPhone, &r.DeviceBrand, &r.DeviceModel, &r.Issue,
		&r.PreferredDate, &r.Status, &r.CreatedAt, &r.UpdatedAt) {
		repairs = append(repairs, r)
	}

	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur lecture réparations: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture réparations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"repairs": repairs,
		"count":   len(repairs),
	})
}
