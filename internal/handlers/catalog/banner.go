package catalog

import (
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"mobigear_back_end/internal/database"
	"mobigear_back_end/internal/models"
	"mobigear_back_end/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// GetBanners liste les bannières actives pour la page d'accueil
func GetBanners(c *gin.Context) {
	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT banner_id, title, image_url, link_url, position, is_active, created_at FROM banners`).Iter()

	var banners []models.Banner
	var b models.Banner

	for iter.Scan(&b.ID, &b.Title, &b.ImageURL, &b.LinkURL, &b.Position, &b.IsActive, &b.CreatedAt) {
		if b.IsActive {
			banners = append(banners, b)
		}
	}

	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur lecture bannières: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture bannières"})
		return
	}

	sort.Slice(banners, func(i, j int) bool {
		return banners[i].Position < banners[j].Position
	})

	c.JSON(http.StatusOK, gin.H{
		"banners": banners,
		"count":   len(banners),
	})
}

// CreateBanner crée une bannière avec image (Admin)
func CreateBanner(c *gin.Context) {
	var req struct {
		Title    string `form:"title" binding:"required"`
		LinkURL  string `form:"link_url"`
		Position int    `form:"position"`
	}

	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image requise"})
		return
	}

	imageURL, err := services.UploadImage(file)
	if err != nil {
		log.Printf("❌ Erreur upload bannière: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur upload image"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	banner := models.Banner{
		ID:        gocql.TimeUUID(),
		Title:     req.Title,
		ImageURL:  imageURL,
		LinkURL:   req.LinkURL,
		Position:  req.Position,
		IsActive:  true,
		CreatedAt: time.Now(),
	}

	if err := session.Query(`
		INSERT INTO banners (banner_id, title, image_url, link_url, position, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, banner.ID, banner.Title, banner.ImageURL, banner.LinkURL,
		banner.Position, banner.IsActive, banner.CreatedAt).Exec(); err != nil {
		log.Printf("❌ Erreur création bannière: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la création"})
		return
	}

	log.Printf("✅ Bannière créée: %s", banner.Title)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Bannière créée avec succès",
		"banner":  banner,
	})
}

// UpdateBanner met à jour une bannière (Admin)
func UpdateBanner(c *gin.Context) {
	bannerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID bannière invalide"})
		return
	}

	var req struct {
		Title    *string `json:"title"`
		LinkURL  *string `json:"link_url"`
		Position *int    `json:"position"`
		IsActive *bool   `json:"is_active"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	updates := []string{}
	values := []interface{}{}

	if req.Title != nil {
		updates = append(updates, "title = ?")
		values = append(values, *req.Title)
	}
	if req.LinkURL != nil {
		updates = append(updates, "link_url = ?")
		values = append(values, *req.LinkURL)
	}
	if req.Position != nil {
		updates = append(updates, "position = ?")
		values = append(values, *req.Position)
	}
	if req.IsActive != nil {
		updates = append(updates, "is_active = ?")
		values = append(values, *req.IsActive)
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Aucune mise à jour fournie"})
		return
	}

	values = append(values, gocql.UUID(bannerUUID))

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	query := "UPDATE banners SET " + strings.Join(updates, ", ") + " WHERE banner_id = ?"
	if err := session.Query(query, values...).Exec(); err != nil {
		log.Printf("❌ Erreur mise à jour bannière: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la mise à jour"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bannière mise à jour avec succès"})
}

// DeleteBanner supprime une bannière (Admin)
func DeleteBanner(c *gin.Context) {
	bannerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID bannière invalide"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query("DELETE FROM banners WHERE banner_id = ?", gocql.UUID(bannerUUID)).Exec(); err != nil {
		log.Printf("❌ Erreur suppression bannière: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la suppression"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bannière supprimée avec succès"})
}
