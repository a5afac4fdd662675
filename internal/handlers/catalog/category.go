package catalog

import (
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"mobigear_back_end/internal/database"
	"mobigear_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// GetCategories liste les catégories actives triées par position
func GetCategories(c *gin.Context) {
	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT category_id, name, slug, image_url, position, is_active, created_at FROM categories`).Iter()

	var categories []models.Category
	var cat models.Category

	for iter.Scan(&cat.ID, &cat.Name, &cat.Slug, &cat.ImageURL, &cat.Position, &cat.IsActive, &cat.CreatedAt) {
		if cat.IsActive {
			categories = append(categories, cat)
		}
	}

	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur lecture catégories: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture catégories"})
		return
	}

	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Position < categories[j].Position
	})

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"count":      len(categories),
	})
}

// CreateCategory crée une catégorie (Admin)
func CreateCategory(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Slug     string `json:"slug"`
		ImageURL string `json:"image_url"`
		Position int    `json:"position"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	if req.Slug == "" {
		req.Slug = strings.ToLower(strings.ReplaceAll(req.Name, " ", "-"))
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	category := models.Category{
		ID:        gocql.TimeUUID(),
		Name:      req.Name,
		Slug:      req.Slug,
		ImageURL:  req.ImageURL,
		Position:  req.Position,
		IsActive:  true,
		CreatedAt: time.Now(),
	}

	if err := session.Query(`
		INSERT INTO categories (category_id, name, slug, image_url, position, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, category.ID, category.Name, category.Slug, category.ImageURL,
		category.Position, category.IsActive, category.CreatedAt).Exec(); err != nil {
		log.Printf("❌ Erreur création catégorie: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la création"})
		return
	}

	log.Printf("✅ Catégorie créée: %s", category.Name)
	c.JSON(http.StatusCreated, gin.H{
		"message":  "Catégorie créée avec succès",
		"category": category,
	})
}

// UpdateCategory met à jour une catégorie (Admin)
func UpdateCategory(c *gin.Context) {
	catUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID catégorie invalide"})
		return
	}

	var req struct {
		Name     *string `json:"name"`
		ImageURL *string `json:"image_url"`
		Position *int    `json:"position"`
		IsActive *bool   `json:"is_active"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	updates := []string{}
	values := []interface{}{}

	if req.Name != nil {
		updates = append(updates, "name = ?")
		values = append(values, *req.Name)
	}
	if req.ImageURL != nil {
		updates = append(updates, "image_url = ?")
		values = append(values, *req.ImageURL)
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

	values = append(values, gocql.UUID(catUUID))

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	query := "UPDATE categories SET " + strings.Join(updates, ", ") + " WHERE category_id = ?"
	if err := session.Query(query, values...).Exec(); err != nil {
		log.Printf("❌ Erreur mise à jour catégorie: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la mise à jour"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Catégorie mise à jour avec succès"})
}

// DeleteCategory supprime une catégorie (Admin)
func DeleteCategory(c *gin.Context) {
	catUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID catégorie invalide"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query("DELETE FROM categories WHERE category_id = ?", gocql.UUID(catUUID)).Exec(); err != nil {
		log.Printf("❌ Erreur suppression catégorie: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la suppression"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Catégorie supprimée avec succès"})
}
