package catalog

import (
	"log"
	"net/http"
	"time"

	"mobigear_back_end/internal/database"
	"mobigear_back_end/internal/models"
	"mobigear_back_end/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// GetProducts liste les produits actifs, filtrable par catégorie
func GetProducts(c *gin.Context) {
	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	query := `SELECT product_id, name, description, price, stock, brand, category_id, image_urls, tags, is_active, created_at, updated_at FROM products`
	var args []interface{}

	if categoryID := c.Query("category_id"); categoryID != "" {
		catUUID, err := uuid.Parse(categoryID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ID catégorie invalide"})
			return
		}
		query += " WHERE category_id = ? ALLOW FILTERING"
		args = append(args, gocql.UUID(catUUID))
	}

	iter := session.Query(query, args...).Iter()

	var products []models.Product
	var p models.Product

	for iter.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.Brand,
		&p.CategoryID, &p.ImageURLs, &p.Tags, &p.IsActive, &p.CreatedAt, &p.UpdatedAt) {
		if p.IsActive {
			products = append(products, p)
		}
	}

	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur lecture produits: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GetProduct retourne un produit par son ID
func GetProduct(c *gin.Context) {
	productUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var p models.Product
	err = session.Query(`
		SELECT product_id, name, description, price, stock, brand, category_id, image_urls, tags, is_active, created_at, updated_at
		FROM products WHERE product_id = ?
	`, gocql.UUID(productUUID)).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.Brand,
		&p.CategoryID, &p.ImageURLs, &p.Tags, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	c.JSON(http.StatusOK, p)
}

// CreateProduct crée un produit (Admin), images via multipart
func CreateProduct(c *gin.Context) {
	var req struct {
		Name        string   `form:"name" binding:"required"`
		Description string   `form:"description"`
		Price       float64  `form:"price" binding:"required"`
		Stock       int      `form:"stock"`
		Brand       string   `form:"brand"`
		CategoryID  string   `form:"category_id" binding:"required"`
		Tags        []string `form:"tags"`
	}

	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	if req.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le prix doit être positif"})
		return
	}

	catUUID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID catégorie invalide"})
		return
	}

	// 🖼️ Upload des images vers MinIO
	var imageURLs []string
	form, err := c.MultipartForm()
	if err == nil && form != nil {
		for _, file := range form.File["images"] {
			url, err := services.UploadImage(file)
			if err != nil {
				log.Printf("⚠️ Erreur upload image %s: %v", file.Filename, err)
				continue
			}
			imageURLs = append(imageURLs, url)
		}
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	now := time.Now()
	product := models.Product{
		ID:          gocql.TimeUUID(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Brand:       req.Brand,
		CategoryID:  gocql.UUID(catUUID),
		ImageURLs:   imageURLs,
		Tags:        req.Tags,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := session.Query(`
		INSERT INTO products (product_id, name, description, price, stock, brand, category_id, image_urls, tags, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, product.ID, product.Name, product.Description, product.Price, product.Stock, product.Brand,
		product.CategoryID, product.ImageURLs, product.Tags, product.IsActive,
		product.CreatedAt, product.UpdatedAt).Exec(); err != nil {
		log.Printf("❌ Erreur création produit: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la création du produit"})
		return
	}

	// Indexation asynchrone dans Elasticsearch
	go services.IndexProduct(product)

	log.Printf("✅ Produit créé: %s (%s)", product.Name, product.ID)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Produit créé avec succès",
		"product": product,
	})
}

// UpdateProduct met à jour un produit (Admin)
func UpdateProduct(c *gin.Context) {
	productUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	var req struct {
		Name        *string   `json:"name"`
		Description *string   `json:"description"`
		Price       *float64  `json:"price"`
		Stock       *int      `json:"stock"`
		Brand       *string   `json:"brand"`
		Tags        *[]string `json:"tags"`
		IsActive    *bool     `json:"is_active"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	// Charger l'existant pour appliquer le patch et réindexer
	var p models.Product
	err = session.Query(`
		SELECT product_id, name, description, price, stock, brand, category_id, image_urls, tags, is_active, created_at, updated_at
		FROM products WHERE product_id = ?
	`, gocql.UUID(productUUID)).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.Brand,
		&p.CategoryID, &p.ImageURLs, &p.Tags, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Le prix doit être positif"})
			return
		}
		p.Price = *req.Price
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	if req.Brand != nil {
		p.Brand = *req.Brand
	}
	if req.Tags != nil {
		p.Tags = *req.Tags
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	p.UpdatedAt = time.Now()

	if err := session.Query(`
		UPDATE products SET name = ?, description = ?, price = ?, stock = ?, brand = ?, tags = ?, is_active = ?, updated_at = ?
		WHERE product_id = ?
	`, p.Name, p.Description, p.Price, p.Stock, p.Brand, p.Tags, p.IsActive, p.UpdatedAt, p.ID).Exec(); err != nil {
		log.Printf("❌ Erreur mise à jour produit: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la mise à jour"})
		return
	}

	go services.IndexProduct(p)

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit mis à jour avec succès",
		"product": p,
	})
}

// DeleteProduct supprime un produit (Admin)
func DeleteProduct(c *gin.Context) {
	productUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query("DELETE FROM products WHERE product_id = ?", gocql.UUID(productUUID)).Exec(); err != nil {
		log.Printf("❌ Erreur suppression produit: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la suppression"})
		return
	}

	go services.RemoveProduct(productUUID.String())

	c.JSON(http.StatusOK, gin.H{"message": "Produit supprimé avec succès"})
}
