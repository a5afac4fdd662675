package user

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"mobigear_back_end/internal/database"
	"mobigear_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// GetWishlist récupère la wishlist de l'utilisateur
func GetWishlist(c *gin.Context) {
	phone := c.GetString("user_phone")

	// Récupérer depuis Redis d'abord
	ctx := context.Background()
	cacheKey := "wishlist:" + phone

	cached, err := database.Redis.Get(ctx, cacheKey).Result()
	if err == nil {
		var wishlist models.Wishlist
		if json.Unmarshal([]byte(cached), &wishlist) == nil {
			c.JSON(http.StatusOK, wishlist)
			return
		}
	}

	// Sinon depuis ScyllaDB
	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query("SELECT product_id FROM wishlist WHERE user_phone = ?", phone).Iter()

	var productIDs []gocql.UUID
	var productID gocql.UUID

	for iter.Scan(&productID) {
		productIDs = append(productIDs, productID)
	}

	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture wishlist"})
		return
	}

	// Récupérer les détails des produits
	productsSession, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var products []models.Product
	for _, pid := range productIDs {
		var product models.Product
		err := productsSession.Query(`
			SELECT product_id, name, description, price, stock, brand, category_id, image_urls, tags, is_active, created_at, updated_at
			FROM products WHERE product_id = ?
		`, pid).Scan(
			&product.ID, &product.Name, &product.Description, &product.Price,
			&product.Stock, &product.Brand, &product.CategoryID, &product.ImageURLs,
			&product.Tags, &product.IsActive, &product.CreatedAt, &product.UpdatedAt,
		)
		if err == nil {
			products = append(products, product)
		}
	}

	wishlist := models.Wishlist{
		UserPhone: phone,
		Items:     products,
	}

	// Mettre en cache
	if data, err := json.Marshal(wishlist); err == nil {
		database.Redis.Set(ctx, cacheKey, data, 10*time.Minute)
	}

	c.JSON(http.StatusOK, wishlist)
}

// AddToWishlist ajoute un produit à la wishlist
func AddToWishlist(c *gin.Context) {
	phone := c.GetString("user_phone")

	var req struct {
		ProductID string `json:"product_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	productUUID, err := uuid.Parse(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	// Vérifier que le produit existe
	productsSession, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var found gocql.UUID
	if err := productsSession.Query("SELECT product_id FROM products WHERE product_id = ?",
		gocql.UUID(productUUID)).Scan(&found); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	err = session.Query(`
		INSERT INTO wishlist (user_phone, product_id, added_at)
		VALUES (?, ?, ?)
	`, phone, gocql.UUID(productUUID), time.Now()).Exec()

	if err != nil {
		log.Printf("❌ Erreur ajout wishlist: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur ajout à la wishlist"})
		return
	}

	// Invalider le cache
	database.Redis.Del(context.Background(), "wishlist:"+phone)

	log.Printf("⭐ Produit %s ajouté à la wishlist de %s", req.ProductID, phone)

	c.JSON(http.StatusOK, gin.H{
		"message":    "Produit ajouté à la wishlist",
		"product_id": req.ProductID,
	})
}

// RemoveFromWishlist retire un produit de la wishlist
func RemoveFromWishlist(c *gin.Context) {
	phone := c.GetString("user_phone")
	productID := c.Param("productId")

	productUUID, err := uuid.Parse(productID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	err = session.Query("DELETE FROM wishlist WHERE user_phone = ? AND product_id = ?",
		phone, gocql.UUID(productUUID)).Exec()

	if err != nil {
		log.Printf("❌ Erreur suppression wishlist: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression de la wishlist"})
		return
	}

	// Invalider le cache
	database.Redis.Del(context.Background(), "wishlist:"+phone)

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit retiré de la wishlist",
	})
}
