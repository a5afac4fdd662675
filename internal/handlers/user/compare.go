package user

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"mobigear_back_end/internal/database"
	"mobigear_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// Le comparateur est plafonné à 4 produits
const compareMaxItems = 4

func compareKey(phone string) string {
	return "compare:" + phone
}

func loadCompare(ctx context.Context, phone string) []string {
	data, err := database.RedisClient.Get(ctx, compareKey(phone)).Result()
	if err != nil || data == "" {
		return nil
	}

	var ids []string
	if err := json.Unmarshal([]byte(data), &ids); err != nil {
		return nil
	}
	return ids
}

func saveCompare(ctx context.Context, phone string, ids []string) {
	jsonData, _ := json.Marshal(ids)
	database.RedisClient.Set(ctx, compareKey(phone), jsonData, 7*24*time.Hour)
}

// GetCompareList retourne les produits du comparateur avec leurs détails
func GetCompareList(c *gin.Context) {
	phone := c.GetString("user_phone")

	ids := loadCompare(context.Background(), phone)
	if len(ids) == 0 {
		c.JSON(http.StatusOK, gin.H{"products": []models.Product{}})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var products []models.Product
	for _, id := range ids {
		pid, err := uuid.Parse(id)
		if err != nil {
			continue
		}

		var product models.Product
		err = session.Query(`
			SELECT product_id, name, description, price, stock, brand, category_id, image_urls, tags, is_active, created_at, updated_at
			FROM products WHERE product_id = ?
		`, gocql.UUID(pid)).Scan(
			&product.ID, &product.Name, &product.Description, &product.Price,
			&product.Stock, &product.Brand, &product.CategoryID, &product.ImageURLs,
			&product.Tags, &product.IsActive, &product.CreatedAt, &product.UpdatedAt,
		)
		if err == nil {
			products = append(products, product)
		}
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// AddToCompare ajoute un produit au comparateur (max 4)
func AddToCompare(c *gin.Context) {
	phone := c.GetString("user_phone")

	var req struct {
		ProductID string `json:"product_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	if _, err := uuid.Parse(req.ProductID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	ctx := context.Background()
	ids := loadCompare(ctx, phone)

	for _, id := range ids {
		if id == req.ProductID {
			c.JSON(http.StatusOK, gin.H{"message": "Produit déjà dans le comparateur", "product_ids": ids})
			return
		}
	}

	if len(ids) >= compareMaxItems {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comparateur plein (4 produits maximum)"})
		return
	}

	ids = append(ids, req.ProductID)
	saveCompare(ctx, phone, ids)

	c.JSON(http.StatusOK, gin.H{
		"message":     "Produit ajouté au comparateur",
		"product_ids": ids,
	})
}

// RemoveFromCompare retire un produit du comparateur
func RemoveFromCompare(c *gin.Context) {
	phone := c.GetString("user_phone")
	productID := c.Param("productId")

	ctx := context.Background()
	ids := loadCompare(ctx, phone)

	newIDs := []string{}
	for _, id := range ids {
		if id != productID {
			newIDs = append(newIDs, id)
		}
	}

	saveCompare(ctx, phone, newIDs)

	c.JSON(http.StatusOK, gin.H{
		"message":     "Produit retiré du comparateur",
		"product_ids": newIDs,
	})
}
