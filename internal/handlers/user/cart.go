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

const cartTTL = 30 * 24 * time.Hour

func cartKey(phone string) string {
	return "cart:" + phone
}

// LoadCart lit le panier Redis d'un utilisateur
func LoadCart(ctx context.Context, phone string) []models.CartItem {
	data, err := database.RedisClient.Get(ctx, cartKey(phone)).Result()
	if err != nil || data == "" {
		return nil
	}

	var cart []models.CartItem
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return nil
	}
	return cart
}

func saveCart(ctx context.Context, phone string, cart []models.CartItem) {
	jsonData, _ := json.Marshal(cart)
	database.RedisClient.Set(ctx, cartKey(phone), jsonData, cartTTL)
	// Notifie les onglets connectés via le canal de synchro
	database.RedisClient.Publish(ctx, cartKey(phone), "updated")
}

// ClearUserCart vide le panier et notifie le canal de synchro
func ClearUserCart(ctx context.Context, phone string) error {
	if err := database.RedisClient.Del(ctx, cartKey(phone)).Err(); err != nil {
		return err
	}
	database.RedisClient.Publish(ctx, cartKey(phone), "cleared")
	return nil
}

// GetCart retourne le panier de l'utilisateur connecté
func GetCart(c *gin.Context) {
	phone := c.GetString("user_phone")

	cart := LoadCart(context.Background(), phone)
	if cart == nil {
		cart = []models.CartItem{} // panier vide
	}

	c.JSON(http.StatusOK, gin.H{"items": cart})
}

// AddToCart ajoute un produit au panier
func AddToCart(c *gin.Context) {
	phone := c.GetString("user_phone")

	var input struct {
		ProductID string `json:"product_id" binding:"required"`
		Quantity  int    `json:"quantity"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	if input.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité invalide"})
		return
	}

	productID, err := uuid.Parse(input.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	// 🧩 Récupération du produit depuis ScyllaDB
	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var (
		name      string
		price     float64
		stock     int
		imageURLs []string
		isActive  bool
	)

	err = session.Query(`SELECT name, price, stock, image_urls, is_active FROM products WHERE product_id = ?`,
		gocql.UUID(productID)).Scan(&name, &price, &stock, &imageURLs, &isActive)
	if err != nil || !isActive {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	imageURL := ""
	if len(imageURLs) > 0 {
		imageURL = imageURLs[0]
	}

	item := models.CartItem{
		ProductID: input.ProductID,
		Name:      name,
		Price:     price,
		Quantity:  input.Quantity,
		ImageURL:  imageURL,
	}

	ctx := context.Background()
	cart := LoadCart(ctx, phone)

	// 🔁 Met à jour ou ajoute l'item
	found := false
	for i := range cart {
		if cart[i].ProductID == item.ProductID {
			cart[i].Quantity += item.Quantity
			found = true
			break
		}
	}
	if !found {
		cart = append(cart, item)
	}

	saveCart(ctx, phone, cart)

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit ajouté au panier",
		"items":   cart,
	})
}

// UpdateCartItem change la quantité d'un produit du panier
func UpdateCartItem(c *gin.Context) {
	phone := c.GetString("user_phone")
	productID := c.Param("productId")

	var input struct {
		Quantity int `json:"quantity"`
	}

	if err := c.ShouldBindJSON(&input); err != nil || input.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité invalide"})
		return
	}

	ctx := context.Background()
	cart := LoadCart(ctx, phone)

	newCart := []models.CartItem{}
	for _, item := range cart {
		if item.ProductID == productID {
			if input.Quantity == 0 {
				continue // quantité 0 = suppression
			}
			item.Quantity = input.Quantity
		}
		newCart = append(newCart, item)
	}

	saveCart(ctx, phone, newCart)

	c.JSON(http.StatusOK, gin.H{
		"message": "Panier mis à jour",
		"items":   newCart,
	})
}

// RemoveFromCart retire un produit du panier
func RemoveFromCart(c *gin.Context) {
	phone := c.GetString("user_phone")
	productID := c.Param("productId")

	ctx := context.Background()
	cart := LoadCart(ctx, phone)
	if cart == nil {
		c.JSON(http.StatusOK, gin.H{"message": "Panier vide"})
		return
	}

	newCart := []models.CartItem{}
	for _, item := range cart {
		if item.ProductID != productID {
			newCart = append(newCart, item)
		}
	}

	saveCart(ctx, phone, newCart)

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit supprimé du panier",
		"items":   newCart,
	})
}

// ClearCart vide complètement le panier
func ClearCart(c *gin.Context) {
	phone := c.GetString("user_phone")

	if err := ClearUserCart(context.Background(), phone); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors du vidage du panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Panier vidé avec succès",
	})
}
