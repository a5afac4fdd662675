package catalog

import (
	"log"
	"net/http"
	"strconv"

	"mobigear_back_end/internal/services"

	"github.com/gin-gonic/gin"
)

// SearchProducts recherche plein texte via Elasticsearch
func SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Paramètre q requis"})
		return
	}

	limit := 20
	if l := c.Query("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil {
			limit = n
		}
	}

	products, err := services.SearchProducts(query, limit)
	if err != nil {
		log.Printf("❌ Erreur recherche: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la recherche"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
		"query":    query,
	})
}
