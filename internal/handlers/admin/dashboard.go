package admin

import (
	"log"
	"net/http"

	"mobigear_back_end/internal/database"
	"mobigear_back_end/internal/models"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats agrège les compteurs de la console admin en un seul appel.
// Tout est calculé par scan complet : acceptable au volume actuel, à revoir
// si le nombre de commandes dépasse quelques dizaines de milliers.
func GetDashboardStats(c *gin.Context) {
	ordersSession, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	ordersByStatus := map[string]int{}
	var totalOrders int
	var totalRevenue float64

	iter := ordersSession.Query("SELECT status, total_price FROM orders").Iter()
	var status string
	var total float64
	for iter.Scan(&status, &total) {
		ordersByStatus[status]++
		totalOrders++
		// Le chiffre d'affaires exclut les commandes annulées
		if status != models.OrderStatusCancelled {
			totalRevenue += total
		}
	}
	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur agrégation commandes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur calcul statistiques"})
		return
	}

	repairsByStatus := map[string]int{}
	var totalRepairs int

	if usersSession, err := database.GetUsersSession(); err == nil {
		iter = usersSession.Query("SELECT status FROM repair_requests").Iter()
		for iter.Scan(&status) {
			repairsByStatus[status]++
			totalRepairs++
		}
		if err := iter.Close(); err != nil {
			log.Printf("⚠️ Erreur agrégation réparations: %v", err)
		}
	}

	var totalProducts int
	if productsSession, err := database.GetProductsSession(); err == nil {
		if err := productsSession.Query("SELECT COUNT(*) FROM products").Scan(&totalProducts); err != nil {
			log.Printf("⚠️ Erreur comptage produits: %v", err)
		}
	}

	var totalUsers int
	if usersSession, err := database.GetUsersSession(); err == nil {
		if err := usersSession.Query("SELECT COUNT(*) FROM users").Scan(&totalUsers); err != nil {
			log.Printf("⚠️ Erreur comptage utilisateurs: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": gin.H{
			"total":     totalOrders,
			"by_status": ordersByStatus,
			"revenue":   totalRevenue,
		},
		"repairs": gin.H{
			"total":     totalRepairs,
			"by_status": repairsByStatus,
		},
		"products": totalProducts,
		"users":    totalUsers,
	})
}
