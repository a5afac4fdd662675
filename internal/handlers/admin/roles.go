package admin

import (
	"log"
	"net/http"
	"time"

	"mobigear_back_end/internal/database"

	"github.com/gin-gonic/gin"
)

// GetAllUsers liste les utilisateurs avec leur rôle
func GetAllUsers(c *gin.Context) {
	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query("SELECT phone, name, email, role, created_at FROM users").Iter()

	type userRow struct {
		Phone     string    `json:"phone"`
		Name      string    `json:"name"`
		Email     string    `json:"email,omitempty"`
		Role      string    `json:"role"`
		CreatedAt time.Time `json:"created_at"`
	}

	var users []userRow
	var u userRow

	for iter.Scan(&u.Phone, &u.Name, &u.Email, &u.Role, &u.CreatedAt) {
		users = append(users, u)
		u = userRow{}
	}

	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur lecture utilisateurs: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération utilisateurs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"count": len(users),
	})
}

// UpdateUserRole promeut ou rétrograde un utilisateur (rôles: user, admin)
func UpdateUserRole(c *gin.Context) {
	phone := c.Param("phone")

	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rôle requis"})
		return
	}

	if req.Role != "user" && req.Role != "admin" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rôle invalide: " + req.Role})
		return
	}

	// Un admin ne peut pas se rétrograder lui-même
	if phone == c.GetString("user_phone") && req.Role != "admin" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Impossible de modifier son propre rôle"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var existing string
	if err := session.Query("SELECT role FROM users WHERE phone = ?", phone).Scan(&existing); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	if err := session.Query("UPDATE users SET role = ? WHERE phone = ?", req.Role, phone).Exec(); err != nil {
		log.Printf("❌ Erreur mise à jour rôle de %s: %v", phone, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour rôle"})
		return
	}

	log.Printf("⭐ Rôle de %s: %s → %s", phone, existing, req.Role)

	c.JSON(http.StatusOK, gin.H{
		"message": "Rôle mis à jour",
		"phone":   phone,
		"role":    req.Role,
	})
}
