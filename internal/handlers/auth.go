package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"mobigear_back_end/internal/database"
	"mobigear_back_end/internal/middleware"
	"mobigear_back_end/internal/models"
	"mobigear_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

// Register crée un compte utilisateur identifié par son numéro de téléphone
func Register(c *gin.Context) {
	var req struct {
		Phone    string `json:"phone" binding:"required"`
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email"`
		Password string `json:"password" binding:"required,min=8"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	phone := normalizePhone(req.Phone)
	if len(phone) < 10 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Numéro de téléphone invalide"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var existing string
	if err := session.Query("SELECT phone FROM users WHERE phone = ?", phone).Scan(&existing); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Un compte existe déjà avec ce numéro"})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	user := models.User{
		Phone:        phone,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         "user",
		CreatedAt:    time.Now(),
	}

	if err := session.Query(`
		INSERT INTO users (phone, name, email, password_hash, role, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, user.Phone, user.Name, user.Email, user.PasswordHash, user.Role, user.CreatedAt).Exec(); err != nil {
		log.Printf("❌ Erreur création utilisateur: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la création du compte"})
		return
	}

	token, err := middleware.IssueToken(user.Phone, user.Email, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	log.Printf("✅ Compte créé pour %s", phone)

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  user,
	})
}

// Login authentifie un utilisateur par téléphone + mot de passe
func Login(c *gin.Context) {
	var req struct {
		Phone    string `json:"phone" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	phone := normalizePhone(req.Phone)

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var user models.User
	err = session.Query(`
		SELECT phone, name, email, password_hash, role, created_at
		FROM users WHERE phone = ?
	`, phone).Scan(&user.Phone, &user.Name, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt)
	if err != nil {
		middleware.RecordLoginFailure(phone)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Identifiants invalides"})
		return
	}

	ok, err := utils.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil || !ok {
		middleware.RecordLoginFailure(phone)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Identifiants invalides"})
		return
	}

	middleware.ResetLoginAttempts(phone)

	token, err := middleware.IssueToken(user.Phone, user.Email, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	log.Printf("✅ Connexion de %s (%s)", phone, user.Role)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// Me retourne le profil de l'utilisateur connecté
func Me(c *gin.Context) {
	phone := c.GetString("user_phone")

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var user models.User
	err = session.Query(`
		SELECT phone, name, email, role, created_at FROM users WHERE phone = ?
	`, phone).Scan(&user.Phone, &user.Name, &user.Email, &user.Role, &user.CreatedAt)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	c.JSON(http.StatusOK, user)
}

func normalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	phone = strings.ReplaceAll(phone, " ", "")
	phone = strings.ReplaceAll(phone, "-", "")
	return phone
}
