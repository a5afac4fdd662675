package routes

import (
	"os"
	"strings"
	"time"

	"mobigear_back_end/internal/handlers"
	"mobigear_back_end/internal/handlers/admin"
	"mobigear_back_end/internal/handlers/catalog"
	"mobigear_back_end/internal/handlers/payment"
	"mobigear_back_end/internal/handlers/user"
	"mobigear_back_end/internal/middleware"
	"mobigear_back_end/internal/realtime"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	r.Use(cors.New(corsConfig()))

	api := r.Group("/api")

	// Vitrine publique
	api.GET("/products", catalog.GetProducts)
	api.GET("/products/:id", catalog.GetProduct)
	api.GET("/products/search", catalog.SearchProducts)
	api.GET("/categories", catalog.GetCategories)
	api.GET("/banners", catalog.GetBanners)

	// Auth
	api.POST("/auth/register", handlers.Register)
	api.POST("/auth/login", middleware.LoginRateLimit(), handlers.Login)

	// Notifications (stub)
	api.POST("/notify", handlers.SendNotification)

	// Suivi temps réel (le numéro de commande fait office de capability)
	api.GET("/ws/orders/:number", realtime.OrderTrackingWebSocket)

	// Espace connecté
	auth := api.Group("/", middleware.AuthRequired())
	{
		auth.GET("/auth/me", handlers.Me)

		auth.GET("/cart", user.GetCart)
		auth.POST("/cart", user.AddToCart)
		auth.PUT("/cart/:productId", user.UpdateCartItem)
		auth.DELETE("/cart/:productId", user.RemoveFromCart)
		auth.DELETE("/cart", user.ClearCart)

		auth.GET("/wishlist", user.GetWishlist)
		auth.POST("/wishlist", user.AddToWishlist)
		auth.DELETE("/wishlist/:productId", user.RemoveFromWishlist)

		auth.GET("/compare", user.GetCompareList)
		auth.POST("/compare", user.AddToCompare)
		auth.DELETE("/compare/:productId", user.RemoveFromCompare)

		auth.GET("/shipping/quote", payment.GetShippingQuote)
		auth.POST("/coupons/validate", payment.ValidateCouponHandler)
		auth.POST("/checkout", payment.Checkout)
		auth.POST("/payment/order", payment.CreatePaymentOrder)
		auth.POST("/payment/verify", payment.VerifyPayment)

		auth.GET("/orders", user.GetMyOrders)
		auth.GET("/orders/:number", user.TrackOrder)
		auth.GET("/orders/:number/qr", user.TrackingQR)

		auth.POST("/repairs", user.BookRepair)
		auth.GET("/repairs", user.GetMyRepairs)
	}

	// Console admin
	adminGroup := api.Group("/admin", middleware.AuthRequired(), middleware.RequireAdmin)
	{
		adminGroup.GET("/dashboard", admin.GetDashboardStats)

		adminGroup.POST("/products", catalog.CreateProduct)
		adminGroup.PUT("/products/:id", catalog.UpdateProduct)
		adminGroup.DELETE("/products/:id", catalog.DeleteProduct)

		adminGroup.POST("/categories", catalog.CreateCategory)
		adminGroup.PUT("/categories/:id", catalog.UpdateCategory)
		adminGroup.DELETE("/categories/:id", catalog.DeleteCategory)

		adminGroup.POST("/banners", catalog.CreateBanner)
		adminGroup.PUT("/banners/:id", catalog.UpdateBanner)
		adminGroup.DELETE("/banners/:id", catalog.DeleteBanner)

		adminGroup.GET("/orders", admin.GetAllOrders)
		adminGroup.PUT("/orders/:number/status", admin.UpdateOrderStatus)
		adminGroup.POST("/orders/:number/cancel", admin.CancelOrder)

		adminGroup.GET("/repairs", admin.GetAllRepairs)
		adminGroup.PUT("/repairs/:id/status", admin.UpdateRepairStatus)

		adminGroup.POST("/coupons", payment.CreateCoupon)
		adminGroup.GET("/coupons", payment.GetAllCoupons)
		adminGroup.PUT("/coupons/:code", payment.UpdateCoupon)
		adminGroup.DELETE("/coupons/:code", payment.DeleteCoupon)

		adminGroup.GET("/users", admin.GetAllUsers)
		adminGroup.PUT("/users/:phone/role", admin.UpdateUserRole)
	}
}

func corsConfig() cors.Config {
	cfg := cors.DefaultConfig()

	origins := os.Getenv("CORS_ALLOWED_ORIGINS")
	if origins == "" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = strings.Split(origins, ",")
	}

	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	cfg.MaxAge = 12 * time.Hour

	return cfg
}
