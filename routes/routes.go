package routes

import (
	"tomato-backend/configs"
	"tomato-backend/controllers"
	"tomato-backend/middlewares"
	"tomato-backend/repository"
	"tomato-backend/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "requestsServed": middlewares.RequestCount()})
	})

	// Repositories
	userRepo := repository.NewUserRepository(db)
	restRepo := repository.NewRestaurantRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	txnRepo := repository.NewTransactionRepository(db)

	// Services
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	orderSvc := services.NewOrderService(db, orderRepo, txnRepo, restRepo, cfg.GSTRate, cfg.PlatformFeeRate)
	ratingSvc := services.NewRatingService(db, orderRepo, restRepo)
	revenueSvc := services.NewRevenueService(orderRepo)
	walletSvc := services.NewWalletService(db, userRepo, txnRepo)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	orderCtrl := controllers.NewOrderController(orderSvc, ratingSvc)
	ownerCtrl := controllers.NewOwnerOrderController(orderSvc)
	revenueCtrl := controllers.NewRevenueController(revenueSvc, restRepo, cfg.RequestTimeout)
	restCtrl := controllers.NewRestaurantController(restRepo)
	walletCtrl := controllers.NewWalletController(walletSvc, txnRepo)

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
	}
	a.GET("/me", middlewares.AuthMiddleware(cfg.JWTSecret), authCtrl.Me)

	// Public
	r.GET("/restaurants", restCtrl.List)
	r.GET("/restaurants/:id/menu", restCtrl.Menu)

	// Orders
	auth := middlewares.AuthMiddleware(cfg.JWTSecret)
	o := r.Group("/orders", auth)
	{
		o.POST("", orderCtrl.Checkout)
		o.GET("", orderCtrl.List)
		o.POST("/cancel", orderCtrl.Cancel)
		o.POST("/rate", orderCtrl.Rate)
		o.DELETE("/:id/rating", orderCtrl.RemoveRating)
	}
	r.PATCH("/orders/:id", middlewares.AuthMiddleware(cfg.JWTSecret, "owner"), ownerCtrl.UpdateStatus)

	// Revenue
	r.GET("/revenue", middlewares.AuthMiddleware(cfg.JWTSecret, "owner"), revenueCtrl.Merchant)
	r.GET("/platform-revenue", middlewares.AuthMiddleware(cfg.JWTSecret, "admin"), revenueCtrl.Platform)

	// Wallet / premium
	w := r.Group("/", auth)
	{
		w.POST("/wallet/recharge", walletCtrl.Recharge)
		w.POST("/premium/purchase", walletCtrl.PurchasePremium)
		w.GET("/transactions", walletCtrl.History)
	}
}
