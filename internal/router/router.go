// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/prodmarket/marketplace-backend/internal/config"
	"github.com/prodmarket/marketplace-backend/internal/handlers"
	"github.com/prodmarket/marketplace-backend/internal/middleware"
	"github.com/prodmarket/marketplace-backend/internal/services"
	"github.com/prodmarket/marketplace-backend/internal/utils"
)

// Setup wires services, middleware and routes into a gin engine.
func Setup(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	utils.RegisterCustomValidators()

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.AccessTokenDuration, cfg.JWT.RefreshTokenDuration)

	authz := services.NewAuthorizationService()
	notifier := services.NewNotificationService(cfg.Email, cfg.Frontend.URL)
	aiService := services.NewAIService(cfg.AI)

	authService := services.NewAuthService(db, jwtManager)
	userService := services.NewUserService(db, authz, notifier)
	businessService := services.NewBusinessService(db)
	productService := services.NewProductService(db, authz)
	chatService := services.NewChatService(db, aiService)

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	businessHandler := handlers.NewBusinessHandler(businessService)
	productHandler := handlers.NewProductHandler(productService)
	chatHandler := handlers.NewChatHandler(chatService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Frontend.URL))

	rateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.Server.RateLimitRPS), cfg.Server.RateLimitBurst)
	r.Use(rateLimiter.Middleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/v1")
	v1.Use(middleware.AuditLogger(db))

	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/change-password", middleware.AuthRequired(jwtManager), authHandler.ChangePassword)
		auth.POST("/logout", middleware.AuthRequired(jwtManager), authHandler.Logout)
		auth.GET("/me", middleware.AuthRequired(jwtManager), authHandler.Me)
	}

	public := v1.Group("/public")
	{
		public.GET("/products", productHandler.ListPublic)
	}

	// Authenticated routes. Users with an unchanged temporary password are
	// held at the guard until they change it.
	protected := v1.Group("")
	protected.Use(middleware.AuthRequired(jwtManager))
	protected.Use(middleware.PasswordChangeGuard(db))
	{
		users := protected.Group("/users")
		{
			users.POST("", middleware.AdminRequired(), userHandler.Invite)
			users.GET("", userHandler.List)
			users.GET("/:id", userHandler.Get)
			users.PUT("/:id", middleware.AdminRequired(), userHandler.Update)
			users.DELETE("/:id", middleware.AdminRequired(), userHandler.Delete)
		}

		businesses := protected.Group("/businesses")
		{
			businesses.GET("/me", businessHandler.Get)
			businesses.PUT("/me", middleware.AdminRequired(), businessHandler.Update)
		}

		products := protected.Group("/products")
		{
			products.POST("", productHandler.Create)
			products.GET("", productHandler.List)
			products.GET("/:id", productHandler.Get)
			products.PUT("/:id", productHandler.Update)
			products.DELETE("/:id", productHandler.Delete)
			products.POST("/:id/submit", productHandler.Submit)
			products.POST("/:id/approve", productHandler.Approve)
		}

		chat := protected.Group("/chat")
		{
			chat.POST("", chatHandler.Query)
			chat.GET("/history", chatHandler.History)
		}
	}

	return r
}
