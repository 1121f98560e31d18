package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shopfront/backend/internal/infrastructure/auth"
	"github.com/shopfront/backend/internal/infrastructure/logger"
	"github.com/shopfront/backend/internal/interfaces/http/handler"
	"github.com/shopfront/backend/internal/interfaces/http/middleware"
)

// RouteRegistrar registers a group of related routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Config holds everything the router needs to assemble the API surface
type Config struct {
	JWTService   *auth.JWTService
	Logger       *zap.Logger
	CORS         middleware.CORSConfig
	MaxBodyBytes int64

	Auth       *handler.AuthHandler
	Storefront *handler.StorefrontHandler
	Orders     *handler.OrderHandler
	Customers  *handler.CustomerHandler
	Coupons    *handler.CouponHandler
	Admin      *handler.AdminHandler
}

// New builds the gin engine with the public /api group and the JWT-guarded
// /admin group.
func New(cfg Config) *gin.Engine {
	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(middleware.RequestID())
	if cfg.Logger != nil {
		engine.Use(logger.Recovery(cfg.Logger))
		engine.Use(logger.GinMiddleware(cfg.Logger))
	} else {
		engine.Use(gin.Recovery())
	}
	engine.Use(middleware.CORSWithConfig(cfg.CORS))
	if cfg.MaxBodyBytes > 0 {
		engine.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	}

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	{
		api.POST("/auth/signup", cfg.Auth.Signup)
		api.POST("/auth/login", cfg.Auth.Login)
		api.POST("/auth/logout", cfg.Auth.Logout)
		api.POST("/auth/forgot-password", cfg.Auth.ForgotPassword)
		api.POST("/auth/reset-password", cfg.Auth.ResetPassword)

		account := api.Group("/account")
		account.Use(middleware.RequireCustomer(cfg.JWTService))
		account.GET("", cfg.Auth.Account)

		cfg.Storefront.RegisterRoutes(api)
	}

	admin := engine.Group("/admin")
	{
		admin.POST("/login", cfg.Auth.AdminLogin)

		guarded := admin.Group("")
		guarded.Use(middleware.RequireAdmin(cfg.JWTService))
		guarded.POST("/logout", cfg.Auth.AdminLogout)
		for _, r := range []RouteRegistrar{cfg.Orders, cfg.Customers, cfg.Coupons, cfg.Admin} {
			r.RegisterRoutes(guarded)
		}
	}

	return engine
}
