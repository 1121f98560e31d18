package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	broadcastapp "github.com/shopfront/backend/internal/application/broadcast"
	checkoutapp "github.com/shopfront/backend/internal/application/checkout"
	customerapp "github.com/shopfront/backend/internal/application/customer"
	feedbackapp "github.com/shopfront/backend/internal/application/feedback"
	identityapp "github.com/shopfront/backend/internal/application/identity"
	orderapp "github.com/shopfront/backend/internal/application/order"
	promoapp "github.com/shopfront/backend/internal/application/promo"
	reportapp "github.com/shopfront/backend/internal/application/report"
	"github.com/shopfront/backend/internal/infrastructure/auth"
	"github.com/shopfront/backend/internal/infrastructure/config"
	"github.com/shopfront/backend/internal/infrastructure/invoicing"
	"github.com/shopfront/backend/internal/infrastructure/logger"
	"github.com/shopfront/backend/internal/infrastructure/mail"
	"github.com/shopfront/backend/internal/infrastructure/maintenance"
	"github.com/shopfront/backend/internal/infrastructure/persistence"
	"github.com/shopfront/backend/internal/interfaces/http/handler"
	"github.com/shopfront/backend/internal/interfaces/http/middleware"
	"github.com/shopfront/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting shopfront backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	shipmentRepo := persistence.NewGormShipmentRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	analyticsRepo := persistence.NewGormAnalyticsRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	subscriberRepo := persistence.NewGormSubscriberRepository(db.DB)
	couponRepo := persistence.NewGormCouponRepository(db.DB)
	feedbackRepo := persistence.NewGormFeedbackRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Reset codes live in Redis so restarts do not invalidate them; the
	// in-memory store covers development without a Redis instance.
	var resetCodes auth.ResetCodeStore
	redisStore, err := auth.NewRedisResetCodeStore(cfg.Redis)
	if err != nil {
		if cfg.IsProduction() {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		log.Warn("Redis unavailable, using in-memory reset code store", zap.Error(err))
		resetCodes = auth.NewInMemoryResetCodeStore()
	} else {
		resetCodes = redisStore
		log.Info("Redis connected")
	}

	// Token services
	jwtService := auth.NewJWTService(cfg.JWT)
	feedbackTokens := auth.NewFeedbackTokenService(
		cfg.FeedbackSecretOrDefault(), cfg.JWT.Issuer, cfg.JWT.FeedbackExpiration)

	// Email
	mailer := mail.NewSMTPSender(mail.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		FromName: cfg.SMTP.FromName,
	}, log)
	templates, err := mail.NewTemplates(cfg.Invoice.BrandName, cfg.App.BaseURL)
	if err != nil {
		log.Fatal("Failed to parse email templates", zap.Error(err))
	}

	// Invoice rendering
	renderer, err := invoicing.NewChromedpRenderer(&invoicing.ChromedpConfig{
		DefaultTimeout: cfg.Invoice.RenderTimeout,
		RemoteURL:      cfg.Invoice.ChromeRemote,
		NoSandbox:      cfg.Invoice.NoSandbox,
		Logger:         log,
	})
	if err != nil {
		log.Fatal("Failed to initialize PDF renderer", zap.Error(err))
	}
	defer func() {
		if err := renderer.Close(); err != nil {
			log.Error("Error closing PDF renderer", zap.Error(err))
		}
	}()
	invoiceHTML, err := invoicing.NewTemplateBuilder(invoicing.Branding{
		Name:    cfg.Invoice.BrandName,
		Address: cfg.Invoice.BrandAddress,
		GSTIN:   cfg.Invoice.BrandGSTIN,
		GSTRate: cfg.Invoice.GSTRate,
		Terms:   cfg.Invoice.TermsText,
	})
	if err != nil {
		log.Fatal("Failed to parse invoice template", zap.Error(err))
	}

	// Application services
	orderService := orderapp.NewOrderService(orderRepo, shipmentRepo)
	statusService := orderapp.NewStatusService(
		orderRepo, shipmentRepo, invoiceRepo,
		renderer, invoiceHTML,
		mailer, templates, feedbackTokens, log,
	)
	checkoutService := checkoutapp.NewCheckoutService(orderRepo, customerRepo, couponRepo, statusService, log)
	customerService := customerapp.NewCustomerService(customerRepo)
	importService := customerapp.NewImportService(customerRepo, orderRepo, log)
	newsletterService := customerapp.NewNewsletterService(subscriberRepo, log)
	feedbackService := feedbackapp.NewFeedbackService(feedbackRepo, orderRepo, feedbackTokens, log)
	couponService := promoapp.NewCouponService(couponRepo)
	broadcastService := broadcastapp.NewBroadcastService(
		customerRepo, subscriberRepo, mailer, templates, cfg.Broadcast, log)
	analyticsService := reportapp.NewAnalyticsService(analyticsRepo)
	authService := identityapp.NewAuthService(
		userRepo, customerRepo, jwtService, resetCodes, mailer, templates, cfg.Admin, log)

	// Background retention sweep for stored invoice PDFs
	cleanup := maintenance.NewInvoiceCleanup(invoiceRepo, cfg.HTTP.CleanupInterval, log)
	if err := cleanup.Start(context.Background()); err != nil {
		log.Fatal("Failed to start invoice cleanup", zap.Error(err))
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := cleanup.Stop(stopCtx); err != nil {
			log.Error("Error stopping invoice cleanup", zap.Error(err))
		}
	}()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := router.New(router.Config{
		JWTService: jwtService,
		Logger:     log,
		CORS: middleware.CORSConfig{
			AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		},
		MaxBodyBytes: cfg.HTTP.MaxBodySize,

		Auth:       handler.NewAuthHandler(authService, customerService, cfg.HTTP.CookieSecure),
		Storefront: handler.NewStorefrontHandler(checkoutService, feedbackService, newsletterService),
		Orders:     handler.NewOrderHandler(orderService, statusService),
		Customers:  handler.NewCustomerHandler(customerService, importService),
		Coupons:    handler.NewCouponHandler(couponService),
		Admin:      handler.NewAdminHandler(broadcastService, analyticsService, feedbackService),
	})

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
