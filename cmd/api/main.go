package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/xeur-ai/landing-api/internal/config"
	"github.com/xeur-ai/landing-api/internal/handler"
	"github.com/xeur-ai/landing-api/internal/middleware"
	"github.com/xeur-ai/landing-api/internal/repository/postgres"
	"github.com/xeur-ai/landing-api/internal/service"
	"github.com/xeur-ai/landing-api/pkg/database"
	"github.com/xeur-ai/landing-api/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to the config file")
	flag.Parse()

	logger.Init()
	log := logger.Log

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}

	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.WithError(err).Fatal("failed to connect to postgres")
	}
	if err := database.MigrateDB(db); err != nil {
		log.WithError(err).Fatal("failed to apply migrations")
	}

	// Redis is optional: without it the rate limiter passes everything
	// through.
	rateLimiter := middleware.NewRateLimiter(nil, log)
	if cfg.Redis.Addr != "" {
		redisClient, err := database.NewRedisClient(cfg.Redis)
		if err != nil {
			log.WithError(err).Fatal("failed to connect to redis")
		}
		defer redisClient.Close()
		rateLimiter = middleware.NewRateLimiter(redisClient, log)
	} else {
		log.Warn("REDIS_ADDR not set, rate limiting disabled")
	}

	waitlistRepo := postgres.NewWaitlistRepo(db)
	contactRepo := postgres.NewContactRepo(db)
	newsletterRepo := postgres.NewNewsletterRepo(db)
	investmentRepo := postgres.NewInvestmentRepo(db)
	analyticsRepo := postgres.NewAnalyticsRepo(db)

	var emailService service.EmailService = &service.NoopEmailService{}
	if cfg.Email.Enabled {
		emailService, err = service.NewResendEmailService(cfg.Email.ResendAPIKey, cfg.Email.From)
		if err != nil {
			log.WithError(err).Fatal("failed to init email service")
		}
	} else {
		log.Warn("outbound email disabled, using noop sender")
	}

	notifier := service.NewNotifier(emailService, cfg.Notify.SlackWebhookURL, analyticsRepo, log)

	tokenManager, err := service.NewUnsubscribeTokenManager(cfg.Newsletter.UnsubscribeSecret, cfg.Newsletter.TokenTTL)
	if err != nil {
		log.WithError(err).Fatal("failed to init unsubscribe tokens")
	}

	waitlistService := service.NewWaitlistService(waitlistRepo, notifier, cfg.Email.AdminEmail, log)
	contactService := service.NewContactService(contactRepo, notifier, &cfg.Notify, cfg.Email.From, log)
	newsletterService := service.NewNewsletterService(newsletterRepo, notifier, tokenManager, cfg.Email.AdminEmail, log)
	investmentService := service.NewInvestmentService(investmentRepo, notifier, &cfg.Notify, log)
	analyticsService := service.NewAnalyticsService(analyticsRepo, log)

	waitlistHandler := handler.NewWaitlistHandler(waitlistService)
	contactHandler := handler.NewContactHandler(contactService)
	newsletterHandler := handler.NewNewsletterHandler(newsletterService)
	investmentHandler := handler.NewInvestmentHandler(investmentService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)

	router := gin.Default()
	router.SetTrustedProxies(nil)

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORS.AllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORS.AllowOrigins
	} else {
		corsConfig.AllowOrigins = []string{"https://xeur.ai"}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	router.Use(cors.New(corsConfig))

	intakeLimit := rateLimiter.Limit(middleware.DefaultIntakeRateLimitConfig())
	analyticsLimit := rateLimiter.Limit(middleware.AnalyticsRateLimitConfig())

	api := router.Group("/api")
	{
		waitlist := api.Group("/waitlist")
		{
			waitlist.POST("", intakeLimit, waitlistHandler.Join)
			waitlist.GET("", waitlistHandler.Status)
			waitlist.PATCH("", waitlistHandler.Update)
		}

		contact := api.Group("/contact")
		{
			contact.POST("", intakeLimit, contactHandler.Submit)
			contact.GET("", contactHandler.List)
			contact.PATCH("", contactHandler.UpdateStatus)
		}

		admin := api.Group("/admin")
		{
			admin.GET("/waitlist/export", waitlistHandler.Export)
			admin.GET("/contacts/export", contactHandler.Export)
		}

		newsletter := api.Group("/newsletter")
		{
			newsletter.POST("", intakeLimit, newsletterHandler.Subscribe)
			newsletter.GET("", newsletterHandler.List)
			newsletter.PATCH("", newsletterHandler.Update)
			newsletter.DELETE("", newsletterHandler.Unsubscribe)
		}

		investment := api.Group("/investment")
		{
			investment.POST("", intakeLimit, investmentHandler.Submit)
			investment.GET("", investmentHandler.List)
			investment.PATCH("", investmentHandler.UpdateStatus)
		}

		analytics := api.Group("/analytics")
		{
			analytics.POST("", analyticsLimit, analyticsHandler.Track)
			analytics.PATCH("", analyticsLimit, analyticsHandler.TrackBatch)
			analytics.GET("", analyticsHandler.Report)
			analytics.PUT("", analyticsHandler.Dashboard)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Server.Port).Info("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("forced shutdown")
	}
	log.Info("server stopped")
}
