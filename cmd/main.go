package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"portfolio-tracker/internal/config"
	"portfolio-tracker/internal/controllers"
	"portfolio-tracker/internal/marketdata"
	"portfolio-tracker/internal/middleware"
	mongorepo "portfolio-tracker/internal/repositories/mongo"
	"portfolio-tracker/internal/services"
	"portfolio-tracker/pkg/cache"
	"portfolio-tracker/pkg/database"
	"portfolio-tracker/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	logger.Init(cfg.Logger)
	logrus.Info("starting portfolio tracker API")

	db, err := database.NewMongoDB(cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to MongoDB")
	}
	defer func() {
		if err := db.Disconnect(); err != nil {
			logrus.WithError(err).Error("failed to disconnect from MongoDB")
		}
	}()

	redisClient, err := cache.NewRedisClient(cfg.Cache)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to Redis")
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logrus.WithError(err).Error("failed to close Redis connection")
		}
	}()

	provider, err := marketdata.NewProvider(cfg.MarketData)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create market data provider")
	}
	logrus.WithField("provider", provider.Name()).Info("market data provider ready")

	mongoDatabase := db.GetDatabase()
	portfolioRepo := mongorepo.NewPortfolioRepository(mongoDatabase)
	transactionRepo := mongorepo.NewTransactionRepository(mongoDatabase)
	alertRepo := mongorepo.NewAlertRepository(mongoDatabase)
	userRepo := mongorepo.NewUserRepository(mongoDatabase)

	portfolioService := services.NewPortfolioService(portfolioRepo, transactionRepo, redisClient)
	analyticsService := services.NewAnalyticsService(portfolioRepo, transactionRepo, redisClient)
	transactionService := services.NewTransactionService(transactionRepo)
	alertService := services.NewAlertService(alertRepo)
	authService := services.NewAuthService(userRepo, cfg.Auth)
	marketDataService := services.NewMarketDataService(provider, redisClient, cfg.MarketData)

	router := setupRouter(cfg,
		controllers.NewAuthController(authService),
		controllers.NewPortfolioController(portfolioService),
		controllers.NewAlertController(alertService),
		controllers.NewAnalyticsController(analyticsService),
		controllers.NewAssetController(transactionService, analyticsService),
		controllers.NewMarketDataController(marketDataService),
		db, redisClient,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logrus.WithField("port", cfg.Server.Port).Info("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("forced shutdown")
	}
	logrus.Info("server stopped")
}

func setupRouter(
	cfg *config.Config,
	authController *controllers.AuthController,
	portfolioController *controllers.PortfolioController,
	alertController *controllers.AlertController,
	analyticsController *controllers.AnalyticsController,
	assetController *controllers.AssetController,
	marketDataController *controllers.MarketDataController,
	db *database.MongoDB,
	redisClient *cache.RedisClient,
) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New())
	router.Use(middleware.CORS(cfg.CORS))
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics())
	router.Use(middleware.NewRateLimitMiddleware(cfg.RateLimit).Limit())

	router.GET("/health", func(c *gin.Context) {
		status := http.StatusOK
		checks := gin.H{"mongodb": "ok", "redis": "ok"}
		if err := db.Ping(c.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			checks["mongodb"] = err.Error()
		}
		if err := redisClient.Ping(c.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			checks["redis"] = err.Error()
		}
		c.JSON(status, gin.H{"status": http.StatusText(status), "checks": checks})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := router.Group("/api/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	authMiddleware := middleware.NewAuthMiddleware(cfg.Auth)
	api := router.Group("/api")
	api.Use(authMiddleware.RequireAuth())
	{
		api.GET("/auth/me", authController.Me)

		portfolios := api.Group("/portfolios")
		{
			portfolios.GET("", portfolioController.List)
			portfolios.POST("", portfolioController.Create)
			portfolios.GET("/:id", portfolioController.Get)
			portfolios.PUT("/:id", portfolioController.Update)
			portfolios.DELETE("/:id", portfolioController.Delete)
			portfolios.POST("/:id/assets", portfolioController.AddAsset)
			portfolios.PUT("/:id/assets/:assetId", portfolioController.UpdateAsset)
			portfolios.DELETE("/:id/assets/:assetId", portfolioController.RemoveAsset)
		}

		alerts := api.Group("/alerts")
		{
			alerts.GET("", alertController.List)
			alerts.POST("", alertController.Create)
			alerts.PUT("/:id", alertController.Update)
			alerts.DELETE("/:id", alertController.Delete)
		}

		analytics := api.Group("/analytics")
		{
			analytics.GET("/overview", analyticsController.Overview)
			analytics.GET("/portfolio/:id/performance", analyticsController.Performance)
			analytics.GET("/portfolio/:id/diversification", analyticsController.Diversification)
			analytics.GET("/portfolio/:id/risk", analyticsController.Risk)
		}

		assets := api.Group("/assets")
		{
			assets.GET("/transactions", assetController.ListTransactions)
			assets.GET("/transactions/:id", assetController.GetTransaction)
			assets.GET("/summary", assetController.Summary)
		}

		marketData := api.Group("/market-data")
		{
			marketData.GET("/quote/:symbol", marketDataController.Quote)
			marketData.POST("/quotes", marketDataController.Quotes)
			marketData.GET("/historical/:symbol", marketDataController.Historical)
			marketData.GET("/search", marketDataController.Search)
			marketData.GET("/trending", marketDataController.Trending)
		}
	}

	return router
}
