package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"webstats/api/config"
	"webstats/api/database"
	"webstats/api/handlers"
	"webstats/api/logging"
	"webstats/api/middleware"
	"webstats/api/services"
	"webstats/api/store"
	"webstats/api/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found or error loading .env: %v", err)
	}

	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if !cfg.Dev {
		gin.SetMode(gin.ReleaseMode)
	}

	dbClient, err := database.NewPostgresDB(cfg)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer dbClient.Close()

	if err := store.EnsureSchema(context.Background(), dbClient.DB); err != nil {
		logger.Fatal("failed to ensure schema", zap.Error(err))
	}

	geoResolver := services.NewIPInfoResolver(cfg, logger)

	cityStore := store.NewCityStore(dbClient.DB, geoResolver, logger)
	sessionStore := store.NewSessionStore(dbClient.DB, logger)
	eventStore := store.NewEventStore(dbClient.DB, logger)
	summaryStore := store.NewSummaryStore(dbClient.DB, logger)

	cityHandlers := handlers.NewCityHandlers(cityStore, logger)
	eventHandlers := handlers.NewEventHandlers(eventStore, logger)
	sessionHandlers := handlers.NewSessionHandlers(sessionStore, logger)
	summaryHandlers := handlers.NewSummaryHandlers(summaryStore, logger)
	collectorHandlers := handlers.NewCollectorHandlers(cityStore, sessionStore, geoResolver, cfg, logger)

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(middleware.RequestLogger(logger))
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware(cfg))

	r.NoRoute(func(c *gin.Context) {
		utils.Error(c, http.StatusNotFound, "Not Found")
	})
	r.NoMethod(func(c *gin.Context) {
		utils.Error(c, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	r.GET("/", func(c *gin.Context) {
		utils.Success(c, gin.H{"message": "Hello, visitors!"})
	})

	r.POST("/city", cityHandlers.Insert)
	r.GET("/city", cityHandlers.List)

	r.POST("/event", eventHandlers.Insert)
	r.GET("/event", eventHandlers.List)
	r.GET("/collect", eventHandlers.Collect)

	r.GET("/session", sessionHandlers.Recent)
	r.GET("/session/map", sessionHandlers.MapData)

	summary := r.Group("/summary")
	{
		summary.GET("/five_minutes", summaryHandlers.FiveMinutes)
		summary.GET("/hourly", summaryHandlers.Hourly)
		summary.GET("/weekly", summaryHandlers.Weekly)
		summary.GET("/urls", summaryHandlers.URLs)
		summary.GET("/browsers", summaryHandlers.Browsers)
		summary.GET("/os_browsers", summaryHandlers.OSBrowsers)
		summary.GET("/referrers", summaryHandlers.Referrers)
		summary.GET("/events", summaryHandlers.Events)
		summary.GET("/percentages", summaryHandlers.Percentages)
	}

	r.GET("/stats.js", collectorHandlers.StatsJS)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Address, cfg.Port),
		Handler: r,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exiting")
}
