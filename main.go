// @title Ops Dashboard API
// @version 1.0
// @description Order analytics, exports and assistant backend for the operations dashboard
// @host localhost:8081
// @BasePath /
// @schemes http
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Modeva-Ecommerce/ops-dashboard-backend/assistant"
	"github.com/Modeva-Ecommerce/ops-dashboard-backend/config"
	"github.com/Modeva-Ecommerce/ops-dashboard-backend/controllers/dashboard/assistant_controller"
	"github.com/Modeva-Ecommerce/ops-dashboard-backend/controllers/dashboard/order_controller"
	"github.com/Modeva-Ecommerce/ops-dashboard-backend/controllers/dashboard/refresh_controller"
	"github.com/Modeva-Ecommerce/ops-dashboard-backend/middleware"
	"github.com/Modeva-Ecommerce/ops-dashboard-backend/routes/dashboard_routes"
	"github.com/Modeva-Ecommerce/ops-dashboard-backend/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Optional stores
	config.InitDB(cfg)
	defer config.CloseDB()
	config.ConnectRedis(cfg)

	orderService := services.NewOrderServiceFromConfig(cfg, config.RedisClient)
	log.Println("✅ Order service initialized")

	// Refresh history lives in Postgres when configured
	var history services.RefreshHistory = services.NewMemoryRefreshHistory()
	if config.DB != nil && config.Gorm != nil {
		pg := services.NewPostgresRefreshHistory(config.DB, config.Gorm)
		if err := pg.Migrate(); err != nil {
			log.Printf("❌ refresh_runs migration failed: %v (using in-memory history)", err)
		} else {
			history = pg
			log.Println("✅ Refresh history stored in Postgres")
		}
	}

	var notifier services.Notifier
	if tg := services.NewTelegramNotifier(cfg.Telegram); tg != nil {
		notifier = tg
	}

	scheduler := services.NewRefreshScheduler(orderService, history, notifier, cfg.RefreshInterval)
	defer func() { _ = scheduler.Stop() }()

	parser := services.NewPromptParser(cfg.Gemini)
	if parser.Available() {
		log.Printf("✅ Prompt parser enabled (%s)", cfg.Gemini.Model)
	} else {
		log.Println("⚠️  GEMINI_API_KEY not set, assistant uses local heuristics only")
	}
	orchestrator := assistant.NewOrchestrator(orderService, parser, assistant.NewSessionStore(), assistant.DefaultTimeoutPolicy(), orderService.Now)

	order_controller.Init(orderService)
	refresh_controller.Init(scheduler)
	assistant_controller.Init(orchestrator, parser)

	corsCfg := cors.Config{
		AllowOrigins:     cfg.Origins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
		ExposeHeaders:    []string{"Content-Disposition", "Content-Length", middleware.RequestIDHeader}, // downloads read the filename
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(cors.New(corsCfg))

	dashboard_routes.SetupHealthRoutes(router)

	api := router.Group("/api")
	api.Use(middleware.RateLimiter(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window))
	dashboard_routes.SetupOrderRoutes(api)
	dashboard_routes.SetupRefreshRoutes(api)
	dashboard_routes.SetupAssistantRoutes(api)
	log.Println("✅ Routes registered")

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		fmt.Printf("🚀 Server is running on http://localhost:%s\n", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("🛑 Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Graceful shutdown failed: %v", err)
	}
}
