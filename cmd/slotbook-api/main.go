package main

import (
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/slotbook/slotbook-api/api/swagger"
	"github.com/slotbook/slotbook-api/internal/handler"
	"github.com/slotbook/slotbook-api/internal/middleware"
	"github.com/slotbook/slotbook-api/internal/palette"
	"github.com/slotbook/slotbook-api/internal/repository"
	"github.com/slotbook/slotbook-api/internal/service"
	"github.com/slotbook/slotbook-api/internal/slug"
	"github.com/slotbook/slotbook-api/pkg/cache"
	"github.com/slotbook/slotbook-api/pkg/config"
	"github.com/slotbook/slotbook-api/pkg/database"
	"github.com/slotbook/slotbook-api/pkg/logger"
	corsmiddleware "github.com/slotbook/slotbook-api/pkg/middleware/cors"
	reqidmiddleware "github.com/slotbook/slotbook-api/pkg/middleware/requestid"
)

// @title SlotBook API
// @version 1.0.0
// @description Shareable daily appointment schedules with conflict-free booking
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		// Preferences degrade to defaults without Redis; keep serving.
		logr.Sugar().Warnw("redis unavailable, view preferences disabled", "error", err)
		redisClient = nil
	}

	scheduleRepo := repository.NewScheduleRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	preferenceRepo := repository.NewPreferenceRepository(redisClient, cfg.Booking.PreferenceTTL)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	colors := palette.NewRegistry(rng)
	slugs := slug.NewGenerator(rand.New(rand.NewSource(time.Now().UnixNano())))

	metricsSvc := service.NewMetricsService()
	preferenceSvc := service.NewPreferenceService(preferenceRepo, cfg.Booking, logr)
	scheduleSvc := service.NewScheduleService(scheduleRepo, appointmentRepo, preferenceSvc, preferenceRepo, slugs, colors, nil, logr, cfg.Booking.SlugMaxAttempts)
	appointmentSvc := service.NewAppointmentService(appointmentRepo, scheduleSvc, colors, nil, metricsSvc, logr)
	viewSvc := service.NewViewService(scheduleRepo, appointmentRepo, preferenceSvc, colors, logr)
	exportSvc := service.NewExportService(scheduleSvc, appointmentRepo, logr)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handlers := handler.Handlers{
		Schedules:    handler.NewScheduleHandler(scheduleSvc),
		Appointments: handler.NewAppointmentHandler(appointmentSvc),
		Views:        handler.NewViewHandler(viewSvc),
		Preferences:  handler.NewPreferenceHandler(preferenceSvc, scheduleSvc),
	}
	if cfg.Export.Enabled {
		handlers.Exports = handler.NewExportHandler(exportSvc)
	}
	handler.RegisterRoutes(r.Group(cfg.APIPrefix), handlers)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
