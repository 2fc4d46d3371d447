package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/edupoint/timetable-api/internal/engine"
	"github.com/edupoint/timetable-api/internal/handler"
	"github.com/edupoint/timetable-api/internal/middleware"
	"github.com/edupoint/timetable-api/internal/repository"
	"github.com/edupoint/timetable-api/internal/service"
	"github.com/edupoint/timetable-api/pkg/cache"
	"github.com/edupoint/timetable-api/pkg/config"
	"github.com/edupoint/timetable-api/pkg/database"
	"github.com/edupoint/timetable-api/pkg/logger"
	corsmiddleware "github.com/edupoint/timetable-api/pkg/middleware/cors"
	reqidmiddleware "github.com/edupoint/timetable-api/pkg/middleware/requestid"
)

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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect postgres", "error", err)
	}
	defer db.Close()

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Analytics.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, analytics cache disabled", "error", err)
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Analytics.CacheTTL, logr, true)
		}
	}

	teacherRepo := repository.NewTeacherRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	timeslotRepo := repository.NewTimeSlotRepository(db)
	timetableRepo := repository.NewTimetableRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	teacherSvc := service.NewTeacherService(teacherRepo, subjectRepo, validate, logr)
	subjectSvc := service.NewSubjectService(subjectRepo, teacherRepo, validate, logr, service.SubjectConfig{
		DefaultClassGroup: cfg.Generator.DefaultClassGroup,
	})
	roomSvc := service.NewRoomService(roomRepo, validate, logr)
	timeslotSvc := service.NewTimeSlotService(timeslotRepo, validate, logr)
	timetableSvc := service.NewTimetableService(
		teacherRepo,
		subjectRepo,
		roomRepo,
		timeslotRepo,
		timetableRepo,
		engine.NewGenerator(),
		db,
		cacheSvc,
		metricsSvc,
		validate,
		logr,
		service.TimetableConfig{MaxSubjects: cfg.Generator.MaxSubjects},
	)
	analyticsSvc := service.NewAnalyticsService(analyticsRepo, timetableRepo, timeslotRepo, cacheSvc, metricsSvc, logr)

	var exportSvc *service.ExportService
	if cfg.Exports.Enabled {
		exportSvc = service.NewExportService(timetableRepo, service.ExportConfig{Title: cfg.Exports.Title}, logr, nil, nil)
	}

	teacherHandler := handler.NewTeacherHandler(teacherSvc)
	subjectHandler := handler.NewSubjectHandler(subjectSvc)
	roomHandler := handler.NewRoomHandler(roomSvc)
	timeslotHandler := handler.NewTimeSlotHandler(timeslotSvc)
	timetableHandler := handler.NewTimetableHandler(timetableSvc, exportSvc)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsSvc, metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.WithResponseMeta())

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

	api := r.Group(cfg.APIPrefix)
	{
		teachers := api.Group("/teachers")
		{
			teachers.GET("", teacherHandler.List)
			teachers.POST("", teacherHandler.Create)
			teachers.GET("/:id", teacherHandler.Get)
			teachers.PUT("/:id", teacherHandler.Update)
			teachers.DELETE("/:id", teacherHandler.Delete)
		}

		subjects := api.Group("/subjects")
		{
			subjects.GET("", subjectHandler.List)
			subjects.POST("", subjectHandler.Create)
			subjects.GET("/:id", subjectHandler.Get)
			subjects.PUT("/:id", subjectHandler.Update)
			subjects.DELETE("/:id", subjectHandler.Delete)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", roomHandler.List)
			rooms.POST("", roomHandler.Create)
			rooms.GET("/:id", roomHandler.Get)
			rooms.PUT("/:id", roomHandler.Update)
			rooms.DELETE("/:id", roomHandler.Delete)
		}

		timeslots := api.Group("/timeslots")
		{
			timeslots.GET("", timeslotHandler.List)
			timeslots.POST("", timeslotHandler.Create)
			timeslots.GET("/:id", timeslotHandler.Get)
			timeslots.PUT("/:id", timeslotHandler.Update)
			timeslots.DELETE("/:id", timeslotHandler.Delete)
		}

		timetable := api.Group("/timetable")
		{
			timetable.POST("/generate", timetableHandler.Generate)
			timetable.GET("", timetableHandler.List)
			timetable.GET("/export", timetableHandler.Export)
		}

		if cfg.Analytics.Enabled {
			analytics := api.Group("/analytics")
			{
				analytics.GET("/teacher-workload", analyticsHandler.TeacherWorkload)
				analytics.GET("/room-utilization", analyticsHandler.RoomUtilization)
				analytics.GET("/period-load", analyticsHandler.PeriodLoad)
				analytics.GET("/overview", analyticsHandler.Overview)
				analytics.GET("/system", analyticsHandler.SystemMetrics)
			}
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
