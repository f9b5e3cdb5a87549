package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/student-ews-api/api/swagger"
	"github.com/noah-isme/student-ews-api/internal/handler"
	"github.com/noah-isme/student-ews-api/internal/middleware"
	"github.com/noah-isme/student-ews-api/internal/ml"
	"github.com/noah-isme/student-ews-api/internal/models"
	"github.com/noah-isme/student-ews-api/internal/repository"
	"github.com/noah-isme/student-ews-api/internal/service"
	"github.com/noah-isme/student-ews-api/pkg/cache"
	"github.com/noah-isme/student-ews-api/pkg/config"
	"github.com/noah-isme/student-ews-api/pkg/database"
	"github.com/noah-isme/student-ews-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/student-ews-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/student-ews-api/pkg/middleware/requestid"
)

// @title Student Early Warning API
// @version 0.1.0
// @description Dropout risk prediction and monitoring service
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
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		redisClient = nil
	}

	artifacts := ml.NewStore(cfg.Model.ArtifactPath, logr)

	metricsService := service.NewMetricsService()
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	cacheService := service.NewCacheService(cacheRepo, metricsService, cfg.Prediction.CacheTTL, logr,
		cfg.Monitoring.CacheEnabled && redisClient != nil)

	studentRepo := repository.NewStudentRepository(db)
	academicRepo := repository.NewAcademicRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	financialRepo := repository.NewFinancialRepository(db)
	curricularRepo := repository.NewCurricularRepository(db)
	assessmentRepo := repository.NewAssessmentRepository(db)
	alertRepo := repository.NewAlertRepository(db)

	authService := service.NewAuthService(cfg.JWT)
	featureService := service.NewFeatureService(service.FeatureServiceParams{
		Students:   studentRepo,
		Academics:  academicRepo,
		Attendance: attendanceRepo,
		Financial:  financialRepo,
		Curricular: curricularRepo,
		Logger:     logr,
	})
	predictionService := service.NewPredictionService(service.PredictionServiceParams{
		Features:    featureService,
		Assessments: assessmentRepo,
		Artifacts:   artifacts,
		Roster:      studentRepo,
		Cache:       cacheService,
		Metrics:     metricsService,
		Logger:      logr,
		CacheTTL:    cfg.Prediction.CacheTTL,
	})

	var alerts *repository.AlertRepository
	if cfg.Monitoring.PersistAlerts {
		alerts = alertRepo
	}
	monitoringParams := service.MonitoringServiceParams{
		Collector:   featureService,
		Academics:   academicRepo,
		Attendance:  attendanceRepo,
		Financial:   financialRepo,
		Curricular:  curricularRepo,
		Assessments: assessmentRepo,
		Cache:       cacheService,
		Metrics:     metricsService,
		Logger:      logr,
		CacheTTL:    cfg.Monitoring.CacheTTL,
		Lookback:    cfg.Monitoring.TrendLookback,
	}
	if alerts != nil {
		monitoringParams.Alerts = alerts
	}
	monitoringService := service.NewMonitoringService(monitoringParams)

	dashboardService := service.NewDashboardService(service.DashboardServiceParams{
		Students:   studentRepo,
		Academics:  academicRepo,
		Attendance: attendanceRepo,
		Logger:     logr,
	})
	recordService := service.NewRecordService(service.RecordServiceParams{
		Students:   studentRepo,
		Academics:  academicRepo,
		Attendance: attendanceRepo,
		Financial:  financialRepo,
		Curricular: curricularRepo,
		Cache:      cacheService,
		Logger:     logr,
	})

	riskHandler := handler.NewRiskHandler(predictionService, studentRepo, cfg.Prediction.BatchMaxSize)
	monitoringHandler := handler.NewMonitoringHandler(monitoringService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	recordHandler := handler.NewRecordHandler(recordService)
	metricsHandler := handler.NewMetricsHandler(metricsService)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsService))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.JWT(authService))
	api.Use(middleware.WithResponseMeta())

	staff := middleware.RequireRoles(models.RoleCounselor, models.RoleAdmin)
	staffOrSelf := middleware.RBAC(string(models.RoleCounselor), string(models.RoleAdmin), middleware.Self)

	api.GET("/students/:id/risk", staffOrSelf, riskHandler.Get)
	api.POST("/students/risk/batch", staff, riskHandler.Batch)
	api.GET("/students/:id/monitoring", staff, monitoringHandler.Summary)
	api.GET("/students/:id/dashboard", staffOrSelf, dashboardHandler.Student)

	api.POST("/students/:id/academics", staff, recordHandler.CreateAcademic)
	api.GET("/students/:id/academics", staff, recordHandler.ListAcademics)
	api.POST("/students/:id/attendance", staff, recordHandler.CreateAttendance)
	api.GET("/students/:id/attendance", staff, recordHandler.ListAttendance)
	api.POST("/students/:id/financial", staff, recordHandler.SetFinancial)
	api.GET("/students/:id/financial", staff, recordHandler.GetFinancial)
	api.POST("/students/:id/curricular", staff, recordHandler.CreateCurricular)
	api.GET("/students/:id/curricular", staff, recordHandler.ListCurricular)

	api.POST("/model/reload", middleware.RequireRoles(models.RoleAdmin), riskHandler.Reload)
	api.GET("/system/metrics", middleware.RequireRoles(models.RoleAdmin), metricsHandler.Snapshot)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
