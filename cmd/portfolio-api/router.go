package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/portfolio-api/api/swagger"
	"github.com/noah-isme/portfolio-api/internal/handler"
	"github.com/noah-isme/portfolio-api/internal/middleware"
	"github.com/noah-isme/portfolio-api/internal/service"
	"github.com/noah-isme/portfolio-api/pkg/config"
	"github.com/noah-isme/portfolio-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/portfolio-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/portfolio-api/pkg/middleware/requestid"
)

type routerDeps struct {
	db          handler.Pinger
	metrics     *service.MetricsService
	tokens      middleware.TokenValidator
	courses     *service.CourseService
	assignments *service.AssignmentService
	gpa         *service.GPAService
	admissions  *service.AdmissionsService
	testScores  *service.TestScoreService
	transcripts *service.TranscriptService
	recalc      *service.RecalculationService
}

func newRouter(cfg *config.Config, logr *zap.Logger, deps routerDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(deps.metrics, "/metrics"))

	metricsHandler := handler.NewMetricsHandler(deps.metrics, deps.db)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	courseHandler := handler.NewCourseHandler(deps.courses, deps.recalc)
	assignmentHandler := handler.NewAssignmentHandler(deps.assignments)
	gpaHandler := handler.NewGPAHandler(deps.gpa)
	admissionsHandler := handler.NewAdmissionsHandler(deps.admissions, deps.testScores)
	transcriptHandler := handler.NewTranscriptHandler(deps.transcripts)

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.JWT(deps.tokens), middleware.WithResponseMeta())
	{
		api.GET("/courses", courseHandler.List)
		api.POST("/courses", courseHandler.Create)
		api.POST("/courses/recalculate", courseHandler.Recalculate)
		api.GET("/courses/:id", courseHandler.Get)
		api.PUT("/courses/:id", courseHandler.Update)
		api.DELETE("/courses/:id", courseHandler.Delete)

		api.GET("/courses/:id/assignments", assignmentHandler.List)
		api.POST("/courses/:id/assignments", assignmentHandler.Create)
		api.GET("/courses/:id/breakdown", assignmentHandler.Breakdown)
		api.PUT("/courses/:id/weights", assignmentHandler.SetWeights)
		api.PUT("/assignments/:id", assignmentHandler.Update)
		api.DELETE("/assignments/:id", assignmentHandler.Delete)

		api.GET("/gpa", gpaHandler.Summary)

		api.GET("/admissions/risk", admissionsHandler.RiskAll)
		api.GET("/admissions/risk/:universityId", admissionsHandler.Risk)
		api.GET("/test-scores", admissionsHandler.ListTestScores)
		api.POST("/test-scores", admissionsHandler.CreateTestScore)

		api.GET("/transcript/export", transcriptHandler.Export)
		api.GET("/metrics/summary", metricsHandler.Snapshot)
	}

	return r
}
