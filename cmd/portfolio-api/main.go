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

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/portfolio-api/internal/repository"
	"github.com/noah-isme/portfolio-api/internal/service"
	"github.com/noah-isme/portfolio-api/pkg/cache"
	"github.com/noah-isme/portfolio-api/pkg/config"
	"github.com/noah-isme/portfolio-api/pkg/database"
	"github.com/noah-isme/portfolio-api/pkg/export"
	"github.com/noah-isme/portfolio-api/pkg/logger"
)

// @title Portfolio API
// @version 1.0.0
// @description Course grades, GPA and admission risk for college portfolios
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

const shutdownTimeout = 15 * time.Second

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, gpa cache disabled", zap.Error(err))
		} else {
			defer redisClient.Close() //nolint:errcheck
		}
	}

	validate := validator.New()
	metrics := service.NewMetricsService()

	courseRepo := repository.NewCourseRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	universityRepo := repository.NewUniversityRepository(db)
	testScoreRepo := repository.NewTestScoreRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.GPA.CacheTTL, logr, cfg.GPA.CacheEnabled && redisClient != nil)
	tokens := service.NewTokenService(service.TokenConfig{
		Secret:   cfg.JWT.Secret,
		Issuer:   cfg.JWT.Issuer,
		Audience: firstOf(cfg.JWT.Audience),
	})
	courses := service.NewCourseService(courseRepo, cacheSvc, validate, logr)
	assignments := service.NewAssignmentService(assignmentRepo, courseRepo, cacheSvc, metrics, validate, logr)
	gpa := service.NewGPAService(courseRepo, cacheSvc, cfg.GPA.CacheTTL, logr)
	admissions := service.NewAdmissionsService(courseRepo, universityRepo, testScoreRepo, logr)
	testScores := service.NewTestScoreService(testScoreRepo, validate, logr)
	transcripts := service.NewTranscriptService(courseRepo, export.NewCSVExporter(), export.NewPDFExporter(), cfg.Transcript.Title, logr)
	recalc := service.NewRecalculationService(courseRepo, assignments, metrics, service.RecalculationConfig{
		Workers:    cfg.Recalculation.Workers,
		BufferSize: cfg.Recalculation.BufferSize,
		MaxRetries: cfg.Recalculation.MaxRetries,
		RetryDelay: cfg.Recalculation.RetryDelay,
	}, logr)

	recalc.Start(ctx)
	defer recalc.Stop()

	router := newRouter(cfg, logr, routerDeps{
		db:          db,
		metrics:     metrics,
		tokens:      tokens,
		courses:     courses,
		assignments: assignments,
		gpa:         gpa,
		admissions:  admissions,
		testScores:  testScores,
		transcripts: transcripts,
		recalc:      recalc,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Error("server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}

func firstOf(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
