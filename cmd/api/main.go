package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/adityawarmn/projectflow-api/internal/audit"
	"github.com/adityawarmn/projectflow-api/internal/config"
	"github.com/adityawarmn/projectflow-api/internal/database"
	"github.com/adityawarmn/projectflow-api/internal/handler"
	"github.com/adityawarmn/projectflow-api/internal/middleware"
	"github.com/adityawarmn/projectflow-api/internal/repository"
	"github.com/adityawarmn/projectflow-api/internal/router"
	"github.com/adityawarmn/projectflow-api/internal/service"
	cloud "github.com/adityawarmn/projectflow-api/pkg/cloudinary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	} else {
		logger.Warn().Msg("redis url not configured, report and dashboard caching disabled")
	}

	var uploader service.FileStorage
	if cfg.CloudinaryCloudName != "" {
		cld, err := cloud.New(cloud.Config{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
			Folder:    cfg.CloudinaryUploadFolder,
		}, logger)
		if err != nil {
			log.Fatalf("failed to create cloudinary client: %v", err)
		}
		uploader = cld
	} else {
		logger.Warn().Msg("cloudinary not configured, avatar uploads disabled")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	registry := audit.NewRegistry("user", "project", "sprint", "task", "project_member")

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	memberRepo := repository.NewProjectMemberRepository(db)
	sprintRepo := repository.NewSprintRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)
	reportRepo := repository.NewReportRepository(db)

	recorder := service.NewActivityRecorder(activityRepo, registry, logger)
	reportService := service.NewReportService(projectRepo, reportRepo, redisClient, cfg.ReportCacheTTL, logger)
	authService := service.NewAuthService(userRepo, recorder, validate, cfg.JWTSecret, cfg.JWTTTL, logger)
	userService := service.NewUserService(userRepo, recorder, uploader, validate, cfg.CloudinaryUploadFolder, cfg.AvatarMaxSizeMB, logger)
	projectService := service.NewProjectService(projectRepo, memberRepo, userRepo, reportService, recorder, validate, logger)
	sprintService := service.NewSprintService(sprintRepo, projectRepo, reportService, recorder, validate, logger)
	taskService := service.NewTaskService(taskRepo, sprintRepo, projectRepo, reportService, recorder, validate, logger)
	activityService := service.NewActivityLogService(activityRepo, cfg.AuditRetentionMonths, logger)
	dashboardService := service.NewDashboardService(projectRepo, taskRepo, userRepo, redisClient, cfg.DashboardCacheTTL, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:        handler.NewAuthHandler(authService, logger),
		UserHandler:        handler.NewUserHandler(userService, logger),
		ProjectHandler:     handler.NewProjectHandler(projectService, logger),
		SprintHandler:      handler.NewSprintHandler(sprintService, logger),
		TaskHandler:        handler.NewTaskHandler(taskService, logger),
		ActivityLogHandler: handler.NewActivityLogHandler(activityService, logger),
		ReportHandler:      handler.NewReportHandler(reportService, logger),
		DashboardHandler:   handler.NewDashboardHandler(dashboardService, logger),
		JWTMiddleware:      middleware.JWTProtected(cfg.JWTSecret),
	})

	sweeperCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()
	go runRetentionSweeper(sweeperCtx, activityService, cfg, logger)

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

// runRetentionSweeper periodically deletes audit entries older than the
// configured retention window.
func runRetentionSweeper(ctx context.Context, activity service.ActivityLogService, cfg config.Config, logger zerolog.Logger) {
	interval := cfg.AuditSweepInterval
	if interval <= 0 {
		interval = 24 * time.Hour
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := activity.Cleanup(ctx, cfg.AuditRetentionMonths); err != nil {
				logger.Error().Err(err).Msg("activity log retention sweep failed")
			}
		}
	}
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
