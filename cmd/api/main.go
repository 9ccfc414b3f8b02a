package main

import (
	"context"
	"empresas/cmd/internal/config"
	"empresas/cmd/internal/domain/sqlite"
	"empresas/cmd/internal/domain/sqlite/repository"
	"empresas/cmd/internal/http/handler"
	"empresas/cmd/internal/infrastructure/aws/storage"
	"empresas/cmd/internal/service"
	"empresas/cmd/internal/service/jobs"
	"empresas/cmd/internal/utils/validators"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"gorm.io/gorm"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Loads env vars depending on environment
	if err := config.LoadEnv(ctx); err != nil {
		log.Fatalf("failed to load environment: %v", err)
	}
	cfg := config.Load()
	log.SetLevel(cfg.LogLevel)

	validate := validator.New()
	validators.Register(validate)

	// Init SQLite
	db, err := sqlite.Init(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("failed to open database %s: %v", cfg.DatabasePath, err)
	}

	// Reports are archived only when a bucket is configured
	var archiver service.ReportArchiver
	if cfg.S3Bucket != "" {
		s3Client, err := storage.NewStorageClient(cfg.S3Region, cfg.S3Bucket)
		if err != nil {
			log.Fatalf("failed to init S3 client: %v", err)
		}
		archiver = s3Client
	}

	// Getting services
	companyService := service.NewCompanyService(db, newCompanyRepository, validate)
	reportService := service.NewReportService(repository.NewCompanyRepository(db), archiver)

	// Background jobs
	if archiver != nil && cfg.ReportSnapshotInterval > 0 {
		go jobs.NewReportSnapshotter(reportService, cfg.ReportSnapshotInterval).Start(ctx)
	}

	// Getting handlers
	companyRoutes := handler.NewCompanyRoute(companyService)
	reportRoutes := handler.NewReportRoute(reportService)

	e := NewServer(cfg, companyRoutes, reportRoutes)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Errorf("failed to shut down server: %v", err)
	}
}

// NewServer registers every route on a fresh echo instance.
func NewServer(cfg *config.Config, companyRoutes *handler.DefaultCompanyRoute, reportRoutes *handler.DefaultReportRoute) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit(cfg.BodyLimit))

	// Companies
	e.POST("/process-data", companyRoutes.ProcessData)
	e.POST("/update-status", companyRoutes.UpdateStatus)
	e.GET("/empresas/estado/:estado", companyRoutes.GetByStatus)

	// Reports
	e.GET("/reporte", reportRoutes.GetReport)

	// Docker Compose healthcheck
	e.GET("/health", healthCheckRoute)

	return e
}

func newCompanyRepository(db *gorm.DB) service.CompanyRepository {
	return repository.NewCompanyRepository(db)
}

func healthCheckRoute(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}
