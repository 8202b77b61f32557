package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/httplog/v3"
	"github.com/lavage-pro/carwash-backend-go/internal/config"
	"github.com/lavage-pro/carwash-backend-go/internal/fixtures"
	appHTTP "github.com/lavage-pro/carwash-backend-go/internal/handler/http"
	"github.com/lavage-pro/carwash-backend-go/internal/pkg/clock"
	"github.com/lavage-pro/carwash-backend-go/internal/pkg/cron"
	"github.com/lavage-pro/carwash-backend-go/internal/pkg/database"
	"github.com/lavage-pro/carwash-backend-go/internal/pkg/jwt"
	"github.com/lavage-pro/carwash-backend-go/internal/pkg/metrics"
	"github.com/lavage-pro/carwash-backend-go/internal/pkg/sse"
	"github.com/lavage-pro/carwash-backend-go/internal/pkg/storage"
	"github.com/lavage-pro/carwash-backend-go/internal/repository/postgresql"
	advanceService "github.com/lavage-pro/carwash-backend-go/internal/service/advance"
	attendanceService "github.com/lavage-pro/carwash-backend-go/internal/service/attendance"
	serviceAuth "github.com/lavage-pro/carwash-backend-go/internal/service/auth"
	catalogService "github.com/lavage-pro/carwash-backend-go/internal/service/catalog"
	dashboardService "github.com/lavage-pro/carwash-backend-go/internal/service/dashboard"
	jobService "github.com/lavage-pro/carwash-backend-go/internal/service/job"
	notificationService "github.com/lavage-pro/carwash-backend-go/internal/service/notification"
	payrollService "github.com/lavage-pro/carwash-backend-go/internal/service/payroll"
	settingsService "github.com/lavage-pro/carwash-backend-go/internal/service/settings"
	workerService "github.com/lavage-pro/carwash-backend-go/internal/service/worker"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "development")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.LogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", cfg.App.Name),
		slog.String("version", cfg.App.Version),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return err
	}

	clk := clock.New(cfg.Location())
	tx := postgresql.NewTxManager(db)

	settingsRepo := postgresql.NewSettingsRepository(db)
	serviceRepo := postgresql.NewServiceRepository(db)
	workerRepo := postgresql.NewWorkerRepository(db)
	profileRepo := postgresql.NewProfileRepository(db)
	jobRepo := postgresql.NewJobRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	advanceRepo := postgresql.NewAdvanceRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)
	revokedTokenRepo := postgresql.NewRevokedTokenRepository(db)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			return fmt.Errorf("failed to initialize local storage: %w", err)
		}
	default:
		return fmt.Errorf("unsupported storage type: %s", cfg.Storage.Type)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	hub := sse.NewHub()
	metrics.RegisterOpenStreams(hub.TotalSubscribers)

	settingsSvc := settingsService.NewSettingsService(tx, settingsRepo)
	catalogSvc := catalogService.NewCatalogService(serviceRepo)
	workerSvc := workerService.NewWorkerService(tx, workerRepo, profileRepo)
	notificationSvc := notificationService.NewNotificationService(notificationRepo, jobRepo, hub, clk)
	jobSvc := jobService.NewJobService(tx, jobRepo, serviceRepo, workerRepo, settingsRepo, notificationSvc, fileStorage, clk)
	attendanceSvc := attendanceService.NewAttendanceService(tx, attendanceRepo, workerRepo, profileRepo, clk)
	advanceSvc := advanceService.NewAdvanceService(advanceRepo, workerRepo, clk)
	payrollSvc := payrollService.NewPayrollService(payrollRepo, settingsRepo, workerRepo, clk)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, settingsRepo, profileRepo, clk)
	authSvc := serviceAuth.NewAuthService(workerRepo, profileRepo, revokedTokenRepo, JWTService)

	if _, err := fixtures.SeedAdmin(ctx, workerRepo, workerSvc, fixtures.AdminSeed{
		Username: cfg.Admin.Username,
		Password: cfg.Admin.Password,
		FullName: cfg.Admin.FullName,
	}); err != nil {
		return err
	}
	if cfg.App.Env == "development" {
		if _, err := fixtures.SeedCatalog(ctx, serviceRepo); err != nil {
			return err
		}
	}

	scheduler := cron.NewScheduler(clk.Now)
	cron.NewHousekeepingJobs(notificationSvc, revokedTokenRepo, cfg.Notification.Retention, clk.Now).
		RegisterJobs(scheduler, cfg.Notification.PurgeInterval)
	scheduler.Start()
	defer scheduler.Stop()

	routerCfg := appHTTP.RouterConfig{
		AllowedOrigins:   cfg.App.AllowedOrigins,
		LogLevel:         cfg.LogLevel(),
		TrialExpiresAt:   cfg.Trial.ExpiresAt,
		BookingRateLimit: cfg.App.BookingRateLimit,
		Now:              clk.Now,
	}
	if cfg.Storage.Type == "local" {
		routerCfg.UploadsDir = cfg.Storage.BasePath
	}

	router := appHTTP.NewRouter(routerCfg, logger, JWTService, authSvc, appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(authSvc),
		Settings:     appHTTP.NewSettingsHandler(settingsSvc),
		Catalog:      appHTTP.NewCatalogHandler(catalogSvc),
		Worker:       appHTTP.NewWorkerHandler(workerSvc),
		Job:          appHTTP.NewJobHandler(jobSvc),
		Booking:      appHTTP.NewBookingHandler(jobSvc, cfg.Storage.MaxVoiceNoteSize),
		Attendance:   appHTTP.NewAttendanceHandler(attendanceSvc),
		Advance:      appHTTP.NewAdvanceHandler(advanceSvc),
		Payroll:      appHTTP.NewPayrollHandler(payrollSvc),
		Dashboard:    appHTTP.NewDashboardHandler(dashboardSvc),
		Notification: appHTTP.NewNotificationHandler(notificationSvc, JWTService),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// request contexts end on SIGTERM so open event streams return
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "timezone", cfg.App.Timezone)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
