package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/httprate"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lavage-pro/carwash-backend-go/internal/handler/http/middleware"
	"github.com/lavage-pro/carwash-backend-go/internal/handler/http/response"
	"github.com/lavage-pro/carwash-backend-go/internal/pkg/jwt"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig holds the HTTP knobs that come from configuration.
type RouterConfig struct {
	AllowedOrigins []string
	LogLevel       slog.Level
	// UploadsDir is served read-only under /uploads when set.
	UploadsDir     string
	TrialExpiresAt *time.Time
	// BookingRateLimit is the number of bookings one IP may post per minute.
	BookingRateLimit int
	Now              func() time.Time
}

type Handlers struct {
	Auth         AuthHandler
	Settings     SettingsHandler
	Catalog      CatalogHandler
	Worker       WorkerHandler
	Job          JobHandler
	Booking      BookingHandler
	Attendance   AttendanceHandler
	Advance      AdvanceHandler
	Payroll      PayrollHandler
	Dashboard    DashboardHandler
	Notification NotificationHandler
}

func NewRouter(cfg RouterConfig, logger *slog.Logger, JWTService jwt.Service, revocations middleware.RevocationChecker, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	if cfg.BookingRateLimit <= 0 {
		cfg.BookingRateLimit = 10
	}

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	r.Use(middleware.TrialGate(cfg.TrialExpiresAt, cfg.Now, "/health", "/metrics"))

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	if cfg.UploadsDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir))))
	}

	bookingLimiter := httprate.Limit(
		cfg.BookingRateLimit,
		time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			response.TooManyRequests(w, "Too many bookings, please try again later")
		}),
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(chiMiddleware.AllowContentType("application/json", "multipart/form-data"))

		// Public
		r.Post("/auth/login", h.Auth.Login)
		r.Get("/catalog/services", h.Catalog.ListPublic)
		r.With(bookingLimiter).Post("/bookings", h.Booking.Create)
		r.Get("/notifications/stream", h.Notification.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(revocations))

			r.Route("/auth", func(r chi.Router) {
				r.Post("/logout", h.Auth.Logout)
				r.Get("/me", h.Auth.Me)
				r.Get("/sse-token", h.Auth.SSEToken)
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", h.Settings.Get)
				r.With(middleware.AdminOnly).Post("/toggle-mode", h.Settings.ToggleMode)
			})

			r.Route("/services", func(r chi.Router) {
				r.Get("/", h.Catalog.List)
				r.Get("/{id}", h.Catalog.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.Catalog.Create)
					r.Put("/{id}", h.Catalog.Update)
					r.Delete("/{id}", h.Catalog.Delete)
				})
			})

			r.Route("/jobs", func(r chi.Router) {
				r.Get("/", h.Job.List)
				r.Post("/", h.Job.Create)
				r.Get("/{id}", h.Job.Get)
				r.Patch("/{id}", h.Job.Update)
				r.Delete("/{id}", h.Job.Delete)
				r.Post("/{id}/complete", h.Job.Complete)
			})

			r.Get("/bookings", h.Booking.List)

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", h.Attendance.DailyRoster)
				r.Post("/{workerID}/toggle", h.Attendance.Toggle)
				r.Get("/workers/{workerID}", h.Attendance.WorkerMonth)
			})

			r.Get("/dashboard", h.Dashboard.Get)

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notification.List)
				r.Get("/feed", h.Notification.Feed)
				r.Post("/read-all", h.Notification.MarkAllRead)
				r.Post("/{id}/read", h.Notification.MarkRead)
			})

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Route("/workers", func(r chi.Router) {
					r.Get("/", h.Worker.List)
					r.Post("/", h.Worker.Create)
					r.Get("/{id}", h.Worker.Get)
					r.Put("/{id}", h.Worker.Update)
					r.Delete("/{id}", h.Worker.Delete)
					r.Put("/{id}/salary", h.Worker.UpdateSalary)
				})

				r.Route("/advances", func(r chi.Router) {
					r.Get("/", h.Advance.List)
					r.Post("/", h.Advance.Create)
					r.Get("/{id}", h.Advance.Get)
					r.Delete("/{id}", h.Advance.Delete)
				})

				r.Route("/payroll", func(r chi.Router) {
					r.Get("/", h.Payroll.Report)
					r.Get("/export", h.Payroll.Export)
					r.Get("/{workerID}", h.Payroll.WorkerReport)
				})
			})
		})
	})
	return r
}
