// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"time"

	"github.com/dangerclosesec/orgaccess/internal/audit"
	"github.com/dangerclosesec/orgaccess/internal/auth"
	"github.com/dangerclosesec/orgaccess/internal/config"
	"github.com/dangerclosesec/orgaccess/internal/email"
	"github.com/dangerclosesec/orgaccess/internal/handler"
	"github.com/dangerclosesec/orgaccess/internal/middleware"
	"github.com/dangerclosesec/orgaccess/internal/repository"
	"github.com/dangerclosesec/orgaccess/internal/service"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "startup error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Initialize structured logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     slog.LevelInfo,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   a.Key,
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	}))
	slog.SetDefault(log)

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := setupDatabase(cfg)
	if err != nil {
		return fmt.Errorf("setting up database: %w", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	codeRepo := repository.NewCodeRepository(db)
	licenseRepo := repository.NewLicenseRepository(db)

	// Initialize auth services
	tokenManager := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.ExpiryPeriod)

	// Initialize email service
	emailService, err := email.NewEmailService(cfg, email.Provider(cfg.Email.Provider))
	if err != nil {
		return fmt.Errorf("initializing email service: %w", err)
	}

	auditLog := audit.NewSlogLogger(log)

	// Initialize services
	cascadeService := service.NewCascadeService(memberRepo, licenseRepo, userRepo, emailService)
	orgService := service.NewOrganizationService(orgRepo, memberRepo, auditLog)
	codeService := service.NewCodeService(codeRepo, orgRepo, cascadeService, auditLog)
	licenseService := service.NewLicenseService(licenseRepo, memberRepo, orgRepo, auditLog)
	membershipService := service.NewMembershipService(orgRepo, userRepo, memberRepo, codeService, licenseService, emailService, auditLog)

	// Initialize handlers
	orgHandler := handler.NewOrganizationHandler(orgService, licenseService)
	codeHandler := handler.NewCodeHandler(codeService)
	memberHandler := handler.NewMemberHandler(membershipService)
	licenseHandler := handler.NewLicenseHandler(licenseService)

	// Create router
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Code validation is a pre-join probe; no authentication required.
		r.Get("/codes/validate", codeHandler.Validate)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(tokenManager))

			r.Route("/orgs", func(r chi.Router) {
				r.With(chimw.AllowContentType("application/json")).Post("/", orgHandler.Create)
				r.Get("/", orgHandler.List)
				r.With(chimw.AllowContentType("application/json")).Post("/join", memberHandler.Join)
				r.Get("/by-slug/{slug}", orgHandler.GetBySlug)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", orgHandler.Get)
					r.With(chimw.AllowContentType("application/json")).Patch("/", orgHandler.Update)
					r.Delete("/", orgHandler.Delete)
					r.Get("/seats", orgHandler.AvailableSeats)
					r.Get("/codes", codeHandler.List)

					r.Route("/members", func(r chi.Router) {
						r.Get("/", memberHandler.List)
						r.With(chimw.AllowContentType("application/json")).Post("/", memberHandler.Add)
						r.With(chimw.AllowContentType("application/json")).Patch("/{userID}", memberHandler.Update)
						r.Delete("/{userID}", memberHandler.Remove)
					})
				})
			})

			r.Route("/codes", func(r chi.Router) {
				r.With(chimw.AllowContentType("application/json")).Post("/", codeHandler.Create)
				r.Post("/{id}/revoke", codeHandler.Revoke)
				r.Post("/{id}/reactivate", codeHandler.Reactivate)
			})

			r.Route("/licenses", func(r chi.Router) {
				r.With(chimw.AllowContentType("application/json")).Post("/pools", licenseHandler.CreatePool)
				r.With(chimw.AllowContentType("application/json")).Patch("/pools/{id}", licenseHandler.UpdatePool)
				r.With(chimw.AllowContentType("application/json")).Post("/pools/{id}/allocate", licenseHandler.AllocateSeat)
				r.Delete("/{licenseID}", licenseHandler.DeallocateSeat)
			})
		})
	})

	// Create server
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Server error channel
	serverErrors := make(chan error, 1)

	// Start server
	go func() {
		log.Info("server starting", "port", cfg.Server.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Shutdown channel
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt)

	// Wait for shutdown or error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.Info("shutdown started", "signal", sig)

		// Give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Gracefully shutdown the server
		if err := srv.Shutdown(ctx); err != nil {
			// If shutdown times out, forcefully close
			srv.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

func setupDatabase(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s search_path=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.SSLMode,
		cfg.Database.SearchPath,
	)

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting database instance: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

func loggingMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				log.Info("request completed",
					"method", r.Method,
					"path", r.URL.Path,
					"duration", time.Since(start),
					"status", ww.Status(),
					"size", ww.BytesWritten(),
					"requestID", chimw.GetReqID(r.Context()),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

func recoveryMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					err := errors.New("panic recovered")
					log.Error("panic recovered",
						"error", err,
						"panic", rvr,
						"stack", string(debug.Stack()),
						"requestID", chimw.GetReqID(r.Context()),
					)

					w.Write([]byte("{\"error\":\"error encountered\"}"))
					return
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
