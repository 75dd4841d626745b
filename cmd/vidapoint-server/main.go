package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vidapoint/vidapoint/internal/config"
	"github.com/vidapoint/vidapoint/internal/domain/articles"
	"github.com/vidapoint/vidapoint/internal/domain/clinics"
	"github.com/vidapoint/vidapoint/internal/domain/dashboard"
	"github.com/vidapoint/vidapoint/internal/domain/identity"
	"github.com/vidapoint/vidapoint/internal/domain/maternity"
	"github.com/vidapoint/vidapoint/internal/domain/notifications"
	"github.com/vidapoint/vidapoint/internal/domain/records"
	"github.com/vidapoint/vidapoint/internal/domain/scheduling"
	"github.com/vidapoint/vidapoint/internal/domain/settings"
	"github.com/vidapoint/vidapoint/internal/domain/sharing"
	"github.com/vidapoint/vidapoint/internal/platform/auth"
	"github.com/vidapoint/vidapoint/internal/platform/db"
	"github.com/vidapoint/vidapoint/internal/platform/middleware"
	"github.com/vidapoint/vidapoint/internal/platform/notification"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "vidapoint-server",
		Short: "VidaPoint maternal health API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if dir == "" {
				dir = cfg.MigrationsDir
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "", "Path to migrations directory (default: MIGRATIONS_DIR)")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if dir == "" {
				dir = cfg.MigrationsDir
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "", "Path to migrations directory (default: MIGRATIONS_DIR)")
	cmd.AddCommand(statusCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Rollback last migration (not supported)",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("WARNING: migrate down is destructive and not supported by the built-in runner.")
			fmt.Println("Restore from a backup or write a forward migration instead.")
			return nil
		},
	})

	return cmd
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" || os.Getenv("ENV") == "" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.BodyLimit("1M"))
	e.Use(middleware.RequestTimeout(30 * time.Second))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// Token issuer shared by login and the auth middleware.
	tokens := auth.NewTokenIssuer([]byte(cfg.JWTSecret), cfg.JWTIssuer, time.Duration(cfg.TokenTTLMin)*time.Minute)

	// Outbound delivery. No SMS/email provider is wired yet, so messages go
	// to the log in every environment.
	outbound := notification.NewDispatcher(
		&notification.LogEmailSender{Logger: logger},
		&notification.LogSMSSender{Logger: logger},
		notification.NewTemplateEngine(),
	)

	// Repositories
	userRepo := identity.NewUserRepoPG(pool)
	otpStore := identity.NewOTPStorePG(pool)
	profileRepo := maternity.NewProfileRepoPG(pool)
	clinicRepo := clinics.NewRepoPG(pool)
	bookingStore := scheduling.NewBookingStorePG(pool)
	appointmentRepo := scheduling.NewAppointmentRepoPG(pool)
	recordRepo := records.NewRepoPG(pool)
	sharingRepo := sharing.NewRepoPG(pool)
	notificationRepo := notifications.NewRepoPG(pool)
	articleRepo := articles.NewRepoPG(pool)
	settingsRepo := settings.NewRepoPG(pool)

	// Services. The notifications service doubles as the in-app feed
	// publisher for scheduling and sharing.
	notificationSvc := notifications.NewService(notificationRepo)
	identitySvc := identity.NewService(userRepo, otpStore, outbound, tokens)
	maternitySvc := maternity.NewService(profileRepo)
	clinicSvc := clinics.NewService(clinicRepo)
	schedulingSvc := scheduling.NewService(appointmentRepo, bookingStore, notificationSvc)
	recordSvc := records.NewService(recordRepo)
	sharingSvc := sharing.NewService(sharingRepo, notificationSvc)
	articleSvc := articles.NewService(articleRepo)
	settingsSvc := settings.NewService(settingsRepo)
	dashboardSvc := dashboard.NewService(maternitySvc, schedulingSvc, recordSvc, sharingSvc, notificationSvc, articleSvc)

	// Public routes: signup, login, and phone verification. These carry a
	// tighter rate limit than the rest of the API.
	public := e.Group("/api/v1")
	authLimit := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.AuthRPS,
		BurstSize:         cfg.AuthBurst,
	}
	if authLimit.RequestsPerSecond <= 0 {
		authLimit = middleware.RateLimitConfig{RequestsPerSecond: 1, BurstSize: 5}
	}
	public.Use(middleware.RateLimit(authLimit))
	identity.NewHandler(identitySvc).RegisterPublicRoutes(public)

	// Authenticated API
	api := e.Group("/api/v1")
	switch cfg.ResolvedAuthMode() {
	case "development":
		logger.Warn().Msg("development auth mode: all requests run as the dev user")
		api.Use(auth.DevAuthMiddleware(tokens))
	default:
		api.Use(auth.Middleware(tokens))
	}

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	api.Use(middleware.RateLimit(rateLimitCfg))

	identity.NewHandler(identitySvc).RegisterRoutes(api)
	maternity.NewHandler(maternitySvc).RegisterRoutes(api)
	clinics.NewHandler(clinicSvc).RegisterRoutes(api)
	scheduling.NewHandler(schedulingSvc).RegisterRoutes(api)
	records.NewHandler(recordSvc).RegisterRoutes(api)
	sharing.NewHandler(sharingSvc).RegisterRoutes(api)
	notifications.NewHandler(notificationSvc).RegisterRoutes(api)
	articles.NewHandler(articleSvc).RegisterRoutes(api)
	settings.NewHandler(settingsSvc).RegisterRoutes(api)
	dashboard.NewHandler(dashboardSvc).RegisterRoutes(api)

	// Health checks
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})
	e.GET("/health/db", db.HealthHandler(pool))

	// Start server
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}
