package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/clinic-scheduler/internal/db"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/lock"
	infraRepo "github.com/BruksfildServices01/clinic-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/routes"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}
			return runServer(cfg, logger)
		},
	}
}

func runServer(cfg *config.Config, logger zerolog.Logger) error {
	// --------------------------------------------------
	// Store
	// --------------------------------------------------
	var (
		repo domain.Repository
		db   *gorm.DB
		sink audit.Sink
	)

	switch cfg.StoreDriver {
	case config.StorePostgres:
		var err error
		db, err = dbpkg.NewDB(cfg, logger)
		if err != nil {
			return err
		}
		if err := dbpkg.Migrate(db); err != nil {
			return err
		}
		repo = infraRepo.NewAppointmentGormRepository(db)
		sink = audit.New(db)

	case config.StoreMemory:
		mem := infraRepo.NewMemoryRepository()
		seedDemo(mem, cfg, logger)
		repo = mem
		sink = audit.NewLogSink(logger)
	}

	// --------------------------------------------------
	// Booking lock
	// --------------------------------------------------
	locker, closeLocker, err := newLocker(cfg, logger)
	if err != nil {
		return err
	}
	defer closeLocker()

	dispatcher := audit.NewDispatcher(sink, logger)

	// --------------------------------------------------
	// HTTP
	// --------------------------------------------------
	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "store": cfg.StoreDriver})
	})

	routes.RegisterRoutes(r, routes.Deps{
		Config: cfg,
		Repo:   repo,
		DB:     db,
		Locker: locker,
		Clock:  timezone.NewClinicClock(cfg.ClinicTimezone),
		Audit:  dispatcher,
		Logger: logger,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Str("store", cfg.StoreDriver).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
	}

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	if err := dispatcher.Close(ctx); err != nil {
		logger.Warn().Err(err).Msg("audit queue not fully drained")
	}

	logger.Info().Msg("server stopped")
	return nil
}

// newLocker uses redis when REDIS_URL is set so several API instances share
// the booking lock; otherwise the lock is process local.
func newLocker(cfg *config.Config, logger zerolog.Logger) (lock.Locker, func(), error) {
	if cfg.RedisURL == "" {
		logger.Info().Msg("booking lock: in-process")
		return lock.NewKeyedMutex(), func() {}, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	rdb := redis.NewClient(opts)

	locker := lock.NewRedisLocker(rdb, cfg.LockTTL, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := locker.Ping(ctx); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}

	logger.Info().Str("addr", opts.Addr).Msg("booking lock: redis")
	return locker, func() { _ = rdb.Close() }, nil
}

// seedDemo fills the in-memory store with one user per role and, in
// development, logs a bearer token for each.
func seedDemo(repo *infraRepo.MemoryRepository, cfg *config.Config, logger zerolog.Logger) {
	users := []models.User{
		repo.AddUser(models.User{
			Name:  "Dr. Demo",
			Email: "doctor@clinic.local",
			Role:  models.RoleDoctor,
			Doctor: &models.DoctorProfile{
				Specialization: models.SpecPhysician,
				IsApproved:     true,
			},
		}),
		repo.AddUser(models.User{Name: "Demo Patient", Email: "patient@clinic.local", Role: models.RolePatient}),
		repo.AddUser(models.User{Name: "Demo Admin", Email: "admin@clinic.local", Role: models.RoleAdmin}),
	}

	if !cfg.IsDev() {
		return
	}

	for _, u := range users {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub":  u.ID,
			"role": string(u.Role),
			"iat":  time.Now().Unix(),
			"exp":  time.Now().Add(24 * time.Hour).Unix(),
		}).SignedString([]byte(cfg.JWTSecret))
		if err != nil {
			logger.Error().Err(err).Msg("sign demo token")
			return
		}
		logger.Info().Uint("user_id", u.ID).Str("role", string(u.Role)).Str("token", token).Msg("demo user")
	}
}
