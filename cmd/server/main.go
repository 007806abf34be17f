package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mediflow/mediflow/internal/config"
	"github.com/mediflow/mediflow/internal/database"
	"github.com/mediflow/mediflow/internal/email"
	"github.com/mediflow/mediflow/internal/handler"
	"github.com/mediflow/mediflow/internal/logger"
	"github.com/mediflow/mediflow/internal/middleware"
	"github.com/mediflow/mediflow/internal/repository"
	"github.com/mediflow/mediflow/internal/router"
	"github.com/mediflow/mediflow/internal/service"
)

func main() {
	// Optional .env for local development; real deployments set env vars
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Info().Str("version", "0.1.0").Str("store", cfg.Store.Driver).Msg("starting MediFlow server")

	// Initialize the appointment store backend
	var (
		db          *database.Postgres
		apptRepo    repository.AppointmentRepository
		patientRepo repository.PatientRepository
		doctorRepo  repository.DoctorRepository
	)
	switch cfg.Store.Driver {
	case "postgres":
		db, err = database.NewPostgres(cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer db.Close()
		log.Info().Msg("connected to PostgreSQL")

		apptRepo = repository.NewPostgresAppointmentRepository(db)
		patientRepo = repository.NewPostgresPatientRepository(db)
		doctorRepo = repository.NewPostgresDoctorRepository(db)
	default:
		appts := repository.NewMemoryAppointmentRepository()
		patients := repository.NewMemoryPatientRepository()
		doctors := repository.NewMemoryDoctorRepository()
		if cfg.Store.SeedFile != "" {
			if err := repository.LoadSeedFile(cfg.Store.SeedFile, appts, patients, doctors); err != nil {
				log.Fatal().Err(err).Str("seed_file", cfg.Store.SeedFile).Msg("failed to load seed data")
			}
			log.Info().Str("seed_file", cfg.Store.SeedFile).Msg("seed data loaded")
		}
		apptRepo, patientRepo, doctorRepo = appts, patients, doctors
	}

	// Connect to Redis only when rate limiting needs it
	var rdb *database.Redis
	if cfg.RateLimiting.Enabled {
		rdb, err = database.NewRedis(cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		defer rdb.Close()
		log.Info().Msg("connected to Redis")
	}

	// Initialize the mail transport; without a credential the gateway
	// reports delivery as unavailable instead of failing startup
	var sender email.Sender
	if cfg.Email.Resend.APIKey != "" {
		sender, err = email.NewResendSender(cfg.Email.Resend.APIKey)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize mail transport")
		}
		log.Info().Str("provider", cfg.Email.Provider).Msg("mail transport initialized")
	} else {
		log.Warn().Msg("no mail credential configured, reminder delivery disabled")
	}

	// Initialize services
	apptSvc := service.NewAppointmentService(apptRepo, log)
	gateway := service.NewDeliveryGateway(sender, log)
	notifSvc := service.NewNotificationService(apptSvc, patientRepo, doctorRepo, gateway, cfg.Reminder.BatchPause, log)

	// Initialize handlers and middleware
	h := handler.New(db, rdb, log, cfg, apptSvc, notifSvc, gateway)
	mw := middleware.New(rdb, log, cfg)

	// Set up router
	r := router.New(h, mw, log, cfg)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // batch dispatch paces sends inside the request
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
