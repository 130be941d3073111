package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/medrec-api/internal/config"
	"github.com/jwalitptl/medrec-api/internal/email"
	"github.com/jwalitptl/medrec-api/internal/handler"
	appointmentHandler "github.com/jwalitptl/medrec-api/internal/handler/appointment"
	authHandler "github.com/jwalitptl/medrec-api/internal/handler/auth"
	directoryHandler "github.com/jwalitptl/medrec-api/internal/handler/directory"
	expenseHandler "github.com/jwalitptl/medrec-api/internal/handler/expense"
	prescriptionHandler "github.com/jwalitptl/medrec-api/internal/handler/prescription"
	reportHandler "github.com/jwalitptl/medrec-api/internal/handler/report"
	"github.com/jwalitptl/medrec-api/internal/middleware"
	"github.com/jwalitptl/medrec-api/internal/repository/postgres"
	"github.com/jwalitptl/medrec-api/internal/repository/redisrepo"
	"github.com/jwalitptl/medrec-api/internal/router"
	appointmentService "github.com/jwalitptl/medrec-api/internal/service/appointment"
	billingService "github.com/jwalitptl/medrec-api/internal/service/billing"
	directoryService "github.com/jwalitptl/medrec-api/internal/service/directory"
	identityService "github.com/jwalitptl/medrec-api/internal/service/identity"
	prescriptionService "github.com/jwalitptl/medrec-api/internal/service/prescription"
	reportService "github.com/jwalitptl/medrec-api/internal/service/report"
	"github.com/jwalitptl/medrec-api/pkg/auth"
	"github.com/jwalitptl/medrec-api/pkg/logger"
	"github.com/jwalitptl/medrec-api/pkg/objectstore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLog := logger.New(nil)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	tokenRepo, err := redisrepo.NewTokenRepository(cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	store, err := objectstore.NewS3Store(context.Background(), cfg.S3)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize object store")
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	prescriptionRepo := postgres.NewPrescriptionRepository(db)
	reportRepo := postgres.NewReportRepository(db)

	// Services
	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry)
	emailSvc := email.NewService(cfg.SMTP)
	directorySvc := directoryService.NewService(doctorRepo, patientRepo)
	identitySvc := identityService.NewService(userRepo, doctorRepo, patientRepo, tokenRepo, jwtSvc, cfg.JWT.Expiry, emailSvc, appLog)
	appointmentSvc := appointmentService.NewService(appointmentRepo, directorySvc)
	billingSvc := billingService.NewService(appointmentRepo, prescriptionRepo)
	prescriptionSvc := prescriptionService.NewService(prescriptionRepo, directorySvc)
	reportSvc := reportService.NewService(reportRepo, store, directorySvc)

	// HTTP layer
	authMW := middleware.NewAuthMiddleware(jwtSvc, tokenRepo)
	healthH := handler.NewHealthHandler(db)

	r := router.New(
		router.Config{
			RateLimitEnabled: cfg.RateLimit.Enabled,
			RateLimit:        rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst:        cfg.RateLimit.Burst,
			CORS:             middleware.DefaultCORSConfig(),
		},
		authMW,
		healthH.Health,
		authHandler.NewHandler(identitySvc, authMW),
		appointmentHandler.NewHandler(appointmentSvc, directorySvc, authMW),
		prescriptionHandler.NewHandler(prescriptionSvc, directorySvc, authMW),
		reportHandler.NewHandler(reportSvc, directorySvc, authMW),
		directoryHandler.NewHandler(directorySvc, authMW),
		expenseHandler.NewHandler(billingSvc, directorySvc, authMW),
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
