package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/redsoft-clinic/clinicflow/internal/config"
	v1 "github.com/redsoft-clinic/clinicflow/internal/handler/v1"
	"github.com/redsoft-clinic/clinicflow/internal/repository"
	"github.com/redsoft-clinic/clinicflow/internal/service"
	"github.com/redsoft-clinic/clinicflow/pkg/auth"
	"github.com/redsoft-clinic/clinicflow/pkg/database"
	"github.com/redsoft-clinic/clinicflow/pkg/logger"
	"github.com/redsoft-clinic/clinicflow/pkg/metrics"
	"github.com/redsoft-clinic/clinicflow/pkg/tracer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	tp, err := tracer.Init(cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Warn("tracer shutdown failed", zap.Error(err))
		}
	}()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return err
	}

	if err := database.Migrate(db, log); err != nil {
		return err
	}

	collector := metrics.NewCollector("clinicflow")
	jwtManager := auth.NewJWTManager(cfg.JWT)

	userRepo := repository.NewGormUserRepository(db)
	auditRepo := repository.NewGormAuditRepository(db)
	doctorRepo := repository.NewGormDoctorRepository(db)
	patientRepo := repository.NewGormPatientRepository(db)
	scheduleRepo := repository.NewGormScheduleRepository(db)
	consultRepo := repository.NewGormConsultationRepository(db)

	auditSvc := service.NewAuditService(auditRepo, log)
	defer auditSvc.Shutdown()

	authSvc := service.NewAuthService(userRepo, jwtManager, log)
	doctorSvc := service.NewDoctorService(doctorRepo, auditSvc, log)
	patientSvc := service.NewPatientService(patientRepo, auditSvc, collector, log)
	scheduleSvc := service.NewScheduleService(scheduleRepo, doctorRepo, auditSvc, collector, log)
	bookingSvc := service.NewBookingService(scheduleRepo, consultRepo, doctorRepo, patientRepo, auditSvc, collector, log)

	router := v1.NewRouter(v1.RouterDeps{
		JWTManager:   jwtManager,
		Collector:    collector,
		Log:          log,
		Auth:         v1.NewAuthHandler(authSvc),
		Doctor:       v1.NewDoctorHandler(doctorSvc, bookingSvc),
		Schedule:     v1.NewScheduleHandler(scheduleSvc, bookingSvc),
		Consultation: v1.NewConsultationHandler(bookingSvc),
		Patient:      v1.NewPatientHandler(patientSvc),
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.App.Environment),
			zap.String("version", cfg.App.Version),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}

	log.Info("server stopped")
	return nil
}
