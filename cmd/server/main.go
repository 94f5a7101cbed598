package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"miklean/internal/config"
	noopemail "miklean/internal/email/noop"
	sesemail "miklean/internal/email/ses"
	"miklean/internal/handler"
	"miklean/internal/logger"
	"miklean/internal/port"
	"miklean/internal/render/pdf"
	"miklean/internal/repository/postgres"
	"miklean/internal/router"
	"miklean/internal/service"
	noopsms "miklean/internal/sms/noop"
	twiliosms "miklean/internal/sms/twilio"
	s3storage "miklean/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	appLog := logger.New(cfg.Log)
	handler.SetLogger(appLog)

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	// Initialize repositories
	profileRepo := postgres.NewProfileRepo(db)
	clientRepo := postgres.NewClientRepo(db)
	estimateRepo := postgres.NewEstimateRepo(db)
	visitRepo := postgres.NewVisitRepo(db)
	invoiceRepo := postgres.NewInvoiceRepo(db)
	statsRepo := postgres.NewStatsRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(ctx, &cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	emailSender, err := newEmailSender(ctx, &cfg.Email, appLog)
	if err != nil {
		return err
	}
	smsSender, err := newSMSSender(&cfg.SMS, appLog)
	if err != nil {
		return err
	}

	loc := cfg.Schedule.Location()
	clock := service.SystemClock(loc)
	locks := service.NewKeyedMutex()
	renderer := pdf.NewRenderer(clock)

	// Initialize services
	authSvc := service.NewAuthService(cfg.Auth)
	profileSvc := service.NewProfileService(profileRepo, s3Client, &cfg.S3, appLog)
	clientSvc := service.NewClientService(clientRepo, estimateRepo, visitRepo, invoiceRepo, clock, appLog)
	estimateSvc := service.NewEstimateService(estimateRepo, clientRepo, profileRepo, emailSender, smsSender, renderer, cfg.Server.AppURL, clock, appLog)
	visitSvc := service.NewVisitService(visitRepo, clientRepo, estimateRepo, locks, clock, cfg.Schedule.WindowSize, appLog)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, visitRepo, clientRepo, profileRepo, emailSender, smsSender, renderer, locks, cfg.Server.AppURL, clock, appLog)
	reminderSvc := service.NewReminderService(visitRepo, smsSender, clock, appLog)
	statsSvc := service.NewStatsService(statsRepo, clock)

	// Initialize handlers
	h := router.Handlers{
		Health:   handler.NewHealthHandler(db),
		Profile:  handler.NewProfileHandler(profileSvc),
		Client:   handler.NewClientHandler(clientSvc),
		Estimate: handler.NewEstimateHandler(estimateSvc),
		Visit:    handler.NewVisitHandler(visitSvc, clock),
		Invoice:  handler.NewInvoiceHandler(invoiceSvc, clock),
		Public:   handler.NewPublicHandler(estimateSvc, invoiceSvc),
		Stats:    handler.NewStatsHandler(statsSvc),
		Task:     handler.NewTaskHandler(reminderSvc),
	}

	// Setup router
	r := router.Setup(authSvc, h, router.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		CronSecret:     cfg.Tasks.CronSecret,
		Log:            appLog,
	})

	var scheduler *service.ReminderScheduler
	if cfg.Schedule.CronEnabled {
		scheduler, err = service.NewReminderScheduler(reminderSvc, cfg.Schedule.CronSpec, loc, appLog)
		if err != nil {
			return err
		}
		scheduler.Start()
		appLog.WithField("spec", cfg.Schedule.CronSpec).Info("reminder scheduler started")
	}

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		appLog.Infof("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-quit:
		appLog.WithField("signal", sig.String()).Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if scheduler != nil {
		scheduler.Stop(shutdownCtx)
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

func newEmailSender(ctx context.Context, cfg *config.EmailConfig, log *logrus.Logger) (port.EmailSender, error) {
	switch cfg.Provider {
	case "ses":
		sender, err := sesemail.NewSESSender(ctx, cfg.Region, cfg.FromAddress, cfg.FromName)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SES sender: %w", err)
		}
		return sender, nil
	case "noop", "":
		return noopemail.NewNoopSender(log), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Provider)
	}
}

func newSMSSender(cfg *config.SMSConfig, log *logrus.Logger) (port.SMSSender, error) {
	switch cfg.Provider {
	case "twilio":
		sender, err := twiliosms.NewTwilioSender(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Twilio sender: %w", err)
		}
		return sender, nil
	case "noop", "":
		return noopsms.NewNoopSender(log), nil
	default:
		return nil, fmt.Errorf("unknown sms provider %q", cfg.Provider)
	}
}
