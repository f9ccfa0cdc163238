package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"partyplanner/config"
	_ "partyplanner/docs"
	"partyplanner/internal/adapters/auth"
	"partyplanner/internal/adapters/blob"
	"partyplanner/internal/adapters/email"
	delivery "partyplanner/internal/delivery/http"
	"partyplanner/internal/delivery/http/controllers"
	"partyplanner/internal/delivery/http/middleware"
	"partyplanner/internal/domain"
	"partyplanner/internal/repository/postgres"
	"partyplanner/internal/services"
)

const serviceTimeout = 10 * time.Second

// @title Party Planner API
// @version 1.0
// @description Event planning backend: invitations, RSVP responses, and voted submissions (tracks, costumes, photos).
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		logger.Error("ping database", "err", err)
		os.Exit(1)
	}

	eventRepo := postgres.NewEventRepository(db)
	invitationRepo := postgres.NewInvitationRepository(db)
	submissionRepo := postgres.NewSubmissionRepository(db)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretAccessKey,
		},
	})
	if err != nil {
		logger.Error("create mailer", "err", err)
		os.Exit(1)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())

	var blobStore domain.BlobStore
	if cfg.S3Bucket != "" {
		blobStore, err = blob.NewS3Store(ctx, blob.S3Config{
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretKey,
			PublicBaseURL:   cfg.S3PublicBaseURL,
			ForcePathStyle:  cfg.S3ForcePathStyle,
		})
		if err != nil {
			logger.Error("create blob store", "err", err)
			os.Exit(1)
		}
	} else {
		logger.Warn("S3_BUCKET not set, photo uploads disabled")
	}

	eventService := services.NewEventService(eventRepo, serviceTimeout)
	invitationService := services.NewInvitationService(
		invitationRepo, eventRepo, emailService, logger, cfg.BaseURL, serviceTimeout)
	submissionService := services.NewSubmissionService(submissionRepo, eventRepo, serviceTimeout)

	_, verifier := auth.NewJWTTokens(cfg.JWTSecret)

	mux := delivery.NewRouter(
		logger,
		verifier,
		controllers.NewEventController(logger, eventService),
		controllers.NewInvitationController(logger, invitationService),
		controllers.NewSubmissionController(logger, submissionService, blobStore),
	)

	var handler http.Handler = middleware.LoggingMiddleware(logger, mux)
	if len(cfg.CORSAllowedOrigins) > 0 {
		handler = middleware.CORS(cfg.CORSAllowedOrigins, handler)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting server", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}
