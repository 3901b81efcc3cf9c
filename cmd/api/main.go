package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/rephotos/admin-api/internal/config"
	"github.com/rephotos/admin-api/internal/domain/booking"
	"github.com/rephotos/admin-api/internal/domain/dashboard"
	"github.com/rephotos/admin-api/internal/middleware"
	"github.com/rephotos/admin-api/internal/pkg/database"
	"github.com/rephotos/admin-api/internal/pkg/dropbox"
	"github.com/rephotos/admin-api/internal/pkg/email"
	"github.com/rephotos/admin-api/internal/pkg/logger"
	"github.com/rephotos/admin-api/internal/pkg/response"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env})

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting RePhotos admin API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redisClient, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redisClient)

	// ---------- Email ----------
	var emailService *email.Service
	if cfg.ResendAPIKey != "" {
		client := email.NewResendClient(email.ResendConfig{
			APIKey:    cfg.ResendAPIKey,
			FromEmail: cfg.EmailFrom,
			FromName:  cfg.EmailFromName,
			ReplyTo:   cfg.EmailReplyTo,
		})
		emailService = email.NewService(client, email.Branding{
			CompanyName:   cfg.CompanyName,
			Phone:         cfg.CompanyPhone,
			FromEmail:     cfg.EmailFrom,
			SignatureName: cfg.EmailFromName,
			PrepGuideURL:  cfg.PrepGuideURL,
			WebsiteLine:   "rephotos.ca",
		}, cfg.NotifyEmail)
		defer emailService.Close()
	} else {
		log.Warn().Msg("RESEND_API_KEY not set, emails disabled")
	}

	// ---------- Dropbox ----------
	var dropboxClient *dropbox.Client
	var dropboxHandler *dropbox.Handler
	if cfg.DropboxClientID != "" {
		var tokenStore dropbox.TokenStore
		if redisClient != nil {
			tokenStore = dropbox.NewRedisTokenStore(redisClient)
		} else {
			tokenStore = dropbox.NewMemoryTokenStore()
		}
		dropboxClient = dropbox.NewClient(dropbox.Config{
			ClientID:     cfg.DropboxClientID,
			ClientSecret: cfg.DropboxClientSecret,
			RedirectURI:  cfg.DropboxRedirectURI,
			BaseFolder:   cfg.DropboxBaseFolder,
			Timeout:      cfg.DropboxTimeout,
		}, tokenStore)
		dropboxHandler = dropbox.NewHandler(dropboxClient, cfg.FrontendURL)
	} else {
		log.Warn().Msg("DROPBOX_CLIENT_ID not set, folder provisioning disabled")
	}

	// ---------- Domain wiring ----------
	bookingRepo := booking.NewRepository(db)
	bookingService := booking.NewService(bookingRepo)
	if emailService != nil {
		bookingService.SetMailer(emailService)
		bookingService.SetDeliverySender(emailService)
	}
	if dropboxClient != nil {
		bookingService.SetFolderProvisioner(dropboxClient)
	}
	bookingHandler := booking.NewHandler(bookingService)

	dashboardService := dashboard.NewService(db)
	dashboardHandler := dashboard.NewHandler(dashboardService)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))
	r.Use(chimw.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/bookings", bookingHandler.Routes())
		r.Mount("/dashboard", dashboardHandler.Routes())
		r.Post("/emails", bookingHandler.SendEmail)

		if dropboxHandler != nil {
			r.Mount("/dropbox", dropboxHandler.Routes())
		}
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
