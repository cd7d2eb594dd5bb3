package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/JuanVergara-9/notification-service2/internal/config"
	"github.com/JuanVergara-9/notification-service2/internal/db"
	"github.com/JuanVergara-9/notification-service2/internal/geocode"
	httpapi "github.com/JuanVergara-9/notification-service2/internal/http"
	"github.com/JuanVergara-9/notification-service2/internal/http/handlers"
	"github.com/JuanVergara-9/notification-service2/internal/intent"
	"github.com/JuanVergara-9/notification-service2/internal/match"
	"github.com/JuanVergara-9/notification-service2/internal/service"
	"github.com/JuanVergara-9/notification-service2/internal/session"
	"github.com/JuanVergara-9/notification-service2/internal/wa"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := log.Level(level).With().Str("service", "notification-service").Logger()

	ctx := context.Background()
	store, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect db")
	}
	defer store.Close()

	var sessions session.Store
	if cfg.RedisAddr != "" {
		sessions = session.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.SessionTTL)
		logger.Info().Str("addr", cfg.RedisAddr).Msg("using redis session store")
	} else {
		sessions = session.NewMemory()
	}

	var extractor intent.Extractor
	if cfg.OpenAIAPIKey == "" {
		extractor = intent.Mock{}
		logger.Info().Msg("using mock intent extractor")
	} else {
		extractor = intent.HTTPExtractor{
			BaseURL: cfg.OpenAIBaseURL,
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.OpenAIModel,
		}
	}

	var geocoder geocode.Geocoder
	if cfg.GeocodingURL != "" {
		geocoder = &geocode.NominatimGeocoder{BaseURL: cfg.GeocodingURL}
	}

	matcher := &match.Client{
		BaseURL:  cfg.ProvidersBaseURL(),
		RadiusKm: cfg.MatchRadiusKm,
		Synonyms: match.LoadSynonyms(cfg.CategorySynonymsPath),
		Geocoder: geocoder,
		Logger:   logger,
	}

	sender := &wa.Client{
		AccessToken:   cfg.WhatsAppAccessToken,
		PhoneNumberID: cfg.WhatsAppPhoneNumberID,
	}

	orchestrator := &service.Orchestrator{
		Users:         store,
		Tickets:       store,
		Sessions:      sessions,
		Extractor:     extractor,
		Matcher:       matcher,
		Sender:        sender,
		Logger:        logger,
		AllowedSender: cfg.AllowedSender,
		FrontendURL:   cfg.FrontendURL,
		TermsVersion:  cfg.TermsVersion,
	}

	h := &handlers.Handler{
		Store:        store,
		DB:           store,
		Orchestrator: orchestrator,
		Sender:       sender,
		Validator:    validator.New(),
		Logger:       logger,
		VerifyToken:  cfg.WebhookVerifyToken,
	}

	router := httpapi.Router(cfg, h)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("server stopped")
}
