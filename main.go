package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"urbanreport-be/config"
	"urbanreport-be/controllers"
	"urbanreport-be/middlewares"
	"urbanreport-be/models"
	"urbanreport-be/notifier"
	"urbanreport-be/relay"
	"urbanreport-be/routes"
	"urbanreport-be/store"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	config.SetupLogger(cfg)
	if envErr != nil {
		log.Info().Msg("No .env file found")
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var seed []models.Issue
	if cfg.SeedSampleData {
		seed = store.SampleIssues()
	}
	issueStore := store.New(seed)
	log.Info().Int("issues", issueStore.Len()).Msg("issue store ready")

	var createLimiter gin.HandlerFunc
	if cfg.Redis.Address != "" {
		redisClient, err := config.ConnectRedis(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		defer redisClient.Close()
		createLimiter = middlewares.IssueRateLimiter(redisClient, cfg.Redis.QueuePrefix, cfg.IssueCreateLimit)
		log.Info().Str("addr", cfg.Redis.Address).Int("limit", cfg.IssueCreateLimit).Msg("issue rate limiting enabled")
	}

	if cfg.Relay.Secret == "" {
		log.Warn().Msg("RELAY_SECRET is empty, status notifications will report misconfigured")
	}

	r := routes.NewRouter(routes.Dependencies{
		Issues:         controllers.NewIssueController(issueStore, notifier.New(cfg.Relay), cfg.NotifyWait),
		Relay:          relay.NewHandler(relay.NewSMTPMailer(cfg.Mail), cfg.Mail),
		RelaySecret:    cfg.Relay.Secret,
		CreateLimiter:  createLimiter,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
