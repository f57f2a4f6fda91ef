// Package main is the entry point for the flight ticket alarm service: a
// flight-offers search API with a LINE chat frontend.
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

	"github.com/labstack/echo/v4"
	"github.com/line/line-bot-sdk-go/v7/linebot"

	flighthttp "github.com/ahwei/flight-ticket-alarm/internal/adapter/http"
	"github.com/ahwei/flight-ticket-alarm/internal/adapter/http/middleware"
	"github.com/ahwei/flight-ticket-alarm/internal/adapter/line"
	"github.com/ahwei/flight-ticket-alarm/internal/adapter/provider/amadeus"
	"github.com/ahwei/flight-ticket-alarm/internal/adapter/provider/scoot"
	"github.com/ahwei/flight-ticket-alarm/internal/adapter/provider/tigerair"
	"github.com/ahwei/flight-ticket-alarm/internal/config"
	"github.com/ahwei/flight-ticket-alarm/internal/infrastructure/convstore"
	"github.com/ahwei/flight-ticket-alarm/internal/infrastructure/logger"
	"github.com/ahwei/flight-ticket-alarm/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.MustLoad()

	log := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		ServiceName: "flight-ticket-alarm",
	})

	log.Info().
		Str("env", cfg.App.Env).
		Int("port", cfg.Server.Port).
		Msg("Configuration loaded")

	// Offer source
	client := amadeus.NewClient(amadeus.Config{
		BaseURL:   cfg.Amadeus.BaseURL,
		APIKey:    cfg.Amadeus.APIKey,
		APISecret: cfg.Amadeus.APISecret,
		Timeout:   cfg.Amadeus.Timeout,
	})
	source := amadeus.NewAdapter(client, cfg.Search.Currency)

	// Conversation store: Redis when configured, in-process memory otherwise
	store := newStore(cfg, log)

	// Use cases
	defaults := usecase.SearchDefaults{
		Origin:      cfg.Search.DefaultOrigin,
		Destination: cfg.Search.DefaultDestination,
	}
	searchUseCase := usecase.NewFlightSearchUseCase(source, defaults, nil, log)
	conversationUseCase := usecase.NewConversationUseCase(store, log)

	// HTTP server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	middleware.Setup(e, log.Logger, middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimit.RPS,
		Burst:             cfg.RateLimit.Burst,
	})

	flightHandler := flighthttp.NewFlightHandler(searchUseCase)
	airlineHandler := flighthttp.NewAirlineHandler(tigerair.NewScraper(), scoot.NewScraper())
	flighthttp.RegisterRoutes(e, flightHandler, airlineHandler)

	// LINE webhook, only when channel credentials are present
	if cfg.LineEnabled() {
		bot, err := linebot.New(cfg.Line.ChannelSecret, cfg.Line.ChannelToken)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create LINE client")
		}
		webhook := line.NewWebhook(bot, line.NewBotSender(bot), conversationUseCase, searchUseCase, store, log)
		flighthttp.RegisterWebhook(e, webhook.Handle)
		log.Info().Msg("LINE webhook registered")
	} else {
		log.Warn().Msg("LINE credentials missing, webhook disabled")
	}

	// Start server with graceful shutdown
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		log.Info().Str("address", addr).Msg("Starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	gracefulShutdown(e, log)
}

// newStore picks the conversation store backend.
func newStore(cfg *config.Config, log *logger.Logger) convstore.Store {
	if cfg.Redis.Addr == "" {
		log.Info().Msg("Using in-memory conversation store")
		return convstore.NewMemory(cfg.Conversation.TTL, nil)
	}

	store, err := convstore.NewRedis(convstore.RedisConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		TTL:      cfg.Conversation.TTL,
	})
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("Failed to connect to Redis")
	}

	log.Info().Str("addr", cfg.Redis.Addr).Msg("Using Redis conversation store")
	return store
}

// gracefulShutdown handles graceful server shutdown on interrupt signals.
func gracefulShutdown(e *echo.Echo, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}
