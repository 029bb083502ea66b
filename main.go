package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/debemdeboas/guidebot/internal/config"
	"github.com/debemdeboas/guidebot/internal/generate"
	"github.com/debemdeboas/guidebot/internal/guide"
	"github.com/debemdeboas/guidebot/internal/logger"
	"github.com/debemdeboas/guidebot/internal/model"
	"github.com/debemdeboas/guidebot/internal/publish"
	"github.com/debemdeboas/guidebot/internal/session"
	"github.com/debemdeboas/guidebot/internal/telegram"
	"github.com/debemdeboas/guidebot/internal/workflow"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// A missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	bootLog := logger.New("info")
	config.SetLogger(bootLog)

	if err := config.LoadConfig(*configPath); err != nil {
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}
	cfg := config.AppConfig

	log := logger.New(cfg.Logging.Level)
	config.SetLogger(log)
	guide.SetLogger(log)

	store := guide.NewMemoryStore()
	sessions := session.NewRouter()

	var gen generate.Client
	if cfg.Generation.APIKey == "" {
		log.Warn().Msg("GENERATION_API_KEY not set, using mock generator")
		gen = generate.Mock{}
	} else {
		var err error
		gen, err = generate.NewOpenAIClient(generate.OpenAISettings{
			Model:   cfg.Generation.Model,
			APIKey:  cfg.Generation.APIKey,
			BaseURL: cfg.Generation.BaseURL,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to build generation client")
		}
	}
	gen = generate.NewCached(gen)

	bot, err := telegram.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Telegram")
	}

	publisher := publish.New(bot, model.ChatID(cfg.Channel.ID), log)
	engine := workflow.NewEngine(store, sessions, gen, publisher, bot, log)
	bot.SetEngine(engine)

	ttl, interval := time.Duration(cfg.Drafts.TTL), time.Duration(cfg.Drafts.SweepInterval)
	if sweeper := guide.StartSweeper(store, ttl, interval); sweeper != nil {
		defer sweeper.Stop()
		log.Info().Dur("ttl", ttl).Dur("interval", interval).Msg("Draft expiry enabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := bot.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("Bot stopped")
	}
	log.Info().Msg("Shutting down")
}
