package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/MichalMitros/catalog-stock-monitor/cmd/monitor/config"
	"github.com/MichalMitros/catalog-stock-monitor/internal/catalog"
	"github.com/MichalMitros/catalog-stock-monitor/internal/decoder"
	"github.com/MichalMitros/catalog-stock-monitor/internal/fetcher"
	"github.com/MichalMitros/catalog-stock-monitor/internal/handler"
	"github.com/MichalMitros/catalog-stock-monitor/internal/monitor"
	"github.com/MichalMitros/catalog-stock-monitor/internal/notifier"
	"github.com/MichalMitros/catalog-stock-monitor/internal/platform/rabbitmq"
	"github.com/MichalMitros/catalog-stock-monitor/internal/platform/storage"
	"github.com/MichalMitros/catalog-stock-monitor/internal/stock"
	"github.com/MichalMitros/catalog-stock-monitor/pkg/v1/commander"
	"github.com/MichalMitros/catalog-stock-monitor/pkg/v1/events"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	_ "github.com/lib/pq"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

const (
	// UserAgent is user agent header value used when fetching catalog.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

const setupPrompt = `Telegram credentials are not configured.

1. Create a bot with @BotFather and copy its token.
2. Send a message to the bot and read your chat ID from
   https://api.telegram.org/bot<TOKEN>/getUpdates (or use @channel name).
3. Set TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID in environment or .env file.
`

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't load configuration")
	}

	if err := cfg.Validate(); err != nil {
		if errors.Is(err, config.ErrMissingCredentials) {
			fmt.Fprint(os.Stderr, setupPrompt)
		}
		logger.Error().
			Err(err).
			Msg("invalid configuration")
		os.Exit(1)
	}

	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(level)
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	bot, err := tgbotapi.NewBotAPIWithClient(cfg.Telegram.Token, tgbotapi.APIEndpoint, httpClient)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't connect Telegram bot")
	}

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't open snapshot store")
	}

	client := catalog.NewClient(
		fetcher.NewFetcher(httpClient, UserAgent, cfg.Catalog.BaseURL),
		decoder.NewDecoder(cfg.Catalog.BaseURL, cfg.Catalog.DefaultBrand),
		cfg.Catalog.BaseURL,
		cfg.Catalog.Category,
		&logger,
		catalog.WithStockTimeout(cfg.StockTimeout),
	)

	ops := []monitor.Option{monitor.WithInterval(cfg.CheckInterval)}

	var amqpConnection *amqp.Connection
	var conn *rabbitmq.RabbitMQ
	if cfg.RabbitMQ.URL != "" {
		amqpConnection, err = amqp.Dial(cfg.RabbitMQ.URL)
		if err != nil {
			logger.Fatal().
				Err(err).
				Msg("can't open RabbitMQ connection")
		}

		conn, err = rabbitmq.NewRabbitMQ(amqpConnection, cfg.RabbitMQ.Exchange)
		if err != nil {
			logger.Fatal().
				Err(err).
				Msg("can't open RabbitMQ connection")
		}

		if err := conn.DeclareTopology(cfg.RabbitMQ.Queue, cfg.RabbitMQ.CommandsKey); err != nil {
			logger.Fatal().
				Err(err).
				Msg("can't declare RabbitMQ topology")
		}

		publisher := events.NewPublisher(commander.NewRabbitMQSender(conn, cfg.RabbitMQ.EventsRoutingKey))
		ops = append(ops, monitor.WithEventPublisher(publisher))
	}

	mon := monitor.NewMonitor(
		client,
		store,
		stock.NewFilter(client, &logger, stock.WithBatchSize(cfg.BatchSize)),
		notifier.NewNotifier(notifier.NewTelegramSender(bot, cfg.Telegram.ChatID), &logger),
		cfg.Catalog.Label,
		&logger,
		ops...,
	)

	if conn != nil {
		han := handler.NewHandler(conn, mon, &logger)

		// start consuming and handling check commands
		if err := han.Start(ctx, cfg.RabbitMQ.Queue); err != nil {
			logger.Fatal().
				Err(err).
				Msg("can't start consuming")
		}
	}

	monitorDone := make(chan struct{})
	go func() {
		defer close(monitorDone)
		mon.Run(ctx)
	}()

	logger.Info().
		Str("catalog", cfg.Catalog.Label).
		Dur("interval", cfg.CheckInterval).
		Msg("catalog stock monitor up and running")

	// handle graceful shutdown and context cancellation
	termChan := make(chan os.Signal, 1)
	signal.Notify(termChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-termChan:
		cancel()
	case <-ctx.Done():
	}

	logger.Info().Msg("graceful shutdown start")

	// wait for running cycle and consumer to finish
	<-monitorDone
	if conn != nil {
		<-conn.Done()
	}

	if err := closeStore(); err != nil {
		logger.Error().
			Err(err).
			Msg("can't close snapshot store")
	}

	if conn != nil {
		if err := conn.Close(); err != nil {
			logger.Error().
				Err(err).
				Msg("can't close RabbitMQ channel")
		}
	}

	if amqpConnection != nil {
		if err := amqpConnection.Close(); err != nil {
			logger.Error().
				Err(err).
				Msg("can't close RabbitMQ connection")
		}
	}

	logger.Info().Msg("graceful shutdown successful")
}

// openStore opens Postgres snapshot store when database URL is configured and file store otherwise.
func openStore(ctx context.Context, cfg config.Config) (monitor.Store, func() error, error) {
	if cfg.DatabaseURL == "" {
		return storage.NewFile(cfg.SnapshotPath), func() error { return nil }, nil
	}

	pgDB, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("can't open Postgres connection: %w", err)
	}

	store := storage.NewPostgres(pgDB, storage.DefaultSnapshotName)
	if err := store.Migrate(ctx); err != nil {
		_ = pgDB.Close()
		return nil, nil, err
	}

	return store, pgDB.Close, nil
}
