package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/MichalMitros/catalog-stock-monitor/cmd/monitor/config"
	"github.com/MichalMitros/catalog-stock-monitor/e2e/helpers"
	"github.com/MichalMitros/catalog-stock-monitor/internal/catalog"
	"github.com/MichalMitros/catalog-stock-monitor/internal/decoder"
	"github.com/MichalMitros/catalog-stock-monitor/internal/fetcher"
	"github.com/MichalMitros/catalog-stock-monitor/internal/handler"
	"github.com/MichalMitros/catalog-stock-monitor/internal/monitor"
	"github.com/MichalMitros/catalog-stock-monitor/internal/notifier"
	"github.com/MichalMitros/catalog-stock-monitor/internal/platform/models"
	"github.com/MichalMitros/catalog-stock-monitor/internal/platform/rabbitmq"
	"github.com/MichalMitros/catalog-stock-monitor/internal/platform/storage"
	"github.com/MichalMitros/catalog-stock-monitor/internal/stock"
	"github.com/MichalMitros/catalog-stock-monitor/pkg/v1/commander"
	"github.com/MichalMitros/catalog-stock-monitor/pkg/v1/events"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	userAgent = "csm-e2e-test/0.0.1"
	category  = "sverse-e2e"
	label     = "E2E"
	chatID    = "42"
	exchange  = "csm-e2e"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	os.Exit(m.Run())
}

func TestE2E(t *testing.T) {
	suite.Run(t, new(E2ETestSuite))
}

type E2ETestSuite struct {
	suite.Suite
	cfg      config.Config
	catalog  *helpers.Catalog
	telegram *helpers.Telegram
	snapshot string
	logs     *bytes.Buffer
	logger   zerolog.Logger
	client   *catalog.Client
	notifier *notifier.Notifier
}

func (s *E2ETestSuite) SetupSuite() {
	var err error
	if s.cfg, err = config.Load(); err != nil {
		s.Require().FailNow("can't load configuration", err)
	}
}

func (s *E2ETestSuite) SetupTest() {
	catalogSrv, cat := helpers.PrepareMockedCatalogServer(s.T(), category)
	telegramSrv, endpoint, tg := helpers.PrepareMockedTelegramServer(s.T(), chatID)
	s.catalog, s.telegram = cat, tg

	s.logs = &bytes.Buffer{}
	s.logger = zerolog.New(s.logs).Level(zerolog.DebugLevel)

	bot, err := tgbotapi.NewBotAPIWithClient("123:e2e", endpoint, telegramSrv.Client())
	s.Require().NoError(err, "should connect mocked Telegram bot")

	s.client = catalog.NewClient(
		fetcher.NewFetcher(catalogSrv.Client(), userAgent, catalogSrv.URL),
		decoder.NewDecoder(catalogSrv.URL, "Shein"),
		catalogSrv.URL,
		category,
		&s.logger,
		catalog.WithPageDelay(0),
	)
	s.notifier = notifier.NewNotifier(notifier.NewTelegramSender(bot, chatID), &s.logger, notifier.WithSendDelay(0))
	s.snapshot = filepath.Join(s.T().TempDir(), "product-data.json")
}

func (s *E2ETestSuite) newMonitor(ops ...monitor.Option) *monitor.Monitor {
	return monitor.NewMonitor(
		s.client,
		storage.NewFile(s.snapshot),
		stock.NewFilter(s.client, &s.logger, stock.WithBatchDelay(0)),
		s.notifier,
		label,
		&s.logger,
		ops...,
	)
}

func (s *E2ETestSuite) TestMonitoringCycles() {
	ctx := context.Background()
	mon := s.newMonitor()

	// First cycle establishes baseline
	s.catalog.SetProducts(helpers.Products(1, 4))

	outcome, err := mon.RunCycle(ctx)
	s.Require().NoError(err)
	s.Equal(monitor.OutcomeBootstrap, outcome)
	s.Require().Len(s.telegram.Messages(), 1, "should send announcement")
	s.Contains(s.telegram.Messages()[0], "Tracking 4 products from E2E")

	// Second cycle reports new in stock product only
	s.catalog.SetProducts(helpers.Products(1, 6))
	s.catalog.SetStock("5", map[string]int{"M": 3, "S": 0})

	outcome, err = mon.RunCycle(ctx)
	s.Require().NoError(err)
	s.Equal(monitor.OutcomeReported, outcome)
	s.Require().Len(s.telegram.Messages(), 2, "should send single report chunk")
	report := s.telegram.Messages()[1]
	s.Contains(report, "Product 5")
	s.Contains(report, "₹750 (25% OFF)")
	s.Contains(report, "Stock: 3 units")
	s.Contains(report, "M: 3")
	s.NotContains(report, "Product 6", "out of stock product shouldn't be reported")

	snapshot, err := storage.NewFile(s.snapshot).Load(ctx)
	s.Require().NoError(err)
	s.Equal(6, snapshot.Count)
	s.Len(snapshot.Products, 6)
	s.Require().NotNil(snapshot.LastChange)
	s.Equal([]string{"5"}, lo.Map(snapshot.LastChange.Added, func(p models.Product, _ int) string { return p.Code }))

	// Third cycle sees no change
	outcome, err = mon.RunCycle(ctx)
	s.Require().NoError(err)
	s.Equal(monitor.OutcomeNoChange, outcome)
	s.Len(s.telegram.Messages(), 2, "shouldn't send any message")

	assertOutcomes(s.T(), []monitor.Outcome{
		monitor.OutcomeBootstrap,
		monitor.OutcomeReported,
		monitor.OutcomeNoChange,
	}, s.logs.String())
}

func (s *E2ETestSuite) TestCheckCommands() {
	if s.cfg.RabbitMQ.URL == "" {
		s.T().Skip("RABBITMQ_URL not set")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	connection, err := amqp.Dial(s.cfg.RabbitMQ.URL)
	s.Require().NoError(err, "can't open RabbitMQ connection")
	defer connection.Close()

	channel, err := connection.Channel()
	s.Require().NoError(err, "can't open RabbitMQ channel")
	defer channel.Close()

	// Prepare test RMQ queues
	queue := fmt.Sprintf("csm-e2e-test-%d", rand.Int63n(100000))
	routingKey := fmt.Sprintf("csm.cmd.e2e.%d", rand.Int63n(100000))
	eventsQueue := fmt.Sprintf("csm-e2e-events-%d", rand.Int63n(100000))
	eventsKey := fmt.Sprintf("csm.events.e2e.%d", rand.Int63n(100000))

	rmq, err := rabbitmq.NewRabbitMQ(connection, exchange)
	s.Require().NoError(err, "can't create RabbitMQ client")
	s.Require().NoError(rmq.DeclareTopology(queue, routingKey))
	s.Require().NoError(rmq.DeclareTopology(eventsQueue, eventsKey))
	helpers.CleanupRMQQueue(s.T(), channel, queue)
	helpers.CleanupRMQQueue(s.T(), channel, eventsQueue)

	deliveries, err := channel.Consume(eventsQueue, "", true, false, false, false, nil)
	s.Require().NoError(err, "can't consume events")

	// Prepare and run handler
	mon := s.newMonitor(monitor.WithEventPublisher(
		events.NewPublisher(commander.NewRabbitMQSender(rmq, eventsKey)),
	))
	han := handler.NewHandler(rmq, mon, &s.logger)
	s.Require().NoError(han.Start(ctx, queue), "handler shouldn't return any error")

	checker := commander.NewCheckCommander(commander.NewRabbitMQSender(rmq, routingKey))

	// Baseline
	s.catalog.SetProducts(helpers.Products(1, 3))
	s.Require().NoError(checker.SendCheckCommand(ctx, "e2e baseline"))
	s.Eventually(func() bool { return len(s.telegram.Messages()) == 1 }, 5*time.Second, 50*time.Millisecond)

	// New products
	s.catalog.SetProducts(helpers.Products(1, 5))
	s.catalog.SetStock("4", map[string]int{"L": 2})
	s.Require().NoError(checker.SendCheckCommand(ctx, "e2e change"))
	s.Eventually(func() bool { return len(s.telegram.Messages()) == 2 }, 5*time.Second, 50*time.Millisecond)

	select {
	case delivery := <-deliveries:
		var event events.ProductsAdded
		s.Require().NoError(json.Unmarshal(delivery.Body, &event))
		s.Equal(3, event.OldCount)
		s.Equal(5, event.NewCount)
		s.Equal(2, event.TotalAdded)
		s.Require().Len(event.Products, 1)
		s.Equal("4", event.Products[0].Code)
		s.Equal(2, event.Products[0].Stock)
	case <-time.After(5 * time.Second):
		s.FailNow("products added event wasn't published")
	}

	// Cancel context to stop consumer
	cancel()
	<-rmq.Done()
	s.NoError(rmq.Close(), "should close RabbitMQ channel")
}

// assertOutcomes is helper function which unmarshals json logs and asserts outcomes of finished cycles.
func assertOutcomes(t *testing.T, expected []monitor.Outcome, logs string) {
	t.Helper()

	lines := lo.Filter(strings.Split(logs, "\n"), func(line string, _ int) bool { return strings.TrimSpace(line) != "" })

	var outcomes []monitor.Outcome
	for _, line := range lines {
		var log struct {
			Message string          `json:"message"`
			Outcome monitor.Outcome `json:"outcome"`
			CycleID string          `json:"cycleId"`
		}
		if err := json.Unmarshal([]byte(line), &log); err != nil {
			require.FailNow(t, "can't unmarshal json log", err)
		}
		if log.Message == "cycle finished" {
			assert.NotEmpty(t, log.CycleID, "cycle log should have cycle ID")
			outcomes = append(outcomes, log.Outcome)
		}
	}

	assert.Equal(t, expected, outcomes, "incorrect cycle outcomes")
}
