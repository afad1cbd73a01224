package cmd

import (
	"log/slog"
	"strings"
	"time"

	"fulfillment/internal/adapters/out/kafka"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/events"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/payment"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// defaultDepositCapRatio bounds deposits to 80% of the order total when
// configuration provides no override.
var defaultDepositCapRatio = decimal.NewFromFloat(0.8)

// defaultPendingReminderAfter is how long an order may sit in pending before
// the reminder job starts alerting admins.
const defaultPendingReminderAfter = 24 * time.Hour

// CompositionRoot wires adapters, use case handlers and the event dispatcher
// together. It is built once at process start.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	publisher  *kafka.NotificationPublisher
	dispatcher *events.Dispatcher

	capRatio             decimal.Decimal
	allowedMethods       []payment.Method
	pendingReminderAfter time.Duration

	logger *slog.Logger
}

// NewCompositionRoot builds the object graph from configuration.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	if logger == nil {
		logger = slog.Default()
	}

	publisher := kafka.NewNotificationPublisher(
		[]string{config.KafkaHost},
		config.KafkaNotificationsTopic,
	)

	dispatcher := events.NewDispatcher(logger)
	dispatcher.Register("log", events.NewLogHandler(logger))
	dispatcher.Register("kafka", events.NewPublisherHandler(services.NewNotificationRouter(), publisher))

	return CompositionRoot{
		gormDB:               gormDB,
		uowFactory:           *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:            publisher,
		dispatcher:           dispatcher,
		capRatio:             parseCapRatio(config.DepositCapPercent, logger),
		allowedMethods:       parsePaymentMethods(config.PaymentMethods),
		pendingReminderAfter: parsePendingReminderAfter(config.PendingReminderAfter, logger),
		logger:               logger,
	}
}

// parseCapRatio reads the deposit cap from configuration, falling back to the
// default on absence or a malformed value.
func parseCapRatio(raw string, logger *slog.Logger) decimal.Decimal {
	if raw == "" {
		return defaultDepositCapRatio
	}

	ratio, err := decimal.NewFromString(raw)
	if err != nil || !ratio.IsPositive() || ratio.GreaterThan(decimal.NewFromInt(1)) {
		logger.Warn("invalid DEPOSIT_CAP_PERCENT, using default",
			"value", raw, "default", defaultDepositCapRatio.String())
		return defaultDepositCapRatio
	}

	return ratio
}

// parsePaymentMethods splits the comma-separated allow-list. An empty value
// yields nil, which handlers treat as the default method set.
func parsePaymentMethods(raw string) []payment.Method {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	methods := make([]payment.Method, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			methods = append(methods, payment.Method(trimmed))
		}
	}

	return methods
}

// parsePendingReminderAfter reads the reminder threshold from configuration.
func parsePendingReminderAfter(raw string, logger *slog.Logger) time.Duration {
	if raw == "" {
		return defaultPendingReminderAfter
	}

	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		logger.Warn("invalid PENDING_REMINDER_AFTER, using default",
			"value", raw, "default", defaultPendingReminderAfter.String())
		return defaultPendingReminderAfter
	}

	return d
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateApplyTransitionCommandHandler() commands.ApplyTransitionCommandHandler {
	var f commands.TransitionUoWFactory = FuncTransitionUoWFactory(func() commands.TransitionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewApplyTransitionCommandHandler(f, c.dispatcher)
}

func (c *CompositionRoot) CreateRecordDepositCommandHandler() commands.RecordDepositCommandHandler {
	var f commands.LedgerUoWFactory = FuncLedgerUoWFactory(func() commands.LedgerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordDepositCommandHandler(f, c.dispatcher, c.capRatio, c.allowedMethods)
}

func (c *CompositionRoot) CreateRecordRemainingPaymentCommandHandler() commands.RecordRemainingPaymentCommandHandler {
	var f commands.LedgerUoWFactory = FuncLedgerUoWFactory(func() commands.LedgerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordRemainingPaymentCommandHandler(f, c.dispatcher, c.allowedMethods, c.logger)
}

func (c *CompositionRoot) CreateGetOrderPaymentsQueryHandler() queries.GetOrderPaymentsQueryHandler {
	return queries.NewGetOrderPaymentsQueryHandler(c.gormDB, c.logger)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.gormDB)
}

// UnitOfWorkFactory exposes the shared factory for background jobs.
func (c *CompositionRoot) UnitOfWorkFactory() ports.UnitOfWorkFactory {
	return &c.uowFactory
}

// NotificationPublisher exposes the shared publisher for background jobs.
func (c *CompositionRoot) NotificationPublisher() ports.NotificationPublisher {
	return c.publisher
}

// PendingReminderAfter exposes the reminder threshold for the job manager.
func (c *CompositionRoot) PendingReminderAfter() time.Duration {
	return c.pendingReminderAfter
}

// Logger exposes the process logger.
func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

// Close releases resources held by the composition root.
func (c *CompositionRoot) Close() error {
	return c.publisher.Close()
}

// FuncOrderUoWFactory adapts a plain function to the commands.OrderUoWFactory
// interface, letting the composition root hand out narrowed views of the
// shared GORM unit of work factory.
type FuncOrderUoWFactory func() commands.OrderUoW

// Create returns a fresh unit of work for one order command.
func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

// FuncTransitionUoWFactory adapts a plain function to the
// commands.TransitionUoWFactory interface.
type FuncTransitionUoWFactory func() commands.TransitionUoW

// Create returns a fresh unit of work for one transition command.
func (f FuncTransitionUoWFactory) Create() commands.TransitionUoW {
	return f()
}

// FuncLedgerUoWFactory adapts a plain function to the
// commands.LedgerUoWFactory interface.
type FuncLedgerUoWFactory func() commands.LedgerUoW

// Create returns a fresh unit of work for one ledger command.
func (f FuncLedgerUoWFactory) Create() commands.LedgerUoW {
	return f()
}
