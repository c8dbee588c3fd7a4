package cmd

import (
	"fmt"
	"io"
	"log/slog"

	httpin "orderservice/internal/adapters/in/http"
	"orderservice/internal/adapters/out/kafka"
	"orderservice/internal/adapters/out/noop"
	"orderservice/internal/adapters/out/postgres"
	"orderservice/internal/adapters/out/rabbitmq"
	"orderservice/internal/core/application/usecases/commands"
	"orderservice/internal/core/application/usecases/queries"
	"orderservice/internal/core/ports"
	"orderservice/internal/jobs"
	"orderservice/internal/pkg/metrics"

	"gorm.io/gorm"
)

// EventPublisher is an order event publisher holding a broker connection.
type EventPublisher interface {
	ports.OrderEventPublisher
	io.Closer
}

// NewEventPublisher picks the publisher named by EVENTS_BROKER.
func NewEventPublisher(cfg Config) (EventPublisher, error) {
	switch cfg.EventsBroker {
	case BrokerKafka:
		return kafka.NewOrderEventPublisher(cfg.KafkaHost, cfg.KafkaOrderChangedTopic), nil
	case BrokerRabbitMQ:
		publisher, err := rabbitmq.Dial(cfg.RabbitMQURL, cfg.RabbitMQExchange)
		if err != nil {
			return nil, err
		}
		return publisher, nil
	case BrokerNone, "":
		return noop.OrderEventPublisher{}, nil
	default:
		return nil, fmt.Errorf("unknown EVENTS_BROKER %q", cfg.EventsBroker)
	}
}

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	publisher  ports.OrderEventPublisher
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// NewCompositionRoot wires handlers to db. Every event handed to publisher
// is also counted in m.
func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	publisher ports.OrderEventPublisher,
	m *metrics.Metrics,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  metrics.InstrumentPublisher(publisher, m),
		metrics:    m,
		logger:     logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateChangeOrderStateCommandHandler() commands.ChangeOrderStateCommandHandler {
	return commands.NewChangeOrderStateCommandHandler(c.orderUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateReviseOrderCommandHandler() commands.ReviseOrderCommandHandler {
	return commands.NewReviseOrderCommandHandler(c.orderUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateConfirmRevisionCommandHandler() commands.ConfirmRevisionCommandHandler {
	return commands.NewConfirmRevisionCommandHandler(c.orderUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateCountOrdersByStateQueryHandler() queries.CountOrdersByStateQueryHandler {
	return queries.NewCountOrdersByStateQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateChangeOrderStateCommandHandler(),
		c.CreateReviseOrderCommandHandler(),
		c.CreateConfirmRevisionCommandHandler(),
		c.CreateGetOrderQueryHandler(),
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(jobs.NewOrderStateGaugeJob(
		c.CreateCountOrdersByStateQueryHandler(),
		c.metrics,
		c.cfg.StateGaugeSchedule,
		c.logger,
	))
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
