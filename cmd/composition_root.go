package cmd

import (
	"log/slog"

	httpin "orderflow/internal/adapters/in/http"
	kafkain "orderflow/internal/adapters/in/kafka"
	kafkaout "orderflow/internal/adapters/out/kafka"
	"orderflow/internal/adapters/out/postgres"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/ports"
	"orderflow/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	writer := kafkaout.NewWriter([]string{configs.KafkaHost}, configs.KafkaOrderCreatedTopic)

	return CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  kafkaout.NewPublisher(writer),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateProcessOrderCreatedCommandHandler() commands.ProcessOrderCreatedCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewProcessOrderCreatedCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrderByIDQueryHandler() queries.GetOrderByIDQueryHandler {
	return queries.NewGetOrderByIDQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllOrdersQueryHandler() queries.GetAllOrdersQueryHandler {
	return queries.NewGetAllOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	createOrderHandler := c.CreateCreateOrderCommandHandler()
	getOrderByIDHandler := c.CreateGetOrderByIDQueryHandler()
	getAllOrdersHandler := c.CreateGetAllOrdersQueryHandler()
	return httpin.NewServer(&createOrderHandler, getOrderByIDHandler, getAllOrdersHandler)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.uowFactory, c.publisher, c.configs.OutboxRelayBatchSize, c.logger)
}

func (c *CompositionRoot) CreateConsumer() *kafkain.Consumer {
	reader := kafkain.NewReader(
		[]string{c.configs.KafkaHost},
		c.configs.KafkaOrderCreatedTopic,
		c.configs.KafkaConsumerGroup,
	)
	deadLetterWriter := kafkaout.NewWriter([]string{c.configs.KafkaHost}, c.configs.KafkaDeadLetterTopic)
	deadLetter := kafkaout.NewDeadLetterPublisher(deadLetterWriter)

	processHandler := c.CreateProcessOrderCreatedCommandHandler()
	return kafkain.NewConsumer(reader, &processHandler, deadLetter, c.logger, c.configs.ConsumerBatchSize)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
