// Package app wires configuration, storage, event brokers, services and the
// HTTP routes into a runnable server.
package app

import (
	"fmt"
	"log"
	"time"

	"reseller/internal/config"
	"reseller/internal/events"
	"reseller/internal/handlers"
	"reseller/internal/middleware"
	"reseller/internal/models"
	"reseller/internal/referral"
	"reseller/internal/repositories"
	"reseller/internal/services"
	"reseller/pkg/kafka"
	"reseller/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// App is a fully wired server.
type App struct {
	Config *config.Config
	Fiber  *fiber.App
	Auth   *services.AuthService
	Orders *services.OrderService

	db        *gorm.DB
	rabbit    *rabbitmq.Client
	publisher events.Publisher
	closers   []func() error
}

// OpenDB opens the configured SQL database. It returns nil for the memory
// driver.
func OpenDB(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)}

	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case config.DriverMemory:
		return nil, nil
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.DatabaseDSN)
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DatabaseDSN)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", cfg.DBDriver, err)
	}
	return db, nil
}

// Migrate creates or updates the tables of every stored model.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Product{}, &models.Order{}, &models.Seller{}); err != nil {
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}
	return nil
}

// NewStores builds the repositories over db, or in memory when db is nil.
func NewStores(db *gorm.DB) Stores {
	if db == nil {
		return Stores{
			Products: repositories.NewMockProductRepository(),
			Orders:   repositories.NewMockOrderRepository(),
			Sellers:  repositories.NewMockSellerRepository(),
		}
	}
	return Stores{
		Products: repositories.NewGORMProductRepository(db),
		Orders:   repositories.NewGORMOrderRepository(db),
		Sellers:  repositories.NewGORMSellerRepository(db),
	}
}

// New connects every dependency named in cfg and registers the routes.
// Close releases them.
func New(cfg *config.Config) (*App, error) {
	a := &App{Config: cfg}

	db, err := OpenDB(cfg)
	if err != nil {
		return nil, err
	}
	if db != nil {
		a.db = db
		if err := Migrate(db); err != nil {
			a.Close()
			return nil, err
		}
	}
	stores := NewStores(db)

	if cfg.SeedData {
		if err := Seed(stores, cfg.SellerPassword); err != nil {
			a.Close()
			return nil, err
		}
	}

	if err := a.connectBroker(); err != nil {
		a.Close()
		return nil, err
	}

	links, err := referral.NewURLGenerator(cfg.LinkBaseURL)
	if err != nil {
		a.Close()
		return nil, err
	}

	authService := services.NewAuthService(stores.Sellers, cfg.JWTSecret)
	productService := services.NewProductService(stores.Products, links, a.publisher)
	orderService := services.NewOrderService(stores.Orders, a.publisher)
	checkoutService := services.NewCheckoutService(stores.Products)
	analyticsService := services.NewAnalyticsService(AnalyticsSnapshot(), orderService)
	profileService := services.NewProfileService(stores.Sellers, AnalyticsSnapshot(), AppVersion)

	a.Auth = authService
	a.Orders = orderService
	a.Fiber = fiber.New(fiber.Config{
		AppName:      "reseller",
		ErrorHandler: handlers.ErrorHandler,
	})

	// --- Middleware ---
	a.Fiber.Use(recover.New())
	a.Fiber.Use(requestid.New())
	a.Fiber.Use(cors.New())
	a.Fiber.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path} ${locals:requestid}\n",
	}))

	// --- API Routes ---
	apiV1 := a.Fiber.Group("/api/v1")

	// Public routes
	handlers.NewAuthHandler(authService).RegisterRoutes(apiV1)
	handlers.NewCheckoutHandler(checkoutService, orderService).RegisterRoutes(apiV1)

	// Seller routes (require JWT authentication)
	protected := apiV1.Group("", middleware.AuthRequired(authService))
	handlers.NewProductHandler(productService).RegisterRoutes(protected)
	handlers.NewOrderHandler(orderService).RegisterRoutes(protected)
	handlers.NewAnalyticsHandler(analyticsService).RegisterRoutes(protected)
	handlers.NewProfileHandler(profileService).RegisterRoutes(protected)

	// --- Health Check Endpoint ---
	a.Fiber.Get("/health", a.handleHealth)

	return a, nil
}

func (a *App) connectBroker() error {
	switch a.Config.EventsBroker {
	case config.BrokerRabbitMQ:
		mqConfig := rabbitmq.DefaultConfig(a.Config.RabbitMQURL)
		if a.Config.RabbitExchange != "" {
			mqConfig.Exchange = a.Config.RabbitExchange
		}
		client, err := rabbitmq.NewClient(mqConfig)
		if err != nil {
			return fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
		}
		a.rabbit = client
		a.publisher = client
		a.closers = append(a.closers, client.Close)
	case config.BrokerKafka:
		producer, err := kafka.NewProducer(kafka.Config{
			Brokers:  a.Config.KafkaBrokers,
			Topic:    a.Config.KafkaTopic,
			Username: a.Config.KafkaUsername,
			Password: a.Config.KafkaPassword,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize Kafka producer: %w", err)
		}
		a.publisher = producer
		a.closers = append(a.closers, producer.Close)
	}
	return nil
}

func (a *App) handleHealth(c *fiber.Ctx) error {
	status := fiber.Map{
		"status":   "healthy",
		"time":     time.Now().Format(time.RFC3339),
		"database": a.Config.DBDriver,
		"events":   a.Config.EventsBroker,
	}
	if a.db != nil {
		sqlDB, err := a.db.DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		if err != nil {
			status["status"] = "degraded"
			status["database_error"] = err.Error()
			return c.Status(fiber.StatusServiceUnavailable).JSON(status)
		}
	}
	return c.Status(fiber.StatusOK).JSON(status)
}

// StartEventConsumer logs every event that comes back from the RabbitMQ
// queue. It is a no-op for other brokers.
func (a *App) StartEventConsumer() error {
	if a.rabbit == nil {
		return nil
	}
	log.Println("Starting RabbitMQ consumer for reseller events...")
	return a.rabbit.Consume(LogEvent)
}

// LogEvent decodes one delivery and logs it. Undecodable bodies are
// rejected.
func LogEvent(msg amqp.Delivery) error {
	env, err := events.Decode(msg.Body)
	if err != nil {
		return err
	}
	log.Printf("Received %s event %s (routing key %s): %s", env.Type, env.ID, msg.RoutingKey, string(env.Data))
	return nil
}

// Listen serves HTTP on the configured port until Shutdown.
func (a *App) Listen() error {
	log.Printf("Starting server on port %s", a.Config.AppPort)
	return a.Fiber.Listen(a.Config.AppPort)
}

// Shutdown stops the HTTP server and releases every connection.
func (a *App) Shutdown() error {
	if a.Fiber != nil {
		if err := a.Fiber.Shutdown(); err != nil {
			log.Printf("Error during Fiber shutdown: %v", err)
		}
	}
	return a.Close()
}

// Close releases brokers and the database.
func (a *App) Close() error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Printf("Error closing resource: %v", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	a.closers = nil
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		a.db = nil
	}
	return firstErr
}
