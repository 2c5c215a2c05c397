package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"teslo/internal/config"
	"teslo/internal/database"
	"teslo/internal/handlers"
	"teslo/internal/logger"
	"teslo/internal/middleware"
	"teslo/internal/models"
	"teslo/internal/repositories"
	"teslo/internal/services"
	"teslo/pkg/rabbitmq"
	"teslo/pkg/storage"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	gormLogger "gorm.io/gorm/logger"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	app, cleanup, err := newApp(context.Background(), cfg, log)
	if err != nil {
		log.Fatal("failed to initialize application", "error", err)
	}
	defer cleanup()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("starting server", "port", cfg.AppPort)
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatal("server failed to start", "error", err)
		}
	}()

	<-quit
	log.Info("shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error("error during shutdown", "error", err)
	}
	log.Info("server gracefully stopped")
}

// newApp wires storage, messaging, services and routes. The returned
// cleanup closes everything newApp opened.
func newApp(ctx context.Context, cfg config.Config, log *logger.Logger) (*fiber.App, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	db, err := database.Open(cfg.DBDriver, cfg.DatabaseDSN, gormLogger.Warn)
	if err != nil {
		return nil, cleanup, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, cleanup, fmt.Errorf("failed to access connection pool: %w", err)
	}
	closers = append(closers, func() { _ = sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		cleanup()
		return nil, func() {}, err
	}

	var publisher services.EventPublisher
	brokerStatus := "disabled"
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.RabbitMQQueue}, log)
		if err != nil {
			cleanup()
			return nil, func() {}, err
		}
		closers = append(closers, func() {
			if err := mqClient.Close(); err != nil {
				log.Warn("failed to close RabbitMQ client", "error", err)
			}
		})
		if err := mqClient.ConsumeProductEvents(logCatalogEvent(log)); err != nil {
			log.Warn("catalog event consumer not started", "error", err)
		}
		publisher = mqClient
		brokerStatus = "connected"
	}

	store, err := newStore(ctx, cfg)
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}

	productService := services.NewProductService(repositories.NewGORMProductRepository(db), publisher, log.With("component", "products"))
	authService := services.NewAuthService(repositories.NewGORMUserRepository(db), cfg.JWTSecret, cfg.JWTTTL, log.With("component", "auth"))
	fileService := services.NewFileService(store, cfg.HostAPI, cfg.MaxUploadBytes, log.With("component", "files"))
	seedService := services.NewSeedService(productService, log.With("component", "seed"))

	app := fiber.New(fiber.Config{
		BodyLimit: int(cfg.MaxUploadBytes) + 1<<20,
	})
	app.Use(recover.New())
	app.Use(fiberlogger.New())

	apiV1 := app.Group("/api/v1")
	authRequired := middleware.AuthRequired(authService)

	handlers.NewAuthHandler(authService, log).RegisterRoutes(apiV1, authRequired)
	handlers.NewProductHandler(productService, log).RegisterRoutes(apiV1, authRequired)
	handlers.NewFileHandler(fileService, log).RegisterRoutes(apiV1)
	handlers.NewSeedHandler(seedService, log).RegisterRoutes(apiV1, authRequired)

	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "connected"
		if err := sqlDB.PingContext(c.UserContext()); err != nil {
			dbStatus = "unreachable"
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": dbStatus,
			"rabbitmq": brokerStatus,
		})
	})

	return app, cleanup, nil
}

// newStore selects the product image backend.
func newStore(ctx context.Context, cfg config.Config) (storage.Store, error) {
	switch cfg.StorageDriver {
	case "disk", "":
		if err := os.MkdirAll(cfg.StaticDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create static dir: %w", err)
		}
		return storage.NewDiskStore(cfg.StaticDir), nil
	case "s3":
		if cfg.S3.Bucket == "" {
			return nil, fmt.Errorf("S3_BUCKET is required for the s3 storage driver")
		}
		client, err := storage.NewS3Client(ctx, storage.S3Config{
			Bucket:          cfg.S3.Bucket,
			Region:          cfg.S3.Region,
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
		})
		if err != nil {
			return nil, err
		}
		return storage.NewS3Store(client, cfg.S3.Bucket), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

func logCatalogEvent(log *logger.Logger) func(models.ProductEvent) error {
	return func(event models.ProductEvent) error {
		log.Info("received catalog event", "type", event.Type, "product_id", event.ProductID, "occurred_at", event.OccurredAt)
		return nil
	}
}
