package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"katalog/internal/app"
	"katalog/internal/config"
	"katalog/internal/repositories"
	"katalog/internal/services"
	"katalog/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Initialize Repository ---
	productRepo, err := newProductRepository(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize product repository: %v", err)
	}
	if cfg.SeedProducts {
		if err := app.SeedProducts(productRepo); err != nil {
			log.Fatalf("Failed to seed products: %v", err)
		}
	}

	// --- Initialize RabbitMQ Client (optional) ---
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close() // Ensure the connection is closed on exit
		publisher = mqClient
	} else {
		log.Println("RABBITMQ_URL is not set. Product events will not be published.")
	}

	// --- Initialize Service and App ---
	productService := services.NewProductService(productRepo, publisher)
	fiberApp := app.NewApp(cfg, productService)

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := fiberApp.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Println("Shutting down server...")

	if err := fiberApp.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// newProductRepository picks the store implementation named by STORE_DRIVER.
func newProductRepository(cfg *config.Config) (repositories.ProductRepository, error) {
	switch cfg.StoreDriver {
	case config.StoreSQLite:
		db, err := repositories.OpenSQLite(cfg.SQLiteDSN)
		if err != nil {
			return nil, err
		}
		log.Printf("Using SQLite product store (%s)", cfg.SQLiteDSN)
		return repositories.NewGORMProductRepository(db), nil
	default:
		log.Println("Using in-memory product store")
		return repositories.NewMemoryProductRepository(), nil
	}
}
