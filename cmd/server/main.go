package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"

	"github.com/harlansk/sleipnir/internal"
	"github.com/harlansk/sleipnir/internal/enrichment"
	"github.com/harlansk/sleipnir/internal/handler/api"
	"github.com/harlansk/sleipnir/internal/middleware"
	"github.com/harlansk/sleipnir/internal/postgres"
	"github.com/harlansk/sleipnir/internal/router"
	"github.com/harlansk/sleipnir/internal/routes"
	"github.com/harlansk/sleipnir/internal/shipping"
	"github.com/harlansk/sleipnir/internal/store"
)

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize database/sql connection for migrations
	logger.Info("Connecting to database...")
	sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	logger.Info("Database connection established")

	// Run migrations
	logger.Info("Running database migrations...")
	if err := internal.RunMigrations(sqlDB); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize pgx connection pool for the application
	pool, err := pgxpool.New(ctx, cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	catalog := postgres.NewCatalogService(pool)

	// Initialize the durable medium backing the cart and reservation stores
	adapter, err := newStoreAdapter(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize store backend: %w", err)
	}
	logger.Info("Store backend initialized", "backend", cfg.Store.Backend)

	cart := store.NewCartStore(adapter, logger)
	cart.Initialize(ctx)

	reservations := store.NewReservationStore(adapter, logger)
	reservations.Initialize(ctx)
	logger.Info("Stores rehydrated",
		"cart_items", cart.TotalItems(),
		"reservations", reservations.Count(),
	)

	// Initialize product enrichment client
	enricher := enrichment.NewClient(enrichment.Config{
		APIKey: cfg.Anthropic.APIKey,
		Model:  cfg.Anthropic.Model,
		Logger: logger,
	})

	// Initialize shipping provider
	shippingProvider := shipping.NewFlatRateProvider()

	// Initialize metrics
	metrics := middleware.NewMetrics("sleipnir")

	// Create router and register routes
	r := router.New(
		router.Recovery(logger),
		metrics.Middleware,
		router.CORS([]string{"*"}),
		router.Logger(logger),
	)

	routes.Register(r, routes.Deps{
		Products:       api.NewProductHandler(catalog, logger),
		Categories:     api.NewCategoryHandler(catalog, logger),
		Cart:           api.NewCartHandler(cart, logger),
		Reservations:   api.NewReservationHandler(reservations, catalog, logger),
		Checkout:       api.NewCheckoutHandler(cart, shippingProvider, logger),
		Vehicles:       api.NewVehicleHandler(enricher, logger),
		MetricsHandler: metrics.Handler(),
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("Starting server", "address", addr)

	if err := http.ListenAndServe(addr, r); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

// newStoreAdapter selects the persistence medium from config.
func newStoreAdapter(cfg *internal.Config) (store.Adapter, error) {
	switch cfg.Store.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.Store.RedisAddr})
		return store.NewRedisAdapter(client, cfg.Store.RedisPrefix), nil
	case "memory":
		return store.NewMemoryAdapter(), nil
	default:
		return store.NewFileAdapter(cfg.Store.FilePath)
	}
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
