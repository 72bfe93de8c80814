package app

import (
	"fmt"

	httpapi "reuse-loop-backend/internal/api/http"
	"reuse-loop-backend/internal/config"
	"reuse-loop-backend/internal/logger"
	"reuse-loop-backend/internal/repository"
	"reuse-loop-backend/internal/repository/memory"
	"reuse-loop-backend/internal/repository/postgres"
	"reuse-loop-backend/internal/service"
)

// OpenStore connects to the configured backend. For PostgreSQL it also
// applies pending migrations.
func OpenStore(cfg *config.Config) (repository.Store, error) {
	if cfg.Database.Driver == "memory" {
		logger.Warn("Using in-memory store; state is lost on exit")
		return memory.NewStore(), nil
	}

	logger.Debug("Connecting to database...", "driver", cfg.Database.Driver,
		"connection_string", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database))
	db, err := postgres.Open(cfg.Database.Driver, cfg.GetDatabaseConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	logger.Info("Database connection established")

	if err := postgres.Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return postgres.NewStore(db), nil
}

// NewServices wires every service over store.
func NewServices(cfg *config.Config, store repository.Store) httpapi.Services {
	deposit := cfg.Circulation.DepositCents
	return httpapi.Services{
		Containers:  service.NewContainerService(store, service.NewUUIDGenerator(cfg.Circulation.ContainerIDPrefix), deposit),
		Ledger:      service.NewLedgerService(store, cfg.Circulation.SpinCostPoints, nil),
		Restaurants: service.NewRestaurantService(store),
		Orders:      service.NewOrderService(store),
		Requests:    service.NewRequestService(store),
		Fulfillment: service.NewFulfillmentService(store, deposit),
	}
}
