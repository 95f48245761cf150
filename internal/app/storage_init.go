package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/odyostore/backoffice/internal/domain"
	"github.com/odyostore/backoffice/internal/storage/memory"
	"github.com/odyostore/backoffice/internal/storage/postgres"
)

// repositories объединяет все хранилища приложения.
type repositories struct {
	orders    domain.OrderRepository
	users     domain.UserRepository
	products  domain.ProductRepository
	franchise domain.FranchiseRepository
}

// initStorage выбирает бэкенд хранения. Непустой DSN означает PostgreSQL
// с автоматическим прогоном миграций; иначе данные живут в памяти процесса.
// Возвращаемый *postgres.Store равен nil для in-memory режима.
func initStorage(ctx context.Context, cfg Config, logger *log.Entry) (repositories, *postgres.Store, error) {
	if cfg.PostgresDSN == "" {
		logger.Info("postgres dsn is empty, using in-memory storage")
		return repositories{
			orders:    memory.NewOrderRepository(),
			users:     memory.NewUserRepository(),
			products:  memory.NewProductRepository(),
			franchise: memory.NewFranchiseRepository(),
		}, nil, nil
	}

	store, err := postgres.Open(ctx, cfg.PostgresDSN)
	if err != nil {
		return repositories{}, nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := store.EnsureSchema(ctx); err != nil {
		_ = store.Close()
		return repositories{}, nil, fmt.Errorf("apply migrations: %w", err)
	}

	logger.Info("postgres storage initialized")
	return repositories{
		orders:    postgres.NewOrderRepository(store),
		users:     postgres.NewUserRepository(store),
		products:  postgres.NewProductRepository(store),
		franchise: postgres.NewFranchiseRepository(store),
	}, store, nil
}
