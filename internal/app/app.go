// Package app monta repositórios e serviços para o driver de armazenamento configurado.
package app

import (
	"context"
	"database/sql"
	"fmt"

	"gofulfil/config"
	"gofulfil/internal/location"
	"gofulfil/internal/pkg/cache"
	"gofulfil/internal/pkg/database"
	"gofulfil/internal/pkg/logger"
	"gofulfil/internal/pkg/metrics"
	"gofulfil/internal/repository/catalogrepo"
	"gofulfil/internal/repository/fulfillmentrepo"
	"gofulfil/internal/repository/memory"
	"gofulfil/internal/repository/operatorrepo"
	"gofulfil/internal/repository/warehouserepo"
	"gofulfil/internal/service/fulfillmentservice"
	"gofulfil/internal/service/operatorservice"
	"gofulfil/internal/service/warehouseservice"
)

// Infra agrupa a infraestrutura já criada pelo chamador.
type Infra struct {
	Logger  logger.Logger
	Metrics metrics.Recorder
	Cache   cache.Client // opcional
	Tokens  operatorservice.TokenService
}

// Services são os serviços prontos para os handlers.
type Services struct {
	Warehouses   *warehouseservice.Service
	Fulfillments *fulfillmentservice.Service
	Operators    *operatorservice.Service
	Locations    *location.Catalog
}

type repositories struct {
	warehouses   warehouseservice.WarehouseRepository
	fulfillments fulfillmentservice.FulfillmentRepository
	products     fulfillmentservice.ProductLookup
	stores       fulfillmentservice.StoreLookup
	operators    operatorservice.OperatorRepository
	tx           warehouseservice.Transactor
}

// Build cria os serviços. A função devolvida libera os recursos de armazenamento.
func Build(ctx context.Context, cfg *config.Config, infra Infra) (*Services, func(), error) {
	if infra.Metrics == nil {
		infra.Metrics = metrics.Nop{}
	}

	var (
		repos   repositories
		closeFn = func() {}
	)
	switch cfg.StorageDriver {
	case config.DriverMemory:
		store := memory.NewStore()
		store.Seed(memory.DefaultProducts, memory.DefaultStores)
		repos = memoryRepositories(store)
		infra.Logger.Info("Armazenamento em memória inicializado.", nil)

	case config.DriverPostgres:
		db, err := database.NewPostgresDB(ctx, cfg.DatabaseURL, database.DefaultPoolConfig)
		if err != nil {
			return nil, nil, err
		}
		closeFn = func() { db.Close() }
		repos = postgresRepositories(db, cfg, infra)
		infra.Logger.Info("Conexão PostgreSQL estabelecida.", nil)

	default:
		return nil, nil, fmt.Errorf("driver de armazenamento desconhecido: %s", cfg.StorageDriver)
	}

	return newServices(repos, infra), closeFn, nil
}

// BuildMemory monta os serviços sobre um Store em memória já existente.
func BuildMemory(store *memory.Store, infra Infra) *Services {
	if infra.Metrics == nil {
		infra.Metrics = metrics.Nop{}
	}
	return newServices(memoryRepositories(store), infra)
}

func memoryRepositories(store *memory.Store) repositories {
	catalog := store.Catalog()
	return repositories{
		warehouses:   store.Warehouses(),
		fulfillments: store.Fulfillments(),
		products:     catalog,
		stores:       catalog,
		operators:    store.Operators(),
		tx:           store,
	}
}

func postgresRepositories(db *sql.DB, cfg *config.Config, infra Infra) repositories {
	catalog := catalogrepo.NewCatalogRepository(db, infra.Cache, cfg.DBTimeout, cfg.CacheTTL, infra.Logger)
	return repositories{
		warehouses:   warehouserepo.NewWarehouseRepository(db, cfg.DBTimeout, infra.Logger),
		fulfillments: fulfillmentrepo.NewFulfillmentRepository(db, cfg.DBTimeout, infra.Logger),
		products:     catalog,
		stores:       catalog,
		operators:    operatorrepo.NewOperatorRepository(db, cfg.DBTimeout, infra.Logger),
		tx:           database.NewTxManager(db, cfg.TxMaxRetries, infra.Logger),
	}
}

// newServices liga os repositórios aos serviços de domínio.
func newServices(repos repositories, infra Infra) *Services {
	locations := location.NewCatalog()
	return &Services{
		Warehouses: warehouseservice.NewService(repos.warehouses, locations, repos.tx, infra.Logger, infra.Metrics),
		Fulfillments: fulfillmentservice.NewService(fulfillmentservice.Deps{
			Products:     repos.products,
			Stores:       repos.stores,
			Warehouses:   repos.warehouses,
			Fulfillments: repos.fulfillments,
			Tx:           repos.tx,
			Logger:       infra.Logger,
			Metrics:      infra.Metrics,
		}),
		Operators: operatorservice.NewService(repos.operators, repos.tx, infra.Tokens, infra.Logger),
		Locations: locations,
	}
}
