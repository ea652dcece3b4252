package catalogrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"gofulfil/internal/domain"
	"gofulfil/internal/errors"
	"gofulfil/internal/pkg/cache"
	"gofulfil/internal/pkg/database"
	"gofulfil/internal/pkg/logger"
)

// Chaves de cache por nome.
const (
	productCacheKey = "product:name:%s"
	storeCacheKey   = "store:name:%s"
)

// CatalogRepository resolve produtos e lojas pelo nome (somente leitura),
// usando a estratégia Cache-Aside sobre o Redis.
type CatalogRepository struct {
	DB        *sql.DB
	Cache     cache.Client
	DBTimeout time.Duration
	CacheTTL  time.Duration
	logger    logger.Logger
}

// NewCatalogRepository cria e retorna uma nova instância do Repositório de Catálogo.
// cacheClient pode ser nil: nesse caso toda leitura vai direto ao DB.
func NewCatalogRepository(db *sql.DB, cacheClient cache.Client, dbTimeout, cacheTTL time.Duration, logger logger.Logger) *CatalogRepository {
	return &CatalogRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		CacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// FindProductByName busca um produto pelo nome.
func (r *CatalogRepository) FindProductByName(ctx context.Context, name string) (domain.Product, bool, error) {
	key := fmt.Sprintf(productCacheKey, name)

	var product domain.Product
	if r.fromCache(ctx, key, &product) {
		return product, true, nil
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	err := database.ExecutorFrom(ctx, r.DB).QueryRowContext(ctxTimeout,
		`SELECT id, name, stock FROM products WHERE name = $1`, name,
	).Scan(&product.ID, &product.Name, &product.Stock)
	if err == sql.ErrNoRows {
		r.logger.Debug("Produto não encontrado.", map[string]interface{}{"name": name})
		return domain.Product{}, false, nil
	}
	if err != nil {
		r.logger.Error("Falha ao buscar produto no DB.", err)
		return domain.Product{}, false, errors.NewDBError("Falha ao buscar produto", err)
	}

	r.toCache(ctx, key, product)
	return product, true, nil
}

// FindStoreByName busca uma loja pelo nome.
func (r *CatalogRepository) FindStoreByName(ctx context.Context, name string) (domain.Store, bool, error) {
	key := fmt.Sprintf(storeCacheKey, name)

	var store domain.Store
	if r.fromCache(ctx, key, &store) {
		return store, true, nil
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	err := database.ExecutorFrom(ctx, r.DB).QueryRowContext(ctxTimeout,
		`SELECT id, name, quantity_products_in_stock FROM stores WHERE name = $1`, name,
	).Scan(&store.ID, &store.Name, &store.QuantityProductsInStock)
	if err == sql.ErrNoRows {
		r.logger.Debug("Loja não encontrada.", map[string]interface{}{"name": name})
		return domain.Store{}, false, nil
	}
	if err != nil {
		r.logger.Error("Falha ao buscar loja no DB.", err)
		return domain.Store{}, false, errors.NewDBError("Falha ao buscar loja", err)
	}

	r.toCache(ctx, key, store)
	return store, true, nil
}

// fromCache tenta ler a chave. Falhas de cache nunca falham a requisição.
func (r *CatalogRepository) fromCache(ctx context.Context, key string, dest interface{}) bool {
	if r.Cache == nil {
		return false
	}
	cached, err := r.Cache.Get(ctx, key)
	if err == cache.ErrCacheMiss {
		return false
	}
	if err != nil {
		r.logger.Warn("Falha ao ler do cache Redis.", map[string]interface{}{"key": key, "error": err.Error()})
		return false
	}
	if err := json.Unmarshal([]byte(cached), dest); err != nil {
		r.logger.Warn("Entrada de cache inválida, consultando o DB.", map[string]interface{}{"key": key})
		return false
	}
	return true
}

// toCache grava apenas acertos; ausências não são cacheadas.
func (r *CatalogRepository) toCache(ctx context.Context, key string, value interface{}) {
	if r.Cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, r.CacheTTL); err != nil {
		r.logger.Warn("Falha ao gravar no cache Redis.", map[string]interface{}{"key": key, "error": err.Error()})
	}
}
