package fulfillmentrepo

import (
	"context"
	"database/sql"
	"time"

	"gofulfil/internal/domain"
	"gofulfil/internal/errors"
	"gofulfil/internal/pkg/database"
	"gofulfil/internal/pkg/logger"
)

// FulfillmentRepository implementa fulfillmentservice.FulfillmentRepository sobre PostgreSQL.
// Todas as contagens fazem JOIN com warehouses e ignoram armazéns arquivados.
type FulfillmentRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewFulfillmentRepository cria e retorna uma nova instância do Repositório de Associações.
func NewFulfillmentRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *FulfillmentRepository {
	return &FulfillmentRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

const activeJoin = `
        FROM fulfillments f
        JOIN warehouses w ON w.business_unit_code = f.warehouse_code AND w.archived_at IS NULL`

func (r *FulfillmentRepository) queryInt(ctx context.Context, op, query string, args ...interface{}) (int, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var n int
	if err := database.ExecutorFrom(ctx, r.DB).QueryRowContext(ctxTimeout, query, args...).Scan(&n); err != nil {
		r.logger.Error("Falha na consulta de associações ("+op+").", err)
		return 0, errors.NewDBError("Falha ao consultar associações", err)
	}
	return n, nil
}

func (r *FulfillmentRepository) queryBool(ctx context.Context, op, query string, args ...interface{}) (bool, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var ok bool
	if err := database.ExecutorFrom(ctx, r.DB).QueryRowContext(ctxTimeout, query, args...).Scan(&ok); err != nil {
		r.logger.Error("Falha na consulta de associações ("+op+").", err)
		return false, errors.NewDBError("Falha ao consultar associações", err)
	}
	return ok, nil
}

// Exists verifica se o trio exato já foi registrado.
func (r *FulfillmentRepository) Exists(ctx context.Context, product, store, warehouse string) (bool, error) {
	return r.queryBool(ctx, "exists", `
        SELECT EXISTS (
            SELECT 1 FROM fulfillments
            WHERE product_name = $1 AND store_name = $2 AND warehouse_code = $3)`,
		product, store, warehouse)
}

// CountWarehousesForProductInStore conta os armazéns distintos que atendem o produto na loja.
func (r *FulfillmentRepository) CountWarehousesForProductInStore(ctx context.Context, product, store string) (int, error) {
	return r.queryInt(ctx, "warehouses_per_product_store",
		`SELECT COUNT(DISTINCT f.warehouse_code)`+activeJoin+`
        WHERE f.product_name = $1 AND f.store_name = $2`,
		product, store)
}

// CountDistinctWarehousesForStore conta os armazéns distintos que atendem a loja, em todos os produtos.
func (r *FulfillmentRepository) CountDistinctWarehousesForStore(ctx context.Context, store string) (int, error) {
	return r.queryInt(ctx, "warehouses_per_store",
		`SELECT COUNT(DISTINCT f.warehouse_code)`+activeJoin+`
        WHERE f.store_name = $1`,
		store)
}

// CountDistinctProductsForWarehouse conta os tipos de produto distintos no armazém.
func (r *FulfillmentRepository) CountDistinctProductsForWarehouse(ctx context.Context, warehouse string) (int, error) {
	return r.queryInt(ctx, "products_per_warehouse",
		`SELECT COUNT(DISTINCT f.product_name)`+activeJoin+`
        WHERE f.warehouse_code = $1`,
		warehouse)
}

// IsWarehouseAssociatedWithStore informa se o armazém já atende a loja (qualquer produto).
func (r *FulfillmentRepository) IsWarehouseAssociatedWithStore(ctx context.Context, warehouse, store string) (bool, error) {
	return r.queryBool(ctx, "warehouse_in_store",
		`SELECT EXISTS (SELECT 1`+activeJoin+`
        WHERE f.warehouse_code = $1 AND f.store_name = $2)`,
		warehouse, store)
}

// IsProductAssociatedWithWarehouse informa se o produto já está no armazém (qualquer loja).
func (r *FulfillmentRepository) IsProductAssociatedWithWarehouse(ctx context.Context, product, warehouse string) (bool, error) {
	return r.queryBool(ctx, "product_in_warehouse",
		`SELECT EXISTS (SELECT 1`+activeJoin+`
        WHERE f.product_name = $1 AND f.warehouse_code = $2)`,
		product, warehouse)
}

// Save insere o trio. A restrição UNIQUE da tabela faz um insert concorrente
// do mesmo trio falhar com 23505, que o TxManager reexecuta.
func (r *FulfillmentRepository) Save(ctx context.Context, f domain.Fulfillment) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        INSERT INTO fulfillments (product_name, store_name, warehouse_code, created_at)
        VALUES ($1, $2, $3, $4)`

	_, err := database.ExecutorFrom(ctx, r.DB).ExecContext(ctxTimeout, query,
		f.ProductName, f.StoreName, f.WarehouseCode, time.Now().UTC())
	if err != nil {
		r.logger.Error("Falha ao inserir associação no DB.", err)
		return errors.NewDBError("Falha ao registrar associação", err)
	}
	return nil
}

// ListByStore lista as associações ativas da loja.
func (r *FulfillmentRepository) ListByStore(ctx context.Context, store string) ([]domain.Fulfillment, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := database.ExecutorFrom(ctx, r.DB).QueryContext(ctxTimeout,
		`SELECT f.product_name, f.store_name, f.warehouse_code`+activeJoin+`
        WHERE f.store_name = $1
        ORDER BY f.product_name, f.warehouse_code`,
		store)
	if err != nil {
		r.logger.Error("Falha ao executar ListByStore query.", err)
		return nil, errors.NewDBError("Falha ao listar associações", err)
	}
	defer rows.Close()

	list := []domain.Fulfillment{}
	for rows.Next() {
		var f domain.Fulfillment
		if err := rows.Scan(&f.ProductName, &f.StoreName, &f.WarehouseCode); err != nil {
			return nil, errors.NewDBError("Falha ao mapear associações do DB", err)
		}
		list = append(list, f)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("Erro após iteração de associações", err)
	}
	return list, nil
}
