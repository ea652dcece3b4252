package warehouserepo

import (
	"context"
	"database/sql"
	"time"

	"gofulfil/internal/domain"
	"gofulfil/internal/errors"
	"gofulfil/internal/pkg/database"
	"gofulfil/internal/pkg/logger"
)

// WarehouseRepository implementa warehouseservice.WarehouseRepository sobre PostgreSQL.
// Dentro de WithinTx as consultas usam a transação carregada no contexto.
type WarehouseRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewWarehouseRepository cria e retorna uma nova instância do Repositório de Armazéns.
func NewWarehouseRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *WarehouseRepository {
	return &WarehouseRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

const selectColumns = `business_unit_code, location, capacity, stock, created_at, archived_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWarehouse(row rowScanner) (domain.Warehouse, error) {
	var (
		w          domain.Warehouse
		archivedAt sql.NullTime
	)
	if err := row.Scan(&w.BusinessUnitCode, &w.Location, &w.Capacity, &w.Stock, &w.CreatedAt, &archivedAt); err != nil {
		return domain.Warehouse{}, err
	}
	w.Status = domain.WarehouseActive
	if archivedAt.Valid {
		w.Status = domain.WarehouseArchived
		w.ArchivedAt = archivedAt.Time.UTC()
	}
	w.CreatedAt = w.CreatedAt.UTC()
	return w, nil
}

func archivedAtValue(w domain.Warehouse) sql.NullTime {
	if w.Active() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: w.ArchivedAt, Valid: true}
}

// FindByCode busca um armazém (ativo ou arquivado) pelo código de unidade de negócio.
func (r *WarehouseRepository) FindByCode(ctx context.Context, code string) (domain.Warehouse, bool, error) {
	r.logger.Debug("Iniciando FindByCode no repositório.", map[string]interface{}{"business_unit_code": code})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + selectColumns + ` FROM warehouses WHERE business_unit_code = $1`

	warehouse, err := scanWarehouse(database.ExecutorFrom(ctx, r.DB).QueryRowContext(ctxTimeout, query, code))
	if err == sql.ErrNoRows {
		return domain.Warehouse{}, false, nil
	}
	if err != nil {
		r.logger.Error("Falha ao buscar armazém no DB.", err)
		return domain.Warehouse{}, false, errors.NewDBError("Falha ao buscar armazém", err)
	}
	return warehouse, true, nil
}

// Create insere um novo armazém.
func (r *WarehouseRepository) Create(ctx context.Context, warehouse domain.Warehouse) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        INSERT INTO warehouses (business_unit_code, location, capacity, stock, created_at, archived_at)
        VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := database.ExecutorFrom(ctx, r.DB).ExecContext(ctxTimeout, query,
		warehouse.BusinessUnitCode, warehouse.Location, warehouse.Capacity, warehouse.Stock,
		warehouse.CreatedAt, archivedAtValue(warehouse),
	)
	if err != nil {
		r.logger.Error("Falha ao inserir armazém no DB.", err)
		return errors.NewDBError("Falha ao criar armazém", err)
	}

	r.logger.Debug("Armazém inserido.", map[string]interface{}{"business_unit_code": warehouse.BusinessUnitCode})
	return nil
}

// Update sobrescreve os campos mutáveis. business_unit_code e created_at nunca são alterados.
func (r *WarehouseRepository) Update(ctx context.Context, warehouse domain.Warehouse) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        UPDATE warehouses
        SET location = $1, capacity = $2, stock = $3, archived_at = $4
        WHERE business_unit_code = $5`

	result, err := database.ExecutorFrom(ctx, r.DB).ExecContext(ctxTimeout, query,
		warehouse.Location, warehouse.Capacity, warehouse.Stock, archivedAtValue(warehouse), warehouse.BusinessUnitCode,
	)
	if err != nil {
		r.logger.Error("Falha ao atualizar armazém no DB.", err)
		return errors.NewDBError("Falha ao atualizar armazém", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.logger.Error("Falha ao verificar linhas afetadas após Update.", err)
		return errors.NewDBError("Falha ao verificar linhas afetadas", err)
	}
	if rowsAffected == 0 {
		// O serviço só chama Update depois de encontrar o registro na mesma transação.
		return errors.NewInternalError("armazém desapareceu durante a atualização: "+warehouse.BusinessUnitCode, nil)
	}
	return nil
}

// CountActiveByLocation conta os armazéns não arquivados no local.
func (r *WarehouseRepository) CountActiveByLocation(ctx context.Context, location string) (int, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT COUNT(*) FROM warehouses WHERE location = $1 AND archived_at IS NULL`

	var count int
	if err := database.ExecutorFrom(ctx, r.DB).QueryRowContext(ctxTimeout, query, location).Scan(&count); err != nil {
		r.logger.Error("Falha ao contar armazéns por local.", err)
		return 0, errors.NewDBError("Falha ao contar armazéns por local", err)
	}
	return count, nil
}

// List busca todos os armazéns.
func (r *WarehouseRepository) List(ctx context.Context) ([]domain.Warehouse, error) {
	r.logger.Debug("Iniciando List no repositório.", nil)

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + selectColumns + ` FROM warehouses ORDER BY business_unit_code`

	rows, err := database.ExecutorFrom(ctx, r.DB).QueryContext(ctxTimeout, query)
	if err != nil {
		r.logger.Error("Falha ao executar List query.", err)
		return nil, errors.NewDBError("Falha ao buscar todos os armazéns", err)
	}
	defer rows.Close()

	warehouses := []domain.Warehouse{}
	for rows.Next() {
		warehouse, err := scanWarehouse(rows)
		if err != nil {
			r.logger.Error("Falha ao mapear armazém na iteração de List.", err)
			return nil, errors.NewDBError("Falha ao mapear armazéns do DB", err)
		}
		warehouses = append(warehouses, warehouse)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Erro após iteração das linhas de armazéns.", err)
		return nil, errors.NewDBError("Erro após iteração de armazéns", err)
	}

	r.logger.Info("List concluído com sucesso.", map[string]interface{}{"total_warehouses": len(warehouses)})
	return warehouses, nil
}
