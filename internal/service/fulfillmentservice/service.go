package fulfillmentservice

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"gofulfil/internal/domain"
	apperror "gofulfil/internal/errors"
	"gofulfil/internal/pkg/logger"
	"gofulfil/internal/pkg/metrics"
)

var tracer = otel.Tracer("gofulfil/fulfillmentservice")

// ProductLookup resolve produtos pelo nome.
type ProductLookup interface {
	FindProductByName(ctx context.Context, name string) (domain.Product, bool, error)
}

// StoreLookup resolve lojas pelo nome.
type StoreLookup interface {
	FindStoreByName(ctx context.Context, name string) (domain.Store, bool, error)
}

// WarehouseFinder é a única leitura de armazéns que o motor de associação precisa.
type WarehouseFinder interface {
	FindByCode(ctx context.Context, code string) (domain.Warehouse, bool, error)
}

// FulfillmentRepository define as consultas de contagem e pertinência usadas
// pelas restrições de cardinalidade. Associações de armazéns arquivados não contam.
type FulfillmentRepository interface {
	Exists(ctx context.Context, product, store, warehouse string) (bool, error)
	CountWarehousesForProductInStore(ctx context.Context, product, store string) (int, error)
	CountDistinctWarehousesForStore(ctx context.Context, store string) (int, error)
	CountDistinctProductsForWarehouse(ctx context.Context, warehouse string) (int, error)
	IsWarehouseAssociatedWithStore(ctx context.Context, warehouse, store string) (bool, error)
	IsProductAssociatedWithWarehouse(ctx context.Context, product, warehouse string) (bool, error)
	Save(ctx context.Context, f domain.Fulfillment) error
	ListByStore(ctx context.Context, store string) ([]domain.Fulfillment, error)
}

// Transactor delimita a unidade atômica validar+persistir.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Deps agrupa os colaboradores do serviço.
type Deps struct {
	Products     ProductLookup
	Stores       StoreLookup
	Warehouses   WarehouseFinder
	Fulfillments FulfillmentRepository
	Tx           Transactor
	Logger       logger.Logger
	Metrics      metrics.Recorder
}

// Service é o motor de associação produto-loja-armazém.
type Service struct {
	products     ProductLookup
	stores       StoreLookup
	warehouses   WarehouseFinder
	fulfillments FulfillmentRepository
	tx           Transactor
	logger       logger.Logger
	metrics      metrics.Recorder
}

// NewService cria e retorna uma nova instância do motor de associação.
func NewService(d Deps) *Service {
	rec := d.Metrics
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &Service{
		products:     d.Products,
		stores:       d.Stores,
		warehouses:   d.Warehouses,
		fulfillments: d.Fulfillments,
		tx:           d.Tx,
		logger:       d.Logger,
		metrics:      rec,
	}
}

// Associate registra que o produto pode ser atendido pela loja via o armazém.
// Repetir um trio já existente é um no-op bem-sucedido.
func (s *Service) Associate(ctx context.Context, productName, storeName, warehouseCode string) error {
	ctx, span := tracer.Start(ctx, "fulfillment.associate")
	defer span.End()
	span.SetAttributes(
		attribute.String("product.name", productName),
		attribute.String("store.name", storeName),
		attribute.String("warehouse.code", warehouseCode),
	)

	result := metrics.ResultCreated
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		result = metrics.ResultCreated
		created, err := s.associate(ctx, productName, storeName, warehouseCode)
		if err == nil && !created {
			result = metrics.ResultNoop
		}
		return err
	})

	fields := map[string]interface{}{
		"product":   productName,
		"store":     storeName,
		"warehouse": warehouseCode,
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if apperror.IsValidation(err) {
			s.metrics.Association(metrics.ResultRejected)
			fields["reason"] = err.Error()
			s.logger.Warn("Associação rejeitada.", fields)
		} else {
			s.metrics.Association(metrics.ResultError)
			s.logger.Error("Falha ao associar produto, loja e armazém.", err)
		}
		return err
	}

	s.metrics.Association(result)
	span.SetAttributes(attribute.String("fulfillment.result", result))
	if result == metrics.ResultNoop {
		s.logger.Debug("Associação já existente, nada a fazer.", fields)
	} else {
		s.logger.Info("Associação criada com sucesso.", fields)
	}
	return nil
}

// associate executa as verificações na ordem fixa e persiste o trio.
// Retorna false quando o trio já existia.
func (s *Service) associate(ctx context.Context, productName, storeName, warehouseCode string) (bool, error) {
	// 1. Existência
	if err := s.checkExistence(ctx, productName, storeName, warehouseCode); err != nil {
		return false, err
	}

	// 2. Idempotência
	exists, err := s.fulfillments.Exists(ctx, productName, storeName, warehouseCode)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	// 3. Restrição A: armazéns por produto em uma loja.
	perProduct, err := s.fulfillments.CountWarehousesForProductInStore(ctx, productName, storeName)
	if err != nil {
		return false, err
	}
	if perProduct >= domain.MaxWarehousesPerProductPerStore {
		return false, apperror.NewValidationErrorf(
			"o produto %s já é atendido por %d armazéns na loja %s (máximo %d)",
			productName, perProduct, storeName, domain.MaxWarehousesPerProductPerStore)
	}

	// 4. Restrição B: armazéns distintos por loja, salvo se o armazém já atende a loja.
	perStore, err := s.fulfillments.CountDistinctWarehousesForStore(ctx, storeName)
	if err != nil {
		return false, err
	}
	if perStore >= domain.MaxWarehousesPerStore {
		member, err := s.fulfillments.IsWarehouseAssociatedWithStore(ctx, warehouseCode, storeName)
		if err != nil {
			return false, err
		}
		if !member {
			return false, apperror.NewValidationErrorf(
				"a loja %s já é atendida por %d armazéns distintos (máximo %d)",
				storeName, perStore, domain.MaxWarehousesPerStore)
		}
	}

	// 5. Restrição C: produtos distintos por armazém, salvo se o produto já está no armazém.
	perWarehouse, err := s.fulfillments.CountDistinctProductsForWarehouse(ctx, warehouseCode)
	if err != nil {
		return false, err
	}
	if perWarehouse >= domain.MaxProductsPerWarehouse {
		stocked, err := s.fulfillments.IsProductAssociatedWithWarehouse(ctx, productName, warehouseCode)
		if err != nil {
			return false, err
		}
		if !stocked {
			return false, apperror.NewValidationErrorf(
				"o armazém %s já armazena %d tipos de produto (máximo %d)",
				warehouseCode, perWarehouse, domain.MaxProductsPerWarehouse)
		}
	}

	// 6. Persistência
	if err := s.fulfillments.Save(ctx, domain.Fulfillment{
		ProductName:   productName,
		StoreName:     storeName,
		WarehouseCode: warehouseCode,
	}); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) checkExistence(ctx context.Context, productName, storeName, warehouseCode string) error {
	if strings.TrimSpace(productName) == "" || strings.TrimSpace(storeName) == "" || strings.TrimSpace(warehouseCode) == "" {
		return apperror.NewValidationError("produto, loja e armazém são obrigatórios")
	}

	if _, found, err := s.products.FindProductByName(ctx, productName); err != nil {
		return err
	} else if !found {
		return apperror.NewValidationErrorf("produto não encontrado: %s", productName)
	}

	if _, found, err := s.stores.FindStoreByName(ctx, storeName); err != nil {
		return err
	} else if !found {
		return apperror.NewValidationErrorf("loja não encontrada: %s", storeName)
	}

	warehouse, found, err := s.warehouses.FindByCode(ctx, warehouseCode)
	if err != nil {
		return err
	}
	if !found {
		return apperror.NewValidationErrorf("armazém não encontrado: %s", warehouseCode)
	}
	if !warehouse.Active() {
		return apperror.NewValidationErrorf("armazém arquivado: %s", warehouseCode)
	}
	return nil
}

// ListByStore lista as associações ativas da loja.
func (s *Service) ListByStore(ctx context.Context, storeName string) ([]domain.Fulfillment, error) {
	if _, found, err := s.stores.FindStoreByName(ctx, storeName); err != nil {
		s.logger.Error("Falha ao buscar loja.", err)
		return nil, err
	} else if !found {
		return nil, apperror.NewNotFoundError("Loja " + storeName + " não encontrada.")
	}

	list, err := s.fulfillments.ListByStore(ctx, storeName)
	if err != nil {
		s.logger.Error("Falha ao listar associações da loja.", err)
		return nil, err
	}
	return list, nil
}
