package warehouseservice

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"gofulfil/internal/domain"
	apperror "gofulfil/internal/errors"
	"gofulfil/internal/pkg/logger"
	"gofulfil/internal/pkg/metrics"
)

var tracer = otel.Tracer("gofulfil/warehouseservice")

// WarehouseRepository define o contrato que o Serviço de Armazéns espera da camada de Persistência.
type WarehouseRepository interface {
	FindByCode(ctx context.Context, code string) (domain.Warehouse, bool, error)
	Create(ctx context.Context, warehouse domain.Warehouse) error
	// Update sobrescreve local, capacidade, estoque e estado de arquivamento;
	// código e data de criação nunca mudam.
	Update(ctx context.Context, warehouse domain.Warehouse) error
	// CountActiveByLocation conta apenas armazéns não arquivados.
	CountActiveByLocation(ctx context.Context, location string) (int, error)
	List(ctx context.Context) ([]domain.Warehouse, error)
}

// Transactor delimita a unidade atômica validar+persistir.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implementa as operações de ciclo de vida: Create, Replace e Archive.
type Service struct {
	repo      WarehouseRepository
	validator *Validator
	tx        Transactor
	logger    logger.Logger
	metrics   metrics.Recorder
	now       func() time.Time
}

// NewService cria e retorna uma nova instância do Serviço de Armazéns.
func NewService(repo WarehouseRepository, locations LocationResolver, tx Transactor, logger logger.Logger, rec metrics.Recorder) *Service {
	return &Service{
		repo:      repo,
		validator: NewValidator(repo, locations),
		tx:        tx,
		logger:    logger,
		metrics:   rec,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// WithClock substitui o relógio (usado nos testes).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Create valida e persiste um novo armazém ativo.
func (s *Service) Create(ctx context.Context, warehouse domain.Warehouse) (domain.Warehouse, error) {
	ctx, span := tracer.Start(ctx, "warehouse.create")
	defer span.End()
	span.SetAttributes(attribute.String("warehouse.code", warehouse.BusinessUnitCode), attribute.String("warehouse.location", warehouse.Location))

	s.logger.Debug("Iniciando criação de armazém no serviço.", map[string]interface{}{
		"business_unit_code": warehouse.BusinessUnitCode,
		"location":           warehouse.Location,
	})

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.validator.validate(ctx, &warehouse, false); err != nil {
			return err
		}
		warehouse.Status = domain.WarehouseActive
		warehouse.CreatedAt = s.now()
		warehouse.ArchivedAt = time.Time{}
		return s.repo.Create(ctx, warehouse)
	})
	if err != nil {
		s.fail(span, "create", warehouse.BusinessUnitCode, err)
		return domain.Warehouse{}, err
	}

	s.metrics.WarehouseOperation("create", metrics.ResultOK)
	s.logger.Info("Armazém criado com sucesso.", map[string]interface{}{
		"business_unit_code": warehouse.BusinessUnitCode,
		"location":           warehouse.Location,
		"capacity":           warehouse.Capacity,
		"stock":              warehouse.Stock,
	})
	return warehouse, nil
}

// Replace substitui no lugar o armazém identificado por code. Local, capacidade e
// estoque vêm do candidato; código, data de criação e estado são preservados.
func (s *Service) Replace(ctx context.Context, code string, candidate domain.Warehouse) (domain.Warehouse, error) {
	ctx, span := tracer.Start(ctx, "warehouse.replace")
	defer span.End()
	span.SetAttributes(attribute.String("warehouse.code", code), attribute.String("warehouse.location", candidate.Location))

	candidate.BusinessUnitCode = code
	s.logger.Debug("Iniciando substituição de armazém no serviço.", map[string]interface{}{
		"business_unit_code": code,
		"location":           candidate.Location,
	})

	var replaced domain.Warehouse
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.validator.validate(ctx, &candidate, true)
		if err != nil {
			return err
		}
		replaced = existing
		replaced.Location = candidate.Location
		replaced.Capacity = candidate.Capacity
		replaced.Stock = candidate.Stock
		return s.repo.Update(ctx, replaced)
	})
	if err != nil {
		s.fail(span, "replace", code, err)
		return domain.Warehouse{}, err
	}

	s.metrics.WarehouseOperation("replace", metrics.ResultOK)
	s.logger.Info("Armazém substituído com sucesso.", map[string]interface{}{
		"business_unit_code": code,
		"location":           replaced.Location,
		"capacity":           replaced.Capacity,
	})
	return replaced, nil
}

// Archive arquiva o armazém (soft delete). Código inexistente ou armazém já
// arquivado não é erro: a operação vira um no-op registrado em log.
func (s *Service) Archive(ctx context.Context, code string) error {
	ctx, span := tracer.Start(ctx, "warehouse.archive")
	defer span.End()
	span.SetAttributes(attribute.String("warehouse.code", code))

	result := metrics.ResultOK
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, found, err := s.repo.FindByCode(ctx, code)
		if err != nil {
			return err
		}
		if !found {
			result = metrics.ResultNoop
			s.logger.Warn("Armazém não encontrado para arquivamento.", map[string]interface{}{"business_unit_code": code})
			return nil
		}
		if !existing.Archive(s.now()) {
			result = metrics.ResultNoop
			s.logger.Info("Armazém já estava arquivado.", map[string]interface{}{
				"business_unit_code": code,
				"archived_at":        existing.ArchivedAt,
			})
			return nil
		}
		return s.repo.Update(ctx, existing)
	})
	if err != nil {
		s.fail(span, "archive", code, err)
		return err
	}

	s.metrics.WarehouseOperation("archive", result)
	if result == metrics.ResultOK {
		s.logger.Info("Armazém arquivado com sucesso.", map[string]interface{}{"business_unit_code": code})
	}
	return nil
}

// Get busca um armazém (ativo ou arquivado) pelo código.
func (s *Service) Get(ctx context.Context, code string) (domain.Warehouse, error) {
	warehouse, found, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		s.logger.Error("Falha ao buscar armazém no repositório.", err)
		return domain.Warehouse{}, err
	}
	if !found {
		return domain.Warehouse{}, apperror.NewNotFoundError(fmt.Sprintf("Armazém %s não encontrado.", code))
	}
	return warehouse, nil
}

// List retorna todos os armazéns, ativos e arquivados.
func (s *Service) List(ctx context.Context) ([]domain.Warehouse, error) {
	warehouses, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("Falha ao listar armazéns no repositório.", err)
		return nil, err
	}
	s.logger.Debug("Armazéns listados.", map[string]interface{}{"count": len(warehouses)})
	return warehouses, nil
}

// fail registra a falha no span, no log e nas métricas.
func (s *Service) fail(span trace.Span, operation, code string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	if apperror.IsValidation(err) {
		s.metrics.WarehouseOperation(operation, metrics.ResultRejected)
		s.logger.Warn("Operação de armazém rejeitada.", map[string]interface{}{
			"operation":          operation,
			"business_unit_code": code,
			"reason":             err.Error(),
		})
		return
	}
	s.metrics.WarehouseOperation(operation, metrics.ResultError)
	s.logger.Error(fmt.Sprintf("Falha na operação de armazém (%s).", operation), err)
}
