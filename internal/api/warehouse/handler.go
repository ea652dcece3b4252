package warehouse

import (
	"context"
	"net/http"

	"gofulfil/internal/api/respond"
	"gofulfil/internal/domain"
	"gofulfil/internal/pkg/logger"
)

// WarehouseService define o contrato que o Handler espera da camada de Serviço.
type WarehouseService interface {
	Create(ctx context.Context, warehouse domain.Warehouse) (domain.Warehouse, error)
	Replace(ctx context.Context, code string, candidate domain.Warehouse) (domain.Warehouse, error)
	Archive(ctx context.Context, code string) error
	Get(ctx context.Context, code string) (domain.Warehouse, error)
	List(ctx context.Context) ([]domain.Warehouse, error)
}

// Handler agrupa todos os métodos de Handler de armazéns.
type Handler struct {
	Service WarehouseService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc WarehouseService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

func (h *Handler) handleServiceResponse(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	respond.ServiceResponse(h.Logger, w, r, data, err, successStatus)
}

// CreateWarehouseHandler lida com a requisição POST /v1/warehouses.
// @Summary Cria um novo armazém
// @Description Valida unicidade do código, vagas e teto de capacidade do local antes de persistir.
// @Tags warehouses
// @Accept json
// @Produce json
// @Param warehouse body domain.WarehouseRequest true "Dados do armazém"
// @Success 201 {object} domain.Warehouse "Armazém criado com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Regra de negócio violada ou payload inválido"
// @Failure 409 {object} domain.ErrorResponse "Conflito de escrita concorrente"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Security ApiKeyAuth
// @Router /warehouses [post]
func (h *Handler) CreateWarehouseHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.WarehouseRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusCreated)
		return
	}

	created, err := h.Service.Create(r.Context(), req.ToWarehouse())
	h.handleServiceResponse(w, r, created, err, http.StatusCreated)
}

// ListWarehousesHandler lida com a requisição GET /v1/warehouses.
// @Summary Lista todos os armazéns
// @Description Retorna armazéns ativos e arquivados.
// @Tags warehouses
// @Produce json
// @Success 200 {array} domain.Warehouse "Lista de armazéns"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /warehouses [get]
func (h *Handler) ListWarehousesHandler(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.List(r.Context())
	h.handleServiceResponse(w, r, list, err, http.StatusOK)
}

// GetWarehouseHandler lida com a requisição GET /v1/warehouses/{code}.
// @Summary Obtém um armazém pelo código
// @Tags warehouses
// @Produce json
// @Param code path string true "Código de unidade de negócio"
// @Success 200 {object} domain.Warehouse "Armazém encontrado"
// @Failure 404 {object} domain.ErrorResponse "Armazém não encontrado"
// @Router /warehouses/{code} [get]
func (h *Handler) GetWarehouseHandler(w http.ResponseWriter, r *http.Request) {
	warehouse, err := h.Service.Get(r.Context(), r.PathValue("code"))
	h.handleServiceResponse(w, r, warehouse, err, http.StatusOK)
}

// ReplaceWarehouseHandler lida com a requisição PUT /v1/warehouses/{code}.
// @Summary Substitui um armazém
// @Description Atualiza local, capacidade e estoque preservando código e data de criação. O estoque deve ser igual ao atual.
// @Tags warehouses
// @Accept json
// @Produce json
// @Param code path string true "Código de unidade de negócio"
// @Param warehouse body domain.WarehouseRequest true "Novos dados (o código do corpo é ignorado)"
// @Success 200 {object} domain.Warehouse "Armazém substituído"
// @Failure 400 {object} domain.ErrorResponse "Regra de negócio violada"
// @Failure 409 {object} domain.ErrorResponse "Conflito de escrita concorrente"
// @Security ApiKeyAuth
// @Router /warehouses/{code} [put]
func (h *Handler) ReplaceWarehouseHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.WarehouseRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	replaced, err := h.Service.Replace(r.Context(), r.PathValue("code"), req.ToWarehouse())
	h.handleServiceResponse(w, r, replaced, err, http.StatusOK)
}

// ArchiveWarehouseHandler lida com a requisição DELETE /v1/warehouses/{code}.
// @Summary Arquiva um armazém
// @Description Soft delete. Código inexistente ou já arquivado também responde 204.
// @Tags warehouses
// @Param code path string true "Código de unidade de negócio"
// @Success 204 "Arquivado (ou nada a fazer)"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Security ApiKeyAuth
// @Router /warehouses/{code} [delete]
func (h *Handler) ArchiveWarehouseHandler(w http.ResponseWriter, r *http.Request) {
	err := h.Service.Archive(r.Context(), r.PathValue("code"))
	h.handleServiceResponse(w, r, nil, err, http.StatusNoContent)
}
