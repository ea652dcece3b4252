package fulfillment

import (
	"context"
	"net/http"

	"gofulfil/internal/api/respond"
	"gofulfil/internal/domain"
	"gofulfil/internal/pkg/logger"
)

// FulfillmentService define o contrato que o Handler espera do motor de associação.
type FulfillmentService interface {
	Associate(ctx context.Context, productName, storeName, warehouseCode string) error
	ListByStore(ctx context.Context, storeName string) ([]domain.Fulfillment, error)
}

// Handler agrupa os handlers de associações.
type Handler struct {
	Service FulfillmentService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler.
func NewHandler(svc FulfillmentService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// AssociateHandler lida com a requisição POST /v1/fulfillments.
// @Summary Associa produto, loja e armazém
// @Description Repetir um trio existente responde 201 sem criar um novo registro.
// @Tags fulfillments
// @Accept json
// @Produce json
// @Param fulfillment body domain.Fulfillment true "Trio produto/loja/armazém"
// @Success 201 {object} domain.Fulfillment "Associação registrada"
// @Failure 400 {object} domain.ErrorResponse "Referência inexistente ou limite de cardinalidade"
// @Failure 409 {object} domain.ErrorResponse "Conflito de escrita concorrente"
// @Security ApiKeyAuth
// @Router /fulfillments [post]
func (h *Handler) AssociateHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.Fulfillment
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.ServiceResponse(h.Logger, w, r, nil, err, http.StatusCreated)
		return
	}

	err := h.Service.Associate(r.Context(), req.ProductName, req.StoreName, req.WarehouseCode)
	respond.ServiceResponse(h.Logger, w, r, req, err, http.StatusCreated)
}

// ListByStoreHandler lida com a requisição GET /v1/stores/{name}/fulfillments.
// @Summary Lista as associações de uma loja
// @Tags fulfillments
// @Produce json
// @Param name path string true "Nome da loja"
// @Success 200 {array} domain.Fulfillment "Associações ativas"
// @Failure 404 {object} domain.ErrorResponse "Loja não encontrada"
// @Router /stores/{name}/fulfillments [get]
func (h *Handler) ListByStoreHandler(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.ListByStore(r.Context(), r.PathValue("name"))
	respond.ServiceResponse(h.Logger, w, r, list, err, http.StatusOK)
}
