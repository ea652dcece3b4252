package location

import (
	"net/http"

	"gofulfil/internal/api/respond"
	"gofulfil/internal/domain"
	"gofulfil/internal/pkg/logger"
)

// Lister expõe o catálogo de locais.
type Lister interface {
	All() []domain.Location
}

// Handler serve o catálogo de locais (somente leitura).
type Handler struct {
	Catalog Lister
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler.
func NewHandler(catalog Lister, log logger.Logger) *Handler {
	return &Handler{Catalog: catalog, Logger: log}
}

// ListLocationsHandler lida com a requisição GET /v1/locations.
// @Summary Lista os locais conhecidos
// @Tags locations
// @Produce json
// @Success 200 {array} domain.Location "Locais e seus limites"
// @Router /locations [get]
func (h *Handler) ListLocationsHandler(w http.ResponseWriter, r *http.Request) {
	respond.ServiceResponse(h.Logger, w, r, h.Catalog.All(), nil, http.StatusOK)
}
