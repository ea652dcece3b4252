package operator

import (
	"context"
	"net/http"

	"gofulfil/internal/api/respond"
	"gofulfil/internal/domain"
	"gofulfil/internal/pkg/logger"
)

// OperatorService define o contrato para as operações de registro e login.
type OperatorService interface {
	Register(ctx context.Context, reg domain.OperatorRegistration) (domain.Operator, error)
	CreateOperator(ctx context.Context, reg domain.OperatorRegistration) (domain.Operator, error)
	Login(ctx context.Context, email string, password string) (string, error)
}

// LoginRequest representa o payload de entrada para o login.
type LoginRequest struct {
	Email    string `json:"email" example:"ops@gofulfil.local"`
	Password string `json:"password" example:"s3cret!!"`
}

// Handler agrupa os handlers de operadores.
type Handler struct {
	Service OperatorService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc OperatorService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// RegisterHandler lida com a requisição POST /v1/operators/register.
// @Summary Registra um novo operador
// @Description O primeiro operador registrado recebe o papel admin; os demais, viewer (somente leitura).
// @Tags operators
// @Accept json
// @Produce json
// @Param registration body domain.OperatorRegistration true "Credenciais de registro"
// @Success 201 {object} domain.Operator "Operador criado"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 409 {object} domain.ErrorResponse "Email já cadastrado"
// @Router /operators/register [post]
func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var reg domain.OperatorRegistration
	if err := respond.DecodeJSON(r, &reg); err != nil {
		respond.ServiceResponse(h.Logger, w, r, nil, err, http.StatusCreated)
		return
	}

	op, err := h.Service.Register(r.Context(), reg)
	respond.ServiceResponse(h.Logger, w, r, op, err, http.StatusCreated)
}

// CreateOperatorHandler lida com a requisição POST /v1/operators.
// @Summary Cadastra um operador com permissão de escrita
// @Description Restrito a admins. A conta criada recebe o papel operator.
// @Tags operators
// @Accept json
// @Produce json
// @Param registration body domain.OperatorRegistration true "Credenciais do novo operador"
// @Success 201 {object} domain.Operator "Operador criado"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 403 {object} domain.ErrorResponse "Apenas admins"
// @Failure 409 {object} domain.ErrorResponse "Email já cadastrado"
// @Security ApiKeyAuth
// @Router /operators [post]
func (h *Handler) CreateOperatorHandler(w http.ResponseWriter, r *http.Request) {
	var reg domain.OperatorRegistration
	if err := respond.DecodeJSON(r, &reg); err != nil {
		respond.ServiceResponse(h.Logger, w, r, nil, err, http.StatusCreated)
		return
	}

	op, err := h.Service.CreateOperator(r.Context(), reg)
	respond.ServiceResponse(h.Logger, w, r, op, err, http.StatusCreated)
}

// LoginHandler lida com a requisição POST /v1/operators/login.
// @Summary Autentica um operador e retorna um JWT
// @Tags operators
// @Accept json
// @Produce json
// @Param login body LoginRequest true "Credenciais"
// @Success 200 {object} map[string]string "Token JWT emitido"
// @Failure 401 {object} domain.ErrorResponse "Credenciais inválidas"
// @Router /operators/login [post]
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.ServiceResponse(h.Logger, w, r, nil, err, http.StatusOK)
		return
	}

	token, err := h.Service.Login(r.Context(), req.Email, req.Password)
	respond.ServiceResponse(h.Logger, w, r, map[string]string{"token": token}, err, http.StatusOK)
}
