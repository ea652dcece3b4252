package operatorservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"gofulfil/internal/domain"
	apperror "gofulfil/internal/errors"
	"gofulfil/internal/pkg/logger"
)

// ErrEmailTaken é devolvido pelo repositório quando o e-mail já está cadastrado.
var ErrEmailTaken = errors.New("email já cadastrado")

// OperatorRepository define o contrato de persistência de operadores.
type OperatorRepository interface {
	Save(ctx context.Context, op domain.Operator) error
	FindByEmail(ctx context.Context, email string) (domain.Operator, bool, error)
	Count(ctx context.Context) (int, error)
}

// Transactor delimita a unidade atômica contar+inserir do registro.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// TokenService é o contrato da camada de token (internal/pkg/token).
type TokenService interface {
	GenerateToken(operatorID string, role string) (string, error)
}

// Service registra e autentica operadores.
type Service struct {
	repo     OperatorRepository
	tx       Transactor
	tokenSvc TokenService
	logger   logger.Logger
}

// NewService cria uma nova instância do serviço de operadores.
func NewService(repo OperatorRepository, tx Transactor, tokenSvc TokenService, logger logger.Logger) *Service {
	return &Service{repo: repo, tx: tx, tokenSvc: tokenSvc, logger: logger}
}

// Register é o autocadastro. O primeiro operador do sistema recebe o papel admin;
// os demais entram como viewer e só leem. Contas com escrita são criadas por um admin.
func (s *Service) Register(ctx context.Context, reg domain.OperatorRegistration) (domain.Operator, error) {
	return s.register(ctx, reg, func(total int) domain.OperatorRole {
		if total == 0 {
			return domain.RoleAdmin
		}
		return domain.RoleViewer
	})
}

// CreateOperator é o cadastro feito por um admin: a conta recebe o papel operator.
func (s *Service) CreateOperator(ctx context.Context, reg domain.OperatorRegistration) (domain.Operator, error) {
	return s.register(ctx, reg, func(int) domain.OperatorRole { return domain.RoleOperator })
}

func (s *Service) register(ctx context.Context, reg domain.OperatorRegistration, roleFor func(total int) domain.OperatorRole) (domain.Operator, error) {
	email := strings.ToLower(strings.TrimSpace(reg.Email))
	if email == "" || reg.Password == "" {
		return domain.Operator{}, apperror.NewValidationError("Email e senha são obrigatórios.")
	}
	if len(reg.Password) < 8 {
		return domain.Operator{}, apperror.NewValidationError("A senha deve ter pelo menos 8 caracteres.")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Operator{}, apperror.NewInternalError("Falha ao gerar hash da senha.", err)
	}

	op := domain.Operator{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hashed),
		CreatedAt:    time.Now().UTC(),
	}

	// Contagem e inserção na mesma transação: dois primeiros cadastros
	// simultâneos não podem virar admin os dois.
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		total, err := s.repo.Count(ctx)
		if err != nil {
			return err
		}
		op.Role = roleFor(total)
		return s.repo.Save(ctx, op)
	})
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return domain.Operator{}, apperror.NewConflictError(fmt.Sprintf("O email '%s' já está em uso.", email), err)
		}
		return domain.Operator{}, err
	}

	s.logger.Info("Operador registrado.", map[string]interface{}{"operator_id": op.ID, "role": op.Role})
	return op, nil
}

// Login confere a senha e emite um JWT.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", apperror.NewUnauthorizedError("Email e senha são obrigatórios.")
	}

	op, found, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if !found {
		return "", apperror.NewUnauthorizedError("Credenciais inválidas.")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("Tentativa de login com senha incorreta.", map[string]interface{}{"operator_id": op.ID})
		return "", apperror.NewUnauthorizedError("Credenciais inválidas.")
	}

	tokenString, err := s.tokenSvc.GenerateToken(op.ID, string(op.Role))
	if err != nil {
		return "", apperror.NewInternalError("Falha ao gerar token de autenticação.", err)
	}
	return tokenString, nil
}
