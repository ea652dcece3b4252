package operatorservice_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"gofulfil/internal/domain"
	apperror "gofulfil/internal/errors"
	"gofulfil/internal/pkg/logger"
	"gofulfil/internal/service/operatorservice"
)

type MockOperatorRepository struct {
	mock.Mock
}

func (m *MockOperatorRepository) Save(ctx context.Context, op domain.Operator) error {
	return m.Called(ctx, op).Error(0)
}

func (m *MockOperatorRepository) FindByEmail(ctx context.Context, email string) (domain.Operator, bool, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.Operator), args.Bool(1), args.Error(2)
}

func (m *MockOperatorRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateToken(operatorID, role string) (string, error) {
	args := m.Called(operatorID, role)
	return args.String(0), args.Error(1)
}

// directTx executa fn sem transação real e conta as chamadas.
type directTx struct{ calls int }

func (d *directTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	d.calls++
	return fn(ctx)
}

func TestRegister_FirstOperatorIsAdmin(t *testing.T) {
	repo := new(MockOperatorRepository)
	tx := &directTx{}
	svc := operatorservice.NewService(repo, tx, new(MockTokenService), logger.NewNop())

	repo.On("Count", mock.Anything).Return(0, nil)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(op domain.Operator) bool {
		return op.Email == "ops@gofulfil.local" && op.Role == domain.RoleAdmin && op.PasswordHash != "segredo123"
	})).Return(nil)

	op, err := svc.Register(context.Background(), domain.OperatorRegistration{Email: " OPS@gofulfil.local ", Password: "segredo123"})

	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, op.Role)
	assert.NotEmpty(t, op.ID)
	assert.Equal(t, 1, tx.calls)
	repo.AssertExpectations(t)
}

func TestRegister_LaterAccountsAreViewers(t *testing.T) {
	repo := new(MockOperatorRepository)
	svc := operatorservice.NewService(repo, &directTx{}, new(MockTokenService), logger.NewNop())

	repo.On("Count", mock.Anything).Return(1, nil)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(op domain.Operator) bool {
		return op.Role == domain.RoleViewer
	})).Return(nil)

	op, err := svc.Register(context.Background(), domain.OperatorRegistration{Email: "curioso@gofulfil.local", Password: "segredo123"})

	require.NoError(t, err)
	assert.Equal(t, domain.RoleViewer, op.Role)
	repo.AssertExpectations(t)
}

func TestCreateOperator_AssignsOperatorRole(t *testing.T) {
	repo := new(MockOperatorRepository)
	tx := &directTx{}
	svc := operatorservice.NewService(repo, tx, new(MockTokenService), logger.NewNop())

	// Mesmo em base vazia, o cadastro por admin nunca cria outro admin.
	repo.On("Count", mock.Anything).Return(0, nil)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(op domain.Operator) bool {
		return op.Role == domain.RoleOperator
	})).Return(nil)

	op, err := svc.CreateOperator(context.Background(), domain.OperatorRegistration{Email: "doca@gofulfil.local", Password: "segredo123"})

	require.NoError(t, err)
	assert.Equal(t, domain.RoleOperator, op.Role)
	assert.Equal(t, 1, tx.calls)
	repo.AssertExpectations(t)
}

func TestRegister_CountFailureAbortsSave(t *testing.T) {
	repo := new(MockOperatorRepository)
	svc := operatorservice.NewService(repo, &directTx{}, new(MockTokenService), logger.NewNop())

	dbErr := apperror.NewDBError("falha", assert.AnError)
	repo.On("Count", mock.Anything).Return(0, dbErr)

	_, err := svc.Register(context.Background(), domain.OperatorRegistration{Email: "a@b.c", Password: "segredo123"})

	assert.Equal(t, dbErr, err)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := new(MockOperatorRepository)
	svc := operatorservice.NewService(repo, &directTx{}, new(MockTokenService), logger.NewNop())

	repo.On("Count", mock.Anything).Return(3, nil)
	repo.On("Save", mock.Anything, mock.Anything).Return(operatorservice.ErrEmailTaken)

	_, err := svc.Register(context.Background(), domain.OperatorRegistration{Email: "a@b.c", Password: "segredo123"})

	assert.IsType(t, &apperror.ConflictError{}, err)
}

func TestRegister_Fail_ShortPassword(t *testing.T) {
	repo := new(MockOperatorRepository)
	svc := operatorservice.NewService(repo, &directTx{}, new(MockTokenService), logger.NewNop())

	_, err := svc.Register(context.Background(), domain.OperatorRegistration{Email: "a@b.c", Password: "123"})

	assert.IsType(t, &apperror.ValidationError{}, err)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("segredo123"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := domain.Operator{ID: "op-1", Email: "a@b.c", PasswordHash: string(hash), Role: domain.RoleOperator}

	t.Run("sucesso", func(t *testing.T) {
		repo := new(MockOperatorRepository)
		tokens := new(MockTokenService)
		svc := operatorservice.NewService(repo, &directTx{}, tokens, logger.NewNop())
		repo.On("FindByEmail", mock.Anything, "a@b.c").Return(stored, true, nil)
		tokens.On("GenerateToken", "op-1", "operator").Return("jwt", nil)

		tok, err := svc.Login(context.Background(), "a@b.c", "segredo123")

		require.NoError(t, err)
		assert.Equal(t, "jwt", tok)
	})

	t.Run("senha errada", func(t *testing.T) {
		repo := new(MockOperatorRepository)
		svc := operatorservice.NewService(repo, &directTx{}, new(MockTokenService), logger.NewNop())
		repo.On("FindByEmail", mock.Anything, "a@b.c").Return(stored, true, nil)

		_, err := svc.Login(context.Background(), "a@b.c", "errada")

		assert.IsType(t, &apperror.UnauthorizedError{}, err)
	})

	t.Run("email desconhecido", func(t *testing.T) {
		repo := new(MockOperatorRepository)
		svc := operatorservice.NewService(repo, &directTx{}, new(MockTokenService), logger.NewNop())
		repo.On("FindByEmail", mock.Anything, "x@y.z").Return(domain.Operator{}, false, nil)

		_, err := svc.Login(context.Background(), "x@y.z", "segredo123")

		assert.IsType(t, &apperror.UnauthorizedError{}, err)
	})
}
