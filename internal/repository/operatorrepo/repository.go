package operatorrepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gofulfil/internal/domain"
	apperror "gofulfil/internal/errors"
	"gofulfil/internal/pkg/database"
	"gofulfil/internal/pkg/logger"
	"gofulfil/internal/service/operatorservice"
)

// OperatorRepository implementa operatorservice.OperatorRepository sobre PostgreSQL.
type OperatorRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewOperatorRepository cria uma nova instância do OperatorRepository, injetando o DB.
func NewOperatorRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *OperatorRepository {
	return &OperatorRepository{DB: db, DBTimeout: dbTimeout, logger: logger}
}

// Save insere um novo operador.
func (r *OperatorRepository) Save(ctx context.Context, op domain.Operator) error {
	r.logger.Debug("Iniciando Save de operador no repositório.", map[string]interface{}{"email": op.Email})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	_, err := database.ExecutorFrom(ctx, r.DB).ExecContext(ctxTimeout,
		`INSERT INTO operators (id, email, password_hash, role, created_at) VALUES ($1, $2, $3, $4, $5)`,
		op.ID, op.Email, op.PasswordHash, op.Role, op.CreatedAt,
	)
	if database.IsUniqueViolation(err) {
		return fmt.Errorf("%w: %s", operatorservice.ErrEmailTaken, op.Email)
	}
	if err != nil {
		r.logger.Error("Falha ao inserir operador no DB.", err)
		return apperror.NewDBError("Falha ao inserir operador", err)
	}
	return nil
}

// FindByEmail busca um operador pelo endereço de e-mail.
func (r *OperatorRepository) FindByEmail(ctx context.Context, email string) (domain.Operator, bool, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var op domain.Operator
	err := database.ExecutorFrom(ctx, r.DB).QueryRowContext(ctxTimeout,
		`SELECT id, email, password_hash, role, created_at FROM operators WHERE email = $1`, email,
	).Scan(&op.ID, &op.Email, &op.PasswordHash, &op.Role, &op.CreatedAt)
	if err == sql.ErrNoRows {
		r.logger.Info("Operador não encontrado no DB por email.", map[string]interface{}{"email": email})
		return domain.Operator{}, false, nil
	}
	if err != nil {
		r.logger.Error("Falha ao buscar operador por email no DB.", err)
		return domain.Operator{}, false, apperror.NewDBError("Falha ao buscar operador", err)
	}
	return op, true, nil
}

// Count devolve o total de operadores cadastrados.
func (r *OperatorRepository) Count(ctx context.Context) (int, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var n int
	if err := database.ExecutorFrom(ctx, r.DB).QueryRowContext(ctxTimeout, `SELECT COUNT(*) FROM operators`).Scan(&n); err != nil {
		r.logger.Error("Falha ao contar operadores.", err)
		return 0, apperror.NewDBError("Falha ao contar operadores", err)
	}
	return n, nil
}
