package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/sethvargo/go-retry"

	apperror "gofulfil/internal/errors"
	"gofulfil/internal/pkg/logger"
)

// Executor é o subconjunto comum entre *sql.DB e *sql.Tx usado pelos repositórios.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type txKey struct{}

// ExecutorFrom devolve a transação carregada no contexto (se houver) ou o pool.
func ExecutorFrom(ctx context.Context, db *sql.DB) Executor {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return db
}

// Códigos SQLSTATE que justificam reexecutar a operação inteira.
const (
	sqlStateSerializationFailure = "40001"
	sqlStateDeadlockDetected     = "40P01"
	sqlStateUniqueViolation      = "23505"
)

// TxManager executa operações validar+persistir dentro de uma transação SERIALIZABLE.
// Falhas de serialização são reexecutadas com backoff exponencial; a função
// recebida roda novamente do zero, então as contagens são reavaliadas.
type TxManager struct {
	DB         *sql.DB
	MaxRetries uint64
	BaseDelay  time.Duration
	logger     logger.Logger
}

// NewTxManager cria o gerenciador de transações.
func NewTxManager(db *sql.DB, maxRetries uint64, logger logger.Logger) *TxManager {
	return &TxManager{
		DB:         db,
		MaxRetries: maxRetries,
		BaseDelay:  20 * time.Millisecond,
		logger:     logger,
	}
}

// WithinTx executa fn em uma transação. Chamadas aninhadas reutilizam a transação externa.
func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}

	backoff := retry.WithMaxRetries(m.MaxRetries, retry.NewExponential(m.BaseDelay))
	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		err := m.runOnce(ctx, fn)
		if err != nil && IsRetryable(err) {
			m.logger.Warn("Conflito de serialização, reexecutando transação.", map[string]interface{}{"attempt": attempt})
			return retry.RetryableError(err)
		}
		return err
	})

	if err != nil && IsRetryable(err) {
		return apperror.NewConflictError("Operação concorrente não pôde ser serializada. Tente novamente.", err)
	}
	return err
}

func (m *TxManager) runOnce(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	tx, err := m.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return apperror.NewDBError("Falha ao iniciar transação", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return apperror.NewDBError("Falha ao commitar transação", err)
	}
	return nil
}

// IsRetryable informa se o erro (em qualquer nível de encapsulamento) vem de
// um conflito entre escritores concorrentes.
func IsRetryable(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	switch string(pqErr.Code) {
	case sqlStateSerializationFailure, sqlStateDeadlockDetected, sqlStateUniqueViolation:
		return true
	}
	return false
}

// IsUniqueViolation informa se o erro é uma violação de UNIQUE (23505).
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == sqlStateUniqueViolation
}
