package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	apperror "gofulfil/internal/errors"
)

func TestIsRetryable(t *testing.T) {
	serialization := &pq.Error{Code: "40001"}
	unique := &pq.Error{Code: "23505"}
	fk := &pq.Error{Code: "23503"}

	assert.True(t, IsRetryable(serialization))
	assert.True(t, IsRetryable(unique))
	assert.True(t, IsRetryable(apperror.NewDBError("Falha ao inserir", serialization)))
	assert.True(t, IsRetryable(fmt.Errorf("wrap: %w", apperror.NewDBError("x", unique))))
	assert.False(t, IsRetryable(fk))
	assert.False(t, IsRetryable(errors.New("boom")))
	assert.False(t, IsRetryable(nil))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(apperror.NewDBError("x", &pq.Error{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "40001"}))
}

func TestExecutorFrom_FallsBackToPool(t *testing.T) {
	var db *sql.DB
	exec := ExecutorFrom(context.Background(), db)

	_, isPool := exec.(*sql.DB)
	assert.True(t, isPool)
}
