// internal/repository/code_test.go
package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dangerclosesec/orgaccess/internal/domain"
	"github.com/dangerclosesec/orgaccess/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockDB wires gorm onto a sqlmock connection so the row-locked
// transactions can be exercised without a database.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func codeRows(id uuid.UUID, maxUses, currentUses int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "code", "status", "max_uses", "current_uses"}).
		AddRow(id.String(), "ACME-2025-ABCD1234", string(model.CodeStatusActive), maxUses, currentUses)
}

func TestIncrementUse(t *testing.T) {
	const lockCode = `SELECT \* FROM "organization_codes" WHERE code = \$1(.*)FOR UPDATE`

	t.Run("consuming the last use flips the status to exhausted", func(t *testing.T) {
		db, mock := newMockDB(t)
		codeID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectQuery(lockCode).WillReturnRows(codeRows(codeID, 50, 49))
		mock.ExpectExec(`UPDATE "organization_codes" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		code, err := NewCodeRepository(db).IncrementUse(context.Background(), "ACME-2025-ABCD1234")

		require.NoError(t, err)
		assert.Equal(t, 50, code.CurrentUses)
		assert.Equal(t, model.CodeStatusExhausted, code.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("a code at its cap rolls back untouched", func(t *testing.T) {
		db, mock := newMockDB(t)
		codeID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectQuery(lockCode).WillReturnRows(codeRows(codeID, 50, 50))
		mock.ExpectRollback()

		_, err := NewCodeRepository(db).IncrementUse(context.Background(), "ACME-2025-ABCD1234")

		assert.ErrorIs(t, err, domain.ErrCodeMaxUsesReached)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("an unknown code maps to not found", func(t *testing.T) {
		db, mock := newMockDB(t)

		mock.ExpectBegin()
		mock.ExpectQuery(lockCode).WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectRollback()

		_, err := NewCodeRepository(db).IncrementUse(context.Background(), "NOPE")

		assert.ErrorIs(t, err, domain.ErrCodeNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
