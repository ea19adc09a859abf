// internal/repository/license_test.go
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
)

func poolRows(id, orgID, typeID uuid.UUID, status model.LicenseStatus, totalSeats, usedSeats int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "organization_id", "license_type_id", "status", "total_seats", "used_seats"}).
		AddRow(id.String(), orgID.String(), typeID.String(), string(status), totalSeats, usedSeats)
}

func TestAllocateSeat(t *testing.T) {
	const lockPool = `SELECT \* FROM "organization_licenses" WHERE id = \$1(.*)FOR UPDATE`

	poolID := uuid.New()
	orgID := uuid.New()
	typeID := uuid.New()

	newGrant := func() *model.UserLicense {
		return &model.UserLicense{
			UserID:         uuid.New(),
			LicenseTypeID:  typeID,
			OrganizationID: &orgID,
			Status:         model.LicenseStatusActive,
		}
	}

	t.Run("the last seat is granted and the counter lands on the cap", func(t *testing.T) {
		db, mock := newMockDB(t)
		grantID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectQuery(lockPool).
			WillReturnRows(poolRows(poolID, orgID, typeID, model.LicenseStatusActive, 50, 49))
		mock.ExpectQuery(`INSERT INTO "user_licenses"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(grantID.String()))
		mock.ExpectExec(`UPDATE "organization_licenses" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		lic, err := NewLicenseRepository(db).AllocateSeat(context.Background(), poolID, newGrant())

		require.NoError(t, err)
		assert.Equal(t, grantID, lic.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("a full pool rolls back before the grant is written", func(t *testing.T) {
		db, mock := newMockDB(t)

		mock.ExpectBegin()
		mock.ExpectQuery(lockPool).
			WillReturnRows(poolRows(poolID, orgID, typeID, model.LicenseStatusActive, 50, 50))
		mock.ExpectRollback()

		_, err := NewLicenseRepository(db).AllocateSeat(context.Background(), poolID, newGrant())

		assert.ErrorIs(t, err, domain.ErrNoSeatsAvailable)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("an inactive pool does not allocate", func(t *testing.T) {
		db, mock := newMockDB(t)

		mock.ExpectBegin()
		mock.ExpectQuery(lockPool).
			WillReturnRows(poolRows(poolID, orgID, typeID, model.LicenseStatusSuspended, 50, 10))
		mock.ExpectRollback()

		_, err := NewLicenseRepository(db).AllocateSeat(context.Background(), poolID, newGrant())

		assert.ErrorIs(t, err, domain.ErrLicensePoolInactive)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdatePoolSeatFloor(t *testing.T) {
	const lockPool = `SELECT \* FROM "organization_licenses" WHERE id = \$1(.*)FOR UPDATE`

	poolID := uuid.New()
	orgID := uuid.New()
	typeID := uuid.New()

	t.Run("total seats cannot drop below current usage", func(t *testing.T) {
		db, mock := newMockDB(t)

		mock.ExpectBegin()
		mock.ExpectQuery(lockPool).
			WillReturnRows(poolRows(poolID, orgID, typeID, model.LicenseStatusActive, 50, 10))
		mock.ExpectRollback()

		seats := 5
		_, err := NewLicenseRepository(db).UpdatePool(context.Background(), poolID, PoolUpdate{TotalSeats: &seats})

		assert.ErrorIs(t, err, domain.ErrSeatsBelowUsage)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("a reduction down to current usage is allowed", func(t *testing.T) {
		db, mock := newMockDB(t)

		mock.ExpectBegin()
		mock.ExpectQuery(lockPool).
			WillReturnRows(poolRows(poolID, orgID, typeID, model.LicenseStatusActive, 50, 10))
		mock.ExpectExec(`UPDATE "organization_licenses" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		seats := 10
		pool, err := NewLicenseRepository(db).UpdatePool(context.Background(), poolID, PoolUpdate{TotalSeats: &seats})

		require.NoError(t, err)
		assert.Equal(t, 10, pool.TotalSeats)
		assert.Equal(t, 10, pool.UsedSeats)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
