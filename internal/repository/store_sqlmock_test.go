package repository

import (
	"context"
	"testing"

	"dci-control-server/internal/database"
	"dci-control-server/internal/database/models"
	apperrors "dci-control-server/internal/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockProductStore(t *testing.T) (*Store[models.Product], sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), database.GormConfig(logger.Silent))
	require.NoError(t, err)

	return NewStore[models.Product](db, models.KindProduct), mock
}

const casUpdate = `UPDATE "products" SET "description"=\$1,"etag"=\$2,"updated_at"=\$3 WHERE id = \$4 AND etag = \$5 AND state <> \$6`

func TestStoreUpdate_CompareAndSwapStatement(t *testing.T) {
	store, mock := newMockProductStore(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(casUpdate).
		WithArgs("updated", sqlmock.AnyArg(), sqlmock.AnyArg(), id, "old-etag", models.StateArchived).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	next, err := store.Update(context.Background(), id, "old-etag", map[string]interface{}{"description": "updated"})

	require.NoError(t, err)
	assert.NotEqual(t, "old-etag", next)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreUpdate_RacedWriterConflicts(t *testing.T) {
	store, mock := newMockProductStore(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(casUpdate).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 AND state <> \$2`).
		WithArgs(id, models.StateArchived, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "etag", "state", "name"}).
			AddRow(id, "someone-else", "active", "p"))

	_, err := store.Update(context.Background(), id, "old-etag", map[string]interface{}{"description": "updated"})

	assert.True(t, apperrors.IsConflict(err), "got %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreUpdate_MissingRowNotFound(t *testing.T) {
	store, mock := newMockProductStore(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(casUpdate).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 AND state <> \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := store.Update(context.Background(), id, "old-etag", map[string]interface{}{"description": "updated"})

	assert.True(t, apperrors.IsNotFound(err), "got %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreArchive_Statement(t *testing.T) {
	store, mock := newMockProductStore(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "products" SET "etag"=\$1,"state"=\$2,"updated_at"=\$3 WHERE id = \$4 AND etag = \$5 AND state <> \$6`).
		WithArgs(sqlmock.AnyArg(), models.StateArchived, sqlmock.AnyArg(), id, "current", models.StateArchived).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, store.Archive(context.Background(), id, "current"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
