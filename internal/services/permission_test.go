package services

import (
	"context"
	"testing"

	"relevamiento-gesell/internal/apperrors"
	"relevamiento-gesell/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectivePermissionsAdminShortCircuit(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewPermissionService(db)

	// admin resolves to the full catalog without hitting storage
	keys, err := svc.EffectivePermissions(context.Background(), models.RolAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.PermissionKeys(), keys)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEffectivePermissionsViewer(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewPermissionService(db)

	rows := sqlmock.NewRows([]string{"permission"}).
		AddRow("view_alojamientos").
		AddRow("view_relevamiento")
	mock.ExpectQuery(`SELECT permission FROM "role_permissions"`).WillReturnRows(rows)

	keys, err := svc.EffectivePermissions(context.Background(), models.RolViewer)
	require.NoError(t, err)
	assert.Equal(t, []string{"view_alojamientos", "view_relevamiento"}, keys)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHasPermission(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewPermissionService(db)

	rows := sqlmock.NewRows([]string{"permission"}).AddRow("view_alojamientos")
	mock.ExpectQuery(`SELECT permission FROM "role_permissions"`).WillReturnRows(rows)

	ok, err := svc.HasPermission(context.Background(), models.RolViewer, models.PermViewAlojamientos)
	require.NoError(t, err)
	assert.True(t, ok)

	rows = sqlmock.NewRows([]string{"permission"}).AddRow("view_alojamientos")
	mock.ExpectQuery(`SELECT permission FROM "role_permissions"`).WillReturnRows(rows)

	ok, err = svc.HasPermission(context.Background(), models.RolViewer, models.PermManageUsers)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSetPermissionsInvalidRole(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewPermissionService(db)

	_, err := svc.SetPermissions(context.Background(), "superuser", []string{"view_alojamientos"})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetPermissionsSwapsGrantSet(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewPermissionService(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "role_permissions"`).WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(`INSERT INTO "role_permissions"`).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	// unknown and duplicate keys are dropped before the write
	keys, err := svc.SetPermissions(context.Background(), models.RolViewer,
		[]string{"view_alojamientos", "no_such_key", "view_relevamiento", "view_alojamientos"})
	require.NoError(t, err)
	assert.Equal(t, []string{"view_alojamientos", "view_relevamiento"}, keys)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetPermissionsEmptySetSkipsInsert(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewPermissionService(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "role_permissions"`).WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectCommit()

	keys, err := svc.SetPermissions(context.Background(), models.RolViewer, nil)
	require.NoError(t, err)
	assert.Empty(t, keys)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureDefaultGrantsSeedsEmptyTable(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewPermissionService(db)

	mock.ExpectQuery(`SELECT EXISTS`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`INSERT INTO "role_permissions"`).
		WillReturnResult(sqlmock.NewResult(0, int64(len(models.DefaultGrants()))))

	require.NoError(t, svc.EnsureDefaultGrants(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureDefaultGrantsLeavesExistingTable(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewPermissionService(db)

	mock.ExpectQuery(`SELECT EXISTS`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	require.NoError(t, svc.EnsureDefaultGrants(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
