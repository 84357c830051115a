package services

import (
	"context"
	"testing"

	"relevamiento-gesell/internal/apperrors"
	"relevamiento-gesell/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expectUserRow(mock sqlmock.Sqlmock, id uuid.UUID, rol string) {
	rows := sqlmock.NewRows([]string{"id", "email", "nombre", "rol", "oficina"}).
		AddRow(id.String(), "ana@gesell.gob.ar", "Ana García", rol, nil)
	mock.ExpectQuery(`SELECT (.+) FROM "users"`).WillReturnRows(rows)
}

func TestUpdateUserInvalidRol(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewUserService(db)
	id := uuid.New()

	expectUserRow(mock, id, models.RolViewer)

	rol := "superuser"
	_, err := svc.Update(context.Background(), id, UserUpdateInput{Rol: &rol})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUserMultipleOficinasSoloAgente(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewUserService(db)
	id := uuid.New()

	expectUserRow(mock, id, models.RolViewer)

	varias := models.VariasOficinas([]string{"Centro", "Norte"})
	_, err := svc.Update(context.Background(), id, UserUpdateInput{
		Oficina: models.Opt[models.Oficinas]{Defined: true, Value: &varias},
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUserAgenteConVariasOficinas(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewUserService(db)
	id := uuid.New()

	expectUserRow(mock, id, models.RolAgente)
	mock.ExpectExec(`UPDATE "users"`).WillReturnResult(sqlmock.NewResult(0, 1))

	varias := models.VariasOficinas([]string{"Centro", "Norte"})
	row, err := svc.Update(context.Background(), id, UserUpdateInput{
		Oficina: models.Opt[models.Oficinas]{Defined: true, Value: &varias},
	})
	require.NoError(t, err)
	assert.True(t, row.Oficina.EsMultiple())
	assert.Equal(t, models.RolAgente, row.Rol)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUserNullClearsOficina(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewUserService(db)
	id := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "email", "nombre", "rol", "oficina"}).
		AddRow(id.String(), "ana@gesell.gob.ar", "Ana García", models.RolAgente, "Centro")
	mock.ExpectQuery(`SELECT (.+) FROM "users"`).WillReturnRows(rows)
	mock.ExpectExec(`UPDATE "users"`).WillReturnResult(sqlmock.NewResult(0, 1))

	row, err := svc.Update(context.Background(), id, UserUpdateInput{
		Oficina: models.Opt[models.Oficinas]{Defined: true, Value: nil},
	})
	require.NoError(t, err)
	assert.True(t, row.Oficina.Vacia())
	assert.NoError(t, mock.ExpectationsWereMet())
}
