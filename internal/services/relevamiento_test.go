package services

import (
	"context"
	"database/sql"
	"testing"

	"relevamiento-gesell/internal/apperrors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCargarAlojamientoRequiresKey(t *testing.T) {
	db, _ := setupMockDB(t)
	svc := NewRelevamientoService(db)

	_, err := svc.CargarAlojamiento(context.Background(),
		RelevamientoAlojamientoInput{Fecha: "", AlojamientoID: 1}, "Ana")
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	_, err = svc.CargarAlojamiento(context.Background(),
		RelevamientoAlojamientoInput{Fecha: "2025-01-03"}, "Ana")
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	_, err = svc.CargarAlojamiento(context.Background(),
		RelevamientoAlojamientoInput{Fecha: "03/01/2025", AlojamientoID: 1}, "Ana")
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestCargarAlojamientoCapacityGuard(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewRelevamientoService(db)

	mock.ExpectQuery(`SELECT (.+) FROM "alojamientos"`).
		WillReturnRows(sqlmock.NewRows([]string{"plazas_totales", "oficina"}).AddRow(50, nil))

	_, err := svc.CargarAlojamiento(context.Background(), RelevamientoAlojamientoInput{
		Fecha:          "2025-01-03",
		AlojamientoID:  7,
		PlazasOcupadas: intPtr(51),
	}, "Ana")

	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	assert.Contains(t, err.Error(), "plazas ocupadas")
	// the guard fires before any write is attempted
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCargarAlojamientoUnknownProvider(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewRelevamientoService(db)

	mock.ExpectQuery(`SELECT (.+) FROM "alojamientos"`).WillReturnError(sql.ErrNoRows)

	_, err := svc.CargarAlojamiento(context.Background(), RelevamientoAlojamientoInput{
		Fecha:         "2025-01-03",
		AlojamientoID: 999,
	}, "Ana")

	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestCargarBalnearioClampsAndStamps(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewRelevamientoService(db)

	mock.ExpectQuery(`SELECT (.+) FROM "balnearios"`).
		WillReturnRows(sqlmock.NewRows([]string{"oficina"}).AddRow("Centro"))
	mock.ExpectQuery(`SELECT oficina FROM "relevamiento_balnearios"`).
		WillReturnError(sql.ErrNoRows)
	// the write must be a single conflict-upsert overwriting every survey
	// column, with the clamped pct, resolved office and caller already inlined
	mock.ExpectQuery(`INSERT INTO "relevamiento_balnearios"(.+)VALUES \((.*)'2025-01-03', 3, 100, NULL, NULL, 'Centro', 'María Pérez'\) ON CONFLICT \(fecha, balneario_id\) DO UPDATE SET ocupacion_pct = EXCLUDED\.ocupacion_pct, llamados = EXCLUDED\.llamados, observaciones = EXCLUDED\.observaciones, oficina = EXCLUDED\.oficina, agente = EXCLUDED\.agente RETURNING \*`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(12)))

	reg, err := svc.CargarBalneario(context.Background(), RelevamientoBalnearioInput{
		Fecha:        "2025-01-03",
		BalnearioID:  3,
		OcupacionPct: intPtr(150),
		Oficina:      nil,
	}, "María Pérez") // payload has no agente field at all: it always comes from the caller

	require.NoError(t, err)
	assert.Equal(t, int64(12), reg.ID)
	assert.Equal(t, 100, *reg.OcupacionPct)
	assert.Equal(t, "Centro", *reg.Oficina)
	assert.Equal(t, "María Pérez", *reg.Agente)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCopiarUltimoSinHistoria(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewRelevamientoService(db)

	mock.ExpectQuery(`SELECT fecha FROM "relevamientos"`).WillReturnError(sql.ErrNoRows)

	_, err := svc.CopiarUltimo(context.Background(), "2025-01-10", nil, "Ana")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestCopiarUltimoReStampsAgente(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewRelevamientoService(db)

	mock.ExpectQuery(`SELECT fecha FROM "relevamientos"`).
		WillReturnRows(sqlmock.NewRows([]string{"fecha"}).AddRow("2025-01-03"))

	source := sqlmock.NewRows([]string{
		"id", "fecha", "alojamiento_id", "plazas_relevadas", "plazas_ocupadas_anterior",
		"plazas_ocupadas", "reservas", "disponibilidad_texto", "llamados",
		"observaciones", "oficina", "agente",
	}).AddRow(int64(5), "2025-01-03", int64(7), 98, nil, 20, 40, nil, nil, nil, "Centro", "Pedro López")
	mock.ExpectQuery(`SELECT (.+) FROM "relevamientos"`).WillReturnRows(source)

	// the copy carries every source value, capacity snapshot included, onto
	// the target fecha; only agente changes
	mock.ExpectQuery(`INSERT INTO "relevamientos"(.+)VALUES \((.*)'2025-01-10', 7, 98, NULL, 20, 40, NULL, NULL, NULL, 'Centro', 'Ana García'\) ON CONFLICT \(fecha, alojamiento_id\) DO UPDATE SET plazas_relevadas = EXCLUDED\.plazas_relevadas,(.+)agente = EXCLUDED\.agente RETURNING \*`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(31)))

	res, err := svc.CopiarUltimo(context.Background(), "2025-01-10", nil, "Ana García")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-03", res.Copiado)
	assert.Equal(t, "2025-01-10", res.Fecha)
	assert.Equal(t, 1, res.Filas)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAlojamientosPorFechaLeftJoin(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewRelevamientoService(db)

	mock.ExpectQuery(`SELECT (.+) FROM "relevamiento_config"`).WillReturnError(sql.ErrNoRows)

	alojamientos := sqlmock.NewRows([]string{"id", "localidad", "prestador", "plazas_totales"}).
		AddRow(int64(1), "Villa Gesell", "Hotel Playa", 98).
		AddRow(int64(2), "Villa Gesell", "Hostería Mar", 40)
	mock.ExpectQuery(`SELECT (.+) FROM "alojamientos"`).WillReturnRows(alojamientos)

	registros := sqlmock.NewRows([]string{"id", "fecha", "alojamiento_id", "plazas_ocupadas"}).
		AddRow(int64(9), "2025-01-03", int64(1), 20)
	mock.ExpectQuery(`SELECT (.+) FROM "relevamientos"`).WillReturnRows(registros)

	dia, err := svc.AlojamientosPorFecha(context.Background(), "2025-01-03", false)
	require.NoError(t, err)

	// a fecha without a config row collects the defaults
	assert.True(t, dia.Config.ConsultarOcupacion)
	assert.False(t, dia.Config.ConsultarReservas)

	require.Len(t, dia.List, 2)
	require.NotNil(t, dia.List[0].Relevamiento)
	assert.Equal(t, 20, *dia.List[0].OcupacionPct)
	assert.Nil(t, dia.List[1].Relevamiento)
	assert.Nil(t, dia.List[1].OcupacionPct)
	assert.NoError(t, mock.ExpectationsWereMet())
}
