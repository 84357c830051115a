package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
)

func setupMockDB(t *testing.T) (*bun.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqldb, mock, err := sqlmock.New()
	require.NoError(t, err)

	db := bun.NewDB(sqldb, pgdialect.New())
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestClampPct(t *testing.T) {
	assert.Nil(t, clampPct(nil))
	assert.Equal(t, 0, *clampPct(intPtr(-20)))
	assert.Equal(t, 0, *clampPct(intPtr(0)))
	assert.Equal(t, 42, *clampPct(intPtr(42)))
	assert.Equal(t, 100, *clampPct(intPtr(100)))
	assert.Equal(t, 100, *clampPct(intPtr(150)))
}

func TestOcupacionPct(t *testing.T) {
	assert.Nil(t, ocupacionPct(nil, intPtr(20)))
	assert.Nil(t, ocupacionPct(intPtr(0), intPtr(20)))
	assert.Nil(t, ocupacionPct(intPtr(98), nil))
	assert.Equal(t, 20, *ocupacionPct(intPtr(98), intPtr(20)))
	assert.Equal(t, 33, *ocupacionPct(intPtr(3), intPtr(1)))
	assert.Equal(t, 100, *ocupacionPct(intPtr(50), intPtr(50)))
	assert.Equal(t, 0, *ocupacionPct(intPtr(50), intPtr(0)))
}

func TestUnionFechas(t *testing.T) {
	got := unionFechas(
		[]string{"2025-01-03", "2025-01-01"},
		[]string{"2025-01-10", "2025-01-03"},
	)
	assert.Equal(t, []string{"2025-01-10", "2025-01-03", "2025-01-01"}, got)

	// a date only in config and a date only in records both appear
	got = unionFechas([]string{"2025-02-01"}, []string{"2025-03-01"})
	assert.Equal(t, []string{"2025-03-01", "2025-02-01"}, got)

	assert.Empty(t, unionFechas(nil, nil))
}

func TestUnionFechasCap(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	fechas := make([]string, 0, 90)
	for i := 0; i < 90; i++ {
		fechas = append(fechas, base.AddDate(0, 0, i).Format("2006-01-02"))
	}
	got := unionFechas(fechas, nil)
	assert.Len(t, got, maxFechas)
	// newest first after the cap
	assert.Equal(t, "2025-03-31", got[0])
	assert.Equal(t, "2025-01-11", got[maxFechas-1])
}

func TestResolverOficina(t *testing.T) {
	supplied, previa, prestador := strPtr("Centro"), strPtr("Norte"), strPtr("Terminal")

	assert.Equal(t, "Centro", *resolverOficina(supplied, previa, prestador))
	assert.Equal(t, "Norte", *resolverOficina(nil, previa, prestador))
	assert.Equal(t, "Terminal", *resolverOficina(nil, nil, prestador))
	assert.Nil(t, resolverOficina(nil, nil, nil))
}

func TestAgentePtr(t *testing.T) {
	assert.Nil(t, agentePtr(""))
	assert.Nil(t, agentePtr("   "))
	assert.Equal(t, "Ana García", *agentePtr(" Ana García "))
}
