package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOficinasScanLegacyShapes(t *testing.T) {
	var o Oficinas

	require.NoError(t, o.Scan(nil))
	assert.True(t, o.Vacia())

	require.NoError(t, o.Scan("Centro"))
	una, ok := o.Unica()
	assert.True(t, ok)
	assert.Equal(t, "Centro", una)

	require.NoError(t, o.Scan(`["Centro","Norte"]`))
	assert.True(t, o.EsMultiple())
	assert.Equal(t, []string{"Centro", "Norte"}, o.Lista())

	require.NoError(t, o.Scan([]byte("Terminal")))
	una, ok = o.Unica()
	assert.True(t, ok)
	assert.Equal(t, "Terminal", una)
}

func TestOficinasValue(t *testing.T) {
	v, err := Oficinas{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = OficinaUnica("Centro").Value()
	require.NoError(t, err)
	assert.Equal(t, "Centro", v)

	v, err = VariasOficinas([]string{"Centro", "Norte"}).Value()
	require.NoError(t, err)
	assert.JSONEq(t, `["Centro","Norte"]`, v.(string))
}

func TestOficinasJSONRoundTrip(t *testing.T) {
	b, err := json.Marshal(Oficinas{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))

	b, err = json.Marshal(OficinaUnica("Centro"))
	require.NoError(t, err)
	assert.Equal(t, `"Centro"`, string(b))

	b, err = json.Marshal(VariasOficinas([]string{"Centro", "Norte"}))
	require.NoError(t, err)
	assert.Equal(t, `["Centro","Norte"]`, string(b))

	var o Oficinas
	require.NoError(t, json.Unmarshal([]byte(`["Mar de las Pampas","Norte"]`), &o))
	assert.True(t, o.EsMultiple())

	require.NoError(t, json.Unmarshal([]byte(`"Centro"`), &o))
	assert.False(t, o.EsMultiple())

	require.NoError(t, json.Unmarshal([]byte("null"), &o))
	assert.True(t, o.Vacia())
}

func TestDefaultGrants(t *testing.T) {
	grants := DefaultGrants()

	porRol := make(map[string][]string)
	for _, g := range grants {
		porRol[g.Rol] = append(porRol[g.Rol], g.Permission)
	}

	assert.ElementsMatch(t, PermissionKeys(), porRol[RolAdmin])
	assert.Contains(t, porRol[RolAgente], PermEditRelevamiento)
	assert.NotContains(t, porRol[RolAgente], PermManageUsers)
	assert.NotContains(t, porRol[RolAgente], PermLaunchRelevamiento)
	assert.Contains(t, porRol[RolViewer], PermViewBalnearios)
	assert.NotContains(t, porRol[RolViewer], PermEditBalnearios)
}

func TestOptDistinguishesAbsentFromNull(t *testing.T) {
	type payload struct {
		Oficina Opt[Oficinas] `json:"oficina"`
	}

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{}`), &p))
	assert.False(t, p.Oficina.Defined)

	p = payload{}
	require.NoError(t, json.Unmarshal([]byte(`{"oficina":null}`), &p))
	assert.True(t, p.Oficina.Defined)
	assert.Nil(t, p.Oficina.Value)

	p = payload{}
	require.NoError(t, json.Unmarshal([]byte(`{"oficina":"Centro"}`), &p))
	assert.True(t, p.Oficina.Defined)
	require.NotNil(t, p.Oficina.Value)
	una, ok := p.Oficina.Value.Unica()
	assert.True(t, ok)
	assert.Equal(t, "Centro", una)
}
