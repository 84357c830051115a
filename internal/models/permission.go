package models

import "github.com/uptrace/bun"

const (
	RolViewer = "viewer"
	RolAgente = "agente"
	RolAdmin  = "admin"
)

func RolValido(rol string) bool {
	return rol == RolViewer || rol == RolAgente || rol == RolAdmin
}

// Permission keys. Admin bypasses the grant table entirely; these only gate
// viewer and agente.
const (
	PermViewRelevamiento    = "view_relevamiento"
	PermEditRelevamiento    = "edit_relevamiento"
	PermViewAlojamientos    = "view_alojamientos"
	PermEditAlojamientos    = "edit_alojamientos"
	PermLaunchRelevamiento  = "launch_relevamiento"
	PermManageUsers         = "manage_users"
	PermViewInmobiliarias   = "view_inmobiliarias"
	PermEditInmobiliarias   = "edit_inmobiliarias"
	PermLaunchInmobiliarias = "launch_inmobiliarias"
	PermViewBalnearios      = "view_balnearios"
	PermEditBalnearios      = "edit_balnearios"
	PermLaunchBalnearios    = "launch_balnearios"
)

// Permiso is a catalog entry: a grantable key plus its display label.
type Permiso struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Permisos is the full catalog, in the order the admin screen renders it.
var Permisos = []Permiso{
	{Key: PermViewRelevamiento, Label: "Ver relevamiento de alojamientos"},
	{Key: PermEditRelevamiento, Label: "Cargar relevamiento de alojamientos"},
	{Key: PermViewAlojamientos, Label: "Ver padrón de alojamientos"},
	{Key: PermEditAlojamientos, Label: "Editar padrón de alojamientos"},
	{Key: PermLaunchRelevamiento, Label: "Lanzar relevamiento de alojamientos"},
	{Key: PermManageUsers, Label: "Administrar usuarios y permisos"},
	{Key: PermViewInmobiliarias, Label: "Ver relevamiento de inmobiliarias"},
	{Key: PermEditInmobiliarias, Label: "Cargar relevamiento de inmobiliarias"},
	{Key: PermLaunchInmobiliarias, Label: "Lanzar relevamiento de inmobiliarias"},
	{Key: PermViewBalnearios, Label: "Ver relevamiento de balnearios"},
	{Key: PermEditBalnearios, Label: "Cargar relevamiento de balnearios"},
	{Key: PermLaunchBalnearios, Label: "Lanzar relevamiento de balnearios"},
}

// PermissionKeys returns the catalog keys in catalog order.
func PermissionKeys() []string {
	keys := make([]string, len(Permisos))
	for i, p := range Permisos {
		keys[i] = p.Key
	}
	return keys
}

func IsPermissionKey(key string) bool {
	for _, p := range Permisos {
		if p.Key == key {
			return true
		}
	}
	return false
}

// RolePermission is one grant row. The pair is the primary key; there is no
// surrogate id.
type RolePermission struct {
	bun.BaseModel `bun:"table:role_permissions,alias:rpe"`

	Rol        string `bun:"rol,pk" json:"rol"`
	Permission string `bun:"permission,pk" json:"permission"`
}

// DefaultGrants seeds a fresh database: viewers see everything, agentes also
// load data, admin gets the full catalog. launch_* and manage_users stay
// admin-only until granted. Admin rows are seeded for visibility in the admin
// screen even though resolution short-circuits the role.
func DefaultGrants() []RolePermission {
	porRol := []struct {
		rol  string
		keys []string
	}{
		{RolAdmin, PermissionKeys()},
		{RolAgente, []string{
			PermViewRelevamiento, PermEditRelevamiento,
			PermViewAlojamientos, PermEditAlojamientos,
			PermViewInmobiliarias, PermEditInmobiliarias,
			PermViewBalnearios, PermEditBalnearios,
		}},
		{RolViewer, []string{
			PermViewRelevamiento, PermViewAlojamientos,
			PermViewInmobiliarias, PermViewBalnearios,
		}},
	}

	var grants []RolePermission
	for _, g := range porRol {
		for _, k := range g.keys {
			grants = append(grants, RolePermission{Rol: g.rol, Permission: k})
		}
	}
	return grants
}
