package models

import "github.com/uptrace/bun"

// Registro is implemented by the per-type survey record rows. PrestadorRef
// returns the foreign key so the date join can pair rows generically.
type Registro interface {
	PrestadorRef() int64
}

// RelevamientoAlojamiento is one lodging survey row for one (fecha,
// alojamiento) pair. plazas_relevadas snapshots the provider's capacity at
// write time and is copied verbatim by copy-forward.
type RelevamientoAlojamiento struct {
	bun.BaseModel `bun:"table:relevamientos,alias:rel"`

	ID                     int64   `bun:"id,pk,autoincrement" json:"id"`
	Fecha                  string  `bun:"fecha" json:"fecha"`
	AlojamientoID          int64   `bun:"alojamiento_id" json:"alojamiento_id"`
	PlazasRelevadas        *int    `bun:"plazas_relevadas" json:"plazas_relevadas"`
	PlazasOcupadasAnterior *int    `bun:"plazas_ocupadas_anterior" json:"plazas_ocupadas_anterior"`
	PlazasOcupadas         *int    `bun:"plazas_ocupadas" json:"plazas_ocupadas"`
	Reservas               *int    `bun:"reservas" json:"reservas"`
	DisponibilidadTexto    *string `bun:"disponibilidad_texto" json:"disponibilidad_texto"`
	Llamados               *string `bun:"llamados" json:"llamados"`
	Observaciones          *string `bun:"observaciones" json:"observaciones"`
	Oficina                *string `bun:"oficina" json:"oficina"`
	Agente                 *string `bun:"agente" json:"agente"`
}

func (r RelevamientoAlojamiento) PrestadorRef() int64 { return r.AlojamientoID }

type RelevamientoInmobiliaria struct {
	bun.BaseModel `bun:"table:relevamiento_inmobiliarias,alias:rin"`

	ID                int64   `bun:"id,pk,autoincrement" json:"id"`
	Fecha             string  `bun:"fecha" json:"fecha"`
	InmobiliariaID    int64   `bun:"inmobiliaria_id" json:"inmobiliaria_id"`
	OcupacionDptosPct *int    `bun:"ocupacion_dptos_pct" json:"ocupacion_dptos_pct"`
	OcupacionCasasPct *int    `bun:"ocupacion_casas_pct" json:"ocupacion_casas_pct"`
	Llamados          *string `bun:"llamados" json:"llamados"`
	Observaciones     *string `bun:"observaciones" json:"observaciones"`
	Oficina           *string `bun:"oficina" json:"oficina"`
	Agente            *string `bun:"agente" json:"agente"`
}

func (r RelevamientoInmobiliaria) PrestadorRef() int64 { return r.InmobiliariaID }

type RelevamientoBalneario struct {
	bun.BaseModel `bun:"table:relevamiento_balnearios,alias:rba"`

	ID            int64   `bun:"id,pk,autoincrement" json:"id"`
	Fecha         string  `bun:"fecha" json:"fecha"`
	BalnearioID   int64   `bun:"balneario_id" json:"balneario_id"`
	OcupacionPct  *int    `bun:"ocupacion_pct" json:"ocupacion_pct"`
	Llamados      *string `bun:"llamados" json:"llamados"`
	Observaciones *string `bun:"observaciones" json:"observaciones"`
	Oficina       *string `bun:"oficina" json:"oficina"`
	Agente        *string `bun:"agente" json:"agente"`
}

func (r RelevamientoBalneario) PrestadorRef() int64 { return r.BalnearioID }

// RelevamientoConfig holds the per-fecha field toggles for the lodging
// survey. A missing row means {consultar_ocupacion: true, consultar_reservas:
// false}.
type RelevamientoConfig struct {
	bun.BaseModel `bun:"table:relevamiento_config,alias:rcf"`

	Fecha              string `bun:"fecha,pk" json:"fecha"`
	ConsultarOcupacion bool   `bun:"consultar_ocupacion" json:"consultar_ocupacion"`
	ConsultarReservas  bool   `bun:"consultar_reservas" json:"consultar_reservas"`
}

// DefaultRelevamientoConfig is what a fecha without a stored config row
// answers with.
func DefaultRelevamientoConfig(fecha string) *RelevamientoConfig {
	return &RelevamientoConfig{Fecha: fecha, ConsultarOcupacion: true, ConsultarReservas: false}
}

// InmobiliariasConfig marks a fecha as open for real-estate data entry.
// Existence-only: no toggles.
type InmobiliariasConfig struct {
	bun.BaseModel `bun:"table:inmobiliarias_config,alias:icf"`

	Fecha string `bun:"fecha,pk" json:"fecha"`
}

type BalneariosConfig struct {
	bun.BaseModel `bun:"table:balnearios_config,alias:bcf"`

	Fecha string `bun:"fecha,pk" json:"fecha"`
}
