package models

import "github.com/uptrace/bun"

// Prestador is implemented by the three surveyed provider types.
type Prestador interface {
	PrestadorID() int64
	EstaOculto() bool
}

type Alojamiento struct {
	bun.BaseModel `bun:"table:alojamientos,alias:alj"`

	ID             int64   `bun:"id,pk,autoincrement" json:"id"`
	Localidad      string  `bun:"localidad" json:"localidad"`
	Categoria      *string `bun:"categoria" json:"categoria"`
	Prestador      string  `bun:"prestador" json:"prestador"`
	Web            *string `bun:"web" json:"web"`
	Funcionamiento *string `bun:"funcionamiento" json:"funcionamiento"`
	Observaciones  *string `bun:"observaciones" json:"observaciones"`
	Direccion      *string `bun:"direccion" json:"direccion"`
	TelefonoFijo   *string `bun:"telefono_fijo" json:"telefono_fijo"`
	Whatsapp       *string `bun:"whatsapp" json:"whatsapp"`
	PaginaWeb      *string `bun:"pagina_web" json:"pagina_web"`
	PlazasTotales  *int    `bun:"plazas_totales" json:"plazas_totales"`
	Oficina        *string `bun:"oficina" json:"oficina"`
	Oculto         *bool   `bun:"oculto" json:"oculto"`
}

func (a Alojamiento) PrestadorID() int64 { return a.ID }

// EstaOculto treats a NULL flag as visible.
func (a Alojamiento) EstaOculto() bool { return a.Oculto != nil && *a.Oculto }

type Inmobiliaria struct {
	bun.BaseModel `bun:"table:inmobiliarias,alias:inm"`

	ID           int64   `bun:"id,pk,autoincrement" json:"id"`
	Localidad    string  `bun:"localidad" json:"localidad"`
	Prestador    string  `bun:"prestador" json:"prestador"`
	Direccion    *string `bun:"direccion" json:"direccion"`
	TelefonoFijo *string `bun:"telefono_fijo" json:"telefono_fijo"`
	Whatsapp     *string `bun:"whatsapp" json:"whatsapp"`
	Oficina      *string `bun:"oficina" json:"oficina"`
	Oculto       *bool   `bun:"oculto" json:"oculto"`
}

func (i Inmobiliaria) PrestadorID() int64 { return i.ID }
func (i Inmobiliaria) EstaOculto() bool   { return i.Oculto != nil && *i.Oculto }

type Balneario struct {
	bun.BaseModel `bun:"table:balnearios,alias:bal"`

	ID           int64   `bun:"id,pk,autoincrement" json:"id"`
	Localidad    string  `bun:"localidad" json:"localidad"`
	Prestador    string  `bun:"prestador" json:"prestador"`
	Direccion    *string `bun:"direccion" json:"direccion"`
	TelefonoFijo *string `bun:"telefono_fijo" json:"telefono_fijo"`
	Whatsapp     *string `bun:"whatsapp" json:"whatsapp"`
	Oficina      *string `bun:"oficina" json:"oficina"`
	Oculto       *bool   `bun:"oculto" json:"oculto"`
}

func (b Balneario) PrestadorID() int64 { return b.ID }
func (b Balneario) EstaOculto() bool   { return b.Oculto != nil && *b.Oculto }
