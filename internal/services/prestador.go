package services

import (
	"context"
	"strings"

	"relevamiento-gesell/internal/apperrors"
	"relevamiento-gesell/internal/config"
	"relevamiento-gesell/internal/models"
	"relevamiento-gesell/internal/utils"

	"github.com/uptrace/bun"
)

// PrestadorService owns the provider catalogs (alojamientos, inmobiliarias,
// balnearios). The three types share listing, visibility and cascade-delete
// behavior; only the lodging catalog carries category and capacity fields.
type PrestadorService struct {
	db  *bun.DB
	cfg *config.Config
}

func NewPrestadorService(db *bun.DB, cfg *config.Config) *PrestadorService {
	return &PrestadorService{db: db, cfg: cfg}
}

// listVisible lists a provider catalog ordered by name. Hidden rows are
// admin-only; a NULL flag counts as visible because legacy imports never set
// it.
func listVisible[P models.Prestador](ctx context.Context, db bun.IDB, isAdmin bool) ([]P, error) {
	out := make([]P, 0)
	q := db.NewSelect().Model(&out).Order("prestador ASC")
	if !isAdmin {
		q = q.Where("(oculto IS NULL OR oculto = FALSE)")
	}
	if err := q.Scan(ctx); err != nil {
		return nil, apperrors.Storage("no se pudo listar el padrón", err)
	}
	return out, nil
}

func (s *PrestadorService) borrarConRegistros(ctx context.Context, parent, registros any, fkCol string, id int64, notFoundMsg string) error {
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		// children first: a failure mid-cascade must never leave survey rows
		// pointing at a deleted provider
		if _, err := tx.NewDelete().
			Model(registros).
			Where(fkCol+" = ?", id).
			Exec(ctx); err != nil {
			return err
		}
		res, err := tx.NewDelete().Model(parent).Where("id = ?", id).Exec(ctx)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return apperrors.NotFound(notFoundMsg)
		}
		return nil
	})
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			return err
		}
		return apperrors.Storage("no se pudo eliminar el prestador", err)
	}
	return nil
}

func (s *PrestadorService) localidadODefault(localidad *string) string {
	if localidad != nil && strings.TrimSpace(*localidad) != "" {
		return strings.TrimSpace(*localidad)
	}
	return s.cfg.DefaultLocalidad
}

func validarPrestador(nombre *string) (string, error) {
	if nombre == nil || strings.TrimSpace(*nombre) == "" {
		return "", apperrors.Validation("prestador requerido")
	}
	return strings.TrimSpace(*nombre), nil
}

// —— Alojamientos ——

type AlojamientoInput struct {
	Localidad      *string `json:"localidad"`
	Categoria      *string `json:"categoria"`
	Prestador      *string `json:"prestador"`
	Web            *string `json:"web"`
	Funcionamiento *string `json:"funcionamiento"`
	Observaciones  *string `json:"observaciones"`
	Direccion      *string `json:"direccion"`
	TelefonoFijo   *string `json:"telefono_fijo"`
	Whatsapp       *string `json:"whatsapp"`
	PaginaWeb      *string `json:"pagina_web"`
	PlazasTotales  *int    `json:"plazas_totales"`
	Oficina        *string `json:"oficina"`
	Oculto         *bool   `json:"oculto"`
}

func (s *PrestadorService) ListAlojamientos(ctx context.Context, isAdmin bool) ([]models.Alojamiento, error) {
	return listVisible[models.Alojamiento](ctx, s.db, isAdmin)
}

func (s *PrestadorService) CreateAlojamiento(ctx context.Context, in AlojamientoInput) (*models.Alojamiento, error) {
	prestador, err := validarPrestador(in.Prestador)
	if err != nil {
		return nil, err
	}

	categoria := utils.NormalizeCategoria(deref(in.Categoria))
	row := &models.Alojamiento{
		Localidad:      s.localidadODefault(in.Localidad),
		Categoria:      &categoria,
		Prestador:      prestador,
		Web:            in.Web,
		Funcionamiento: in.Funcionamiento,
		Observaciones:  in.Observaciones,
		Direccion:      in.Direccion,
		TelefonoFijo:   in.TelefonoFijo,
		Whatsapp:       in.Whatsapp,
		PaginaWeb:      in.PaginaWeb,
		PlazasTotales:  in.PlazasTotales,
		Oficina:        in.Oficina,
	}
	if _, err := s.db.NewInsert().Model(row).Returning("*").Exec(ctx); err != nil {
		return nil, apperrors.Storage("no se pudo crear el alojamiento", err)
	}
	return row, nil
}

// UpdateAlojamiento replaces the editable fields with the supplied payload.
// Identity fields (localidad, categoria, prestador) keep their stored value
// when the payload omits them; only an admin can flip oculto.
func (s *PrestadorService) UpdateAlojamiento(ctx context.Context, id int64, in AlojamientoInput, isAdmin bool) (*models.Alojamiento, error) {
	existing := new(models.Alojamiento)
	if err := s.db.NewSelect().Model(existing).Where("id = ?", id).Scan(ctx); err != nil {
		return nil, notFoundOrStorage(err, "alojamiento no encontrado")
	}

	row := &models.Alojamiento{
		ID:             id,
		Localidad:      existing.Localidad,
		Categoria:      existing.Categoria,
		Prestador:      existing.Prestador,
		Web:            in.Web,
		Funcionamiento: in.Funcionamiento,
		Observaciones:  in.Observaciones,
		Direccion:      in.Direccion,
		TelefonoFijo:   in.TelefonoFijo,
		Whatsapp:       in.Whatsapp,
		PaginaWeb:      in.PaginaWeb,
		PlazasTotales:  in.PlazasTotales,
		Oficina:        in.Oficina,
		Oculto:         existing.Oculto,
	}
	if in.Localidad != nil {
		row.Localidad = *in.Localidad
	}
	if in.Categoria != nil {
		categoria := utils.NormalizeCategoria(*in.Categoria)
		row.Categoria = &categoria
	}
	if in.Prestador != nil && strings.TrimSpace(*in.Prestador) != "" {
		row.Prestador = strings.TrimSpace(*in.Prestador)
	}
	if isAdmin && in.Oculto != nil {
		row.Oculto = in.Oculto
	}

	if _, err := s.db.NewUpdate().Model(row).WherePK().Returning("*").Exec(ctx); err != nil {
		return nil, apperrors.Storage("no se pudo actualizar el alojamiento", err)
	}
	return row, nil
}

func (s *PrestadorService) DeleteAlojamiento(ctx context.Context, id int64) error {
	return s.borrarConRegistros(ctx,
		(*models.Alojamiento)(nil), (*models.RelevamientoAlojamiento)(nil),
		"alojamiento_id", id, "alojamiento no encontrado")
}

// —— Inmobiliarias ——

type InmobiliariaInput struct {
	Localidad    *string `json:"localidad"`
	Prestador    *string `json:"prestador"`
	Direccion    *string `json:"direccion"`
	TelefonoFijo *string `json:"telefono_fijo"`
	Whatsapp     *string `json:"whatsapp"`
	Oficina      *string `json:"oficina"`
	Oculto       *bool   `json:"oculto"`
}

func (s *PrestadorService) ListInmobiliarias(ctx context.Context, isAdmin bool) ([]models.Inmobiliaria, error) {
	return listVisible[models.Inmobiliaria](ctx, s.db, isAdmin)
}

func (s *PrestadorService) CreateInmobiliaria(ctx context.Context, in InmobiliariaInput) (*models.Inmobiliaria, error) {
	prestador, err := validarPrestador(in.Prestador)
	if err != nil {
		return nil, err
	}
	row := &models.Inmobiliaria{
		Localidad:    s.localidadODefault(in.Localidad),
		Prestador:    prestador,
		Direccion:    in.Direccion,
		TelefonoFijo: in.TelefonoFijo,
		Whatsapp:     in.Whatsapp,
		Oficina:      in.Oficina,
	}
	if _, err := s.db.NewInsert().Model(row).Returning("*").Exec(ctx); err != nil {
		return nil, apperrors.Storage("no se pudo crear la inmobiliaria", err)
	}
	return row, nil
}

func (s *PrestadorService) UpdateInmobiliaria(ctx context.Context, id int64, in InmobiliariaInput, isAdmin bool) (*models.Inmobiliaria, error) {
	existing := new(models.Inmobiliaria)
	if err := s.db.NewSelect().Model(existing).Where("id = ?", id).Scan(ctx); err != nil {
		return nil, notFoundOrStorage(err, "inmobiliaria no encontrada")
	}

	row := &models.Inmobiliaria{
		ID:           id,
		Localidad:    existing.Localidad,
		Prestador:    existing.Prestador,
		Direccion:    in.Direccion,
		TelefonoFijo: in.TelefonoFijo,
		Whatsapp:     in.Whatsapp,
		Oficina:      in.Oficina,
		Oculto:       existing.Oculto,
	}
	if in.Localidad != nil {
		row.Localidad = *in.Localidad
	}
	if in.Prestador != nil && strings.TrimSpace(*in.Prestador) != "" {
		row.Prestador = strings.TrimSpace(*in.Prestador)
	}
	if isAdmin && in.Oculto != nil {
		row.Oculto = in.Oculto
	}

	if _, err := s.db.NewUpdate().Model(row).WherePK().Returning("*").Exec(ctx); err != nil {
		return nil, apperrors.Storage("no se pudo actualizar la inmobiliaria", err)
	}
	return row, nil
}

func (s *PrestadorService) DeleteInmobiliaria(ctx context.Context, id int64) error {
	return s.borrarConRegistros(ctx,
		(*models.Inmobiliaria)(nil), (*models.RelevamientoInmobiliaria)(nil),
		"inmobiliaria_id", id, "inmobiliaria no encontrada")
}

// —— Balnearios ——

type BalnearioInput struct {
	Localidad    *string `json:"localidad"`
	Prestador    *string `json:"prestador"`
	Direccion    *string `json:"direccion"`
	TelefonoFijo *string `json:"telefono_fijo"`
	Whatsapp     *string `json:"whatsapp"`
	Oficina      *string `json:"oficina"`
	Oculto       *bool   `json:"oculto"`
}

func (s *PrestadorService) ListBalnearios(ctx context.Context, isAdmin bool) ([]models.Balneario, error) {
	return listVisible[models.Balneario](ctx, s.db, isAdmin)
}

func (s *PrestadorService) CreateBalneario(ctx context.Context, in BalnearioInput) (*models.Balneario, error) {
	prestador, err := validarPrestador(in.Prestador)
	if err != nil {
		return nil, err
	}
	row := &models.Balneario{
		Localidad:    s.localidadODefault(in.Localidad),
		Prestador:    prestador,
		Direccion:    in.Direccion,
		TelefonoFijo: in.TelefonoFijo,
		Whatsapp:     in.Whatsapp,
		Oficina:      in.Oficina,
	}
	if _, err := s.db.NewInsert().Model(row).Returning("*").Exec(ctx); err != nil {
		return nil, apperrors.Storage("no se pudo crear el balneario", err)
	}
	return row, nil
}

func (s *PrestadorService) UpdateBalneario(ctx context.Context, id int64, in BalnearioInput, isAdmin bool) (*models.Balneario, error) {
	existing := new(models.Balneario)
	if err := s.db.NewSelect().Model(existing).Where("id = ?", id).Scan(ctx); err != nil {
		return nil, notFoundOrStorage(err, "balneario no encontrado")
	}

	row := &models.Balneario{
		ID:           id,
		Localidad:    existing.Localidad,
		Prestador:    existing.Prestador,
		Direccion:    in.Direccion,
		TelefonoFijo: in.TelefonoFijo,
		Whatsapp:     in.Whatsapp,
		Oficina:      in.Oficina,
		Oculto:       existing.Oculto,
	}
	if in.Localidad != nil {
		row.Localidad = *in.Localidad
	}
	if in.Prestador != nil && strings.TrimSpace(*in.Prestador) != "" {
		row.Prestador = strings.TrimSpace(*in.Prestador)
	}
	if isAdmin && in.Oculto != nil {
		row.Oculto = in.Oculto
	}

	if _, err := s.db.NewUpdate().Model(row).WherePK().Returning("*").Exec(ctx); err != nil {
		return nil, apperrors.Storage("no se pudo actualizar el balneario", err)
	}
	return row, nil
}

func (s *PrestadorService) DeleteBalneario(ctx context.Context, id int64) error {
	return s.borrarConRegistros(ctx,
		(*models.Balneario)(nil), (*models.RelevamientoBalneario)(nil),
		"balneario_id", id, "balneario no encontrado")
}
