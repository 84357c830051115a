package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"relevamiento-gesell/internal/apperrors"
	"relevamiento-gesell/internal/models"
	"relevamiento-gesell/internal/utils"

	"github.com/uptrace/bun"
)

// RelevamientoService owns the survey record stores for the three provider
// types, their launch configs and the date index. Records are keyed by
// (fecha, provider) and writes are full-overwrite upserts: the stored row
// always matches the last submitted form, last write wins.
type RelevamientoService struct {
	db *bun.DB
}

func NewRelevamientoService(db *bun.DB) *RelevamientoService {
	return &RelevamientoService{db: db}
}

// Columns overwritten when an upsert hits an existing (fecha, provider) row.
var (
	colsRelevAlojamiento = []string{
		"plazas_relevadas", "plazas_ocupadas_anterior", "plazas_ocupadas",
		"reservas", "disponibilidad_texto", "llamados", "observaciones",
		"oficina", "agente",
	}
	colsRelevInmobiliaria = []string{
		"ocupacion_dptos_pct", "ocupacion_casas_pct",
		"llamados", "observaciones", "oficina", "agente",
	}
	colsRelevBalneario = []string{
		"ocupacion_pct", "llamados", "observaciones", "oficina", "agente",
	}
)

func registrosPorFecha[R any](ctx context.Context, db bun.IDB, fecha string) ([]R, error) {
	out := make([]R, 0)
	if err := db.NewSelect().Model(&out).Where("fecha = ?", fecha).Scan(ctx); err != nil {
		return nil, apperrors.Storage("no se pudieron leer los relevamientos", err)
	}
	return out, nil
}

func indexarPorPrestador[R models.Registro](regs []R) map[int64]*R {
	byFK := make(map[int64]*R, len(regs))
	for i := range regs {
		byFK[regs[i].PrestadorRef()] = &regs[i]
	}
	return byFK
}

func upsertRegistro[R any](ctx context.Context, db bun.IDB, reg *R, conflicto string, cols []string) (*R, error) {
	q := db.NewInsert().Model(reg).On("CONFLICT (" + conflicto + ") DO UPDATE")
	for _, col := range cols {
		q = q.Set(col + " = EXCLUDED." + col)
	}
	if _, err := q.Returning("*").Exec(ctx); err != nil {
		return nil, apperrors.Storage("no se pudo guardar el relevamiento", err)
	}
	return reg, nil
}

// oficinaRegistrada looks up the office already stored for a (fecha,
// provider) key. Best effort: a read failure just means no fallback.
func oficinaRegistrada(ctx context.Context, db bun.IDB, registros any, fkCol, fecha string, id int64) *string {
	var of sql.NullString
	err := db.NewSelect().
		Model(registros).
		ColumnExpr("oficina").
		Where("fecha = ?", fecha).
		Where(fkCol+" = ?", id).
		Limit(1).
		Scan(ctx, &of)
	if err != nil || !of.Valid {
		return nil
	}
	return &of.String
}

// resolverOficina picks the office to stamp on a record: caller-supplied
// first, then the office already on the record, then the provider's.
func resolverOficina(supplied, previa, prestador *string) *string {
	if supplied != nil {
		return supplied
	}
	if previa != nil {
		return previa
	}
	return prestador
}

func agentePtr(nombre string) *string {
	nombre = strings.TrimSpace(nombre)
	if nombre == "" {
		return nil
	}
	return &nombre
}

func (s *RelevamientoService) fechasDe(ctx context.Context, registros, configs any) ([]string, error) {
	deRegistros := make([]string, 0)
	err := s.db.NewSelect().
		Model(registros).
		ColumnExpr("DISTINCT fecha").
		OrderExpr("fecha DESC").
		Limit(maxFechas).
		Scan(ctx, &deRegistros)
	if err != nil {
		return nil, apperrors.Storage("no se pudieron leer las fechas", err)
	}

	deConfigs := make([]string, 0)
	if err := s.db.NewSelect().Model(configs).ColumnExpr("fecha").Scan(ctx, &deConfigs); err != nil {
		return nil, apperrors.Storage("no se pudieron leer las fechas", err)
	}
	return unionFechas(deRegistros, deConfigs), nil
}

// —— Alojamientos ——

type RelevamientoAlojamientoInput struct {
	Fecha                  string  `json:"fecha"`
	AlojamientoID          int64   `json:"alojamiento_id"`
	PlazasOcupadasAnterior *int    `json:"plazas_ocupadas_anterior"`
	PlazasOcupadas         *int    `json:"plazas_ocupadas"`
	Reservas               *int    `json:"reservas"`
	DisponibilidadTexto    *string `json:"disponibilidad_texto"`
	Llamados               *string `json:"llamados"`
	Observaciones          *string `json:"observaciones"`
	Oficina                *string `json:"oficina"`
}

type FilaAlojamiento struct {
	Alojamiento  models.Alojamiento              `json:"alojamiento"`
	Relevamiento *models.RelevamientoAlojamiento `json:"relevamiento"`
	OcupacionPct *int                            `json:"ocupacion_pct"`
}

type RelevamientosDia struct {
	Fecha  string                     `json:"fecha"`
	Config *models.RelevamientoConfig `json:"config"`
	List   []FilaAlojamiento          `json:"list"`
}

// AlojamientosPorFecha left-joins the lodging catalog against the records
// stored for one date: every visible lodging appears exactly once, with its
// record if one exists. The read never creates records.
func (s *RelevamientoService) AlojamientosPorFecha(ctx context.Context, fecha string, isAdmin bool) (*RelevamientosDia, error) {
	if err := utils.ValidarFecha(fecha); err != nil {
		return nil, err
	}
	cfg, err := s.ConfigAlojamientos(ctx, fecha)
	if err != nil {
		return nil, err
	}
	alojamientos, err := listVisible[models.Alojamiento](ctx, s.db, isAdmin)
	if err != nil {
		return nil, err
	}
	registros, err := registrosPorFecha[models.RelevamientoAlojamiento](ctx, s.db, fecha)
	if err != nil {
		return nil, err
	}

	byAloj := indexarPorPrestador(registros)
	list := make([]FilaAlojamiento, 0, len(alojamientos))
	for _, a := range alojamientos {
		fila := FilaAlojamiento{Alojamiento: a, Relevamiento: byAloj[a.ID]}
		if fila.Relevamiento != nil {
			fila.OcupacionPct = ocupacionPct(a.PlazasTotales, fila.Relevamiento.PlazasOcupadas)
		}
		list = append(list, fila)
	}
	return &RelevamientosDia{Fecha: fecha, Config: cfg, List: list}, nil
}

// CargarAlojamiento upserts one lodging record. The occupied count is checked
// against the lodging's live capacity before anything is written; the
// capacity itself is snapshotted onto the record. The agente field always
// comes from the authenticated caller, never from the payload.
func (s *RelevamientoService) CargarAlojamiento(ctx context.Context, in RelevamientoAlojamientoInput, agente string) (*models.RelevamientoAlojamiento, error) {
	if in.Fecha == "" || in.AlojamientoID == 0 {
		return nil, apperrors.Validation("fecha y alojamiento_id requeridos")
	}
	if err := utils.ValidarFecha(in.Fecha); err != nil {
		return nil, err
	}

	aloj := new(models.Alojamiento)
	err := s.db.NewSelect().
		Model(aloj).
		Column("plazas_totales", "oficina").
		Where("id = ?", in.AlojamientoID).
		Scan(ctx)
	if err != nil {
		return nil, notFoundOrStorage(err, "alojamiento no encontrado")
	}

	if in.PlazasOcupadas != nil && aloj.PlazasTotales != nil && *in.PlazasOcupadas > *aloj.PlazasTotales {
		return nil, apperrors.Validation("las plazas ocupadas no pueden superar las plazas totales")
	}

	previa := oficinaRegistrada(ctx, s.db,
		(*models.RelevamientoAlojamiento)(nil), "alojamiento_id", in.Fecha, in.AlojamientoID)

	reg := &models.RelevamientoAlojamiento{
		Fecha:                  in.Fecha,
		AlojamientoID:          in.AlojamientoID,
		PlazasRelevadas:        aloj.PlazasTotales,
		PlazasOcupadasAnterior: in.PlazasOcupadasAnterior,
		PlazasOcupadas:         in.PlazasOcupadas,
		Reservas:               clampPct(in.Reservas),
		DisponibilidadTexto:    in.DisponibilidadTexto,
		Llamados:               in.Llamados,
		Observaciones:          in.Observaciones,
		Oficina:                resolverOficina(in.Oficina, previa, aloj.Oficina),
		Agente:                 agentePtr(agente),
	}
	return upsertRegistro(ctx, s.db, reg, "fecha, alojamiento_id", colsRelevAlojamiento)
}

type CopiaResultado struct {
	Copiado string `json:"copiado"`
	Fecha   string `json:"fecha"`
	Filas   int    `json:"filas"`
}

// CopiarUltimo carries the most recent survey day forward onto fecha,
// optionally for a single lodging. Rows are copied verbatim, capacity
// snapshot included, except that agente is re-stamped with the caller.
func (s *RelevamientoService) CopiarUltimo(ctx context.Context, fecha string, alojamientoID *int64, agente string) (*CopiaResultado, error) {
	if err := utils.ValidarFecha(fecha); err != nil {
		return nil, err
	}

	var ultima string
	err := s.db.NewSelect().
		Model((*models.RelevamientoAlojamiento)(nil)).
		ColumnExpr("fecha").
		OrderExpr("fecha DESC").
		Limit(1).
		Scan(ctx, &ultima)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.Validation("no hay relevamientos previos para copiar")
	}
	if err != nil {
		return nil, apperrors.Storage("no se pudo determinar la última fecha", err)
	}

	filas := make([]models.RelevamientoAlojamiento, 0)
	q := s.db.NewSelect().Model(&filas).Where("fecha = ?", ultima)
	if alojamientoID != nil {
		q = q.Where("alojamiento_id = ?", *alojamientoID)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, apperrors.Storage("no se pudieron leer los relevamientos", err)
	}
	if len(filas) == 0 {
		return nil, apperrors.Validation("no hay dato previo para este alojamiento")
	}

	ag := agentePtr(agente)
	for i := range filas {
		copia := filas[i]
		copia.ID = 0
		copia.Fecha = fecha
		copia.Agente = ag
		if _, err := upsertRegistro(ctx, s.db, &copia, "fecha, alojamiento_id", colsRelevAlojamiento); err != nil {
			return nil, err
		}
	}
	return &CopiaResultado{Copiado: ultima, Fecha: fecha, Filas: len(filas)}, nil
}

func (s *RelevamientoService) FechasAlojamientos(ctx context.Context) ([]string, error) {
	return s.fechasDe(ctx,
		(*models.RelevamientoAlojamiento)(nil), (*models.RelevamientoConfig)(nil))
}

func (s *RelevamientoService) ConfigAlojamientos(ctx context.Context, fecha string) (*models.RelevamientoConfig, error) {
	row := new(models.RelevamientoConfig)
	err := s.db.NewSelect().Model(row).Where("fecha = ?", fecha).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DefaultRelevamientoConfig(fecha), nil
	}
	if err != nil {
		return nil, apperrors.Storage("no se pudo leer la configuración", err)
	}
	return row, nil
}

func (s *RelevamientoService) ListConfigsAlojamientos(ctx context.Context) ([]models.RelevamientoConfig, error) {
	rows := make([]models.RelevamientoConfig, 0)
	err := s.db.NewSelect().Model(&rows).Order("fecha DESC").Scan(ctx)
	if err != nil {
		return nil, apperrors.Storage("no se pudo leer la configuración", err)
	}
	return rows, nil
}

// LanzarAlojamientos opens a survey day, choosing which form fields the
// agents will fill. Re-launching an open day just replaces the toggles.
func (s *RelevamientoService) LanzarAlojamientos(ctx context.Context, fecha string, consultarOcupacion, consultarReservas bool) (*models.RelevamientoConfig, error) {
	if err := utils.ValidarFecha(fecha); err != nil {
		return nil, err
	}
	row := &models.RelevamientoConfig{
		Fecha:              fecha,
		ConsultarOcupacion: consultarOcupacion,
		ConsultarReservas:  consultarReservas,
	}
	q := s.db.NewInsert().Model(row).
		On("CONFLICT (fecha) DO UPDATE").
		Set("consultar_ocupacion = EXCLUDED.consultar_ocupacion").
		Set("consultar_reservas = EXCLUDED.consultar_reservas")
	if _, err := q.Returning("*").Exec(ctx); err != nil {
		return nil, apperrors.Storage("no se pudo lanzar el relevamiento", err)
	}
	return row, nil
}

// —— Inmobiliarias ——

type RelevamientoInmobiliariaInput struct {
	Fecha             string  `json:"fecha"`
	InmobiliariaID    int64   `json:"inmobiliaria_id"`
	OcupacionDptosPct *int    `json:"ocupacion_dptos_pct"`
	OcupacionCasasPct *int    `json:"ocupacion_casas_pct"`
	Llamados          *string `json:"llamados"`
	Observaciones     *string `json:"observaciones"`
	Oficina           *string `json:"oficina"`
}

type FilaInmobiliaria struct {
	Inmobiliaria models.Inmobiliaria              `json:"inmobiliaria"`
	Relevamiento *models.RelevamientoInmobiliaria `json:"relevamiento"`
}

type InmobiliariasDia struct {
	Fecha string             `json:"fecha"`
	List  []FilaInmobiliaria `json:"list"`
}

func (s *RelevamientoService) InmobiliariasPorFecha(ctx context.Context, fecha string, isAdmin bool) (*InmobiliariasDia, error) {
	if err := utils.ValidarFecha(fecha); err != nil {
		return nil, err
	}
	inmobiliarias, err := listVisible[models.Inmobiliaria](ctx, s.db, isAdmin)
	if err != nil {
		return nil, err
	}
	registros, err := registrosPorFecha[models.RelevamientoInmobiliaria](ctx, s.db, fecha)
	if err != nil {
		return nil, err
	}

	byInmob := indexarPorPrestador(registros)
	list := make([]FilaInmobiliaria, 0, len(inmobiliarias))
	for _, i := range inmobiliarias {
		list = append(list, FilaInmobiliaria{Inmobiliaria: i, Relevamiento: byInmob[i.ID]})
	}
	return &InmobiliariasDia{Fecha: fecha, List: list}, nil
}

func (s *RelevamientoService) CargarInmobiliaria(ctx context.Context, in RelevamientoInmobiliariaInput, agente string) (*models.RelevamientoInmobiliaria, error) {
	if in.Fecha == "" || in.InmobiliariaID == 0 {
		return nil, apperrors.Validation("fecha e inmobiliaria_id requeridos")
	}
	if err := utils.ValidarFecha(in.Fecha); err != nil {
		return nil, err
	}

	inm := new(models.Inmobiliaria)
	err := s.db.NewSelect().
		Model(inm).
		Column("oficina").
		Where("id = ?", in.InmobiliariaID).
		Scan(ctx)
	if err != nil {
		return nil, notFoundOrStorage(err, "inmobiliaria no encontrada")
	}

	previa := oficinaRegistrada(ctx, s.db,
		(*models.RelevamientoInmobiliaria)(nil), "inmobiliaria_id", in.Fecha, in.InmobiliariaID)

	reg := &models.RelevamientoInmobiliaria{
		Fecha:             in.Fecha,
		InmobiliariaID:    in.InmobiliariaID,
		OcupacionDptosPct: clampPct(in.OcupacionDptosPct),
		OcupacionCasasPct: clampPct(in.OcupacionCasasPct),
		Llamados:          in.Llamados,
		Observaciones:     in.Observaciones,
		Oficina:           resolverOficina(in.Oficina, previa, inm.Oficina),
		Agente:            agentePtr(agente),
	}
	return upsertRegistro(ctx, s.db, reg, "fecha, inmobiliaria_id", colsRelevInmobiliaria)
}

func (s *RelevamientoService) FechasInmobiliarias(ctx context.Context) ([]string, error) {
	return s.fechasDe(ctx,
		(*models.RelevamientoInmobiliaria)(nil), (*models.InmobiliariasConfig)(nil))
}

// ConfigInmobiliarias reports whether fecha was launched. nil means not
// launched: the real-estate survey has no per-day toggles, only existence.
func (s *RelevamientoService) ConfigInmobiliarias(ctx context.Context, fecha string) (*models.InmobiliariasConfig, error) {
	row := new(models.InmobiliariasConfig)
	err := s.db.NewSelect().Model(row).Where("fecha = ?", fecha).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Storage("no se pudo leer la configuración", err)
	}
	return row, nil
}

func (s *RelevamientoService) ListConfigsInmobiliarias(ctx context.Context) ([]models.InmobiliariasConfig, error) {
	rows := make([]models.InmobiliariasConfig, 0)
	err := s.db.NewSelect().Model(&rows).Order("fecha DESC").Scan(ctx)
	if err != nil {
		return nil, apperrors.Storage("no se pudo leer la configuración", err)
	}
	return rows, nil
}

func (s *RelevamientoService) LanzarInmobiliarias(ctx context.Context, fecha string) (*models.InmobiliariasConfig, error) {
	if err := utils.ValidarFecha(fecha); err != nil {
		return nil, err
	}
	row := &models.InmobiliariasConfig{Fecha: fecha}
	q := s.db.NewInsert().Model(row).
		On("CONFLICT (fecha) DO UPDATE").
		Set("fecha = EXCLUDED.fecha")
	if _, err := q.Returning("*").Exec(ctx); err != nil {
		return nil, apperrors.Storage("no se pudo lanzar el relevamiento", err)
	}
	return row, nil
}

// —— Balnearios ——

type RelevamientoBalnearioInput struct {
	Fecha         string  `json:"fecha"`
	BalnearioID   int64   `json:"balneario_id"`
	OcupacionPct  *int    `json:"ocupacion_pct"`
	Llamados      *string `json:"llamados"`
	Observaciones *string `json:"observaciones"`
	Oficina       *string `json:"oficina"`
}

type FilaBalneario struct {
	Balneario    models.Balneario              `json:"balneario"`
	Relevamiento *models.RelevamientoBalneario `json:"relevamiento"`
}

type BalneariosDia struct {
	Fecha string          `json:"fecha"`
	List  []FilaBalneario `json:"list"`
}

func (s *RelevamientoService) BalneariosPorFecha(ctx context.Context, fecha string, isAdmin bool) (*BalneariosDia, error) {
	if err := utils.ValidarFecha(fecha); err != nil {
		return nil, err
	}
	balnearios, err := listVisible[models.Balneario](ctx, s.db, isAdmin)
	if err != nil {
		return nil, err
	}
	registros, err := registrosPorFecha[models.RelevamientoBalneario](ctx, s.db, fecha)
	if err != nil {
		return nil, err
	}

	byBaln := indexarPorPrestador(registros)
	list := make([]FilaBalneario, 0, len(balnearios))
	for _, b := range balnearios {
		list = append(list, FilaBalneario{Balneario: b, Relevamiento: byBaln[b.ID]})
	}
	return &BalneariosDia{Fecha: fecha, List: list}, nil
}

func (s *RelevamientoService) CargarBalneario(ctx context.Context, in RelevamientoBalnearioInput, agente string) (*models.RelevamientoBalneario, error) {
	if in.Fecha == "" || in.BalnearioID == 0 {
		return nil, apperrors.Validation("fecha y balneario_id requeridos")
	}
	if err := utils.ValidarFecha(in.Fecha); err != nil {
		return nil, err
	}

	baln := new(models.Balneario)
	err := s.db.NewSelect().
		Model(baln).
		Column("oficina").
		Where("id = ?", in.BalnearioID).
		Scan(ctx)
	if err != nil {
		return nil, notFoundOrStorage(err, "balneario no encontrado")
	}

	previa := oficinaRegistrada(ctx, s.db,
		(*models.RelevamientoBalneario)(nil), "balneario_id", in.Fecha, in.BalnearioID)

	reg := &models.RelevamientoBalneario{
		Fecha:         in.Fecha,
		BalnearioID:   in.BalnearioID,
		OcupacionPct:  clampPct(in.OcupacionPct),
		Llamados:      in.Llamados,
		Observaciones: in.Observaciones,
		Oficina:       resolverOficina(in.Oficina, previa, baln.Oficina),
		Agente:        agentePtr(agente),
	}
	return upsertRegistro(ctx, s.db, reg, "fecha, balneario_id", colsRelevBalneario)
}

func (s *RelevamientoService) FechasBalnearios(ctx context.Context) ([]string, error) {
	return s.fechasDe(ctx,
		(*models.RelevamientoBalneario)(nil), (*models.BalneariosConfig)(nil))
}

func (s *RelevamientoService) ConfigBalnearios(ctx context.Context, fecha string) (*models.BalneariosConfig, error) {
	row := new(models.BalneariosConfig)
	err := s.db.NewSelect().Model(row).Where("fecha = ?", fecha).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Storage("no se pudo leer la configuración", err)
	}
	return row, nil
}

func (s *RelevamientoService) ListConfigsBalnearios(ctx context.Context) ([]models.BalneariosConfig, error) {
	rows := make([]models.BalneariosConfig, 0)
	err := s.db.NewSelect().Model(&rows).Order("fecha DESC").Scan(ctx)
	if err != nil {
		return nil, apperrors.Storage("no se pudo leer la configuración", err)
	}
	return rows, nil
}

func (s *RelevamientoService) LanzarBalnearios(ctx context.Context, fecha string) (*models.BalneariosConfig, error) {
	if err := utils.ValidarFecha(fecha); err != nil {
		return nil, err
	}
	row := &models.BalneariosConfig{Fecha: fecha}
	q := s.db.NewInsert().Model(row).
		On("CONFLICT (fecha) DO UPDATE").
		Set("fecha = EXCLUDED.fecha")
	if _, err := q.Returning("*").Exec(ctx); err != nil {
		return nil, apperrors.Storage("no se pudo lanzar el relevamiento", err)
	}
	return row, nil
}
