package routes

import (
	"net/http"

	"relevamiento-gesell/internal/auth"
	"relevamiento-gesell/internal/config"
	"relevamiento-gesell/internal/handlers"
	"relevamiento-gesell/internal/logger"
	mdlwr "relevamiento-gesell/internal/middleware"
	"relevamiento-gesell/internal/models"
	"relevamiento-gesell/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

func NewRouter(db *bun.DB, cfg *config.Config, logr *logger.Logger) http.Handler {
	r := chi.NewRouter()

	// Basic middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	// CORS middleware with config
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	jwtMgr, err := auth.NewJWTManager(cfg.JWTPrivateKeyPath, cfg.JWTPublicKeyPath, "relevamiento-gesell")
	if err != nil {
		logr.Fatal("failed to init jwt manager", zap.Error(err))
	}

	permSvc := services.NewPermissionService(db)
	authSvc := services.NewAuthService(db, jwtMgr, permSvc, cfg.TokenTTL)
	prestadorSvc := services.NewPrestadorService(db, cfg)
	relevSvc := services.NewRelevamientoService(db)
	userSvc := services.NewUserService(db)

	authMW := mdlwr.NewAuthMiddleware(jwtMgr, permSvc, logr.Logger)

	authHandler := handlers.NewAuthHandler(authSvc, logr.Logger)
	alojHandler := handlers.NewAlojamientoHandler(prestadorSvc, logr.Logger)
	inmobHandler := handlers.NewInmobiliariaHandler(prestadorSvc, logr.Logger)
	balnHandler := handlers.NewBalnearioHandler(prestadorSvc, logr.Logger)
	relevHandler := handlers.NewRelevamientoHandler(relevSvc, logr.Logger)
	adminHandler := handlers.NewAdminHandler(permSvc, userSvc, logr.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"ok":true}`))
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(authMW.JWTAuth)
				r.Get("/me", authHandler.Me)
			})
		})

		// everything below requires a valid token
		r.Group(func(r chi.Router) {
			r.Use(authMW.JWTAuth)

			r.Route("/alojamientos", func(r chi.Router) {
				r.With(authMW.RequirePermission(models.PermViewAlojamientos)).Get("/", alojHandler.List)
				r.Group(func(r chi.Router) {
					r.Use(authMW.RequirePermission(models.PermEditAlojamientos))
					r.Post("/", alojHandler.Create)
					r.Put("/{id}", alojHandler.Update)
					r.Delete("/{id}", alojHandler.Delete)
				})
			})

			r.Route("/inmobiliarias", func(r chi.Router) {
				r.With(authMW.RequirePermission(models.PermViewInmobiliarias)).Get("/", inmobHandler.List)
				r.Group(func(r chi.Router) {
					r.Use(authMW.RequirePermission(models.PermEditInmobiliarias))
					r.Post("/", inmobHandler.Create)
					r.Put("/{id}", inmobHandler.Update)
					r.Delete("/{id}", inmobHandler.Delete)
				})
			})

			r.Route("/balnearios", func(r chi.Router) {
				r.With(authMW.RequirePermission(models.PermViewBalnearios)).Get("/", balnHandler.List)
				r.Group(func(r chi.Router) {
					r.Use(authMW.RequirePermission(models.PermEditBalnearios))
					r.Post("/", balnHandler.Create)
					r.Put("/{id}", balnHandler.Update)
					r.Delete("/{id}", balnHandler.Delete)
				})
			})

			r.Route("/relevamientos", func(r chi.Router) {
				r.With(authMW.RequirePermission(models.PermViewRelevamiento)).Get("/", relevHandler.GetAlojamientos)
				r.With(authMW.RequirePermission(models.PermViewRelevamiento)).Get("/fechas", relevHandler.FechasAlojamientos)
				r.With(authMW.RequirePermission(models.PermEditRelevamiento)).Post("/", relevHandler.UpsertAlojamiento)
				r.With(authMW.RequirePermission(models.PermEditRelevamiento)).Post("/copiar-ultimo", relevHandler.CopiarUltimo)
			})
			r.Route("/relevamiento-config", func(r chi.Router) {
				r.With(authMW.RequirePermission(models.PermViewRelevamiento)).Get("/", relevHandler.GetConfigAlojamientos)
				r.With(authMW.RequirePermission(models.PermLaunchRelevamiento)).Post("/", relevHandler.LanzarAlojamientos)
			})

			r.Route("/relevamiento-inmobiliarias", func(r chi.Router) {
				r.With(authMW.RequirePermission(models.PermViewInmobiliarias)).Get("/", relevHandler.GetInmobiliarias)
				r.With(authMW.RequirePermission(models.PermViewInmobiliarias)).Get("/fechas", relevHandler.FechasInmobiliarias)
				r.With(authMW.RequirePermission(models.PermEditInmobiliarias)).Post("/", relevHandler.UpsertInmobiliaria)
			})
			r.Route("/inmobiliarias-config", func(r chi.Router) {
				r.With(authMW.RequirePermission(models.PermViewInmobiliarias)).Get("/", relevHandler.GetConfigInmobiliarias)
				r.With(authMW.RequirePermission(models.PermLaunchInmobiliarias)).Post("/", relevHandler.LanzarInmobiliarias)
			})

			r.Route("/relevamiento-balnearios", func(r chi.Router) {
				r.With(authMW.RequirePermission(models.PermViewBalnearios)).Get("/", relevHandler.GetBalnearios)
				r.With(authMW.RequirePermission(models.PermViewBalnearios)).Get("/fechas", relevHandler.FechasBalnearios)
				r.With(authMW.RequirePermission(models.PermEditBalnearios)).Post("/", relevHandler.UpsertBalneario)
			})
			r.Route("/balnearios-config", func(r chi.Router) {
				r.With(authMW.RequirePermission(models.PermViewBalnearios)).Get("/", relevHandler.GetConfigBalnearios)
				r.With(authMW.RequirePermission(models.PermLaunchBalnearios)).Post("/", relevHandler.LanzarBalnearios)
			})

			// admin area
			r.Group(func(r chi.Router) {
				r.Use(authMW.RequirePermission(models.PermManageUsers))
				r.Get("/permisos", adminHandler.ListPermisos)
				r.Get("/roles/{rol}/permisos", adminHandler.GetRolePermisos)
				r.Put("/roles/{rol}/permisos", adminHandler.SetRolePermisos)
				r.Get("/users", adminHandler.ListUsers)
				r.Put("/users/{id}", adminHandler.UpdateUser)
			})
		})
	})

	return r
}
