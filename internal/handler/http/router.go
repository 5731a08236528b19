package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/absenin/absensi-backend-go/internal/handler/http/middleware"
	"github.com/absenin/absensi-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	Env string

	// UploadsDir serves stored attendance photos when local storage is in
	// use; empty disables the static route.
	UploadsDir string
}

func NewRouter(
	cfg RouterConfig,
	jwtService jwt.Service,
	authHandler AuthHandler,
	absensiHandler AbsensiHandler,
	koreksiHandler KoreksiHandler,
	cutiHandler CutiHandler,
	swapHandler SwapHandler,
	jadwalHandler JadwalHandler,
	masterHandler MasterHandler,
	notifHandler NotificationHandler,
	userHandler UserHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "absensi-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	if cfg.UploadsDir != "" {
		fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir)))
		r.Get("/uploads/*", fileServer.ServeHTTP)
	}

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)

			r.Route("/login", func(r chi.Router) {
				r.Post("/", authHandler.Login)
				r.Route("/oauth/google", func(r chi.Router) {
					r.Get("/", authHandler.LoginWithGoogle)
					r.Get("/callback", authHandler.OAuthCallbackGoogle)
				})
			})
		})

		r.Route("/notifications", func(r chi.Router) {
			// The stream authenticates via a short-lived query token; the
			// EventSource API cannot send an Authorization header.
			r.Get("/stream", notifHandler.Stream)

			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
				r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

				r.Get("/", notifHandler.List)
				r.Get("/sse-token", notifHandler.GetSSEToken)
				r.Put("/{id}/read", notifHandler.MarkAsRead)
				r.Put("/read-all", notifHandler.MarkAllAsRead)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireMasterData)
					r.Post("/announce", notifHandler.Announce)
				})
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/absensi", func(r chi.Router) {
				r.Post("/check-in", absensiHandler.CheckIn)
				r.Post("/check-out", absensiHandler.CheckOut)
				r.Get("/today-status", absensiHandler.TodayStatus)
				r.Get("/history", absensiHandler.History)
				r.Get("/monitoring", absensiHandler.Monitoring)
				r.Get("/analytics", absensiHandler.Analytics)
			})

			r.Route("/koreksi", func(r chi.Router) {
				r.Post("/", koreksiHandler.Create)
				r.Get("/", koreksiHandler.List)
				r.Post("/{id}/validate", koreksiHandler.Validate)
			})

			r.Route("/cuti", func(r chi.Router) {
				r.Post("/", cutiHandler.Apply)
				r.Get("/", cutiHandler.List)
				r.Post("/{id}/validate", cutiHandler.Validate)
			})

			r.Route("/shift-swap", func(r chi.Router) {
				r.Post("/", swapHandler.Create)
				r.Get("/", swapHandler.List)
				r.Put("/{id}/respond", swapHandler.Respond)
			})

			r.Route("/jadwal", func(r chi.Router) {
				r.Get("/", jadwalHandler.GetMonth)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireMasterData)
					r.Put("/", jadwalHandler.Upsert)
					r.Delete("/", jadwalHandler.Delete)
				})
			})

			r.Route("/shifts", func(r chi.Router) {
				r.Get("/", masterHandler.ListShifts)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireMasterData)
					r.Post("/", masterHandler.CreateShift)
					r.Put("/{id}", masterHandler.UpdateShift)
					r.Delete("/{id}", masterHandler.DeleteShift)
				})
			})

			r.Route("/outlets", func(r chi.Router) {
				r.Get("/", masterHandler.ListOutlets)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireMasterData)
					r.Post("/", masterHandler.CreateOutlet)
					r.Put("/{id}", masterHandler.UpdateOutlet)
					r.Delete("/{id}", masterHandler.DeleteOutlet)
				})
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/subordinates", userHandler.Subordinates)
			})
		})
	})
	return r
}
