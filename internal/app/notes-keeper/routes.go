// Package noteskeeper предоставляет маршруты для основного приложения.
package noteskeeper

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/notes-keeper/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/notes-keeper/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/notes-keeper/internal/http/handlers/auth/signup"
	"github.com/magabrotheeeer/notes-keeper/internal/http/handlers/auth/verify"
	"github.com/magabrotheeeer/notes-keeper/internal/http/handlers/notes/add"
	"github.com/magabrotheeeer/notes-keeper/internal/http/handlers/notes/list"
	"github.com/magabrotheeeer/notes-keeper/internal/http/handlers/notes/remove"
	"github.com/magabrotheeeer/notes-keeper/internal/http/handlers/notes/removeall"
	"github.com/magabrotheeeer/notes-keeper/internal/http/handlers/notes/update"
	"github.com/magabrotheeeer/notes-keeper/internal/http/middlewarectx"
	"github.com/magabrotheeeer/notes-keeper/internal/lib/jwt"
	authservice "github.com/magabrotheeeer/notes-keeper/internal/services/auth"
	notesservice "github.com/magabrotheeeer/notes-keeper/internal/services/notes"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, jwtMaker jwt.Maker, authService *authservice.AuthService, notesService *notesservice.NotesService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	// Открытые конечные точки
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/signup", signup.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)
		r.Post("/logout", logout.New(logger).ServeHTTP)
		r.Get("/verify", verify.New(logger, authService).ServeHTTP)
	})

	// Группа с проверкой cookie сессии
	r.Route("/api/notes", func(r chi.Router) {
		r.Use(middlewarectx.SessionMiddleware(jwtMaker, logger))
		r.Use(middlewarectx.RateLimitMiddleware(logger))
		r.Post("/add", add.New(logger, notesService).ServeHTTP)
		r.Get("/get", list.New(logger, notesService).ServeHTTP)
		r.Patch("/update/{noteId}", update.New(logger, notesService).ServeHTTP)
		r.Delete("/delete/{noteId}", remove.New(logger, notesService).ServeHTTP)
		r.Delete("/deleteAll", removeall.New(logger, notesService).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
