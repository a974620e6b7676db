// Package verify реализует HTTP-обработчик проверки текущей сессии.
//
// Обработчик берёт токен из cookie, проверяет его через сервис аутентификации
// и возвращает редуцированного пользователя; сервис при этом перечитывает запись
// из базы, чтобы поля профиля были актуальными, а не взятыми из claims.
package verify

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/notes-keeper/internal/http/middlewarectx"
	"github.com/magabrotheeeer/notes-keeper/internal/http/response"
	"github.com/magabrotheeeer/notes-keeper/internal/lib/sl"
	"github.com/magabrotheeeer/notes-keeper/internal/models"
)

// Service описывает интерфейс проверки сессии.
type Service interface {
	Verify(ctx context.Context, token string) (*models.PublicUser, error)
}

// Handler обрабатывает HTTP-запросы на проверку сессии.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Проверка текущей сессии
// @Description Проверяет токен из cookie и возвращает актуального пользователя.
// @Tags Auth
// @Produce  json
// @Success 200 {object} response.Response "Сессия действительна"
// @Failure 401 {object} response.ErrorResponse "Токен отсутствует, подделан или просрочен"
// @Router /api/auth/verify [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.verify"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	cookie, err := r.Cookie(middlewarectx.SessionCookie)
	if err != nil || cookie.Value == "" {
		log.Error("no session cookie in request")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("access denied: no token found"))
		return
	}

	user, err := h.service.Verify(r.Context(), cookie.Value)
	if err != nil {
		log.Error("session verification failed", sl.Err(err))
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("invalid or expired token"))
		return
	}

	log.Info("session verified", slog.String("uid", user.UID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user": user,
	}))
}
