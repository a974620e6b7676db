// Package list реализует HTTP-обработчик получения всех заметок пользователя.
package list

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

// Service описывает интерфейс бизнес-логики получения списка заметок.
type Service interface {
	List(ctx context.Context, userUID string) ([]*models.Note, error)
}

// Handler управляет HTTP-запросами на получение списка заметок.
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
// @Summary Список заметок
// @Description Возвращает все заметки текущего пользователя, сначала самые новые.
// @Tags Notes
// @Produce  json
// @Success 200 {object} response.Response "Список заметок"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/notes/get [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.notes.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	notes, err := h.service.List(r.Context(), userUID)
	if err != nil {
		log.Error("failed to list notes", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list notes"))
		return
	}
	if notes == nil {
		notes = []*models.Note{}
	}

	log.Info("list notes", slog.Int("count", len(notes)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"list_count": len(notes),
		"notes":      notes,
	}))
}
