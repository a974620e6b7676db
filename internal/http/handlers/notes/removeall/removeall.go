// Package removeall реализует HTTP-обработчик массового удаления заметок пользователя.
package removeall

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/notes-keeper/internal/http/middlewarectx"
	"github.com/magabrotheeeer/notes-keeper/internal/http/response"
	"github.com/magabrotheeeer/notes-keeper/internal/lib/sl"
)

// Service описывает интерфейс бизнес-логики массового удаления заметок.
type Service interface {
	RemoveAll(ctx context.Context, userUID string) (int, error)
}

// Handler управляет HTTP-запросами на удаление всех заметок пользователя.
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
// @Summary Удалить все заметки
// @Description Удаляет все заметки текущего пользователя; ноль удалённых — тоже успех.
// @Tags Notes
// @Produce  json
// @Success 200 {object} response.Response "Сводка удаления"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/notes/deleteAll [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.notes.removeall"

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

	count, err := h.service.RemoveAll(r.Context(), userUID)
	if err != nil {
		log.Error("failed to delete all notes", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to delete notes"))
		return
	}

	log.Info("success to delete all notes", slog.Int("deleted_count", count))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message":       "all notes deleted successfully",
		"deleted_count": count,
	}))
}
