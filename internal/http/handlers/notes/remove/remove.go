// Package remove реализует HTTP-обработчик удаления одной заметки пользователя.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/notes-keeper/internal/http/middlewarectx"
	"github.com/magabrotheeeer/notes-keeper/internal/http/response"
	"github.com/magabrotheeeer/notes-keeper/internal/lib/sl"
	"github.com/magabrotheeeer/notes-keeper/internal/models"
	"github.com/magabrotheeeer/notes-keeper/internal/storage"
)

// Service описывает интерфейс бизнес-логики удаления заметки.
type Service interface {
	Remove(ctx context.Context, userUID string, noteID int) (*models.Note, error)
}

// Handler управляет HTTP-запросами на удаление заметки.
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
// @Summary Удалить заметку
// @Description Удаляет заметку текущего пользователя и возвращает удалённую запись.
// @Tags Notes
// @Produce  json
// @Param noteId path int true "Идентификатор заметки"
// @Success 200 {object} response.Response "Удалённая заметка"
// @Failure 400 {object} response.ErrorResponse "Некорректный id"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Заметка не найдена или принадлежит другому пользователю"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/notes/delete/{noteId} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.notes.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	noteIDStr := chi.URLParam(r, "noteId")
	noteID, err := strconv.Atoi(noteIDStr)
	if err != nil {
		log.Error("invalid note id format", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid note id"))
		return
	}

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	note, err := h.service.Remove(r.Context(), userUID, noteID)
	if err != nil {
		if errors.Is(err, storage.ErrNoteNotFound) {
			log.Error("note not found or unauthorized", slog.Int("id", noteID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("note not found or unauthorized"))
			return
		}
		log.Error("failed to delete note", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to delete note"))
		return
	}

	log.Info("success to delete note", slog.Int("id", note.ID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message":      "note deleted successfully",
		"deleted_note": note,
	}))
}
