// Package update реализует HTTP-обработчик изменения заметки пользователя.
//
// «Не найдена» и «чужая» заметка намеренно неразличимы: оба случая дают 404,
// чтобы не раскрывать существование чужих записей.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/notes-keeper/internal/http/middlewarectx"
	"github.com/magabrotheeeer/notes-keeper/internal/http/response"
	"github.com/magabrotheeeer/notes-keeper/internal/lib/sl"
	"github.com/magabrotheeeer/notes-keeper/internal/models"
	"github.com/magabrotheeeer/notes-keeper/internal/storage"
)

// Service описывает интерфейс бизнес-логики изменения заметки.
type Service interface {
	Update(ctx context.Context, userUID string, noteID int, req models.DummyNote) (*models.Note, error)
}

// Handler управляет HTTP-запросами на изменение заметок.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Изменить заметку
// @Description Обновляет заголовок и текст заметки текущего пользователя.
// @Tags Notes
// @Accept  json
// @Produce  json
// @Param noteId path int true "Идентификатор заметки"
// @Param request body models.DummyNote true "Новые данные заметки"
// @Success 200 {object} response.Response "Обновленная заметка"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или id"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Заметка не найдена или принадлежит другому пользователю"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/notes/update/{noteId} [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.notes.update"

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

	var req models.DummyNote
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	note, err := h.service.Update(r.Context(), userUID, noteID, req)
	if err != nil {
		if errors.Is(err, storage.ErrNoteNotFound) {
			log.Error("note not found or unauthorized", slog.Int("id", noteID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("note not found or unauthorized"))
			return
		}
		log.Error("failed to update note", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to update note"))
		return
	}

	log.Info("success to update note", slog.Int("id", note.ID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message":      "note updated successfully",
		"updated_note": note,
	}))
}
