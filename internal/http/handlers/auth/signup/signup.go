// Package signup реализует HTTP-обработчик регистрации пользователя.
//
// Запрос приходит как multipart/form-data с полями username, email, password и
// необязательным файлом profile. Файл сначала сохраняется во временный локальный
// файл, затем сервис загружает его во внешнее хранилище; временный файл удаляется
// через defer на любом исходе — успех, дубликат email или ошибка базы.
package signup

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/notes-keeper/internal/http/response"
	"github.com/magabrotheeeer/notes-keeper/internal/lib/sl"
	"github.com/magabrotheeeer/notes-keeper/internal/models"
	"github.com/magabrotheeeer/notes-keeper/internal/storage"
)

// Лимит размера multipart-формы при регистрации.
const maxUploadBytes = 10 << 20

// Request — входные данные для регистрации.
type Request struct {
	Username string `validate:"required,min=3,max=50"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, username, email, rawPassword, imagePath, contentType string) (*models.PublicUser, error)
}

// Handler обрабатывает HTTP-запросы на регистрацию.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Сервис бизнес-логики регистрации
	validate *validator.Validate // Валидатор структуры входящих данных
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
// @Summary Регистрация пользователя
// @Description Создает учетную запись по username, email и паролю, опционально с картинкой профиля.
// @Tags Auth
// @Accept  mpfd
// @Produce  json
// @Param username formData string true "Имя пользователя"
// @Param email formData string true "Email"
// @Param password formData string true "Пароль"
// @Param profile formData file false "Картинка профиля"
// @Success 201 {object} response.Response "Учетная запись создана"
// @Failure 404 {object} response.ErrorResponse "Email уже занят"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/auth/signup [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.signup"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		log.Error("failed to parse multipart form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	req := Request{
		Username: r.FormValue("username"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}
	log.Info("request form decoded", slog.String("email", req.Email))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	imagePath, contentType, err := h.stageProfileImage(r)
	if err != nil {
		log.Error("failed to stage profile image", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to process profile image"))
		return
	}
	if imagePath != "" {
		defer func() {
			_ = os.Remove(imagePath)
		}()
	}

	user, err := h.service.Register(r.Context(), req.Username, req.Email, req.Password, imagePath, contentType)
	if err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			log.Error("email already taken", slog.String("email", req.Email))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("email already exists"))
			return
		}
		log.Error("registration failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to register user"))
		return
	}

	log.Info("user registered", slog.String("uid", user.UID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "account created successfully",
		"user":    user,
	}))
}

// stageProfileImage сохраняет загруженный файл во временный локальный файл.
// Возвращает пустой путь, если файл не был приложен.
func (h *Handler) stageProfileImage(r *http.Request) (string, string, error) {
	file, header, err := r.FormFile("profile")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", "", nil
		}
		return "", "", err
	}
	defer func() {
		_ = file.Close()
	}()

	tmp, err := os.CreateTemp("", "profile_*"+filepath.Ext(header.Filename))
	if err != nil {
		return "", "", err
	}
	if _, err = io.Copy(tmp, file); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", "", err
	}
	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", "", err
	}
	return tmp.Name(), header.Header.Get("Content-Type"), nil
}
