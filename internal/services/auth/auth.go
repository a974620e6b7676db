// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/magabrotheeeer/notes-keeper/internal/lib/jwt"
	"github.com/magabrotheeeer/notes-keeper/internal/lib/password"
	"github.com/magabrotheeeer/notes-keeper/internal/models"
)

var (
	// ErrInvalidCredentials — пароль не подошёл к найденному пользователю.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken — токен сессии отсутствует, подделан или просрочен.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает запись с заполненным UID.
	CreateUser(ctx context.Context, user models.User) (*models.User, error)

	// GetUserByEmail возвращает пользователя по email или storage.ErrUserNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUser возвращает пользователя по UID или storage.ErrUserNotFound.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// ImageUploader загружает картинку профиля во внешнее хранилище и возвращает её URL.
type ImageUploader interface {
	Upload(ctx context.Context, localPath, contentType string) (string, error)
}

// AuthService отвечает за регистрацию, авторизацию и проверку сессии.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
	images   ImageUploader
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker, images ImageUploader) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
		images:   images,
	}
}

// Register создает нового пользователя с хэшированием пароля.
//
// imagePath — путь к временному файлу с картинкой профиля, пустая строка — без картинки.
// Удаление временного файла лежит на вызывающей стороне и происходит на любом исходе,
// включая дубликат email и ошибку базы.
func (s *AuthService) Register(ctx context.Context, username, email, rawPassword, imagePath, contentType string) (*models.PublicUser, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, err
	}

	var imageURL string
	if imagePath != "" {
		imageURL, err = s.images.Upload(ctx, imagePath, contentType)
		if err != nil {
			return nil, err
		}
	}

	user := models.User{
		Username:     strings.TrimSpace(username),
		Email:        strings.TrimSpace(email),
		PasswordHash: hashed,
		ImageURL:     imageURL,
	}
	created, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	return created.Public(), nil
}

// Login проверяет пароль пользователя и генерирует токен сессии.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (*models.PublicUser, string, error) {
	user, err := s.users.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(user.UID, user.Email)
	if err != nil {
		return nil, "", err
	}
	return user.Public(), token, nil
}

// Verify проверяет токен сессии и перечитывает запись пользователя,
// чтобы поля профиля отражали текущее состояние, а не данные из claims.
func (s *AuthService) Verify(ctx context.Context, token string) (*models.PublicUser, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	user, err := s.users.GetUser(ctx, claims.UserUID)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}

// SessionTTL возвращает срок жизни сессии; cookie выставляется ровно на это время.
func (s *AuthService) SessionTTL() time.Duration {
	return s.jwtMaker.TTL()
}
