// Package services содержит бизнес-логику для управления заметками и их кешированием.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/notes-keeper/internal/models"
)

// NotesRepository определяет методы для работы с заметками в хранилище.
// Каждый метод чтения/изменения принимает UID владельца: фильтрация по владельцу
// выполняется самим запросом к базе, а не проверкой после выборки.
type NotesRepository interface {
	// CreateNote добавляет новую заметку и возвращает её запись целиком.
	CreateNote(ctx context.Context, note models.Note) (*models.Note, error)
	// ListNotes возвращает заметки пользователя, сначала самые новые.
	ListNotes(ctx context.Context, userUID string) ([]*models.Note, error)
	// UpdateNote обновляет заметку по паре (id, владелец).
	UpdateNote(ctx context.Context, userUID string, noteID int, note models.Note) (*models.Note, error)
	// RemoveNote удаляет заметку по паре (id, владелец) и возвращает удалённую запись.
	RemoveNote(ctx context.Context, userUID string, noteID int) (*models.Note, error)
	// RemoveAllNotes удаляет все заметки пользователя и возвращает число удалённых строк.
	RemoveAllNotes(ctx context.Context, userUID string) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// NotesService реализует бизнес-логику работы с заметками, включая кеширование списка.
type NotesService struct {
	repo  NotesRepository
	cache Cache
	log   *slog.Logger
}

// NewNotesService создает новый экземпляр NotesService.
func NewNotesService(repo NotesRepository, cache Cache, log *slog.Logger) *NotesService {
	return &NotesService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

func listCacheKey(userUID string) string {
	return fmt.Sprintf("notes:%s", userUID)
}

// Add создает новую заметку пользователя и инвалидирует кеш списка.
func (s *NotesService) Add(ctx context.Context, userUID string, req models.DummyNote) (*models.Note, error) {
	note := models.Note{
		UserUID:     userUID,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
	}

	created, err := s.repo.CreateNote(ctx, note)
	if err != nil {
		return nil, err
	}
	s.log.Info("created new note", slog.Int("id", created.ID))

	s.invalidateList(userUID)
	return created, nil
}

// List возвращает заметки пользователя, сначала самые новые, используя кеш или репозиторий.
func (s *NotesService) List(ctx context.Context, userUID string) ([]*models.Note, error) {
	var result []*models.Note
	cacheKey := listCacheKey(userUID)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read notes from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.ListNotes(ctx, userUID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache notes list", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// Update обновляет заметку по паре (id, владелец) и инвалидирует кеш списка.
func (s *NotesService) Update(ctx context.Context, userUID string, noteID int, req models.DummyNote) (*models.Note, error) {
	note := models.Note{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
	}
	updated, err := s.repo.UpdateNote(ctx, userUID, noteID, note)
	if err != nil {
		return nil, err
	}
	s.log.Info("updated note in storage", slog.Int("id", noteID))

	s.invalidateList(userUID)
	return updated, nil
}

// Remove удаляет заметку по паре (id, владелец) и инвалидирует кеш списка.
func (s *NotesService) Remove(ctx context.Context, userUID string, noteID int) (*models.Note, error) {
	deleted, err := s.repo.RemoveNote(ctx, userUID, noteID)
	if err != nil {
		return nil, err
	}
	s.log.Info("deleted note", slog.Int("id", noteID))

	s.invalidateList(userUID)
	return deleted, nil
}

// RemoveAll удаляет все заметки пользователя; ноль удалённых — тоже успех.
func (s *NotesService) RemoveAll(ctx context.Context, userUID string) (int, error) {
	count, err := s.repo.RemoveAllNotes(ctx, userUID)
	if err != nil {
		return 0, err
	}
	s.log.Info("deleted all notes", slog.Int("count", count))

	s.invalidateList(userUID)
	return count, nil
}

// invalidateList сбрасывает кеш списка заметок; ошибка кеша не влияет на исход операции.
func (s *NotesService) invalidateList(userUID string) {
	cacheKey := listCacheKey(userUID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate notes cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
}
