package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/notes-keeper/internal/models"
	"github.com/magabrotheeeer/notes-keeper/internal/storage"
)

// CreateNote вставляет новую заметку и возвращает запись целиком.
func (s *Storage) CreateNote(ctx context.Context, note models.Note) (*models.Note, error) {
	const op = "storage.CreateNote"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO notes (user_uid, title, description)
			  VALUES ($1, $2, $3)
			  RETURNING id, user_uid, title, description, created_at, updated_at`
	var created models.Note
	err := s.DB.QueryRowContext(ctx, query,
		note.UserUID, note.Title, note.Description,
	).Scan(&created.ID, &created.UserUID, &created.Title, &created.Description,
		&created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &created, nil
}

// ListNotes возвращает все заметки пользователя, сначала самые новые.
func (s *Storage) ListNotes(ctx context.Context, userUID string) ([]*models.Note, error) {
	const op = "storage.ListNotes"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, title, description, created_at, updated_at
			  FROM notes
			  WHERE user_uid = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Note
	for rows.Next() {
		var n models.Note
		if err = rows.Scan(&n.ID, &n.UserUID, &n.Title, &n.Description,
			&n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &n)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateNote обновляет заголовок и текст заметки по паре (id, владелец).
// Сам запрос фильтрует по владельцу: чужая заметка неотличима от несуществующей,
// оба случая дают storage.ErrNoteNotFound.
func (s *Storage) UpdateNote(ctx context.Context, userUID string, noteID int, note models.Note) (*models.Note, error) {
	const op = "storage.UpdateNote"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE notes
			  SET title = $1, description = $2, updated_at = now()
			  WHERE id = $3 AND user_uid = $4
			  RETURNING id, user_uid, title, description, created_at, updated_at`
	var updated models.Note
	err := s.DB.QueryRowContext(ctx, query,
		note.Title, note.Description, noteID, userUID,
	).Scan(&updated.ID, &updated.UserUID, &updated.Title, &updated.Description,
		&updated.CreatedAt, &updated.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNoteNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &updated, nil
}

// RemoveNote удаляет заметку по паре (id, владелец) и возвращает удалённую запись.
func (s *Storage) RemoveNote(ctx context.Context, userUID string, noteID int) (*models.Note, error) {
	const op = "storage.RemoveNote"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM notes
			  WHERE id = $1 AND user_uid = $2
			  RETURNING id, user_uid, title, description, created_at, updated_at`
	var deleted models.Note
	err := s.DB.QueryRowContext(ctx, query, noteID, userUID).
		Scan(&deleted.ID, &deleted.UserUID, &deleted.Title, &deleted.Description,
			&deleted.CreatedAt, &deleted.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNoteNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &deleted, nil
}

// RemoveAllNotes удаляет все заметки пользователя и возвращает количество удалённых строк.
// Ноль удалённых строк — не ошибка.
func (s *Storage) RemoveAllNotes(ctx context.Context, userUID string) (int, error) {
	const op = "storage.RemoveAllNotes"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM notes WHERE user_uid = $1`
	result, err := s.DB.ExecContext(ctx, query, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
