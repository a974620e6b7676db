package models

import "time"

// Note представляет заметку пользователя.
// UserUID — владелец записи; все запросы к хранилищу фильтруются по этой паре (ID, UserUID).
type Note struct {
	ID          int       `json:"id"`
	UserUID     string    `json:"user_uid"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DummyNote используется для приёма данных из JSON-запроса,
// прежде чем конвертировать их в Note.
type DummyNote struct {
	Title       string `json:"title" validate:"required"`       // Заголовок заметки
	Description string `json:"description" validate:"required"` // Текст заметки
}
