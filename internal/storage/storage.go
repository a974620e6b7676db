// Package storage содержит общие для слоёв сервиса и хранилища ошибки-сентинели.
// Слой репозитория переводит низкоуровневые ошибки драйвера в эти значения,
// чтобы ни одна «сырая» ошибка базы не пересекала границу сервиса.
package storage

import "errors"

var (
	// ErrEmailTaken — пользователь с таким email уже зарегистрирован.
	ErrEmailTaken = errors.New("email already exists")

	// ErrUserNotFound — пользователь не найден.
	ErrUserNotFound = errors.New("user not found")

	// ErrNoteNotFound — заметка не найдена или принадлежит другому пользователю.
	// Эти два случая намеренно неразличимы: запрос к базе фильтрует по паре
	// (id, владелец) и сообщает только число затронутых строк.
	ErrNoteNotFound = errors.New("note not found")
)
