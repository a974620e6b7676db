// Package models содержит структуры данных, общие для хранилища, сервисов и HTTP-слоя.
package models

import "time"

// User описывает запись пользователя в базе данных.
//
// PasswordHash никогда не сериализуется в ответах — наружу уходит только PublicUser.
type User struct {
	UID          string    `json:"uid"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	ImageURL     string    `json:"image_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PublicUser — проекция пользователя без чувствительных полей.
// Единственная форма, в которой пользователь пересекает границу HTTP.
type PublicUser struct {
	UID      string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	ImageURL string `json:"image_url,omitempty"`
}

// Public строит редуцированное представление пользователя.
func (u *User) Public() *PublicUser {
	return &PublicUser{
		UID:      u.UID,
		Username: u.Username,
		Email:    u.Email,
		ImageURL: u.ImageURL,
	}
}
