// Package middlewarectx содержит HTTP middleware для обработки и проверки токена сессии.
//
// SessionMiddleware извлекает JWT из cookie "token", проверяет его подпись и срок
// действия локально, и в случае успеха добавляет в контекст идентификатор и email
// пользователя для дальнейшего использования в обработчиках. Хранилище при этом
// не трогается: middleware — чистый шлюз, а не повторная аутентификация.
//
// В случае ошибки проверки возвращает HTTP 401 Unauthorized с сообщением об ошибке.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/notes-keeper/internal/http/response"
	"github.com/magabrotheeeer/notes-keeper/internal/lib/jwt"
	"github.com/magabrotheeeer/notes-keeper/internal/lib/sl"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// UserUID — ключ для идентификатора пользователя в контексте
	UserUID Key = "useruid"
	// Email — ключ для email пользователя в контексте
	Email Key = "email"
)

// SessionCookie — имя cookie, в которой клиент хранит токен сессии.
const SessionCookie = "token"

// SessionMiddleware возвращает HTTP middleware, который проверяет JWT из cookie сессии.
//
// Если токен валиден, добавляет идентификатор и email пользователя в контекст запроса,
// иначе возвращает ошибку с HTTP статусом 401 Unauthorized, не пуская запрос дальше.
func SessionMiddleware(jwtMaker jwt.Maker, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SessionMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			cookie, err := r.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				log.Error("no session cookie in request")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("access denied: no token found"))
				return
			}

			claims, err := jwtMaker.ParseToken(cookie.Value)
			if err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), UserUID, claims.UserUID)
			ctx = context.WithValue(ctx, Email, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
