// Package jwt реализует генерацию и парсинг JWT токенов сессии с пользовательскими claim полями.
//
// Maker определяет интерфейс для создания и проверки токенов с идентификатором и email пользователя.
// MakerImpl — конкретная реализация с использованием секретного ключа и срока жизни.
package jwt

import (
	"time"
)

// Maker описывает интерфейс для генерации и парсинга JWT токенов сессии.
type Maker interface {
	// GenerateToken создает токен с идентификатором и email пользователя
	GenerateToken(userUID, email string) (string, error)
	// ParseToken возвращает *CustomClaims, если подпись и срок действия токена корректны
	ParseToken(tokenStr string) (*CustomClaims, error)
	// TTL возвращает срок жизни выдаваемых токенов
	TTL() time.Duration
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}

// TTL возвращает время жизни токена; cookie сессии живет ровно столько же.
func (j *MakerImpl) TTL() time.Duration {
	return j.tokenTTL
}
