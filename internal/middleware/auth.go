// Package middleware содержит HTTP middleware для сервиса проката.
package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"time"
)

type contextKey string

const customerIDKey contextKey = "customerID"

const (
	authCookieName = "customer_token"
	authCookieTTL  = 30 * 24 * time.Hour
)

// AuthMiddleware идентифицирует клиента по подписанному cookie.
type AuthMiddleware struct {
	secretKey []byte
}

// NewAuthMiddleware создаёт новый экземпляр AuthMiddleware с указанным секретным ключом.
// При пустом секрете генерируется случайный ключ.
func NewAuthMiddleware(secret string) *AuthMiddleware {
	key := []byte(secret)
	if len(key) == 0 {
		randomKey := make([]byte, 32)
		if _, err := rand.Read(randomKey); err == nil {
			key = randomKey
		} else {
			key = []byte("default-secret-key")
		}
	}

	return &AuthMiddleware{
		secretKey: key,
	}
}

// Middleware проверяет cookie клиента и добавляет его идентификатор в контекст запроса.
func (a *AuthMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(authCookieName)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		customerID, ok := a.parseCookie(cookie.Value)
		if !ok {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), customerIDKey, customerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SetAuthCookie устанавливает cookie для указанного клиента.
func (a *AuthMiddleware) SetAuthCookie(w http.ResponseWriter, customerID string) {
	cookie := &http.Cookie{
		Name:     authCookieName,
		Value:    customerID + "." + a.sign(customerID),
		Path:     "/",
		Expires:  time.Now().Add(authCookieTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	http.SetCookie(w, cookie)
}

func (a *AuthMiddleware) sign(customerID string) string {
	mac := hmac.New(sha256.New, a.secretKey)
	mac.Write([]byte(customerID))
	return hex.EncodeToString(mac.Sum(nil))
}

// parseCookie разбирает значение вида "<id>.<hex hmac>". Идентификатор клиента не содержит точек.
func (a *AuthMiddleware) parseCookie(cookieValue string) (string, bool) {
	idx := strings.LastIndexByte(cookieValue, '.')
	if idx <= 0 || idx == len(cookieValue)-1 {
		return "", false
	}

	customerID := cookieValue[:idx]
	signature := cookieValue[idx+1:]

	if !hmac.Equal([]byte(signature), []byte(a.sign(customerID))) {
		return "", false
	}

	return customerID, true
}

// GetCustomerIDFromContext извлекает идентификатор клиента из контекста запроса.
func GetCustomerIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(customerIDKey).(string)
	return id, ok
}
