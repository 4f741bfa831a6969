// Package middleware HTTP middleware сервиса.
package middleware

import (
	"net/http"
	"strconv"

	"github.com/MohitSAGAR11/Xperience-Gaming-sub002/internal/api/handlers"
)

// UserIDHeader заголовок с идентификатором пользователя.
// Аутентификацию выполняет API gateway, сюда приходит уже проверенный ID.
const UserIDHeader = "X-User-ID"

// Auth проверяет наличие корректного X-User-ID в запросе
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userIDStr := r.Header.Get(UserIDHeader)
		if userIDStr == "" {
			handlers.RespondError(w, http.StatusUnauthorized, "заголовок X-User-ID обязателен")
			return
		}

		if _, err := strconv.ParseInt(userIDStr, 10, 64); err != nil {
			handlers.RespondError(w, http.StatusUnauthorized, "некорректный X-User-ID")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// UserID извлекает ID пользователя из заголовка запроса.
// Должен вызываться только за middleware Auth.
func UserID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(r.Header.Get(UserIDHeader), 10, 64)
	return id
}
