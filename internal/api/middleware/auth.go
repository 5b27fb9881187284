// Package middleware содержит HTTP middleware сервиса: аутентификацию,
// корреляцию запросов и сбор метрик.
package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/deskhive/RoomBookingService/internal/api/handlers"
)

type ctxKey string

const userIDKey ctxKey = "user_id"

// HeaderUserID заголовок с идентификатором аутентифицированного пользователя.
// Заголовок выставляет API gateway после проверки токена.
const HeaderUserID = "X-User-ID"

// Auth проверяет наличие X-User-ID и кладет идентификатор пользователя
// в контекст запроса. Запросы без заголовка отклоняются с 401.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderUserID)
		if raw == "" {
			handlers.RespondUnauthorized(w, "Authentication required.")
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, "Invalid user identity.")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext возвращает идентификатор пользователя, положенный Auth
func UserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
