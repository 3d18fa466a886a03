package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/BlackLex29/RLfursure-sub000/internal/api/handlers"
)

type contextKey string

const (
	userIDKey  contextKey = "userID"
	isStaffKey contextKey = "isStaff"

	// HeaderUserID идентификатор пользователя, проставляется внешним auth-шлюзом
	HeaderUserID = "X-User-ID"
	// HeaderUserRole роль пользователя; значение "staff" открывает персонал-операции
	HeaderUserRole = "X-User-Role"

	roleStaff = "staff"
)

// Auth требует заголовок X-User-ID и кладёт идентификатор в контекст
// Сервис доверяет заголовкам: аутентификацию выполняет внешний шлюз
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawID := r.Header.Get(HeaderUserID)
		if rawID == "" {
			handlers.RespondError(w, http.StatusUnauthorized, "missing X-User-ID header")
			return
		}

		userID, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, "invalid X-User-ID header")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, isStaffKey, r.Header.Get(HeaderUserRole) == roleStaff)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireStaff пропускает только запросы с ролью staff
// Используется после Auth
func RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsStaff(r.Context()) {
			handlers.RespondForbidden(w, "staff role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserID извлекает идентификатор пользователя из контекста
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// IsStaff возвращает true, если запрос пришёл от персонала
func IsStaff(ctx context.Context) bool {
	isStaff, ok := ctx.Value(isStaffKey).(bool)
	return ok && isStaff
}
