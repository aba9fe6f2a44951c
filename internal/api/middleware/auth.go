package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/akimovs/TRS-TableService/internal/api/handlers"
)

type staffIDKey struct{}

const msgStaffAuthRequired = "требуется заголовок X-Staff-ID"

// StaffAuth проверяет наличие валидного заголовка X-Staff-ID на админских
// маршрутах и кладет ID сотрудника в контекст запроса.
// Заголовок проставляется вышестоящим шлюзом после настоящей
// аутентификации; сам сервис пароли не проверяет.
func StaffAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("X-Staff-ID")
		if raw == "" {
			handlers.RespondError(w, http.StatusUnauthorized, msgStaffAuthRequired)
			return
		}

		staffID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || staffID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, msgStaffAuthRequired)
			return
		}

		ctx := context.WithValue(r.Context(), staffIDKey{}, staffID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// StaffIDFromContext возвращает ID сотрудника из контекста запроса
func StaffIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(staffIDKey{}).(int64)
	return id, ok
}
