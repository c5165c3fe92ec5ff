package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/arentz1234-code/jrodstudios/internal/api/handlers"
)

// AdminTokenHeader заголовок с токеном администратора
const AdminTokenHeader = "X-Admin-Token"

const msgAdminTokenRequired = "требуется токен администратора"

// AdminAuth проверяет токен администратора в заголовке X-Admin-Token.
// Сравнение постоянное по времени.
func AdminAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(AdminTokenHeader)
			if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				handlers.RespondUnauthorized(w, msgAdminTokenRequired)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
