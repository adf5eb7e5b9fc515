package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/doelski/mabinihub-backend-go/internal/domain/user"
	"github.com/doelski/mabinihub-backend-go/internal/handler/http/response"
)

// RequireAttendanceManager gates the write-side attendance endpoints to
// roles that may run imports, generation and repairs.
func RequireAttendanceManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrHRAccessRequired)
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, user.ErrHRAccessRequired)
			return
		}

		if !user.CanManageAttendance(user.Role(roleStr)) {
			response.HandleError(w, user.ErrHRAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
