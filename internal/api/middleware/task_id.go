package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/taskmate-api/internal/api/shared"
	"github.com/phrazzld/taskmate-api/internal/service"
)

// ValidateTaskID rejects requests whose {param} path value is not a task
// identifier before they reach the handler.
func ValidateTaskID(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := service.ParseTaskID(chi.URLParam(r, param)); err != nil {
				shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID",
					shared.WithDetails("Task ID must be a valid task identifier"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
