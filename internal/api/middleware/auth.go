package middleware

import (
	"net/http"

	"github.com/phrazzld/taskmate-api/internal/api/shared"
	"github.com/phrazzld/taskmate-api/internal/service/auth"
)

// UnauthorizedMessage is the body text of every 401 produced by the gate.
const UnauthorizedMessage = "Unauthorized access"

// AuthMiddleware provides cookie-based JWT authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// Authenticate validates the token cookie and adds the identity to the
// request context for authorized requests. It keeps no state between calls.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(auth.SessionCookieName)
		if err != nil || cookie.Value == "" {
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, UnauthorizedMessage, auth.ErrMissingToken)
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), cookie.Value)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, UnauthorizedMessage, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(shared.WithIdentity(r.Context(), claims.Email)))
	})
}

// GetIdentity extracts the authenticated identity from the request context.
// Returns the identity and a boolean indicating if it was found.
func GetIdentity(r *http.Request) (string, bool) {
	return shared.GetIdentity(r.Context())
}
