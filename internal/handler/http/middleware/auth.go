package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/suhana-bhanu/attendance-system/internal/domain/auth"
	"github.com/suhana-bhanu/attendance-system/internal/handler/http/response"
)

// AuthRequired rejects requests without a verified access token. It runs after
// jwtauth.Verifier, which only records verification errors in the context.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}

		if token == nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		tokenType, ok := claims["type"].(string)
		if !ok || tokenType != "access" {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		employeeID, ok := claims["employee_id"].(string)
		if !ok || employeeID == "" {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		next.ServeHTTP(w, r)
	})
}
