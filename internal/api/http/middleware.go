package http

import (
	"context"
	"net/http"
	"strings"

	"retail-pos-backend/internal/domain"
	"retail-pos-backend/internal/security"
	"retail-pos-backend/internal/service"
)

type contextKey string

const employeeContextKey contextKey = "employee"

// EmployeeFromContext returns the authenticated employee set by the auth
// middleware. The second return is false on unauthenticated requests.
func EmployeeFromContext(ctx context.Context) (*domain.Employee, bool) {
	employee, ok := ctx.Value(employeeContextKey).(*domain.Employee)
	return employee, ok
}

type authMiddleware struct {
	tokens      security.TokenManager
	employeeSvc service.EmployeeService
}

func newAuthMiddleware(tokens security.TokenManager, employeeSvc service.EmployeeService) *authMiddleware {
	return &authMiddleware{tokens: tokens, employeeSvc: employeeSvc}
}

// Authenticate validates the bearer token and re-reads the employee record so
// deactivated accounts are rejected even while their tokens are still live.
func (m *authMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			respondError(w, http.StatusUnauthorized, "missing authorization header")
			return
		}
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			respondError(w, http.StatusUnauthorized, "invalid authorization header")
			return
		}

		claims, err := m.tokens.Validate(tokenString)
		if err != nil {
			respondError(w, http.StatusUnauthorized, err.Error())
			return
		}

		employee, err := m.employeeSvc.GetEmployee(r.Context(), claims.EmployeeID)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		if !employee.IsActive {
			respondError(w, http.StatusUnauthorized, "employee account is inactive")
			return
		}

		ctx := context.WithValue(r.Context(), employeeContextKey, employee)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requirePosition gates a handler to the given positions. It must run inside
// Authenticate.
func requirePosition(next http.HandlerFunc, positions ...domain.Position) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		employee, ok := EmployeeFromContext(r.Context())
		if !ok {
			respondError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		for _, p := range positions {
			if employee.Position == p {
				next(w, r)
				return
			}
		}
		respondError(w, http.StatusForbidden, "insufficient permissions")
	}
}
