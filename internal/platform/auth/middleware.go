package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/healthnexus/clinic/internal/platform/apperr"
)

type contextKey string

const patientIDKey contextKey = "patient_id"

// RequireAuth parses the Authorization bearer header, verifies the token and
// stores the patient id in the request context. Requests without a valid
// token are rejected with an authentication error.
func RequireAuth(issuer *TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return apperr.Authentication("missing authorization header")
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return apperr.Authentication("authorization header must be a bearer token")
			}
			patientID, err := issuer.Verify(parts[1])
			if err != nil {
				return apperr.Authentication("invalid or expired token")
			}
			ctx := context.WithValue(c.Request().Context(), patientIDKey, patientID)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// PatientIDFromContext returns the authenticated patient id stored by
// RequireAuth.
func PatientIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(patientIDKey).(uuid.UUID)
	return id, ok
}

// WithPatientID returns a context carrying the given patient id. Used by
// tests and internal callers that bypass the HTTP middleware.
func WithPatientID(ctx context.Context, patientID uuid.UUID) context.Context {
	return context.WithValue(ctx, patientIDKey, patientID)
}
