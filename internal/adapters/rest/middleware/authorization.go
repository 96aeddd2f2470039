package middleware

import (
	"net/http"

	"github.com/quillhq/newsdesk/internal/platform/authz"
	"github.com/quillhq/newsdesk/internal/platform/logger"
)

// AuthorizationMiddleware gates routes behind capability checks against the
// configured policy. It runs after JWT authentication.
type AuthorizationMiddleware struct {
	policy authz.Policy
	logger logger.Logger
}

// NewAuthorizationMiddleware creates a new authorization middleware
func NewAuthorizationMiddleware(policy authz.Policy, logger logger.Logger) *AuthorizationMiddleware {
	return &AuthorizationMiddleware{
		policy: policy,
		logger: logger,
	}
}

// RequireCapability creates a middleware that checks whether the
// authenticated subject holds the given capability
func (m *AuthorizationMiddleware) RequireCapability(capability string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			subject, ok := GetJWTSubject(ctx)
			if !ok || subject == "" {
				m.logger.Warn(ctx, "subject not found in context")
				WriteJSONError(w, ErrorCodeUnauthorized, "Authentication required", http.StatusUnauthorized)
				return
			}

			allowed, err := m.policy.Can(ctx, subject, capability)
			if err != nil {
				m.logger.Error(ctx, "failed to check capability",
					"subject", subject,
					"capability", capability,
					"error", err,
				)
				WriteJSONError(w, ErrorCodeInternalServerError, "Failed to check permissions", http.StatusInternalServerError)
				return
			}

			if !allowed {
				m.logger.Warn(ctx, "capability denied",
					"subject", subject,
					"capability", capability,
				)
				WriteJSONError(w, ErrorCodeForbidden, "Insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
