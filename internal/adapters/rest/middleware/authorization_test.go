package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quillhq/newsdesk/internal/platform/authz"
)

type nopLogger struct{}

func (nopLogger) Debug(ctx context.Context, msg string, args ...any) {}
func (nopLogger) Info(ctx context.Context, msg string, args ...any)  {}
func (nopLogger) Warn(ctx context.Context, msg string, args ...any)  {}
func (nopLogger) Error(ctx context.Context, msg string, args ...any) {}

func requireJobsHandler(t *testing.T) http.Handler {
	t.Helper()
	policy := authz.NewAllowlistPolicy([]string{"user|admin"})
	mw := NewAuthorizationMiddleware(policy, nopLogger{})
	return mw.RequireCapability(authz.CapabilityRunJobs)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
}

func TestRequireCapabilityAllowsListedSubject(t *testing.T) {
	handler := requireJobsHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/admin/jobs/backfill_authors", nil)
	req = req.WithContext(context.WithValue(req.Context(), JWTSubjectContextKey, "user|admin"))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequireCapabilityRejectsUnlistedSubject(t *testing.T) {
	handler := requireJobsHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/admin/jobs/backfill_authors", nil)
	req = req.WithContext(context.WithValue(req.Context(), JWTSubjectContextKey, "user|mallory"))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireCapabilityRejectsMissingSubject(t *testing.T) {
	handler := requireJobsHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/admin/jobs/backfill_authors", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
