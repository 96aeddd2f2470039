package authz_test

import (
	"context"
	"testing"

	"github.com/quillhq/newsdesk/internal/platform/authz"
)

func TestAllowlistPolicy(t *testing.T) {
	tests := []struct {
		name    string
		admins  []string
		subject string
		want    bool
	}{
		{"configured admin is allowed", []string{"auth0|admin"}, "auth0|admin", true},
		{"other subject is denied", []string{"auth0|admin"}, "auth0|reader", false},
		{"anonymous is denied", []string{"auth0|admin"}, "", false},
		{"empty allowlist denies everyone", nil, "auth0|admin", false},
		{"blank entries are ignored", []string{""}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := authz.NewAllowlistPolicy(tt.admins)
			got, err := policy.Can(context.Background(), tt.subject, authz.CapabilityRunJobs)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Can(%q) = %v, want %v", tt.subject, got, tt.want)
			}
		})
	}
}
