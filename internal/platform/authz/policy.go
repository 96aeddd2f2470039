package authz

import (
	"context"
)

// Policy answers capability questions about external subjects. It replaces a
// hardcoded "is this the admin?" equality check with a pluggable decision
// point: swap the implementation to move to roles or an external authorizer
// without touching callers.
type Policy interface {
	Can(ctx context.Context, subject string, capability string) (bool, error)
}

// Capabilities gated by the policy.
const (
	CapabilityRunJobs = "admin:jobs:run"
)

// AllowlistPolicy grants every capability to a fixed set of subjects.
// It is the smallest useful Policy: one configured admin subject.
type AllowlistPolicy struct {
	admins map[string]struct{}
}

// NewAllowlistPolicy builds a policy from the configured admin subjects.
// Empty entries are ignored; with no admins configured every check fails.
func NewAllowlistPolicy(adminSubjects []string) *AllowlistPolicy {
	admins := make(map[string]struct{}, len(adminSubjects))
	for _, s := range adminSubjects {
		if s != "" {
			admins[s] = struct{}{}
		}
	}
	return &AllowlistPolicy{admins: admins}
}

// Can reports whether the subject holds the capability.
func (p *AllowlistPolicy) Can(ctx context.Context, subject string, capability string) (bool, error) {
	if subject == "" {
		return false, nil
	}
	_, ok := p.admins[subject]
	return ok, nil
}

var _ Policy = (*AllowlistPolicy)(nil)
