package ownership

import (
	"context"

	"github.com/google/uuid"
)

// Checker verifies whether an external subject owns a specific resource.
// Each bounded context with owner-gated resources implements one.
type Checker interface {
	CheckOwnership(ctx context.Context, subject string, resourceID uuid.UUID) (bool, error)
}

// Registry holds ownership checkers for different resource types.
type Registry interface {
	// RegisterChecker registers an ownership checker for a resource type
	RegisterChecker(resourceType string, checker Checker)

	// GetChecker retrieves the ownership checker for a resource type
	GetChecker(resourceType string) (Checker, bool)

	// CheckOwnership checks ownership for any registered resource type
	CheckOwnership(ctx context.Context, subject string, resourceType string, resourceID uuid.UUID) (bool, error)
}
