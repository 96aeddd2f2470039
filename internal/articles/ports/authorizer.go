package ports

import (
	"context"

	"github.com/google/uuid"
)

// Authorizer is a driven port for ownership decisions. The articles module
// depends on the capability without knowing how it is implemented.
type Authorizer interface {
	CanMutate(ctx context.Context, subject string, resource string, resourceID uuid.UUID) (bool, error)
}
