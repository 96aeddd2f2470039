package application

import (
	"github.com/google/wire"
	"github.com/quillhq/newsdesk/internal/articles/ports"
)

// ProviderSet is the wire provider set for the articles application layer
var ProviderSet = wire.NewSet(
	NewArticlesService,
	NewArticlesOwnershipChecker,
	NewRegistryAuthorizer,
	NewSweeper,
	wire.Bind(new(ports.Authorizer), new(*RegistryAuthorizer)),
)
