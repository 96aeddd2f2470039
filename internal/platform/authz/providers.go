package authz

import "github.com/google/wire"

// ProviderSet is the wire provider set for the authorization policy
var ProviderSet = wire.NewSet(
	wire.Bind(new(Policy), new(*AllowlistPolicy)),
)
