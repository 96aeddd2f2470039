//go:build wireinject
// +build wireinject

package server

import (
	"context"

	"github.com/google/wire"
	"github.com/quillhq/newsdesk/internal/adapters/blob"
	"github.com/quillhq/newsdesk/internal/adapters/postgres"
	"github.com/quillhq/newsdesk/internal/adapters/rest"
	"github.com/quillhq/newsdesk/internal/adapters/rest/middleware"
	articlesApp "github.com/quillhq/newsdesk/internal/articles/application"
	commentsApp "github.com/quillhq/newsdesk/internal/comments/application"
	"github.com/quillhq/newsdesk/internal/migrations"
	"github.com/quillhq/newsdesk/internal/platform/authz"
	"github.com/quillhq/newsdesk/internal/platform/eventbus"
	"github.com/quillhq/newsdesk/internal/platform/logger"
	"github.com/quillhq/newsdesk/internal/platform/ownership"
	platformPostgres "github.com/quillhq/newsdesk/internal/platform/postgres"
	taxonomyApp "github.com/quillhq/newsdesk/internal/taxonomy/application"
)

// InitializeApp creates a fully configured App with all dependencies
func InitializeApp(ctx context.Context) (*App, func(), error) {
	wire.Build(
		// Bootstrap phase
		logger.NewBootstrapLogger,
		LoadConfig,

		// Logger configuration
		provideLoggerConfig,

		// Main logger
		logger.NewConfiguredLogger,
		wire.Bind(new(logger.Logger), new(*logger.SlogAdapter)),

		// Database
		ConnectDatabase,
		platformPostgres.NewTransactionManager,

		// Repository providers (includes interface bindings)
		postgres.ProviderSet,

		// Blob store
		provideBlobConfig,
		blob.ProviderSet,

		// Platform services
		ownership.ProviderSet,
		eventbus.NewBus,
		provideAdminPolicy,
		authz.ProviderSet,

		// Application services
		articlesApp.ProviderSet,
		provideSweeperConfig,
		commentsApp.ProviderSet,
		taxonomyApp.ProviderSet,
		migrations.ProviderSet,

		// REST handlers
		rest.ProviderSet,
		provideVersion, // Provide version string for HealthHandler

		// HTTP middleware
		provideJWTMiddleware,
		middleware.ProviderSet,

		// HTTP Server
		NewHTTPServer,

		// App
		NewApp,
	)

	return nil, nil, nil
}

// provideJWTMiddleware creates JWT middleware from config
func provideJWTMiddleware(ctx context.Context, config Config) (*middleware.JWTMiddleware, error) {
	return middleware.NewJWTMiddleware(ctx, config.JWKSEndpoint, config.JWTIssuer)
}

// provideVersion provides the application version
func provideVersion() string {
	return "1.0.0"
}

// provideLoggerConfig creates logger config from server config
func provideLoggerConfig(config Config) logger.Config {
	return logger.Config{
		Environment: config.Environment,
		LogLevel:    config.LogLevel,
	}
}

// provideAdminPolicy builds the allowlist policy from the configured subjects
func provideAdminPolicy(config Config) *authz.AllowlistPolicy {
	return authz.NewAllowlistPolicy(config.AdminSubjectList())
}

// provideBlobConfig creates blob store config from server config
func provideBlobConfig(config Config) blob.Config {
	return blob.Config{
		Endpoint:  config.BlobEndpoint,
		AccessKey: config.BlobAccessKey,
		SecretKey: config.BlobSecretKey,
		Bucket:    config.BlobBucket,
		Region:    config.BlobRegion,
		Secure:    config.BlobSecure,
	}
}

// provideSweeperConfig creates sweeper config from server config
func provideSweeperConfig(config Config) articlesApp.SweeperConfig {
	return articlesApp.SweeperConfig{
		Interval:    config.SweepInterval,
		GracePeriod: config.SweepGracePeriod,
	}
}
