package main

import (
	"context"
	"flag"
	"log"

	"github.com/quillhq/newsdesk/internal/adapters/postgres"
	"github.com/quillhq/newsdesk/internal/migrations"
	"github.com/quillhq/newsdesk/internal/platform/logger"
	"github.com/quillhq/newsdesk/internal/server"
)

func main() {
	runJobs := flag.Bool("jobs", false, "run the data repair jobs after applying schema migrations")
	jobName := flag.String("job", "", "run a single repair job by name (implies -jobs)")
	flag.Parse()

	ctx := context.Background()
	bootstrapLogger := logger.NewBootstrapLogger()

	config, err := server.LoadConfig(bootstrapLogger)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.NewSlogAdapter(config.Environment, config.LogLevel)

	if err := server.RunMigrations(ctx, config, appLogger); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if !*runJobs && *jobName == "" {
		return
	}

	pool, cleanup, err := server.ConnectDatabase(ctx, config, appLogger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer cleanup()

	runner := migrations.NewRunnerWithJobs(
		appLogger,
		postgres.NewArticlePatcher(pool),
		postgres.NewCategoryRepository(pool),
	)

	if *jobName != "" {
		report, err := runner.RunJob(ctx, *jobName)
		if err != nil {
			log.Fatalf("Repair job %q failed: %v", *jobName, err)
		}
		appLogger.Info(ctx, "repair job complete", "job", *jobName, "scanned", report.Scanned, "patched", report.Patched)
		return
	}

	if err := runner.RunAll(ctx); err != nil {
		log.Fatalf("Repair jobs failed: %v", err)
	}
}
