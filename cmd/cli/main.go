package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jammapp/waitlist-api/config"
	"github.com/jammapp/waitlist-api/domain/waitlist"
	"github.com/jammapp/waitlist-api/internal/log"
	"github.com/jammapp/waitlist-api/pkg/migrations"
	"github.com/jammapp/waitlist-api/pkg/utils"
)

func main() {
	logger := log.NewLoggerWithJSONOutput()

	config.InitializeEnvFile(logger) // Load envs early for CLI consistency

	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	switch args[0] {
	case "migrate":
		runMigrations(logger)
		return

	case "subscribers":
		listSubscribers(logger)
		return

	case "help", "-h", "--help":
		printUsage()
		return

	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", args[0])
		printUsage()
		os.Exit(1)
	}
}

func runMigrations(logger *log.Logger) {
	db, err := config.NewDatabase(logger, nil)
	if err != nil {
		logger.Error("Failed to connect to database for migration", "error", err.Error())

		os.Exit(1)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("Failed to get SQL DB instance for migration", "error", err.Error())
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			logger.Warn("Failed to close SQL DB after migration", "error", err.Error())
		}
	}()

	migrationsDir := utils.GetEnvTrimmedOrDefault("MIGRATIONS_DIR", "migrations")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := migrations.Up(ctx, sqlDB, migrations.Config{Dir: migrationsDir, Logger: logger}); err != nil {
		logger.Error("Database migration failed", "error", err.Error())
		os.Exit(1)
	}

	logger.Info("Database migrations completed")
}

// listSubscribers dumps active waitlist entries to stdout as JSON, using
// whichever store backend the environment configures.
func listSubscribers(logger *log.Logger) {
	var store waitlist.EntryStore

	if config.IsDatabaseConfigured() {
		db, err := config.NewDatabase(logger, nil)
		if err != nil {
			logger.Error("Failed to connect to database", "error", err.Error())
			os.Exit(1)
		}
		defer config.CloseDatabase(db, logger)
		store = config.NewEntryStore(logger, db)
	} else {
		store = config.NewEntryStore(logger, nil)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	entries, err := store.ListActive(ctx)
	if err != nil {
		logger.Error("Failed to list subscribers", "error", err.Error())
		os.Exit(1)
	}

	out, err := json.MarshalIndent(waitlist.ToSubscriberResponses(entries), "", "  ")
	if err != nil {
		logger.Error("Failed to encode subscribers", "error", err.Error())
		os.Exit(1)
	}

	fmt.Println(string(out))
	fmt.Fprintf(os.Stderr, "%d active subscriber(s)\n", len(entries))
}

func printUsage() {
	fmt.Println("Usage: cli <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  migrate      Run database migrations and exit")
	fmt.Println("  subscribers  Print active waitlist subscribers as JSON")
}
