package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dsmelov/passvault/internal/config"
	"github.com/dsmelov/passvault/internal/logging"
	"github.com/dsmelov/passvault/internal/repositories/records"
	"github.com/dsmelov/passvault/internal/repositories/users"
	"github.com/dsmelov/passvault/internal/services"
)

// Run loads configuration, connects to the backing stores and starts the
// interactive REPL. An unreachable store fails construction; main treats
// that as fatal.
func Run(ctx context.Context) error {
	cfg := config.LoadConfig()
	log := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	usersRepo, err := users.NewRedisRepository(ctx, cfg.RedisAddr(), cfg.RedisPassword, cfg.StoreTimeout)
	if err != nil {
		return fmt.Errorf("account store init: %w", err)
	}
	defer usersRepo.Close()
	log.Info(ctx, "connected to account store", "addr", cfg.RedisAddr())

	recordsRepo, err := records.NewMongoRepository(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection, cfg.StoreTimeout)
	if err != nil {
		return fmt.Errorf("record store init: %w", err)
	}
	defer recordsRepo.Close(ctx)
	log.Info(ctx, "connected to record store", "database", cfg.MongoDatabase, "collection", cfg.MongoCollection)

	directory := services.NewDirectory(usersRepo, log)
	session := services.NewSession(directory, recordsRepo, services.KeyMode(cfg.KeyMode), log)
	defer session.Logout(ctx)

	app := NewApp(session, os.Stdin, os.Stdout)

	printlnFn("Password vault (type 'help' for commands)")
	runREPL(ctx, app, app.status, bufio.NewScanner(os.Stdin))
	return nil
}
