package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/travvip/backend/internal/infrastructure/config"
	"github.com/travvip/backend/internal/infrastructure/logger"
	"github.com/travvip/backend/internal/infrastructure/migration"
)

const usage = `travvip schema migration tool

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                    apply all pending migrations
  down                  roll back all migrations
  step <n>              apply n migrations (negative rolls back)
  goto <version>        migrate the schema to a specific version
  version               show the applied schema version
  force <version>       overwrite the recorded version (repair only)
  drop --confirm        drop every database object
  create <name> [desc]  scaffold a new up/down migration pair
  list                  list the migrations on disk

Flags:
  -path string          migrations directory (default: ./migrations)
  -log-level string     debug, info, warn or error (default: info)

Connection settings come from config.toml or the TRAVVIP_DATABASE_*
environment variables, the same ones the server reads.`

func main() {
	var (
		dir      string
		logLevel string
	)
	flag.StringVar(&dir, "path", "migrations", "migrations directory")
	flag.StringVar(&logLevel, "log-level", "info", "log level")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:  logLevel,
		Format: "console",
		Output: "stdout",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	if dir, err = filepath.Abs(dir); err != nil {
		log.Fatal("resolve migrations path", zap.Error(err))
	}

	if err := run(args, dir, log); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}
}

func run(args []string, dir string, log *zap.Logger) error {
	command := args[0]

	// create and list only touch the filesystem.
	switch command {
	case "create":
		return create(args[1:], dir, log)
	case "list":
		return list(dir, log)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	runner, err := migration.NewRunner(db, dir, log)
	if err != nil {
		return err
	}
	defer runner.Close()

	switch command {
	case "up":
		return runner.Up()

	case "down":
		return runner.Down()

	case "step":
		n, err := intArg(args, "step count")
		if err != nil {
			return err
		}
		return runner.Steps(n)

	case "goto":
		target, err := intArg(args, "target version")
		if err != nil {
			return err
		}
		if target < 0 {
			return fmt.Errorf("target version must not be negative")
		}
		return runner.GoTo(uint(target))

	case "version":
		version, dirty, err := runner.Version()
		if err != nil {
			return err
		}
		if version == 0 {
			log.Info("no migrations applied")
		} else {
			log.Info("schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		}
		return nil

	case "force":
		version, err := intArg(args, "version")
		if err != nil {
			return err
		}
		return runner.Force(version)

	case "drop":
		if !hasConfirmFlag(args[1:]) {
			return fmt.Errorf("drop destroys all data, rerun with --confirm")
		}
		return runner.Drop()

	default:
		fmt.Fprintln(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func create(args []string, dir string, log *zap.Logger) error {
	if len(args) == 0 {
		return fmt.Errorf("migration name required, usage: migrate create <name> [description]")
	}
	description := ""
	if len(args) > 1 {
		description = args[1]
	}

	pair, err := migration.Scaffold(dir, args[0], description)
	if err != nil {
		return err
	}

	log.Info("migration scaffolded",
		zap.String("version", pair.Version),
		zap.String("up", pair.UpPath),
		zap.String("down", pair.DownPath),
	)
	return nil
}

func list(dir string, log *zap.Logger) error {
	names, err := migration.List(dir)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		log.Info("no migrations found", zap.String("path", dir))
		return nil
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

func intArg(args []string, what string) (int, error) {
	if len(args) < 2 {
		return 0, fmt.Errorf("%s required", what)
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", what, args[1])
	}
	return n, nil
}

func hasConfirmFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--confirm" || arg == "-confirm" {
			return true
		}
	}
	return false
}
