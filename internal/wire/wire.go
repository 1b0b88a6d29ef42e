// Package wire provides dependency injection for the pkgconflict application.
// It creates singleton services with lazy initialization.
package wire

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	cliadapter "github.com/example/pkgconflict/internal/adapters/cli"
	"github.com/example/pkgconflict/internal/adapters/filesystem"
	"github.com/example/pkgconflict/internal/adapters/persistence"
	"github.com/example/pkgconflict/internal/adapters/sqlite"
	"github.com/example/pkgconflict/internal/app"
	"github.com/example/pkgconflict/internal/config"
	"github.com/example/pkgconflict/internal/ctxutil"
	"github.com/example/pkgconflict/internal/db"
	"github.com/example/pkgconflict/internal/logging"
	"github.com/example/pkgconflict/internal/ports/primary"
	"github.com/example/pkgconflict/internal/ports/secondary"
)

var (
	cfg               *config.Config
	logger            *logging.Logger
	packageService    primary.PackageService
	resolutionService primary.ResolutionService
	configOnce        sync.Once
	once              sync.Once
)

// Config returns the effective configuration for the working directory.
func Config() *config.Config {
	configOnce.Do(loadConfig)
	return cfg
}

func loadConfig() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Fatalf("failed to get working directory: %v", err)
	}
	cfg, err = config.Load(cwd)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
}

// Logger returns the diagnostic logger for this run.
func Logger() *logging.Logger {
	once.Do(initServices)
	return logger
}

// PackageService returns the singleton PackageService instance.
func PackageService() primary.PackageService {
	once.Do(initServices)
	return packageService
}

// ResolutionService returns the singleton ResolutionService instance.
func ResolutionService() primary.ResolutionService {
	once.Do(initServices)
	return resolutionService
}

// Context returns a background context carrying the configured actor.
func Context() context.Context {
	actor := Config().Actor
	if actor == "" {
		actor = ctxutil.DefaultActor()
	}
	return ctxutil.WithActorID(context.Background(), actor)
}

// Shutdown flushes the logger and closes the database.
func Shutdown() {
	if logger != nil {
		_ = logger.Close()
	}
	_ = db.Close()
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	c := Config()
	if c.DBPath != "" {
		db.SetDBPath(c.DBPath)
	}

	logger = openLogger(c)

	// Get database connection
	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Create repository adapters (secondary ports) - sqlite adapters with injected DB
	sqlitePackageRepo := sqlite.NewPackageRepository(database)
	logRepo := sqlite.NewResolutionLogRepository(database)
	logWriter := sqlite.NewLogWriterAdapter(logRepo)

	packageRepo, err := persistence.NewCachedPackageRepository(sqlitePackageRepo, persistence.DefaultCacheSize)
	if err != nil {
		log.Fatalf("failed to create package cache: %v", err)
	}

	// Create effect executor with injected repositories
	executor := app.NewEffectExecutor(packageRepo, logWriter, logger.Logger)

	openSource := func(path string) secondary.ConflictSource {
		return filesystem.NewBatchFileSource(path)
	}

	// Create services (primary ports implementation)
	packageService = app.NewPackageService(packageRepo)
	resolutionService = app.NewResolutionService(packageRepo, logRepo, executor, openSource,
		logging.NewRunID, c.SplitThreshold, logger.Logger)

	logger.Debug("services initialized", zap.String("db", dbPathOrDefault()))
}

func openLogger(c *config.Config) *logging.Logger {
	home, err := config.HomeDir()
	if err != nil {
		return logging.Nop()
	}
	l, err := logging.New(logging.Options{Dir: filepath.Join(home, "logs"), Debug: c.Debug})
	if err != nil {
		return logging.Nop()
	}
	return l
}

func dbPathOrDefault() string {
	path, err := db.GetDBPath()
	if err != nil {
		return ""
	}
	return path
}

// PackageAdapter returns a new PackageAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func PackageAdapter() *cliadapter.PackageAdapter {
	return PackageAdapterWithOutput(os.Stdout)
}

// PackageAdapterWithOutput returns a new PackageAdapter writing to the given output.
// This variant allows testing or alternate output destinations.
func PackageAdapterWithOutput(out io.Writer) *cliadapter.PackageAdapter {
	once.Do(initServices)
	return cliadapter.NewPackageAdapter(packageService, out)
}

// ResolutionAdapter returns a new ResolutionAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func ResolutionAdapter() *cliadapter.ResolutionAdapter {
	return ResolutionAdapterWithOutput(os.Stdout)
}

// ResolutionAdapterWithOutput returns a new ResolutionAdapter writing to the given output.
// This variant allows testing or alternate output destinations.
func ResolutionAdapterWithOutput(out io.Writer) *cliadapter.ResolutionAdapter {
	once.Do(initServices)
	return cliadapter.NewResolutionAdapter(resolutionService, out)
}
