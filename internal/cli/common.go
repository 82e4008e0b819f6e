package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/schoolfacts/internal/config"
	"github.com/vvka-141/schoolfacts/internal/logging"
	"github.com/vvka-141/schoolfacts/internal/store"
	"github.com/vvka-141/schoolfacts/pkg/schoolfacts"
)

// loadProjectConfig loads .env and then the project config file.
func loadProjectConfig() (*config.ProjectConfig, error) {
	_ = godotenv.Load()

	projectCfg, err := config.Load(globalFlags.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return projectCfg, nil
}

// resolveDatabase applies --driver and --dsn on top of the project config.
func resolveDatabase(projectCfg *config.ProjectConfig) schoolfacts.DatabaseConfig {
	dbCfg := schoolfacts.DatabaseConfig{
		Driver: projectCfg.Database.Driver,
		DSN:    projectCfg.Database.DSN,
	}
	if globalFlags.driver != "" {
		dbCfg.Driver = globalFlags.driver
	}
	if globalFlags.dsn != "" {
		dbCfg.DSN = globalFlags.dsn
	}
	return dbCfg
}

// resolveTimeout returns --timeout when set, else the config file value.
// Zero means no limit.
func resolveTimeout(cmd *cobra.Command, projectCfg *config.ProjectConfig) (time.Duration, error) {
	if cmd.Flags().Changed("timeout") || projectCfg.Timeout == "" {
		return globalFlags.timeout, nil
	}
	parsed, err := time.ParseDuration(projectCfg.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q in config: %w", projectCfg.Timeout, schoolfacts.ErrInvalidConfig)
	}
	return parsed, nil
}

// describeTarget names the database for prompts and log lines without
// exposing credentials.
func describeTarget(dbCfg schoolfacts.DatabaseConfig) string {
	if dbCfg.Driver != schoolfacts.DriverPostgres {
		return dbCfg.DSN
	}
	pgCfg, err := pgx.ParseConfig(dbCfg.DSN)
	if err != nil {
		return "postgres"
	}
	return fmt.Sprintf("%s:%d/%s", pgCfg.Host, pgCfg.Port, pgCfg.Database)
}

// jobContext returns a context cancelled on SIGINT/SIGTERM and, when timeout
// is positive, after timeout.
func jobContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	if timeout > 0 {
		var cancelTimeout context.CancelFunc
		ctx, cancelTimeout = context.WithTimeout(ctx, timeout)
		parent := cancel
		cancel = func() {
			cancelTimeout()
			parent()
		}
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(os.Stderr, "\n[INTERRUPT] Received interrupt signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}

// jobEnv is everything a job command needs after flag resolution.
type jobEnv struct {
	project  *config.ProjectConfig
	database schoolfacts.DatabaseConfig
	timeout  time.Duration
	verbose  bool
	logger   *logging.ConsoleLogger
}

func newJobEnv(cmd *cobra.Command) (*jobEnv, error) {
	projectCfg, err := loadProjectConfig()
	if err != nil {
		return nil, err
	}
	timeout, err := resolveTimeout(cmd, projectCfg)
	if err != nil {
		return nil, err
	}
	verbose := getVerboseFlag(cmd)
	return &jobEnv{
		project:  projectCfg,
		database: resolveDatabase(projectCfg),
		timeout:  timeout,
		verbose:  verbose,
		logger:   logging.NewConsoleLogger(verbose),
	}, nil
}

// withStore opens the database, runs fn, and closes the database.
func (e *jobEnv) withStore(fn func(ctx context.Context, st *store.Store) error) error {
	defer func() { _ = e.logger.Sync() }()

	ctx, cancel := jobContext(e.timeout)
	defer cancel()

	e.logger.Verbose("Opening %s database %s", e.database.Driver, describeTarget(e.database))
	st, err := store.Open(ctx, e.database)
	if err != nil {
		return err
	}
	defer st.Close()

	return fn(ctx, st)
}
