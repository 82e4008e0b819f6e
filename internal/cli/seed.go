package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/schoolfacts/internal/config"
	"github.com/vvka-141/schoolfacts/internal/services"
	"github.com/vvka-141/schoolfacts/internal/store"
	"github.com/vvka-141/schoolfacts/internal/tui"
	"github.com/vvka-141/schoolfacts/internal/ui"
	"github.com/vvka-141/schoolfacts/pkg/schoolfacts"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Rebuild districts and schools from the directory extract",
	Long: `Seed validates the directory extract, then deletes and recreates the
database and inserts every district and school.

The whole extract is checked before anything is touched: missing arrays,
missing identifiers, duplicates, and schools that reference an unknown
district are all reported together.

When the database already holds data, the reset must be confirmed by typing
the database name. Use --force to skip the prompt (a short countdown is still
shown). Without a terminal and without --force, the reset is refused.

Examples:
  # Seed from the configured extract into data/schools.db
  schoolfacts seed

  # Seed a PostgreSQL database from CI
  schoolfacts seed --driver pgx --dsn postgres://user@host/schools --force`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

type seedFlagValues struct {
	extract string
	force   bool
}

var seedFlags seedFlagValues

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().StringVar(&seedFlags.extract, "extract", "",
		"Directory extract JSON file (default: sources.extract from config)")
	seedCmd.Flags().BoolVar(&seedFlags.force, "force", false,
		"Skip the interactive approval prompt before resetting a database that holds data")
}

// buildSeedConfig builds a SeedConfig from CLI flags and project config.
func buildSeedConfig(projectCfg *config.ProjectConfig) schoolfacts.SeedConfig {
	path := projectCfg.Sources.Extract
	if seedFlags.extract != "" {
		path = seedFlags.extract
	}
	return schoolfacts.SeedConfig{ExtractPath: path}
}

// selectApprover picks the approval strategy for a reset.
func selectApprover(force, interactive, verbose bool) schoolfacts.Approver {
	switch {
	case force:
		return ui.NewForcedApprover(verbose)
	case interactive:
		return ui.NewInteractiveApprover(verbose)
	default:
		return &refusingApprover{output: os.Stderr}
	}
}

// refusingApprover denies every reset. It is used when no one can be asked.
type refusingApprover struct {
	output io.Writer
}

func (a *refusingApprover) RequestApproval(_ context.Context, target string) (bool, error) {
	fmt.Fprintf(a.output, "%s already holds data; rerun with --force to reset it without a terminal\n", target)
	return false, nil
}

func runSeed(cmd *cobra.Command, _ []string) error {
	env, err := newJobEnv(cmd)
	if err != nil {
		return err
	}
	cfg := buildSeedConfig(env.project)
	approver := selectApprover(seedFlags.force, tui.IsInteractive(), env.verbose)
	target := describeTarget(env.database)

	return env.withStore(func(ctx context.Context, st *store.Store) error {
		seeder := services.NewSeedService(st, approver, env.logger)
		res, err := seeder.Seed(ctx, cfg, target)
		if err != nil {
			return fmt.Errorf("seed failed: %w", err)
		}
		env.logger.Info("✓ Seeded %d districts and %d schools (run %s)", res.Districts, res.Schools, res.RunID)
		return nil
	})
}
