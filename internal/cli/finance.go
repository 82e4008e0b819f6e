package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/schoolfacts/internal/config"
	"github.com/vvka-141/schoolfacts/internal/services"
	"github.com/vvka-141/schoolfacts/internal/store"
	"github.com/vvka-141/schoolfacts/pkg/schoolfacts"
)

var financeCmd = &cobra.Command{
	Use:   "finance",
	Short: "Attach district finance and school lunch figures",
	Long: `Finance reads the district finance survey (tab-delimited) for the target
districts and the free/reduced-price lunch file (comma-delimited) for seeded
schools, then updates both in a single transaction.

Lunch percentages are written to existing enrollment rows, so run the
enrollment job first.

Examples:
  # Use configured files and districts
  schoolfacts finance

  # Limit finance to one district and skip lunch
  schoolfacts finance --district 3904676 --skip-lunch`,
	Args: cobra.NoArgs,
	RunE: runFinance,
}

type financeFlagValues struct {
	financeFile string
	lunchFile   string
	districts   []string
	skipFinance bool
	skipLunch   bool
}

var financeFlags financeFlagValues

func init() {
	rootCmd.AddCommand(financeCmd)

	financeCmd.Flags().StringVar(&financeFlags.financeFile, "finance-file", "",
		"District finance TSV file (default: sources.finance from config)")
	financeCmd.Flags().StringVar(&financeFlags.lunchFile, "lunch-file", "",
		"Free/reduced lunch CSV file (default: sources.lunch from config)")
	financeCmd.Flags().StringSliceVar(&financeFlags.districts, "district", nil,
		"District identifier (LEAID) to keep finance rows for (can be specified multiple times)\n"+
			"Replaces finance.target_districts from config")
	financeCmd.Flags().BoolVar(&financeFlags.skipFinance, "skip-finance", false,
		"Only load lunch figures")
	financeCmd.Flags().BoolVar(&financeFlags.skipLunch, "skip-lunch", false,
		"Only load finance figures")
}

// buildFinanceConfig builds a FinanceConfig from CLI flags and project config.
func buildFinanceConfig(projectCfg *config.ProjectConfig) schoolfacts.FinanceConfig {
	cfg := schoolfacts.FinanceConfig{
		FinancePath:     projectCfg.Sources.Finance,
		LunchPath:       projectCfg.Sources.Lunch,
		TargetDistricts: projectCfg.Finance.TargetDistricts,
		SkipFinance:     financeFlags.skipFinance,
		SkipLunch:       financeFlags.skipLunch,
	}
	if financeFlags.financeFile != "" {
		cfg.FinancePath = financeFlags.financeFile
	}
	if financeFlags.lunchFile != "" {
		cfg.LunchPath = financeFlags.lunchFile
	}
	if len(financeFlags.districts) > 0 {
		cfg.TargetDistricts = financeFlags.districts
	}
	return cfg
}

func runFinance(cmd *cobra.Command, _ []string) error {
	env, err := newJobEnv(cmd)
	if err != nil {
		return err
	}
	cfg := buildFinanceConfig(env.project)

	return env.withStore(func(ctx context.Context, st *store.Store) error {
		if _, err := services.NewFinanceService(st, env.logger).Run(ctx, cfg); err != nil {
			return fmt.Errorf("finance failed: %w", err)
		}
		return nil
	})
}
