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

var reportCardCmd = &cobra.Command{
	Use:   "reportcard",
	Short: "Attach state report-card ratings to districts",
	Long: `Reportcard reads a YAML document of district report-card facts and updates
districts by state IRN. The whole document is validated before any update.

File format:
  districts:
    - irn: "046763"
      overall_rating: 5
      achievement_score: 94.9
      graduation_rate_4yr: 96.2
      math_proficiency: 82.0
      reading_proficiency: 87.0`,
	Args: cobra.NoArgs,
	RunE: runReportCard,
}

type reportCardFlagValues struct {
	file string
}

var reportCardFlags reportCardFlagValues

func init() {
	rootCmd.AddCommand(reportCardCmd)

	reportCardCmd.Flags().StringVar(&reportCardFlags.file, "file", "",
		"Report-card YAML file (default: sources.report_card from config)")
}

// buildReportCardConfig builds a ReportCardConfig from CLI flags and project config.
func buildReportCardConfig(projectCfg *config.ProjectConfig) schoolfacts.ReportCardConfig {
	path := projectCfg.Sources.ReportCard
	if reportCardFlags.file != "" {
		path = reportCardFlags.file
	}
	return schoolfacts.ReportCardConfig{SourcePath: path}
}

func runReportCard(cmd *cobra.Command, _ []string) error {
	env, err := newJobEnv(cmd)
	if err != nil {
		return err
	}
	cfg := buildReportCardConfig(env.project)

	return env.withStore(func(ctx context.Context, st *store.Store) error {
		res, err := services.NewReportCardService(st, env.logger).Run(ctx, cfg)
		if err != nil {
			return fmt.Errorf("report card failed: %w", err)
		}
		env.logger.Info("✓ Updated %d districts (run %s)", len(res.Matched), res.RunID)
		return nil
	})
}
