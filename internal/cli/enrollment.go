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

var enrollmentCmd = &cobra.Command{
	Use:   "enrollment",
	Short: "Attach demographic percentages to seeded schools",
	Long: `Enrollment sums the membership file's student counts per school into five
race/ethnicity buckets and stores one percentage breakdown per school.

Rows for schools that were not seeded, rows with a non-numeric count, and
"Not Specified" rows are skipped. Re-running overwrites earlier results and
keeps lunch figures loaded by the finance job.`,
	Args: cobra.NoArgs,
	RunE: runEnrollment,
}

type enrollmentFlagValues struct {
	file       string
	schoolYear string
}

var enrollmentFlags enrollmentFlagValues

func init() {
	rootCmd.AddCommand(enrollmentCmd)

	enrollmentCmd.Flags().StringVar(&enrollmentFlags.file, "file", "",
		"Enrollment CSV file (default: sources.enrollment from config)")
	enrollmentCmd.Flags().StringVar(&enrollmentFlags.schoolYear, "school-year", "",
		"School year stamped on every record (default: school_year from config)")
}

// buildEnrollmentConfig builds an EnrollmentConfig from CLI flags and project config.
func buildEnrollmentConfig(projectCfg *config.ProjectConfig) schoolfacts.EnrollmentConfig {
	cfg := schoolfacts.EnrollmentConfig{
		SourcePath: projectCfg.Sources.Enrollment,
		SchoolYear: projectCfg.SchoolYear,
	}
	if enrollmentFlags.file != "" {
		cfg.SourcePath = enrollmentFlags.file
	}
	if enrollmentFlags.schoolYear != "" {
		cfg.SchoolYear = enrollmentFlags.schoolYear
	}
	return cfg
}

func runEnrollment(cmd *cobra.Command, _ []string) error {
	env, err := newJobEnv(cmd)
	if err != nil {
		return err
	}
	cfg := buildEnrollmentConfig(env.project)

	return env.withStore(func(ctx context.Context, st *store.Store) error {
		res, err := services.NewEnrollmentService(st, env.logger).Run(ctx, cfg)
		if err != nil {
			return fmt.Errorf("enrollment failed: %w", err)
		}
		env.logger.Info("✓ Loaded enrollment for %d schools (run %s)", res.Stats.Written, res.RunID)
		return nil
	})
}
