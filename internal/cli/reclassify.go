package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/schoolfacts/internal/services"
	"github.com/vvka-141/schoolfacts/internal/store"
)

var reclassifyCmd = &cobra.Command{
	Use:   "reclassify",
	Short: "Recompute school types from stored grade spans",
	Long: `Reclassify applies the grade-span rules to every stored school and updates
the schools whose type differs. Running it again changes nothing.`,
	Args: cobra.NoArgs,
	RunE: runReclassify,
}

func init() {
	rootCmd.AddCommand(reclassifyCmd)
}

func runReclassify(cmd *cobra.Command, _ []string) error {
	env, err := newJobEnv(cmd)
	if err != nil {
		return err
	}

	return env.withStore(func(ctx context.Context, st *store.Store) error {
		if _, err := services.NewReclassifyService(st, env.logger).Run(ctx); err != nil {
			return fmt.Errorf("reclassify failed: %w", err)
		}
		return nil
	})
}
