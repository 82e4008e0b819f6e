package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/vvka-141/schoolfacts/internal/store"
	"github.com/vvka-141/schoolfacts/internal/tui"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show row counts and the latest run of each job",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	env, err := newJobEnv(cmd)
	if err != nil {
		return err
	}

	return env.withStore(func(ctx context.Context, st *store.Store) error {
		sum, err := st.Summary(ctx)
		if err != nil {
			return err
		}
		return tui.RenderSummary(cmd.OutOrStdout(), describeTarget(env.database), sum)
	})
}
