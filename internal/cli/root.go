package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "schoolfacts",
	Short: "Load public school and district data into a queryable database",
	Long: `schoolfacts builds a small database of school districts, schools, enrollment
demographics, district finance, and subsidized-lunch figures from public
education data files.

Run the jobs in order:
  schoolfacts seed          Rebuild districts and schools from the extract
  schoolfacts enrollment    Attach demographic percentages per school
  schoolfacts finance       Attach district finance and school lunch figures
  schoolfacts reportcard    Attach state report-card ratings per district
  schoolfacts summary       Show what the database holds

Every path and parameter has a default, read from schoolfacts.yaml and
SCHOOLFACTS_* environment variables (a .env file is loaded first).

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or parameters
  11 - Database connection failed
  12 - User denied database reset approval
  13 - Missing input file or malformed input document`,
	SilenceUsage: true,
}

type globalFlagValues struct {
	configPath string
	driver     string
	dsn        string
	verbose    bool
	timeout    time.Duration
}

var globalFlags globalFlagValues

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&globalFlags.configPath, "config", "",
		"Path to the project config file (default: ./schoolfacts.yaml when present)")
	rootCmd.PersistentFlags().StringVar(&globalFlags.driver, "driver", "",
		"Database driver: sqlite3|pgx\n"+
			"Precedence: --driver > $SCHOOLFACTS_DATABASE_DRIVER > schoolfacts.yaml > sqlite3")
	rootCmd.PersistentFlags().StringVar(&globalFlags.dsn, "dsn", "",
		"SQLite file path or PostgreSQL connection string\n"+
			"Precedence: --dsn > $SCHOOLFACTS_DATABASE_DSN > schoolfacts.yaml > data/schools.db")
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.verbose, "verbose", "v", false,
		"Enable verbose output for all commands")
	rootCmd.PersistentFlags().DurationVar(&globalFlags.timeout, "timeout", 0,
		"Abort the job after this long (default: no limit)\n"+
			"Examples: 30s, 5m")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
