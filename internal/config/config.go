package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/vvka-141/schoolfacts/pkg/schoolfacts"
)

// ErrConfigNotFound is returned when an explicitly requested config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

type DatabaseConfig struct {
	Driver string `yaml:"driver" env:"SCHOOLFACTS_DATABASE_DRIVER"`
	DSN    string `yaml:"dsn" env:"SCHOOLFACTS_DATABASE_DSN"`
}

type SourcesConfig struct {
	Extract    string `yaml:"extract" env:"SCHOOLFACTS_SOURCE_EXTRACT" env-default:"raw-data/real-data-extract.json"`
	Enrollment string `yaml:"enrollment" env:"SCHOOLFACTS_SOURCE_ENROLLMENT" env-default:"raw-data/ccd_sch_052_2324_l_1a_073124.csv"`
	Finance    string `yaml:"finance" env:"SCHOOLFACTS_SOURCE_FINANCE" env-default:"raw-data/sdf22_1a.txt"`
	Lunch      string `yaml:"lunch" env:"SCHOOLFACTS_SOURCE_LUNCH" env-default:"raw-data/ccd_sch_033_2324_l_1a_073124.csv"`
	ReportCard string `yaml:"report_card" env:"SCHOOLFACTS_SOURCE_REPORT_CARD" env-default:"raw-data/report-card.yaml"`
}

type FinanceConfig struct {
	TargetDistricts []string `yaml:"target_districts" env:"SCHOOLFACTS_FINANCE_TARGET_DISTRICTS" env-default:"3904676,3904702" env-separator:","`
}

// ProjectConfig is the merged view of schoolfacts.yaml, the environment, and
// built-in defaults. Environment variables override file values; defaults
// fill whatever neither sets. Command-line flags are applied on top by the CLI.
type ProjectConfig struct {
	Database   DatabaseConfig `yaml:"database"`
	Sources    SourcesConfig  `yaml:"sources"`
	SchoolYear string         `yaml:"school_year" env:"SCHOOLFACTS_SCHOOL_YEAR"`
	Finance    FinanceConfig  `yaml:"finance"`
	Timeout    string         `yaml:"timeout" env:"SCHOOLFACTS_TIMEOUT"`
}

// Load reads the project configuration.
//
// With an empty path, schoolfacts.yaml in the working directory is used when
// present and silently skipped otherwise. An explicit path must exist.
func Load(path string) (*ProjectConfig, error) {
	explicit := path != ""
	if !explicit {
		path = schoolfacts.ConfigFileName
	}

	var cfg ProjectConfig

	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read %s: %w: %w", path, schoolfacts.ErrInvalidConfig, err)
		}
	case os.IsNotExist(statErr) && explicit:
		return nil, fmt.Errorf("%s: %w: %w", path, schoolfacts.ErrInvalidConfig, ErrConfigNotFound)
	case os.IsNotExist(statErr):
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("read environment: %w: %w", schoolfacts.ErrInvalidConfig, err)
		}
	default:
		return nil, fmt.Errorf("stat %s: %w", path, statErr)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// applyDefaults fills the database and school year settings neither the file
// nor the environment set. A PostgreSQL driver without a DSN is left for
// validation to reject.
func (c *ProjectConfig) applyDefaults() {
	if c.Database.Driver == "" {
		c.Database.Driver = schoolfacts.DefaultDriver
	}
	if c.Database.DSN == "" && c.Database.Driver == schoolfacts.DriverSQLite {
		c.Database.DSN = schoolfacts.DefaultDSN
	}
	if c.SchoolYear == "" {
		c.SchoolYear = schoolfacts.DefaultSchoolYear
	}
}
