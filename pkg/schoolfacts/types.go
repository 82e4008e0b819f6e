package schoolfacts

import (
	"errors"
	"fmt"
	"time"
)

// DatabaseConfig identifies the destination database.
type DatabaseConfig struct {
	// Driver is the database/sql driver name: DriverSQLite or DriverPostgres
	Driver string

	// DSN is a file path for SQLite or a connection string for PostgreSQL
	DSN string
}

// Validate checks that the driver is supported and a DSN is present.
func (c *DatabaseConfig) Validate() error {
	var errs []error

	switch c.Driver {
	case DriverSQLite, DriverPostgres:
	case "":
		errs = append(errs, fmt.Errorf("database driver is required: %w", ErrInvalidConfig))
	default:
		errs = append(errs, fmt.Errorf("driver %q: %w", c.Driver, ErrUnsupportedDriver))
	}

	if c.DSN == "" {
		errs = append(errs, fmt.Errorf("database DSN is required: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// SeedConfig contains the parameters for bootstrapping the database.
type SeedConfig struct {
	// ExtractPath is the JSON document holding the districts and schools arrays
	ExtractPath string
}

// Validate checks if the SeedConfig has all required fields.
func (c *SeedConfig) Validate() error {
	if c.ExtractPath == "" {
		return fmt.Errorf("extract path is required: %w", ErrInvalidConfig)
	}
	return nil
}

// EnrollmentConfig contains the parameters for the enrollment aggregation job.
type EnrollmentConfig struct {
	// SourcePath is the comma-delimited enrollment-by-race file
	SourcePath string

	// SchoolYear is stamped on every enrollment record
	SchoolYear string
}

// Validate checks if the EnrollmentConfig has all required fields.
func (c *EnrollmentConfig) Validate() error {
	var errs []error

	if c.SourcePath == "" {
		errs = append(errs, fmt.Errorf("enrollment source path is required: %w", ErrInvalidConfig))
	}
	if c.SchoolYear == "" {
		errs = append(errs, fmt.Errorf("school year is required: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// FinanceConfig contains the parameters for the finance and lunch job.
type FinanceConfig struct {
	// FinancePath is the tab-delimited district finance (F-33) file
	FinancePath string

	// LunchPath is the comma-delimited free/reduced lunch file
	LunchPath string

	// TargetDistricts is the allow-list of district identifiers whose
	// finance rows are kept. All other districts are ignored.
	TargetDistricts []string

	// SkipFinance disables the finance half of the job
	SkipFinance bool

	// SkipLunch disables the lunch half of the job
	SkipLunch bool
}

// Validate checks if the FinanceConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *FinanceConfig) Validate() error {
	var errs []error

	if c.SkipFinance && c.SkipLunch {
		errs = append(errs, fmt.Errorf("finance and lunch cannot both be skipped: %w", ErrInvalidConfig))
	}

	if !c.SkipFinance {
		if c.FinancePath == "" {
			errs = append(errs, fmt.Errorf("finance source path is required: %w", ErrInvalidConfig))
		}
		if len(c.TargetDistricts) == 0 {
			errs = append(errs, fmt.Errorf("at least one target district is required: %w", ErrInvalidConfig))
		}
	}

	if !c.SkipLunch && c.LunchPath == "" {
		errs = append(errs, fmt.Errorf("lunch source path is required: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// ReportCardConfig contains the parameters for the report-card job.
type ReportCardConfig struct {
	// SourcePath is the YAML document listing district report-card facts
	SourcePath string
}

// Validate checks if the ReportCardConfig has all required fields.
func (c *ReportCardConfig) Validate() error {
	if c.SourcePath == "" {
		return fmt.Errorf("report card source path is required: %w", ErrInvalidConfig)
	}
	return nil
}

// SchoolType is the grade-band category derived from a school's grade span.
type SchoolType string

const (
	SchoolTypeElementary SchoolType = "Elementary"
	SchoolTypeMiddle     SchoolType = "Middle"
	SchoolTypeHigh       SchoolType = "High"
	SchoolTypeOther      SchoolType = "Other"
)

// SchoolTypes lists every category in display order.
var SchoolTypes = []SchoolType{
	SchoolTypeElementary,
	SchoolTypeMiddle,
	SchoolTypeHigh,
	SchoolTypeOther,
}

// District is a row of the districts table as written by the seeder.
type District struct {
	LEAID        string `db:"leaid"`
	IRN          string `db:"irn"`
	Name         string `db:"name"`
	StateID      string `db:"state_id"`
	Location     string `db:"location"`
	Phone        string `db:"phone"`
	Website      string `db:"website"`
	TotalSchools int    `db:"total_schools"`
}

// School is a row of the schools table as written by the seeder.
type School struct {
	NCESSCH    string     `db:"ncessch"`
	LEAID      string     `db:"leaid"`
	IRN        string     `db:"irn"`
	Name       string     `db:"name"`
	SchoolType SchoolType `db:"school_type"`
	GradesLow  string     `db:"grades_low"`
	GradesHigh string     `db:"grades_high"`
	Status     string     `db:"status"`
	Latitude   *float64   `db:"latitude"`
	Longitude  *float64   `db:"longitude"`
	Address    string     `db:"address"`
	City       string     `db:"city"`
	State      string     `db:"state"`
	Zip        string     `db:"zip"`
}

// EnrollmentRecord is the demographic breakdown of one school.
// The five percentages sum to 100 within floating-point tolerance.
type EnrollmentRecord struct {
	NCESSCH       string  `db:"ncessch"`
	SchoolYear    string  `db:"school_year"`
	TotalStudents int     `db:"total_students"`
	PctWhite      float64 `db:"pct_white"`
	PctBlack      float64 `db:"pct_black"`
	PctHispanic   float64 `db:"pct_hispanic"`
	PctAsian      float64 `db:"pct_asian"`
	PctOther      float64 `db:"pct_other"`
}

// DistrictFinance holds revenue and expenditure facts for one district.
type DistrictFinance struct {
	LEAID                  string  `db:"leaid"`
	TotalRevenue           int64   `db:"total_revenue"`
	FederalRevenue         int64   `db:"federal_revenue"`
	StateRevenue           int64   `db:"state_revenue"`
	LocalRevenue           int64   `db:"local_revenue"`
	TotalExpenditure       int64   `db:"total_expenditure"`
	InstructionExpenditure int64   `db:"instruction_expenditure"`
	PerPupilExpenditure    int64   `db:"per_pupil_expenditure"`
	PctFromLocalTax        float64 `db:"pct_from_local_tax"`
}

// SchoolLunch holds subsidized-lunch percentages for one school.
type SchoolLunch struct {
	NCESSCH         string  `db:"ncessch"`
	PctFreeLunch    float64 `db:"pct_free_lunch"`
	PctReducedLunch float64 `db:"pct_reduced_lunch"`
	PctFRL          float64 `db:"pct_frl"`
}

// ReportCard holds state report-card facts for one district, matched by IRN.
// Nil fields are written as NULL.
type ReportCard struct {
	IRN                string   `yaml:"irn" db:"irn"`
	OverallRating      *int     `yaml:"overall_rating" db:"overall_rating"`
	AchievementScore   *float64 `yaml:"achievement_score" db:"achievement_score"`
	GraduationRate4yr  *float64 `yaml:"graduation_rate_4yr" db:"graduation_rate_4yr"`
	MathProficiency    *float64 `yaml:"math_proficiency" db:"math_proficiency"`
	ReadingProficiency *float64 `yaml:"reading_proficiency" db:"reading_proficiency"`
}

// ImportRun is the audit record of one job invocation.
type ImportRun struct {
	RunID        string    `db:"run_id"`
	Job          string    `db:"job"`
	SourcePath   string    `db:"source_path"`
	SourceSHA256 string    `db:"source_sha256"`
	RowsRead     int       `db:"rows_read"`
	RowsSkipped  int       `db:"rows_skipped"`
	RowsWritten  int       `db:"rows_written"`
	StartedAt    time.Time `db:"started_at"`
	FinishedAt   time.Time `db:"finished_at"`
}

// LoadStats counts rows through one extraction pass.
type LoadStats struct {
	Read    int
	Skipped int
	Written int
}
