package schoolfacts

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Job completed successfully
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration or parameters
	ExitConnectionError = 11 // Failed to open the database
	ExitApprovalDenied  = 12 // User denied database reset approval
	ExitInvalidInput    = 13 // Missing input file or malformed input document
)

// Supported database drivers. The values are the database/sql driver names.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

const (
	// DefaultDriver is used when no driver is configured.
	DefaultDriver = DriverSQLite

	// DefaultDSN is the SQLite database file used when no DSN is configured.
	DefaultDSN = "data/schools.db"

	// DefaultSchoolYear is stamped on enrollment records when none is configured.
	DefaultSchoolYear = "2023-24"

	// DefaultSchoolStatus is stored for schools whose extract status is empty.
	DefaultSchoolStatus = "Open"

	// ConfigFileName is the optional project configuration file.
	ConfigFileName = "schoolfacts.yaml"

	// DefaultForceApprovalCountdown is how long --force waits before a reset,
	// giving the operator a last chance to press Ctrl+C.
	DefaultForceApprovalCountdown = 3 * time.Second
)

// Job names recorded in the import_runs table.
const (
	JobSeed       = "seed"
	JobEnrollment = "enrollment"
	JobFinance    = "finance"
	JobLunch      = "lunch"
	JobReportCard = "reportcard"
	JobReclassify = "reclassify"
)
