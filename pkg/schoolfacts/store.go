package schoolfacts

import "context"

// Store is the persistence boundary shared by every job.
// Implementations are NOT safe for concurrent use; each job owns its Store
// for the duration of the run and closes it when done.
type Store interface {
	// HasData reports whether the database already holds seeded districts.
	HasData(ctx context.Context) (bool, error)

	// Reset discards the database and recreates it with the current schema.
	Reset(ctx context.Context) error

	// SeedDirectory inserts districts then schools in a single transaction.
	SeedDirectory(ctx context.Context, districts []District, schools []School) error

	// KnownSchoolIDs returns the set of school identifiers in the schools table.
	KnownSchoolIDs(ctx context.Context) (map[string]struct{}, error)

	// UpsertEnrollment inserts or overwrites enrollment records by school identifier.
	// Returns the number of records written.
	UpsertEnrollment(ctx context.Context, records []EnrollmentRecord) (int, error)

	// ApplyFinanceAndLunch updates districts with finance facts and enrollment
	// rows with lunch percentages in one transaction. Keys with no matching
	// row are ignored. Returns the number of districts and schools changed.
	ApplyFinanceAndLunch(ctx context.Context, finance []DistrictFinance, lunch []SchoolLunch) (int, int, error)

	// UpdateReportCards updates districts by IRN. Returns the IRNs that matched a district.
	UpdateReportCards(ctx context.Context, cards []ReportCard) ([]string, error)

	// SchoolGrades returns every school's identifier, grade span, and stored type.
	SchoolGrades(ctx context.Context) ([]School, error)

	// UpdateSchoolTypes sets school_type for the given school identifiers.
	UpdateSchoolTypes(ctx context.Context, types map[string]SchoolType) (int, error)

	// RecordRun appends an audit row to import_runs.
	RecordRun(ctx context.Context, run ImportRun) error

	// Close releases the database handle.
	Close() error
}
