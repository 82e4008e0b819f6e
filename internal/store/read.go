package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vvka-141/schoolfacts/pkg/schoolfacts"
)

// ErrNotFound is returned by the read helpers when no row matches the key.
var ErrNotFound = errors.New("not found")

// Summary describes the contents of the database.
type Summary struct {
	Districts     int
	Schools       int
	Enrollment    int
	ImportRuns    int
	SchoolsByType map[schoolfacts.SchoolType]int
	// LatestRuns holds the most recent run of each job, ordered by job name.
	LatestRuns []schoolfacts.ImportRun
}

// EnrollmentRow is a stored school_enrollment row including lunch columns,
// which stay NULL until the finance job has run.
type EnrollmentRow struct {
	schoolfacts.EnrollmentRecord
	PctFreeLunch    *float64 `db:"pct_free_lunch"`
	PctReducedLunch *float64 `db:"pct_reduced_lunch"`
	PctFRL          *float64 `db:"pct_frl"`
}

// DistrictRow is a stored districts row with finance and report-card facts.
type DistrictRow struct {
	LEAID                  string   `db:"leaid"`
	IRN                    string   `db:"irn"`
	Name                   string   `db:"name"`
	TotalSchools           int      `db:"total_schools"`
	TotalRevenue           *int64   `db:"total_revenue"`
	FederalRevenue         *int64   `db:"federal_revenue"`
	StateRevenue           *int64   `db:"state_revenue"`
	LocalRevenue           *int64   `db:"local_revenue"`
	TotalExpenditure       *int64   `db:"total_expenditure"`
	InstructionExpenditure *int64   `db:"instruction_expenditure"`
	PerPupilExpenditure    *int64   `db:"per_pupil_expenditure"`
	PctFromLocalTax        *float64 `db:"pct_from_local_tax"`
	OverallRating          *int     `db:"overall_rating"`
	AchievementScore       *float64 `db:"achievement_score"`
	GraduationRate4yr      *float64 `db:"graduation_rate_4yr"`
	MathProficiency        *float64 `db:"math_proficiency"`
	ReadingProficiency     *float64 `db:"reading_proficiency"`
}

// Summary counts rows per table and reports the latest run of each job.
func (s *Store) Summary(ctx context.Context) (*Summary, error) {
	sum := &Summary{SchoolsByType: make(map[schoolfacts.SchoolType]int)}

	counts := []struct {
		dest  *int
		table string
	}{
		{&sum.Districts, "districts"},
		{&sum.Schools, "schools"},
		{&sum.Enrollment, "school_enrollment"},
		{&sum.ImportRuns, "import_runs"},
	}
	for _, c := range counts {
		if err := s.db.GetContext(ctx, c.dest, "SELECT COUNT(*) FROM "+c.table); err != nil {
			return nil, fmt.Errorf("count %s: %w", c.table, err)
		}
	}

	var byType []struct {
		SchoolType string `db:"school_type"`
		Count      int    `db:"n"`
	}
	err := s.db.SelectContext(ctx, &byType, `
		SELECT COALESCE(school_type, '') AS school_type, COUNT(*) AS n
		FROM schools
		GROUP BY school_type`)
	if err != nil {
		return nil, fmt.Errorf("count schools by type: %w", err)
	}
	for _, row := range byType {
		sum.SchoolsByType[schoolfacts.SchoolType(row.SchoolType)] = row.Count
	}

	err = s.db.SelectContext(ctx, &sum.LatestRuns, `
		SELECT r.run_id, r.job,
		       COALESCE(r.source_path, '') AS source_path,
		       COALESCE(r.source_sha256, '') AS source_sha256,
		       r.rows_read, r.rows_skipped, r.rows_written, r.started_at, r.finished_at
		FROM import_runs r
		WHERE r.finished_at = (SELECT MAX(finished_at) FROM import_runs WHERE job = r.job)
		ORDER BY r.job`)
	if err != nil {
		return nil, fmt.Errorf("load latest runs: %w", err)
	}

	return sum, nil
}

// Enrollment returns the stored enrollment row for one school.
func (s *Store) Enrollment(ctx context.Context, ncessch string) (*EnrollmentRow, error) {
	var row EnrollmentRow
	err := s.db.GetContext(ctx, &row, s.db.Rebind(`
		SELECT ncessch, school_year, total_students,
		       pct_white, pct_black, pct_hispanic, pct_asian, pct_other,
		       pct_free_lunch, pct_reduced_lunch, pct_frl
		FROM school_enrollment
		WHERE ncessch = ?`), ncessch)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("enrollment for %s: %w", ncessch, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load enrollment for %s: %w", ncessch, err)
	}
	return &row, nil
}

// District returns the stored districts row for one district identifier.
func (s *Store) District(ctx context.Context, leaid string) (*DistrictRow, error) {
	var row DistrictRow
	err := s.db.GetContext(ctx, &row, s.db.Rebind(`
		SELECT leaid, COALESCE(irn, '') AS irn, name, COALESCE(total_schools, 0) AS total_schools,
		       total_revenue, federal_revenue, state_revenue, local_revenue,
		       total_expenditure, instruction_expenditure, per_pupil_expenditure,
		       pct_from_local_tax, overall_rating, achievement_score,
		       graduation_rate_4yr, math_proficiency, reading_proficiency
		FROM districts
		WHERE leaid = ?`), leaid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("district %s: %w", leaid, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load district %s: %w", leaid, err)
	}
	return &row, nil
}

// School returns the stored schools row for one school identifier.
func (s *Store) School(ctx context.Context, ncessch string) (*schoolfacts.School, error) {
	var row schoolfacts.School
	err := s.db.GetContext(ctx, &row, s.db.Rebind(`
		SELECT ncessch, leaid, COALESCE(irn, '') AS irn, name,
		       COALESCE(school_type, '') AS school_type,
		       COALESCE(grades_low, '') AS grades_low,
		       COALESCE(grades_high, '') AS grades_high,
		       COALESCE(status, '') AS status,
		       latitude, longitude,
		       COALESCE(address, '') AS address,
		       COALESCE(city, '') AS city,
		       COALESCE(state, '') AS state,
		       COALESCE(zip, '') AS zip
		FROM schools
		WHERE ncessch = ?`), ncessch)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("school %s: %w", ncessch, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load school %s: %w", ncessch, err)
	}
	return &row, nil
}
