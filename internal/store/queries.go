package store

const insertDistrictSQL = `
INSERT INTO districts (leaid, irn, name, state_id, location, phone, website, total_schools)
VALUES (:leaid, :irn, :name, :state_id, :location, :phone, :website, :total_schools)`

const insertSchoolSQL = `
INSERT INTO schools (
    ncessch, leaid, irn, name, school_type, grades_low, grades_high, status,
    latitude, longitude, address, city, state, zip
) VALUES (
    :ncessch, :leaid, :irn, :name, :school_type, :grades_low, :grades_high, :status,
    :latitude, :longitude, :address, :city, :state, :zip
)`

const upsertEnrollmentSQL = `
INSERT INTO school_enrollment (
    ncessch, school_year, total_students,
    pct_white, pct_black, pct_hispanic, pct_asian, pct_other
) VALUES (
    :ncessch, :school_year, :total_students,
    :pct_white, :pct_black, :pct_hispanic, :pct_asian, :pct_other
)
ON CONFLICT (ncessch) DO UPDATE SET
    school_year = excluded.school_year,
    total_students = excluded.total_students,
    pct_white = excluded.pct_white,
    pct_black = excluded.pct_black,
    pct_hispanic = excluded.pct_hispanic,
    pct_asian = excluded.pct_asian,
    pct_other = excluded.pct_other`

const updateDistrictFinanceSQL = `
UPDATE districts SET
    total_revenue = :total_revenue,
    federal_revenue = :federal_revenue,
    state_revenue = :state_revenue,
    local_revenue = :local_revenue,
    total_expenditure = :total_expenditure,
    instruction_expenditure = :instruction_expenditure,
    per_pupil_expenditure = :per_pupil_expenditure,
    pct_from_local_tax = :pct_from_local_tax
WHERE leaid = :leaid`

const updateSchoolLunchSQL = `
UPDATE school_enrollment SET
    pct_free_lunch = :pct_free_lunch,
    pct_reduced_lunch = :pct_reduced_lunch,
    pct_frl = :pct_frl
WHERE ncessch = :ncessch`

const updateReportCardSQL = `
UPDATE districts SET
    overall_rating = :overall_rating,
    achievement_score = :achievement_score,
    graduation_rate_4yr = :graduation_rate_4yr,
    math_proficiency = :math_proficiency,
    reading_proficiency = :reading_proficiency
WHERE irn = :irn`

const updateSchoolTypeSQL = `
UPDATE schools SET school_type = :school_type WHERE ncessch = :ncessch`

const insertImportRunSQL = `
INSERT INTO import_runs (
    run_id, job, source_path, source_sha256,
    rows_read, rows_skipped, rows_written, started_at, finished_at
) VALUES (
    :run_id, :job, :source_path, :source_sha256,
    :rows_read, :rows_skipped, :rows_written, :started_at, :finished_at
)`
