package services

import (
	"context"
	"strconv"
	"time"

	"github.com/vvka-141/schoolfacts/pkg/schoolfacts"
)

type mockApprover struct {
	approved bool
	err      error
	calls    int
}

func (m *mockApprover) RequestApproval(_ context.Context, _ string) (bool, error) {
	m.calls++
	return m.approved, m.err
}

type mockLogger struct{}

func (m *mockLogger) Verbose(_ string, _ ...interface{}) {}
func (m *mockLogger) Info(_ string, _ ...interface{})    {}
func (m *mockLogger) Error(_ string, _ ...interface{})   {}

// mockStore records what each job wrote and returns canned errors.
type mockStore struct {
	hasData    bool
	hasDataErr error
	resetErr   error
	seedErr    error
	known      map[string]struct{}
	grades     []schoolfacts.School
	matched    []string
	recordErr  error

	resets      int
	districts   []schoolfacts.District
	schools     []schoolfacts.School
	enrollment  []schoolfacts.EnrollmentRecord
	finance     []schoolfacts.DistrictFinance
	lunch       []schoolfacts.SchoolLunch
	cards       []schoolfacts.ReportCard
	typeUpdates map[string]schoolfacts.SchoolType
	runs        []schoolfacts.ImportRun
}

var _ schoolfacts.Store = (*mockStore)(nil)

func (m *mockStore) HasData(_ context.Context) (bool, error) {
	return m.hasData, m.hasDataErr
}

func (m *mockStore) Reset(_ context.Context) error {
	m.resets++
	return m.resetErr
}

func (m *mockStore) SeedDirectory(_ context.Context, districts []schoolfacts.District, schools []schoolfacts.School) error {
	if m.seedErr != nil {
		return m.seedErr
	}
	m.districts = districts
	m.schools = schools
	return nil
}

func (m *mockStore) KnownSchoolIDs(_ context.Context) (map[string]struct{}, error) {
	return m.known, nil
}

func (m *mockStore) UpsertEnrollment(_ context.Context, records []schoolfacts.EnrollmentRecord) (int, error) {
	m.enrollment = records
	return len(records), nil
}

func (m *mockStore) ApplyFinanceAndLunch(_ context.Context, finance []schoolfacts.DistrictFinance, lunch []schoolfacts.SchoolLunch) (int, int, error) {
	m.finance = finance
	m.lunch = lunch
	return len(finance), len(lunch), nil
}

func (m *mockStore) UpdateReportCards(_ context.Context, cards []schoolfacts.ReportCard) ([]string, error) {
	m.cards = cards
	return m.matched, nil
}

func (m *mockStore) SchoolGrades(_ context.Context) ([]schoolfacts.School, error) {
	return m.grades, nil
}

func (m *mockStore) UpdateSchoolTypes(_ context.Context, types map[string]schoolfacts.SchoolType) (int, error) {
	m.typeUpdates = types
	return len(types), nil
}

func (m *mockStore) RecordRun(_ context.Context, run schoolfacts.ImportRun) error {
	if m.recordErr != nil {
		return m.recordErr
	}
	m.runs = append(m.runs, run)
	return nil
}

func (m *mockStore) Close() error { return nil }

func knownSchools(ids ...string) map[string]struct{} {
	known := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		known[id] = struct{}{}
	}
	return known
}

var fixedStart = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// fixedClock returns ids run-1, run-2, ... and advances one second per call.
func fixedClock() runClock {
	var ids, ticks int
	return runClock{
		now: func() time.Time {
			ticks++
			return fixedStart.Add(time.Duration(ticks-1) * time.Second)
		},
		newID: func() string {
			ids++
			return "run-" + strconv.Itoa(ids)
		},
	}
}
