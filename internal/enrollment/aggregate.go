// Package enrollment sums per-school student counts by race/ethnicity and
// converts them into demographic percentages.
package enrollment

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/vvka-141/schoolfacts/internal/source"
	"github.com/vvka-141/schoolfacts/pkg/schoolfacts"
)

// Required columns of the enrollment file.
const (
	ColumnSchoolID      = "NCESSCH"
	ColumnRaceEthnicity = "RACE_ETHNICITY"
	ColumnStudentCount  = "STUDENT_COUNT"
)

type row struct {
	NCESSCH       string `csv:"NCESSCH"`
	RaceEthnicity string `csv:"RACE_ETHNICITY"`
	StudentCount  string `csv:"STUDENT_COUNT"`
}

// tally accumulates counts for one school.
type tally struct {
	total   int64
	buckets [bucketCount]int64
}

// Aggregator folds enrollment rows into per-school records.
type Aggregator struct {
	known      map[string]struct{}
	schoolYear string
	logger     schoolfacts.Logger
}

// NewAggregator creates an Aggregator restricted to the known school identifiers.
func NewAggregator(known map[string]struct{}, schoolYear string, logger schoolfacts.Logger) *Aggregator {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Aggregator{known: known, schoolYear: schoolYear, logger: logger}
}

// Aggregate streams the comma-delimited enrollment file from r. Rows for
// unknown schools, rows with a non-numeric count, and rows labelled
// "Not Specified" are skipped and counted. Schools whose total is zero are
// dropped. Records are returned in ascending school order.
func (a *Aggregator) Aggregate(r io.Reader) ([]schoolfacts.EnrollmentRecord, schoolfacts.LoadStats, error) {
	var stats schoolfacts.LoadStats

	dec, err := source.NewDecoder(r, source.Comma, ColumnSchoolID, ColumnRaceEthnicity, ColumnStudentCount)
	if err != nil {
		return nil, stats, err
	}

	tallies := make(map[string]*tally)
	for {
		var rec row
		err := dec.Decode(&rec)
		if errors.Is(err, io.EOF) {
			break
		}
		stats.Read++
		if err != nil {
			if source.IsRowError(err) {
				a.logger.Verbose("line %d: %v", stats.Read+1, err)
				stats.Skipped++
				continue
			}
			return nil, stats, fmt.Errorf("read enrollment row %d: %w", stats.Read, err)
		}

		if _, ok := a.known[rec.NCESSCH]; !ok {
			stats.Skipped++
			continue
		}

		count, err := source.ParseCount(rec.StudentCount)
		if err != nil {
			a.logger.Verbose("school %s: invalid student count %q", rec.NCESSCH, rec.StudentCount)
			stats.Skipped++
			continue
		}

		bucket, ok := Classify(rec.RaceEthnicity)
		if !ok {
			stats.Skipped++
			continue
		}

		t := tallies[rec.NCESSCH]
		if t == nil {
			t = &tally{}
			tallies[rec.NCESSCH] = t
		}
		t.buckets[bucket] += count
		t.total += count
	}

	return a.records(tallies), stats, nil
}

func (a *Aggregator) records(tallies map[string]*tally) []schoolfacts.EnrollmentRecord {
	ids := make([]string, 0, len(tallies))
	for id, t := range tallies {
		if t.total > 0 {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	records := make([]schoolfacts.EnrollmentRecord, 0, len(ids))
	for _, id := range ids {
		t := tallies[id]
		pct := func(b Bucket) float64 {
			return float64(t.buckets[b]) / float64(t.total) * 100
		}
		records = append(records, schoolfacts.EnrollmentRecord{
			NCESSCH:       id,
			SchoolYear:    a.schoolYear,
			TotalStudents: int(t.total),
			PctWhite:      pct(BucketWhite),
			PctBlack:      pct(BucketBlack),
			PctHispanic:   pct(BucketHispanic),
			PctAsian:      pct(BucketAsian),
			PctOther:      pct(BucketOther),
		})
	}
	return records
}
