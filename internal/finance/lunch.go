package finance

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/vvka-141/schoolfacts/internal/source"
	"github.com/vvka-141/schoolfacts/pkg/schoolfacts"
)

type lunchRow struct {
	NCESSCH       string `csv:"NCESSCH"`
	FreeLunch     string `csv:"FREE_LUNCH"`
	ReducedLunch  string `csv:"REDUCED_LUNCH"`
	TotalStudents string `csv:"TOTAL_STUDENTS"`
}

// LunchParser reads the comma-delimited free and reduced-price lunch file.
type LunchParser struct {
	known  map[string]struct{}
	logger schoolfacts.Logger
}

// NewLunchParser creates a parser restricted to the known school identifiers.
func NewLunchParser(known map[string]struct{}, logger schoolfacts.Logger) *LunchParser {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &LunchParser{known: known, logger: logger}
}

// Parse streams the lunch file from r. Rows for unknown schools, rows with a
// non-numeric field, and rows with no students are skipped. When a school
// appears more than once the last row wins.
func (p *LunchParser) Parse(r io.Reader) ([]schoolfacts.SchoolLunch, schoolfacts.LoadStats, error) {
	var stats schoolfacts.LoadStats

	dec, err := source.NewDecoder(r, source.Comma, "NCESSCH")
	if err != nil {
		return nil, stats, err
	}

	bySchool := make(map[string]schoolfacts.SchoolLunch)
	for {
		var row lunchRow
		err := dec.Decode(&row)
		if errors.Is(err, io.EOF) {
			break
		}
		stats.Read++
		if err != nil {
			if source.IsRowError(err) {
				stats.Skipped++
				continue
			}
			return nil, stats, fmt.Errorf("read lunch row %d: %w", stats.Read, err)
		}

		if _, ok := p.known[row.NCESSCH]; !ok {
			stats.Skipped++
			continue
		}

		lunch, ok := row.toLunch()
		if !ok {
			stats.Skipped++
			continue
		}
		bySchool[row.NCESSCH] = lunch
	}

	ids := make([]string, 0, len(bySchool))
	for id := range bySchool {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]schoolfacts.SchoolLunch, 0, len(ids))
	for _, id := range ids {
		out = append(out, bySchool[id])
	}
	return out, stats, nil
}

func (r lunchRow) toLunch() (schoolfacts.SchoolLunch, bool) {
	free, err := source.ParseCount(r.FreeLunch)
	if err != nil {
		return schoolfacts.SchoolLunch{}, false
	}
	reduced, err := source.ParseCount(r.ReducedLunch)
	if err != nil {
		return schoolfacts.SchoolLunch{}, false
	}
	total, err := source.ParseCount(r.TotalStudents)
	if err != nil || total <= 0 {
		return schoolfacts.SchoolLunch{}, false
	}

	return schoolfacts.SchoolLunch{
		NCESSCH:         r.NCESSCH,
		PctFreeLunch:    Percent1(free, total),
		PctReducedLunch: Percent1(reduced, total),
		PctFRL:          Percent1(free+reduced, total),
	}, true
}
