package finance

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/vvka-141/schoolfacts/internal/source"
	"github.com/vvka-141/schoolfacts/pkg/schoolfacts"
)

type financeRow struct {
	LEAID    string `csv:"LEAID"`
	TotalRev string `csv:"TOTALREV"`
	FedRev   string `csv:"TFEDREV"`
	StateRev string `csv:"TSTREV"`
	LocalRev string `csv:"TLOCREV"`
	TotalExp string `csv:"TOTALEXP"`
	InstExp  string `csv:"TCURINST"`
	Enrolled string `csv:"V33"`
}

// FinanceParser reads the tab-delimited district finance file.
type FinanceParser struct {
	targets map[string]struct{}
	logger  schoolfacts.Logger
}

// NewFinanceParser creates a parser that keeps only the given districts.
func NewFinanceParser(targetDistricts []string, logger schoolfacts.Logger) *FinanceParser {
	if logger == nil {
		panic("logger cannot be nil")
	}
	targets := make(map[string]struct{}, len(targetDistricts))
	for _, id := range targetDistricts {
		targets[id] = struct{}{}
	}
	return &FinanceParser{targets: targets, logger: logger}
}

// Parse streams the finance file from r. Rows outside the allow-list are
// read but neither skipped nor written, so Skipped counts only rows that
// failed to parse. Rows with a non-numeric field are logged and skipped. When a
// district appears more than once the last row wins. Results are ordered by
// district identifier.
func (p *FinanceParser) Parse(r io.Reader) ([]schoolfacts.DistrictFinance, schoolfacts.LoadStats, error) {
	var stats schoolfacts.LoadStats

	dec, err := source.NewDecoder(r, source.Tab, "LEAID")
	if err != nil {
		return nil, stats, err
	}

	byDistrict := make(map[string]schoolfacts.DistrictFinance)
	var filtered int
	for {
		var row financeRow
		err := dec.Decode(&row)
		if errors.Is(err, io.EOF) {
			break
		}
		stats.Read++
		if err != nil {
			if source.IsRowError(err) {
				p.logger.Verbose("finance line %d: %v", stats.Read+1, err)
				stats.Skipped++
				continue
			}
			return nil, stats, fmt.Errorf("read finance row %d: %w", stats.Read, err)
		}

		if _, ok := p.targets[row.LEAID]; !ok {
			filtered++
			continue
		}

		fin, err := row.toFinance()
		if err != nil {
			p.logger.Verbose("district %s: %v", row.LEAID, err)
			stats.Skipped++
			continue
		}
		byDistrict[row.LEAID] = fin
	}
	p.logger.Verbose("finance: %d rows outside the target districts", filtered)

	ids := make([]string, 0, len(byDistrict))
	for id := range byDistrict {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]schoolfacts.DistrictFinance, 0, len(ids))
	for _, id := range ids {
		out = append(out, byDistrict[id])
	}
	return out, stats, nil
}

func (r financeRow) toFinance() (schoolfacts.DistrictFinance, error) {
	var firstErr error
	parse := func(column, raw string) int64 {
		v, err := source.ParseCount(raw)
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("invalid %s %q", column, raw)
		}
		return v
	}

	totalRev := parse("TOTALREV", r.TotalRev)
	fedRev := parse("TFEDREV", r.FedRev)
	stateRev := parse("TSTREV", r.StateRev)
	localRev := parse("TLOCREV", r.LocalRev)
	totalExp := parse("TOTALEXP", r.TotalExp)
	instExp := parse("TCURINST", r.InstExp)
	enrolled := parse("V33", r.Enrolled)
	if firstErr != nil {
		return schoolfacts.DistrictFinance{}, firstErr
	}

	return schoolfacts.DistrictFinance{
		LEAID:                  r.LEAID,
		TotalRevenue:           totalRev,
		FederalRevenue:         fedRev,
		StateRevenue:           stateRev,
		LocalRevenue:           localRev,
		TotalExpenditure:       totalExp,
		InstructionExpenditure: instExp,
		PerPupilExpenditure:    PerPupil(totalExp, enrolled),
		PctFromLocalTax:        Percent1(localRev, totalRev),
	}, nil
}

// PerPupil is expenditure divided by enrollment, rounded half to even.
// It is 0 when enrollment is not positive.
func PerPupil(expenditure, enrollment int64) int64 {
	if enrollment <= 0 {
		return 0
	}
	return int64(math.RoundToEven(float64(expenditure) / float64(enrollment)))
}

// Percent1 is part/whole as a percentage rounded to one decimal place.
// It is 0 when whole is not positive.
func Percent1(part, whole int64) float64 {
	if whole <= 0 {
		return 0
	}
	return roundTenths(float64(part) / float64(whole) * 100)
}

// roundTenths rounds the exact binary value of v to one decimal place,
// ties to even.
func roundTenths(v float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	return r
}
