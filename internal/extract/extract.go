package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vvka-141/schoolfacts/pkg/schoolfacts"
)

// DistrictEntry is one element of the extract's districts array.
type DistrictEntry struct {
	LEAID    string `json:"leaid"`
	Name     string `json:"name"`
	StateID  string `json:"state_id"`
	Location string `json:"location"`
	Phone    string `json:"phone"`
	Website  string `json:"website"`
}

// SchoolEntry is one element of the extract's schools array.
type SchoolEntry struct {
	NCESSCH    string   `json:"ncessch"`
	LEAID      string   `json:"leaid"`
	IRN        string   `json:"irn"`
	Name       string   `json:"name"`
	GradesLow  string   `json:"grades_low"`
	GradesHigh string   `json:"grades_high"`
	Status     string   `json:"status"`
	Address    string   `json:"address"`
	City       string   `json:"city"`
	State      string   `json:"state"`
	Zip        string   `json:"zip"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
}

// Extract is the decoded directory document.
// Nil slices mean the array was absent from the document.
type Extract struct {
	Districts []DistrictEntry `json:"districts"`
	Schools   []SchoolEntry   `json:"schools"`
}

// Directory holds the rows derived from a valid extract.
type Directory struct {
	Districts []schoolfacts.District
	Schools   []schoolfacts.School
	// TypeCounts is the number of schools per derived type.
	TypeCounts map[schoolfacts.SchoolType]int
}

// Decode parses and validates an extract document.
func Decode(r io.Reader) (*Extract, error) {
	var ext Extract
	if err := json.NewDecoder(r).Decode(&ext); err != nil {
		return nil, fmt.Errorf("decode extract: %w: %w", schoolfacts.ErrInvalidExtract, err)
	}
	if err := ext.Validate(); err != nil {
		return nil, err
	}
	return &ext, nil
}

// Validate reports every structural problem in the extract, wrapped in
// ErrInvalidExtract. A valid extract can be seeded without constraint errors.
func (e *Extract) Validate() error {
	var errs []error

	if e.Districts == nil {
		errs = append(errs, errors.New("missing districts array"))
	}
	if e.Schools == nil {
		errs = append(errs, errors.New("missing schools array"))
	}

	districts := make(map[string]struct{}, len(e.Districts))
	for i, d := range e.Districts {
		if d.LEAID == "" {
			errs = append(errs, fmt.Errorf("districts[%d]: leaid is required", i))
			continue
		}
		if d.Name == "" {
			errs = append(errs, fmt.Errorf("districts[%d] (%s): name is required", i, d.LEAID))
		}
		if _, dup := districts[d.LEAID]; dup {
			errs = append(errs, fmt.Errorf("districts[%d]: duplicate leaid %s", i, d.LEAID))
		}
		districts[d.LEAID] = struct{}{}
	}

	schools := make(map[string]struct{}, len(e.Schools))
	for i, s := range e.Schools {
		if s.NCESSCH == "" {
			errs = append(errs, fmt.Errorf("schools[%d]: ncessch is required", i))
			continue
		}
		if s.Name == "" {
			errs = append(errs, fmt.Errorf("schools[%d] (%s): name is required", i, s.NCESSCH))
		}
		if s.LEAID == "" {
			errs = append(errs, fmt.Errorf("schools[%d] (%s): leaid is required", i, s.NCESSCH))
		} else if _, ok := districts[s.LEAID]; !ok {
			errs = append(errs, fmt.Errorf("schools[%d] (%s): unknown district %s", i, s.NCESSCH, s.LEAID))
		}
		if _, dup := schools[s.NCESSCH]; dup {
			errs = append(errs, fmt.Errorf("schools[%d]: duplicate ncessch %s", i, s.NCESSCH))
		}
		schools[s.NCESSCH] = struct{}{}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", schoolfacts.ErrInvalidExtract, errors.Join(errs...))
	}
	return nil
}

// Build derives the district and school rows. The extract must be valid.
func (e *Extract) Build() *Directory {
	schoolsPerDistrict := make(map[string]int, len(e.Districts))
	for _, s := range e.Schools {
		schoolsPerDistrict[s.LEAID]++
	}

	dir := &Directory{
		Districts:  make([]schoolfacts.District, 0, len(e.Districts)),
		Schools:    make([]schoolfacts.School, 0, len(e.Schools)),
		TypeCounts: make(map[schoolfacts.SchoolType]int, len(schoolfacts.SchoolTypes)),
	}

	for _, d := range e.Districts {
		dir.Districts = append(dir.Districts, schoolfacts.District{
			LEAID:        d.LEAID,
			IRN:          IRNFromStateID(d.StateID),
			Name:         d.Name,
			StateID:      d.StateID,
			Location:     d.Location,
			Phone:        d.Phone,
			Website:      d.Website,
			TotalSchools: schoolsPerDistrict[d.LEAID],
		})
	}

	for _, s := range e.Schools {
		schoolType := ClassifyGrades(s.GradesLow, s.GradesHigh)
		dir.TypeCounts[schoolType]++

		status := s.Status
		if status == "" {
			status = schoolfacts.DefaultSchoolStatus
		}

		dir.Schools = append(dir.Schools, schoolfacts.School{
			NCESSCH:    s.NCESSCH,
			LEAID:      s.LEAID,
			IRN:        s.IRN,
			Name:       s.Name,
			SchoolType: schoolType,
			GradesLow:  s.GradesLow,
			GradesHigh: s.GradesHigh,
			Status:     status,
			Latitude:   s.Latitude,
			Longitude:  s.Longitude,
			Address:    s.Address,
			City:       s.City,
			State:      s.State,
			Zip:        s.Zip,
		})
	}

	return dir
}

// IRNFromStateID strips the two-letter state prefix from a state district
// identifier: "OH-046763" becomes "046763". Identifiers without a prefix are
// returned unchanged.
func IRNFromStateID(stateID string) string {
	prefix, rest, found := strings.Cut(stateID, "-")
	if !found || len(prefix) != 2 {
		return stateID
	}
	return rest
}
