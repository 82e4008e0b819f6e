package fixtures

import (
	"fmt"
	"os"
	"path/filepath"
)

// Default file names written by SourceSetBuilder.
const (
	ExtractFile    = "real-data-extract.json"
	EnrollmentFile = "enrollment.csv"
	FinanceFile    = "finance.tsv"
	LunchFile      = "lunch.csv"
	ReportCardFile = "report-card.yaml"
)

// District identifiers used by the default fixture.
const (
	OlentangyLEAID = "3904676"
	OlentangyIRN   = "046763"
	DublinLEAID    = "3904702"
	DublinIRN      = "047027"
)

// DefaultExtract holds two districts and four schools, one of each type.
const DefaultExtract = `{
  "districts": [
    {"leaid": "3904676", "name": "Olentangy Local", "state_id": "OH-046763", "location": "Lewis Center", "phone": "740-657-4050", "website": "https://www.olentangy.k12.oh.us"},
    {"leaid": "3904702", "name": "Dublin City", "state_id": "OH-047027", "location": "Dublin", "phone": "614-764-5913", "website": "https://www.dublinschools.net"}
  ],
  "schools": [
    {"ncessch": "390467600001", "leaid": "3904676", "name": "Arrowhead Elementary", "grades_low": "KG", "grades_high": "05", "status": "", "address": "2385 Hollenback Rd", "city": "Lewis Center", "state": "OH", "zip": "43035", "latitude": 40.1757, "longitude": -82.9861},
    {"ncessch": "390467600002", "leaid": "3904676", "name": "Olentangy High", "grades_low": "09", "grades_high": "12", "status": "Open", "city": "Lewis Center", "state": "OH", "zip": "43035"},
    {"ncessch": "390470200001", "leaid": "3904702", "name": "Karrer Middle", "grades_low": "06", "grades_high": "08", "status": "Open", "city": "Dublin", "state": "OH", "zip": "43016"},
    {"ncessch": "390470200002", "leaid": "3904702", "name": "Dublin Academy", "grades_low": "PK", "grades_high": "12", "status": "Open", "city": "Dublin", "state": "OH", "zip": "43017"}
  ]
}`

// DefaultEnrollment covers three of the four schools plus one unknown school.
const DefaultEnrollment = `SCHOOL_YEAR,NCESSCH,GRADE,RACE_ETHNICITY,SEX,STUDENT_COUNT
2023-2024,390467600001,Grade 1,White,Female,60
2023-2024,390467600001,Grade 1,Asian,Male,20
2023-2024,390467600001,Grade 1,Hispanic/Latino,Female,10
2023-2024,390467600001,Grade 1,Two or more races,Male,10
2023-2024,390467600001,Grade 1,Not Specified,Male,5
2023-2024,390467600002,Grade 9,White,Female,150
2023-2024,390467600002,Grade 9,Black or African American,Male,50
2023-2024,390470200001,Grade 6,White,Female,75
2023-2024,390470200001,Grade 6,Asian,Female,
2023-2024,390470200001,Grade 6,Asian,Male,25
2023-2024,399999900001,Grade 6,White,Male,40
`

// DefaultFinance has both target districts and one district outside the allow-list.
const DefaultFinance = "LEAID\tNAME\tTOTALREV\tTFEDREV\tTSTREV\tTLOCREV\tTOTALEXP\tTCURINST\tV33\n" +
	"3904676\tOlentangy Local\t400000000\t8000000\t92000000\t300000000\t10000000\t6000000\t5000\n" +
	"3904702\tDublin City\t300000000\t6000000\t60000000\t234000000\t330000000\t180000000\t0\n" +
	"3900001\tSomewhere Else\t1\t1\t1\t1\t1\t1\t1\n"

// DefaultLunch covers two enrolled schools and one unknown school.
const DefaultLunch = `NCESSCH,SCH_NAME,FREE_LUNCH,REDUCED_LUNCH,TOTAL_STUDENTS
390467600001,Arrowhead Elementary,10,5,100
390467600002,Olentangy High,12,4,200
390470200001,Karrer Middle,n/a,1,100
399999900001,Unknown School,1,1,10
`

// DefaultReportCard rates both districts and names one unknown IRN.
const DefaultReportCard = `districts:
  - irn: "046763"
    overall_rating: 5
    achievement_score: 94.9
    graduation_rate_4yr: 96.2
    math_proficiency: 82.0
    reading_proficiency: 87.0
  - irn: "047027"
    overall_rating: 5
    achievement_score: 89.4
    graduation_rate_4yr: 95.8
  - irn: "099999"
    overall_rating: 3
`

// SourcePaths are the absolute paths of the files written by Build.
type SourcePaths struct {
	Dir        string
	Extract    string
	Enrollment string
	Finance    string
	Lunch      string
	ReportCard string
}

// SourceSetBuilder provides a fluent API for writing source files used by job
// and command tests. Every file starts with its default content.
//
// Example usage:
//
//	paths, err := NewSourceSetBuilder().
//	    WithEnrollment("NCESSCH,RACE_ETHNICITY,STUDENT_COUNT\n").
//	    Without(LunchFile).
//	    Build(t.TempDir())
type SourceSetBuilder struct {
	files map[string]string // name -> content
}

// NewSourceSetBuilder creates a builder with every default file.
func NewSourceSetBuilder() *SourceSetBuilder {
	return &SourceSetBuilder{
		files: map[string]string{
			ExtractFile:    DefaultExtract,
			EnrollmentFile: DefaultEnrollment,
			FinanceFile:    DefaultFinance,
			LunchFile:      DefaultLunch,
			ReportCardFile: DefaultReportCard,
		},
	}
}

func (b *SourceSetBuilder) WithExtract(content string) *SourceSetBuilder {
	b.files[ExtractFile] = content
	return b
}

func (b *SourceSetBuilder) WithEnrollment(content string) *SourceSetBuilder {
	b.files[EnrollmentFile] = content
	return b
}

func (b *SourceSetBuilder) WithFinance(content string) *SourceSetBuilder {
	b.files[FinanceFile] = content
	return b
}

func (b *SourceSetBuilder) WithLunch(content string) *SourceSetBuilder {
	b.files[LunchFile] = content
	return b
}

func (b *SourceSetBuilder) WithReportCard(content string) *SourceSetBuilder {
	b.files[ReportCardFile] = content
	return b
}

// Without leaves the named file out so tests can exercise a missing source.
// The returned path still points where the file would have been.
func (b *SourceSetBuilder) Without(name string) *SourceSetBuilder {
	delete(b.files, name)
	return b
}

// Build writes the files into dir.
func (b *SourceSetBuilder) Build(dir string) (SourcePaths, error) {
	for name, content := range b.files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			return SourcePaths{}, fmt.Errorf("write fixture %s: %w", name, err)
		}
	}
	return SourcePaths{
		Dir:        dir,
		Extract:    filepath.Join(dir, ExtractFile),
		Enrollment: filepath.Join(dir, EnrollmentFile),
		Finance:    filepath.Join(dir, FinanceFile),
		Lunch:      filepath.Join(dir, LunchFile),
		ReportCard: filepath.Join(dir, ReportCardFile),
	}, nil
}
