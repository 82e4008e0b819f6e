package extract

import (
	"strconv"
	"strings"

	"github.com/vvka-141/schoolfacts/pkg/schoolfacts"
)

// gradeRule maps a numeric grade span to a school type when match holds.
type gradeRule struct {
	match      func(low, high int) bool
	schoolType schoolfacts.SchoolType
}

// gradeRules are evaluated in order; the first match wins.
// The K-6 and 5-8 rules only apply after the broader bands have been ruled out.
var gradeRules = []gradeRule{
	{func(_, high int) bool { return high <= 5 }, schoolfacts.SchoolTypeElementary},
	{func(low, high int) bool { return low >= 6 && high <= 8 }, schoolfacts.SchoolTypeMiddle},
	{func(low, _ int) bool { return low >= 9 }, schoolfacts.SchoolTypeHigh},
	{func(_, high int) bool { return high == 6 }, schoolfacts.SchoolTypeElementary},
	{func(low, high int) bool { return low >= 5 && high == 8 }, schoolfacts.SchoolTypeMiddle},
}

// ClassifyGrades derives the school type from the lowest and highest grade
// offered. It never fails: unparseable grades count as 0 and anything no
// rule matches is Other.
func ClassifyGrades(gradesLow, gradesHigh string) schoolfacts.SchoolType {
	low := parseLowGrade(gradesLow)
	high := parseGrade(gradesHigh)

	for _, rule := range gradeRules {
		if rule.match(low, high) {
			return rule.schoolType
		}
	}
	return schoolfacts.SchoolTypeOther
}

// parseLowGrade treats pre-kindergarten as grade 0.
func parseLowGrade(s string) int {
	if strings.TrimSpace(s) == "PK" {
		return 0
	}
	return parseGrade(s)
}

func parseGrade(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
