package reportcard

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/schoolfacts/pkg/schoolfacts"
)

func TestDecode_Testdata(t *testing.T) {
	f, err := os.Open("testdata/report-card.yaml")
	require.NoError(t, err)
	defer f.Close()

	cards, err := Decode(f)
	require.NoError(t, err)
	require.Len(t, cards, 2)

	assert.Equal(t, "046763", cards[0].IRN)
	require.NotNil(t, cards[0].OverallRating)
	assert.Equal(t, 5, *cards[0].OverallRating)
	require.NotNil(t, cards[1].GraduationRate4yr)
	assert.InDelta(t, 95.8, *cards[1].GraduationRate4yr, 1e-9)
}

func TestDecode_OptionalFieldsStayNil(t *testing.T) {
	cards, err := Decode(strings.NewReader("districts:\n  - irn: \"000001\"\n    overall_rating: 3\n"))
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Nil(t, cards[0].AchievementScore)
	assert.Nil(t, cards[0].ReadingProficiency)
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains string
	}{
		{"empty document", "", "empty report card document"},
		{"unknown field", "districts:\n  - irn: \"1\"\n    stars: 5\n", "stars"},
		{"no districts", "districts: []\n", "no districts listed"},
		{"missing irn", "districts:\n  - overall_rating: 2\n", "irn is required"},
		{"rating too high", "districts:\n  - irn: \"1\"\n    overall_rating: 6\n", "overall_rating 6 outside 0-5"},
		{"rating negative", "districts:\n  - irn: \"1\"\n    overall_rating: -1\n", "overall_rating -1 outside 0-5"},
		{"percent out of range", "districts:\n  - irn: \"1\"\n    math_proficiency: 100.5\n", "math_proficiency 100.5 outside 0-100"},
		{"duplicate irn", "districts:\n  - irn: \"1\"\n  - irn: \"1\"\n", "duplicate irn"},
		{"wrong type", "districts:\n  - irn: \"1\"\n    overall_rating: five\n", "parse report card"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, schoolfacts.ErrInvalidSource)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	bad := 9
	high := 120.0
	err := Validate([]schoolfacts.ReportCard{
		{IRN: "1", OverallRating: &bad},
		{IRN: "2", GraduationRate4yr: &high},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "districts[0] (1): overall_rating 9")
	assert.Contains(t, err.Error(), "districts[1] (2): graduation_rate_4yr 120")
}
