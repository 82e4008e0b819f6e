package finance

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/schoolfacts/internal/logging"
	"github.com/vvka-141/schoolfacts/pkg/schoolfacts"
)

func knownSchools(ids ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return m
}

func TestLunchParser_Parse(t *testing.T) {
	input := `NCESSCH,SCH_NAME,FREE_LUNCH,REDUCED_LUNCH,TOTAL_STUDENTS
A,Alpha,10,5,30
B,Beta,x,1,10
C,Gamma,1,1,0
D,Delta,1,2,3
Z,Unknown,1,1,1
`
	p := NewLunchParser(knownSchools("A", "B", "C", "D"), logging.NewNullLogger())
	rows, stats, err := p.Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []schoolfacts.SchoolLunch{
		{NCESSCH: "A", PctFreeLunch: 33.3, PctReducedLunch: 16.7, PctFRL: 50},
		{NCESSCH: "D", PctFreeLunch: 33.3, PctReducedLunch: 66.7, PctFRL: 100},
	}, rows)
	assert.Equal(t, 5, stats.Read)
	assert.Equal(t, 3, stats.Skipped)
}

func TestLunchParser_EmptyCountsAreZero(t *testing.T) {
	input := "NCESSCH,FREE_LUNCH,REDUCED_LUNCH,TOTAL_STUDENTS\nA,,4,8\n"

	p := NewLunchParser(knownSchools("A"), logging.NewNullLogger())
	rows, _, err := p.Parse(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, 0.0, rows[0].PctFreeLunch)
	assert.Equal(t, 50.0, rows[0].PctReducedLunch)
	assert.Equal(t, 50.0, rows[0].PctFRL)
}

func TestNewLunchParser_NilLoggerPanics(t *testing.T) {
	assert.Panics(t, func() { NewLunchParser(nil, nil) })
}
