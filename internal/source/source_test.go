package source

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/schoolfacts/pkg/schoolfacts"
)

type row struct {
	ID    string `csv:"ID"`
	Count string `csv:"COUNT"`
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, schoolfacts.ErrSourceNotFound)
}

func TestOpen_ChecksumCoversWholeFile(t *testing.T) {
	content := "ID,COUNT\na,1\nb,2\n"
	path := filepath.Join(t.TempDir(), "in.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	f, err := Open(path)
	require.NoError(t, err)
	defer f.Close()

	buf := make([]byte, 3)
	_, err = io.ReadFull(f, buf)
	require.NoError(t, err)

	sum, err := f.Checksum()
	require.NoError(t, err)
	want := sha256.Sum256([]byte(content))
	assert.Equal(t, hex.EncodeToString(want[:]), sum)
}

func TestNewDecoder(t *testing.T) {
	input := "\ufeff ID , COUNT,EXTRA\na,1,x\nb,,y\n"
	dec, err := NewDecoder(strings.NewReader(input), Comma, "ID", "COUNT")
	require.NoError(t, err)

	var rows []row
	for {
		var r row
		if err := dec.Decode(&r); err == io.EOF {
			break
		} else {
			require.NoError(t, err)
		}
		rows = append(rows, r)
	}
	assert.Equal(t, []row{{"a", "1"}, {"b", ""}}, rows)
}

func TestNewDecoder_Tab(t *testing.T) {
	dec, err := NewDecoder(strings.NewReader("ID\tCOUNT\nz\t9\n"), Tab, "ID")
	require.NoError(t, err)

	var r row
	require.NoError(t, dec.Decode(&r))
	assert.Equal(t, row{"z", "9"}, r)
}

func TestNewDecoder_MissingColumns(t *testing.T) {
	_, err := NewDecoder(strings.NewReader("ID\n1\n"), Comma, "ID", "COUNT", "OTHER")
	require.Error(t, err)
	assert.ErrorIs(t, err, schoolfacts.ErrInvalidSource)
	assert.Contains(t, err.Error(), "COUNT, OTHER")
}

func TestNewDecoder_Empty(t *testing.T) {
	_, err := NewDecoder(strings.NewReader(""), Comma)
	assert.ErrorIs(t, err, schoolfacts.ErrInvalidSource)
}

func TestNewDecoder_ShortRowIsRowError(t *testing.T) {
	dec, err := NewDecoder(strings.NewReader("ID,COUNT\nonly\nb,2\n"), Comma)
	require.NoError(t, err)

	var r row
	err = dec.Decode(&r)
	require.Error(t, err)
	assert.True(t, IsRowError(err))

	require.NoError(t, dec.Decode(&r))
	assert.Equal(t, row{"b", "2"}, r)
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"", 0, false},
		{"  ", 0, false},
		{"42", 42, false},
		{" 7 ", 7, false},
		{"-1", -1, false},
		{"12000000000", 12000000000, false},
		{"N/A", 0, true},
		{"1.5", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCount(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
