package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jszwec/csvutil"
	"github.com/vvka-141/schoolfacts/pkg/schoolfacts"
)

const (
	Comma = ','
	Tab   = '\t'
)

// NewDecoder reads the header row of a delimited file and returns a csvutil
// decoder positioned at the first data row. Header names are trimmed and a
// leading byte order mark is dropped. Every name in required must appear in
// the header, otherwise the file is rejected with ErrInvalidSource.
func NewDecoder(r io.Reader, comma rune, required ...string) (*csvutil.Decoder, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("empty file, no header row: %w", schoolfacts.ErrInvalidSource)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w: %w", schoolfacts.ErrInvalidSource, err)
	}

	names := make([]string, len(header))
	present := make(map[string]struct{}, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		names[i] = strings.TrimSpace(h)
		present[names[i]] = struct{}{}
	}

	var missing []string
	for _, name := range required {
		if _, ok := present[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns %s: %w", strings.Join(missing, ", "), schoolfacts.ErrInvalidSource)
	}

	dec, err := csvutil.NewDecoder(cr, names...)
	if err != nil {
		return nil, fmt.Errorf("create decoder: %w", err)
	}
	return dec, nil
}

// ParseCount parses a whole-number field. Empty and blank values are 0.
func ParseCount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}

// IsRowError reports whether err concerns a single malformed record, after
// which decoding can continue with the next row.
func IsRowError(err error) bool {
	var parseErr *csv.ParseError
	return errors.Is(err, csvutil.ErrFieldCount) || errors.As(err, &parseErr)
}
