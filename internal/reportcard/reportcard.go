// Package reportcard loads state report-card facts for districts from YAML.
package reportcard

import (
	"errors"
	"fmt"
	"io"

	"github.com/vvka-141/schoolfacts/pkg/schoolfacts"
	"gopkg.in/yaml.v3"
)

const (
	MinRating = 0
	MaxRating = 5
)

// Document is the top-level shape of a report-card file.
type Document struct {
	Districts []schoolfacts.ReportCard `yaml:"districts"`
}

// Decode parses a report-card document with strict field checking and
// validates every entry. Nothing is returned unless the whole document is valid.
func Decode(r io.Reader) ([]schoolfacts.ReportCard, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty report card document: %w", schoolfacts.ErrInvalidSource)
		}
		return nil, fmt.Errorf("parse report card: %w: %w", schoolfacts.ErrInvalidSource, err)
	}

	if err := Validate(doc.Districts); err != nil {
		return nil, err
	}
	return doc.Districts, nil
}

// Validate checks every card and reports all problems together.
func Validate(cards []schoolfacts.ReportCard) error {
	var errs []error

	if len(cards) == 0 {
		errs = append(errs, errors.New("no districts listed"))
	}

	seen := make(map[string]struct{}, len(cards))
	for i, c := range cards {
		label := fmt.Sprintf("districts[%d]", i)
		if c.IRN == "" {
			errs = append(errs, fmt.Errorf("%s: irn is required", label))
		} else {
			label = fmt.Sprintf("districts[%d] (%s)", i, c.IRN)
			if _, dup := seen[c.IRN]; dup {
				errs = append(errs, fmt.Errorf("%s: duplicate irn", label))
			}
			seen[c.IRN] = struct{}{}
		}

		if c.OverallRating != nil && (*c.OverallRating < MinRating || *c.OverallRating > MaxRating) {
			errs = append(errs, fmt.Errorf("%s: overall_rating %d outside %d-%d", label, *c.OverallRating, MinRating, MaxRating))
		}

		percents := []struct {
			name  string
			value *float64
		}{
			{"achievement_score", c.AchievementScore},
			{"graduation_rate_4yr", c.GraduationRate4yr},
			{"math_proficiency", c.MathProficiency},
			{"reading_proficiency", c.ReadingProficiency},
		}
		for _, p := range percents {
			if p.value != nil && (*p.value < 0 || *p.value > 100) {
				errs = append(errs, fmt.Errorf("%s: %s %g outside 0-100", label, p.name, *p.value))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", schoolfacts.ErrInvalidSource, errors.Join(errs...))
	}
	return nil
}
