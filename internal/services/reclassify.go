package services

import (
	"context"

	"github.com/vvka-141/schoolfacts/internal/extract"
	"github.com/vvka-141/schoolfacts/pkg/schoolfacts"
)

// ReclassifyResult reports how many stored school types changed.
type ReclassifyResult struct {
	RunID      string
	Checked    int
	Changed    int
	TypeCounts map[schoolfacts.SchoolType]int
}

// ReclassifyService recomputes school types from stored grade spans.
type ReclassifyService struct {
	store  schoolfacts.Store
	logger schoolfacts.Logger
	clock  runClock
}

// NewReclassifyService creates a ReclassifyService with all dependencies injected.
func NewReclassifyService(store schoolfacts.Store, logger schoolfacts.Logger) *ReclassifyService {
	if store == nil {
		panic("store cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &ReclassifyService{store: store, logger: logger, clock: defaultClock()}
}

// Run updates every school whose stored type differs from the type its grade
// span classifies as. Running it twice changes nothing the second time.
func (s *ReclassifyService) Run(ctx context.Context) (*ReclassifyResult, error) {
	run := s.clock.begin(schoolfacts.JobReclassify, "")

	schools, err := s.store.SchoolGrades(ctx)
	if err != nil {
		return nil, err
	}

	changes := make(map[string]schoolfacts.SchoolType)
	counts := make(map[schoolfacts.SchoolType]int, len(schoolfacts.SchoolTypes))
	for _, school := range schools {
		want := extract.ClassifyGrades(school.GradesLow, school.GradesHigh)
		counts[want]++
		if school.SchoolType != want {
			s.logger.Verbose("%s (%s-%s): %s -> %s", school.Name, school.GradesLow, school.GradesHigh, school.SchoolType, want)
			changes[school.NCESSCH] = want
		}
	}

	changed := 0
	if len(changes) > 0 {
		if changed, err = s.store.UpdateSchoolTypes(ctx, changes); err != nil {
			return nil, err
		}
	}

	s.logger.Info("✓ Reclassified %d of %d schools", changed, len(schools))
	for _, st := range schoolfacts.SchoolTypes {
		s.logger.Info("  %s: %d", st, counts[st])
	}

	stats := schoolfacts.LoadStats{Read: len(schools), Written: changed}
	res, err := s.clock.finish(ctx, s.store, run, stats)
	if err != nil {
		return nil, err
	}

	return &ReclassifyResult{RunID: res.RunID, Checked: len(schools), Changed: changed, TypeCounts: counts}, nil
}
