package services

import (
	"context"
	"fmt"

	"github.com/vvka-141/schoolfacts/internal/enrollment"
	"github.com/vvka-141/schoolfacts/internal/source"
	"github.com/vvka-141/schoolfacts/pkg/schoolfacts"
)

// EnrollmentService loads per-school demographic breakdowns.
type EnrollmentService struct {
	store  schoolfacts.Store
	logger schoolfacts.Logger
	clock  runClock
}

// NewEnrollmentService creates an EnrollmentService with all dependencies injected.
func NewEnrollmentService(store schoolfacts.Store, logger schoolfacts.Logger) *EnrollmentService {
	if store == nil {
		panic("store cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &EnrollmentService{store: store, logger: logger, clock: defaultClock()}
}

// Run aggregates the enrollment file for known schools and upserts one
// record per school.
func (s *EnrollmentService) Run(ctx context.Context, cfg schoolfacts.EnrollmentConfig) (*LoadResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	run := s.clock.begin(schoolfacts.JobEnrollment, cfg.SourcePath)

	known, err := s.store.KnownSchoolIDs(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Verbose("Loaded %d known schools", len(known))

	f, err := source.Open(cfg.SourcePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s.logger.Info("Extracting enrollment data from %s", cfg.SourcePath)
	agg := enrollment.NewAggregator(known, cfg.SchoolYear, s.logger)
	records, stats, err := agg.Aggregate(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.SourcePath, err)
	}
	if err := checksumOf(f, &run); err != nil {
		return nil, err
	}
	s.logger.Info("Found enrollment data for %d schools", len(records))

	written, err := s.store.UpsertEnrollment(ctx, records)
	if err != nil {
		return nil, err
	}
	stats.Written = written

	logStats(s.logger, "enrollment", stats)
	return s.clock.finish(ctx, s.store, run, stats)
}
