package services

import (
	"context"
	"fmt"

	"github.com/vvka-141/schoolfacts/internal/reportcard"
	"github.com/vvka-141/schoolfacts/internal/source"
	"github.com/vvka-141/schoolfacts/pkg/schoolfacts"
)

// ReportCardResult reports which IRNs matched a stored district.
type ReportCardResult struct {
	RunID     string
	Matched   []string
	Unmatched []string
}

// ReportCardService attaches state report-card facts to districts by IRN.
type ReportCardService struct {
	store  schoolfacts.Store
	logger schoolfacts.Logger
	clock  runClock
}

// NewReportCardService creates a ReportCardService with all dependencies injected.
func NewReportCardService(store schoolfacts.Store, logger schoolfacts.Logger) *ReportCardService {
	if store == nil {
		panic("store cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &ReportCardService{store: store, logger: logger, clock: defaultClock()}
}

// Run validates the whole report-card file before updating anything.
func (s *ReportCardService) Run(ctx context.Context, cfg schoolfacts.ReportCardConfig) (*ReportCardResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	run := s.clock.begin(schoolfacts.JobReportCard, cfg.SourcePath)

	f, err := source.Open(cfg.SourcePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cards, err := reportcard.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.SourcePath, err)
	}
	if err := checksumOf(f, &run); err != nil {
		return nil, err
	}

	matched, err := s.store.UpdateReportCards(ctx, cards)
	if err != nil {
		return nil, err
	}

	found := make(map[string]struct{}, len(matched))
	for _, irn := range matched {
		found[irn] = struct{}{}
		s.logger.Verbose("Updated district with IRN %s", irn)
	}
	var unmatched []string
	for _, c := range cards {
		if _, ok := found[c.IRN]; !ok {
			unmatched = append(unmatched, c.IRN)
			s.logger.Info("No district with IRN %s; report card ignored", c.IRN)
		}
	}

	stats := schoolfacts.LoadStats{Read: len(cards), Skipped: len(unmatched), Written: len(matched)}
	logStats(s.logger, "report card", stats)
	res, err := s.clock.finish(ctx, s.store, run, stats)
	if err != nil {
		return nil, err
	}

	return &ReportCardResult{RunID: res.RunID, Matched: matched, Unmatched: unmatched}, nil
}
