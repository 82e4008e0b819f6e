package services

import (
	"context"
	"fmt"

	"github.com/vvka-141/schoolfacts/internal/finance"
	"github.com/vvka-141/schoolfacts/internal/source"
	"github.com/vvka-141/schoolfacts/pkg/schoolfacts"
)

// FinanceResult reports both halves of the finance job. A skipped half is nil.
type FinanceResult struct {
	Finance          *LoadResult
	Lunch            *LoadResult
	DistrictsUpdated int
	SchoolsUpdated   int
}

// FinanceService attaches district finance facts and school lunch percentages.
type FinanceService struct {
	store  schoolfacts.Store
	logger schoolfacts.Logger
	clock  runClock
}

// NewFinanceService creates a FinanceService with all dependencies injected.
func NewFinanceService(store schoolfacts.Store, logger schoolfacts.Logger) *FinanceService {
	if store == nil {
		panic("store cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &FinanceService{store: store, logger: logger, clock: defaultClock()}
}

// Run parses the enabled source files and applies every update in one
// transaction. Keys with no matching row change nothing.
func (s *FinanceService) Run(ctx context.Context, cfg schoolfacts.FinanceConfig) (*FinanceResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		financeRows []schoolfacts.DistrictFinance
		lunchRows   []schoolfacts.SchoolLunch
		financeRun  schoolfacts.ImportRun
		lunchRun    schoolfacts.ImportRun
		financeSt   schoolfacts.LoadStats
		lunchSt     schoolfacts.LoadStats
		err         error
	)

	if !cfg.SkipFinance {
		financeRun = s.clock.begin(schoolfacts.JobFinance, cfg.FinancePath)
		s.logger.Info("Extracting district finance data from %s", cfg.FinancePath)
		financeRows, financeSt, err = s.parseFinance(cfg, &financeRun)
		if err != nil {
			return nil, err
		}
		s.logger.Info("Found finance data for %d districts", len(financeRows))
	}

	if !cfg.SkipLunch {
		lunchRun = s.clock.begin(schoolfacts.JobLunch, cfg.LunchPath)
		s.logger.Info("Extracting free/reduced lunch data from %s", cfg.LunchPath)
		lunchRows, lunchSt, err = s.parseLunch(ctx, cfg, &lunchRun)
		if err != nil {
			return nil, err
		}
		s.logger.Info("Found lunch data for %d schools", len(lunchRows))
	}

	districts, schools, err := s.store.ApplyFinanceAndLunch(ctx, financeRows, lunchRows)
	if err != nil {
		return nil, err
	}

	result := &FinanceResult{DistrictsUpdated: districts, SchoolsUpdated: schools}

	if !cfg.SkipFinance {
		financeSt.Written = districts
		logStats(s.logger, "finance", financeSt)
		if result.Finance, err = s.clock.finish(ctx, s.store, financeRun, financeSt); err != nil {
			return nil, err
		}
		s.logger.Info("✓ Updated %d districts with finance data", districts)
	}
	if !cfg.SkipLunch {
		lunchSt.Written = schools
		logStats(s.logger, "lunch", lunchSt)
		if result.Lunch, err = s.clock.finish(ctx, s.store, lunchRun, lunchSt); err != nil {
			return nil, err
		}
		s.logger.Info("✓ Updated %d schools with lunch data", schools)
	}

	return result, nil
}

func (s *FinanceService) parseFinance(cfg schoolfacts.FinanceConfig, run *schoolfacts.ImportRun) ([]schoolfacts.DistrictFinance, schoolfacts.LoadStats, error) {
	f, err := source.Open(cfg.FinancePath)
	if err != nil {
		return nil, schoolfacts.LoadStats{}, err
	}
	defer f.Close()

	rows, stats, err := finance.NewFinanceParser(cfg.TargetDistricts, s.logger).Parse(f)
	if err != nil {
		return nil, stats, fmt.Errorf("%s: %w", cfg.FinancePath, err)
	}
	if err := checksumOf(f, run); err != nil {
		return nil, stats, err
	}
	return rows, stats, nil
}

func (s *FinanceService) parseLunch(ctx context.Context, cfg schoolfacts.FinanceConfig, run *schoolfacts.ImportRun) ([]schoolfacts.SchoolLunch, schoolfacts.LoadStats, error) {
	known, err := s.store.KnownSchoolIDs(ctx)
	if err != nil {
		return nil, schoolfacts.LoadStats{}, err
	}

	f, err := source.Open(cfg.LunchPath)
	if err != nil {
		return nil, schoolfacts.LoadStats{}, err
	}
	defer f.Close()

	rows, stats, err := finance.NewLunchParser(known, s.logger).Parse(f)
	if err != nil {
		return nil, stats, fmt.Errorf("%s: %w", cfg.LunchPath, err)
	}
	if err := checksumOf(f, run); err != nil {
		return nil, stats, err
	}
	return rows, stats, nil
}
