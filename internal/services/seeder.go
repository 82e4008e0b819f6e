package services

import (
	"context"
	"fmt"

	"github.com/vvka-141/schoolfacts/internal/extract"
	"github.com/vvka-141/schoolfacts/internal/source"
	"github.com/vvka-141/schoolfacts/pkg/schoolfacts"
)

// SeedResult reports what the seeder wrote.
type SeedResult struct {
	RunID      string
	Districts  int
	Schools    int
	TypeCounts map[schoolfacts.SchoolType]int
}

// SeedService rebuilds the district and school directory from an extract.
// Thread-Safety: NOT safe for concurrent Seed() calls on the same instance.
type SeedService struct {
	store    schoolfacts.Store
	approver schoolfacts.Approver
	logger   schoolfacts.Logger
	clock    runClock
}

// NewSeedService creates a SeedService with all dependencies injected.
// Panics on nil dependencies; runtime conditions are returned as errors.
func NewSeedService(store schoolfacts.Store, approver schoolfacts.Approver, logger schoolfacts.Logger) *SeedService {
	if store == nil {
		panic("store cannot be nil")
	}
	if approver == nil {
		panic("approver cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &SeedService{store: store, approver: approver, logger: logger, clock: defaultClock()}
}

// Seed validates the whole extract, resets the database, and inserts the
// directory. The reset needs approval when the database already holds data.
// target names the database in the approval prompt.
func (s *SeedService) Seed(ctx context.Context, cfg schoolfacts.SeedConfig, target string) (*SeedResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	run := s.clock.begin(schoolfacts.JobSeed, cfg.ExtractPath)

	s.logger.Info("Loading extract from %s", cfg.ExtractPath)
	dir, err := s.readExtract(cfg.ExtractPath, &run)
	if err != nil {
		return nil, err
	}

	if err := s.approveReset(ctx, target); err != nil {
		return nil, err
	}

	s.logger.Verbose("Resetting database %s", target)
	if err := s.store.Reset(ctx); err != nil {
		return nil, fmt.Errorf("reset database: %w", err)
	}

	if err := s.store.SeedDirectory(ctx, dir.Districts, dir.Schools); err != nil {
		return nil, fmt.Errorf("seed directory: %w", err)
	}

	for _, d := range dir.Districts {
		s.logger.Info("✓ %s (%d schools)", d.Name, d.TotalSchools)
	}
	s.logger.Info("✓ Inserted %d schools:", len(dir.Schools))
	for _, st := range schoolfacts.SchoolTypes {
		s.logger.Info("  %s: %d", st, dir.TypeCounts[st])
	}

	stats := schoolfacts.LoadStats{
		Read:    len(dir.Districts) + len(dir.Schools),
		Written: len(dir.Districts) + len(dir.Schools),
	}
	res, err := s.clock.finish(ctx, s.store, run, stats)
	if err != nil {
		return nil, err
	}

	return &SeedResult{
		RunID:      res.RunID,
		Districts:  len(dir.Districts),
		Schools:    len(dir.Schools),
		TypeCounts: dir.TypeCounts,
	}, nil
}

func (s *SeedService) readExtract(path string, run *schoolfacts.ImportRun) (*extract.Directory, error) {
	f, err := source.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ext, err := extract.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := checksumOf(f, run); err != nil {
		return nil, err
	}
	return ext.Build(), nil
}

func (s *SeedService) approveReset(ctx context.Context, target string) error {
	hasData, err := s.store.HasData(ctx)
	if err != nil {
		return fmt.Errorf("check existing data: %w", err)
	}
	if !hasData {
		return nil
	}

	approved, err := s.approver.RequestApproval(ctx, target)
	if err != nil {
		return fmt.Errorf("approval failed: %w", err)
	}
	if !approved {
		return fmt.Errorf("reset of %s: %w", target, schoolfacts.ErrApprovalDenied)
	}
	return nil
}
