package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vvka-141/schoolfacts/internal/source"
	"github.com/vvka-141/schoolfacts/pkg/schoolfacts"
)

// LoadResult summarizes one loaded source file.
type LoadResult struct {
	RunID string
	Stats schoolfacts.LoadStats
}

// runClock supplies run identifiers and timestamps. Tests replace both.
type runClock struct {
	now   func() time.Time
	newID func() string
}

func defaultClock() runClock {
	return runClock{now: time.Now, newID: uuid.NewString}
}

// begin starts the audit record for one job over one source file.
func (c runClock) begin(job, sourcePath string) schoolfacts.ImportRun {
	return schoolfacts.ImportRun{
		RunID:      c.newID(),
		Job:        job,
		SourcePath: sourcePath,
		StartedAt:  c.now().UTC(),
	}
}

// finish stamps stats and completion time on run and appends it to import_runs.
func (c runClock) finish(ctx context.Context, st schoolfacts.Store, run schoolfacts.ImportRun, stats schoolfacts.LoadStats) (*LoadResult, error) {
	run.RowsRead = stats.Read
	run.RowsSkipped = stats.Skipped
	run.RowsWritten = stats.Written
	run.FinishedAt = c.now().UTC()

	if err := st.RecordRun(ctx, run); err != nil {
		return nil, err
	}
	return &LoadResult{RunID: run.RunID, Stats: stats}, nil
}

// checksumOf drains f and stores its digest on run.
func checksumOf(f *source.File, run *schoolfacts.ImportRun) error {
	sum, err := f.Checksum()
	if err != nil {
		return err
	}
	run.SourceSHA256 = sum
	return nil
}

func logStats(logger schoolfacts.Logger, label string, stats schoolfacts.LoadStats) {
	logger.Info("%s: rows read %d / skipped %d / written %d", label, stats.Read, stats.Skipped, stats.Written)
}
