package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vvka-141/schoolfacts/internal/store"
	"github.com/vvka-141/schoolfacts/pkg/schoolfacts"
)

const timeLayout = "2006-01-02 15:04:05"

// RenderSummary writes a styled overview of the database to w.
func RenderSummary(w io.Writer, target string, sum *store.Summary) error {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("schoolfacts database"))
	b.WriteString("\n")
	b.WriteString(MutedStyle.Render("  " + target))
	b.WriteString("\n")

	b.WriteString(SectionStyle.Render("Tables"))
	b.WriteString("\n")
	for _, row := range []struct {
		name  string
		count int
	}{
		{"districts", sum.Districts},
		{"schools", sum.Schools},
		{"school_enrollment", sum.Enrollment},
		{"import_runs", sum.ImportRuns},
	} {
		b.WriteString(countLine(row.name, row.count))
	}

	b.WriteString(SectionStyle.Render("Schools by type"))
	b.WriteString("\n")
	for _, st := range schoolfacts.SchoolTypes {
		b.WriteString(countLine(string(st), sum.SchoolsByType[st]))
	}

	b.WriteString(SectionStyle.Render("Latest runs"))
	b.WriteString("\n")
	if len(sum.LatestRuns) == 0 {
		b.WriteString(MutedStyle.Render("  no runs recorded"))
		b.WriteString("\n")
	}
	for _, run := range sum.LatestRuns {
		b.WriteString(runLine(run))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func countLine(label string, n int) string {
	count := CountStyle.Render(fmt.Sprintf("%d", n))
	if n == 0 {
		count = EmptyStyle.Render("0")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, LabelStyle.Render(label), count) + "\n"
}

func runLine(run schoolfacts.ImportRun) string {
	digest := run.SourceSHA256
	if len(digest) > 12 {
		digest = digest[:12]
	}
	detail := fmt.Sprintf("%s  read %d  skipped %d  written %d",
		run.FinishedAt.Local().Format(timeLayout), run.RowsRead, run.RowsSkipped, run.RowsWritten)
	source := run.SourcePath
	if digest != "" {
		source = fmt.Sprintf("%s (sha256 %s)", source, digest)
	}
	return LabelStyle.Render(run.Job) + detail + "\n" +
		MutedStyle.Render(strings.Repeat(" ", 4)+SymbolBullet+" "+source) + "\n"
}
