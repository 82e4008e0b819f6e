package ui

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/vvka-141/schoolfacts/pkg/schoolfacts"
)

//go:embed assets/warning.txt
var dangerBanner string

// ForcedApprover approves a database reset without asking, used when --force
// is given. It prints a warning and counts down first so the operator can
// still cancel with Ctrl+C.
type ForcedApprover struct {
	verbose   bool
	countdown time.Duration
	output    io.Writer
	sleepFn   func(time.Duration)
}

// NewForcedApprover creates a ForcedApprover that writes to stderr.
func NewForcedApprover(verbose bool) schoolfacts.Approver {
	return &ForcedApprover{
		verbose:   verbose,
		countdown: schoolfacts.DefaultForceApprovalCountdown,
		output:    os.Stderr,
		sleepFn:   time.Sleep,
	}
}

// RequestApproval displays a countdown and approves once it ends.
func (a *ForcedApprover) RequestApproval(ctx context.Context, target string) (bool, error) {
	fmt.Fprintln(a.output)
	fmt.Fprint(a.output, strings.ReplaceAll(dangerBanner, "${target}", target))
	fmt.Fprintln(a.output)

	for i := int(a.countdown.Seconds()); i > 0; i-- {
		if err := ctx.Err(); err != nil {
			fmt.Fprintln(a.output)
			return false, err
		}
		fmt.Fprintf(a.output, "\rResetting in: %d seconds... (Press Ctrl+C to cancel)", i)
		a.sleepFn(time.Second)
	}
	if err := ctx.Err(); err != nil {
		fmt.Fprintln(a.output)
		return false, err
	}

	fmt.Fprintf(a.output, "\r✓ Proceeding with database reset...                              \n")
	return true, nil
}

var _ schoolfacts.Approver = (*ForcedApprover)(nil)
