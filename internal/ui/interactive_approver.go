package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vvka-141/schoolfacts/pkg/schoolfacts"
)

// InteractiveApprover asks the operator to type the database name before a
// destructive reset.
type InteractiveApprover struct {
	verbose bool
	input   io.Reader
	output  io.Writer
}

// NewInteractiveApprover creates an InteractiveApprover on stdin and stderr.
func NewInteractiveApprover(verbose bool) schoolfacts.Approver {
	return &InteractiveApprover{verbose: verbose, input: os.Stdin, output: os.Stderr}
}

// RequestApproval prompts for the target name and approves only on an exact match.
func (a *InteractiveApprover) RequestApproval(ctx context.Context, target string) (bool, error) {
	fmt.Fprintf(a.output, "\n⚠️  WARNING: You are about to DELETE and REBUILD the database '%s'\n", target)
	fmt.Fprintln(a.output, "This will permanently delete all loaded school and district facts!")
	fmt.Fprintf(a.output, "\nTo confirm, type the database name '%s' and press Enter: ", target)

	inputChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		reader := bufio.NewReader(a.input)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			errChan <- err
			return
		}
		inputChan <- strings.TrimSpace(line)
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-errChan:
		return false, fmt.Errorf("failed to read input: %w", err)
	case line := <-inputChan:
		if line == target {
			fmt.Fprintln(a.output, "✓ Confirmed. Proceeding with database reset...")
			return true, nil
		}
		fmt.Fprintf(a.output, "✗ Input '%s' does not match database name '%s'. Operation cancelled.\n", line, target)
		return false, nil
	}
}

var _ schoolfacts.Approver = (*InteractiveApprover)(nil)
