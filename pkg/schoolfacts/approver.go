package schoolfacts

import "context"

// Approver handles user interaction for approval workflows,
// particularly for the destructive database reset performed by seeding.
//
// Implementations:
//   - ForcedApprover: Prints a warning and approves after a short countdown
//   - InteractiveApprover: Prompts user to type the database name for confirmation
type Approver interface {
	// RequestApproval prompts for confirmation before a database is deleted and recreated.
	//
	// Parameters:
	//   - ctx: Context for cancellation
	//   - target: Name of the database (file path or DSN) to be reset
	//
	// Returns:
	//   - bool: true if approved, false if denied
	//   - error: Any error that occurred during the approval process
	RequestApproval(ctx context.Context, target string) (bool, error)
}
