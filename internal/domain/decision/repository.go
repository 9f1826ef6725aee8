package decision

import "context"

type Repository interface {
	// Create a new decision (DB uniqueness ensures at most one per loan)
	Create(ctx context.Context, d *Decision) error

	// Get decision by numeric loan ID
	GetByLoanID(ctx context.Context, loanID uint64) (*Decision, error)
}
