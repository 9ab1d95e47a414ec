package port

import (
	"context"
	"time"

	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/core/domain"
)

// AccountRepository defines persistence operations for accounts.
type AccountRepository interface {
	// Create inserts a new account row. The insert is a single atomic
	// statement; a concurrent registration for the same email surfaces as
	// repository.ErrDuplicate from the unique constraint.
	Create(ctx context.Context, account domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	// ExistsByEmail is the advisory fast-path uniqueness check. The unique
	// constraint at write time remains authoritative.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// MarkActivated sets active and email_verified on the account.
	MarkActivated(ctx context.Context, id string, at time.Time) error
}
