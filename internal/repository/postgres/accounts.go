package postgres

import (
	"context"
	"fmt"
	"time"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/core/domain"
	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/core/port"
	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/repository"
)

const accountsTable = "accounts.users"

var accountColumns = []string{
	"id",
	"email",
	"first_name",
	"last_name",
	"password_hash",
	"is_active",
	"is_staff",
	"is_superuser",
	"email_verified",
	"created_at",
	"password_changed_at",
}

// AccountRepository implements port.AccountRepository using PostgreSQL.
type AccountRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewAccountRepository wires a PostgreSQL-backed account repository.
func NewAccountRepository(db pgExecutor) *AccountRepository {
	return &AccountRepository{
		exec:    db,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new account row. A unique violation on the email column is
// mapped to repository.ErrDuplicate.
func (r *AccountRepository) Create(ctx context.Context, account domain.Account) error {
	stmt, args, err := r.builder.Insert(accountsTable).
		Columns(accountColumns...).
		Values(
			account.ID,
			account.Email,
			account.FirstName,
			account.LastName,
			account.PasswordHash,
			account.Active,
			account.Staff,
			account.Superuser,
			account.EmailVerified,
			account.CreatedAt,
			account.PasswordChangedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert account sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("insert account: %w", err)
	}

	return nil
}

// GetByID retrieves an account by identifier.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	stmt, args, err := r.builder.Select(accountColumns...).
		From(accountsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select account sql: %w", err)
	}

	return r.scanAccount(r.exec.QueryRow(ctx, stmt, args...))
}

// GetByEmail retrieves an account by its normalized email address.
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	stmt, args, err := r.builder.Select(accountColumns...).
		From(accountsTable).
		Where(squirrel.Eq{"email": domain.NormalizeEmail(email)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select account by email sql: %w", err)
	}

	return r.scanAccount(r.exec.QueryRow(ctx, stmt, args...))
}

// ExistsByEmail reports whether an account with the email already exists.
func (r *AccountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	stmt, args, err := r.builder.Select("COUNT(*)").
		From(accountsTable).
		Where(squirrel.Eq{"email": domain.NormalizeEmail(email)}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build count accounts sql: %w", err)
	}

	var count int64
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("scan accounts count: %w", err)
	}

	return count > 0, nil
}

// MarkActivated sets the active and email_verified flags.
func (r *AccountRepository) MarkActivated(ctx context.Context, id string, at time.Time) error {
	stmt, args, err := r.builder.Update(accountsTable).
		Set("is_active", true).
		Set("email_verified", true).
		Set("activated_at", at).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build activate account sql: %w", err)
	}

	ct, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("activate account: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *AccountRepository) scanAccount(row pgx.Row) (*domain.Account, error) {
	var account domain.Account
	if err := row.Scan(
		&account.ID,
		&account.Email,
		&account.FirstName,
		&account.LastName,
		&account.PasswordHash,
		&account.Active,
		&account.Staff,
		&account.Superuser,
		&account.EmailVerified,
		&account.CreatedAt,
		&account.PasswordChangedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}

	return &account, nil
}

var _ port.AccountRepository = (*AccountRepository)(nil)
