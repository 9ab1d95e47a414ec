package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/core/domain"
	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/repository"
)

func sampleAccount() domain.Account {
	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	return domain.Account{
		ID:                "acc-1",
		Email:             "alice@example.com",
		FirstName:         "Alice",
		LastName:          "Smith",
		PasswordHash:      "argon2id$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		Active:            false,
		Staff:             false,
		Superuser:         false,
		EmailVerified:     false,
		CreatedAt:         now,
		PasswordChangedAt: now,
	}
}

func TestAccountRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewAccountRepository(mock)
	account := sampleAccount()

	mock.ExpectExec(`INSERT INTO accounts\.users`).
		WithArgs(
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
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	if err := repo.Create(context.Background(), account); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAccountRepository_CreateDuplicateEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewAccountRepository(mock)
	account := sampleAccount()

	mock.ExpectExec(`INSERT INTO accounts\.users`).
		WithArgs(
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
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	if err := repo.Create(context.Background(), account); !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAccountRepository_GetByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewAccountRepository(mock)
	account := sampleAccount()

	rows := pgxmock.NewRows([]string{
		"id", "email", "first_name", "last_name", "password_hash",
		"is_active", "is_staff", "is_superuser", "email_verified",
		"created_at", "password_changed_at",
	}).AddRow(
		account.ID, account.Email, account.FirstName, account.LastName, account.PasswordHash,
		account.Active, account.Staff, account.Superuser, account.EmailVerified,
		account.CreatedAt, account.PasswordChangedAt,
	)

	// Lookup input is normalized before it reaches the database.
	mock.ExpectQuery(`SELECT .*FROM accounts\.users`).
		WithArgs("alice@example.com").
		WillReturnRows(rows)

	got, err := repo.GetByEmail(context.Background(), "  ALICE@example.com ")
	if err != nil {
		t.Fatalf("GetByEmail returned error: %v", err)
	}
	if got.ID != account.ID || got.Email != account.Email {
		t.Fatalf("unexpected account %+v", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAccountRepository_GetByIDNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewAccountRepository(mock)

	mock.ExpectQuery(`SELECT .*FROM accounts\.users`).
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "email", "first_name", "last_name", "password_hash",
			"is_active", "is_staff", "is_superuser", "email_verified",
			"created_at", "password_changed_at",
		}))

	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAccountRepository_ExistsByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewAccountRepository(mock)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM accounts\.users`).
		WithArgs("alice@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1)))

	exists, err := repo.ExistsByEmail(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("ExistsByEmail returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAccountRepository_MarkActivated(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewAccountRepository(mock)
	at := time.Date(2025, 5, 1, 11, 0, 0, 0, time.UTC)

	mock.ExpectExec(`UPDATE accounts\.users SET`).
		WithArgs(true, true, at, "acc-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	if err := repo.MarkActivated(context.Background(), "acc-1", at); err != nil {
		t.Fatalf("MarkActivated returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAccountRepository_MarkActivatedMissingAccount(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewAccountRepository(mock)
	at := time.Now().UTC()

	mock.ExpectExec(`UPDATE accounts\.users SET`).
		WithArgs(true, true, at, "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	if err := repo.MarkActivated(context.Background(), "missing", at); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
