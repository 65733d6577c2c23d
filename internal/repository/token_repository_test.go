package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newTokenRepoMock(t *testing.T) (*TokenRepo, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	return NewTokenRepo(db), mock, db
}

func TestTokenResolve_Valid(t *testing.T) {
	repo, mock, db := newTokenRepoMock(t)
	defer db.Close()

	mock.ExpectQuery("SELECT user_id, expires_at, revoked_at FROM tokens").
		WithArgs("hash-a").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).
			AddRow(9, time.Now().Add(time.Hour), nil))

	uid, err := repo.Resolve(context.Background(), "hash-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if uid != 9 {
		t.Errorf("expected user 9, got %d", uid)
	}
}

func TestTokenResolve_Revoked(t *testing.T) {
	repo, mock, db := newTokenRepoMock(t)
	defer db.Close()

	mock.ExpectQuery("SELECT user_id, expires_at, revoked_at FROM tokens").
		WithArgs("hash-a").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).
			AddRow(9, time.Now().Add(time.Hour), time.Now()))

	_, err := repo.Resolve(context.Background(), "hash-a")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected ErrNoRows for a revoked token, got %v", err)
	}
}

func TestTokenResolve_Expired(t *testing.T) {
	repo, mock, db := newTokenRepoMock(t)
	defer db.Close()

	// A row past its expiry is rejected at read time even though it was
	// never revoked.
	mock.ExpectQuery("SELECT user_id, expires_at, revoked_at FROM tokens").
		WithArgs("hash-a").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).
			AddRow(9, time.Now().Add(-time.Minute), nil))

	_, err := repo.Resolve(context.Background(), "hash-a")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected ErrNoRows for an expired token, got %v", err)
	}
}

func TestTokenRevokeByHash(t *testing.T) {
	repo, mock, db := newTokenRepoMock(t)
	defer db.Close()

	mock.ExpectExec("UPDATE tokens SET revoked_at=NOW\\(\\) WHERE token_hash=").
		WithArgs("hash-a").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.RevokeByHash(context.Background(), "hash-a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
