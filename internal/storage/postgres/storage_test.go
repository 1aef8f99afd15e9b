package postgres

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"

	domainErrors "github.com/polkiloo/passmint/internal/domain/errors"
	"github.com/polkiloo/passmint/internal/domain/model"
)

func newMockStorage(t *testing.T) (*Storage, pgxmockv3.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmockv3.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	storage := &Storage{pool: mock, logger: logger}
	return storage, mock
}

func expectSchema(mock pgxmockv3.PgxPoolIface) {
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS passes").WillReturnResult(pgxmockv3.NewResult("CREATE", 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS pass_counter").WillReturnResult(pgxmockv3.NewResult("CREATE", 0))
	mock.ExpectExec("INSERT INTO pass_counter").WillReturnResult(pgxmockv3.NewResult("INSERT", 1))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_passes_owner ON passes").WillReturnResult(pgxmockv3.NewResult("CREATE", 0))
}

func TestNew(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	t.Run("parse error", func(t *testing.T) {
		if _, err := New(context.Background(), ":://bad", logger); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestInitSchema(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	expectSchema(mock)
	if err := storage.initSchema(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInitSchemaError(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS passes").WillReturnError(errors.New("boom"))
	if err := storage.initSchema(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestIssueAllocatesAndWrites(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE pass_counter SET next").
		WillReturnRows(pgxmockv3.NewRows([]string{"next"}).AddRow(int64(7)))
	mock.ExpectExec("INSERT INTO passes").
		WithArgs(int64(7), "alice", model.TierShort, int64(1_700_000_000)).
		WillReturnResult(pgxmockv3.NewResult("INSERT", 1))
	mock.ExpectCommit()

	id, err := storage.Passes().Issue(context.Background(), "alice", model.TierShort, 1_700_000_000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 7 {
		t.Fatalf("expected id 7, got %d", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestIssueDuplicateIdentifier(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE pass_counter SET next").
		WillReturnRows(pgxmockv3.NewRows([]string{"next"}).AddRow(int64(3)))
	mock.ExpectExec("INSERT INTO passes").
		WithArgs(int64(3), "alice", model.TierShort, int64(1_700_000_000)).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	_, err := storage.Passes().Issue(context.Background(), "alice", model.TierShort, 1_700_000_000)
	if !errors.Is(err, domainErrors.ErrPassAlreadyExists) {
		t.Fatalf("expected ErrPassAlreadyExists, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestIssueCounterFailureRollsBack(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE pass_counter SET next").WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	if _, err := storage.Passes().Issue(context.Background(), "alice", model.TierShort, 1); err == nil {
		t.Fatal("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLookup(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	issuedAt := time.Now()
	mock.ExpectQuery("SELECT id, owner, tier, expires_at, issued_at FROM passes").
		WithArgs(int64(5)).
		WillReturnRows(pgxmockv3.NewRows([]string{"id", "owner", "tier", "expires_at", "issued_at"}).
			AddRow(int64(5), "bob", model.TierLong, int64(1_800_000_000), issuedAt))

	rec, err := storage.Passes().Lookup(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ID != 5 || rec.Owner != "bob" || rec.Tier != model.TierLong || rec.ExpiresAt != 1_800_000_000 {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestLookupNotFound(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT id, owner, tier, expires_at, issued_at FROM passes").
		WithArgs(int64(9)).
		WillReturnError(pgx.ErrNoRows)

	if _, err := storage.Passes().Lookup(context.Background(), 9); !errors.Is(err, domainErrors.ErrPassNotFound) {
		t.Fatalf("expected ErrPassNotFound, got %v", err)
	}
}

func TestIssuedCount(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT next FROM pass_counter").
		WillReturnRows(pgxmockv3.NewRows([]string{"next"}).AddRow(int64(12)))

	count, err := storage.Passes().IssuedCount(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 12 {
		t.Fatalf("expected 12, got %d", count)
	}
}

func TestWithinTransactionCommitsAndRollsBack(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()
	if err := storage.WithinTransaction(context.Background(), func(pgx.Tx) error { return nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectBegin()
	mock.ExpectRollback()
	wantErr := errors.New("inner failure")
	if err := storage.WithinTransaction(context.Background(), func(pgx.Tx) error { return wantErr }); !errors.Is(err, wantErr) {
		t.Fatalf("expected inner error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestHealthCheck(t *testing.T) {
	mock, err := pgxmockv3.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()
	storage := &Storage{pool: mock, logger: slog.New(slog.NewJSONHandler(io.Discard, nil))}

	mock.ExpectPing()
	if err := storage.HealthCheck(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
