package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/polkiloo/passmint/internal/domain/errors"
	"github.com/polkiloo/passmint/internal/domain/model"
	"github.com/polkiloo/passmint/internal/domain/repository"
)

// Pool is the subset of pgxpool.Pool the storage relies on. Declared as
// an interface so tests can substitute a mock pool.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage is the membership registry backed by PostgreSQL. It owns the
// identifier counter and the pass records; both mutate only through the
// issuance path.
type Storage struct {
	pool   Pool
	logger *slog.Logger
}

type passRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Passes returns the registry repository.
func (s *Storage) Passes() repository.PassRepository {
	return &passRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS passes (
            id BIGINT PRIMARY KEY,
            owner TEXT NOT NULL,
            tier TEXT NOT NULL,
            expires_at BIGINT NOT NULL CHECK (expires_at > 0),
            issued_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS pass_counter (
            next BIGINT NOT NULL
        )`,
		`INSERT INTO pass_counter (next)
            SELECT 0 WHERE NOT EXISTS (SELECT 1 FROM pass_counter)`,
		`CREATE INDEX IF NOT EXISTS idx_passes_owner ON passes(owner, issued_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- PassRepository implementation ---

func (r *passRepository) Issue(ctx context.Context, owner string, tier model.Tier, expiresAt uint64) (uint64, error) {
	var id uint64
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const allocate = `UPDATE pass_counter SET next = next + 1 RETURNING next - 1`
		var allocated int64
		if err := tx.QueryRow(ctx, allocate).Scan(&allocated); err != nil {
			return err
		}

		const insert = `INSERT INTO passes (id, owner, tier, expires_at) VALUES ($1, $2, $3, $4)`
		if _, err := tx.Exec(ctx, insert, allocated, owner, tier, int64(expiresAt)); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				// monotonic allocation makes this unreachable; treat as
				// an internal consistency fault and refuse the write
				return domainErrors.ErrPassAlreadyExists
			}
			return err
		}

		id = uint64(allocated)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *passRepository) Lookup(ctx context.Context, id uint64) (*model.PassRecord, error) {
	const query = `SELECT id, owner, tier, expires_at, issued_at FROM passes WHERE id=$1`
	var (
		rec       model.PassRecord
		recID     int64
		expiresAt int64
	)
	err := r.storage.pool.QueryRow(ctx, query, int64(id)).Scan(&recID, &rec.Owner, &rec.Tier, &expiresAt, &rec.IssuedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrPassNotFound
		}
		return nil, err
	}
	rec.ID = uint64(recID)
	rec.ExpiresAt = uint64(expiresAt)
	return &rec, nil
}

func (r *passRepository) IssuedCount(ctx context.Context) (uint64, error) {
	const query = `SELECT next FROM pass_counter`
	var next int64
	if err := r.storage.pool.QueryRow(ctx, query).Scan(&next); err != nil {
		return 0, err
	}
	return uint64(next), nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
