package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"trendmindAPI/internal/types/post"
)

// PostgresStore keeps one row per owner in post_slots. The revision column
// is compared on every write.
type PostgresStore struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgresStore(db *pgxpool.Pool, logger *zap.Logger) *PostgresStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostgresStore{db: db, logger: logger.Named("postgres_store")}
}

func (s *PostgresStore) Load(ctx context.Context, owner string) ([]*post.ScheduledPost, error) {
	data, _, err := s.read(ctx, owner)
	if errors.Is(err, pgx.ErrNoRows) {
		query := `
		INSERT INTO post_slots (owner_id, slot_key, posts, revision)
		VALUES ($1, $2, '[]'::jsonb, 0)
		ON CONFLICT (owner_id, slot_key) DO NOTHING
		`
		if _, err := s.db.Exec(ctx, query, owner, post.StorageKey); err != nil {
			return nil, fmt.Errorf("failed to initialize slot: %w", err)
		}
		return []*post.ScheduledPost{}, nil
	}
	if err != nil {
		return nil, err
	}

	return decodeSlot(data, s.logger, owner)
}

func (s *PostgresStore) Append(ctx context.Context, owner string, p *post.ScheduledPost) error {
	data, revision, err := s.read(ctx, owner)
	missing := errors.Is(err, pgx.ErrNoRows)
	if err != nil && !missing {
		return err
	}

	next, err := appendToSlot(data, p)
	if err != nil {
		return err
	}

	if missing {
		query := `
		INSERT INTO post_slots (owner_id, slot_key, posts, revision)
		VALUES ($1, $2, $3::jsonb, 1)
		ON CONFLICT (owner_id, slot_key) DO NOTHING
		`
		tag, err := s.db.Exec(ctx, query, owner, post.StorageKey, string(next))
		if err != nil {
			return fmt.Errorf("failed to create slot: %w", err)
		}
		if tag.RowsAffected() == 0 {
			conflictsTotal.WithLabelValues("postgres").Inc()
			return ErrConflict
		}
		return nil
	}

	query := `
	UPDATE post_slots
	SET posts = $1::jsonb, revision = revision + 1, updated_at = now()
	WHERE owner_id = $2 AND slot_key = $3 AND revision = $4
	`
	tag, err := s.db.Exec(ctx, query, string(next), owner, post.StorageKey, revision)
	if err != nil {
		return fmt.Errorf("failed to update slot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		conflictsTotal.WithLabelValues("postgres").Inc()
		return ErrConflict
	}
	return nil
}

func (s *PostgresStore) Clear(ctx context.Context, owner string) error {
	query := `DELETE FROM post_slots WHERE owner_id = $1 AND slot_key = $2`
	if _, err := s.db.Exec(ctx, query, owner, post.StorageKey); err != nil {
		return fmt.Errorf("failed to clear slot: %w", err)
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *PostgresStore) Close() error {
	s.db.Close()
	return nil
}

func (s *PostgresStore) read(ctx context.Context, owner string) ([]byte, int64, error) {
	var (
		data     []byte
		revision int64
	)
	query := `SELECT posts::text, revision FROM post_slots WHERE owner_id = $1 AND slot_key = $2`
	err := s.db.QueryRow(ctx, query, owner, post.StorageKey).Scan(&data, &revision)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, 0, err
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get slot: %w", err)
	}
	return data, revision, nil
}
