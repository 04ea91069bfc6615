package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool *pgxpool.Pool
	Repositories
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		pool:         pool,
		Repositories: NewRepositories(pool),
	}
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(ctx, NewRepositories(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return translate(err, "transaction")
	}
	return nil
}

var _ TxRunner = (*Store)(nil)
