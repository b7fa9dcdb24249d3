package xpgx

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/cenkalti/backoff/v4"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier общий для пула и транзакции.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Pool выполняет squirrel-запросы и сканирует строки в структуры по тегу db.
type Pool interface {
	Execx(ctx context.Context, query squirrel.Sqlizer) (pgconn.CommandTag, error)
	Getx(ctx context.Context, dst any, query squirrel.Sqlizer) error
	Selectx(ctx context.Context, dst any, query squirrel.Sqlizer) error
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	BeginFunc(ctx context.Context, fn func(Pool) error) error
	Close()
}

type pool struct {
	q    Querier
	root *pgxpool.Pool
}

// Connect открывает пул и ждёт, пока база ответит на ping.
func Connect(ctx context.Context, url string) (Pool, error) {
	p, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}

	err = backoff.Retry(
		func() error {
			return p.Ping(ctx)
		},
		backoff.WithContext(
			backoff.WithMaxRetries(backoff.NewConstantBackOff(500*time.Millisecond), 10),
			ctx,
		),
	)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	return &pool{q: p, root: p}, nil
}

func (p *pool) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return p.q.Exec(ctx, sql, args...)
}

func (p *pool) Execx(ctx context.Context, query squirrel.Sqlizer) (pgconn.CommandTag, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return pgconn.CommandTag{}, fmt.Errorf("ToSql: %w", err)
	}

	return p.q.Exec(ctx, sql, args...)
}

func (p *pool) Getx(ctx context.Context, dst any, query squirrel.Sqlizer) error {
	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("ToSql: %w", err)
	}

	if err = pgxscan.Get(ctx, p.q, dst, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return pgx.ErrNoRows
		}
		return err
	}

	return nil
}

func (p *pool) Selectx(ctx context.Context, dst any, query squirrel.Sqlizer) error {
	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("ToSql: %w", err)
	}

	return pgxscan.Select(ctx, p.q, dst, sql, args...)
}

func (p *pool) BeginFunc(ctx context.Context, fn func(Pool) error) error {
	if p.root == nil {
		// уже внутри транзакции
		return fn(p)
	}

	return pgx.BeginFunc(ctx, p.root, func(tx pgx.Tx) error {
		return fn(&pool{q: tx})
	})
}

func (p *pool) Close() {
	if p.root != nil {
		p.root.Close()
	}
}
