// Package pool narrows pgx pools, connections and transactions down to what repositories use.
//
// Repositories depend on interfaces here, not on pgx types,
// so a transaction can be passed where a connection is expected.
package pool

import (
	"context"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// Queryer sends SQL. Implemented by Conn and Tx.
type Queryer interface {
	// Exec sends SQL without result rows.
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)

	// Query sends SQL with result rows.
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)

	// QueryRow sends SQL with just one result row.
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Begin starts a transaction. Begin of Tx starts a nested one (savepoint).
type Begin interface {
	Begin(ctx context.Context) (Tx, error)
}

type Tx interface {
	Queryer
	Begin

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Conn is a connection acquired from Pool. Release it after use.
type Conn interface {
	Queryer
	Begin

	Release()
}

// Pool sends each query on a connection of its own.
// Acquire a Conn to send queries on one connection.
type Pool interface {
	Queryer
	Begin

	Acquire(ctx context.Context) (Conn, error)
	Close()
}

type pgxTx struct {
	pgx.Tx
}

func (tx pgxTx) Begin(ctx context.Context) (Tx, error) {
	return wrapTx(tx.Tx.Begin(ctx))
}

type pgxConn struct {
	*pgxpool.Conn
}

func (c pgxConn) Begin(ctx context.Context) (Tx, error) {
	return wrapTx(c.Conn.Begin(ctx))
}

type pgxPool struct {
	*pgxpool.Pool
}

func (p pgxPool) Begin(ctx context.Context) (Tx, error) {
	return wrapTx(p.Pool.Begin(ctx))
}

func (p pgxPool) Acquire(ctx context.Context) (Conn, error) {
	conn, err := p.Pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return pgxConn{conn}, nil
}

func wrapTx(tx pgx.Tx, err error) (Tx, error) {
	if err != nil {
		return nil, err
	}
	return pgxTx{tx}, nil
}

var (
	_ Tx   = pgxTx{}
	_ Conn = pgxConn{}
	_ Pool = pgxPool{}
)

// Wrap adapts *pgxpool.Pool to Pool.
func Wrap(p *pgxpool.Pool) Pool {
	return pgxPool{p}
}

// Connect opens a pool to the database at url.
func Connect(ctx context.Context, url string) (Pool, error) {
	p, err := pgxpool.Connect(ctx, url)
	if err != nil {
		return nil, err
	}
	return Wrap(p), nil
}

// InTx runs f in a new transaction.
//
// The transaction is committed when f returns nil, and rolled back otherwise.
func InTx(ctx context.Context, b Begin, f func(Tx) error) error {
	tx, err := b.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := f(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
