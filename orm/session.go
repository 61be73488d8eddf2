package orm

import (
	"context"
	"database/sql"
)

var _ session = &dbConn{}
var _ session = &dbTx{}

// session 代表一次操作拿到的连接，或者连接上开启的事务
type session interface {
	getCore() core
	queryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	execContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// dbConn 每个仓储操作独占一个连接，操作结束就归还
type dbConn struct {
	conn *sql.Conn
	db   *DB
}

func (c *dbConn) getCore() core {
	return c.db.core
}

func (c *dbConn) queryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return c.conn.QueryContext(ctx, query, args...)
}

func (c *dbConn) execContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return c.conn.ExecContext(ctx, query, args...)
}

func (c *dbConn) beginTx(ctx context.Context, opts *sql.TxOptions) (*dbTx, error) {
	tx, err := c.conn.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &dbTx{tx: tx, db: c.db}, nil
}

func (c *dbConn) Close() error {
	return c.conn.Close()
}

type dbTx struct {
	tx *sql.Tx
	db *DB
}

func (t *dbTx) getCore() core {
	return t.db.core
}

func (t *dbTx) queryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return t.tx.QueryContext(ctx, query, args...)
}

func (t *dbTx) execContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return t.tx.ExecContext(ctx, query, args...)
}

func (t *dbTx) Commit() error {
	return t.tx.Commit()
}

func (t *dbTx) Rollback() error {
	return t.tx.Rollback()
}

// RollbackIfNotCommit 已经提交过的事务再回滚会返回 sql.ErrTxDone，忽略它
func (t *dbTx) RollbackIfNotCommit() error {
	err := t.tx.Rollback()
	if err != sql.ErrTxDone {
		return err
	}
	return nil
}
