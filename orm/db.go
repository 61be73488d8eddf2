package orm

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"
)

type DBOption func(*DB)

// DB 对 sql.DB 的封装，保存方言，中间件和日志
// 仓储的每个操作都会从这里拿一个连接，用完就归还
type DB struct {
	core
	db *sql.DB
}

// Open opens a store with database/sql. The dialect follows the driver
// name ("mysql" selects MySQL, anything else SQLite3) unless
// DBWithDialect says otherwise.
func Open(driver string, dsn string, opts ...DBOption) (*DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if driver == "mysql" {
		opts = append([]DBOption{DBWithDialect(MySQL)}, opts...)
	}
	return OpenDB(db, opts...)
}

// OpenDB 可以传入已经打开的 sql.DB，例如测试里面的 sqlmock
func OpenDB(db *sql.DB, opts ...DBOption) (*DB, error) {
	res := &DB{
		core: core{
			dialect: SQLite3,
			logger:  zerolog.Nop(),
		},
		db: db,
	}
	for _, opt := range opts {
		opt(res)
	}
	return res, nil
}

// MustOpen is like Open but panics on error.
func MustOpen(driver string, dsn string, opts ...DBOption) *DB {
	db, err := Open(driver, dsn, opts...)
	if err != nil {
		panic(err)
	}
	return db
}

func DBWithDialect(dialect Dialect) DBOption {
	return func(db *DB) {
		db.dialect = dialect
	}
}

// DBWithMiddlewares adds mdls to the end of the chain. Repeating the
// option appends, so options from different sources can be combined.
func DBWithMiddlewares(mdls ...Middleware) DBOption {
	return func(db *DB) {
		db.mdls = append(db.mdls, mdls...)
	}
}

func DBWithLogger(logger zerolog.Logger) DBOption {
	return func(db *DB) {
		db.logger = logger
	}
}

func (db *DB) Dialect() Dialect {
	return db.dialect
}

// SetMaxOpenConns 限制连接池的大小，仓储的每个操作占用一个连接
func (db *DB) SetMaxOpenConns(n int) {
	db.db.SetMaxOpenConns(n)
}

func (db *DB) Close() error {
	return db.db.Close()
}

func (db *DB) conn(ctx context.Context) (*dbConn, error) {
	conn, err := db.db.Conn(ctx)
	if err != nil {
		return nil, err
	}
	return &dbConn{conn: conn, db: db}, nil
}
