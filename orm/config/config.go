// Package config loads the store settings from environment variables.
//
// Keys are read with a prefix, e.g. with prefix MINIORM_:
//
//	MINIORM_DRIVER=sqlite3
//	MINIORM_DSN=file:app.db
//	MINIORM_LOG_LEVEL=debug
//	MINIORM_QUERY_LOG=true
//	MINIORM_MAX_OPEN_CONNS=4
//
// Values may also come from .env files passed to Load.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	_ "github.com/mattn/go-sqlite3"
	"github.com/revliscano/sqlite-mini-object-mapping/orm"
	"github.com/revliscano/sqlite-mini-object-mapping/orm/middlewares/querylog"
	"github.com/rs/zerolog"
)

const DefaultPrefix = "MINIORM_"

// logOutput 测试里面会替换掉
var logOutput io.Writer = os.Stderr

type Config struct {
	Driver       string `koanf:"driver" validate:"required,oneof=sqlite3 mysql"`
	DSN          string `koanf:"dsn" validate:"required"`
	LogLevel     string `koanf:"log_level"`
	QueryLog     bool   `koanf:"query_log"`
	MaxOpenConns int    `koanf:"max_open_conns" validate:"gte=0"`
}

// Load reads the configuration from the environment. envFiles are loaded
// first; variables already set in the environment win over them.
func Load(prefix string, envFiles ...string) (*Config, error) {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return nil, fmt.Errorf("config: load env files: %w", err)
		}
	}

	k := koanf.New(".")
	err := k.Load(env.Provider(prefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, prefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("config: load env: %w", err)
	}

	cfg := &Config{
		Driver:   "sqlite3",
		LogLevel: zerolog.LevelInfoValue,
	}
	if err = k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the struct tags, the log level and, for MySQL, that the
// DSN names a database: the table lookup runs against DATABASE().
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Driver == "mysql" {
		mc, err := mysql.ParseDSN(c.DSN)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		if mc.DBName == "" {
			return fmt.Errorf("config: mysql dsn %q has no database name", c.DSN)
		}
	}
	return nil
}

// Logger 按配置的级别输出到 stderr
func (c *Config) Logger() zerolog.Logger {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: logOutput}).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

// Open opens the store described by c. opts are applied after the
// logger option derived from the configuration. With QueryLog the query
// log is appended after the caller's middlewares.
func (c *Config) Open(opts ...orm.DBOption) (*orm.DB, error) {
	logger := c.Logger()
	all := make([]orm.DBOption, 0, len(opts)+2)
	all = append(all, orm.DBWithLogger(logger))
	all = append(all, opts...)
	if c.QueryLog {
		all = append(all, orm.DBWithMiddlewares(querylog.NewBuilder().Logger(logger).Build()))
	}
	db, err := orm.Open(c.Driver, c.DSN, all...)
	if err != nil {
		return nil, err
	}
	if c.MaxOpenConns > 0 {
		db.SetMaxOpenConns(c.MaxOpenConns)
	}
	return db, nil
}
