package querylog

import (
	"context"

	"github.com/revliscano/sqlite-mini-object-mapping/orm"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type MiddlewareBuilder struct {
	logFunc func(query string, args []any)
}

// NewBuilder 默认用 zerolog 的全局 logger，在 debug 级别输出
func NewBuilder() *MiddlewareBuilder {
	return &MiddlewareBuilder{
		logFunc: func(query string, args []any) {
			log.Debug().Str("sql", query).Interface("args", args).Msg("query")
		},
	}
}

// LogFunc 这里如果需要配置的参数比较多，可以使用 函数选项模式
func (m *MiddlewareBuilder) LogFunc(fn func(query string, args []any)) *MiddlewareBuilder {
	m.logFunc = fn
	return m
}

// Logger logs every statement on l at debug level.
func (m *MiddlewareBuilder) Logger(l zerolog.Logger) *MiddlewareBuilder {
	m.logFunc = func(query string, args []any) {
		l.Debug().Str("sql", query).Interface("args", args).Msg("query")
	}
	return m
}

func (m *MiddlewareBuilder) Build() orm.Middleware {
	return func(next orm.Handler) orm.Handler {
		return func(ctx context.Context, qc *orm.QueryContext) *orm.QueryResult {
			q, err := qc.Builder.Build()
			if err != nil {
				return &orm.QueryResult{
					Err: err,
				}
			}
			if m.logFunc != nil {
				m.logFunc(q.SQL, q.Args)
			}
			return next(ctx, qc)
		}
	}
}
