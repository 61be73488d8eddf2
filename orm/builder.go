package orm

import (
	"strings"

	"github.com/revliscano/sqlite-mini-object-mapping/orm/model"
)

type builder struct {
	sb      strings.Builder // sb is used to build the SQL query string.
	args    []any           // args holds the arguments for the query.
	model   *model.Model    // model is the model the statement is built for.
	dialect Dialect
}

func newBuilder(c core, m *model.Model) builder {
	return builder{
		model:   m,
		dialect: c.dialect,
	}
}

// reset 每次 Build 都从头开始拼接，中间件里面可以重复调用 Build
func (b *builder) reset() {
	b.sb.Reset()
	b.args = nil
}

func (b *builder) addArgs(args ...any) {
	if b.args == nil {
		b.args = make([]any, 0, len(args))
	}
	b.args = append(b.args, args...)
}

func (b *builder) query() *Query {
	return &Query{
		SQL:  b.sb.String(),
		Args: b.args,
	}
}
