package orm

import (
	"context"

	"github.com/revliscano/sqlite-mini-object-mapping/orm/model"
)

// 仓储发出的语句类型
const (
	TypeExists = "EXISTS"
	TypeCreate = "CREATE"
	TypeInsert = "INSERT"
	TypeSelect = "SELECT"
)

// QueryContext 中间件的上下文
// 冗余了 Model，是因为有的中间件在执行 sql 之前就需要表名之类的信息
type QueryContext struct {
	// Type 声明查询类型。即 EXISTS, CREATE, INSERT 和 SELECT
	Type string

	// Builder 可以在中间件里面调用 Build 拿到 sql 和参数
	Builder QueryBuilder
	Model   *model.Model
}

type QueryResult struct {
	// Result 在不同的查询里面，类型是不同的
	// EXISTS 和 SELECT 是 []valuer.Record
	// 其它情况下，它会是 sql.Result
	Result any
	Err    error
}

type Middleware func(next Handler) Handler

type Handler func(ctx context.Context, qc *QueryContext) *QueryResult
