package orm

import (
	"context"
	"database/sql"

	"github.com/revliscano/sqlite-mini-object-mapping/orm/internal/valuer"
)

// handle 把中间件从后往前套在 root 外面，第一个中间件最先执行
func handle(ctx context.Context, c core, qc *QueryContext, root Handler) *QueryResult {
	for i := len(c.mdls) - 1; i >= 0; i-- {
		root = c.mdls[i](root)
	}
	return root(ctx, qc)
}

func exec(ctx context.Context, sess session, qc *QueryContext) Result {
	res := handle(ctx, sess.getCore(), qc, func(ctx context.Context, qc *QueryContext) *QueryResult {
		q, err := qc.Builder.Build()
		if err != nil {
			return &QueryResult{Err: err}
		}
		res, err := sess.execContext(ctx, q.SQL, q.Args...)
		return &QueryResult{Result: res, Err: err}
	})

	var sqlRes sql.Result
	if res.Result != nil {
		sqlRes = res.Result.(sql.Result)
	}
	return Result{
		err: res.Err,
		res: sqlRes,
	}
}

// query 读取全部结果行，结果集在返回之前就已经关闭
func query(ctx context.Context, sess session, qc *QueryContext) ([]valuer.Record, error) {
	res := handle(ctx, sess.getCore(), qc, func(ctx context.Context, qc *QueryContext) *QueryResult {
		q, err := qc.Builder.Build()
		if err != nil {
			return &QueryResult{Err: err}
		}
		rows, err := sess.queryContext(ctx, q.SQL, q.Args...)
		if err != nil {
			return &QueryResult{Err: err}
		}
		defer func() {
			_ = rows.Close()
		}()

		scanner, err := valuer.NewScanner(rows)
		if err != nil {
			return &QueryResult{Err: err}
		}
		records := make([]valuer.Record, 0, 8)
		for rows.Next() {
			rec, err := scanner.Scan(rows)
			if err != nil {
				return &QueryResult{Err: err}
			}
			records = append(records, rec)
		}
		return &QueryResult{Result: records, Err: rows.Err()}
	})
	if res.Err != nil {
		return nil, res.Err
	}
	records, _ := res.Result.([]valuer.Record)
	return records, nil
}
