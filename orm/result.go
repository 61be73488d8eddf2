package orm

import (
	"database/sql"

	"github.com/revliscano/sqlite-mini-object-mapping/orm/internal/errs"
)

type Result struct {
	err error
	res sql.Result
}

// LastInsertId 在 database/sql 的 Result 方法外面做一层拦截
func (r Result) LastInsertId() (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	if r.res == nil {
		return 0, errs.ErrNoResult
	}
	return r.res.LastInsertId()
}

func (r Result) RowsAffected() (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	if r.res == nil {
		return 0, errs.ErrNoResult
	}
	return r.res.RowsAffected()
}

func (r Result) Err() error {
	return r.err
}
