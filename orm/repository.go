package orm

import (
	"context"

	"github.com/revliscano/sqlite-mini-object-mapping/orm/internal/errs"
	"github.com/revliscano/sqlite-mini-object-mapping/orm/model"
)

// Repository 一个模型在一个存储上的建表，插入以及全表查询
// 没有状态，每个操作都会重新拿连接
// 并发的建表或者插入完全依赖存储自己的保证，这里不加锁
type Repository struct {
	model *model.Model
	db    *DB
}

// NewRepository binds m to db and makes sure its table exists.
// An existing table is used as is: it is never dropped, altered or
// compared with the model.
func NewRepository(ctx context.Context, db *DB, m *model.Model) (*Repository, error) {
	if m.Abstract() {
		return nil, errs.NewErrAbstractModel(m.ClassName())
	}
	r := &Repository{
		model: m,
		db:    db,
	}
	if err := r.setUp(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Repository) Model() *model.Model {
	return r.model
}

// setUp 在同一个连接上先查表是否存在，不存在再建表
func (r *Repository) setUp(ctx context.Context) error {
	conn, err := r.db.conn(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = conn.Close()
	}()

	exists, err := r.existsTable(ctx, conn)
	if err != nil || exists {
		return err
	}

	res := exec(ctx, conn, &QueryContext{
		Type:    TypeCreate,
		Builder: &tableCreator{builder: newBuilder(r.db.core, r.model)},
		Model:   r.model,
	})
	if res.Err() != nil {
		return res.Err()
	}
	r.db.logger.Debug().
		Str("table", r.model.TableName()).
		Str("dialect", r.db.dialect.Name()).
		Msg("table created")
	return nil
}

// ExistsTable reports whether the model's table exists in the store.
func (r *Repository) ExistsTable(ctx context.Context) (bool, error) {
	conn, err := r.db.conn(ctx)
	if err != nil {
		return false, err
	}
	defer func() {
		_ = conn.Close()
	}()
	return r.existsTable(ctx, conn)
}

func (r *Repository) existsTable(ctx context.Context, sess session) (bool, error) {
	records, err := query(ctx, sess, &QueryContext{
		Type:    TypeExists,
		Builder: &tableExister{builder: newBuilder(r.db.core, r.model)},
		Model:   r.model,
	})
	if err != nil {
		return false, err
	}
	return len(records) > 0, nil
}

// Add inserts inst and returns the id generated by the store.
// inst must be an instance of the repository's model. The insert runs in
// its own transaction: it is either committed or nothing is visible.
func (r *Repository) Add(ctx context.Context, inst *Instance) (int64, error) {
	if inst == nil || inst.Model() != r.model {
		return 0, errs.NewErrTypeMismatch(r.model.ClassName())
	}

	conn, err := r.db.conn(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = conn.Close()
	}()

	tx, err := conn.beginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = tx.RollbackIfNotCommit()
	}()

	res := exec(ctx, tx, &QueryContext{
		Type:    TypeInsert,
		Builder: &Inserter{builder: newBuilder(r.db.core, r.model), inst: inst},
		Model:   r.model,
	})
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// FetchAll returns every row of the model's table, in the store's order.
// Each row, id included, goes through New, so a row whose columns do not
// match the declared fields gives ErrSchemaMismatch.
func (r *Repository) FetchAll(ctx context.Context) ([]*Instance, error) {
	conn, err := r.db.conn(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = conn.Close()
	}()

	records, err := query(ctx, conn, &QueryContext{
		Type:    TypeSelect,
		Builder: &Selector{builder: newBuilder(r.db.core, r.model)},
		Model:   r.model,
	})
	if err != nil {
		return nil, err
	}

	res := make([]*Instance, 0, len(records))
	for _, rec := range records {
		inst, err := New(r.model, rec)
		if err != nil {
			return nil, err
		}
		res = append(res, inst)
	}
	return res, nil
}
