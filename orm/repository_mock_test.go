package orm

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/revliscano/sqlite-mini-object-mapping/orm/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	sqliteExists = "SELECT name FROM sqlite_master WHERE type='table' AND name=?"
	sqliteCreate = "CREATE TABLE dummy_model ([id] INTEGER PRIMARY KEY, [field_a] text, [field_b] text)"
	mysqlExists  = "SELECT table_name FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = ?"
	mysqlCreate  = "CREATE TABLE dummy_model (`id` INTEGER PRIMARY KEY AUTO_INCREMENT, `field_a` text, `field_b` text)"
	insertSQL    = "INSERT INTO dummy_model(field_a,field_b) VALUES(?,?)"
	selectSQL    = "SELECT * FROM dummy_model"
)

func mockDB(t *testing.T, opts ...DBOption) (*DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	db, err := OpenDB(sqlDB, opts...)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db, mock
}

func TestRepository_SetUpStatements(t *testing.T) {
	testCases := []struct {
		name    string
		dialect Dialect
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name:    "sqlite3 creates missing table",
			dialect: SQLite3,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(sqliteExists).WithArgs("dummy_model").
					WillReturnRows(sqlmock.NewRows([]string{"name"}))
				mock.ExpectExec(sqliteCreate).WillReturnResult(driver.ResultNoRows)
			},
		},
		{
			name:    "sqlite3 keeps existing table",
			dialect: SQLite3,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(sqliteExists).WithArgs("dummy_model").
					WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("dummy_model"))
			},
		},
		{
			name:    "mysql creates missing table",
			dialect: MySQL,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(mysqlExists).WithArgs("dummy_model").
					WillReturnRows(sqlmock.NewRows([]string{"table_name"}))
				mock.ExpectExec(mysqlCreate).WillReturnResult(driver.ResultNoRows)
			},
		},
		{
			name:    "exists query error",
			dialect: SQLite3,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(sqliteExists).WithArgs("dummy_model").
					WillReturnError(errors.New("database is locked"))
			},
			wantErr: errors.New("database is locked"),
		},
		{
			name:    "create error",
			dialect: SQLite3,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(sqliteExists).WithArgs("dummy_model").
					WillReturnRows(sqlmock.NewRows([]string{"name"}))
				mock.ExpectExec(sqliteCreate).WillReturnError(errors.New("disk full"))
			},
			wantErr: errors.New("disk full"),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := mockDB(t, DBWithDialect(tc.dialect))
			tc.mock(mock)

			repo, err := NewRepository(context.Background(), db, dummyModel)
			assert.Equal(t, tc.wantErr, err)
			if err == nil {
				assert.NotNil(t, repo)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// existingRepo 表已经存在的仓储
func existingRepo(t *testing.T, opts ...DBOption) (*Repository, sqlmock.Sqlmock) {
	return existingRepoOf(t, dummyModel, opts...)
}

func existingRepoOf(t *testing.T, m *model.Model, opts ...DBOption) (*Repository, sqlmock.Sqlmock) {
	db, mock := mockDB(t, opts...)
	exists := sqliteExists
	if db.Dialect() == MySQL {
		exists = mysqlExists
	}
	mock.ExpectQuery(exists).WithArgs(m.TableName()).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow(m.TableName()))
	repo, err := NewRepository(context.Background(), db, m)
	require.NoError(t, err)
	return repo, mock
}

func TestRepository_AddStatements(t *testing.T) {
	testCases := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantID  int64
		wantErr error
	}{
		{
			name: "commit",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(insertSQL).WithArgs("foo", "bar").
					WillReturnResult(sqlmock.NewResult(12, 1))
				mock.ExpectCommit()
			},
			wantID: 12,
		},
		{
			name: "insert error rolls back",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(insertSQL).WithArgs("foo", "bar").
					WillReturnError(errors.New("constraint failed"))
				mock.ExpectRollback()
			},
			wantErr: errors.New("constraint failed"),
		},
		{
			name: "commit error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(insertSQL).WithArgs("foo", "bar").
					WillReturnResult(sqlmock.NewResult(12, 1))
				mock.ExpectCommit().WillReturnError(errors.New("commit failed"))
			},
			wantErr: errors.New("commit failed"),
		},
		{
			name: "begin error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(errors.New("begin failed"))
			},
			wantErr: errors.New("begin failed"),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock := existingRepo(t)
			tc.mock(mock)

			id, err := repo.Add(context.Background(),
				mustNew(dummyModel, map[string]any{"field_a": "foo", "field_b": "bar"}))
			assert.Equal(t, tc.wantErr, err)
			assert.Equal(t, tc.wantID, id)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_AddTypeMismatchIssuesNoSQL(t *testing.T) {
	repo, mock := existingRepo(t)

	_, err := repo.Add(context.Background(), mustNew(anotherModel, map[string]any{"field_x": "foo"}))
	assert.ErrorIs(t, err, ErrTypeMismatch)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FetchAllStatements(t *testing.T) {
	testCases := []struct {
		name       string
		dialect    Dialect
		rows       *sqlmock.Rows
		queryErr   error
		wantValues [][]any
		wantIDs    []int64
		wantErr    error
		wantIs     error
	}{
		{
			name: "rows",
			rows: sqlmock.NewRows([]string{"id", "field_a", "field_b"}).
				AddRow(int64(1), "foo", "bar").
				AddRow(int64(2), "baz", "zoo"),
			wantValues: [][]any{{"foo", "bar"}, {"baz", "zoo"}},
			wantIDs:    []int64{1, 2},
		},
		{
			name: "text columns as bytes",
			rows: sqlmock.NewRowsWithColumnDefinition(
				sqlmock.NewColumn("id").OfType("INTEGER", int64(0)),
				sqlmock.NewColumn("field_a").OfType("TEXT", ""),
				sqlmock.NewColumn("field_b").OfType("VARCHAR", ""),
			).AddRow(int64(1), []byte("foo"), []byte("bar")),
			wantValues: [][]any{{"foo", "bar"}},
			wantIDs:    []int64{1},
		},
		{
			// MySQL 不带参数的查询走文本协议，id 也是 []byte
			name:    "mysql text protocol row",
			dialect: MySQL,
			rows: sqlmock.NewRowsWithColumnDefinition(
				sqlmock.NewColumn("id").OfType("INT", []byte{}),
				sqlmock.NewColumn("field_a").OfType("TEXT", []byte{}),
				sqlmock.NewColumn("field_b").OfType("TEXT", []byte{}),
			).
				AddRow([]byte("1"), []byte("foo"), []byte("bar")).
				AddRow([]byte("2"), []byte("baz"), nil),
			wantValues: [][]any{{"foo", "bar"}, {"baz", nil}},
			wantIDs:    []int64{1, 2},
		},
		{
			name:       "no rows",
			rows:       sqlmock.NewRows([]string{"id", "field_a", "field_b"}),
			wantValues: [][]any{},
			wantIDs:    []int64{},
		},
		{
			name: "unexpected column",
			rows: sqlmock.NewRows([]string{"id", "field_a", "field_c"}).
				AddRow(int64(1), "foo", "bar"),
			wantIs: ErrSchemaMismatch,
		},
		{
			name:     "query error",
			queryErr: errors.New("no such table: dummy_model"),
			wantErr:  errors.New("no such table: dummy_model"),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dialect := tc.dialect
			if dialect == nil {
				dialect = SQLite3
			}
			repo, mock := existingRepo(t, DBWithDialect(dialect))
			exp := mock.ExpectQuery(selectSQL)
			if tc.queryErr != nil {
				exp.WillReturnError(tc.queryErr)
			} else {
				exp.WillReturnRows(tc.rows)
			}

			insts, err := repo.FetchAll(context.Background())
			assert.NoError(t, mock.ExpectationsWereMet())
			if tc.wantIs != nil {
				assert.ErrorIs(t, err, tc.wantIs)
				return
			}
			assert.Equal(t, tc.wantErr, err)
			if err != nil {
				return
			}
			assert.Equal(t, tc.wantValues, valuesOf(insts))
			ids := make([]int64, 0, len(insts))
			for _, inst := range insts {
				id, _ := inst.ID()
				ids = append(ids, id)
			}
			assert.Equal(t, tc.wantIDs, ids)
		})
	}
}

var statModel = model.MustFinalize(model.Declaration{
	Name:    "StatModel",
	Parents: []*model.Model{model.Root},
	Members: []model.Member{
		{Name: "label", Value: model.NewField("VARCHAR(64)")},
		{Name: "hits", Value: model.NewField("INTEGER")},
		{Name: "ratio", Value: model.NewField("DOUBLE")},
	},
})

// 同样的一行，SQLite 直接给出 int64 和 float64，MySQL 给出 []byte，结果要一致
func TestRepository_FetchAllNumericFields(t *testing.T) {
	testCases := []struct {
		name    string
		dialect Dialect
		rows    *sqlmock.Rows
	}{
		{
			name:    "sqlite3",
			dialect: SQLite3,
			rows: sqlmock.NewRowsWithColumnDefinition(
				sqlmock.NewColumn("id").OfType("INTEGER", int64(0)),
				sqlmock.NewColumn("label").OfType("VARCHAR(64)", ""),
				sqlmock.NewColumn("hits").OfType("INTEGER", int64(0)),
				sqlmock.NewColumn("ratio").OfType("DOUBLE", float64(0)),
			).AddRow(int64(7), "home", int64(42), 0.25),
		},
		{
			name:    "mysql",
			dialect: MySQL,
			rows: sqlmock.NewRowsWithColumnDefinition(
				sqlmock.NewColumn("id").OfType("INT", []byte{}),
				sqlmock.NewColumn("label").OfType("VARCHAR", []byte{}),
				sqlmock.NewColumn("hits").OfType("INT", []byte{}),
				sqlmock.NewColumn("ratio").OfType("DOUBLE", []byte{}),
			).AddRow([]byte("7"), []byte("home"), []byte("42"), []byte("0.25")),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock := existingRepoOf(t, statModel, DBWithDialect(tc.dialect))
			mock.ExpectQuery("SELECT * FROM stat_model").WillReturnRows(tc.rows)

			insts, err := repo.FetchAll(context.Background())
			require.NoError(t, err)
			require.Len(t, insts, 1)
			id, ok := insts[0].ID()
			assert.True(t, ok)
			assert.Equal(t, int64(7), id)
			assert.Equal(t, []any{"home", int64(42), 0.25}, insts[0].Values())
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_Middlewares(t *testing.T) {
	var types []string
	record := func(next Handler) Handler {
		return func(ctx context.Context, qc *QueryContext) *QueryResult {
			types = append(types, qc.Type)
			assert.Same(t, dummyModel, qc.Model)
			return next(ctx, qc)
		}
	}
	db, mock := mockDB(t, DBWithMiddlewares(record))
	mock.ExpectQuery(sqliteExists).WithArgs("dummy_model").
		WillReturnRows(sqlmock.NewRows([]string{"name"}))
	mock.ExpectExec(sqliteCreate).WillReturnResult(driver.ResultNoRows)
	mock.ExpectBegin()
	mock.ExpectExec(insertSQL).WithArgs("foo", "bar").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(selectSQL).WillReturnRows(sqlmock.NewRows([]string{"id", "field_a", "field_b"}))

	ctx := context.Background()
	repo, err := NewRepository(ctx, db, dummyModel)
	require.NoError(t, err)
	_, err = repo.Add(ctx, mustNew(dummyModel, map[string]any{"field_a": "foo", "field_b": "bar"}))
	require.NoError(t, err)
	_, err = repo.FetchAll(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{TypeExists, TypeCreate, TypeInsert, TypeSelect}, types)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBWithMiddlewares_Appends(t *testing.T) {
	var calls []string
	named := func(name string) Middleware {
		return func(next Handler) Handler {
			return func(ctx context.Context, qc *QueryContext) *QueryResult {
				calls = append(calls, name)
				return next(ctx, qc)
			}
		}
	}
	db, mock := mockDB(t,
		DBWithMiddlewares(named("first"), named("second")),
		DBWithMiddlewares(named("third")))
	mock.ExpectQuery(sqliteExists).WithArgs("dummy_model").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("dummy_model"))

	_, err := NewRepository(context.Background(), db, dummyModel)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// 中间件可以直接拦截，不执行 sql
func TestRepository_MiddlewareShortCircuit(t *testing.T) {
	deny := func(next Handler) Handler {
		return func(ctx context.Context, qc *QueryContext) *QueryResult {
			if qc.Type == TypeInsert {
				return &QueryResult{Err: errors.New("read only")}
			}
			return next(ctx, qc)
		}
	}
	repo, mock := existingRepo(t, DBWithMiddlewares(deny))
	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := repo.Add(context.Background(), mustNew(dummyModel, map[string]any{"field_a": "foo", "field_b": "bar"}))
	assert.Equal(t, errors.New("read only"), err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
