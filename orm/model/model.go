package model

import "github.com/revliscano/sqlite-mini-object-mapping/orm/internal/errs"

// Model 模型声明 Finalize 之后的结果
// 创建之后就不会再修改，所以可以在多个 goroutine 之间共享
type Model struct {
	className string
	tableName string
	parents   []*Model
	fields    []*Field
	fieldMap  map[string]*Field
	// goNames 字段名 -> go struct 中的名字，只有通过 Registry 注册的模型才有
	goNames map[string]string
}

// Option is applied while a declaration is being finalized.
type Option func(m *Model) error

// Root is the abstract base model. It has no parent, so it may declare no field.
var Root = MustFinalize(Declaration{Name: "Model"})

func (m *Model) ClassName() string { return m.className }

func (m *Model) TableName() string { return m.tableName }

// Abstract reports whether the model has no parent, like Root.
func (m *Model) Abstract() bool { return len(m.parents) == 0 }

func (m *Model) Parents() []*Model {
	return append([]*Model(nil), m.parents...)
}

// Fields returns copies of the declared fields in declaration order.
// Changing them does not change the model.
func (m *Model) Fields() []*Field {
	res := make([]*Field, 0, len(m.fields))
	for _, fd := range m.fields {
		cp := *fd
		res = append(res, &cp)
	}
	return res
}

func (m *Model) FieldNames() []string {
	res := make([]string, 0, len(m.fields))
	for _, fd := range m.fields {
		res = append(res, fd.Name)
	}
	return res
}

// FieldByName returns a copy of the named field.
func (m *Model) FieldByName(name string) (*Field, bool) {
	fd, ok := m.fieldMap[name]
	if !ok {
		return nil, false
	}
	cp := *fd
	return &cp, true
}

// GoName returns the struct field name backing a field, for models
// registered from a struct.
func (m *Model) GoName(field string) (string, bool) {
	n, ok := m.goNames[field]
	return n, ok
}

// TableName 用户实现这个接口来返回自定义的表名
type TableName interface {
	TableName() string
}

// WithTableName is an Option that replaces the derived table name.
// An empty name is rejected.
func WithTableName(tableName string) Option {
	return func(m *Model) error {
		if tableName == "" {
			return errs.NewErrEmptyTableName(m.className)
		}
		m.tableName = tableName
		return nil
	}
}
