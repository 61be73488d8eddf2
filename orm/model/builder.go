package model

import "github.com/revliscano/sqlite-mini-object-mapping/orm/internal/errs"

// idColumn 是主键列，由存储生成，不能声明成字段
const idColumn = "id"

// Declaration 模型的原始声明：类名，父模型，以及按声明顺序排列的属性
type Declaration struct {
	Name    string
	Parents []*Model
	Members []Member
}

// Finalize validates a declaration and turns it into a Model:
// it checks that a concrete model has fields, derives the table name
// and gives every field the attribute name it was declared under.
func Finalize(decl Declaration, opts ...Option) (*Model, error) {
	fds := FieldsIn(decl.Members)

	// 根模型没有父模型，可以没有字段
	if len(decl.Parents) > 0 && len(fds) == 0 {
		return nil, errs.NewErrSchema(decl.Name)
	}

	tableName := TableNameOf(decl.Name)
	if tableName == "" {
		return nil, errs.NewErrInvalidClassName(decl.Name)
	}

	attrs := make(map[string]struct{}, len(fds))
	seen := make(map[*Field]string, len(fds))
	for _, fd := range fds {
		if fd.Attr == idColumn {
			return nil, errs.NewErrReservedField(fd.Attr)
		}
		if _, ok := attrs[fd.Attr]; ok {
			return nil, errs.NewErrDuplicateField(fd.Attr)
		}
		attrs[fd.Attr] = struct{}{}
		if fd.Name != "" && fd.Name != fd.Attr {
			return nil, errs.NewErrFieldRenamed(fd.Name, fd.Attr)
		}
		if attr, ok := seen[fd.Field]; ok {
			return nil, errs.NewErrFieldRenamed(attr, fd.Attr)
		}
		seen[fd.Field] = fd.Attr
	}

	// 全部校验通过之后再赋值，失败的声明不会留下半命名的 Field
	// 模型里面保存的是副本，之后再改声明用的 Field 不会影响模型
	fields := make([]*Field, 0, len(fds))
	fieldMap := make(map[string]*Field, len(fds))
	for _, fd := range fds {
		fd.Name = fd.Attr
		cp := *fd.Field
		fields = append(fields, &cp)
		fieldMap[cp.Name] = &cp
	}

	m := &Model{
		className: decl.Name,
		tableName: tableName,
		parents:   append([]*Model(nil), decl.Parents...),
		fields:    fields,
		fieldMap:  fieldMap,
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// MustFinalize is like Finalize but panics on error.
// It is meant for package level model declarations.
func MustFinalize(decl Declaration, opts ...Option) *Model {
	m, err := Finalize(decl, opts...)
	if err != nil {
		panic(err)
	}
	return m
}
