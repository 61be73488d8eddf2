package orm

import "github.com/revliscano/sqlite-mini-object-mapping/orm/model"

// Inserter 插入一个实例，id 由数据库生成，所以不会出现在语句里面
type Inserter struct {
	builder
	inst *Instance
}

// Build INSERT INTO dummy_model(field_a,field_b) VALUES(?,?)
func (i *Inserter) Build() (*Query, error) {
	i.reset()
	fields := i.model.Fields()

	i.sb.WriteString("INSERT INTO ")
	i.sb.WriteString(i.model.TableName())
	i.sb.WriteByte('(')
	for idx, fd := range fields {
		if idx > 0 {
			i.sb.WriteByte(',')
		}
		i.sb.WriteString(fd.Name)
	}
	i.sb.WriteString(") VALUES(")
	// 占位符和取值的顺序都是字段的声明顺序
	for idx := range fields {
		if idx > 0 {
			i.sb.WriteByte(',')
		}
		i.sb.WriteString(model.Placeholder)
	}
	i.sb.WriteByte(')')
	i.addArgs(i.inst.Values()...)
	return i.query(), nil
}
