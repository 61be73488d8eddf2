package model

// Placeholder 是 INSERT 中每个绑定值使用的占位符，一个字段对应一个
const Placeholder = "?"

// Field 一个声明的列：类型标签 + 名字
// Name 在声明的时候是空的，Finalize 的时候才会被赋值为声明它的属性名
// Field 只是元数据，实例的数据保存在实例自己身上
type Field struct {
	Type string
	Name string
}

// NewField declares a column of the given type tag, e.g. NewField("text").
func NewField(typ string) *Field {
	return &Field{Type: typ}
}

// QueryString renders the column clause used by CREATE TABLE.
// [field_a] text
func (f *Field) QueryString() string {
	return "[" + f.Name + "] " + f.Type
}
