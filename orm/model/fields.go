package model

// Member 声明中的一个属性，Value 可以是 *Field，也可以是别的任何东西
type Member struct {
	Name  string
	Value any
}

// DeclaredField a *Field paired with the attribute name it was declared under.
type DeclaredField struct {
	Attr string
	*Field
}

// FieldsIn returns the members holding a *Field, in encounter order.
func FieldsIn(members []Member) []DeclaredField {
	res := make([]DeclaredField, 0, len(members))
	for _, mb := range members {
		fd, ok := mb.Value.(*Field)
		if !ok || fd == nil {
			continue
		}
		res = append(res, DeclaredField{Attr: mb.Name, Field: fd})
	}
	return res
}
