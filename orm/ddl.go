package orm

// tableExister 查询模型对应的表是否存在
type tableExister struct {
	builder
}

func (t *tableExister) Build() (*Query, error) {
	t.reset()
	t.dialect.buildTableExists(&t.builder)
	return t.query(), nil
}

// tableCreator 建表，一个 id 主键列，加上按声明顺序排列的字段
type tableCreator struct {
	builder
}

func (t *tableCreator) Build() (*Query, error) {
	t.reset()
	t.dialect.buildCreateTable(&t.builder)
	return t.query(), nil
}
