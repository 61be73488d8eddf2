package orm

// Selector 全表扫描，没有 WHERE，也不保证顺序
type Selector struct {
	builder
}

// Build SELECT * FROM dummy_model
func (s *Selector) Build() (*Query, error) {
	s.reset()
	s.sb.WriteString("SELECT * FROM ")
	s.sb.WriteString(s.model.TableName())
	return s.query(), nil
}
