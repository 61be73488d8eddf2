package orm

import "github.com/revliscano/sqlite-mini-object-mapping/orm/model"

var (
	SQLite3 Dialect = &sqlite3Dialect{}
	MySQL   Dialect = &mysqlDialect{}
)

// Dialect 不同数据库的 DDL 以及元数据查询不一样
// INSERT 和 SELECT 是通用的
type Dialect interface {
	Name() string
	// buildTableExists 查询表是否存在，有结果行就代表存在
	buildTableExists(b *builder)
	buildCreateTable(b *builder)
}

type sqlite3Dialect struct{}

func (s *sqlite3Dialect) Name() string {
	return "sqlite3"
}

func (s *sqlite3Dialect) buildTableExists(b *builder) {
	b.sb.WriteString("SELECT name FROM sqlite_master WHERE type='table' AND name=?")
	b.addArgs(b.model.TableName())
}

// CREATE TABLE dummy_model ([id] INTEGER PRIMARY KEY, [field_a] text, [field_b] text)
func (s *sqlite3Dialect) buildCreateTable(b *builder) {
	buildCreateTable(b, "[id] INTEGER PRIMARY KEY", (*model.Field).QueryString)
}

type mysqlDialect struct{}

func (m *mysqlDialect) Name() string {
	return "mysql"
}

func (m *mysqlDialect) buildTableExists(b *builder) {
	b.sb.WriteString("SELECT table_name FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = ?")
	b.addArgs(b.model.TableName())
}

// CREATE TABLE dummy_model (`id` INTEGER PRIMARY KEY AUTO_INCREMENT, `field_a` text)
func (m *mysqlDialect) buildCreateTable(b *builder) {
	buildCreateTable(b, "`id` INTEGER PRIMARY KEY AUTO_INCREMENT", func(fd *model.Field) string {
		return "`" + fd.Name + "` " + fd.Type
	})
}

func buildCreateTable(b *builder, idClause string, column func(fd *model.Field) string) {
	b.sb.WriteString("CREATE TABLE ")
	b.sb.WriteString(b.model.TableName())
	b.sb.WriteString(" (")
	b.sb.WriteString(idClause)
	for _, fd := range b.model.Fields() {
		b.sb.WriteString(", ")
		b.sb.WriteString(column(fd))
	}
	b.sb.WriteByte(')')
}
