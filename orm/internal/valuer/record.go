package valuer

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

// Record 一行数据，列名 -> 值
type Record map[string]any

// Scanner 把结果集里面的每一行转换成 Record
// 列的信息只在创建的时候读取一次
type Scanner struct {
	columns []string
	kinds   []columnKind
}

type columnKind uint8

const (
	kindOther columnKind = iota
	kindInteger
	kindFloat
	kindText
)

func NewScanner(rows *sql.Rows) (*Scanner, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}
	kinds := make([]columnKind, len(columns))
	for i, ct := range types {
		kinds[i] = kindOf(ct.DatabaseTypeName())
	}
	return &Scanner{
		columns: columns,
		kinds:   kinds,
	}, nil
}

// Scan reads the current row. Drivers using a text protocol, such as
// MySQL without bound args, return every column as []byte: those values
// are converted by the column type to int64, float64 or string.
// Other values are kept as the driver gave them.
func (s *Scanner) Scan(rows *sql.Rows) (Record, error) {
	// colValues 里面存的都是指针，Scan 之后通过 colEleValues 拿到值
	colValues := make([]any, len(s.columns))
	colEleValues := make([]any, len(s.columns))
	for i := range colValues {
		colValues[i] = &colEleValues[i]
	}
	if err := rows.Scan(colValues...); err != nil {
		return nil, err
	}

	rec := make(Record, len(s.columns))
	for i, c := range s.columns {
		val := colEleValues[i]
		if bs, ok := val.([]byte); ok {
			converted, err := convert(s.kinds[i], bs)
			if err != nil {
				return nil, fmt.Errorf("valuer: column %s: %w", c, err)
			}
			val = converted
		}
		rec[c] = val
	}
	return rec, nil
}

func convert(kind columnKind, bs []byte) (any, error) {
	switch kind {
	case kindInteger:
		str := string(bs)
		if i, err := strconv.ParseInt(str, 10, 64); err == nil {
			return i, nil
		}
		// UNSIGNED BIGINT 可能超出 int64
		return strconv.ParseUint(str, 10, 64)
	case kindFloat:
		return strconv.ParseFloat(string(bs), 64)
	case kindText:
		return string(bs), nil
	default:
		return bs, nil
	}
}

// kindOf 按 SQLite 的类型亲和性规则判断，MySQL 的类型名也适用
// INT 优先于 TEXT，例如 INTEGER，BIGINT，UNSIGNED INT
func kindOf(typeName string) columnKind {
	typeName = strings.ToUpper(typeName)
	switch {
	case strings.Contains(typeName, "INT"):
		return kindInteger
	case isText(typeName):
		return kindText
	case strings.Contains(typeName, "REAL"),
		strings.Contains(typeName, "FLOA"),
		strings.Contains(typeName, "DOUB"):
		return kindFloat
	default:
		return kindOther
	}
}

// isText 和 SQLite 的 TEXT 亲和性规则一致：类型名里面包含 CHAR, CLOB 或者 TEXT
func isText(typeName string) bool {
	typeName = strings.ToUpper(typeName)
	return strings.Contains(typeName, "CHAR") ||
		strings.Contains(typeName, "CLOB") ||
		strings.Contains(typeName, "TEXT")
}
