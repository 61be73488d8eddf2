package errs

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrPointerOnly 只支持一级指针作为输入
	// 看到这个 error 说明你输入了其它的东西
	// 我们并不希望用户能够直接使用 err == ErrPointerOnly
	// 所以放在我们的 internal 包里
	ErrPointerOnly = errors.New("orm: only a pointer to a struct is supported, e.g. *User")

	// ErrSchema a concrete model declares no field at all.
	ErrSchema = errors.New("orm: models need to have fields declared")

	// ErrSchemaMismatch 构造实例时传入的字段和声明的字段不一致
	ErrSchemaMismatch = errors.New("orm: wrong fields passed")

	// ErrTypeMismatch the repository got an instance of another model.
	ErrTypeMismatch = errors.New("orm: model type mismatch")

	ErrAbstractModel = errors.New("orm: abstract model has no table")
	ErrInvalidID     = errors.New("orm: id must be an integer")
	ErrInvalidModel  = errors.New("orm: invalid model declaration")

	// ErrNoResult 中间件没有返回执行结果
	ErrNoResult = errors.New("orm: statement returned no result")
)

func NewErrSchema(className string) error {
	return fmt.Errorf("%w: %s", ErrSchema, className)
}

// NewErrSchemaMismatch reports which names are missing and which were not declared.
// Both lists are sorted so the message is stable.
func NewErrSchemaMismatch(missing, unexpected []string) error {
	sort.Strings(missing)
	sort.Strings(unexpected)
	return fmt.Errorf("%w: missing [%s], unexpected [%s]", ErrSchemaMismatch,
		strings.Join(missing, ","), strings.Join(unexpected, ","))
}

func NewErrTypeMismatch(expected string) error {
	return fmt.Errorf("%w: add() expects an instance of %s", ErrTypeMismatch, expected)
}

func NewErrAbstractModel(className string) error {
	return fmt.Errorf("%w: %s", ErrAbstractModel, className)
}

func NewErrInvalidID(val any) error {
	return fmt.Errorf("%w, got %T", ErrInvalidID, val)
}

func NewErrInvalidClassName(name string) error {
	return fmt.Errorf("%w: class name %q has no letter", ErrInvalidModel, name)
}

func NewErrEmptyTableName(className string) error {
	return fmt.Errorf("%w: empty table name for %s", ErrInvalidModel, className)
}

func NewErrDuplicateField(name string) error {
	return fmt.Errorf("%w: field %s declared twice", ErrInvalidModel, name)
}

func NewErrReservedField(name string) error {
	return fmt.Errorf("%w: %s is reserved for the primary key", ErrInvalidModel, name)
}

// NewErrFieldRenamed 同一个 Field 被声明在两个不同的名字下
func NewErrFieldRenamed(assigned, name string) error {
	return fmt.Errorf("%w: field %s is already named %s", ErrInvalidModel, name, assigned)
}

func NewErrInvalidTagContent(tag string) error {
	return fmt.Errorf("orm: invalid tag content %s", tag)
}

func NewErrUnknownField(name string) error {
	return fmt.Errorf("orm: unknown field %s", name)
}
