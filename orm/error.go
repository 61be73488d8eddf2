package orm

import "github.com/revliscano/sqlite-mini-object-mapping/orm/internal/errs"

// 将内部的 sentinel error 暴露出去，用 errors.Is 判断
var (
	// ErrSchema 具体模型没有声明任何字段
	ErrSchema = errs.ErrSchema
	// ErrSchemaMismatch 构造实例时传入的字段和声明的字段不一致
	ErrSchemaMismatch = errs.ErrSchemaMismatch
	// ErrTypeMismatch Add 收到了别的模型的实例
	ErrTypeMismatch = errs.ErrTypeMismatch

	ErrAbstractModel = errs.ErrAbstractModel
	ErrInvalidID     = errs.ErrInvalidID
	ErrInvalidModel  = errs.ErrInvalidModel
	ErrPointerOnly   = errs.ErrPointerOnly
)
