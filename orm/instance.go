package orm

import (
	"math"
	"reflect"

	"github.com/revliscano/sqlite-mini-object-mapping/orm/internal/errs"
	"github.com/revliscano/sqlite-mini-object-mapping/orm/model"
)

const idKey = "id"

// Instance 模型的一个实例
// 字段的值保存在实例自己的 map 里面，Field 只是元数据
type Instance struct {
	model  *model.Model
	id     int64
	hasID  bool
	values map[string]any
}

// New constructs an instance of m from field name -> value pairs.
// An optional "id" key carries the identifier of a persisted row and is
// not part of the field check. The remaining keys must be exactly the
// declared field names, otherwise ErrSchemaMismatch is returned.
// args is not modified.
func New(m *model.Model, args map[string]any) (*Instance, error) {
	kwargs := make(map[string]any, len(args))
	for k, v := range args {
		kwargs[k] = v
	}

	inst := &Instance{model: m}
	if err := inst.setID(kwargs); err != nil {
		return nil, err
	}
	if err := inst.validateFields(kwargs); err != nil {
		return nil, err
	}
	inst.values = kwargs
	return inst, nil
}

// InstanceOf builds an instance from a struct registered through
// model.Registry. The instance has no id.
func InstanceOf(m *model.Model, val any) (*Instance, error) {
	refVal := reflect.ValueOf(val)
	if refVal.Kind() != reflect.Ptr || refVal.Elem().Kind() != reflect.Struct {
		return nil, errs.ErrPointerOnly
	}
	refVal = refVal.Elem()

	names := m.FieldNames()
	args := make(map[string]any, len(names))
	for _, name := range names {
		goName, ok := m.GoName(name)
		if !ok {
			return nil, errs.NewErrUnknownField(name)
		}
		fd := refVal.FieldByName(goName)
		if !fd.IsValid() {
			return nil, errs.NewErrUnknownField(goName)
		}
		args[name] = fd.Interface()
	}
	return New(m, args)
}

// setID 取出并删除 id，nil 和没有传都代表还没有持久化
func (i *Instance) setID(kwargs map[string]any) error {
	val, ok := kwargs[idKey]
	delete(kwargs, idKey)
	if !ok || val == nil {
		return nil
	}

	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i.id = rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return errs.NewErrInvalidID(val)
		}
		i.id = int64(u)
	default:
		return errs.NewErrInvalidID(val)
	}
	i.hasID = true
	return nil
}

// validateFields 传入的 key 集合必须和声明的字段名集合完全一致
func (i *Instance) validateFields(kwargs map[string]any) error {
	var missing, unexpected []string
	for _, name := range i.model.FieldNames() {
		if _, ok := kwargs[name]; !ok {
			missing = append(missing, name)
		}
	}
	for k := range kwargs {
		if _, ok := i.model.FieldByName(k); !ok {
			unexpected = append(unexpected, k)
		}
	}
	if len(missing) > 0 || len(unexpected) > 0 {
		return errs.NewErrSchemaMismatch(missing, unexpected)
	}
	return nil
}

func (i *Instance) Model() *model.Model {
	return i.model
}

// ID returns the identifier and whether the instance has one.
func (i *Instance) ID() (int64, bool) {
	return i.id, i.hasID
}

func (i *Instance) Value(field string) (any, bool) {
	val, ok := i.values[field]
	return val, ok
}

// Values returns the field values in declaration order.
func (i *Instance) Values() []any {
	names := i.model.FieldNames()
	res := make([]any, 0, len(names))
	for _, name := range names {
		res = append(res, i.values[name])
	}
	return res
}
