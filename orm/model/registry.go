package model

import (
	"reflect"
	"strings"
	"sync"

	"github.com/revliscano/sqlite-mini-object-mapping/orm/internal/errs"
)

// 我们支持的全部标签上的 key 都放在这里
// 方便用户查找，和我们后期维护
const (
	tagORMName   = "orm"
	tagKeyType   = "type"
	tagKeyColumn = "column"
)

// Registry 把 go struct 声明成模型
//
//	type DummyModel struct {
//		FieldA string `orm:"type=text"`
//		FieldB string `orm:"type=text,column=field_b"`
//	}
type Registry interface {
	// Get 查找元数据模型，没有就注册一个
	Get(val any) (*Model, error)
	Register(val any, opts ...Option) (*Model, error)
}

type registry struct {
	// reflect.Type 作为 key 可以解决类型名冲突的问题
	// 例如两个包里面都有 User
	models sync.Map
}

func NewRegistry() Registry {
	return &registry{}
}

// Get fetches the model registered for the type of val.
// If the type is unknown it is parsed and stored for future use.
func (r *registry) Get(val any) (*Model, error) {
	typ := reflect.TypeOf(val)
	m, ok := r.models.Load(typ)
	if ok {
		return m.(*Model), nil
	}
	return r.Register(val)
}

// Register parses val, finalizes the resulting declaration with opts
// and stores the model, replacing any model previously stored for the type.
func (r *registry) Register(val any, opts ...Option) (*Model, error) {
	decl, goNames, err := r.parseModel(val)
	if err != nil {
		return nil, err
	}

	// 用户实现了 TableName 接口的时候，优先级低于 opts
	if tn, ok := val.(TableName); ok && tn.TableName() != "" {
		opts = append([]Option{WithTableName(tn.TableName())}, opts...)
	}

	m, err := Finalize(decl, opts...)
	if err != nil {
		return nil, err
	}
	m.goNames = goNames

	r.models.Store(reflect.TypeOf(val), m)
	return m, nil
}

// parseModel turns a pointer to struct into a Declaration.
// Exported fields carrying a type in their orm tag become fields, the
// others are plain members and are ignored by Finalize.
// orm:"type=text,column=field_a"
func (r *registry) parseModel(val any) (Declaration, map[string]string, error) {
	typ := reflect.TypeOf(val)
	// 只支持一级指针作为输入，例如 *User，不支持 **User 以及 User
	if typ == nil || typ.Kind() != reflect.Ptr || typ.Elem().Kind() != reflect.Struct {
		return Declaration{}, nil, errs.ErrPointerOnly
	}
	typ = typ.Elem()

	numField := typ.NumField()
	members := make([]Member, 0, numField)
	goNames := make(map[string]string, numField)
	for i := 0; i < numField; i++ {
		fdStruct := typ.Field(i)
		if !fdStruct.IsExported() {
			continue
		}
		tags, err := r.parseTag(fdStruct.Tag)
		if err != nil {
			return Declaration{}, nil, err
		}

		colName := tags[tagKeyColumn]
		if colName == "" {
			// ItemId -> item_id
			colName = TableNameOf(fdStruct.Name)
		}

		typeTag, ok := tags[tagKeyType]
		if !ok {
			members = append(members, Member{Name: colName, Value: fdStruct.Type})
			continue
		}
		members = append(members, Member{Name: colName, Value: NewField(typeTag)})
		goNames[colName] = fdStruct.Name
	}

	return Declaration{
		Name:    typ.Name(),
		Parents: []*Model{Root},
		Members: members,
	}, goNames, nil
}

// parseTag parses the orm tag into key-value pairs.
// An empty tag gives an empty map so that the caller doesn't need to check for nil.
func (r *registry) parseTag(tag reflect.StructTag) (map[string]string, error) {
	ormTag := tag.Get(tagORMName)
	if ormTag == "" {
		return map[string]string{}, nil
	}

	pairs := strings.Split(ormTag, ",")
	res := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		kv := strings.Split(pair, "=")
		if len(kv) != 2 {
			return nil, errs.NewErrInvalidTagContent(pair)
		}
		res[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
	}
	return res, nil
}
