package orm

import "github.com/revliscano/sqlite-mini-object-mapping/orm/model"

var (
	dummyModel = model.MustFinalize(model.Declaration{
		Name:    "DummyModel",
		Parents: []*model.Model{model.Root},
		Members: []model.Member{
			{Name: "field_a", Value: model.NewField("text")},
			{Name: "field_b", Value: model.NewField("text")},
		},
	})

	anotherModel = model.MustFinalize(model.Declaration{
		Name:    "AnotherModel",
		Parents: []*model.Model{model.Root},
		Members: []model.Member{
			{Name: "field_x", Value: model.NewField("text")},
		},
	})
)

func mustNew(m *model.Model, args map[string]any) *Instance {
	inst, err := New(m, args)
	if err != nil {
		panic(err)
	}
	return inst
}
