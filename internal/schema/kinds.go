package schema

import (
	"dci-control-server/internal/database/models"
)

func name() Field {
	return Field{Name: "name", Type: String, Required: true, Rules: "min=1", Message: MsgNotEmpty}
}

func ref(field string, required bool) Field {
	return Field{Name: field, Type: UUID, Required: required}
}

func text(field string) Field {
	return Field{Name: field, Type: String}
}

func data() Field {
	return Field{Name: "data", Type: Object}
}

var registry = map[models.Kind]*Schema{
	models.KindTeam: {
		Kind:   models.KindTeam,
		Fields: []Field{name()},
	},
	models.KindUser: {
		Kind: models.KindUser,
		Fields: []Field{
			name(),
			{Name: "password", Type: String, Required: true, Rules: "min=1", Message: MsgNotEmpty},
			ref("team_id", true),
			{
				Name:    "role",
				Type:    Enum,
				Values:  []string{string(models.RoleAdmin), string(models.RoleProductOwner), string(models.RoleUser)},
				Default: string(models.RoleUser),
			},
		},
	},
	models.KindProduct: {
		Kind: models.KindProduct,
		Fields: []Field{
			name(),
			{Name: "label", Type: String, Required: true, Rules: "label", Message: MsgLabel},
			text("description"),
			ref("team_id", false),
			{
				Name:    "state",
				Type:    Enum,
				Values:  []string{string(models.StateActive), string(models.StateInactive)},
				Default: string(models.StateActive),
			},
		},
	},
	models.KindProductTeam: {
		Kind:   models.KindProductTeam,
		Fields: []Field{ref("team_id", true)},
	},
	models.KindTopic: {
		Kind:   models.KindTopic,
		Fields: []Field{name(), ref("product_id", true), data()},
	},
	models.KindComponentType: {
		Kind:   models.KindComponentType,
		Fields: []Field{name()},
	},
	models.KindComponent: {
		Kind: models.KindComponent,
		Fields: []Field{
			name(),
			ref("componenttype_id", true),
			text("sha"),
			text("title"),
			text("message"),
			text("git"),
			text("ref"),
			text("canonical_project_name"),
			data(),
			{Name: "active", Type: Boolean, Default: true},
		},
	},
	models.KindTest: {
		Kind:   models.KindTest,
		Fields: []Field{name(), data()},
	},
	models.KindJobDefinition: {
		Kind: models.KindJobDefinition,
		Fields: []Field{
			name(),
			ref("test_id", true),
			{Name: "priority", Type: Integer, Rules: "min=0,max=1000", Message: MsgPriority, Default: int64(0)},
		},
	},
	models.KindRemoteCI: {
		Kind:   models.KindRemoteCI,
		Fields: []Field{name(), ref("team_id", true), data()},
	},
	models.KindJob: {
		Kind: models.KindJob,
		Fields: []Field{
			ref("jobdefinition_id", true),
			ref("remoteci_id", true),
			ref("team_id", true),
			text("comment"),
		},
	},
	models.KindJobState: {
		Kind: models.KindJobState,
		Fields: []Field{
			name(),
			{Name: "status", Type: String, Required: true, Rules: "min=1", Message: MsgNotEmpty},
			ref("job_id", true),
			ref("team_id", true),
			text("comment"),
		},
	},
}

// For returns the schema registered for kind.
func For(kind models.Kind) (*Schema, bool) {
	s, ok := registry[kind]
	return s, ok
}
