package toolschema

import (
	"reflect"
	"testing"

	"github.com/GregMSThompson/status-assistant/internal/dto"
)

func TestTranslateOmitsParametersForArgumentlessTools(t *testing.T) {
	cases := []struct {
		name   string
		schema *dto.SchemaNode
	}{
		{name: "nil schema", schema: nil},
		{name: "object without properties", schema: &dto.SchemaNode{Type: "object"}},
		{name: "empty properties", schema: &dto.SchemaNode{Type: "object", Properties: map[string]*dto.SchemaNode{}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			decl := Translate(dto.ToolDescriptor{
				Name:        "get_server_status",
				Description: "status",
				InputSchema: tc.schema,
			})
			if decl.Parameters != nil {
				t.Fatalf("expected no parameters, got %+v", decl.Parameters)
			}
			if decl.Name != "get_server_status" || decl.Description != "status" {
				t.Fatalf("name/description not preserved: %+v", decl)
			}
		})
	}
}

func TestTranslateNestedSchema(t *testing.T) {
	tool := dto.ToolDescriptor{
		Name: "restart_service",
		InputSchema: &dto.SchemaNode{
			Type: "object",
			Properties: map[string]*dto.SchemaNode{
				"service": {Type: "string", Description: "Service name."},
				"options": {
					Type:        "object",
					Description: "Restart options.",
					Properties: map[string]*dto.SchemaNode{
						"graceful": {Type: "boolean"},
						"timeout":  {Type: "integer", Description: "Seconds."},
					},
					Required: []string{"graceful"},
				},
				"hosts": {Type: "array", Items: &dto.SchemaNode{Type: "string"}},
			},
			Required: []string{"service"},
		},
	}

	got := Translate(tool).Parameters
	want := &dto.Schema{
		Type: dto.SchemaObject,
		Properties: map[string]*dto.Schema{
			"service": {Type: dto.SchemaString, Description: "Service name."},
			"options": {
				Type:        dto.SchemaObject,
				Description: "Restart options.",
				Properties: map[string]*dto.Schema{
					"graceful": {Type: dto.SchemaBoolean},
					"timeout":  {Type: dto.SchemaInteger, Description: "Seconds."},
				},
				Required: []string{"graceful"},
			},
			"hosts": {Type: dto.SchemaArray, Items: &dto.Schema{Type: dto.SchemaString}},
		},
		Required: []string{"service"},
	}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("schema mismatch:\n got %#v\nwant %#v", got, want)
	}
}

func TestTranslateNeverEmitsEmptyCollections(t *testing.T) {
	tool := dto.ToolDescriptor{
		Name: "lookup",
		InputSchema: &dto.SchemaNode{
			Type: "object",
			Properties: map[string]*dto.SchemaNode{
				"filter": {Type: "object"},
				"name":   {Type: "string"},
			},
		},
	}

	params := Translate(tool).Parameters
	if params.Required != nil {
		t.Fatalf("expected nil required, got %#v", params.Required)
	}
	filter := params.Properties["filter"]
	if filter.Properties != nil || filter.Required != nil {
		t.Fatalf("absent fields must stay nil: %#v", filter)
	}
	if params.Properties["name"].Description != "" {
		t.Fatalf("unexpected description on name")
	}
}

func TestTranslateDropsPropertiesOnNonObjects(t *testing.T) {
	tool := dto.ToolDescriptor{
		Name: "odd",
		InputSchema: &dto.SchemaNode{
			Type: "object",
			Properties: map[string]*dto.SchemaNode{
				"value": {
					Type:       "string",
					Properties: map[string]*dto.SchemaNode{"x": {Type: "string"}},
					Required:   []string{"x"},
				},
			},
		},
	}

	value := Translate(tool).Parameters.Properties["value"]
	if value.Properties != nil || value.Required != nil {
		t.Fatalf("string node must not carry properties: %#v", value)
	}
}

func TestToSchemaType(t *testing.T) {
	cases := map[string]dto.SchemaType{
		"string":  dto.SchemaString,
		"number":  dto.SchemaNumber,
		"integer": dto.SchemaInteger,
		"boolean": dto.SchemaBoolean,
		"array":   dto.SchemaArray,
		"object":  dto.SchemaObject,
		"null":    dto.SchemaObject,
		"":        dto.SchemaObject,
	}
	for in, want := range cases {
		if got := toSchemaType(in); got != want {
			t.Fatalf("toSchemaType(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestTranslateAll(t *testing.T) {
	if TranslateAll(nil) != nil {
		t.Fatalf("expected nil for empty catalog")
	}
	decls := TranslateAll([]dto.ToolDescriptor{{Name: "a"}, {Name: "b"}})
	if len(decls) != 2 || decls[0].Name != "a" || decls[1].Name != "b" {
		t.Fatalf("unexpected declarations: %+v", decls)
	}
}
