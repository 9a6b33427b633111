// Package toolschema converts tool input schemas into model function declarations.
package toolschema

import (
	"github.com/GregMSThompson/status-assistant/internal/dto"
)

// Translate converts a tool descriptor into a function declaration. Tools whose
// schema declares no properties get no Parameters, so the model calls them
// without arguments.
func Translate(tool dto.ToolDescriptor) dto.FunctionDeclaration {
	decl := dto.FunctionDeclaration{
		Name:        tool.Name,
		Description: tool.Description,
	}
	if tool.InputSchema != nil && len(tool.InputSchema.Properties) > 0 {
		decl.Parameters = translateSchema(tool.InputSchema)
	}
	return decl
}

func TranslateAll(tools []dto.ToolDescriptor) []dto.FunctionDeclaration {
	if len(tools) == 0 {
		return nil
	}
	decls := make([]dto.FunctionDeclaration, 0, len(tools))
	for _, tool := range tools {
		decls = append(decls, Translate(tool))
	}
	return decls
}

func translateSchema(node *dto.SchemaNode) *dto.Schema {
	out := &dto.Schema{
		Type:        toSchemaType(node.Type),
		Description: node.Description,
	}

	switch out.Type {
	case dto.SchemaObject:
		if len(node.Properties) > 0 {
			out.Properties = make(map[string]*dto.Schema, len(node.Properties))
			for key, value := range node.Properties {
				if value == nil {
					value = &dto.SchemaNode{}
				}
				out.Properties[key] = translateSchema(value)
			}
			if len(node.Required) > 0 {
				out.Required = append([]string(nil), node.Required...)
			}
		}
	case dto.SchemaArray:
		if node.Items != nil {
			out.Items = translateSchema(node.Items)
		}
	}

	return out
}

// toSchemaType falls back to object, the most permissive container.
func toSchemaType(schemaType string) dto.SchemaType {
	switch schemaType {
	case "string":
		return dto.SchemaString
	case "number":
		return dto.SchemaNumber
	case "integer":
		return dto.SchemaInteger
	case "boolean":
		return dto.SchemaBoolean
	case "array":
		return dto.SchemaArray
	default:
		return dto.SchemaObject
	}
}
