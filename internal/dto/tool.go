package dto

import "strings"

// ToolDescriptor is a tool as advertised by the tool-execution server.
type ToolDescriptor struct {
	Name        string
	Description string
	InputSchema *SchemaNode
}

// SchemaNode is the subset of JSON Schema the translator understands.
type SchemaNode struct {
	Type        string
	Description string
	Properties  map[string]*SchemaNode
	Required    []string
	Items       *SchemaNode
}

type ToolInvocation struct {
	Name      string
	Arguments map[string]any
}

const ContentTypeText = "text"

type ContentItem struct {
	Type string
	Text string
}

type ToolResult struct {
	Content []ContentItem
	IsError bool
}

// Text joins the text items of the result, dropping every other content type.
func (r ToolResult) Text() string {
	var texts []string
	for _, item := range r.Content {
		if item.Type != ContentTypeText {
			continue
		}
		texts = append(texts, item.Text)
	}
	return strings.Join(texts, "\n")
}
