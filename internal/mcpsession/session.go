// Package mcpsession opens per-request tool sessions over the Model Context Protocol.
package mcpsession

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/GregMSThompson/status-assistant/internal/dto"
)

const (
	clientName    = "inner-mcp-agent-host"
	clientVersion = "1.0.0"
)

// Session is one request-scoped tool connection. Close is safe to call more
// than once; only the first call does any work.
type Session interface {
	ID() string
	ListTools(ctx context.Context) ([]dto.ToolDescriptor, error)
	CallTool(ctx context.Context, inv dto.ToolInvocation) (dto.ToolResult, error)
	Close() error
}

type Opener interface {
	Open(ctx context.Context) (Session, error)
}

type session struct {
	id     string
	client *mcp.ClientSession
	// nil when the server lives in another process
	server *mcp.ServerSession

	once sync.Once
}

func newSession(client *mcp.ClientSession, server *mcp.ServerSession) *session {
	return &session{
		id:     uuid.NewString(),
		client: client,
		server: server,
	}
}

func newClient() *mcp.Client {
	return mcp.NewClient(&mcp.Implementation{Name: clientName, Version: clientVersion}, nil)
}

func (s *session) ID() string { return s.id }

func (s *session) ListTools(ctx context.Context) ([]dto.ToolDescriptor, error) {
	var tools []dto.ToolDescriptor
	for tool, err := range s.client.Tools(ctx, nil) {
		if err != nil {
			return nil, fmt.Errorf("list tools: %w", err)
		}
		desc, err := toToolDescriptor(tool)
		if err != nil {
			return nil, err
		}
		tools = append(tools, desc)
	}
	return tools, nil
}

func (s *session) CallTool(ctx context.Context, inv dto.ToolInvocation) (dto.ToolResult, error) {
	args := inv.Arguments
	if args == nil {
		args = map[string]any{}
	}
	res, err := s.client.CallTool(ctx, &mcp.CallToolParams{Name: inv.Name, Arguments: args})
	if err != nil {
		return dto.ToolResult{}, fmt.Errorf("call tool %s: %w", inv.Name, err)
	}
	return toToolResult(res), nil
}

func (s *session) Close() error {
	var err error
	s.once.Do(func() {
		var errList []error
		if s.client != nil {
			errList = append(errList, s.client.Close())
		}
		if s.server != nil {
			errList = append(errList, s.server.Close())
		}
		err = errors.Join(errList...)
	})
	return err
}

func toToolDescriptor(tool *mcp.Tool) (dto.ToolDescriptor, error) {
	if tool == nil {
		return dto.ToolDescriptor{}, nil
	}
	schema, err := toSchemaNode(tool.InputSchema)
	if err != nil {
		return dto.ToolDescriptor{}, fmt.Errorf("tool %s input schema: %w", tool.Name, err)
	}
	return dto.ToolDescriptor{
		Name:        tool.Name,
		Description: tool.Description,
		InputSchema: schema,
	}, nil
}

// toSchemaNode normalizes whatever the SDK decoded into a generic map first,
// so in-process and remote schemas take the same path.
func toSchemaNode(raw any) (*dto.SchemaNode, error) {
	if raw == nil {
		return nil, nil
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var generic map[string]any
	if err := json.Unmarshal(b, &generic); err != nil {
		return nil, err
	}
	return schemaFromMap(generic), nil
}

func schemaFromMap(m map[string]any) *dto.SchemaNode {
	if m == nil {
		return nil
	}
	node := &dto.SchemaNode{
		Type: schemaType(m["type"]),
	}
	if desc, ok := m["description"].(string); ok {
		node.Description = desc
	}
	if props, ok := m["properties"].(map[string]any); ok && len(props) > 0 {
		node.Properties = make(map[string]*dto.SchemaNode, len(props))
		for key, value := range props {
			child, _ := value.(map[string]any)
			if child == nil {
				child = map[string]any{}
			}
			node.Properties[key] = schemaFromMap(child)
		}
	}
	if required, ok := m["required"].([]any); ok {
		for _, r := range required {
			if name, ok := r.(string); ok {
				node.Required = append(node.Required, name)
			}
		}
	}
	if items, ok := m["items"].(map[string]any); ok {
		node.Items = schemaFromMap(items)
	}
	return node
}

// schemaType picks the first non-null entry of a union type such as ["string", "null"].
func schemaType(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		for _, entry := range t {
			if s, ok := entry.(string); ok && s != "null" {
				return s
			}
		}
	}
	return ""
}

func toToolResult(res *mcp.CallToolResult) dto.ToolResult {
	if res == nil {
		return dto.ToolResult{}
	}
	out := dto.ToolResult{IsError: res.IsError}
	for _, content := range res.Content {
		out.Content = append(out.Content, toContentItem(content))
	}
	return out
}

func toContentItem(content mcp.Content) dto.ContentItem {
	switch c := content.(type) {
	case *mcp.TextContent:
		return dto.ContentItem{Type: dto.ContentTypeText, Text: c.Text}
	case *mcp.ImageContent:
		return dto.ContentItem{Type: "image"}
	case *mcp.AudioContent:
		return dto.ContentItem{Type: "audio"}
	case *mcp.ResourceLink:
		return dto.ContentItem{Type: "resource_link"}
	case *mcp.EmbeddedResource:
		return dto.ContentItem{Type: "resource"}
	default:
		return dto.ContentItem{Type: fmt.Sprintf("%T", content)}
	}
}
