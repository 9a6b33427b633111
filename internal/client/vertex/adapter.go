package vertexclient

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/vertexai/genai"

	"github.com/GregMSThompson/status-assistant/internal/dto"
)

type Adapter struct {
	client *genai.Client
	model  string
	log    *slog.Logger
}

func NewAdapter(ctx context.Context, log *slog.Logger, projectID, region, model string) (*Adapter, error) {
	client, err := genai.NewClient(ctx, projectID, region)
	if err != nil {
		return nil, err
	}

	return &Adapter{
		client: client,
		model:  model,
		log:    log,
	}, nil
}

func (a *Adapter) Close() error {
	err := a.client.Close()
	if err != nil && a.log != nil {
		a.log.Error("vertex adapter close failed", "error", err)
	}
	return err
}

// GenerateContent replays all but the last content as chat history and sends
// the last one as the new turn.
func (a *Adapter) GenerateContent(ctx context.Context, req dto.ModelRequest) (dto.ModelResponse, error) {
	out := dto.ModelResponse{}

	modelName := req.Model
	if modelName == "" {
		modelName = a.model
	}
	if modelName == "" {
		return out, fmt.Errorf("vertex model is required")
	}
	if len(req.Contents) == 0 {
		return out, fmt.Errorf("vertex generate request has no content")
	}

	model := a.client.GenerativeModel(modelName)
	if len(req.Tools) > 0 {
		model.Tools = toGenaiTools(req.Tools)
	}

	contents := toGenaiContents(req.Contents)
	last := contents[len(contents)-1]

	cs := model.StartChat()
	cs.History = contents[:len(contents)-1]
	resp, err := cs.SendMessage(ctx, last.Parts...)
	if err != nil {
		return out, err
	}

	out.Parts = parseContentResponse(resp)
	return out, nil
}

// parseContentResponse reads the first candidate only. The Vertex SDK has no
// consolidated text accessor, so callers fall back to the text parts.
func parseContentResponse(resp *genai.GenerateContentResponse) []dto.Part {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil
	}

	var parts []dto.Part
	for _, part := range resp.Candidates[0].Content.Parts {
		switch p := part.(type) {
		case genai.Text:
			parts = append(parts, dto.TextPart{Text: string(p)})
		case genai.FunctionCall:
			parts = append(parts, dto.FunctionCallPart{Call: dto.ToolCall{Name: p.Name, Args: p.Args}})
		case *genai.FunctionCall:
			parts = append(parts, dto.FunctionCallPart{Call: dto.ToolCall{Name: p.Name, Args: p.Args}})
		}
	}
	return parts
}

func toGenaiContents(contents []dto.ModelContent) []*genai.Content {
	out := make([]*genai.Content, 0, len(contents))
	for _, content := range contents {
		var parts []genai.Part
		for _, part := range content.Parts {
			if p := toGenaiPart(part); p != nil {
				parts = append(parts, p)
			}
		}
		out = append(out, &genai.Content{
			Role:  string(content.Role),
			Parts: parts,
		})
	}
	return out
}

// toGenaiPart drops reasoning parts; Vertex has no way to mark text as thought.
func toGenaiPart(part dto.Part) genai.Part {
	switch p := part.(type) {
	case dto.TextPart:
		return genai.Text(p.Text)
	case dto.FunctionCallPart:
		return genai.FunctionCall{Name: p.Call.Name, Args: p.Call.Args}
	case dto.FunctionResponsePart:
		return genai.FunctionResponse{Name: p.Name, Response: p.Response}
	default:
		return nil
	}
}

func toGenaiTools(tools []dto.FunctionDeclaration) []*genai.Tool {
	decls := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, tool := range tools {
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        tool.Name,
			Description: tool.Description,
			Parameters:  toGenaiSchema(tool.Parameters),
		})
	}

	return []*genai.Tool{
		{FunctionDeclarations: decls},
	}
}

func toGenaiSchema(schema *dto.Schema) *genai.Schema {
	if schema == nil {
		return nil
	}

	out := &genai.Schema{
		Type:        toGenaiType(schema.Type),
		Description: schema.Description,
		Required:    schema.Required,
	}

	if schema.Items != nil {
		out.Items = toGenaiSchema(schema.Items)
	}
	if len(schema.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(schema.Properties))
		for key, value := range schema.Properties {
			out.Properties[key] = toGenaiSchema(value)
		}
	}

	return out
}

func toGenaiType(schemaType dto.SchemaType) genai.Type {
	switch schemaType {
	case dto.SchemaArray:
		return genai.TypeArray
	case dto.SchemaString:
		return genai.TypeString
	case dto.SchemaNumber:
		return genai.TypeNumber
	case dto.SchemaInteger:
		return genai.TypeInteger
	case dto.SchemaBoolean:
		return genai.TypeBoolean
	default:
		return genai.TypeObject
	}
}
