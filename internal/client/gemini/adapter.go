package geminiclient

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"github.com/GregMSThompson/status-assistant/internal/dto"
)

type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Adapter struct {
	models generator
	model  string
	log    *slog.Logger
}

func NewAdapter(ctx context.Context, log *slog.Logger, apiKey, model string) (*Adapter, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}

	return &Adapter{
		models: client.Models,
		model:  model,
		log:    log,
	}, nil
}

// Close is a no-op; the genai client holds no connections of its own.
func (a *Adapter) Close() error {
	return nil
}

func (a *Adapter) GenerateContent(ctx context.Context, req dto.ModelRequest) (dto.ModelResponse, error) {
	out := dto.ModelResponse{}

	modelName := req.Model
	if modelName == "" {
		modelName = a.model
	}
	if modelName == "" {
		return out, fmt.Errorf("gemini model is required")
	}
	if len(req.Contents) == 0 {
		return out, fmt.Errorf("gemini generate request has no content")
	}

	var config *genai.GenerateContentConfig
	if len(req.Tools) > 0 {
		config = &genai.GenerateContentConfig{Tools: toGenaiTools(req.Tools)}
	}

	resp, err := a.models.GenerateContent(ctx, modelName, toGenaiContents(req.Contents), config)
	if err != nil {
		return out, err
	}

	out = fromGenaiResponse(resp)
	if a.log != nil {
		a.log.Debug("gemini response",
			"model", modelName,
			"tools", len(req.Tools),
			"parts", len(out.Parts),
			"function_calls", len(out.FunctionCalls()))
	}
	return out, nil
}

func fromGenaiResponse(resp *genai.GenerateContentResponse) dto.ModelResponse {
	out := dto.ModelResponse{}
	if resp == nil {
		return out
	}
	out.Text = resp.Text()
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return out
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if p := fromGenaiPart(part); p != nil {
			out.Parts = append(out.Parts, p)
		}
	}
	return out
}

func fromGenaiPart(part *genai.Part) dto.Part {
	switch {
	case part == nil:
		return nil
	case part.Thought:
		return dto.ReasoningPart{Text: part.Text, Signature: part.ThoughtSignature}
	case part.FunctionCall != nil:
		return dto.FunctionCallPart{
			Call: dto.ToolCall{
				ID:   part.FunctionCall.ID,
				Name: part.FunctionCall.Name,
				Args: part.FunctionCall.Args,
			},
			Signature: part.ThoughtSignature,
		}
	case part.FunctionResponse != nil:
		return dto.FunctionResponsePart{
			Name:     part.FunctionResponse.Name,
			Response: part.FunctionResponse.Response,
		}
	case part.Text != "" || len(part.ThoughtSignature) > 0:
		// a signature may arrive on an empty text part and must be replayed
		return dto.TextPart{Text: part.Text, Signature: part.ThoughtSignature}
	default:
		return nil
	}
}

func toGenaiContents(contents []dto.ModelContent) []*genai.Content {
	out := make([]*genai.Content, 0, len(contents))
	for _, content := range contents {
		parts := make([]*genai.Part, 0, len(content.Parts))
		for _, part := range content.Parts {
			parts = append(parts, toGenaiPart(part))
		}
		out = append(out, &genai.Content{
			Role:  string(content.Role),
			Parts: parts,
		})
	}
	return out
}

func toGenaiPart(part dto.Part) *genai.Part {
	switch p := part.(type) {
	case dto.TextPart:
		return &genai.Part{Text: p.Text, ThoughtSignature: p.Signature}
	case dto.ReasoningPart:
		return &genai.Part{Text: p.Text, Thought: true, ThoughtSignature: p.Signature}
	case dto.FunctionCallPart:
		return &genai.Part{
			FunctionCall: &genai.FunctionCall{
				ID:   p.Call.ID,
				Name: p.Call.Name,
				Args: p.Call.Args,
			},
			ThoughtSignature: p.Signature,
		}
	case dto.FunctionResponsePart:
		return &genai.Part{
			FunctionResponse: &genai.FunctionResponse{
				Name:     p.Name,
				Response: p.Response,
			},
		}
	default:
		return &genai.Part{}
	}
}

func toGenaiTools(decls []dto.FunctionDeclaration) []*genai.Tool {
	out := make([]*genai.FunctionDeclaration, 0, len(decls))
	for _, decl := range decls {
		out = append(out, &genai.FunctionDeclaration{
			Name:        decl.Name,
			Description: decl.Description,
			Parameters:  toGenaiSchema(decl.Parameters),
		})
	}
	return []*genai.Tool{
		{FunctionDeclarations: out},
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
	case dto.SchemaString:
		return genai.TypeString
	case dto.SchemaNumber:
		return genai.TypeNumber
	case dto.SchemaInteger:
		return genai.TypeInteger
	case dto.SchemaBoolean:
		return genai.TypeBoolean
	case dto.SchemaArray:
		return genai.TypeArray
	default:
		return genai.TypeObject
	}
}
