package geminiclient

import (
	"context"
	"log/slog"
	"reflect"
	"testing"

	"google.golang.org/genai"

	"github.com/GregMSThompson/status-assistant/internal/dto"
	"github.com/GregMSThompson/status-assistant/pkg/logger"
)

type fakeGenerator struct {
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
	resp     *genai.GenerateContentResponse
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.contents = contents
	f.config = config
	return f.resp, nil
}

func TestGenerateContentSendsToolsAndParsesParts(t *testing.T) {
	gen := &fakeGenerator{
		resp: &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				Content: &genai.Content{
					Role: "model",
					Parts: []*genai.Part{
						{Text: "thinking about it", Thought: true},
						{FunctionCall: &genai.FunctionCall{Name: "get_server_status", Args: map[string]any{}}, ThoughtSignature: []byte("sig")},
					},
				},
			}},
		},
	}
	a := &Adapter{models: gen, model: "gemini-2.5-flash"}

	resp, err := a.GenerateContent(context.Background(), dto.ModelRequest{
		Contents: []dto.ModelContent{dto.UserText("status?")},
		Tools:    []dto.FunctionDeclaration{{Name: "get_server_status", Description: "status"}},
	})
	if err != nil {
		t.Fatalf("GenerateContent error: %v", err)
	}

	if gen.model != "gemini-2.5-flash" {
		t.Fatalf("default model not used: %q", gen.model)
	}
	if gen.config == nil || len(gen.config.Tools) != 1 {
		t.Fatalf("tools not attached: %+v", gen.config)
	}
	decl := gen.config.Tools[0].FunctionDeclarations[0]
	if decl.Name != "get_server_status" || decl.Parameters != nil {
		t.Fatalf("unexpected declaration: %+v", decl)
	}
	if len(gen.contents) != 1 || gen.contents[0].Role != "user" || gen.contents[0].Parts[0].Text != "status?" {
		t.Fatalf("unexpected contents: %+v", gen.contents)
	}

	if len(resp.Parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(resp.Parts))
	}
	if _, ok := resp.Parts[0].(dto.ReasoningPart); !ok {
		t.Fatalf("first part should be reasoning, got %T", resp.Parts[0])
	}
	call, ok := resp.Parts[1].(dto.FunctionCallPart)
	if !ok || call.Call.Name != "get_server_status" || string(call.Signature) != "sig" {
		t.Fatalf("unexpected function call part: %#v", resp.Parts[1])
	}
	if resp.Text != "" {
		t.Fatalf("thought text must not leak into Text: %q", resp.Text)
	}
}

func TestGenerateContentWithoutToolsHasNoConfig(t *testing.T) {
	gen := &fakeGenerator{resp: &genai.GenerateContentResponse{}}
	a := &Adapter{models: gen, model: "m"}

	_, err := a.GenerateContent(context.Background(), dto.ModelRequest{
		Contents: []dto.ModelContent{dto.UserText("hi")},
	})
	if err != nil {
		t.Fatalf("GenerateContent error: %v", err)
	}
	if gen.config != nil {
		t.Fatalf("expected nil config without tools")
	}
}

func TestGenerateContentRequiresModelAndContent(t *testing.T) {
	a := &Adapter{models: &fakeGenerator{}}
	if _, err := a.GenerateContent(context.Background(), dto.ModelRequest{Contents: []dto.ModelContent{dto.UserText("hi")}}); err == nil {
		t.Fatalf("expected error without model")
	}
	a.model = "m"
	if _, err := a.GenerateContent(context.Background(), dto.ModelRequest{}); err == nil {
		t.Fatalf("expected error without contents")
	}
}

func TestToGenaiContentsRoundTripsHistory(t *testing.T) {
	history := []dto.ModelContent{
		dto.UserText("status?"),
		{Role: dto.RoleModel, Parts: []dto.Part{
			dto.FunctionCallPart{Call: dto.ToolCall{Name: "get_server_status"}, Signature: []byte("sig")},
		}},
		{Role: dto.RoleUser, Parts: []dto.Part{
			dto.FunctionResponsePart{Name: "get_server_status", Response: map[string]any{"result": "{}"}},
		}},
	}

	got := toGenaiContents(history)
	if len(got) != 3 {
		t.Fatalf("expected 3 contents, got %d", len(got))
	}
	if got[1].Role != "model" || got[1].Parts[0].FunctionCall.Name != "get_server_status" {
		t.Fatalf("model turn mismatch: %+v", got[1])
	}
	if string(got[1].Parts[0].ThoughtSignature) != "sig" {
		t.Fatalf("thought signature not replayed")
	}
	fr := got[2].Parts[0].FunctionResponse
	if fr == nil || fr.Name != "get_server_status" || !reflect.DeepEqual(fr.Response, map[string]any{"result": "{}"}) {
		t.Fatalf("function response mismatch: %+v", fr)
	}
}

func TestToGenaiSchema(t *testing.T) {
	in := &dto.Schema{
		Type: dto.SchemaObject,
		Properties: map[string]*dto.Schema{
			"hosts": {Type: dto.SchemaArray, Items: &dto.Schema{Type: dto.SchemaString}},
			"limit": {Type: dto.SchemaInteger, Description: "Max rows."},
		},
		Required: []string{"hosts"},
	}

	got := toGenaiSchema(in)
	if got.Type != genai.TypeObject || !reflect.DeepEqual(got.Required, []string{"hosts"}) {
		t.Fatalf("unexpected root: %+v", got)
	}
	if got.Properties["hosts"].Items.Type != genai.TypeString {
		t.Fatalf("items not converted")
	}
	if got.Properties["limit"].Type != genai.TypeInteger || got.Properties["limit"].Description != "Max rows." {
		t.Fatalf("limit not converted: %+v", got.Properties["limit"])
	}
	if toGenaiSchema(nil) != nil {
		t.Fatalf("nil schema should stay nil")
	}
}

func TestSignatureOnlyPartIsReplayed(t *testing.T) {
	gen := &fakeGenerator{
		resp: &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				Content: &genai.Content{
					Role: "model",
					Parts: []*genai.Part{
						{FunctionCall: &genai.FunctionCall{Name: "get_server_status"}},
						{ThoughtSignature: []byte("trailing-sig")},
					},
				},
			}},
		},
	}
	log := slog.New(logger.NewTestHandler(slog.LevelDebug))
	a := &Adapter{models: gen, model: "gemini-2.5-flash", log: log}

	resp, err := a.GenerateContent(context.Background(), dto.ModelRequest{
		Contents: []dto.ModelContent{dto.UserText("status?")},
	})
	if err != nil {
		t.Fatalf("GenerateContent error: %v", err)
	}
	if len(resp.Parts) != 2 {
		t.Fatalf("parts = %d, want 2", len(resp.Parts))
	}
	sigPart, ok := resp.Parts[1].(dto.TextPart)
	if !ok || sigPart.Text != "" || string(sigPart.Signature) != "trailing-sig" {
		t.Fatalf("signature part = %#v", resp.Parts[1])
	}

	replayed := toGenaiContents([]dto.ModelContent{{Role: dto.RoleModel, Parts: resp.Parts}})
	if got := string(replayed[0].Parts[1].ThoughtSignature); got != "trailing-sig" {
		t.Fatalf("replayed signature = %q", got)
	}
}
