package vertexclient

import (
	"testing"

	"cloud.google.com/go/vertexai/genai"

	"github.com/GregMSThompson/status-assistant/internal/dto"
)

func TestParseContentResponse(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Role: "model",
				Parts: []genai.Part{
					genai.Text("checking"),
					genai.FunctionCall{Name: "get_server_status", Args: map[string]any{}},
				},
			},
		}},
	}

	parts := parseContentResponse(resp)
	if len(parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(parts))
	}
	if text, ok := parts[0].(dto.TextPart); !ok || text.Text != "checking" {
		t.Fatalf("unexpected text part: %#v", parts[0])
	}
	if call, ok := parts[1].(dto.FunctionCallPart); !ok || call.Call.Name != "get_server_status" {
		t.Fatalf("unexpected call part: %#v", parts[1])
	}
	if parseContentResponse(nil) != nil {
		t.Fatalf("nil response should have no parts")
	}
}

func TestToGenaiContentsSkipsReasoning(t *testing.T) {
	contents := toGenaiContents([]dto.ModelContent{
		{Role: dto.RoleModel, Parts: []dto.Part{
			dto.ReasoningPart{Text: "hidden"},
			dto.FunctionCallPart{Call: dto.ToolCall{Name: "get_server_status"}},
		}},
		{Role: dto.RoleUser, Parts: []dto.Part{
			dto.FunctionResponsePart{Name: "get_server_status", Response: map[string]any{"result": "ok"}},
		}},
	})

	if len(contents[0].Parts) != 1 {
		t.Fatalf("reasoning part should be dropped, got %d parts", len(contents[0].Parts))
	}
	if _, ok := contents[0].Parts[0].(genai.FunctionCall); !ok {
		t.Fatalf("expected FunctionCall, got %T", contents[0].Parts[0])
	}
	if fr, ok := contents[1].Parts[0].(genai.FunctionResponse); !ok || fr.Name != "get_server_status" {
		t.Fatalf("unexpected function response: %#v", contents[1].Parts[0])
	}
}

func TestToGenaiType(t *testing.T) {
	cases := map[dto.SchemaType]genai.Type{
		dto.SchemaString:  genai.TypeString,
		dto.SchemaNumber:  genai.TypeNumber,
		dto.SchemaInteger: genai.TypeInteger,
		dto.SchemaBoolean: genai.TypeBoolean,
		dto.SchemaArray:   genai.TypeArray,
		dto.SchemaObject:  genai.TypeObject,
	}
	for in, want := range cases {
		if got := toGenaiType(in); got != want {
			t.Fatalf("toGenaiType(%s) = %v, want %v", in, got, want)
		}
	}
}
