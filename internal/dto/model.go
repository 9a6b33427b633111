package dto

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Part is one element of a model turn. The concrete types are TextPart,
// ReasoningPart, FunctionCallPart and FunctionResponsePart.
type Part interface {
	isPart()
}

type TextPart struct {
	Text      string
	Signature []byte
}

// ReasoningPart is the model's own thinking trace. It is never replayed.
type ReasoningPart struct {
	Text      string
	Signature []byte
}

type FunctionCallPart struct {
	Call      ToolCall
	Signature []byte
}

type FunctionResponsePart struct {
	Name     string
	Response map[string]any
}

func (TextPart) isPart()             {}
func (ReasoningPart) isPart()        {}
func (FunctionCallPart) isPart()     {}
func (FunctionResponsePart) isPart() {}

type ModelContent struct {
	Role  Role
	Parts []Part
}

type ToolCall struct {
	ID   string
	Name string
	Args map[string]any
}

type SchemaType string

const (
	SchemaString  SchemaType = "STRING"
	SchemaNumber  SchemaType = "NUMBER"
	SchemaInteger SchemaType = "INTEGER"
	SchemaBoolean SchemaType = "BOOLEAN"
	SchemaArray   SchemaType = "ARRAY"
	SchemaObject  SchemaType = "OBJECT"
)

// Schema is the model-side parameter schema of a function declaration.
type Schema struct {
	Type        SchemaType
	Description string
	Properties  map[string]*Schema
	Required    []string
	Items       *Schema
}

// FunctionDeclaration is a tool in the form the model's function-calling API
// expects. A nil Parameters marks a tool that takes no arguments.
type FunctionDeclaration struct {
	Name        string
	Description string
	Parameters  *Schema
}

type ModelRequest struct {
	Model    string
	Contents []ModelContent
	Tools    []FunctionDeclaration
}

type ModelResponse struct {
	// Text is the SDK's consolidated answer text, empty when the SDK does not provide one.
	Text  string
	Parts []Part
}

// FunctionCalls returns the function calls requested in the response, in order.
func (r ModelResponse) FunctionCalls() []ToolCall {
	var calls []ToolCall
	for _, part := range r.Parts {
		if p, ok := part.(FunctionCallPart); ok {
			calls = append(calls, p.Call)
		}
	}
	return calls
}

func UserText(text string) ModelContent {
	return ModelContent{Role: RoleUser, Parts: []Part{TextPart{Text: text}}}
}

// WithoutReasoning drops reasoning parts, keeping the order of the rest.
func WithoutReasoning(parts []Part) []Part {
	out := make([]Part, 0, len(parts))
	for _, part := range parts {
		if _, ok := part.(ReasoningPart); ok {
			continue
		}
		out = append(out, part)
	}
	return out
}
