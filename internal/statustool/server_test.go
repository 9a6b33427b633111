package statustool

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type failingMetrics struct{}

func (failingMetrics) Metrics(ctx context.Context) (Metrics, error) {
	return Metrics{}, errors.New("collector offline")
}

func TestStatusHandlerReturnsMetricsJSON(t *testing.T) {
	h := &statusHandler{provider: FixedMetrics{}}

	res, err := h.handle(context.Background(), &mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handle error: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected error result")
	}
	if len(res.Content) != 1 {
		t.Fatalf("expected one content item, got %d", len(res.Content))
	}
	text, ok := res.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want *mcp.TextContent", res.Content[0])
	}
	want := `{"cpu_usage_percent":88,"memory_usage_percent":94,"disk_status":"CRITICAL_IO_LATENCY","last_backup_days_ago":12}`
	if text.Text != want {
		t.Fatalf("text mismatch:\n got %s\nwant %s", text.Text, want)
	}
}

func TestStatusHandlerProviderFailure(t *testing.T) {
	h := &statusHandler{provider: failingMetrics{}}

	res, err := h.handle(context.Background(), &mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("provider failures should become error results, got %v", err)
	}
	if !res.IsError {
		t.Fatalf("expected IsError result")
	}
}

func TestNewServerConnects(t *testing.T) {
	ctx := context.Background()
	server := NewServer(FixedMetrics{})
	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	ss, err := server.Connect(ctx, serverTransport, nil)
	if err != nil {
		t.Fatalf("server connect: %v", err)
	}
	defer ss.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "test"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	defer cs.Close()

	var names []string
	for tool, err := range cs.Tools(ctx, nil) {
		if err != nil {
			t.Fatalf("list tools: %v", err)
		}
		names = append(names, tool.Name)
	}
	if len(names) != 1 || names[0] != ToolName {
		t.Fatalf("unexpected catalog: %v", names)
	}
}
