// Package statustool hosts the tool-execution server and its tool catalog.
package statustool

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	ServerName    = "inner-mcp-server"
	ServerVersion = "1.0.0"

	ToolName        = "get_server_status"
	toolDescription = "Returns raw server metrics (CPU, memory, disk and backup status) as numeric data."
)

type Metrics struct {
	CPUUsagePercent    int    `json:"cpu_usage_percent"`
	MemoryUsagePercent int    `json:"memory_usage_percent"`
	DiskStatus         string `json:"disk_status"`
	LastBackupDaysAgo  int    `json:"last_backup_days_ago"`
}

type MetricsProvider interface {
	Metrics(ctx context.Context) (Metrics, error)
}

// FixedMetrics reports a constant snapshot.
type FixedMetrics struct{}

func (FixedMetrics) Metrics(ctx context.Context) (Metrics, error) {
	return Metrics{
		CPUUsagePercent:    88,
		MemoryUsagePercent: 94,
		DiskStatus:         "CRITICAL_IO_LATENCY",
		LastBackupDaysAgo:  12,
	}, nil
}

// NewServer builds a fresh server with the status tool registered.
func NewServer(provider MetricsProvider) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: ServerName, Version: ServerVersion}, nil)
	h := &statusHandler{provider: provider}
	server.AddTool(&mcp.Tool{
		Name:        ToolName,
		Description: toolDescription,
		InputSchema: map[string]any{"type": "object"},
	}, h.handle)
	return server
}

type statusHandler struct {
	provider MetricsProvider
}

func (h *statusHandler) handle(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	metrics, err := h.provider.Metrics(ctx)
	if err != nil {
		return errorResult("failed to collect metrics: " + err.Error()), nil
	}
	raw, err := json.Marshal(metrics)
	if err != nil {
		return nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(raw)}},
	}, nil
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: message}},
	}
}
