package mcpsession

import (
	"context"
	"fmt"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Remote connects a fresh client per Open to a streamable HTTP MCP server.
type Remote struct {
	endpoint   string
	httpClient *http.Client
}

func NewRemote(endpoint string, httpClient *http.Client) *Remote {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Remote{endpoint: endpoint, httpClient: httpClient}
}

func (m *Remote) Open(ctx context.Context) (Session, error) {
	transport := &mcp.StreamableClientTransport{
		Endpoint:   m.endpoint,
		HTTPClient: m.httpClient,
	}
	cs, err := newClient().Connect(ctx, transport, nil)
	if err != nil {
		return nil, fmt.Errorf("connect tool server %s: %w", m.endpoint, err)
	}
	return newSession(cs, nil), nil
}
