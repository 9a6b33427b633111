package mcpsession

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// InProcess pairs a fresh server and client over in-memory transports for
// every Open.
type InProcess struct {
	newServer func() *mcp.Server
}

func NewInProcess(newServer func() *mcp.Server) *InProcess {
	return &InProcess{newServer: newServer}
}

func (m *InProcess) Open(ctx context.Context) (Session, error) {
	server := m.newServer()
	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	ss, err := server.Connect(ctx, serverTransport, nil)
	if err != nil {
		return nil, fmt.Errorf("connect tool server: %w", err)
	}

	cs, err := newClient().Connect(ctx, clientTransport, nil)
	if err != nil {
		_ = ss.Close()
		return nil, fmt.Errorf("connect tool client: %w", err)
	}

	return newSession(cs, ss), nil
}
