package mcp

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/viant/jsonrpc/transport"
	protocolclient "github.com/viant/mcp-protocol/client"
	"github.com/viant/mcp-protocol/logger"
	serverproto "github.com/viant/mcp-protocol/server"
)

// NewHandler returns a per-connection MCP handler serving tools/list and
// tools/call over the dict and list tools. Connections share one handle
// registry, so ids issued on one connection resolve on another.
func (s *Service) NewHandler(_ context.Context, notifier transport.Notifier, l logger.Logger, cli protocolclient.Operations) (serverproto.Handler, error) {
	if atomic.LoadInt32(&s.started) == 2 {
		return nil, errors.New("tracked-mcp: service is shut down")
	}
	impl := serverproto.NewDefaultHandler(notifier, l, cli)
	tools := s.Tools()
	for _, tool := range tools {
		impl.RegisterTool(tool)
	}
	s.logger.Debug("connection handler ready", "tools", len(tools))
	return impl, nil
}
