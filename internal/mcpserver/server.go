// Package mcpserver exposes the JSON repair and conversion tools over the
// Model Context Protocol so agents can call them.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/damian-dev1/json-tools-and-utilities/internal/logger"
)

// Name and Version identify the server during the MCP handshake.
const (
	Name    = "jsontools-mcp"
	Version = "1.0.0"
)

// Server is the MCP server for the JSON tools.
type Server struct {
	mcp *server.MCPServer
	log logr.Logger

	// Lenient is the default for the repair tools when a call does not set it.
	lenient bool
}

// Option configures a Server.
type Option func(*Server)

// WithLenient makes the json5 fallback the default for every tool call.
func WithLenient(lenient bool) Option {
	return func(s *Server) {
		s.lenient = lenient
	}
}

// New creates a server with every tool registered. The logger is taken from ctx.
func New(ctx context.Context, opts ...Option) *Server {
	s := &Server{
		log: logger.FromContext(ctx).WithName("mcp"),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mcp = server.NewMCPServer(
		Name,
		Version,
		server.WithToolCapabilities(true),
	)

	s.registerRepairTools()
	s.registerTableTools()
	s.registerPathTools()

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	s.log.Info("starting stdio server")
	return server.ServeStdio(s.mcp)
}

// textResult creates a simple text tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

// errorResult reports a failure the caller can act on, such as input that
// cannot be repaired. Protocol-level failures are returned as errors instead.
func errorResult(text string) *mcp.CallToolResult {
	res := textResult(text)
	res.IsError = true
	return res
}

// jsonResult serializes v to JSON and wraps it in a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return textResult(string(data)), nil
}
