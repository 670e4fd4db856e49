// Package mcp exposes the completion provider and the batch fixer as MCP
// tools over stdio.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/gnana997/twbracket/pkg/fixer"
	"github.com/gnana997/twbracket/pkg/mcplog"
	"github.com/gnana997/twbracket/pkg/provider"
)

const serverName = "twbracket"

// Server wires tool handlers to a Provider and a Fixer.
type Server struct {
	mcpServer *server.MCPServer
	provider  *provider.Provider
	fixer     *fixer.Fixer
	calls     *mcplog.Logger // nil disables the call log
}

// NewServer creates a server. calls may be nil.
func NewServer(p *provider.Provider, f *fixer.Fixer, calls *mcplog.Logger, version string) *Server {
	s := &Server{provider: p, fixer: f, calls: calls}

	opts := []server.ServerOption{
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	}
	if calls != nil {
		opts = append(opts, server.WithToolHandlerMiddleware(s.loggingMiddleware()))
	}
	s.mcpServer = server.NewMCPServer(serverName, version, opts...)

	s.mcpServer.AddTools(s.tools()...)
	return s
}

func (s *Server) tools() []server.ServerTool {
	return []server.ServerTool{
		{Tool: completeTool(), Handler: s.handleComplete},
		{Tool: rewriteTokenTool(), Handler: s.handleRewriteToken},
		{Tool: rewriteSourceTool(), Handler: s.handleRewriteSource},
		{Tool: documentOpenedTool(), Handler: s.handleDocumentOpened},
		{Tool: documentChangedTool(), Handler: s.handleDocumentChanged},
		{Tool: documentClosedTool(), Handler: s.handleDocumentClosed},
		{Tool: fileSavedTool(), Handler: s.handleFileSaved},
		{Tool: workspaceFoldersChangedTool(), Handler: s.handleWorkspaceFoldersChanged},
		{Tool: getSpacingTool(), Handler: s.handleGetSpacing},
	}
}

// ServeStdio serves MCP on stdin/stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
