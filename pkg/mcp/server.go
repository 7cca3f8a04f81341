// Package mcp exposes the adoption scanner over the Model Context
// Protocol, so agents can query adoption state of a repository without
// shelling out to the CLI.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/Sabadzma/Design-system-adoption-scanner-CLI/pkg/scan"
)

const serverVersion = "0.1.0-dev"

// Server implements the MCP server, exposing scan and summary tools for
// one repository root.
type Server struct {
	mcpServer *server.MCPServer
	runner    *scan.Runner
	rootDir   string
	logger    *slog.Logger
}

// NewServer creates an MCP server backed by the given scan Runner.
func NewServer(runner *scan.Runner, rootDir string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{runner: runner, rootDir: rootDir, logger: logger}

	s.mcpServer = server.NewMCPServer(
		"dsscan",
		serverVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	s.mcpServer.AddTools(
		server.ServerTool{Tool: scanAdoptionTool(), Handler: s.handleScanAdoption},
		server.ServerTool{Tool: adoptionSummaryTool(), Handler: s.handleAdoptionSummary},
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
