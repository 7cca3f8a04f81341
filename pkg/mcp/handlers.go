package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) handleScanAdoption(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	incremental := req.GetBool("incremental", false)

	rep, err := s.runner.Scan(s.rootDir, incremental)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scan failed: %v", err)), nil
	}
	return jsonResult(rep)
}

func (s *Server) handleAdoptionSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	incremental := req.GetBool("incremental", false)

	rep, err := s.runner.Scan(s.rootDir, incremental)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scan failed: %v", err)), nil
	}
	return jsonResult(rep.Summary)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
