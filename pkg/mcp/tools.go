package mcp

import "github.com/mark3labs/mcp-go/mcp"

func scanAdoptionTool() mcp.Tool {
	return mcp.NewTool("scan_adoption",
		mcp.WithDescription("Scan the repository and return the full design-system adoption report, including every classified component record"),
		mcp.WithBoolean("incremental",
			mcp.Description("Analyze only files changed since the last commit; falls back to a full scan when no changes are detected")),
	)
}

func adoptionSummaryTool() mcp.Tool {
	return mcp.NewTool("adoption_summary",
		mcp.WithDescription("Scan the repository and return only the adoption summary: component counts, weighted score, and adoption percentage"),
		mcp.WithBoolean("incremental",
			mcp.Description("Analyze only files changed since the last commit; falls back to a full scan when no changes are detected")),
	)
}
