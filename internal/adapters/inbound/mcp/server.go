package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewPomlintMCPServer creates a new MCP server with all pomlint tools
// registered. The projectPath is the root directory whose descriptors the
// tools operate on.
func NewPomlintMCPServer(projectPath, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"pomlint",
		version,
		server.WithToolCapabilities(true),
	)

	registerTools(s, projectPath)

	return s
}
