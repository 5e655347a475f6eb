package mcp

const (
	// Initiates connection and negotiates protocol capabilities.
	// https://modelcontextprotocol.io/specification/2025-03-26/basic/lifecycle#initialization
	MethodInitialize string = "initialize"

	// Verifies connection liveness between client and server.
	// https://modelcontextprotocol.io/specification/2025-03-26/basic/utilities/ping
	MethodPing string = "ping"

	// Lists all available executable tools.
	// https://modelcontextprotocol.io/specification/2025-03-26/server/tools
	MethodToolsList string = "tools/list"

	// Invokes a specific tool with provided parameters.
	// https://modelcontextprotocol.io/specification/2025-03-26/server/tools
	MethodToolsCall string = "tools/call"
)

// ProtocolVersion is the single protocol revision this module speaks on
// both sides of the stdio transport.
const ProtocolVersion = "2025-03-26"
