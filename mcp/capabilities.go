package mcp

// --- Handshake specific structures ---

// Capabilities Structures
type SamplingCapabilities struct {
	// Empty object {} indicates support
}

type ToolCapabilities struct {
	ListChanged bool `json:"listChanged,omitempty"`
}

// Use map for flexibility with experimental features
type ExperimentalCapabilities map[string]any

type ClientCapabilities struct {
	Sampling     *SamplingCapabilities    `json:"sampling,omitempty"`
	Experimental ExperimentalCapabilities `json:"experimental,omitempty"`
}

func NewClientCapabilities() ClientCapabilities {
	return ClientCapabilities{
		Sampling: &SamplingCapabilities{},
	}
}

type ServerCapabilities struct {
	Tools        *ToolCapabilities        `json:"tools,omitempty"`
	Experimental ExperimentalCapabilities `json:"experimental,omitempty"`
}

func NewServerCapabilities() ServerCapabilities {
	return ServerCapabilities{
		Tools: &ToolCapabilities{},
	}
}

// Info Structures
type ClientInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

func NewClientInfo(name, version string) ClientInfo {
	return ClientInfo{
		Name:    name,
		Version: version,
	}
}

type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

func NewServerInfo(name, version string) ServerInfo {
	return ServerInfo{
		Name:    name,
		Version: version,
	}
}

// Initialize Request/Response Payloads
type InitializeParams struct {
	ProtocolVersion string             `json:"protocolVersion"`
	Capabilities    ClientCapabilities `json:"capabilities"`
	ClientInfo      ClientInfo         `json:"clientInfo"`
}

type InitializeResult struct {
	ProtocolVersion string             `json:"protocolVersion"`
	Capabilities    ServerCapabilities `json:"capabilities"`
	ServerInfo      ServerInfo         `json:"serverInfo"`
}

// NewInitializeParams builds the params the coordinator sends on handshake.
func NewInitializeParams() InitializeParams {
	return InitializeParams{
		ProtocolVersion: ProtocolVersion,
		Capabilities:    NewClientCapabilities(),
		ClientInfo:      NewClientInfo("quizmcp-coordinator", "1.0.0"),
	}
}

// NewInitializeResult builds the result the agent answers with.
func NewInitializeResult() InitializeResult {
	return InitializeResult{
		ProtocolVersion: ProtocolVersion,
		Capabilities:    NewServerCapabilities(),
		ServerInfo:      NewServerInfo("quizmcp-agent", "1.0.0"),
	}
}
