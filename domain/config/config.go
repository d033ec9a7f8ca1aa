package config

// DomainConfig holds the business rules the flow aggregate enforces.
// Values are deliberately generous: the editor is an interactive tool and
// hard limits exist only to keep a runaway canvas bounded.
type DomainConfig struct {
	// MaxNodesPerFlow is the maximum number of nodes a single flow may hold
	MaxNodesPerFlow int
	// MaxEdgesPerFlow is the maximum number of edges a single flow may hold
	MaxEdgesPerFlow int
	// AllowSelfConnections permits edges whose source and target are the same node
	AllowSelfConnections bool
	// DefaultFlowName is used when a flow is created without a name
	DefaultFlowName string
}

// DefaultDomainConfig returns the standard configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		MaxNodesPerFlow:      2000,
		MaxEdgesPerFlow:      5000,
		AllowSelfConnections: true,
		DefaultFlowName:      "Untitled Flow",
	}
}
