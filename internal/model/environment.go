package model

// Environment identifies the deployment environment.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentStaging     Environment = "staging"
	EnvironmentProduction  Environment = "production"
)

// Backend identifies which integration backend serves issue and page
// operations.
type Backend string

const (
	BackendAtlassian Backend = "atlassian"
	BackendCustomAPI Backend = "custom_api"
	BackendMCP       Backend = "mcp"
)
