package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Backend selection
	UseCustomAPI  bool
	UseMCPServers bool

	// Integration backends
	API        CustomAPIConfig
	Jira       AtlassianConfig
	Confluence AtlassianConfig
	MCP        MCPConfig

	// LLM Provider Abstraction
	LLM LLMConfig

	// Agent loop
	Agent AgentConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string

	// Per-client request budget, zero disables limiting.
	RateLimitPerMin int
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// CustomAPIConfig configures the generic custom API backend.
type CustomAPIConfig struct {
	BaseURL string
	Key     string
	Version string
	OAuth   OAuthConfig
}

// OAuthConfig enables client-credentials auth instead of the static key.
type OAuthConfig struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scopes       []string
}

// AtlassianConfig holds credentials for a standard Atlassian REST API.
type AtlassianConfig struct {
	BaseURL  string
	Username string
	APIToken string
}

// MCPConfig configures stdio MCP servers for the MCP backend mode.
type MCPConfig struct {
	JiraCommand       string
	JiraArgs          []string
	ConfluenceCommand string
	ConfluenceArgs    []string
	Timeout           string
}

// LLMConfig holds configuration for the LLM provider abstraction layer
type LLMConfig struct {
	Providers       []ProviderConfig `yaml:"providers"`
	FallbackEnabled bool             `yaml:"fallback_enabled"`
	RetryAttempts   int              `yaml:"retry_attempts"`
	RetryDelay      string           `yaml:"retry_delay"`
	MaxTotalTimeout string           `yaml:"max_total_timeout"`
}

// ProviderConfig holds configuration for a single LLM provider
type ProviderConfig struct {
	Name     string `yaml:"name"`
	Enabled  bool   `yaml:"enabled"`
	Priority int    `yaml:"priority"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Model    string `yaml:"model"`
	Timeout  string `yaml:"timeout"`
}

// AgentConfig tunes the orchestrator loop.
type AgentConfig struct {
	Timeout    string
	MaxSteps   int
	SessionTTL string
	Timezone   string
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/integration-agent/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/integration-agent/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.HTTPServer.RateLimitPerMin = viper.GetInt("http_server.rate_limit_per_min")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Backend selection. USE_CUSTOM_API / USE_MCP_SERVERS env vars map here.
	cfg.UseCustomAPI = viper.GetBool("use_custom_api")
	cfg.UseMCPServers = viper.GetBool("use_mcp_servers")

	// Custom API
	cfg.API.BaseURL = strings.TrimRight(viper.GetString("api.base_url"), "/")
	cfg.API.Key = viper.GetString("api.key")
	cfg.API.Version = viper.GetString("api.version")
	if baseURL := viper.GetString("api_base_url"); baseURL != "" {
		cfg.API.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if key := viper.GetString("api_key"); key != "" {
		cfg.API.Key = key
	}
	cfg.API.OAuth.TokenURL = viper.GetString("api.oauth.token_url")
	cfg.API.OAuth.ClientID = viper.GetString("api.oauth.client_id")
	cfg.API.OAuth.ClientSecret = viper.GetString("api.oauth.client_secret")
	cfg.API.OAuth.Scopes = splitList(viper.GetString("api.oauth.scopes"))

	// Atlassian credentials
	cfg.Jira.BaseURL = strings.TrimRight(viper.GetString("jira.base_url"), "/")
	cfg.Jira.Username = viper.GetString("jira.username")
	cfg.Jira.APIToken = viper.GetString("jira.api_token")
	cfg.Confluence.BaseURL = strings.TrimRight(viper.GetString("confluence.base_url"), "/")
	cfg.Confluence.Username = viper.GetString("confluence.username")
	cfg.Confluence.APIToken = viper.GetString("confluence.api_token")

	// MCP servers
	cfg.MCP.JiraCommand = viper.GetString("mcp.jira_command")
	cfg.MCP.JiraArgs = splitList(viper.GetString("mcp.jira_args"))
	cfg.MCP.ConfluenceCommand = viper.GetString("mcp.confluence_command")
	cfg.MCP.ConfluenceArgs = splitList(viper.GetString("mcp.confluence_args"))
	cfg.MCP.Timeout = viper.GetString("mcp.timeout")

	// LLM Provider Abstraction
	cfg.LLM.FallbackEnabled = viper.GetBool("llm.fallback_enabled")
	cfg.LLM.RetryAttempts = viper.GetInt("llm.retry_attempts")
	cfg.LLM.RetryDelay = viper.GetString("llm.retry_delay")
	cfg.LLM.MaxTotalTimeout = viper.GetString("llm.max_total_timeout")

	if viper.IsSet("llm.providers") {
		providersRaw := viper.Get("llm.providers")
		if providersList, ok := providersRaw.([]interface{}); ok {
			for _, p := range providersList {
				if providerMap, ok := p.(map[string]interface{}); ok {
					provider := ProviderConfig{
						Name:     getStringFromMap(providerMap, "name"),
						Enabled:  getBoolFromMap(providerMap, "enabled"),
						Priority: getIntFromMap(providerMap, "priority"),
						APIKey:   expandEnvVar(getStringFromMap(providerMap, "api_key")),
						BaseURL:  getStringFromMap(providerMap, "base_url"),
						Model:    getStringFromMap(providerMap, "model"),
						Timeout:  getStringFromMap(providerMap, "timeout"),
					}
					cfg.LLM.Providers = append(cfg.LLM.Providers, provider)
				}
			}
		}
	}

	// Without a config file, OPENAI_API_KEY alone is enough to run.
	if len(cfg.LLM.Providers) == 0 {
		if key := viper.GetString("openai_api_key"); key != "" {
			cfg.LLM.Providers = append(cfg.LLM.Providers, ProviderConfig{
				Name:     "openai",
				Enabled:  true,
				Priority: 1,
				APIKey:   key,
			})
		}
	}

	// Agent loop
	cfg.Agent.Timeout = viper.GetString("agent.timeout")
	cfg.Agent.MaxSteps = viper.GetInt("agent.max_steps")
	cfg.Agent.SessionTTL = viper.GetString("agent.session_ttl")
	cfg.Agent.Timezone = viper.GetString("agent.timezone")

	return cfg, nil
}

// Validate checks that the selected backend mode has all required settings.
func (c *Config) Validate() error {
	if len(c.LLM.Providers) == 0 {
		return fmt.Errorf("missing required environment variable: OPENAI_API_KEY (or llm.providers in config.yaml)")
	}

	if c.UseMCPServers {
		var missing []string
		if c.MCP.JiraCommand == "" {
			missing = append(missing, "MCP_JIRA_COMMAND")
		}
		if c.MCP.ConfluenceCommand == "" {
			missing = append(missing, "MCP_CONFLUENCE_COMMAND")
		}
		if len(missing) > 0 {
			return fmt.Errorf("missing required MCP variables: %s", strings.Join(missing, ", "))
		}
		return nil
	}

	if c.UseCustomAPI {
		var missing []string
		if c.API.BaseURL == "" {
			missing = append(missing, "API_BASE_URL")
		}
		if c.API.Key == "" && c.API.OAuth.TokenURL == "" {
			missing = append(missing, "API_KEY")
		}
		if len(missing) > 0 {
			return fmt.Errorf("missing required custom API variables: %s", strings.Join(missing, ", "))
		}
		return nil
	}

	var missing []string
	for name, value := range map[string]string{
		"JIRA_BASE_URL":        c.Jira.BaseURL,
		"JIRA_USERNAME":        c.Jira.Username,
		"JIRA_API_TOKEN":       c.Jira.APIToken,
		"CONFLUENCE_BASE_URL":  c.Confluence.BaseURL,
		"CONFLUENCE_USERNAME":  c.Confluence.Username,
		"CONFLUENCE_API_TOKEN": c.Confluence.APIToken,
	} {
		if value == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("missing required Atlassian API variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("http_server.rate_limit_per_min", 120)
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("use_custom_api", true)
	viper.SetDefault("use_mcp_servers", false)
	viper.SetDefault("api.version", "v1")
	viper.SetDefault("mcp.timeout", "30s")

	// LLM defaults
	viper.SetDefault("llm.fallback_enabled", true)
	viper.SetDefault("llm.retry_attempts", 3)
	viper.SetDefault("llm.retry_delay", "1s")
	viper.SetDefault("llm.max_total_timeout", "60s")

	// Agent defaults
	viper.SetDefault("agent.timeout", "30s")
	viper.SetDefault("agent.max_steps", 5)
	viper.SetDefault("agent.session_ttl", "10m")
	viper.SetDefault("agent.timezone", "UTC")
}

// expandEnvVar expands values in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if !strings.HasPrefix(value, "${") || !strings.HasSuffix(value, "}") {
		return value
	}
	envVar := value[2 : len(value)-1]
	if envValue := viper.GetString(envVar); envValue != "" {
		return envValue
	}
	if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
		return envValue
	}
	return value
}

// splitList splits a comma-separated string since viper might not parse
// arrays seamlessly from env.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Helper functions to safely extract values from map[string]interface{}
func getStringFromMap(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func getBoolFromMap(m map[string]interface{}, key string) bool {
	if val, ok := m[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return false
}

func getIntFromMap(m map[string]interface{}, key string) int {
	if val, ok := m[key]; ok {
		if i, ok := val.(int); ok {
			return i
		}
		// Handle float64 from JSON unmarshaling
		if f, ok := val.(float64); ok {
			return int(f)
		}
	}
	return 0
}
