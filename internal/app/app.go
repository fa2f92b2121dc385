// Package app wires configuration into the running components of the
// integration agent: backend repositories, use cases, the LLM manager,
// the tool registry, the orchestrator and the semantic router.
package app

import (
	"context"
	"fmt"
	"time"

	"integration-agent/config"
	"integration-agent/internal/agent"
	"integration-agent/internal/agent/orchestrator"
	"integration-agent/internal/agent/tools"
	"integration-agent/internal/docgen"
	"integration-agent/internal/httpserver"
	"integration-agent/internal/issue"
	issueRepo "integration-agent/internal/issue/repository"
	issueCustom "integration-agent/internal/issue/repository/custom"
	issueJira "integration-agent/internal/issue/repository/jira"
	issueMCP "integration-agent/internal/issue/repository/mcp"
	issueUC "integration-agent/internal/issue/usecase"
	"integration-agent/internal/model"
	"integration-agent/internal/page"
	pageRepo "integration-agent/internal/page/repository"
	pageConfluence "integration-agent/internal/page/repository/confluence"
	pageCustom "integration-agent/internal/page/repository/custom"
	pageMCP "integration-agent/internal/page/repository/mcp"
	pageUC "integration-agent/internal/page/usecase"
	"integration-agent/internal/router"
	"integration-agent/pkg/customapi"
	"integration-agent/pkg/llmprovider"
	pkgLog "integration-agent/pkg/log"
	"integration-agent/pkg/mcpclient"
)

// GeneratedSourceDir is where the agent writes generated Java files.
const GeneratedSourceDir = "generated"

// App holds the fully wired components of the integration agent.
type App struct {
	Config  *config.Config
	Logger  pkgLog.Logger
	Backend model.Backend

	IssueUC issue.UseCase
	PageUC  page.UseCase
	Docgen  *docgen.Generator

	LLM          *llmprovider.Manager
	Providers    []string
	Registry     *agent.ToolRegistry
	Orchestrator *orchestrator.Orchestrator
	Router       router.Router
	Commands     *CommandService

	customAPI  *customapi.Client
	mcpClients []*mcpclient.Client
}

// New validates the configuration and wires every component for the
// selected backend. MCP server processes are launched here; call Close
// to shut them down.
func New(ctx context.Context, logger pkgLog.Logger, cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &App{
		Config:  cfg,
		Logger:  logger,
		Backend: SelectBackend(cfg),
	}

	logger.Infof(ctx, "Using %s backend", a.Backend)

	issueRepository, pageRepository, err := a.buildRepositories(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.IssueUC = issueUC.New(logger, issueRepository)
	a.PageUC = pageUC.New(logger, pageRepository)
	a.Docgen = docgen.New(logger, a.IssueUC, a.PageUC)

	providers, err := llmprovider.InitializeProviders(&cfg.LLM)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("initialize LLM providers: %w", err)
	}
	for _, p := range providers {
		a.Providers = append(a.Providers, p.Name())
	}
	a.LLM = llmprovider.NewManager(providers, llmprovider.ManagerConfigFrom(&cfg.LLM), logger)

	a.Registry = a.buildRegistry()
	a.Orchestrator = orchestrator.New(a.LLM, a.Registry, logger, orchestrator.Config{
		MaxSteps:   cfg.Agent.MaxSteps,
		SessionTTL: parseDuration(cfg.Agent.SessionTTL, 10*time.Minute),
	})
	a.Router = router.New(a.LLM, logger)
	a.Commands = NewCommandService(logger, a.Router, a.Orchestrator)

	return a, nil
}

// SelectBackend picks the integration backend. MCP wins over the custom
// API, which wins over plain Atlassian REST.
func SelectBackend(cfg *config.Config) model.Backend {
	switch {
	case cfg.UseMCPServers:
		return model.BackendMCP
	case cfg.UseCustomAPI:
		return model.BackendCustomAPI
	default:
		return model.BackendAtlassian
	}
}

func (a *App) buildRepositories(ctx context.Context, cfg *config.Config) (issueRepo.IssueRepository, pageRepo.PageRepository, error) {
	switch a.Backend {
	case model.BackendMCP:
		timeout := parseDuration(cfg.MCP.Timeout, 30*time.Second)

		jiraClient, err := mcpclient.New(ctx, mcpclient.Config{
			Command: cfg.MCP.JiraCommand,
			Args:    cfg.MCP.JiraArgs,
			Timeout: timeout,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("start issue MCP server: %w", err)
		}
		a.mcpClients = append(a.mcpClients, jiraClient)

		confluenceClient := jiraClient
		if cfg.MCP.ConfluenceCommand != cfg.MCP.JiraCommand {
			confluenceClient, err = mcpclient.New(ctx, mcpclient.Config{
				Command: cfg.MCP.ConfluenceCommand,
				Args:    cfg.MCP.ConfluenceArgs,
				Timeout: timeout,
			})
			if err != nil {
				return nil, nil, fmt.Errorf("start page MCP server: %w", err)
			}
			a.mcpClients = append(a.mcpClients, confluenceClient)
		}

		return issueMCP.New(jiraClient, a.Logger), pageMCP.New(confluenceClient, a.Logger), nil

	case model.BackendCustomAPI:
		client, err := customapi.New(customapi.Config{
			BaseURL:           cfg.API.BaseURL,
			APIKey:            cfg.API.Key,
			Version:           cfg.API.Version,
			OAuthTokenURL:     cfg.API.OAuth.TokenURL,
			OAuthClientID:     cfg.API.OAuth.ClientID,
			OAuthClientSecret: cfg.API.OAuth.ClientSecret,
			OAuthScopes:       cfg.API.OAuth.Scopes,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("create custom API client: %w", err)
		}
		a.customAPI = client

		return issueCustom.New(client, a.Logger), pageCustom.New(client, a.Logger), nil

	default:
		jiraClient := issueJira.NewClient(cfg.Jira.BaseURL, cfg.Jira.Username, cfg.Jira.APIToken)
		confluenceClient := pageConfluence.NewClient(cfg.Confluence.BaseURL, cfg.Confluence.Username, cfg.Confluence.APIToken)

		return issueJira.New(jiraClient, a.Logger), pageConfluence.New(confluenceClient, a.Logger), nil
	}
}

func (a *App) buildRegistry() *agent.ToolRegistry {
	registry := agent.NewToolRegistry()

	registry.Register(tools.NewGetIssueTool(a.IssueUC))
	registry.Register(tools.NewSearchIssuesTool(a.IssueUC))
	registry.Register(tools.NewCreateIssueTool(a.IssueUC))
	registry.Register(tools.NewAddCommentTool(a.IssueUC))
	registry.Register(tools.NewTransitionIssueTool(a.IssueUC))

	registry.Register(tools.NewGetPageTool(a.PageUC))
	registry.Register(tools.NewSearchPagesTool(a.PageUC))
	registry.Register(tools.NewCreatePageTool(a.PageUC))
	registry.Register(tools.NewDeletePageTool(a.PageUC))
	registry.Register(tools.NewAddPageCommentTool(a.PageUC))
	registry.Register(tools.NewGetPageCommentsTool(a.PageUC))

	registry.Register(tools.NewAnalyzeJavaCodeTool())
	registry.Register(tools.NewAnalyzeJavaProjectTool())
	registry.Register(tools.NewGenerateJavaClassTool())
	registry.Register(tools.NewWriteJavaFileTool(GeneratedSourceDir))

	registry.Register(tools.NewGenerateDocumentationTool(a.Docgen))

	// Raw endpoint access only makes sense against the custom API.
	if a.customAPI != nil {
		registry.Register(tools.NewCustomAPIGetTool(a.customAPI))
		registry.Register(tools.NewCustomAPIPostTool(a.customAPI))
		registry.Register(tools.NewTestConnectionTool(a.customAPI))
	}

	return registry
}

// HTTPServer builds the gin server around the wired command service.
func (a *App) HTTPServer() (*httpserver.HTTPServer, error) {
	return httpserver.New(a.Logger, httpserver.Config{
		Logger:          a.Logger,
		Port:            a.Config.HTTPServer.Port,
		Mode:            a.Config.HTTPServer.Mode,
		Environment:     a.Config.Environment.Name,
		Orchestrator:    a.Commands,
		Backend:         a.Backend,
		Providers:       a.Providers,
		RateLimitPerMin: a.Config.HTTPServer.RateLimitPerMin,
	})
}

// CommandTimeout is the per-command deadline for CLI invocations.
func (a *App) CommandTimeout() time.Duration {
	return parseDuration(a.Config.Agent.Timeout, 30*time.Second)
}

// CustomAPI returns the custom API client, nil outside custom API mode.
func (a *App) CustomAPI() *customapi.Client {
	return a.customAPI
}

// Close shuts down MCP server processes.
func (a *App) Close() {
	for _, c := range a.mcpClients {
		if err := c.Close(); err != nil {
			a.Logger.Warnf(context.Background(), "Closing MCP client: %v", err)
		}
	}
	a.mcpClients = nil
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
