package app

import (
	"testing"
	"time"

	"integration-agent/config"
	"integration-agent/internal/model"
)

func TestSelectBackend(t *testing.T) {
	tests := []struct {
		name      string
		customAPI bool
		mcp       bool
		want      model.Backend
	}{
		{"atlassian by default", false, false, model.BackendAtlassian},
		{"custom api", true, false, model.BackendCustomAPI},
		{"mcp", false, true, model.BackendMCP},
		{"mcp wins over custom api", true, true, model.BackendMCP},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{UseCustomAPI: tt.customAPI, UseMCPServers: tt.mcp}
			if got := SelectBackend(cfg); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestParseDuration(t *testing.T) {
	if d := parseDuration("45s", time.Minute); d != 45*time.Second {
		t.Errorf("expected 45s, got %s", d)
	}
	if d := parseDuration("", time.Minute); d != time.Minute {
		t.Errorf("expected fallback for empty value, got %s", d)
	}
	if d := parseDuration("bogus", time.Minute); d != time.Minute {
		t.Errorf("expected fallback for bad value, got %s", d)
	}
	if d := parseDuration("-5s", time.Minute); d != time.Minute {
		t.Errorf("expected fallback for negative value, got %s", d)
	}
}
